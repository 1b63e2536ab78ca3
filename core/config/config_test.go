package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v2"
)

func TestBuiltinConfig(t *testing.T) {
	rawConfig := make(map[string]interface{})
	assert.Nil(t, yaml.Unmarshal(defaultConfigData, &rawConfig))

	knownFields := make(map[string]bool)
	rt := reflect.TypeOf(Configuration{})
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		assert.NotEmpty(t, jsonTag)
		jsonField := strings.Split(jsonTag, ",")[0]
		knownFields[jsonField] = true

		if _, ok := rawConfig[jsonField]; !ok {
			assert.False(t, true, "default config missing field: %q", jsonField)
		}
	}

	for k := range rawConfig {
		_, ok := knownFields[k]
		assert.True(t, ok, "default config contains invalid field: %q", k)
	}
}

func TestDefaultConfig(t *testing.T) {
	// Will panic() on load failure because it should never happen at runtime.
	assert.NotNil(t, Default())
}

func TestDefaultConfigIsValid(t *testing.T) {
	assert.Nil(t, Default().Validate())
}

func TestValidate(t *testing.T) {
	cases := map[string]struct {
		mutate  func(c *Configuration)
		wantErr bool
	}{
		"default":          {mutate: func(c *Configuration) {}, wantErr: false},
		"missing prompt":   {mutate: func(c *Configuration) { c.Prompt = "" }, wantErr: true},
		"bad color mode":   {mutate: func(c *Configuration) { c.Color = "sometimes" }, wantErr: true},
		"negative history": {mutate: func(c *Configuration) { c.HistoryLimit = -1 }, wantErr: true},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)

			err := cfg.Validate()
			if tc.wantErr {
				assert.NotNil(t, err)
			} else {
				assert.Nil(t, err)
			}
		})
	}
}

func TestHistoryFile(t *testing.T) {
	cfg := Default()

	// No directory to keep history in.
	assert.Equal(t, "", cfg.HistoryFile())

	cfg.configDir = filepath.Join("home", "user", ".config", "tish")
	assert.Equal(t, filepath.Join(cfg.configDir, HistoryName), cfg.HistoryFile())

	cfg.DisableHistory = true
	assert.Equal(t, "", cfg.HistoryFile())
}

func TestLoadMissingConfig(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	contents := "prompt: '> '\ncolor: auto\nshell_level: 9\n"
	if err := os.WriteFile(filepath.Join(dir, ConfigurationName), []byte(contents), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := Load(dir)
	assert.NotNil(t, err)
}

func TestLoadAcceptsConfigFilePath(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigurationName), defaultConfigData, 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(filepath.Join(dir, ConfigurationName))
	assert.Nil(t, err)
	assert.Equal(t, dir, cfg.Dir())
}
