package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const (
	ConfigurationName = "config.yaml"
	HistoryName       = "history"
	SessionLogName    = "session.log"
)

// Color modes for the prompt.
const (
	ColorAlways = "always"
	ColorAuto   = "auto"
	ColorNever  = "never"
)

type Configuration struct {
	configDir string
	configFs  afero.Fs

	Prompt string `json:"prompt" validate:"required"`
	Motd   string `json:"motd"`
	Color  string `json:"color" validate:"required,oneof=always auto never"`

	HistoryLimit      int  `json:"history_limit" validate:"gte=0"`
	DisableHistory    bool `json:"disable_history"`
	DisableSessionLog bool `json:"disable_session_log"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

// Dir returns the configuration directory, or "" for a configuration that
// isn't backed by one.
func (c *Configuration) Dir() string {
	return c.configDir
}

func (c *Configuration) fs() afero.Fs {
	if c.configFs == nil {
		c.configFs = afero.NewMemMapFs()
	}
	return c.configFs
}

// HistoryFile returns the path readline persists history to, or "" when
// history is disabled or there is no configuration directory to keep it in.
func (c *Configuration) HistoryFile() string {
	if c.DisableHistory || c.configDir == "" {
		return ""
	}
	return filepath.Join(c.configDir, HistoryName)
}

// OpenSessionLog opens the session log in an append only state.
func (c *Configuration) OpenSessionLog() (afero.File, error) {
	return c.fs().OpenFile(SessionLogName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

func (c *Configuration) ReadSessionLog() (afero.File, error) {
	return c.fs().OpenFile(SessionLogName, os.O_RDONLY, 0600)
}

// Default returns the built-in configuration.
func Default() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
