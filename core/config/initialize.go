package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"
)

// Initialize writes the default configuration into dir, creating it if
// necessary. Existing files are left alone so it's safe to run again on a
// populated directory.
func Initialize(dir string, logger *log.Logger) (*Configuration, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	configPath := filepath.Join(dir, ConfigurationName)
	switch _, err := os.Stat(configPath); {
	case err == nil:
		logger.Printf("%s already exists, skipping", configPath)
	case errors.Is(err, fs.ErrNotExist):
		if err := os.WriteFile(configPath, defaultConfigData, 0600); err != nil {
			return nil, err
		}
		logger.Printf("Created %s", configPath)
	default:
		return nil, err
	}

	return Load(dir)
}
