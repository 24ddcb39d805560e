package store

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var nowFunc = time.Now

// Config locates the on-disk database.
type Config interface {
	BasePath() string
}

// LoadConfig reads .todo.yaml from $TODO_CONFIG_PATH or the working directory
// into the global viper instance. Environment variables prefixed TODO_
// override file values.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.todo.db")
	viper.SetDefault("show_empty", false)
	viper.SetConfigName(".todo") // .yaml is implicit
	viper.SetEnvPrefix("TODO")
	viper.AutomaticEnv()

	if override := os.Getenv("TODO_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	return &fileConfig{Path: path}, nil
}

type fileConfig struct {
	Path string `json:"path"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

// PathConfig is a Config pointing at a fixed directory.
type PathConfig string

func (p PathConfig) BasePath() string {
	return string(p)
}
