package main

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/Adirelle/devconsole/pkg/logging"
	"github.com/go-playground/validator/v10"
)

const (
	ConfigFilename = "devconsole.json"
)

type (
	Config struct {
		Path    string          `json:"-"`
		Prompt  string          `json:"prompt" validate:"required"`
		Aliases string          `json:"aliases,omitempty"`
		History int             `json:"history" validate:"min=0,max=1000"`
		Logging *logging.Config `json:"logging" validate:"required"`
	}
)

func ConfigSearchPath() []string {
	paths := os.Args[1:]
	workDir, err := os.Getwd()
	if err == nil {
		paths = append(paths, workDir)
	}
	return append(paths, filepath.Dir(os.Args[0]))
}

func FindConfigFile(paths []string) string {
	for _, path := range paths {
		stat, err := os.Stat(path)
		if err != nil {
			continue
		}
		if stat.IsDir() {
			path = filepath.Join(path, ConfigFilename)
			_, err = os.Stat(path)
		}
		if err == nil {
			return path
		}
	}
	if len(paths) > 0 {
		if stat, err := os.Stat(paths[0]); err == nil && stat.IsDir() {
			return filepath.Join(paths[0], ConfigFilename)
		}
		return paths[0]
	}
	return ConfigFilename
}

func NewConfig(path string) *Config {
	return &Config{
		Path:    path,
		Prompt:  "> ",
		History: 50,
		Logging: logging.NewConfig(filepath.Dir(path)),
	}
}

func LoadConfig(path string) (c *Config, err error) {
	c = NewConfig(path)

	err = c.Read()
	if os.IsNotExist(err) {
		err = c.Write()
	}
	if err != nil {
		return
	}
	err = validator.New().Struct(c)

	return
}

// AliasesPath resolves the alias file relatively to the configuration file.
func (c *Config) AliasesPath() string {
	if c.Aliases == "" || filepath.IsAbs(c.Aliases) {
		return c.Aliases
	}
	return filepath.Join(filepath.Dir(c.Path), c.Aliases)
}

func (c *Config) Read() error {
	content, err := os.ReadFile(c.Path)
	if err != nil {
		return err
	}
	return json.Unmarshal(content, c)
}

func (c *Config) Write() error {
	content, err := json.MarshalIndent(&c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.Path, content, os.FileMode(0o666))
}
