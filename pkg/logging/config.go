package logging

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/apex/log/handlers/discard"
	"github.com/apex/log/handlers/level"
	"github.com/apex/log/handlers/multi"
	"github.com/thejerf/suture/v4"
)

type (
	Config struct {
		Console ConsoleConfig `json:"console"`
		File    *FileConfig   `json:"file,omitempty"`
	}

	// ConsoleConfig is the minimal level of the entries printed on stderr, or
	// ConsoleOff, written "off", to keep stderr for the interactive console.
	ConsoleConfig log.Level

	factory interface {
		CreateLogging() (log.Handler, log.Level, suture.Service)
	}
)

const ConsoleOff = ConsoleConfig(log.FatalLevel + 1)

var (
	offJSON = []byte(`"off"`)

	_ factory          = (*Config)(nil)
	_ factory          = ConsoleOff
	_ json.Marshaler   = ConsoleOff
	_ json.Unmarshaler = (*ConsoleConfig)(nil)
)

func NewConfig(baseDir string) *Config {
	return &Config{
		Console: ConsoleConfig(log.WarnLevel),
		File:    NewFileConfig(baseDir),
	}
}

// CreateLogging combines the console and file handlers. The returned service, if
// any, must be running for file entries to be written.
func (c *Config) CreateLogging() (log.Handler, log.Level, suture.Service) {
	handler, minLevel, svc := c.Console.CreateLogging()

	if c.File != nil && !c.File.Disabled {
		fileHandler, fileLevel, fileSvc := c.File.CreateLogging()
		handler = multi.New(handler, fileHandler)
		if fileLevel < minLevel {
			minLevel = fileLevel
		}
		svc = fileSvc
	}

	return handler, minLevel, svc
}

// Apply installs the handlers as the default apex/log logger.
func (c *Config) Apply() suture.Service {
	handler, level, svc := c.CreateLogging()
	log.SetHandler(handler)
	log.SetLevel(level)
	return svc
}

func (c ConsoleConfig) CreateLogging() (log.Handler, log.Level, suture.Service) {
	if c == ConsoleOff {
		return discard.Default, log.Level(c), nil
	}
	return level.New(cli.New(os.Stderr), log.Level(c)), log.Level(c), nil
}

func (c ConsoleConfig) MarshalJSON() ([]byte, error) {
	if c == ConsoleOff {
		return offJSON, nil
	}
	return log.Level(c).MarshalJSON()
}

func (c *ConsoleConfig) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, offJSON) {
		*c = ConsoleOff
		return nil
	}
	return json.Unmarshal(data, (*log.Level)(c))
}
