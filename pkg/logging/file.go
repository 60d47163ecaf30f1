package logging

import (
	"context"
	"fmt"
	"io"
	stdlog "log"
	"path/filepath"
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/thejerf/suture/v4"
	"gopkg.in/natefinch/lumberjack.v2"
)

type (
	// FileConfig writes entries to a rotated file from its Serve goroutine.
	FileConfig struct {
		Disabled bool      `json:"disabled,omitempty"`
		Level    log.Level `json:"level"`
		*lumberjack.Logger

		once    sync.Once
		entries chan *log.Entry
	}
)

const (
	DefaultFilename = "devconsole.log"
	entryBacklog    = 100
)

var (
	_ factory        = (*FileConfig)(nil)
	_ log.Handler    = (*FileConfig)(nil)
	_ suture.Service = (*FileConfig)(nil)
)

func NewFileConfig(baseDir string) *FileConfig {
	return &FileConfig{
		Level: log.InfoLevel,
		Logger: &lumberjack.Logger{
			Filename:   filepath.Join(baseDir, DefaultFilename),
			MaxSize:    10, // megabytes
			MaxBackups: 10,
			LocalTime:  true,
			Compress:   true,
		},
	}
}

func (f *FileConfig) CreateLogging() (log.Handler, log.Level, suture.Service) {
	if f.Disabled {
		return nil, log.FatalLevel, nil
	}
	return f, f.Level, f
}

func (f *FileConfig) queue() chan *log.Entry {
	f.once.Do(func() {
		f.entries = make(chan *log.Entry, entryBacklog)
	})
	return f.entries
}

// HandleLog drops entries when the backlog is full rather than blocking the caller.
func (f *FileConfig) HandleLog(entry *log.Entry) error {
	if entry.Level < f.Level {
		return nil
	}
	select {
	case f.queue() <- entry:
	default:
	}
	return nil
}

func (f *FileConfig) Serve(ctx context.Context) (err error) {
	entries := f.queue()
	defer func() {
		cerr := f.Logger.Close()
		if err == nil {
			err = cerr
		}
		if err != nil {
			stdlog.Printf("error logging to %s: %s", f.Filename, err)
		}
	}()
	log.WithField("path", f.Filename).Debug("logging.file.started")

	for {
		select {
		case entry := <-entries:
			err = WriteEntry(f.Logger, entry)
			if err != nil {
				return
			}
		case <-ctx.Done():
			return nil
		}
	}
}

func WriteEntry(writer io.Writer, entry *log.Entry) (err error) {
	_, err = fmt.Fprintf(writer, "%s [%s] %s", entry.Timestamp.Format(time.RFC3339), entry.Level, entry.Message)
	if err != nil {
		return
	}

	fields := entry.Fields
	for _, name := range fields.Names() {
		_, err = fmt.Fprintf(writer, " %s=%v", name, fields.Get(name))
		if err != nil {
			return
		}
	}

	_, err = writer.Write([]byte("\n"))

	return
}
