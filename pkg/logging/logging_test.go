package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/Adirelle/devconsole/pkg/logging"
	"github.com/apex/log"
)

func TestWriteEntry(t *testing.T) {
	t.Parallel()
	entry := &log.Entry{
		Level:     log.WarnLevel,
		Message:   "command.error",
		Timestamp: time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC),
		Fields:    log.Fields{"command": "spawn", "args": []string{"crate"}},
	}

	buf := bytes.Buffer{}
	if err := logging.WriteEntry(&buf, entry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "2024-05-01T12:30:00Z [warn] command.error args=[crate] command=spawn\n"
	if buf.String() != expected {
		t.Errorf("unexpected output:\n%q\nexpected:\n%q", buf.String(), expected)
	}
}

func TestCreateLogging(t *testing.T) {
	t.Parallel()
	conf := logging.NewConfig(t.TempDir())
	conf.Console = logging.ConsoleConfig(log.ErrorLevel)
	conf.File.Level = log.DebugLevel

	handler, level, svc := conf.CreateLogging()
	if handler == nil || svc == nil || level != log.DebugLevel {
		t.Errorf("unexpected result: %v, %v, %v", handler, level, svc)
	}

	conf.File.Disabled = true
	_, level, svc = conf.CreateLogging()
	if svc != nil || level != log.ErrorLevel {
		t.Errorf("disabled file logger should be ignored: %v, %v", level, svc)
	}
}

func TestConfigJSON(t *testing.T) {
	t.Parallel()
	conf := logging.NewConfig("/var/log")

	data, err := json.Marshal(conf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	decoded := &logging.Config{}
	if err := json.Unmarshal(data, decoded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded.Console != conf.Console || decoded.File.Level != conf.File.Level || decoded.File.Filename != conf.File.Filename {
		t.Errorf("config did not survive encoding: %s", data)
	}
}

func TestFileLogging(t *testing.T) {
	t.Parallel()
	conf := logging.NewFileConfig(t.TempDir())
	conf.Compress = false

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- conf.Serve(ctx) }()

	_ = conf.HandleLog(&log.Entry{Level: log.DebugLevel, Message: "too.verbose", Timestamp: time.Now()})
	_ = conf.HandleLog(&log.Entry{Level: log.InfoLevel, Message: "command.success", Timestamp: time.Now()})

	var content []byte
	for deadline := time.Now().Add(time.Second); time.Now().Before(deadline); time.Sleep(10 * time.Millisecond) {
		content, _ = os.ReadFile(conf.Filename)
		if len(content) > 0 {
			break
		}
	}
	cancel()
	if err := <-done; err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if !strings.Contains(string(content), "command.success") || strings.Contains(string(content), "too.verbose") {
		t.Errorf("unexpected file content: %q", content)
	}
}

func TestConsoleOff(t *testing.T) {
	t.Parallel()
	conf := logging.NewConfig(t.TempDir())
	if err := json.Unmarshal([]byte(`{"console":"off","file":{"level":"info"}}`), conf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conf.Console != logging.ConsoleOff {
		t.Fatalf("unexpected console level: %v", conf.Console)
	}

	_, level, _ := conf.CreateLogging()
	if level != log.InfoLevel {
		t.Errorf("file level should be the minimal one, got %v", level)
	}

	data, err := json.Marshal(conf.Console)
	if err != nil || string(data) != `"off"` {
		t.Errorf("unexpected encoding: %s, %v", data, err)
	}
}
