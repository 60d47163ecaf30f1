package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/Adirelle/devconsole/pkg/commands"
	"github.com/Adirelle/devconsole/pkg/events"
)

type (
	// History remembers the last dispatched command lines.
	History struct {
		mu      sync.Mutex
		size    int
		entries []commands.Invoked
	}
)

var _ events.Handler = (*History)(nil)

func NewHistory(size int) *History {
	return &History{size: size}
}

func (h *History) HandleEvent(event events.Event) {
	invoked, ok := event.(commands.Invoked)
	if !ok || h.size == 0 {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.entries) == h.size {
		h.entries = append(h.entries[:0], h.entries[1:]...)
	}
	h.entries = append(h.entries, invoked)
}

func (h *History) Entries() []commands.Invoked {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]commands.Invoked(nil), h.entries...)
}

func (h *History) Print(w io.Writer) error {
	for i, entry := range h.Entries() {
		status := "ok"
		if entry.Err != nil {
			status = entry.Err.Error()
		}
		if _, err := fmt.Fprintf(w, "%3d %s %s (%s)\n", i+1, entry.Time, entry, status); err != nil {
			return err
		}
	}
	return nil
}
