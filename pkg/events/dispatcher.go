package events

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/apex/log"
	"github.com/thejerf/suture/v4"
)

type (
	// AsyncDispatcher forwards events to its handlers from a single goroutine,
	// the one running Serve.
	AsyncDispatcher struct {
		ctl      chan command
		handlers map[uint64]Handler
		order    []uint64
		lastID   uint64
	}

	Subscription struct {
		id         uint64
		dispatcher *AsyncDispatcher
	}

	command interface{}

	addCommand struct {
		id uint64
		Handler
	}

	removeCommand struct {
		id uint64
	}

	dispatchCommand struct {
		Event
		done chan struct{}
	}
)

var (
	// interface checks
	_ Dispatcher     = (*AsyncDispatcher)(nil)
	_ Handler        = (*AsyncDispatcher)(nil)
	_ suture.Service = (*AsyncDispatcher)(nil)
)

func NewAsyncDispatcher() *AsyncDispatcher {
	return &AsyncDispatcher{
		ctl:      make(chan command, 20),
		handlers: make(map[uint64]Handler),
	}
}

func (d *AsyncDispatcher) Serve(ctx context.Context) error {
	for {
		select {
		case cmd := <-d.ctl:
			d.handleCommand(cmd)
		case <-ctx.Done():
			return nil
		}
	}
}

func (d *AsyncDispatcher) GoString() string {
	return fmt.Sprintf("Dispatcher(%d, %d/%d)", len(d.handlers), len(d.ctl), cap(d.ctl))
}

func (d *AsyncDispatcher) handleCommand(cmd command) {
	switch c := cmd.(type) {
	case addCommand:
		d.handlers[c.id] = c.Handler
		d.order = append(d.order, c.id)
	case removeCommand:
		delete(d.handlers, c.id)
		for i, id := range d.order {
			if id == c.id {
				d.order = append(d.order[:i], d.order[i+1:]...)
				break
			}
		}
	case dispatchCommand:
		if c.done != nil {
			defer close(c.done)
		}
		for _, id := range d.order {
			d.handlers[id].HandleEvent(c.Event)
		}
	}
}

// Dispatch queues event and returns a channel closed once every handler has seen it.
func (d *AsyncDispatcher) Dispatch(event Event) <-chan struct{} {
	done := make(chan struct{})
	d.ctl <- dispatchCommand{event, done}
	return done
}

// DispatchEvent queues event without waiting. The event is dropped when the queue
// is full, e.g. when Serve is not running.
func (d *AsyncDispatcher) DispatchEvent(event Event) {
	select {
	case d.ctl <- dispatchCommand{Event: event}:
	default:
		log.WithFields(event).WithField("type", event.Type()).Warn("events.dropped")
	}
}

func (d *AsyncDispatcher) HandleEvent(event Event) {
	d.DispatchEvent(event)
}

func (d *AsyncDispatcher) AddHandler(handler Handler) Subscription {
	id := atomic.AddUint64(&d.lastID, 1)
	d.ctl <- addCommand{id, handler}
	return Subscription{id, d}
}

func (s Subscription) Cancel() {
	s.dispatcher.ctl <- removeCommand{s.id}
}
