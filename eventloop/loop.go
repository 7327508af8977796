// File: eventloop/loop.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package eventloop

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/eapache/queue"

	"github.com/momentics/hioload-poll/control"
	"github.com/momentics/hioload-poll/internal/log"
	"github.com/momentics/hioload-poll/poll"
)

// wakeToken is reserved for the loop's internal waker. Register rejects it.
const wakeToken = ^poll.Token(0)

// ErrReservedToken is returned when a source is registered with the
// token the loop keeps for itself.
var ErrReservedToken = errors.New("eventloop: token is reserved")

// Handler consumes readiness events for one registered source. Called
// only from the loop goroutine.
type Handler interface {
	HandleEvent(loop *Loop, ev poll.Event)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(loop *Loop, ev poll.Event)

func (f HandlerFunc) HandleEvent(loop *Loop, ev poll.Event) { f(loop, ev) }

// Loop is a single-goroutine reactor. All handler callbacks and Notify
// functions execute on the goroutine that called Run.
type Loop struct {
	p     *poll.Poll
	waker *poll.Waker

	mu       sync.Mutex
	handlers map[poll.Token]Handler

	pendMu  sync.Mutex
	pending *queue.Queue

	stats   control.Stats
	batch   int
	quit    atomic.Bool
	running atomic.Bool
	done    chan struct{}
}

// New creates a loop with an event batch of the given size. batchSize
// caps how many readiness events one poll round may deliver; values
// below 1 fall back to 64.
func New(batchSize int) (*Loop, error) {
	if batchSize < 1 {
		batchSize = 64
	}
	p, err := poll.New()
	if err != nil {
		return nil, err
	}
	w, err := poll.NewWaker(p.Registry(), wakeToken)
	if err != nil {
		p.Close()
		return nil, err
	}
	return &Loop{
		p:        p,
		waker:    w,
		handlers: make(map[poll.Token]Handler),
		pending:  queue.New(),
		batch:    batchSize,
		done:     make(chan struct{}),
	}, nil
}

// Register attaches src to the loop under token and routes its events
// to h. Safe to call from any goroutine.
func (l *Loop) Register(src poll.Source, token poll.Token, interests poll.Interest, h Handler) error {
	if token == wakeToken {
		return ErrReservedToken
	}
	l.mu.Lock()
	if _, dup := l.handlers[token]; dup {
		l.mu.Unlock()
		return poll.ErrAlreadyRegistered
	}
	l.handlers[token] = h
	l.mu.Unlock()

	if err := l.p.Registry().Register(src, token, interests); err != nil {
		l.mu.Lock()
		delete(l.handlers, token)
		l.mu.Unlock()
		return err
	}
	l.stats.Registers.Add(1)
	log.Debugf("eventloop: registered token=%d interests=%s", token, interests)
	return nil
}

// Reregister replaces the interest set of an already attached source.
// The token stays with the same handler.
func (l *Loop) Reregister(src poll.Source, token poll.Token, interests poll.Interest) error {
	if token == wakeToken {
		return ErrReservedToken
	}
	return l.p.Registry().Reregister(src, token, interests)
}

// Deregister detaches src and forgets its handler.
func (l *Loop) Deregister(src poll.Source, token poll.Token) error {
	if err := l.p.Registry().Deregister(src); err != nil {
		return err
	}
	l.mu.Lock()
	delete(l.handlers, token)
	l.mu.Unlock()
	l.stats.Deregisters.Add(1)
	log.Debugf("eventloop: deregistered token=%d", token)
	return nil
}

// Notify queues fn for execution on the loop goroutine and wakes the
// loop. Safe to call from any goroutine, including handlers.
func (l *Loop) Notify(fn func()) error {
	l.pendMu.Lock()
	l.pending.Add(fn)
	l.pendMu.Unlock()
	return l.waker.Wake()
}

// Stats exposes the loop's activity counters.
func (l *Loop) Stats() *control.Stats {
	return &l.stats
}

// RegisterProbes attaches the loop's introspection hooks to dp.
func (l *Loop) RegisterProbes(dp *control.DebugProbes) {
	dp.RegisterProbe("eventloop.stats", l.stats.Probe())
	dp.RegisterProbe("eventloop.handlers", func() any {
		l.mu.Lock()
		defer l.mu.Unlock()
		return len(l.handlers)
	})
	control.RegisterPlatformProbes(dp)
}

// Run drives the loop until Stop. Returns the poll error that broke the
// loop, or nil after a clean Stop.
func (l *Loop) Run() error {
	if !l.running.CompareAndSwap(false, true) {
		return errors.New("eventloop: already running")
	}
	defer close(l.done)

	events := poll.NewEvents(l.batch)
	for {
		if err := l.p.Poll(events, poll.NoTimeout); err != nil {
			log.Errorf("eventloop: poll failed: %v", err)
			return err
		}
		l.stats.Polls.Add(1)
		for _, ev := range events.All() {
			if ev.Token() == wakeToken {
				l.stats.Wakeups.Add(1)
				l.runPending()
				continue
			}
			l.dispatch(ev)
		}
		if l.quit.Load() {
			return nil
		}
	}
}

// Stop asks the loop to exit and waits for Run to return. Safe to call
// from any goroutine except the loop itself; handlers should instead
// call Shutdown.
func (l *Loop) Stop() {
	l.Shutdown()
	if l.running.Load() {
		<-l.done
	}
}

// Shutdown asks the loop to exit without waiting. Usable from handlers.
func (l *Loop) Shutdown() {
	l.quit.Store(true)
	if err := l.waker.Wake(); err != nil {
		log.Warnf("eventloop: wake on shutdown failed: %v", err)
	}
}

// Close releases the waker and the selector. Call after Run returned.
func (l *Loop) Close() error {
	werr := l.waker.Close()
	perr := l.p.Close()
	if werr != nil {
		return werr
	}
	return perr
}

func (l *Loop) dispatch(ev poll.Event) {
	l.mu.Lock()
	h := l.handlers[ev.Token()]
	l.mu.Unlock()
	if h == nil {
		log.Debugf("eventloop: dropping event for unknown token=%d", ev.Token())
		return
	}
	l.stats.Events.Add(1)
	h.HandleEvent(l, ev)
}

// runPending drains the callbacks queued by Notify. Functions added
// while draining run in the same pass.
func (l *Loop) runPending() {
	for {
		l.pendMu.Lock()
		if l.pending.Length() == 0 {
			l.pendMu.Unlock()
			return
		}
		fn := l.pending.Remove().(func())
		l.pendMu.Unlock()
		fn()
		l.stats.Notifies.Add(1)
	}
}

// PollOnce runs a single poll round with the given timeout, dispatching
// whatever arrives. Intended for embedders that drive the loop from
// their own scheduler instead of Run.
func (l *Loop) PollOnce(timeout time.Duration) error {
	events := poll.NewEvents(l.batch)
	if err := l.p.Poll(events, timeout); err != nil {
		return err
	}
	l.stats.Polls.Add(1)
	for _, ev := range events.All() {
		if ev.Token() == wakeToken {
			l.stats.Wakeups.Add(1)
			l.runPending()
			continue
		}
		l.dispatch(ev)
	}
	return nil
}
