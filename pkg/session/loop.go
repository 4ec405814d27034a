// Package session runs the interactive templater window in a terminal.
//
// A Loop goroutine owns the template store. Everything else (the console
// prompts, the presence goroutine) talks to it by posting intents or
// requests, so the store and the window state are only touched from one
// goroutine.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/xiaomi388/templater/pkg/clipboard"
	"github.com/xiaomi388/templater/pkg/store"
	"github.com/xiaomi388/templater/pkg/types"
)

// ErrClosed is returned for requests made after the loop stopped.
var ErrClosed = errors.New("session closed")

// ErrStale is returned when the picked template is no longer at its index,
// for example after the file was reloaded.
var ErrStale = errors.New("template changed, list refreshed")

type Intent int

const (
	IntentShow Intent = iota
	IntentHide
	IntentReload
	IntentQuit
)

func (i Intent) String() string {
	switch i {
	case IntentShow:
		return "show"
	case IntentHide:
		return "hide"
	case IntentReload:
		return "reload"
	case IntentQuit:
		return "quit"
	default:
		return fmt.Sprintf("intent(%d)", int(i))
	}
}

type request struct {
	fn    func(*store.Store) error
	reply chan error
}

// Entry is a template together with its position in the store.
type Entry struct {
	Index    int
	Template types.Template
}

type Loop struct {
	store  *store.Store
	copier clipboard.Copier
	log    logrus.FieldLogger

	intents  chan Intent
	requests chan request
	done     chan struct{}

	// owned by the Run goroutine
	visible bool
	shown   chan struct{}
}

// NewLoop creates a loop whose window starts hidden unless visible is set.
func NewLoop(s *store.Store, copier clipboard.Copier, log logrus.FieldLogger, visible bool) *Loop {
	l := &Loop{
		store:    s,
		copier:   copier,
		log:      log.WithField("component", "session"),
		intents:  make(chan Intent, 8),
		requests: make(chan request),
		done:     make(chan struct{}),
		shown:    make(chan struct{}),
	}
	if visible {
		l.visible = true
		close(l.shown)
	}
	return l
}

// Run serves intents and requests until a quit intent arrives or ctx ends.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case in := <-l.intents:
			if quit := l.handle(in); quit {
				return nil
			}
		case req := <-l.requests:
			req.reply <- req.fn(l.store)
		}
	}
}

// Done is closed once Run returns.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Post queues an intent. It never blocks once the loop has stopped.
func (l *Loop) Post(in Intent) {
	select {
	case l.intents <- in:
	case <-l.done:
	}
}

func (l *Loop) handle(in Intent) bool {
	log := l.log.WithField("intent", in)
	log.Debug("handling intent")

	switch in {
	case IntentShow:
		if !l.visible {
			l.visible = true
			close(l.shown)
		}
	case IntentHide:
		if l.visible {
			l.visible = false
			l.shown = make(chan struct{})
		}
	case IntentReload:
		if err := l.store.Load(); err != nil {
			log.WithError(err).Error("failed to reload templates")
		}
	case IntentQuit:
		log.Info("quitting")
		return true
	default:
		log.Warn("unknown intent")
	}
	return false
}

// Do runs fn on the loop goroutine and waits for its result.
func (l *Loop) Do(ctx context.Context, fn func(*store.Store) error) error {
	req := request{fn: fn, reply: make(chan error, 1)}

	select {
	case l.requests <- req:
	case <-l.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-req.reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Hide hides the window before returning, unlike posting IntentHide.
func (l *Loop) Hide(ctx context.Context) error {
	return l.Do(ctx, func(*store.Store) error {
		l.handle(IntentHide)
		return nil
	})
}

// WaitVisible blocks until the window is shown.
func (l *Loop) WaitVisible(ctx context.Context) error {
	var shown <-chan struct{}
	if err := l.Do(ctx, func(*store.Store) error {
		shown = l.shown
		return nil
	}); err != nil {
		return err
	}

	select {
	case <-shown:
		return nil
	case <-l.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *Loop) Add(ctx context.Context, description string) (bool, error) {
	var added bool
	err := l.Do(ctx, func(s *store.Store) (err error) {
		added, err = s.Add(description)
		return err
	})
	return added, err
}

// Update replaces the template e was picked from. It fails with ErrStale if
// that template moved or changed since.
func (l *Loop) Update(ctx context.Context, e Entry, description string) (bool, error) {
	var updated bool
	err := l.Do(ctx, func(s *store.Store) (err error) {
		if err := current(s, e); err != nil {
			return err
		}
		updated, err = s.Update(e.Index, description)
		return err
	})
	return updated, err
}

func (l *Loop) Remove(ctx context.Context, e Entry) (bool, error) {
	var removed bool
	err := l.Do(ctx, func(s *store.Store) (err error) {
		if err := current(s, e); err != nil {
			return err
		}
		removed, err = s.Remove(e.Index)
		return err
	})
	return removed, err
}

func (l *Loop) Get(ctx context.Context, index int) (types.Template, bool, error) {
	var (
		t  types.Template
		ok bool
	)
	err := l.Do(ctx, func(s *store.Store) error {
		t, ok = s.Get(index)
		return nil
	})
	return t, ok, err
}

// Search collects the matching entries on the loop goroutine.
func (l *Loop) Search(ctx context.Context, query string) ([]Entry, error) {
	var entries []Entry
	err := l.Do(ctx, func(s *store.Store) error {
		for i, t := range s.Search(query) {
			entries = append(entries, Entry{Index: i, Template: t})
		}
		return nil
	})
	return entries, err
}

// Copy puts the description of the picked template on the clipboard.
func (l *Loop) Copy(ctx context.Context, e Entry) (bool, error) {
	var copied bool
	err := l.Do(ctx, func(s *store.Store) error {
		if err := current(s, e); err != nil {
			return err
		}
		if err := l.copier.WriteAll(e.Template.Description); err != nil {
			return err
		}
		copied = true
		return nil
	})
	return copied, err
}

// current checks that e still describes the store. Runs on the loop.
func current(s *store.Store, e Entry) error {
	t, ok := s.Get(e.Index)
	if !ok || t != e.Template {
		return ErrStale
	}
	return nil
}
