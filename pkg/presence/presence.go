// Package presence keeps the app reachable while its window is hidden. It
// turns OS signals and external edits of the templates file into intents
// for the session loop and never touches the store itself.
package presence

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/xiaomi388/templater/pkg/session"
)

const defaultDebounce = 200 * time.Millisecond

// Poster receives intents. *session.Loop implements it.
type Poster interface {
	Post(in session.Intent)
}

type Option func(*Presence)

// WithWatch reloads the session whenever path is changed on disk.
func WithWatch(path string) Option {
	return func(p *Presence) {
		p.watchPath = path
	}
}

func WithDebounce(d time.Duration) Option {
	return func(p *Presence) {
		p.debounce = d
	}
}

type Presence struct {
	poster    Poster
	log       logrus.FieldLogger
	watchPath string
	debounce  time.Duration

	signals chan os.Signal
	watcher *fsnotify.Watcher

	mu            sync.Mutex
	debounceTimer *time.Timer

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

func New(poster Poster, log logrus.FieldLogger, opts ...Option) *Presence {
	p := &Presence{
		poster:   poster,
		log:      log.WithField("component", "presence"),
		debounce: defaultDebounce,
		signals:  make(chan os.Signal, 4),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Start subscribes to signals and, when configured, to file changes, then
// serves them on a background goroutine until ctx ends or Stop is called.
// A watcher that cannot be set up is logged and skipped.
func (p *Presence) Start(ctx context.Context) {
	signal.Notify(p.signals, append(showSignals, os.Interrupt, syscall.SIGTERM)...)

	if p.watchPath != "" {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			p.log.WithError(err).Warn("fsnotify init failed, external changes will not be reloaded")
		} else if err := watcher.Add(filepath.Dir(p.watchPath)); err != nil {
			p.log.WithError(err).WithField("path", p.watchPath).Warn("fsnotify add failed, external changes will not be reloaded")
			_ = watcher.Close()
		} else {
			p.watcher = watcher
		}
	}

	go p.run(ctx)
}

// Stop ends the background goroutine and waits for it.
func (p *Presence) Stop() {
	p.stopOnce.Do(func() {
		close(p.stopCh)
	})
	<-p.doneCh
}

func (p *Presence) run(ctx context.Context) {
	defer close(p.doneCh)
	defer signal.Stop(p.signals)
	defer p.stopTimer()

	var (
		events <-chan fsnotify.Event
		errs   <-chan error
	)
	if p.watcher != nil {
		defer p.watcher.Close()
		events = p.watcher.Events
		errs = p.watcher.Errors
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stopCh:
			return
		case sig := <-p.signals:
			p.handleSignal(sig)
		case event, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			p.handleEvent(event)
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			p.log.WithError(err).Warn("file watcher error")
		}
	}
}

func (p *Presence) handleSignal(sig os.Signal) {
	log := p.log.WithField("signal", sig)
	if isShowSignal(sig) {
		log.Debug("show requested")
		p.poster.Post(session.IntentShow)
		return
	}

	log.Debug("quit requested")
	p.poster.Post(session.IntentQuit)
}

func (p *Presence) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != filepath.Clean(p.watchPath) {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.debounceTimer != nil {
		p.debounceTimer.Stop()
	}
	p.debounceTimer = time.AfterFunc(p.debounce, func() {
		p.log.WithField("path", p.watchPath).Debug("templates file changed")
		p.poster.Post(session.IntentReload)
	})
}

func (p *Presence) stopTimer() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.debounceTimer != nil {
		p.debounceTimer.Stop()
	}
}

// CanShow reports whether this platform has a signal that reveals a hidden
// window.
func CanShow() bool {
	return len(showSignals) > 0
}

func isShowSignal(sig os.Signal) bool {
	for _, s := range showSignals {
		if s == sig {
			return true
		}
	}
	return false
}
