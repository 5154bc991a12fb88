// Package watch polls campaign statistics on an interval and rebuilds the
// client whenever its config file changes.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/saleslv/premium-api/pkg/client"
	"github.com/saleslv/premium-api/pkg/log"
)

// StatsSource is the part of client.Client the watcher polls.
type StatsSource interface {
	StatisticsGeneral(ctx context.Context) (client.Payload, error)
}

// Target is what a Loader produces: the source to poll and how often.
type Target struct {
	Source   StatsSource
	Interval time.Duration
}

// Loader builds a Target from the current configuration. It is called once at
// start and again after every config file change.
type Loader func() (Target, error)

// Sink receives every poll result.
type Sink func(client.Payload, error)

// Config holds watcher options.
type Config struct {
	// ConfigPath is the file to watch. Empty disables reloading.
	ConfigPath string

	// DebounceDelay is the delay to wait after a file change before reloading.
	// Default: 100 milliseconds
	DebounceDelay time.Duration

	// RetryInterval is the first retry delay after a failed poll. It doubles
	// on each further failure up to DefaultBackoffMax.
	// Default: 1 second
	RetryInterval time.Duration
}

// Watcher runs the poll loop.
type Watcher struct {
	cfg    Config
	load   Loader
	sink   Sink
	logger log.Logger

	mu       sync.Mutex
	debounce *time.Timer
	reload   chan struct{}
}

// New creates a Watcher. A nil logger discards log output.
func New(cfg Config, load Loader, sink Sink, logger log.Logger) *Watcher {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = 100 * time.Millisecond
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = DefaultBackoffInitial
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Watcher{
		cfg:    cfg,
		load:   load,
		sink:   sink,
		logger: logger,
		reload: make(chan struct{}, 1),
	}
}

// Run polls until ctx is done. It fails only when the initial load fails.
// A poll that fails in transit is retried with backoff, never later than the
// next regular poll.
func (w *Watcher) Run(ctx context.Context) error {
	target, err := w.load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := checkTarget(target); err != nil {
		return err
	}

	events, stop := w.watchFile(ctx)
	defer stop()

	retry := newBackoff(w.cfg.RetryInterval, max(DefaultBackoffMax, w.cfg.RetryInterval))
	ticker := time.NewTicker(target.Interval)
	defer ticker.Stop()

	schedule := func(err error) {
		if !transient(err) {
			retry.reset()
			ticker.Reset(target.Interval)
			return
		}
		delay := min(retry.next(), target.Interval)
		w.logger.Warn("poll failed, retrying", log.Err(err), log.Duration("delay", delay))
		ticker.Reset(delay)
	}

	schedule(w.poll(ctx, target.Source))
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			schedule(w.poll(ctx, target.Source))
		case <-events:
			next, err := w.load()
			if err == nil {
				err = checkTarget(next)
			}
			if err != nil {
				w.logger.Error("config reload failed, keeping previous settings", log.Err(err))
				continue
			}
			target = next
			w.logger.Info("config reloaded",
				log.String("path", w.cfg.ConfigPath),
				log.Duration("interval", target.Interval),
			)
			schedule(w.poll(ctx, target.Source))
		}
	}
}

func checkTarget(t Target) error {
	if t.Source == nil {
		return errors.New("loader returned no source")
	}
	if t.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", t.Interval)
	}
	return nil
}

func (w *Watcher) poll(ctx context.Context, src StatsSource) error {
	payload, err := src.StatisticsGeneral(ctx)
	if ctx.Err() != nil {
		return nil
	}
	w.sink(payload, err)
	return err
}

// watchFile reports debounced changes to the config file. The directory is
// watched rather than the file so editors that replace it on save are seen.
func (w *Watcher) watchFile(ctx context.Context) (<-chan struct{}, func()) {
	if w.cfg.ConfigPath == "" {
		return nil, func() {}
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		w.logger.Error("config watcher: failed to create watcher", log.Err(err))
		return nil, func() {}
	}
	if err := fw.Add(filepath.Dir(w.cfg.ConfigPath)); err != nil {
		w.logger.Error("config watcher: failed to watch directory", log.Err(err))
		fw.Close()
		return nil, func() {}
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.watchLoop(ctx, fw)
	}()

	return w.reload, func() {
		fw.Close()
		wg.Wait()
		w.mu.Lock()
		if w.debounce != nil {
			w.debounce.Stop()
		}
		w.mu.Unlock()
	}
}

func (w *Watcher) watchLoop(ctx context.Context, fw *fsnotify.Watcher) {
	name := filepath.Base(w.cfg.ConfigPath)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.debounceReload()
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Error("config watcher: watcher error", log.Err(err))
		}
	}
}

func (w *Watcher) debounceReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(w.cfg.DebounceDelay, func() {
		select {
		case w.reload <- struct{}{}:
		default:
		}
	})
}
