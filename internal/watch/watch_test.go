package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/saleslv/premium-api/pkg/apierr"
	"github.com/saleslv/premium-api/pkg/client"
)

type fakeSource struct {
	name  string
	calls atomic.Int32
}

func (f *fakeSource) StatisticsGeneral(context.Context) (client.Payload, error) {
	f.calls.Add(1)
	return client.Payload{"Source": f.name}, nil
}

type recorder struct {
	mu      sync.Mutex
	sources []string
	errs    []error
}

func (r *recorder) sink(p client.Payload, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources = append(r.sources, p.String("Source"))
	r.errs = append(r.errs, err)
}

func (r *recorder) last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.sources) == 0 {
		return ""
	}
	return r.sources[len(r.sources)-1]
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sources)
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestRun_PollsOnInterval(t *testing.T) {
	src := &fakeSource{name: "a"}
	rec := &recorder{}
	w := New(Config{}, func() (Target, error) {
		return Target{Source: src, Interval: 20 * time.Millisecond}, nil
	}, rec.sink, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	waitFor(t, "three polls", func() bool { return rec.count() >= 3 })
	cancel()

	if err := <-done; err != nil {
		t.Fatalf("Run returned %v", err)
	}
	if got := rec.last(); got != "a" {
		t.Errorf("last source = %q, want a", got)
	}
}

func TestRun_InitialLoadFailure(t *testing.T) {
	want := errors.New("no key")
	w := New(Config{}, func() (Target, error) { return Target{}, want }, func(client.Payload, error) {
		t.Error("sink called after failed load")
	}, nil)

	err := w.Run(context.Background())
	if !errors.Is(err, want) {
		t.Fatalf("Run error = %v, want %v", err, want)
	}
}

func TestRun_RejectsBadTarget(t *testing.T) {
	w := New(Config{}, func() (Target, error) {
		return Target{Source: &fakeSource{}}, nil
	}, func(client.Payload, error) {}, nil)

	if err := w.Run(context.Background()); err == nil {
		t.Fatal("expected error for zero interval")
	}
}

func TestRun_ReloadsOnConfigChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(`campaign = "a"`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var loads atomic.Int32
	load := func() (Target, error) {
		loads.Add(1)
		b, err := os.ReadFile(path)
		if err != nil {
			return Target{}, err
		}
		return Target{Source: &fakeSource{name: string(b)}, Interval: time.Hour}, nil
	}

	rec := &recorder{}
	w := New(Config{ConfigPath: path, DebounceDelay: 10 * time.Millisecond}, load, rec.sink, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	waitFor(t, "initial poll", func() bool { return rec.count() >= 1 })

	// Unrelated files in the same directory are ignored.
	if err := os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write other: %v", err)
	}
	if err := os.WriteFile(path, []byte(`campaign = "b"`), 0o644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}

	waitFor(t, "reload poll", func() bool { return rec.last() == `campaign = "b"` })
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run returned %v", err)
	}
	if n := loads.Load(); n < 2 {
		t.Errorf("loads = %d, want at least 2", n)
	}
}

func TestRun_KeepsTargetWhenReloadFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("ok"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	src := &fakeSource{name: "first"}
	var loads atomic.Int32
	load := func() (Target, error) {
		if loads.Add(1) > 1 {
			return Target{}, errors.New("broken file")
		}
		return Target{Source: src, Interval: 20 * time.Millisecond}, nil
	}

	rec := &recorder{}
	w := New(Config{ConfigPath: path, DebounceDelay: 10 * time.Millisecond}, load, rec.sink, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	waitFor(t, "initial poll", func() bool { return rec.count() >= 1 })
	if err := os.WriteFile(path, []byte("broken"), 0o644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}
	waitFor(t, "failed reload", func() bool { return loads.Load() >= 2 })

	before := src.calls.Load()
	waitFor(t, "polling to continue", func() bool { return src.calls.Load() > before })
	cancel()
	<-done
}

type flakySource struct {
	calls atomic.Int32
	fails int32
}

func (f *flakySource) StatisticsGeneral(context.Context) (client.Payload, error) {
	if f.calls.Add(1) <= f.fails {
		return nil, apierr.New(apierr.RequestFailed, "connection refused")
	}
	return client.Payload{"Source": "flaky"}, nil
}

func TestRun_RetriesTransientFailure(t *testing.T) {
	src := &flakySource{fails: 2}
	rec := &recorder{}
	w := New(Config{RetryInterval: 10 * time.Millisecond}, func() (Target, error) {
		return Target{Source: src, Interval: time.Hour}, nil
	}, rec.sink, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	waitFor(t, "recovery", func() bool { return rec.last() == "flaky" })
	cancel()
	<-done

	if n := src.calls.Load(); n != 3 {
		t.Errorf("calls = %d, want 3", n)
	}
}

func TestRun_ServiceErrorWaitsForInterval(t *testing.T) {
	var calls atomic.Int32
	src := sourceFunc(func() (client.Payload, error) {
		calls.Add(1)
		return client.Payload{"ErrNo": 1}, apierr.New(apierr.Unauthorized, "bad key")
	})
	w := New(Config{RetryInterval: time.Millisecond}, func() (Target, error) {
		return Target{Source: src, Interval: time.Hour}, nil
	}, func(client.Payload, error) {}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := w.Run(ctx); err != nil {
		t.Fatalf("Run returned %v", err)
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("calls = %d, want 1", n)
	}
}

type sourceFunc func() (client.Payload, error)

func (f sourceFunc) StatisticsGeneral(context.Context) (client.Payload, error) { return f() }

func TestBackoff(t *testing.T) {
	b := newBackoff(100*time.Millisecond, 300*time.Millisecond)
	within := func(d, want time.Duration) bool {
		return d >= want*8/10 && d <= want*12/10
	}
	for i, want := range []time.Duration{100, 200, 300, 300} {
		want *= time.Millisecond
		if d := b.next(); !within(d, want) {
			t.Errorf("step %d: next = %s, want about %s", i, d, want)
		}
	}
	b.reset()
	if d := b.next(); !within(d, 100*time.Millisecond) {
		t.Errorf("after reset: next = %s, want about 100ms", d)
	}
}

func TestTransient(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{client.ErrNoResult, true},
		{apierr.New(apierr.RequestFailed, "timeout"), true},
		{apierr.New(apierr.EmptyResponse, ""), true},
		{apierr.New(apierr.Unauthorized, "bad key"), false},
		{apierr.New(apierr.NoDataFound, ""), false},
	}
	for _, tt := range tests {
		if got := transient(tt.err); got != tt.want {
			t.Errorf("transient(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
