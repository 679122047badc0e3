package inkwire

import (
	"context"
	"image"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/inkwire/inkwire/internal/app"
	"github.com/inkwire/inkwire/internal/domain"
	"github.com/inkwire/inkwire/internal/ports"
)

type nopSource struct{ events chan domain.MutationBatch }

func (s *nopSource) CaptureRaster(ctx context.Context, rect *image.Rectangle) (*image.Gray, error) {
	return image.NewGray(image.Rect(0, 0, 2, 2)), nil
}

func (s *nopSource) VisibilityCounts(ctx context.Context) (domain.VisibilityCounts, error) {
	return domain.VisibilityCounts{}, nil
}

func (s *nopSource) Events() <-chan domain.MutationBatch { return s.events }
func (s *nopSource) Close() error                        { return nil }

type nopPanel struct{}

func (nopPanel) Init(ctx context.Context) error { return nil }
func (nopPanel) Draw(ctx context.Context, packed []byte, rect image.Rectangle, mode domain.RefreshMode) error {
	return nil
}
func (nopPanel) Clear(ctx context.Context) error { return nil }
func (nopPanel) Close() error                    { return nil }

// memoLogger records Info messages so tests can observe watcher activity.
type memoLogger struct {
	mu   sync.Mutex
	msgs []string
}

func (l *memoLogger) Debug(msg string, fields ...ports.Field) {}
func (l *memoLogger) Warn(msg string, fields ...ports.Field)  {}
func (l *memoLogger) Error(msg string, fields ...ports.Field) {}

func (l *memoLogger) Info(msg string, fields ...ports.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.msgs = append(l.msgs, msg)
}

func (l *memoLogger) has(msg string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, m := range l.msgs {
		if m == msg {
			return true
		}
	}
	return false
}

func TestReloadWatcher_AppliesFileChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(`coalesce_delay = "1s"`), 0o644); err != nil {
		t.Fatal(err)
	}

	source := &nopSource{events: make(chan domain.MutationBatch)}
	engine := app.NewEngine(app.Settings{
		FullRefreshInterval: time.Minute,
		CoalesceDelay:       time.Second,
	}, source, nopPanel{}, noopLogger{}, nil)

	logger := &memoLogger{}
	w := newReloadWatcher(path, engine, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := w.start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer w.stop()

	if err := os.WriteFile(path, []byte(`coalesce_delay = "250ms"`), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if logger.has("config reloaded") {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("config change was not applied")
}

func TestReloadWatcher_RejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(`coalesce_delay = "nope"`), 0o644); err != nil {
		t.Fatal(err)
	}

	source := &nopSource{events: make(chan domain.MutationBatch)}
	engine := app.NewEngine(app.Settings{
		FullRefreshInterval: time.Minute,
		CoalesceDelay:       time.Second,
	}, source, nopPanel{}, noopLogger{}, nil)

	logger := &memoLogger{}
	w := newReloadWatcher(path, engine, logger)
	w.apply()

	if logger.has("config reloaded") {
		t.Error("invalid file must not be applied")
	}
}

func TestReloadWatcher_MissingPath(t *testing.T) {
	w := newReloadWatcher(filepath.Join(t.TempDir(), "absent", "config.toml"), nil, &memoLogger{})
	if err := w.start(context.Background()); err == nil {
		w.stop()
		t.Error("start = nil, want error for missing watch directory")
	}
}
