package definition_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/goliatone/go-formbuilder/pkg/definition"
)

func TestWatcher_ReloadsOnChange(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("fields: [{name: x}]\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	reloaded := make(chan *definition.Store, 4)
	w, err := definition.NewWatcher(dir, func(s *definition.Store) { reloaded <- s }, definition.WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	if err := os.WriteFile(filepath.Join(dir, "b.json"), []byte(`{"fields":[{"name":"y"}]}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case store := <-reloaded:
			if store.Len() == 2 {
				if err := w.Close(); err != nil {
					t.Fatalf("close: %v", err)
				}
				return
			}
		case <-deadline:
			_ = w.Close()
			t.Fatalf("timed out waiting for reload")
		}
	}
}

func TestWatcher_IgnoresBrokenFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	reloaded := make(chan *definition.Store, 4)
	w, err := definition.NewWatcher(dir, func(s *definition.Store) { reloaded <- s }, definition.WithDebounce(10*time.Millisecond))
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	w.Start(context.Background())

	if err := os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("fields: ["), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	select {
	case <-reloaded:
		t.Fatalf("broken definitions must not be published")
	case <-time.After(300 * time.Millisecond):
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestNewWatcher_Errors(t *testing.T) {
	if _, err := definition.NewWatcher(t.TempDir(), nil); err == nil {
		t.Fatalf("expected error without callback")
	}
	if _, err := definition.NewWatcher(filepath.Join(t.TempDir(), "missing"), func(*definition.Store) {}); err == nil {
		t.Fatalf("expected error for missing dir")
	}
}
