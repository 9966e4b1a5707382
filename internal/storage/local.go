package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9.-]`)

// Local writes photos to a single flat directory. Stored names are
// "<millis>-<sanitized original name>"; the millisecond stamp is forced to be
// strictly increasing within the process so that files uploaded in the same
// millisecond never collide.
type Local struct {
	dir string

	mu        sync.Mutex
	lastStamp int64
}

func NewLocal(dir string) *Local {
	return &Local{dir: dir}
}

func (l *Local) Save(ctx context.Context, originalName string, r io.Reader) (string, error) {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := l.nextName(originalName)

	f, err := os.Create(filepath.Join(l.dir, name))
	if err != nil {
		return "", fmt.Errorf("create photo file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("write photo file: %w", err)
	}

	return name, nil
}

func (l *Local) Remove(ctx context.Context, fileName string) error {
	// Base strips any path components a stored name should never contain.
	return os.Remove(filepath.Join(l.dir, filepath.Base(fileName)))
}

func (l *Local) nextName(originalName string) string {
	clean := unsafeChars.ReplaceAllString(filepath.Base(originalName), "_")

	l.mu.Lock()
	stamp := time.Now().UnixMilli()
	if stamp <= l.lastStamp {
		stamp = l.lastStamp + 1
	}
	l.lastStamp = stamp
	l.mu.Unlock()

	return fmt.Sprintf("%d-%s", stamp, clean)
}
