// Package lockfile serialises mutations of shared on-disk state across
// processes with an exclusively created lock file.
package lockfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrLocked is wrapped when the context ends while another owner holds the lock.
var ErrLocked = errors.New("lock held by another process")

// PollInterval is how often a contended lock is retried.
var PollInterval = 100 * time.Millisecond

// Acquire blocks until path can be created exclusively or ctx ends. The
// returned release func removes the lock only while this owner still holds it.
func Acquire(ctx context.Context, path string) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("prepare lock directory: %w", err)
	}

	token := uuid.NewString()
	ticker := time.NewTicker(PollInterval)
	defer ticker.Stop()

	for {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
		if err == nil {
			_, werr := f.WriteString(token)
			cerr := f.Close()
			if werr != nil || cerr != nil {
				_ = os.Remove(path)
				return nil, fmt.Errorf("write lock %s: %w", path, errors.Join(werr, cerr))
			}
			return func() { release(path, token) }, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("acquire lock: %w", err)
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("acquire lock %s: %w: %w", path, ErrLocked, ctx.Err())
		case <-ticker.C:
		}
	}
}

func release(path, token string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	if strings.TrimSpace(string(data)) != token {
		return
	}
	_ = os.Remove(path)
}
