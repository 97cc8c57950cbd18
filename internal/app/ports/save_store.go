package ports

import (
	"context"
	"fmt"
	"io"
	"time"

	"farmverse/internal/domain/farm"
)

// SlotInfo describes one save slot on disk.
type SlotInfo struct {
	Slot    int
	Path    string
	SavedAt time.Time
}

// SaveStore is the durable home of farm snapshots. Saves are atomic with a
// backup of the previous file; loads validate the envelope and fall back to
// the backup before failing.
type SaveStore interface {
	Save(ctx context.Context, slot int, snapshot farm.Snapshot) (path string, err error)
	Load(ctx context.Context, slot int) (farm.Snapshot, error)
	ListSlots(ctx context.Context) ([]SlotInfo, error)
	Delete(ctx context.Context, slot int) error
}

// SaveArchiver bundles every slot into a portable archive stream.
type SaveArchiver interface {
	WriteBundle(ctx context.Context, w io.Writer) error
}

// SaveError wraps a failure to persist a snapshot. The session state stays
// valid when it surfaces.
type SaveError struct {
	Slot int
	Err  error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("save slot %d: %v", e.Slot, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }

// LoadError wraps a failure to read or validate a snapshot, after the backup
// fallback was also exhausted.
type LoadError struct {
	Slot int
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load slot %d: %v", e.Slot, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
