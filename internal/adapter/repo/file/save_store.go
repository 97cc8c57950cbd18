// Package file persists farm snapshots as JSON save slots on disk. Writes
// are atomic with a one-deep backup; reads validate against an embedded
// schema and fall back to the backup before failing.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"farmverse/internal/app/ports"
	"farmverse/internal/domain/farm"
)

const saveVersion = 1

const envelopeSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["metadata", "payload"],
  "properties": {
    "metadata": {
      "type": "object",
      "required": ["version", "timestamp"],
      "properties": {
        "version": {"type": "integer", "minimum": 1},
        "timestamp": {"type": "number"}
      }
    },
    "payload": {
      "type": "object",
      "required": ["day", "player", "soil"],
      "properties": {
        "day": {"type": "integer", "minimum": 0},
        "player": {"type": "object"},
        "soil": {"type": "object"},
        "plants": {"type": "array"}
      }
    }
  }
}`

type envelope struct {
	Metadata metadata      `json:"metadata"`
	Payload  farm.Snapshot `json:"payload"`
}

type metadata struct {
	Version   int   `json:"version"`
	Timestamp int64 `json:"timestamp"`
}

type Store struct {
	dir    string
	now    func() time.Time
	schema *jsonschema.Schema
}

func NewStore(dir string) (*Store, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("save_envelope.schema.json", strings.NewReader(envelopeSchema)); err != nil {
		return nil, fmt.Errorf("add save schema: %w", err)
	}
	schema, err := compiler.Compile("save_envelope.schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile save schema: %w", err)
	}
	return &Store{dir: dir, now: time.Now, schema: schema}, nil
}

// SetNow overrides the envelope timestamp source.
func (s *Store) SetNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Save writes the snapshot to its slot file: temp file in the same
// directory, fsync, back up any existing file to .bak, then rename.
func (s *Store) Save(_ context.Context, slot int, snapshot farm.Snapshot) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", &ports.SaveError{Slot: slot, Err: err}
	}

	env := envelope{
		Metadata: metadata{Version: saveVersion, Timestamp: s.now().Unix()},
		Payload:  snapshot,
	}
	b, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return "", &ports.SaveError{Slot: slot, Err: err}
	}

	tmp, err := os.CreateTemp(s.dir, "save_slot_*.tmp")
	if err != nil {
		return "", &ports.SaveError{Slot: slot, Err: err}
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return "", &ports.SaveError{Slot: slot, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return "", &ports.SaveError{Slot: slot, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return "", &ports.SaveError{Slot: slot, Err: err}
	}

	target := s.slotPath(slot)
	if _, err := os.Stat(target); err == nil {
		if err := copyFile(target, target+".bak"); err != nil {
			return "", &ports.SaveError{Slot: slot, Err: err}
		}
	}
	if err := os.Rename(tmpName, target); err != nil {
		return "", &ports.SaveError{Slot: slot, Err: err}
	}
	return target, nil
}

// Load reads and validates the slot file, falling back to the .bak sibling
// when the primary is missing or corrupt.
func (s *Store) Load(_ context.Context, slot int) (farm.Snapshot, error) {
	target := s.slotPath(slot)
	snap, primaryErr := s.readValidated(target)
	if primaryErr == nil {
		return snap, nil
	}
	if snap, bakErr := s.readValidated(target + ".bak"); bakErr == nil {
		return snap, nil
	}
	if errors.Is(primaryErr, fs.ErrNotExist) {
		return farm.Snapshot{}, &ports.LoadError{Slot: slot, Err: ports.ErrNotFound}
	}
	return farm.Snapshot{}, &ports.LoadError{Slot: slot, Err: primaryErr}
}

func (s *Store) ListSlots(_ context.Context) ([]ports.SlotInfo, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, "save_slot_*.json"))
	if err != nil {
		return nil, err
	}
	out := make([]ports.SlotInfo, 0, len(matches))
	for _, path := range matches {
		slot, ok := slotFromPath(path)
		if !ok {
			continue
		}
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		out = append(out, ports.SlotInfo{Slot: slot, Path: path, SavedAt: info.ModTime()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slot < out[j].Slot })
	return out, nil
}

func (s *Store) Delete(_ context.Context, slot int) error {
	target := s.slotPath(slot)
	err := os.Remove(target)
	if errors.Is(err, fs.ErrNotExist) {
		return ports.ErrNotFound
	}
	if err != nil {
		return err
	}
	_ = os.Remove(target + ".bak")
	return nil
}

// Dir returns the saves directory.
func (s *Store) Dir() string { return s.dir }

func (s *Store) slotPath(slot int) string {
	return filepath.Join(s.dir, fmt.Sprintf("save_slot_%d.json", slot))
}

func slotFromPath(path string) (int, bool) {
	base := filepath.Base(path)
	var slot int
	if _, err := fmt.Sscanf(base, "save_slot_%d.json", &slot); err != nil {
		return 0, false
	}
	return slot, true
}

func (s *Store) readValidated(path string) (farm.Snapshot, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return farm.Snapshot{}, err
	}
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return farm.Snapshot{}, fmt.Errorf("parse save file: %w", err)
	}
	if err := s.schema.Validate(raw); err != nil {
		return farm.Snapshot{}, fmt.Errorf("validate save file: %w", err)
	}
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return farm.Snapshot{}, fmt.Errorf("decode save file: %w", err)
	}
	return env.Payload, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
