package file

import (
	"archive/tar"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
)

// BundleManifest identifies one exported archive and the slots it carries.
type BundleManifest struct {
	BundleID  string `json:"bundle_id"`
	CreatedAt int64  `json:"created_at"`
	Slots     []int  `json:"slots"`
}

const manifestName = "manifest.json"

// Archiver streams every save slot as a zstd-compressed tar bundle with a
// manifest entry first.
type Archiver struct {
	Store *Store
	Now   func() time.Time
}

func (a Archiver) WriteBundle(ctx context.Context, w io.Writer) error {
	nowFn := a.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	slots, err := a.Store.ListSlots(ctx)
	if err != nil {
		return fmt.Errorf("list slots: %w", err)
	}

	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	tw := tar.NewWriter(enc)

	manifest := BundleManifest{
		BundleID:  uuid.NewString(),
		CreatedAt: nowFn().Unix(),
	}
	for _, s := range slots {
		manifest.Slots = append(manifest.Slots, s.Slot)
	}
	mb, err := json.Marshal(manifest)
	if err != nil {
		return err
	}
	if err := writeTarFile(tw, manifestName, mb, nowFn()); err != nil {
		return err
	}

	for _, s := range slots {
		b, err := os.ReadFile(s.Path)
		if err != nil {
			return fmt.Errorf("read slot %d: %w", s.Slot, err)
		}
		if err := writeTarFile(tw, filepath.Base(s.Path), b, s.SavedAt); err != nil {
			return err
		}
	}

	if err := tw.Close(); err != nil {
		return err
	}
	return enc.Close()
}

// ReadBundle parses an exported bundle back into its manifest and the raw
// save files keyed by name.
func ReadBundle(r io.Reader) (BundleManifest, map[string][]byte, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return BundleManifest{}, nil, err
	}
	defer dec.Close()

	var manifest BundleManifest
	files := make(map[string][]byte)
	tr := tar.NewReader(dec)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return BundleManifest{}, nil, err
		}
		b, err := io.ReadAll(tr)
		if err != nil {
			return BundleManifest{}, nil, err
		}
		if hdr.Name == manifestName {
			if err := json.Unmarshal(b, &manifest); err != nil {
				return BundleManifest{}, nil, fmt.Errorf("parse manifest: %w", err)
			}
			continue
		}
		files[hdr.Name] = b
	}
	if manifest.BundleID == "" {
		return BundleManifest{}, nil, fmt.Errorf("bundle has no manifest")
	}
	return manifest, files, nil
}

func writeTarFile(tw *tar.Writer, name string, b []byte, modTime time.Time) error {
	if err := tw.WriteHeader(&tar.Header{
		Name:    name,
		Mode:    0o644,
		Size:    int64(len(b)),
		ModTime: modTime,
	}); err != nil {
		return err
	}
	_, err := tw.Write(b)
	return err
}
