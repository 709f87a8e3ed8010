package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"github.com/Tiliavir/timelog-editor/internal/timecalc"
)

// ImageStore keeps log attachments in a diskv tree under <base>/images,
// sharded by the first two characters of the filename.
type ImageStore struct {
	d    *diskv.Diskv
	base string
}

// NewImageStore opens (or creates lazily) the attachment store below base.
func NewImageStore(base string) *ImageStore {
	root := filepath.Join(base, "images")
	return &ImageStore{
		d: diskv.New(diskv.Options{
			BasePath:          root,
			AdvancedTransform: imageKeyToPath,
			InverseTransform:  imagePathToKey,
			CacheSizeMax:      4 * 1024 * 1024,
		}),
		base: root,
	}
}

func imageKeyToPath(key string) *diskv.PathKey {
	shard := key
	if len(shard) > 2 {
		shard = shard[:2]
	}
	return &diskv.PathKey{Path: []string{shard}, FileName: key}
}

func imagePathToKey(pk *diskv.PathKey) string {
	return pk.FileName
}

// Save stores data under a fresh filename that keeps the extension of name.
func (s *ImageStore) Save(_ context.Context, name string, data []byte) (string, error) {
	filename := timecalc.GenerateID() + strings.ToLower(filepath.Ext(name))
	if err := s.d.Write(filename, data); err != nil {
		return "", fmt.Errorf("storage error writing image %s: %w", filename, err)
	}
	return filename, nil
}

// Delete removes an attachment. Deleting a missing attachment is not an error.
func (s *ImageStore) Delete(_ context.Context, filename string) error {
	if !s.d.Has(filename) {
		return nil
	}
	if err := s.d.Erase(filename); err != nil {
		return fmt.Errorf("storage error deleting image %s: %w", filename, err)
	}
	return nil
}

// Resolve returns a file:// URL for an attachment, or "" when it is missing.
func (s *ImageStore) Resolve(_ context.Context, filename string) (string, error) {
	if filename == "" || !s.d.Has(filename) {
		return "", nil
	}
	pk := imageKeyToPath(filename)
	p := filepath.Join(append([]string{s.base}, append(pk.Path, pk.FileName)...)...)
	return "file://" + filepath.ToSlash(p), nil
}
