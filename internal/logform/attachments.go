package logform

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

// ErrNoImageStore is returned by attachment operations when the session was
// opened without an ImageStore.
var ErrNoImageStore = errors.New("no image store configured")

// ImageStore persists attachment data outside the log record.
type ImageStore interface {
	// Save stores data and returns the filename the log should reference.
	Save(ctx context.Context, name string, data []byte) (string, error)
	// Delete removes a stored attachment.
	Delete(ctx context.Context, filename string) error
	// Resolve returns a displayable URL, or "" with a nil error when nothing
	// is stored under filename.
	Resolve(ctx context.Context, filename string) (string, error)
}

// AddImage stores an attachment and references it from the form.
func (s *Session) AddImage(ctx context.Context, name string, data []byte) (string, error) {
	if s.images == nil {
		return "", ErrNoImageStore
	}
	filename, err := s.images.Save(ctx, name, data)
	if err != nil {
		return "", fmt.Errorf("saving attachment %s: %w", name, err)
	}
	s.snap.Images = append(slices.Clone(s.snap.Images), filename)
	return filename, nil
}

// RemoveImage deletes an attachment and drops its reference.
func (s *Session) RemoveImage(ctx context.Context, filename string) error {
	if s.images == nil {
		return ErrNoImageStore
	}
	if err := s.images.Delete(ctx, filename); err != nil {
		return fmt.Errorf("deleting attachment %s: %w", filename, err)
	}
	s.snap.Images = slices.DeleteFunc(slices.Clone(s.snap.Images), func(f string) bool { return f == filename })
	if s.existing != nil && s.onImageRemoved != nil {
		s.onImageRemoved(s.existing.ID, filename)
	}
	return nil
}

// ResolveImages maps every referenced attachment to a displayable URL.
// References with no stored data are dropped from the form. Lookup failures
// keep the reference so a later pass can retry.
func (s *Session) ResolveImages(ctx context.Context) map[string]string {
	if s.images == nil || len(s.snap.Images) == 0 {
		return map[string]string{}
	}
	urls := make(map[string]string, len(s.snap.Images))
	var missing []string
	for _, f := range s.snap.Images {
		url, err := s.images.Resolve(ctx, f)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Str("image", f).Msg("resolving attachment failed")
		case url == "":
			missing = append(missing, f)
		default:
			urls[f] = url
		}
	}
	if len(missing) > 0 {
		s.log.Info().Strs("images", missing).Str("log", s.id).Msg("dropping missing attachments")
		s.snap.Images = slices.DeleteFunc(slices.Clone(s.snap.Images), func(f string) bool {
			return slices.Contains(missing, f)
		})
	}
	return urls
}
