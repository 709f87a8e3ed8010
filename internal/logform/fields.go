package logform

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Tiliavir/timelog-editor/internal/model"
	"github.com/Tiliavir/timelog-editor/internal/timecalc"
)

var (
	// ErrUnknownField is returned by UpdateField for a name it does not know.
	ErrUnknownField = errors.New("unknown field")
	// ErrFieldType is returned by UpdateField when the value has the wrong type.
	ErrFieldType = errors.New("wrong value type for field")
)

// Field names a single editable part of the snapshot.
type Field string

const (
	FieldCategory     Field = "category"
	FieldActivity     Field = "activity"
	FieldNote         Field = "note"
	FieldLinkedTask   Field = "linked_task"
	FieldProgress     Field = "progress_increment"
	FieldFocusScore   Field = "focus_score"
	FieldScopes       Field = "scopes"
	FieldImages       Field = "images"
	FieldComments     Field = "comments"
	FieldReactions    Field = "reactions"
	FieldCurrentStart Field = "current_start"
	FieldCurrentEnd   Field = "current_end"
)

// Patch is a batch update. Nil fields are left untouched.
type Patch struct {
	CategoryID        *string
	ActivityID        *string
	Note              *string
	LinkedTaskID      *string
	ProgressIncrement *int
	FocusScore        *int
	ScopeIDs          *[]string
	Images            *[]string
	Comments          *[]model.Comment
	Reactions         *[]string
	CurrentStart      *int64
	CurrentEnd        *int64
}

// UpdateField replaces one field. The track window cannot be changed.
func (s *Session) UpdateField(field Field, value any) error {
	var p Patch
	var ok bool
	switch field {
	case FieldCategory:
		p.CategoryID, ok = ptr[string](value)
	case FieldActivity:
		p.ActivityID, ok = ptr[string](value)
	case FieldNote:
		p.Note, ok = ptr[string](value)
	case FieldLinkedTask:
		p.LinkedTaskID, ok = ptr[string](value)
	case FieldProgress:
		p.ProgressIncrement, ok = ptr[int](value)
	case FieldFocusScore:
		p.FocusScore, ok = ptr[int](value)
	case FieldScopes:
		p.ScopeIDs, ok = ptr[[]string](value)
	case FieldImages:
		p.Images, ok = ptr[[]string](value)
	case FieldComments:
		p.Comments, ok = ptr[[]model.Comment](value)
	case FieldReactions:
		p.Reactions, ok = ptr[[]string](value)
	case FieldCurrentStart:
		p.CurrentStart, ok = ptr[int64](value)
	case FieldCurrentEnd:
		p.CurrentEnd, ok = ptr[int64](value)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	if !ok {
		return fmt.Errorf("%w %s: %T", ErrFieldType, field, value)
	}
	s.UpdateFields(p)
	return nil
}

func ptr[T any](v any) (*T, bool) {
	t, ok := v.(T)
	if !ok {
		return nil, false
	}
	return &t, true
}

// UpdateFields merges every non-nil field of p into the snapshot.
func (s *Session) UpdateFields(p Patch) {
	if p.CategoryID != nil {
		s.snap.CategoryID = *p.CategoryID
	}
	if p.ActivityID != nil {
		s.snap.ActivityID = *p.ActivityID
	}
	if p.Note != nil {
		s.snap.Note = *p.Note
	}
	if p.LinkedTaskID != nil {
		s.snap.LinkedTaskID = *p.LinkedTaskID
	}
	if p.ProgressIncrement != nil {
		s.snap.ProgressIncrement = max(0, *p.ProgressIncrement)
	}
	if p.FocusScore != nil {
		s.snap.FocusScore = clampFocus(*p.FocusScore)
	}
	if p.ScopeIDs != nil {
		s.snap.ScopeIDs = uniq(*p.ScopeIDs)
	}
	if p.Images != nil {
		s.snap.Images = slices.Clone(*p.Images)
	}
	if p.Comments != nil {
		s.snap.Comments = slices.Clone(*p.Comments)
	}
	if p.Reactions != nil {
		s.snap.Reactions = slices.Clone(*p.Reactions)
	}
	if p.CurrentStart != nil {
		s.snap.Range.CurrentStart = *p.CurrentStart
	}
	if p.CurrentEnd != nil {
		s.snap.Range.CurrentEnd = *p.CurrentEnd
	}
}

// clampFocus keeps 0 as "unset" and forces anything else into 1–5.
func clampFocus(v int) int {
	switch {
	case v <= 0:
		return 0
	case v > 5:
		return 5
	default:
		return v
	}
}

func uniq(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

// AddComment appends a comment stamped with the session clock.
func (s *Session) AddComment(content string) model.Comment {
	c := model.Comment{
		ID:        timecalc.GenerateID(),
		Content:   content,
		CreatedAt: timecalc.Millis(s.clock.Now()),
	}
	s.snap.Comments = append(slices.Clone(s.snap.Comments), c)
	return c
}

// EditComment replaces the content of a comment.
func (s *Session) EditComment(id, content string) bool {
	i := slices.IndexFunc(s.snap.Comments, func(c model.Comment) bool { return c.ID == id })
	if i < 0 {
		return false
	}
	s.snap.Comments = slices.Clone(s.snap.Comments)
	s.snap.Comments[i].Content = content
	return true
}

// DeleteComment removes a comment.
func (s *Session) DeleteComment(id string) bool {
	n := len(s.snap.Comments)
	s.snap.Comments = slices.DeleteFunc(slices.Clone(s.snap.Comments), func(c model.Comment) bool { return c.ID == id })
	return len(s.snap.Comments) != n
}

// ToggleReaction adds the token, or removes it if present. It reports whether
// the token is present afterwards.
func (s *Session) ToggleReaction(token string) bool {
	if slices.Contains(s.snap.Reactions, token) {
		s.snap.Reactions = slices.DeleteFunc(slices.Clone(s.snap.Reactions), func(r string) bool { return r == token })
		return false
	}
	s.snap.Reactions = append(slices.Clone(s.snap.Reactions), token)
	return true
}
