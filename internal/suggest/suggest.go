// Package suggest derives activity and scope suggestions for a log from a
// linked task, auto-link rules and keywords found in the note.
//
// Compute is a pure function of its inputs and is meant to be re-run on every
// change of the form; nothing is cached between calls.
package suggest

import (
	"slices"
	"strings"

	"github.com/Tiliavir/timelog-editor/internal/model"
)

// Reason explains why a suggestion was produced.
type Reason string

const (
	ReasonLinkedTask   Reason = "linked-task"
	ReasonKeywordMatch Reason = "keyword-match"
	ReasonAutoRule     Reason = "auto-rule"
)

// Input is the part of the form snapshot suggestions depend on.
type Input struct {
	LinkedTaskID       string
	Note               string
	SelectedActivityID string
	SelectedScopeIDs   []string
}

// ActivitySuggestion proposes a different activity for the log.
type ActivitySuggestion struct {
	ID             string
	CategoryID     string
	Name           string
	Icon           string
	Reason         Reason
	MatchedKeyword string
}

// ScopeSuggestion proposes an additional scope for the log.
type ScopeSuggestion struct {
	ID     string
	Name   string
	Icon   string
	Reason Reason
}

// Suggestions is the result of one Compute call.
type Suggestions struct {
	Activity *ActivitySuggestion
	Scopes   []ScopeSuggestion
}

// activitySource yields at most one candidate; sources are tried in order and
// the first hit wins.
type activitySource func(in Input, c model.Catalog) (ActivitySuggestion, bool)

// scopeSource offers candidates to the shared accumulator.
type scopeSource func(in Input, c model.Catalog, acc *scopeSet)

var (
	activitySources = []activitySource{activityFromTask, activityFromKeywords}
	scopeSources    = []scopeSource{scopesFromTask, scopesFromRules, scopesFromKeywords}
)

// Compute returns the suggestions for the given form input.
func Compute(in Input, c model.Catalog) Suggestions {
	var out Suggestions
	for _, src := range activitySources {
		if a, ok := src(in, c); ok {
			out.Activity = &a
			break
		}
	}

	acc := newScopeSet(in.SelectedScopeIDs)
	for _, src := range scopeSources {
		src(in, c, acc)
	}
	out.Scopes = acc.list()
	return out
}

func activityFromTask(in Input, c model.Catalog) (ActivitySuggestion, bool) {
	task, ok := c.Task(in.LinkedTaskID)
	if !ok || task.LinkedActivityID == "" || task.LinkedCategoryID == "" {
		return ActivitySuggestion{}, false
	}
	if task.LinkedActivityID == in.SelectedActivityID {
		return ActivitySuggestion{}, false
	}
	cat, ok := c.Category(task.LinkedCategoryID)
	if !ok {
		return ActivitySuggestion{}, false
	}
	act, ok := c.Activity(cat.ID, task.LinkedActivityID)
	if !ok {
		return ActivitySuggestion{}, false
	}
	return ActivitySuggestion{
		ID:         act.ID,
		CategoryID: cat.ID,
		Name:       act.Name,
		Icon:       act.Icon,
		Reason:     ReasonLinkedTask,
	}, true
}

func activityFromKeywords(in Input, c model.Catalog) (ActivitySuggestion, bool) {
	if in.Note == "" {
		return ActivitySuggestion{}, false
	}
	for _, cat := range c.Categories {
		for _, act := range cat.Activities {
			if act.ID == in.SelectedActivityID {
				continue
			}
			if kw, ok := firstKeyword(in.Note, act.Keywords); ok {
				return ActivitySuggestion{
					ID:             act.ID,
					CategoryID:     cat.ID,
					Name:           act.Name,
					Icon:           act.Icon,
					Reason:         ReasonKeywordMatch,
					MatchedKeyword: kw,
				}, true
			}
		}
	}
	return ActivitySuggestion{}, false
}

func scopesFromTask(in Input, c model.Catalog, acc *scopeSet) {
	task, ok := c.Task(in.LinkedTaskID)
	if !ok {
		return
	}
	for _, id := range task.DefaultScopeIDs {
		if s, ok := c.Scope(id); ok {
			acc.offer(s, ReasonLinkedTask)
		}
	}
}

func scopesFromRules(in Input, c model.Catalog, acc *scopeSet) {
	for _, rule := range c.Rules {
		if rule.ActivityID != in.SelectedActivityID {
			continue
		}
		if s, ok := c.Scope(rule.ScopeID); ok {
			acc.offer(s, ReasonAutoRule)
		}
	}
}

func scopesFromKeywords(in Input, c model.Catalog, acc *scopeSet) {
	if in.Note == "" {
		return
	}
	for _, s := range c.Scopes {
		if _, ok := firstKeyword(in.Note, s.Keywords); ok {
			acc.offer(s, ReasonKeywordMatch)
		}
	}
}

// firstKeyword returns the first keyword contained in note. Matching is
// case-sensitive substring containment. Empty keywords never match.
func firstKeyword(note string, keywords []string) (string, bool) {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(note, kw) {
			return kw, true
		}
	}
	return "", false
}

// scopeSet is an insertion-ordered set of scope suggestions. The first offer
// for an id wins; ids the user already selected are rejected.
type scopeSet struct {
	selected []string
	seen     map[string]struct{}
	items    []ScopeSuggestion
}

func newScopeSet(selected []string) *scopeSet {
	return &scopeSet{selected: selected, seen: map[string]struct{}{}}
}

func (s *scopeSet) offer(scope model.Scope, reason Reason) {
	if slices.Contains(s.selected, scope.ID) {
		return
	}
	if _, dup := s.seen[scope.ID]; dup {
		return
	}
	s.seen[scope.ID] = struct{}{}
	s.items = append(s.items, ScopeSuggestion{
		ID:     scope.ID,
		Name:   scope.Name,
		Icon:   scope.Icon,
		Reason: reason,
	})
}

func (s *scopeSet) list() []ScopeSuggestion {
	return s.items
}
