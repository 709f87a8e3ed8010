package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Tiliavir/timelog-editor/internal/model"
)

func testCatalog() model.Catalog {
	return model.Catalog{
		Categories: []model.Category{
			{ID: "work", Name: "Work", Activities: []model.Activity{{ID: "coding", Name: "Coding"}, {ID: "meeting", Name: "Meeting"}}},
			{ID: "sport", Name: "Sport", Activities: []model.Activity{{ID: "jogging", Name: "Jogging"}}},
		},
		Tasks:  []model.Task{{ID: "t1", Title: "Ship release"}},
		Scopes: []model.Scope{{ID: "health", Name: "Health"}},
	}
}

func TestCatalogLookups(t *testing.T) {
	c := testCatalog()

	task, ok := c.Task("t1")
	assert.True(t, ok)
	assert.Equal(t, "Ship release", task.Title)

	_, ok = c.Task("")
	assert.False(t, ok, "empty id never resolves")

	_, ok = c.Scope("missing")
	assert.False(t, ok)

	act, ok := c.Activity("sport", "jogging")
	assert.True(t, ok)
	assert.Equal(t, "Jogging", act.Name)

	_, ok = c.Activity("work", "jogging")
	assert.False(t, ok, "activity must belong to the given category")

	_, catID, ok := c.FindActivity("meeting")
	assert.True(t, ok)
	assert.Equal(t, "work", catID)
}

func TestDefaultSelection(t *testing.T) {
	cat, act := testCatalog().DefaultSelection()
	assert.Equal(t, "work", cat)
	assert.Equal(t, "coding", act)

	cat, act = model.Catalog{}.DefaultSelection()
	assert.Empty(t, cat)
	assert.Empty(t, act)
}

func TestActivityNameFallsBackToID(t *testing.T) {
	c := testCatalog()
	assert.Equal(t, "Coding", c.ActivityName("coding"))
	assert.Equal(t, "ghost", c.ActivityName("ghost"))
}
