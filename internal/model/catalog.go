package model

// Activity is a leaf of the category tree. Keywords drive note-based
// suggestions.
type Activity struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Icon     string   `json:"icon,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
}

// Category groups activities.
type Category struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Icon       string     `json:"icon,omitempty"`
	Activities []Activity `json:"activities"`
}

// Task is a todo item a log can be linked to.
type Task struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Completed        bool     `json:"completed,omitempty"`
	LinkedActivityID string   `json:"linked_activity_id,omitempty"`
	LinkedCategoryID string   `json:"linked_category_id,omitempty"`
	DefaultScopeIDs  []string `json:"default_scope_ids,omitempty"`
}

// Scope is a tag-like grouping orthogonal to categories, e.g. a life domain.
type Scope struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Icon     string   `json:"icon,omitempty"`
	Archived bool     `json:"archived,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
}

// AutoLinkRule maps an activity to a scope that should be suggested whenever
// the activity is selected.
type AutoLinkRule struct {
	ID         string `json:"id"`
	ActivityID string `json:"activity_id"`
	ScopeID    string `json:"scope_id"`
}

// Catalog bundles the read-only reference tables.
type Catalog struct {
	Categories []Category     `json:"categories"`
	Tasks      []Task         `json:"tasks"`
	Scopes     []Scope        `json:"scopes"`
	Rules      []AutoLinkRule `json:"auto_link_rules"`
}

// Task returns the task with the given id.
func (c Catalog) Task(id string) (Task, bool) {
	if id == "" {
		return Task{}, false
	}
	for _, t := range c.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// Scope returns the scope with the given id.
func (c Catalog) Scope(id string) (Scope, bool) {
	for _, s := range c.Scopes {
		if s.ID == id {
			return s, true
		}
	}
	return Scope{}, false
}

// Category returns the category with the given id.
func (c Catalog) Category(id string) (Category, bool) {
	for _, cat := range c.Categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return Category{}, false
}

// Activity looks up an activity inside the given category.
func (c Catalog) Activity(categoryID, activityID string) (Activity, bool) {
	cat, ok := c.Category(categoryID)
	if !ok {
		return Activity{}, false
	}
	for _, a := range cat.Activities {
		if a.ID == activityID {
			return a, true
		}
	}
	return Activity{}, false
}

// FindActivity searches all categories for an activity by id and returns it
// together with its owning category id.
func (c Catalog) FindActivity(activityID string) (Activity, string, bool) {
	for _, cat := range c.Categories {
		for _, a := range cat.Activities {
			if a.ID == activityID {
				return a, cat.ID, true
			}
		}
	}
	return Activity{}, "", false
}

// DefaultSelection returns the first category and its first activity, or
// empty ids when the catalog has none.
func (c Catalog) DefaultSelection() (categoryID, activityID string) {
	if len(c.Categories) == 0 {
		return "", ""
	}
	cat := c.Categories[0]
	if len(cat.Activities) > 0 {
		activityID = cat.Activities[0].ID
	}
	return cat.ID, activityID
}

// ActivityName returns a display label for an activity, falling back to the id.
func (c Catalog) ActivityName(activityID string) string {
	if a, _, ok := c.FindActivity(activityID); ok {
		return a.Name
	}
	return activityID
}
