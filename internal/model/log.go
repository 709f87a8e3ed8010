package model

// Log is a persisted time log. Optional fields are omitted from JSON when
// empty; readers must treat an absent field and an empty one the same way.
type Log struct {
	ID                string    `json:"id"`
	CategoryID        string    `json:"category_id"`
	ActivityID        string    `json:"activity_id"`
	StartTime         int64     `json:"start_time"`
	EndTime           int64     `json:"end_time"`
	DurationSeconds   int64     `json:"duration_seconds"`
	Note              string    `json:"note,omitempty"`
	LinkedTaskID      string    `json:"linked_task_id,omitempty"`
	ProgressIncrement int       `json:"progress_increment,omitempty"`
	FocusScore        int       `json:"focus_score,omitempty"`
	ScopeIDs          []string  `json:"scope_ids,omitempty"`
	Images            []string  `json:"images,omitempty"`
	Comments          []Comment `json:"comments,omitempty"`
	Reactions         []string  `json:"reactions,omitempty"`
}

// Comment is a note attached to a log after the fact.
type Comment struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"created_at"`
}

// DayFile is the top-level structure stored in each daily JSON file.
type DayFile struct {
	Date string `json:"date"`
	Logs []Log  `json:"logs"`
}
