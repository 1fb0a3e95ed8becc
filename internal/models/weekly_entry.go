package models

import "time"

// WeeklyEntry is one user's plan for one ISO week. At most one entry
// exists per (username, week); entries are created lazily and never
// deleted.
type WeeklyEntry struct {
	ID           uint64 `gorm:"primarykey" json:"id"`
	Username     string `gorm:"type:varchar(50);not null;uniqueIndex:idx_weekly_entries_user_week" json:"username"`
	Week         string `gorm:"type:varchar(10);not null;uniqueIndex:idx_weekly_entries_user_week;index" json:"week"`
	PlannedHours int    `gorm:"not null;default:0" json:"planned_hours"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	User  User   `gorm:"foreignKey:Username;references:Username" json:"user,omitempty"`
	Tasks []Task `gorm:"foreignKey:EntryID" json:"tasks,omitempty"`
}

// CompletedTaskCount counts tasks already loaded on the entry.
func (e *WeeklyEntry) CompletedTaskCount() int {
	n := 0
	for _, t := range e.Tasks {
		if t.Status == TaskStatusCompleted {
			n++
		}
	}
	return n
}
