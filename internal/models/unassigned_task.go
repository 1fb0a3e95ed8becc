package models

import "time"

// UnassignedTask lives in the global pool until a collaborator claims
// it into their current-week plan or an admin retracts it. AddedBy is
// the creator's display name; WeekAdded records when it was published.
type UnassignedTask struct {
	ID          string    `gorm:"type:varchar(36);primarykey" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Project     string    `gorm:"type:varchar(100);not null" json:"project"`
	AddedBy     string    `gorm:"type:varchar(255);not null" json:"added_by"`
	WeekAdded   string    `gorm:"type:varchar(10);not null" json:"week_added"`
	CreatedAt   time.Time `json:"created_at"`
}
