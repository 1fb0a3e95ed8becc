package models

import "time"

const (
	MinVoteScore = 1
	MaxVoteScore = 5
)

// Vote records one collaborator's weekly score for a teammate. The
// composite key makes the ledger write-once: at most one vote per
// (voter, week, target), never updated, never deleted.
type Vote struct {
	VoterUsername  string    `gorm:"type:varchar(50);primarykey" json:"voter_username"`
	Week           string    `gorm:"type:varchar(10);primarykey" json:"week"`
	TargetUsername string    `gorm:"type:varchar(50);primarykey" json:"target_username"`
	Score          int       `gorm:"not null" json:"score"`
	CreatedAt      time.Time `json:"created_at"`
}
