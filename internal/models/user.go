package models

import "time"

// Stage tracks where a student is in the counselling journey.
type Stage string

const (
	StageOnboarding   Stage = "onboarding"
	StageDashboard    Stage = "dashboard"
	StageDiscovery    Stage = "discovery"
	StageShortlisting Stage = "shortlisting"
	StageApplication  Stage = "application"
)

type User struct {
	ID             int64      `json:"id"`
	Email          string     `json:"email"`
	HashedPassword string     `json:"-"`
	FullName       string     `json:"fullName"`
	IsOnboarded    bool       `json:"isOnboarded"`
	CurrentStage   Stage      `json:"currentStage"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      *time.Time `json:"updatedAt,omitempty"`
}
