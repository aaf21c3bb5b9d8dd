package models

import "time"

// ShortlistEntry records a university a student is considering. Category
// is whatever label the student picked and is stored verbatim.
type ShortlistEntry struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId"`
	UniversityID int64     `json:"universityId"`
	Category     string    `json:"category,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type LockedEntry struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId"`
	UniversityID int64     `json:"universityId"`
	LockedAt     time.Time `json:"lockedAt"`
}

// ShortlistedUniversity pairs a catalog entry with the student's label.
type ShortlistedUniversity struct {
	University
	Category string `json:"category,omitempty"`
}
