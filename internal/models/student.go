package models

import "time"

// Student is an enrollment record. StudentNumber is the natural key and is
// unique across every academic session, not just the one the row belongs to.
type Student struct {
	ID            uint      `gorm:"primaryKey" json:"-"`
	StudentNumber string    `gorm:"size:16;uniqueIndex;not null" json:"student_number"`
	FullName      string    `gorm:"size:255" json:"full_name"`
	RollNumber    string    `gorm:"size:32" json:"roll_number"`
	Class         string    `gorm:"size:32" json:"class"`
	Section       string    `gorm:"size:8" json:"section"`
	ParentName    string    `gorm:"size:255" json:"parent_name"`
	Gender        string    `gorm:"size:16" json:"gender"`
	DOB           string    `gorm:"size:16" json:"dob"`
	ParentNumber  string    `gorm:"size:32" json:"parent_number"`
	Address       string    `json:"address"`
	Session       string    `gorm:"size:16;index" json:"session"`
	CreatedAt     time.Time `json:"-"`
}
