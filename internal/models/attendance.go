package models

import "time"

// AttendanceRecord stores one student's attendance for a month. The store
// declares no constraint for it; the de facto upsert key is
// (student_number, month, year, session) and is enforced by callers.
type AttendanceRecord struct {
	ID            uint      `gorm:"primaryKey" json:"-"`
	StudentNumber string    `gorm:"size:16;index" json:"student_number"`
	Class         string    `gorm:"size:32" json:"class"`
	Section       string    `gorm:"size:8" json:"section"`
	Month         string    `gorm:"size:16" json:"month"`
	Year          string    `gorm:"size:8" json:"year"`
	WorkingDays   int       `json:"working_days"`
	DaysPresent   int       `json:"days_present"`
	Percentage    float64   `json:"percentage"`
	Session       string    `gorm:"size:16;index" json:"session"`
	CreatedAt     time.Time `json:"-"`
}
