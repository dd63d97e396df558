package models

import "time"

// Staff is an employment record keyed by the StaffID natural key.
type Staff struct {
	ID            uint      `gorm:"primaryKey" json:"-"`
	StaffID       string    `gorm:"size:16;uniqueIndex;not null" json:"staff_id"`
	Name          string    `gorm:"size:255" json:"name"`
	Phone         string    `gorm:"size:32" json:"phone"`
	Email         string    `gorm:"size:255" json:"email"`
	Designation   string    `gorm:"size:128" json:"designation"`
	Qualification string    `gorm:"size:128" json:"qualification"`
	Department    string    `gorm:"size:128" json:"department"`
	JoiningDate   string    `gorm:"size:16" json:"joining_date"`
	Salary        float64   `json:"salary"`
	Address       string    `json:"address"`
	Session       string    `gorm:"size:16;index" json:"session"`
	CreatedAt     time.Time `json:"-"`
}
