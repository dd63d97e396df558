package models

import "time"

// SalaryPayment is an append-only ledger row. StaffName is a snapshot of the
// staff record at payment time and is never updated retroactively.
type SalaryPayment struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	StaffID     string    `gorm:"size:16;index" json:"staff_id"`
	StaffName   string    `gorm:"size:255" json:"staff_name"`
	Amount      float64   `json:"amount"`
	PaymentDate string    `gorm:"size:16" json:"payment_date"`
	Month       string    `gorm:"size:16" json:"month"`
	Year        string    `gorm:"size:8" json:"year"`
	Session     string    `gorm:"size:16;index" json:"session"`
	CreatedAt   time.Time `json:"-"`
}
