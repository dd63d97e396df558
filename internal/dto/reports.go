package dto

import "github.com/schoolworks/erp-engine/internal/models"

// FeeReceipt is the renderer-ready payload for a fee receipt: the stored
// ledger row plus the computed amount-in-words line. No currency symbols or
// localized formatting here.
type FeeReceipt struct {
	Payment       models.FeePayment `json:"payment"`
	AmountInWords string            `json:"amount_in_words"`
	SchoolInfo    SchoolInfo        `json:"school_info"`
}

// SalaryReceipt is the renderer-ready payload for a salary receipt.
type SalaryReceipt struct {
	Payment       models.SalaryPayment `json:"payment"`
	AmountInWords string               `json:"amount_in_words"`
	SchoolInfo    SchoolInfo           `json:"school_info"`
}

// FeeStatusRow is one line of the paid/unpaid fee reports.
type FeeStatusRow struct {
	StudentNumber string  `json:"student_number"`
	FullName      string  `json:"full_name"`
	Class         string  `json:"class"`
	Section       string  `json:"section"`
	ParentName    string  `json:"parent_name"`
	TotalAmount   float64 `json:"total_amount,omitempty"`
}

// DashboardStats aggregates the home-page figures for the active session.
type DashboardStats struct {
	Session           string  `json:"session"`
	TotalStudents     int64   `json:"total_students"`
	TotalStaff        int64   `json:"total_staff"`
	FeesCollected     float64 `json:"fees_collected"`
	SalariesPaid      float64 `json:"salaries_paid"`
	AverageAttendance float64 `json:"average_attendance"`
	CacheHit          bool    `json:"cache_hit"`
}
