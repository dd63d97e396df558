package dto

import "github.com/schoolworks/erp-engine/internal/models"

// SchoolInfo is the global school identity carried in snapshot metadata.
type SchoolInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Email   string `json:"email"`
}

// Snapshot is the portable backup document: scope metadata plus one flat
// array per collection. Surrogate row ids never appear; the record models
// drop them from JSON.
type Snapshot struct {
	BackupType     string                    `json:"backup_type"`
	BackupDate     string                    `json:"backup_date"`
	Session        string                    `json:"session"`
	SchoolInfo     SchoolInfo                `json:"school_info"`
	Students       []models.Student          `json:"students"`
	Staff          []models.Staff            `json:"staff"`
	Attendance     []models.AttendanceRecord `json:"attendance"`
	SalaryPayments []models.SalaryPayment    `json:"salary_payments"`
	FeePayments    []models.FeePayment       `json:"fee_payments"`
}

// ExportResult describes a completed export run.
type ExportResult struct {
	RunID  string         `json:"run_id"`
	Path   string         `json:"path"`
	Counts map[string]int `json:"counts"`
}

// RestoreSummary reports how many records a reconciliation applied per
// collection. Per-record failures increment Skipped instead of aborting.
type RestoreSummary struct {
	Students       int `json:"students"`
	Staff          int `json:"staff"`
	Attendance     int `json:"attendance"`
	SalaryPayments int `json:"salary_payments"`
	FeePayments    int `json:"fee_payments"`
	Skipped        int `json:"skipped"`
}

// Total returns the number of records applied across all collections.
func (s RestoreSummary) Total() int {
	return s.Students + s.Staff + s.Attendance + s.SalaryPayments + s.FeePayments
}

// Student restore filter types.
const (
	RestoreAllStudents     = "All Students"
	RestoreSpecificClass   = "Specific Class"
	RestoreSpecificSection = "Specific Section"
)

// StudentRestoreFilter narrows the student-only restore path. Rows that do
// not match are skipped, never rejected.
type StudentRestoreFilter struct {
	Type    string
	Class   string
	Section string
}

// Matches reports whether a student row passes the filter.
func (f StudentRestoreFilter) Matches(student models.Student) bool {
	switch f.Type {
	case RestoreSpecificClass:
		return student.Class == f.Class
	case RestoreSpecificSection:
		return student.Section == f.Section
	default:
		return true
	}
}
