package models

import "time"

// Payment status labels stored on fee ledger rows.
const (
	PaymentStatusFullPaid    = "Full Paid"
	PaymentStatusPartialPaid = "Partial Paid"
)

// FeePayment is an append-only ledger row for a fee collection. Student
// name/class/section/parent are snapshots taken at payment time. Receipt
// number uniqueness is enforced by the checked insert path in the
// repository rather than a database index, so that snapshot reconciliation
// can replay ledger rows verbatim.
type FeePayment struct {
	ID             uint      `gorm:"primaryKey" json:"-"`
	ReceiptNumber  string    `gorm:"size:16;index" json:"receipt_number"`
	StudentNumber  string    `gorm:"size:16;index" json:"student_number"`
	StudentName    string    `gorm:"size:255" json:"student_name"`
	Class          string    `gorm:"size:32" json:"class"`
	Section        string    `gorm:"size:8" json:"section"`
	ParentName     string    `gorm:"size:255" json:"parent_name"`
	Months         string    `json:"months"`
	PaymentDate    string    `gorm:"size:16" json:"payment_date"`
	TuitionFee     float64   `json:"tuition_fee"`
	LabFee         float64   `json:"lab_fee"`
	SportFee       float64   `json:"sport_fee"`
	ComputerFee    float64   `json:"computer_fee"`
	MaintenanceFee float64   `json:"maintenance_fee"`
	ExamFee        float64   `json:"exam_fee"`
	LateFee        float64   `json:"late_fee"`
	TotalAmount    float64   `json:"total_amount"`
	PaymentMode    string    `gorm:"size:32" json:"payment_mode"`
	PaymentStatus  string    `gorm:"size:32" json:"payment_status"`
	Session        string    `gorm:"size:16;index" json:"session"`
	CreatedAt      time.Time `json:"-"`
}
