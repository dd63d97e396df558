package dto

// StudentCreateRequest carries the fields of the add-student flow. The
// student number is optional; a blank value makes the service allocate one.
type StudentCreateRequest struct {
	StudentNumber string `json:"student_number"`
	FullName      string `json:"full_name" validate:"required"`
	RollNumber    string `json:"roll_number" validate:"required"`
	Class         string `json:"class"`
	Section       string `json:"section"`
	ParentName    string `json:"parent_name" validate:"required"`
	Gender        string `json:"gender"`
	DOB           string `json:"dob"`
	ParentNumber  string `json:"parent_number" validate:"required"`
	Address       string `json:"address" validate:"required"`
}

// StudentListRequest filters a session-scoped student listing.
type StudentListRequest struct {
	Search  string `json:"search"`
	Class   string `json:"class"`
	Section string `json:"section"`
}

// StaffCreateRequest carries the fields of the add-staff flow.
type StaffCreateRequest struct {
	StaffID       string  `json:"staff_id"`
	Name          string  `json:"name" validate:"required"`
	Phone         string  `json:"phone" validate:"required"`
	Email         string  `json:"email"`
	Designation   string  `json:"designation" validate:"required"`
	Qualification string  `json:"qualification"`
	Department    string  `json:"department"`
	JoiningDate   string  `json:"joining_date"`
	Salary        float64 `json:"salary" validate:"gte=0"`
	Address       string  `json:"address"`
}

// StaffListRequest filters a session-scoped staff listing.
type StaffListRequest struct {
	Search string `json:"search"`
}

// AttendanceEntry is one student's row on an attendance sheet.
type AttendanceEntry struct {
	StudentNumber string `json:"student_number" validate:"required"`
	DaysPresent   int    `json:"days_present" validate:"gte=0"`
}

// AttendanceSheet is a whole-class attendance save: one upsert per entry
// keyed by (student_number, month, year, session).
type AttendanceSheet struct {
	Class       string            `json:"class" validate:"required"`
	Section     string            `json:"section" validate:"required"`
	Month       string            `json:"month" validate:"required"`
	Year        string            `json:"year" validate:"required"`
	WorkingDays int               `json:"working_days" validate:"gte=0"`
	Entries     []AttendanceEntry `json:"entries" validate:"required,dive"`
}

// FeePaymentRequest records a fee collection for a student. The total is
// always recomputed from the components; a blank receipt number makes the
// service allocate one.
type FeePaymentRequest struct {
	ReceiptNumber  string   `json:"receipt_number"`
	StudentNumber  string   `json:"student_number" validate:"required"`
	Months         []string `json:"months" validate:"required,min=1"`
	PaymentDate    string   `json:"payment_date" validate:"required"`
	TuitionFee     float64  `json:"tuition_fee" validate:"gte=0"`
	LabFee         float64  `json:"lab_fee" validate:"gte=0"`
	SportFee       float64  `json:"sport_fee" validate:"gte=0"`
	ComputerFee    float64  `json:"computer_fee" validate:"gte=0"`
	MaintenanceFee float64  `json:"maintenance_fee" validate:"gte=0"`
	ExamFee        float64  `json:"exam_fee" validate:"gte=0"`
	LateFee        float64  `json:"late_fee" validate:"gte=0"`
	PaymentMode    string   `json:"payment_mode" validate:"required"`
	PaymentStatus  string   `json:"payment_status" validate:"required,oneof='Full Paid' 'Partial Paid'"`
}

// SalaryPaymentRequest records a salary disbursement for a staff member.
type SalaryPaymentRequest struct {
	StaffID     string  `json:"staff_id" validate:"required"`
	Amount      float64 `json:"amount" validate:"gt=0"`
	PaymentDate string  `json:"payment_date" validate:"required"`
	Month       string  `json:"month" validate:"required"`
	Year        string  `json:"year" validate:"required"`
}

// FeeStatusQuery selects students by month and optional class/section for
// the paid/unpaid fee reports. "All" (or blank) disables a filter.
type FeeStatusQuery struct {
	Month   string `json:"month" validate:"required"`
	Class   string `json:"class"`
	Section string `json:"section"`
}
