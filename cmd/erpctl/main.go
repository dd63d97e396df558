package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/schoolworks/erp-engine/internal/config"
	"github.com/schoolworks/erp-engine/internal/database"
	"github.com/schoolworks/erp-engine/internal/dto"
	"github.com/schoolworks/erp-engine/internal/service"
)

const usage = `usage: erpctl <command> [flags]

commands:
  backup            export a snapshot of the record store
  restore           replay a snapshot back into the store
  restore-students  replay a student-only backup file
  restore-staff     replay a staff-only backup file
  add-student       enroll a student in the active session
  add-staff         add a staff member in the active session
  collect-fee       record a fee payment and print the receipt
  pay-salary        record a salary disbursement
  fee-status        list paid or unpaid students for a month
  mark-attendance   save one student's attendance for a month
  session           show or switch the active session
  school            show or update the stored school information
  stats             print dashboard aggregates (optionally on a timer)
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	db, err := database.ConnectSQLite(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("failed to open record store: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate record store: %v", err)
	}

	var cache *redis.Client
	if cfg.RedisURL != "" {
		cache, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer cache.Close()
	}

	ctx := context.Background()
	engine, err := buildEngine(ctx, cfg, db, cache, logger)
	if err != nil {
		log.Fatalf("failed to initialise engine: %v", err)
	}

	if err := run(ctx, engine, cfg, os.Args[1], os.Args[2:]); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(ctx context.Context, engine *engine, cfg config.Config, command string, args []string) error {
	switch command {
	case "backup":
		return runBackup(ctx, engine, cfg, args)
	case "restore":
		return runRestore(ctx, engine, args)
	case "restore-students":
		return runRestoreStudents(ctx, engine, args)
	case "restore-staff":
		return runRestoreStaff(ctx, engine, args)
	case "add-student":
		return runAddStudent(ctx, engine, args)
	case "add-staff":
		return runAddStaff(ctx, engine, args)
	case "collect-fee":
		return runCollectFee(ctx, engine, args)
	case "pay-salary":
		return runPaySalary(ctx, engine, args)
	case "fee-status":
		return runFeeStatus(ctx, engine, args)
	case "mark-attendance":
		return runMarkAttendance(ctx, engine, args)
	case "session":
		return runSession(ctx, engine, args)
	case "school":
		return runSchool(ctx, engine, args)
	case "stats":
		return runStats(ctx, engine, cfg, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func runBackup(ctx context.Context, engine *engine, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("backup", flag.ExitOnError)
	scope := fs.String("scope", string(service.ScopeCurrentSession), "backup scope: 'Complete Backup', 'Current Session Only' or 'Specific Month'")
	month := fs.String("month", "", "month name for the 'Specific Month' scope")
	dir := fs.String("dir", cfg.BackupDir, "directory to write the snapshot into")
	collection := fs.String("collection", "", "export a single collection instead: students or staff")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch *collection {
	case "students":
		path, count, err := engine.backup.ExportStudents(ctx, *dir)
		if err != nil {
			return err
		}
		fmt.Printf("exported %d students to %s\n", count, path)
		return nil
	case "staff":
		path, count, err := engine.backup.ExportStaff(ctx, *dir)
		if err != nil {
			return err
		}
		fmt.Printf("exported %d staff to %s\n", count, path)
		return nil
	case "":
	default:
		return fmt.Errorf("unknown collection %q", *collection)
	}

	result, err := engine.backup.Export(ctx, service.BackupScope(*scope), *month, *dir)
	if err != nil {
		return err
	}

	fmt.Printf("backup %s written to %s\n", result.RunID, result.Path)
	for collection, count := range result.Counts {
		fmt.Printf("  %s: %d\n", collection, count)
	}
	return nil
}

func runRestore(ctx context.Context, engine *engine, args []string) error {
	fs := flag.NewFlagSet("restore", flag.ExitOnError)
	file := fs.String("file", "", "snapshot file to restore")
	policy := fs.String("policy", string(service.PolicyOverride), "conflict policy: override or reset")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return fmt.Errorf("-file is required")
	}

	summary, err := engine.restore.RestoreSnapshot(ctx, *file, service.ConflictPolicy(*policy))
	if err != nil {
		return err
	}

	fmt.Printf("restored %d records (%d skipped)\n", summary.Total(), summary.Skipped)
	fmt.Printf("  students: %d\n  staff: %d\n  attendance: %d\n  salary_payments: %d\n  fee_payments: %d\n",
		summary.Students, summary.Staff, summary.Attendance, summary.SalaryPayments, summary.FeePayments)
	return nil
}

func runRestoreStudents(ctx context.Context, engine *engine, args []string) error {
	fs := flag.NewFlagSet("restore-students", flag.ExitOnError)
	file := fs.String("file", "", "student backup file to restore")
	filterType := fs.String("filter", dto.RestoreAllStudents, "filter: 'All Students', 'Specific Class' or 'Specific Section'")
	class := fs.String("class", "", "class for the 'Specific Class' filter")
	section := fs.String("section", "", "section for the 'Specific Section' filter")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return fmt.Errorf("-file is required")
	}

	restored, err := engine.restore.RestoreStudents(ctx, *file, dto.StudentRestoreFilter{
		Type:    *filterType,
		Class:   *class,
		Section: *section,
	})
	if err != nil {
		return err
	}

	fmt.Printf("restored %d students\n", restored)
	return nil
}

func runRestoreStaff(ctx context.Context, engine *engine, args []string) error {
	fs := flag.NewFlagSet("restore-staff", flag.ExitOnError)
	file := fs.String("file", "", "staff backup file to restore")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return fmt.Errorf("-file is required")
	}

	restored, err := engine.restore.RestoreStaff(ctx, *file)
	if err != nil {
		return err
	}

	fmt.Printf("restored %d staff members\n", restored)
	return nil
}

func runAddStudent(ctx context.Context, engine *engine, args []string) error {
	fs := flag.NewFlagSet("add-student", flag.ExitOnError)
	req := dto.StudentCreateRequest{}
	fs.StringVar(&req.FullName, "name", "", "student full name")
	fs.StringVar(&req.RollNumber, "roll", "", "roll number")
	fs.StringVar(&req.Class, "class", "", "class")
	fs.StringVar(&req.Section, "section", "", "section")
	fs.StringVar(&req.ParentName, "parent", "", "parent name")
	fs.StringVar(&req.Gender, "gender", "", "gender")
	fs.StringVar(&req.DOB, "dob", "", "date of birth (yyyy-mm-dd)")
	fs.StringVar(&req.ParentNumber, "phone", "", "parent phone number")
	fs.StringVar(&req.Address, "address", "", "address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	student, err := engine.students.Create(ctx, req)
	if err != nil {
		return err
	}

	fmt.Printf("student %s enrolled in session %s\n", student.StudentNumber, student.Session)
	return nil
}

func runAddStaff(ctx context.Context, engine *engine, args []string) error {
	fs := flag.NewFlagSet("add-staff", flag.ExitOnError)
	req := dto.StaffCreateRequest{}
	fs.StringVar(&req.Name, "name", "", "staff name")
	fs.StringVar(&req.Phone, "phone", "", "phone number")
	fs.StringVar(&req.Email, "email", "", "email")
	fs.StringVar(&req.Designation, "designation", "", "designation")
	fs.StringVar(&req.Qualification, "qualification", "", "qualification")
	fs.StringVar(&req.Department, "department", "", "department")
	fs.StringVar(&req.JoiningDate, "joined", "", "joining date (yyyy-mm-dd)")
	fs.Float64Var(&req.Salary, "salary", 0, "monthly salary")
	fs.StringVar(&req.Address, "address", "", "address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	member, err := engine.staff.Create(ctx, req)
	if err != nil {
		return err
	}

	fmt.Printf("staff %s added in session %s\n", member.StaffID, member.Session)
	return nil
}

func runCollectFee(ctx context.Context, engine *engine, args []string) error {
	fs := flag.NewFlagSet("collect-fee", flag.ExitOnError)
	req := dto.FeePaymentRequest{}
	months := fs.String("months", "", "comma-separated month names")
	fs.StringVar(&req.StudentNumber, "student", "", "student number")
	fs.StringVar(&req.ReceiptNumber, "receipt", "", "receipt number (allocated when blank)")
	fs.StringVar(&req.PaymentDate, "date", "", "payment date (yyyy-mm-dd)")
	fs.Float64Var(&req.TuitionFee, "tuition", 0, "tuition fee")
	fs.Float64Var(&req.LabFee, "lab", 0, "lab fee")
	fs.Float64Var(&req.SportFee, "sport", 0, "sport fee")
	fs.Float64Var(&req.ComputerFee, "computer", 0, "computer fee")
	fs.Float64Var(&req.MaintenanceFee, "maintenance", 0, "maintenance fee")
	fs.Float64Var(&req.ExamFee, "exam", 0, "exam fee")
	fs.Float64Var(&req.LateFee, "late", 0, "late fee")
	fs.StringVar(&req.PaymentMode, "mode", "Cash", "payment mode")
	fs.StringVar(&req.PaymentStatus, "status", "Full Paid", "'Full Paid' or 'Partial Paid'")
	if err := fs.Parse(args); err != nil {
		return err
	}
	for _, month := range strings.Split(*months, ",") {
		if month = strings.TrimSpace(month); month != "" {
			req.Months = append(req.Months, month)
		}
	}

	payment, err := engine.fees.RecordPayment(ctx, req)
	if err != nil {
		return err
	}

	receipt, err := engine.fees.Receipt(ctx, payment.ReceiptNumber)
	if err != nil {
		return err
	}

	fmt.Printf("receipt %s: %.2f (%s)\n", payment.ReceiptNumber, payment.TotalAmount, receipt.AmountInWords)
	return nil
}

func runPaySalary(ctx context.Context, engine *engine, args []string) error {
	fs := flag.NewFlagSet("pay-salary", flag.ExitOnError)
	req := dto.SalaryPaymentRequest{}
	fs.StringVar(&req.StaffID, "staff", "", "staff id")
	fs.Float64Var(&req.Amount, "amount", 0, "amount")
	fs.StringVar(&req.PaymentDate, "date", "", "payment date (yyyy-mm-dd)")
	fs.StringVar(&req.Month, "month", "", "month name")
	fs.StringVar(&req.Year, "year", "", "year")
	if err := fs.Parse(args); err != nil {
		return err
	}

	payment, err := engine.salaries.RecordPayment(ctx, req)
	if err != nil {
		return err
	}

	receipt, err := engine.salaries.Receipt(ctx, payment)
	if err != nil {
		return err
	}

	fmt.Printf("paid %s %.2f for %s %s (%s)\n",
		payment.StaffName, payment.Amount, payment.Month, payment.Year, receipt.AmountInWords)
	return nil
}

func runFeeStatus(ctx context.Context, engine *engine, args []string) error {
	fs := flag.NewFlagSet("fee-status", flag.ExitOnError)
	unpaid := fs.Bool("unpaid", false, "list unpaid students instead of paid")
	query := dto.FeeStatusQuery{}
	fs.StringVar(&query.Month, "month", "", "month name")
	fs.StringVar(&query.Class, "class", "All", "class filter")
	fs.StringVar(&query.Section, "section", "All", "section filter")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var rows []dto.FeeStatusRow
	var err error
	if *unpaid {
		rows, err = engine.fees.UnpaidStudents(ctx, query)
	} else {
		rows, err = engine.fees.PaidStudents(ctx, query)
	}
	if err != nil {
		return err
	}

	for _, row := range rows {
		fmt.Printf("%s\t%s\t%s-%s\t%s\n", row.StudentNumber, row.FullName, row.Class, row.Section, row.ParentName)
	}
	fmt.Printf("%d students\n", len(rows))
	return nil
}

func runMarkAttendance(ctx context.Context, engine *engine, args []string) error {
	fs := flag.NewFlagSet("mark-attendance", flag.ExitOnError)
	sheet := dto.AttendanceSheet{}
	student := fs.String("student", "", "student number")
	present := fs.Int("present", 0, "days present")
	fs.StringVar(&sheet.Class, "class", "", "class")
	fs.StringVar(&sheet.Section, "section", "", "section")
	fs.StringVar(&sheet.Month, "month", "", "month name")
	fs.StringVar(&sheet.Year, "year", "", "year")
	fs.IntVar(&sheet.WorkingDays, "working", 0, "working days in the month")
	if err := fs.Parse(args); err != nil {
		return err
	}
	sheet.Entries = []dto.AttendanceEntry{{StudentNumber: *student, DaysPresent: *present}}

	saved, err := engine.attendance.SaveSheet(ctx, sheet)
	if err != nil {
		return err
	}
	if saved == 0 {
		return fmt.Errorf("student %s not found in the active session", *student)
	}

	pct := service.AttendancePercentage(*present, sheet.WorkingDays)
	fmt.Printf("attendance saved: %.1f%% (%s)\n", pct, service.AttendanceStatus(pct))
	return nil
}

func runSession(ctx context.Context, engine *engine, args []string) error {
	fs := flag.NewFlagSet("session", flag.ExitOnError)
	set := fs.String("set", "", "switch the active session to this tag")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *set != "" {
		if err := engine.sessions.Switch(ctx, *set); err != nil {
			return err
		}
	}

	fmt.Printf("active session: %s\n", engine.sessions.Current())
	return nil
}

func runSchool(ctx context.Context, engine *engine, args []string) error {
	fs := flag.NewFlagSet("school", flag.ExitOnError)
	name := fs.String("name", "", "school name")
	address := fs.String("address", "", "school address")
	email := fs.String("email", "", "school email")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *name != "" || *address != "" || *email != "" {
		info, err := engine.settings.SchoolInfo(ctx)
		if err != nil {
			return err
		}
		if *name != "" {
			info.Name = *name
		}
		if *address != "" {
			info.Address = *address
		}
		if *email != "" {
			info.Email = *email
		}
		if err := engine.settings.UpdateSchoolInfo(ctx, info); err != nil {
			return err
		}
	}

	info, err := engine.settings.SchoolInfo(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("name: %s\naddress: %s\nemail: %s\n", info.Name, info.Address, info.Email)
	return nil
}

func runStats(ctx context.Context, engine *engine, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	watch := fs.Bool("watch", false, "keep refreshing on the configured interval")
	if err := fs.Parse(args); err != nil {
		return err
	}

	stats, err := engine.dashboard.Stats(ctx)
	if err != nil {
		return err
	}
	printStats(stats)

	if *watch {
		engine.dashboard.AutoRefresh(ctx, cfg.DashboardRefreshInterval, printStats)
	}
	return nil
}

func printStats(stats dto.DashboardStats) {
	fmt.Printf("session %s: %d students, %d staff, fees %.2f, salaries %.2f, attendance %.2f%%\n",
		stats.Session, stats.TotalStudents, stats.TotalStaff,
		stats.FeesCollected, stats.SalariesPaid, stats.AverageAttendance)
}
