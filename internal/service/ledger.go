package service

import (
	"fmt"
	"strings"
)

// Attendance status labels derived from the stored percentage.
const (
	AttendanceStatusGood    = "Good"
	AttendanceStatusAverage = "Average"
	AttendanceStatusPoor    = "Poor"
)

// FeeComponents are the seven amounts a fee payment is composed of.
type FeeComponents struct {
	Tuition     float64
	Lab         float64
	Sport       float64
	Computer    float64
	Maintenance float64
	Exam        float64
	Late        float64
}

// TotalFee sums the seven fee components. Input ranges are the caller's
// responsibility; nothing is clamped here.
func TotalFee(c FeeComponents) float64 {
	return c.Tuition + c.Lab + c.Sport + c.Computer + c.Maintenance + c.Exam + c.Late
}

// AttendancePercentage computes days present over working days as a
// percentage. A non-positive workingDays yields 0 rather than an error. The
// result is not clamped to [0,100].
func AttendancePercentage(daysPresent, workingDays int) float64 {
	if workingDays <= 0 {
		return 0
	}
	return float64(daysPresent) / float64(workingDays) * 100
}

// AttendanceStatus classifies a percentage: >=75 Good, >=50 Average,
// otherwise Poor.
func AttendanceStatus(percent float64) string {
	switch {
	case percent >= 75:
		return AttendanceStatusGood
	case percent >= 50:
		return AttendanceStatusAverage
	default:
		return AttendanceStatusPoor
	}
}

// ClassAverage returns the arithmetic mean of the percentages, 0 for an
// empty slice.
func ClassAverage(percentages []float64) float64 {
	if len(percentages) == 0 {
		return 0
	}
	var total float64
	for _, p := range percentages {
		total += p
	}
	return total / float64(len(percentages))
}

var (
	wordOnes  = []string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine"}
	wordTeens = []string{"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen"}
	wordTens  = []string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"}
)

// AmountToWords renders the integer part of a currency amount as English
// words for receipt text. The vocabulary stops at "Thousand"; amounts of
// 100,000 or more fall back to a raw numeric string.
func AmountToWords(amount float64) string {
	n := int64(amount)

	switch {
	case n == 0:
		return "Zero"
	case n < 1000:
		return strings.TrimSpace(wordsBelowThousand(int(n)))
	case n < 100000:
		result := wordsBelowThousand(int(n/1000)) + "Thousand "
		if remainder := int(n % 1000); remainder > 0 {
			result += wordsBelowThousand(remainder)
		}
		return strings.TrimSpace(result)
	default:
		return fmt.Sprintf("Amount: %.2f", amount)
	}
}

func wordsBelowThousand(num int) string {
	var result string
	if num >= 100 {
		result += wordOnes[num/100] + " Hundred "
		num %= 100
	}
	if num >= 20 {
		result += wordTens[num/10] + " "
		num %= 10
	} else if num >= 10 {
		result += wordTeens[num-10] + " "
		num = 0
	}
	if num > 0 {
		result += wordOnes[num] + " "
	}
	return result
}
