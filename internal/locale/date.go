package locale

import (
	"regexp"
	"strconv"
	"time"
)

var dayMonthYear = regexp.MustCompile(`(\d{1,2})\.(\d{1,2})\.(\d{4}|\d{2})`)

// ParseDate finds the first D(D).M(M).Y(Y|YYY) occurrence in text and
// returns it as an ISO-8601 date. Two-digit years pivot at 50 (51 -> 1951,
// 49 -> 2049). Calendar-invalid components yield nil.
func ParseDate(text string) *string {
	m := dayMonthYear.FindStringSubmatch(text)
	if m == nil {
		return nil
	}

	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if len(m[3]) == 2 {
		if year > 50 {
			year += 1900
		} else {
			year += 2000
		}
	}

	if month < 1 || month > 12 || day < 1 || day > 31 {
		return nil
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return nil
	}

	iso := t.Format("2006-01-02")
	return &iso
}
