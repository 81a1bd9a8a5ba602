package domain

import "time"

// DateLayout is the ISO calendar date format accepted by forms.
const DateLayout = "2006-01-02"

// naturalDateYearThreshold is the distance in days from which a due date
// is rendered with its year (five months).
const naturalDateYearThreshold = 5 * 365 / 12.0

// Today returns the local calendar date of now, as midnight UTC.
func Today(now time.Time) time.Time {
	return AsDate(now)
}

// AsDate drops the clock part of t, keeping its calendar date.
func AsDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return AsDate(t), nil
}

// FormatDate renders a date as YYYY-MM-DD, or "" for nil.
func FormatDate(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.Format(DateLayout)
}

// PlusOneDay returns due + 1 day, or today + 1 day when due is nil.
func PlusOneDay(due *time.Time, today time.Time) time.Time {
	base := AsDate(today)
	if due != nil {
		base = AsDate(*due)
	}
	return base.AddDate(0, 0, 1)
}

// IsOverdue reports whether due lies strictly before today.
func IsOverdue(due *time.Time, today time.Time) bool {
	if due == nil {
		return false
	}
	return AsDate(*due).Before(AsDate(today))
}

// HumanDueDate renders a due date relative to today: "Today", "Tomorrow",
// "Yesterday", "Jan 02" or, five months away or more, "Jan 02 2006".
func HumanDueDate(due *time.Time, today time.Time) string {
	if due == nil {
		return ""
	}
	d := AsDate(*due)
	days := int(d.Sub(AsDate(today)).Hours() / 24)

	switch days {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	case -1:
		return "Yesterday"
	}

	abs := days
	if abs < 0 {
		abs = -abs
	}
	layout := "Jan 02"
	if float64(abs) >= naturalDateYearThreshold {
		layout = "Jan 02 2006"
	}
	return d.Format(layout)
}
