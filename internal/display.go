package internal

import (
	"fmt"
	"strconv"
	"time"
)

// Ordinal returns n followed by its English ordinal suffix.
func Ordinal(n int) string {
	m := n % 100
	if m < 0 {
		m = -m
	}
	suffix := "th"
	if m < 11 || m > 13 {
		switch m % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}

// DisplayDate renders t as "Sep 19th".
func DisplayDate(t time.Time) string {
	return fmt.Sprintf("%s %s", t.Format("Jan"), Ordinal(t.Day()))
}

// DisplayClock renders t on a 12-hour clock without leading zero: "10AM",
// "1:30PM". Minutes are dropped on the hour.
func DisplayClock(t time.Time) string {
	if t.Minute() == 0 {
		return t.Format("3PM")
	}
	return t.Format("3:04PM")
}
