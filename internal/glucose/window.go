package glucose

import (
	"fmt"
	"time"
)

// WindowDays is the length of the chart window.
const WindowDays = 7

// Window is the 7-day range shown on the chart. Start and End are
// calendar dates (midnight) and End is always Start plus six days.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// CurrentWindow returns the week ending today.
func CurrentWindow(today time.Time) Window {
	end := dateOf(today)
	return Window{Start: end.AddDate(0, 0, -(WindowDays - 1)), End: end}
}

// Previous moves both bounds back one week. There is no lower bound.
func (w Window) Previous() Window {
	return Window{Start: w.Start.AddDate(0, 0, -WindowDays), End: w.End.AddDate(0, 0, -WindowDays)}
}

// Next moves both bounds forward one week unless the new start would be
// after today, in which case the window is returned unchanged and moved
// is false.
func (w Window) Next(today time.Time) (next Window, moved bool) {
	if !w.CanAdvance(today) {
		return w, false
	}
	return Window{Start: w.Start.AddDate(0, 0, WindowDays), End: w.End.AddDate(0, 0, WindowDays)}, true
}

// CanAdvance reports whether Next would move the window.
func (w Window) CanAdvance(today time.Time) bool {
	return !w.Start.AddDate(0, 0, WindowDays).After(dateOf(today))
}

// WeeksBack is the number of whole weeks between the window start and
// today. It is negative when the window starts after today.
func (w Window) WeeksBack(today time.Time) int {
	return floorDiv(daysBetween(w.Start, today), WindowDays)
}

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// Label renders the range the way the chart header shows it,
// e.g. "13 de octubre al 19 de octubre".
func (w Window) Label() string {
	return fmt.Sprintf("%s al %s", spanishDay(w.Start), spanishDay(w.End))
}

func spanishDay(t time.Time) string {
	return fmt.Sprintf("%d de %s", t.Day(), spanishMonths[t.Month()-1])
}

// dateOf truncates t to midnight in its own location.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// daysBetween counts calendar days from a to b. Both dates are compared
// in UTC so DST shifts never produce a fractional day.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
