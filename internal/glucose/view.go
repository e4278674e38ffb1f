package glucose

import (
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// View is one patient's chart state: the window and the readings
// currently displayed for it.
type View struct {
	Window   Window
	Readings []Reading

	// openedOn is the calendar day the view was opened on. Readings are
	// dated relative to it, so the view is only valid for that day.
	openedOn time.Time
}

// NewView opens the chart on the current week.
func NewView(sel *Selector, today time.Time) View {
	w := CurrentWindow(today)
	return View{Window: w, Readings: sel.Select(w, today), openedOn: dateOf(today)}
}

// OpenedOn returns the day the view was opened on.
func (v View) OpenedOn() time.Time {
	return v.openedOn
}

// PreviousWeek moves back one week and replaces the readings.
func (v *View) PreviousWeek(sel *Selector, today time.Time) {
	v.Window = v.Window.Previous()
	v.Readings = sel.Select(v.Window, today)
}

// NextWeek moves forward one week unless that would pass today. A
// clamped move leaves the view untouched.
func (v *View) NextWeek(sel *Selector, today time.Time) bool {
	next, moved := v.Window.Next(today)
	if !moved {
		return false
	}
	v.Window = next
	v.Readings = sel.Select(v.Window, today)
	return true
}

// AddReading appends a reading to the displayed sequence. It is replaced
// along with everything else on the next navigation.
func (v *View) AddReading(value float64, at time.Time) Reading {
	r := Reading{Value: value, Date: at}
	v.Readings = append(v.Readings, r)
	return r
}

func (v View) clone() View {
	out := View{Window: v.Window, Readings: make([]Reading, len(v.Readings)), openedOn: v.openedOn}
	copy(out.Readings, v.Readings)
	return out
}

// ViewStore keeps the chart state per patient. The least recently used
// patients are evicted and come back on the current week, and so does
// every view once the day it was opened on has passed.
type ViewStore struct {
	mu       sync.Mutex
	views    *lru.Cache[string, View]
	selector *Selector
	now      func() time.Time
}

func NewViewStore(size int, sel *Selector) (*ViewStore, error) {
	cache, err := lru.New[string, View](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create view cache: %w", err)
	}
	return &ViewStore{views: cache, selector: sel, now: time.Now}, nil
}

// SetClock replaces the time source.
func (s *ViewStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *ViewStore) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now()
}

// Get returns a copy of the patient's view, opening one if needed.
func (s *ViewStore) Get(patientID string) View {
	return s.Update(patientID, func(*View, time.Time) {})
}

// Update applies fn to the patient's view under the store lock and
// returns a copy of the result.
func (s *ViewStore) Update(patientID string, fn func(v *View, today time.Time)) View {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.now()
	v, ok := s.views.Get(patientID)
	if !ok || !v.openedOn.Equal(dateOf(today)) {
		v = NewView(s.selector, today)
	}
	fn(&v, today)
	s.views.Add(patientID, v)
	return v.clone()
}

// Selector returns the selector the store navigates with.
func (s *ViewStore) Selector() *Selector {
	return s.selector
}

// Len is the number of cached patient views.
func (s *ViewStore) Len() int {
	return s.views.Len()
}
