package glucose

import (
	"fmt"
	"time"
)

// DefaultBuckets holds the canned daily values keyed by weeks back from
// today, oldest day first. There is no glucose history store yet, so any
// week outside this table shows the empty state.
var DefaultBuckets = map[int][]float64{
	0: {95, 120, 105, 145, 130, 110, 125},
	1: {115, 132, 98, 127, 140, 119, 105},
	2: {110, 128, 135, 142, 118, 105, 122},
}

// Selector picks the readings to display for a window.
type Selector struct {
	buckets map[int][]float64
}

func NewSelector() *Selector {
	return &Selector{buckets: DefaultBuckets}
}

// NewSelectorWithBuckets builds a selector over a custom table. Every
// bucket must carry exactly WindowDays values.
func NewSelectorWithBuckets(buckets map[int][]float64) (*Selector, error) {
	for weeksBack, values := range buckets {
		if len(values) != WindowDays {
			return nil, fmt.Errorf("bucket %d has %d values, want %d", weeksBack, len(values), WindowDays)
		}
	}
	return &Selector{buckets: buckets}, nil
}

// Select returns the readings for the window, in chronological order.
// A window without a bucket yields an empty, non-nil slice.
func (s *Selector) Select(w Window, today time.Time) []Reading {
	weeksBack := w.WeeksBack(today)
	values, ok := s.buckets[weeksBack]
	if !ok {
		return []Reading{}
	}

	readings := make([]Reading, 0, len(values))
	newest := weeksBack * WindowDays
	for i, v := range values {
		daysAgo := newest + len(values) - 1 - i
		readings = append(readings, Reading{Value: v, Date: today.AddDate(0, 0, -daysAgo)})
	}
	return readings
}
