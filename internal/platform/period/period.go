package period

import (
	"fmt"
	"time"
)

// Period is an inclusive reporting window.
type Period struct {
	From time.Time
	To   time.Time
}

func New(from, to time.Time) (Period, error) {
	if to.Before(from) {
		return Period{}, fmt.Errorf("period end %s is before start %s", to.Format(time.RFC3339), from.Format(time.RFC3339))
	}
	return Period{From: from, To: to}, nil
}

func (p Period) Contains(ts time.Time) bool {
	return !ts.Before(p.From) && !ts.After(p.To)
}

func StartOfDay(ts time.Time) time.Time {
	y, m, d := ts.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, ts.Location())
}

func EndOfDay(ts time.Time) time.Time {
	y, m, d := ts.Date()
	return time.Date(y, m, d, 23, 59, 59, 999_000_000, ts.Location())
}
