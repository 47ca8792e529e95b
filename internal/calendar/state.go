package calendar

import (
	"net/url"
	"strconv"
	"time"
)

// State is what the page is looking at: a month and a selected day. It is a
// value; every transition returns a new State and touches no stored data.
type State struct {
	Year     int
	Month    time.Month
	Selected string
}

// NewState starts on today's month with today selected.
func NewState(now time.Time) State {
	return State{
		Year:     now.Year(),
		Month:    now.Month(),
		Selected: DateKey(now.Year(), now.Month(), now.Day()),
	}
}

// Select changes the selected day. The visible month follows the selection.
func (s State) Select(date string) State {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return s
	}
	return State{Year: t.Year(), Month: t.Month(), Selected: date}
}

// PrevMonth moves the visible month back by one, keeping the selection.
func (s State) PrevMonth() State {
	return s.shift(-1)
}

// NextMonth moves the visible month forward by one, keeping the selection.
func (s State) NextMonth() State {
	return s.shift(1)
}

func (s State) shift(delta int) State {
	t := time.Date(s.Year, s.Month+time.Month(delta), 1, 0, 0, 0, 0, time.UTC)
	s.Year, s.Month = t.Year(), t.Month()
	return s
}

// Query encodes the state as page query parameters.
func (s State) Query() string {
	v := url.Values{}
	v.Set("year", strconv.Itoa(s.Year))
	v.Set("month", strconv.Itoa(int(s.Month)))
	v.Set("date", s.Selected)
	return v.Encode()
}

// StateFromQuery rebuilds a state from query values, falling back to def for
// anything missing or malformed. An explicit date without a month shows the
// month of that date.
func StateFromQuery(year, month, date string, def State) State {
	s := def
	if date != "" {
		s = s.Select(date)
	}
	y, yErr := strconv.Atoi(year)
	m, mErr := strconv.Atoi(month)
	if yErr == nil && mErr == nil && y > 0 && y < 10000 && m >= 1 && m <= 12 {
		s.Year, s.Month = y, time.Month(m)
	}
	return s
}
