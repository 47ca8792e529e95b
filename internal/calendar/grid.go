// Package calendar builds the Monday-first month grid shown next to the
// ticket list and tracks which month and day the page is looking at.
package calendar

import (
	"fmt"
	"time"
)

// DayCell is one square of the month grid. Filler cells carry only a day
// number from the previous month and cannot be selected.
type DayCell struct {
	Day        int    `json:"day"`
	Date       string `json:"date,omitempty"`
	Filler     bool   `json:"filler"`
	HasTickets bool   `json:"hasTickets"`
	IsSelected bool   `json:"isSelected"`
}

// MonthGrid is the ordered cell sequence for a 7-column grid.
type MonthGrid struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Cells []DayCell  `json:"cells"`
}

// DaysInMonth returns the number of days in month of year.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekdayIndex returns the column of day 1 with Monday=0 ... Sunday=6.
func FirstWeekdayIndex(year int, month time.Month) int {
	wd := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday()
	return (int(wd) + 6) % 7
}

// DateKey formats a YYYY-MM-DD key.
func DateKey(year int, month time.Month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}

// BuildMonthGrid lays out month with leading filler from the previous month
// followed by one cell per day. Month values outside 1..12 are normalized the
// way time.Date does.
func BuildMonthGrid(year int, month time.Month, selectedDate string, datesWithTickets map[string]bool) MonthGrid {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	year, month = first.Year(), first.Month()

	leading := FirstWeekdayIndex(year, month)
	days := DaysInMonth(year, month)
	prevLast := time.Date(year, month, 0, 0, 0, 0, 0, time.UTC).Day()

	cells := make([]DayCell, 0, leading+days)
	for i := leading; i > 0; i-- {
		cells = append(cells, DayCell{Day: prevLast - i + 1, Filler: true})
	}
	for d := 1; d <= days; d++ {
		key := DateKey(year, month, d)
		cells = append(cells, DayCell{
			Day:        d,
			Date:       key,
			HasTickets: datesWithTickets[key],
			IsSelected: key == selectedDate,
		})
	}
	return MonthGrid{Year: year, Month: month, Cells: cells}
}

// LeadingFillers counts the filler cells at the start of the grid.
func (g MonthGrid) LeadingFillers() int {
	n := 0
	for _, c := range g.Cells {
		if !c.Filler {
			break
		}
		n++
	}
	return n
}

// Weeks splits the cells into rows of seven; the last row may be short.
func (g MonthGrid) Weeks() [][]DayCell {
	var weeks [][]DayCell
	for start := 0; start < len(g.Cells); start += 7 {
		end := min(start+7, len(g.Cells))
		weeks = append(weeks, g.Cells[start:end])
	}
	return weeks
}
