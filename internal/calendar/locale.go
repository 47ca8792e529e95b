package calendar

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/goodsign/monday"
)

// Locale renders calendar labels through monday's translation tables.
type Locale struct {
	Tag       string
	lang      monday.Locale
	monthYear string // layout for the grid heading
	longDate  string // layout for a selected day
	stamp     string // layout for ticket creation times
	listTitle string // fmt pattern wrapping the long date
	lower     bool   // month and weekday names are lower case in running text
}

var locales = map[string]Locale{
	"es": {
		Tag:       "es",
		lang:      monday.LocaleEsES,
		monthYear: "January 2006",
		longDate:  "Monday, 2 de January de 2006",
		stamp:     "2/1/2006, 15:04:05",
		listTitle: "Tickets para el %s",
		lower:     true,
	},
	"en": {
		Tag:       "en",
		lang:      monday.LocaleEnUS,
		monthYear: "January 2006",
		longDate:  "Monday, January 2, 2006",
		stamp:     "1/2/2006, 3:04:05 PM",
		listTitle: "Tickets for %s",
	},
}

// weekStart is a Monday; the grid header counts forward from it.
var weekStart = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// LookupLocale returns the locale for tag, falling back to Spanish.
func LookupLocale(tag string) Locale {
	if l, ok := locales[strings.ToLower(tag)]; ok {
		return l
	}
	return locales["es"]
}

func (l Locale) format(t time.Time, layout string) string {
	s := monday.Format(t, layout, l.lang)
	if l.lower {
		s = strings.ToLower(s)
	}
	return s
}

// MonthName returns the long month name.
func (l Locale) MonthName(m time.Month) string {
	return l.format(time.Date(2000, m, 1, 0, 0, 0, 0, time.UTC), "January")
}

// MonthLabel renders the calendar heading, e.g. "marzo 2024".
func (l Locale) MonthLabel(year int, month time.Month) string {
	return l.format(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), l.monthYear)
}

// LongDate renders a date key as a full date, e.g. "martes, 5 de marzo de 2024".
// Keys that do not parse are returned unchanged.
func (l Locale) LongDate(key string) string {
	t, err := time.Parse("2006-01-02", key)
	if err != nil {
		return key
	}
	return l.format(t, l.longDate)
}

// ListTitle heads the ticket list for a date key.
func (l Locale) ListTitle(key string) string {
	return fmt.Sprintf(l.listTitle, l.LongDate(key))
}

// WeekdayInitials returns the grid header, Monday first.
func (l Locale) WeekdayInitials() []string {
	out := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		name := monday.Format(weekStart.AddDate(0, 0, i), "Monday", l.lang)
		r, _ := utf8.DecodeRuneInString(name)
		out = append(out, strings.ToUpper(string(r)))
	}
	return out
}

// Timestamp renders t in loc the way the ticket list shows creation times.
func (l Locale) Timestamp(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return monday.Format(t.In(loc), l.stamp, l.lang)
}
