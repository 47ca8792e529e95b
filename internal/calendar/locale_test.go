package calendar

import (
	"strings"
	"testing"
	"time"
)

func TestSpanishLabels(t *testing.T) {
	t.Parallel()
	es := LookupLocale("es")
	if got := es.MonthLabel(2024, time.March); got != "marzo 2024" {
		t.Errorf("MonthLabel = %q", got)
	}
	if got := es.LongDate("2024-03-05"); got != "martes, 5 de marzo de 2024" {
		t.Errorf("LongDate = %q", got)
	}
	if got := strings.Join(es.WeekdayInitials(), ""); got != "LMMJVSD" {
		t.Errorf("WeekdayInitials = %q", got)
	}
	if got := es.MonthName(time.September); got != "septiembre" {
		t.Errorf("MonthName = %q", got)
	}
	if got := es.LongDate("2024-01-03"); got != "miércoles, 3 de enero de 2024" {
		t.Errorf("LongDate with accent = %q", got)
	}
	if got := es.ListTitle("2024-03-05"); got != "Tickets para el martes, 5 de marzo de 2024" {
		t.Errorf("ListTitle = %q", got)
	}
}

func TestEnglishLabels(t *testing.T) {
	t.Parallel()
	en := LookupLocale("EN")
	if got := en.MonthLabel(2024, time.December); got != "December 2024" {
		t.Errorf("MonthLabel = %q", got)
	}
	if got := en.LongDate("2024-09-01"); got != "Sunday, September 1, 2024" {
		t.Errorf("LongDate = %q", got)
	}
	if got := strings.Join(en.WeekdayInitials(), ""); got != "MTWTFSS" {
		t.Errorf("WeekdayInitials = %q", got)
	}
	if got := en.ListTitle("2024-09-01"); got != "Tickets for Sunday, September 1, 2024" {
		t.Errorf("ListTitle = %q", got)
	}
}

func TestLookupLocaleFallsBackToSpanish(t *testing.T) {
	t.Parallel()
	if LookupLocale("fr").Tag != "es" {
		t.Fatal("unknown locale should fall back to es")
	}
	if got := LookupLocale("fr").LongDate("garbage"); got != "garbage" {
		t.Fatalf("LongDate(garbage) = %q", got)
	}
	if got := LookupLocale("fr").ListTitle("garbage"); got != "Tickets para el garbage" {
		t.Fatalf("ListTitle(garbage) = %q", got)
	}
}

func TestTimestamp(t *testing.T) {
	t.Parallel()
	ts := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)
	if got := LookupLocale("es").Timestamp(ts, nil); got != "5/3/2024, 14:07:09" {
		t.Errorf("es Timestamp = %q", got)
	}
	if got := LookupLocale("en").Timestamp(ts, time.UTC); got != "3/5/2024, 2:07:09 PM" {
		t.Errorf("en Timestamp = %q", got)
	}
	madrid := time.FixedZone("CET", 3600)
	if got := LookupLocale("es").Timestamp(ts, madrid); got != "5/3/2024, 15:07:09" {
		t.Errorf("es Timestamp in CET = %q", got)
	}
}
