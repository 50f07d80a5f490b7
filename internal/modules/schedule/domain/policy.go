package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	settingsdomain "reflexum/internal/modules/settings/domain"
	"reflexum/internal/platform/period"
)

type Frequency string

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
)

var reportTimePattern = regexp.MustCompile(`^([01]?\d|2[0-3]):([0-5]\d)$`)

type ReportTime struct {
	Hour   int
	Minute int
}

func ParseReportTime(value string) (ReportTime, error) {
	m := reportTimePattern.FindStringSubmatch(value)
	if m == nil {
		return ReportTime{}, fmt.Errorf("report time %q is not HH:mm", value)
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	return ReportTime{Hour: hour, Minute: minute}, nil
}

// Policy is the auto-report state held in settings. LastSent is nil until
// the first successful send.
type Policy struct {
	Enabled         bool
	TelegramEnabled bool
	Frequency       Frequency
	At              ReportTime
	LastSent        *time.Time
	Location        *time.Location
}

// PolicyFromSettings fails on a malformed time, frequency, timezone or last-sent stamp.
func PolicyFromSettings(s settingsdomain.Settings) (Policy, error) {
	at, err := ParseReportTime(s.AutoReportTime)
	if err != nil {
		return Policy{}, err
	}
	frequency := Frequency(s.AutoReportFrequency)
	switch frequency {
	case Daily, Weekly, Monthly:
	default:
		return Policy{}, fmt.Errorf("unknown auto report frequency %q", s.AutoReportFrequency)
	}
	loc, err := s.Location()
	if err != nil {
		return Policy{}, err
	}
	lastSent, err := s.LastSent()
	if err != nil {
		return Policy{}, err
	}
	return Policy{
		Enabled:         s.AutoReportEnabled,
		TelegramEnabled: s.TelegramEnabled,
		Frequency:       frequency,
		At:              at,
		LastSent:        lastSent,
		Location:        loc,
	}, nil
}

func (p Policy) location() *time.Location {
	if p.Location == nil {
		return time.Local
	}
	return p.Location
}

// ShouldFire compares only the hour of the configured time; the minute is ignored.
func (p Policy) ShouldFire(now time.Time) bool {
	fire, _ := p.Decide(now)
	return fire
}

// Decide is ShouldFire with a short reason for status output.
func (p Policy) Decide(now time.Time) (bool, string) {
	if !p.Enabled {
		return false, "auto report disabled"
	}
	if !p.TelegramEnabled {
		return false, "telegram disabled"
	}
	now = now.In(p.location())
	if now.Hour() < p.At.Hour {
		return false, fmt.Sprintf("before %02d:00", p.At.Hour)
	}
	if p.LastSent == nil {
		return true, "never sent"
	}
	last := p.LastSent.In(p.location())

	switch p.Frequency {
	case Daily:
		reference := period.StartOfDay(now.AddDate(0, 0, -1))
		if !last.Before(reference) {
			return false, "already sent since " + reference.Format("2006-01-02")
		}
		return true, "daily report due"
	case Weekly:
		if now.Weekday() != time.Sunday {
			return false, "weekly reports go out on Sunday"
		}
		reference := period.StartOfDay(now)
		if !last.Before(reference) {
			return false, "already sent this Sunday"
		}
		return true, "weekly report due"
	case Monthly:
		if !isLastDayOfMonth(now) {
			return false, "monthly reports go out on the last day of the month"
		}
		reference := period.EndOfDay(firstOfMonth(now).AddDate(0, 0, -1))
		if !last.Before(reference) {
			return false, "already sent this month"
		}
		return true, "monthly report due"
	default:
		return false, fmt.Sprintf("unknown frequency %q", p.Frequency)
	}
}

// Window is the period a fired report covers: yesterday, the Monday to Sunday
// week ending on the most recent Sunday, or the previous calendar month.
func (p Policy) Window(now time.Time) period.Period {
	now = now.In(p.location())
	switch p.Frequency {
	case Daily:
		yesterday := now.AddDate(0, 0, -1)
		return period.Period{From: period.StartOfDay(yesterday), To: period.EndOfDay(yesterday)}
	case Weekly:
		sunday := now.AddDate(0, 0, -int(now.Weekday()))
		return period.Period{From: period.StartOfDay(sunday.AddDate(0, 0, -6)), To: period.EndOfDay(sunday)}
	default:
		first := firstOfMonth(now)
		return period.Period{From: first.AddDate(0, -1, 0), To: period.EndOfDay(first.AddDate(0, 0, -1))}
	}
}

func firstOfMonth(ts time.Time) time.Time {
	return time.Date(ts.Year(), ts.Month(), 1, 0, 0, 0, 0, ts.Location())
}

func isLastDayOfMonth(ts time.Time) bool {
	return ts.AddDate(0, 0, 1).Month() != ts.Month()
}
