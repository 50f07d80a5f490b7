package domain_test

import (
	"testing"
	"time"

	"reflexum/internal/modules/schedule/domain"
	settingsdomain "reflexum/internal/modules/settings/domain"
)

func at(day, hour, minute int) time.Time {
	return time.Date(2026, 3, day, hour, minute, 0, 0, time.UTC)
}

func ptr(ts time.Time) *time.Time { return &ts }

func armed(frequency domain.Frequency, lastSent *time.Time) domain.Policy {
	return domain.Policy{
		Enabled:         true,
		TelegramEnabled: true,
		Frequency:       frequency,
		At:              domain.ReportTime{Hour: 20},
		LastSent:        lastSent,
		Location:        time.UTC,
	}
}

func TestShouldFireDisabled(t *testing.T) {
	t.Parallel()
	p := armed(domain.Daily, nil)
	p.Enabled = false
	if p.ShouldFire(at(10, 21, 0)) {
		t.Fatalf("disabled policy must not fire")
	}
	p = armed(domain.Daily, nil)
	p.TelegramEnabled = false
	if p.ShouldFire(at(10, 21, 0)) {
		t.Fatalf("policy without telegram must not fire")
	}
}

func TestShouldFireNeverSentGatesOnHour(t *testing.T) {
	t.Parallel()
	for _, frequency := range []domain.Frequency{domain.Daily, domain.Weekly, domain.Monthly} {
		p := armed(frequency, nil)
		if !p.ShouldFire(at(10, 20, 0)) {
			t.Fatalf("%s: expected fire at the target hour", frequency)
		}
		if p.ShouldFire(at(10, 19, 59)) {
			t.Fatalf("%s: expected no fire before the target hour", frequency)
		}
	}
}

func TestShouldFireIgnoresMinutes(t *testing.T) {
	t.Parallel()
	p := armed(domain.Daily, nil)
	p.At = domain.ReportTime{Hour: 20, Minute: 45}
	if !p.ShouldFire(at(10, 20, 0)) {
		t.Fatalf("only the hour is compared, 20:00 must fire for 20:45")
	}
}

func TestShouldFireDaily(t *testing.T) {
	t.Parallel()
	if !armed(domain.Daily, ptr(at(8, 20, 0))).ShouldFire(at(10, 20, 0)) {
		t.Fatalf("expected fire when last sent two days ago")
	}
	if armed(domain.Daily, ptr(at(10, 20, 0))).ShouldFire(at(10, 22, 0)) {
		t.Fatalf("expected no second fire on the same day")
	}
	// The reference is yesterday's midnight, so yesterday's send still blocks today.
	if armed(domain.Daily, ptr(at(9, 20, 0))).ShouldFire(at(10, 20, 0)) {
		t.Fatalf("expected send from yesterday evening to block today")
	}
}

func TestShouldFireWeekly(t *testing.T) {
	t.Parallel()
	for day := 2; day <= 7; day++ {
		if armed(domain.Weekly, ptr(at(1, 20, 0))).ShouldFire(at(day, 21, 0)) {
			t.Fatalf("weekly must only fire on Sunday, fired on March %d", day)
		}
		if !armed(domain.Weekly, nil).ShouldFire(at(day, 21, 0)) {
			t.Fatalf("never-sent policy fires on any day after the hour")
		}
	}
	if !armed(domain.Weekly, ptr(at(1, 20, 0))).ShouldFire(at(8, 20, 0)) {
		t.Fatalf("expected fire on the next Sunday")
	}
	if armed(domain.Weekly, ptr(at(8, 20, 0))).ShouldFire(at(8, 23, 0)) {
		t.Fatalf("expected no second fire on the same Sunday")
	}
}

func TestShouldFireMonthly(t *testing.T) {
	t.Parallel()
	lastFeb := time.Date(2026, 2, 28, 21, 0, 0, 0, time.UTC)
	if !armed(domain.Monthly, &lastFeb).ShouldFire(at(31, 20, 0)) {
		t.Fatalf("expected fire on the last day of March")
	}
	if armed(domain.Monthly, &lastFeb).ShouldFire(at(30, 20, 0)) {
		t.Fatalf("expected no fire before the last day")
	}
	if armed(domain.Monthly, ptr(at(1, 9, 0))).ShouldFire(at(31, 20, 0)) {
		t.Fatalf("expected no fire when already sent this month")
	}
}

func TestShouldFireUsesPolicyLocation(t *testing.T) {
	t.Parallel()
	p := armed(domain.Daily, nil)
	p.Location = time.FixedZone("MSK", 3*3600)
	if !p.ShouldFire(time.Date(2026, 3, 10, 17, 30, 0, 0, time.UTC)) {
		t.Fatalf("17:30 UTC is 20:30 in MSK and must fire")
	}
}

func TestWindow(t *testing.T) {
	t.Parallel()
	endOf := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 23, 59, 59, 999_000_000, time.UTC)
	}
	cases := []struct {
		name      string
		frequency domain.Frequency
		now       time.Time
		from, to  time.Time
	}{
		{"daily", domain.Daily, at(10, 20, 0), at(9, 0, 0), endOf(2026, 3, 9)},
		{"daily month boundary", domain.Daily, at(1, 20, 0), time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), endOf(2026, 2, 28)},
		{"weekly on sunday", domain.Weekly, at(8, 20, 0), at(2, 0, 0), endOf(2026, 3, 8)},
		{"weekly midweek", domain.Weekly, at(11, 20, 0), at(2, 0, 0), endOf(2026, 3, 8)},
		{"monthly", domain.Monthly, at(31, 20, 0), time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), endOf(2026, 2, 28)},
		{"monthly january", domain.Monthly, time.Date(2026, 1, 31, 20, 0, 0, 0, time.UTC), time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), endOf(2025, 12, 31)},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := armed(tc.frequency, nil).Window(tc.now)
			if !got.From.Equal(tc.from) || !got.To.Equal(tc.to) {
				t.Fatalf("expected %s..%s, got %s..%s", tc.from, tc.to, got.From, got.To)
			}
		})
	}
}

func TestPolicyFromSettings(t *testing.T) {
	t.Parallel()
	s := settingsdomain.Defaults()
	s.AutoReportEnabled = true
	s.TelegramEnabled = true
	s.Timezone = "UTC"
	s.LastAutoReportDate = "2026-03-01T17:00:00Z"
	p, err := domain.PolicyFromSettings(s)
	if err != nil {
		t.Fatalf("policy: %v", err)
	}
	if p.Frequency != domain.Weekly || p.At.Hour != 20 || p.LastSent == nil || !p.LastSent.Equal(at(1, 17, 0)) {
		t.Fatalf("unexpected policy %+v", p)
	}

	s.AutoReportTime = "8pm"
	if _, err := domain.PolicyFromSettings(s); err == nil {
		t.Fatalf("expected malformed time error")
	}
	s.AutoReportTime = "20:00"
	s.LastAutoReportDate = "yesterday"
	if _, err := domain.PolicyFromSettings(s); err == nil {
		t.Fatalf("expected malformed last sent error")
	}
}

func TestParseReportTime(t *testing.T) {
	t.Parallel()
	got, err := domain.ParseReportTime("7:05")
	if err != nil || got.Hour != 7 || got.Minute != 5 {
		t.Fatalf("unexpected %+v %v", got, err)
	}
	if _, err := domain.ParseReportTime("24:00"); err == nil {
		t.Fatalf("expected error for 24:00")
	}
}
