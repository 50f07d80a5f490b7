package dto

import "time"

type TickOutput struct {
	Fired       bool
	Reason      string
	From        time.Time
	To          time.Time
	ReportPath  string
	PeriodLabel string
}

type StatusOutput struct {
	Enabled         bool
	TelegramEnabled bool
	Frequency       string
	Time            string
	Timezone        string
	LastSent        *time.Time
	WouldFire       bool
	Reason          string
	From            time.Time
	To              time.Time
}

type ReminderOutput struct {
	Checked bool
	Sent    bool
	Due     int
}
