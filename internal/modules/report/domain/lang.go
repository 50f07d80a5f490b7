package domain

type Lang string

const (
	LangRU Lang = "ru"
	LangEN Lang = "en"
)

// NormalizeLang maps anything but "en" to Russian, the vault default.
func NormalizeLang(value string) Lang {
	if value == string(LangEN) {
		return LangEN
	}
	return LangRU
}

// Texts holds every user-facing string for one language. Format strings take
// their arguments in the order documented next to the field.
type Texts struct {
	ReportTitle      string
	TotalTime        string
	ByProjects       string
	NoData           string
	Day              string
	Minutes          string
	TopTopics        string
	Keywords         string
	Tasks            string
	Insights         string
	SelfCheck        string
	Gaps             string
	PieProjectsTitle string
	NoteDeadline     string
	Date             string
	Note             string
	Other            string
	HourUnit         string
	MinuteUnit       string

	EmptySingle string
	EmptyPeriod string
	// TasksLine: done, total, open.
	TasksLine string

	DailyDynamics   string
	DailyChartTitle string
	DeadlinesTitle  string
	// DeadlineTotals: total, open, done, overdue.
	DeadlineTotals string
	CourseColumn   string
	OpenColumn     string
	DoneColumn     string
	OverdueColumn  string
	ProgressColumn string

	DigestTitle     string
	DigestDaily     string
	DigestUpcoming  string
	DigestSelfCheck string
	// DigestTasks: done, total, open.
	DigestTasks string
	// DigestDeadlines: total, open, overdue.
	DigestDeadlines string
	// DigestGaps: comma separated courses.
	DigestGaps    string
	ProgressLabel string

	ReminderTitle string

	NoNotes         string
	ReportCreated   string
	NoteReportReady string
	DigestSent      string
	NotConfigured   string
	LLMFailed       string
}

var texts = map[Lang]Texts{
	LangRU: {
		ReportTitle:      "Reflexum — аналитический отчёт",
		TotalTime:        "Суммарное время",
		ByProjects:       "По проектам/областям",
		NoData:           "_Нет данных_",
		Day:              "День",
		Minutes:          "Минуты",
		TopTopics:        "Топ тем/тегов",
		Keywords:         "Ключевые слова",
		Tasks:            "Задачи",
		Insights:         "Инсайты",
		SelfCheck:        "Вопросы для самоконтроля",
		Gaps:             "Пробелы внимания",
		PieProjectsTitle: "Время по проектам/областям (мин)",
		NoteDeadline:     "Дедлайн заметки",
		Date:             "Дата",
		Note:             "Заметка",
		Other:            "Другое",
		HourUnit:         "ч",
		MinuteUnit:       "мин",

		EmptySingle: "_В этой заметке нет измеримых данных. Добавь frontmatter `duration:` (в минутах) или чек-листы/теги/темы._",
		EmptyPeriod: "_Нет данных по выбранным заметкам. Добавь `duration:` в минутах или проверь теги/темы/чек-листы._",
		TasksLine:   "выполнено %d/%d (открыто: %d)",

		DailyDynamics:   "📈 Динамика по дням",
		DailyChartTitle: "Активность по дням (мин)",
		DeadlinesTitle:  "⏰ Дедлайны",
		DeadlineTotals:  "Всего: **%d**, открыто: **%d**, сделано: **%d**, просрочено: **%d**",
		CourseColumn:    "Курс",
		OpenColumn:      "Открыто",
		DoneColumn:      "Сделано",
		OverdueColumn:   "Просрочено",
		ProgressColumn:  "Средн. прогресс",

		DigestTitle:     "Reflexum",
		DigestDaily:     "📈 Динамика по дням:",
		DigestUpcoming:  "⏰ Ближайшие дедлайны:",
		DigestSelfCheck: "✅ Вопросы для самоконтроля:",
		DigestTasks:     "✅ Задачи: %d/%d (открыто: %d)",
		DigestDeadlines: "⏰ Дедлайны: %d всего, %d открыто, %d просрочено",
		DigestGaps:      "⚠️ Пробелы внимания: %s",
		ProgressLabel:   "прогресс",

		ReminderTitle: "⏳ Ближайшие дедлайны:",

		NoNotes:         "За выбранный период подходящих заметок не найдено.",
		ReportCreated:   "Reflexum: отчёт создан → %s",
		NoteReportReady: "Reflexum: отчёт по «%s» создан.",
		DigestSent:      "Дайджест отправлен в Telegram.",
		NotConfigured:   "Telegram не настроен.",
		LLMFailed:       "Не удалось получить ответ LLM (подробности в логе).",
	},
	LangEN: {
		ReportTitle:      "Reflexum — analytical report",
		TotalTime:        "Total time",
		ByProjects:       "By projects/areas",
		NoData:           "_No data_",
		Day:              "Day",
		Minutes:          "Minutes",
		TopTopics:        "Top topics/tags",
		Keywords:         "Keywords",
		Tasks:            "Tasks",
		Insights:         "Insights",
		SelfCheck:        "Self-check questions",
		Gaps:             "Attention gaps",
		PieProjectsTitle: "Time by projects/areas (min)",
		NoteDeadline:     "Note deadline",
		Date:             "Date",
		Note:             "Note",
		Other:            "Other",
		HourUnit:         "h",
		MinuteUnit:       "min",

		EmptySingle: "_No measurable data in this note. Add frontmatter `duration:` (minutes) or checklists/tags/topics._",
		EmptyPeriod: "_No data for selected notes. Add `duration:` in minutes or ensure notes contain tags/topics/checklists._",
		TasksLine:   "%d/%d done (open: %d)",

		DailyDynamics:   "📈 Daily dynamics",
		DailyChartTitle: "Daily activity (min)",
		DeadlinesTitle:  "⏰ Deadlines",
		DeadlineTotals:  "Total: **%d**, open: **%d**, done: **%d**, overdue: **%d**",
		CourseColumn:    "Course",
		OpenColumn:      "Open",
		DoneColumn:      "Done",
		OverdueColumn:   "Overdue",
		ProgressColumn:  "Avg progress",

		DigestTitle:     "Reflexum",
		DigestDaily:     "📈 Daily activity:",
		DigestUpcoming:  "⏰ Upcoming deadlines:",
		DigestSelfCheck: "✅ Self-check questions:",
		DigestTasks:     "✅ Tasks: %d/%d (open: %d)",
		DigestDeadlines: "⏰ Deadlines: %d total, %d open, %d overdue",
		DigestGaps:      "⚠️ Attention gaps: %s",
		ProgressLabel:   "progress",

		ReminderTitle: "⏳ Upcoming deadlines:",

		NoNotes:         "No matching notes found for the selected period.",
		ReportCreated:   "Reflexum: report created → %s",
		NoteReportReady: "Reflexum: report for %q created.",
		DigestSent:      "Digest sent to Telegram.",
		NotConfigured:   "Telegram is not configured.",
		LLMFailed:       "LLM summarization failed (see log).",
	},
}

func TextsFor(lang Lang) Texts {
	if t, ok := texts[lang]; ok {
		return t
	}
	return texts[LangRU]
}
