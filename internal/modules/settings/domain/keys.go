package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Keys lists the settable keys in display order.
var Keys = []string{
	"datePreset", "dateFrom", "dateTo", "includeCourses",
	"useLLM", "llmProvider", "llmApiKey", "llmModel", "llmBaseUrl", "includeQuiz",
	"telegramEnabled", "botToken", "chatId",
	"language", "dueReminderDays", "timezone",
	"autoReportEnabled", "autoReportFrequency", "autoReportTime", "lastAutoReportDate",
}

var secretKeys = map[string]bool{"llmApiKey": true, "botToken": true}

// Set assigns one flat key from its textual form.
func (s *Settings) Set(key, value string) error {
	value = strings.TrimSpace(value)
	var err error
	switch key {
	case "datePreset":
		s.DatePreset = value
	case "dateFrom":
		s.DateFrom = value
	case "dateTo":
		s.DateTo = value
	case "includeCourses":
		s.IncludeCourses = splitList(value)
	case "useLLM":
		s.UseLLM, err = strconv.ParseBool(value)
	case "llmProvider":
		s.LLMProvider = value
	case "llmApiKey":
		s.LLMAPIKey = value
	case "llmModel":
		s.LLMModel = value
	case "llmBaseUrl":
		s.LLMBaseURL = value
	case "includeQuiz":
		s.IncludeQuiz, err = strconv.ParseBool(value)
	case "telegramEnabled":
		s.TelegramEnabled, err = strconv.ParseBool(value)
	case "botToken":
		s.BotToken = value
	case "chatId":
		s.ChatID = value
	case "language":
		s.Language = value
	case "dueReminderDays":
		s.DueReminderDays, err = strconv.Atoi(value)
	case "timezone":
		s.Timezone = value
	case "autoReportEnabled":
		s.AutoReportEnabled, err = strconv.ParseBool(value)
	case "autoReportFrequency":
		s.AutoReportFrequency = value
	case "autoReportTime":
		s.AutoReportTime = value
	case "lastAutoReportDate":
		s.LastAutoReportDate = value
	default:
		return fmt.Errorf("unknown settings key %q", key)
	}
	if err != nil {
		return fmt.Errorf("parse %s: %w", key, err)
	}
	return nil
}

// Get renders one key; secrets are masked.
func (s Settings) Get(key string) string {
	var v string
	switch key {
	case "datePreset":
		v = s.DatePreset
	case "dateFrom":
		v = s.DateFrom
	case "dateTo":
		v = s.DateTo
	case "includeCourses":
		v = strings.Join(s.IncludeCourses, ",")
	case "useLLM":
		v = strconv.FormatBool(s.UseLLM)
	case "llmProvider":
		v = s.LLMProvider
	case "llmApiKey":
		v = s.LLMAPIKey
	case "llmModel":
		v = s.LLMModel
	case "llmBaseUrl":
		v = s.LLMBaseURL
	case "includeQuiz":
		v = strconv.FormatBool(s.IncludeQuiz)
	case "telegramEnabled":
		v = strconv.FormatBool(s.TelegramEnabled)
	case "botToken":
		v = s.BotToken
	case "chatId":
		v = s.ChatID
	case "language":
		v = s.Language
	case "dueReminderDays":
		v = strconv.Itoa(s.DueReminderDays)
	case "timezone":
		v = s.Timezone
	case "autoReportEnabled":
		v = strconv.FormatBool(s.AutoReportEnabled)
	case "autoReportFrequency":
		v = s.AutoReportFrequency
	case "autoReportTime":
		v = s.AutoReportTime
	case "lastAutoReportDate":
		v = s.LastAutoReportDate
	}
	if secretKeys[key] && v != "" {
		return "********"
	}
	return v
}

func splitList(value string) []string {
	out := []string{}
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
