package domain

import (
	"fmt"
	"strconv"
	"strings"
)

type InsightMode string

const (
	ModePeriod InsightMode = "period"
	ModeSingle InsightMode = "single"
)

// InsightRequest is the material an insight provider sees. Body is used in
// single mode only; the period fields summarise the aggregate.
type InsightRequest struct {
	Mode         InsightMode
	Lang         Lang
	Body         string
	TotalMinutes float64
	Courses      []string
	Topics       []string
}

type Prompt struct {
	System string
	User   string
}

func InsightPrompt(req InsightRequest) Prompt {
	var p Prompt
	if req.Lang == LangEN {
		p.System = "You are a study journal assistant. Provide 3–6 concrete insights strictly from the material. Format: bullet list (each line starts with '- ')."
	} else {
		p.System = "Ты помощник по учебному журналу. Дай 3–6 конкретных инсайтов строго по материалу. Пиши кратко, по делу. Формат: маркированный список (каждая строка начинается с '- ')."
	}

	if req.Mode == ModeSingle && req.Body != "" {
		if req.Lang == LangEN {
			p.User = fmt.Sprintf("Material (note). First: 1–2 sentence summary. Then insights as bullet list.\n\n\"\"\"%s\"\"\"", req.Body)
		} else {
			p.User = fmt.Sprintf("Материал (заметка). Сначала 1–2 предложения: о чём текст. Затем инсайты списком.\n\n\"\"\"%s\"\"\"", req.Body)
		}
		return p
	}

	header := "Сводка периода:"
	if req.Lang == LangEN {
		header = "Period summary:"
	}
	p.User = strings.Join([]string{
		header,
		"Time: " + strconv.FormatFloat(req.TotalMinutes, 'f', -1, 64) + " min",
		"Courses: " + strings.Join(req.Courses, ", "),
		"Top topics: " + strings.Join(req.Topics, ", "),
	}, "\n")
	return p
}

func QuizPrompt(req InsightRequest) Prompt {
	var p Prompt
	if req.Lang == LangEN {
		p.System = "Generate 5 self-check questions based on the content. Format each question on a new line starting with '- '. These are questions for self-assessment, not a quiz with answers."
	} else {
		p.System = "Сгенерируй 5 вопросов для самоконтроля по содержимому. Формат: каждый вопрос с новой строки, начиная с '- '. Это вопросы для самопроверки, а не квиз с ответами."
	}

	switch {
	case req.Mode == ModeSingle && req.Body != "" && req.Lang == LangEN:
		p.User = fmt.Sprintf("Generate 5 self-check questions based on the text:\n\"\"\"%s\"\"\"", req.Body)
	case req.Mode == ModeSingle && req.Body != "":
		p.User = fmt.Sprintf("Составь 5 вопросов для самоконтроля по тексту:\n\"\"\"%s\"\"\"", req.Body)
	case req.Lang == LangEN:
		p.User = "Topics for the period: " + strings.Join(req.Topics, ", ")
	default:
		p.User = "Темы периода: " + strings.Join(req.Topics, ", ")
	}
	return p
}

// EmptyCompletion replaces a blank model answer.
const EmptyCompletion = "⚠️ No response from LLM."
