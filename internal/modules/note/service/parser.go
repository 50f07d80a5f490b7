package service

import (
	"fmt"
	"math"
	"path"
	"regexp"
	"strings"
	"time"

	analysisdomain "reflexum/internal/modules/analysis/domain"
	"reflexum/internal/platform/markdown"
)

var (
	wordPattern     = regexp.MustCompile(`[\p{L}\p{N}_'-]+`)
	checkboxPattern = regexp.MustCompile(`(?m)^\s*[-*]\s\[( |x|X)\]`)
	checkedPattern  = regexp.MustCompile(`(?m)^\s*[-*]\s\[(x|X)\]`)
	tagPattern      = regexp.MustCompile(`(^|\s)#([A-Za-z0-9/_-]+)`)
)

// parsed is the shared view of a note used by both record parsers.
type parsed struct {
	meta      map[string]any
	body      string
	checklist analysisdomain.Checklist
	tags      []string
	course    string
}

func parse(notePath, content string) parsed {
	meta, body, err := markdown.SplitFrontmatter(content)
	if err != nil {
		meta = nil
	}
	body = strings.TrimSpace(body)
	p := parsed{meta: meta, body: body, checklist: countChecklist(body), tags: extractTags(body)}
	p.course = inferCourse(meta, p.tags, notePath)
	return p
}

// ParseSession returns nil when the note is an assignment or its course is filtered out.
func ParseSession(notePath, content string, includeCourses []string) *analysisdomain.StudySession {
	p := parse(notePath, content)
	if len(includeCourses) > 0 && p.course != "" && !contains(includeCourses, p.course) {
		return nil
	}
	if strings.TrimSpace(stringValue(p.meta["type"])) == "assignment" {
		return nil
	}

	topics := []string{}
	seen := map[string]struct{}{}
	add := func(topic string) {
		if topic == "" {
			return
		}
		if _, ok := seen[topic]; ok {
			return
		}
		seen[topic] = struct{}{}
		topics = append(topics, topic)
	}
	if list, ok := p.meta["topics"].([]any); ok {
		for _, item := range list {
			add(stringValue(item))
		}
	}
	for _, tag := range p.tags {
		if !strings.HasPrefix(tag, "course/") {
			add(tag)
		}
	}

	return &analysisdomain.StudySession{
		File:        notePath,
		Date:        stringValue(p.meta["date"]),
		Course:      p.course,
		Topics:      topics,
		DurationMin: numberValue(p.meta["duration"]),
		Words:       len(wordPattern.FindAllString(p.body, -1)),
		Checklist:   p.checklist,
		Body:        p.body,
	}
}

// ParseAssignment recognises "type: assignment" notes and any note carrying a due date.
func ParseAssignment(notePath, content string) *analysisdomain.Assignment {
	p := parse(notePath, content)
	isAssignment := strings.TrimSpace(stringValue(p.meta["type"])) == "assignment"
	due := stringValue(p.meta["due"])
	if !isAssignment && due == "" {
		return nil
	}
	status := stringValue(p.meta["status"])

	progress := 0.0
	switch {
	case p.checklist.Total > 0:
		progress = math.Floor(100*float64(p.checklist.Done)/float64(p.checklist.Total) + 0.5)
	case isAssignment && status == "done":
		progress = 100
	}

	return &analysisdomain.Assignment{
		File:     notePath,
		Course:   p.course,
		Title:    stringValue(p.meta["title"]),
		Due:      due,
		Status:   status,
		Progress: progress,
	}
}

// NoteTitle prefers the frontmatter title and falls back to the file name.
func NoteTitle(notePath, content string) string {
	p := parse(notePath, content)
	if title := strings.TrimSpace(stringValue(p.meta["title"])); title != "" {
		return title
	}
	return strings.TrimSuffix(path.Base(notePath), ".md")
}

func countChecklist(body string) analysisdomain.Checklist {
	return analysisdomain.Checklist{
		Done:  len(checkedPattern.FindAllString(body, -1)),
		Total: len(checkboxPattern.FindAllString(body, -1)),
	}
}

func extractTags(body string) []string {
	out := []string{}
	seen := map[string]struct{}{}
	for _, m := range tagPattern.FindAllStringSubmatch(body, -1) {
		if _, ok := seen[m[2]]; ok {
			continue
		}
		seen[m[2]] = struct{}{}
		out = append(out, m[2])
	}
	return out
}

// inferCourse checks project before course, frontmatter before tags, and
// finally falls back to the parent folder.
func inferCourse(meta map[string]any, tags []string, notePath string) string {
	if v := stringValue(meta["project"]); v != "" {
		return v
	}
	if tag, ok := firstWithPrefix(tags, "project/"); ok {
		return tag
	}
	if v := stringValue(meta["course"]); v != "" {
		return v
	}
	if tag, ok := firstWithPrefix(tags, "course/"); ok {
		return tag
	}
	parts := strings.Split(notePath, "/")
	if len(parts) >= 2 {
		return parts[len(parts)-2]
	}
	return ""
}

func firstWithPrefix(tags []string, prefix string) (string, bool) {
	for _, tag := range tags {
		if strings.HasPrefix(tag, prefix) {
			return strings.TrimPrefix(tag, prefix), true
		}
	}
	return "", false
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

// stringValue renders YAML scalars the way they appear in the note; false, zero and null are absent.
func stringValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		if !x {
			return ""
		}
		return "true"
	case int:
		if x == 0 {
			return ""
		}
		return fmt.Sprint(x)
	case float64:
		if x == 0 {
			return ""
		}
		return fmt.Sprint(x)
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 {
			return x.Format("2006-01-02")
		}
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprint(x)
	}
}

func numberValue(v any) *float64 {
	switch x := v.(type) {
	case int:
		return analysisdomain.Minutes(float64(x))
	case int64:
		return analysisdomain.Minutes(float64(x))
	case uint64:
		return analysisdomain.Minutes(float64(x))
	case float64:
		return analysisdomain.Minutes(x)
	default:
		return nil
	}
}
