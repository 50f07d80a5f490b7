package service

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	analysisdomain "reflexum/internal/modules/analysis/domain"
	"reflexum/internal/modules/report/domain"
)

const (
	courseSlices  = 8
	topicSlices   = 10
	keywordSlices = 12
	dailyBars     = 14
)

type pieItem struct {
	label string
	value float64
}

func mermaidLabel(s string) string {
	s = lineBreaks.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, `"`, "'")
	s = strings.ReplaceAll(s, ":", "·")
	return truncateRunes(strings.TrimSpace(s), 60)
}

func mermaidPie(title string, items []pieItem, lang domain.Lang) string {
	lines := []string{}
	for _, item := range items {
		if math.IsNaN(item.value) || math.IsInf(item.value, 0) || item.value <= 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf(`  "%s" : %d`, mermaidLabel(item.label), round(item.value)))
	}
	if len(lines) == 0 {
		return domain.TextsFor(lang).NoData
	}
	out := []string{"```mermaid", "pie showData", fmt.Sprintf(`  title "%s"`, mermaidLabel(title))}
	out = append(out, lines...)
	out = append(out, "```")
	return strings.Join(out, "\n")
}

// sortedCourses orders course buckets by minutes descending, then by name.
func sortedCourses(perCourse map[string]float64) []pieItem {
	items := make([]pieItem, 0, len(perCourse))
	for course, minutes := range perCourse {
		items = append(items, pieItem{label: course, value: minutes})
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].value != items[j].value {
			return items[i].value > items[j].value
		}
		return items[i].label < items[j].label
	})
	return items
}

func coursePie(perCourse map[string]float64, lang domain.Lang) string {
	text := domain.TextsFor(lang)
	items := sortedCourses(perCourse)
	if len(items) > courseSlices {
		rest := 0.0
		for _, item := range items[courseSlices:] {
			if !math.IsNaN(item.value) && !math.IsInf(item.value, 0) {
				rest += item.value
			}
		}
		items = items[:courseSlices]
		if rest > 0 {
			items = append(items, pieItem{label: text.Other, value: rest})
		}
	}
	return mermaidPie(text.PieProjectsTitle, items, lang)
}

func topicPie(topics []analysisdomain.TopicCount, lang domain.Lang) string {
	items := []pieItem{}
	for i, topic := range topics {
		if i == topicSlices {
			break
		}
		items = append(items, pieItem{label: topic.Topic, value: float64(topic.Count)})
	}
	return mermaidPie(domain.TextsFor(lang).TopTopics, items, lang)
}

func keywordPie(keywords []analysisdomain.KeywordCount, lang domain.Lang) string {
	items := []pieItem{}
	for i, kw := range keywords {
		if i == keywordSlices {
			break
		}
		items = append(items, pieItem{label: kw.Word, value: float64(kw.Count)})
	}
	return mermaidPie(domain.TextsFor(lang).Keywords, items, lang)
}

// datedDays returns the sorted day keys, skipping the undated bucket.
func datedDays(perDay map[string]float64) []string {
	keys := make([]string, 0, len(perDay))
	for day := range perDay {
		if day == "" || day == analysisdomain.NoValue {
			continue
		}
		keys = append(keys, day)
	}
	sort.Strings(keys)
	return keys
}

func lastN(keys []string, n int) []string {
	if len(keys) > n {
		return keys[len(keys)-n:]
	}
	return keys
}

func dailyBar(perDay map[string]float64, lang domain.Lang) string {
	text := domain.TextsFor(lang)
	keys := lastN(datedDays(perDay), dailyBars)
	if len(keys) == 0 {
		return text.NoData
	}
	labels := make([]string, 0, len(keys))
	values := make([]string, 0, len(keys))
	peak := 0
	for _, day := range keys {
		v := round(perDay[day])
		if v < 0 {
			v = 0
		}
		if v > peak {
			peak = v
		}
		labels = append(labels, `"`+mermaidLabel(day)+`"`)
		values = append(values, strconv.Itoa(v))
	}
	ceiling := int(math.Max(10, math.Ceil(float64(peak)/10)*10))
	return strings.Join([]string{
		"```mermaid",
		"xychart-beta",
		fmt.Sprintf(`  title "%s"`, mermaidLabel(text.DailyChartTitle)),
		fmt.Sprintf("  x-axis [%s]", strings.Join(labels, ", ")),
		fmt.Sprintf(`  y-axis "%s" 0 --> %d`, mermaidLabel(text.Minutes), ceiling),
		fmt.Sprintf("  bar [%s]", strings.Join(values, ", ")),
		"```",
	}, "\n")
}
