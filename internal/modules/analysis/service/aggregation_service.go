package service

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"reflexum/internal/modules/analysis/domain"
)

const (
	wordsPerMinute = 180
	topTopicsLimit = 10
	topWordsLimit  = 15
)

var (
	markupChars = regexp.MustCompile(`[#\-*_\[\]()]`)
	keywordRun  = regexp.MustCompile(`[\p{L}\p{N}_'-]{3,}`)
	stopWords   = map[string]struct{}{
		"the": {}, "and": {}, "for": {}, "that": {}, "this": {}, "with": {},
		"как": {}, "для": {}, "что": {}, "это": {}, "так": {},
	}
)

type AggregationService struct{}

func NewAggregationService() *AggregationService {
	return &AggregationService{}
}

// counter keeps counts alongside first-seen order so ties sort deterministically.
type counter struct {
	order  []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: map[string]int{}}
}

func (c *counter) add(key string) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

func (c *counter) top(limit int) []string {
	keys := append([]string(nil), c.order...)
	sort.SliceStable(keys, func(i, j int) bool {
		return c.counts[keys[i]] > c.counts[keys[j]]
	})
	if len(keys) > limit {
		keys = keys[:limit]
	}
	return keys
}

func (s *AggregationService) Analyze(sessions []domain.StudySession, assignments []domain.Assignment, now time.Time) domain.Aggregate {
	perCourse := map[string]float64{}
	perDay := map[string]float64{}
	topics := newCounter()
	keywords := newCounter()
	tasks := domain.TaskSummary{}

	for _, session := range sessions {
		minutes := EffectiveMinutes(session)
		perCourse[session.CourseOrNone()] += minutes
		perDay[dayBucket(session.Date, now.Location())] += minutes

		seen := map[string]struct{}{}
		for _, topic := range session.Topics {
			if topic == "" {
				continue
			}
			if _, dup := seen[topic]; dup {
				continue
			}
			seen[topic] = struct{}{}
			topics.add(topic)
		}

		for _, word := range Keywords(session.Body) {
			keywords.add(word)
		}

		tasks.Total += session.Checklist.Total
		tasks.Done += session.Checklist.Done
	}
	tasks.Open = tasks.Total - tasks.Done

	summary := classify(assignments, now)

	gaps := []string{}
	for _, course := range summary.Courses {
		bucket := summary.ByCourse[course]
		if (bucket.Open > 0 || bucket.Overdue > 0) && perCourse[course] == 0 {
			gaps = append(gaps, course)
		}
	}

	agg := domain.Aggregate{
		PerCourse:   perCourse,
		PerDay:      perDay,
		TopTopics:   []domain.TopicCount{},
		TopKeywords: []domain.KeywordCount{},
		Assignments: summary,
		Tasks:       tasks,
		Gaps:        gaps,
	}
	for _, v := range perCourse {
		agg.TotalMinutes += v
	}
	for _, topic := range topics.top(topTopicsLimit) {
		agg.TopTopics = append(agg.TopTopics, domain.TopicCount{Topic: topic, Count: topics.counts[topic]})
	}
	for _, word := range keywords.top(topWordsLimit) {
		agg.TopKeywords = append(agg.TopKeywords, domain.KeywordCount{Word: word, Count: keywords.counts[word]})
	}
	return agg
}

// EffectiveMinutes prefers the explicit duration and falls back to the word count estimate.
func EffectiveMinutes(session domain.StudySession) float64 {
	if d := session.DurationMin; d != nil && !math.IsNaN(*d) && !math.IsInf(*d, 0) {
		if *d < 0 {
			return 0
		}
		return *d
	}
	return math.Max(1, roundHalfUp(float64(session.Words)/wordsPerMinute))
}

// Keywords lower-cases body tokens of three or more word characters, minus stop words.
func Keywords(body string) []string {
	stripped := markupChars.ReplaceAllString(body, " ")
	out := []string{}
	for _, token := range keywordRun.FindAllString(stripped, -1) {
		low := strings.ToLower(token)
		if _, stop := stopWords[low]; stop {
			continue
		}
		out = append(out, low)
	}
	return out
}

func dayBucket(date string, loc *time.Location) string {
	if date == "" {
		return domain.NoValue
	}
	ts, ok := domain.ParseDate(date, loc)
	if !ok {
		return date
	}
	return ts.Format("2006-01-02")
}

func classify(assignments []domain.Assignment, now time.Time) domain.AssignmentSummary {
	summary := domain.AssignmentSummary{ByCourse: map[string]domain.CourseAssignments{}, Courses: []string{}}
	progressSum := map[string]float64{}
	progressCount := map[string]int{}

	for _, a := range assignments {
		course := a.CourseOrNone()
		bucket, ok := summary.ByCourse[course]
		if !ok {
			summary.Courses = append(summary.Courses, course)
		}
		summary.Total++
		switch {
		case a.Progress >= 100:
			summary.Done++
			bucket.Done++
		case isOverdue(a.Due, now):
			summary.Overdue++
			bucket.Overdue++
		default:
			bucket.Open++
		}
		summary.ByCourse[course] = bucket
		progressSum[course] += a.Progress
		progressCount[course]++
	}

	for course, bucket := range summary.ByCourse {
		if n := progressCount[course]; n > 0 {
			bucket.ProgressAvg = int(roundHalfUp(progressSum[course] / float64(n)))
		}
		summary.ByCourse[course] = bucket
	}
	summary.Open = summary.Total - summary.Done - summary.Overdue
	return summary
}

func isOverdue(due string, now time.Time) bool {
	if due == "" {
		return false
	}
	ts, ok := domain.ParseDate(due, now.Location())
	return ok && ts.Before(now)
}

func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
