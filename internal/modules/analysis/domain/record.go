package domain

import "time"

// NoValue labels sessions and assignments whose course or day is unknown.
const NoValue = "—"

type Checklist struct {
	Done  int
	Total int
}

// StudySession is one logged unit of study. Empty strings mean "absent";
// DurationMin is nil when the note carried no explicit duration.
type StudySession struct {
	File        string
	Date        string
	Course      string
	Topics      []string
	DurationMin *float64
	Words       int
	Checklist   Checklist
	Body        string
}

// Assignment is tracked work with a deadline. Due is kept verbatim and may not parse.
type Assignment struct {
	File     string
	Course   string
	Title    string
	Due      string
	Status   string
	Progress float64
}

func (a Assignment) CourseOrNone() string {
	if a.Course == "" {
		return NoValue
	}
	return a.Course
}

func (s StudySession) CourseOrNone() string {
	if s.Course == "" {
		return NoValue
	}
	return s.Course
}

func Minutes(v float64) *float64 {
	return &v
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseDate accepts the ISO forms found in note frontmatter. Values without an
// offset are read in loc.
func ParseDate(value string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range dateLayouts {
		if ts, err := time.ParseInLocation(layout, value, loc); err == nil {
			return ts.In(loc), true
		}
	}
	return time.Time{}, false
}
