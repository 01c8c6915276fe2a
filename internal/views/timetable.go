package views

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nzaccagnino/studydesk/internal/domain"
)

const (
	DayStartHour = 8
	DayEndHour   = 19
)

// TimetableDays are the columns of the weekly grid.
var TimetableDays = []domain.Weekday{domain.Monday, domain.Tuesday, domain.Wednesday, domain.Thursday, domain.Friday}

// ParseClock converts "HH:MM" into fractional hours.
func ParseClock(s string) (float64, error) {
	h, m, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	hours, err := strconv.Atoi(h)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	minutes, err := strconv.Atoi(m)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return float64(hours) + float64(minutes)/60, nil
}

type Block struct {
	Entry  domain.TimetableEntry
	Course domain.Course
	Top    float64
	Height float64
}

// TimetableLayout positions each entry in its weekday column, hourHeight
// units per hour starting at 8:00. Entries whose course is gone or whose
// times do not parse are skipped.
func TimetableLayout(entries []domain.TimetableEntry, courses []domain.Course, hourHeight float64) map[domain.Weekday][]Block {
	byID := make(map[string]domain.Course, len(courses))
	for _, c := range courses {
		byID[c.ID] = c
	}
	out := make(map[domain.Weekday][]Block)
	for _, e := range entries {
		course, ok := byID[e.CourseID]
		if !ok {
			continue
		}
		start, err := ParseClock(e.StartTime)
		if err != nil {
			continue
		}
		end, err := ParseClock(e.EndTime)
		if err != nil {
			continue
		}
		out[e.Day] = append(out[e.Day], Block{
			Entry:  e,
			Course: course,
			Top:    (start - DayStartHour) * hourHeight,
			Height: (end - start) * hourHeight,
		})
	}
	return out
}
