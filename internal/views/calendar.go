package views

import (
	"time"

	"github.com/nzaccagnino/studydesk/internal/domain"
)

// DateLayout is the literal format of Task.DueDate.
const DateLayout = "2006-01-02"

type CalendarDay struct {
	Date  time.Time
	Key   string
	Tasks []domain.Task
}

// Calendar lays out a month as a Sunday-first grid: one nil placeholder per
// weekday before the 1st, then one cell per day. Tasks are attached by exact
// dueDate match.
func Calendar(year int, month time.Month, tasks []domain.Task) []*CalendarDay {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days := first.AddDate(0, 1, -1).Day()
	byDate := TasksByDate(tasks)

	cells := make([]*CalendarDay, int(first.Weekday()), int(first.Weekday())+days)
	for d := 1; d <= days; d++ {
		date := time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
		key := date.Format(DateLayout)
		cells = append(cells, &CalendarDay{Date: date, Key: key, Tasks: byDate[key]})
	}
	return cells
}

// TasksByDate buckets tasks by their dueDate string. Tasks without one are
// left out.
func TasksByDate(tasks []domain.Task) map[string][]domain.Task {
	out := make(map[string][]domain.Task)
	for _, t := range tasks {
		if t.DueDate == "" {
			continue
		}
		out[t.DueDate] = append(out[t.DueDate], t)
	}
	return out
}

func MonthTitle(year int, month time.Month) string {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
}

// AddMonths moves by n months and returns the year and month reached.
func AddMonths(year int, month time.Month, n int) (int, time.Month) {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	return t.Year(), t.Month()
}
