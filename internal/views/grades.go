package views

import "github.com/nzaccagnino/studydesk/internal/domain"

type Band int

const (
	BandPoor Band = iota
	BandFair
	BandGood
)

func (b Band) String() string {
	switch b {
	case BandGood:
		return "good"
	case BandFair:
		return "fair"
	default:
		return "poor"
	}
}

// GradeBand classifies a percentage: 80 and above is good, 60 and above fair.
func GradeBand(pct float64) Band {
	switch {
	case pct >= 80:
		return BandGood
	case pct >= 60:
		return BandFair
	default:
		return BandPoor
	}
}

// GradeSummary is the rollup of one course. Progress is the summed weight of
// graded tasks and is not capped at 100.
type GradeSummary struct {
	Course   domain.Course
	Current  float64
	Progress float64
	Graded   int
	Tasks    []domain.Task
}

func (g GradeSummary) Band() Band { return GradeBand(g.Current) }

// CourseGrade computes the weighted percentage over the course's tasks that
// carry grade, maxGrade and weight. No graded tasks yields 0.
func CourseGrade(course domain.Course, tasks []domain.Task) GradeSummary {
	sum := GradeSummary{Course: course}
	var earned float64
	for _, t := range tasks {
		if t.CourseID != course.ID {
			continue
		}
		sum.Tasks = append(sum.Tasks, t)
		if !t.Graded() {
			continue
		}
		sum.Graded++
		sum.Progress += *t.Weight
		if *t.MaxGrade != 0 {
			earned += *t.Grade / *t.MaxGrade * *t.Weight
		}
	}
	if sum.Progress > 0 {
		sum.Current = earned / sum.Progress * 100
	}
	return sum
}

// Performance returns one summary per course, in course order.
func Performance(courses []domain.Course, tasks []domain.Task) []GradeSummary {
	out := make([]GradeSummary, 0, len(courses))
	for _, c := range courses {
		out = append(out, CourseGrade(c, tasks))
	}
	return out
}
