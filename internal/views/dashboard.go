package views

import (
	"strings"

	"github.com/nzaccagnino/studydesk/internal/domain"
)

const (
	recentNotes   = 3
	upcomingTasks = 5
)

type DashboardSummary struct {
	FirstName     string
	TotalNotes    int
	TotalDecks    int
	TotalTasks    int
	CardsToReview int
	RecentNotes   []domain.Note
	Upcoming      []domain.Task
	DecksToReview []domain.Deck
}

// Dashboard summarizes the document for the home screen. Notes are assumed
// newest first, which is the order the store keeps them in.
func Dashboard(user domain.User, doc domain.Document) DashboardSummary {
	sum := DashboardSummary{
		FirstName:  strings.SplitN(user.Name, " ", 2)[0],
		TotalNotes: len(doc.Notes),
		TotalDecks: len(doc.Decks),
		TotalTasks: len(doc.Tasks),
	}

	reviewDecks := make(map[string]bool)
	for _, c := range doc.Flashcards {
		if c.Status == domain.CardReview {
			sum.CardsToReview++
			reviewDecks[c.DeckID] = true
		}
	}
	for _, d := range doc.Decks {
		if reviewDecks[d.ID] {
			sum.DecksToReview = append(sum.DecksToReview, d)
		}
	}

	sum.RecentNotes = doc.Notes[:min(recentNotes, len(doc.Notes))]
	for _, t := range doc.Tasks {
		if len(sum.Upcoming) == upcomingTasks {
			break
		}
		if !t.Completed {
			sum.Upcoming = append(sum.Upcoming, t)
		}
	}
	return sum
}

// SplitTasks separates incomplete tasks from completed ones, keeping order.
func SplitTasks(tasks []domain.Task) (todo, done []domain.Task) {
	for _, t := range tasks {
		if t.Completed {
			done = append(done, t)
		} else {
			todo = append(todo, t)
		}
	}
	return todo, done
}

// CardCounts returns the number of flashcards per deck id.
func CardCounts(cards []domain.Flashcard) map[string]int {
	out := make(map[string]int)
	for _, c := range cards {
		out[c.DeckID]++
	}
	return out
}

// DeckCards returns the cards of one deck in store order.
func DeckCards(cards []domain.Flashcard, deckID string) []domain.Flashcard {
	var out []domain.Flashcard
	for _, c := range cards {
		if c.DeckID == deckID {
			out = append(out, c)
		}
	}
	return out
}

// CourseFormFor rebuilds the edit form of a course from its current
// timetable entries. A course without entries gets one default schedule.
func CourseFormFor(course domain.Course, timetable []domain.TimetableEntry) domain.CourseForm {
	form := domain.CourseForm{
		Name:       course.Name,
		Code:       course.Code,
		Instructor: course.Instructor,
		Term:       course.Term,
		Color:      course.Color,
	}
	for _, e := range timetable {
		if e.CourseID == course.ID {
			form.Schedules = append(form.Schedules, domain.CourseSchedule{
				Day:       e.Day,
				StartTime: e.StartTime,
				EndTime:   e.EndTime,
				Location:  e.Location,
			})
		}
	}
	if len(form.Schedules) == 0 {
		form.Schedules = []domain.CourseSchedule{DefaultSchedule()}
	}
	return form
}

func DefaultSchedule() domain.CourseSchedule {
	return domain.CourseSchedule{Day: domain.Monday, StartTime: "09:00", EndTime: "10:00"}
}

// NewCourseForm is the blank form of the add-course dialog.
func NewCourseForm() domain.CourseForm {
	return domain.CourseForm{
		Term:      domain.TermSemester1,
		Color:     domain.ColorBlue,
		Schedules: []domain.CourseSchedule{DefaultSchedule()},
	}
}
