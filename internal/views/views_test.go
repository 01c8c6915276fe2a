package views

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/nzaccagnino/studydesk/internal/domain"
)

func TestGroupNotesIsTotalPartition(t *testing.T) {
	courses := []domain.Course{{ID: "c1", Name: "CS"}, {ID: "c2", Name: "Math"}}
	folders := []domain.NoteFolder{{ID: "f1", Name: "Goals"}}
	notes := []domain.Note{
		{ID: "a", CourseID: "c1"},
		{ID: "b", FolderID: "f1"},
		{ID: "c", CourseID: "c2", FolderID: "f1"},
		{ID: "d", CourseID: "gone"},
		{ID: "e", FolderID: "gone"},
		{ID: "f", CourseID: "gone", FolderID: "f1"},
		{ID: "g"},
	}

	g := GroupNotes(notes, courses, folders)

	seen := make(map[string]int)
	for _, b := range g.Courses {
		for _, n := range b.Items {
			seen[n.ID]++
		}
	}
	for _, b := range g.Folders {
		for _, n := range b.Items {
			seen[n.ID]++
		}
	}
	for _, n := range g.Uncategorized {
		seen[n.ID]++
	}
	if g.Len() != len(notes) {
		t.Errorf("Expected %d grouped notes, got %d", len(notes), g.Len())
	}
	for _, n := range notes {
		if seen[n.ID] != 1 {
			t.Errorf("Note %s appears %d times", n.ID, seen[n.ID])
		}
	}

	testCases := []struct {
		bucket string
		items  int
	}{
		{"c1", 1}, {"c2", 1}, {"f1", 2},
	}
	for _, tc := range testCases {
		var got int
		for _, b := range append(g.Courses, g.Folders...) {
			if b.ID == tc.bucket {
				got = len(b.Items)
			}
		}
		if got != tc.items {
			t.Errorf("Bucket %s: expected %d items, got %d", tc.bucket, tc.items, got)
		}
	}
	if len(g.Uncategorized) != 3 {
		t.Errorf("Expected 3 uncategorized notes, got %d", len(g.Uncategorized))
	}
}

func TestGroupDecksKeepsEmptyBuckets(t *testing.T) {
	g := GroupDecks(nil, []domain.Course{{ID: "c1"}}, []domain.DeckFolder{{ID: "f1"}})
	if len(g.Courses) != 1 || len(g.Folders) != 1 || g.Len() != 0 {
		t.Errorf("Expected empty buckets per course and folder, got %+v", g)
	}
}

func TestCourseGrade(t *testing.T) {
	course := domain.Course{ID: "c"}
	testCases := []struct {
		name         string
		tasks        []domain.Task
		wantCurrent  float64
		wantProgress float64
	}{
		{
			name:  "no graded tasks",
			tasks: []domain.Task{{CourseID: "c", Weight: domain.Float(30)}},
		},
		{
			name: "weighted average",
			tasks: []domain.Task{
				{CourseID: "c", Grade: domain.Float(8), MaxGrade: domain.Float(10), Weight: domain.Float(5)},
				{CourseID: "c", Grade: domain.Float(85), MaxGrade: domain.Float(100), Weight: domain.Float(10)},
				{CourseID: "other", Grade: domain.Float(0), MaxGrade: domain.Float(10), Weight: domain.Float(50)},
			},
			wantCurrent:  12.5 / 15 * 100,
			wantProgress: 15,
		},
		{
			name: "progress not capped",
			tasks: []domain.Task{
				{CourseID: "c", Grade: domain.Float(10), MaxGrade: domain.Float(10), Weight: domain.Float(70)},
				{CourseID: "c", Grade: domain.Float(5), MaxGrade: domain.Float(10), Weight: domain.Float(70)},
			},
			wantCurrent:  75,
			wantProgress: 140,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := CourseGrade(course, tc.tasks)
			if math.Abs(got.Current-tc.wantCurrent) > 1e-9 {
				t.Errorf("Expected current %v, got %v", tc.wantCurrent, got.Current)
			}
			if got.Progress != tc.wantProgress {
				t.Errorf("Expected progress %v, got %v", tc.wantProgress, got.Progress)
			}
		})
	}
}

func TestGradeBand(t *testing.T) {
	testCases := []struct {
		pct  float64
		want Band
	}{
		{100, BandGood}, {80, BandGood}, {79.9, BandFair}, {60, BandFair}, {59.99, BandPoor}, {0, BandPoor},
	}
	for _, tc := range testCases {
		if got := GradeBand(tc.pct); got != tc.want {
			t.Errorf("GradeBand(%v) = %s, want %s", tc.pct, got, tc.want)
		}
	}
}

func TestPerformanceFollowsCourseOrder(t *testing.T) {
	doc := domain.Defaults()
	perf := Performance(doc.Courses, doc.Tasks)
	if len(perf) != 3 {
		t.Fatalf("Expected 3 summaries, got %d", len(perf))
	}
	if perf[0].Course.ID != "course-1" || math.Abs(perf[0].Current-90) > 1e-9 {
		t.Errorf("Expected course-1 at 90%%, got %s at %v", perf[0].Course.ID, perf[0].Current)
	}
	if perf[2].Graded != 0 || perf[2].Current != 0 {
		t.Errorf("Expected course-3 ungraded, got %+v", perf[2])
	}
}

func TestCalendarPadding(t *testing.T) {
	// April 2026 starts on a Wednesday and has 30 days.
	tasks := []domain.Task{{ID: "t", DueDate: "2026-04-15"}, {ID: "u"}}
	cells := Calendar(2026, time.April, tasks)

	if len(cells) != 33 {
		t.Fatalf("Expected 33 cells, got %d", len(cells))
	}
	for i := 0; i < 3; i++ {
		if cells[i] != nil {
			t.Errorf("Expected placeholder at %d", i)
		}
	}
	for i, c := range cells[3:] {
		if c == nil || c.Date.Day() != i+1 {
			t.Fatalf("Expected day %d at cell %d, got %+v", i+1, i+3, c)
		}
	}
	if day := cells[3+14]; len(day.Tasks) != 1 || day.Key != "2026-04-15" {
		t.Errorf("Expected one task on the 15th, got %+v", day)
	}
}

func TestCalendarSundayStartHasNoPadding(t *testing.T) {
	// February 2026 starts on a Sunday.
	cells := Calendar(2026, time.February, nil)
	if len(cells) != 28 || cells[0] == nil {
		t.Errorf("Expected 28 cells without padding, got %d", len(cells))
	}
}

func TestAddMonths(t *testing.T) {
	y, m := AddMonths(2024, time.January, -1)
	if y != 2023 || m != time.December {
		t.Errorf("Expected December 2023, got %s %d", m, y)
	}
	if got := MonthTitle(2024, time.June); got != "June 2024" {
		t.Errorf("Expected June 2024, got %q", got)
	}
}

func TestTimetableLayout(t *testing.T) {
	courses := []domain.Course{{ID: "c1"}}
	entries := []domain.TimetableEntry{
		{ID: "a", CourseID: "c1", Day: domain.Monday, StartTime: "10:00", EndTime: "11:30"},
		{ID: "b", CourseID: "gone", Day: domain.Monday, StartTime: "09:00", EndTime: "10:00"},
		{ID: "c", CourseID: "c1", Day: domain.Friday, StartTime: "8:15", EndTime: "bad"},
	}

	layout := TimetableLayout(entries, courses, 4)

	mon := layout[domain.Monday]
	if len(mon) != 1 {
		t.Fatalf("Expected one Monday block, got %d", len(mon))
	}
	if mon[0].Top != 8 || mon[0].Height != 6 {
		t.Errorf("Expected top 8 height 6, got %v %v", mon[0].Top, mon[0].Height)
	}
	if len(layout[domain.Friday]) != 0 {
		t.Error("Expected unparsable entry to be skipped")
	}
}

func TestParseClock(t *testing.T) {
	got, err := ParseClock("13:45")
	if err != nil || got != 13.75 {
		t.Errorf("Expected 13.75, got %v (%v)", got, err)
	}
	if _, err := ParseClock("1345"); err == nil {
		t.Error("Expected error for missing colon")
	}
}

func TestDashboard(t *testing.T) {
	doc := domain.Defaults()
	sum := Dashboard(domain.DefaultUser, doc)

	if sum.FirstName != "Ryan" {
		t.Errorf("Expected Ryan, got %q", sum.FirstName)
	}
	if sum.TotalNotes != 3 || sum.TotalTasks != 7 {
		t.Errorf("Unexpected totals %+v", sum)
	}
	if len(sum.RecentNotes) != 3 || len(sum.Upcoming) != 3 {
		t.Errorf("Expected 3 recent notes and 3 incomplete tasks, got %d and %d", len(sum.RecentNotes), len(sum.Upcoming))
	}
	for _, task := range sum.Upcoming {
		if task.Completed {
			t.Errorf("Expected only incomplete tasks, got %s", task.ID)
		}
	}
}

func TestReviewSession(t *testing.T) {
	cards := []domain.Flashcard{{ID: "1"}, {ID: "2"}, {ID: "3"}}
	s := NewReviewSession(cards, rand.New(rand.NewPCG(1, 2)))

	if s.Len() != 3 || s.Prev() {
		t.Fatal("Expected three cards and no previous card at start")
	}
	s.Flip()
	if !s.Flipped() {
		t.Error("Expected flipped")
	}
	if !s.Next() || s.Flipped() {
		t.Error("Expected next to move and show the front")
	}
	s.Next()
	if s.Next() {
		t.Error("Expected next to stop at the last card")
	}
	if s.Progress() != 1 {
		t.Errorf("Expected full progress, got %v", s.Progress())
	}

	seen := make(map[string]bool)
	for _, c := range s.cards {
		seen[c.ID] = true
	}
	if len(seen) != 3 {
		t.Errorf("Expected shuffle to keep every card, got %v", seen)
	}

	empty := NewReviewSession(nil, nil)
	if _, ok := empty.Current(); ok || empty.Progress() != 0 {
		t.Error("Expected empty session")
	}
}

func TestCourseFormFor(t *testing.T) {
	doc := domain.Defaults()
	form := CourseFormFor(doc.Courses[0], doc.Timetable)
	if len(form.Schedules) != 2 || form.Schedules[1].Day != domain.Wednesday {
		t.Errorf("Expected the two course-1 sessions, got %+v", form.Schedules)
	}
	if err := form.Validate(); err != nil {
		t.Errorf("Expected prefilled form to validate: %v", err)
	}

	bare := CourseFormFor(domain.Course{ID: "x"}, doc.Timetable)
	if len(bare.Schedules) != 1 {
		t.Errorf("Expected one default schedule, got %d", len(bare.Schedules))
	}
}

func TestMemoRecomputesOnRevision(t *testing.T) {
	calls := 0
	m := NewMemo(func() int { calls++; return calls })

	m.Get(1)
	m.Get(1)
	if got := m.Get(2); got != 2 || calls != 2 {
		t.Errorf("Expected two computations, got %d", calls)
	}
}
