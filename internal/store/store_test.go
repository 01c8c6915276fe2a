package store

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nzaccagnino/studydesk/internal/domain"
)

func seqIDs() Option {
	n := 0
	return WithIDGenerator(func(prefix string) string {
		n++
		return fmt.Sprintf("%s-new%d", prefix, n)
	})
}

func newTestStore() *Store {
	return New(domain.Defaults(), seqIDs(), WithIconPicker(func() string { return "atom" }))
}

func TestDeleteDeckCascadesToFlashcards(t *testing.T) {
	s := newTestStore()
	s.DeleteDeck("deck-1")

	doc := s.Snapshot()
	for _, d := range doc.Decks {
		if d.ID == "deck-1" {
			t.Fatal("Expected deck-1 to be removed")
		}
	}
	for _, c := range doc.Flashcards {
		if c.DeckID == "deck-1" {
			t.Errorf("Expected flashcard %s of deck-1 to be removed", c.ID)
		}
	}
	if len(doc.Flashcards) != 2 {
		t.Errorf("Expected 2 remaining flashcards, got %d", len(doc.Flashcards))
	}
}

func TestDeleteCourseCascades(t *testing.T) {
	s := newTestStore()
	s.DeleteCourse("course-1")

	doc := s.Snapshot()
	if len(doc.Courses) != 2 {
		t.Errorf("Expected 2 courses, got %d", len(doc.Courses))
	}
	for _, task := range doc.Tasks {
		if task.CourseID == "course-1" {
			t.Errorf("Expected task %s to be removed", task.ID)
		}
	}
	for _, e := range doc.Timetable {
		if e.CourseID == "course-1" {
			t.Errorf("Expected timetable entry %s to be removed", e.ID)
		}
	}
	if len(doc.Notes) != 3 {
		t.Errorf("Expected notes to survive, got %d", len(doc.Notes))
	}
	for _, n := range doc.Notes {
		if n.CourseID == "course-1" {
			t.Errorf("Expected note %s to be detached", n.ID)
		}
	}
	for _, d := range doc.Decks {
		if d.CourseID == "course-1" {
			t.Errorf("Expected deck %s to be detached", d.ID)
		}
	}
	if len(doc.Flashcards) != 5 {
		t.Errorf("Expected flashcards to survive, got %d", len(doc.Flashcards))
	}
}

func TestDeleteFoldersDetachItems(t *testing.T) {
	s := newTestStore()
	s.DeleteNoteFolder("nf-1")
	s.DeleteDeckFolder("df-1")

	doc := s.Snapshot()
	if len(doc.Notes) != 3 || doc.Notes[0].FolderID != "" {
		t.Errorf("Expected note-1 kept without folder, got %+v", doc.Notes[0])
	}
	if len(doc.Decks) != 3 || doc.Decks[2].FolderID != "" {
		t.Errorf("Expected deck-3 kept without folder, got %+v", doc.Decks[2])
	}
	if len(doc.NoteFolders) != 1 || len(doc.DeckFolders) != 0 {
		t.Errorf("Expected folders removed, got %d note folders %d deck folders", len(doc.NoteFolders), len(doc.DeckFolders))
	}
}

func TestUnknownIDIsSilentNoOp(t *testing.T) {
	s := newTestStore()
	notified := 0
	s.Subscribe(func(Change) { notified++ })
	before := s.Snapshot()

	s.UpdateNote("missing", domain.NotePatch{Title: domain.Set("x")})
	s.DeleteNote("missing")
	s.UpdateDeck("missing", domain.DeckPatch{Name: domain.Set("x")})
	s.DeleteDeck("missing")
	s.UpdateFlashcard("missing", domain.FlashcardPatch{Front: domain.Set("x")})
	s.DeleteFlashcard("missing")
	s.UpdateCourse("missing", domain.CourseForm{Name: "x"})
	s.DeleteCourse("missing")
	s.UpdateTask("missing", domain.TaskPatch{Completed: domain.Set(true)})
	s.DeleteTask("missing")
	s.UpdateNoteFolder("missing", "x")
	s.DeleteNoteFolder("missing")
	s.UpdateDeckFolder("missing", "x")
	s.DeleteDeckFolder("missing")

	if diff := cmp.Diff(before, s.Snapshot()); diff != "" {
		t.Errorf("Expected unchanged state (-before +after):\n%s", diff)
	}
	if notified != 0 {
		t.Errorf("Expected no notifications, got %d", notified)
	}
	if s.Revision() != 0 {
		t.Errorf("Expected revision 0, got %d", s.Revision())
	}
}

func TestAddOrdering(t *testing.T) {
	s := newTestStore()

	note := s.AddNote(domain.NoteForm{Title: "New"})
	folder := s.AddNoteFolder("Reading")
	deck := s.AddDeck(domain.DeckForm{Name: "Chemistry"})
	task := s.AddTask(domain.TaskForm{Title: "Lab report", Weight: domain.Float(20)})

	doc := s.Snapshot()
	if doc.Notes[0].ID != note.ID {
		t.Errorf("Expected new note first, got %s", doc.Notes[0].ID)
	}
	if doc.Notes[0].LastModified != "Just now" || doc.Notes[0].Tags == nil {
		t.Errorf("Expected Just now and empty tags, got %+v", doc.Notes[0])
	}
	if doc.NoteFolders[len(doc.NoteFolders)-1].ID != folder.ID {
		t.Errorf("Expected new folder last")
	}
	if last := doc.Decks[len(doc.Decks)-1]; last.ID != deck.ID || last.Icon != "atom" {
		t.Errorf("Expected new deck last with picked icon, got %+v", last)
	}
	if doc.Tasks[0].ID != task.ID || doc.Tasks[0].Completed {
		t.Errorf("Expected new incomplete task first, got %+v", doc.Tasks[0])
	}
}

func TestAddFlashcardsBatchKeepsOrder(t *testing.T) {
	s := newTestStore()
	notified := 0
	s.Subscribe(func(Change) { notified++ })

	cards := s.AddFlashcardsBatch([]domain.CardForm{
		{DeckID: "deck-2", Front: "A", Back: "1"},
		{DeckID: "deck-2", Front: "B", Back: "2"},
		{DeckID: "deck-2", Front: "C", Back: "3"},
	})

	if notified != 1 {
		t.Errorf("Expected a single state transition, got %d", notified)
	}
	doc := s.Snapshot()
	if len(doc.Flashcards) != 8 {
		t.Fatalf("Expected 8 flashcards, got %d", len(doc.Flashcards))
	}
	for i, c := range cards {
		if doc.Flashcards[i].ID != c.ID {
			t.Errorf("Position %d: expected %s, got %s", i, c.ID, doc.Flashcards[i].ID)
		}
		if c.Status != domain.CardReview || c.NextReviewDate != "Today" {
			t.Errorf("Expected Review/Today, got %s/%s", c.Status, c.NextReviewDate)
		}
	}
	if doc.Flashcards[3].ID != "card-1" {
		t.Errorf("Expected existing cards after the batch, got %s", doc.Flashcards[3].ID)
	}

	if got := s.AddFlashcardsBatch(nil); got != nil || notified != 1 {
		t.Errorf("Expected empty batch to be a no-op")
	}
}

func TestUpdateCourseReplacesTimetable(t *testing.T) {
	s := newTestStore()
	s.UpdateCourse("course-1", domain.CourseForm{
		Name:  "CS Fundamentals",
		Code:  "CS 101",
		Term:  domain.TermFullYear,
		Color: domain.ColorGreen,
		Schedules: []domain.CourseSchedule{
			{Day: domain.Tuesday, StartTime: "09:00", EndTime: "10:00", Location: "Lab"},
		},
	})

	doc := s.Snapshot()
	if doc.Courses[0].Name != "CS Fundamentals" || doc.Courses[0].Instructor != "" {
		t.Errorf("Expected course fields replaced, got %+v", doc.Courses[0])
	}
	var entries []domain.TimetableEntry
	for _, e := range doc.Timetable {
		if e.CourseID == "course-1" {
			entries = append(entries, e)
		}
	}
	want := []domain.TimetableEntry{
		{ID: "tt-new1", CourseID: "course-1", Day: domain.Tuesday, StartTime: "09:00", EndTime: "10:00", Location: "Lab"},
	}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Errorf("Timetable mismatch (-want +got):\n%s", diff)
	}
	if len(doc.Timetable) != 4 {
		t.Errorf("Expected other courses' entries kept, got %d entries", len(doc.Timetable))
	}
}

func TestAddCourseCreatesTimetableEntries(t *testing.T) {
	s := newTestStore()
	course := s.AddCourse(domain.CourseForm{
		Name: "Physics", Code: "PHYS 101", Term: domain.TermSemester2, Color: domain.ColorPurple,
		Schedules: []domain.CourseSchedule{
			{Day: domain.Monday, StartTime: "08:00", EndTime: "09:00"},
			{Day: domain.Thursday, StartTime: "14:00", EndTime: "15:30"},
		},
	})

	doc := s.Snapshot()
	if doc.Courses[0].ID != course.ID {
		t.Errorf("Expected new course first")
	}
	n := 0
	for _, e := range doc.Timetable {
		if e.CourseID == course.ID {
			n++
		}
	}
	if n != 2 {
		t.Errorf("Expected 2 timetable entries, got %d", n)
	}
}

func TestUpdateTaskGrades(t *testing.T) {
	s := newTestStore()
	s.UpdateTask("task-3", domain.GradeForm{Grade: domain.Float(70), MaxGrade: domain.Float(100), Weight: domain.Float(30)}.Patch())
	s.UpdateTask("task-1", domain.GradeForm{Weight: domain.Float(10)}.Patch())

	doc := s.Snapshot()
	var t3, t1 domain.Task
	for _, task := range doc.Tasks {
		switch task.ID {
		case "task-3":
			t3 = task
		case "task-1":
			t1 = task
		}
	}
	if !t3.Graded() || *t3.Grade != 70 {
		t.Errorf("Expected task-3 graded 70, got %+v", t3)
	}
	if t1.Grade != nil || t1.MaxGrade != nil || t1.Graded() {
		t.Errorf("Expected task-1 grade cleared, got %+v", t1)
	}
}

func TestListenersSeeKindAndRevision(t *testing.T) {
	s := newTestStore()
	var changes []Change
	s.Subscribe(func(c Change) { changes = append(changes, c) })

	s.UpdateNote("note-2", domain.NotePatch{Title: domain.Set("Renamed")})
	s.Replace(domain.Document{})

	want := []Change{
		{Kind: ChangeMutation, Revision: 1},
		{Kind: ChangeReplace, Revision: 2},
	}
	if diff := cmp.Diff(want, changes); diff != "" {
		t.Errorf("Changes mismatch (-want +got):\n%s", diff)
	}
	if !s.Snapshot().IsEmpty() {
		t.Error("Expected replaced document to be empty")
	}
}

func TestSnapshotIsolation(t *testing.T) {
	s := newTestStore()
	snap := s.Snapshot()
	snap.Notes[0].Title = "changed"

	if s.Snapshot().Notes[0].Title == "changed" {
		t.Error("Expected snapshot edits not to leak into the store")
	}
}
