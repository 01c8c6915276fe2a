package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nzaccagnino/studydesk/internal/domain"
	"github.com/nzaccagnino/studydesk/internal/i18n"
	"github.com/nzaccagnino/studydesk/internal/views"
)

func (m Model) courseChoices() []choice {
	out := []choice{{value: "", label: i18n.T().None}}
	for _, c := range m.doc.Courses {
		out = append(out, choice{value: c.ID, label: c.Code + " " + c.Name})
	}
	return out
}

func (m Model) noteFolderChoices() []choice {
	out := []choice{{value: "", label: i18n.T().None}}
	for _, f := range m.doc.NoteFolders {
		out = append(out, choice{value: f.ID, label: f.Name})
	}
	return out
}

func (m Model) deckFolderChoices() []choice {
	out := []choice{{value: "", label: i18n.T().None}}
	for _, f := range m.doc.DeckFolders {
		out = append(out, choice{value: f.ID, label: f.Name})
	}
	return out
}

func splitTags(s string) []string {
	tags := []string{}
	for _, tag := range strings.Split(s, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// parseOptionalFloat reads a number field. Blank means absent.
func parseOptionalFloat(field, s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, &domain.ValidationError{Fields: []domain.FieldError{{Field: field, Message: "must be a number"}}}
	}
	return domain.Float(v), nil
}

func formatOptionalFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

var errScheduleFormat = &domain.ValidationError{Fields: []domain.FieldError{
	{Field: "schedules", Message: "must look like Monday 09:00-10:00 Room"},
}}

// parseSchedules reads "Day HH:MM-HH:MM [location]" entries separated by
// semicolons. Day names match case-insensitively.
func parseSchedules(s string) ([]domain.CourseSchedule, error) {
	var out []domain.CourseSchedule
	for _, part := range strings.Split(s, ";") {
		fields := strings.Fields(part)
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 2 {
			return nil, errScheduleFormat
		}
		start, end, ok := strings.Cut(fields[1], "-")
		if !ok {
			return nil, errScheduleFormat
		}
		day := domain.Weekday(fields[0])
		for _, d := range domain.Weekdays {
			if strings.EqualFold(string(d), fields[0]) {
				day = d
			}
		}
		out = append(out, domain.CourseSchedule{
			Day:       day,
			StartTime: start,
			EndTime:   end,
			Location:  strings.Join(fields[2:], " "),
		})
	}
	return out, nil
}

func formatSchedules(schedules []domain.CourseSchedule) string {
	parts := make([]string, 0, len(schedules))
	for _, sc := range schedules {
		part := fmt.Sprintf("%s %s-%s", sc.Day, sc.StartTime, sc.EndTime)
		if sc.Location != "" {
			part += " " + sc.Location
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, "; ")
}

func (m Model) noteForm(note *domain.Note) *form {
	t := i18n.T()
	st := m.store

	title := t.NewNote
	var current domain.Note
	if note != nil {
		title = t.EditNote
		current = *note
	}

	f := newForm(title, func(f *form) (tea.Cmd, error) {
		input := domain.NoteForm{
			Title:    f.value("title"),
			Tags:     splitTags(f.value("tags")),
			CourseID: f.value("course"),
			FolderID: f.value("folder"),
		}
		if err := input.Validate(); err != nil {
			return nil, err
		}
		if note == nil {
			st.AddNote(input)
			return nil, nil
		}
		st.UpdateNote(note.ID, domain.NotePatch{
			Title:    domain.Set(input.Title),
			Tags:     domain.Set(input.Tags),
			CourseID: domain.Set(input.CourseID),
			FolderID: domain.Set(input.FolderID),
		})
		return nil, nil
	})
	return f.text("title", t.FieldTitle, current.Title).
		text("tags", t.FieldTags, strings.Join(current.Tags, ", ")).
		pick("course", t.FieldCourse, m.courseChoices(), current.CourseID).
		pick("folder", t.FieldFolder, m.noteFolderChoices(), current.FolderID)
}

func (m Model) noteFolderForm(folder *domain.NoteFolder) *form {
	t := i18n.T()
	st := m.store

	title, name := t.NewFolder, ""
	if folder != nil {
		title, name = t.RenameFolder, folder.Name
	}
	return newForm(title, func(f *form) (tea.Cmd, error) {
		input := domain.FolderForm{Name: f.value("name")}
		if err := input.Validate(); err != nil {
			return nil, err
		}
		if folder == nil {
			st.AddNoteFolder(input.Name)
		} else {
			st.UpdateNoteFolder(folder.ID, input.Name)
		}
		return nil, nil
	}).text("name", t.FieldName, name)
}

func (m Model) deckFolderForm(folder *domain.DeckFolder) *form {
	t := i18n.T()
	st := m.store

	title, name := t.NewFolder, ""
	if folder != nil {
		title, name = t.RenameFolder, folder.Name
	}
	return newForm(title, func(f *form) (tea.Cmd, error) {
		input := domain.FolderForm{Name: f.value("name")}
		if err := input.Validate(); err != nil {
			return nil, err
		}
		if folder == nil {
			st.AddDeckFolder(input.Name)
		} else {
			st.UpdateDeckFolder(folder.ID, input.Name)
		}
		return nil, nil
	}).text("name", t.FieldName, name)
}

func (m Model) deckForm(deck *domain.Deck) *form {
	t := i18n.T()
	st := m.store

	title := t.NewDeck
	var current domain.Deck
	if deck != nil {
		title = t.EditDeck
		current = *deck
	}
	return newForm(title, func(f *form) (tea.Cmd, error) {
		input := domain.DeckForm{
			Name:     f.value("name"),
			CourseID: f.value("course"),
			FolderID: f.value("folder"),
		}
		if err := input.Validate(); err != nil {
			return nil, err
		}
		if deck == nil {
			st.AddDeck(input)
			return nil, nil
		}
		st.UpdateDeck(deck.ID, domain.DeckPatch{
			Name:     domain.Set(input.Name),
			CourseID: domain.Set(input.CourseID),
			FolderID: domain.Set(input.FolderID),
		})
		return nil, nil
	}).
		text("name", t.FieldName, current.Name).
		pick("course", t.FieldCourse, m.courseChoices(), current.CourseID).
		pick("folder", t.FieldFolder, m.deckFolderChoices(), current.FolderID)
}

func (m Model) cardForm(deckID string, card *domain.Flashcard) *form {
	t := i18n.T()
	st := m.store

	title := t.NewCard
	var current domain.Flashcard
	if card != nil {
		title = t.EditCard
		current = *card
	}
	return newForm(title, func(f *form) (tea.Cmd, error) {
		input := domain.CardForm{DeckID: deckID, Front: f.value("front"), Back: f.value("back")}
		if err := input.Validate(); err != nil {
			return nil, err
		}
		if card == nil {
			st.AddFlashcard(input)
			return nil, nil
		}
		st.UpdateFlashcard(card.ID, domain.FlashcardPatch{
			Front: domain.Set(input.Front),
			Back:  domain.Set(input.Back),
		})
		return nil, nil
	}).
		text("front", t.FieldFront, current.Front).
		text("back", t.FieldBack, current.Back)
}

func (m Model) courseForm(course *domain.Course) *form {
	t := i18n.T()
	st := m.store

	title := t.NewCourse
	initial := views.NewCourseForm()
	if course != nil {
		title = t.EditCourse
		initial = views.CourseFormFor(*course, m.doc.Timetable)
	}

	terms := make([]choice, len(domain.Terms))
	for i, term := range domain.Terms {
		terms[i] = choice{value: string(term), label: string(term)}
	}
	colors := make([]choice, len(domain.ThemeColors))
	for i, c := range domain.ThemeColors {
		colors[i] = choice{value: string(c), label: CourseStyle(c).Render("■ " + string(c))}
	}

	return newForm(title, func(f *form) (tea.Cmd, error) {
		schedules, err := parseSchedules(f.value("schedules"))
		if err != nil {
			return nil, err
		}
		input := domain.CourseForm{
			Name:       f.value("name"),
			Code:       f.value("code"),
			Instructor: f.value("instructor"),
			Term:       domain.Term(f.value("term")),
			Color:      domain.ThemeColor(f.value("color")),
			Schedules:  schedules,
		}
		if err := input.Validate(); err != nil {
			return nil, err
		}
		if course == nil {
			st.AddCourse(input)
		} else {
			st.UpdateCourse(course.ID, input)
		}
		return nil, nil
	}).
		withHint(t.SchedulesHint).
		text("name", t.FieldName, initial.Name).
		text("code", t.FieldCode, initial.Code).
		text("instructor", t.FieldInstr, initial.Instructor).
		pick("term", t.FieldTerm, terms, string(initial.Term)).
		pick("color", t.FieldColor, colors, string(initial.Color)).
		text("schedules", t.FieldSchedules, formatSchedules(initial.Schedules))
}

func (m Model) taskForm(task *domain.Task) *form {
	t := i18n.T()
	st := m.store

	title := t.NewTask
	var current domain.Task
	if task != nil {
		title = t.EditTask
		current = *task
	}
	return newForm(title, func(f *form) (tea.Cmd, error) {
		weight, err := parseOptionalFloat("weight", f.value("weight"))
		if err != nil {
			return nil, err
		}
		input := domain.TaskForm{
			Title:    f.value("title"),
			CourseID: f.value("course"),
			DueDate:  f.value("due"),
			Weight:   weight,
		}
		if err := input.Validate(); err != nil {
			return nil, err
		}
		if task == nil {
			st.AddTask(input)
			return nil, nil
		}
		st.UpdateTask(task.ID, domain.TaskPatch{
			Title:    domain.Set(input.Title),
			CourseID: domain.Set(input.CourseID),
			DueDate:  domain.Set(input.DueDate),
			Weight:   domain.Set(input.Weight),
		})
		return nil, nil
	}).
		text("title", t.FieldTitle, current.Title).
		pick("course", t.FieldCourse, m.courseChoices(), current.CourseID).
		text("due", t.FieldDueDate, current.DueDate).
		text("weight", t.FieldWeight, formatOptionalFloat(current.Weight))
}

func (m Model) gradeForm(task domain.Task) *form {
	t := i18n.T()
	st := m.store

	return newForm(t.EditGrade+": "+task.Title, func(f *form) (tea.Cmd, error) {
		var input domain.GradeForm
		var err error
		if input.Grade, err = parseOptionalFloat("grade", f.value("grade")); err != nil {
			return nil, err
		}
		if input.MaxGrade, err = parseOptionalFloat("maxGrade", f.value("max")); err != nil {
			return nil, err
		}
		if input.Weight, err = parseOptionalFloat("weight", f.value("weight")); err != nil {
			return nil, err
		}
		if err := input.Validate(); err != nil {
			return nil, err
		}
		st.UpdateTask(task.ID, input.Patch())
		return nil, nil
	}).
		text("grade", t.FieldGrade, formatOptionalFloat(task.Grade)).
		text("max", t.FieldMaxGrade, formatOptionalFloat(task.MaxGrade)).
		text("weight", t.FieldWeight, formatOptionalFloat(task.Weight))
}

var errGenerateSelection = errors.New("note and deck are required")

// generateForm picks a source note and a destination deck. Submitting keeps
// the dialog open until the cards arrive or an error is shown in place.
func (m Model) generateForm(noteID, deckID string) *form {
	t := i18n.T()

	notes := make([]choice, 0, len(m.doc.Notes))
	for _, n := range m.doc.Notes {
		notes = append(notes, choice{value: n.ID, label: n.Title})
	}
	decks := make([]choice, 0, len(m.doc.Decks))
	for _, d := range m.doc.Decks {
		decks = append(decks, choice{value: d.ID, label: d.Name})
	}

	return newForm(t.GenerateCards, func(f *form) (tea.Cmd, error) {
		note, ok := m.note(f.value("note"))
		deck := f.value("deck")
		if !ok || deck == "" {
			f.busy = true
			return func() tea.Msg { return generatedMsg{err: errGenerateSelection} }, nil
		}
		f.busy = true
		return m.generate(note, deck), nil
	}).
		pick("note", t.FieldNote, notes, noteID).
		pick("deck", t.FieldDeck, decks, deckID)
}
