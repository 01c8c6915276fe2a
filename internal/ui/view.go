package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/nzaccagnino/studydesk/internal/api"
	"github.com/nzaccagnino/studydesk/internal/domain"
	"github.com/nzaccagnino/studydesk/internal/i18n"
	"github.com/nzaccagnino/studydesk/internal/views"
)

// rows lists the selectable lines of the current section.
func (m Model) rows() []row {
	t := i18n.T()
	var rows []row

	switch m.section {
	case SectionNotes:
		g := views.GroupNotes(m.doc.Notes, m.doc.Courses, m.doc.NoteFolders)
		for _, b := range g.Courses {
			rows = append(rows, row{kind: kindHeading, id: b.ID, label: b.Name})
			rows = appendNotes(rows, b.Items)
		}
		for _, b := range g.Folders {
			rows = append(rows, row{kind: kindNoteFolder, id: b.ID, label: b.Name})
			rows = appendNotes(rows, b.Items)
		}
		if len(g.Uncategorized) > 0 {
			rows = append(rows, row{kind: kindHeading, label: t.Uncategorized})
			rows = appendNotes(rows, g.Uncategorized)
		}

	case SectionFlashcards:
		if m.openDeck != "" {
			for _, c := range views.DeckCards(m.doc.Flashcards, m.openDeck) {
				rows = append(rows, row{kind: kindCard, id: c.ID, label: c.Front})
			}
			break
		}
		g := views.GroupDecks(m.doc.Decks, m.doc.Courses, m.doc.DeckFolders)
		counts := views.CardCounts(m.doc.Flashcards)
		for _, b := range g.Courses {
			rows = append(rows, row{kind: kindHeading, id: b.ID, label: b.Name})
			rows = appendDecks(rows, b.Items, counts)
		}
		for _, b := range g.Folders {
			rows = append(rows, row{kind: kindDeckFolder, id: b.ID, label: b.Name})
			rows = appendDecks(rows, b.Items, counts)
		}
		if len(g.Uncategorized) > 0 {
			rows = append(rows, row{kind: kindHeading, label: t.Uncategorized})
			rows = appendDecks(rows, g.Uncategorized, counts)
		}

	case SectionTasks:
		todo, done := views.SplitTasks(m.doc.Tasks)
		rows = append(rows, row{kind: kindHeading, label: fmt.Sprintf("%s (%d)", t.Todo, len(todo))})
		for _, task := range todo {
			rows = append(rows, row{kind: kindTask, id: task.ID, label: m.taskLabel(task), indent: true})
		}
		rows = append(rows, row{kind: kindHeading, label: fmt.Sprintf("%s (%d)", t.Completed, len(done))})
		for _, task := range done {
			rows = append(rows, row{kind: kindTask, id: task.ID, label: m.taskLabel(task), indent: true})
		}

	case SectionCourses, SectionPerformance:
		for _, c := range m.doc.Courses {
			rows = append(rows, row{kind: kindCourse, id: c.ID, label: c.Code + "  " + c.Name})
		}
	}
	return rows
}

func appendNotes(rows []row, notes []domain.Note) []row {
	for _, n := range notes {
		rows = append(rows, row{kind: kindNote, id: n.ID, label: NoteIcon + " " + n.Title, indent: true})
	}
	return rows
}

func appendDecks(rows []row, decks []domain.Deck, counts map[string]int) []row {
	for _, d := range decks {
		label := fmt.Sprintf("%s %s  %s", DeckIcon, d.Name, MutedStyle.Render(fmt.Sprintf(i18n.T().CardsCount, counts[d.ID])))
		rows = append(rows, row{kind: kindDeck, id: d.ID, label: label, indent: true})
	}
	return rows
}

func (m Model) taskLabel(task domain.Task) string {
	box := TaskTodo
	if task.Completed {
		box = TaskDone
	}
	label := box + " " + task.Title
	if course, ok := m.course(task.CourseID); ok {
		label += " " + CourseStyle(course.Color).Render(course.Code)
	}
	if task.DueDate != "" {
		label += " " + MutedStyle.Render(task.DueDate)
	}
	return label
}

func (m Model) listWidth() int {
	return int(float64(m.width) * 0.40)
}

func (m Model) contentWidth() int {
	return m.width - m.listWidth()
}

func (m Model) contentHeight() int {
	return m.height - 6
}

func (m Model) listHeight() int {
	return m.contentHeight() - 2
}

func (m Model) View() string {
	t := i18n.T()

	if m.width == 0 {
		return t.Loading
	}

	switch m.mode {
	case ModeHelp:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.renderHelp())
	case ModeForm:
		if m.form != nil {
			return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.form.view(min(m.width-4, 64)))
		}
	case ModeAlert:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.renderAlert())
	case ModeConfirmDelete:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.renderConfirmDialog())
	case ModeReview:
		return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), m.renderReview(), m.renderStatus())
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), m.renderBody(), m.renderStatus())
}

func (m Model) renderHeader() string {
	tabs := make([]string, 0, sectionCount)
	for s := Section(0); s < sectionCount; s++ {
		label := fmt.Sprintf("%d %s", s+1, s.Title())
		if s == m.section {
			tabs = append(tabs, ActiveTabStyle.Render(label))
		} else {
			tabs = append(tabs, TabStyle.Render(label))
		}
	}
	return HeaderStyle.Width(m.width - 2).Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

func (m Model) renderBody() string {
	switch m.section {
	case SectionNotes, SectionFlashcards, SectionTasks, SectionCourses, SectionPerformance:
		return lipgloss.JoinHorizontal(lipgloss.Top, m.renderList(), m.renderDetail())
	case SectionSchedule:
		return PanelStyle.Width(m.width - 2).Height(m.contentHeight()).Render(m.renderCalendar())
	case SectionTimetable:
		return PanelStyle.Width(m.width - 2).Height(m.contentHeight()).Render(m.renderTimetable())
	default:
		return PanelStyle.Width(m.width - 2).Height(m.contentHeight()).Render(m.renderDashboard())
	}
}

func (m Model) renderList() string {
	t := i18n.T()
	rows := m.rows()
	height := m.listHeight()
	maxLen := m.listWidth() - 8

	var items []string
	if m.openDeck != "" {
		if deck, ok := m.deck(m.openDeck); ok {
			items = append(items, LabelStyle.Render("‹ "+deck.Name))
			height--
		}
	}
	if len(rows) == 0 {
		items = append(items, MutedStyle.Render(m.emptyMessage()))
	}

	for i := m.listOffset; i < len(rows) && i < m.listOffset+height; i++ {
		r := rows[i]
		prefix := ""
		if r.indent {
			prefix = "  "
		}
		label := truncate(r.label, maxLen)
		switch {
		case i == m.cursor:
			items = append(items, SelectedRowStyle.Render("▶ "+prefix+label))
		case r.kind == kindHeading:
			items = append(items, LabelStyle.Render("  "+label))
		case r.kind == kindNoteFolder || r.kind == kindDeckFolder:
			items = append(items, LabelStyle.Render("  "+FolderIcon+" "+label))
		default:
			items = append(items, "  "+prefix+label)
		}
	}
	if m.section == SectionFlashcards && len(rows) > 0 && m.openDeck == "" {
		items = append(items, "", MutedStyle.Render("r "+t.KeyReview+" · G "+t.KeyGenerate))
	}

	return ActivePanelStyle.Width(m.listWidth() - 2).Height(m.contentHeight()).Render(strings.Join(items, "\n"))
}

func (m Model) emptyMessage() string {
	t := i18n.T()
	switch m.section {
	case SectionNotes:
		return t.NoNotes
	case SectionFlashcards:
		if m.openDeck != "" {
			return t.NoCards
		}
		return t.NoDecks
	case SectionTasks:
		return t.NoTasks
	case SectionCourses, SectionPerformance:
		return t.NoCourses
	default:
		return t.Empty
	}
}

func (m Model) renderDetail() string {
	var lines []string
	if r, ok := m.selected(); ok {
		switch r.kind {
		case kindNote:
			lines = m.noteDetail(r.id)
		case kindCard:
			lines = m.cardDetail(r.id)
		case kindTask:
			lines = m.taskDetail(r.id)
		case kindDeck:
			lines = m.deckDetail(r.id)
		case kindCourse:
			if m.section == SectionPerformance {
				lines = m.gradeDetail(r.id)
			} else {
				lines = m.courseDetail(r.id)
			}
		}
	}
	return PanelStyle.Width(m.contentWidth() - 2).Height(m.contentHeight()).Render(strings.Join(lines, "\n"))
}

func (m Model) noteDetail(id string) []string {
	t := i18n.T()
	note, ok := m.note(id)
	if !ok {
		return nil
	}
	lines := []string{TitleStyle.Render(note.Title)}
	if len(note.Tags) > 0 {
		tags := make([]string, len(note.Tags))
		for i, tag := range note.Tags {
			tags[i] = TagStyle.Render(tag)
		}
		lines = append(lines, strings.Join(tags, " "), "")
	}
	lines = append(lines, MutedStyle.Render(fmt.Sprintf(t.LastModified, note.LastModified)), "")
	if m.mode == ModeEditing && m.editingNote == id {
		return append(lines, m.textarea.View())
	}
	if note.Content == "" {
		return append(lines, MutedStyle.Render(t.NotePlaceholder))
	}
	return append(lines, note.Content)
}

func (m Model) cardDetail(id string) []string {
	t := i18n.T()
	card, ok := m.card(id)
	if !ok {
		return nil
	}
	return []string{
		LabelStyle.Render(t.FieldFront),
		card.Front,
		"",
		LabelStyle.Render(t.FieldBack),
		card.Back,
		"",
		StatusStyle(card.Status).Render(string(card.Status)) + MutedStyle.Render(" · "+card.NextReviewDate),
	}
}

func (m Model) deckDetail(id string) []string {
	t := i18n.T()
	deck, ok := m.deck(id)
	if !ok {
		return nil
	}
	cards := views.DeckCards(m.doc.Flashcards, id)
	byStatus := make(map[domain.CardStatus]int)
	for _, c := range cards {
		byStatus[c.Status]++
	}
	lines := []string{
		TitleStyle.Render(DeckIcon + " " + deck.Name),
		fmt.Sprintf(t.CardsCount, len(cards)),
		"",
	}
	for _, s := range []domain.CardStatus{domain.CardReview, domain.CardLearning, domain.CardMastered} {
		lines = append(lines, StatusStyle(s).Render(fmt.Sprintf("%-9s %d", s, byStatus[s])))
	}
	return lines
}

func (m Model) taskDetail(id string) []string {
	t := i18n.T()
	task, ok := m.task(id)
	if !ok {
		return nil
	}
	lines := []string{TitleStyle.Render(task.Title)}
	if course, ok := m.course(task.CourseID); ok {
		lines = append(lines, CourseStyle(course.Color).Render(course.Code+" "+course.Name))
	}
	if task.DueDate != "" {
		lines = append(lines, LabelStyle.Render(t.FieldDueDate), task.DueDate)
	}
	if task.Weight != nil {
		lines = append(lines, LabelStyle.Render(t.FieldWeight), formatOptionalFloat(task.Weight))
	}
	if task.Graded() {
		lines = append(lines, LabelStyle.Render(t.FieldGrade),
			fmt.Sprintf("%s / %s", formatOptionalFloat(task.Grade), formatOptionalFloat(task.MaxGrade)))
	}
	return append(lines, "", MutedStyle.Render("Space "+t.KeyToggle+" · g "+t.KeyGrade))
}

func (m Model) courseDetail(id string) []string {
	t := i18n.T()
	course, ok := m.course(id)
	if !ok {
		return nil
	}
	lines := []string{
		CourseStyle(course.Color).Render(course.Code + "  " + course.Name),
		"",
		LabelStyle.Render(t.FieldInstr), course.Instructor,
		LabelStyle.Render(t.FieldTerm), string(course.Term),
		LabelStyle.Render(t.FieldSchedules),
	}
	for _, e := range m.doc.Timetable {
		if e.CourseID != id {
			continue
		}
		line := fmt.Sprintf("  %s %s-%s", e.Day, e.StartTime, e.EndTime)
		if e.Location != "" {
			line += MutedStyle.Render(" " + e.Location)
		}
		lines = append(lines, line)
	}
	return lines
}

func (m Model) gradeDetail(id string) []string {
	t := i18n.T()
	var sum views.GradeSummary
	found := false
	for _, s := range m.performance.Get(m.revision) {
		if s.Course.ID == id {
			sum, found = s, true
		}
	}
	if !found {
		return nil
	}

	lines := []string{
		CourseStyle(sum.Course.Color).Render(sum.Course.Code + "  " + sum.Course.Name),
		"",
		LabelStyle.Render(t.CurrentGrade),
		BandStyle(sum.Band()).Render(fmt.Sprintf("%.1f%%", sum.Current)) + " " + progressBar(sum.Current, 20),
		LabelStyle.Render(t.GradedWeight),
		fmt.Sprintf("%s %s", progressBar(sum.Progress, 20), MutedStyle.Render(fmt.Sprintf(t.ToDateSummary, sum.Progress))),
		"",
		LabelStyle.Render(fmt.Sprintf("%s (%d)", t.GradedTasks, sum.Graded)),
	}
	for _, task := range sum.Tasks {
		status := MutedStyle.Render(t.NotGradedYet)
		if task.Graded() {
			status = fmt.Sprintf("%s/%s · %s%%", formatOptionalFloat(task.Grade), formatOptionalFloat(task.MaxGrade), formatOptionalFloat(task.Weight))
		}
		lines = append(lines, fmt.Sprintf("  %s  %s", truncate(task.Title, 28), status))
	}
	return lines
}

// progressBar draws pct (0-100, clamped) as a bar of width cells.
func progressBar(pct float64, width int) string {
	filled := int(math.Round(math.Max(0, math.Min(pct, 100)) / 100 * float64(width)))
	return SelectedStyle.Render(strings.Repeat("█", filled)) + MutedStyle.Render(strings.Repeat("░", width-filled))
}

func (m Model) renderDashboard() string {
	t := i18n.T()
	sum := views.Dashboard(m.user, m.doc)

	stat := func(label string, n int) string {
		return lipgloss.NewStyle().Padding(0, 2).Render(LabelStyle.Render(fmt.Sprintf("%d", n)) + "\n" + MutedStyle.Render(label))
	}
	lines := []string{
		TitleStyle.Render(fmt.Sprintf(t.Welcome, sum.FirstName)),
		lipgloss.JoinHorizontal(lipgloss.Top,
			stat(t.TotalNotes, sum.TotalNotes),
			stat(t.TotalDecks, sum.TotalDecks),
			stat(t.TotalTasks, sum.TotalTasks),
			stat(t.CardsToReview, sum.CardsToReview),
		),
		"",
		LabelStyle.Render(t.RecentNotes),
	}
	for _, n := range sum.RecentNotes {
		lines = append(lines, "  "+NoteIcon+" "+n.Title+MutedStyle.Render("  "+n.LastModified))
	}
	lines = append(lines, "", LabelStyle.Render(t.UpcomingTasks))
	if len(sum.Upcoming) == 0 {
		lines = append(lines, MutedStyle.Render("  "+t.NoTasks))
	}
	for _, task := range sum.Upcoming {
		lines = append(lines, "  "+m.taskLabel(task))
	}
	lines = append(lines, "", LabelStyle.Render(t.DecksToReview))
	for _, d := range sum.DecksToReview {
		lines = append(lines, "  "+DeckIcon+" "+d.Name)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderCalendar() string {
	t := i18n.T()
	const cellWidth = 6

	header := TitleStyle.Render("‹ " + views.MonthTitle(m.calYear, m.calMonth) + " ›")
	var b strings.Builder
	for _, d := range []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"} {
		b.WriteString(LabelStyle.Render(fmt.Sprintf("%-*s", cellWidth, d)))
	}
	b.WriteString("\n")

	today := m.now().Format(views.DateLayout)
	cells := views.Calendar(m.calYear, m.calMonth, m.doc.Tasks)
	var monthTasks []domain.Task
	for i, c := range cells {
		cell := strings.Repeat(" ", cellWidth)
		if c != nil {
			label := fmt.Sprintf("%2d", c.Date.Day())
			if len(c.Tasks) > 0 {
				label += "•"
				monthTasks = append(monthTasks, c.Tasks...)
			}
			cell = fmt.Sprintf("%-*s", cellWidth, label)
			if c.Key == today {
				cell = SelectedStyle.Render(cell)
			}
		}
		b.WriteString(cell)
		if i%7 == 6 {
			b.WriteString("\n")
		}
	}

	lines := []string{header, b.String(), ""}
	if len(monthTasks) == 0 {
		lines = append(lines, MutedStyle.Render(t.NoTasksThisMonth))
	}
	for _, task := range monthTasks {
		lines = append(lines, m.taskLabel(task))
	}
	lines = append(lines, "", MutedStyle.Render("←/→ "+t.KeyLeft+"/"+t.KeyRight+" · t "+t.KeyToday+" · n "+t.KeyNew))
	return strings.Join(lines, "\n")
}

// renderTimetable draws the weekday grid, two lines per hour.
func (m Model) renderTimetable() string {
	const (
		linesPerHour = 2
		gutter       = 6
	)
	colWidth := max((m.width-gutter-6)/len(views.TimetableDays), 8)
	height := (views.DayEndHour - views.DayStartHour) * linesPerHour
	layout := views.TimetableLayout(m.doc.Timetable, m.doc.Courses, linesPerHour)

	columns := []string{m.timetableGutter(height, gutter, linesPerHour)}
	for _, day := range views.TimetableDays {
		cells := make([]string, height)
		for i := range cells {
			cells[i] = MutedStyle.Render("·" + strings.Repeat(" ", colWidth-1))
		}
		for _, b := range layout[day] {
			top := int(math.Round(b.Top))
			rows := max(int(math.Round(b.Height)), 1)
			style := CourseStyle(b.Course.Color)
			text := []string{b.Course.Code, b.Entry.StartTime + "-" + b.Entry.EndTime, b.Entry.Location}
			for i := 0; i < rows; i++ {
				if top+i < 0 || top+i >= height {
					continue
				}
				content := ""
				if i < len(text) {
					content = text[i]
				}
				cells[top+i] = style.Render("▌" + fmt.Sprintf("%-*s", colWidth-1, truncate(content, colWidth-1)))
			}
		}
		head := LabelStyle.Render(fmt.Sprintf("%-*s", colWidth, truncate(string(day), colWidth)))
		columns = append(columns, head+"\n"+strings.Join(cells, "\n"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

func (m Model) timetableGutter(height, width, linesPerHour int) string {
	lines := []string{strings.Repeat(" ", width)}
	for i := 0; i < height; i++ {
		if i%linesPerHour == 0 {
			lines = append(lines, MutedStyle.Render(fmt.Sprintf("%02d:00 ", views.DayStartHour+i/linesPerHour)))
		} else {
			lines = append(lines, strings.Repeat(" ", width))
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderReview() string {
	t := i18n.T()
	deckName := ""
	if deck, ok := m.deck(m.openDeck); ok {
		deckName = deck.Name
	}

	lines := []string{TitleStyle.Render(fmt.Sprintf(t.ReviewTitle, deckName))}
	card, ok := m.review.Current()
	if !ok {
		lines = append(lines, MutedStyle.Render(t.ReviewEmpty))
	} else {
		label, body := t.ReviewQuestion, card.Front
		if m.review.Flipped() {
			label, body = t.ReviewAnswer, card.Back
		}
		status := card.Status
		if current, ok := m.card(card.ID); ok {
			status = current.Status
		}
		lines = append(lines,
			fmt.Sprintf("%d / %d  %s", m.review.Index()+1, m.review.Len(), progressBar(m.review.Progress()*100, 20)),
			"",
			CardStyle.Width(min(m.width-8, 60)).Render(LabelStyle.Render(label)+"\n\n"+body),
			StatusStyle(status).Render(string(status)),
		)
	}
	lines = append(lines, "", MutedStyle.Render(t.ReviewHint+" · s "+t.KeyStatus))

	content := lipgloss.JoinVertical(lipgloss.Center, lines...)
	return lipgloss.Place(m.width, m.contentHeight()+2, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) renderStatus() string {
	t := i18n.T()

	left := fmt.Sprintf(" %s | %d %s | %d %s", m.section.Title(), len(m.doc.Notes), t.Notes, len(m.doc.Tasks), t.Tasks)
	switch {
	case !m.loaded, !m.persist:
		left += " | " + MutedStyle.Render(m.syncStatus())
	case m.syncState == api.StateDirty:
		left += " | " + ErrorStyle.Render("● "+m.syncStatus())
	default:
		left += " | " + TagStyle.Render("● "+m.syncStatus())
	}

	right := fmt.Sprintf("? %s | Ctrl+Q %s", t.Help, t.Exit)
	padding := max(m.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 0)
	return StatusBarStyle.Render(left + strings.Repeat(" ", padding) + right)
}

func (m Model) renderAlert() string {
	t := i18n.T()
	content := lipgloss.JoinVertical(
		lipgloss.Left,
		ErrorStyle.Render(t.InvalidForm),
		"",
		m.alert,
		"",
		MutedStyle.Render("[Enter] OK"),
	)
	return DialogStyle.Width(min(m.width-4, 56)).Render(content)
}

func (m Model) renderConfirmDialog() string {
	t := i18n.T()
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		TitleStyle.Render(t.DeleteTitle),
		fmt.Sprintf(t.DeleteConfirm, m.deleting.title),
		"",
		MutedStyle.Render("[Y] "+t.Yes+"  [N] "+t.No),
	)
	return DialogStyle.Width(44).Render(content)
}

func (m Model) renderHelp() string {
	t := i18n.T()
	groups := m.keys.FullHelp()
	titles := []string{t.HelpNavigation, t.HelpActions, t.HelpGeneral}

	var b strings.Builder
	for i, group := range groups {
		b.WriteString(LabelStyle.Render(titles[i]) + "\n")
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %s %s\n", KeyStyle.Render(fmt.Sprintf("%-10s", h.Key)), KeyHintStyle.Render(h.Desc)))
		}
		b.WriteString("\n")
	}
	b.WriteString(MutedStyle.Render(fmt.Sprintf("1-%d  %s", sectionCount, t.KeyTab)))

	return DialogStyle.Align(lipgloss.Left).Render(b.String())
}

// truncate shortens s to width cells, keeping styling intact.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if width <= 3 {
		return ansi.Truncate(s, width, "")
	}
	return ansi.Truncate(s, width, "...")
}
