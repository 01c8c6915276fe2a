package ui

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nzaccagnino/studydesk/internal/api"
	"github.com/nzaccagnino/studydesk/internal/domain"
	"github.com/nzaccagnino/studydesk/internal/generator"
	"github.com/nzaccagnino/studydesk/internal/i18n"
	"github.com/nzaccagnino/studydesk/internal/logger"
	"github.com/nzaccagnino/studydesk/internal/store"
	"github.com/nzaccagnino/studydesk/internal/views"
)

type Section int

const (
	SectionDashboard Section = iota
	SectionNotes
	SectionFlashcards
	SectionTasks
	SectionSchedule
	SectionTimetable
	SectionCourses
	SectionPerformance
	sectionCount
)

func (s Section) Title() string {
	t := i18n.T()
	switch s {
	case SectionNotes:
		return t.Notes
	case SectionFlashcards:
		return t.Flashcards
	case SectionTasks:
		return t.Tasks
	case SectionSchedule:
		return t.Schedule
	case SectionTimetable:
		return t.Timetable
	case SectionCourses:
		return t.Courses
	case SectionPerformance:
		return t.Performance
	default:
		return t.Dashboard
	}
}

type Mode int

const (
	ModeNormal Mode = iota
	ModeForm
	ModeEditing
	ModeConfirmDelete
	ModeHelp
	ModeReview
	ModeAlert
)

type itemKind int

const (
	kindHeading itemKind = iota
	kindNote
	kindNoteFolder
	kindDeck
	kindDeckFolder
	kindCard
	kindTask
	kindCourse
)

// row is one line of a section list. Headings of courses and the
// uncategorized bucket carry no actions.
type row struct {
	kind   itemKind
	id     string
	label  string
	indent bool
}

type deleteTarget struct {
	kind  itemKind
	id    string
	title string
}

// Deps are the collaborators the UI drives.
type Deps struct {
	Store     *store.Store
	Syncer    *api.Syncer
	Generator *generator.Generator
	User      domain.User
	// Persist is false when no remote store is configured.
	Persist bool
	Log     *logger.Logger
	Now     func() time.Time
	Rand    *rand.Rand
}

type Model struct {
	ctx   context.Context
	store *store.Store
	sync  *api.Syncer
	gen   *generator.Generator
	user  domain.User
	log   *logger.Logger
	now   func() time.Time
	rng   *rand.Rand

	persist   bool
	loaded    bool
	syncState api.SyncState

	doc         domain.Document
	revision    uint64
	performance *views.Memo[[]views.GradeSummary]

	section    Section
	cursor     int
	listOffset int
	openDeck   string

	calYear  int
	calMonth time.Month

	mode        Mode
	form        *form
	textarea    textarea.Model
	editingNote string
	deleting    deleteTarget
	review      *views.ReviewSession
	alert       string
	alertReturn Mode

	width  int
	height int

	keys KeyMap
}

type tickMsg time.Time
type loadedMsg struct{}
type generatedMsg struct {
	deckID string
	cards  []domain.CardForm
	err    error
}

func NewModel(ctx context.Context, deps Deps) Model {
	t := i18n.T()

	ta := textarea.New()
	ta.Placeholder = t.NotePlaceholder
	ta.ShowLineNumbers = false

	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Log == nil {
		deps.Log = logger.NewNop()
	}
	if deps.Generator == nil {
		deps.Generator = &generator.Generator{}
	}

	now := deps.Now()
	st := deps.Store
	m := Model{
		ctx:      ctx,
		store:    st,
		sync:     deps.Syncer,
		gen:      deps.Generator,
		user:     deps.User,
		log:      deps.Log.WithComponent("ui"),
		now:      deps.Now,
		rng:      deps.Rand,
		persist:  deps.Persist,
		keys:     NewKeyMap(),
		textarea: ta,
		calYear:  now.Year(),
		calMonth: now.Month(),
		performance: views.NewMemo(func() []views.GradeSummary {
			doc := st.Snapshot()
			return views.Performance(doc.Courses, doc.Tasks)
		}),
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.load(), m.tickCmd())
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// load runs the single initial read of the remote document.
func (m Model) load() tea.Cmd {
	return func() tea.Msg {
		if m.sync != nil {
			m.sync.Start(m.ctx)
		}
		return loadedMsg{}
	}
}

func (m Model) generate(note domain.Note, deckID string) tea.Cmd {
	return func() tea.Msg {
		cards, err := generator.FromNote(m.ctx, m.gen, note, deckID)
		return generatedMsg{deckID: deckID, cards: cards, err: err}
	}
}

// refresh takes a new snapshot of the store and keeps the cursor in range.
func (m *Model) refresh() {
	m.doc = m.store.Snapshot()
	m.revision = m.store.Revision()
	if m.openDeck != "" && !m.hasDeck(m.openDeck) {
		m.openDeck = ""
	}
	rows := m.rows()
	if m.cursor >= len(rows) {
		m.cursor = len(rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.listOffset > m.cursor {
		m.listOffset = m.cursor
	}
}

func (m Model) hasDeck(id string) bool {
	for _, d := range m.doc.Decks {
		if d.ID == id {
			return true
		}
	}
	return false
}

func (m Model) syncStatus() string {
	t := i18n.T()
	if !m.loaded {
		return t.SyncLoading
	}
	if !m.persist {
		return t.SyncOff
	}
	switch m.syncState {
	case api.StateLoading:
		return t.SyncLoading
	case api.StateClean:
		return t.SyncSaved
	default:
		return t.SyncUnsaved
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textarea.SetWidth(m.contentWidth() - 4)
		m.textarea.SetHeight(m.contentHeight() - 4)

	case tickMsg:
		if m.sync != nil {
			m.syncState = m.sync.State()
		}
		if m.store.Revision() != m.revision {
			m.refresh()
		}
		return m, m.tickCmd()

	case loadedMsg:
		m.loaded = true
		if m.sync != nil {
			m.syncState = m.sync.State()
		}
		m.refresh()

	case generatedMsg:
		return m.handleGenerated(msg)

	case tea.KeyMsg:
		switch m.mode {
		case ModeForm:
			return m.handleFormKeys(msg)
		case ModeEditing:
			return m.handleEditingKeys(msg)
		case ModeConfirmDelete:
			return m.handleConfirmDeleteKeys(msg)
		case ModeReview:
			return m.handleReviewKeys(msg)
		case ModeAlert:
			if key.Matches(msg, m.keys.Enter) || key.Matches(msg, m.keys.Escape) {
				m.mode = m.alertReturn
				m.alert = ""
			}
			return m, nil
		case ModeHelp:
			if key.Matches(msg, m.keys.Escape) || key.Matches(msg, m.keys.Help) {
				m.mode = ModeNormal
			}
			return m, nil
		}
		return m.handleNormalKeys(msg)
	}

	return m, nil
}

func (m Model) handleGenerated(msg generatedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.log.WithError(msg.err).Warnw("Flashcard generation failed")
		if m.form != nil && m.form.busy {
			m.form.busy = false
			m.form.status = generatorMessage(msg.err)
		}
		return m, nil
	}

	m.store.AddFlashcardsBatch(msg.cards)
	m.log.Infow("Flashcards generated", "deck", msg.deckID, "count", len(msg.cards))
	if m.form != nil && m.form.busy {
		m.form = nil
		m.mode = ModeNormal
		m.section = SectionFlashcards
		m.openDeck = msg.deckID
		m.cursor = 0
	}
	m.refresh()
	return m, nil
}

func generatorMessage(err error) string {
	t := i18n.T()
	switch {
	case errors.Is(err, errGenerateSelection):
		return t.GenSelectBoth
	case errors.Is(err, generator.ErrNotConfigured):
		return t.GenNotConfigured
	case errors.Is(err, generator.ErrEmptySource):
		return t.GenEmptySource
	case errors.Is(err, generator.ErrNoCards):
		return t.GenNoCards
	default:
		return t.GenFailed
	}
}

func (m Model) selected() (row, bool) {
	rows := m.rows()
	if m.cursor >= 0 && m.cursor < len(rows) {
		return rows[m.cursor], true
	}
	return row{}, false
}

func (m *Model) switchSection(s Section) {
	m.section = (s + sectionCount) % sectionCount
	m.cursor = 0
	m.listOffset = 0
	m.openDeck = ""
}

func (m *Model) openForm(f *form) {
	m.form = f
	m.mode = ModeForm
}

// mutating reports keys that edit the store or open an editor for it.
func (m Model) mutating(msg tea.KeyMsg) bool {
	return key.Matches(msg, m.keys.Enter) ||
		key.Matches(msg, m.keys.New) ||
		key.Matches(msg, m.keys.NewFolder) ||
		key.Matches(msg, m.keys.Edit) ||
		key.Matches(msg, m.keys.Delete) ||
		key.Matches(msg, m.keys.Toggle) ||
		key.Matches(msg, m.keys.Grade) ||
		key.Matches(msg, m.keys.Status) ||
		key.Matches(msg, m.keys.Review) ||
		key.Matches(msg, m.keys.Generate)
}

func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Edits wait for the initial read so it cannot overwrite them.
	if !m.loaded && m.mutating(msg) {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp

	case key.Matches(msg, m.keys.Tab):
		m.switchSection(m.section + 1)

	case key.Matches(msg, m.keys.ShiftTab):
		m.switchSection(m.section - 1)

	case msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && msg.Runes[0] >= '1' && msg.Runes[0] < '1'+rune(sectionCount):
		m.switchSection(Section(msg.Runes[0] - '1'))

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			if m.cursor < m.listOffset {
				m.listOffset = m.cursor
			}
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows())-1 {
			m.cursor++
			if h := m.listHeight(); h > 0 && m.cursor >= m.listOffset+h {
				m.listOffset = m.cursor - h + 1
			}
		}

	case key.Matches(msg, m.keys.Left):
		if m.section == SectionSchedule {
			m.calYear, m.calMonth = views.AddMonths(m.calYear, m.calMonth, -1)
		}

	case key.Matches(msg, m.keys.Right):
		if m.section == SectionSchedule {
			m.calYear, m.calMonth = views.AddMonths(m.calYear, m.calMonth, 1)
		}

	case key.Matches(msg, m.keys.Today):
		if m.section == SectionSchedule {
			now := m.now()
			m.calYear, m.calMonth = now.Year(), now.Month()
		}

	case key.Matches(msg, m.keys.Escape):
		if m.openDeck != "" {
			deck := m.openDeck
			m.openDeck = ""
			m.cursor = 0
			for i, r := range m.rows() {
				if r.kind == kindDeck && r.id == deck {
					m.cursor = i
				}
			}
		}

	case key.Matches(msg, m.keys.Enter):
		return m.openSelected()

	case key.Matches(msg, m.keys.New):
		m.newItem()

	case key.Matches(msg, m.keys.NewFolder):
		switch {
		case m.section == SectionNotes:
			m.openForm(m.noteFolderForm(nil))
		case m.section == SectionFlashcards && m.openDeck == "":
			m.openForm(m.deckFolderForm(nil))
		}

	case key.Matches(msg, m.keys.Edit):
		m.editSelected()

	case key.Matches(msg, m.keys.Delete):
		m.confirmDelete()

	case key.Matches(msg, m.keys.Toggle):
		if r, ok := m.selected(); ok && r.kind == kindTask {
			if task, ok := m.task(r.id); ok {
				m.store.UpdateTask(task.ID, domain.TaskPatch{Completed: domain.Set(!task.Completed)})
				m.refresh()
			}
		}

	case key.Matches(msg, m.keys.Grade):
		if r, ok := m.selected(); ok && r.kind == kindTask {
			if task, ok := m.task(r.id); ok {
				m.openForm(m.gradeForm(task))
			}
		}

	case key.Matches(msg, m.keys.Status):
		if r, ok := m.selected(); ok && r.kind == kindCard {
			m.cycleCardStatus(r.id)
		}

	case key.Matches(msg, m.keys.Review):
		if m.section == SectionFlashcards {
			deckID := m.openDeck
			if r, ok := m.selected(); ok && deckID == "" && r.kind == kindDeck {
				deckID = r.id
			}
			if deckID != "" {
				m.startReview(deckID)
			}
		}

	case key.Matches(msg, m.keys.Generate):
		if m.section == SectionNotes || m.section == SectionFlashcards {
			noteID, deckID := "", m.openDeck
			if r, ok := m.selected(); ok {
				switch r.kind {
				case kindNote:
					noteID = r.id
				case kindDeck:
					deckID = r.id
				}
			}
			m.openForm(m.generateForm(noteID, deckID))
		}
	}

	return m, nil
}

func (m Model) openSelected() (tea.Model, tea.Cmd) {
	r, ok := m.selected()
	if !ok {
		return m, nil
	}
	switch r.kind {
	case kindNote:
		note, ok := m.note(r.id)
		if !ok {
			return m, nil
		}
		m.editingNote = note.ID
		m.textarea.SetValue(note.Content)
		m.textarea.Focus()
		m.mode = ModeEditing
	case kindDeck:
		m.openDeck = r.id
		m.cursor = 0
		m.listOffset = 0
	case kindCard:
		if card, ok := m.card(r.id); ok {
			m.openForm(m.cardForm(card.DeckID, &card))
		}
	case kindTask:
		if task, ok := m.task(r.id); ok {
			m.openForm(m.taskForm(&task))
		}
	case kindCourse:
		if m.section == SectionCourses {
			if course, ok := m.course(r.id); ok {
				m.openForm(m.courseForm(&course))
			}
		}
	}
	return m, nil
}

func (m *Model) newItem() {
	switch m.section {
	case SectionNotes:
		m.openForm(m.noteForm(nil))
	case SectionFlashcards:
		if m.openDeck != "" {
			m.openForm(m.cardForm(m.openDeck, nil))
		} else {
			m.openForm(m.deckForm(nil))
		}
	case SectionTasks, SectionSchedule, SectionDashboard:
		m.openForm(m.taskForm(nil))
	case SectionCourses, SectionTimetable:
		m.openForm(m.courseForm(nil))
	}
}

func (m *Model) editSelected() {
	r, ok := m.selected()
	if !ok {
		return
	}
	switch r.kind {
	case kindNote:
		if note, ok := m.note(r.id); ok {
			m.openForm(m.noteForm(&note))
		}
	case kindNoteFolder:
		m.openForm(m.noteFolderForm(&domain.NoteFolder{ID: r.id, Name: r.label}))
	case kindDeck:
		if deck, ok := m.deck(r.id); ok {
			m.openForm(m.deckForm(&deck))
		}
	case kindDeckFolder:
		m.openForm(m.deckFolderForm(&domain.DeckFolder{ID: r.id, Name: r.label}))
	case kindCard:
		if card, ok := m.card(r.id); ok {
			m.openForm(m.cardForm(card.DeckID, &card))
		}
	case kindTask:
		if task, ok := m.task(r.id); ok {
			m.openForm(m.taskForm(&task))
		}
	case kindCourse:
		if course, ok := m.course(r.id); ok {
			m.openForm(m.courseForm(&course))
		}
	}
}

func (m *Model) confirmDelete() {
	r, ok := m.selected()
	if !ok || r.kind == kindHeading {
		return
	}
	title := r.label
	if r.kind == kindTask {
		if task, ok := m.task(r.id); ok {
			title = task.Title
		}
	}
	m.deleting = deleteTarget{kind: r.kind, id: r.id, title: title}
	m.mode = ModeConfirmDelete
}

func (m Model) handleConfirmDeleteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Yes):
		m.remove(m.deleting)
		m.deleting = deleteTarget{}
		m.mode = ModeNormal
		m.refresh()
	case key.Matches(msg, m.keys.No):
		m.deleting = deleteTarget{}
		m.mode = ModeNormal
	}
	return m, nil
}

func (m Model) remove(target deleteTarget) {
	switch target.kind {
	case kindNote:
		m.store.DeleteNote(target.id)
	case kindNoteFolder:
		m.store.DeleteNoteFolder(target.id)
	case kindDeck:
		m.store.DeleteDeck(target.id)
	case kindDeckFolder:
		m.store.DeleteDeckFolder(target.id)
	case kindCard:
		m.store.DeleteFlashcard(target.id)
	case kindTask:
		m.store.DeleteTask(target.id)
	case kindCourse:
		m.store.DeleteCourse(target.id)
	}
	m.log.Debugw("Deleted", "kind", target.kind, "id", target.id)
}

func (m Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Escape) {
		m.form = nil
		m.mode = ModeNormal
		return m, nil
	}
	if m.form == nil || m.form.busy {
		return m, nil
	}

	cmd, done, err := m.form.update(msg, m.keys)
	if err != nil {
		m.alert = formatFormError(err)
		m.alertReturn = ModeForm
		m.mode = ModeAlert
		return m, nil
	}
	if done {
		m.form = nil
		m.mode = ModeNormal
		m.refresh()
	}
	return m, cmd
}

func formatFormError(err error) string {
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		return err.Error()
	}
	lines := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		lines = append(lines, fmt.Sprintf("• %s %s", f.Field, f.Message))
	}
	return strings.Join(lines, "\n")
}

func (m Model) handleEditingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, m.keys.Escape):
		m.saveNoteContent()
		m.mode = ModeNormal
		m.textarea.Blur()
		m.editingNote = ""
		m.refresh()

	case key.Matches(msg, m.keys.Save):
		m.saveNoteContent()
		m.refresh()

	case key.Matches(msg, m.keys.Tab):
		m.textarea.InsertString("    ")

	default:
		m.textarea, cmd = m.textarea.Update(msg)
	}

	return m, cmd
}

// saveNoteContent writes the editor content back when it changed.
func (m Model) saveNoteContent() {
	note, ok := m.note(m.editingNote)
	if !ok {
		return
	}
	if content := m.textarea.Value(); content != note.Content {
		m.store.UpdateNote(note.ID, domain.NotePatch{Content: domain.Set(content)})
	}
}

func (m *Model) startReview(deckID string) {
	m.review = views.NewReviewSession(views.DeckCards(m.doc.Flashcards, deckID), m.rng)
	m.openDeck = deckID
	m.mode = ModeReview
}

func (m Model) handleReviewKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.review = nil
		m.mode = ModeNormal
		m.cursor = 0
	case m.review == nil || m.review.Empty():
	case key.Matches(msg, m.keys.Toggle), key.Matches(msg, m.keys.Enter):
		m.review.Flip()
	case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Down):
		m.review.Next()
	case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Up):
		m.review.Prev()
	case key.Matches(msg, m.keys.Status):
		if card, ok := m.review.Current(); ok {
			m.cycleCardStatus(card.ID)
		}
	}
	return m, nil
}

var statusCycle = map[domain.CardStatus]domain.CardStatus{
	domain.CardReview:   domain.CardLearning,
	domain.CardLearning: domain.CardMastered,
	domain.CardMastered: domain.CardReview,
}

func (m *Model) cycleCardStatus(id string) {
	card, ok := m.card(id)
	if !ok {
		return
	}
	next, ok := statusCycle[card.Status]
	if !ok {
		next = domain.CardReview
	}
	m.store.UpdateFlashcard(id, domain.FlashcardPatch{Status: domain.Set(next)})
	m.refresh()
}

// Lookups over the current snapshot.

func (m Model) note(id string) (domain.Note, bool) {
	for _, n := range m.doc.Notes {
		if n.ID == id {
			return n, true
		}
	}
	return domain.Note{}, false
}

func (m Model) deck(id string) (domain.Deck, bool) {
	for _, d := range m.doc.Decks {
		if d.ID == id {
			return d, true
		}
	}
	return domain.Deck{}, false
}

func (m Model) card(id string) (domain.Flashcard, bool) {
	for _, c := range m.doc.Flashcards {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Flashcard{}, false
}

func (m Model) task(id string) (domain.Task, bool) {
	for _, t := range m.doc.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Task{}, false
}

func (m Model) course(id string) (domain.Course, bool) {
	for _, c := range m.doc.Courses {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Course{}, false
}
