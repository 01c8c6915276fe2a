package i18n

type Language string

const (
	Italian Language = "it"
	English Language = "en"
)

var currentLang = English

type Messages struct {
	// General
	Loading       string
	Error         string
	Cancel        string
	Yes           string
	No            string
	None          string
	Help          string
	Exit          string
	Uncategorized string
	Empty         string

	// Sections
	Dashboard   string
	Notes       string
	Flashcards  string
	Tasks       string
	Schedule    string
	Timetable   string
	Courses     string
	Performance string

	// Dashboard
	Welcome       string
	TotalNotes    string
	TotalDecks    string
	TotalTasks    string
	CardsToReview string
	RecentNotes   string
	UpcomingTasks string
	DecksToReview string

	// Lists
	NoNotes          string
	NoDecks          string
	NoCards          string
	NoTasks          string
	NoCourses        string
	Completed        string
	Todo             string
	CardsCount       string
	LastModified     string
	NotePlaceholder  string
	NoTasksThisMonth string

	// Forms
	NewNote        string
	EditNote       string
	NewFolder      string
	RenameFolder   string
	NewDeck        string
	EditDeck       string
	NewCard        string
	EditCard       string
	NewCourse      string
	EditCourse     string
	NewTask        string
	EditTask       string
	EditGrade      string
	GenerateCards  string
	FieldTitle     string
	FieldName      string
	FieldTags      string
	FieldCourse    string
	FieldFolder    string
	FieldFront     string
	FieldBack      string
	FieldCode      string
	FieldInstr     string
	FieldTerm      string
	FieldColor     string
	FieldSchedules string
	FieldDueDate   string
	FieldWeight    string
	FieldGrade     string
	FieldMaxGrade  string
	FieldNote      string
	FieldDeck      string
	SchedulesHint  string
	FormHint       string
	InvalidForm    string
	Generating     string

	// Generation errors
	GenNotConfigured string
	GenEmptySource   string
	GenNoCards       string
	GenFailed        string
	GenSelectBoth    string

	// Delete
	DeleteTitle   string
	DeleteConfirm string

	// Review
	ReviewTitle    string
	ReviewEmpty    string
	ReviewQuestion string
	ReviewAnswer   string
	ReviewHint     string

	// Performance
	CurrentGrade  string
	GradedWeight  string
	GradedTasks   string
	NotGradedYet  string
	ToDateSummary string

	// Sync
	SyncLoading string
	SyncSaved   string
	SyncUnsaved string
	SyncOff     string

	// Help
	HelpNavigation string
	HelpActions    string
	HelpGeneral    string

	// Key help
	KeyUp       string
	KeyDown     string
	KeyLeft     string
	KeyRight    string
	KeyEnter    string
	KeyEscape   string
	KeyNew      string
	KeyFolder   string
	KeyEdit     string
	KeyDelete   string
	KeyToggle   string
	KeyGrade    string
	KeyReview   string
	KeyGenerate string
	KeyStatus   string
	KeyToday    string
	KeyTab      string
	KeyShiftTab string
	KeySave     string
	KeyQuit     string
	KeyHelp     string

	// Login
	Username      string
	Password      string
	LoginFailed   string
	LoginExceeded string
}

var translations = map[Language]Messages{
	English: {
		Loading:       "Loading...",
		Error:         "Error",
		Cancel:        "Cancel",
		Yes:           "Yes",
		No:            "No",
		None:          "none",
		Help:          "Help",
		Exit:          "Quit",
		Uncategorized: "Uncategorized",
		Empty:         "Nothing here yet",

		Dashboard:   "Dashboard",
		Notes:       "Notes",
		Flashcards:  "Flashcards",
		Tasks:       "Tasks",
		Schedule:    "Schedule",
		Timetable:   "Timetable",
		Courses:     "Courses",
		Performance: "Performance",

		Welcome:       "Welcome back, %s!",
		TotalNotes:    "Total notes",
		TotalDecks:    "Flashcard decks",
		TotalTasks:    "Tasks",
		CardsToReview: "Cards to review",
		RecentNotes:   "Recent notes",
		UpcomingTasks: "Upcoming tasks",
		DecksToReview: "Decks to review",

		NoNotes:          "No notes yet. Press n to create one.",
		NoDecks:          "No decks yet. Press n to create one.",
		NoCards:          "This deck has no cards. Press n to add one.",
		NoTasks:          "No tasks.",
		NoCourses:        "No courses yet. Press n to add one.",
		Completed:        "Completed",
		Todo:             "To do",
		CardsCount:       "%d cards",
		LastModified:     "Last modified: %s",
		NotePlaceholder:  "Start writing...",
		NoTasksThisMonth: "No tasks due this month",

		NewNote:        "New note",
		EditNote:       "Edit note",
		NewFolder:      "New folder",
		RenameFolder:   "Rename folder",
		NewDeck:        "New deck",
		EditDeck:       "Edit deck",
		NewCard:        "New flashcard",
		EditCard:       "Edit flashcard",
		NewCourse:      "New course",
		EditCourse:     "Edit course",
		NewTask:        "New task",
		EditTask:       "Edit task",
		EditGrade:      "Grade",
		GenerateCards:  "Generate flashcards from note",
		FieldTitle:     "Title",
		FieldName:      "Name",
		FieldTags:      "Tags (comma separated)",
		FieldCourse:    "Course",
		FieldFolder:    "Folder",
		FieldFront:     "Front",
		FieldBack:      "Back",
		FieldCode:      "Code",
		FieldInstr:     "Instructor",
		FieldTerm:      "Term",
		FieldColor:     "Color",
		FieldSchedules: "Schedule",
		FieldDueDate:   "Due date (YYYY-MM-DD)",
		FieldWeight:    "Weight %",
		FieldGrade:     "Grade",
		FieldMaxGrade:  "Max grade",
		FieldNote:      "Note",
		FieldDeck:      "Destination deck",
		SchedulesHint:  "Monday 09:00-10:00 Room 1; Wednesday 14:00-15:30",
		FormHint:       "Tab next field · ←/→ change choice · Enter save · Esc cancel",
		InvalidForm:    "Please fix the form",
		Generating:     "Generating...",

		GenNotConfigured: "API key is not configured.",
		GenEmptySource:   "Selected note is empty or could not be found.",
		GenNoCards:       "No flashcards were generated. The note might not have enough content.",
		GenFailed:        "Failed to generate flashcards. Please check the API key and try again.",
		GenSelectBoth:    "Please select a note and a destination deck.",

		DeleteTitle:   "Delete",
		DeleteConfirm: "Delete '%s'?",

		ReviewTitle:    "Review: %s",
		ReviewEmpty:    "This deck has no cards to review.",
		ReviewQuestion: "Question",
		ReviewAnswer:   "Answer",
		ReviewHint:     "Space flip · ←/→ move · Esc exit",

		CurrentGrade:  "Current grade",
		GradedWeight:  "Graded weight",
		GradedTasks:   "Graded tasks",
		NotGradedYet:  "not graded",
		ToDateSummary: "%.0f%% of the final grade accounted for",

		SyncLoading: "Loading...",
		SyncSaved:   "Saved",
		SyncUnsaved: "Unsaved changes",
		SyncOff:     "Local only",

		HelpNavigation: "Navigation",
		HelpActions:    "Actions",
		HelpGeneral:    "General",

		KeyUp:       "up",
		KeyDown:     "down",
		KeyLeft:     "previous",
		KeyRight:    "next",
		KeyEnter:    "open",
		KeyEscape:   "back",
		KeyNew:      "new",
		KeyFolder:   "new folder",
		KeyEdit:     "edit",
		KeyDelete:   "delete",
		KeyToggle:   "toggle / flip",
		KeyGrade:    "grade",
		KeyReview:   "review",
		KeyGenerate: "generate",
		KeyStatus:   "card status",
		KeyToday:    "today",
		KeyTab:      "next section",
		KeyShiftTab: "previous section",
		KeySave:     "save",
		KeyQuit:     "quit",
		KeyHelp:     "help",

		Username:      "Username: ",
		Password:      "Password: ",
		LoginFailed:   "Invalid username or password.",
		LoginExceeded: "Too many failed attempts.",
	},
	Italian: {
		Loading:       "Caricamento...",
		Error:         "Errore",
		Cancel:        "Annulla",
		Yes:           "Sì",
		No:            "No",
		None:          "nessuno",
		Help:          "Aiuto",
		Exit:          "Esci",
		Uncategorized: "Senza categoria",
		Empty:         "Ancora niente qui",

		Dashboard:   "Panoramica",
		Notes:       "Note",
		Flashcards:  "Flashcard",
		Tasks:       "Attività",
		Schedule:    "Calendario",
		Timetable:   "Orario",
		Courses:     "Corsi",
		Performance: "Rendimento",

		Welcome:       "Bentornato, %s!",
		TotalNotes:    "Note totali",
		TotalDecks:    "Mazzi",
		TotalTasks:    "Attività",
		CardsToReview: "Carte da ripassare",
		RecentNotes:   "Note recenti",
		UpcomingTasks: "Prossime attività",
		DecksToReview: "Mazzi da ripassare",

		NoNotes:          "Nessuna nota. Premi n per crearne una.",
		NoDecks:          "Nessun mazzo. Premi n per crearne uno.",
		NoCards:          "Questo mazzo è vuoto. Premi n per aggiungere una carta.",
		NoTasks:          "Nessuna attività.",
		NoCourses:        "Nessun corso. Premi n per aggiungerne uno.",
		Completed:        "Completate",
		Todo:             "Da fare",
		CardsCount:       "%d carte",
		LastModified:     "Ultima modifica: %s",
		NotePlaceholder:  "Inizia a scrivere...",
		NoTasksThisMonth: "Nessuna scadenza questo mese",

		NewNote:        "Nuova nota",
		EditNote:       "Modifica nota",
		NewFolder:      "Nuova cartella",
		RenameFolder:   "Rinomina cartella",
		NewDeck:        "Nuovo mazzo",
		EditDeck:       "Modifica mazzo",
		NewCard:        "Nuova carta",
		EditCard:       "Modifica carta",
		NewCourse:      "Nuovo corso",
		EditCourse:     "Modifica corso",
		NewTask:        "Nuova attività",
		EditTask:       "Modifica attività",
		EditGrade:      "Voto",
		GenerateCards:  "Genera flashcard da una nota",
		FieldTitle:     "Titolo",
		FieldName:      "Nome",
		FieldTags:      "Tag (separati da virgola)",
		FieldCourse:    "Corso",
		FieldFolder:    "Cartella",
		FieldFront:     "Fronte",
		FieldBack:      "Retro",
		FieldCode:      "Codice",
		FieldInstr:     "Docente",
		FieldTerm:      "Periodo",
		FieldColor:     "Colore",
		FieldSchedules: "Orario",
		FieldDueDate:   "Scadenza (AAAA-MM-GG)",
		FieldWeight:    "Peso %",
		FieldGrade:     "Voto",
		FieldMaxGrade:  "Voto massimo",
		FieldNote:      "Nota",
		FieldDeck:      "Mazzo di destinazione",
		SchedulesHint:  "Monday 09:00-10:00 Aula 1; Wednesday 14:00-15:30",
		FormHint:       "Tab campo successivo · ←/→ cambia scelta · Invio salva · Esc annulla",
		InvalidForm:    "Correggi il modulo",
		Generating:     "Generazione...",

		GenNotConfigured: "La chiave API non è configurata.",
		GenEmptySource:   "La nota selezionata è vuota o non esiste.",
		GenNoCards:       "Nessuna flashcard generata. La nota potrebbe non avere abbastanza contenuto.",
		GenFailed:        "Generazione non riuscita. Controlla la chiave API e riprova.",
		GenSelectBoth:    "Seleziona una nota e un mazzo di destinazione.",

		DeleteTitle:   "Elimina",
		DeleteConfirm: "Eliminare '%s'?",

		ReviewTitle:    "Ripasso: %s",
		ReviewEmpty:    "Questo mazzo non ha carte da ripassare.",
		ReviewQuestion: "Domanda",
		ReviewAnswer:   "Risposta",
		ReviewHint:     "Spazio gira · ←/→ sposta · Esc esci",

		CurrentGrade:  "Voto attuale",
		GradedWeight:  "Peso valutato",
		GradedTasks:   "Attività valutate",
		NotGradedYet:  "non valutata",
		ToDateSummary: "%.0f%% del voto finale già valutato",

		SyncLoading: "Caricamento...",
		SyncSaved:   "Salvato",
		SyncUnsaved: "Modifiche non salvate",
		SyncOff:     "Solo locale",

		HelpNavigation: "Navigazione",
		HelpActions:    "Azioni",
		HelpGeneral:    "Generale",

		KeyUp:       "su",
		KeyDown:     "giù",
		KeyLeft:     "precedente",
		KeyRight:    "successivo",
		KeyEnter:    "apri",
		KeyEscape:   "indietro",
		KeyNew:      "nuovo",
		KeyFolder:   "nuova cartella",
		KeyEdit:     "modifica",
		KeyDelete:   "elimina",
		KeyToggle:   "completa / gira",
		KeyGrade:    "voto",
		KeyReview:   "ripassa",
		KeyGenerate: "genera",
		KeyStatus:   "stato carta",
		KeyToday:    "oggi",
		KeyTab:      "sezione successiva",
		KeyShiftTab: "sezione precedente",
		KeySave:     "salva",
		KeyQuit:     "esci",
		KeyHelp:     "aiuto",

		Username:      "Utente: ",
		Password:      "Password: ",
		LoginFailed:   "Nome utente o password non validi.",
		LoginExceeded: "Troppi tentativi falliti.",
	},
}

func SetLanguage(lang Language) {
	if _, ok := translations[lang]; ok {
		currentLang = lang
	}
}

func GetLanguage() Language {
	return currentLang
}

func T() Messages {
	return translations[currentLang]
}
