package domain

// DefaultUser is shown on the dashboard greeting when the config names nobody.
var DefaultUser = User{ID: "user-1", Name: "Ryan Dube", Initials: "RD"}

// Defaults returns the built-in starter data used when the remote document is
// unavailable or lacks a collection. Each call returns fresh slices.
func Defaults() Document {
	return Document{
		NoteFolders: []NoteFolder{
			{ID: "nf-1", Name: "Personal Projects"},
			{ID: "nf-2", Name: "Goals"},
		},
		Notes: []Note{
			{
				ID:       "note-1",
				Title:    "Project Ideas",
				FolderID: "nf-1",
				Content: "Feature Requests\n" +
					"- Calendar integration for better planning\n" +
					"- Task prioritization system with drag-and-drop interface\n" +
					"- Dark mode toggle for better night-time usage\n" +
					"- Export notes to PDF or Markdown format\n" +
					"- Voice input for creating notes on the go",
				Tags:         []string{"ideas", "projects"},
				LastModified: "2 days ago",
			},
			{
				ID:    "note-2",
				Title: "Reading List",
				Content: "Books to read:\n" +
					"- \"Atomic Habits\" by James Clear\n" +
					"- \"Deep Work\" by Cal Newport\n" +
					"- \"The Psychology of Money\" by Morgan Housel.",
				Tags:         []string{"books", "personal"},
				LastModified: "Yesterday",
			},
			{
				ID:           "note-3",
				Title:        "CS 101 Lecture Notes",
				CourseID:     "course-1",
				Content:      "Team sync: Discussed Q3 goals, assigned tasks for the new feature rollout, and reviewed customer feedback from last release.",
				Tags:         []string{"work", "meetings"},
				LastModified: "Today",
			},
		},
		DeckFolders: []DeckFolder{
			{ID: "df-1", Name: "Language Learning"},
		},
		Decks: []Deck{
			{ID: "deck-1", Name: "JavaScript Basics", Icon: "code", CourseID: "course-1"},
			{ID: "deck-2", Name: "Biology Terms", Icon: "leaf"},
			{ID: "deck-3", Name: "Spanish Vocabulary", Icon: "language", FolderID: "df-1"},
		},
		Flashcards: []Flashcard{
			{
				ID:             "card-1",
				DeckID:         "deck-1",
				Front:          "What is a closure in JavaScript?",
				Back:           "A closure is a function that has access to its own scope, the outer function's scope, and the global scope. It preserves the outer function's scope even after the outer function has returned.",
				Status:         CardMastered,
				NextReviewDate: "In 7 days",
			},
			{
				ID:             "card-2",
				DeckID:         "deck-1",
				Front:          "What is the difference between let and var?",
				Back:           "let is block-scoped while var is function-scoped. let doesn't allow redeclaration and isn't hoisted to the top of its scope.",
				Status:         CardLearning,
				NextReviewDate: "Tomorrow",
			},
			{
				ID:             "card-3",
				DeckID:         "deck-1",
				Front:          "Explain the event loop in JavaScript.",
				Back:           "The event loop is a mechanism that allows JavaScript to perform non-blocking operations despite being single-threaded, by offloading operations to the system kernel whenever possible.",
				Status:         CardReview,
				NextReviewDate: "Today",
			},
			{
				ID:             "card-4",
				DeckID:         "deck-2",
				Front:          "What is photosynthesis?",
				Back:           "The process by which green plants and some other organisms use sunlight to synthesize foods with the help of chlorophyll pigment.",
				Status:         CardMastered,
				NextReviewDate: "In 5 days",
			},
			{
				ID:             "card-5",
				DeckID:         "deck-3",
				Front:          "Hola",
				Back:           "Hello",
				Status:         CardLearning,
				NextReviewDate: "Today",
			},
		},
		Courses: []Course{
			{ID: "course-1", Name: "Intro to Computer Science", Code: "CS 101", Instructor: "Dr. Alan Turing", Color: ColorBlue, Term: TermSemester1},
			{ID: "course-2", Name: "Calculus I", Code: "MATH 150", Instructor: "Dr. Isaac Newton", Color: ColorRed, Term: TermSemester1},
			{ID: "course-3", Name: "World History", Code: "HIST 210", Instructor: "Dr. Herodotus", Color: ColorYellow, Term: TermFullYear},
		},
		Tasks: []Task{
			{ID: "task-1", Title: "Homework 1", Completed: true, CourseID: "course-1", DueDate: "2024-06-03", Grade: Float(85), MaxGrade: Float(100), Weight: Float(10)},
			{ID: "task-2", Title: "Homework 2", Completed: true, CourseID: "course-1", DueDate: "2024-06-09", Grade: Float(95), MaxGrade: Float(100), Weight: Float(10)},
			{ID: "task-3", Title: "Midterm Exam", CourseID: "course-1", DueDate: "2024-06-20", Weight: Float(30)},
			{ID: "task-4", Title: "Quiz 1", Completed: true, CourseID: "course-2", DueDate: "2024-06-04", Grade: Float(8), MaxGrade: Float(10), Weight: Float(5)},
			{ID: "task-5", Title: "Quiz 2", CourseID: "course-2", DueDate: "2024-06-11", Weight: Float(5)},
			{ID: "task-6", Title: "Read Chapter 3", Completed: true, CourseID: "course-3", Weight: Float(0)},
			{ID: "task-7", Title: "Schedule dentist appointment"},
		},
		Timetable: []TimetableEntry{
			{ID: "tt-1", CourseID: "course-1", Day: Monday, StartTime: "10:00", EndTime: "11:30", Location: "Hall A"},
			{ID: "tt-2", CourseID: "course-2", Day: Monday, StartTime: "13:00", EndTime: "14:30", Location: "Hall B"},
			{ID: "tt-3", CourseID: "course-1", Day: Wednesday, StartTime: "10:00", EndTime: "11:30", Location: "Hall A"},
			{ID: "tt-4", CourseID: "course-3", Day: Wednesday, StartTime: "15:00", EndTime: "17:00", Location: "Hall C"},
			{ID: "tt-5", CourseID: "course-2", Day: Friday, StartTime: "13:00", EndTime: "14:30", Location: "Hall B"},
		},
	}
}
