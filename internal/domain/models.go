package domain

type CardStatus string

const (
	CardMastered CardStatus = "Mastered"
	CardLearning CardStatus = "Learning"
	CardReview   CardStatus = "Review"
)

type ThemeColor string

const (
	ColorBlue   ThemeColor = "blue"
	ColorRed    ThemeColor = "red"
	ColorGreen  ThemeColor = "green"
	ColorYellow ThemeColor = "yellow"
	ColorPurple ThemeColor = "purple"
	ColorIndigo ThemeColor = "indigo"
	ColorPink   ThemeColor = "pink"
)

var ThemeColors = []ThemeColor{ColorBlue, ColorRed, ColorGreen, ColorYellow, ColorPurple, ColorIndigo, ColorPink}

type Term string

const (
	TermSemester1 Term = "Semester 1"
	TermSemester2 Term = "Semester 2"
	TermFullYear  Term = "Full Year"
)

var Terms = []Term{TermSemester1, TermSemester2, TermFullYear}

type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Initials string `json:"initials"`
}

type NoteFolder struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type DeckFolder struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Note may carry both CourseID and FolderID; grouping gives the course
// precedence.
type Note struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Content      string   `json:"content"`
	Tags         []string `json:"tags"`
	LastModified string   `json:"lastModified"`
	CourseID     string   `json:"courseId,omitempty"`
	FolderID     string   `json:"folderId,omitempty"`
}

type Deck struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	CourseID string `json:"courseId,omitempty"`
	FolderID string `json:"folderId,omitempty"`
}

type Flashcard struct {
	ID             string     `json:"id"`
	DeckID         string     `json:"deckId"`
	Front          string     `json:"front"`
	Back           string     `json:"back"`
	Status         CardStatus `json:"status"`
	NextReviewDate string     `json:"nextReviewDate"`
}

type Course struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Code       string     `json:"code"`
	Instructor string     `json:"instructor"`
	Color      ThemeColor `json:"color"`
	Term       Term       `json:"term"`
}

// Task grade fields are independently optional. Weight is a percentage of
// the course's final grade.
type Task struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Completed bool     `json:"completed"`
	DueDate   string   `json:"dueDate,omitempty"`
	CourseID  string   `json:"courseId,omitempty"`
	Grade     *float64 `json:"grade,omitempty"`
	MaxGrade  *float64 `json:"maxGrade,omitempty"`
	Weight    *float64 `json:"weight,omitempty"`
}

// Graded reports whether grade, maxGrade and weight are all present.
func (t Task) Graded() bool {
	return t.Grade != nil && t.MaxGrade != nil && t.Weight != nil
}

type TimetableEntry struct {
	ID        string  `json:"id"`
	CourseID  string  `json:"courseId"`
	Day       Weekday `json:"day"`
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Location  string  `json:"location,omitempty"`
}

// Float returns a pointer to v, for the optional task grade fields.
func Float(v float64) *float64 {
	return &v
}

func (n Note) CourseRef() string { return n.CourseID }
func (n Note) FolderRef() string { return n.FolderID }
func (d Deck) CourseRef() string { return d.CourseID }
func (d Deck) FolderRef() string { return d.FolderID }
