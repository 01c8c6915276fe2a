package domain

import "slices"

// Document is the whole persisted state, stored remotely as a single JSON
// object and overwritten on every save.
type Document struct {
	Notes       []Note           `json:"notes" yaml:"notes"`
	Decks       []Deck           `json:"decks" yaml:"decks"`
	Flashcards  []Flashcard      `json:"flashcards" yaml:"flashcards"`
	Courses     []Course         `json:"courses" yaml:"courses"`
	Tasks       []Task           `json:"tasks" yaml:"tasks"`
	Timetable   []TimetableEntry `json:"timetable" yaml:"timetable"`
	NoteFolders []NoteFolder     `json:"noteFolders" yaml:"noteFolders"`
	DeckFolders []DeckFolder     `json:"deckFolders" yaml:"deckFolders"`
}

// IsEmpty reports whether no collection is present at all. A present but
// empty collection counts as content.
func (d Document) IsEmpty() bool {
	return d.Notes == nil && d.Decks == nil && d.Flashcards == nil &&
		d.Courses == nil && d.Tasks == nil && d.Timetable == nil &&
		d.NoteFolders == nil && d.DeckFolders == nil
}

// WithDefaults fills every absent collection from defaults.
func (d Document) WithDefaults(defaults Document) Document {
	out := d.Clone()
	def := defaults.Clone()
	if out.Notes == nil {
		out.Notes = def.Notes
	}
	if out.Decks == nil {
		out.Decks = def.Decks
	}
	if out.Flashcards == nil {
		out.Flashcards = def.Flashcards
	}
	if out.Courses == nil {
		out.Courses = def.Courses
	}
	if out.Tasks == nil {
		out.Tasks = def.Tasks
	}
	if out.Timetable == nil {
		out.Timetable = def.Timetable
	}
	if out.NoteFolders == nil {
		out.NoteFolders = def.NoteFolders
	}
	if out.DeckFolders == nil {
		out.DeckFolders = def.DeckFolders
	}
	return out
}

// Clone returns a deep copy. Nil collections stay nil.
func (d Document) Clone() Document {
	out := Document{
		Decks:       slices.Clone(d.Decks),
		Flashcards:  slices.Clone(d.Flashcards),
		Courses:     slices.Clone(d.Courses),
		Timetable:   slices.Clone(d.Timetable),
		NoteFolders: slices.Clone(d.NoteFolders),
		DeckFolders: slices.Clone(d.DeckFolders),
	}
	if d.Notes != nil {
		out.Notes = make([]Note, len(d.Notes))
		for i, n := range d.Notes {
			n.Tags = slices.Clone(n.Tags)
			out.Notes[i] = n
		}
	}
	if d.Tasks != nil {
		out.Tasks = make([]Task, len(d.Tasks))
		for i, t := range d.Tasks {
			t.Grade = cloneFloat(t.Grade)
			t.MaxGrade = cloneFloat(t.MaxGrade)
			t.Weight = cloneFloat(t.Weight)
			out.Tasks[i] = t
		}
	}
	return out
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
