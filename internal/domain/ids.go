package domain

import "github.com/google/uuid"

// Id prefixes per record type.
const (
	PrefixNote       = "note"
	PrefixNoteFolder = "nf"
	PrefixDeck       = "deck"
	PrefixDeckFolder = "df"
	PrefixCard       = "card"
	PrefixCourse     = "course"
	PrefixTask       = "task"
	PrefixTimetable  = "tt"
)

// NewID returns a random, collision-free id such as "note-5f1c...".
func NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
