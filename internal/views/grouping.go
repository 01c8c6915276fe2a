// Package views computes the read-only projections the UI renders: groupings,
// grade rollups, calendar and timetable layouts, and the dashboard summary.
package views

import "github.com/nzaccagnino/studydesk/internal/domain"

// Categorized is a record that may reference a course and a folder.
type Categorized interface {
	CourseRef() string
	FolderRef() string
}

type Bucket[T any] struct {
	ID    string
	Name  string
	Items []T
}

// Grouping is a total partition of a collection. A valid course reference
// wins over a folder reference; dangling references count as absent.
type Grouping[T any] struct {
	Courses       []Bucket[T]
	Folders       []Bucket[T]
	Uncategorized []T
}

// Len returns the number of items across all buckets.
func (g Grouping[T]) Len() int {
	n := len(g.Uncategorized)
	for _, b := range g.Courses {
		n += len(b.Items)
	}
	for _, b := range g.Folders {
		n += len(b.Items)
	}
	return n
}

// Category is a course or folder a bucket is keyed by.
type Category struct {
	ID   string
	Name string
}

// Group partitions items. Buckets follow the order of courses and folders and
// include empty ones, so the UI can render a heading per course or folder.
func Group[T Categorized](items []T, courses, folders []Category) Grouping[T] {
	courseIdx := make(map[string]int, len(courses))
	g := Grouping[T]{
		Courses: make([]Bucket[T], len(courses)),
		Folders: make([]Bucket[T], len(folders)),
	}
	for i, c := range courses {
		courseIdx[c.ID] = i
		g.Courses[i] = Bucket[T]{ID: c.ID, Name: c.Name}
	}
	folderIdx := make(map[string]int, len(folders))
	for i, f := range folders {
		folderIdx[f.ID] = i
		g.Folders[i] = Bucket[T]{ID: f.ID, Name: f.Name}
	}

	for _, item := range items {
		if i, ok := courseIdx[item.CourseRef()]; ok {
			g.Courses[i].Items = append(g.Courses[i].Items, item)
			continue
		}
		if i, ok := folderIdx[item.FolderRef()]; ok {
			g.Folders[i].Items = append(g.Folders[i].Items, item)
			continue
		}
		g.Uncategorized = append(g.Uncategorized, item)
	}
	return g
}

func courseNames(courses []domain.Course) []Category {
	out := make([]Category, len(courses))
	for i, c := range courses {
		out[i] = Category{ID: c.ID, Name: c.Name}
	}
	return out
}

func GroupNotes(notes []domain.Note, courses []domain.Course, folders []domain.NoteFolder) Grouping[domain.Note] {
	fs := make([]Category, len(folders))
	for i, f := range folders {
		fs[i] = Category{ID: f.ID, Name: f.Name}
	}
	return Group(notes, courseNames(courses), fs)
}

func GroupDecks(decks []domain.Deck, courses []domain.Course, folders []domain.DeckFolder) Grouping[domain.Deck] {
	fs := make([]Category, len(folders))
	for i, f := range folders {
		fs[i] = Category{ID: f.ID, Name: f.Name}
	}
	return Group(decks, courseNames(courses), fs)
}
