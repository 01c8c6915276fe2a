package store

import (
	"slices"

	"github.com/nzaccagnino/studydesk/internal/domain"
)

func noteID(n domain.Note) string { return n.ID }
func noteFolderID(f domain.NoteFolder) string { return f.ID }

func (s *Store) AddNoteFolder(name string) domain.NoteFolder {
	folder := domain.NoteFolder{ID: s.newID(domain.PrefixNoteFolder), Name: name}
	s.mutate(func(d *domain.Document) bool {
		d.NoteFolders = append(d.NoteFolders, folder)
		return true
	})
	return folder
}

func (s *Store) UpdateNoteFolder(id, name string) {
	s.mutate(func(d *domain.Document) bool {
		return updateByID(d.NoteFolders, id, noteFolderID, func(f *domain.NoteFolder) { f.Name = name })
	})
}

// DeleteNoteFolder removes the folder and detaches its notes. Notes are kept.
func (s *Store) DeleteNoteFolder(id string) {
	s.mutate(func(d *domain.Document) bool {
		if !deleteByID(&d.NoteFolders, id, noteFolderID) {
			return false
		}
		for i := range d.Notes {
			if d.Notes[i].FolderID == id {
				d.Notes[i].FolderID = ""
			}
		}
		return true
	})
}

// AddNote inserts a new note at the front of the list.
func (s *Store) AddNote(form domain.NoteForm) domain.Note {
	tags := slices.Clone(form.Tags)
	if tags == nil {
		tags = []string{}
	}
	note := domain.Note{
		ID:           s.newID(domain.PrefixNote),
		Title:        form.Title,
		Content:      form.Content,
		Tags:         tags,
		LastModified: justNow,
		CourseID:     form.CourseID,
		FolderID:     form.FolderID,
	}
	s.mutate(func(d *domain.Document) bool {
		d.Notes = prepend(d.Notes, note)
		return true
	})
	note.Tags = slices.Clone(tags)
	return note
}

func (s *Store) UpdateNote(id string, patch domain.NotePatch) {
	s.mutate(func(d *domain.Document) bool {
		return updateByID(d.Notes, id, noteID, func(n *domain.Note) {
			patch.Apply(n)
			n.Tags = slices.Clone(n.Tags)
			n.LastModified = justNow
		})
	})
}

func (s *Store) DeleteNote(id string) {
	s.mutate(func(d *domain.Document) bool {
		return deleteByID(&d.Notes, id, noteID)
	})
}
