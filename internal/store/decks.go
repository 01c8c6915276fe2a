package store

import (
	"slices"

	"github.com/nzaccagnino/studydesk/internal/domain"
)

func deckID(d domain.Deck) string { return d.ID }
func deckFolderID(f domain.DeckFolder) string { return f.ID }
func cardID(c domain.Flashcard) string { return c.ID }

const firstReview = "Today"

func (s *Store) AddDeckFolder(name string) domain.DeckFolder {
	folder := domain.DeckFolder{ID: s.newID(domain.PrefixDeckFolder), Name: name}
	s.mutate(func(d *domain.Document) bool {
		d.DeckFolders = append(d.DeckFolders, folder)
		return true
	})
	return folder
}

func (s *Store) UpdateDeckFolder(id, name string) {
	s.mutate(func(d *domain.Document) bool {
		return updateByID(d.DeckFolders, id, deckFolderID, func(f *domain.DeckFolder) { f.Name = name })
	})
}

// DeleteDeckFolder removes the folder and detaches its decks. Decks are kept.
func (s *Store) DeleteDeckFolder(id string) {
	s.mutate(func(d *domain.Document) bool {
		if !deleteByID(&d.DeckFolders, id, deckFolderID) {
			return false
		}
		for i := range d.Decks {
			if d.Decks[i].FolderID == id {
				d.Decks[i].FolderID = ""
			}
		}
		return true
	})
}

// AddDeck appends a deck with a random icon.
func (s *Store) AddDeck(form domain.DeckForm) domain.Deck {
	deck := domain.Deck{
		ID:       s.newID(domain.PrefixDeck),
		Name:     form.Name,
		Icon:     s.pickIcon(),
		CourseID: form.CourseID,
		FolderID: form.FolderID,
	}
	s.mutate(func(d *domain.Document) bool {
		d.Decks = append(d.Decks, deck)
		return true
	})
	return deck
}

func (s *Store) UpdateDeck(id string, patch domain.DeckPatch) {
	s.mutate(func(d *domain.Document) bool {
		return updateByID(d.Decks, id, deckID, patch.Apply)
	})
}

// DeleteDeck removes the deck together with all of its flashcards.
func (s *Store) DeleteDeck(id string) {
	s.mutate(func(d *domain.Document) bool {
		if !deleteByID(&d.Decks, id, deckID) {
			return false
		}
		d.Flashcards = slices.DeleteFunc(d.Flashcards, func(c domain.Flashcard) bool { return c.DeckID == id })
		return true
	})
}

func (s *Store) newCard(form domain.CardForm) domain.Flashcard {
	return domain.Flashcard{
		ID:             s.newID(domain.PrefixCard),
		DeckID:         form.DeckID,
		Front:          form.Front,
		Back:           form.Back,
		Status:         domain.CardReview,
		NextReviewDate: firstReview,
	}
}

// AddFlashcard inserts a new card, due for review, at the front of the list.
func (s *Store) AddFlashcard(form domain.CardForm) domain.Flashcard {
	card := s.newCard(form)
	s.mutate(func(d *domain.Document) bool {
		d.Flashcards = prepend(d.Flashcards, card)
		return true
	})
	return card
}

// AddFlashcardsBatch inserts all cards in one state transition, keeping their
// order, ahead of the existing cards.
func (s *Store) AddFlashcardsBatch(forms []domain.CardForm) []domain.Flashcard {
	if len(forms) == 0 {
		return nil
	}
	cards := make([]domain.Flashcard, len(forms))
	for i, f := range forms {
		cards[i] = s.newCard(f)
	}
	s.mutate(func(d *domain.Document) bool {
		d.Flashcards = prepend(d.Flashcards, cards...)
		return true
	})
	return slices.Clone(cards)
}

func (s *Store) UpdateFlashcard(id string, patch domain.FlashcardPatch) {
	s.mutate(func(d *domain.Document) bool {
		return updateByID(d.Flashcards, id, cardID, patch.Apply)
	})
}

func (s *Store) DeleteFlashcard(id string) {
	s.mutate(func(d *domain.Document) bool {
		return deleteByID(&d.Flashcards, id, cardID)
	})
}
