package views

import (
	"math/rand/v2"
	"slices"

	"github.com/nzaccagnino/studydesk/internal/domain"
)

// ReviewSession walks a shuffled copy of a deck's cards.
type ReviewSession struct {
	cards   []domain.Flashcard
	index   int
	flipped bool
}

func NewReviewSession(cards []domain.Flashcard, r *rand.Rand) *ReviewSession {
	shuffled := slices.Clone(cards)
	shuffle := rand.Shuffle
	if r != nil {
		shuffle = r.Shuffle
	}
	shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	return &ReviewSession{cards: shuffled}
}

func (s *ReviewSession) Empty() bool { return len(s.cards) == 0 }
func (s *ReviewSession) Len() int { return len(s.cards) }
func (s *ReviewSession) Index() int { return s.index }
func (s *ReviewSession) Flipped() bool { return s.flipped }

// Current returns the card on screen. ok is false for an empty session.
func (s *ReviewSession) Current() (card domain.Flashcard, ok bool) {
	if s.Empty() {
		return domain.Flashcard{}, false
	}
	return s.cards[s.index], true
}

func (s *ReviewSession) Flip() { s.flipped = !s.flipped }

// Next advances unless on the last card. Moving always shows the front.
func (s *ReviewSession) Next() bool {
	if s.index >= len(s.cards)-1 {
		return false
	}
	s.index++
	s.flipped = false
	return true
}

func (s *ReviewSession) Prev() bool {
	if s.index == 0 {
		return false
	}
	s.index--
	s.flipped = false
	return true
}

// Progress is the fraction of cards seen, counting the current one.
func (s *ReviewSession) Progress() float64 {
	if s.Empty() {
		return 0
	}
	return float64(s.index+1) / float64(len(s.cards))
}
