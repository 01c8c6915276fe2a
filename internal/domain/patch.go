package domain

// Field is one entry of a partial update. A zero Field leaves the record
// untouched; Set replaces the value, including with a zero value.
type Field[T any] struct {
	Set   bool
	Value T
}

func Set[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

func (f Field[T]) apply(dst *T) {
	if f.Set {
		*dst = f.Value
	}
}

type NotePatch struct {
	Title    Field[string]
	Content  Field[string]
	Tags     Field[[]string]
	CourseID Field[string]
	FolderID Field[string]
}

func (p NotePatch) Apply(n *Note) {
	p.Title.apply(&n.Title)
	p.Content.apply(&n.Content)
	p.Tags.apply(&n.Tags)
	p.CourseID.apply(&n.CourseID)
	p.FolderID.apply(&n.FolderID)
}

type DeckPatch struct {
	Name     Field[string]
	Icon     Field[string]
	CourseID Field[string]
	FolderID Field[string]
}

func (p DeckPatch) Apply(d *Deck) {
	p.Name.apply(&d.Name)
	p.Icon.apply(&d.Icon)
	p.CourseID.apply(&d.CourseID)
	p.FolderID.apply(&d.FolderID)
}

type FlashcardPatch struct {
	Front          Field[string]
	Back           Field[string]
	Status         Field[CardStatus]
	NextReviewDate Field[string]
}

func (p FlashcardPatch) Apply(c *Flashcard) {
	p.Front.apply(&c.Front)
	p.Back.apply(&c.Back)
	p.Status.apply(&c.Status)
	p.NextReviewDate.apply(&c.NextReviewDate)
}

type TaskPatch struct {
	Title     Field[string]
	Completed Field[bool]
	DueDate   Field[string]
	CourseID  Field[string]
	Grade     Field[*float64]
	MaxGrade  Field[*float64]
	Weight    Field[*float64]
}

func (p TaskPatch) Apply(t *Task) {
	p.Title.apply(&t.Title)
	p.Completed.apply(&t.Completed)
	p.DueDate.apply(&t.DueDate)
	p.CourseID.apply(&t.CourseID)
	p.Grade.apply(&t.Grade)
	p.MaxGrade.apply(&t.MaxGrade)
	p.Weight.apply(&t.Weight)
}
