package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	if err := v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	}); err != nil {
		panic(fmt.Sprintf("register notblank validation: %v", err))
	}
	return v
}

type FieldError struct {
	Field   string
	Message string
}

// ValidationError is returned by the form Validate methods. The UI shows it
// as a blocking alert and submits nothing.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

func validateForm(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "oneof":
		return "must be one of " + fe.Param()
	case "datetime":
		return fmt.Sprintf("must match %s", fe.Param())
	case "gte", "gt", "lte":
		return fmt.Sprintf("must be %s %s", fe.Tag(), fe.Param())
	default:
		return "is invalid"
	}
}

type NoteForm struct {
	Title    string   `json:"title" validate:"notblank"`
	Content  string   `json:"content"`
	Tags     []string `json:"tags"`
	CourseID string   `json:"courseId"`
	FolderID string   `json:"folderId"`
}

func (f NoteForm) Validate() error { return validateForm(f) }

type DeckForm struct {
	Name     string `json:"name" validate:"notblank"`
	CourseID string `json:"courseId"`
	FolderID string `json:"folderId"`
}

func (f DeckForm) Validate() error { return validateForm(f) }

type FolderForm struct {
	Name string `json:"name" validate:"notblank"`
}

func (f FolderForm) Validate() error { return validateForm(f) }

// CardForm is the input of a new flashcard, alone or in a batch.
type CardForm struct {
	DeckID string `json:"deckId" validate:"required"`
	Front  string `json:"front" validate:"notblank"`
	Back   string `json:"back" validate:"notblank"`
}

func (f CardForm) Validate() error { return validateForm(f) }

type CourseSchedule struct {
	Day       Weekday `json:"day" validate:"oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	StartTime string  `json:"startTime" validate:"required,datetime=15:04"`
	EndTime   string  `json:"endTime" validate:"required,datetime=15:04"`
	Location  string  `json:"location"`
}

type CourseForm struct {
	Name       string           `json:"name" validate:"notblank"`
	Code       string           `json:"code" validate:"notblank"`
	Instructor string           `json:"instructor"`
	Term       Term             `json:"term" validate:"oneof='Semester 1' 'Semester 2' 'Full Year'"`
	Color      ThemeColor       `json:"color" validate:"oneof=blue red green yellow purple indigo pink"`
	Schedules  []CourseSchedule `json:"schedules" validate:"dive"`
}

func (f CourseForm) Validate() error { return validateForm(f) }

type TaskForm struct {
	Title    string   `json:"title" validate:"notblank"`
	CourseID string   `json:"courseId"`
	DueDate  string   `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	Weight   *float64 `json:"weight" validate:"omitempty,gte=0"`
}

func (f TaskForm) Validate() error { return validateForm(f) }

// GradeForm edits the grade fields of a task; nil clears a field.
type GradeForm struct {
	Grade    *float64 `json:"grade" validate:"omitempty,gte=0"`
	MaxGrade *float64 `json:"maxGrade" validate:"omitempty,gt=0"`
	Weight   *float64 `json:"weight" validate:"omitempty,gte=0"`
}

func (f GradeForm) Validate() error { return validateForm(f) }

// Patch turns the form into a task patch that sets all three grade fields.
func (f GradeForm) Patch() TaskPatch {
	return TaskPatch{
		Grade:    Set(f.Grade),
		MaxGrade: Set(f.MaxGrade),
		Weight:   Set(f.Weight),
	}
}
