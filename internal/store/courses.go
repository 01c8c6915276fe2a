package store

import (
	"slices"

	"github.com/nzaccagnino/studydesk/internal/domain"
)

func courseID(c domain.Course) string { return c.ID }
func taskID(t domain.Task) string { return t.ID }

func (s *Store) scheduleEntries(courseID string, schedules []domain.CourseSchedule) []domain.TimetableEntry {
	entries := make([]domain.TimetableEntry, 0, len(schedules))
	for _, sc := range schedules {
		entries = append(entries, domain.TimetableEntry{
			ID:        s.newID(domain.PrefixTimetable),
			CourseID:  courseID,
			Day:       sc.Day,
			StartTime: sc.StartTime,
			EndTime:   sc.EndTime,
			Location:  sc.Location,
		})
	}
	return entries
}

// AddCourse inserts the course at the front of the list and one timetable
// entry per schedule.
func (s *Store) AddCourse(form domain.CourseForm) domain.Course {
	course := domain.Course{
		ID:         s.newID(domain.PrefixCourse),
		Name:       form.Name,
		Code:       form.Code,
		Instructor: form.Instructor,
		Color:      form.Color,
		Term:       form.Term,
	}
	entries := s.scheduleEntries(course.ID, form.Schedules)
	s.mutate(func(d *domain.Document) bool {
		d.Courses = prepend(d.Courses, course)
		d.Timetable = append(d.Timetable, entries...)
		return true
	})
	return course
}

// UpdateCourse replaces the course fields and all of its timetable entries
// with fresh ones built from form.Schedules.
func (s *Store) UpdateCourse(id string, form domain.CourseForm) {
	s.mutate(func(d *domain.Document) bool {
		found := updateByID(d.Courses, id, courseID, func(c *domain.Course) {
			*c = domain.Course{
				ID:         id,
				Name:       form.Name,
				Code:       form.Code,
				Instructor: form.Instructor,
				Color:      form.Color,
				Term:       form.Term,
			}
		})
		if !found {
			return false
		}
		d.Timetable = slices.DeleteFunc(d.Timetable, func(e domain.TimetableEntry) bool { return e.CourseID == id })
		d.Timetable = append(d.Timetable, s.scheduleEntries(id, form.Schedules)...)
		return true
	})
}

// DeleteCourse removes the course, its tasks and its timetable entries, and
// detaches (without deleting) its notes and decks.
func (s *Store) DeleteCourse(id string) {
	s.mutate(func(d *domain.Document) bool {
		if !deleteByID(&d.Courses, id, courseID) {
			return false
		}
		d.Tasks = slices.DeleteFunc(d.Tasks, func(t domain.Task) bool { return t.CourseID == id })
		d.Timetable = slices.DeleteFunc(d.Timetable, func(e domain.TimetableEntry) bool { return e.CourseID == id })
		for i := range d.Notes {
			if d.Notes[i].CourseID == id {
				d.Notes[i].CourseID = ""
			}
		}
		for i := range d.Decks {
			if d.Decks[i].CourseID == id {
				d.Decks[i].CourseID = ""
			}
		}
		return true
	})
}

// AddTask inserts an incomplete task at the front of the list.
func (s *Store) AddTask(form domain.TaskForm) domain.Task {
	task := domain.Task{
		ID:       s.newID(domain.PrefixTask),
		Title:    form.Title,
		DueDate:  form.DueDate,
		CourseID: form.CourseID,
	}
	if form.Weight != nil {
		task.Weight = domain.Float(*form.Weight)
	}
	s.mutate(func(d *domain.Document) bool {
		d.Tasks = prepend(d.Tasks, task)
		return true
	})
	return task
}

func (s *Store) UpdateTask(id string, patch domain.TaskPatch) {
	s.mutate(func(d *domain.Document) bool {
		return updateByID(d.Tasks, id, taskID, func(t *domain.Task) {
			patch.Apply(t)
			t.Grade = copyFloat(t.Grade)
			t.MaxGrade = copyFloat(t.MaxGrade)
			t.Weight = copyFloat(t.Weight)
		})
	})
}

func (s *Store) DeleteTask(id string) {
	s.mutate(func(d *domain.Document) bool {
		return deleteByID(&d.Tasks, id, taskID)
	})
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	return domain.Float(*f)
}
