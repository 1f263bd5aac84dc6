package datastore

import (
	"context"
	"fmt"
	"slices"

	"github.com/mind-engage/howacademia/internal/events"
)

func (s *Store) GetCourses(_ context.Context, f CourseFilter) []Course {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []Course{}
	for _, c := range s.courses {
		if f.match(c) {
			out = append(out, c.clone())
		}
	}
	return out
}

func (s *Store) GetCourseByID(_ context.Context, id string) (Course, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.courseIndex(id); i >= 0 {
		return s.courses[i].clone(), true
	}
	return Course{}, false
}

func (s *Store) CreateCourse(ctx context.Context, in CourseInput) Course {
	c := Course{
		ID:               s.newID("course"),
		Title:            in.Title,
		Description:      in.Description,
		InstructorID:     in.InstructorID,
		InstructorName:   in.InstructorName,
		InstitutionID:    in.InstitutionID,
		CreatedAt:        s.now(),
		EnrolledStudents: slices.Clone(in.EnrolledStudents),
		Image:            in.Image,
	}
	if c.EnrolledStudents == nil {
		c.EnrolledStudents = []string{}
	}
	s.mu.Lock()
	s.courses = append(s.courses, c)
	persist(s, ctx, KeyCourses, s.courses)
	s.mu.Unlock()

	s.publish(events.CourseCreated, c.ID)
	return c.clone()
}

// EnrollInCourse adds studentID to the course once. Unknown courses and
// repeat enrollments are silent no-ops; only a real change is persisted
// and published.
func (s *Store) EnrollInCourse(ctx context.Context, courseID, studentID string) error {
	s.mu.Lock()
	i := s.courseIndex(courseID)
	if i < 0 || s.courses[i].HasStudent(studentID) {
		s.mu.Unlock()
		return nil
	}
	if s.courseCapacity > 0 && len(s.courses[i].EnrolledStudents) >= s.courseCapacity {
		s.mu.Unlock()
		return fmt.Errorf("course %s: %w", courseID, ErrCapacityReached)
	}
	s.courses[i].EnrolledStudents = append(s.courses[i].EnrolledStudents, studentID)
	persist(s, ctx, KeyCourses, s.courses)
	s.mu.Unlock()

	s.publish(events.CourseEnrolled, courseID, studentID)
	return nil
}

func (s *Store) courseIndex(id string) int {
	for i := range s.courses {
		if s.courses[i].ID == id {
			return i
		}
	}
	return -1
}
