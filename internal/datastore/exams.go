package datastore

import (
	"context"

	"github.com/mind-engage/howacademia/internal/events"
)

func (s *Store) GetExams(_ context.Context, f ExamFilter) []Exam {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []Exam{}
	for _, e := range s.exams {
		if f.match(e) {
			out = append(out, e.clone())
		}
	}
	return out
}

func (s *Store) GetExamByID(_ context.Context, id string) (Exam, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.examIndex(id); i >= 0 {
		return s.exams[i].clone(), true
	}
	return Exam{}, false
}

func (s *Store) CreateExam(ctx context.Context, in ExamInput) Exam {
	e := Exam{
		ID:             s.newID("exam"),
		Title:          in.Title,
		Description:    in.Description,
		CourseID:       in.CourseID,
		CourseName:     in.CourseName,
		InstructorID:   in.InstructorID,
		InstructorName: in.InstructorName,
		Duration:       in.Duration,
		Questions:      in.Questions,
		CreatedAt:      s.now(),
	}.clone()
	if e.Questions == nil {
		e.Questions = []ExamQuestion{}
	}
	s.mu.Lock()
	s.exams = append(s.exams, e)
	persist(s, ctx, KeyExams, s.exams)
	s.mu.Unlock()

	s.publish(events.ExamCreated, e.ID)
	return e.clone()
}

func (s *Store) examIndex(id string) int {
	for i := range s.exams {
		if s.exams[i].ID == id {
			return i
		}
	}
	return -1
}
