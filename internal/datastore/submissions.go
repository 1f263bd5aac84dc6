package datastore

import (
	"context"
	"fmt"
	"maps"

	"github.com/mind-engage/howacademia/internal/events"
	"github.com/mind-engage/howacademia/internal/grading"
)

func (s *Store) GetExamSubmissions(_ context.Context, f SubmissionFilter) []ExamSubmission {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var owned map[string]struct{}
	if f.InstructorID != "" {
		owned = map[string]struct{}{}
		for _, e := range s.exams {
			if e.InstructorID == f.InstructorID {
				owned[e.ID] = struct{}{}
			}
		}
	}

	out := []ExamSubmission{}
	for _, sub := range s.submissions {
		if f.ExamID != "" && sub.ExamID != f.ExamID {
			continue
		}
		if f.StudentID != "" && sub.StudentID != f.StudentID {
			continue
		}
		if owned != nil {
			if _, ok := owned[sub.ExamID]; !ok {
				continue
			}
		}
		out = append(out, sub.clone())
	}
	return out
}

// CreateExamSubmission stores a submission as given. Duplicates for the
// same exam and student are accepted unless WithUniqueSubmissions is set.
func (s *Store) CreateExamSubmission(ctx context.Context, in SubmissionInput) (ExamSubmission, error) {
	sub := ExamSubmission{
		ExamID:      in.ExamID,
		StudentID:   in.StudentID,
		StudentName: in.StudentName,
		Answers:     maps.Clone(in.Answers),
		Score:       in.Score,
		TotalPoints: in.TotalPoints,
		Status:      in.Status,
	}
	s.mu.Lock()
	sub, err := s.appendSubmissionLocked(ctx, sub)
	s.mu.Unlock()
	if err != nil {
		return ExamSubmission{}, err
	}
	s.publish(events.SubmissionCreated, sub.ID, sub.ExamID, sub.StudentID)
	return sub.clone(), nil
}

// SubmitExam grades answers against the stored exam and records a
// completed submission. The student name is taken from the user record,
// falling back to the id for unknown students.
func (s *Store) SubmitExam(ctx context.Context, examID, studentID string, answers map[string]int) (ExamSubmission, error) {
	s.mu.Lock()
	i := s.examIndex(examID)
	if i < 0 {
		s.mu.Unlock()
		return ExamSubmission{}, fmt.Errorf("exam %s: %w", examID, ErrNotFound)
	}
	res := grading.Grade(gradingQuestions(s.exams[i]), answers)

	name := studentID
	if j := s.userIndex(studentID); j >= 0 {
		name = s.users[j].Name
	}
	sub, err := s.appendSubmissionLocked(ctx, ExamSubmission{
		ExamID:      examID,
		StudentID:   studentID,
		StudentName: name,
		Answers:     maps.Clone(answers),
		Score:       res.Score,
		TotalPoints: res.TotalPoints,
		Status:      StatusCompleted,
	})
	s.mu.Unlock()
	if err != nil {
		return ExamSubmission{}, err
	}
	s.publish(events.SubmissionCreated, sub.ID, sub.ExamID, sub.StudentID)
	return sub.clone(), nil
}

func (s *Store) appendSubmissionLocked(ctx context.Context, sub ExamSubmission) (ExamSubmission, error) {
	if s.uniqueSubmissions {
		for _, existing := range s.submissions {
			if existing.ExamID == sub.ExamID && existing.StudentID == sub.StudentID {
				return ExamSubmission{}, fmt.Errorf("exam %s, student %s: %w", sub.ExamID, sub.StudentID, ErrDuplicateSubmission)
			}
		}
	}
	if sub.Answers == nil {
		sub.Answers = map[string]int{}
	}
	sub.ID = s.newID("submission")
	sub.SubmittedAt = s.now()
	s.submissions = append(s.submissions, sub)
	persist(s, ctx, KeySubmissions, s.submissions)
	return sub, nil
}

func gradingQuestions(e Exam) []grading.Question {
	qs := make([]grading.Question, len(e.Questions))
	for i, q := range e.Questions {
		qs[i] = grading.Question{ID: q.ID, CorrectAnswer: q.CorrectAnswer, Points: q.Points}
	}
	return qs
}

// Grade scores answers against e without recording anything.
func Grade(e Exam, answers map[string]int) grading.Result {
	return grading.Grade(gradingQuestions(e), answers)
}
