package insights

import (
	"context"
	"fmt"

	"github.com/mind-engage/howacademia/internal/datastore"
	"github.com/mind-engage/howacademia/internal/grading"
)

// Source is the read side of the datastore the reports draw on.
type Source interface {
	GetUserByID(ctx context.Context, id string) (datastore.User, bool)
	GetCourses(ctx context.Context, f datastore.CourseFilter) []datastore.Course
	GetExams(ctx context.Context, f datastore.ExamFilter) []datastore.Exam
	GetExamByID(ctx context.Context, id string) (datastore.Exam, bool)
	GetExamSubmissions(ctx context.Context, f datastore.SubmissionFilter) []datastore.ExamSubmission
}

func examNames(ctx context.Context, src Source) map[string]datastore.Exam {
	out := map[string]datastore.Exam{}
	for _, e := range src.GetExams(ctx, datastore.ExamFilter{}) {
		out[e.ID] = e
	}
	return out
}

func courseTitles(cs []datastore.Course) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Title
	}
	return out
}

// StudentReport summarizes every submission of one student.
func StudentReport(ctx context.Context, src Source, studentID string) (string, error) {
	u, ok := src.GetUserByID(ctx, studentID)
	if !ok {
		return "", fmt.Errorf("student %s: %w", studentID, datastore.ErrNotFound)
	}
	exams := examNames(ctx, src)
	var results []ExamResult
	for _, s := range src.GetExamSubmissions(ctx, datastore.SubmissionFilter{StudentID: studentID}) {
		name := s.ExamID
		if e, ok := exams[s.ExamID]; ok {
			name = e.Title
		}
		results = append(results, ExamResult{ExamName: name, StudentName: s.StudentName, Score: s.Score, TotalPoints: s.TotalPoints})
	}
	courses := src.GetCourses(ctx, datastore.CourseFilter{StudentID: studentID})
	return SummarizeStudentPerformance(u.Name, results, courseTitles(courses)), nil
}

// ExamReport analyses all submissions for one exam.
func ExamReport(ctx context.Context, src Source, examID string) (string, error) {
	e, ok := src.GetExamByID(ctx, examID)
	if !ok {
		return "", fmt.Errorf("exam %s: %w", examID, datastore.ErrNotFound)
	}
	var results []ExamResult
	for _, s := range src.GetExamSubmissions(ctx, datastore.SubmissionFilter{ExamID: examID}) {
		results = append(results, ExamResult{ExamName: e.Title, StudentName: s.StudentName, Score: s.Score, TotalPoints: s.TotalPoints})
	}
	return AnalyzeAssessment(e.Title, results), nil
}

// SuggestionsReport averages the student's percentages per enrolled course.
// Courses without graded submissions are left out of the performance list.
func SuggestionsReport(ctx context.Context, src Source, studentID, goals string) (string, error) {
	u, ok := src.GetUserByID(ctx, studentID)
	if !ok {
		return "", fmt.Errorf("student %s: %w", studentID, datastore.ErrNotFound)
	}
	exams := examNames(ctx, src)
	byCourse := map[string][]float64{}
	for _, s := range src.GetExamSubmissions(ctx, datastore.SubmissionFilter{StudentID: studentID}) {
		e, ok := exams[s.ExamID]
		if !ok {
			continue
		}
		p, err := grading.Percentage(s.Score, s.TotalPoints)
		if err != nil {
			continue
		}
		byCourse[e.CourseID] = append(byCourse[e.CourseID], p)
	}

	courses := src.GetCourses(ctx, datastore.CourseFilter{StudentID: studentID})
	var perf []CoursePerformance
	for _, c := range courses {
		if ps, ok := byCourse[c.ID]; ok {
			perf = append(perf, CoursePerformance{CourseName: c.Title, AverageScore: mean(ps)})
		}
	}
	return LearningSuggestions(u.Name, courseTitles(courses), perf, goals), nil
}
