package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/howacademia/internal/datastore"
	"github.com/mind-engage/howacademia/internal/rbac"
)

// answerKeysHidden reports whether the caller may not see correct answers.
func answerKeysHidden(r *http.Request, checker *rbac.Checker) bool {
	return !checker.Has(rbac.RoleFromContext(r.Context()), rbac.PermExamCreate)
}

// GET /exams?instructor_id=&course_id=
func ListExamsHandler(store *datastore.Store, checker *rbac.Checker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		list := store.GetExams(r.Context(), datastore.ExamFilter{
			InstructorID: q.Get("instructor_id"),
			CourseID:     q.Get("course_id"),
		})
		if answerKeysHidden(r, checker) {
			for i := range list {
				list[i] = list[i].WithoutAnswers()
			}
		}
		respondJSON(w, http.StatusOK, list)
	}
}

// GET /exams/{id}
func GetExamHandler(store *datastore.Store, checker *rbac.Checker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, ok := store.GetExamByID(r.Context(), chi.URLParam(r, "id"))
		if !ok {
			notFound(w, "exam")
			return
		}
		if answerKeysHidden(r, checker) {
			e = e.WithoutAnswers()
		}
		respondJSON(w, http.StatusOK, e)
	}
}

type questionRequest struct {
	ID            string   `json:"id" validate:"notblank"`
	Question      string   `json:"question" validate:"notblank"`
	Options       []string `json:"options" validate:"min=2,dive,notblank"`
	CorrectAnswer int      `json:"correctAnswer" validate:"gte=0"`
	Points        float64  `json:"points" validate:"gte=0"`
}

type createExamRequest struct {
	Title          string            `json:"title" validate:"notblank"`
	Description    string            `json:"description"`
	CourseID       string            `json:"courseId" validate:"notblank"`
	CourseName     string            `json:"courseName"`
	InstructorID   string            `json:"instructorId"`
	InstructorName string            `json:"instructorName"`
	Duration       int               `json:"duration" validate:"gt=0"`
	Questions      []questionRequest `json:"questions" validate:"min=1,dive"`
}

// POST /exams
func CreateExamHandler(store *datastore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createExamRequest
		if !decode(w, r, &req) {
			return
		}
		seen := map[string]bool{}
		qs := make([]datastore.ExamQuestion, len(req.Questions))
		for i, q := range req.Questions {
			if q.CorrectAnswer >= len(q.Options) {
				respondJSON(w, http.StatusBadRequest, map[string]string{
					"error": fmt.Sprintf("question %s: correctAnswer out of range", q.ID)})
				return
			}
			if seen[q.ID] {
				respondJSON(w, http.StatusBadRequest, map[string]string{
					"error": fmt.Sprintf("duplicate question id %s", q.ID)})
				return
			}
			seen[q.ID] = true
			qs[i] = datastore.ExamQuestion(q)
		}

		ctx := r.Context()
		in := datastore.ExamInput{
			Title: req.Title, Description: req.Description,
			CourseID: req.CourseID, CourseName: req.CourseName,
			InstructorID: req.InstructorID, InstructorName: req.InstructorName,
			Duration: req.Duration, Questions: qs,
		}
		if in.InstructorID == "" {
			in.InstructorID = rbac.SubjectFromContext(ctx)
		}
		if in.InstructorName == "" {
			if u, ok := store.GetUserByID(ctx, in.InstructorID); ok {
				in.InstructorName = u.Name
			}
		}
		if in.CourseName == "" {
			if c, ok := store.GetCourseByID(ctx, in.CourseID); ok {
				in.CourseName = c.Title
			}
		}
		respondJSON(w, http.StatusCreated, store.CreateExam(ctx, in))
	}
}

// POST /exams/{id}/submit {"answers": {"q1": 0, ...}}
// The caller is the student; the stored exam decides the score.
func SubmitExamHandler(store *datastore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Answers map[string]int `json:"answers" validate:"required"`
		}
		if !decode(w, r, &req) {
			return
		}
		sub, err := store.SubmitExam(r.Context(), chi.URLParam(r, "id"), rbac.SubjectFromContext(r.Context()), req.Answers)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, sub)
	}
}
