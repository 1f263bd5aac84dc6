package http

import (
	"net/http"

	"github.com/mind-engage/howacademia/internal/datastore"
	"github.com/mind-engage/howacademia/internal/rbac"
)

// GET /submissions?exam_id=&student_id=&instructor_id=
// Callers without submission:view-all only ever see their own.
func ListSubmissionsHandler(store *datastore.Store, checker *rbac.Checker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		f := datastore.SubmissionFilter{
			ExamID:       q.Get("exam_id"),
			StudentID:    q.Get("student_id"),
			InstructorID: q.Get("instructor_id"),
		}
		ctx := r.Context()
		if !checker.Has(rbac.RoleFromContext(ctx), rbac.PermSubmissionAll) {
			f.StudentID = rbac.SubjectFromContext(ctx)
			f.InstructorID = ""
		}
		respondJSON(w, http.StatusOK, store.GetExamSubmissions(ctx, f))
	}
}

// POST /submissions
// Stores a pre-scored submission as given. Students may only file their own.
func CreateSubmissionHandler(store *datastore.Store, checker *rbac.Checker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			datastore.SubmissionInput
			ExamID      string                     `json:"examId" validate:"notblank"`
			Score       float64                    `json:"score" validate:"gte=0,ltefield=TotalPoints"`
			TotalPoints float64                    `json:"totalPoints" validate:"gte=0"`
			Status      datastore.SubmissionStatus `json:"status" validate:"omitempty,oneof=completed in-progress"`
		}
		if !decode(w, r, &req) {
			return
		}
		in := req.SubmissionInput
		in.ExamID, in.Score, in.TotalPoints, in.Status = req.ExamID, req.Score, req.TotalPoints, req.Status
		if in.Status == "" {
			in.Status = datastore.StatusCompleted
		}

		ctx := r.Context()
		if in.StudentID == "" || !checker.Has(rbac.RoleFromContext(ctx), rbac.PermSubmissionAll) {
			in.StudentID = rbac.SubjectFromContext(ctx)
		}
		if in.StudentName == "" {
			if u, ok := store.GetUserByID(ctx, in.StudentID); ok {
				in.StudentName = u.Name
			}
		}
		sub, err := store.CreateExamSubmission(ctx, in)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, sub)
	}
}
