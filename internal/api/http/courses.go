package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/howacademia/internal/datastore"
	"github.com/mind-engage/howacademia/internal/rbac"
)

// GET /courses?instructor_id=&student_id=
func ListCoursesHandler(store *datastore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		respondJSON(w, http.StatusOK, store.GetCourses(r.Context(), datastore.CourseFilter{
			InstructorID: q.Get("instructor_id"),
			StudentID:    q.Get("student_id"),
		}))
	}
}

// GET /courses/{id}
func GetCourseHandler(store *datastore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := store.GetCourseByID(r.Context(), chi.URLParam(r, "id"))
		if !ok {
			notFound(w, "course")
			return
		}
		respondJSON(w, http.StatusOK, c)
	}
}

// POST /courses
// The instructor defaults to the caller.
func CreateCourseHandler(store *datastore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			datastore.CourseInput
			Title string `json:"title" validate:"notblank,max=200"`
		}
		if !decode(w, r, &req) {
			return
		}
		in := req.CourseInput
		in.Title = req.Title
		if in.InstructorID == "" {
			in.InstructorID = rbac.SubjectFromContext(r.Context())
		}
		if u, ok := store.GetUserByID(r.Context(), in.InstructorID); ok {
			if in.InstructorName == "" {
				in.InstructorName = u.Name
			}
			if in.InstitutionID == "" {
				in.InstitutionID = u.InstitutionID
			}
		}
		respondJSON(w, http.StatusCreated, store.CreateCourse(r.Context(), in))
	}
}

// POST /courses/{id}/enroll {"studentId": "..."}
// Students always enrol themselves; staff may name a student.
func EnrollHandler(store *datastore.Store, checker *rbac.Checker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			StudentID string `json:"studentId"`
		}
		if r.ContentLength != 0 && !decode(w, r, &req) {
			return
		}
		ctx := r.Context()
		studentID := rbac.SubjectFromContext(ctx)
		if req.StudentID != "" && checker.Has(rbac.RoleFromContext(ctx), rbac.PermCourseCreate) {
			studentID = req.StudentID
		}
		courseID := chi.URLParam(r, "id")
		if _, ok := store.GetCourseByID(ctx, courseID); !ok {
			notFound(w, "course")
			return
		}
		if err := store.EnrollInCourse(ctx, courseID, studentID); err != nil {
			respondError(w, err)
			return
		}
		c, _ := store.GetCourseByID(ctx, courseID)
		respondJSON(w, http.StatusOK, c)
	}
}
