package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authmw "github.com/mind-engage/howacademia/internal/auth/middleware"
	"github.com/mind-engage/howacademia/internal/datastore"
)

type harness struct {
	t     *testing.T
	store *datastore.Store
	h     http.Handler
}

func newHarness(t *testing.T, opts ...datastore.Option) *harness {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	now := time.Date(2025, 3, 14, 8, 0, 0, 0, time.UTC)
	base := []datastore.Option{
		datastore.WithClock(func() time.Time { return now }),
		datastore.WithLogger(logger),
	}
	store := datastore.New(context.Background(), nil, append(base, opts...)...)
	return &harness{t: t, store: store, h: NewRouter(Deps{
		Store:       store,
		Auth:        authmw.NewAuthService("test-secret", time.Hour),
		Logger:      logger,
		CORSOrigins: []string{"http://localhost:3000"},
	})}
}

func (h *harness) do(method, path, token string, body any) *httptest.ResponseRecorder {
	h.t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(h.t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.h.ServeHTTP(rec, req)
	return rec
}

func (h *harness) signIn(email string) string {
	h.t.Helper()
	rec := h.do(http.MethodPost, "/auth/signin", "", map[string]string{"email": email, "password": "x"})
	require.Equal(h.t, http.StatusOK, rec.Code, rec.Body.String())
	var out tokenResponse
	require.NoError(h.t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out.AccessToken
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

const (
	studentEmail     = "okello.james@mak.ac.ug"   // student2
	instructorEmail  = "okello.michael@mak.ac.ug" // instructor2
	institutionEmail = "admin@mak.ac.ug"          // institution1
)

func TestHealth(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, http.StatusOK, h.do(http.MethodGet, "/healthz", "", nil).Code)
	assert.Equal(t, http.StatusOK, h.do(http.MethodGet, "/readyz", "", nil).Code)
}

func TestSignIn(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodPost, "/auth/signin", "", map[string]string{"email": studentEmail})
	require.Equal(t, http.StatusOK, rec.Code)
	out := decodeBody[tokenResponse](t, rec)
	assert.Equal(t, "student2", out.User.ID)
	assert.NotEmpty(t, out.AccessToken)

	rec = h.do(http.MethodPost, "/auth/signin", "", map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	fields := decodeBody[map[string]any](t, rec)["fields"].(map[string]any)
	assert.Contains(t, fields, "email")
}

func TestSignUp(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodPost, "/auth/signup", "", map[string]string{
		"email": "new.teacher@kyu.ac.ug", "password": "secret1", "role": "instructor", "name": "New Teacher"})
	require.Equal(t, http.StatusCreated, rec.Code)
	out := decodeBody[tokenResponse](t, rec)
	assert.Equal(t, datastore.RoleInstructor, out.User.Role)

	rec = h.do(http.MethodPost, "/auth/signup", "", map[string]string{
		"email": "x@y.z", "password": "secret1", "role": "admin"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMe(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, http.StatusUnauthorized, h.do(http.MethodGet, "/me", "", nil).Code)

	tok := h.signIn(studentEmail)
	rec := h.do(http.MethodGet, "/me", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Okello James", decodeBody[datastore.User](t, rec).Name)

	assert.Equal(t, http.StatusNoContent, h.do(http.MethodPost, "/auth/signout", tok, nil).Code)
	_, ok := h.store.CurrentUser(context.Background())
	assert.False(t, ok)
}

func TestRoleGating(t *testing.T) {
	h := newHarness(t)
	student := h.signIn(studentEmail)
	instructor := h.signIn(instructorEmail)

	course := map[string]string{"title": "Statistics"}
	assert.Equal(t, http.StatusForbidden, h.do(http.MethodPost, "/courses", student, course).Code)
	assert.Equal(t, http.StatusForbidden, h.do(http.MethodGet, "/users", student, nil).Code)

	rec := h.do(http.MethodPost, "/courses", instructor, course)
	require.Equal(t, http.StatusCreated, rec.Code)
	c := decodeBody[datastore.Course](t, rec)
	assert.Equal(t, "instructor2", c.InstructorID)
	assert.Equal(t, "Prof. Michael Okello", c.InstructorName)
	assert.Equal(t, "inst1", c.InstitutionID)

	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodPost, "/courses", instructor, map[string]string{"title": "  "}).Code)
}

func TestRoleChangeAppliesToExistingToken(t *testing.T) {
	h := newHarness(t)
	tok := h.signIn(studentEmail)
	assert.Equal(t, http.StatusForbidden, h.do(http.MethodGet, "/users", tok, nil).Code)

	role := datastore.RoleInstructor
	_, err := h.store.UpdateUser(context.Background(), "student2", datastore.UserUpdate{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, h.do(http.MethodGet, "/users", tok, nil).Code)
}

func TestListCourses(t *testing.T) {
	h := newHarness(t)
	tok := h.signIn(studentEmail)

	rec := h.do(http.MethodGet, "/courses?student_id=student2", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]datastore.Course](t, rec), 5)

	rec = h.do(http.MethodGet, "/courses?student_id=nobody", tok, nil)
	assert.JSONEq(t, `[]`, rec.Body.String())

	assert.Equal(t, http.StatusNotFound, h.do(http.MethodGet, "/courses/course404", tok, nil).Code)
}

func TestEnroll(t *testing.T) {
	h := newHarness(t)
	tok := h.signIn(studentEmail)

	for n := 0; n < 2; n++ {
		rec := h.do(http.MethodPost, "/courses/course8/enroll", tok, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []string{"student5", "student2"}, decodeBody[datastore.Course](t, rec).EnrolledStudents)
	}

	// a student cannot enrol someone else
	rec := h.do(http.MethodPost, "/courses/course6/enroll", tok, map[string]string{"studentId": "student7"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decodeBody[datastore.Course](t, rec).EnrolledStudents, "student2")

	instructor := h.signIn(instructorEmail)
	rec = h.do(http.MethodPost, "/courses/course6/enroll", instructor, map[string]string{"studentId": "student7"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decodeBody[datastore.Course](t, rec).EnrolledStudents, "student7")

	assert.Equal(t, http.StatusNotFound, h.do(http.MethodPost, "/courses/course404/enroll", tok, nil).Code)
}

func TestEnroll_CapacityConflict(t *testing.T) {
	h := newHarness(t, datastore.WithCourseCapacity(1))
	tok := h.signIn(studentEmail)
	assert.Equal(t, http.StatusConflict, h.do(http.MethodPost, "/courses/course5/enroll", tok, nil).Code)
}

func TestExamAnswerKeys(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodGet, "/exams/exam1", h.signIn(studentEmail), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	for _, q := range decodeBody[datastore.Exam](t, rec).Questions {
		assert.Zero(t, q.CorrectAnswer)
	}

	rec = h.do(http.MethodGet, "/exams?course_id=course1", h.signIn(instructorEmail), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	exams := decodeBody[[]datastore.Exam](t, rec)
	require.Len(t, exams, 1)
	assert.Equal(t, 1, exams[0].Questions[0].CorrectAnswer)
}

func TestCreateExam(t *testing.T) {
	h := newHarness(t)
	tok := h.signIn(instructorEmail)

	body := map[string]any{
		"title": "Matrices Quiz", "courseId": "course3", "duration": 30,
		"questions": []map[string]any{
			{"id": "q1", "question": "det(I)?", "options": []string{"0", "1"}, "correctAnswer": 1, "points": 5},
		},
	}
	rec := h.do(http.MethodPost, "/exams", tok, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	e := decodeBody[datastore.Exam](t, rec)
	assert.Equal(t, "Linear Algebra and Matrix Theory", e.CourseName)
	assert.Equal(t, "instructor2", e.InstructorID)

	body["questions"] = []map[string]any{
		{"id": "q1", "question": "det(I)?", "options": []string{"0", "1"}, "correctAnswer": 2, "points": 5},
	}
	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodPost, "/exams", tok, body).Code)

	body["questions"] = []map[string]any{}
	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodPost, "/exams", tok, body).Code)
}

func TestSubmitExam(t *testing.T) {
	h := newHarness(t, datastore.WithUniqueSubmissions(true))
	tok := h.signIn("nakato.peter@mak.ac.ug") // student6

	rec := h.do(http.MethodPost, "/exams/exam1/submit", tok, map[string]any{
		"answers": map[string]int{"q1": 1, "q2": 1, "q3": 0},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	sub := decodeBody[datastore.ExamSubmission](t, rec)
	assert.Equal(t, 20.0, sub.Score)
	assert.Equal(t, 50.0, sub.TotalPoints)
	assert.Equal(t, "student6", sub.StudentID)

	rec = h.do(http.MethodPost, "/exams/exam1/submit", tok, map[string]any{"answers": map[string]int{}})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = h.do(http.MethodPost, "/exams/exam404/submit", tok, map[string]any{"answers": map[string]int{}})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListSubmissions_StudentSeesOwnOnly(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodGet, "/submissions?student_id=student1", h.signIn(studentEmail), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	subs := decodeBody[[]datastore.ExamSubmission](t, rec)
	require.Len(t, subs, 2)
	for _, s := range subs {
		assert.Equal(t, "student2", s.StudentID)
	}

	rec = h.do(http.MethodGet, "/submissions?instructor_id=instructor2", h.signIn(instructorEmail), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]datastore.ExamSubmission](t, rec), 2)
}

func TestCreateSubmission(t *testing.T) {
	h := newHarness(t)
	tok := h.signIn(studentEmail)

	rec := h.do(http.MethodPost, "/submissions", tok, map[string]any{
		"examId": "exam4", "studentId": "student1", "score": 20, "totalPoints": 30,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	sub := decodeBody[datastore.ExamSubmission](t, rec)
	assert.Equal(t, "student2", sub.StudentID)
	assert.Equal(t, "Okello James", sub.StudentName)
	assert.Equal(t, datastore.StatusCompleted, sub.Status)

	rec = h.do(http.MethodPost, "/submissions", tok, map[string]any{"examId": "exam4", "score": 40, "totalPoints": 30})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateUser(t *testing.T) {
	h := newHarness(t)
	student := h.signIn(studentEmail)

	rec := h.do(http.MethodPatch, "/users/student2", student, map[string]string{"bio": "Likes algebra"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Likes algebra", decodeBody[datastore.User](t, rec).Bio)

	assert.Equal(t, http.StatusForbidden, h.do(http.MethodPatch, "/users/student1", student, map[string]string{"bio": "x"}).Code)
	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodPatch, "/users/student2", student, map[string]string{"email": "nope"}).Code)

	admin := h.signIn(institutionEmail)
	rec = h.do(http.MethodPatch, "/users/student1", admin, map[string]string{"name": "Mary N."})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, http.StatusNotFound, h.do(http.MethodPatch, "/users/ghost", admin, map[string]string{"bio": "x"}).Code)
	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodPatch, "/users/student1", admin, map[string]string{"role": "root"}).Code)
}

func TestSessionsAndChat(t *testing.T) {
	h := newHarness(t)
	instructor := h.signIn(instructorEmail)
	student := h.signIn(studentEmail)

	rec := h.do(http.MethodPost, "/sessions", instructor, map[string]any{
		"title": "Office hours", "scheduledAt": "2025-03-20T14:00:00Z", "duration": 45, "maxParticipants": 10,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	sess := decodeBody[datastore.Session](t, rec)
	assert.Equal(t, "Prof. Michael Okello", sess.InstructorName)

	assert.Equal(t, http.StatusForbidden, h.do(http.MethodPost, "/sessions", student, map[string]any{}).Code)

	rec = h.do(http.MethodPost, "/sessions/"+sess.ID+"/join", student, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"student2"}, decodeBody[datastore.Session](t, rec).Participants)
	assert.Equal(t, http.StatusNotFound, h.do(http.MethodPost, "/sessions/nope/join", student, nil).Code)

	rec = h.do(http.MethodPost, "/sessions/"+sess.ID+"/messages", student, map[string]string{"content": "Hello!"})
	require.Equal(t, http.StatusCreated, rec.Code)
	msg := decodeBody[datastore.Message](t, rec)
	assert.Equal(t, "Okello James", msg.UserName)

	rec = h.do(http.MethodGet, "/sessions/"+sess.ID+"/messages", instructor, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]datastore.Message](t, rec), 1)
}

func TestInstitutionsArePublic(t *testing.T) {
	h := newHarness(t)
	rec := h.do(http.MethodGet, "/institutions", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]datastore.Institution](t, rec), 4)
	assert.Equal(t, http.StatusNotFound, h.do(http.MethodGet, "/institutions/inst9", "", nil).Code)
}

func TestInsights(t *testing.T) {
	h := newHarness(t)
	instructor := h.signIn(instructorEmail)

	rec := h.do(http.MethodGet, "/insights/exams/exam2", instructor, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decodeBody[reportResponse](t, rec).Report, `Assessment Analysis for "Linear Algebra Quiz 1"`)

	rec = h.do(http.MethodGet, "/insights/students/student1/suggestions?goals=Graduate", instructor, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decodeBody[reportResponse](t, rec).Report, "Learning Goals: Graduate")

	assert.Equal(t, http.StatusNotFound, h.do(http.MethodGet, "/insights/students/ghost", instructor, nil).Code)
	assert.Equal(t, http.StatusForbidden, h.do(http.MethodGet, "/insights/exams/exam2", h.signIn(studentEmail), nil).Code)
}

func TestAuthRateLimit(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := datastore.New(context.Background(), nil, datastore.WithLogger(logger))
	h := NewRouter(Deps{
		Store: store, Auth: authmw.NewAuthService("s", time.Hour), Logger: logger,
		AuthRatePerSec: 0.001, AuthRateBurst: 2,
	})

	codes := make([]int, 3)
	for i := range codes {
		req := httptest.NewRequest(http.MethodPost, "/auth/signin", bytes.NewBufferString(`{"email":"a@b.co"}`))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes[i] = rec.Code
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
