package datastore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mind-engage/howacademia/internal/events"
	"github.com/mind-engage/howacademia/internal/storage"
)

func TestSignIn_ReusesExistingUser(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil)

	u, err := s.SignIn(ctx, "okello.james@mak.ac.ug", "whatever")
	require.NoError(t, err)
	assert.Equal(t, "student2", u.ID)

	again, err := s.SignIn(ctx, "okello.james@mak.ac.ug", "other")
	require.NoError(t, err)
	assert.Equal(t, u.ID, again.ID)
	assert.Len(t, s.GetUsers(ctx, UserFilter{}), 16)
}

func TestSignIn_SharedEmailResolvesToFirstUser(t *testing.T) {
	s := newTestStore(t, nil)
	u, err := s.SignIn(context.Background(), "nakato.mary@mak.ac.ug", "")
	require.NoError(t, err)
	assert.Equal(t, "instructor5", u.ID)
}

func TestSignIn_CreatesStudentForUnknownEmail(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil)
	rec := &recorder{}
	s.Subscribe(rec.handle)

	u, err := s.SignIn(ctx, "new.person@kyu.ac.ug", "")
	require.NoError(t, err)
	assert.Equal(t, RoleStudent, u.Role)
	assert.Equal(t, "new.person", u.Name)
	assert.Equal(t, fixedNow, u.CreatedAt)

	cur, ok := s.CurrentUser(ctx)
	require.True(t, ok)
	assert.Equal(t, u.ID, cur.ID)
	assert.Equal(t, []events.Kind{events.UserCreated}, rec.kinds())
}

func TestSignIn_EmptyEmail(t *testing.T) {
	s := newTestStore(t, nil)
	_, err := s.SignIn(context.Background(), "", "pw")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSignUp_DuplicateEmailCreatesSecondUser(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil)

	a, err := s.SignUp(ctx, "dup@mak.ac.ug", "pw", RoleInstructor, "Dup One")
	require.NoError(t, err)
	b, err := s.SignUp(ctx, "dup@mak.ac.ug", "pw", RoleStudent, "")
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, "Dup One", a.Name)
	assert.Equal(t, "dup", b.Name)
	cur, _ := s.CurrentUser(ctx)
	assert.Equal(t, b.ID, cur.ID)
}

func TestSignUp_InvalidRole(t *testing.T) {
	s := newTestStore(t, nil)
	_, err := s.SignUp(context.Background(), "a@b.c", "pw", Role("admin"), "")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestGetUsers_Filters(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil)

	assert.Len(t, s.GetUsers(ctx, UserFilter{Role: RoleInstructor}), 6)
	assert.Len(t, s.GetUsers(ctx, UserFilter{Role: RoleStudent, InstitutionID: "inst1"}), 3)
	assert.Empty(t, s.GetUsers(ctx, UserFilter{InstitutionID: "nowhere"}))
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	s := newTestStore(t, kv)

	_, err := s.SignIn(ctx, "kabugo.john@ucu.ac.ug", "")
	require.NoError(t, err)

	bio := "Final-year student"
	u, err := s.UpdateUser(ctx, "student4", UserUpdate{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, bio, u.Bio)
	assert.Equal(t, "Kabugo John", u.Name)

	cur, ok := s.CurrentUser(ctx)
	require.True(t, ok)
	assert.Equal(t, bio, cur.Bio)
}

func TestUpdateUser_UnknownIDChangesNothing(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil)
	before := s.GetUsers(ctx, UserFilter{})

	name := "ghost"
	_, err := s.UpdateUser(ctx, "nobody", UserUpdate{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, before, s.GetUsers(ctx, UserFilter{}))
}

func TestUpdateUser_InvalidRole(t *testing.T) {
	s := newTestStore(t, nil)
	r := Role("superuser")
	_, err := s.UpdateUser(context.Background(), "student1", UserUpdate{Role: &r})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestGetCourses_ByStudent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil)

	got := s.GetCourses(ctx, CourseFilter{StudentID: "student1"})
	ids := make([]string, len(got))
	for i, c := range got {
		ids[i] = c.ID
	}
	assert.Equal(t, []string{"course1", "course2", "course3", "course7"}, ids)

	none := s.GetCourses(ctx, CourseFilter{StudentID: "stranger"})
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestGetCourses_ByInstructor(t *testing.T) {
	s := newTestStore(t, nil)
	assert.Len(t, s.GetCourses(context.Background(), CourseFilter{InstructorID: "instructor3"}), 2)
}

func TestEnrollInCourse_Idempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil)
	rec := &recorder{}
	s.Subscribe(rec.handle)

	require.NoError(t, s.EnrollInCourse(ctx, "course8", "student9"))
	require.NoError(t, s.EnrollInCourse(ctx, "course8", "student9"))

	c, ok := s.GetCourseByID(ctx, "course8")
	require.True(t, ok)
	assert.Equal(t, []string{"student5", "student9"}, c.EnrolledStudents)

	require.Len(t, rec.got, 1)
	assert.Equal(t, events.CourseEnrolled, rec.got[0].Kind)
	assert.Equal(t, []string{"course8", "student9"}, rec.got[0].IDs)
}

func TestEnrollInCourse_UnknownCourseIsNoop(t *testing.T) {
	s := newTestStore(t, nil)
	rec := &recorder{}
	s.Subscribe(rec.handle)
	assert.NoError(t, s.EnrollInCourse(context.Background(), "course404", "student1"))
	assert.Empty(t, rec.got)
}

func TestEnrollInCourse_Capacity(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil, WithCourseCapacity(2))

	require.NoError(t, s.EnrollInCourse(ctx, "course5", "student1"))
	err := s.EnrollInCourse(ctx, "course5", "student2")
	assert.ErrorIs(t, err, ErrCapacityReached)
	// already enrolled students are still a no-op at capacity
	assert.NoError(t, s.EnrollInCourse(ctx, "course5", "student1"))
}

func TestCreateCourse_AssignsIDAndTimestamp(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil)
	c := s.CreateCourse(ctx, CourseInput{Title: "Soil Science", InstructorID: "instructor1"})
	assert.Equal(t, "course_1", c.ID)
	assert.Equal(t, fixedNow, c.CreatedAt)
	assert.NotNil(t, c.EnrolledStudents)
}

func TestGetters_ReturnCopies(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil)

	c, _ := s.GetCourseByID(ctx, "course1")
	c.EnrolledStudents[0] = "mutated"
	again, _ := s.GetCourseByID(ctx, "course1")
	assert.Equal(t, "student1", again.EnrolledStudents[0])

	e, _ := s.GetExamByID(ctx, "exam1")
	e.Questions[0].Options[0] = "mutated"
	e2, _ := s.GetExamByID(ctx, "exam1")
	assert.Equal(t, "January-March", e2.Questions[0].Options[0])

	subs := s.GetExamSubmissions(ctx, SubmissionFilter{ExamID: "exam1"})
	subs[0].Answers["q1"] = 3
	again2 := s.GetExamSubmissions(ctx, SubmissionFilter{ExamID: "exam1"})
	assert.Equal(t, 0, again2[0].Answers["q1"])
}

func TestGetExams_Filters(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil)
	assert.Len(t, s.GetExams(ctx, ExamFilter{InstructorID: "instructor1"}), 1)
	assert.Len(t, s.GetExams(ctx, ExamFilter{CourseID: "course7"}), 1)
	_, ok := s.GetExamByID(ctx, "exam404")
	assert.False(t, ok)
}

func TestWithoutAnswers(t *testing.T) {
	s := newTestStore(t, nil)
	e, _ := s.GetExamByID(context.Background(), "exam1")
	stripped := e.WithoutAnswers()
	for _, q := range stripped.Questions {
		assert.Zero(t, q.CorrectAnswer)
	}
	assert.Equal(t, 1, e.Questions[0].CorrectAnswer)
	assert.Equal(t, 50.0, e.TotalPoints())
}

func TestGetExamSubmissions_ByInstructor(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil)

	got := s.GetExamSubmissions(ctx, SubmissionFilter{InstructorID: "instructor1"})
	require.Len(t, got, 2)
	for _, sub := range got {
		assert.Equal(t, "exam1", sub.ExamID)
	}
	assert.Empty(t, s.GetExamSubmissions(ctx, SubmissionFilter{InstructorID: "instructor6"}))
	assert.Len(t, s.GetExamSubmissions(ctx, SubmissionFilter{StudentID: "student1"}), 3)
}

func TestSubmitExam_Grades(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil)
	rec := &recorder{}
	s.Subscribe(rec.handle)

	// exam2: three 20-point questions, correct answers 1, 1, 1
	sub, err := s.SubmitExam(ctx, "exam2", "student6", map[string]int{"q1": 1, "q2": 0})
	require.NoError(t, err)
	assert.Equal(t, 20.0, sub.Score)
	assert.Equal(t, 60.0, sub.TotalPoints)
	assert.Equal(t, "Nakato Peter", sub.StudentName)
	assert.Equal(t, StatusCompleted, sub.Status)
	assert.Equal(t, fixedNow, sub.SubmittedAt)
	assert.Equal(t, []events.Kind{events.SubmissionCreated}, rec.kinds())
}

func TestSubmitExam_UnknownExam(t *testing.T) {
	s := newTestStore(t, nil)
	_, err := s.SubmitExam(context.Background(), "exam404", "student1", nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubmitExam_UnknownStudentUsesID(t *testing.T) {
	s := newTestStore(t, nil)
	sub, err := s.SubmitExam(context.Background(), "exam4", "walk-in", map[string]int{"q1": 0})
	require.NoError(t, err)
	assert.Equal(t, "walk-in", sub.StudentName)
	assert.Equal(t, 10.0, sub.Score)
}

func TestCreateExamSubmission_StoresAsGiven(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil)
	sub, err := s.CreateExamSubmission(ctx, SubmissionInput{
		ExamID: "exam1", StudentID: "student1", StudentName: "Nakato Mary",
		Score: 99, TotalPoints: 50, Status: StatusInProgress,
	})
	require.NoError(t, err)
	assert.Equal(t, 99.0, sub.Score)
	assert.NotNil(t, sub.Answers)
	// a second attempt is accepted by default
	_, err = s.CreateExamSubmission(ctx, SubmissionInput{ExamID: "exam1", StudentID: "student1"})
	assert.NoError(t, err)
}

func TestUniqueSubmissions(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil, WithUniqueSubmissions(true))

	_, err := s.SubmitExam(ctx, "exam1", "student1", map[string]int{"q1": 1})
	assert.ErrorIs(t, err, ErrDuplicateSubmission)

	_, err = s.SubmitExam(ctx, "exam1", "student8", map[string]int{"q1": 1})
	assert.NoError(t, err)
}

func TestGrade_DoesNotRecord(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil)
	e, _ := s.GetExamByID(ctx, "exam3")
	res := Grade(e, map[string]int{"q1": 1, "q2": 1})
	assert.Equal(t, 30.0, res.Score)
	assert.Equal(t, 60.0, res.TotalPoints)
	assert.Len(t, s.GetExamSubmissions(ctx, SubmissionFilter{ExamID: "exam3"}), 1)
}

func TestSessions(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil)

	assert.Len(t, s.GetSessions(ctx, SessionFilter{StudentID: "student1"}), 4)
	assert.Len(t, s.GetSessions(ctx, SessionFilter{InstructorID: "instructor2"}), 2)

	at := fixedNow.Add(48 * time.Hour)
	sess := s.CreateSession(ctx, SessionInput{Title: "Revision", InstructorID: "instructor2", ScheduledAt: at, MaxParticipants: 1})
	assert.Equal(t, at, sess.ScheduledAt)
	assert.NotNil(t, sess.Participants)

	require.NoError(t, s.JoinSession(ctx, sess.ID, "student1"))
	require.NoError(t, s.JoinSession(ctx, sess.ID, "student1"))
	// capacity is advisory unless enabled
	require.NoError(t, s.JoinSession(ctx, sess.ID, "student2"))

	got, ok := s.GetSessionByID(ctx, sess.ID)
	require.True(t, ok)
	assert.Equal(t, []string{"student1", "student2"}, got.Participants)

	assert.ErrorIs(t, s.JoinSession(ctx, "session404", "student1"), ErrNotFound)
}

func TestJoinSession_CapacityCheck(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil, WithSessionCapacityCheck(true))
	sess := s.CreateSession(ctx, SessionInput{Title: "Small", MaxParticipants: 1})

	require.NoError(t, s.JoinSession(ctx, sess.ID, "student1"))
	assert.ErrorIs(t, s.JoinSession(ctx, sess.ID, "student2"), ErrCapacityReached)
}

func TestInstitutions(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil)
	inst, ok := s.GetInstitutionByID(ctx, "inst2")
	require.True(t, ok)
	assert.Equal(t, "Kyambogo University", inst.Name)
	_, ok = s.GetInstitutionByID(ctx, "inst9")
	assert.False(t, ok)
}

func TestMessages_SortedAndScoped(t *testing.T) {
	ctx := context.Background()
	clock := fixedNow
	s := newTestStore(t, storage.NewMemoryKV(), WithClock(func() time.Time { return clock }))

	clock = fixedNow.Add(2 * time.Minute)
	s.CreateMessage(ctx, MessageInput{SessionID: "session1", UserID: "student1", Content: "second"})
	clock = fixedNow.Add(1 * time.Minute)
	s.CreateMessage(ctx, MessageInput{SessionID: "session1", UserID: "student2", Content: "first"})
	s.CreateMessage(ctx, MessageInput{SessionID: "session2", UserID: "student2", Content: "elsewhere"})

	got := s.GetMessages(ctx, "session1")
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Content)
	assert.Equal(t, "second", got[1].Content)
	assert.Empty(t, s.GetMessages(ctx, "session9"))
}

func TestSubscribe_Cancel(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil)
	rec := &recorder{}
	cancel := s.Subscribe(rec.handle)

	s.CreateCourse(ctx, CourseInput{Title: "A"})
	cancel()
	s.CreateCourse(ctx, CourseInput{Title: "B"})

	assert.Equal(t, []events.Kind{events.CourseCreated}, rec.kinds())
}
