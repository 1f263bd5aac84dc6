package datastore

import (
	"maps"
	"slices"
	"time"
)

type Role string

const (
	RoleStudent     Role = "student"
	RoleInstructor  Role = "instructor"
	RoleInstitution Role = "institution"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleInstructor, RoleInstitution:
		return true
	}
	return false
}

type SubmissionStatus string

const (
	StatusCompleted  SubmissionStatus = "completed"
	StatusInProgress SubmissionStatus = "in-progress"
)

// Optional fields are empty when unset; they are omitted from snapshots.
type User struct {
	ID                    string    `json:"id"`
	Email                 string    `json:"email"`
	Name                  string    `json:"name"`
	Role                  Role      `json:"role"`
	Bio                   string    `json:"bio,omitempty"`
	ProfilePicture        string    `json:"profilePicture,omitempty"`
	CreatedAt             time.Time `json:"createdAt"`
	InstitutionID         string    `json:"institutionId,omitempty"`
	SubjectSpecialization string    `json:"subjectSpecialization,omitempty"`
	PricePerSession       float64   `json:"pricePerSession,omitempty"`
}

type Course struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	InstructorID     string    `json:"instructorId"`
	InstructorName   string    `json:"instructorName"`
	InstitutionID    string    `json:"institutionId"`
	CreatedAt        time.Time `json:"createdAt"`
	EnrolledStudents []string  `json:"enrolledStudents"`
	Image            string    `json:"image,omitempty"`
}

func (c Course) clone() Course {
	c.EnrolledStudents = slices.Clone(c.EnrolledStudents)
	return c
}

// HasStudent reports whether studentID is enrolled.
func (c Course) HasStudent(studentID string) bool {
	return slices.Contains(c.EnrolledStudents, studentID)
}

type ExamQuestion struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"` // index into Options
	Points        float64  `json:"points"`
}

type Exam struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	CourseID       string         `json:"courseId"`
	CourseName     string         `json:"courseName"`
	InstructorID   string         `json:"instructorId"`
	InstructorName string         `json:"instructorName"`
	Duration       int            `json:"duration"` // minutes
	Questions      []ExamQuestion `json:"questions"`
	CreatedAt      time.Time      `json:"createdAt"`
}

func (e Exam) clone() Exam {
	if e.Questions != nil {
		qs := make([]ExamQuestion, len(e.Questions))
		for i, q := range e.Questions {
			q.Options = slices.Clone(q.Options)
			qs[i] = q
		}
		e.Questions = qs
	}
	return e
}

// TotalPoints sums the points of every question.
func (e Exam) TotalPoints() float64 {
	total := 0.0
	for _, q := range e.Questions {
		total += q.Points
	}
	return total
}

// WithoutAnswers returns a copy with every CorrectAnswer zeroed, for
// handing an exam to the student taking it.
func (e Exam) WithoutAnswers() Exam {
	e = e.clone()
	for i := range e.Questions {
		e.Questions[i].CorrectAnswer = 0
	}
	return e
}

type ExamSubmission struct {
	ID          string           `json:"id"`
	ExamID      string           `json:"examId"`
	StudentID   string           `json:"studentId"`
	StudentName string           `json:"studentName"`
	Answers     map[string]int   `json:"answers"` // question id -> option index
	Score       float64          `json:"score"`
	TotalPoints float64          `json:"totalPoints"`
	SubmittedAt time.Time        `json:"submittedAt"`
	Status      SubmissionStatus `json:"status"`
}

func (s ExamSubmission) clone() ExamSubmission {
	s.Answers = maps.Clone(s.Answers)
	return s
}

type Session struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	InstructorID    string    `json:"instructorId"`
	InstructorName  string    `json:"instructorName"`
	CourseID        string    `json:"courseId,omitempty"`
	ScheduledAt     time.Time `json:"scheduledAt"`
	Duration        int       `json:"duration"` // minutes
	MaxParticipants int       `json:"maxParticipants"`
	Participants    []string  `json:"participants"`
}

func (s Session) clone() Session {
	s.Participants = slices.Clone(s.Participants)
	return s
}

func (s Session) HasParticipant(userID string) bool {
	return slices.Contains(s.Participants, userID)
}

type Institution struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Logo        string    `json:"logo,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
