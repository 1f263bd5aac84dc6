package datastore

import "time"

// Zero-valued filter fields match everything; set fields are ANDed.

type UserFilter struct {
	Role          Role
	InstitutionID string
}

func (f UserFilter) match(u User) bool {
	if f.Role != "" && u.Role != f.Role {
		return false
	}
	if f.InstitutionID != "" && u.InstitutionID != f.InstitutionID {
		return false
	}
	return true
}

type CourseFilter struct {
	InstructorID string
	StudentID    string // membership in EnrolledStudents
}

func (f CourseFilter) match(c Course) bool {
	if f.InstructorID != "" && c.InstructorID != f.InstructorID {
		return false
	}
	if f.StudentID != "" && !c.HasStudent(f.StudentID) {
		return false
	}
	return true
}

type ExamFilter struct {
	InstructorID string
	CourseID     string
}

func (f ExamFilter) match(e Exam) bool {
	if f.InstructorID != "" && e.InstructorID != f.InstructorID {
		return false
	}
	if f.CourseID != "" && e.CourseID != f.CourseID {
		return false
	}
	return true
}

// SubmissionFilter.InstructorID selects submissions for exams owned by that
// instructor.
type SubmissionFilter struct {
	ExamID       string
	StudentID    string
	InstructorID string
}

type SessionFilter struct {
	InstructorID string
	StudentID    string // membership in Participants
}

func (f SessionFilter) match(s Session) bool {
	if f.InstructorID != "" && s.InstructorID != f.InstructorID {
		return false
	}
	if f.StudentID != "" && !s.HasParticipant(f.StudentID) {
		return false
	}
	return true
}

// UserUpdate carries a partial user; nil fields are left untouched.
type UserUpdate struct {
	Email                 *string  `json:"email,omitempty"`
	Name                  *string  `json:"name,omitempty"`
	Role                  *Role    `json:"role,omitempty"`
	Bio                   *string  `json:"bio,omitempty"`
	ProfilePicture        *string  `json:"profilePicture,omitempty"`
	InstitutionID         *string  `json:"institutionId,omitempty"`
	SubjectSpecialization *string  `json:"subjectSpecialization,omitempty"`
	PricePerSession       *float64 `json:"pricePerSession,omitempty"`
}

func (up UserUpdate) apply(u User) User {
	if up.Email != nil {
		u.Email = *up.Email
	}
	if up.Name != nil {
		u.Name = *up.Name
	}
	if up.Role != nil {
		u.Role = *up.Role
	}
	if up.Bio != nil {
		u.Bio = *up.Bio
	}
	if up.ProfilePicture != nil {
		u.ProfilePicture = *up.ProfilePicture
	}
	if up.InstitutionID != nil {
		u.InstitutionID = *up.InstitutionID
	}
	if up.SubjectSpecialization != nil {
		u.SubjectSpecialization = *up.SubjectSpecialization
	}
	if up.PricePerSession != nil {
		u.PricePerSession = *up.PricePerSession
	}
	return u
}

// Create inputs: every entity field except the store-generated ones.

type CourseInput struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	InstructorID     string   `json:"instructorId"`
	InstructorName   string   `json:"instructorName"`
	InstitutionID    string   `json:"institutionId"`
	EnrolledStudents []string `json:"enrolledStudents,omitempty"`
	Image            string   `json:"image,omitempty"`
}

type ExamInput struct {
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	CourseID       string         `json:"courseId"`
	CourseName     string         `json:"courseName"`
	InstructorID   string         `json:"instructorId"`
	InstructorName string         `json:"instructorName"`
	Duration       int            `json:"duration"`
	Questions      []ExamQuestion `json:"questions"`
}

type SubmissionInput struct {
	ExamID      string           `json:"examId"`
	StudentID   string           `json:"studentId"`
	StudentName string           `json:"studentName"`
	Answers     map[string]int   `json:"answers"`
	Score       float64          `json:"score"`
	TotalPoints float64          `json:"totalPoints"`
	Status      SubmissionStatus `json:"status"`
}

// SessionInput has no generated timestamp: ScheduledAt is supplied.
type SessionInput struct {
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	InstructorID    string    `json:"instructorId"`
	InstructorName  string    `json:"instructorName"`
	CourseID        string    `json:"courseId,omitempty"`
	ScheduledAt     time.Time `json:"scheduledAt"`
	Duration        int       `json:"duration"`
	MaxParticipants int       `json:"maxParticipants"`
	Participants    []string  `json:"participants,omitempty"`
}

type MessageInput struct {
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`
	Content   string `json:"content"`
}
