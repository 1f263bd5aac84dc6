package datastore

import "time"

const day = 24 * time.Hour

func sampleInstitutions(now time.Time) []Institution {
	return []Institution{
		{ID: "inst1", Name: "Makerere University", Description: "Uganda's premier public university, established in 1922", CreatedAt: now},
		{ID: "inst2", Name: "Kyambogo University", Description: "Leading institution for technology and teacher education", CreatedAt: now},
		{ID: "inst3", Name: "Uganda Christian University", Description: "Excellence in holistic education and character development", CreatedAt: now},
		{ID: "inst4", Name: "Uganda Martyrs University", Description: "Quality education grounded in ethical values", CreatedAt: now},
	}
}

func sampleUsers(now time.Time) []User {
	instructor := func(id, email, name, bio, inst, subject string, price float64) User {
		return User{
			ID: id, Email: email, Name: name, Role: RoleInstructor, Bio: bio,
			InstitutionID: inst, SubjectSpecialization: subject, PricePerSession: price, CreatedAt: now,
		}
	}
	student := func(id, email, name, inst string) User {
		return User{ID: id, Email: email, Name: name, Role: RoleStudent, InstitutionID: inst, CreatedAt: now}
	}
	admin := func(id, email, name, inst string) User {
		return User{ID: id, Email: email, Name: name, Role: RoleInstitution, InstitutionID: inst, CreatedAt: now}
	}
	return []User{
		instructor("instructor1", "nakato.sarah@mak.ac.ug", "Dr. Sarah Nakato",
			"Expert in Computer Science with 12 years of experience. PhD in Software Engineering from Makerere University.",
			"inst1", "Computer Science", 50000),
		instructor("instructor2", "okello.michael@mak.ac.ug", "Prof. Michael Okello",
			"Mathematics and Statistics specialist with expertise in Data Analysis and Machine Learning.",
			"inst1", "Mathematics", 45000),
		instructor("instructor3", "namukasa.jane@kyu.ac.ug", "Dr. Jane Namukasa",
			"Software Engineering expert specializing in Web Development and Mobile Applications.",
			"inst2", "Software Engineering", 55000),
		instructor("instructor4", "kabugo.david@ucu.ac.ug", "Dr. David Kabugo",
			"Network Security and Cybersecurity specialist with industry experience.",
			"inst3", "Cybersecurity", 60000),
		instructor("instructor5", "nakato.mary@mak.ac.ug", "Prof. Mary Nakato",
			"Database Systems and Data Management expert with focus on modern database technologies.",
			"inst1", "Database Systems", 48000),
		instructor("instructor6", "tumusiime.peter@umu.ac.ug", "Dr. Peter Tumusiime",
			"Business Administration and Management expert with MBA from international universities.",
			"inst4", "Business Administration", 52000),

		// student1 shares an address with instructor5 in the sample catalog;
		// SignIn resolves that address to whichever comes first.
		student("student1", "nakato.mary@mak.ac.ug", "Nakato Mary", "inst1"),
		student("student2", "okello.james@mak.ac.ug", "Okello James", "inst1"),
		student("student3", "namukasa.alice@kyu.ac.ug", "Namukasa Alice", "inst2"),
		student("student4", "kabugo.john@ucu.ac.ug", "Kabugo John", "inst3"),
		student("student5", "tumusiime.rose@umu.ac.ug", "Tumusiime Rose", "inst4"),
		student("student6", "nakato.peter@mak.ac.ug", "Nakato Peter", "inst1"),
		student("student7", "okello.sarah@kyu.ac.ug", "Okello Sarah", "inst2"),
		student("student8", "namukasa.david@ucu.ac.ug", "Namukasa David", "inst3"),

		admin("institution1", "admin@mak.ac.ug", "Makerere University Admin", "inst1"),
		admin("institution2", "admin@kyu.ac.ug", "Kyambogo University Admin", "inst2"),
	}
}

// seedActivity replaces courses, exams, sessions and submissions with the
// sample catalog. Session and submission times are relative to now.
func (s *Store) seedActivity(now time.Time) {
	s.courses = sampleCourses(now)
	s.exams = sampleExams(now)
	s.sessions = sampleSessions(now)
	s.submissions = sampleSubmissions(now)
}

func sampleCourses(now time.Time) []Course {
	course := func(id, title, desc, instructorID, instructorName, inst, photo string, students ...string) Course {
		return Course{
			ID: id, Title: title, Description: desc,
			InstructorID: instructorID, InstructorName: instructorName, InstitutionID: inst,
			CreatedAt: now, EnrolledStudents: students,
			Image: "https://images.unsplash.com/photo-" + photo + "?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&q=80",
		}
	}
	return []Course{
		course("course1", "Introduction to Agriculture in Uganda",
			"Learn about modern farming techniques, crop management, and agricultural practices specific to Uganda's climate and soil conditions.",
			"instructor1", "Dr. Sarah Nakato", "inst1", "1581094271901-8022df4466f9", "student1", "student2", "student6"),
		course("course2", "Luganda Language and Culture",
			"Master the Luganda language and understand Ugandan cultural traditions, customs, and heritage.",
			"instructor1", "Dr. Sarah Nakato", "inst1", "1481627834876-b7833e8f5570", "student1", "student2", "student6"),
		course("course3", "Linear Algebra and Matrix Theory",
			"Mathematical foundations for machine learning and data science applications.",
			"instructor2", "Prof. Michael Okello", "inst1", "1635070041078-e363dbe005cb", "student1", "student2", "student6"),
		course("course4", "Full Stack Web Development",
			"Master modern web development with React, Node.js, and MongoDB.",
			"instructor3", "Dr. Jane Namukasa", "inst2", "1498050108023-c5249f4df085", "student3", "student7"),
		course("course5", "Mobile Application Development",
			"Build native and cross-platform mobile apps using React Native and Flutter.",
			"instructor3", "Dr. Jane Namukasa", "inst2", "1512941937669-90a1b58e7e9c", "student3"),
		course("course6", "Network Security Fundamentals",
			"Learn cybersecurity principles, threat detection, and security protocols.",
			"instructor4", "Dr. David Kabugo", "inst3", "1563986768609-322da13575f3", "student4", "student8"),
		course("course7", "Database Management Systems",
			"Comprehensive course on SQL, NoSQL databases, and data modeling.",
			"instructor5", "Prof. Mary Nakato", "inst1", "1544383835-bda2bc66a55d", "student1", "student2", "student6"),
		course("course8", "Business Management Principles",
			"Essential business skills including leadership, strategy, and operations.",
			"instructor6", "Dr. Peter Tumusiime", "inst4", "1552664730-d307ca884978", "student5"),
		course("course9", "Machine Learning Basics",
			"Introduction to machine learning algorithms and their applications.",
			"instructor2", "Prof. Michael Okello", "inst1", "1555949963-aa79dcee981c", "student2"),
		course("course10", "Cloud Computing",
			"Learn AWS, Azure, and Google Cloud Platform services and deployment.",
			"instructor4", "Dr. David Kabugo", "inst3", "1451187580459-43490279c0fa", "student4", "student8"),
	}
}

func mcq(id, question string, correct int, points float64, options ...string) ExamQuestion {
	return ExamQuestion{ID: id, Question: question, Options: options, CorrectAnswer: correct, Points: points}
}

func sampleExams(now time.Time) []Exam {
	return []Exam{
		{
			ID: "exam1", Title: "Agriculture Midterm Exam",
			Description: "Covers farming techniques, crop management, and agricultural practices. 60 minutes duration.",
			CourseID:    "course1", CourseName: "Introduction to Agriculture in Uganda",
			InstructorID: "instructor1", InstructorName: "Dr. Sarah Nakato", Duration: 60, CreatedAt: now,
			Questions: []ExamQuestion{
				mcq("q1", "What is the primary growing season in Uganda?", 1, 10,
					"January-March", "March-May and September-November", "June-August", "December only"),
				mcq("q2", "Which crop is Uganda's main cash crop?", 1, 10, "Maize", "Coffee", "Rice", "Wheat"),
				mcq("q3", "What is crop rotation?", 1, 10,
					"Planting the same crop every year", "Growing different crops in sequence on the same land", "Watering crops", "Harvesting crops"),
				mcq("q4", "Which farming method is most sustainable for Uganda's climate?", 1, 10,
					"Monoculture", "Mixed farming", "Industrial farming", "None of the above"),
				mcq("q5", "What is the importance of organic matter in soil?", 1, 10,
					"It has no importance", "It improves soil structure and fertility", "It harms crops", "It is expensive"),
			},
		},
		{
			ID: "exam2", Title: "Linear Algebra Quiz 1",
			Description: "Basic concepts of vectors, matrices, and linear transformations.",
			CourseID:    "course3", CourseName: "Linear Algebra and Matrix Theory",
			InstructorID: "instructor2", InstructorName: "Prof. Michael Okello", Duration: 45, CreatedAt: now,
			Questions: []ExamQuestion{
				mcq("q1", "What is the determinant of a 2x2 identity matrix?", 1, 20, "0", "1", "2", "-1"),
				mcq("q2", "What is a vector in linear algebra?", 1, 20, "A single number", "An ordered list of numbers", "A matrix", "A function"),
				mcq("q3", "What does it mean for vectors to be linearly independent?", 1, 20,
					"They are parallel", "No vector can be written as a combination of others", "They have the same magnitude", "They are orthogonal"),
			},
		},
		{
			ID: "exam3", Title: "Full Stack Development Assessment",
			Description: "Testing knowledge of React, Node.js, and database concepts.",
			CourseID:    "course4", CourseName: "Full Stack Web Development",
			InstructorID: "instructor3", InstructorName: "Dr. Jane Namukasa", Duration: 90, CreatedAt: now,
			Questions: []ExamQuestion{
				mcq("q1", "What is React?", 1, 15, "A database", "A JavaScript library for building user interfaces", "A programming language", "A server framework"),
				mcq("q2", "What is Node.js?", 1, 15, "A database", "A JavaScript runtime built on Chrome's V8 engine", "A CSS framework", "A version control system"),
				mcq("q3", "What is MongoDB?", 1, 15, "A relational database", "A NoSQL document database", "A programming language", "A web framework"),
				mcq("q4", "What is REST API?", 1, 15, "A database", "An architectural style for designing web services", "A programming language", "A CSS framework"),
			},
		},
		{
			ID: "exam4", Title: "Database Systems Final Exam",
			Description: "Comprehensive exam covering SQL, normalization, and database design.",
			CourseID:    "course7", CourseName: "Database Management Systems",
			InstructorID: "instructor5", InstructorName: "Prof. Mary Nakato", Duration: 120, CreatedAt: now,
			Questions: []ExamQuestion{
				mcq("q1", "What does SQL stand for?", 0, 10, "Structured Query Language", "Simple Query Language", "Standard Query Language", "System Query Language"),
				mcq("q2", "What is a primary key?", 1, 10, "A foreign key", "A unique identifier for a record", "A duplicate key", "An index"),
				mcq("q3", "What is database normalization?", 1, 10, "Making databases larger", "Organizing data to reduce redundancy", "Deleting data", "Backing up data"),
			},
		},
	}
}

// nextTenAM is 10:00 today in now's location, or tomorrow once that has passed.
func nextTenAM(now time.Time) time.Time {
	t := time.Date(now.Year(), now.Month(), now.Day(), 10, 0, 0, 0, now.Location())
	if t.Before(now) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

func sampleSessions(now time.Time) []Session {
	sess := func(id, title, desc, instructorID, instructorName, courseID string, at time.Time, duration, max int, participants ...string) Session {
		return Session{
			ID: id, Title: title, Description: desc,
			InstructorID: instructorID, InstructorName: instructorName, CourseID: courseID,
			ScheduledAt: at, Duration: duration, MaxParticipants: max, Participants: participants,
		}
	}
	return []Session{
		sess("session0", "Physics Q&A", "Interactive Q&A session on physics concepts and problem-solving techniques.",
			"instructor2", "Prof. Michael Okello", "course3", nextTenAM(now), 60, 25, "student1", "student2", "student6"),
		sess("session1", "Live Coding Session: React Basics", "Interactive coding session on React fundamentals and component development.",
			"instructor1", "Dr. Sarah Nakato", "course1", now.Add(1*day), 90, 30, "student1", "student2"),
		sess("session2", "Mathematics Problem Solving Workshop", "Work through challenging problems in linear algebra together.",
			"instructor2", "Prof. Michael Okello", "course3", now.Add(2*day), 60, 25, "student1", "student2", "student6"),
		sess("session3", "Full Stack Development Q&A", "Bring your questions about React, Node.js and deployment.",
			"instructor3", "Dr. Jane Namukasa", "course4", now.Add(3*day), 75, 20, "student3", "student7"),
		sess("session4", "Cybersecurity Best Practices", "Threat models, secure configuration and incident response basics.",
			"instructor4", "Dr. David Kabugo", "course6", now.Add(4*day), 90, 35, "student4", "student8"),
		sess("session5", "Database Design Workshop", "Hands-on schema design and normalization exercises.",
			"instructor5", "Prof. Mary Nakato", "course7", now.Add(5*day), 120, 15, "student1", "student2"),
		sess("session6", "Business Strategy Session", "Case studies in strategy and operations for growing businesses.",
			"instructor6", "Dr. Peter Tumusiime", "course8", now.Add(6*day), 60, 40, "student5"),
	}
}

// The sample scores are catalog values, not re-derived by grading.
func sampleSubmissions(now time.Time) []ExamSubmission {
	sub := func(id, examID, studentID, studentName string, answers map[string]int, score, total float64, ago time.Duration) ExamSubmission {
		return ExamSubmission{
			ID: id, ExamID: examID, StudentID: studentID, StudentName: studentName, Answers: answers,
			Score: score, TotalPoints: total, SubmittedAt: now.Add(-ago), Status: StatusCompleted,
		}
	}
	return []ExamSubmission{
		sub("submission1", "exam1", "student1", "Nakato Mary", map[string]int{"q1": 0, "q2": 2, "q3": 0, "q4": 2, "q5": 1}, 45, 50, 1*day),
		sub("submission2", "exam1", "student2", "Okello James", map[string]int{"q1": 0, "q2": 2, "q3": 0, "q4": 2, "q5": 0}, 40, 50, 2*day),
		sub("submission3", "exam2", "student1", "Nakato Mary", map[string]int{"q1": 1, "q2": 1, "q3": 0}, 53, 60, 3*day),
		sub("submission4", "exam2", "student2", "Okello James", map[string]int{"q1": 1, "q2": 1, "q3": 0}, 40, 60, 4*day),
		sub("submission5", "exam3", "student3", "Namukasa Alice", map[string]int{"q1": 1, "q2": 1, "q3": 1, "q4": 1}, 60, 60, 5*day),
		sub("submission6", "exam4", "student1", "Nakato Mary", map[string]int{"q1": 0, "q2": 1, "q3": 1}, 26, 30, 6*day),
	}
}
