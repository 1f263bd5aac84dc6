package grading

import "errors"

// ErrNoPoints is returned when a percentage is requested for an exam whose
// questions are worth nothing in total.
var ErrNoPoints = errors.New("grading: total points is zero")

// DefaultPassMark is the percentage at or above which a result counts as a pass.
const DefaultPassMark = 60.0

// Question is the minimal view of an exam question needed for grading.
type Question struct {
	ID            string
	CorrectAnswer int
	Points        float64
}

// Result is the outcome of grading one set of answers against an exam.
type Result struct {
	Score       float64
	TotalPoints float64
	Correct     int // number of questions answered correctly
	Answered    int // number of questions with any answer
}

// Percentage is Score/TotalPoints*100.
func (r Result) Percentage() (float64, error) {
	return Percentage(r.Score, r.TotalPoints)
}

// Grade awards a question's points when the chosen option index equals the
// question's correct answer. Every question's points count towards
// TotalPoints whether or not it was answered, so Score <= TotalPoints.
func Grade(questions []Question, answers map[string]int) Result {
	var res Result
	for _, q := range questions {
		res.TotalPoints += q.Points
		chosen, ok := answers[q.ID]
		if !ok {
			continue
		}
		res.Answered++
		if chosen == q.CorrectAnswer {
			res.Score += q.Points
			res.Correct++
		}
	}
	return res
}

func Percentage(score, total float64) (float64, error) {
	if total == 0 {
		return 0, ErrNoPoints
	}
	return score / total * 100, nil
}

// Passed reports whether score/total reaches mark percent. Zero-point
// results never pass.
func Passed(score, total, mark float64) bool {
	p, err := Percentage(score, total)
	if err != nil {
		return false
	}
	return p >= mark
}
