// Package insights renders plain-text reports over exam results. The
// reports are deterministic templates; no model is consulted.
package insights

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mind-engage/howacademia/internal/grading"
)

type ExamResult struct {
	ExamName    string
	StudentName string
	Score       float64
	TotalPoints float64
}

type CoursePerformance struct {
	CourseName   string
	AverageScore float64 // percent
}

// usable drops results whose exam is worth nothing; they have no percentage.
func usable(results []ExamResult) ([]ExamResult, []float64) {
	var (
		out  []ExamResult
		pcts []float64
	)
	for _, r := range results {
		p, err := grading.Percentage(r.Score, r.TotalPoints)
		if err != nil {
			continue
		}
		out = append(out, r)
		pcts = append(pcts, p)
	}
	return out, pcts
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func SummarizeStudentPerformance(name string, results []ExamResult, courses []string) string {
	results, pcts := usable(results)

	var b strings.Builder
	fmt.Fprintf(&b, "Performance Summary for %s\n\n", name)
	fmt.Fprintf(&b, "Overall Performance: %.1f%% average\n\n", mean(pcts))
	b.WriteString("Exam Results:\n")
	for i, r := range results {
		fmt.Fprintf(&b, "- %s: %s/%s (%s%%)\n", r.ExamName, num(r.Score), num(r.TotalPoints), num(math.Round(pcts[i])))
	}
	fmt.Fprintf(&b, "\nEnrolled Courses: %s", strings.Join(courses, ", "))
	return b.String()
}

func AnalyzeAssessment(examName string, results []ExamResult) string {
	results, pcts := usable(results)
	avg := mean(pcts)
	passRate := 0.0
	if len(results) > 0 {
		passed := 0
		for _, r := range results {
			if grading.Passed(r.Score, r.TotalPoints, grading.DefaultPassMark) {
				passed++
			}
		}
		passRate = float64(passed) / float64(len(results))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Assessment Analysis for %q\n\n", examName)
	b.WriteString("Overall Statistics:\n")
	fmt.Fprintf(&b, "- Average Score: %.1f%%\n", avg)
	fmt.Fprintf(&b, "- Pass Rate: %.1f%%\n", passRate*100)
	fmt.Fprintf(&b, "- Total Submissions: %d\n\n", len(results))
	b.WriteString("Summary:\n")
	fmt.Fprintf(&b, "This exam shows %s performance overall.\n", performanceBand(avg))
	fmt.Fprintf(&b, "The pass rate of %.1f%% indicates %s student comprehension.", passRate*100, comprehensionBand(passRate))
	return b.String()
}

func performanceBand(avg float64) string {
	switch {
	case avg >= 70:
		return "good"
	case avg >= grading.DefaultPassMark:
		return "moderate"
	default:
		return "needs improvement"
	}
}

func comprehensionBand(rate float64) string {
	switch {
	case rate >= 0.7:
		return "strong"
	case rate >= 0.5:
		return "acceptable"
	default:
		return "weak"
	}
}

func LearningSuggestions(name string, courses []string, perf []CoursePerformance, goals string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Personalized Learning Suggestions for %s\n\n", name)
	fmt.Fprintf(&b, "Current Enrollments: %s\n\n", strings.Join(courses, ", "))
	b.WriteString("Performance Summary:\n")
	for _, p := range perf {
		fmt.Fprintf(&b, "- %s: %.1f%%\n", p.CourseName, p.AverageScore)
	}
	b.WriteString("\n")
	if goals != "" {
		fmt.Fprintf(&b, "Learning Goals: %s\n\n", goals)
	}
	b.WriteString("Recommendations:\n")
	b.WriteString("1. Review course materials regularly\n")
	b.WriteString("2. Practice with sample questions\n")
	if weakest, ok := lowest(perf); ok && weakest.AverageScore < grading.DefaultPassMark {
		fmt.Fprintf(&b, "3. Focus on %s, your lowest-scoring course\n", weakest.CourseName)
	} else {
		b.WriteString("3. Focus on areas with lower scores\n")
	}
	b.WriteString("4. Engage with course discussions")
	return b.String()
}

func lowest(perf []CoursePerformance) (CoursePerformance, bool) {
	if len(perf) == 0 {
		return CoursePerformance{}, false
	}
	lo := perf[0]
	for _, p := range perf[1:] {
		if p.AverageScore < lo.AverageScore {
			lo = p
		}
	}
	return lo, true
}
