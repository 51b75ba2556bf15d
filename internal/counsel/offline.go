package counsel

import (
	"fmt"
	"strings"

	"github.com/abhisek/disha/internal/quiz"
	"github.com/abhisek/disha/internal/results"
)

var categoryStrength = map[quiz.Category]string{
	quiz.CategoryCoding:   "Logical thinking with code",
	quiz.CategoryAptitude: "Quick reasoning under time pressure",
	quiz.CategoryAcademic: "Grip on the school syllabus",
}

var subjectStreams = map[string][]string{
	"mathematics": {"Science with PCM", "Engineering (B.Tech)", "Statistics or Economics"},
	"science":     {"Science with PCB", "Nursing and allied health", "Agriculture (B.Sc)"},
	"physics":     {"Science with PCM", "Engineering (B.Tech)"},
	"biology":     {"Science with PCB", "Pharmacy (B.Pharm)"},
}

var categoryStreams = map[quiz.Category][]string{
	quiz.CategoryCoding:   {"Computer Applications (BCA)", "Computer Science (B.Tech)", "Polytechnic diploma in IT"},
	quiz.CategoryAptitude: {"Commerce", "Management (BBA)", "Government job exams (SSC, Banking)"},
	quiz.CategoryAcademic: {"Humanities", "Teaching (B.Ed after graduation)"},
}

// Offline builds advice from the score band, category and subject alone.
// The same input always yields the same advice.
func Offline(in Input) Advice {
	r := in.Result
	band := r.Band()

	a := Advice{Source: SourceOffline}
	a.Summary = offlineSummary(in.Name, r, band)

	if r.Correct > 0 {
		if s, ok := categoryStrength[r.Category]; ok {
			a.Strengths = append(a.Strengths, s)
		}
	}
	if band == results.BandExcellent {
		a.Strengths = append(a.Strengths, "Accuracy on the clock")
	}
	if r.Skipped == 0 && r.Total > 0 {
		a.Strengths = append(a.Strengths, "Answered every question in time")
	}
	if improved(in) {
		a.Strengths = append(a.Strengths, "Improving on earlier attempts")
	}

	switch band {
	case results.BandExcellent:
		a.NextSteps = append(a.NextSteps, "Try a harder quiz in a new category")
	case results.BandGood:
		a.NextSteps = append(a.NextSteps, "Review the questions you missed and retake the quiz")
	default:
		a.NextSteps = append(a.NextSteps,
			"Go through each explanation in the review",
			"Practise 20 minutes a day on the basics of "+topic(r))
	}
	if r.Skipped > 0 {
		a.NextSteps = append(a.NextSteps, fmt.Sprintf("Work on pacing: %d question(s) ran out of time", r.Skipped))
	}
	if in.Class.InSchool() {
		a.NextSteps = append(a.NextSteps, "Check the scholarships and entrance exams open to your class")
	} else {
		a.NextSteps = append(a.NextSteps, "Talk to a teacher about internships or certificate courses")
	}

	a.Streams = streams(r, band)
	return a
}

func offlineSummary(name string, r results.Result, band results.Band) string {
	greet := "You"
	if f := strings.Fields(name); len(f) > 0 {
		greet = f[0] + ", you"
	}
	head := fmt.Sprintf("%s scored %d%% on %s.", greet, r.Score, r.QuizTitle)
	switch band {
	case results.BandExcellent:
		return head + " That is a strong result and shows real aptitude for " + topic(r) + "."
	case results.BandGood:
		return head + " A solid base: a little focused practice will push you into the top band."
	}
	return head + " Every expert started here. Use the review to see where the marks slipped."
}

func streams(r results.Result, band results.Band) []string {
	var out []string
	if s, ok := subjectStreams[strings.ToLower(r.Subject)]; ok {
		out = s
	} else {
		out = categoryStreams[r.Category]
	}
	if band == results.BandNeedsWork && len(out) > 1 {
		out = out[:1]
	}
	return append([]string(nil), out...)
}

func topic(r results.Result) string {
	if r.Subject != "" {
		return r.Subject
	}
	return strings.ToLower(r.Category.Label())
}

// improved reports a higher score than the latest earlier attempt in the
// same category.
func improved(in Input) bool {
	for _, a := range in.Recent {
		if a.Category == in.Result.Category {
			return in.Result.Score > a.Score
		}
	}
	return false
}
