// Package catalog loads the quizzes and guidance data shown to students.
package catalog

import (
	_ "embed"
	"fmt"
	"math"
	"os"
	"slices"
	"strings"
	"time"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/disha/internal/quiz"
)

//go:embed catalog.yaml
var builtin []byte

// SupportedMajor is the only catalog schema major version this build reads.
const SupportedMajor = "v1"

// Catalog is the read-only content set. All lookups return data owned by the
// catalog; callers must not modify it.
type Catalog struct {
	Version        string       `yaml:"version"`
	QuizList       []*quiz.Quiz `yaml:"quizzes"`
	CollegeList    []College    `yaml:"colleges"`
	ScholarshipSet []Scholarship `yaml:"scholarships"`
	ExamList       []Exam       `yaml:"exams"`
	Routes         []BusRoute   `yaml:"bus_routes"`
	SafetyFeatures []string     `yaml:"safety_features"`

	byID map[string]*quiz.Quiz
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(builtin)
}

// Load reads a catalog from path, or the built-in one if path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates catalog YAML.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if !semver.IsValid(c.Version) {
		return nil, fmt.Errorf("catalog version %q is not a semantic version", c.Version)
	}
	if major := semver.Major(c.Version); major != SupportedMajor {
		return nil, fmt.Errorf("catalog version %s not supported (want %s.x.y)", c.Version, SupportedMajor)
	}

	c.byID = make(map[string]*quiz.Quiz, len(c.QuizList))
	for _, q := range c.QuizList {
		if err := q.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.byID[q.ID]; dup {
			return nil, fmt.Errorf("duplicate quiz id %q", q.ID)
		}
		c.byID[q.ID] = q
	}
	return &c, nil
}

// Quizzes returns every quiz in catalog order.
func (c *Catalog) Quizzes() []*quiz.Quiz {
	return c.QuizList
}

// QuizByID looks up a quiz.
func (c *Catalog) QuizByID(id string) (*quiz.Quiz, bool) {
	q, ok := c.byID[id]
	return q, ok
}

// ByCategory returns the quizzes in one category.
func (c *Catalog) ByCategory(cat quiz.Category) []*quiz.Quiz {
	var out []*quiz.Quiz
	for _, q := range c.QuizList {
		if q.Category == cat {
			out = append(out, q)
		}
	}
	return out
}

// ByClass returns the academic quizzes for a school class.
func (c *Catalog) ByClass(class string) []*quiz.Quiz {
	var out []*quiz.Quiz
	for _, q := range c.QuizList {
		if q.Class != "" && q.Class == class {
			out = append(out, q)
		}
	}
	return out
}

// ForClass returns what a student in class should see: every quiz that is
// not tied to a class, plus those for the student's own class.
func (c *Catalog) ForClass(class string) []*quiz.Quiz {
	var out []*quiz.Quiz
	for _, q := range c.QuizList {
		if q.Class == "" || q.Class == class {
			out = append(out, q)
		}
	}
	return out
}

// Categories returns the distinct categories in catalog order.
func (c *Catalog) Categories() []quiz.Category {
	var out []quiz.Category
	for _, q := range c.QuizList {
		if !slices.Contains(out, q.Category) {
			out = append(out, q.Category)
		}
	}
	return out
}

// Colleges returns colleges whose location contains the search text. An empty
// location returns all colleges.
func (c *Catalog) Colleges(location string) []College {
	location = strings.ToLower(strings.TrimSpace(location))
	if location == "" {
		return c.CollegeList
	}
	var out []College
	for _, col := range c.CollegeList {
		if strings.Contains(strings.ToLower(col.Location), location) {
			out = append(out, col)
		}
	}
	return out
}

// Scholarships returns the scholarships a student in class may apply for.
// An empty class returns all of them.
func (c *Catalog) Scholarships(class string) []Scholarship {
	if class == "" {
		return c.ScholarshipSet
	}
	var out []Scholarship
	for _, s := range c.ScholarshipSet {
		if slices.Contains(s.Eligibility, class) {
			out = append(out, s)
		}
	}
	return out
}

// Exams returns the entrance exams open to class. An empty class returns all.
func (c *Catalog) Exams(class string) []Exam {
	if class == "" {
		return c.ExamList
	}
	var out []Exam
	for _, e := range c.ExamList {
		if slices.Contains(e.EligibleClasses, class) {
			out = append(out, e)
		}
	}
	return out
}

// BusRoutes returns the girls' transport routes.
func (c *Catalog) BusRoutes() []BusRoute {
	return c.Routes
}

// FormatDeadline describes how far away t is from now, in whole days rounded up.
func FormatDeadline(now, t time.Time) string {
	days := int(math.Ceil(t.Sub(now).Hours() / 24))
	switch {
	case days < 0:
		return "Expired"
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	}
	return fmt.Sprintf("%d days left", days)
}
