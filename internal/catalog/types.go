package catalog

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Date is a calendar day written as YYYY-MM-DD in the catalog file.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

// UnmarshalYAML accepts quoted or bare dates.
func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: date must be a scalar", value.Line)
	}
	t, err := time.ParseInLocation(dateLayout, value.Value, time.Local)
	if err != nil {
		return fmt.Errorf("line %d: invalid date %q: %w", value.Line, value.Value, err)
	}
	d.Time = t
	return nil
}

func (d Date) String() string {
	return d.Format("02 Jan 2006")
}

// College is a nearby institution.
type College struct {
	ID         string   `yaml:"id"`
	Name       string   `yaml:"name"`
	Type       string   `yaml:"type"`
	Courses    []string `yaml:"courses"`
	Location   string   `yaml:"location"`
	Cutoff     int      `yaml:"cutoff"`
	Fees       int      `yaml:"fees"` // rupees per year
	Facilities []string `yaml:"facilities"`
}

// Scholarship is a funding scheme with an application deadline.
type Scholarship struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Eligibility []string `yaml:"eligibility"`
	Amount      int      `yaml:"amount"`
	Deadline    Date     `yaml:"deadline"`
	ApplyLink   string   `yaml:"apply_link"`
}

// Exam is an entrance examination.
type Exam struct {
	ID                   string   `yaml:"id"`
	Name                 string   `yaml:"name"`
	EligibleClasses      []string `yaml:"eligible_classes"`
	ExamDate             Date     `yaml:"exam_date"`
	RegistrationDeadline Date     `yaml:"registration_deadline"`
	Description          string   `yaml:"description"`
}

// RouteStatus is whether a bus route is running yet.
type RouteStatus string

const (
	RouteActive       RouteStatus = "active"
	RouteStartingSoon RouteStatus = "starting-soon"
)

func (s RouteStatus) Label() string {
	if s == RouteStartingSoon {
		return "Starting Soon"
	}
	return "Active"
}

// BusRoute is a safe-transport route for girl students.
type BusRoute struct {
	ID       string      `yaml:"id"`
	District string      `yaml:"district"`
	Stops    []string    `yaml:"stops"`
	Hours    string      `yaml:"hours"`
	Capacity int         `yaml:"capacity"`
	Operator string      `yaml:"operator"`
	Status   RouteStatus `yaml:"status"`
}
