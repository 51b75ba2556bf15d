// Package student handles registration, login and the current session user.
package student

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/abhisek/disha/internal/store"
)

// Class is a student's education level.
type Class string

const (
	Class10th Class = "10th"
	Class12th Class = "12th"
	ClassUG   Class = "UG"
	ClassPG   Class = "PG"
)

// Classes lists every class in display order.
var Classes = []Class{Class10th, Class12th, ClassUG, ClassPG}

// Label returns the long form shown in menus.
func (c Class) Label() string {
	switch c {
	case Class10th:
		return "10th Grade"
	case Class12th:
		return "12th Grade"
	case ClassUG:
		return "Undergraduate"
	case ClassPG:
		return "Postgraduate"
	}
	return string(c)
}

// InSchool reports whether the class is a school grade (10th or 12th).
func (c Class) InSchool() bool {
	return c == Class10th || c == Class12th
}

// Student is a registered student.
type Student struct {
	ID           string
	Name         string
	Class        Class
	CollegeName  string
	ParentsName  string
	ParentsPhone string
	Email        string
	CreatedAt    time.Time
}

// FirstName returns the first word of the name for greetings.
func (s *Student) FirstName() string {
	if f := strings.Fields(s.Name); len(f) > 0 {
		return f[0]
	}
	return s.Name
}

// Common errors.
var (
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// RegisterInput is the registration form.
type RegisterInput struct {
	Name            string `json:"name" validate:"required"`
	Class           string `json:"class" validate:"required,oneof=10th 12th UG PG"`
	CollegeName     string `json:"college_name" validate:"required"`
	ParentsName     string `json:"parents_name" validate:"required"`
	ParentsPhone    string `json:"parents_phone" validate:"required,phone10"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

func (in *RegisterInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.CollegeName = strings.TrimSpace(in.CollegeName)
	in.ParentsName = strings.TrimSpace(in.ParentsName)
	in.ParentsPhone = strings.TrimSpace(in.ParentsPhone)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
}

// Validate reports form errors without touching storage.
func (in RegisterInput) Validate() error {
	in.normalize()
	return check(in)
}

// LoginInput is the login form.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// currentStudentKey is the app_state key holding the logged-in student's ID.
const currentStudentKey = "current_student"

// Demo account seeded on first run.
const (
	DemoEmail    = "student@demo.com"
	DemoPassword = "demo123"
)

// Service manages student accounts and the logged-in student.
type Service struct {
	students store.StudentRepo
	state    store.StateRepo
	cost     int
	log      zerolog.Logger
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithBcryptCost sets the password hashing cost.
func WithBcryptCost(cost int) Option {
	return func(s *Service) { s.cost = cost }
}

// WithLogger sets the service logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithNow replaces the clock used for CreatedAt.
func WithNow(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a Service.
func NewService(students store.StudentRepo, state store.StateRepo, opts ...Option) *Service {
	s := &Service{
		students: students,
		state:    state,
		cost:     bcrypt.DefaultCost,
		log:      zerolog.Nop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register validates the form and creates the account. It does not log the
// student in.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Student, error) {
	in.normalize()
	if err := check(in); err != nil {
		return nil, err
	}

	if _, err := s.students.ByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	rec := &store.StudentRecord{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Class:        in.Class,
		CollegeName:  in.CollegeName,
		ParentsName:  in.ParentsName,
		ParentsPhone: in.ParentsPhone,
		Email:        in.Email,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.students.Create(ctx, rec); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create student: %w", err)
	}

	s.log.Info().Str("student_id", rec.ID).Str("class", rec.Class).Msg("student registered")
	return fromRecord(rec), nil
}

// Login checks credentials and records the student as logged in.
func (s *Service) Login(ctx context.Context, in LoginInput) (*Student, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := check(in); err != nil {
		return nil, err
	}

	rec, err := s.students.ByEmail(ctx, in.Email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("lookup student: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(in.Password)); err != nil {
		s.log.Warn().Str("student_id", rec.ID).Msg("login failed")
		return nil, ErrInvalidCredentials
	}

	if err := s.state.Set(ctx, currentStudentKey, rec.ID); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	s.log.Info().Str("student_id", rec.ID).Msg("student logged in")
	return fromRecord(rec), nil
}

// Logout clears the logged-in student.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.state.Delete(ctx, currentStudentKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Current returns the logged-in student, or nil if nobody is logged in.
func (s *Service) Current(ctx context.Context) (*Student, error) {
	id, err := s.state.Get(ctx, currentStudentKey)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	rec, err := s.students.ByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		// Account was removed underneath the session.
		_ = s.state.Delete(ctx, currentStudentKey)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load student: %w", err)
	}
	return fromRecord(rec), nil
}

// ByEmail looks up a student without logging them in.
func (s *Service) ByEmail(ctx context.Context, email string) (*Student, error) {
	rec, err := s.students.ByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	return fromRecord(rec), nil
}

// EnsureDemoStudent creates the demo account if it does not exist yet.
func (s *Service) EnsureDemoStudent(ctx context.Context) (*Student, error) {
	if rec, err := s.students.ByEmail(ctx, DemoEmail); err == nil {
		return fromRecord(rec), nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("lookup demo student: %w", err)
	}
	return s.Register(ctx, RegisterInput{
		Name:            "Demo Student",
		Class:           string(Class12th),
		CollegeName:     "Government Higher Secondary School",
		ParentsName:     "Demo Parent",
		ParentsPhone:    "9876543210",
		Email:           DemoEmail,
		Password:        DemoPassword,
		ConfirmPassword: DemoPassword,
	})
}

func fromRecord(r *store.StudentRecord) *Student {
	return &Student{
		ID:           r.ID,
		Name:         r.Name,
		Class:        Class(r.Class),
		CollegeName:  r.CollegeName,
		ParentsName:  r.ParentsName,
		ParentsPhone: r.ParentsPhone,
		Email:        r.Email,
		CreatedAt:    r.CreatedAt,
	}
}
