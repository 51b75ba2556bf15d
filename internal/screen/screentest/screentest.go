// Package screentest provides helpers for exercising screens without a
// running program.
package screentest

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/abhisek/disha/internal/catalog"
	"github.com/abhisek/disha/internal/counsel"
	"github.com/abhisek/disha/internal/screen"
	"github.com/abhisek/disha/internal/store"
	"github.com/abhisek/disha/internal/student"
)

// Now is the fixed clock used by NewEnv.
var Now = time.Date(2026, 10, 1, 10, 0, 0, 0, time.Local)

// NewEnv returns an Env backed by an in-memory store, the built-in catalog
// and an offline counsellor. The reveal delay is zero.
func NewEnv(t *testing.T) *screen.Env {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	now := func() time.Time { return Now }
	return &screen.Env{
		Catalog: cat,
		Students: student.NewService(st.StudentRepo(), st.StateRepo(),
			student.WithBcryptCost(bcrypt.MinCost),
			student.WithNow(now)),
		Attempts: st.AttemptRepo(),
		Counsel:  counsel.NewService(nil, counsel.DefaultConfig(), zerolog.Nop()),
		Log:      zerolog.Nop(),
		Now:      now,
	}
}

// Demo creates the demo student and logs them in.
func Demo(t *testing.T, env *screen.Env) *student.Student {
	t.Helper()
	ctx := context.Background()
	if _, err := env.Students.EnsureDemoStudent(ctx); err != nil {
		t.Fatalf("seed demo: %v", err)
	}
	s, err := env.Students.Login(ctx, student.LoginInput{
		Email:    student.DemoEmail,
		Password: student.DemoPassword,
	})
	if err != nil {
		t.Fatalf("login demo: %v", err)
	}
	return s
}

// KeyPress builds a printable key press.
func KeyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// SpecialKey builds a non-printable key press such as tea.KeyEnter.
func SpecialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// Type sends each rune of s to sc as a key press.
func Type(sc screen.Screen, s string) screen.Screen {
	for _, r := range s {
		sc, _ = sc.Update(KeyPress(r))
	}
	return sc
}

// Collect runs cmd and returns the messages it produces, expanding batches.
// Commands that do not return within wait (timers, cursor blinks) are
// skipped.
func Collect(cmd tea.Cmd, wait time.Duration) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-ch:
	case <-time.After(wait):
		return nil
	}

	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, Collect(c, wait)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// Find returns the first message of type T produced by cmd.
func Find[T tea.Msg](cmd tea.Cmd) (T, bool) {
	for _, msg := range Collect(cmd, 200*time.Millisecond) {
		if m, ok := msg.(T); ok {
			return m, true
		}
	}
	var zero T
	return zero, false
}
