package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/abhisek/disha/internal/quiz"
	"github.com/abhisek/disha/internal/results"
	"github.com/abhisek/disha/internal/session"
)

// plainPlayer prints a quiz as plain text for terminals without the TUI.
// It is fed from the driver's change callback, which runs on timer
// goroutines, so all output goes through mu.
type plainPlayer struct {
	out io.Writer

	mu        sync.Mutex
	position  int
	locked    bool
	warned    bool
	submitted bool
}

func (p *plainPlayer) printf(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, format, args...)
}

// shown returns the index of the question last printed.
func (p *plainPlayer) shown() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.position - 1
}

func (p *plainPlayer) markSubmitted(index int) {
	p.mu.Lock()
	if p.position-1 == index {
		p.submitted = true
	}
	p.mu.Unlock()
}

func (p *plainPlayer) resetSubmitted(index int) {
	p.mu.Lock()
	if p.position-1 == index {
		p.submitted = false
	}
	p.mu.Unlock()
}

func (p *plainPlayer) onChange(v session.View) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if v.Position != p.position {
		if p.position != 0 && !p.locked && !p.submitted {
			fmt.Fprintln(p.out, "Time's up!")
		}
		p.position, p.locked, p.warned, p.submitted = v.Position, false, false, false
		p.printQuestion(v)
		return
	}

	if v.Locked && !p.locked {
		p.locked = true
		if v.Selected == v.Correct {
			fmt.Fprintln(p.out, "Correct!")
		} else {
			fmt.Fprintf(p.out, "Not quite. The answer is %s.\n", optionText(v.Question, v.Correct))
		}
		if v.Explanation != "" {
			fmt.Fprintln(p.out, "  "+v.Explanation)
		}
		return
	}

	if v.Urgent() && !v.Locked && !p.warned {
		p.warned = true
		fmt.Fprintf(p.out, "%s left!\n", v.Clock())
	}
}

func (p *plainPlayer) printQuestion(v session.View) {
	fmt.Fprintf(p.out, "\nQuestion %d of %d  (%s)\n", v.Position, v.Total, v.Clock())
	fmt.Fprintln(p.out, v.Question.Prompt)
	for i, opt := range v.Question.Options {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, opt)
	}
	fmt.Fprint(p.out, "> ")
}

func optionText(q quiz.Question, i int) string {
	if i < 0 || i >= len(q.Options) {
		return results.NotAnswered
	}
	return q.Options[i]
}

// parseChoice accepts 1-9 or a letter a-i.
func parseChoice(line string) (int, bool) {
	line = strings.ToLower(strings.TrimSpace(line))
	if len(line) != 1 {
		return 0, false
	}
	switch c := line[0]; {
	case c >= '1' && c <= '9':
		return int(c - '1'), true
	case c >= 'a' && c <= 'i':
		return int(c - 'a'), true
	}
	return 0, false
}

// playPlain runs q against lines read from in until the quiz completes, the
// player types q, input ends or ctx is cancelled. It returns the final
// session; its Phase says whether the quiz was completed.
func playPlain(ctx context.Context, in io.Reader, out io.Writer, q *quiz.Quiz, revealDelay time.Duration, log zerolog.Logger) (session.Session, error) {
	p := &plainPlayer{out: out}
	d, err := session.NewDriver(q,
		session.WithRevealDelay(revealDelay),
		session.WithOnChange(p.onChange),
		session.WithLogger(log))
	if err != nil {
		return session.Session{}, err
	}

	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-d.Done():
				return
			}
		}
	}()

	p.printf("%s: %d questions, %s each. Type the option number and press Enter; q quits.\n",
		q.Title, q.Len(), session.FormatDuration(time.Duration(q.TimePerQuestion)*time.Second))
	d.Start()
	p.onChange(d.View())

	var input <-chan string = lines
	cancelled := ctx.Done()
	for {
		select {
		case <-d.Done():
			return d.Session(), nil

		case <-cancelled:
			cancelled = nil
			d.Abandon()

		case line, ok := <-input:
			if !ok {
				input = nil
				d.Abandon()
				continue
			}
			if strings.EqualFold(strings.TrimSpace(line), "q") {
				d.Abandon()
				continue
			}
			i, ok := parseChoice(line)
			if !ok {
				p.printf("Enter an option number.\n> ")
				continue
			}
			index := p.shown()
			p.markSubmitted(index)
			switch err := d.Answer(index, i); {
			case errors.Is(err, session.ErrOptionOutOfRange):
				p.resetSubmitted(index)
				p.printf("No option %d.\n> ", i+1)
			case errors.Is(err, session.ErrStaleQuestion):
				p.printf("Too late for question %d.\n> ", index+1)
			case err != nil:
				p.printf("%v\n> ", err)
			}
		}
	}
}

// printResult writes the score and answer review.
func printResult(out io.Writer, r results.Result) {
	fmt.Fprintf(out, "\n%s: %d%% (%d of %d correct) in %s\n",
		r.QuizTitle, r.Score, r.Correct, r.Total, session.FormatDuration(r.TimeSpent))
	fmt.Fprintln(out, r.Band().Message())
	if r.Skipped > 0 {
		fmt.Fprintf(out, "%d not answered\n", r.Skipped)
	}
	fmt.Fprintln(out)
	for _, e := range r.Review() {
		mark := "✓"
		if !e.Correct {
			mark = "✗"
		}
		fmt.Fprintf(out, "%s %d. %s\n   Your answer: %s\n", mark, e.Number, e.Prompt, e.Answer)
		if !e.Correct {
			fmt.Fprintf(out, "   Correct: %s\n", e.CorrectText)
		}
	}
}
