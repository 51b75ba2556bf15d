package session

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/abhisek/disha/internal/quiz"
)

// Driver runs a Session against a real (or fake) clock. It is the headless
// counterpart of the quiz screen and is safe for concurrent use.
//
// Each countdown is tagged with a generation. StopCountdown bumps the
// generation, so a tick that was already scheduled when the countdown was
// cancelled finds a stale generation and is dropped. This is what keeps a
// late tick from expiring the next question.
type Driver struct {
	mu sync.Mutex

	clock       Clock
	revealDelay time.Duration
	log         zerolog.Logger

	onComplete func(Session)
	onBack     func()
	onChange   func(View)

	s          Session
	started    bool
	generation int
	tick       Timer
	advance    Timer
	done       chan struct{}
}

// DriverOption configures a Driver.
type DriverOption func(*Driver)

// WithClock replaces the wall clock.
func WithClock(c Clock) DriverOption {
	return func(d *Driver) { d.clock = c }
}

// WithRevealDelay overrides the pause after a submit. Zero advances immediately.
func WithRevealDelay(delay time.Duration) DriverOption {
	return func(d *Driver) { d.revealDelay = delay }
}

// WithOnComplete registers the callback that receives the finished session.
func WithOnComplete(f func(Session)) DriverOption {
	return func(d *Driver) { d.onComplete = f }
}

// WithOnBack registers the callback invoked when the session is abandoned.
func WithOnBack(f func()) DriverOption {
	return func(d *Driver) { d.onBack = f }
}

// WithOnChange registers a callback invoked after every state change that
// should be redrawn (ticks, question changes, answer locks).
func WithOnChange(f func(View)) DriverOption {
	return func(d *Driver) { d.onChange = f }
}

// WithLogger sets the logger used for session lifecycle messages.
func WithLogger(l zerolog.Logger) DriverOption {
	return func(d *Driver) { d.log = l }
}

// NewDriver validates q and prepares a driver. Call Start to begin the countdown.
func NewDriver(q *quiz.Quiz, opts ...DriverOption) (*Driver, error) {
	d := &Driver{
		clock:       SystemClock,
		revealDelay: DefaultRevealDelay,
		log:         zerolog.Nop(),
		done:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	s, _, err := New(q, d.clock.Now())
	if err != nil {
		return nil, err
	}
	d.s = s
	return d, nil
}

// Start shows the first question and starts its countdown. Calling Start
// more than once has no effect.
func (d *Driver) Start() {
	d.mu.Lock()
	if d.started {
		d.mu.Unlock()
		return
	}
	d.started = true
	s, effects, _ := New(d.s.Quiz, d.clock.Now())
	d.s = s
	d.log.Info().Str("quiz", s.Quiz.ID).Int("questions", s.Total()).Msg("quiz started")
	notify := d.runLocked(effects)
	d.mu.Unlock()
	notify()
}

// Select highlights option i on the current question.
func (d *Driver) Select(i int) error {
	return d.send(Select{Option: i})
}

// Submit locks in the highlighted option.
func (d *Driver) Submit() error {
	return d.send(Submit{})
}

// Answer selects option i and submits it, but only while question index is
// still the one awaiting an answer. It returns ErrStaleQuestion when the
// countdown has already moved on.
func (d *Driver) Answer(index, i int) error {
	d.mu.Lock()
	if !d.started || d.s.Phase != PhaseAwaiting || d.s.Index != index {
		d.mu.Unlock()
		return ErrStaleQuestion
	}
	notify, err := d.applyLocked(Select{Option: i})
	if err == nil {
		var submit func()
		submit, err = d.applyLocked(Submit{})
		notify = chain(notify, submit)
	}
	d.mu.Unlock()
	notify()
	return err
}

// Abandon discards the session and cancels all pending timers. Abandoning a
// driver that was never started still closes Done and calls the back callback.
func (d *Driver) Abandon() {
	_ = d.send(Abandon{})
}

// View returns the presentation model for the current question.
func (d *Driver) View() View {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.s.View()
}

// Session returns a snapshot of the current state.
func (d *Driver) Session() Session {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.s
}

// Done is closed once the session completes or is abandoned.
func (d *Driver) Done() <-chan struct{} {
	return d.done
}

func (d *Driver) send(ev Event) error {
	d.mu.Lock()
	notify, err := d.applyLocked(ev)
	d.mu.Unlock()
	notify()
	return err
}

func (d *Driver) onTick(generation int) {
	d.mu.Lock()
	if generation != d.generation || d.s.Phase != PhaseAwaiting {
		d.mu.Unlock()
		return
	}
	d.tick = nil
	notify, _ := d.applyLocked(Tick{})
	// No effects means the countdown is still running on this question.
	if generation == d.generation && d.s.Phase == PhaseAwaiting {
		d.scheduleTickLocked()
	}
	d.mu.Unlock()
	notify()
}

// applyLocked runs one event through Transition and executes its effects.
// The returned func fires user callbacks and must be called without d.mu held.
func (d *Driver) applyLocked(ev Event) (func(), error) {
	if !d.started {
		if _, ok := ev.(Abandon); !ok {
			return func() {}, nil
		}
		d.started = true
	}
	next, effects, err := Transition(d.s, ev)
	if err != nil {
		return func() {}, err
	}
	changed := next.Phase != d.s.Phase || next.Index != d.s.Index ||
		next.TimeRemaining != d.s.TimeRemaining || next.Selected != d.s.Selected
	d.s = next
	notify := d.runLocked(effects)
	if !changed {
		return notify, nil
	}
	view, onChange := d.viewForCallback()
	return func() {
		if onChange != nil {
			onChange(view)
		}
		notify()
	}, nil
}

func chain(fs ...func()) func() {
	return func() {
		for _, f := range fs {
			f()
		}
	}
}

func (d *Driver) viewForCallback() (View, func(View)) {
	if d.onChange == nil || d.s.Phase.Terminal() {
		return View{}, nil
	}
	return d.s.View(), d.onChange
}

func (d *Driver) runLocked(effects []Effect) func() {
	var callbacks []func()
	queue := effects
	for len(queue) > 0 {
		eff := queue[0]
		queue = queue[1:]

		switch eff := eff.(type) {
		case StartCountdown:
			d.stopTickLocked()
			d.scheduleTickLocked()
			d.log.Debug().Str("quiz", d.s.Quiz.ID).Int("index", eff.Index).Msg("countdown started")

		case StopCountdown:
			d.stopTickLocked()

		case ScheduleAdvance:
			if d.revealDelay <= 0 {
				next, more, _ := Transition(d.s, Advance{Index: eff.Index})
				d.s = next
				queue = append(queue, more...)
				continue
			}
			index := eff.Index
			d.advance = d.clock.AfterFunc(d.revealDelay, func() {
				_ = d.send(Advance{Index: index})
			})

		case Completed:
			d.stopAdvanceLocked()
			d.log.Info().Str("quiz", eff.Session.Quiz.ID).
				Int("answers", len(eff.Session.Answers)).Msg("quiz completed")
			close(d.done)
			if d.onComplete != nil {
				f, s := d.onComplete, eff.Session
				callbacks = append(callbacks, func() { f(s) })
			}

		case Abandoned:
			d.stopAdvanceLocked()
			d.log.Info().Str("quiz", d.s.Quiz.ID).Int("index", d.s.Index).Msg("quiz abandoned")
			close(d.done)
			if d.onBack != nil {
				callbacks = append(callbacks, d.onBack)
			}
		}
	}
	return func() {
		for _, f := range callbacks {
			f()
		}
	}
}

func (d *Driver) scheduleTickLocked() {
	generation := d.generation
	d.tick = d.clock.AfterFunc(time.Second, func() { d.onTick(generation) })
}

func (d *Driver) stopTickLocked() {
	d.generation++
	if d.tick != nil {
		d.tick.Stop()
		d.tick = nil
	}
}

func (d *Driver) stopAdvanceLocked() {
	if d.advance != nil {
		d.advance.Stop()
		d.advance = nil
	}
}
