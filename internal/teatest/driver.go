// Package teatest drives a bubbletea model from tests without a
// tea.Program: messages go straight to Update and the returned commands are
// run inline until the model settles.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// drainLimit bounds how many commands one Send may chain.
const drainLimit = 100

// DefaultCmdTimeout is how long a command may run before its message is
// dropped. Timer-driven commands (cursor blink, spinner tick) never finish
// inside it.
const DefaultCmdTimeout = 10 * time.Millisecond

// Driver feeds input to a tea.Model and tracks the model it returns.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting records that a tea.QuitMsg came out of a command. The
	// runtime normally swallows it before the model sees it.
	Quitting bool

	cmdTimeout time.Duration
}

// Option adjusts a Driver as it is built.
type Option func(*Driver)

// WithSize delivers a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.Model, _ = d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// WithCmdTimeout lets commands that wait on background work, such as a
// stubbed gateway, run for up to timeout.
func WithCmdTimeout(timeout time.Duration) Option {
	return func(d *Driver) {
		d.cmdTimeout = timeout
	}
}

// New wraps model. Call DrainInit to run its Init command.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model, cmdTimeout: DefaultCmdTimeout}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DrainInit runs Init and everything it leads to.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.drain(d.Model.Init(), 0)
}

// Send delivers msg and drains the resulting commands. Nothing is
// delivered once the model has quit.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	var cmd tea.Cmd
	d.Model, cmd = d.Model.Update(msg)
	d.drain(cmd, 0)
}

// SendKey delivers a key event.
func (d *Driver) SendKey(msg tea.KeyMsg) {
	d.T.Helper()
	d.Send(msg)
}

func (d *Driver) press(k tea.KeyType) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: k})
}

func (d *Driver) PressEnter() { d.T.Helper(); d.press(tea.KeyEnter) }
func (d *Driver) PressEsc()   { d.T.Helper(); d.press(tea.KeyEsc) }
func (d *Driver) PressCtrlC() { d.T.Helper(); d.press(tea.KeyCtrlC) }
func (d *Driver) PressCtrlD() { d.T.Helper(); d.press(tea.KeyCtrlD) }
func (d *Driver) PressUp()    { d.T.Helper(); d.press(tea.KeyUp) }
func (d *Driver) PressDown()  { d.T.Helper(); d.press(tea.KeyDown) }

// Type delivers s one rune at a time.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// Paste delivers s as one bracketed paste.
func (d *Driver) Paste(s string) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s), Paste: true})
}

// Line types s and submits it.
func (d *Driver) Line(s string) {
	d.T.Helper()
	d.Type(s)
	d.PressEnter()
}

// View renders the model.
func (d *Driver) View() string {
	return d.Model.View()
}

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= drainLimit {
		d.T.Logf("teatest: stopped after %d chained commands", drainLimit)
		return
	}

	msg := run(cmd, d.cmdTimeout)
	if msg == nil {
		return
	}

	switch m := msg.(type) {
	case tea.BatchMsg:
		for _, sub := range m {
			d.drain(sub, depth+1)
		}
	case tea.QuitMsg:
		d.Quitting = true
		d.Model, _ = d.Model.Update(m)
	default:
		switch typeName := fmt.Sprintf("%T", msg); {
		case strings.Contains(strings.ToLower(typeName), "blink"):
			// dropped
		case typeName == "spinner.TickMsg":
			// One frame is enough; the follow-up tick would loop forever.
			d.Model, _ = d.Model.Update(msg)
		default:
			var next tea.Cmd
			d.Model, next = d.Model.Update(msg)
			d.drain(next, depth+1)
		}
	}
}

// run executes cmd and returns its message, or nil when it takes longer
// than timeout.
func run(cmd tea.Cmd, timeout time.Duration) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(timeout):
		return nil
	}
}
