package cli

import (
	"testing"

	"github.com/alexanderramin/tabi/internal/teatest"
)

// TestDriver wraps teatest.Driver with shell-specific inspection methods.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver creates a TestDriver from a test App. It constructs the
// shell model, sets the terminal size and drains Init().
func NewTestDriver(t *testing.T, app *App, opts ...teatest.Option) *TestDriver {
	t.Helper()

	opts = append([]teatest.Option{teatest.WithSize(100, 40)}, opts...)
	d := teatest.New(t, newShellModel(app), opts...)
	d.DrainInit()

	return &TestDriver{Driver: d}
}

func (d *TestDriver) shellModel() shellModel {
	return d.Model.(shellModel)
}

// Mode returns the current shell mode.
func (d *TestDriver) Mode() shellMode {
	return d.shellModel().mode
}

// Notice returns the status line text and whether it is an error.
func (d *TestDriver) Notice() (string, bool) {
	n := d.shellModel().notice
	return n.text, n.isErr
}

// Suggestion returns the last suggestion text.
func (d *TestDriver) Suggestion() string {
	return d.shellModel().suggestion
}

// InputValue returns the text currently in the command line.
func (d *TestDriver) InputValue() string {
	return d.shellModel().input.Value()
}

// IsQuitting reports whether the shell asked to quit.
func (d *TestDriver) IsQuitting() bool {
	return d.Quitting || d.shellModel().quitting
}
