package teatest

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type bumpMsg struct{}

// counter counts bumps and echoes typed runes.
type counter struct {
	bumps int
	typed string
	width int
}

func (c counter) Init() tea.Cmd {
	return tea.Batch(bump, bump)
}

func (c counter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case bumpMsg:
		c.bumps++
	case tea.WindowSizeMsg:
		c.width = msg.Width
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyRunes:
			c.typed += string(msg.Runes)
		case tea.KeyEnter:
			return c, bump
		case tea.KeyCtrlC:
			return c, tea.Quit
		}
	}
	return c, nil
}

func (c counter) View() string { return c.typed }

func bump() tea.Msg { return bumpMsg{} }

func TestDriver_DrainsBatchesFromInit(t *testing.T) {
	d := New(t, counter{}, WithSize(80, 24))
	d.DrainInit()

	c := d.Model.(counter)
	assert.Equal(t, 2, c.bumps)
	assert.Equal(t, 80, c.width)
}

func TestDriver_LineTypesAndSubmits(t *testing.T) {
	d := New(t, counter{})
	d.Line("ab")
	d.Paste("c\nd")

	c := d.Model.(counter)
	assert.Equal(t, "abc\nd", d.View())
	assert.Equal(t, 1, c.bumps)
}

func TestDriver_QuitStopsDelivery(t *testing.T) {
	d := New(t, counter{})
	d.PressCtrlC()
	assert.True(t, d.Quitting)

	d.Type("x")
	assert.Empty(t, d.View())
}

func TestDriver_SlowCommandIsDropped(t *testing.T) {
	d := New(t, counter{}, WithCmdTimeout(5*time.Millisecond))
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})

	var cmd tea.Cmd = func() tea.Msg {
		time.Sleep(100 * time.Millisecond)
		return bumpMsg{}
	}
	d.drain(cmd, 0)

	assert.Equal(t, 0, d.Model.(counter).bumps)
}
