package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/tabi/internal/cli/formatter"
	"github.com/alexanderramin/tabi/internal/domain"
	"github.com/alexanderramin/tabi/internal/suggest"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// shellMode tracks which interaction mode the shell is in.
type shellMode int

const (
	modeIdle      shellMode = iota // Normal command input.
	modeImporting                  // Multi-line paste area is active.
	modeAdding                     // Single line entry for a new item.
	modeEditing                    // Single line entry replacing editingID.
	modeLoading                    // A suggestion request is in flight.
)

func (m shellMode) String() string {
	switch m {
	case modeIdle:
		return "idle"
	case modeImporting:
		return "importing"
	case modeAdding:
		return "adding"
	case modeEditing:
		return "editing"
	case modeLoading:
		return "loading"
	default:
		return fmt.Sprintf("shellMode(%d)", int(m))
	}
}

// suggestionResultMsg carries the gateway answer back into Update.
type suggestionResultMsg suggest.Result

// notice is the one-line status shown above the prompt.
type notice struct {
	text  string
	isErr bool
}

// shellModel is the bubbletea Model for the interactive shell.
type shellModel struct {
	// bubbletea components
	input textinput.Model
	paste textarea.Model
	spin  spinner.Model
	width int

	app *App

	// mode management
	mode      shellMode
	editingID string

	// request inputs
	problem        string
	constraints    string
	suggestionMode domain.SuggestionMode

	// results
	suggestion string
	notice     notice
	cancel     context.CancelFunc

	// history
	history    []string
	historyIdx int

	// lifecycle
	quitting bool
}

// newShellModel creates a new bubbletea shell model.
func newShellModel(app *App) shellModel {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.CharLimit = 500
	ti.ShowSuggestions = true
	// Use Tab for suggestion acceptance, reserve Up/Down for history.
	ti.KeyMap.NextSuggestion = key.NewBinding(key.WithKeys("ctrl+n"))
	ti.KeyMap.PrevSuggestion = key.NewBinding(key.WithKeys("ctrl+p"))

	ta := textarea.New()
	ta.Placeholder = "08:00 ホテル出発\n09:30 清水寺\n12:00 昼食"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 500

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StylePurple

	hist := historyFile(app.HistoryPath).load()

	return shellModel{
		input:          ti,
		paste:          ta,
		spin:           sp,
		app:            app,
		suggestionMode: domain.ModeSchedule,
		history:        hist,
		historyIdx:     len(hist),
	}
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m shellModel) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tea.Println(formatter.FormatShellWelcome()),
	)
}

func (m shellModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(m.promptPrefix()) - 1
		m.paste.SetWidth(msg.Width)
		return m, nil

	case suggestionResultMsg:
		m.finishSuggestion(suggest.Result(msg))
		return m, nil

	case spinner.TickMsg:
		if m.mode != modeLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		// Global quit.
		if msg.Type == tea.KeyCtrlC {
			return m, m.quit()
		}

		switch m.mode {
		case modeImporting:
			return m.updateImport(msg)
		case modeAdding, modeEditing:
			return m.updateItemEntry(msg)
		default:
			return m.updatePrompt(msg)
		}
	}

	var cmd tea.Cmd
	if m.mode == modeImporting {
		m.paste, cmd = m.paste.Update(msg)
	} else {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m shellModel) View() string {
	if m.quitting {
		return formatter.Dim("Goodbye.") + "\n"
	}

	var b strings.Builder
	b.WriteString(formatter.Header("予定"))
	b.WriteString("\n")
	b.WriteString(formatter.FormatItinerary(m.app.Store.Snapshot()))
	b.WriteString("\n")
	b.WriteString(formatter.FormatRequestInputs(m.problem, m.constraints, m.suggestionMode))

	if m.suggestion != "" {
		b.WriteString("\n")
		b.WriteString(formatter.FormatSuggestion(m.suggestion))
		b.WriteString("\n")
	}

	if m.notice.text != "" {
		b.WriteString("\n")
		if m.notice.isErr {
			b.WriteString(formatter.Error(m.notice.text))
		} else {
			b.WriteString(formatter.StyleGreen.Render(m.notice.text))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch m.mode {
	case modeImporting:
		b.WriteString(formatter.Dim("予定を貼り付けてください (Ctrl+D で取り込み、Esc でキャンセル)"))
		b.WriteString("\n")
		b.WriteString(m.paste.View())
	case modeLoading:
		b.WriteString(m.spin.View() + " " + formatter.Dim("提案を生成中... (Esc で中止)"))
		b.WriteString("\n")
		b.WriteString(m.promptPrefix() + m.input.View())
	default:
		b.WriteString(m.promptPrefix() + m.input.View())
	}
	return b.String()
}

// ── prompt prefix ────────────────────────────────────────────────────────────

func (m *shellModel) promptPrefix() string {
	switch m.mode {
	case modeAdding:
		return formatter.StyleGreen.Render("add") + formatter.Dim("> ")
	case modeEditing:
		n := m.indexOf(m.editingID) + 1
		return formatter.StyleYellow.Render(fmt.Sprintf("edit %d", n)) + formatter.Dim("> ")
	default:
		return formatter.StylePurple.Render("tabi") + " " + formatter.Dim("❯") + " "
	}
}

// ── prompt mode ──────────────────────────────────────────────────────────────

func (m shellModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		input := strings.TrimSpace(m.input.Value())
		m.input.Reset()
		m.input.SetSuggestions(nil)
		if input == "" {
			return m, nil
		}
		m.addHistory(input)
		output, cmd := m.executeCommand(input)
		var cmds []tea.Cmd
		if output != "" {
			cmds = append(cmds, tea.Println(output))
		}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case tea.KeyEsc:
		if m.mode == modeLoading && m.cancel != nil {
			m.cancel()
			return m, nil
		}
		m.input.Reset()
		m.input.SetSuggestions(nil)
		return m, nil

	case tea.KeyUp:
		m.historyUp()
		return m, nil

	case tea.KeyDown:
		m.historyDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.updateSuggestions()
	return m, cmd
}

// ── history ──────────────────────────────────────────────────────────────────

// addHistory records line unless it repeats the previous command.
func (m *shellModel) addHistory(line string) {
	n := len(m.history)
	if line != "" && (n == 0 || m.history[n-1] != line) {
		m.history = append(m.history, line)
		historyFile(m.app.HistoryPath).record(line)
	}
	m.historyIdx = len(m.history)
}

func (m *shellModel) historyUp() {
	if m.historyIdx > 0 {
		m.historyIdx--
		m.input.SetValue(m.history[m.historyIdx])
		m.input.CursorEnd()
	}
}

func (m *shellModel) historyDown() {
	if m.historyIdx < len(m.history)-1 {
		m.historyIdx++
		m.input.SetValue(m.history[m.historyIdx])
		m.input.CursorEnd()
	} else {
		m.historyIdx = len(m.history)
		m.input.SetValue("")
	}
}

// ── import mode ──────────────────────────────────────────────────────────────

func (m shellModel) updateImport(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlD:
		m.commitImport(m.paste.Value())
		return m, m.leaveImport()
	case tea.KeyEsc:
		m.setNotice("取り込みをキャンセルしました。")
		return m, m.leaveImport()
	}

	var cmd tea.Cmd
	m.paste, cmd = m.paste.Update(msg)
	return m, cmd
}

func (m *shellModel) enterImport() tea.Cmd {
	m.mode = modeImporting
	m.paste.Reset()
	m.input.Blur()
	return m.paste.Focus()
}

func (m *shellModel) leaveImport() tea.Cmd {
	m.mode = modeIdle
	m.paste.Reset()
	m.paste.Blur()
	return m.input.Focus()
}

// commitImport parses text and merges the result into the itinerary.
func (m *shellModel) commitImport(text string) {
	items := m.app.Parser.Parse(text)
	if len(items) == 0 {
		m.setError("時刻を含む行が見つかりませんでした。")
		return
	}
	n, err := m.app.Store.Merge(items)
	if err != nil {
		m.setError(fmt.Sprintf("取り込みに失敗しました: %v", err))
		return
	}
	m.app.Log.Info("itinerary imported", "lines_with_time", len(items), "added", n)
	m.setNotice(fmt.Sprintf("%d件の予定を取り込みました。", n))
}

// ── add / edit mode ──────────────────────────────────────────────────────────

func (m shellModel) updateItemEntry(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		input := strings.TrimSpace(m.input.Value())
		var ok bool
		if m.mode == modeEditing {
			ok = m.updateItem(m.editingID, input)
		} else {
			ok = m.addItem(input)
		}
		if ok {
			m.leaveItemEntry()
		}
		return m, nil
	case tea.KeyEsc:
		m.leaveItemEntry()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *shellModel) enterAdding() {
	m.mode = modeAdding
	m.input.Reset()
	m.input.Placeholder = "HH:MM 内容 | URL"
}

func (m *shellModel) enterEditing(it domain.ItineraryItem) {
	m.mode = modeEditing
	m.editingID = it.ID
	m.input.Placeholder = ""
	m.input.SetValue(formatter.FormatItemInput(it))
	m.input.CursorEnd()
}

func (m *shellModel) leaveItemEntry() {
	m.mode = modeIdle
	m.editingID = ""
	m.input.Reset()
	m.input.Placeholder = ""
}

// ── suggestion lifecycle ─────────────────────────────────────────────────────

// startSuggestion validates the current inputs and dispatches a request.
// On success the shell enters modeLoading until the result arrives.
func (m *shellModel) startSuggestion() tea.Cmd {
	if m.mode == modeLoading {
		m.showOutcomeError(suggest.ErrBusy)
		return nil
	}

	req, err := suggest.Build(m.app.Store.Snapshot(), m.problem, m.constraints, m.suggestionMode)
	if err != nil {
		m.showOutcomeError(err)
		return nil
	}
	if m.app.Suggest == nil {
		m.suggestion = ""
		m.showOutcomeError(gatewayUnavailable(m.app))
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := m.app.Suggest.Start(ctx, req)
	if err != nil {
		cancel()
		m.showOutcomeError(err)
		return nil
	}

	m.app.Log.Info("suggestion requested",
		"mode", req.Mode,
		"items", len(req.Items),
	)
	m.mode = modeLoading
	m.cancel = cancel
	m.suggestion = ""
	m.notice = notice{}
	return tea.Batch(waitForSuggestion(ch), m.spin.Tick)
}

func waitForSuggestion(ch <-chan suggest.Result) tea.Cmd {
	return func() tea.Msg {
		return suggestionResultMsg(<-ch)
	}
}

func (m *shellModel) finishSuggestion(res suggest.Result) {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	if m.mode == modeLoading {
		m.mode = modeIdle
	}

	if errors.Is(res.Err, context.Canceled) {
		m.setNotice("提案の生成を中止しました。")
		return
	}

	suggestion, message := suggest.Outcome(res.Text, res.Err)
	if message != "" {
		m.app.Log.Warn("suggestion failed", "error", res.Err)
		m.setError(message)
		return
	}
	m.suggestion = suggestion
	m.notice = notice{}
}

func (m *shellModel) showOutcomeError(err error) {
	_, message := suggest.Outcome("", err)
	m.setError(message)
}

// ── helpers ──────────────────────────────────────────────────────────────────

func (m *shellModel) setNotice(text string) {
	m.notice = notice{text: text}
}

func (m *shellModel) setError(text string) {
	m.notice = notice{text: text, isErr: true}
}

func (m *shellModel) quit() tea.Cmd {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.quitting = true
	return tea.Quit
}

// indexOf returns the position of id in the current snapshot, or -1.
func (m *shellModel) indexOf(id string) int {
	for i, it := range m.app.Store.Snapshot() {
		if it.ID == id {
			return i
		}
	}
	return -1
}
