package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alexanderramin/tabi/internal/cli/formatter"
	"github.com/alexanderramin/tabi/internal/domain"
	"github.com/alexanderramin/tabi/internal/export"
	"github.com/alexanderramin/tabi/internal/suggest"
	tea "github.com/charmbracelet/bubbletea"
)

// executeCommand runs one shell command line. It returns text to print
// above the live view and an optional follow-up command.
func (m *shellModel) executeCommand(input string) (string, tea.Cmd) {
	name, rest := splitCommand(input)

	switch name {
	case "list", "ls":
		return formatter.FormatItinerary(m.app.Store.Snapshot()), nil
	case "add":
		m.execAdd(rest)
		return "", nil
	case "edit":
		m.execEdit(rest)
		return "", nil
	case "del", "delete", "rm":
		m.execDelete(rest)
		return "", nil
	case "import":
		if m.mode == modeLoading {
			m.showOutcomeError(suggest.ErrBusy)
			return "", nil
		}
		return "", m.enterImport()
	case "problem":
		m.problem = rest
		return "", nil
	case "constraints":
		m.constraints = rest
		return "", nil
	case "template":
		return m.execTemplate(rest), nil
	case "mode":
		m.execMode(rest)
		return "", nil
	case "suggest":
		return "", m.startSuggestion()
	case "export":
		m.execExport(rest)
		return "", nil
	case "clear":
		m.app.Store.Clear()
		m.setNotice("予定をすべて削除しました。")
		return "", nil
	case "help", "?":
		return formatter.FormatShellHelp(), nil
	case "exit", "quit", "q":
		return "", m.quit()
	default:
		m.setError(fmt.Sprintf("不明なコマンドです: %s (help でコマンド一覧)", name))
		return "", nil
	}
}

// splitCommand separates the command word from the rest of the line. The
// rest is kept verbatim apart from surrounding whitespace so free text such
// as a problem description survives intact.
func splitCommand(input string) (string, string) {
	input = strings.TrimSpace(input)
	i := strings.IndexFunc(input, isShellSpace)
	if i < 0 {
		return strings.ToLower(input), ""
	}
	return strings.ToLower(input[:i]), strings.TrimSpace(input[i:])
}

func isShellSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\u3000'
}

func (m *shellModel) execAdd(rest string) {
	if rest != "" {
		m.addItem(rest)
		return
	}
	if m.mode == modeLoading {
		m.showOutcomeError(suggest.ErrBusy)
		return
	}
	m.enterAdding()
}

func (m *shellModel) execEdit(rest string) {
	num, entry := splitCommand(rest)
	items := m.app.Store.Snapshot()
	idx, err := parseIndex(num, len(items))
	if err != nil {
		m.setError(err.Error())
		return
	}
	if entry != "" {
		m.updateItem(items[idx].ID, entry)
		return
	}
	if m.mode == modeLoading {
		m.showOutcomeError(suggest.ErrBusy)
		return
	}
	m.enterEditing(items[idx])
}

func (m *shellModel) execDelete(rest string) {
	items := m.app.Store.Snapshot()
	idx, err := parseIndex(rest, len(items))
	if err != nil {
		m.setError(err.Error())
		return
	}
	m.app.Store.Delete(items[idx].ID)
	m.setNotice(fmt.Sprintf("「%s」を削除しました。", items[idx].Activity))
}

// addItem stores a new item from "HH:MM activity | url" input and reports
// whether it was accepted.
func (m *shellModel) addItem(input string) bool {
	clock, activity, url := parseItemInput(input)
	it, err := m.app.Store.Add(clock, activity, url)
	if err != nil {
		m.setError(itemErrorMessage(err))
		return false
	}
	m.setNotice(fmt.Sprintf("%s %s を追加しました。", it.Time, it.Activity))
	return true
}

// updateItem replaces id with "HH:MM activity | url" input and reports
// whether it was accepted.
func (m *shellModel) updateItem(id, input string) bool {
	clock, activity, url := parseItemInput(input)
	it, err := m.app.Store.Update(id, clock, activity, url)
	if err != nil {
		m.setError(itemErrorMessage(err))
		return false
	}
	m.setNotice(fmt.Sprintf("%s %s に更新しました。", it.Time, it.Activity))
	return true
}

func (m *shellModel) execTemplate(rest string) string {
	if rest == "" {
		return formatter.FormatTemplates()
	}
	idx, err := parseIndex(rest, len(suggest.ConstraintTemplates))
	if err != nil {
		m.setError(err.Error())
		return ""
	}
	m.constraints = suggest.AppendTemplate(m.constraints, suggest.ConstraintTemplates[idx])
	return ""
}

func (m *shellModel) execMode(rest string) {
	mode, err := domain.ParseSuggestionMode(rest)
	if err != nil {
		m.setError(fmt.Sprintf("提案の種類は %s か %s です。", domain.ModeSchedule, domain.ModeSpots))
		return
	}
	m.suggestionMode = mode
}

func (m *shellModel) execExport(rest string) {
	args, err := splitShellArgs(rest)
	if err != nil || len(args) == 0 || len(args) > 2 {
		m.setError("使い方: export <file> [YYYY-MM-DD]")
		return
	}
	var date string
	if len(args) == 2 {
		date = args[1]
	}
	now := m.app.now()
	day, err := parseDay(date, now)
	if err != nil {
		m.setError(err.Error())
		return
	}

	doc, err := export.ICS(m.app.Store.Snapshot(), day, now)
	if err != nil {
		m.setError(fmt.Sprintf("書き出しに失敗しました: %v", err))
		return
	}
	if err := os.WriteFile(args[0], []byte(doc), 0o644); err != nil {
		m.setError(fmt.Sprintf("書き出しに失敗しました: %v", err))
		return
	}
	m.setNotice(fmt.Sprintf("%s に書き出しました。", args[0]))
}

// parseItemInput splits "HH:MM activity | url" into its parts. The URL
// part is optional; validation is left to the store.
func parseItemInput(input string) (clock, activity, url string) {
	clock, rest := splitCommand(input)
	if i := strings.LastIndex(rest, "|"); i >= 0 {
		url = strings.TrimSpace(rest[i+1:])
		rest = rest[:i]
	}
	return clock, strings.TrimSpace(rest), url
}

func itemErrorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidTime):
		return "時刻は HH:MM 形式で入力してください。"
	case errors.Is(err, domain.ErrEmptyActivity):
		return "内容を入力してください。"
	case errors.Is(err, domain.ErrItemNotFound):
		return "予定が見つかりません。"
	default:
		return err.Error()
	}
}
