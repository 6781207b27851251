package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/tabi/internal/cli/formatter"
	"github.com/alexanderramin/tabi/internal/domain"
	"github.com/alexanderramin/tabi/internal/suggest"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// tabiHuhTheme returns a huh theme using the formatter palette.
func tabiHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// suggestionInputs is what the suggestion form collects.
type suggestionInputs struct {
	Problem     string
	Constraints string
	Mode        domain.SuggestionMode
}

// suggestionForm asks for the problem, the constraints and the kind of
// suggestion. At least one of problem and constraints must be filled in.
func suggestionForm(in *suggestionInputs) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("問題点").
				Placeholder("例: 雨が降ってきたので、屋外の予定を変更したい").
				Value(&in.Problem),
			huh.NewText().
				Title("制約・要望").
				Description("テンプレート: "+strings.Join(suggest.ConstraintTemplates, " / ")).
				Value(&in.Constraints).
				Validate(func(s string) error {
					if strings.TrimSpace(in.Problem) == "" && strings.TrimSpace(s) == "" {
						return fmt.Errorf("%s", suggest.EmptyInputMessage)
					}
					return nil
				}),
			huh.NewSelect[domain.SuggestionMode]().
				Title("提案の種類").
				Options(
					huh.NewOption("代替案", domain.ModeSchedule),
					huh.NewOption("おすすめスポット", domain.ModeSpots),
				).
				Value(&in.Mode),
		),
	).WithTheme(tabiHuhTheme()).WithShowHelp(false)
}

// parseDay accepts an empty string (today) or a YYYY-MM-DD date in the
// local time zone.
func parseDay(s string, now time.Time) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return now, nil
	}
	d, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("use YYYY-MM-DD format")
	}
	return d, nil
}

// parseIndex converts a 1-based item number into a slice index.
func parseIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || i < 1 || i > n {
		if n == 0 {
			return 0, fmt.Errorf("予定がありません")
		}
		return 0, fmt.Errorf("番号は 1〜%d で指定してください", n)
	}
	return i - 1, nil
}
