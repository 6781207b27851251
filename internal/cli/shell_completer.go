package cli

import (
	"strconv"
	"strings"

	"github.com/alexanderramin/tabi/internal/domain"
	"github.com/alexanderramin/tabi/internal/suggest"
)

// allCommandNames returns the full list of shell command names for autocomplete.
func allCommandNames() []string {
	return []string{
		"list", "add", "edit", "del", "import", "clear",
		"problem", "constraints", "template", "mode", "suggest",
		"export", "help", "exit", "quit",
	}
}

// argumentNames returns completions for the first argument of cmd. Item
// numbers run from 1 to itemCount.
func argumentNames(cmd string, itemCount int) []string {
	switch cmd {
	case "mode":
		return []string{string(domain.ModeSchedule), string(domain.ModeSpots)}
	case "template":
		return numbers(len(suggest.ConstraintTemplates))
	case "edit", "del":
		return numbers(itemCount)
	default:
		return nil
	}
}

func numbers(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = strconv.Itoa(i + 1)
	}
	return out
}

// filterSuggestions returns items from pool that start with prefix (case-insensitive).
func filterSuggestions(pool []string, prefix string) []string {
	if prefix == "" {
		return pool
	}
	lp := strings.ToLower(prefix)
	var result []string
	for _, s := range pool {
		if strings.HasPrefix(strings.ToLower(s), lp) {
			result = append(result, s)
		}
	}
	return result
}

// completions returns whole-line candidates for text: command names for
// the first word, then known arguments for the second.
func completions(text string, itemCount int) []string {
	if text == "" {
		return nil
	}

	parts := strings.Fields(text)
	trailingSpace := strings.HasSuffix(text, " ")

	if len(parts) <= 1 && !trailingSpace {
		return filterSuggestions(allCommandNames(), parts[0])
	}

	if len(parts) > 2 || (len(parts) == 2 && trailingSpace) {
		return nil
	}

	cmd := strings.ToLower(parts[0])
	prefix := ""
	if len(parts) == 2 {
		prefix = parts[1]
	}
	var lines []string
	for _, arg := range filterSuggestions(argumentNames(cmd, itemCount), prefix) {
		lines = append(lines, parts[0]+" "+arg)
	}
	return lines
}

func (m *shellModel) updateSuggestions() {
	m.input.SetSuggestions(completions(m.input.Value(), m.app.Store.Len()))
}
