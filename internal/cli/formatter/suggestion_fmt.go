package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tabi/internal/domain"
	"github.com/alexanderramin/tabi/internal/suggest"
)

// SuggestionPlaceholder is shown before any suggestion has been produced.
const SuggestionPlaceholder = "ここにAIからの新しい旅行プランが表示されます。"

// FormatSuggestion renders the raw suggestion text verbatim inside a box.
func FormatSuggestion(text string) string {
	if strings.TrimSpace(text) == "" {
		return RenderBox("AIからの提案", Dim(SuggestionPlaceholder))
	}
	return RenderBox("AIからの提案", text)
}

// FormatRequestInputs shows what the next suggestion request will carry.
func FormatRequestInputs(problem, constraints string, mode domain.SuggestionMode) string {
	var b strings.Builder
	b.WriteString(Bold("問題点: "))
	b.WriteString(orDim(problem))
	b.WriteString("\n")
	b.WriteString(Bold("制約・要望: "))
	b.WriteString(orDim(constraints))
	b.WriteString("\n")
	b.WriteString(Bold("提案の種類: "))
	b.WriteString(ModeIndicator(mode))
	b.WriteString("\n")
	return b.String()
}

// FormatTemplates lists the constraint templates with 1-based numbers.
func FormatTemplates() string {
	var b strings.Builder
	b.WriteString(Header("制約テンプレート"))
	b.WriteString("\n")
	for i, t := range suggest.ConstraintTemplates {
		b.WriteString(Dim(fmt.Sprintf("%d. ", i+1)))
		b.WriteString(t)
		b.WriteString("\n")
	}
	return b.String()
}

func orDim(s string) string {
	if strings.TrimSpace(s) == "" {
		return Dim("(未入力)")
	}
	return strings.ReplaceAll(s, "\n", " / ")
}
