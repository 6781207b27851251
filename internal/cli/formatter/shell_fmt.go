package formatter

import (
	"fmt"
	"strings"
)

// FormatShellWelcome renders the welcome banner shown on shell startup.
func FormatShellWelcome() string {
	var b strings.Builder

	logo := StylePurple.Render("  tabi")
	b.WriteString("\n")
	b.WriteString(logo + "\n")
	b.WriteString(StyleDim.Render("  ─────────────────────────────") + "\n")
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("  予定を入力し、問題点を伝えると、AIが新しいプランを提案します。") + "\n")
	b.WriteString("\n")
	b.WriteString("  " + StyleGreen.Render("import") + StyleDim.Render("         予定テキストを貼り付けて取り込む") + "\n")
	b.WriteString("  " + StyleGreen.Render("add 09:00 朝食") + StyleDim.Render("  予定を1件追加") + "\n")
	b.WriteString("  " + StyleGreen.Render("problem <text>") + StyleDim.Render(" 問題点を設定") + "\n")
	b.WriteString("  " + StyleGreen.Render("suggest") + StyleDim.Render("        AIに提案を依頼") + "\n")
	b.WriteString("  " + StyleGreen.Render("help") + StyleDim.Render("           すべてのコマンドを表示") + "\n")
	b.WriteString("\n")

	return b.String()
}

// helpCategory groups commands under a section header for the help display.
type helpCategory struct {
	title    string
	commands [][]string
}

// renderHelpCategory renders a single category section with header and command rows.
func renderHelpCategory(cat helpCategory) string {
	var b strings.Builder
	b.WriteString("\n " + StyleHeader.Render(strings.ToUpper(cat.title)) + "\n")
	for _, c := range cat.commands {
		b.WriteString(fmt.Sprintf("  %-24s %s\n",
			StyleGreen.Render(c[0]),
			StyleDim.Render(c[1])))
	}
	return b.String()
}

// FormatShellHelp renders the categorized command reference.
func FormatShellHelp() string {
	categories := []helpCategory{
		{
			title: "Itinerary",
			commands: [][]string{
				{"list", "予定を表示"},
				{"add HH:MM activity [| url]", "予定を追加"},
				{"edit <n> HH:MM activity [| url]", "n番目の予定を編集 (引数なしで入力欄に読み込み)"},
				{"del <n>", "n番目の予定を削除"},
				{"import", "テキストを貼り付けて一括取り込み (Ctrl+D で確定)"},
				{"clear", "予定をすべて削除"},
			},
		},
		{
			title: "Suggestion",
			commands: [][]string{
				{"problem <text>", "問題点を設定"},
				{"constraints <text>", "制約・要望を設定"},
				{"template <n>", "制約テンプレートを追加 (引数なしで一覧)"},
				{"mode schedule|spots", "提案の種類を切り替え"},
				{"suggest", "AIに提案を依頼"},
			},
		},
		{
			title: "Utilities",
			commands: [][]string{
				{"export <file> [YYYY-MM-DD]", "予定をiCalendar形式で保存"},
				{"help", "このヘルプを表示"},
				{"exit / quit", "終了"},
			},
		},
	}

	var b strings.Builder
	for _, cat := range categories {
		b.WriteString(renderHelpCategory(cat))
	}

	return RenderBox("Commands", b.String())
}
