package suggest

// ConstraintTemplates are ready-made constraint phrases. Bracketed parts
// are placeholders for the user to fill in.
var ConstraintTemplates = []string{
	"[時間]までに[場所]に着く必要があります。",
	"予算は[金額]円以内です。",
	"[場所]だけは絶対に行きたいです。",
	"屋内アクティビティを希望します。",
	"子供も楽しめる場所を希望します。",
}

// AppendTemplate adds tmpl on a new line after current.
func AppendTemplate(current, tmpl string) string {
	if current == "" {
		return tmpl
	}
	return current + "\n" + tmpl
}
