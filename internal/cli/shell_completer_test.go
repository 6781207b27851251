package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterSuggestions(t *testing.T) {
	pool := []string{"suggest", "Schedule", "spots"}

	assert.Equal(t, pool, filterSuggestions(pool, ""))
	assert.Equal(t, []string{"suggest", "Schedule", "spots"}, filterSuggestions(pool, "s"))
	assert.Equal(t, []string{"Schedule"}, filterSuggestions(pool, "sch"))
	assert.Nil(t, filterSuggestions(pool, "x"))
}

func TestCompletions(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		items int
		want  []string
	}{
		{"empty", "", 0, nil},
		{"command prefix", "im", 0, []string{"import"}},
		{"several commands", "e", 0, []string{"edit", "export", "exit"}},
		{"mode arguments", "mode ", 0, []string{"mode schedule", "mode spots"}},
		{"mode argument prefix", "mode sp", 0, []string{"mode spots"}},
		{"item numbers", "del ", 3, []string{"del 1", "del 2", "del 3"}},
		{"no items", "edit ", 0, nil},
		{"template numbers", "template 5", 0, []string{"template 5"}},
		{"free text command", "problem ", 0, nil},
		{"past second word", "edit 1 09:00", 2, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, completions(tt.text, tt.items))
		})
	}
}
