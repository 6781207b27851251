package cli

import (
	"os"
	"path/filepath"
	"strings"
)

// historyCap is how many commands are loaded back into the shell.
const historyCap = 500

// historyFile is the persisted command log, one command per line. The
// empty value keeps history in memory only.
type historyFile string

// defaultHistoryPath is ~/.tabi/shell_history, or "" without a home dir.
func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tabi", "shell_history")
}

// load returns the newest historyCap non-blank commands. A missing or
// unreadable file yields nil.
func (h historyFile) load() []string {
	if h == "" {
		return nil
	}
	data, err := os.ReadFile(string(h))
	if err != nil {
		return nil
	}

	var cmds []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			cmds = append(cmds, line)
		}
	}
	if extra := len(cmds) - historyCap; extra > 0 {
		cmds = cmds[extra:]
	}
	return cmds
}

// record appends one command, creating the directory on first use. Write
// failures are ignored.
func (h historyFile) record(cmd string) {
	cmd = strings.TrimSpace(cmd)
	if h == "" || cmd == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(string(h)), 0o755); err != nil {
		return
	}
	f, err := os.OpenFile(string(h), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = f.WriteString(cmd + "\n")
}
