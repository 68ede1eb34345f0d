// ABOUTME: Markdown listings of registers and the kill ring for display
// ABOUTME: Values are previewed on one line and fitted to a column width

package commands

import (
	"fmt"
	"strings"

	"github.com/MulgaSoft/e4macs-sub001/pkg/killring"
	"github.com/MulgaSoft/e4macs-sub001/pkg/register"
	"github.com/MulgaSoft/e4macs-sub001/pkg/width"
)

// FormatRegisters lists registers in definition order as a markdown table.
func FormatRegisters(s *register.Store, previewWidth int) string {
	if s.Len() == 0 {
		return "No registers are set.\n"
	}
	var b strings.Builder
	b.WriteString("| Register | Contents |\n|---|---|\n")
	for name, v := range s.All() {
		fmt.Fprintf(&b, "| `%s` | %s |\n", escapeCell(width.OneLine(name)), escapeCell(width.Preview(register.Describe(v), previewWidth)))
	}
	return b.String()
}

// FormatKillRing lists kill ring entries newest first, marking the one
// the next yank would insert.
func FormatKillRing(kr *killring.KillRing, previewWidth int) string {
	if kr.Len() == 0 {
		return "The kill ring is empty.\n"
	}
	var entries []killring.Entry
	for e := range kr.Entries() {
		entries = append(entries, e)
	}
	yank := kr.YankIndex()

	var b strings.Builder
	b.WriteString("| # | Source | Text |\n|---|---|---|\n")
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		pos := len(entries) - 1 - i
		label := fmt.Sprint(pos + 1)
		if pos == yank {
			label += " ▶"
		}
		fmt.Fprintf(&b, "| %s | %s | %s |\n", label, e.Source, escapeCell(width.Preview(e.Text, previewWidth)))
	}
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
