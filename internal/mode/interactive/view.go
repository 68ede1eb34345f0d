// ABOUTME: Rendering of the current buffer, the mode line, and the echo area
// ABOUTME: The region between mark and point is highlighted; the view scrolls to keep point visible

package interactive

import (
	"fmt"
	"slices"
	"strings"

	"github.com/MulgaSoft/e4macs-sub001/internal/notify"
)

const (
	minWidth  = 20
	minHeight = 3
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	w, h := max(m.width, minWidth), max(m.height, minHeight)
	rows := h - 2

	var body []string
	if p := m.sh.pane; p != nil {
		s := Styles()
		body = append([]string{s.PaneTitle.Render(p.title), ""}, strings.Split(m.sh.renderer.Render(p.markdown, w), "\n")...)
		body = body[:min(len(body), rows)]
	} else {
		body = m.renderBuffer(rows)
	}
	for len(body) < rows {
		body = append(body, "")
	}
	return strings.Join(body, "\n") + "\n" + m.modeLine(w) + "\n" + m.echoLine()
}

// renderBuffer returns at most rows lines of the current buffer.
func (m Model) renderBuffer(rows int) []string {
	b := m.w.Current()
	if b == nil {
		return []string{Styles().Dim.Render("No buffer")}
	}
	point := b.Point()
	from, to := point, point
	if mark, ok := b.Mark(); ok {
		from, to = min(mark, point), max(mark, point)
	}

	lines := strings.Split(b.Text(), "\n")
	pointLine := strings.Count(b.Slice(0, point), "\n")
	top := max(0, pointLine-rows+1)

	var out []string
	off := 0
	for i, line := range lines {
		r := []rune(line)
		if i >= top && i < top+rows {
			out = append(out, renderLine(r, off, point, from, to))
		}
		off += len(r) + 1
	}
	return out
}

// renderLine styles one line starting at buffer offset start.
func renderLine(line []rune, start, point, from, to int) string {
	s := Styles()
	var b strings.Builder
	var run []rune
	inRegion := false
	flush := func() {
		if len(run) == 0 {
			return
		}
		if inRegion {
			b.WriteString(s.Region.Render(string(run)))
		} else {
			b.WriteString(string(run))
		}
		run = run[:0]
	}

	for i, c := range line {
		pos := start + i
		if pos == point {
			flush()
			b.WriteString(s.Cursor.Render(string(c)))
			continue
		}
		if in := pos >= from && pos < to; in != inRegion {
			flush()
			inRegion = in
		}
		run = append(run, c)
	}
	flush()
	if point == start+len(line) {
		b.WriteString(s.Cursor.Render(" "))
	}
	return b.String()
}

func (m Model) modeLine(width int) string {
	s := Styles()
	sess := m.d.Session()
	name, pos := "*none*", ""
	if b := m.w.Current(); b != nil {
		name = b.ID()
		before := b.Slice(0, b.Point())
		line := strings.Count(before, "\n") + 1
		col := len([]rune(before[strings.LastIndex(before, "\n")+1:]))
		pos = fmt.Sprintf("L%d C%d", line, col)
		if ids := m.w.Buffers(); len(ids) > 1 {
			pos += fmt.Sprintf("  (%d/%d)", slices.Index(ids, name)+1, len(ids))
		}
	}
	info := fmt.Sprintf("  %s  kills:%d  registers:%d", pos, sess.Kills.Len(), sess.Registers.Len())
	return s.ModeLine.Width(width).Render(s.ModeName.Render(" "+name) + info)
}

func (m Model) echoLine() string {
	s := Styles()
	if m.mini != nil {
		return m.mini.View()
	}
	if len(m.pending) > 0 || m.arg.active {
		parts := []string{}
		if a := m.arg.String(); a != "" {
			parts = append(parts, a)
		}
		if len(m.pending) > 0 {
			parts = append(parts, strings.Join(m.pending, " ")+"-")
		}
		return s.Dim.Render(strings.Join(parts, " "))
	}
	if !m.sh.hasEcho {
		return ""
	}
	text, _, _ := strings.Cut(m.sh.echo.Text, "\n")
	switch m.sh.echo.Kind {
	case notify.Beep:
		return s.Beep.Render(text)
	case notify.Error:
		return s.Error.Render(text)
	default:
		return s.Echo.Render(text)
	}
}
