// ABOUTME: Bubble Tea model hosting the workspace: key sequences, prefix arguments, prompts
// ABOUTME: Keys resolve through the keymap to commands run by the dispatcher

package interactive

import (
	"path/filepath"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MulgaSoft/e4macs-sub001/internal/commands"
	"github.com/MulgaSoft/e4macs-sub001/internal/config"
	"github.com/MulgaSoft/e4macs-sub001/internal/editor"
	"github.com/MulgaSoft/e4macs-sub001/internal/keybindings"
	"github.com/MulgaSoft/e4macs-sub001/internal/log"
	"github.com/MulgaSoft/e4macs-sub001/internal/notify"
	"github.com/MulgaSoft/e4macs-sub001/pkg/command"
)

// Deps are the collaborators of the interactive host.
type Deps struct {
	Dispatcher *commands.Dispatcher
	Workspace  *editor.Workspace
	Keys       *keybindings.Manager
	// Reload re-reads settings and keymaps after a watched file changes.
	Reload func() error
	// Watcher reports changed settings files. Optional.
	Watcher *config.Watcher
}

// pane is a read-only listing shown in place of the buffer.
type pane struct {
	title    string
	markdown string
}

// shared holds state that outlives Bubble Tea's copies of the model.
type shared struct {
	echo        notify.Notice
	hasEcho     bool
	pane        *pane
	renderer    *markdownRenderer
	unsubscribe func()
}

// reloadMsg is sent when watched configuration files change.
type reloadMsg struct {
	changed []string
}

// Model is the interactive editor. It implements tea.Model.
type Model struct {
	d      *commands.Dispatcher
	w      *editor.Workspace
	keys   *keybindings.Manager
	reload func() error
	sh     *shared

	pending []string
	arg     prefixArg
	mini    *minibuffer

	width, height int
	quitting      bool
}

// New creates the model and routes session notices and listings into it.
func New(deps Deps) Model {
	sh := &shared{renderer: newMarkdownRenderer()}
	sh.unsubscribe = deps.Dispatcher.Session().Notices.Subscribe(func(n notify.Notice) {
		sh.echo, sh.hasEcho = n, true
	})
	deps.Dispatcher.Show = func(title, markdown string) {
		sh.pane = &pane{title: title, markdown: markdown}
	}
	return Model{
		d:      deps.Dispatcher,
		w:      deps.Workspace,
		keys:   deps.Keys,
		reload: deps.Reload,
		sh:     sh,
	}
}

// Close detaches the model from the session's notices.
func (m Model) Close() {
	if m.sh.unsubscribe != nil {
		m.sh.unsubscribe()
	}
}

func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("e4macs")
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		return m.handleKey(msg)
	case reloadMsg:
		m.applyReload(msg.changed)
	}
	return m, nil
}

type builtin func(m Model, args commands.Args) (tea.Model, tea.Cmd)

// builtins are host actions that are not editing commands. They are
// checked before the keymap.
var builtins = map[string]builtin{
	"ctrl+x ctrl+c": func(m Model, _ commands.Args) (tea.Model, tea.Cmd) {
		m.quitting = true
		return m, tea.Quit
	},
	"alt+x": func(m Model, args commands.Args) (tea.Model, tea.Cmd) {
		m.mini = commandPrompt(m.d.Registry(), args)
		return m, nil
	},
	"ctrl+h b": func(m Model, _ commands.Args) (tea.Model, tea.Cmd) {
		m.sh.pane = &pane{title: "Key bindings", markdown: m.keys.FormatAll()}
		return m, nil
	},
	"ctrl+h y": func(m Model, _ commands.Args) (tea.Model, tea.Cmd) {
		s := m.d.Session()
		m.sh.pane = &pane{title: "Kill ring", markdown: commands.FormatKillRing(s.Kills, s.Settings().PreviewWidth)}
		return m, nil
	},
	"ctrl+x right": func(m Model, args commands.Args) (tea.Model, tea.Cmd) {
		return m.cycleBuffer(args.Count())
	},
	"ctrl+x left": func(m Model, args commands.Args) (tea.Model, tea.Cmd) {
		return m.cycleBuffer(-args.Count())
	},
	"ctrl+x k": func(m Model, _ commands.Args) (tea.Model, tea.Cmd) {
		if b := m.w.Current(); b != nil {
			m.report(m.w.Close(b.ID()))
		}
		return m, nil
	},
}

func isBuiltinPrefix(seq string) bool {
	for k := range builtins {
		if strings.HasPrefix(k, seq+" ") {
			return true
		}
	}
	return false
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.sh.hasEcho = false
	name := keyName(msg)

	if m.sh.pane != nil {
		switch name {
		case "q", "esc", "ctrl+g", "enter", "space":
			m.sh.pane = nil
		}
		return m, nil
	}
	if m.mini != nil {
		return m.handlePrompt(msg)
	}
	if name == "ctrl+g" {
		m.pending, m.arg = nil, prefixArg{}
		m.beep("Quit")
		return m, nil
	}
	if len(m.pending) == 0 {
		if name == "ctrl+u" {
			m.arg.universal()
			return m, nil
		}
		if m.arg.feed(name) {
			return m, nil
		}
	}

	seq := append(slices.Clone(m.pending), name)
	full := strings.Join(seq, " ")
	args := m.arg.args()

	if fn, ok := builtins[full]; ok {
		m.pending, m.arg = nil, prefixArg{}
		return fn(m, args)
	}
	id, status := m.keys.Resolve(seq)
	if status == keybindings.Bound {
		m.pending, m.arg = nil, prefixArg{}
		return m.run(id, args)
	}
	if status == keybindings.Prefix || isBuiltinPrefix(full) {
		m.pending = seq
		return m, nil
	}

	m.pending, m.arg = nil, prefixArg{}
	if len(seq) == 1 {
		return m.unbound(msg, args)
	}
	m.beep(full + " is undefined")
	return m, nil
}

// unbound handles a single key with no binding: printing keys insert
// themselves and backspace deletes.
func (m Model) unbound(msg tea.KeyMsg, args commands.Args) (tea.Model, tea.Cmd) {
	n := max(args.Count(), 0)
	if msg.Type == tea.KeyBackspace {
		m.report(m.d.DeleteBackward(n))
		return m, nil
	}
	if text, ok := selfInsert(msg); ok {
		m.report(m.d.Insert(strings.Repeat(text, n)))
		return m, nil
	}
	log.Debug("unbound key %s", keyName(msg))
	m.beep(keyName(msg) + " is undefined")
	return m, nil
}

// run executes a command, first asking for a register name when the
// command needs one.
func (m Model) run(id command.ID, args commands.Args) (tea.Model, tea.Cmd) {
	cmd, ok := m.d.Registry().Get(id)
	if !ok {
		m.beep(id.String() + " is not available")
		return m, nil
	}
	if cmd.Register && args.Register == "" {
		m.mini = registerPrompt(cmd, args)
		return m, nil
	}
	m.report(m.d.Execute(id, args))
	return m, nil
}

func (m Model) handlePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mini.handle(msg, m.d.Registry()) {
	case promptCancel:
		m.mini = nil
		m.beep("Quit")
	case promptInvalid:
		m.beep("Register names are single characters")
	case promptDone:
		mb := m.mini
		m.mini = nil
		if mb.kind == promptRegister {
			args := mb.args
			args.Register = mb.Text()
			return m.run(mb.id, args)
		}
		cmd, ok := m.d.Registry().Lookup(mb.Text())
		if !ok {
			m.report(m.d.ExecuteNamed(mb.Text(), mb.args))
			return m, nil
		}
		return m.run(cmd.ID, mb.args)
	}
	return m, nil
}

func (m Model) cycleBuffer(step int) (tea.Model, tea.Cmd) {
	ids := m.w.Buffers()
	cur := m.w.Current()
	if len(ids) == 0 || cur == nil {
		m.beep(editor.ErrNoBuffer.Error())
		return m, nil
	}
	i := slices.Index(ids, cur.ID())
	next := ((i+step)%len(ids) + len(ids)) % len(ids)
	_, err := m.w.Switch(ids[next])
	m.report(err)
	return m, nil
}

func (m Model) applyReload(changed []string) {
	if m.reload == nil {
		return
	}
	if err := m.reload(); err != nil {
		m.report(err)
		return
	}
	names := make([]string, len(changed))
	for i, p := range changed {
		names[i] = filepath.Base(p)
	}
	m.d.Session().Notices.Messagef("Reloaded %s", strings.Join(names, ", "))
}

func (m Model) beep(text string) {
	m.d.Session().Notices.Beep(text)
}

// report shows a command failure in the echo area.
func (m Model) report(err error) {
	if err == nil {
		return
	}
	log.Warn("%v", err)
	m.d.Session().Notices.Errorf("%v", err)
}
