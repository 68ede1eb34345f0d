// ABOUTME: CLI entry point for e4macs
// ABOUTME: Loads settings and keymaps, opens files as buffers, and runs the interactive or script host

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	// termfix must be imported before any package that imports bubbletea.
	_ "github.com/MulgaSoft/e4macs-sub001/internal/termfix"

	"golang.org/x/term"

	"github.com/MulgaSoft/e4macs-sub001/internal/commands"
	"github.com/MulgaSoft/e4macs-sub001/internal/config"
	"github.com/MulgaSoft/e4macs-sub001/internal/editor"
	"github.com/MulgaSoft/e4macs-sub001/internal/keybindings"
	"github.com/MulgaSoft/e4macs-sub001/internal/log"
	"github.com/MulgaSoft/e4macs-sub001/internal/mode/interactive"
	"github.com/MulgaSoft/e4macs-sub001/internal/mode/script"
	"github.com/MulgaSoft/e4macs-sub001/internal/session"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

const scratchBuffer = "*scratch*"

func main() {
	args := parseFlags()

	if args.version {
		fmt.Printf("e4macs %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, args)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run loads configuration, builds the session, and dispatches to a host.
func run(ctx context.Context, args cliArgs) error {
	root := args.dir
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		root = cwd
	}

	settings, err := config.Load(root)
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	if args.logLevel != "" {
		settings.LogLevel = args.logLevel
		if err := settings.Validate(); err != nil {
			return err
		}
	}

	sess := session.New(settings)
	ws := editor.NewWorkspace()
	sess.Attach(ws)
	if err := openFiles(ws, args.remaining()); err != nil {
		return err
	}
	d := commands.NewDispatcher(commands.NewRegistry(), sess, ws)

	switch {
	case args.script == "-":
		err = script.New(d, ws, os.Stdout).Run(ctx, os.Stdin)
	case args.script != "":
		err = runScriptFile(ctx, script.New(d, ws, os.Stdout), args.script)
	case term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())):
		err = runInteractive(ctx, d, ws, root)
	default:
		log.Debug("stdin is not a terminal; reading a script")
		err = script.New(d, ws, os.Stdout).Run(ctx, os.Stdin)
	}
	if err != nil {
		return err
	}

	if args.print {
		if b := ws.Current(); b != nil {
			fmt.Print(b.Text())
		}
	}
	if args.dump {
		return sess.Snapshot().WriteJSON(os.Stdout)
	}
	return nil
}

func runScriptFile(ctx context.Context, in *script.Interpreter, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening script: %w", err)
	}
	defer f.Close()
	return in.Run(ctx, f)
}

func runInteractive(ctx context.Context, d *commands.Dispatcher, ws *editor.Workspace, root string) error {
	keys := keybindings.New(config.KeymapFiles(root)...)
	for _, c := range keys.Conflicts() {
		log.Warn("key %s is bound to %v", c.Sequence, c.Commands)
	}

	reload := func() error {
		settings, err := config.Load(root)
		if err != nil {
			return fmt.Errorf("reloading settings: %w", err)
		}
		d.Session().Apply(settings)
		keys.Reload(config.KeymapFiles(root)...)
		return nil
	}

	return interactive.Run(ctx, interactive.Deps{
		Dispatcher: d,
		Workspace:  ws,
		Keys:       keys,
		Reload:     reload,
		Watcher:    config.NewWatcher(config.WatchedFiles(root)),
	})
}

// openFiles opens each file as a buffer named by its path. Missing files
// become empty buffers. With no files a scratch buffer is opened.
func openFiles(ws *editor.Workspace, paths []string) error {
	if len(paths) == 0 {
		ws.Open(scratchBuffer, "")
		return nil
	}
	for _, p := range paths {
		text, err := readFile(p)
		if err != nil {
			return err
		}
		ws.Open(p, text)
	}
	_, err := ws.Switch(paths[0])
	return err
}

func readFile(path string) (string, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}
