// ABOUTME: CLI flag parsing using stdlib flag package
// ABOUTME: Supports --script, --dump, --print, --dir, --log-level, --version

package main

import "flag"

type cliArgs struct {
	script   string
	dump     bool
	print    bool
	dir      string
	logLevel string
	version  bool
}

func parseFlags() cliArgs {
	var args cliArgs

	flag.StringVar(&args.script, "script", "", "Run a lisp script of editing commands (- for stdin) and exit")
	flag.BoolVar(&args.dump, "dump", false, "Print the kill ring, registers, and marks as JSON on exit")
	flag.BoolVar(&args.print, "print", false, "Print the current buffer on exit")
	flag.StringVar(&args.dir, "dir", "", "Project directory for .e4macs settings (default: working directory)")
	flag.StringVar(&args.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flag.BoolVar(&args.version, "version", false, "Show version and exit")

	flag.Parse()
	return args
}

// remaining returns the files named on the command line.
func (a cliArgs) remaining() []string {
	return flag.Args()
}
