// Package cli implements the worklog command surface. Each command translates
// to one or two calls into the core packages plus an exit code; this is the
// only layer that touches the process environment.
package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"worklog/internal/event"
	"worklog/internal/format"
	"worklog/internal/logfile"
	"worklog/internal/timeparse"
)

// Version can be overridden at build time.
var Version = "0.1.0"

// Exit codes. Boolean commands (free/working) answer through 0/1; everything
// above 1 is an error class.
const (
	ExitOK     = 0
	ExitFalse  = 1
	ExitUser   = 2
	ExitLog    = 3
	ExitSystem = 4
)

// Store is the log capability the commands require. *logfile.LogFile
// satisfies it; tests may substitute their own.
type Store interface {
	Append(ev event.Event) error
	ReadAll() ([]event.Event, error)
	Last() (event.Event, bool, error)
	IsOpen() (bool, error)
}

// App wires a command invocation to its collaborators. Now is injectable so
// command behavior is reproducible in tests.
type App struct {
	Store         Store
	Out           io.Writer
	Err           io.Writer
	Now           func() time.Time
	DefaultFormat format.TimeFormat
}

const usageText = `worklog - time tracking around an append-only event log

Usage:
  worklog start <project> [-d text]          Start working on a project (alias: on)
  worklog stop                               Stop the current work
  worklog status                             Show what you are working on
  worklog free                               Exit 0 when not working, 1 otherwise
  worklog working                            Exit 0 when working, 1 otherwise
  worklog since <time> <project> [-d text]   Start work that began at <time>
  worklog until <time>                       Stop the current work at <time> (alias: for)
  worklog between <range> <project> [-d text]  Record an already finished block of work
  worklog while <command> <project> [-d text]  Track a shell command while it runs
  worklog of <interval> [--csv|--json] [--format F]  Summarize time per project
  worklog dashboard                          Live dashboard of today's work
  worklog help | version

Time expressions:
  9:30  14  2h  45m  1:30h  "3 hours ago"  today  yesterday  "yesterday 14:00"
  "28 9:30"  "28-2 9:30"  2024-01-02  "2024-01-02 15:04"

Intervals for "of" and "between":
  today  yesterday  week  month  "<start> - <end>"  or a single time expression

Formats for "of --format": m, minutes, ma, minutes-approx, h, hours, hr, human-readable

The log lives at ~/.worklog/work.log unless WORKLOG_FILE or the log_file key
in ~/.worklog/config.toml says otherwise.`

// Run dispatches one invocation and returns the process exit code.
func (a *App) Run(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(a.Err, usageText)
		return ExitUser
	}

	switch args[0] {
	case "help", "-h", "--help":
		fmt.Fprintln(a.Out, usageText)
		return ExitOK
	case "version", "-V", "--version":
		fmt.Fprintf(a.Out, "worklog %s\n", Version)
		return ExitOK
	}

	code, err := a.dispatch(args[0], args[1:])
	if err != nil {
		fmt.Fprintln(a.Err, err)
		return exitCode(err)
	}
	return code
}

func (a *App) dispatch(cmd string, rest []string) (int, error) {
	switch cmd {
	case "start", "on":
		return a.cmdStart(rest)
	case "stop":
		return a.cmdStop()
	case "status":
		return a.cmdStatus()
	case "free":
		return a.cmdFreeWorking(false)
	case "working":
		return a.cmdFreeWorking(true)
	case "since":
		return a.cmdSince(rest)
	case "until", "for":
		return a.cmdUntil(rest)
	case "between":
		return a.cmdBetween(rest)
	case "while":
		return a.cmdWhile(rest)
	case "of":
		return a.cmdOf(rest)
	case "dashboard":
		return a.cmdDashboard()
	default:
		return 0, userErrorf("unknown command %q, see 'worklog help'", cmd)
	}
}

// exitError carries an explicit exit class for errors raised by the command
// layer itself.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

func userErrorf(formatStr string, args ...any) error {
	return &exitError{code: ExitUser, msg: fmt.Sprintf(formatStr, args...)}
}

func systemErrorf(formatStr string, args ...any) error {
	return &exitError{code: ExitSystem, msg: fmt.Sprintf(formatStr, args...)}
}

// exitCode maps an error to its exit class: validation and parse failures are
// user errors, unreadable or unwritable logs are log errors, subprocess
// failures are system errors.
func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	switch {
	case errors.Is(err, logfile.ErrAlternation),
		errors.Is(err, logfile.ErrNonMonotonic),
		errors.Is(err, timeparse.ErrUnparseableTime),
		errors.Is(err, timeparse.ErrUnparseableDuration),
		errors.Is(err, timeparse.ErrUnknownInterval):
		return ExitUser
	default:
		return ExitLog
	}
}

// options holds the flags shared by the commands. Flags may trail the
// positional arguments (worklog start api -d "fixing tests"), which rules out
// flag.FlagSet's first-non-flag cutoff, so parsing is done by hand.
type options struct {
	description string
	csv         bool
	json        bool
	format      string
	positional  []string
}

func parseOptions(args []string) (options, error) {
	var opts options
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			opts.positional = append(opts.positional, arg)
			continue
		}

		name := strings.TrimLeft(arg, "-")
		value := ""
		hasValue := false
		if eq := strings.IndexByte(name, '='); eq >= 0 {
			name, value, hasValue = name[:eq], name[eq+1:], true
		}

		takeValue := func() (string, error) {
			if hasValue {
				return value, nil
			}
			if i+1 >= len(args) {
				return "", userErrorf("flag -%s needs a value", name)
			}
			i++
			return args[i], nil
		}

		switch name {
		case "d", "description":
			v, err := takeValue()
			if err != nil {
				return opts, err
			}
			opts.description = v
		case "f", "format":
			v, err := takeValue()
			if err != nil {
				return opts, err
			}
			opts.format = v
		case "csv":
			opts.csv = true
		case "json":
			opts.json = true
		default:
			return opts, userErrorf("unknown flag %q", arg)
		}
	}
	return opts, nil
}
