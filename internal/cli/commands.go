package cli

import (
	"errors"
	"os"
	"os/exec"
	"strings"

	"worklog/internal/dashboard"
	"worklog/internal/event"
	"worklog/internal/format"
	"worklog/internal/summary"
	"worklog/internal/timeparse"
)

func (a *App) cmdStart(args []string) (int, error) {
	opts, err := parseOptions(args)
	if err != nil {
		return 0, err
	}
	if len(opts.positional) != 1 {
		return 0, userErrorf("usage: worklog start <project> [-d text]")
	}

	if err := a.requireFree(); err != nil {
		return 0, err
	}
	ev, err := event.NewStart(a.Now(), opts.positional[0], opts.description)
	if err != nil {
		return 0, userErrorf("%v", err)
	}
	return ExitOK, a.Store.Append(ev)
}

func (a *App) cmdStop() (int, error) {
	open, err := a.Store.IsOpen()
	if err != nil {
		return 0, err
	}
	if !open {
		return 0, userErrorf("unable to stop, no work in progress")
	}
	return ExitOK, a.Store.Append(event.NewStop(a.Now()))
}

func (a *App) cmdStatus() (int, error) {
	last, ok, err := a.Store.Last()
	if err != nil {
		return 0, err
	}
	if !ok || last.Kind == event.Stop {
		a.renderFree()
		return ExitOK, nil
	}
	a.renderWorking(last, a.Now().Sub(last.Timestamp))
	return ExitOK, nil
}

// cmdFreeWorking answers through the exit code alone so the commands compose
// in shell conditionals without output parsing.
func (a *App) cmdFreeWorking(wantWorking bool) (int, error) {
	open, err := a.Store.IsOpen()
	if err != nil {
		return 0, err
	}
	if open == wantWorking {
		return ExitOK, nil
	}
	return ExitFalse, nil
}

func (a *App) cmdSince(args []string) (int, error) {
	opts, err := parseOptions(args)
	if err != nil {
		return 0, err
	}
	if len(opts.positional) != 2 {
		return 0, userErrorf("usage: worklog since <time> <project> [-d text]")
	}

	if err := a.requireFree(); err != nil {
		return 0, err
	}
	now := a.Now()
	at, err := timeparse.ParseInstant(opts.positional[0], now, timeparse.Backward)
	if err != nil {
		return 0, err
	}
	if at.After(now) {
		return 0, userErrorf("%q resolves to the future; since only records work that already began", opts.positional[0])
	}
	ev, err := event.NewStart(at, opts.positional[1], opts.description)
	if err != nil {
		return 0, userErrorf("%v", err)
	}
	return ExitOK, a.Store.Append(ev)
}

func (a *App) cmdUntil(args []string) (int, error) {
	opts, err := parseOptions(args)
	if err != nil {
		return 0, err
	}
	if len(opts.positional) != 1 {
		return 0, userErrorf("usage: worklog until <time>")
	}

	open, err := a.Store.IsOpen()
	if err != nil {
		return 0, err
	}
	if !open {
		return 0, userErrorf("unable to schedule a stop, no work in progress")
	}
	now := a.Now()
	at, err := timeparse.ParseInstant(opts.positional[0], now, timeparse.Forward)
	if err != nil {
		return 0, err
	}
	if at.Before(now) {
		return 0, userErrorf("%q resolves to the past; use stop or between instead", opts.positional[0])
	}
	return ExitOK, a.Store.Append(event.NewStop(at))
}

func (a *App) cmdBetween(args []string) (int, error) {
	opts, err := parseOptions(args)
	if err != nil {
		return 0, err
	}
	if len(opts.positional) < 2 {
		return 0, userErrorf("usage: worklog between <range> <project> [-d text]")
	}
	project := opts.positional[len(opts.positional)-1]
	rangeExpr := strings.Join(opts.positional[:len(opts.positional)-1], " ")

	if err := a.requireFree(); err != nil {
		return 0, err
	}
	now := a.Now()
	iv, err := timeparse.ResolveInterval(rangeExpr, now)
	if err != nil {
		return 0, err
	}
	// Keyword intervals run to a calendar boundary that may still be ahead
	// of us; a recorded block can only end at now.
	end := iv.End
	if end.After(now) {
		end = now
	}
	if !end.After(iv.Start) {
		return 0, userErrorf("%q holds no elapsed time to record", rangeExpr)
	}
	start, err := event.NewStart(iv.Start, project, opts.description)
	if err != nil {
		return 0, userErrorf("%v", err)
	}
	if err := a.Store.Append(start); err != nil {
		return 0, err
	}
	return ExitOK, a.Store.Append(event.NewStop(end))
}

// cmdWhile tracks a shell command: start is appended before the child runs
// and the matching stop is armed with defer, so the log is closed again even
// when the child fails.
func (a *App) cmdWhile(args []string) (code int, err error) {
	opts, optErr := parseOptions(args)
	if optErr != nil {
		return 0, optErr
	}
	if len(opts.positional) != 2 {
		return 0, userErrorf("usage: worklog while <command> <project> [-d text]")
	}

	if err := a.requireFree(); err != nil {
		return 0, err
	}
	start, evErr := event.NewStart(a.Now(), opts.positional[1], opts.description)
	if evErr != nil {
		return 0, userErrorf("%v", evErr)
	}
	if err := a.Store.Append(start); err != nil {
		return 0, err
	}
	defer func() {
		if stopErr := a.Store.Append(event.NewStop(a.Now())); stopErr != nil && err == nil {
			code, err = 0, stopErr
		}
	}()

	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "sh"
	}
	child := exec.Command(shell, "-c", opts.positional[0])
	child.Stdin = os.Stdin
	child.Stdout = a.Out
	child.Stderr = a.Err

	if runErr := child.Run(); runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			return 0, systemErrorf("tracked command exited with status %d", exitErr.ExitCode())
		}
		return 0, systemErrorf("failed to run %s: %v", shell, runErr)
	}
	return ExitOK, nil
}

func (a *App) cmdOf(args []string) (int, error) {
	opts, err := parseOptions(args)
	if err != nil {
		return 0, err
	}
	if len(opts.positional) == 0 {
		return 0, userErrorf("usage: worklog of <interval> [--csv|--json] [--format F]")
	}
	if opts.csv && opts.json {
		return 0, userErrorf("--csv and --json are mutually exclusive")
	}
	tf := a.DefaultFormat
	if opts.format != "" {
		tf, err = format.ParseTimeFormat(opts.format)
		if err != nil {
			return 0, userErrorf("%v", err)
		}
	}

	now := a.Now()
	iv, err := timeparse.ResolveInterval(strings.Join(opts.positional, " "), now)
	if err != nil {
		return 0, err
	}
	events, err := a.Store.ReadAll()
	if err != nil {
		return 0, err
	}

	s := summary.Summarize(events, iv, now)
	if s.Empty() {
		a.renderNoWork()
		return ExitFalse, nil
	}

	switch {
	case opts.csv:
		err = a.renderSummaryCSV(s, tf)
	case opts.json:
		err = a.renderSummaryJSON(s, tf)
	default:
		a.renderSummary(s, tf)
	}
	if err != nil {
		return 0, err
	}
	return ExitOK, nil
}

func (a *App) cmdDashboard() (int, error) {
	if err := dashboard.Run(a.Store, a.Now); err != nil {
		return 0, systemErrorf("dashboard: %v", err)
	}
	return ExitOK, nil
}

// requireFree rejects mutating commands while work is in progress; a new
// start on an open log would break alternation anyway, but the intent-level
// message beats the invariant-level one.
func (a *App) requireFree() error {
	open, err := a.Store.IsOpen()
	if err != nil {
		return err
	}
	if open {
		return userErrorf("please stop the current work first")
	}
	return nil
}
