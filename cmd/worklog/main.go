package main

import (
	"fmt"
	"os"
	"time"

	"worklog/internal/cli"
	"worklog/internal/config"
	"worklog/internal/format"
	"worklog/internal/logfile"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitUser)
	}
	tf, err := format.ParseTimeFormat(cfg.TimeFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitUser)
	}

	log, err := logfile.Open(cfg.LogFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitLog)
	}

	app := &cli.App{
		Store:         log,
		Out:           os.Stdout,
		Err:           os.Stderr,
		Now:           time.Now,
		DefaultFormat: tf,
	}
	code := app.Run(os.Args[1:])

	if err := log.Close(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if code == cli.ExitOK {
			code = cli.ExitLog
		}
	}
	os.Exit(code)
}
