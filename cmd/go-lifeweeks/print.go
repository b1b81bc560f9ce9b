package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/engine"
	"github.com/tartampluch/go-lifeweeks/internal/layout"
	"github.com/tartampluch/go-lifeweeks/internal/term"
)

// printOptions carries the -print flags.
type printOptions struct {
	Birthday string
	EndDate  string
	Lifespan int
	Width    float64
	Debug    bool
}

// runPrint renders one frame to out through the same dispatcher the window
// uses, backed by an in-memory store. Logs go to stderr so out stays clean.
func runPrint(out io.Writer, opts printOptions) int {
	level := slog.LevelWarn
	if opts.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	store := engine.NewMemoryStore()
	store.Set(config.PrefBirthday, opts.Birthday)
	store.Set(config.PrefEndDate, opts.EndDate)
	store.Set(config.PrefLifespan, strconv.Itoa(opts.Lifespan))

	d := engine.NewDispatcher(store, term.NewPrinter(out), engine.RealClock{}, layout.DefaultPlanner(), nil)

	if _, err := d.Resized(opts.Width); err != nil {
		if errors.Is(err, engine.ErrInvalidDateFormat) {
			fmt.Fprintf(os.Stderr, config.MsgPrintNoRender, opts.Birthday)
		} else {
			slog.Error(config.ErrAppFailed,
				config.LogKeyComponent, config.CompMain,
				config.LogKeyError, err)
		}
		return config.ExitCodeError
	}
	return config.ExitCodeSuccess
}
