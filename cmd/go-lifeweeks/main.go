package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"fyne.io/fyne/v2/app"
	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/engine"
	"github.com/tartampluch/go-lifeweeks/internal/ui"
)

// main delegates to runMain so deferred calls (closing the log file) run
// before os.Exit.
func main() {
	os.Exit(runMain())
}

// runMain parses flags, then either prints the grid once or starts the
// desktop app. It returns the process exit code.
func runMain() int {
	showVersion := flag.Bool(config.FlagVersion, false, config.FlagDescVersion)
	debugMode := flag.Bool(config.FlagDebug, false, config.FlagDescDebug)
	printMode := flag.Bool(config.FlagPrint, false, config.FlagDescPrint)
	birthday := flag.String(config.FlagBirthday, "", config.FlagDescBirthday)
	lifespan := flag.Int(config.FlagLifespan, config.DefaultLifespanYears, config.FlagDescLifespan)
	endDate := flag.String(config.FlagEndDate, "", config.FlagDescEndDate)
	width := flag.Float64(config.FlagWidth, config.DefaultGridWidth, config.FlagDescWidth)
	flag.Parse()

	if *showVersion {
		printVersion()
		return config.ExitCodeSuccess
	}

	if *printMode {
		return runPrint(os.Stdout, printOptions{
			Birthday: *birthday,
			EndDate:  *endDate,
			Lifespan: *lifespan,
			Width:    *width,
			Debug:    *debugMode,
		})
	}

	if logFile := setupLogging(*debugMode); logFile != nil {
		defer func() { _ = logFile.Close() }()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logStartupInfo()

	if err := run(ctx); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// run builds the fyne app and blocks until it quits.
func run(ctx context.Context) error {
	a := app.NewWithID(config.AppID)

	// Record the version for potential migration logic in future updates.
	a.Preferences().SetString(config.PrefLastRun, config.Version)

	importer := &engine.Importer{Fetcher: engine.NewCardFetcher()}
	gui := ui.NewLifeWeeksApp(a, ctx, importer)

	// SIGINT/SIGTERM quit the event loop.
	go func() {
		<-ctx.Done()
		slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompMain)
		a.Quit()
	}()

	gui.Run()

	return nil
}

// printVersion writes the build information to stdout.
func printVersion() {
	fmt.Printf(config.MsgVersionOutput,
		config.AppName,
		config.Version,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo records build and host details once per start.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging installs a JSON slog handler writing to stdout and to a log
// file in the user cache dir. The file, when it could be opened, is returned
// for the caller to close.
func setupLogging(debug bool) *os.File {
	out := io.Writer(os.Stdout)

	logPath, err := logFilePath()
	var logFile *os.File
	if err == nil {
		// Truncated on every start.
		logFile, err = os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err != nil {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
			logFile = nil
		} else {
			out = io.MultiWriter(os.Stdout, logFile)
		}
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
	})))
	return logFile
}

// logFilePath returns <user cache dir>/<app id>/app.log, creating the
// directory owner-only.
func logFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}
	dir := filepath.Join(cacheDir, config.AppID)
	if err := os.MkdirAll(dir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}
	return filepath.Join(dir, config.LogFileName), nil
}
