package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/focuslog/focuslog/internal/config"
	"github.com/focuslog/focuslog/internal/httpserver"
	"github.com/focuslog/focuslog/internal/logging"
	"github.com/focuslog/focuslog/internal/notify"
	"github.com/focuslog/focuslog/internal/osutil"
	"github.com/focuslog/focuslog/internal/pathutil"
	"github.com/focuslog/focuslog/internal/session"
	"github.com/focuslog/focuslog/internal/ui"
	"github.com/focuslog/focuslog/stats"
	"github.com/focuslog/focuslog/store"
	"github.com/focuslog/focuslog/timer"
)

const (
	envNoColor         = "NO_COLOR"
	envFocuslogNoColor = "FOCUSLOG_NO_COLOR"
)

var logCloser io.Closer

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

// loadConfig reads the config file and applies the command-line flags. The
// first-run prompt is only shown when starting the timer.
func loadConfig(ctx *cli.Context, prompt bool) (*config.Config, error) {
	path := pathutil.ConfigFilePath()

	var opts []config.Option

	if prompt {
		opts = append(opts, config.WithPromptConfig(path))
	}

	opts = append(opts,
		config.WithViperConfig(path),
		config.WithCLIConfig(ctx),
	)

	cfg, err := config.New(opts...)
	if err != nil {
		return nil, err
	}

	ui.DarkTheme = cfg.Settings.DarkTheme

	return cfg, nil
}

func owner(cfg *config.Config) session.Owner {
	return session.Owner{ID: cfg.Profile.UserID, Name: cfg.Profile.Name}
}

func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(config.Stdout, string(b))

	return err
}

// defaultAction starts the interactive timer, resuming the interval that was
// in progress when it last exited.
func defaultAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx, true)
	if err != nil {
		return err
	}

	db, err := store.NewClient(pathutil.DBFilePath())
	if err != nil {
		return err
	}

	defer db.Close()

	logger := slog.Default()
	user := owner(cfg)

	recorder := session.NewRecorder(db, user, session.Draft{
		Title:       cfg.CLI.Title,
		Description: cfg.CLI.Description,
		Tasks:       cfg.CLI.Tasks,
	}).WithLogger(logger)

	opts := timer.Options{
		Store:      db.Snapshots(user.ID),
		Recorder:   recorder,
		Logger:     logger,
		Title:      recorder.Draft().Title,
		StatusPath: pathutil.StatusFilePath(),
	}

	var notifier *notify.Desktop

	if cfg.Notifications.Enabled {
		notifier = notify.New(
			notify.WithSound(cfg.Notifications.Sound),
			notify.WithLogger(logger),
		)

		opts.Notifier = notifier
	}

	slog.InfoContext(ctx.Context, "starting timer", slog.String("user", user.ID))

	_, err = tea.NewProgram(timer.New(ctx.Context, cfg, opts)).Run()

	if notifier != nil {
		notifier.Wait()
	}

	return err
}

// readStatus loads the timer state from the database, or from the status
// file when a running timer holds the database lock.
func readStatus(cfg *config.Config) (*timer.Status, error) {
	db, err := store.NewClient(pathutil.DBFilePath())
	if errors.Is(err, store.ErrFocusRunning) {
		return timer.ReadStatus(pathutil.StatusFilePath())
	}

	if err != nil {
		return nil, err
	}

	defer db.Close()

	snap, err := db.LoadSnapshot(cfg.Profile.UserID)
	if err != nil || snap == nil {
		return nil, err
	}

	s := timer.StatusFromSnapshot(snap)

	return &s, nil
}

// statusAction handles the status command and prints the status of the
// timer.
func statusAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx, false)
	if err != nil {
		return err
	}

	s, err := readStatus(cfg)
	if err != nil {
		return err
	}

	return timer.PrintStatus(config.Stdout, s, time.Now(), cfg.TimeFormat())
}

// withStats opens the database and hands a stats service to fn.
func withStats(
	ctx *cli.Context,
	fn func(cfg *config.Config, db *store.Client, svc *stats.Service) error,
) error {
	cfg, err := loadConfig(ctx, false)
	if err != nil {
		return err
	}

	db, err := store.NewClient(pathutil.DBFilePath())
	if err != nil {
		return err
	}

	defer db.Close()

	return fn(cfg, db, stats.New(db))
}

// serveAction runs the HTTP API until interrupted.
func serveAction(ctx *cli.Context) error {
	return withStats(ctx, func(cfg *config.Config, db *store.Client, svc *stats.Service) error {
		addr := firstNonEmptyString(ctx.String("addr"), cfg.Server.Addr)

		srv := httpserver.NewServer(addr, db, svc, slog.Default())
		if err := srv.Start(); err != nil {
			return err
		}

		pterm.Info.Printfln("serving the focuslog API on http://%s (press Ctrl+C to stop)", addr)

		sigCtx, stop := signal.NotifyContext(ctx.Context, os.Interrupt, syscall.SIGTERM)
		defer stop()

		<-sigCtx.Done()

		return srv.Stop()
	})
}

// editConfigAction handles the edit-config command which opens the config
// file in the user's default text editor.
func editConfigAction(_ *cli.Context) error {
	defaultEditor := "nano"

	if runtime.GOOS == osutil.Windows {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	//nolint:gosec // the editor is chosen by the user
	cmd := exec.Command(editor, pathutil.ConfigFilePath())

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	if err := pathutil.Initialize(); err != nil {
		return err
	}

	logCloser = logging.Setup(pathutil.LogFilePath())

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	_, noColor := os.LookupEnv(envNoColor)
	_, focuslogNoColor := os.LookupEnv(envFocuslogNoColor)

	if noColor || focuslogNoColor || ctx.Bool("no-color") {
		disableStyling()
	}

	return nil
}

func afterAction(ctx *cli.Context) error {
	slog.InfoContext(ctx.Context, "exiting focuslog")

	if logCloser != nil {
		return logCloser.Close()
	}

	return nil
}
