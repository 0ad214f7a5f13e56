package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/mcncl/jsonpeek/internal/analyzer"
	"github.com/mcncl/jsonpeek/internal/cli"
	"github.com/mcncl/jsonpeek/internal/config"
	"github.com/mcncl/jsonpeek/internal/errors"
	"github.com/mcncl/jsonpeek/internal/logfile"
	"github.com/mcncl/jsonpeek/internal/logging"
	"github.com/mcncl/jsonpeek/internal/wizard"
)

// Version information
const (
	Version = "0.1.0"
)

const guideText = `Quick guide
------------------------
jsonpeek lists every top-level value of a JSON file, shows which values
occur most often and keeps a log of each analysis.
Three steps to get started:
1. Drag the JSON file you want to analyze into this window
2. Press Enter
3. When the analysis is done a log file is written to your Desktop. It holds
   everything shown on screen for this analysis, so keep it safe
`

// errSomeFilesFailed is returned when at least one path given on the
// command line could not be analyzed.
var errSomeFilesFailed = stderrors.New("one or more files could not be analyzed")

// Globals are flags shared by every command.
type Globals struct {
	Config   string `help:"Path to a config file. Defaults to .jsonpeek.yml in the current or a parent directory." short:"c" type:"path"`
	LogDir   string `help:"Directory for log files (default: Desktop)." name:"log-dir" type:"path"`
	NoLog    bool   `help:"Do not write log files." name:"no-log"`
	Markdown bool   `help:"Also write a Markdown report next to each log file." short:"m"`
	Top      int    `help:"Number of most frequent values to list (default: 2)." short:"t"`
	Debug    bool   `help:"Enable debug logging." short:"d"`
}

// CLI defines the command-line interface
type CLI struct {
	Globals

	Analyze AnalyzeCmd `cmd:"" default:"withargs" help:"Analyze JSON files. Without paths, prompts for them until Q is entered."`
	New     NewCmd     `cmd:"" help:"Create a new JSON file step by step."`
	Guide   GuideCmd   `cmd:"" help:"Show a short usage guide."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

// App holds what commands need at run time.
type App struct {
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// AnalyzeCmd analyzes the given files, or runs the interactive loop.
type AnalyzeCmd struct {
	Paths []string `arg:"" optional:"" help:"JSON files to analyze."`
}

// Run executes the analyze command.
func (c *AnalyzeCmd) Run(app *App) error {
	var logs *logfile.Writer
	if app.Config.Log.Enabled {
		logs = logfile.New(app.Config)
	}
	session := cli.NewSession(
		app.Stdin,
		app.Stdout,
		analyzer.NewAnalyzerWithConfig(app.Config, app.Logger),
		logs,
		app.Logger,
	)

	if len(c.Paths) == 0 {
		return session.Run(app.Ctx)
	}

	failed := false
	for i, path := range c.Paths {
		if i > 0 {
			fmt.Fprintln(app.Stdout)
		}
		if err := session.AnalyzeFile(path); err != nil {
			fmt.Fprintf(app.Stderr, "%s: %s\n", path, errors.UserFriendlyError(err))
			failed = true
		}
	}
	if failed {
		return errSomeFilesFailed
	}
	return nil
}

// NewCmd runs the JSON creation wizard.
type NewCmd struct{}

// Run executes the new command.
func (c *NewCmd) Run(app *App) error {
	return wizard.New(app.Stdin, app.Stdout, app.Config, app.Logger).Run(app.Ctx)
}

// GuideCmd prints the usage guide.
type GuideCmd struct{}

// Run executes the guide command.
func (c *GuideCmd) Run(app *App) error {
	_, err := io.WriteString(app.Stdout, guideText)
	return err
}

// VersionCmd prints the version.
type VersionCmd struct{}

// Run executes the version command.
func (c *VersionCmd) Run(app *App) error {
	_, err := fmt.Fprintf(app.Stdout, "%s version %s\n", config.AppName, Version)
	return err
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run parses args, executes the selected command and returns the exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var cliArgs CLI
	parser, err := kong.New(&cliArgs,
		kong.Name(config.AppName),
		kong.Description("Inspect the top-level values of a JSON file"),
		kong.Writers(stdout, stderr),
	)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}

	// Parse the command line arguments
	kctx, err := parser.Parse(legacyArgs(args))
	if err != nil {
		parser.Errorf("%s", err)
		fmt.Fprintf(stderr, "\nFor help, run: %s --help\n", config.AppName)
		return 1
	}

	cfg, err := loadConfig(cliArgs.Globals)
	if err != nil {
		fmt.Fprintf(stderr, "%s\n", errors.UserFriendlyError(err))
		return 1
	}

	logger := logging.New(stderr, cfg.Dev.Debug, cfg.Dev.LogLevel)
	logger.Debug("starting", "command", kctx.Command(), "log_dir", cfg.LogDir(), "log_enabled", cfg.Log.Enabled)

	app := &App{
		Ctx:    ctx,
		Config: cfg,
		Logger: logger,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	err = kctx.Run(app)
	switch {
	case err == nil:
		return 0
	case stderrors.Is(err, context.Canceled):
		fmt.Fprintln(stderr)
		return 130
	case stderrors.Is(err, errSomeFilesFailed):
		return 1
	default:
		fmt.Fprintf(stderr, "%s\n", errors.UserFriendlyError(err))
		return 1
	}
}

// loadConfig finds the config file and applies flag overrides.
func loadConfig(g Globals) (*config.Config, error) {
	path := g.Config
	if path == "" {
		path = config.FindConfigFile()
	}
	return config.LoadConfigWithCLI(path, config.CLIOverrides{
		LogDir:   g.LogDir,
		NoLog:    g.NoLog,
		Markdown: g.Markdown,
		Top:      g.Top,
		Debug:    g.Debug,
	})
}

// legacyArgs maps the single-dash switches of earlier releases onto commands.
func legacyArgs(args []string) []string {
	if len(args) == 0 {
		return args
	}
	out := append([]string(nil), args...)
	switch out[0] {
	case "-easyhelp":
		out[0] = "guide"
	case "-newjson":
		out[0] = "new"
	}
	return out
}
