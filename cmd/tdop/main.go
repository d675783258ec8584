package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"fortio.org/log"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"gopkg.in/urfave/cli.v1"

	"tdop/interpreter-go/pkg/driver"
)

const cliToolVersion = "0.1.0-dev"

var (
	debugFlag = cli.BoolFlag{
		Name:  "debug",
		Usage: "dump tokens, syntax tree and globals to stderr after each run",
	}
	configFlag = cli.StringFlag{
		Name:   "config",
		Usage:  "load settings from a .yml, .yaml or .toml `FILE`",
		EnvVar: driver.ConfigEnv,
	}
	logLevelFlag = cli.StringFlag{
		Name:  "log-level",
		Usage: "log `LEVEL` (debug, verbose, info, warning, error)",
	}
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	code := 0
	app := cli.NewApp()
	app.Name = "tdop"
	app.Usage = "run scripts, or start an interactive prompt when no file is given"
	app.UsageText = "tdop [--debug] [--config FILE] [--log-level LEVEL] [file ...]"
	app.Version = cliToolVersion
	app.Writer = stdout
	app.ErrWriter = stderr
	app.Flags = []cli.Flag{debugFlag, configFlag, logLevelFlag}
	app.Action = func(ctx *cli.Context) error {
		cfg, err := configure(ctx, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "tdop: %v\n", err)
			code = 1
			return nil
		}
		in := bufio.NewReader(stdin)
		session := driver.NewSession(in, stdout, cfg.MaxCallDepth)
		errColor := colorFor(stderr, cfg.Color)
		if ctx.NArg() > 0 {
			code = runFiles(session, ctx.Args(), cfg, stderr, errColor)
			return nil
		}
		code = runREPL(session, newLineReader(stdin, in, stdout, cfg), cfg, stdout, stderr, errColor)
		return nil
	}
	if err := app.Run(append([]string{app.Name}, args...)); err != nil {
		return 2
	}
	return code
}

// configure resolves the config file and applies flag overrides on top of it.
func configure(ctx *cli.Context, stderr io.Writer) (*driver.Config, error) {
	cfg, err := driver.ResolveConfig(ctx.String(configFlag.Name))
	if err != nil {
		return nil, err
	}
	if ctx.Bool(debugFlag.Name) {
		cfg.Debug = true
	}
	if lvl := ctx.String(logLevelFlag.Name); lvl != "" {
		cfg.LogLevel = lvl
	}
	level, err := log.ValidateLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	log.SetOutput(stderr)
	log.SetLogLevelQuiet(level)
	return cfg, nil
}

func runFiles(session *driver.Session, paths []string, cfg *driver.Config, stderr io.Writer, errColor *color.Color) int {
	for _, path := range paths {
		log.LogVf("running %s", path)
		res, err := session.RunFile(path)
		if res == nil {
			fmt.Fprintf(stderr, "tdop: %v\n", err)
			return 1
		}
		if cfg.Debug {
			dump(stderr, session, res)
		}
		if err != nil {
			errColor.Fprintln(stderr, driver.Describe(err, path, res.Source))
			return 1
		}
	}
	return 0
}

func dump(w io.Writer, session *driver.Session, res *driver.Result) {
	if res.Tokens != nil {
		driver.DumpTokens(w, res.Tokens)
	}
	driver.DumpProgram(w, res.Program, true)
	driver.DumpEnvironment(w, session)
}

// colorFor returns the diagnostic color for w. In auto mode color is used
// only when w is a terminal.
func colorFor(w io.Writer, mode string) *color.Color {
	c := color.New(color.FgRed)
	switch mode {
	case driver.ColorAlways:
		c.EnableColor()
	case driver.ColorNever:
		c.DisableColor()
	default:
		if isTerminal(w) {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return c
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
