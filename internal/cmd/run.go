package cmd

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/umbracle/scorecard/framework"
	"github.com/umbracle/scorecard/internal/config"
	"github.com/umbracle/scorecard/internal/logfile"
	"github.com/umbracle/scorecard/internal/report"
)

const (
	exitFailure     = 1
	exitConfigError = 2
)

// RunCommand is the command to run the registered cases
type RunCommand struct {
	*Meta
}

// Help implements the cli.Command interface
func (c *RunCommand) Help() string {
	return `Usage: scorecard run [options]

  Run every registered case in name order and print the weighted score.

Options:

  -config=<path>       YAML configuration file
  -log-level=<level>   Log level (trace, debug, info, warn, error, off)
  -log-file=<path>     Copy the diagnostics and the report to a file
  -report=<path>       Write the report as canonical JSON
  -lenient-panics      Count panics of an unexpected kind as passed
  -quiet               Do not print the per-case table
  -color=<mode>        auto, always or never`
}

// Synopsis implements the cli.Command interface
func (c *RunCommand) Synopsis() string {
	return "Run the registered cases"
}

// Run implements the cli.Command interface
func (c *RunCommand) Run(args []string) int {
	conf, err := c.readConfig(args)
	if err != nil {
		c.UI.Error(fmt.Sprintf("failed to read config: %v", err))
		return exitConfigError
	}
	ui := c.coloredUI(conf.Color)

	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "scorecard",
		Level:  hclog.LevelFromString(conf.LogLevel),
		Output: os.Stderr,
	})

	out := &uiWriter{ui: ui}
	runnerConfig := framework.DefaultConfig()
	runnerConfig.Output = out
	runnerConfig.Logger = logger
	runnerConfig.LenientPanics = conf.LenientPanics
	runnerConfig.Quiet = conf.Quiet

	files := &logfile.Files{}
	defer func() {
		if err := files.Close(); err != nil {
			logger.Error("failed to close log file", "err", err)
		}
	}()
	if conf.LogFile != "" {
		w, err := files.Create(conf.LogFile)
		if err != nil {
			ui.Error(fmt.Sprintf("failed to open log file: %v", err))
			return exitFailure
		}
		runnerConfig.Log = w
	}

	res := framework.NewRunner(c.Registry, runnerConfig).Run()
	out.Flush()

	if conf.Report != "" {
		if err := report.WriteFile(conf.Report, res); err != nil {
			ui.Error(fmt.Sprintf("failed to write report: %v", err))
			return exitFailure
		}
		logger.Info("report written", "path", conf.Report)
	}
	if err := res.Err(); err != nil {
		ui.Warn(err.Error())
	}

	ui.Output(verdict(res, conf.Color))
	return res.ExitCode()
}

func (c *RunCommand) readConfig(args []string) (*config.Config, error) {
	var configPath string
	override := config.DefaultConfig()

	flags := c.FlagSet("run")
	flags.Usage = func() { c.UI.Error(c.Help()) }

	flags.StringVar(&configPath, "config", "", "")
	flags.StringVar(&override.LogLevel, "log-level", override.LogLevel, "")
	flags.StringVar(&override.LogFile, "log-file", "", "")
	flags.StringVar(&override.Report, "report", "", "")
	flags.BoolVar(&override.LenientPanics, "lenient-panics", false, "")
	flags.BoolVar(&override.Quiet, "quiet", false, "")
	flags.StringVar(&override.Color, "color", override.Color, "")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	conf := config.DefaultConfig()
	if configPath != "" {
		var err error
		if conf, err = config.LoadFile(configPath); err != nil {
			return nil, err
		}
	}

	// flags set explicitly win over the file
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "log-level":
			conf.LogLevel = override.LogLevel
		case "log-file":
			conf.LogFile = override.LogFile
		case "report":
			conf.Report = override.Report
		case "lenient-panics":
			conf.LenientPanics = override.LenientPanics
		case "quiet":
			conf.Quiet = override.Quiet
		case "color":
			conf.Color = override.Color
		}
	})

	switch conf.Color {
	case config.ColorAuto, config.ColorAlways, config.ColorNever:
	default:
		return nil, fmt.Errorf("unknown color mode %q", conf.Color)
	}
	return conf, nil
}

func verdict(res *framework.Report, mode string) string {
	word, attr := "PASS", color.FgGreen
	if !res.Success() {
		word, attr = "FAIL", color.FgRed
	}
	col := color.New(attr, color.Bold)
	switch mode {
	case config.ColorNever:
		col.DisableColor()
	case config.ColorAlways:
		col.EnableColor()
	}
	return fmt.Sprintf("%s (%d/%d checks, %.1f%%)", col.Sprint(word), res.Passed, res.Checked, res.Percent())
}

// uiWriter forwards complete lines written by the runner to the ui
type uiWriter struct {
	ui  cli.Ui
	buf bytes.Buffer
}

func (w *uiWriter) Write(p []byte) (int, error) {
	w.buf.Write(p)
	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			// keep the partial line for the next write
			w.buf.Reset()
			w.buf.WriteString(line)
			break
		}
		w.ui.Output(line[:len(line)-1])
	}
	return len(p), nil
}

// Flush outputs a trailing partial line, if any
func (w *uiWriter) Flush() {
	if w.buf.Len() != 0 {
		w.ui.Output(w.buf.String())
		w.buf.Reset()
	}
}
