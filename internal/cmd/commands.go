package cmd

import (
	"flag"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/mitchellh/cli"
	"github.com/ryanuber/columnize"
	"github.com/umbracle/scorecard/framework"
)

// Commands returns the cli commands
func Commands() map[string]cli.CommandFactory {
	ui := &cli.BasicUi{
		Reader:      os.Stdin,
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
	}

	meta := &Meta{
		UI:       ui,
		Registry: framework.Default(),
	}

	return map[string]cli.CommandFactory{
		"run": func() (cli.Command, error) {
			return &RunCommand{
				Meta: meta,
			}, nil
		},
		"list": func() (cli.Command, error) {
			return &ListCommand{
				Meta: meta,
			}, nil
		},
		"version": func() (cli.Command, error) {
			return &VersionCommand{
				UI: ui,
			}, nil
		},
	}
}

type Meta struct {
	UI       cli.Ui
	Registry *framework.Registry
}

func (m *Meta) FlagSet(n string) *flag.FlagSet {
	f := flag.NewFlagSet(n, flag.ContinueOnError)
	f.Usage = func() {}
	return f
}

// coloredUI wraps the ui with colors if enabled by mode
func (m *Meta) coloredUI(mode string) cli.Ui {
	switch mode {
	case "never":
		return m.UI
	case "auto":
		if !isatty.IsTerminal(os.Stdout.Fd()) {
			return m.UI
		}
	}
	return &cli.ColoredUi{
		ErrorColor: cli.UiColorRed,
		WarnColor:  cli.UiColorYellow,
		Ui:         m.UI,
	}
}

func formatList(in []string) string {
	columnConf := columnize.DefaultConfig()
	columnConf.Empty = "<none>"
	return columnize.Format(in, columnConf)
}

func formatKV(in []string) string {
	columnConf := columnize.DefaultConfig()
	columnConf.Empty = "<none>"
	columnConf.Glue = " = "
	return columnize.Format(in, columnConf)
}
