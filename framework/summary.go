package framework

import (
	"fmt"
	"io"

	"github.com/ryanuber/columnize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func writeSummary(w io.Writer, report *Report, quiet bool) error {
	if !quiet && len(report.Cases) != 0 {
		if _, err := fmt.Fprintf(w, "\n%s\n", formatCases(report.Cases)); err != nil {
			return err
		}
	}

	p := message.NewPrinter(language.English)
	_, err := p.Fprintf(w, "\nchecked: %d, passed: %d, total weight: %.2f, weighted score: %.3f (%.1f%%)\n",
		report.Checked, report.Passed, report.TotalWeight, report.WeightedScore, report.Percent())
	return err
}

func formatCases(cases []*CaseReport) string {
	rows := make([]string, len(cases)+1)
	rows[0] = "Case|Weight|Checked|Passed|Weighted|Outcome"
	for i, c := range cases {
		rows[i+1] = fmt.Sprintf("%s|%g|%d|%d|%.3f|%s",
			c.Name,
			c.Weight,
			c.Checked,
			c.Passed,
			c.Weighted,
			c.Outcome,
		)
	}

	columnConf := columnize.DefaultConfig()
	columnConf.Empty = "<none>"
	return columnize.Format(rows, columnConf)
}
