package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umbracle/scorecard/framework"
)

func runReport(t *testing.T) *framework.Report {
	r := framework.NewRegistry()
	require.NoError(t, r.Add(framework.NewCase("beta", func(c *framework.C) error {
		framework.Equal(c, 1, 2)
		return nil
	}, framework.WithWeight(2))))
	require.NoError(t, r.Add(framework.NewCase("alpha", func(c *framework.C) error {
		c.Check(true)
		return nil
	})))

	config := framework.DefaultConfig()
	config.Output = &bytes.Buffer{}
	return framework.NewRunner(r, config).Run()
}

func TestMarshal(t *testing.T) {
	report := runReport(t)

	data, err := Marshal(report)
	require.NoError(t, err)

	// canonical form has no whitespace and sorted keys
	assert.NotContains(t, string(data), "\n")
	assert.True(t, bytes.HasPrefix(data, []byte(`{"cases":[{"checked":1,"name":"alpha","outcome":"passed","passed":1,"score":1,"weight":1,"weighted":1}`)), string(data))

	var decoded framework.Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, report.RunID, decoded.RunID)
	assert.Equal(t, uint64(2), decoded.Checked)
	require.Len(t, decoded.Cases, 2)
	require.Len(t, decoded.Cases[1].Failures, 1)
	assert.Equal(t, framework.KindEqual, decoded.Cases[1].Failures[0].Kind)
}

func TestWriteFile(t *testing.T) {
	report := runReport(t)
	path := filepath.Join(t.TempDir(), "nested", "report.json")

	require.NoError(t, WriteFile(path, report))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	expected, err := Marshal(report)
	require.NoError(t, err)
	assert.Equal(t, append(expected, '\n'), data)
}
