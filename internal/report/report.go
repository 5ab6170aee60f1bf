// Package report writes run reports as canonical JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"
	"github.com/umbracle/scorecard/framework"
)

// Marshal encodes the report in the RFC 8785 canonical form: sorted keys,
// no insignificant whitespace and normalized numbers.
func Marshal(r *framework.Report) ([]byte, error) {
	raw, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	canon, err := jsoncanonicalizer.Transform(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize report: %w", err)
	}
	return canon, nil
}

// Write encodes the report into w followed by a newline
func Write(w io.Writer, r *framework.Report) error {
	data, err := Marshal(r)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// WriteFile writes the report to path, creating the parent directories
func WriteFile(path string, r *framework.Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
