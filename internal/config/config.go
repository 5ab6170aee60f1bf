// Package config loads the YAML configuration of the run command.
package config

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

//go:embed config.schema.json
var schemaFS embed.FS

const schemaName = "config.schema.json"

var (
	compiled   *jsonschema.Schema
	compileErr error
	compileMu  sync.Once
)

const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is the configuration of a run
type Config struct {
	LogLevel      string `yaml:"log_level"`
	LogFile       string `yaml:"log_file"`
	Report        string `yaml:"report"`
	LenientPanics bool   `yaml:"lenient_panics"`
	Quiet         bool   `yaml:"quiet"`
	Color         string `yaml:"color"`
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Color:    ColorAuto,
	}
}

// LoadFile reads the YAML file at path on top of the default config
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	config, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

// Parse validates the YAML document and decodes it on top of the defaults
func Parse(data []byte) (*Config, error) {
	if err := validate(data); err != nil {
		return nil, err
	}
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return config, nil
}

func validate(data []byte) error {
	schema, err := compileSchema()
	if err != nil {
		return err
	}

	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("invalid YAML: %w", err)
	}
	if doc == nil {
		// empty document
		return nil
	}

	// round trip through JSON so the validator sees JSON types
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := schema.Validate(inst); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

func compileSchema() (*jsonschema.Schema, error) {
	compileMu.Do(func() {
		data, err := schemaFS.ReadFile(schemaName)
		if err != nil {
			compileErr = fmt.Errorf("read config schema: %w", err)
			return
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
		if err != nil {
			compileErr = fmt.Errorf("unmarshal config schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaName, doc); err != nil {
			compileErr = fmt.Errorf("add config schema resource: %w", err)
			return
		}
		compiled, compileErr = compiler.Compile(schemaName)
	})
	return compiled, compileErr
}
