// Package ux holds the CLI's output formatting and interactive prompts.
package ux

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Formatter writes structured command output in the selected format.
type Formatter interface {
	Format(data any) error
}

// FormatterOptions configures a formatter.
type FormatterOptions struct {
	// Writer is where output goes (defaults to stdout).
	Writer io.Writer
	// Compact disables indentation for JSON output.
	Compact bool
}

// NewFormatter creates a formatter for "json" or "yaml". Text rendering is
// handled by the commands themselves via Styles.
func NewFormatter(format string, opts *FormatterOptions) (Formatter, error) {
	if opts == nil {
		opts = &FormatterOptions{}
	}
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}

	switch format {
	case "json":
		return &jsonFormatter{opts: opts}, nil
	case "yaml":
		return &yamlFormatter{opts: opts}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s (supported: text, json, yaml)", format)
	}
}

type jsonFormatter struct {
	opts *FormatterOptions
}

func (f *jsonFormatter) Format(data any) error {
	encoder := json.NewEncoder(f.opts.Writer)
	if !f.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(data)
}

type yamlFormatter struct {
	opts *FormatterOptions
}

func (f *yamlFormatter) Format(data any) error {
	encoder := yaml.NewEncoder(f.opts.Writer)
	encoder.SetIndent(2)
	defer encoder.Close()
	return encoder.Encode(data)
}
