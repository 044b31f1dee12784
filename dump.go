package seam

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// DumpOption configures dump behavior using the functional options pattern.
type DumpOption func(*dumpConfig)

// dumpConfig holds options for Dump.
type dumpConfig struct {
	asJSON bool   // Output as JSON instead of text format
	indent string // Indentation for JSON output (default: "  ")
}

// AsJSON outputs the override state as JSON instead of text format.
func AsJSON() DumpOption {
	return func(cfg *dumpConfig) {
		cfg.asJSON = true
	}
}

// WithIndent sets the indentation for JSON output.
// Default is two spaces ("  ").
func WithIndent(indent string) DumpOption {
	return func(cfg *dumpConfig) {
		cfg.indent = indent
	}
}

// Summarizer lets a substitute describe itself in dumps. The fake
// implementations all provide one; a substitute that doesn't is reported
// by its Go type.
type Summarizer interface {
	// Summary returns coarse state (counts, flags), never stored values.
	Summary() map[string]any
}

// Dump writes a human-readable report of the container's override state:
// which boundary kinds are active, in activation order, with each
// substitute's summary. Debug aid for failing tests.
func Dump(w io.Writer, b *Boundaries, opts ...DumpOption) error {
	if b == nil {
		return ErrNilBoundaries
	}

	// Apply options
	config := dumpConfig{
		indent: "  ", // Default indent
	}
	for _, opt := range opts {
		opt(&config)
	}

	kinds := b.ActiveKinds()
	summaries := make(map[Kind]map[string]any, len(kinds))
	for _, kind := range kinds {
		sub, ok := b.ledger.Active(kind)
		if !ok {
			continue
		}
		if s, ok := sub.(Summarizer); ok {
			summaries[kind] = s.Summary()
		} else {
			summaries[kind] = map[string]any{"type": fmt.Sprintf("%T", sub)}
		}
	}

	if config.asJSON {
		return dumpAsJSON(w, kinds, summaries, config)
	}
	return dumpAsText(w, kinds, summaries)
}

// dumpAsText outputs the override state in text format.
func dumpAsText(w io.Writer, kinds []Kind, summaries map[Kind]map[string]any) error {
	var b strings.Builder

	if len(kinds) == 0 {
		b.WriteString("active: none\n")
	} else {
		names := make([]string, len(kinds))
		for i, kind := range kinds {
			names[i] = string(kind)
		}
		fmt.Fprintf(&b, "active: %s\n", strings.Join(names, ", "))
	}

	for _, kind := range kinds {
		fmt.Fprintf(&b, "%s:\n", kind)

		summary := summaries[kind]
		keys := make([]string, 0, len(summary))
		for k := range summary {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "  %s: %v\n", k, summary[k])
		}
	}

	if _, err := w.Write([]byte(b.String())); err != nil {
		return fmt.Errorf("write error: %w", err)
	}
	return nil
}

// dumpAsJSON outputs the override state as JSON.
func dumpAsJSON(w io.Writer, kinds []Kind, summaries map[Kind]map[string]any, config dumpConfig) error {
	report := struct {
		Active     []Kind                  `json:"active"`
		Boundaries map[Kind]map[string]any `json:"boundaries,omitempty"`
	}{
		Active:     kinds,
		Boundaries: summaries,
	}
	if len(report.Active) == 0 {
		report.Active = []Kind{}
	}

	var data []byte
	var err error
	if config.indent != "" {
		data, err = json.MarshalIndent(report, "", config.indent)
	} else {
		data, err = json.Marshal(report)
	}
	if err != nil {
		return fmt.Errorf("json marshal error: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write error: %w", err)
	}

	// Add newline for better formatting
	if _, err := w.Write([]byte("\n")); err != nil {
		return fmt.Errorf("write error: %w", err)
	}

	return nil
}
