package output

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
)

// WriteJSON writes v as pretty-printed JSON to the writer.
func WriteJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON output: %w", err)
	}
	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("writing JSON output: %w", err)
	}
	_, err = w.Write([]byte("\n"))
	return err
}

// WriteVariable writes a single variable value to the writer.
func WriteVariable(w io.Writer, variables map[string]string, name string) error {
	val, ok := variables[name]
	if !ok {
		return fmt.Errorf("unknown variable %q (see --variables)", name)
	}
	_, err := fmt.Fprintln(w, val)
	return err
}

// WriteAll writes every variable as NAME=value, sorted by name.
func WriteAll(w io.Writer, variables map[string]string) error {
	for _, name := range slices.Sorted(maps.Keys(variables)) {
		if _, err := fmt.Fprintf(w, "%s=%s\n", name, variables[name]); err != nil {
			return fmt.Errorf("writing variable %s: %w", name, err)
		}
	}
	return nil
}
