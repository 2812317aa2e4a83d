package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatRaw  = "raw"
)

func checkFormat(format string) error {
	switch format {
	case formatJSON, formatYAML, formatRaw:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want json, yaml or raw)", format)
	}
}

// render writes v in the given format. Raw writes strings and byte slices
// untouched and falls back to JSON for anything else.
func render(w io.Writer, format string, v any) error {
	if v == nil {
		return nil
	}

	switch format {
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case formatRaw:
		switch s := v.(type) {
		case string:
			_, err := io.WriteString(w, s)
			return err
		case []byte:
			_, err := w.Write(s)
			return err
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
