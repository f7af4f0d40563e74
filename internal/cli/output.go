package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/johnquangdev/meetmate/pkg/config"
)

// print writes v in the configured format; text uses the presenter callback
func (s *session) print(v interface{}, text func(w io.Writer) error) error {
	format := config.OutputText
	if s.app != nil {
		format = s.app.Config.Output
	}
	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(s.deps.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case config.OutputYAML:
		return writeYAML(s.deps.Out, v)
	default:
		return text(s.deps.Out)
	}
}

// writeYAML renders v with its JSON field names and field order. The JSON
// form is parsed as a YAML node tree and re-emitted in block style.
func writeYAML(w io.Writer, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	blockStyle(&doc)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return err
	}
	return enc.Close()
}

func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}

// printf writes a text-only notice; structured formats stay parseable
func (s *session) printf(format string, args ...interface{}) {
	if s.app != nil && s.app.Config.Output != config.OutputText {
		fmt.Fprintf(s.deps.Err, format, args...)
		return
	}
	fmt.Fprintf(s.deps.Out, format, args...)
}
