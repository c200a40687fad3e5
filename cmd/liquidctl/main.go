// Command liquidctl renders a Liquid template file against a YAML or JSON
// context file and prints the result — the "embedding API" the core spec
// treats as external (§6), exercised here end to end.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/gotemplates/liquid"
	"github.com/gotemplates/liquid/filters"
	"github.com/juju/loggo"
	"gopkg.in/yaml.v2"
)

func _main(args []string) error {
	if len(args) < 2 {
		return errors.New("liquidctl: usage: liquidctl template.liquid [context.yaml]")
	}
	templatePath := args[1]

	tmplBytes, err := os.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("reading template: %w", err)
	}

	root := map[string]*liquid.Value{}
	if len(args) >= 3 {
		root, err = loadContext(args[2])
		if err != nil {
			return fmt.Errorf("reading context: %w", err)
		}
	}

	if os.Getenv("LIQUIDCTL_DEBUG") != "" {
		loggo.GetLogger("liquid").SetLogLevel(loggo.DEBUG)
	}

	e := liquid.NewEngine()
	filters.Register(e)

	out, ctx, err := e.Render(templatePath, string(tmplBytes), root)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", templatePath, err)
	}
	for _, perr := range ctx.ParseErrors() {
		fmt.Fprintf(os.Stderr, "liquidctl: %v\n", perr)
	}

	fmt.Print(out)
	return nil
}

// loadContext decodes a YAML (or JSON, a valid YAML subset) document into
// the root variable map the engine renders against.
func loadContext(path string) (map[string]*liquid.Value, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	root := make(map[string]*liquid.Value, len(doc))
	for k, v := range doc {
		root[k] = liquid.FromInterface(normalizeYAML(v))
	}
	return root, nil
}

// normalizeYAML recursively converts yaml.v2's map[interface{}]interface{}
// decoding result into map[string]any, which liquid.FromInterface expects.
func normalizeYAML(v any) any {
	switch val := v.(type) {
	case map[interface{}]interface{}:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = normalizeYAML(item)
		}
		return out
	case []interface{}:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeYAML(item)
		}
		return out
	default:
		return v
	}
}

func main() {
	if err := _main(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
