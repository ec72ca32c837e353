package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"
	"k8s.io/apimachinery/pkg/runtime"
	"sigs.k8s.io/yaml"

	"github.com/flowbuilder/flow/pkg/engine/params"
	"github.com/flowbuilder/flow/pkg/engine/task"
	"github.com/flowbuilder/flow/pkg/flowctl/env"
)

func taskContext() task.Context {
	return task.Context{
		Context: context.Background(),
		Clients: env.GetResolver(&Settings),
	}
}

// readBody loads a YAML or JSON Job manifest into its mapping representation.
func readBody(fs afero.Fs, path string) (params.Body, error) {
	if path == "" {
		return nil, errors.New("a Job manifest must be provided with -f")
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("could not read manifest %q: %v", path, err)
	}

	body := params.Body{}
	if err := yaml.Unmarshal(data, &body); err != nil {
		return nil, fmt.Errorf("could not parse manifest %q: %v", path, err)
	}
	return body, nil
}

// parseAPIOptions parses raw "key=value" option strings into an option map.
// Splitting happens after the first delimiter to support '=' in values.
func parseAPIOptions(raw []string) (params.Options, error) {
	options := params.Options{}
	var errs []string

	for _, a := range raw {
		s := strings.SplitN(a, "=", 2)
		if len(s) < 2 {
			errs = append(errs, fmt.Sprintf("option not set: %+v", a))
			continue
		}
		if s[0] == "" {
			errs = append(errs, fmt.Sprintf("option name can not be empty: %+v", a))
			continue
		}
		options[s[0]] = s[1]
	}

	if errs != nil {
		return nil, errors.New(strings.Join(errs, ", "))
	}
	return options, nil
}

// printObject writes obj to out in the requested format, yaml by default.
func printObject(out io.Writer, obj runtime.Object, format string) error {
	var data []byte
	var err error

	switch format {
	case "", "yaml":
		data, err = yaml.Marshal(obj)
	case "json":
		data, err = json.MarshalIndent(obj, "", "  ")
	default:
		return fmt.Errorf("invalid output format %q, only yaml|json are supported", format)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(out, string(data))
	return nil
}
