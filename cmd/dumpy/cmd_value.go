package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/brother79/dumpy"
)

type valueOptions struct {
	depth int
	raw   bool
	html  bool
	noPre bool
}

func (c *cli) valueCmd() *cobra.Command {
	var opts valueOptions

	cmd := &cobra.Command{
		Use:   "value [file]",
		Short: "Dump a YAML or JSON document",
		Long: `Reads a YAML or JSON document from file, or from stdin when no file is
given, and prints it the way the dumpy filter shows template values.

Example:
  echo '{"user": {"name": "ann"}}' | dumpy value --depth 2`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValue(cmd, args, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.depth, "depth", "d", -1, "Depth budget (default from configuration)")
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "Print the complete structure without a depth limit")
	cmd.Flags().BoolVar(&opts.html, "html", false, "Escape the output for HTML")
	cmd.Flags().BoolVar(&opts.noPre, "no-pre", false, "Do not wrap the output in <pre>")
	return cmd
}

func (c *cli) runValue(cmd *cobra.Command, args []string, opts valueOptions) error {
	name := "stdin"
	var r io.Reader = cmd.InOrStdin()
	if len(args) == 1 {
		name = args[0]
		f, err := os.Open(name)
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	v, err := decodeDocument(r)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}

	d := c.dumper(opts.html)
	depth := opts.depth
	if depth < 0 {
		depth = d.Config().MaxDepth
	}
	c.logger.Debug("dumping value",
		zap.String("input", name),
		zap.Int("depth", depth),
		zap.Bool("raw", opts.raw))

	var out string
	if opts.raw {
		out = d.Dump(v)
	} else {
		out = d.YAMLDump(v, depth)
	}
	if !opts.noPre {
		out = dumpy.Pre(out) + "\n"
	}
	_, err = io.WriteString(cmd.OutOrStdout(), out)
	return err
}

// decodeDocument reads a single YAML document. JSON input is valid YAML.
// Empty input decodes to nil.
func decodeDocument(r io.Reader) (any, error) {
	var v any
	if err := yaml.NewDecoder(r).Decode(&v); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return v, nil
}
