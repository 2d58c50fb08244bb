package main

import (
	"fmt"
	htmltemplate "html/template"
	"io"
	"os"
	"path/filepath"
	texttemplate "text/template"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type renderOptions struct {
	dataPath string
	html     bool
}

func (c *cli) renderCmd() *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render <template>",
		Short: "Render a Go template with the dumpy filters",
		Long: `Renders a text/template file with pre, dump and dumpy available as
functions. With --html the template is parsed as html/template and the
filters produce escaped HTML.

Example:
  dumpy render page.tmpl --data context.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.dataPath, "data", "", "YAML or JSON file with the template context")
	cmd.Flags().BoolVar(&opts.html, "html", false, "Parse the template as html/template")
	return cmd
}

func (c *cli) runRender(cmd *cobra.Command, path string, opts renderOptions) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read template: %w", err)
	}

	var data any
	if opts.dataPath != "" {
		f, err := os.Open(opts.dataPath)
		if err != nil {
			return fmt.Errorf("failed to open data: %w", err)
		}
		defer f.Close()
		if data, err = decodeDocument(f); err != nil {
			return fmt.Errorf("failed to decode %s: %w", opts.dataPath, err)
		}
	}

	c.logger.Debug("rendering template",
		zap.String("template", path),
		zap.String("data", opts.dataPath),
		zap.Bool("html", opts.html))

	name := filepath.Base(path)
	d := c.dumper(opts.html)
	out := cmd.OutOrStdout()
	if opts.html {
		tmpl, err := htmltemplate.New(name).Funcs(d.HTMLFuncMap()).Parse(string(src))
		if err != nil {
			return fmt.Errorf("failed to parse template: %w", err)
		}
		return execute(tmpl, out, data)
	}
	tmpl, err := texttemplate.New(name).Funcs(d.FuncMap()).Parse(string(src))
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return execute(tmpl, out, data)
}

type executor interface {
	Execute(w io.Writer, data any) error
}

func execute(tmpl executor, w io.Writer, data any) error {
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}
	return nil
}
