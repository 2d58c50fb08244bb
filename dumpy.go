// Package dumpy renders arbitrary Go values for debugging templates.
//
// A value is sanitized into a bounded tree and encoded as YAML, so a page
// can show what a template variable holds without risking runaway output
// on large or cyclic object graphs.
//
// # Quick Start
//
// Basic usage:
//
//	d := dumpy.New()
//	fmt.Println(d.YAMLDump(user, 2))
//
// # Templates
//
// The filters pre, dump and dumpy are available to text/template and
// html/template:
//
//	tmpl := template.Must(template.New("page").Funcs(d.HTMLFuncMap()).Parse(
//	    `{{ .User | dumpy 2 }}`))
//
// dumpy takes an optional depth budget, defaulting to Config.MaxDepth.
// dump prints the complete structure without a limit and pre only wraps its
// input in a <pre> block.
//
// # Objects
//
// Objects are described through their accessors: methods whose names start
// with Get, Has or Is (in any case), plus exported fields. Accessors taking
// arguments are listed by signature but not called. Types can take control
// of what is shown by implementing Inspectable, and collections of their own
// by implementing Iterable.
//
// Accessors that panic or return an error are shown as their failure
// message; a dump never fails because of the value being dumped.
//
// # Depth
//
// Past the depth budget an object is reduced to a one-line summary of its
// type name, its ID accessor and its String method, and a container to its
// element count. Every container shows at most Config.ContainerCap
// elements.
//
// # Configuration
//
// Config is read from DUMPY_* environment variables and optionally a YAML
// file:
//
//	cfg, err := dumpy.LoadConfig("dumpy.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	d := dumpy.New(dumpy.WithConfig(cfg), dumpy.WithLogger(logger))
package dumpy

import (
	"sync"

	"github.com/brother79/dumpy/introspect"
)

// Capability interfaces from the introspect package.
type (
	Inspectable = introspect.Inspectable
	Iterable    = introspect.Iterable
	Accessor    = introspect.Accessor
)

var defaultDumper = sync.OnceValue(func() *Dumper {
	return New()
})

// Default returns a shared Dumper with the default configuration.
func Default() *Dumper {
	return defaultDumper()
}
