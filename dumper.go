package dumpy

import (
	"html"
	"sort"
	"sync"

	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"

	"github.com/brother79/dumpy/encode"
	"github.com/brother79/dumpy/node"
	"github.com/brother79/dumpy/sanitize"
)

// FilterFunc is the signature for filter functions.
// It receives the filtered value and the filter arguments.
type FilterFunc func(val any, args ...any) (any, error)

type filter struct {
	text FilterFunc
	// html is the variant used in html/template; nil means the text result
	// is escaped by the template engine.
	html FilterFunc
}

// Option configures a Dumper.
type Option func(*Dumper)

// WithConfig sets the configuration.
func WithConfig(cfg Config) Option {
	return func(d *Dumper) {
		d.cfg = cfg
	}
}

// WithLogger sets the logger used for recovered faults and encoder errors.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Dumper) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithInlineThreshold replaces the depth to inline-level mapping.
func WithInlineThreshold(f encode.ThresholdFunc) Option {
	return func(d *Dumper) {
		if f != nil {
			d.threshold = f
		}
	}
}

// Dumper sanitizes and renders values. It is built once and safe for
// concurrent use; registering filters is guarded by a mutex.
type Dumper struct {
	cfg       Config
	logger    *zap.Logger
	threshold encode.ThresholdFunc

	sanitizer *sanitize.Sanitizer
	plain     *encode.Encoder
	escaped   *encode.Encoder
	spew      *spew.ConfigState

	filtersMu sync.RWMutex
	filters   map[string]filter
}

// New creates a Dumper with the default filters registered.
func New(opts ...Option) *Dumper {
	d := &Dumper{
		cfg:       DefaultConfig(),
		logger:    zap.NewNop(),
		threshold: encode.InlineThreshold,
		filters:   make(map[string]filter),
	}
	for _, opt := range opts {
		opt(d)
	}

	d.sanitizer = sanitize.New(d.cfg.Policy(), d.logger.Named("sanitize"))
	d.plain = encode.New(encode.Options{Indent: d.cfg.Indent})
	d.escaped = encode.New(encode.Options{Indent: d.cfg.Indent, HTML: true})
	d.spew = &spew.ConfigState{
		Indent:                  "  ",
		DisableMethods:          true,
		DisablePointerAddresses: true,
		DisableCapacities:       true,
		SortKeys:                true,
	}

	registerDefaultFilters(d)
	return d
}

// Config returns the configuration the Dumper was built with.
func (d *Dumper) Config() Config {
	return d.cfg
}

// Sanitize converts v into a node tree bounded by depth. Depth is clamped
// to Config.MaxDepthLimit.
func (d *Dumper) Sanitize(v any, depth int) node.Node {
	return d.sanitizer.Sanitize(v, d.cfg.clampDepth(depth))
}

// YAMLDump sanitizes v to the given depth and encodes the result. Negative
// depths count as zero and depths above Config.MaxDepthLimit as the limit.
func (d *Dumper) YAMLDump(v any, depth int) string {
	return d.yaml(v, depth, d.cfg.HTML)
}

// Dumpy is YAMLDump wrapped for display.
func (d *Dumper) Dumpy(v any, depth int) string {
	return Pre(d.YAMLDump(v, depth))
}

// Dump prints the complete structure of v without a depth limit. Cycles are
// detected and marked.
func (d *Dumper) Dump(v any) string {
	return d.raw(v, d.cfg.HTML)
}

// PreDump is Dump wrapped for display.
func (d *Dumper) PreDump(v any) string {
	return Pre(d.Dump(v))
}

func (d *Dumper) yaml(v any, depth int, escape bool) string {
	depth = d.cfg.clampDepth(depth)
	enc := d.plain
	if escape {
		enc = d.escaped
	}
	n := d.sanitizer.Sanitize(v, depth)
	out, err := enc.Encode(n, d.threshold(depth))
	if err != nil {
		err = NewError(ErrEncode, "cannot render sanitized value").WithCause(err)
		d.logger.Error("dump failed",
			zap.String("kind", n.Kind().String()),
			zap.Int("depth", depth),
			zap.Error(err))
		out = err.Error()
		if escape {
			out = html.EscapeString(out)
		}
	}
	return out
}

func (d *Dumper) raw(v any, escape bool) string {
	out := d.spew.Sdump(v)
	if escape {
		out = html.EscapeString(out)
	}
	return out
}

// AddFilter registers a filter function. Registering an existing name
// replaces the filter.
func (d *Dumper) AddFilter(name string, f FilterFunc) {
	d.addFilter(name, filter{text: f})
}

func (d *Dumper) addFilter(name string, f filter) {
	d.filtersMu.Lock()
	d.filters[name] = f
	d.filtersMu.Unlock()
}

func (d *Dumper) getFilter(name string) (filter, bool) {
	d.filtersMu.RLock()
	defer d.filtersMu.RUnlock()
	f, ok := d.filters[name]
	return f, ok
}

// Filter returns the filter registered under name.
func (d *Dumper) Filter(name string) (FilterFunc, error) {
	f, ok := d.getFilter(name)
	if !ok {
		return nil, NewError(ErrUnknownFilter, name)
	}
	return f.text, nil
}

// Filters returns the registered filter names in sorted order.
func (d *Dumper) Filters() []string {
	d.filtersMu.RLock()
	names := make([]string, 0, len(d.filters))
	for name := range d.filters {
		names = append(names, name)
	}
	d.filtersMu.RUnlock()
	sort.Strings(names)
	return names
}

// Apply runs the named filter on val.
func (d *Dumper) Apply(name string, val any, args ...any) (any, error) {
	f, err := d.Filter(name)
	if err != nil {
		return nil, err
	}
	return f(val, args...)
}
