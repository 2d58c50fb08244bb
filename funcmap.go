package dumpy

import (
	htmltemplate "html/template"
	texttemplate "text/template"
)

// FuncMap exposes the registered filters to text/template.
//
// The filtered value is the last argument so filters work in pipelines:
// {{ .User | dumpy 2 }} calls dumpy with depth 2 on .User.
func (d *Dumper) FuncMap() texttemplate.FuncMap {
	fm := texttemplate.FuncMap{}
	for _, name := range d.Filters() {
		f, _ := d.getFilter(name)
		fm[name] = templateFunc(name, f.text, nil)
	}
	return fm
}

// HTMLFuncMap exposes the registered filters to html/template. The built-in
// filters escape their input themselves and return template.HTML; results
// of other filters are escaped by the template engine as usual.
func (d *Dumper) HTMLFuncMap() htmltemplate.FuncMap {
	fm := htmltemplate.FuncMap{}
	for _, name := range d.Filters() {
		f, _ := d.getFilter(name)
		if f.html != nil {
			fm[name] = templateFunc(name, f.html, markSafe)
		} else {
			fm[name] = templateFunc(name, f.text, nil)
		}
	}
	return fm
}

func templateFunc(name string, f FilterFunc, wrap func(any) any) func(args ...any) (any, error) {
	return func(args ...any) (any, error) {
		if len(args) == 0 {
			return nil, NewError(ErrInvalidArgument, "missing value to filter").WithFilter(name)
		}
		val := args[len(args)-1]
		out, err := f(val, args[:len(args)-1]...)
		if err != nil {
			return nil, err
		}
		if wrap != nil {
			out = wrap(out)
		}
		return out, nil
	}
}

func markSafe(out any) any {
	if s, ok := out.(string); ok {
		return htmltemplate.HTML(s)
	}
	return out
}
