package dumpy

import (
	htmltemplate "html/template"
	"strings"
	"testing"
	texttemplate "text/template"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderText(t *testing.T, d *Dumper, src string, data any) (string, error) {
	t.Helper()
	tmpl, err := texttemplate.New("test").Funcs(d.FuncMap()).Parse(src)
	require.NoError(t, err)
	var sb strings.Builder
	err = tmpl.Execute(&sb, data)
	return sb.String(), err
}

func renderHTML(t *testing.T, d *Dumper, src string, data any) (string, error) {
	t.Helper()
	tmpl, err := htmltemplate.New("test").Funcs(d.HTMLFuncMap()).Parse(src)
	require.NoError(t, err)
	var sb strings.Builder
	err = tmpl.Execute(&sb, data)
	return sb.String(), err
}

func TestFuncMapPipeline(t *testing.T) {
	d := New()
	data := map[string]any{"v": []int{1, 2, 3}}

	out, err := renderText(t, d, `{{ .v | dumpy 0 }}`, data)
	require.NoError(t, err)
	assert.Contains(t, out, "3 of []int")
	assert.True(t, strings.HasPrefix(out, "<pre>"))

	out, err = renderText(t, d, `{{ dumpy .v }}`, data)
	require.NoError(t, err)
	assert.Contains(t, out, "- (int) 1")

	out, err = renderText(t, d, `{{ pre "x" }}|{{ dump 1 }}`, nil)
	require.NoError(t, err)
	assert.Equal(t, "<pre>x</pre>|<pre>(int) 1\n</pre>", out)
}

func TestFuncMapErrors(t *testing.T) {
	d := New()

	_, err := renderText(t, d, `{{ dumpy }}`, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing value to filter")

	_, err = renderText(t, d, `{{ .v | dumpy 1 2 }}`, map[string]any{"v": 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too many arguments")
}

func TestFuncMapNilValue(t *testing.T) {
	out, err := renderText(t, New(), `{{ .missing | dumpy }}`, map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, "<pre>null\n</pre>", out)
}

func TestHTMLFuncMapEscapes(t *testing.T) {
	d := New()
	data := map[string]any{"page": map[string]string{"body": "<script>alert(1)</script>"}}

	out, err := renderHTML(t, d, `<div>{{ .page | dumpy }}</div>`, data)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<div><pre>"), "dump is inserted as HTML: %s", out)
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")

	out, err = renderHTML(t, d, `{{ pre .s }}`, map[string]any{"s": "<i>"})
	require.NoError(t, err)
	assert.Equal(t, "<pre>&lt;i&gt;</pre>", out)

	out, err = renderHTML(t, d, `{{ pre .s }}`, map[string]any{"s": htmltemplate.HTML("<i>ok</i>")})
	require.NoError(t, err)
	assert.Equal(t, "<pre><i>ok</i></pre>", out)
}

func TestHTMLFuncMapCustomFilter(t *testing.T) {
	d := New()
	d.AddFilter("bold", func(val any, args ...any) (any, error) {
		return "<b>" + stringify(val) + "</b>", nil
	})

	out, err := renderHTML(t, d, `{{ bold "x" }}`, nil)
	require.NoError(t, err)
	assert.Equal(t, "&lt;b&gt;x&lt;/b&gt;", out)
}

func TestHTMLFuncMapObjectLabel(t *testing.T) {
	out, err := renderHTML(t, New(), `{{ .post | dumpy 1 }}`, map[string]any{"post": samplePost()})
	require.NoError(t, err)
	assert.Contains(t, out, `<span title=`)
	assert.Contains(t, out, `github.com/brother79/dumpy.Post`)
	assert.Contains(t, out, `>Post</span>`)
}
