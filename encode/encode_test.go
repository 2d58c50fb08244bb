package encode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/brother79/dumpy/node"
)

func decode(t *testing.T, out string) any {
	t.Helper()
	var v any
	require.NoError(t, yaml.Unmarshal([]byte(out), &v), "output:\n%s", out)
	return v
}

func sampleContainer() *node.Container {
	tags := node.NewContainer(node.LayoutSeq)
	tags.Append("0", node.Scalar{Text: "(string) x"})
	tags.Append("1", node.Scalar{Text: "(string) y"})

	root := node.NewContainer(node.LayoutMap)
	root.Append("a", node.Scalar{Text: "(int) 1"})
	root.Append("b", tags)
	root.Append("c", node.Null{})
	return root
}

func sampleObject() *node.Object {
	acc := &node.Accessors{}
	acc.Add("GetName()", node.Scalar{Text: "(string) bob"})
	acc.Add("HasRole(string)", nil)
	acc.Add("GetGroup()", node.Summary{Text: "app.Group #7"})
	return &node.Object{ClassName: "User", FullName: "app.User", Body: acc}
}

func TestInlineThreshold(t *testing.T) {
	assert.Equal(t, 1, InlineThreshold(0))
	assert.Equal(t, 3, InlineThreshold(1))
	assert.Equal(t, 5, InlineThreshold(2))
}

func TestEncodeBlock(t *testing.T) {
	out, err := New(Options{}).Encode(sampleContainer(), 3)
	require.NoError(t, err)

	assert.NotContains(t, out, "[")
	assert.Equal(t, map[string]any{
		"a": "(int) 1",
		"b": []any{"(string) x", "(string) y"},
		"c": nil,
	}, decode(t, out))
}

func TestEncodeFlowAtInlineLevel(t *testing.T) {
	out, err := New(Options{}).Encode(sampleContainer(), 1)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 3, "nested collections are written on their key's line:\n%s", out)
	assert.Contains(t, out, "b: [")
	assert.Equal(t, map[string]any{
		"a": "(int) 1",
		"b": []any{"(string) x", "(string) y"},
		"c": nil,
	}, decode(t, out))
}

func TestEncodeScalarRoots(t *testing.T) {
	enc := New(Options{})

	out, err := enc.Encode(node.Scalar{Text: "(int) 3"}, 1)
	require.NoError(t, err)
	assert.Equal(t, "(int) 3", strings.TrimSpace(out))

	out, err = enc.Encode(node.Null{}, 1)
	require.NoError(t, err)
	assert.Equal(t, "null", strings.TrimSpace(out))

	out, err = enc.Encode(nil, 1)
	require.NoError(t, err)
	assert.Equal(t, "null", strings.TrimSpace(out))

	out, err = enc.Encode(node.NewContainer(node.LayoutSeq), 1)
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(out))

	out, err = enc.Encode(node.Scalar{Text: "null"}, 1)
	require.NoError(t, err)
	assert.Equal(t, "null", decode(t, out), "string scalars keep their type")
}

func TestEncodeTruncation(t *testing.T) {
	seq := node.NewContainer(node.LayoutSeq)
	seq.Append("0", node.Scalar{Text: "(int) 0"})
	seq.More = "... and 5 more ..."

	out, err := New(Options{}).Encode(seq, 1)
	require.NoError(t, err)
	assert.Equal(t, []any{"(int) 0", "... and 5 more ..."}, decode(t, out))

	m := node.NewContainer(node.LayoutMap)
	m.Append("k", node.Scalar{Text: "(int) 0"})
	m.More = "... and 2 more ..."

	out, err = New(Options{}).Encode(m, 1)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"k":     "(int) 0",
		MoreKey: "... and 2 more ...",
	}, decode(t, out))
}

func TestEncodeObjectPlain(t *testing.T) {
	out, err := New(Options{}).Encode(sampleObject(), 5)
	require.NoError(t, err)

	assert.Contains(t, out, "# app.User")
	assert.Equal(t, map[string]any{
		"class": "User",
		"accessors": map[string]any{
			"GetName()":       "(string) bob",
			"HasRole(string)": NotInvoked,
			"GetGroup()":      "app.Group #7",
		},
	}, decode(t, out))

	assert.Less(t, strings.Index(out, "GetName()"), strings.Index(out, "HasRole(string)"),
		"accessors keep discovery order")
}

func TestEncodeObjectFlow(t *testing.T) {
	out, err := New(Options{}).Encode(sampleObject(), 0)
	require.NoError(t, err)

	assert.NotContains(t, out, "# app.User")
	v := decode(t, out).(map[string]any)
	assert.Equal(t, "app.User", v["class"])
}

func TestEncodeIterableObject(t *testing.T) {
	elems := node.NewContainer(node.LayoutSeq)
	elems.Append("0", node.Scalar{Text: "(int) 4"})
	obj := &node.Object{ClassName: "Bag", FullName: "app.Bag", Body: &node.Iterable{Elements: elems}}

	out, err := New(Options{}).Encode(obj, 5)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"class":    "Bag",
		"iterable": []any{"(int) 4"},
	}, decode(t, out))

	out, err = New(Options{}).Encode(&node.Object{ClassName: "Bag", Body: &node.Iterable{}}, 5)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"class": "Bag", "iterable": []any{}}, decode(t, out))
}

func TestEncodeHTML(t *testing.T) {
	acc := &node.Accessors{}
	acc.Add("GetBio()", node.Scalar{Text: `(string) <b>"hi"</b> & bye`})
	obj := &node.Object{ClassName: "Profile", FullName: "app/v2.Profile", Body: acc}

	enc := New(Options{HTML: true})
	assert.True(t, enc.HTML())

	out, err := enc.Encode(obj, 5)
	require.NoError(t, err)
	assert.NotContains(t, out, "<b>")
	assert.Equal(t, map[string]any{
		"class": `<span title="app/v2.Profile">Profile</span>`,
		"accessors": map[string]any{
			"GetBio()": "(string) &lt;b&gt;&#34;hi&#34;&lt;/b&gt; &amp; bye",
		},
	}, decode(t, out))
}

func TestEncodeIndent(t *testing.T) {
	inner := node.NewContainer(node.LayoutMap)
	inner.Append("c", node.Scalar{Text: "(int) 1"})
	root := node.NewContainer(node.LayoutMap)
	root.Append("b", inner)

	out, err := New(Options{Indent: 4}).Encode(root, 3)
	require.NoError(t, err)
	assert.Contains(t, out, "\n    c: ")

	out, err = New(Options{Indent: 0}).Encode(root, 3)
	require.NoError(t, err)
	assert.Contains(t, out, "\n  c: ")
}

func TestEncodeIdempotent(t *testing.T) {
	enc := New(Options{})
	first, err := enc.Encode(sampleObject(), 3)
	require.NoError(t, err)
	second, err := enc.Encode(sampleObject(), 3)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDocument(t *testing.T) {
	doc := New(Options{}).Document(sampleContainer(), 1)
	require.Equal(t, yaml.DocumentNode, doc.Kind)
	require.Len(t, doc.Content, 1)

	root := doc.Content[0]
	assert.Equal(t, yaml.MappingNode, root.Kind)
	assert.NotEqual(t, yaml.FlowStyle, root.Style)
	require.Len(t, root.Content, 6)
	assert.Equal(t, yaml.FlowStyle, root.Content[3].Style)
}

func TestEncodeInvalidUTF8(t *testing.T) {
	m := node.NewContainer(node.LayoutMap)
	m.Append("k\xff", node.Scalar{Text: "(string) hi\xff"})
	m.Append("ok", node.Scalar{Text: "(string) fine"})
	obj := &node.Object{ClassName: "T\xff", FullName: "pkg.T\xff", Body: &node.Accessors{}}
	m.Append("obj", obj)

	for _, html := range []bool{false, true} {
		out, err := New(Options{HTML: html}).Encode(m, 3)
		require.NoError(t, err, "html=%v", html)
		got, ok := decode(t, out).(map[string]any)
		require.True(t, ok, "output:\n%s", out)
		assert.Equal(t, "(string) hi�", got["k�"])
		assert.Equal(t, "(string) fine", got["ok"])
	}
}
