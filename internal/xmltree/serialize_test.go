package xmltree

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"
)

func renderToString(t *testing.T, s *Serializer, root *Element) string {
	t.Helper()
	var buf bytes.Buffer
	if _, err := s.WriteDocument(root, &buf); err != nil {
		t.Fatalf("WriteDocument failed: %v", err)
	}
	return buf.String()
}

func TestAttributeOrderPreserved(t *testing.T) {
	root := New("Root")
	root.SetAttr("zeta", "1").SetAttr("alpha", "2").SetAttr("mid", "3")

	out := renderToString(t, &Serializer{}, root)
	want := Header + "<Root zeta=\"1\" alpha=\"2\" mid=\"3\"/>\n"
	if out != want {
		t.Fatalf("serialized output mismatch:\nwant %q\ngot  %q", want, out)
	}
}

func TestNestedRendering(t *testing.T) {
	root := New("Project")
	root.TextChild("EngineVersion", "29.3.1")
	ui := root.Child("UI")
	ui.SetAttr("count", "1")
	button := ui.Child("Button")
	button.SetAttr("visible", "true")

	out := renderToString(t, &Serializer{}, root)
	want := Header +
		"<Project>\n" +
		"  <EngineVersion>29.3.1</EngineVersion>\n" +
		"  <UI count=\"1\">\n" +
		"    <Button visible=\"true\"/>\n" +
		"  </UI>\n" +
		"</Project>\n"
	if out != want {
		t.Fatalf("serialized output mismatch:\nwant %q\ngot  %q", want, out)
	}
}

func TestEscaping(t *testing.T) {
	root := New("Root")
	root.SetAttr("label", "a<b & \"c\"")
	root.TextChild("Note", "1 < 2 & 3 > 2")

	out := renderToString(t, &Serializer{}, root)
	if !strings.Contains(out, "label=\"a&lt;b &amp; &quot;c&quot;\"") {
		t.Fatalf("attribute not escaped: %q", out)
	}
	if !strings.Contains(out, "<Note>1 &lt; 2 &amp; 3 &gt; 2</Note>") {
		t.Fatalf("text not escaped: %q", out)
	}
	if err := xml.Unmarshal([]byte(out), new(struct{ XMLName xml.Name })); err != nil {
		t.Fatalf("output not parseable: %v", err)
	}
}

func TestCDATA(t *testing.T) {
	root := New("Macro")
	script := root.Child("Script")
	script.CDATA = "if (a < b) { log(\"x ]]> y\"); }"

	out := renderToString(t, &Serializer{}, root)
	if !strings.Contains(out, "<![CDATA[") {
		t.Fatalf("missing CDATA section: %q", out)
	}
	if err := xml.Unmarshal([]byte(out), new(struct{ XMLName xml.Name })); err != nil {
		t.Fatalf("output with CDATA not parseable: %v", err)
	}
}

func TestSizeMatchesWrittenBytes(t *testing.T) {
	root := New("Root")
	for i := 0; i < 50; i++ {
		c := root.Child("Item")
		c.SetAttr("id", strings.Repeat("x", i))
		c.Text = strings.Repeat("payload ", i)
	}

	s := &Serializer{ChunkSize: 64}
	size := s.Size(root)
	var buf bytes.Buffer
	written, err := s.WriteDocument(root, &buf)
	if err != nil {
		t.Fatalf("WriteDocument failed: %v", err)
	}
	if written != size || int64(buf.Len()) != size {
		t.Fatalf("size pre-pass %d, written %d, buffered %d", size, written, buf.Len())
	}
}

func TestProgressMonotonic(t *testing.T) {
	root := New("Root")
	for i := 0; i < 200; i++ {
		root.TextChild("Item", strings.Repeat("a", 100))
	}

	var calls []int64
	var total int64
	s := &Serializer{
		ChunkSize: 1024,
		Progress: func(written, t int64) {
			calls = append(calls, written)
			total = t
		},
	}
	var buf bytes.Buffer
	written, err := s.WriteDocument(root, &buf)
	if err != nil {
		t.Fatalf("WriteDocument failed: %v", err)
	}
	if len(calls) < 2 {
		t.Fatalf("expected multiple progress callbacks, got %d", len(calls))
	}
	for i := 1; i < len(calls); i++ {
		if calls[i] <= calls[i-1] {
			t.Fatalf("progress not monotonic: %v", calls)
		}
	}
	if calls[len(calls)-1] != written || total != written {
		t.Fatalf("final progress %d, total %d, written %d", calls[len(calls)-1], total, written)
	}
}

func TestValueFilterAppliedToAttributesOnly(t *testing.T) {
	root := New("Root")
	root.SetAttr("state", "raw")
	root.TextChild("Body", "raw")

	s := &Serializer{ValueFilter: func(v string) string {
		return strings.ReplaceAll(v, "raw", "cooked")
	}}
	out := renderToString(t, s, root)
	if !strings.Contains(out, "state=\"cooked\"") {
		t.Fatalf("filter not applied to attribute: %q", out)
	}
	if !strings.Contains(out, "<Body>raw</Body>") {
		t.Fatalf("filter must not touch element text: %q", out)
	}
}
