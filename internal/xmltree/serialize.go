package xmltree

import (
	"fmt"
	"io"
	"strings"
)

// Header is the XML declaration emitted before the root element.
const Header = "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n"

// DefaultChunkSize is the flush granularity of the streaming serializer.
const DefaultChunkSize = 1 << 20 // 1 MiB

// Serializer renders an element tree as indented XML, flushing to the sink
// in bounded chunks so the full document never has to sit in one buffer.
type Serializer struct {
	// ChunkSize bounds the internal buffer; <= 0 uses DefaultChunkSize.
	ChunkSize int

	// Indent is the per-level indentation string. Defaults to two spaces.
	Indent string

	// ValueFilter, when set, is applied exactly once to every attribute
	// value before the tree is sized and rendered. The generator wires
	// the correction engine here so the emitted document is normalized
	// at the source.
	ValueFilter func(string) string

	// Progress, when set, is called after every chunk flush with the
	// cumulative bytes written and the exact total document size.
	Progress func(written, total int64)
}

// Size returns the exact number of bytes WriteDocument will emit for root,
// including the XML declaration. When a ValueFilter is set it is applied
// to the tree's attribute values in place first.
func (s *Serializer) Size(root *Element) int64 {
	s.normalize(root)
	var counter countingWriter
	_ = s.renderDocument(root, &counter)
	return counter.n
}

// normalize runs ValueFilter over every attribute value once, in place.
// Keeping this separate from rendering means the counting pre-pass and
// the streaming pass see identical bytes and the filter never observes
// the same raw value twice.
func (s *Serializer) normalize(e *Element) {
	if s.ValueFilter == nil || e == nil {
		return
	}
	for i := range e.Attrs {
		e.Attrs[i].Value = s.ValueFilter(e.Attrs[i].Value)
	}
	for _, c := range e.Children {
		s.normalize(c)
	}
}

// WriteDocument streams the declaration header and the tree rooted at root
// to w. It returns the number of bytes written.
func (s *Serializer) WriteDocument(root *Element, w io.Writer) (int64, error) {
	total := s.Size(root)
	cw := &chunkWriter{
		dst:      w,
		capacity: s.chunkSize(),
		total:    total,
		progress: s.Progress,
	}
	if err := s.renderDocument(root, cw); err != nil {
		return cw.written, err
	}
	if err := cw.Flush(); err != nil {
		return cw.written, err
	}
	return cw.written, nil
}

func (s *Serializer) chunkSize() int {
	if s.ChunkSize <= 0 {
		return DefaultChunkSize
	}
	return s.ChunkSize
}

func (s *Serializer) indent() string {
	if s.Indent == "" {
		return "  "
	}
	return s.Indent
}

func (s *Serializer) renderDocument(root *Element, w io.Writer) error {
	if root == nil {
		return fmt.Errorf("xmltree: nil root element")
	}
	if _, err := io.WriteString(w, Header); err != nil {
		return err
	}
	return s.render(root, w, 0)
}

func (s *Serializer) render(e *Element, w io.Writer, depth int) error {
	pad := strings.Repeat(s.indent(), depth)
	if _, err := io.WriteString(w, pad); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "<"+e.Name); err != nil {
		return err
	}
	for _, a := range e.Attrs {
		if _, err := io.WriteString(w, " "+a.Name+"=\""+escapeAttr(a.Value)+"\""); err != nil {
			return err
		}
	}

	switch {
	case len(e.Children) > 0:
		if _, err := io.WriteString(w, ">\n"); err != nil {
			return err
		}
		for _, c := range e.Children {
			if err := s.render(c, w, depth+1); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, pad+"</"+e.Name+">\n"); err != nil {
			return err
		}
	case e.CDATA != "":
		if _, err := io.WriteString(w, "><![CDATA["+escapeCDATA(e.CDATA)+"]]></"+e.Name+">\n"); err != nil {
			return err
		}
	case e.Text != "":
		if _, err := io.WriteString(w, ">"+escapeText(e.Text)+"</"+e.Name+">\n"); err != nil {
			return err
		}
	default:
		if _, err := io.WriteString(w, "/>\n"); err != nil {
			return err
		}
	}
	return nil
}

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\"", "&quot;",
	"\n", "&#10;",
	"\t", "&#9;",
)

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

func escapeAttr(s string) string { return attrEscaper.Replace(s) }

func escapeText(s string) string { return textEscaper.Replace(s) }

// escapeCDATA splits any embedded "]]>" so the section cannot terminate early.
func escapeCDATA(s string) string {
	return strings.ReplaceAll(s, "]]>", "]]]]><![CDATA[>")
}

type countingWriter struct {
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	c.n += int64(len(p))
	return len(p), nil
}

// chunkWriter buffers writes up to capacity bytes and reports cumulative
// progress on every flush.
type chunkWriter struct {
	dst      io.Writer
	buf      []byte
	capacity int
	written  int64
	total    int64
	progress func(written, total int64)
}

func (c *chunkWriter) Write(p []byte) (int, error) {
	c.buf = append(c.buf, p...)
	if len(c.buf) >= c.capacity {
		if err := c.Flush(); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

func (c *chunkWriter) Flush() error {
	if len(c.buf) == 0 {
		return nil
	}
	n, err := c.dst.Write(c.buf)
	c.written += int64(n)
	if err != nil {
		return err
	}
	c.buf = c.buf[:0]
	if c.progress != nil {
		c.progress(c.written, c.total)
	}
	return nil
}
