// Package pad tops generated documents up to a mandated minimum byte size
// using structurally inert filler blocks.
package pad

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"basgen/internal/entity"
)

// DefaultPayloadSize is the filler payload carried by each padding block.
const DefaultPayloadSize = 8192

// Padder inserts comment-wrapped filler immediately before the document's
// terminal closing marker, so padding never splits an element and the
// result stays parseable.
type Padder struct {
	// PayloadSize overrides the per-block payload; <= 0 uses
	// DefaultPayloadSize.
	PayloadSize int

	// Progress, when set, is called periodically with blocks written so
	// far and the total block count.
	Progress func(done, total int64)
}

func (p *Padder) payloadSize() int {
	if p.PayloadSize <= 0 {
		return DefaultPayloadSize
	}
	return p.PayloadSize
}

// BlockCount returns how many filler blocks close a gap of the given size:
// ceil(gap / payload). Zero when the gap is closed already.
func (p *Padder) BlockCount(gap int64) int64 {
	if gap <= 0 {
		return 0
	}
	payload := int64(p.payloadSize())
	return (gap + payload - 1) / payload
}

func (p *Padder) block(i int64, payload string) string {
	return fmt.Sprintf("<!-- PADDING_CHUNK_%d: %s -->\n", i, payload)
}

// Pad returns text grown to at least target bytes. Input at or above the
// target is returned unchanged. Filler goes immediately before the closing
// root marker when present, otherwise at the end.
func (p *Padder) Pad(text string, target int) string {
	gap := int64(target - len(text))
	if gap <= 0 {
		return text
	}
	insertAt := strings.LastIndex(text, entity.ClosingMarker)
	if insertAt < 0 {
		insertAt = len(text)
	}

	blocks := p.BlockCount(gap)
	payload := strings.Repeat("A", p.payloadSize())

	var b strings.Builder
	b.Grow(target + p.payloadSize())
	b.WriteString(text[:insertAt])
	for i := int64(0); i < blocks; i++ {
		b.WriteString(p.block(i, payload))
	}
	b.WriteString(text[insertAt:])
	return b.String()
}

// PadFile grows the file at path to at least target bytes without reading
// the document body: the closing marker is located in the file tail, the
// tail is cut, filler blocks are appended, and the tail is restored. The
// final size is returned.
func (p *Padder) PadFile(path string, target int64) (int64, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return 0, fmt.Errorf("open %s for padding: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", path, err)
	}
	size := info.Size()
	if size >= target {
		return size, nil
	}

	// The closing marker sits at the very end of a serialized document;
	// probe only a small tail.
	probe := int64(len(entity.ClosingMarker) + 16)
	if probe > size {
		probe = size
	}
	tailStart := size - probe
	tail := make([]byte, probe)
	if _, err := f.ReadAt(tail, tailStart); err != nil {
		return 0, fmt.Errorf("read tail of %s: %w", path, err)
	}
	idx := strings.LastIndex(string(tail), entity.ClosingMarker)
	if idx < 0 {
		return 0, fmt.Errorf("pad %s: closing marker %q not found", path, entity.ClosingMarker)
	}
	markerAt := tailStart + int64(idx)
	suffix := string(tail[idx:])

	if err := f.Truncate(markerAt); err != nil {
		return 0, fmt.Errorf("truncate %s: %w", path, err)
	}
	if _, err := f.Seek(markerAt, 0); err != nil {
		return 0, fmt.Errorf("seek %s: %w", path, err)
	}

	gap := target - size
	blocks := p.BlockCount(gap)
	payload := strings.Repeat("A", p.payloadSize())

	w := bufio.NewWriterSize(f, 1<<20)
	for i := int64(0); i < blocks; i++ {
		if _, err := w.WriteString(p.block(i, payload)); err != nil {
			return 0, fmt.Errorf("write padding to %s: %w", path, err)
		}
		if p.Progress != nil && (i%100 == 0 || i == blocks-1) {
			p.Progress(i+1, blocks)
		}
	}
	if _, err := w.WriteString(suffix); err != nil {
		return 0, fmt.Errorf("restore tail of %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		return 0, fmt.Errorf("flush padding to %s: %w", path, err)
	}

	info, err = f.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat %s after padding: %w", path, err)
	}
	return info.Size(), nil
}
