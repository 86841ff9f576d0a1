package stream

import "bytes"

// FrameBuffer accumulates raw chunks and hands back complete lines.
//
// Lines are always taken from the front, so after every TakeLine the
// buffer starts immediately after the last newline consumed. At most one
// partial line is held at any time.
type FrameBuffer struct {
	buf []byte
}

// Append copies p onto the end of the buffer.
func (b *FrameBuffer) Append(p []byte) {
	b.buf = append(b.buf, p...)
}

// TakeLine removes and returns everything up to and including the first
// newline. It returns false if the buffer holds no complete line.
func (b *FrameBuffer) TakeLine() ([]byte, bool) {
	i := bytes.IndexByte(b.buf, '\n')
	if i < 0 {
		return nil, false
	}

	line := b.buf[: i+1 : i+1]
	b.buf = b.buf[i+1:]

	return line, true
}

func (b *FrameBuffer) Len() int {
	return len(b.buf)
}

func (b *FrameBuffer) Empty() bool {
	return len(b.buf) == 0
}
