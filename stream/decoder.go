// Package stream decodes line-framed token streams whose transport chunks
// do not align with line boundaries. A Decoder buffers the unterminated
// trailing fragment of each chunk until the next line terminator arrives,
// so the decoded output is identical no matter how the byte sequence was
// split into chunks.
package stream

import (
	"bytes"
	"strings"
)

// Envelope decodes one complete line of the transport framing into its
// text payload. ok is false for lines that carry no payload: framing the
// decoder does not understand, control lines, or undecodable payloads.
// Such lines are skipped, never treated as a stream error.
type Envelope interface {
	DecodeLine(line []byte) (payload string, ok bool)
}

// Decoder incrementally reassembles a line-framed token stream.
// Not safe for concurrent use; each stream gets its own Decoder.
type Decoder struct {
	envelope Envelope
	carry    []byte
}

// NewDecoder creates a decoder for the given line envelope
func NewDecoder(envelope Envelope) *Decoder {
	return &Decoder{envelope: envelope}
}

// Feed consumes one transport chunk and returns the text decoded from the
// complete lines it finished. A partial trailing line is carried over to
// the next Feed call.
func (d *Decoder) Feed(chunk []byte) string {
	d.carry = append(d.carry, chunk...)

	var out strings.Builder
	for {
		i := bytes.IndexByte(d.carry, '\n')
		if i < 0 {
			break
		}
		line := bytes.TrimSuffix(d.carry[:i], []byte("\r"))
		d.carry = d.carry[i+1:]

		if payload, ok := d.envelope.DecodeLine(line); ok {
			out.WriteString(payload)
		}
	}
	return out.String()
}

// Close discards whatever remains in the carry-over buffer. An
// unterminated final line is end-of-stream framing, not content.
func (d *Decoder) Close() {
	d.carry = nil
}
