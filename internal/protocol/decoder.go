package protocol

import (
	"bytes"
	"errors"
	"strings"
	"unicode/utf8"
)

// Decoder faults are unrecoverable for the connection that produced them.
var (
	ErrInvalidEncoding = errors.New("invalid utf-8 in stream")
	ErrLineTooLong     = errors.New("line exceeds maximum length")
)

// MaxLineBytes bounds how much unterminated input a peer may buffer
// server-side before the connection is dropped.
const MaxLineBytes = 64 * 1024

// Decoder splits a byte stream into newline-terminated lines. Frames may
// arrive split across any number of reads; partial trailing data is held
// until a later Feed completes it.
type Decoder struct {
	buf []byte
}

// Feed appends p to the pending buffer and returns every line it
// completes, trimmed of the terminator and any trailing '\r'. Empty
// segments are skipped. Lines already completed are returned even when
// the error is non-nil.
func (d *Decoder) Feed(p []byte) ([]string, error) {
	d.buf = append(d.buf, p...)

	var lines []string
	for {
		i := bytes.IndexByte(d.buf, '\n')
		if i < 0 {
			break
		}
		seg := strings.TrimSuffix(string(d.buf[:i]), "\r")
		d.buf = d.buf[i+1:]
		if seg == "" {
			continue
		}
		if !utf8.ValidString(seg) {
			return lines, ErrInvalidEncoding
		}
		lines = append(lines, seg)
	}

	if len(d.buf) > MaxLineBytes {
		return lines, ErrLineTooLong
	}
	return lines, nil
}
