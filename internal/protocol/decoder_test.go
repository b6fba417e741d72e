package protocol

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecoder_SplitReads(t *testing.T) {
	var d Decoder

	lines, err := d.Feed([]byte("/nick al"))
	require.NoError(t, err)
	require.Empty(t, lines)

	lines, err = d.Feed([]byte("ice\n/join lo"))
	require.NoError(t, err)
	require.Equal(t, []string{"/nick alice"}, lines)

	lines, err = d.Feed([]byte("bby\nhello\n"))
	require.NoError(t, err)
	require.Equal(t, []string{"/join lobby", "hello"}, lines)
}

func TestDecoder_TrimsCRAndSkipsEmptySegments(t *testing.T) {
	var d Decoder

	lines, err := d.Feed([]byte("one\r\n\n\r\ntwo\n"))
	require.NoError(t, err)
	require.Equal(t, []string{"one", "two"}, lines)
}

func TestDecoder_InvalidUTF8IsFatal(t *testing.T) {
	var d Decoder

	lines, err := d.Feed([]byte("fine\n\xff\xfe\nafter\n"))
	require.ErrorIs(t, err, ErrInvalidEncoding)
	// Lines completed before the fault are still delivered.
	require.Equal(t, []string{"fine"}, lines)
}

func TestDecoder_OversizedLineIsFatal(t *testing.T) {
	var d Decoder

	_, err := d.Feed([]byte(strings.Repeat("a", MaxLineBytes+1)))
	require.ErrorIs(t, err, ErrLineTooLong)
}
