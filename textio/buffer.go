// Package textio uniformizes the text sources the toolkit accepts: a file
// path, literal content, or a byte stream, in any named encoding.
package textio

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// StringBuffer returns a text reader over src plus the originating path
// (empty when src was not a path).
//
// A string is treated as a path only when it both ends with
// "."+expectedExt and names an existing regular file; otherwise it is
// literal content. The two checks short-circuit, so a literal string that
// merely looks like a filename is still content, never a missing-file
// error. []byte and io.Reader inputs are decoded with the named encoding.
// Any other input kind is a classification error.
//
// encodingName is an IANA charset name ("latin1", "windows-1252", ...);
// empty means UTF-8. The caller owns closing the returned reader.
func StringBuffer(src any, expectedExt, encodingName string) (io.ReadCloser, string, error) {
	switch s := src.(type) {
	case string:
		if strings.HasSuffix(s, "."+expectedExt) {
			if info, err := os.Stat(s); err == nil && info.Mode().IsRegular() {
				return openFile(s, encodingName)
			}
		}
		return io.NopCloser(strings.NewReader(s)), "", nil
	case []byte:
		dec, err := newDecoder(encodingName)
		if err != nil {
			return nil, "", err
		}
		return io.NopCloser(dec.Reader(bytes.NewReader(s))), "", nil
	case io.Reader:
		dec, err := newDecoder(encodingName)
		if err != nil {
			return nil, "", err
		}
		return &decodedReader{r: dec.Reader(s), src: s}, "", nil
	default:
		return nil, "", fmt.Errorf("source type %T could not be identified", src)
	}
}

func openFile(path, encodingName string) (io.ReadCloser, string, error) {
	dec, err := newDecoder(encodingName)
	if err != nil {
		return nil, "", err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", path, err)
	}
	return &decodedReader{r: dec.Reader(f), src: f}, path, nil
}

func newDecoder(encodingName string) (*encoding.Decoder, error) {
	if encodingName == "" {
		encodingName = "utf-8"
	}
	enc, err := ianaindex.IANA.Encoding(encodingName)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("unknown encoding %q", encodingName)
	}
	return enc.NewDecoder(), nil
}

// decodedReader reads through a decoding transform and closes the
// underlying source if it is closeable.
type decodedReader struct {
	r   io.Reader
	src any
}

func (d *decodedReader) Read(p []byte) (int, error) { return d.r.Read(p) }

func (d *decodedReader) Close() error {
	if c, ok := d.src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
