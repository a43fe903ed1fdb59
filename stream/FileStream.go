/*
Copyright 2011-2026 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package stream provides the L1 byte I/O layer: buffered ByteReader and
// ByteWriter adapters over an io.Reader/io.Writer. This layer is
// deliberately thin, but keeps the reference package's
// validated-constructor and wrapped-error conventions.
package stream

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
)

// Default and bounds for the internal read/write buffer, matching the
// validation bounds the reference package applies to its bit-stream
// buffer sizes.
const (
	DefaultBufferSize = 64 * 1024
	minBufferSize     = 1024
	maxBufferSize     = 1 << 29
)

// Reader is a buffered ByteReader backed by an io.Reader (typically an
// *os.File). GetByte returns io.EOF once the source is exhausted, and
// keeps returning io.EOF on every later call.
type Reader struct {
	br     *bufio.Reader
	closer io.Closer
	eof    bool
}

// NewReader creates a Reader with the given buffer size. bufferSize must
// be in [1024..1<<29]; pass 0 to use DefaultBufferSize.
func NewReader(r io.Reader, bufferSize int) (*Reader, error) {
	if r == nil {
		return nil, errors.New("stream: invalid null reader")
	}

	if bufferSize == 0 {
		bufferSize = DefaultBufferSize
	}

	if bufferSize < minBufferSize || bufferSize > maxBufferSize {
		return nil, errors.Errorf("stream: invalid buffer size %d (must be in [%d..%d])", bufferSize, minBufferSize, maxBufferSize)
	}

	this := &Reader{br: bufio.NewReaderSize(r, bufferSize)}

	if c, ok := r.(io.Closer); ok {
		this.closer = c
	}

	return this, nil
}

// GetByte implements bijac.ByteReader.
func (this *Reader) GetByte() (byte, error) {
	if this.eof {
		return 0, io.EOF
	}

	b, err := this.br.ReadByte()

	if err == io.EOF {
		this.eof = true
		return 0, io.EOF
	}

	if err != nil {
		return 0, errors.Wrap(err, "stream: read failed")
	}

	return b, nil
}

// Close releases the underlying reader, if closable.
func (this *Reader) Close() error {
	if this.closer == nil {
		return nil
	}

	return errors.Wrap(this.closer.Close(), "stream: close failed")
}

// Writer is a buffered ByteWriter backed by an io.Writer (typically an
// *os.File).
type Writer struct {
	bw     *bufio.Writer
	closer io.Closer
}

// NewWriter creates a Writer with the given buffer size. bufferSize must
// be in [1024..1<<29]; pass 0 to use DefaultBufferSize.
func NewWriter(w io.Writer, bufferSize int) (*Writer, error) {
	if w == nil {
		return nil, errors.New("stream: invalid null writer")
	}

	if bufferSize == 0 {
		bufferSize = DefaultBufferSize
	}

	if bufferSize < minBufferSize || bufferSize > maxBufferSize {
		return nil, errors.Errorf("stream: invalid buffer size %d (must be in [%d..%d])", bufferSize, minBufferSize, maxBufferSize)
	}

	this := &Writer{bw: bufio.NewWriterSize(w, bufferSize)}

	if c, ok := w.(io.Closer); ok {
		this.closer = c
	}

	return this, nil
}

// PutByte implements bijac.ByteWriter.
func (this *Writer) PutByte(b byte) error {
	return errors.Wrap(this.bw.WriteByte(b), "stream: write failed")
}

// Flush pushes any buffered bytes to the underlying writer.
func (this *Writer) Flush() error {
	return errors.Wrap(this.bw.Flush(), "stream: flush failed")
}

// Close flushes then releases the underlying writer, if closable.
func (this *Writer) Close() error {
	if err := this.Flush(); err != nil {
		return err
	}

	if this.closer == nil {
		return nil
	}

	return errors.Wrap(this.closer.Close(), "stream: close failed")
}
