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

package stream

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	bijac "github.com/arlec/bijac"
)

// TraceWriter wraps a bijac.ByteWriter, logging every byte written to an
// io.Writer, hex formatted. All calls are delegated to the wrapped
// ByteWriter; this adds observability only.
type TraceWriter struct {
	delegate  bijac.ByteWriter
	out       io.Writer
	lineWidth int
	count     int
}

// NewTraceWriter creates a TraceWriter delegating to w and logging to out.
func NewTraceWriter(w bijac.ByteWriter, out io.Writer) (*TraceWriter, error) {
	if w == nil {
		return nil, errors.New("stream: the delegate cannot be null")
	}

	if out == nil {
		return nil, errors.New("stream: the writer cannot be null")
	}

	return &TraceWriter{delegate: w, out: out, lineWidth: 16}, nil
}

// PutByte logs b in hex then delegates to the wrapped ByteWriter.
func (this *TraceWriter) PutByte(b byte) error {
	fmt.Fprintf(this.out, "%02x ", b)
	this.count++

	if this.count%this.lineWidth == 0 {
		fmt.Fprintf(this.out, "\n")
	}

	return this.delegate.PutByte(b)
}

// TraceReader wraps a bijac.ByteReader, logging every byte read to an
// io.Writer, hex formatted.
type TraceReader struct {
	delegate  bijac.ByteReader
	out       io.Writer
	lineWidth int
	count     int
}

// NewTraceReader creates a TraceReader delegating to r and logging to out.
func NewTraceReader(r bijac.ByteReader, out io.Writer) (*TraceReader, error) {
	if r == nil {
		return nil, errors.New("stream: the delegate cannot be null")
	}

	if out == nil {
		return nil, errors.New("stream: the writer cannot be null")
	}

	return &TraceReader{delegate: r, out: out, lineWidth: 16}, nil
}

// GetByte delegates to the wrapped ByteReader, logging the result in hex.
func (this *TraceReader) GetByte() (byte, error) {
	b, err := this.delegate.GetByte()

	if err != nil {
		return b, err
	}

	fmt.Fprintf(this.out, "%02x ", b)
	this.count++

	if this.count%this.lineWidth == 0 {
		fmt.Fprintf(this.out, "\n")
	}

	return b, nil
}
