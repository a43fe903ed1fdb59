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

// Package fobit implements the finitely-odd bit stream bijection (L2):
// a byte-filtered bijection between an arbitrary byte stream and a
// "finitely odd" one, a semantically infinite bit sequence whose
// rightmost 1 bit sits at a finite position, everything past it being
// zero. Writer and Reader are exact inverses of one another.
package fobit

import (
	"errors"

	bijac "github.com/arlec/bijac"
)

// xorMask breaks the symmetry between "no data" and "data consisting of
// zero bytes": by the time bytes reach this layer the arithmetic coder
// has already absorbed high-frequency patterns, so raw 0x00 bytes are a
// plausible input; XORing with this mask ensures an all-zero output
// tail unambiguously encodes "nothing more to say" rather than "the
// payload happened to be zero".
const xorMask = 0x37

// DefaultBlockSize is the reservation block size used when none is
// given to NewWriter/NewReader.
const DefaultBlockSize = 1

// Writer accepts bytes from the arithmetic coder (via PutByte, so it
// implements bijac.ByteWriter itself) and emits bytes to an underlying
// bijac.ByteWriter such that the emitted sequence, read as an infinite
// bit stream padded with zeros, is finitely odd.
//
// Within every block of blockSize consecutive emitted bytes, the first
// byte must have its top bit set, or a later byte in the block must be
// non-zero; otherwise the block is "reserved" (it cannot itself encode
// anything) and the following block must not be all-zero. reserve0
// tracks whether the in-flight block has already spent that guarantee.
type Writer struct {
	sink       bijac.ByteWriter
	blockSize  int
	blockLeft  int
	reserve0   bool
	segFirst   byte
	segZeros   int // zero bytes buffered behind segFirst, not yet flushed
	segStarted bool
	ended      bool
}

// NewWriter creates a Writer emitting to sink, using blockSize as the
// reservation block size (pass 0 for DefaultBlockSize).
func NewWriter(sink bijac.ByteWriter, blockSize int) (*Writer, error) {
	if sink == nil {
		return nil, errors.New("fobit: invalid null sink")
	}

	if blockSize == 0 {
		blockSize = DefaultBlockSize
	}

	if blockSize < 0 {
		return nil, errors.New("fobit: block size must be positive")
	}

	return &Writer{sink: sink, blockSize: blockSize}, nil
}

// PutByte implements bijac.ByteWriter: it is the entry point the
// arithmetic coder writes its output bytes through.
//
// Internally it maintains a "segment": the most recently received
// non-flushed byte (segFirst) followed by a run of zero bytes
// (segZeros). The segment is flushed (emitted, XOR-masked, with
// block-reservation bookkeeping applied byte by byte) only once a
// later non-zero byte arrives, since until then the buffered zeros
// might turn out to be part of the infinite zero tail rather than real
// data — that decision is made in End, not here.
func (this *Writer) PutByte(b byte) error {
	if !this.segStarted {
		this.segFirst = b
		this.segStarted = true
		return nil
	}

	if b == 0 {
		this.segZeros++
		return nil
	}

	if err := this.flushSegment(); err != nil {
		return err
	}

	this.segFirst = b
	this.segZeros = 0
	return nil
}

// flushSegment emits segFirst followed by the segZeros buffered zero
// bytes, applying the block-reservation bookkeeping to each emitted
// byte in turn.
func (this *Writer) flushSegment() error {
	if err := this.emit(this.segFirst); err != nil {
		return err
	}

	for i := 0; i < this.segZeros; i++ {
		if err := this.emit(0); err != nil {
			return err
		}
	}

	return nil
}

// emit writes a single already-determined output byte (pre XOR-mask),
// updating the block-reservation state for it.
func (this *Writer) emit(b byte) error {
	if this.blockLeft == 0 {
		if this.reserve0 {
			this.reserve0 = (b & 127) == 0
		} else {
			this.reserve0 = b == 0
		}

		this.blockLeft = this.blockSize - 1
	} else {
		this.reserve0 = this.reserve0 && b == 0
		this.blockLeft--
	}

	return this.sink.PutByte(b ^ xorMask)
}

// End finalises the stream. Any zero run still buffered behind segFirst
// at this point is the finitely-odd tail and is dropped rather than
// emitted (it carries no information — an infinite run of zeros is
// exactly what a reader is meant to assume past the last real byte).
// What remains is decided purely from segFirst and the block
// reservation state, emitting trailing zero bytes only as far as that
// invariant requires, so the last byte written is always non-zero: the
// bijection has exactly one valid "end here" position per prefix.
//
// Calling PutByte after End is undefined; End is idempotent.
func (this *Writer) End() error {
	if this.ended {
		return nil
	}

	this.ended = true

	if !this.segStarted {
		this.segFirst = 0
	}

	for {
		for this.blockLeft > 0 {
			this.reserve0 = this.reserve0 && this.segFirst == 0

			if err := this.sink.PutByte(this.segFirst ^ xorMask); err != nil {
				return err
			}

			this.segFirst = 0
			this.blockLeft--
		}

		if this.reserve0 {
			if this.segFirst != 0x80 {
				this.reserve0 = false
				this.blockLeft = this.blockSize
				continue
			}

			return nil
		}

		if this.segFirst != 0 {
			this.blockLeft = this.blockSize
			continue
		}

		return nil
	}
}
