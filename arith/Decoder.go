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

package arith

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	bijac "github.com/arlec/bijac"
)

// MaxPastEndWarnings bounds how many times Decode may observe "input
// exhausted but the free-end-equality test did not hold" before
// concluding the stream is not merely ambiguous at a boundary but
// structurally corrupt. The (MaxPastEndWarnings+1)th such observation
// causes Decode to panic.
const MaxPastEndWarnings = 5

// Decoder narrows [low, low+range) in lock-step with the Encoder that
// produced its input, recovering one symbol per Decode call. It reads
// one byte ahead of its logical position (followByte/followBuf) so it
// can tell a real zero byte apart from the semantically-infinite zero
// tail that follows every finitely-odd stream.
type Decoder struct {
	src bijac.ByteReader

	low, rng     uint32
	intervalBits int
	freeEndEven  uint32
	nextFreeEnd  uint32

	value      uint32
	valueShift int

	followByte byte
	followBuf  int

	pastEndCount int
	warnings     []string
}

// NewDecoder creates a Decoder reading from src.
func NewDecoder(src bijac.ByteReader) (*Decoder, error) {
	if src == nil {
		return nil, errors.New("arith: invalid null source")
	}

	return &Decoder{
		src:          src,
		rng:          bit16,
		intervalBits: 16,
		freeEndEven:  mask16,
		valueShift:   -24,
		followBuf:    1,
	}, nil
}

// Warnings returns the past-end diagnostics accumulated so far (see
// MaxPastEndWarnings). The slice is owned by the Decoder; callers must
// not mutate it.
func (this *Decoder) Warnings() []string {
	return this.warnings
}

// Decode recovers the next symbol under model. canEnd marks this call
// as a position the matching Encoder call also marked with
// couldHaveEnded=true; when the stream's free end is found here,
// Decode returns (-1, nil) to signal a clean end of stream.
//
// Decode panics with a bijac.InvariantViolation value on the
// (MaxPastEndWarnings+1)th canEnd call that finds the input exhausted
// without the free end matching (see MaxPastEndWarnings).
func (this *Decoder) Decode(model bijac.Model, canEnd bool) (int, error) {
	for this.valueShift <= 0 {
		this.value <<= 8
		this.valueShift += 8
		this.followBuf--

		if this.followBuf == 0 {
			this.value |= uint32(this.followByte)

			for {
				b, err := this.src.GetByte()

				if err == io.EOF {
					this.followBuf = -1
					break
				} else if err != nil {
					return 0, err
				}

				this.followBuf++
				this.followByte = b

				if this.followByte != 0 {
					break
				}
			}
		}
	}

	if canEnd {
		if this.followBuf < 0 {
			if (this.nextFreeEnd-this.low)<<uint(this.valueShift) == this.value {
				return -1, nil
			}

			this.recordPastEnd()
		}

		if this.nextFreeEnd != 0 {
			this.nextFreeEnd += (this.freeEndEven + 1) << 1
		} else {
			this.nextFreeEnd = this.freeEndEven + 1
		}
	}

	p1 := model.ProbOne()
	scaled := ((this.value>>uint(this.valueShift))*p1 + p1 - 1) / this.rng
	sym, lo, hi := model.GetSymbol(scaled)

	newl := lo * this.rng / p1
	newh := hi * this.rng / p1

	this.rng = newh - newl
	this.value -= newl << uint(this.valueShift)
	this.low += newl

	if this.nextFreeEnd < this.low {
		this.nextFreeEnd = ((this.low + this.freeEndEven) &^ this.freeEndEven) | (this.freeEndEven + 1)
	}

	if this.rng > bit16/2 {
		for this.nextFreeEnd-this.low >= this.rng {
			this.freeEndEven >>= 1
			this.nextFreeEnd = ((this.low + this.freeEndEven) &^ this.freeEndEven) | (this.freeEndEven + 1)
		}

		return sym, nil
	}

	this.low += this.low
	this.rng += this.rng
	this.nextFreeEnd += this.nextFreeEnd
	this.freeEndEven += this.freeEndEven + 1
	this.valueShift--

	for this.nextFreeEnd-this.low >= this.rng {
		this.freeEndEven >>= 1
		this.nextFreeEnd = ((this.low + this.freeEndEven) &^ this.freeEndEven) | (this.freeEndEven + 1)
	}

	for {
		this.intervalBits++

		if this.intervalBits == 24 {
			trunc := this.low &^ mask16
			this.low -= trunc
			this.nextFreeEnd -= trunc
			this.freeEndEven &= mask16
			this.intervalBits -= 8
		}

		if this.rng > bit16/2 {
			return sym, nil
		}

		this.low += this.low
		this.rng += this.rng
		this.nextFreeEnd += this.nextFreeEnd
		this.freeEndEven += this.freeEndEven + 1
		this.valueShift--
	}
}

// recordPastEnd logs one "read past the reconstructed end" event. Up
// to MaxPastEndWarnings of these are expected noise near a boundary;
// past that, the stream can no longer be explained by boundary
// ambiguity and Decode panics.
func (this *Decoder) recordPastEnd() {
	this.pastEndCount++
	this.warnings = append(this.warnings, fmt.Sprintf(
		"arith: decoder read past its reconstructed end (%d of %d tolerated)",
		this.pastEndCount, MaxPastEndWarnings))

	if this.pastEndCount > MaxPastEndWarnings {
		panic(bijac.InvariantViolation(
			"decoder read past its reconstructed end %d times: stream is structurally corrupt",
			this.pastEndCount))
	}
}
