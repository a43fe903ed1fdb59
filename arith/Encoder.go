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

// Package arith implements the L3 bijective arithmetic coder: the
// classic [low, low+range) interval-narrowing coder, carrying a "free
// end" candidate through renormalization instead of emitting a length
// header or an EOF sentinel. Encoder and Decoder are exact inverses of
// one another, each driven by a bijac.Model supplying symbol
// probabilities.
package arith

import (
	"github.com/pkg/errors"

	bijac "github.com/arlec/bijac"
)

const (
	bit16  = 0x10000
	mask16 = 0x0FFFF
)

// Encoder narrows [low, low+range) one symbol at a time, writing to an
// underlying bijac.ByteWriter. Output bytes are delayed by one (plus
// any run of 0xFF bytes) in carryByte/carryBuf so that a carry out of
// the top byte of low can still be propagated into them before they
// are actually written.
type Encoder struct {
	sink bijac.ByteWriter

	low, rng     uint32
	intervalBits int
	freeEndEven  uint32
	nextFreeEnd  uint32

	carryByte byte
	carryBuf  int
	ended     bool
}

// NewEncoder creates an Encoder writing to sink.
func NewEncoder(sink bijac.ByteWriter) (*Encoder, error) {
	if sink == nil {
		return nil, errors.New("arith: invalid null sink")
	}

	return &Encoder{
		sink:         sink,
		rng:          bit16,
		intervalBits: 16,
		freeEndEven:  mask16,
	}, nil
}

// Encode narrows the current interval to the sub-range model assigns
// symbol. couldHaveEnded marks this call as a position a decoder could
// legitimately treat as the end of the stream; the encoder reserves a
// "free end" there so that the decoder, reading the finitely-odd tail,
// can recognize it later.
func (this *Encoder) Encode(model bijac.Model, symbol int, couldHaveEnded bool) error {
	if couldHaveEnded {
		if this.nextFreeEnd != 0 {
			this.nextFreeEnd += (this.freeEndEven + 1) << 1
		} else {
			this.nextFreeEnd = this.freeEndEven + 1
		}
	}

	lo, hi := model.GetSymRange(symbol)
	p1 := model.ProbOne()

	newl := lo * this.rng / p1
	newh := hi * this.rng / p1
	this.rng = newh - newl
	this.low += newl

	if this.nextFreeEnd < this.low {
		this.nextFreeEnd = ((this.low + this.freeEndEven) &^ this.freeEndEven) | (this.freeEndEven + 1)
	}

	if this.rng > bit16/2 {
		for this.nextFreeEnd-this.low >= this.rng {
			this.freeEndEven >>= 1
			this.nextFreeEnd = ((this.low + this.freeEndEven) &^ this.freeEndEven) | (this.freeEndEven + 1)
		}

		return nil
	}

	this.low += this.low
	this.rng += this.rng
	this.nextFreeEnd += this.nextFreeEnd
	this.freeEndEven += this.freeEndEven + 1

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

			if err := this.byteWithCarry(trunc >> 16); err != nil {
				return err
			}

			this.intervalBits -= 8
		}

		if this.rng > bit16/2 {
			return nil
		}

		this.low += this.low
		this.rng += this.rng
		this.nextFreeEnd += this.nextFreeEnd
		this.freeEndEven += this.freeEndEven + 1
	}
}

// End flushes the reserved free end and any delayed carry byte,
// finalizing the encoding. Calling Encode after End is undefined; End
// is idempotent.
func (this *Encoder) End() error {
	if this.ended {
		return nil
	}

	this.ended = true
	this.nextFreeEnd <<= uint(24 - this.intervalBits)

	for this.nextFreeEnd != 0 {
		if err := this.byteWithCarry(this.nextFreeEnd >> 16); err != nil {
			return err
		}

		this.nextFreeEnd = (this.nextFreeEnd & mask16) << 8
	}

	if this.carryBuf > 0 {
		if err := this.byteWithCarry(0); err != nil {
			return err
		}
	}

	return nil
}

// byteWithCarry delays the emission of outByte (and any run of 0xFF
// bytes that follow it) until a later byte resolves whether a carry
// propagates into them: a byte < 255 resolves "no carry" (the delayed
// byte and the FF run are emitted as-is); a byte >= 256 (the caller
// passes the carry bit folded into bit 8) resolves "carry", bumping
// the delayed byte and turning the FF run into a run of zeros. A byte
// of exactly 255 resolves nothing yet — it just extends the run.
func (this *Encoder) byteWithCarry(outByte uint32) error {
	if this.carryBuf > 0 {
		if outByte >= 256 {
			if err := this.sink.PutByte(this.carryByte + 1); err != nil {
				return err
			}

			for {
				this.carryBuf--

				if this.carryBuf == 0 {
					break
				}

				if err := this.sink.PutByte(0); err != nil {
					return err
				}
			}

			this.carryByte = byte(outByte)
		} else if outByte < 255 {
			if err := this.sink.PutByte(this.carryByte); err != nil {
				return err
			}

			for {
				this.carryBuf--

				if this.carryBuf == 0 {
					break
				}

				if err := this.sink.PutByte(0xFF); err != nil {
					return err
				}
			}

			this.carryByte = byte(outByte)
		}
	} else {
		this.carryByte = byte(outByte)
	}

	this.carryBuf++
	return nil
}
