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

package fobit

import (
	"errors"
	"io"

	bijac "github.com/arlec/bijac"
)

// Reader is the exact inverse of Writer: it reads a finitely-odd byte
// sequence from an underlying bijac.ByteReader and presents, through
// GetByte, the original (pre-XOR, pre-reservation) byte sequence that
// produced it.
//
// Once the underlying source is exhausted, Reader synthesizes exactly
// one more byte if a block reservation was still pending (0x80, the
// implicit "there was a 1 bit here" marker), then returns io.EOF
// forever after.
type Reader struct {
	src       bijac.ByteReader
	blockSize int
	blockLeft int
	reserve0  bool
	inDone    bool
}

// NewReader creates a Reader pulling from src, using blockSize as the
// reservation block size (pass 0 for DefaultBlockSize). Must match the
// blockSize the corresponding Writer was constructed with.
func NewReader(src bijac.ByteReader, blockSize int) (*Reader, error) {
	if src == nil {
		return nil, errors.New("fobit: invalid null source")
	}

	if blockSize == 0 {
		blockSize = DefaultBlockSize
	}

	if blockSize < 0 {
		return nil, errors.New("fobit: block size must be positive")
	}

	return &Reader{src: src, blockSize: blockSize}, nil
}

// GetByte implements bijac.ByteReader.
func (this *Reader) GetByte() (byte, error) {
	for {
		var inByte int

		if this.inDone {
			inByte = 0
		} else {
			b, err := this.src.GetByte()

			if err == io.EOF {
				this.inDone = true
				inByte = 0
			} else if err != nil {
				return 0, err
			} else {
				inByte = int(b) ^ xorMask
			}
		}

		if this.blockLeft > 0 {
			this.reserve0 = this.reserve0 && inByte == 0
			this.blockLeft--
			return byte(inByte), nil
		}

		if this.inDone {
			if this.reserve0 {
				this.reserve0 = false
				return 0x80, nil
			}

			return 0, io.EOF
		}

		if this.reserve0 {
			this.reserve0 = (inByte & 127) == 0
		} else {
			this.reserve0 = inByte == 0
		}

		this.blockLeft = this.blockSize - 1
		return byte(inByte), nil
	}
}
