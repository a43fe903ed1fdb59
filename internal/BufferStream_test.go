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

package internal

import (
	"io"
	"testing"
)

func TestBufferStreamPutThenGetByte(t *testing.T) {
	b := NewBufferStream()

	for _, want := range []byte{0x00, 0x7F, 0x80, 0xFF} {
		if err := b.PutByte(want); err != nil {
			t.Fatalf("PutByte(%#x): %v", want, err)
		}
	}

	for _, want := range []byte{0x00, 0x7F, 0x80, 0xFF} {
		got, err := b.GetByte()

		if err != nil {
			t.Fatalf("GetByte(): %v", err)
		}

		if got != want {
			t.Errorf("GetByte() = %#x, want %#x", got, want)
		}
	}
}

func TestBufferStreamSeededWithInitialBytes(t *testing.T) {
	seed := []byte{0x01, 0x02, 0x03}
	b := NewBufferStream(seed)

	for _, want := range seed {
		got, err := b.GetByte()

		if err != nil {
			t.Fatalf("GetByte(): %v", err)
		}

		if got != want {
			t.Errorf("GetByte() = %#x, want %#x", got, want)
		}
	}

	if _, err := b.GetByte(); err != io.EOF {
		t.Errorf("GetByte() at end err = %v, want io.EOF", err)
	}
}

func TestBufferStreamGetByteReturnsEOFAtEnd(t *testing.T) {
	b := NewBufferStream()

	if _, err := b.GetByte(); err != io.EOF {
		t.Errorf("GetByte() on empty stream err = %v, want io.EOF", err)
	}
}

func TestBufferStreamClosedRejectsReadAndWrite(t *testing.T) {
	b := NewBufferStream()

	if err := b.PutByte(0x01); err != nil {
		t.Fatalf("PutByte before close: %v", err)
	}

	if err := b.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if err := b.PutByte(0x02); err == nil {
		t.Error("PutByte after close: expected an error")
	}

	if _, err := b.GetByte(); err == nil {
		t.Error("GetByte after close: expected an error")
	}
}

func TestBufferStreamLenAndAvailable(t *testing.T) {
	b := NewBufferStream()

	if n := b.Len(); n != 0 {
		t.Errorf("Len() on empty stream = %d, want 0", n)
	}

	b.Write([]byte{1, 2, 3})

	if n := b.Len(); n != 3 {
		t.Errorf("Len() = %d, want 3", n)
	}

	if n := b.Available(); n != 3 {
		t.Errorf("Available() = %d, want 3", n)
	}

	b.Close()

	if n := b.Available(); n != 0 {
		t.Errorf("Available() after close = %d, want 0", n)
	}
}

func TestBufferStreamBytesReflectsUnreadPortion(t *testing.T) {
	b := NewBufferStream([]byte{1, 2, 3, 4})
	b.GetByte()

	if got := b.Bytes(); string(got) != string([]byte{2, 3, 4}) {
		t.Errorf("Bytes() = %#x, want %#x", got, []byte{2, 3, 4})
	}
}

func TestBufferStreamReadWriteInterface(t *testing.T) {
	b := NewBufferStream()

	n, err := b.Write([]byte("hello"))

	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	if n != 5 {
		t.Errorf("Write returned n = %d, want 5", n)
	}

	out := make([]byte, 5)
	n, err = b.Read(out)

	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if string(out[:n]) != "hello" {
		t.Errorf("Read = %q, want %q", out[:n], "hello")
	}
}
