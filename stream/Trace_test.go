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
	"bytes"
	"strings"
	"testing"

	"github.com/arlec/bijac/internal"
)

func TestNewTraceWriterRejectsNils(t *testing.T) {
	buf := internal.NewBufferStream()
	var out bytes.Buffer

	if _, err := NewTraceWriter(nil, &out); err == nil {
		t.Error("expected an error for a nil delegate")
	}

	if _, err := NewTraceWriter(buf, nil); err == nil {
		t.Error("expected an error for a nil log writer")
	}
}

func TestNewTraceReaderRejectsNils(t *testing.T) {
	buf := internal.NewBufferStream()
	var out bytes.Buffer

	if _, err := NewTraceReader(nil, &out); err == nil {
		t.Error("expected an error for a nil delegate")
	}

	if _, err := NewTraceReader(buf, nil); err == nil {
		t.Error("expected an error for a nil log writer")
	}
}

func TestTraceWriterDelegatesAndLogs(t *testing.T) {
	delegate := internal.NewBufferStream()
	var log bytes.Buffer

	tw, err := NewTraceWriter(delegate, &log)

	if err != nil {
		t.Fatalf("NewTraceWriter: %v", err)
	}

	if err := tw.PutByte(0xAB); err != nil {
		t.Fatalf("PutByte: %v", err)
	}

	if string(delegate.Bytes()) != string([]byte{0xAB}) {
		t.Errorf("delegate received %#x, want %#x", delegate.Bytes(), []byte{0xAB})
	}

	if !strings.Contains(log.String(), "ab") {
		t.Errorf("log = %q, want it to contain the hex byte \"ab\"", log.String())
	}
}

func TestTraceReaderDelegatesAndLogs(t *testing.T) {
	delegate := internal.NewBufferStream([]byte{0xCD})
	var log bytes.Buffer

	tr, err := NewTraceReader(delegate, &log)

	if err != nil {
		t.Fatalf("NewTraceReader: %v", err)
	}

	b, err := tr.GetByte()

	if err != nil {
		t.Fatalf("GetByte: %v", err)
	}

	if b != 0xCD {
		t.Errorf("GetByte() = %#x, want %#x", b, 0xCD)
	}

	if !strings.Contains(log.String(), "cd") {
		t.Errorf("log = %q, want it to contain the hex byte \"cd\"", log.String())
	}
}

func TestTraceWriterWrapsLinesAtLineWidth(t *testing.T) {
	delegate := internal.NewBufferStream()
	var log bytes.Buffer

	tw, err := NewTraceWriter(delegate, &log)

	if err != nil {
		t.Fatalf("NewTraceWriter: %v", err)
	}

	for i := 0; i < 16; i++ {
		if err := tw.PutByte(byte(i)); err != nil {
			t.Fatalf("PutByte: %v", err)
		}
	}

	if got := strings.Count(log.String(), "\n"); got != 1 {
		t.Errorf("log has %d newlines after 16 bytes at lineWidth 16, want 1", got)
	}
}
