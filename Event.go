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

package bijac

import (
	"fmt"
	"time"
)

// Event types. bijac has a single entropy-coding stage (no transform
// stage, no block framing), so this is trimmed to the events that
// stage can actually produce.
const (
	EvtCompressionStart   = 0 // Compression starts
	EvtDecompressionStart = 1 // Decompression starts
	EvtCompressionEnd     = 2 // Compression ends
	EvtDecompressionEnd   = 3 // Decompression ends
	EvtWarning            = 4 // A tolerated decoder anomaly (see arith.Decoder.Warnings)
)

// Event is a compression/decompression progress event.
type Event struct {
	eventType int
	size      int64
	eventTime time.Time
	msg       string
}

// NewEventFromString creates an Event that wraps a plain message, used
// for EvtWarning.
func NewEventFromString(evtType int, msg string, evtTime time.Time) *Event {
	if evtTime.IsZero() {
		evtTime = time.Now()
	}

	return &Event{eventType: evtType, msg: msg, eventTime: evtTime}
}

// NewEvent creates an Event carrying a byte count, used for the
// start/end events (bytes read so far for compression, bytes written
// so far for decompression).
func NewEvent(evtType int, size int64, evtTime time.Time) *Event {
	if evtTime.IsZero() {
		evtTime = time.Now()
	}

	return &Event{eventType: evtType, size: size, eventTime: evtTime}
}

// Type returns the event type.
func (this *Event) Type() int {
	return this.eventType
}

// Time returns the event timestamp.
func (this *Event) Time() time.Time {
	return this.eventTime
}

// Size returns the size info (bytes processed so far), or 0 if unset.
func (this *Event) Size() int64 {
	return this.size
}

// String returns a string representation of this event. If the event
// wraps a message (EvtWarning), the message is returned; otherwise a
// string is built from the fields.
func (this *Event) String() string {
	if len(this.msg) > 0 {
		return this.msg
	}

	t := ""

	switch this.eventType {
	case EvtCompressionStart:
		t = "COMPRESSION_START"
	case EvtDecompressionStart:
		t = "DECOMPRESSION_START"
	case EvtCompressionEnd:
		t = "COMPRESSION_END"
	case EvtDecompressionEnd:
		t = "DECOMPRESSION_END"
	}

	return fmt.Sprintf("{ \"type\":\"%s\", \"size\":%d, \"time\":%d }", t, this.size,
		this.eventTime.UnixNano()/1000000)
}

// Listener is implemented by event processors.
type Listener interface {
	// ProcessEvent is called whenever a Listener receives an event.
	ProcessEvent(evt *Event)
}
