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

package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	bijac "github.com/arlec/bijac"
	"github.com/arlec/bijac/arith"
	"github.com/arlec/bijac/fobit"
	"github.com/arlec/bijac/internal"
	"github.com/arlec/bijac/model"
	"github.com/arlec/bijac/stream"
)

const (
	_APP_HEADER  = "bijac 1.0 - bijective arithmetic coder"
	_NUM_SYMBOLS = 256
)

var log = Printer{os: bufio.NewWriter(os.Stdout)}

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	if len(args) == 2 && args[1] == "selftest" {
		return selftest()
	}

	fs := flag.NewFlagSet("bijac", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	verbose := fs.Bool("verbose", false, "print progress events to stdout")

	if err := fs.Parse(args[1:]); err != nil {
		return usage()
	}

	rest := fs.Args()

	if len(rest) != 3 {
		return usage()
	}

	mode := rest[0]
	inName := rest[1]
	outName := rest[2]

	verbosity := 0

	if *verbose {
		verbosity = 1
	}

	var c byte

	if len(mode) == 1 {
		c = mode[0]
	}

	switch c {
	case 'c', 'C':
		return compress(inName, outName, verbosity)
	case 'd', 'D':
		return decompress(inName, outName, verbosity)
	default:
		return usage()
	}
}

func usage() int {
	log.Println("", true)
	log.Println(_APP_HEADER, true)
	log.Println("", true)
	log.Println("USAGE: bijac [-verbose] c|d <infile> <outfile>", true)
	log.Println("       bijac selftest", true)
	log.Println("", true)
	log.Println("  c: compress", true)
	log.Println("  d: decompress", true)
	log.Println("  -verbose: print progress events to stdout", true)
	log.Flush()
	return bijac.ErrUsage
}

// compress reads inName byte by byte, encodes it through the adaptive
// model and arithmetic coder, and writes the finitely-odd result to
// outName.
func compress(inName, outName string, verbosity int) int {
	in, err := os.Open(inName)

	if err != nil {
		fmt.Printf("Could not read file \"%s\"\n", inName)
		return bijac.ErrInputOpen
	}

	defer in.Close()

	out, err := os.Create(outName)

	if err != nil {
		fmt.Printf("Could not write file \"%s\"\n", outName)
		return bijac.ErrOutputOpen
	}

	defer out.Close()

	listeners := newListeners(verbosity)

	byteIn, err := stream.NewReader(in, 0)

	if err != nil {
		fmt.Printf("%v\n", err)
		return bijac.ErrFile
	}

	byteOut, err := stream.NewWriter(out, 0)

	if err != nil {
		fmt.Printf("%v\n", err)
		return bijac.ErrFile
	}

	fobitOut, err := fobit.NewWriter(byteOut, 0)

	if err != nil {
		fmt.Printf("%v\n", err)
		return bijac.ErrFile
	}

	m, err := model.NewAdaptive(_NUM_SYMBOLS)

	if err != nil {
		fmt.Printf("%v\n", err)
		return bijac.ErrFile
	}

	encoder, err := arith.NewEncoder(fobitOut)

	if err != nil {
		fmt.Printf("%v\n", err)
		return bijac.ErrFile
	}

	notify(listeners, bijac.NewEvent(bijac.EvtCompressionStart, 0, time.Time{}))
	var read int64

	for {
		b, err := byteIn.GetByte()

		if err == io.EOF {
			break
		}

		if err != nil {
			fmt.Printf("Failed to compress: %v\n", err)
			return bijac.ErrFile
		}

		sym := int(b)

		if err := encoder.Encode(m, sym, true); err != nil {
			fmt.Printf("Failed to compress: %v\n", err)
			return bijac.ErrFile
		}

		m.Update(sym)
		read++
	}

	if err := encoder.End(); err != nil {
		fmt.Printf("Failed to compress: %v\n", err)
		return bijac.ErrFile
	}

	if err := fobitOut.End(); err != nil {
		fmt.Printf("Failed to compress: %v\n", err)
		return bijac.ErrFile
	}

	if err := byteOut.Close(); err != nil {
		fmt.Printf("Failed to compress: %v\n", err)
		return bijac.ErrFile
	}

	notify(listeners, bijac.NewEvent(bijac.EvtCompressionEnd, read, time.Time{}))
	return 0
}

// decompress is the exact inverse of compress: it reads a finitely-odd
// stream from inName and writes the recovered bytes to outName,
// stopping at the encoder's free end rather than at an EOF marker.
func decompress(inName, outName string, verbosity int) int {
	in, err := os.Open(inName)

	if err != nil {
		fmt.Printf("Could not read file \"%s\"\n", inName)
		return bijac.ErrInputOpen
	}

	defer in.Close()

	out, err := os.Create(outName)

	if err != nil {
		fmt.Printf("Could not write file \"%s\"\n", outName)
		return bijac.ErrOutputOpen
	}

	defer out.Close()

	listeners := newListeners(verbosity)

	byteIn, err := stream.NewReader(in, 0)

	if err != nil {
		fmt.Printf("%v\n", err)
		return bijac.ErrFile
	}

	byteOut, err := stream.NewWriter(out, 0)

	if err != nil {
		fmt.Printf("%v\n", err)
		return bijac.ErrFile
	}

	fobitIn, err := fobit.NewReader(byteIn, 0)

	if err != nil {
		fmt.Printf("%v\n", err)
		return bijac.ErrFile
	}

	m, err := model.NewAdaptive(_NUM_SYMBOLS)

	if err != nil {
		fmt.Printf("%v\n", err)
		return bijac.ErrFile
	}

	decoder, err := arith.NewDecoder(fobitIn)

	if err != nil {
		fmt.Printf("%v\n", err)
		return bijac.ErrFile
	}

	notify(listeners, bijac.NewEvent(bijac.EvtDecompressionStart, 0, time.Time{}))
	var written int64

	for {
		sym, err := decoder.Decode(m, true)

		if err != nil {
			fmt.Printf("Failed to decompress: %v\n", err)
			return bijac.ErrFile
		}

		if sym < 0 {
			break
		}

		if err := byteOut.PutByte(byte(sym)); err != nil {
			fmt.Printf("Failed to decompress: %v\n", err)
			return bijac.ErrFile
		}

		m.Update(sym)
		written++
	}

	if err := byteOut.Close(); err != nil {
		fmt.Printf("Failed to decompress: %v\n", err)
		return bijac.ErrFile
	}

	for _, w := range decoder.Warnings() {
		notify(listeners, bijac.NewEventFromString(bijac.EvtWarning, w, time.Time{}))
	}

	notify(listeners, bijac.NewEvent(bijac.EvtDecompressionEnd, written, time.Time{}))
	return 0
}

// selftest exhaustively round-trips every byte string of length 0..4,
// in both directions: compress-then-decompress must reproduce the
// original bytes, and decompress-then-recompress (treating the
// original bytes themselves as if they were a compressed stream) must
// reproduce the original bytes exactly too. The second direction is
// what actually exercises bijectivity: it fails if any byte string,
// however short, fails to round-trip through the codec as if it were
// someone else's compressed output.
func selftest() int {
	m, err := model.NewAdaptive(_NUM_SYMBOLS)

	if err != nil {
		fmt.Printf("%v\n", err)
		return bijac.ErrFile
	}

	ok := true
	fmt.Printf("Model: %d symbols (%d addressable)\n", m.NumSymbols(), m.Symbols())

	for byteLen := 0; byteLen < 5; byteLen++ {
		fmt.Printf("Testing %d byte files...", byteLen)
		in := make([]byte, byteLen)
		lenOK := true

		for {
			if err := selftestForward(m, in); err != nil {
				lenOK = false
				break
			}

			if err := selftestReverse(m, in); err != nil {
				lenOK = false
				break
			}

			if !nextCounter(in) {
				break
			}
		}

		if lenOK {
			fmt.Println("OK")
		} else {
			fmt.Println("FAIL!")
			ok = false
		}
	}

	if !ok {
		return bijac.ErrFile
	}

	return 0
}

// selftestForward compresses in, decompresses the result, and checks
// it matches in exactly.
func selftestForward(m *model.Adaptive, in []byte) error {
	m.Reset()
	compressed := internal.NewBufferStream()
	fobitOut, err := fobit.NewWriter(compressed, 0)

	if err != nil {
		return err
	}

	encoder, err := arith.NewEncoder(fobitOut)

	if err != nil {
		return err
	}

	for _, b := range in {
		if err := encoder.Encode(m, int(b), true); err != nil {
			return err
		}

		m.Update(int(b))
	}

	if err := encoder.End(); err != nil {
		return err
	}

	if err := fobitOut.End(); err != nil {
		return err
	}

	m.Reset()

	src := internal.NewBufferStream(compressed.Bytes())
	fobitIn, err := fobit.NewReader(src, 0)

	if err != nil {
		return err
	}

	decoder, err := arith.NewDecoder(fobitIn)

	if err != nil {
		return err
	}

	out := make([]byte, 0, len(in))

	for {
		sym, err := decoder.Decode(m, true)

		if err != nil {
			return err
		}

		if sym < 0 {
			break
		}

		if len(out) >= len(in) {
			return bijac.InvariantViolation("selftest: decoded more bytes than were compressed")
		}

		out = append(out, byte(sym))
		m.Update(sym)
	}

	if len(out) != len(in) {
		return bijac.InvariantViolation("selftest: round trip length mismatch: got %d, want %d", len(out), len(in))
	}

	for i := range in {
		if out[i] != in[i] {
			return bijac.InvariantViolation("selftest: round trip mismatch at byte %d", i)
		}
	}

	return nil
}

// selftestReverse treats in as if it were itself a compressed stream:
// decodes it, then recompresses the result and checks the recompressed
// bytes match in exactly. This is the half of the bijection the
// forward test alone cannot exercise.
func selftestReverse(m *model.Adaptive, in []byte) error {
	m.Reset()
	src := internal.NewBufferStream(append([]byte(nil), in...))
	fobitIn, err := fobit.NewReader(src, 0)

	if err != nil {
		return err
	}

	decoder, err := arith.NewDecoder(fobitIn)

	if err != nil {
		return err
	}

	mid := make([]byte, 0, len(in)*2)

	for {
		sym, err := decoder.Decode(m, true)

		if err != nil {
			return err
		}

		if sym < 0 {
			break
		}

		mid = append(mid, byte(sym))
		m.Update(sym)
	}

	m.Reset()

	recompressed := internal.NewBufferStream()
	fobitOut, err := fobit.NewWriter(recompressed, 0)

	if err != nil {
		return err
	}

	encoder, err := arith.NewEncoder(fobitOut)

	if err != nil {
		return err
	}

	for _, b := range mid {
		if err := encoder.Encode(m, int(b), true); err != nil {
			return err
		}

		m.Update(int(b))
	}

	if err := encoder.End(); err != nil {
		return err
	}

	if err := fobitOut.End(); err != nil {
		return err
	}

	out := recompressed.Bytes()

	if len(out) != len(in) {
		return bijac.InvariantViolation("selftest: reverse round trip length mismatch: got %d, want %d", len(out), len(in))
	}

	for i := range in {
		if out[i] != in[i] {
			return bijac.InvariantViolation("selftest: reverse round trip mismatch at byte %d", i)
		}
	}

	return nil
}

// nextCounter increments in as a little-endian base-256 counter,
// returning false once every combination of len(in) bytes has been
// produced (including, for len(in)==0, after the single empty string).
func nextCounter(in []byte) bool {
	for i := 0; i < len(in); i++ {
		in[i]++

		if in[i] != 0 {
			return true
		}
	}

	return false
}

func notify(listeners []bijac.Listener, evt *bijac.Event) {
	for _, l := range listeners {
		l.ProcessEvent(evt)
	}
}

func newListeners(verbosity int) []bijac.Listener {
	if verbosity <= 0 {
		return nil
	}

	return []bijac.Listener{&ConsoleListener{}}
}

// ConsoleListener prints every event it receives to stdout; it is the
// only Listener implementation cmd/bijac ships, used when run at a
// non-zero verbosity.
type ConsoleListener struct{}

// ProcessEvent implements bijac.Listener.
func (this *ConsoleListener) ProcessEvent(evt *bijac.Event) {
	fmt.Println(evt.String())
}

// Printer is a buffered printer, mirroring the reference CLI's
// mutex-free single-writer convention (bijac has no concurrent file
// processing, so no mutex is needed here).
type Printer struct {
	os *bufio.Writer
}

// Println writes msg followed by a newline if cond is true.
func (this *Printer) Println(msg string, cond bool) {
	if !cond {
		return
	}

	if w, _ := this.os.Write([]byte(msg + "\n")); w > 0 {
		_ = this.os.Flush()
	}
}

// Flush pushes any buffered output to stdout.
func (this *Printer) Flush() {
	_ = this.os.Flush()
}
