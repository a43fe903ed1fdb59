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

// Package model implements the L4 adaptive probability model: a
// complete binary tree of cumulative frequency counts (a Fenwick-style
// heap) over the alphabet, recency-weighted by a 4096-slot circular
// window split into four zones.
package model

import "errors"

// WindowSize is the size of the recency window tracked by Adaptive.
const WindowSize = 4096

// ZoneSize is the size of each of the four zones the window is split
// into (WindowSize / 4).
const ZoneSize = WindowSize / 4

// MaxP1 bounds ProbOne(): 0 < ProbOne() <= MaxP1.
const MaxP1 = 0x8000

// zoneWeight holds the weight newly-entering symbols get at each zone,
// newest to oldest: zone 0 (just seen) down to zone 3 (about to fall
// out of the window).
var zoneWeight = [4]uint32{6, 4, 3, 2}

// Adaptive is an adaptive probability model over numSymbols symbols,
// implementing bijac.Model. The Fenwick tree (probHeap) has
// symZeroIndex leaves, symZeroIndex rounded up to the next power of
// two at or above numSymbols; unused leaves (numSymbols..symZeroIndex)
// are given no initial count by NewAdaptive and are never touched by
// Update, so they stay at zero and contribute no probability mass.
type Adaptive struct {
	probHeap     []uint32
	symZeroIndex int
	numSymbols   int
	window       [WindowSize]int
	w0, w1, w2, w3 int
}

// NewAdaptive creates an Adaptive model over numSymbols symbols (256
// for a byte alphabet), each symbol starting with an initial count of
// 1 so that ProbOne() > 0 and every symbol is encodable from the very
// first call.
func NewAdaptive(numSymbols int) (*Adaptive, error) {
	if numSymbols <= 0 {
		return nil, errors.New("model: numSymbols must be positive")
	}

	sz := 1

	for sz < numSymbols {
		sz <<= 1
	}

	this := &Adaptive{symZeroIndex: sz, numSymbols: numSymbols}
	this.probHeap = make([]uint32, sz<<1)

	for i := 0; i < numSymbols; i++ {
		this.addP(i, 1)
	}

	for i := range this.window {
		this.window[i] = -1
	}

	this.w0 = 0
	this.w1 = ZoneSize
	this.w2 = 2 * ZoneSize
	this.w3 = 3 * ZoneSize
	return this, nil
}

// NumSymbols returns the alphabet size this model was created with.
func (this *Adaptive) NumSymbols() int {
	return this.numSymbols
}

// Symbols returns the Fenwick tree's leaf count (numSymbols rounded up
// to the next power of two), i.e. the number of distinct cumulative-
// range slots actually addressable by GetSymRange/GetSymbol. Equal to
// NumSymbols() whenever the alphabet size is already a power of two.
func (this *Adaptive) Symbols() int {
	return this.symZeroIndex
}

// ProbOne implements bijac.Model.
func (this *Adaptive) ProbOne() uint32 {
	return this.probHeap[1]
}

// GetSymRange implements bijac.Model.
func (this *Adaptive) GetSymRange(symbol int) (lo, hi uint32) {
	i, bit := 1, this.symZeroIndex
	low := uint32(0)

	for i < this.symZeroIndex {
		bit >>= 1
		i += i

		if symbol&bit != 0 {
			low += this.probHeap[i]
			i++
		}
	}

	return low, low + this.probHeap[i]
}

// GetSymbol implements bijac.Model.
func (this *Adaptive) GetSymbol(p uint32) (symbol int, lo, hi uint32) {
	i := 1
	low := uint32(0)

	for i < this.symZeroIndex {
		i += i

		if p-low >= this.probHeap[i] {
			low += this.probHeap[i]
			i++
		}
	}

	return i - this.symZeroIndex, low, low + this.probHeap[i]
}

// Update folds symbol into the recency window: the four zone
// boundaries each step back by one slot. A boundary stepping back
// moves the slot it now points at from the younger zone into the next
// older one (for w1..w3) or drops it out of the window entirely (for w0,
// which also receives the new symbol at full zone-0 weight). Each
// transition only needs the *difference* between the two zones'
// weights, since the slot's prior contribution at the old weight is
// already present in the tree.
func (this *Adaptive) Update(symbol int) {
	this.w1 = this.dec(this.w1)

	if s := this.window[this.w1]; s >= 0 {
		this.subP(s, zoneWeight[0]-zoneWeight[1])
	}

	this.w2 = this.dec(this.w2)

	if s := this.window[this.w2]; s >= 0 {
		this.subP(s, zoneWeight[1]-zoneWeight[2])
	}

	this.w3 = this.dec(this.w3)

	if s := this.window[this.w3]; s >= 0 {
		this.subP(s, zoneWeight[2]-zoneWeight[3])
	}

	this.w0 = this.dec(this.w0)

	if s := this.window[this.w0]; s >= 0 {
		this.subP(s, zoneWeight[3])
	}

	this.window[this.w0] = symbol
	this.addP(symbol, zoneWeight[0])
}

// Reset undoes the contribution of every slot currently held in the
// window, zone by zone, stopping as soon as an empty slot (-1) is
// found — the model was never filled past that point, so there is
// nothing left to undo.
func (this *Adaptive) Reset() {
	for w := this.w0; w != this.w1; w = this.inc(w) {
		if this.window[w] < 0 {
			return
		}

		this.subP(this.window[w], zoneWeight[0])
		this.window[w] = -1
	}

	for w := this.w1; w != this.w2; w = this.inc(w) {
		if this.window[w] < 0 {
			return
		}

		this.subP(this.window[w], zoneWeight[1])
		this.window[w] = -1
	}

	for w := this.w2; w != this.w3; w = this.inc(w) {
		if this.window[w] < 0 {
			return
		}

		this.subP(this.window[w], zoneWeight[2])
		this.window[w] = -1
	}

	for w := this.w3; w != this.w0; w = this.inc(w) {
		if this.window[w] < 0 {
			return
		}

		this.subP(this.window[w], zoneWeight[3])
		this.window[w] = -1
	}
}

func (this *Adaptive) addP(sym int, n uint32) {
	for i := sym + this.symZeroIndex; i > 0; i >>= 1 {
		this.probHeap[i] += n
	}
}

func (this *Adaptive) subP(sym int, n uint32) {
	for i := sym + this.symZeroIndex; i > 0; i >>= 1 {
		this.probHeap[i] -= n
	}
}

func (this *Adaptive) inc(i int) int {
	if i == WindowSize-1 {
		return 0
	}

	return i + 1
}

func (this *Adaptive) dec(i int) int {
	if i == 0 {
		return WindowSize - 1
	}

	return i - 1
}
