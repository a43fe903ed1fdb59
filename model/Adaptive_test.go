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

package model

import "testing"

func TestNewAdaptiveRejectsBadSize(t *testing.T) {
	if _, err := NewAdaptive(0); err == nil {
		t.Error("expected an error for numSymbols == 0")
	}

	if _, err := NewAdaptive(-1); err == nil {
		t.Error("expected an error for a negative numSymbols")
	}
}

func TestSymbolsRoundsUpToPowerOfTwo(t *testing.T) {
	cases := []struct {
		numSymbols int
		want       int
	}{
		{1, 1},
		{2, 2},
		{3, 4},
		{200, 256},
		{256, 256},
		{257, 512},
	}

	for _, c := range cases {
		m, err := NewAdaptive(c.numSymbols)

		if err != nil {
			t.Fatalf("NewAdaptive(%d): %v", c.numSymbols, err)
		}

		if got := m.Symbols(); got != c.want {
			t.Errorf("NewAdaptive(%d).Symbols() = %d, want %d", c.numSymbols, got, c.want)
		}

		if got := m.NumSymbols(); got != c.numSymbols {
			t.Errorf("NewAdaptive(%d).NumSymbols() = %d, want %d", c.numSymbols, got, c.numSymbols)
		}
	}
}

func TestProbOneInvariant(t *testing.T) {
	m, err := NewAdaptive(256)

	if err != nil {
		t.Fatal(err)
	}

	if m.ProbOne() == 0 || m.ProbOne() > MaxP1 {
		t.Errorf("ProbOne() = %d, want 0 < ProbOne() <= %d", m.ProbOne(), MaxP1)
	}

	for i := 0; i < 20000; i++ {
		m.Update(i % 256)

		if m.ProbOne() == 0 || m.ProbOne() > MaxP1 {
			t.Fatalf("ProbOne() = %d out of range after %d updates", m.ProbOne(), i+1)
		}
	}
}

// symRangesPartitionProbOne checks that GetSymRange partitions [0, ProbOne())
// across the alphabet with no gaps or overlaps.
func symRangesPartitionProbOne(t *testing.T, m *Adaptive) {
	t.Helper()
	want := uint32(0)

	for sym := 0; sym < m.NumSymbols(); sym++ {
		lo, hi := m.GetSymRange(sym)

		if lo != want {
			t.Fatalf("symbol %d: lo = %d, want %d", sym, lo, want)
		}

		if hi <= lo {
			t.Fatalf("symbol %d: hi (%d) <= lo (%d)", sym, hi, lo)
		}

		want = hi
	}

	if want != m.ProbOne() {
		t.Fatalf("ranges sum to %d, want ProbOne() = %d", want, m.ProbOne())
	}
}

func TestGetSymRangePartitionsFresh(t *testing.T) {
	m, err := NewAdaptive(256)

	if err != nil {
		t.Fatal(err)
	}

	symRangesPartitionProbOne(t, m)
}

func TestGetSymRangePartitionsAfterUpdates(t *testing.T) {
	m, err := NewAdaptive(256)

	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 5000; i++ {
		m.Update((i * 37) % 256)
	}

	symRangesPartitionProbOne(t, m)
}

// TestGetSymbolIsInverseOfGetSymRange checks that, for every point p in
// [0, ProbOne()), GetSymbol(p) names the symbol whose GetSymRange
// contains p.
func TestGetSymbolIsInverseOfGetSymRange(t *testing.T) {
	m, err := NewAdaptive(256)

	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 1000; i++ {
		m.Update((i * 91) % 256)
	}

	for sym := 0; sym < m.NumSymbols(); sym++ {
		lo, hi := m.GetSymRange(sym)

		for p := lo; p < hi; p++ {
			got, gotLo, gotHi := m.GetSymbol(p)

			if got != sym || gotLo != lo || gotHi != hi {
				t.Fatalf("GetSymbol(%d) = (%d, %d, %d), want (%d, %d, %d)", p, got, gotLo, gotHi, sym, lo, hi)
			}
		}
	}
}

func TestUpdateBiasesTowardRecentSymbols(t *testing.T) {
	m, err := NewAdaptive(256)

	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 2000; i++ {
		m.Update(7)
	}

	_, hi7 := m.GetSymRange(7)
	lo7, _ := m.GetSymRange(7)
	_, hi200 := m.GetSymRange(200)
	lo200, _ := m.GetSymRange(200)

	if (hi7 - lo7) <= (hi200 - lo200) {
		t.Errorf("frequently updated symbol 7 has range %d, not greater than untouched symbol 200's range %d", hi7-lo7, hi200-lo200)
	}
}

func TestResetRestoresFreshState(t *testing.T) {
	fresh, err := NewAdaptive(256)

	if err != nil {
		t.Fatal(err)
	}

	used, err := NewAdaptive(256)

	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 10000; i++ {
		used.Update((i * 13) % 256)
	}

	used.Reset()

	if used.ProbOne() != fresh.ProbOne() {
		t.Fatalf("ProbOne() after Reset = %d, want %d", used.ProbOne(), fresh.ProbOne())
	}

	for sym := 0; sym < 256; sym++ {
		wantLo, wantHi := fresh.GetSymRange(sym)
		gotLo, gotHi := used.GetSymRange(sym)

		if gotLo != wantLo || gotHi != wantHi {
			t.Fatalf("symbol %d range after Reset = (%d, %d), want (%d, %d)", sym, gotLo, gotHi, wantLo, wantHi)
		}
	}
}

func TestResetWithinFirstWindowIsExact(t *testing.T) {
	// Fewer updates than the window size: Reset must still fully undo
	// them, exercising the "stop at the first untouched slot" path.
	fresh, err := NewAdaptive(256)

	if err != nil {
		t.Fatal(err)
	}

	used, err := NewAdaptive(256)

	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 100; i++ {
		used.Update(i % 256)
	}

	used.Reset()
	symRangesPartitionProbOne(t, used)

	for sym := 0; sym < 256; sym++ {
		wantLo, wantHi := fresh.GetSymRange(sym)
		gotLo, gotHi := used.GetSymRange(sym)

		if gotLo != wantLo || gotHi != wantHi {
			t.Fatalf("symbol %d range after Reset = (%d, %d), want (%d, %d)", sym, gotLo, gotHi, wantLo, wantHi)
		}
	}
}
