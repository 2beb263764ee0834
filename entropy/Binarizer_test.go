/*
Copyright 2024-2026 the quadrans authors
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

package entropy

import (
	"errors"
	"testing"

	quadrans "github.com/quadrans/quadrans"
)

func sameBits(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func TestCodebookDeterminism(t *testing.T) {
	cases := []struct {
		symbol int
		bin    Binarization
		bits   []int
	}{
		{0, BinarizationEfficient, []int{0}},
		{1, BinarizationEfficient, []int{1, 0}},
		{2, BinarizationEfficient, []int{1, 1, 0}},
		{3, BinarizationEfficient, []int{1, 1, 1, 0}},
		{0, BinarizationInefficient, []int{1, 1, 1, 0}},
		{1, BinarizationInefficient, []int{1, 1, 0}},
		{2, BinarizationInefficient, []int{1, 0}},
		{3, BinarizationInefficient, []int{0}},
	}

	for _, c := range cases {
		bits, err := BinarizeSymbol(c.symbol, c.bin)

		if err != nil {
			t.Fatalf("symbol %d bin %d: unexpected error: %v", c.symbol, c.bin, err)
		}

		if sameBits(bits, c.bits) == false {
			t.Fatalf("symbol %d bin %d: expected %v, got %v", c.symbol, c.bin, c.bits, bits)
		}
	}
}

func TestBinarizeSymbolRangeError(t *testing.T) {
	for _, s := range []int{-1, 4, 100} {
		if _, err := BinarizeSymbol(s, BinarizationEfficient); errors.Is(err, quadrans.ErrSymbolRange) == false {
			t.Fatalf("symbol %d: expected ErrSymbolRange, got %v", s, err)
		}
	}

	if _, err := BinarizeSymbol(0, Binarization(7)); errors.Is(err, quadrans.ErrSymbolRange) == false {
		t.Fatalf("expected ErrSymbolRange for unknown binarization")
	}
}

func TestBinarizeSequence(t *testing.T) {
	bits, err := BinarizeSequence([]int{0, 1, 2, 3}, BinarizationEfficient)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []int{0, 1, 0, 1, 1, 0, 1, 1, 1, 0}

	if sameBits(bits, expected) == false {
		t.Fatalf("expected %v, got %v", expected, bits)
	}

	if _, err = BinarizeSequence([]int{0, 4}, BinarizationEfficient); errors.Is(err, quadrans.ErrSymbolRange) == false {
		t.Fatalf("expected ErrSymbolRange, got %v", err)
	}
}

func TestPackBits(t *testing.T) {
	buf := PackBits([]int{1, 0, 1})

	if len(buf) != 1 || buf[0] != 0x05 {
		t.Fatalf("expected [0x05], got %v", buf)
	}

	if len(PackBits(nil)) != 0 {
		t.Fatalf("expected empty buffer for no bits")
	}
}

func TestMonotonicCostOrdering(t *testing.T) {
	// Source skewed toward symbol 0 (0.7/0.1/0.1/0.1): the efficient
	// codebook must produce strictly fewer bits than the inefficient one
	symbols := make([]int, 0, 1000)

	for i := 0; i < 100; i++ {
		symbols = append(symbols, 0, 0, 0, 0, 0, 0, 0, 1, 2, 3)
	}

	good, err := BinarizeSequence(symbols, BinarizationEfficient)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad, err := BinarizeSequence(symbols, BinarizationInefficient)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(good) >= len(bad) {
		t.Fatalf("efficient codebook not shorter: %d vs %d bits", len(good), len(bad))
	}
}
