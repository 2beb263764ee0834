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

// Package entropy implements the static-model coders of the quadrans toolkit:
// the binarizer, the binary range coder and the rANS coder, plus the CABAC
// probability reference tables consumed by the demonstration driver.
package entropy

import (
	"github.com/pkg/errors"

	quadrans "github.com/quadrans/quadrans"
	"github.com/quadrans/quadrans/bitstream"
)

// Binarization selects one of the two fixed symbol codebooks.
type Binarization int

const (
	// BinarizationEfficient is a truncated unary code: short codes for the
	// low (frequent) symbols. Lengths 1,2,3,4 for symbols 0..3.
	BinarizationEfficient = Binarization(0)

	// BinarizationInefficient reverses the length assignment: the frequent
	// symbol 0 gets the longest code.
	BinarizationInefficient = Binarization(1)
)

// The codebooks are immutable and shared read-only by all callers.
var (
	_EFFICIENT_TABLE = [quadrans.AlphabetSize][]int{
		{0},
		{1, 0},
		{1, 1, 0},
		{1, 1, 1, 0},
	}

	_INEFFICIENT_TABLE = [quadrans.AlphabetSize][]int{
		{1, 1, 1, 0},
		{1, 1, 0},
		{1, 0},
		{0},
	}
)

// BinarizeSymbol returns the ordered bit sequence for one symbol under the
// selected codebook. It fails with quadrans.ErrSymbolRange when the symbol is
// outside [0,3].
func BinarizeSymbol(symbol int, bin Binarization) ([]int, error) {
	if symbol < 0 || symbol >= quadrans.AlphabetSize {
		return nil, errors.Wrapf(quadrans.ErrSymbolRange, "symbol %d (must be in [0..3])", symbol)
	}

	var code []int

	switch bin {
	case BinarizationEfficient:
		code = _EFFICIENT_TABLE[symbol]
	case BinarizationInefficient:
		code = _INEFFICIENT_TABLE[symbol]
	default:
		return nil, errors.Wrapf(quadrans.ErrSymbolRange, "unknown binarization %d", bin)
	}

	res := make([]int, len(code))
	copy(res, code)
	return res, nil
}

// BinarizeSequence expands a symbol sequence into a single flat bit sequence
// by concatenating the per-symbol codes in order.
func BinarizeSequence(symbols []int, bin Binarization) ([]int, error) {
	bits := make([]int, 0, 4*len(symbols))

	for i, s := range symbols {
		code, err := BinarizeSymbol(s, bin)

		if err != nil {
			return nil, errors.Wrapf(err, "at index %d", i)
		}

		bits = append(bits, code...)
	}

	return bits, nil
}

// PackBits packs a bit sequence into bytes, LSB first, zero padding the last
// byte. The result carries no header and is used for size inspection only.
func PackBits(bits []int) []byte {
	bw := bitstream.NewBitWriter()

	for _, b := range bits {
		bw.WriteBit(b)
	}

	return bw.Flush()
}
