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
	"encoding/binary"
	"errors"
	"math/rand"
	"testing"

	quadrans "github.com/quadrans/quadrans"
)

func ransRoundtrip(t *testing.T, symbols []int) []byte {
	t.Helper()
	stream, err := RANSEncode(symbols)

	if err != nil {
		t.Fatalf("encode failed for %d symbols: %v", len(symbols), err)
	}

	decoded, err := RANSDecode(stream)

	if err != nil {
		t.Fatalf("decode failed for %d symbols: %v", len(symbols), err)
	}

	if sameBits(symbols, decoded) == false {
		t.Fatalf("roundtrip mismatch for %d symbols", len(symbols))
	}

	return stream
}

func TestRANSRoundtripFixed(t *testing.T) {
	cases := [][]int{
		{0},
		{3},
		{1, 1},
		{3, 0, 3, 0, 3},
		{0, 1, 2, 3},
		{2, 2, 2, 2, 2, 2, 2, 1},
	}

	for _, symbols := range cases {
		ransRoundtrip(t, symbols)
	}
}

func TestRANSRoundtripSingleSymbolRuns(t *testing.T) {
	// Degenerate histograms force frequencies of 1 for absent symbols
	for s := 0; s < quadrans.AlphabetSize; s++ {
		for _, n := range []int{1, 10, 1000} {
			symbols := make([]int, n)

			for i := range symbols {
				symbols[i] = s
			}

			ransRoundtrip(t, symbols)
		}
	}
}

func TestRANSRoundtripRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(123))

	for trial := 0; trial < 300; trial++ {
		n := 1 + rng.Intn(2000)
		symbols := make([]int, n)

		for i := range symbols {
			// Mix of skewed and uniform sources
			if trial&1 == 0 {
				d := rng.Intn(100)

				switch {
				case d < 70:
					symbols[i] = 0
				case d < 80:
					symbols[i] = 1
				case d < 90:
					symbols[i] = 2
				default:
					symbols[i] = 3
				}
			} else {
				symbols[i] = rng.Intn(quadrans.AlphabetSize)
			}
		}

		ransRoundtrip(t, symbols)
	}
}

func TestRANSFrequencyInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(77))

	for trial := 0; trial < 100; trial++ {
		n := 1 + rng.Intn(500)
		symbols := make([]int, n)

		for i := range symbols {
			symbols[i] = rng.Intn(quadrans.AlphabetSize)
		}

		stream, err := RANSEncode(symbols)

		if err != nil {
			t.Fatalf("encode failed: %v", err)
		}

		total := uint32(0)

		for k := 0; k < quadrans.AlphabetSize; k++ {
			f := uint32(binary.LittleEndian.Uint16(stream[4+2*k:]))

			if f == 0 {
				t.Fatalf("trial %d: stored frequency of symbol %d is zero", trial, k)
			}

			total += f
		}

		if total != RANSTotalFreq {
			t.Fatalf("trial %d: frequencies sum to %d, expected %d", trial, total, RANSTotalFreq)
		}
	}
}

func TestRANSHeaderLayout(t *testing.T) {
	stream, err := RANSEncode([]int{0, 1, 2, 3})

	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	if binary.LittleEndian.Uint32(stream[0:]) != 4 {
		t.Fatalf("bad symbol count field")
	}

	// Uniform histogram scales to 1024 per symbol
	for k := 0; k < quadrans.AlphabetSize; k++ {
		if f := binary.LittleEndian.Uint16(stream[4+2*k:]); f != 1024 {
			t.Fatalf("symbol %d: expected frequency 1024, got %d", k, f)
		}
	}
}

func TestRANSEmpty(t *testing.T) {
	stream, err := RANSEncode(nil)

	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	if len(stream) != 0 {
		t.Fatalf("expected empty buffer, got %d bytes", len(stream))
	}

	decoded, err := RANSDecode(stream)

	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if len(decoded) != 0 {
		t.Fatalf("expected empty sequence, got %d symbols", len(decoded))
	}
}

func TestRANSEncodeSymbolRange(t *testing.T) {
	for _, symbols := range [][]int{{4}, {-1}, {0, 1, 7}} {
		if _, err := RANSEncode(symbols); errors.Is(err, quadrans.ErrSymbolRange) == false {
			t.Fatalf("expected ErrSymbolRange for %v, got %v", symbols, err)
		}
	}
}

func TestRANSDecodeTruncated(t *testing.T) {
	if _, err := RANSDecode(make([]byte, 5)); errors.Is(err, quadrans.ErrTruncatedStream) == false {
		t.Fatalf("expected ErrTruncatedStream for 5 byte stream, got %v", err)
	}

	// Valid header but no final state bytes
	hdr := make([]byte, 12)
	binary.LittleEndian.PutUint32(hdr[0:], 3)

	for k := 0; k < quadrans.AlphabetSize; k++ {
		binary.LittleEndian.PutUint16(hdr[4+2*k:], 1024)
	}

	if _, err := RANSDecode(hdr); errors.Is(err, quadrans.ErrTruncatedStream) == false {
		t.Fatalf("expected ErrTruncatedStream for missing state, got %v", err)
	}
}

func TestRANSDecodeCorruptHeader(t *testing.T) {
	// Frequencies sum to 4000 instead of 4096
	stream := make([]byte, 16)
	binary.LittleEndian.PutUint32(stream[0:], 1)

	for k := 0; k < quadrans.AlphabetSize; k++ {
		binary.LittleEndian.PutUint16(stream[4+2*k:], 1000)
	}

	if _, err := RANSDecode(stream); errors.Is(err, quadrans.ErrCorruptHeader) == false {
		t.Fatalf("expected ErrCorruptHeader for bad total, got %v", err)
	}

	// Zero frequency
	good, err := RANSEncode([]int{0, 1, 2, 3})

	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	binary.LittleEndian.PutUint16(good[6:], 0)

	if _, err := RANSDecode(good); errors.Is(err, quadrans.ErrCorruptHeader) == false {
		t.Fatalf("expected ErrCorruptHeader for zero frequency, got %v", err)
	}
}

func TestRANSCompressesSkewedInput(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	symbols := make([]int, 40000)

	for i := range symbols {
		if d := rng.Intn(100); d >= 70 {
			symbols[i] = 1 + (d-70)/10
		}
	}

	stream := ransRoundtrip(t, symbols)

	// H ~ 1.36 bits/symbol, so ~6800 bytes; 2 bits/symbol raw is 10000
	if len(stream) >= 10000 {
		t.Fatalf("skewed input did not compress: %d bytes", len(stream))
	}
}
