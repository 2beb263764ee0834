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

	"github.com/pkg/errors"

	quadrans "github.com/quadrans/quadrans"
)

// Static-model rANS coder for the 4-symbol alphabet.
// See "Asymmetric Numeral System" by Jarek Duda at http://arxiv.org/abs/0902.0271
// Renormalization follows the byte-wise convention of https://github.com/rygorous/ryg_rans
//
// Stream layout (all fields little-endian):
//
//	[0..3]   symbol count N
//	[4..11]  freq[0..3], 16 bits each
//	[12..]   coded payload; the last 4 bytes hold the final state,
//	         least significant byte first

const (
	// RANSTotalFreq is the fixed total the per-symbol frequencies are
	// normalized to. The cumulative table partitions [0, RANSTotalFreq)
	// exactly.
	RANSTotalFreq = 1 << _RANS_FREQ_BITS

	_RANS_FREQ_BITS   = 12
	_RANS_LOW_BOUND   = uint32(1 << 23) // state renormalization lower bound
	_RANS_HEADER_SIZE = 12
)

// ransFrequencies scales a raw histogram to frequencies summing exactly to
// RANSTotalFreq. Every symbol keeps a frequency of at least 1, even when
// absent from the input, so any symbol stays representable. The correction
// is deterministic: a shortfall goes to symbol 0, an excess is repeatedly
// taken from the currently largest frequency.
func ransFrequencies(counts [quadrans.AlphabetSize]uint32) [quadrans.AlphabetSize]uint32 {
	sum := uint64(0)

	for _, c := range counts {
		sum += uint64(c)
	}

	var freqs [quadrans.AlphabetSize]uint32

	for k, c := range counts {
		if c == 0 {
			freqs[k] = 1
			continue
		}

		scaled := uint64(c) * RANSTotalFreq / sum

		if scaled == 0 {
			scaled = 1
		}

		freqs[k] = uint32(scaled)
	}

	total := uint32(0)

	for _, f := range freqs {
		total += f
	}

	if total < RANSTotalFreq {
		freqs[0] += RANSTotalFreq - total
	} else if total > RANSTotalFreq {
		for diff := total - RANSTotalFreq; diff > 0; {
			maxIdx := 0

			for k := 1; k < quadrans.AlphabetSize; k++ {
				if freqs[k] > freqs[maxIdx] {
					maxIdx = k
				}
			}

			if freqs[maxIdx] <= 1 {
				break
			}

			freqs[maxIdx]--
			diff--
		}
	}

	return freqs
}

func ransCumulative(freqs [quadrans.AlphabetSize]uint32) [quadrans.AlphabetSize]uint32 {
	var cum [quadrans.AlphabetSize]uint32

	for k := 1; k < quadrans.AlphabetSize; k++ {
		cum[k] = cum[k-1] + freqs[k-1]
	}

	return cum
}

// RANSEncode compresses a symbol sequence directly, without binarization.
// An empty input yields an empty buffer. Symbols outside [0,3] fail with
// quadrans.ErrSymbolRange.
func RANSEncode(symbols []int) ([]byte, error) {
	if len(symbols) == 0 {
		return []byte{}, nil
	}

	var counts [quadrans.AlphabetSize]uint32

	for i, s := range symbols {
		if s < 0 || s >= quadrans.AlphabetSize {
			return nil, errors.Wrapf(quadrans.ErrSymbolRange, "symbol %d at index %d (must be in [0..3])", s, i)
		}

		counts[s]++
	}

	freqs := ransFrequencies(counts)
	cum := ransCumulative(freqs)

	out := make([]byte, _RANS_HEADER_SIZE, _RANS_HEADER_SIZE+4+len(symbols))
	binary.LittleEndian.PutUint32(out[0:], uint32(len(symbols)))

	for k := 0; k < quadrans.AlphabetSize; k++ {
		binary.LittleEndian.PutUint16(out[4+2*k:], uint16(freqs[k]))
	}

	x := _RANS_LOW_BOUND

	// Symbols are processed in reverse input order: rANS unwinds its state
	// transforms last-in first-out, so the decoder recovers the sequence
	// front to back.
	for i := len(symbols) - 1; i >= 0; i-- {
		s := symbols[i]
		f := freqs[s]

		// Renormalize before the transform so the post-transform state
		// stays within 31 bits
		for x >= ((_RANS_LOW_BOUND>>_RANS_FREQ_BITS)<<8)*f {
			out = append(out, byte(x))
			x >>= 8
		}

		x = (x/f)*RANSTotalFreq + (x % f) + cum[s]
	}

	// Flush the final state, least significant byte first
	for i := 0; i < 4; i++ {
		out = append(out, byte(x))
		x >>= 8
	}

	return out, nil
}

// RANSDecode inverts RANSEncode. The empty stream decodes to the empty
// sequence; any other stream shorter than the header fails with
// quadrans.ErrTruncatedStream, and a header with a zero frequency or whose
// frequencies do not sum to RANSTotalFreq fails with
// quadrans.ErrCorruptHeader.
func RANSDecode(stream []byte) ([]int, error) {
	if len(stream) == 0 {
		return []int{}, nil
	}

	if len(stream) < _RANS_HEADER_SIZE {
		return nil, errors.Wrapf(quadrans.ErrTruncatedStream, "%d bytes, header needs %d", len(stream), _RANS_HEADER_SIZE)
	}

	n := binary.LittleEndian.Uint32(stream[0:])

	var freqs [quadrans.AlphabetSize]uint32

	for k := 0; k < quadrans.AlphabetSize; k++ {
		freqs[k] = uint32(binary.LittleEndian.Uint16(stream[4+2*k:]))

		if freqs[k] == 0 {
			return nil, errors.Wrapf(quadrans.ErrCorruptHeader, "zero frequency for symbol %d", k)
		}
	}

	cum := ransCumulative(freqs)

	if total := cum[quadrans.AlphabetSize-1] + freqs[quadrans.AlphabetSize-1]; total != RANSTotalFreq {
		return nil, errors.Wrapf(quadrans.ErrCorruptHeader, "total frequency %d (must be %d)", total, RANSTotalFreq)
	}

	if len(stream) < _RANS_HEADER_SIZE+4 {
		return nil, errors.Wrapf(quadrans.ErrTruncatedStream, "%d bytes, no final state", len(stream))
	}

	// The final state sits at the stream tail; coded bytes are consumed
	// backwards from just before it, down to the end of the header
	idx := len(stream) - 4
	x := binary.LittleEndian.Uint32(stream[idx:])

	out := make([]int, n)

	for i := range out {
		xMod := x % RANSTotalFreq
		xDiv := x / RANSTotalFreq

		// Locate the symbol interval containing xMod; the alphabet has 4
		// entries, a linear scan is fine
		s := quadrans.AlphabetSize - 1

		for k := 0; k < quadrans.AlphabetSize; k++ {
			if xMod < cum[k]+freqs[k] {
				s = k
				break
			}
		}

		out[i] = s
		x = freqs[s]*xDiv + (xMod - cum[s])

		for x < _RANS_LOW_BOUND && idx > _RANS_HEADER_SIZE {
			idx--
			x = (x << 8) | uint32(stream[idx])
		}
	}

	return out, nil
}
