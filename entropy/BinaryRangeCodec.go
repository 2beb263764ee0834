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

// Binary range coder with a static probability model estimated once from the
// whole input. Carry-less renormalization derived from the Order 0 range
// coder by Dmitry Subbotin (G.N.N. Martin, Southampton 1979), reduced to a
// 32 bit state with byte-wide digits.
//
// Stream layout (all fields little-endian):
//
//	[0..3]  bit count
//	[4..7]  count0
//	[8..11] count1
//	[12..]  coded payload; the last 4 payload bytes flush the 'low'
//	        register, most significant byte first

const (
	_RANGE_HEADER_SIZE = 12
	_RANGE_TOP_MASK    = uint32(0xFF000000) // digit emitted when stable across the interval
	_RANGE_BOTTOM      = uint32(0x0000FFFF) // underflow threshold
	_RANGE_PROB_BITS   = 12                 // fixed-point probability precision
	_RANGE_PROB_SCALE  = uint32(1 << _RANGE_PROB_BITS)
)

// prob0FromCounts quantizes the global bit counts to a fixed-point
// probability of zero in [1, scale-1]. Encoder and decoder must derive the
// identical value from the transmitted counts.
func prob0FromCounts(count0, count1 uint32) uint32 {
	p := uint32(uint64(count0) * uint64(_RANGE_PROB_SCALE) / (uint64(count0) + uint64(count1)))

	if p == 0 {
		p = 1
	} else if p >= _RANGE_PROB_SCALE {
		p = _RANGE_PROB_SCALE - 1
	}

	return p
}

type binaryRangeEncoder struct {
	low   uint32
	rng   uint32
	prob0 uint32
	out   []byte
}

func (this *binaryRangeEncoder) encodeBit(bit int) {
	split := (this.rng >> _RANGE_PROB_BITS) * this.prob0

	if bit == 0 {
		this.rng = split
	} else {
		this.low += split
		this.rng -= split
	}

	this.renormalize()
}

// renormalize emits the top byte of 'low' while it is stable across the
// interval, clamping the range when the interval straddles a digit boundary
// and has become too small. Emitted bytes are never revised, so no carry is
// ever propagated into the output.
func (this *binaryRangeEncoder) renormalize() {
	for {
		if (this.low^(this.low+this.rng))&_RANGE_TOP_MASK != 0 {
			if this.rng > _RANGE_BOTTOM {
				break
			}

			this.rng = -this.low & _RANGE_BOTTOM
		}

		this.out = append(this.out, byte(this.low>>24))
		this.low <<= 8
		this.rng <<= 8
	}
}

func (this *binaryRangeEncoder) flush() {
	for i := 0; i < 4; i++ {
		this.out = append(this.out, byte(this.low>>24))
		this.low <<= 8
	}
}

// RangeEncodeBits compresses a bit sequence with a single global probability
// estimate. Any nonzero bit value counts as 1. The returned stream is
// self-describing; an empty input still produces the 12 byte header and the
// 4 byte state flush.
func RangeEncodeBits(bits []int) []byte {
	count0 := uint32(0)
	count1 := uint32(0)

	for _, b := range bits {
		if b == 0 {
			count0++
		} else {
			count1++
		}
	}

	// Avoid degenerate probabilities on all-0 or all-1 inputs
	if count0 == 0 {
		count0 = 1
	}

	if count1 == 0 {
		count1 = 1
	}

	out := make([]byte, _RANGE_HEADER_SIZE, _RANGE_HEADER_SIZE+16+len(bits)/2)
	binary.LittleEndian.PutUint32(out[0:], uint32(len(bits)))
	binary.LittleEndian.PutUint32(out[4:], count0)
	binary.LittleEndian.PutUint32(out[8:], count1)

	enc := &binaryRangeEncoder{}
	enc.rng = 0xFFFFFFFF
	enc.prob0 = prob0FromCounts(count0, count1)
	enc.out = out

	for _, b := range bits {
		bit := 0

		if b != 0 {
			bit = 1
		}

		enc.encodeBit(bit)
	}

	enc.flush()
	return enc.out
}

type binaryRangeDecoder struct {
	low    uint32
	rng    uint32
	code   uint32
	prob0  uint32
	stream []byte
	offset int
}

func (this *binaryRangeDecoder) decodeBit() int {
	split := (this.rng >> _RANGE_PROB_BITS) * this.prob0
	bit := 1

	if this.code-this.low < split {
		bit = 0
		this.rng = split
	} else {
		this.low += split
		this.rng -= split
	}

	this.renormalize()
	return bit
}

// renormalize mirrors the encoder, shifting one payload byte into the code
// register per emitted digit. Bytes past the payload end read as zero.
func (this *binaryRangeDecoder) renormalize() {
	for {
		if (this.low^(this.low+this.rng))&_RANGE_TOP_MASK != 0 {
			if this.rng > _RANGE_BOTTOM {
				break
			}

			this.rng = -this.low & _RANGE_BOTTOM
		}

		next := byte(0)

		if this.offset < len(this.stream) {
			next = this.stream[this.offset]
			this.offset++
		}

		this.code = (this.code << 8) | uint32(next)
		this.low <<= 8
		this.rng <<= 8
	}
}

// RangeDecodeBits inverts RangeEncodeBits. It fails with
// quadrans.ErrTruncatedStream when the stream is shorter than the header plus
// the 4 state initialization bytes and with quadrans.ErrCorruptHeader when a
// stored count is zero.
func RangeDecodeBits(stream []byte) ([]int, error) {
	if len(stream) < _RANGE_HEADER_SIZE {
		return nil, errors.Wrapf(quadrans.ErrTruncatedStream, "%d bytes, header needs %d", len(stream), _RANGE_HEADER_SIZE)
	}

	numBits := binary.LittleEndian.Uint32(stream[0:])
	count0 := binary.LittleEndian.Uint32(stream[4:])
	count1 := binary.LittleEndian.Uint32(stream[8:])

	if count0 == 0 || count1 == 0 {
		return nil, errors.Wrapf(quadrans.ErrCorruptHeader, "zero bit count (count0=%d, count1=%d)", count0, count1)
	}

	if len(stream) < _RANGE_HEADER_SIZE+4 {
		return nil, errors.Wrapf(quadrans.ErrTruncatedStream, "%d bytes, no state initialization bytes", len(stream))
	}

	dec := &binaryRangeDecoder{}
	dec.rng = 0xFFFFFFFF
	dec.prob0 = prob0FromCounts(count0, count1)
	dec.stream = stream
	dec.offset = _RANGE_HEADER_SIZE

	for i := 0; i < 4; i++ {
		dec.code = (dec.code << 8) | uint32(stream[dec.offset])
		dec.offset++
	}

	bits := make([]int, numBits)

	for i := range bits {
		bits[i] = dec.decodeBit()
	}

	return bits, nil
}
