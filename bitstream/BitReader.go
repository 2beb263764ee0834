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

package bitstream

import (
	"fmt"

	"github.com/pkg/errors"

	quadrans "github.com/quadrans/quadrans"
)

// BitReader is a bitstream reader over a fixed byte buffer. Bits are consumed
// LSB first within each byte.
type BitReader struct {
	data     []byte
	position int
	bitPos   uint
	read     int
}

// NewBitReader creates a new instance of BitReader over the given buffer.
// The buffer is not copied and must not be mutated while reading.
func NewBitReader(data []byte) *BitReader {
	this := &BitReader{}
	this.data = data
	return this
}

// ReadBit returns the next bit. It fails with quadrans.ErrOutOfData when the
// cursor has run past the end of the buffer.
func (this *BitReader) ReadBit() (int, error) {
	if this.position >= len(this.data) {
		return 0, errors.Wrapf(quadrans.ErrOutOfData, "bit %d, buffer size %d bytes", this.read, len(this.data))
	}

	bit := int(this.data[this.position]>>this.bitPos) & 1
	this.bitPos++
	this.read++

	if this.bitPos == 8 {
		this.bitPos = 0
		this.position++
	}

	return bit, nil
}

// ReadBits reconstructs an unsigned value from 'count' successive bits, least
// significant bit first. It panics if the count is greater than 32.
func (this *BitReader) ReadBits(count uint) (uint32, error) {
	if count > 32 {
		panic(fmt.Errorf("invalid bit count: %d (must be in [0..32])", count))
	}

	res := uint32(0)

	for i := uint(0); i < count; i++ {
		bit, err := this.ReadBit()

		if err != nil {
			return 0, err
		}

		res |= uint32(bit) << i
	}

	return res, nil
}

// Read returns the number of bits consumed so far.
func (this *BitReader) Read() int {
	return this.read
}
