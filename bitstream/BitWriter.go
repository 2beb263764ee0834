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

// Package bitstream converts between sequences of individual bits and packed
// byte buffers. Bits are packed LSB first: the first bit written to a byte
// occupies its least significant position.
package bitstream

import (
	"fmt"
)

// BitWriter is a bitstream writer over an in-memory byte buffer.
type BitWriter struct {
	buffer  []byte
	current byte
	bitPos  uint
	written int
}

// NewBitWriter creates a new instance of BitWriter with an empty buffer.
func NewBitWriter() *BitWriter {
	this := &BitWriter{}
	this.buffer = make([]byte, 0, 64)
	return this
}

// WriteBit appends the least significant bit of the input integer to the
// stream. A completed byte is committed to the buffer.
func (this *BitWriter) WriteBit(bit int) {
	this.current |= byte(bit&1) << this.bitPos
	this.bitPos++
	this.written++

	if this.bitPos == 8 {
		this.buffer = append(this.buffer, this.current)
		this.current = 0
		this.bitPos = 0
	}
}

// WriteBits writes the 'count' least significant bits of 'value', least
// significant bit first. It panics if the count is greater than 32.
func (this *BitWriter) WriteBits(value uint32, count uint) {
	if count > 32 {
		panic(fmt.Errorf("invalid bit count: %d (must be in [0..32])", count))
	}

	for i := uint(0); i < count; i++ {
		this.WriteBit(int(value>>i) & 1)
	}
}

// Flush commits a partially filled byte (zero padded in its unused high bits)
// and returns the full buffer. Flushing again without further writes returns
// the same buffer.
func (this *BitWriter) Flush() []byte {
	if this.bitPos != 0 {
		this.buffer = append(this.buffer, this.current)
		this.current = 0
		this.bitPos = 0
	}

	return this.buffer
}

// Written returns the number of bits written so far.
func (this *BitWriter) Written() int {
	return this.written
}
