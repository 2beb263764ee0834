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

// Package quadrans defines the shared constants and the error taxonomy of the
// quadrans entropy-coding toolkit.
//
// The toolkit operates on a fixed 4-symbol alphabet {0,1,2,3} and provides
// bit-level stream primitives, two fixed binarization codebooks, a static
// binary range coder and a static rANS coder. The implementations live in the
// bitstream and entropy sub-packages; the app package contains a driver that
// compares the coders on a synthetic source.
//
// Every encode or decode call is a pure function from its input buffer to a
// freshly allocated output buffer. The only shared state is a set of
// immutable lookup tables, so independent calls are safe to run concurrently.
package quadrans

import (
	"github.com/pkg/errors"
)

// AlphabetSize is the fixed number of source symbols. Every symbol handled by
// the toolkit must be in [0, AlphabetSize).
const AlphabetSize = 4

// The error kinds surfaced by the toolkit. They are sentinel values: call
// sites wrap them with context and callers classify failures with errors.Is
// or errors.Cause.
var (
	// ErrSymbolRange reports a symbol or field value outside its domain.
	ErrSymbolRange = errors.New("symbol out of range")

	// ErrTruncatedStream reports a stream shorter than its declared header
	// or state initialization bytes require.
	ErrTruncatedStream = errors.New("truncated stream")

	// ErrCorruptHeader reports a structurally invalid header field.
	ErrCorruptHeader = errors.New("corrupt header")

	// ErrOutOfData reports a bit-level read past the end of the input.
	ErrOutOfData = errors.New("out of data")
)
