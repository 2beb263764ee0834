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

package internal

import (
	"bytes"
	"testing"
)

func TestBufferStreamRoundtrip(t *testing.T) {
	bs := NewBufferStream()
	data := []byte{1, 2, 3, 4, 5}

	if n, err := bs.Write(data); err != nil || n != len(data) {
		t.Fatalf("write failed: n=%d err=%v", n, err)
	}

	if bs.Len() != len(data) {
		t.Fatalf("expected %d unread bytes, got %d", len(data), bs.Len())
	}

	res := make([]byte, len(data))

	if n, err := bs.Read(res); err != nil || n != len(data) {
		t.Fatalf("read failed: n=%d err=%v", n, err)
	}

	if bytes.Equal(res, data) == false {
		t.Fatalf("expected %v, got %v", data, res)
	}
}

func TestBufferStreamSeeded(t *testing.T) {
	bs := NewBufferStream([]byte{9, 8, 7})

	if bs.Len() != 3 {
		t.Fatalf("expected 3 unread bytes, got %d", bs.Len())
	}
}

func TestBufferStreamClosed(t *testing.T) {
	bs := NewBufferStream()

	if err := bs.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	if _, err := bs.Write([]byte{1}); err == nil {
		t.Fatalf("expected error writing to closed stream")
	}

	if _, err := bs.Read(make([]byte, 1)); err == nil {
		t.Fatalf("expected error reading from closed stream")
	}
}
