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

// Quadrans demonstration driver. Synthesizes a skewed 4-symbol source,
// runs both binarizations, the binary range coder and the rANS coder on it,
// and prints a comparison of achieved rates against the source entropy.
package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"

	"github.com/pkg/errors"

	quadrans "github.com/quadrans/quadrans"
	"github.com/quadrans/quadrans/entropy"
	"github.com/quadrans/quadrans/internal"
)

// The synthetic source draws symbols with probabilities 0.7, 0.1, 0.1, 0.1;
// symbol 0 is most probable, matching the efficient codebook's assumption.
var sourceWeights = [quadrans.AlphabetSize]int{70, 10, 10, 10}

func generateSource(n int, seed int64) []int {
	rng := rand.New(rand.NewSource(seed))
	total := 0

	for _, w := range sourceWeights {
		total += w
	}

	symbols := make([]int, n)

	for i := range symbols {
		d := rng.Intn(total)
		s := 0

		for d >= sourceWeights[s] {
			d -= sourceWeights[s]
			s++
		}

		symbols[i] = s
	}

	return symbols
}

func symbolEntropy(counts [quadrans.AlphabetSize]int, n int) float64 {
	res := 0.0

	for _, c := range counts {
		if c == 0 {
			continue
		}

		p := float64(c) / float64(n)
		res -= p * math.Log2(p)
	}

	return res
}

func binaryEntropy(bits []int) float64 {
	if len(bits) == 0 {
		return 0.0
	}

	ones := 0

	for _, b := range bits {
		ones += b & 1
	}

	n := float64(len(bits))
	res := 0.0

	if c0 := n - float64(ones); c0 > 0 {
		res -= (c0 / n) * math.Log2(c0/n)
	}

	if c1 := float64(ones); c1 > 0 {
		res -= (c1 / n) * math.Log2(c1/n)
	}

	return res
}

// stage pipes a coded stream through a BufferStream, handing exclusive
// ownership of a fresh buffer to the decode stage.
func stage(stream []byte) ([]byte, error) {
	bs := internal.NewBufferStream()

	if _, err := bs.Write(stream); err != nil {
		return nil, err
	}

	res := make([]byte, bs.Len())

	if len(res) == 0 {
		return res, nil
	}

	if _, err := bs.Read(res); err != nil {
		return nil, err
	}

	return res, nil
}

func sameSymbols(a, b []int) bool {
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

func run(size int, seed int64) error {
	symbols := generateSource(size, seed)

	var counts [quadrans.AlphabetSize]int

	for _, s := range symbols {
		counts[s]++
	}

	fmt.Printf("Number of source symbols: %d\n", size)
	fmt.Printf("Frequencies:\n")

	for k, c := range counts {
		fmt.Printf("  symbol %d: %d\n", k, c)
	}

	hSym := symbolEntropy(counts, size)
	fmt.Printf("Theoretical symbol entropy H_sym = %.6f bits/symbol\n", hSym)

	// Efficient binarization + binary range coder
	bitsGood, err := entropy.BinarizeSequence(symbols, entropy.BinarizationEfficient)

	if err != nil {
		return errors.Wrap(err, "efficient binarization failed")
	}

	packedGood := entropy.PackBits(bitsGood)
	binsPerGood := float64(len(bitsGood)) / float64(size)
	hBinGood := binaryEntropy(bitsGood)

	rangeStream, err := stage(entropy.RangeEncodeBits(bitsGood))

	if err != nil {
		return errors.Wrap(err, "staging range stream failed")
	}

	rangeBits, err := entropy.RangeDecodeBits(rangeStream)

	if err != nil {
		return errors.Wrap(err, "range decode failed")
	}

	okRange := sameSymbols(bitsGood, rangeBits)

	ones := 0

	for _, b := range bitsGood {
		ones += b & 1
	}

	pLPS := math.Min(float64(ones), float64(len(bitsGood)-ones)) / float64(len(bitsGood))
	state := entropy.FindNearestState(pLPS)

	// Inefficient binarization
	bitsBad, err := entropy.BinarizeSequence(symbols, entropy.BinarizationInefficient)

	if err != nil {
		return errors.Wrap(err, "inefficient binarization failed")
	}

	binsPerBad := float64(len(bitsBad)) / float64(size)
	hBinBad := binaryEntropy(bitsBad)

	// rANS
	encoded, err := entropy.RANSEncode(symbols)

	if err != nil {
		return errors.Wrap(err, "rANS encode failed")
	}

	ransStream, err := stage(encoded)

	if err != nil {
		return errors.Wrap(err, "staging rANS stream failed")
	}

	decoded, err := entropy.RANSDecode(ransStream)

	if err != nil {
		return errors.Wrap(err, "rANS decode failed")
	}

	okRANS := sameSymbols(symbols, decoded)
	ransRate := 8.0 * float64(len(ransStream)) / float64(size)
	rangeRate := 8.0 * float64(len(rangeStream)) / float64(size)

	fmt.Printf("\n===================================================\n")
	fmt.Printf("                 ENTROPY SUMMARY\n")
	fmt.Printf("===================================================\n")
	fmt.Printf("True source entropy (4-symbol):      %.6f bits/symbol\n\n", hSym)

	fmt.Printf("------------- Binarization (good) -----------------\n")
	fmt.Printf("bins/symbol:                         %.6f\n", binsPerGood)
	fmt.Printf("bin entropy:                         %.6f bits/bin\n", hBinGood)
	fmt.Printf("ideal coded rate:                    %.6f bits/symbol\n", hBinGood*binsPerGood)
	fmt.Printf("packed size (no coding):             %d bytes\n", len(packedGood))
	fmt.Printf("observed LPS probability:            %.6f\n", pLPS)
	fmt.Printf("nearest CABAC state:                 %d (model p=%.6f, diff %.6f)\n\n",
		state, entropy.ProbLPS(state), math.Abs(pLPS-entropy.ProbLPS(state)))

	fmt.Printf("------------- Binarization (bad) ------------------\n")
	fmt.Printf("bins/symbol:                         %.6f\n", binsPerBad)
	fmt.Printf("bin entropy:                         %.6f bits/bin\n", hBinBad)
	fmt.Printf("ideal coded rate:                    %.6f bits/symbol\n\n", hBinBad*binsPerBad)

	fmt.Printf("------------- Binary range coder ------------------\n")
	fmt.Printf("stream size:                         %d bytes\n", len(rangeStream))
	fmt.Printf("rate:                                %.6f bits/symbol\n", rangeRate)
	fmt.Printf("roundtrip OK:                        %v\n\n", okRange)

	fmt.Printf("------------- rANS --------------------------------\n")
	fmt.Printf("stream size:                         %d bytes\n", len(ransStream))
	fmt.Printf("rate:                                %.6f bits/symbol\n", ransRate)
	fmt.Printf("roundtrip OK:                        %v\n\n", okRANS)

	winner := "rANS"

	if math.Abs(rangeRate-hSym) < math.Abs(ransRate-hSym) {
		winner = "binary range coder"
	}

	fmt.Printf("===================================================\n")
	fmt.Printf("Winner (closest to entropy):         %s\n", winner)
	fmt.Printf("===================================================\n")

	if okRange == false || okRANS == false {
		return errors.New("roundtrip verification failed")
	}

	return nil
}

func main() {
	size := flag.Int("size", 1000, "number of source symbols to generate")
	seed := flag.Int64("seed", 12345, "seed of the synthetic source")
	flag.Parse()

	if *size <= 0 {
		fmt.Fprintln(os.Stderr, "size must be positive")
		os.Exit(1)
	}

	if err := run(*size, *seed); err != nil {
		fmt.Fprintf(os.Stderr, "quadrans: %+v\n", err)
		os.Exit(1)
	}
}
