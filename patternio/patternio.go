// Package patternio persists and restores a simulator's pattern pool, in
// the plain-text hex pattern file format described in spec §6.
package patternio

import (
	"bufio"
	"encoding/hex"
	"io"

	"github.com/pkg/errors"

	"github.com/logisynth/aig/simulate"
)

// Save writes sim's current pool as one line per primary input: a
// hex-encoded packed bit-vector, all lines the same length.
func Save(w io.Writer, sim *simulate.Simulator, numPIs int) error {
	bw := bufio.NewWriter(w)
	for i := 0; i < numPIs; i++ {
		line := hex.EncodeToString(wordsToBytes(sim.PIWords(i)))
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return errors.Wrap(err, "writing pattern file")
		}
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "flushing pattern file")
	}
	return nil
}

// Load reads a persisted pattern file and installs it as sim's pattern
// pool wholesale, replacing whatever was there before. Pattern count is
// derived from each line's decoded length (8 bits per byte); every line
// must agree, and there must be exactly one line per primary input.
func Load(r io.Reader, sim *simulate.Simulator) error {
	scanner := bufio.NewScanner(r)
	var perPI [][]uint64
	npats := -1
	for scanner.Scan() {
		line := scanner.Text()
		raw, err := hex.DecodeString(line)
		if err != nil {
			return errors.Wrap(err, "decoding pattern file line")
		}
		bits := len(raw) * 8
		if npats == -1 {
			npats = bits
		} else if bits != npats {
			return errors.New("pattern file lines have inconsistent lengths")
		}
		perPI = append(perPI, bytesToWords(raw))
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "reading pattern file")
	}
	if npats == -1 {
		return errors.New("pattern file is empty")
	}
	sim.LoadPatterns(perPI, npats)
	return nil
}

func wordsToBytes(words []uint64) []byte {
	out := make([]byte, len(words)*8)
	for i, w := range words {
		for b := 0; b < 8; b++ {
			out[i*8+b] = byte(w >> (8 * uint(b)))
		}
	}
	return out
}

func bytesToWords(raw []byte) []uint64 {
	out := make([]uint64, (len(raw)+7)/8)
	for i, b := range raw {
		out[i/8] |= uint64(b) << (8 * uint(i%8))
	}
	return out
}
