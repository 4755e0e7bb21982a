// Package loader reads hexadecimal instruction images: whitespace-separated
// 32-bit words in hex, one instruction per word, no 0x prefix required.
package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Read parses an instruction image from r. Words are loaded in order; the
// caller places them at the start of instruction memory.
func Read(r io.Reader) ([]uint32, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	var words []uint32
	for scanner.Scan() {
		tok := strings.TrimPrefix(strings.ToLower(scanner.Text()), "0x")
		v, err := strconv.ParseUint(tok, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("bad instruction word %q at position %d: %w",
				scanner.Text(), len(words), err)
		}
		words = append(words, uint32(v))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// ReadFile reads an instruction image from the named file.
func ReadFile(path string) ([]uint32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	words, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return words, nil
}
