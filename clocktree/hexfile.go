package clocktree

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// ParseHexExport reads a register export as written by TICS Pro
// ("Export Hex Register Values"). Each non-empty line ends with a 24-bit
// hex word, optionally preceded by a register label:
//
//	R0 (INIT)	0x000090
//	0x000010
//
// Text after '#' is ignored.
func ParseHexExport(r io.Reader) ([]Word, error) {
	var words []Word
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		tok := fields[len(fields)-1]
		if !strings.HasPrefix(tok, "0x") && !strings.HasPrefix(tok, "0X") {
			return nil, fmt.Errorf("line %d: expected hex word, got %q", lineNo, tok)
		}
		v, err := strconv.ParseUint(tok[2:], 16, 24)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		words = append(words, Word(v))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("no register words found")
	}
	return words, nil
}

// RegisterFromWord splits a conditioner export word into address and data.
// Words with the R/W or W1/W0 bits set are not write commands.
func RegisterFromWord(w Word) (Register, error) {
	if w>>21 != 0 {
		return Register{}, fmt.Errorf("word %s is not a conditioner write", w)
	}
	return Register{Address: uint16(w >> 8), Value: uint8(w)}, nil
}

// LoadConditionerImage reads a conditioner image from a hex export file.
func LoadConditionerImage(path string, delay time.Duration) (*Image[Register], error) {
	words, err := readHexExport(path)
	if err != nil {
		return nil, err
	}
	regs := make([]Register, len(words))
	for i, w := range words {
		if regs[i], err = RegisterFromWord(w); err != nil {
			return nil, fmt.Errorf("%s: entry %d: %w", path, i, err)
		}
	}
	return NewImage("lmk04828", regs, delay), nil
}

// LoadSynthesizerImage reads a synthesizer image from a hex export file.
func LoadSynthesizerImage(path string, delay time.Duration) (*Image[Word], error) {
	words, err := readHexExport(path)
	if err != nil {
		return nil, err
	}
	for i, w := range words {
		if w.IsRead() {
			return nil, fmt.Errorf("%s: entry %d: word %s is not a synthesizer write", path, i, w)
		}
	}
	return NewImage("lmx2594", words, delay), nil
}

func readHexExport(path string) ([]Word, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	words, err := ParseHexExport(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return words, nil
}
