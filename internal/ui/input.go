package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Amr-9/hexseed/pkg/generator/hd"
)

// ErrNoInput is returned when the input stream ends before an answer.
var ErrNoInput = errors.New("no input")

// Prompter asks for the values the recover command needs.
type Prompter struct {
	reader *bufio.Reader
	w      io.Writer
}

// NewPrompter reads answers from r and writes prompts to w.
func NewPrompter(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{reader: bufio.NewReader(r), w: w}
}

func (p *Prompter) ask(question string) (string, error) {
	cyan.Fprint(p.w, "    "+question)
	fmt.Fprint(p.w, " ")
	line, err := p.reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		if err == io.EOF {
			return "", ErrNoInput
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Mnemonic reads a space-separated phrase.
func (p *Prompter) Mnemonic() (string, error) {
	phrase, err := p.ask("Mnemonic phrase (space-separated):")
	if err != nil {
		return "", err
	}
	return hd.NormalizeMnemonic(phrase), nil
}

// Index reads an account or address index in 0-99999.
func (p *Prompter) Index(label string) (uint32, error) {
	answer, err := p.ask(fmt.Sprintf("%s index (0-%d):", label, hd.MaxPathIndex))
	if err != nil {
		return 0, err
	}
	return ParseIndex(answer)
}

// ParseIndex validates an account or address index.
func ParseIndex(s string) (uint32, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil || n > hd.MaxPathIndex {
		return 0, fmt.Errorf("index must be a number between 0 and %d, got %q", hd.MaxPathIndex, s)
	}
	return uint32(n), nil
}
