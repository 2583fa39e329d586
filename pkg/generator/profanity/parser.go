package profanity

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

var (
	addressRe = regexp.MustCompile(`(?i)\baddress:\s*0x([0-9a-f]{40})\b`)
	privateRe = regexp.MustCompile(`(?i)\bprivate:\s*(?:0x)?([0-9a-f]{64})\b`)
)

// Tweak is the untrusted private-key fragment and address printed by the tool.
type Tweak struct {
	PrivateKey []byte
	Address    string // 0x-prefixed, lower case
}

// Parser accumulates tool output line by line. Each time the tool improves
// its score it prints a new pair, so the last address and the last private
// key seen win.
type Parser struct {
	address string
	private string
	raw     strings.Builder
}

// Feed consumes one line of output.
func (p *Parser) Feed(line string) {
	p.raw.WriteString(line)
	p.raw.WriteByte('\n')
	if m := addressRe.FindStringSubmatch(line); m != nil {
		p.address = "0x" + strings.ToLower(m[1])
	}
	if m := privateRe.FindStringSubmatch(line); m != nil {
		p.private = strings.ToLower(m[1])
	}
}

// Complete reports whether both an address and a private key were seen.
func (p *Parser) Complete() bool {
	return p.address != "" && p.private != ""
}

// Address returns the last address seen, if any.
func (p *Parser) Address() string {
	return p.address
}

// Result returns the last complete tweak. A partial result is an error that
// carries the raw output.
func (p *Parser) Result() (Tweak, error) {
	if !p.Complete() {
		return Tweak{}, fmt.Errorf("%w: address or private key missing in output:\n%s",
			ErrUnparsableOutput, tail(p.raw.String(), 2048))
	}
	key, err := hex.DecodeString(p.private)
	if err != nil {
		return Tweak{}, fmt.Errorf("%w: %v", ErrUnparsableOutput, err)
	}
	return Tweak{PrivateKey: key, Address: p.address}, nil
}

// ParseOutput parses a complete output capture.
func ParseOutput(output string) (Tweak, error) {
	var p Parser
	sc := bufio.NewScanner(strings.NewReader(output))
	for sc.Scan() {
		p.Feed(sc.Text())
	}
	return p.Result()
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
