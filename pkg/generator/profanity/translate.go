package profanity

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Amr-9/hexseed/pkg/generator"
)

// addressHexLen is the length of a 20-byte address in hex.
const addressHexLen = 40

// TranslateCriteria renders criteria as a --matching argument. A suffix is
// placed at the end of the 40-character address with X wildcards in between.
// Tron patterns address the embedded 20-byte hash and must be hex; Base58
// patterns have no fixed hex equivalent and are rejected.
func TranslateCriteria(c *generator.MatchCriteria) (string, error) {
	if c == nil || c.IsEmpty() {
		return "", fmt.Errorf("%w: --matching needs a prefix or suffix", ErrUnsupportedCriteria)
	}
	if len(c.Prefixes) > 1 || len(c.Suffixes) > 1 {
		return "", fmt.Errorf("%w: profanity2 accepts one prefix and one suffix, got %s",
			ErrUnsupportedCriteria, c.Describe())
	}

	var prefix, suffix string
	if len(c.Prefixes) == 1 {
		prefix = strings.TrimPrefix(c.Prefixes[0], "0x")
	}
	if len(c.Suffixes) == 1 {
		suffix = c.Suffixes[0]
	}
	for _, p := range []string{prefix, suffix} {
		if !isHex(p) {
			if c.Chain == generator.Tron {
				return "", fmt.Errorf("%w: tron pattern %q must be hex for the embedded address hash",
					ErrUnsupportedCriteria, p)
			}
			return "", fmt.Errorf("%w: %q is not hex", ErrUnsupportedCriteria, p)
		}
	}
	if len(prefix)+len(suffix) > addressHexLen {
		return "", fmt.Errorf("%w: prefix and suffix exceed %d characters", ErrUnsupportedCriteria, addressHexLen)
	}

	if suffix == "" {
		return strings.ToLower(prefix), nil
	}
	pad := strings.Repeat("X", addressHexLen-len(prefix)-len(suffix))
	return strings.ToLower(prefix) + pad + strings.ToLower(suffix), nil
}

// Args builds the tool's command line for a 128-character public key.
func Args(publicKeyHex string, opts *Options) ([]string, error) {
	if len(publicKeyHex) != 128 || !isHex(publicKeyHex) {
		return nil, fmt.Errorf("public key must be 128 hex characters, got %d", len(publicKeyHex))
	}
	args := []string{"-z", publicKeyHex}

	switch opts.Mode {
	case ModeMatching:
		pattern, err := TranslateCriteria(opts.Criteria)
		if err != nil {
			return nil, err
		}
		args = append(args, "--matching", pattern)
	case ModeLeading:
		args = append(args, "--leading", strings.ToLower(opts.Leading))
	case ModeLeadingRange:
		args = append(args, "--leading-range",
			"-m", strconv.Itoa(opts.RangeMin),
			"-M", strconv.Itoa(opts.RangeMax))
	case ModeZeroBytes:
		args = append(args, "--zero-bytes")
	}
	if opts.Contract {
		args = append(args, "--contract")
	}
	return args, nil
}

// satisfies reports whether a 40-character address hex fits a --matching
// pattern, where X matches any character.
func satisfies(addressHex, pattern string) bool {
	addressHex = strings.ToLower(strings.TrimPrefix(addressHex, "0x"))
	if len(addressHex) != addressHexLen || !isHex(addressHex) || len(pattern) > addressHexLen {
		return false
	}
	for i := 0; i < len(pattern); i++ {
		if pattern[i] != 'X' && pattern[i] != addressHex[i] {
			return false
		}
	}
	return true
}
