// Package profanity delegates the vanity search to an external
// profanity2-compatible GPU tool.
//
// The tool is given only the public key of a locally derived BIP39 key. It
// searches for a tweak t such that pub(seed) + t*G has the wanted address and
// prints t. The final key (seed + t) mod n is composed and verified locally,
// so the mnemonic never leaves the process.
package profanity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Amr-9/hexseed/pkg/generator"
)

// DefaultToolPath is looked up on PATH when no explicit path is configured.
const DefaultToolPath = "profanity2"

var (
	ErrToolNotFound        = errors.New("profanity2 not found")
	ErrToolFailed          = errors.New("profanity2 failed")
	ErrUnparsableOutput    = errors.New("could not parse profanity2 output")
	ErrUnsupportedCriteria = errors.New("criteria cannot be expressed for profanity2")
	ErrPatternNotReached   = errors.New("profanity2 stopped before reaching the pattern")
)

// Mode selects the tool's scoring function.
type Mode int

const (
	ModeMatching     Mode = iota // --matching <hex with X wildcards>
	ModeLeading                  // --leading <hex char>
	ModeLeadingRange             // --leading-range -m <min> -M <max>
	ModeZeroBytes                // --zero-bytes
)

func (m Mode) String() string {
	switch m {
	case ModeMatching:
		return "matching"
	case ModeLeading:
		return "leading"
	case ModeLeadingRange:
		return "leading-range"
	case ModeZeroBytes:
		return "zero-bytes"
	default:
		return "unknown"
	}
}

// Options configures one delegated search.
type Options struct {
	ToolPath string
	Chain    generator.Chain // EVM or Tron
	Mode     Mode

	Criteria *generator.MatchCriteria // ModeMatching
	Leading  string                   // ModeLeading, a single hex character
	RangeMin int                      // ModeLeadingRange, 0-15
	RangeMax int                      // ModeLeadingRange, 0-15

	Contract bool
}

// Validate checks that the options describe a search the tool can run.
func (o *Options) Validate() error {
	if o.Chain != generator.EVM && o.Chain != generator.Tron {
		return fmt.Errorf("%w: %s, delegated search supports evm and tron", generator.ErrUnsupportedChain, o.Chain)
	}
	if o.Contract && o.Chain != generator.EVM {
		return fmt.Errorf("%w: contract mode is EVM only", ErrUnsupportedCriteria)
	}

	switch o.Mode {
	case ModeMatching:
		_, err := TranslateCriteria(o.Criteria)
		return err
	case ModeLeading:
		if len(o.Leading) != 1 || !isHex(o.Leading) {
			return fmt.Errorf("%w: --leading takes one hex character, got %q", ErrUnsupportedCriteria, o.Leading)
		}
	case ModeLeadingRange:
		if o.RangeMin < 0 || o.RangeMax > 15 || o.RangeMin > o.RangeMax {
			return fmt.Errorf("%w: leading range %d-%d must satisfy 0 <= min <= max <= 15",
				ErrUnsupportedCriteria, o.RangeMin, o.RangeMax)
		}
	case ModeZeroBytes:
	default:
		return fmt.Errorf("%w: unknown mode %d", ErrUnsupportedCriteria, int(o.Mode))
	}
	return nil
}

func (o *Options) toolPath() string {
	if o.ToolPath == "" {
		return DefaultToolPath
	}
	return o.ToolPath
}

func isHex(s string) bool {
	for _, r := range strings.ToLower(s) {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return false
		}
	}
	return true
}
