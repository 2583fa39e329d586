package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Amr-9/hexseed/pkg/generator"
	"github.com/Amr-9/hexseed/pkg/generator/codec"
	"github.com/Amr-9/hexseed/pkg/generator/cpu"
	"github.com/Amr-9/hexseed/pkg/generator/profanity"
)

// Errors
var (
	ErrInvalidWorkers = errors.New("workers must be at least 1")
	ErrInvalidCount   = errors.New("number of addresses must be at least 1")
	ErrNoMode         = errors.New("must specify one of --matching, --suffix, --leading, --leading-range or --zero-bytes")
	ErrMultipleModes  = errors.New("--matching/--suffix, --leading, --leading-range and --zero-bytes are mutually exclusive")
)

// Config holds the application configuration. The CLI fills it once and
// passes it down read-only.
type Config struct {
	Chain         string
	Prefixes      []string
	Suffixes      []string
	CaseSensitive bool
	Contract      bool
	Workers       int
	Count         int
	Output        string
	Verbose       bool
	LogFile       string

	Profanity ProfanityConfig
	Recover   RecoverConfig
}

// ProfanityConfig holds the delegated search flags.
type ProfanityConfig struct {
	ToolPath     string
	Matching     string
	Suffix       string
	Leading      string
	LeadingRange bool
	Min          int
	Max          int
	ZeroBytes    bool
	Timeout      time.Duration // 0 runs until interrupted
}

// RecoverConfig holds the derivation utility flags.
type RecoverConfig struct {
	Account uint32
	Index   uint32
	Tweak   string
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	return &Config{
		Chain:   generator.EVM.String(),
		Workers: cpu.DefaultWorkers(),
		Count:   1,
		Profanity: ProfanityConfig{
			ToolPath: profanity.DefaultToolPath,
			Max:      15,
		},
	}
}

// SplitList splits a comma-separated pattern list, dropping empty entries.
func SplitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ParsedChain resolves the chain name.
func (c *Config) ParsedChain() (generator.Chain, error) {
	return generator.ParseChain(c.Chain)
}

// Criteria builds the match criteria for the address search.
func (c *Config) Criteria() (*generator.MatchCriteria, error) {
	chain, err := c.ParsedChain()
	if err != nil {
		return nil, err
	}
	criteria := &generator.MatchCriteria{
		Chain:         chain,
		Prefixes:      c.Prefixes,
		Suffixes:      c.Suffixes,
		CaseSensitive: c.CaseSensitive,
		Contract:      c.Contract,
	}
	if err := codec.ValidateCriteria(criteria); err != nil {
		return nil, err
	}
	return criteria, nil
}

// Validate validates the configuration for the address command.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return ErrInvalidWorkers
	}
	if c.Count < 1 {
		return ErrInvalidCount
	}
	_, err := c.Criteria()
	return err
}

// ProfanityOptions builds and validates the delegated search options.
func (c *Config) ProfanityOptions() (*profanity.Options, error) {
	chain, err := c.ParsedChain()
	if err != nil {
		return nil, err
	}
	p := c.Profanity
	opts := &profanity.Options{
		ToolPath: p.ToolPath,
		Chain:    chain,
		Contract: c.Contract,
	}

	modes := 0
	if p.Matching != "" || p.Suffix != "" {
		modes++
		opts.Mode = profanity.ModeMatching
		opts.Criteria = &generator.MatchCriteria{
			Chain:    chain,
			Prefixes: SplitList(p.Matching),
			Suffixes: SplitList(p.Suffix),
			Contract: c.Contract,
		}
	}
	if p.Leading != "" {
		modes++
		opts.Mode = profanity.ModeLeading
		opts.Leading = p.Leading
	}
	if p.LeadingRange {
		modes++
		opts.Mode = profanity.ModeLeadingRange
		opts.RangeMin, opts.RangeMax = p.Min, p.Max
	}
	if p.ZeroBytes {
		modes++
		opts.Mode = profanity.ModeZeroBytes
	}

	switch {
	case modes == 0:
		return nil, ErrNoMode
	case modes > 1:
		return nil, ErrMultipleModes
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// Describe returns a one-line summary for logs.
func (c *Config) Describe() string {
	return fmt.Sprintf("chain=%s workers=%d count=%d case-sensitive=%t contract=%t",
		c.Chain, c.Workers, c.Count, c.CaseSensitive, c.Contract)
}
