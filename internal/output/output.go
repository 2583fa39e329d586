// Package output renders found keys as labeled text records and appends
// them to the result file. It is the only place private keys are printed.
package output

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Amr-9/hexseed/pkg/generator"
	"github.com/Amr-9/hexseed/pkg/generator/composer"
	"github.com/Amr-9/hexseed/pkg/generator/profanity"
	"github.com/Amr-9/hexseed/pkg/generator/solana"
)

// Label widths of the two record layouts.
const (
	addressLabelWidth   = 18
	delegatedLabelWidth = 20
)

// Mnemonic table geometry: 24 words in 6 rows of 4, numbered down columns.
const (
	tableRows     = 6
	tableCols     = 4
	tableNumWidth = 2
	tableColWidth = 12
)

type record struct {
	width int
	b     strings.Builder
}

func (r *record) field(label, value string) {
	fmt.Fprintf(&r.b, "\n%-*s%s", r.width, label+": ", value)
}

func (r *record) String() string {
	return r.b.String() + "\n"
}

// MnemonicTable lays the phrase out as a numbered 6x4 grid.
func MnemonicTable(phrase string) string {
	words := strings.Fields(phrase)
	var b strings.Builder
	for row := 0; row < tableRows; row++ {
		var line strings.Builder
		for col := 0; col < tableCols; col++ {
			idx := row + col*tableRows
			if idx >= len(words) {
				continue
			}
			fmt.Fprintf(&line, "%-*d) %-*s  ", tableNumWidth, idx+1, tableColWidth-(tableNumWidth+3), words[idx])
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
		b.WriteByte('\n')
	}
	return b.String()
}

// PrivateKeyString renders a private key in the form wallets for chain import.
func PrivateKeyString(chain generator.Chain, key []byte) (string, error) {
	if chain == generator.Solana {
		return solana.SecretKey(key)
	}
	return "0x" + hex.EncodeToString(key), nil
}

// AddressRecord renders a CPU search result.
func AddressRecord(res generator.Result) (string, error) {
	r := &record{width: addressLabelWidth}
	if !res.ContractAddress.IsZero() {
		r.field("Vanity Contract", res.ContractAddress.Value)
	}
	r.field("Vanity Address", res.Address.Value)
	if res.EVMAddress != "" {
		r.field("EVM Address", res.EVMAddress)
	}
	if res.Chain == generator.Aptos {
		r.field("Public Key", "0x"+hex.EncodeToString(res.Key.PublicKey))
	}
	if res.Mnemonic != nil {
		r.field("Derivation Path", res.Mnemonic.Path)
		fmt.Fprintf(&r.b, "\n%-*s\n%s", delegatedLabelWidth, "24-Word Phrase: ", MnemonicTable(res.Mnemonic.Phrase))
	}
	priv, err := PrivateKeyString(res.Chain, res.Key.PrivateKey)
	if err != nil {
		return "", err
	}
	r.field("Private Key", priv)
	return r.String(), nil
}

// DelegatedRecord renders a delegated search result.
func DelegatedRecord(res *profanity.Result) string {
	r := &record{width: delegatedLabelWidth}
	r.field("24-Word Phrase", res.Mnemonic.Phrase)
	r.field("Derivation Path", res.Mnemonic.Path)
	r.field("Vanity Address", res.VanityAddress)
	r.field("Final Address", res.FinalAddress.Value)
	if !res.ContractAddress.IsZero() {
		r.field("Vanity Contract", res.ContractAddress.Value)
	}
	if res.Chain == generator.Tron {
		r.field("EVM Address", res.EVMAddress)
	}
	r.field("Final Private Key", "0x"+hex.EncodeToString(res.FinalKey))
	r.field("Seed Private Key", "0x"+hex.EncodeToString(res.SeedKey))
	r.field("Profanity Private Key", "0x"+hex.EncodeToString(res.TweakKey))
	return r.String()
}

// RecoveryRecord renders the derivation utility output.
func RecoveryRecord(rec *composer.Recovery) string {
	r := &record{width: delegatedLabelWidth}
	r.field("Derivation Path", rec.Path)
	r.field("Private Key", "0x"+hex.EncodeToString(rec.SeedKey))
	r.field("EVM Address", rec.EVMAddress)
	if rec.Chain != generator.EVM {
		r.field(strings.ToUpper(rec.Chain.String())+" Address", rec.Address.Value)
	}
	if rec.HasFinal() {
		r.field("Final Private Key", "0x"+hex.EncodeToString(rec.FinalKey))
		r.field("Final EVM Address", rec.FinalEVMAddress)
		if rec.Chain != generator.EVM {
			r.field("Final Address", rec.FinalAddress.Value)
		}
	}
	return r.String()
}

// Sink appends records to a file, or writes them to a stream when no file
// is configured. It is safe for concurrent use.
type Sink struct {
	mu     sync.Mutex
	path   string
	stdout io.Writer
}

// NewSink creates a Sink. An empty path writes to stdout.
func NewSink(path string, stdout io.Writer) *Sink {
	return &Sink{path: path, stdout: stdout}
}

// Path returns the output file, or "" for stdout.
func (s *Sink) Path() string {
	return s.path
}

// Write appends content. Parent directories are created and the file is
// readable only by its owner.
func (s *Sink) Write(content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		_, err := io.WriteString(s.stdout, content)
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open output file: %w", err)
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return fmt.Errorf("write output file: %w", err)
	}
	return f.Close()
}
