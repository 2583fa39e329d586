package ui

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/Amr-9/hexseed/pkg/generator"
)

var (
	cyan   = color.New(color.FgCyan, color.Bold)
	green  = color.New(color.FgGreen, color.Bold)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	purple = color.New(color.FgMagenta, color.Bold)
	dim    = color.New(color.Faint)
)

// Console renders progress and summaries. Records with keys go through the
// output package, never here.
type Console struct {
	w io.Writer
}

// NewConsole creates a Console writing to w, usually stderr.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// PrintWelcomeBanner shows the welcome screen
func (c *Console) PrintWelcomeBanner(version string) {
	fmt.Fprintln(c.w)
	cyan.Fprintln(c.w, "  ╔══════════════════════════════════════════════════╗")
	cyan.Fprintln(c.w, "  ║   H E X S E E D                                  ║")
	cyan.Fprintf(c.w, "  ║   %-47s║\n", "mnemonic-backed vanity addresses  v"+version)
	cyan.Fprintln(c.w, "  ╚══════════════════════════════════════════════════╝")
	fmt.Fprintln(c.w)
}

// PrintSearchInfo displays search configuration
func (c *Console) PrintSearchInfo(criteria *generator.MatchCriteria, workers, count int, difficulty uint64) {
	green.Fprintf(c.w, "\n    🚀 SEARCHING ")
	fmt.Fprintf(c.w, "%s %s", strings.ToUpper(criteria.Chain.String()), cyan.Sprint(displayPattern(criteria)))
	if criteria.Contract {
		dim.Fprint(c.w, " (contract)")
	}
	dim.Fprintf(c.w, " (1/%s) │ %d workers │ %d wanted\n\n", FormatNumber(difficulty), workers, count)
}

func displayPattern(criteria *generator.MatchCriteria) string {
	lead := ""
	if criteria.Chain == generator.EVM || criteria.Chain == generator.Aptos {
		lead = "0x"
	}
	prefixes, suffixes := "", ""
	if len(criteria.Prefixes) > 0 {
		prefixes = "{" + strings.Join(criteria.Prefixes, "|") + "}"
	}
	if len(criteria.Suffixes) > 0 {
		suffixes = "{" + strings.Join(criteria.Suffixes, "|") + "}"
	}
	return lead + prefixes + "..." + suffixes
}

// PrintProgress shows animated progress bar
func (c *Console) PrintProgress(stats generator.Stats, difficulty uint64, found, target int, frame int) {
	spinners := []string{"◐", "◓", "◑", "◒"}
	spinner := spinners[frame%len(spinners)]

	diff := float64(difficulty)
	if diff == 0 {
		diff = 1
	}
	// Chance of at least one hit after this many attempts.
	progress := 1.0 - math.Exp(-float64(stats.Attempts)/diff)

	barWidth := 30
	filled := int(progress * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}
	bar := strings.Repeat("▓", filled) + strings.Repeat("░", barWidth-filled)

	fmt.Fprintf(c.w, "\r    %s %s %s │ %s │ %s │ %d/%d",
		cyan.Sprint(spinner),
		dim.Sprint(bar),
		green.Sprint(FormatHashRate(stats.HashRate)),
		yellow.Sprint(FormatNumber(stats.Attempts)),
		FormatDuration(time.Duration(stats.ElapsedSecs*float64(time.Second))),
		found, target)
}

// PrintFound reports one result without its keys.
func (c *Console) PrintFound(n, target int, address string, outputFile string) {
	c.ClearLine()
	dest := "stdout"
	if outputFile != "" {
		dest = outputFile
	}
	fmt.Fprintf(c.w, "    %s %s %s\n", green.Sprintf("✨ [%d/%d]", n, target), address, dim.Sprint("→ "+dest))
}

// PrintSuccess shows the final summary
func (c *Console) PrintSuccess(found int, elapsed time.Duration, attempts uint64) {
	fmt.Fprintln(c.w)
	green.Fprintf(c.w, "    ✔ %d address(es) found", found)
	fmt.Fprintf(c.w, "  ⏱  %s  │  📊 %s attempts\n", FormatDuration(elapsed), FormatNumber(attempts))
	red.Fprintln(c.w, "    ⚠  KEEP YOUR MNEMONIC AND PRIVATE KEYS SECRET!")
}

// PrintCancelled reports an interrupted search.
func (c *Console) PrintCancelled(found int, elapsed time.Duration, attempts uint64) {
	c.ClearLine()
	fmt.Fprintln(c.w)
	yellow.Fprint(c.w, "    ⚠ Cancelled")
	fmt.Fprintf(c.w, " │ %d found │ %s attempts │ %s\n", found, FormatNumber(attempts), FormatDuration(elapsed))
}

// PrintError shows a failure.
func (c *Console) PrintError(err error) {
	c.ClearLine()
	red.Fprintf(c.w, "\n    ✗ Error: %v\n", err)
}

// PrintStep shows a delegated search stage.
func (c *Console) PrintStep(format string, args ...any) {
	purple.Fprint(c.w, "    » ")
	fmt.Fprintf(c.w, format+"\n", args...)
}

// ClearLine clears the current line
func (c *Console) ClearLine() {
	fmt.Fprint(c.w, "\r\033[2K")
}

// EstimateDifficulty returns the expected number of attempts per match.
// Alternatives within a group add up their chances; groups multiply.
func EstimateDifficulty(criteria *generator.MatchCriteria) uint64 {
	chance := groupChance(criteria, criteria.Prefixes) * groupChance(criteria, criteria.Suffixes)
	if chance <= 0 {
		return math.MaxUint64
	}
	d := 1 / chance
	if d >= math.MaxUint64 {
		return math.MaxUint64
	}
	return uint64(math.Round(d))
}

func groupChance(criteria *generator.MatchCriteria, patterns []string) float64 {
	if len(patterns) == 0 {
		return 1
	}
	var sum float64
	for _, p := range patterns {
		sum += patternChance(criteria, p)
	}
	return math.Min(sum, 1)
}

func patternChance(criteria *generator.MatchCriteria, p string) float64 {
	chance := 1.0
	for _, r := range p {
		switch {
		case criteria.Chain.AlphabetName() == "hex":
			chance /= 16
			// EIP-55 casing halves the odds for every letter.
			if criteria.CaseSensitive && criteria.Chain == generator.EVM && strings.ContainsRune("abcdefABCDEF", r) {
				chance /= 2
			}
		case criteria.CaseSensitive:
			chance /= 58
		default:
			chance /= 35
		}
	}
	return chance
}

// FormatHashRate formats hash rate nicely
func FormatHashRate(rate float64) string {
	if rate >= 1000000 {
		return fmt.Sprintf("%.1fM/s", rate/1000000)
	}
	if rate >= 1000 {
		return fmt.Sprintf("%.1fK/s", rate/1000)
	}
	return fmt.Sprintf("%.0f/s", rate)
}

// FormatNumber adds commas to large numbers
func FormatNumber(n uint64) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	s := fmt.Sprintf("%d", n)
	result := make([]byte, 0, len(s)+(len(s)-1)/3)
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, byte(c))
	}
	return string(result)
}

// FormatDuration formats duration in a human-readable way
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm %ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh %dm", h, m)
}
