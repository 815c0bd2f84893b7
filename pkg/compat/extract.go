package compat

import (
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"
)

// The extractors below are total: any input, including empty or garbage
// text, yields a value. Numeric extractors return 0 when nothing matches,
// which downstream rules read as "unknown" and abstain on.

var (
	capacityMatcher  = regexp2.MustCompile(`(\d+)\s*GB`, regexp2.IgnoreCase)
	wattageMatcher   = regexp2.MustCompile(`(\d+)\s*W(?![a-zA-Z])`, regexp2.IgnoreCase)
	lengthMatcher    = regexp2.MustCompile(`(\d+)\s*mm`, regexp2.IgnoreCase)
	mhzMatcher       = regexp2.MustCompile(`(\d+)\s*M(?:Hz|T)`, regexp2.IgnoreCase)
	ddrSpeedMatcher  = regexp2.MustCompile(`(?<=DDR\d[\s-])\d{3,5}`, regexp2.IgnoreCase)
	bareSpeedMatcher = regexp2.MustCompile(`\d{3,5}`, 0)
	intelGenMatcher  = regexp2.MustCompile(`i[3579][\s-](\d{2})\d{2,3}`, regexp2.IgnoreCase)
	ryzenGenMatcher  = regexp2.MustCompile(`(?<=Ryzen\s[3579]\s(?:Pro\s)?)(\d)\d{3}`, regexp2.IgnoreCase)
)

// firstGroupInt runs a matcher against text and returns the first capture
// group (or the whole match when the pattern has no groups) as an int.
// Returns 0 on no match; never errors.
func firstGroupInt(re *regexp2.Regexp, text string) int {
	m, err := re.FindStringMatch(text)
	if err != nil || m == nil {
		return 0
	}
	token := m.String()
	if len(m.Groups()) > 1 {
		token = m.Groups()[1].String()
	}
	n, err := strconv.Atoi(token)
	if err != nil {
		return 0
	}
	return n
}

// ParseCapacityGB extracts the integer preceding a GB token
// ("32GB", "16 GB DDR5-6000").
func ParseCapacityGB(text string) int {
	return firstGroupInt(capacityMatcher, text)
}

// ParseWattage extracts the integer preceding a W token
// ("750W", "850 W 80+ Gold"). The lookahead keeps it from biting into
// words like "Wi-Fi" or "Western".
func ParseWattage(text string) int {
	return firstGroupInt(wattageMatcher, text)
}

// ParseLengthMM extracts the integer preceding an mm token ("360mm").
func ParseLengthMM(text string) int {
	return firstGroupInt(lengthMatcher, text)
}

// ParseSpeedMHz extracts a memory frequency: an explicit MHz/MT figure
// first ("6000MHz", "5600 MT/s"), then the number glued to a DDR
// generation ("DDR5-6000"), then any bare 3-5 digit run.
func ParseSpeedMHz(text string) int {
	if n := firstGroupInt(mhzMatcher, text); n > 0 {
		return n
	}
	if n := firstGroupInt(ddrSpeedMatcher, text); n > 0 {
		return n
	}
	return firstGroupInt(bareSpeedMatcher, text)
}

// ExtractCPUGeneration pulls the generation marker out of a CPU marketing
// name: "Core i7-13700K" -> "13", "Ryzen 7 7800X3D" -> "7". Returns ""
// when the name follows neither convention.
func ExtractCPUGeneration(name string) string {
	if m, err := intelGenMatcher.FindStringMatch(name); err == nil && m != nil {
		return m.Groups()[1].String()
	}
	if m, err := ryzenGenMatcher.FindStringMatch(name); err == nil && m != nil {
		return m.Groups()[1].String()
	}
	return ""
}

// GPULengthEstimate resolves a GPU length in mm: an explicit mm figure in
// the text wins, then a model-name lookup, then a generic mid-range card.
func (e *Engine) GPULengthEstimate(text string) int {
	if mm := ParseLengthMM(text); mm > 0 {
		return mm
	}
	return e.tables.gpuLengthMM(text)
}

// EstimateCPUPowerW estimates a CPU's draw from its tier keywords.
func (e *Engine) EstimateCPUPowerW(name string) int {
	return e.tables.cpuPowerW(name)
}

// EstimateGPUPowerW estimates a GPU's draw from its model keywords.
func (e *Engine) EstimateGPUPowerW(name string) int {
	return e.tables.gpuPowerW(name)
}

// normalize collapses a free-text token for comparison: trimmed and
// lowercased.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// matchesAny reports whether text contains any of the fragments,
// case-insensitively.
func matchesAny(text string, fragments []string) bool {
	text = normalize(text)
	for _, f := range fragments {
		if strings.Contains(text, normalize(f)) {
			return true
		}
	}
	return false
}

// listContains reports whether a slash- or comma-delimited vendor list
// ("DDR4/DDR5", "ATX, Micro-ATX") contains the wanted entry.
func listContains(list, want string) bool {
	want = normalize(want)
	for _, item := range strings.FieldsFunc(list, func(r rune) bool {
		return r == '/' || r == ','
	}) {
		if normalize(item) == want {
			return true
		}
	}
	return false
}
