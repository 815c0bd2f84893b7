// Package compat is the compatibility engine: it turns a build's part set
// into a graded report (blocking issues, advisory warnings) plus an
// estimated power draw. It is a pure computation over free-text vendor
// specifications; unparseable or missing data degrades to a conservative
// default or to a rule abstaining, never to an error.
package compat

import "strings"

// tierEntry maps a lowercase name fragment to a numeric value. Entries are
// matched in order and the first hit wins, so more specific fragments must
// come before the generic ones they contain.
type tierEntry struct {
	Fragment string
	Value    int
}

// chipsetEntry lists the chipset-name fragments expected to pair with a
// given socket and CPU generation. A motherboard whose chipset matches none
// of them gets a firmware-update warning, not a hard failure.
type chipsetEntry struct {
	Socket     string
	Generation string
	Chipsets   []string
}

// Tables holds the engine's static lookup data. The fragments are
// best-effort heuristics over marketing names, not authoritative hardware
// facts; they are plain data so deployments can tune them.
type Tables struct {
	CPUPowerW  []tierEntry
	GPUPowerW  []tierEntry
	GPULength  []tierEntry
	Chipsets   []chipsetEntry
	BudgetChip []string
	LegacyChip []string
}

// DefaultCPUPowerW is the fallback CPU wattage when no tier fragment
// matches; DefaultGPUPowerW and DefaultGPULengthMM are the analogous
// mid-range GPU defaults.
const (
	DefaultCPUPowerW   = 65
	DefaultGPUPowerW   = 180
	DefaultGPULengthMM = 270
)

// DefaultTables returns the built-in lookup data.
func DefaultTables() Tables {
	return Tables{
		CPUPowerW: []tierEntry{
			{"i9", 150},
			{"i7", 125},
			{"i5", 95},
			{"i3", 60},
			{"ryzen 9", 140},
			{"ryzen 7", 105},
			{"ryzen 5", 88},
			{"ryzen 3", 65},
			{"threadripper", 280},
		},
		GPUPowerW: []tierEntry{
			{"rtx 4090", 450},
			{"rtx 4080", 320},
			{"rtx 4070", 220},
			{"rtx 4060", 130},
			{"rtx 3090", 350},
			{"rtx 3080", 320},
			{"rtx 3070", 220},
			{"rtx 3060", 170},
			{"rx 7900", 330},
			{"rx 7800", 263},
			{"rx 7700", 245},
			{"rx 7600", 165},
			{"rx 6800", 250},
			{"rx 6700", 230},
			{"rx 6600", 132},
			{"arc a7", 225},
		},
		GPULength: []tierEntry{
			{"rtx 4090", 340},
			{"rtx 4080", 320},
			{"rtx 4070", 300},
			{"rtx 4060", 250},
			{"rtx 3090", 336},
			{"rtx 3080", 320},
			{"rtx 3070", 270},
			{"rtx 3060", 242},
			{"rx 7900", 320},
			{"rx 7800", 280},
			{"rx 6800", 267},
			{"rx 6600", 240},
		},
		Chipsets: []chipsetEntry{
			{"am5", "7", []string{"X670", "B650", "A620"}},
			{"am5", "9", []string{"X870", "X670", "B850", "B650"}},
			{"am4", "5", []string{"X570", "B550", "A520", "X470", "B450"}},
			{"lga1700", "12", []string{"Z690", "B660", "H670", "H610", "Z790", "B760"}},
			{"lga1700", "13", []string{"Z790", "B760", "H770", "Z690", "B660"}},
			{"lga1700", "14", []string{"Z790", "B760", "H770"}},
			{"lga1851", "2", []string{"Z890", "B860", "H810"}},
		},
		BudgetChip: []string{"H610", "H510", "A520", "A320", "A620", "H810"},
		LegacyChip: []string{"H510", "A320", "B450", "H310"},
	}
}

// lookupTier scans entries in order and returns the value of the first
// fragment contained in name, or def when none match.
func lookupTier(entries []tierEntry, name string, def int) int {
	name = normalize(name)
	for _, e := range entries {
		if strings.Contains(name, e.Fragment) {
			return e.Value
		}
	}
	return def
}

// cpuPowerW resolves a CPU tier wattage from the part name.
func (t Tables) cpuPowerW(name string) int {
	return lookupTier(t.CPUPowerW, name, DefaultCPUPowerW)
}

// gpuPowerW resolves a GPU tier wattage from the part name.
func (t Tables) gpuPowerW(name string) int {
	return lookupTier(t.GPUPowerW, name, DefaultGPUPowerW)
}

// gpuLengthMM resolves a GPU length estimate from the part name.
func (t Tables) gpuLengthMM(name string) int {
	return lookupTier(t.GPULength, name, DefaultGPULengthMM)
}

// chipsetsFor returns the chipset fragments expected for a socket and CPU
// generation, or nil when the pairing is not in the table.
func (t Tables) chipsetsFor(socket, generation string) []string {
	socket = normalize(socket)
	for _, e := range t.Chipsets {
		if e.Socket == socket && e.Generation == generation {
			return e.Chipsets
		}
	}
	return nil
}

// isBudgetChipset reports whether the chipset name matches a known
// entry-level SKU fragment.
func (t Tables) isBudgetChipset(chipset string) bool {
	return matchesAny(chipset, t.BudgetChip)
}

// isLegacyChipset reports whether the chipset name matches a fragment known
// to bottleneck NVMe throughput.
func (t Tables) isLegacyChipset(chipset string) bool {
	return matchesAny(chipset, t.LegacyChip)
}
