package compat

import (
	"fmt"
	"math"
	"strings"

	"github.com/partforge/PartForge-API/internal/models"
)

// Severity grades a finding: issues block compatibility, warnings advise.
type Severity int

const (
	Warning Severity = iota
	Issue
)

// Finding is one rule result.
type Finding struct {
	Severity Severity
	Message  string
}

func warn(format string, args ...any) Finding {
	return Finding{Severity: Warning, Message: fmt.Sprintf(format, args...)}
}

func issue(format string, args ...any) Finding {
	return Finding{Severity: Issue, Message: fmt.Sprintf(format, args...)}
}

// A rule inspects the part set and returns zero or more findings. Rules
// abstain (return nothing) when a subject component is absent or its
// specification text is unparseable; they never error.
type rule func(e *Engine, parts models.PartSet) []Finding

// rules lists every check in evaluation order. Findings are collected in
// this order so repeated evaluations of the same part set produce
// identical reports.
var rules = []rule{
	checkCPUSocket,
	checkMemoryType,
	checkMemoryCapacity,
	checkMemorySpeed,
	checkPowerBudget,
	checkGPUClearance,
	checkFormFactor,
	checkCooling,
	checkStorageInterface,
	checkCompleteness,
	checkBudgetBalance,
}

// checkCPUSocket flags a hard socket mismatch between CPU and motherboard,
// and warns when the sockets line up but the board's chipset is not one
// expected for the CPU's generation (usually a firmware-update situation).
func checkCPUSocket(e *Engine, parts models.PartSet) []Finding {
	cpu := parts.Installed(models.CategoryCPU)
	mb := parts.Installed(models.CategoryMotherboard)
	if cpu == nil || mb == nil {
		return nil
	}

	cpuSocket := cpu.Spec("socket")
	mbSocket := mb.Spec("socket")
	if cpuSocket == "" || mbSocket == "" {
		return nil
	}
	if normalize(cpuSocket) != normalize(mbSocket) {
		return []Finding{issue("CPU socket %s does not match motherboard socket %s", cpuSocket, mbSocket)}
	}

	generation := ExtractCPUGeneration(cpu.Name)
	expected := e.tables.chipsetsFor(cpuSocket, generation)
	chipset := mb.Spec("chipset")
	if len(expected) == 0 || chipset == "" {
		return nil
	}
	if !matchesAny(chipset, expected) {
		return []Finding{warn("%s chipset may need a BIOS update to run %s", chipset, cpu.Name)}
	}
	return nil
}

// checkMemoryType verifies the RAM generation against the motherboard's
// supported list ("DDR4/DDR5").
func checkMemoryType(_ *Engine, parts models.PartSet) []Finding {
	ram := parts.Installed(models.CategoryRAM)
	mb := parts.Installed(models.CategoryMotherboard)
	if ram == nil || mb == nil {
		return nil
	}

	ramType := ram.Spec("type")
	supported := mb.Spec("memoryType")
	if ramType == "" || supported == "" {
		return nil
	}
	if !listContains(supported, ramType) {
		return []Finding{issue("%s memory is not supported by this motherboard (%s)", ramType, supported)}
	}
	return nil
}

// checkMemoryCapacity compares installed RAM against the board's declared
// maximum.
func checkMemoryCapacity(_ *Engine, parts models.PartSet) []Finding {
	ram := parts.Installed(models.CategoryRAM)
	mb := parts.Installed(models.CategoryMotherboard)
	if ram == nil || mb == nil {
		return nil
	}

	capacity := ParseCapacityGB(ram.Spec("capacity"))
	maxRAM := ParseCapacityGB(mb.Spec("maxRam"))
	if capacity == 0 || maxRAM == 0 {
		return nil
	}
	if capacity > maxRAM {
		return []Finding{issue("%dGB of RAM exceeds the motherboard's %dGB maximum", capacity, maxRAM)}
	}
	return nil
}

// checkMemorySpeed warns when fast memory lands on an entry-level chipset
// that may not run it at rated speed.
func checkMemorySpeed(e *Engine, parts models.PartSet) []Finding {
	ram := parts.Installed(models.CategoryRAM)
	mb := parts.Installed(models.CategoryMotherboard)
	if ram == nil || mb == nil {
		return nil
	}

	speed := ParseSpeedMHz(ram.Spec("speed"))
	chipset := mb.Spec("chipset")
	if speed <= 3200 || chipset == "" {
		return nil
	}
	if e.tables.isBudgetChipset(chipset) {
		return []Finding{warn("%dMHz memory may not reach rated speed on the %s chipset", speed, chipset)}
	}
	return nil
}

// checkPowerBudget compares the PSU rating against the estimated draw with
// a 20% safety margin, and recommends a wattage when no PSU is picked.
func checkPowerBudget(e *Engine, parts models.PartSet) []Finding {
	total := e.EstimateWattage(parts)

	psu := parts.Installed(models.CategoryPSU)
	if psu == nil {
		// Only nag once something beyond the base overhead draws power.
		if total > baseOverheadW {
			recommended := int(math.Ceil(float64(total) * psuMargin))
			return []Finding{warn("no power supply selected; this build needs around %dW", recommended)}
		}
		return nil
	}

	rated := ParseWattage(psu.Spec("wattage"))
	if rated == 0 {
		return nil
	}
	if rated < total {
		return []Finding{issue("%dW power supply is insufficient for an estimated %dW draw", rated, total)}
	}
	if float64(rated) < float64(total)*psuMargin {
		return []Finding{warn("%dW power supply leaves little headroom over the estimated %dW draw", rated, total)}
	}
	return nil
}

// psuMargin is the recommended ratio of PSU rating to estimated draw.
const psuMargin = 1.2

// checkGPUClearance compares the card's (estimated) length against the
// case's declared clearance.
func checkGPUClearance(e *Engine, parts models.PartSet) []Finding {
	gpu := parts.Installed(models.CategoryGPU)
	pcCase := parts.Installed(models.CategoryCase)
	if gpu == nil || pcCase == nil {
		return nil
	}

	length := ParseLengthMM(gpu.Spec("length"))
	if length == 0 {
		length = e.GPULengthEstimate(gpu.Name)
	}

	maxLength := ParseLengthMM(pcCase.Spec("maxGpuLength"))
	if maxLength == 0 {
		return []Finding{warn("case does not declare a maximum GPU length; please verify %s fits", gpu.Name)}
	}
	if length > maxLength {
		return []Finding{issue("%s (~%dmm) exceeds the case's %dmm GPU clearance", gpu.Name, length, maxLength)}
	}
	if float64(length) >= float64(maxLength)*0.9 {
		return []Finding{warn("%s (~%dmm) is a tight fit against the case's %dmm GPU clearance", gpu.Name, length, maxLength)}
	}
	return nil
}

// checkFormFactor verifies the motherboard's form factor against the
// case's supported list.
func checkFormFactor(_ *Engine, parts models.PartSet) []Finding {
	pcCase := parts.Installed(models.CategoryCase)
	mb := parts.Installed(models.CategoryMotherboard)
	if pcCase == nil || mb == nil {
		return nil
	}

	supported := pcCase.Spec("supportedFormFactors")
	formFactor := mb.Spec("formFactor")
	if supported == "" || formFactor == "" {
		return nil
	}
	if !listContains(supported, formFactor) {
		return []Finding{issue("%s motherboards do not fit this case (supports %s)", formFactor, supported)}
	}
	return nil
}

// checkCooling verifies cooler socket support and TDP rating against the
// CPU, and recommends aftermarket cooling for hot CPUs with no cooler.
func checkCooling(e *Engine, parts models.PartSet) []Finding {
	cpu := parts.Installed(models.CategoryCPU)
	cooler := parts.Installed(models.CategoryCooling)
	if cpu == nil {
		return nil
	}

	if cooler == nil {
		tdp := ParseWattage(cpu.Spec("tdp"))
		if tdp == 0 {
			tdp = e.EstimateCPUPowerW(cpu.Name)
		}
		if tdp > DefaultCPUPowerW {
			return []Finding{warn("%s runs around %dW; an aftermarket cooler is recommended", cpu.Name, tdp)}
		}
		return nil
	}

	var findings []Finding

	cpuSocket := cpu.Spec("socket")
	coolerSockets := cooler.Spec("socket")
	if cpuSocket != "" && coolerSockets != "" && !listContains(coolerSockets, cpuSocket) {
		findings = append(findings, issue("%s does not support the %s socket", cooler.Name, cpuSocket))
	}

	rating := ParseWattage(cooler.Spec("tdpRating"))
	cpuTDP := ParseWattage(cpu.Spec("tdp"))
	if rating > 0 && cpuTDP > 0 && rating < cpuTDP {
		findings = append(findings, warn("%s is rated for %dW, below the CPU's %dW TDP", cooler.Name, rating, cpuTDP))
	}
	return findings
}

// checkStorageInterface warns when an NVMe drive lands on a chipset known
// to limit its throughput.
func checkStorageInterface(e *Engine, parts models.PartSet) []Finding {
	storage := parts.Installed(models.CategoryStorage)
	mb := parts.Installed(models.CategoryMotherboard)
	if storage == nil || mb == nil {
		return nil
	}

	iface := storage.Spec("interface")
	chipset := mb.Spec("chipset")
	if !strings.Contains(normalize(iface), "nvme") || chipset == "" {
		return nil
	}
	if e.tables.isLegacyChipset(chipset) {
		return []Finding{warn("the %s chipset may limit NVMe throughput for %s", chipset, storage.Name)}
	}
	return nil
}

// checkCompleteness nudges sparse builds toward the essential slots.
func checkCompleteness(_ *Engine, parts models.PartSet) []Finding {
	if parts.Count() >= 4 {
		return nil
	}
	return []Finding{warn("build is incomplete; a working PC needs at least a CPU, motherboard, RAM and storage")}
}

// checkBudgetBalance flags builds whose CPU/GPU spend is badly lopsided.
func checkBudgetBalance(_ *Engine, parts models.PartSet) []Finding {
	cpu := parts.Installed(models.CategoryCPU)
	gpu := parts.Installed(models.CategoryGPU)
	if cpu == nil || gpu == nil {
		return nil
	}

	combined := cpu.Price + gpu.Price
	if combined <= 0 {
		return nil
	}
	if cpu.Price/combined > 0.7 {
		return []Finding{warn("budget is CPU-heavy; consider a stronger GPU")}
	}
	if gpu.Price/combined > 0.7 {
		return []Finding{warn("budget is GPU-heavy; the CPU may bottleneck it")}
	}
	return nil
}
