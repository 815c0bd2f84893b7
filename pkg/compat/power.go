package compat

import (
	"strings"

	"github.com/partforge/PartForge-API/internal/models"
)

// baseOverheadW covers the motherboard, fans and miscellaneous draw every
// powered build has regardless of picked parts.
const baseOverheadW = 50

// psuHeadroomW is subtracted from a GPU vendor's "recommended PSU" figure
// to isolate the card's own draw; recommended-PSU numbers bundle headroom
// for the rest of the system.
const psuHeadroomW = 200

// EstimateWattage sums a per-component draw estimate for the whole part
// set: declared figures where parseable, tier lookups otherwise.
func (e *Engine) EstimateWattage(parts models.PartSet) int {
	total := baseOverheadW

	if cpu := parts.Installed(models.CategoryCPU); cpu != nil {
		total += e.cpuDrawW(cpu)
	}
	if gpu := parts.Installed(models.CategoryGPU); gpu != nil {
		total += e.gpuDrawW(gpu)
	}
	if ram := parts.Installed(models.CategoryRAM); ram != nil {
		total += ramDrawW(ram)
	}
	if storage := parts.Installed(models.CategoryStorage); storage != nil {
		total += storageDrawW(storage)
	}

	return total
}

func (e *Engine) cpuDrawW(cpu *models.Component) int {
	if tdp := ParseWattage(cpu.Spec("tdp")); tdp > 0 {
		return tdp
	}
	return e.EstimateCPUPowerW(cpu.Name)
}

func (e *Engine) gpuDrawW(gpu *models.Component) int {
	estimate := e.EstimateGPUPowerW(gpu.Name)
	if rec := ParseWattage(gpu.Spec("recommendedPsu")); rec > 0 {
		if own := rec - psuHeadroomW; own > estimate {
			return own
		}
	}
	return estimate
}

func ramDrawW(ram *models.Component) int {
	draw := ParseCapacityGB(ram.Spec("capacity")) * 2
	if ParseSpeedMHz(ram.Spec("speed")) > 3200 {
		draw += 5
	}
	if draw < 10 {
		draw = 10
	}
	return draw
}

func storageDrawW(storage *models.Component) int {
	if strings.Contains(normalize(storage.Spec("interface")), "nvme") {
		return 8
	}
	return 25
}
