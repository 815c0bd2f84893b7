package compat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partforge/PartForge-API/internal/models"
)

func comp(category models.Category, name string, specs map[string]string) *models.Component {
	return &models.Component{
		Name:           name,
		Category:       category,
		Specifications: specs,
	}
}

func TestCheckCPUSocket(t *testing.T) {
	e := NewEngine()

	t.Run("mismatch is an issue", func(t *testing.T) {
		parts := models.PartSet{
			models.CategoryCPU:         comp(models.CategoryCPU, "AMD Ryzen 7 7800X3D", map[string]string{"socket": "AM5"}),
			models.CategoryMotherboard: comp(models.CategoryMotherboard, "MSI Z790 Tomahawk", map[string]string{"socket": "LGA1700"}),
		}
		fs := checkCPUSocket(e, parts)
		require.Len(t, fs, 1)
		assert.Equal(t, Issue, fs[0].Severity)
		assert.Contains(t, fs[0].Message, "AM5")
		assert.Contains(t, fs[0].Message, "LGA1700")
	})

	t.Run("matching socket with unexpected chipset warns", func(t *testing.T) {
		parts := models.PartSet{
			models.CategoryCPU:         comp(models.CategoryCPU, "AMD Ryzen 7 7800X3D", map[string]string{"socket": "AM5"}),
			models.CategoryMotherboard: comp(models.CategoryMotherboard, "ASRock B450M", map[string]string{"socket": "AM5", "chipset": "B450"}),
		}
		fs := checkCPUSocket(e, parts)
		require.Len(t, fs, 1)
		assert.Equal(t, Warning, fs[0].Severity)
		assert.Contains(t, fs[0].Message, "BIOS")
	})

	t.Run("matching socket and chipset is clean", func(t *testing.T) {
		parts := models.PartSet{
			models.CategoryCPU:         comp(models.CategoryCPU, "AMD Ryzen 7 7800X3D", map[string]string{"socket": "am5"}),
			models.CategoryMotherboard: comp(models.CategoryMotherboard, "MSI B650 Tomahawk", map[string]string{"socket": "AM5", "chipset": "B650"}),
		}
		assert.Empty(t, checkCPUSocket(e, parts))
	})

	t.Run("abstains without both components", func(t *testing.T) {
		parts := models.PartSet{
			models.CategoryCPU: comp(models.CategoryCPU, "AMD Ryzen 7 7800X3D", map[string]string{"socket": "AM5"}),
		}
		assert.Empty(t, checkCPUSocket(e, parts))
	})

	t.Run("abstains without socket text", func(t *testing.T) {
		parts := models.PartSet{
			models.CategoryCPU:         comp(models.CategoryCPU, "AMD Ryzen 7 7800X3D", nil),
			models.CategoryMotherboard: comp(models.CategoryMotherboard, "MSI B650 Tomahawk", map[string]string{"socket": "AM5"}),
		}
		assert.Empty(t, checkCPUSocket(e, parts))
	})
}

func TestCheckMemoryType(t *testing.T) {
	e := NewEngine()

	parts := models.PartSet{
		models.CategoryRAM:         comp(models.CategoryRAM, "Corsair Vengeance", map[string]string{"type": "DDR3"}),
		models.CategoryMotherboard: comp(models.CategoryMotherboard, "MSI B650", map[string]string{"memoryType": "DDR4/DDR5"}),
	}
	fs := checkMemoryType(e, parts)
	require.Len(t, fs, 1)
	assert.Equal(t, Issue, fs[0].Severity)

	parts[models.CategoryRAM] = comp(models.CategoryRAM, "Corsair Vengeance", map[string]string{"type": "ddr5"})
	assert.Empty(t, checkMemoryType(e, parts))
}

func TestCheckMemoryCapacity(t *testing.T) {
	e := NewEngine()

	parts := models.PartSet{
		models.CategoryRAM:         comp(models.CategoryRAM, "G.Skill Trident Z5", map[string]string{"capacity": "64GB"}),
		models.CategoryMotherboard: comp(models.CategoryMotherboard, "Gigabyte A620I", map[string]string{"maxRam": "32GB"}),
	}
	fs := checkMemoryCapacity(e, parts)
	require.Len(t, fs, 1)
	assert.Equal(t, Issue, fs[0].Severity)
	assert.Contains(t, fs[0].Message, "64GB")

	parts[models.CategoryRAM] = comp(models.CategoryRAM, "G.Skill Trident Z5", map[string]string{"capacity": "32GB"})
	assert.Empty(t, checkMemoryCapacity(e, parts))

	// Unparseable maximum means no opinion, not an issue.
	parts[models.CategoryMotherboard] = comp(models.CategoryMotherboard, "Gigabyte A620I", map[string]string{"maxRam": "lots"})
	assert.Empty(t, checkMemoryCapacity(e, parts))
}

func TestCheckMemorySpeed(t *testing.T) {
	e := NewEngine()

	parts := models.PartSet{
		models.CategoryRAM:         comp(models.CategoryRAM, "Kingston Fury", map[string]string{"speed": "3600MHz"}),
		models.CategoryMotherboard: comp(models.CategoryMotherboard, "ASRock H610M", map[string]string{"chipset": "H610"}),
	}
	fs := checkMemorySpeed(e, parts)
	require.Len(t, fs, 1)
	assert.Equal(t, Warning, fs[0].Severity)

	parts[models.CategoryMotherboard] = comp(models.CategoryMotherboard, "MSI Z790", map[string]string{"chipset": "Z790"})
	assert.Empty(t, checkMemorySpeed(e, parts))

	parts[models.CategoryRAM] = comp(models.CategoryRAM, "Kingston Fury", map[string]string{"speed": "3200MHz"})
	parts[models.CategoryMotherboard] = comp(models.CategoryMotherboard, "ASRock H610M", map[string]string{"chipset": "H610"})
	assert.Empty(t, checkMemorySpeed(e, parts))
}

func TestCheckGPUClearance(t *testing.T) {
	e := NewEngine()

	t.Run("over the limit is an issue", func(t *testing.T) {
		parts := models.PartSet{
			models.CategoryGPU:  comp(models.CategoryGPU, "Big GPU", map[string]string{"length": "360mm"}),
			models.CategoryCase: comp(models.CategoryCase, "NZXT H5", map[string]string{"maxGpuLength": "330mm"}),
		}
		fs := checkGPUClearance(e, parts)
		require.Len(t, fs, 1)
		assert.Equal(t, Issue, fs[0].Severity)
	})

	t.Run("within ten percent is a tight fit", func(t *testing.T) {
		parts := models.PartSet{
			models.CategoryGPU:  comp(models.CategoryGPU, "Long GPU", map[string]string{"length": "310mm"}),
			models.CategoryCase: comp(models.CategoryCase, "NZXT H5", map[string]string{"maxGpuLength": "330mm"}),
		}
		fs := checkGPUClearance(e, parts)
		require.Len(t, fs, 1)
		assert.Equal(t, Warning, fs[0].Severity)
		assert.Contains(t, fs[0].Message, "tight fit")
	})

	t.Run("no declared limit asks to verify", func(t *testing.T) {
		parts := models.PartSet{
			models.CategoryGPU:  comp(models.CategoryGPU, "GeForce RTX 4070", nil),
			models.CategoryCase: comp(models.CategoryCase, "Mystery Case", nil),
		}
		fs := checkGPUClearance(e, parts)
		require.Len(t, fs, 1)
		assert.Equal(t, Warning, fs[0].Severity)
		assert.Contains(t, fs[0].Message, "verify")
	})

	t.Run("comfortable fit is clean", func(t *testing.T) {
		parts := models.PartSet{
			models.CategoryGPU:  comp(models.CategoryGPU, "Short GPU", map[string]string{"length": "240mm"}),
			models.CategoryCase: comp(models.CategoryCase, "NZXT H5", map[string]string{"maxGpuLength": "330mm"}),
		}
		assert.Empty(t, checkGPUClearance(e, parts))
	})
}

func TestCheckFormFactor(t *testing.T) {
	e := NewEngine()

	parts := models.PartSet{
		models.CategoryCase:        comp(models.CategoryCase, "NR200", map[string]string{"supportedFormFactors": "Mini-ITX/Mini-DTX"}),
		models.CategoryMotherboard: comp(models.CategoryMotherboard, "MSI Z790", map[string]string{"formFactor": "ATX"}),
	}
	fs := checkFormFactor(e, parts)
	require.Len(t, fs, 1)
	assert.Equal(t, Issue, fs[0].Severity)

	parts[models.CategoryMotherboard] = comp(models.CategoryMotherboard, "ASUS ROG Strix B650E-I", map[string]string{"formFactor": "Mini-ITX"})
	assert.Empty(t, checkFormFactor(e, parts))
}

func TestCheckCooling(t *testing.T) {
	e := NewEngine()

	t.Run("socket mismatch is an issue", func(t *testing.T) {
		parts := models.PartSet{
			models.CategoryCPU:     comp(models.CategoryCPU, "Intel Core i7-13700K", map[string]string{"socket": "LGA1700"}),
			models.CategoryCooling: comp(models.CategoryCooling, "Wraith Prism", map[string]string{"socket": "AM4/AM5"}),
		}
		fs := checkCooling(e, parts)
		require.Len(t, fs, 1)
		assert.Equal(t, Issue, fs[0].Severity)
	})

	t.Run("underrated cooler warns", func(t *testing.T) {
		parts := models.PartSet{
			models.CategoryCPU:     comp(models.CategoryCPU, "Intel Core i9-14900K", map[string]string{"socket": "LGA1700", "tdp": "253W"}),
			models.CategoryCooling: comp(models.CategoryCooling, "Hyper 212", map[string]string{"socket": "LGA1700/AM4", "tdpRating": "150W"}),
		}
		fs := checkCooling(e, parts)
		require.Len(t, fs, 1)
		assert.Equal(t, Warning, fs[0].Severity)
		assert.Contains(t, fs[0].Message, "150W")
	})

	t.Run("hot CPU without cooler warns", func(t *testing.T) {
		parts := models.PartSet{
			models.CategoryCPU: comp(models.CategoryCPU, "Intel Core i9-14900K", nil),
		}
		fs := checkCooling(e, parts)
		require.Len(t, fs, 1)
		assert.Equal(t, Warning, fs[0].Severity)
		assert.Contains(t, fs[0].Message, "cooler")
	})

	t.Run("cool CPU without cooler is fine", func(t *testing.T) {
		parts := models.PartSet{
			models.CategoryCPU: comp(models.CategoryCPU, "Intel Core i3-12100", nil),
		}
		assert.Empty(t, checkCooling(e, parts))
	})
}

func TestCheckStorageInterface(t *testing.T) {
	e := NewEngine()

	parts := models.PartSet{
		models.CategoryStorage:     comp(models.CategoryStorage, "Samsung 980 Pro", map[string]string{"interface": "M.2 NVMe"}),
		models.CategoryMotherboard: comp(models.CategoryMotherboard, "ASRock A320M", map[string]string{"chipset": "A320"}),
	}
	fs := checkStorageInterface(e, parts)
	require.Len(t, fs, 1)
	assert.Equal(t, Warning, fs[0].Severity)

	parts[models.CategoryMotherboard] = comp(models.CategoryMotherboard, "MSI Z790", map[string]string{"chipset": "Z790"})
	assert.Empty(t, checkStorageInterface(e, parts))

	parts[models.CategoryStorage] = comp(models.CategoryStorage, "WD Blue", map[string]string{"interface": "SATA 6.0 Gb/s"})
	parts[models.CategoryMotherboard] = comp(models.CategoryMotherboard, "ASRock A320M", map[string]string{"chipset": "A320"})
	assert.Empty(t, checkStorageInterface(e, parts))
}

func TestCheckCompleteness(t *testing.T) {
	e := NewEngine()

	fs := checkCompleteness(e, models.PartSet{})
	require.Len(t, fs, 1)
	assert.Equal(t, Warning, fs[0].Severity)
	assert.Contains(t, fs[0].Message, "CPU")

	parts := models.PartSet{
		models.CategoryCPU:         comp(models.CategoryCPU, "a", nil),
		models.CategoryMotherboard: comp(models.CategoryMotherboard, "b", nil),
		models.CategoryRAM:         comp(models.CategoryRAM, "c", nil),
		models.CategoryStorage:     comp(models.CategoryStorage, "d", nil),
	}
	assert.Empty(t, checkCompleteness(e, parts))
}

func TestCheckBudgetBalance(t *testing.T) {
	e := NewEngine()

	priced := func(category models.Category, price float64) *models.Component {
		return &models.Component{Name: string(category), Category: category, Price: price}
	}

	parts := models.PartSet{
		models.CategoryCPU: priced(models.CategoryCPU, 800),
		models.CategoryGPU: priced(models.CategoryGPU, 200),
	}
	fs := checkBudgetBalance(e, parts)
	require.Len(t, fs, 1)
	assert.Contains(t, fs[0].Message, "CPU-heavy")

	parts[models.CategoryCPU] = priced(models.CategoryCPU, 200)
	parts[models.CategoryGPU] = priced(models.CategoryGPU, 800)
	fs = checkBudgetBalance(e, parts)
	require.Len(t, fs, 1)
	assert.Contains(t, fs[0].Message, "GPU-heavy")

	parts[models.CategoryCPU] = priced(models.CategoryCPU, 500)
	parts[models.CategoryGPU] = priced(models.CategoryGPU, 500)
	assert.Empty(t, checkBudgetBalance(e, parts))

	// Missing prices mean no opinion.
	parts[models.CategoryCPU] = priced(models.CategoryCPU, 0)
	parts[models.CategoryGPU] = priced(models.CategoryGPU, 0)
	assert.Empty(t, checkBudgetBalance(e, parts))
}
