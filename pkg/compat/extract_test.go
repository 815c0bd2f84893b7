package compat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCapacityGB(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"32GB", 32},
		{"16 GB", 16},
		{"16GB DDR5-6000", 16},
		{"DDR5-6000 16GB", 16},
		{"2TB", 0},
		{"unknown", 0},
		{"", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseCapacityGB(tt.text), "text %q", tt.text)
	}
}

func TestParseWattage(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"750W", 750},
		{"850 W 80+ Gold", 850},
		{"125w", 125},
		{"Wi-Fi 6E", 0},
		{"", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseWattage(tt.text), "text %q", tt.text)
	}
}

func TestParseLengthMM(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"360mm", 360},
		{"310 mm", 310},
		{"33.8 cm", 0},
		{"", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLengthMM(tt.text), "text %q", tt.text)
	}
}

func TestParseSpeedMHz(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"6000MHz", 6000},
		{"3200 MHz CL16", 3200},
		{"DDR5-6000", 6000},
		{"5600 MT/s", 5600},
		{"3600", 3600},
		{"DDR5", 0},
		{"", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseSpeedMHz(tt.text), "text %q", tt.text)
	}
}

func TestExtractCPUGeneration(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Intel Core i7-13700K", "13"},
		{"Intel Core i9-14900K", "14"},
		{"Intel Core i5 12400F", "12"},
		{"AMD Ryzen 7 7800X3D", "7"},
		{"AMD Ryzen 5 9600X", "9"},
		{"AMD Ryzen 9 5950X", "5"},
		{"Apple M2", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractCPUGeneration(tt.name), "name %q", tt.name)
	}
}

func TestGPULengthEstimate(t *testing.T) {
	e := NewEngine()

	// Explicit dimensions win over the model table.
	assert.Equal(t, 301, e.GPULengthEstimate("301mm"))
	// Known flagship models map to their typical lengths.
	assert.Equal(t, 340, e.GPULengthEstimate("GeForce RTX 4090 Gaming OC"))
	// Unrecognized cards fall back to a mid-range default.
	assert.Equal(t, DefaultGPULengthMM, e.GPULengthEstimate("Matrox Millennium"))
}

func TestEstimatePowerTables(t *testing.T) {
	e := NewEngine()

	assert.Equal(t, 150, e.EstimateCPUPowerW("Intel Core i9-14900K"))
	assert.Equal(t, 88, e.EstimateCPUPowerW("AMD Ryzen 5 5600"))
	assert.Equal(t, DefaultCPUPowerW, e.EstimateCPUPowerW("Mystery CPU"))

	assert.Equal(t, 450, e.EstimateGPUPowerW("GeForce RTX 4090"))
	assert.Equal(t, 250, e.EstimateGPUPowerW("Radeon RX 6800 XT"))
	assert.Equal(t, DefaultGPUPowerW, e.EstimateGPUPowerW("Mystery GPU"))
}

func TestListContains(t *testing.T) {
	assert.True(t, listContains("DDR4/DDR5", "ddr5"))
	assert.True(t, listContains("ATX, Micro-ATX, Mini-ITX", "Micro-ATX"))
	assert.False(t, listContains("DDR4/DDR5", "DDR3"))
	assert.False(t, listContains("", "DDR5"))
}
