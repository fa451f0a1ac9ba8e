package database

import "github.com/dbcalc/dbcalc/internal/sizing"

// HardwarePreset is a named server build with its hosting costs.
type HardwarePreset struct {
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Cost        sizing.HardwareCost   `json:"cost"`
	Params      sizing.HardwareParams `json:"params"`
	Facility    sizing.FacilityCost   `json:"facility"`
}

// Engine is a named database system profile.
type Engine struct {
	Name        string               `json:"name"`
	DisplayName string               `json:"display_name"`
	Profile     sizing.EngineProfile `json:"profile"`
}

// Workload is a named set of requirements.
type Workload struct {
	Name         string              `json:"name"`
	DisplayName  string              `json:"display_name"`
	Requirements sizing.Requirements `json:"requirements"`
}

// Input assembles a complete calculation input from catalog entries.
func Input(hw *HardwarePreset, req sizing.Requirements, p sizing.EngineProfile) sizing.Input {
	return sizing.Input{
		Hardware:     hw.Cost,
		Params:       hw.Params,
		Facility:     hw.Facility,
		Requirements: req,
		Profile:      p,
	}
}
