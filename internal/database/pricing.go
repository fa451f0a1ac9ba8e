package database

import (
	"fmt"
	"math"
)

// StoragePrices are per GB-month block storage prices for one region.
type StoragePrices struct {
	Region             string
	SSDPerGBMonth      float64
	SpinningPerGBMonth float64
}

// RegionalPresetName names the preset derived from a region's prices.
func RegionalPresetName(region string) string {
	return "aws-" + region
}

// PricedPreset derives a preset from base whose SSD and spinning unit prices
// are what the same capacity costs as cloud block storage over the
// amortization period, rounded up to whole dollars.
func PricedPreset(base HardwarePreset, sp StoragePrices) (HardwarePreset, error) {
	if sp.SSDPerGBMonth <= 0 || sp.SpinningPerGBMonth <= 0 {
		return HardwarePreset{}, fmt.Errorf("region %s: storage prices must be positive", sp.Region)
	}
	months := float64(base.Facility.AmortizationPeriod)
	unitPrice := func(sizeMB int, perGBMonth float64) int {
		return int(math.Ceil(float64(sizeMB) / 1024 * perGBMonth * months))
	}

	hw := base
	hw.Name = RegionalPresetName(sp.Region)
	hw.Description = fmt.Sprintf("%s with disks priced as EBS in %s ($%.4g/GB-month SSD, $%.4g/GB-month HDD)",
		base.Name, sp.Region, sp.SSDPerGBMonth, sp.SpinningPerGBMonth)
	hw.Cost.SSDPrice = unitPrice(base.Params.SSDSize, sp.SSDPerGBMonth)
	hw.Cost.SpinningPrice = unitPrice(base.Params.SpinningSize, sp.SpinningPerGBMonth)
	return hw, nil
}
