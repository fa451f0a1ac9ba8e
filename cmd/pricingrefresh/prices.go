package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/pricing"
	pricingtypes "github.com/aws/aws-sdk-go-v2/service/pricing/types"

	"github.com/dbcalc/dbcalc/internal/database"
)

// EBS volume types standing in for the preset's disks.
const (
	ssdVolume      = "gp3"
	spinningVolume = "st1"
)

// productGetter is the part of the Pricing client the refresh uses.
type productGetter interface {
	GetProducts(ctx context.Context, in *pricing.GetProductsInput, optFns ...func(*pricing.Options)) (*pricing.GetProductsOutput, error)
}

// fetchStoragePrices looks up the SSD and spinning GB-month prices for region.
func fetchStoragePrices(ctx context.Context, client productGetter, region string) (database.StoragePrices, error) {
	sp := database.StoragePrices{Region: region}
	var err error
	if sp.SSDPerGBMonth, err = fetchVolumePrice(ctx, client, ssdVolume, region); err != nil {
		return sp, err
	}
	if sp.SpinningPerGBMonth, err = fetchVolumePrice(ctx, client, spinningVolume, region); err != nil {
		return sp, err
	}
	return sp, nil
}

// fetchVolumePrice returns the on-demand USD price per GB-month of one EBS
// volume type.
func fetchVolumePrice(ctx context.Context, client productGetter, volumeType, region string) (float64, error) {
	input := &pricing.GetProductsInput{
		ServiceCode: aws.String("AmazonEC2"),
		Filters: []pricingtypes.Filter{
			{Type: pricingtypes.FilterTypeTermMatch, Field: aws.String("productFamily"), Value: aws.String("Storage")},
			{Type: pricingtypes.FilterTypeTermMatch, Field: aws.String("volumeApiName"), Value: aws.String(volumeType)},
			{Type: pricingtypes.FilterTypeTermMatch, Field: aws.String("regionCode"), Value: aws.String(region)},
		},
		MaxResults: aws.Int32(10),
	}

	resp, err := client.GetProducts(ctx, input)
	if err != nil {
		return 0, fmt.Errorf("GetProducts %s: %w", volumeType, err)
	}
	if len(resp.PriceList) == 0 {
		return 0, fmt.Errorf("no pricing found for %s in %s", volumeType, region)
	}

	var product priceDoc
	if err := json.Unmarshal([]byte(resp.PriceList[0]), &product); err != nil {
		return 0, fmt.Errorf("parse price list: %w", err)
	}
	price, err := extractOnDemand(product.Terms.OnDemand, "GB-Mo")
	if err != nil {
		return 0, fmt.Errorf("%s in %s: %w", volumeType, region, err)
	}
	return price, nil
}

// priceDoc is the part of a Pricing API price list entry the refresh reads.
type priceDoc struct {
	Terms struct {
		OnDemand map[string]termEntry `json:"OnDemand"`
	} `json:"terms"`
}

type termEntry struct {
	PriceDimensions map[string]priceDimension `json:"priceDimensions"`
}

type priceDimension struct {
	Unit         string            `json:"unit"`
	PricePerUnit map[string]string `json:"pricePerUnit"`
}

func extractOnDemand(terms map[string]termEntry, unit string) (float64, error) {
	for _, term := range terms {
		for _, pd := range term.PriceDimensions {
			if pd.Unit != unit {
				continue
			}
			usd, ok := pd.PricePerUnit["USD"]
			if !ok {
				continue
			}
			return strconv.ParseFloat(usd, 64)
		}
	}
	return 0, fmt.Errorf("no on-demand price per %s found", unit)
}

// refreshRegion upserts the preset priced for region, derived from base.
func refreshRegion(ctx context.Context, client productGetter, repo database.Repo, base database.HardwarePreset, region string) (*database.HardwarePreset, error) {
	sp, err := fetchStoragePrices(ctx, client, region)
	if err != nil {
		return nil, err
	}
	hw, err := database.PricedPreset(base, sp)
	if err != nil {
		return nil, err
	}
	if err := repo.UpsertHardwarePreset(ctx, &hw); err != nil {
		return nil, fmt.Errorf("upsert %s: %w", hw.Name, err)
	}
	return &hw, nil
}

// basePreset loads the preset regional prices are applied to, falling back to
// the built-in one of the same name.
func basePreset(ctx context.Context, repo database.Repo, name string) (database.HardwarePreset, error) {
	hw, err := repo.GetHardwarePreset(ctx, name)
	if err != nil {
		return database.HardwarePreset{}, err
	}
	if hw != nil {
		return *hw, nil
	}
	for _, b := range database.BuiltinHardware() {
		if b.Name == name {
			return b, nil
		}
	}
	return database.HardwarePreset{}, fmt.Errorf("hardware preset %s not found", name)
}
