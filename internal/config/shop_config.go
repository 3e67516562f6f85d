package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// ShopConfig represents the complete shop configuration
type ShopConfig struct {
	Shop    ShopProfile   `toml:"shop"`
	Alerts  AlertsConfig  `toml:"alerts"`
	Storage StorageConfig `toml:"storage"`
}

// ShopProfile is the letterhead printed on invoices and receipts
type ShopProfile struct {
	Name    string `toml:"name"`
	Address string `toml:"address"`
	Phone   string `toml:"phone"`
	Email   string `toml:"email"`
	GSTIN   string `toml:"gstin"`
	Tagline string `toml:"tagline"`
}

// AlertsConfig controls the payment-due alert job
type AlertsConfig struct {
	Enabled       bool `toml:"enabled"`
	LookaheadDays int  `toml:"lookahead_days"`
	IntervalHours int  `toml:"interval_hours"`
}

// StorageConfig contains the bucket layout for archived documents
type StorageConfig struct {
	InvoiceBucket string `toml:"invoice_bucket"`
}

// DefaultShopConfig is used when no config file is present.
func DefaultShopConfig() *ShopConfig {
	return &ShopConfig{
		Shop: ShopProfile{
			Name:    "JewelMart",
			Tagline: "Fine Gold & Silver Jewellery",
		},
		Alerts: AlertsConfig{
			Enabled:       true,
			LookaheadDays: 3,
			IntervalHours: 24,
		},
		Storage: StorageConfig{
			InvoiceBucket: "invoices",
		},
	}
}

// LoadShopConfig loads configuration from a TOML file
func LoadShopConfig(filename string) (*ShopConfig, error) {
	config := DefaultShopConfig()
	_, err := toml.DecodeFile(filename, config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	return config, nil
}
