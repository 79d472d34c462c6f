package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/voyagekit/cruisedesk/catalog"
	"github.com/voyagekit/cruisedesk/internal/config"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the cruise datasets and print a report",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			cruises, err := catalog.LoadJSONL(cfg.Data.CruisesPath)
			if err != nil {
				return fmt.Errorf("load cruises: %w", err)
			}
			report := catalog.Validate(cruises)
			fmt.Printf("records: %d\n", report.Records)
			for _, warning := range report.Warnings {
				fmt.Printf("warning: %s\n", warning)
			}
			for _, issue := range report.Errors {
				fmt.Printf("error: %s\n", issue)
			}
			if cfg.Data.PricingPath != "" {
				pricing, err := catalog.LoadPricingCSV(cfg.Data.PricingPath)
				if err != nil {
					fmt.Printf("warning: pricing dataset unavailable: %v\n", err)
				} else {
					fmt.Printf("pricing rows: %d\n", len(pricing))
				}
			}
			if !report.OK() {
				return fmt.Errorf("dataset has %d errors", len(report.Errors))
			}
			fmt.Println("ok")
			return nil
		},
	}
}
