// Copyright 2026 ValutaTrade Hub. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/valutatrade-hub/valutatrade/pkg/output"
)

// getRateCmd represents the get-rate command
var getRateCmd = &cobra.Command{
	Use:   "get-rate FROM [TO]",
	Short: "Show the exchange rate for a currency pair",
	Long: `Show the exchange rate for a currency pair. TO defaults to the
configured base currency. Stale rates trigger a refresh.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from := args[0]
		to := application.cfg.Trading.DefaultBaseCurrency
		if len(args) == 2 {
			to = args[1]
		}

		r, err := application.rates.GetRate(cmd.Context(), from, to)
		if err != nil {
			return err
		}
		fmt.Printf("%s -> %s: %s\n", r.From, r.To, output.Amount(r.Value))
		fmt.Printf("Updated: %s", r.UpdatedAt.Format(time.RFC3339))
		if r.Source != "" {
			fmt.Printf(" (source: %s)", r.Source)
		}
		fmt.Println()
		return nil
	},
}

// ratesCmd represents the rates command
var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Show all cached exchange rates",
	RunE: func(cmd *cobra.Command, args []string) error {
		info := application.rates.Info()
		if info.PairCount == 0 {
			fmt.Println("No cached rates. Run 'update-rates' first.")
			return nil
		}

		output.RatesTable(os.Stdout, application.rates.Document())

		state := "STALE"
		if info.Fresh {
			state = "FRESH"
		}
		fmt.Printf("Cache: %d pairs, %s (TTL %s)\n", info.PairCount, state, info.TTL)
		return nil
	},
}

// updateRatesCmd represents the update-rates command
var updateRatesCmd = &cobra.Command{
	Use:   "update-rates",
	Short: "Fetch fresh rates from all sources now",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := application.updater.Run(cmd.Context()); err != nil {
			return err
		}
		if err := application.rates.Reload(); err != nil {
			return err
		}
		status := application.updater.Status()
		fmt.Printf("Rates updated: %d pairs saved\n", status.PairsSaved)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(getRateCmd)
	rootCmd.AddCommand(ratesCmd)
	rootCmd.AddCommand(updateRatesCmd)
}
