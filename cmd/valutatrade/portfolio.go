// Copyright 2026 ValutaTrade Hub. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/valutatrade-hub/valutatrade/pkg/output"
)

// showPortfolioFlags holds the flags for the show-portfolio command
type showPortfolioFlags struct {
	base string
}

var showPortfolioOpts showPortfolioFlags

// showPortfolioCmd represents the show-portfolio command
var showPortfolioCmd = &cobra.Command{
	Use:   "show-portfolio",
	Short: "Show the portfolio of the logged-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		sum, err := application.ports.Show(cmd.Context(), showPortfolioOpts.base)
		if err != nil {
			return err
		}
		if len(sum.Positions) == 0 {
			fmt.Printf("Portfolio of %s is empty. Use 'deposit' or 'buy' to fund it.\n", sum.Username)
			return nil
		}
		output.PortfolioTable(os.Stdout, sum)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showPortfolioCmd)

	showPortfolioCmd.Flags().StringVar(&showPortfolioOpts.base, "base", "", "Base currency for valuation (default from config)")
}
