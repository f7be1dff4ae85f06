// Copyright 2026 ValutaTrade Hub. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/valutatrade-hub/valutatrade/pkg/output"
	"github.com/valutatrade-hub/valutatrade/pkg/portfolio"
)

// tradeFlags holds the flags shared by buy and sell
type tradeFlags struct {
	currency string
	amount   float64
}

var (
	buyOpts     tradeFlags
	sellOpts    tradeFlags
	depositOpts tradeFlags
)

// buyCmd represents the buy command
var buyCmd = &cobra.Command{
	Use:   "buy",
	Short: "Buy a currency",
	Long: `Buy an amount of a currency, paying from the base-currency wallet
at the current rate plus commission. Requires login.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := application.ports.Buy(cmd.Context(), buyOpts.currency, buyOpts.amount)
		if err != nil {
			return err
		}
		printTrade(res)
		return nil
	},
}

// sellCmd represents the sell command
var sellCmd = &cobra.Command{
	Use:   "sell",
	Short: "Sell a currency",
	Long: `Sell an amount of a held currency, crediting the base-currency
wallet at the current rate minus commission. Requires login.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := application.ports.Sell(cmd.Context(), sellOpts.currency, sellOpts.amount)
		if err != nil {
			return err
		}
		printTrade(res)
		return nil
	},
}

// depositCmd represents the deposit command
var depositCmd = &cobra.Command{
	Use:   "deposit",
	Short: "Deposit funds into a wallet",
	Long:  `Credit a wallet of the logged-in user directly, without a trade.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := application.ports.Deposit(depositOpts.currency, depositOpts.amount)
		if err != nil {
			return err
		}
		fmt.Printf("Deposited %s %s, new balance %s\n",
			output.Amount(depositOpts.amount), w.CurrencyCode, output.Amount(w.Balance))
		return nil
	},
}

func printTrade(res *portfolio.TradeResult) {
	verb := "Bought"
	if res.Action == "SELL" {
		verb = "Sold"
	}
	fmt.Printf("%s %s %s at %s %s\n",
		verb, output.Amount(res.Amount), res.CurrencyCode, output.Amount(res.Rate), res.BaseCurrency)
	fmt.Printf("Commission: %s %s\n", output.Amount(res.Commission), res.BaseCurrency)
	fmt.Printf("Balances: %s %s, %s %s\n",
		output.Amount(res.NewBalance), res.CurrencyCode,
		output.Amount(res.BaseBalance), res.BaseCurrency)
}

func init() {
	rootCmd.AddCommand(buyCmd)
	rootCmd.AddCommand(sellCmd)
	rootCmd.AddCommand(depositCmd)

	for cmd, opts := range map[*cobra.Command]*tradeFlags{
		buyCmd:     &buyOpts,
		sellCmd:    &sellOpts,
		depositCmd: &depositOpts,
	} {
		cmd.Flags().StringVar(&opts.currency, "currency", "", "Currency code, e.g. BTC")
		cmd.Flags().Float64Var(&opts.amount, "amount", 0, "Amount of the currency")
		_ = cmd.MarkFlagRequired("currency")
		_ = cmd.MarkFlagRequired("amount")
	}
}
