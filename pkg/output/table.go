// Copyright 2026 ValutaTrade Hub. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package output renders command results for the terminal.
package output

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/valutatrade-hub/valutatrade/pkg/portfolio"
	"github.com/valutatrade-hub/valutatrade/pkg/rates"
)

// Amount formats a balance with precision suited to its magnitude: crypto
// dust needs more digits than fiat totals.
func Amount(v float64) string {
	if v != 0 && v < 0.01 && v > -0.01 {
		return fmt.Sprintf("%.8f", v)
	}
	return fmt.Sprintf("%.4f", v)
}

// PortfolioTable renders a portfolio summary as an aligned table.
func PortfolioTable(w io.Writer, s *portfolio.Summary) {
	fmt.Fprintf(w, "Portfolio of %s (base: %s)\n\n", s.Username, s.BaseCurrency)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "CURRENCY\tBALANCE\tRATE\tVALUE (%s)\n", s.BaseCurrency)
	for _, pos := range s.Positions {
		rate, value := "-", "-"
		if pos.RateKnown {
			rate = Amount(pos.Rate)
			value = Amount(pos.Value)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", pos.CurrencyCode, Amount(pos.Balance), rate, value)
	}
	tw.Flush()

	fmt.Fprintf(w, "\nTotal: %s %s\n", Amount(s.TotalValue), s.BaseCurrency)
}

// RatesTable renders the cached pair document as an aligned table.
func RatesTable(w io.Writer, doc *rates.Document) {
	keys := make([]string, 0, len(doc.Pairs))
	for key := range doc.Pairs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PAIR\tRATE\tUPDATED\tSOURCE")
	for _, key := range keys {
		p := doc.Pairs[key]
		source := p.Source
		if source == "" {
			source = doc.Source
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", key, Amount(p.Rate), p.UpdatedAt, source)
	}
	tw.Flush()

	if doc.LastRefresh != "" {
		fmt.Fprintf(w, "\nLast refresh: %s\n", doc.LastRefresh)
	}
}
