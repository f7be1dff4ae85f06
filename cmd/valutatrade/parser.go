// Copyright 2026 ValutaTrade Hub. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/valutatrade-hub/valutatrade/pkg/parser"
)

// parserRunFlags holds the flags for the parser run command
type parserRunFlags struct {
	interval time.Duration
	once     bool
}

var parserRunOpts parserRunFlags

// parserCmd represents the parser command group
var parserCmd = &cobra.Command{
	Use:   "parser",
	Short: "Rate parser service",
}

// parserRunCmd represents the parser run command
var parserRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the rate update loop",
	Long: `Run the parser service: fetch rates from all sources immediately,
then on a fixed interval until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if parserRunOpts.once {
			return application.updater.Run(ctx)
		}

		interval := parserRunOpts.interval
		if interval <= 0 {
			interval = application.cfg.UpdateInterval()
		}

		s := parser.NewScheduler(application.updater, interval, application.log)
		if err := s.Run(ctx); err != nil && ctx.Err() == nil {
			return err
		}
		fmt.Println("Parser service stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parserCmd)
	parserCmd.AddCommand(parserRunCmd)

	parserRunCmd.Flags().DurationVar(&parserRunOpts.interval, "interval", 0, "Update interval (default from config)")
	parserRunCmd.Flags().BoolVar(&parserRunOpts.once, "once", false, "Run a single update cycle and exit")
}
