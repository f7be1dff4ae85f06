// Copyright 2026 ValutaTrade Hub. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package main provides the valutatrade CLI application.
package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/valutatrade-hub/valutatrade/pkg/config"
	"github.com/valutatrade-hub/valutatrade/pkg/logging"
	"github.com/valutatrade-hub/valutatrade/pkg/parser"
	"github.com/valutatrade-hub/valutatrade/pkg/portfolio"
	"github.com/valutatrade-hub/valutatrade/pkg/rates"
	"github.com/valutatrade-hub/valutatrade/pkg/storage"
	"github.com/valutatrade-hub/valutatrade/pkg/user"
	"github.com/valutatrade-hub/valutatrade/pkg/version"
)

// app bundles the wired managers for command handlers.
type app struct {
	cfg     *config.Config
	log     zerolog.Logger
	store   *storage.Store
	users   *user.Manager
	rates   *rates.Manager
	ports   *portfolio.Manager
	history *parser.History
	updater *parser.Updater
}

var application *app

// rootFlags holds the global flags.
type rootFlags struct {
	config  string
	verbose bool
}

var rootOpts rootFlags

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "valutatrade",
	Short: "ValutaTrade Hub",
	Long: `ValutaTrade Hub - a currency and crypto trading simulator.

Register an account, fund a portfolio and trade fiat and crypto
currencies at live exchange rates fetched by the built-in parser
service.`,
	Version:       version.FullString(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

// setup loads configuration and wires the managers every command uses.
func setup() error {
	var cfg *config.Config
	var err error
	if rootOpts.config != "" {
		cfg, err = config.Load(rootOpts.config)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.Logging, rootOpts.verbose || cfg.App.Debug)
	if err != nil {
		return err
	}

	store := storage.New(cfg, logging.Component(log, "storage"))

	users, err := user.NewManager(cfg, store, logging.Component(log, "users"))
	if err != nil {
		return err
	}

	rm, err := rates.NewManager(cfg, store, logging.Component(log, "rates"))
	if err != nil {
		return err
	}

	ports, err := portfolio.NewManager(cfg, store, users, rm, logging.Component(log, "portfolio"))
	if err != nil {
		return err
	}

	history, err := parser.NewHistory(cfg, store, logging.Component(log, "history"))
	if err != nil {
		return err
	}

	parserLog := logging.Component(log, "parser")
	updater := parser.NewUpdater(cfg, store, history, []parser.Source{
		parser.NewCoinGecko(cfg, parserLog),
		parser.NewExchangeRate(cfg, parserLog),
	}, parserLog)

	// Stale lookups refresh through the updater, then re-read the document.
	rm.SetUpdateFunc(updater.Run)

	application = &app{
		cfg:     cfg,
		log:     log,
		store:   store,
		users:   users,
		rates:   rm,
		ports:   ports,
		history: history,
		updater: updater,
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootOpts.config, "config", "c", "", "Path to configuration file")
	rootCmd.PersistentFlags().BoolVarP(&rootOpts.verbose, "verbose", "v", false, "Verbose (debug) logging")
}
