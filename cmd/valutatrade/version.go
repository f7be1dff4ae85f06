// Copyright 2026 ValutaTrade Hub. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/valutatrade-hub/valutatrade/pkg/version"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		info := version.Info()
		fmt.Printf("valutatrade version: %s\n", info["version"])
		fmt.Printf("  build date: %s\n", info["buildDate"])
		fmt.Printf("  git commit: %s\n", info["gitCommit"])
		fmt.Printf("  go version: %s\n", info["goVersion"])
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
