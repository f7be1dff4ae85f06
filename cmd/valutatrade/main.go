// Copyright 2026 ValutaTrade Hub. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package main is the entry point for the valutatrade CLI.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
