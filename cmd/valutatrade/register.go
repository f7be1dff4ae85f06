// Copyright 2026 ValutaTrade Hub. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// registerFlags holds the flags for the register command
type registerFlags struct {
	username string
	password string
}

var registerOpts registerFlags

// registerCmd represents the register command
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	Long: `Create a new account with an empty portfolio.

Usernames are 3-20 alphanumeric characters; passwords are at least
4 characters long.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := application.users.Register(registerOpts.username, registerOpts.password)
		if err != nil {
			return err
		}

		if _, err := application.ports.CreateForUser(u.ID); err != nil {
			// Without a portfolio the account is unusable; roll it back.
			if rmErr := application.users.Remove(u.ID); rmErr != nil {
				application.log.Error().Err(rmErr).Int("user_id", u.ID).Msg("failed to roll back account")
			}
			return err
		}

		fmt.Printf("Account created: %s (ID %d)\n", u.Username, u.ID)
		fmt.Println("Log in with: valutatrade login --username " + u.Username)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)

	registerCmd.Flags().StringVarP(&registerOpts.username, "username", "u", "", "Username for the new account")
	registerCmd.Flags().StringVarP(&registerOpts.password, "password", "p", "", "Password for the new account")
	_ = registerCmd.MarkFlagRequired("username")
	_ = registerCmd.MarkFlagRequired("password")
}
