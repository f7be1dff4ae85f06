// Copyright 2026 ValutaTrade Hub. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// loginFlags holds the flags for the login command
type loginFlags struct {
	username string
	password string
}

var loginOpts loginFlags

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to an account",
	Long: `Log in to an account. The session persists on disk, so later
commands in other invocations run as this user until logout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := application.users.Login(loginOpts.username, loginOpts.password)
		if err != nil {
			return err
		}
		fmt.Printf("Logged in as %s\n", u.Username)
		return nil
	},
}

// logoutCmd represents the logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out of the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := application.users.Logout()
		if err != nil {
			return err
		}
		fmt.Printf("Logged out %s\n", name)
		return nil
	},
}

// whoamiCmd represents the whoami command
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		u := application.users.Current()
		if u == nil {
			fmt.Println("Not logged in")
			return nil
		}
		info := u.Info()
		fmt.Printf("Logged in as %s (ID %s)\n", info["username"], info["user_id"])
		fmt.Printf("Registered: %s\n", info["registration_date"])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)

	loginCmd.Flags().StringVarP(&loginOpts.username, "username", "u", "", "Username")
	loginCmd.Flags().StringVarP(&loginOpts.password, "password", "p", "", "Password")
	_ = loginCmd.MarkFlagRequired("username")
	_ = loginCmd.MarkFlagRequired("password")
}
