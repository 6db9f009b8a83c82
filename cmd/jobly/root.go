package main

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "jobly",
	Short: "Jobly job board API",
	Long: `Jobly is the backend for the Jobly job board: companies, job
postings, user accounts and job applications behind a JWT-authenticated
REST API.

Configuration comes from JOBLY_-prefixed environment variables (a .env
file is read when present).`,
	// Runtime failures are not usage errors; don't dump help on them.
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}
