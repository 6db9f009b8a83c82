// Command jobly runs the Jobly job board backend: an HTTP API for
// companies, job postings, users and applications.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
