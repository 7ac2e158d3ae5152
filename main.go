package main

import (
	"github.com/joho/godotenv"

	"github.com/mwarner-dev/postpilot/cmd"
)

// main is the entry point for the postpilot CLI.
func main() {
	// Load an optional .env file for local credentials. Absence is fine;
	// everything can also come from the process environment or config.yaml.
	_ = godotenv.Load()

	cmd.Execute()
}
