package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/ppiankov/factly/internal/cli"
)

func main() {
	// Load .env if present; API keys usually live there during development
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
