// Package main is the entry point for the DadDeck API server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/daddeck/daddeck-api/cmd/server/client"
)

var rootCmd = &cobra.Command{
	Use:   "daddeck-api",
	Short: "DadDeck collectible card game API",
	Long:  `DadDeck API serves the card catalog, pack opening, battles, crafting, and collections over REST.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
