// ABOUTME: Entry point for the grocery CLI
// ABOUTME: Command-line and terminal UI client for the Smart Grocery backend

package main

import (
	"fmt"
	"os"

	"github.com/00rei000/Smart-Grocery-Management-System/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
