// Package main is the entry point for pgedge-salesview.
package main

import (
	"fmt"
	"os"

	"github.com/pgEdge/pgedge-salesview/internal/cli"

	// Register report views
	_ "github.com/pgEdge/pgedge-salesview/internal/views/brandperf"
	_ "github.com/pgEdge/pgedge-salesview/internal/views/pricevelocity"
	_ "github.com/pgEdge/pgedge-salesview/internal/views/productperf"
	_ "github.com/pgEdge/pgedge-salesview/internal/views/shareytd"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
