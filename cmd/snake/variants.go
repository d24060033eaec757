package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/registry"
)

var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "List all variants",
	Long:  `Shows every snake variant that can be played, served or watched.`,
	Run:   runVariants,
}

func runVariants(_ *cobra.Command, _ []string) {
	variants := registry.Variants()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, v := range variants {
		if len(v.ID) > maxIDLen {
			maxIDLen = len(v.ID)
		}
	}

	fmt.Printf("  %-*s  %-16s  %s\n", maxIDLen, "ID", "Title", "Description")
	fmt.Printf("  %-*s  %-16s  %s\n", maxIDLen, "--", "-----", "-----------")
	for _, v := range variants {
		fmt.Printf("  %-*s  %-16s  %s\n", maxIDLen, v.ID, v.Title, v.Blurb)
	}

	fmt.Println()
	fmt.Println("Run 'snake play <id>' to play a variant.")
}
