package main

import (
	"fmt"

	"github.com/fwojciec/webcite"
)

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	stats, err := deps.Chunks.Stats(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webcite.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Chunks:  %d\n", stats.Documents)
	fmt.Fprintf(deps.Stdout, "URLs:    %d\n", stats.UniqueURLs)
	fmt.Fprintf(deps.Stdout, "Domains: %d\n", stats.UniqueDomains)
	fmt.Fprintf(deps.Stdout, "Size:    %s\n", formatBytes(stats.SizeBytes))
	return nil
}

// formatBytes formats a byte count with a human-readable unit.
func formatBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
