package main

import (
	"fmt"

	"github.com/fwojciec/webcite"
	"github.com/fwojciec/webcite/ingest"
)

// Run executes the index command.
func (c *IndexCmd) Run(deps *Dependencies) error {
	urls := c.URLs

	if c.Sitemap != "" {
		discovered, err := deps.Sitemaps.DiscoverURLs(deps.Ctx, c.Sitemap)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", webcite.ErrorMessage(err))
			return err
		}
		if len(discovered) == 0 {
			fmt.Fprintf(deps.Stderr, "error: no URLs found in sitemap for %s\n", c.Sitemap)
			return webcite.Errorf(webcite.ENOTFOUND, "no URLs found in sitemap for %s", c.Sitemap)
		}
		fmt.Fprintf(deps.Stdout, "Found %d URLs in sitemap\n", len(discovered))
		urls = append(urls, discovered...)
	}

	if len(urls) == 0 {
		fmt.Fprintf(deps.Stderr, "error: no URLs specified\n")
		return webcite.Errorf(webcite.EINVALID, "no URLs specified")
	}

	if len(urls) == 1 {
		result, err := deps.Ingester.Ingest(deps.Ctx, urls[0], c.Force)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", webcite.ErrorMessage(err))
			return err
		}
		printResult(deps, result)
		return nil
	}

	progress := func(event ingest.ProgressEvent) {
		switch event.Type {
		case ingest.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Indexing %d URLs\n", event.Total)
		case ingest.ProgressCompleted:
			printResult(deps, event.Result)
		case ingest.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
		}
	}

	result, err := deps.Manager.IngestAll(deps.Ctx, urls, c.Force, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webcite.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Done: %d indexed, %d updated, %d skipped, %d failed\n",
		result.Indexed, result.Updated, result.Skipped, result.Failed)
	return nil
}

func printResult(deps *Dependencies, result *webcite.IngestResult) {
	switch result.Status {
	case webcite.IngestSkipped:
		fmt.Fprintf(deps.Stdout, "  skipped %s (already indexed, use --force to re-index)\n", result.SourceURL)
	case webcite.IngestUpdated:
		fmt.Fprintf(deps.Stdout, "  updated %s (%d chunks)\n", result.SourceURL, result.Chunks)
	default:
		fmt.Fprintf(deps.Stdout, "  indexed %s (%d chunks)\n", result.SourceURL, result.Chunks)
	}
}
