package main

import (
	"fmt"

	"github.com/fwojciec/pokedex"
	"github.com/fwojciec/pokedex/crawl"
)

// Run executes the warm command.
func (c *WarmCmd) Run(deps *Dependencies) error {
	w := &crawl.Warmer{
		Catalog:     deps.Catalog,
		Details:     deps.CachedDetails,
		Concurrency: c.Concurrency,
	}

	result, err := w.Warm(deps.Ctx, func(event crawl.ProgressEvent) {
		if event.Error != nil {
			fmt.Fprintf(deps.Stderr, "  #%04d %s: %s\n",
				event.Reference.Number, event.Reference.Name, pokedex.ErrorMessage(event.Error))
			return
		}
		fmt.Fprintf(deps.Stdout, "  #%04d %s (%d/%d)\n",
			event.Reference.Number, event.Reference.Name, event.Completed, event.Total)
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pokedex.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Warmed %d species", result.Warmed)
	if result.Failed > 0 {
		fmt.Fprintf(deps.Stdout, " (%d failed)", result.Failed)
	}
	fmt.Fprintln(deps.Stdout)

	return nil
}
