package main

import (
	"fmt"

	"github.com/fwojciec/pokedex"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	refs, err := deps.Catalog.ListReferences(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pokedex.ErrorMessage(err))
		return err
	}

	if len(refs) == 0 {
		fmt.Fprintln(deps.Stdout, "No species found on the index page.")
		return nil
	}

	fmt.Fprintln(deps.Stdout, pokedex.FormatReferences(refs))

	return nil
}
