package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fwojciec/pokedex"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	ref, err := resolveTarget(deps, c.Target)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pokedex.ErrorMessage(err))
		return err
	}

	details, err := deps.Details.GetDetails(deps.Ctx, ref)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pokedex.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, pokedex.FormatDetails(details))

	return nil
}

// resolveTarget matches a command-line target against the catalog, by
// number when numeric, by name (case-insensitive) otherwise.
func resolveTarget(deps *Dependencies, target string) (pokedex.Reference, error) {
	refs, err := deps.Catalog.ListReferences(deps.Ctx)
	if err != nil {
		return pokedex.Reference{}, err
	}

	if number, convErr := strconv.Atoi(target); convErr == nil {
		for _, ref := range refs {
			if ref.Number == number {
				return ref, nil
			}
		}
		return pokedex.Reference{}, pokedex.Errorf(pokedex.ENOTFOUND, "no species with number %d", number)
	}

	for _, ref := range refs {
		if strings.EqualFold(ref.Name, target) {
			return ref, nil
		}
	}
	return pokedex.Reference{}, pokedex.Errorf(pokedex.ENOTFOUND, "species %q not found", target)
}
