package main

import (
	"fmt"

	"github.com/fwojciec/webcite"
)

// Run executes the remove command.
func (c *RemoveCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm removal\n")
		return webcite.Errorf(webcite.EINVALID, "use --force to confirm removal")
	}

	address := webcite.ContentAddress(c.URL)
	deleted, err := deps.Chunks.DeleteByAddress(deps.Ctx, address)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webcite.ErrorMessage(err))
		return err
	}

	if deleted == 0 {
		fmt.Fprintf(deps.Stderr, "error: %q is not indexed\n", c.URL)
		return webcite.Errorf(webcite.ENOTFOUND, "%q is not indexed", c.URL)
	}

	fmt.Fprintf(deps.Stdout, "Removed %q (%d chunks)\n", c.URL, deleted)
	return nil
}
