package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fwojciec/webcite"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	var history []webcite.Turn
	if c.History != "" {
		data, err := os.ReadFile(c.History)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: failed to read history file: %v\n", err)
			return err
		}
		if err := json.Unmarshal(data, &history); err != nil {
			fmt.Fprintf(deps.Stderr, "error: invalid history file %q: %v\n", c.History, err)
			return webcite.Errorf(webcite.EINVALID, "invalid history file %q", c.History)
		}
	}

	answer, err := deps.Answerer.Answer(deps.Ctx, c.Question, history)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webcite.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, answer.Response)

	if len(answer.Sources) > 0 {
		fmt.Fprintln(deps.Stdout, "\nSources:")
		for i, url := range answer.Sources {
			fmt.Fprintf(deps.Stdout, "  [%d] %s\n", i+1, url)
		}
	}

	return nil
}
