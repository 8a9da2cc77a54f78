package main

import (
	"fmt"

	"github.com/inkfold/pagemark"
)

// ConvertCmd is the "convert" subcommand.
type ConvertCmd struct {
	PipelineFlags

	URL string `arg:"" help:"URL of the page or PDF to convert"`
}

// Run executes the convert command.
func (c *ConvertCmd) Run(deps *Dependencies) error {
	svc := c.service(deps.Logger)

	markdown, err := svc.Convert(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagemark.ErrorMessage(err))
		return err
	}

	fmt.Fprint(deps.Stdout, markdown)
	return nil
}
