package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vanderheijden86/compassviz/pkg/version"
)

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the cviz version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(a.stdout, "cviz %s\n", version.String())
			return nil
		},
	}
}
