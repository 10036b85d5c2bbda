package main

import (
	"github.com/spf13/cobra"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create missing tables and indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := opts.setup(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.close()

			rt.logger.Info("schema up to date")
			return nil
		},
	}
}
