package main

import (
	"github.com/spf13/cobra"
)

func newAddCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "add <file>...",
		Short: "Stage files for the next commit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := s.openRepo()
			if err != nil {
				return err
			}
			paths, err := s.filePaths(args)
			if err != nil {
				return err
			}
			return r.Add(paths...)
		},
	}
}
