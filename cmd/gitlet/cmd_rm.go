package main

import (
	"github.com/spf13/cobra"
)

func newRmCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <file>...",
		Short: "Unstage files and stage tracked files for removal",
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
			return r.Remove(paths...)
		},
	}
}
