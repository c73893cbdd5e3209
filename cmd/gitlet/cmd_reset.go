package main

import (
	"github.com/spf13/cobra"
)

func newResetCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "reset <commit>",
		Short: "Check out a commit and move the current branch to it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := s.openRepo()
			if err != nil {
				return err
			}
			_, err = r.Reset(args[0])
			return err
		},
	}
}
