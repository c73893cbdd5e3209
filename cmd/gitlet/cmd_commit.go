package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCommitCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "commit <message>",
		Short: "Record staged changes as a new commit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := s.openRepo()
			if err != nil {
				return err
			}
			c, err := r.Commit(args[0])
			if err != nil {
				return err
			}

			branch, _ := r.CurrentBranch()
			fmt.Fprintf(cmd.OutOrStdout(), "[%s %s] %s\n", branch, c.Hash.Short(7), firstLine(c.Message))
			return nil
		},
	}
}
