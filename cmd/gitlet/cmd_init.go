package main

import (
	"fmt"
	"path/filepath"

	"github.com/odvcencio/gitlet/internal/logging"
	"github.com/odvcencio/gitlet/pkg/repo"
	"github.com/spf13/cobra"
)

func newInitCmd(s *settings) *cobra.Command {
	var defaultBranch string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create an empty gitlet repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := s.workDir()
			if err != nil {
				return err
			}
			logger, err := logging.GetLogger(s.logLevel(""))
			if err != nil {
				return err
			}

			r, err := repo.Init(dir, repo.WithDefaultBranch(defaultBranch), repo.WithLogger(logger))
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "initialized empty gitlet repository in %s\n", r.GitletDir+string(filepath.Separator))
			return nil
		},
	}

	cmd.Flags().StringVar(&defaultBranch, "default-branch", "", "name of the initial branch (default \"master\")")
	return cmd
}
