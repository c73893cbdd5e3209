package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/odvcencio/gitlet/pkg/repo"
	"github.com/spf13/cobra"
)

func newStatusCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show branches, staged files and working tree changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := s.openRepo()
			if err != nil {
				return err
			}
			st, err := r.Status()
			if err != nil {
				return err
			}
			writeStatus(cmd.OutOrStdout(), st)
			return nil
		},
	}
}

func writeStatus(w io.Writer, st *repo.StatusReport) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	fmt.Fprintln(w, "=== Branches ===")
	for _, b := range st.Branches {
		if b == st.Branch {
			fmt.Fprintf(w, "%s%s\n", color.YellowString("*"), b)
		} else {
			fmt.Fprintln(w, b)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "=== Staged Files ===")
	for _, name := range st.Staged {
		fmt.Fprintln(w, green(name))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "=== Removed Files ===")
	for _, name := range st.Removed {
		fmt.Fprintln(w, red(name))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "=== Modifications Not Staged For Commit ===")
	for _, m := range st.Modified {
		fmt.Fprintf(w, "%s (%s)\n", red(m.Name), m.Kind)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "=== Untracked Files ===")
	for _, name := range st.Untracked {
		fmt.Fprintln(w, name)
	}
	fmt.Fprintln(w)
}
