package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/odvcencio/gitlet/pkg/object"
	"github.com/spf13/cobra"
)

const logDateLayout = "Mon Jan 2 15:04:05 2006 -0700"

func newLogCmd(s *settings) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the first-parent history of the current branch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := s.openRepo()
			if err != nil {
				return err
			}
			head, err := r.ResolveRef("HEAD")
			if err != nil {
				return fmt.Errorf("cannot resolve HEAD: %w", err)
			}

			commits, err := r.Log(head, limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, c := range commits {
				writeLogEntry(out, c)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "max-count", "n", 0, "show at most this many commits")
	return cmd
}

func newGlobalLogCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "global-log",
		Short: "Show every commit ever made",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := s.openRepo()
			if err != nil {
				return err
			}
			commits, err := r.AllCommits()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, c := range commits {
				writeLogEntry(out, c)
			}
			return nil
		},
	}
}

var logHeader = color.New(color.FgYellow).SprintFunc()

func writeLogEntry(w io.Writer, c *object.CommitObj) {
	fmt.Fprintln(w, "===")
	fmt.Fprintln(w, logHeader("commit "+string(c.Hash)))
	if c.IsMerge() {
		fmt.Fprintf(w, "Merge: %s %s\n", c.Parents[0].Short(7), c.Parents[1].Short(7))
	}
	fmt.Fprintf(w, "Date: %s\n", time.Unix(c.Timestamp, 0).Format(logDateLayout))
	fmt.Fprintln(w, c.Message)
	fmt.Fprintln(w)
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
