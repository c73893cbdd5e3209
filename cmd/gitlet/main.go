package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const version = "0.1.0-dev"

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), diagnostic(err))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	s := newSettings()

	root := &cobra.Command{
		Use:           "gitlet",
		Short:         "A minimal single-user version-control system",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if s.v.GetBool(keyNoColor) {
				color.NoColor = true
			}
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringP("dir", "C", ".", "run as if gitlet was started in this directory")
	flags.String("log-level", "", "log level: debug, info, warn, error or none (default from repository config)")
	flags.Bool("no-color", false, "disable colored output")
	s.bind(keyDir, flags.Lookup("dir"))
	s.bind(keyLogLevel, flags.Lookup("log-level"))
	s.bind(keyNoColor, flags.Lookup("no-color"))

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(s))
	root.AddCommand(newAddCmd(s))
	root.AddCommand(newRmCmd(s))
	root.AddCommand(newCommitCmd(s))
	root.AddCommand(newLogCmd(s))
	root.AddCommand(newGlobalLogCmd(s))
	root.AddCommand(newFindCmd(s))
	root.AddCommand(newStatusCmd(s))
	root.AddCommand(newCheckoutCmd(s))
	root.AddCommand(newBranchCmd(s))
	root.AddCommand(newRmBranchCmd(s))
	root.AddCommand(newResetCmd(s))
	root.AddCommand(newMergeCmd(s))
	root.AddCommand(newReflogCmd(s))

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gitlet %s\n", version)
		},
	}
}
