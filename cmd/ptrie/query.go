package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errAbsent = errors.New("some words are absent")

func buildFindCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "find SNAPSHOT WORD...",
		Short: "Print the values of the given words",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.load(args[0])
			if err != nil {
				return err
			}

			var absent int

			out := cmd.OutOrStdout()
			for _, word := range args[1:] {
				if val, ok := t.Find(word); ok {
					fmt.Fprintf(out, "%s\t%s\n", word, val)
				} else {
					fmt.Fprintf(out, "%s\t(absent)\n", word)
					absent++
				}
			}

			if absent > 0 {
				return fmt.Errorf("%w: %d of %d", errAbsent, absent, len(args)-1)
			}
			return nil
		},
	}
}

func buildPrefixCmd(a *app) *cobra.Command {
	var withWords bool

	prefix := &cobra.Command{
		Use:   "prefix SNAPSHOT [PREFIX]",
		Short: "Print the values of all words starting with a prefix",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.load(args[0])
			if err != nil {
				return err
			}

			var p string
			if len(args) > 1 {
				p = args[1]
			}

			out := cmd.OutOrStdout()

			if withWords {
				t.Iter(p, func(word, val string) bool {
					fmt.Fprintf(out, "%s\t%s\n", word, val)
					return true
				})
				return nil
			}

			for _, val := range t.ValuesWithPrefix(p) {
				fmt.Fprintln(out, val)
			}
			return nil
		},
	}
	prefix.Flags().BoolVarP(&withWords, "words", "w", false, "Print words along with values.")

	return prefix
}

func buildStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats SNAPSHOT",
		Short: "Print structural statistics of a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.load(args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), t.Stats())
			t.LogStats(a.log.V(1))

			return nil
		},
	}
}

func buildDumpCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dump SNAPSHOT",
		Short: "Print the node tree of a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.load(args[0])
			if err != nil {
				return err
			}

			t.DebugDump(cmd.OutOrStdout())

			return nil
		},
	}
}
