package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aglyzov/go-patricia/patricia"
)

func main() {
	cmd := newRootCommand(afero.NewOsFs())
	cobra.CheckErr(cmd.Execute())
}

// app carries the state shared by all subcommands.
type app struct {
	fs     afero.Fs
	config *viper.Viper
	log    logr.Logger
}

func newRootCommand(fs afero.Fs) *cobra.Command {
	a := &app{
		fs:     fs,
		config: viper.New(),
		log:    logr.Discard(),
	}

	rootCmd := &cobra.Command{
		Use:           "ptrie",
		Short:         "Build and query patricia trie snapshots",
		SilenceErrors: false,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.log = newLogger(cmd.ErrOrStderr(), a.config.GetInt("verbose"))
			return nil
		},
	}

	// flags
	rootCmd.PersistentFlags().Int("capacity", 0, "Expected number of distinct first characters (allocation hint).")
	rootCmd.PersistentFlags().IntP("verbose", "v", 0, "Log verbosity level.")

	// bind flags and PTRIE_* environment to config
	a.config.SetEnvPrefix("ptrie")
	a.config.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.config.AutomaticEnv()
	a.config.BindPFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(buildBuildCmd(a))
	rootCmd.AddCommand(buildFindCmd(a))
	rootCmd.AddCommand(buildPrefixCmd(a))
	rootCmd.AddCommand(buildStatsCmd(a))
	rootCmd.AddCommand(buildDumpCmd(a))

	return rootCmd
}

func newLogger(w io.Writer, verbosity int) logr.Logger {
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintf(w, "%s: %s\n", prefix, args)
		} else {
			fmt.Fprintln(w, args)
		}
	}, funcr.Options{Verbosity: verbosity})
}

func (a *app) options() []patricia.Option {
	return []patricia.Option{patricia.WithCapacity(a.config.GetInt("capacity"))}
}

// load decodes a snapshot of string values.
func (a *app) load(path string) (*patricia.Trie[string], error) {
	f, err := a.fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := patricia.Decode[string](f, patricia.StringCodec{}, a.options()...)
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", path, err)
	}

	a.log.V(1).Info("snapshot loaded", "path", path, "words", t.Len())

	return t, nil
}
