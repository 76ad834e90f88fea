package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aglyzov/go-patricia/patricia"
)

const maxLineSize = 1 << 20

func buildBuildCmd(a *app) *cobra.Command {
	var (
		output string
		strict bool
	)

	build := &cobra.Command{
		Use:   "build WORDLIST",
		Short: "Build a snapshot from a word list",
		Long: "Build a snapshot from a word list. Every non-empty line is either a word or\n" +
			"a word and a value separated by a TAB. The value defaults to the word itself.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.build(args[0], output, strict)
		},
	}
	build.Flags().StringVarP(&output, "output", "o", "", "The snapshot file to write.")
	build.Flags().BoolVar(&strict, "strict", false, "Fail on the first invalid word instead of skipping it.")
	build.MarkFlagRequired("output")

	return build
}

func (a *app) build(input, output string, strict bool) error {
	in, err := a.fs.Open(input)
	if err != nil {
		return err
	}
	defer in.Close()

	var (
		t       = patricia.New[string](a.options()...)
		scanner = bufio.NewScanner(in)
		skipped int
		lineNo  int
	)

	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		lineNo++

		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}

		word, val, found := strings.Cut(line, "\t")
		if !found {
			val = word
		}

		if _, replaced, err := t.Insert(word, val); err != nil {
			if strict {
				return fmt.Errorf("%s:%d: %w", input, lineNo, err)
			}
			a.log.Error(err, "skipping word", "file", input, "line", lineNo)
			skipped++
		} else if replaced {
			a.log.V(1).Info("duplicate word replaced", "word", word, "line", lineNo)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}

	out, err := a.fs.Create(output)
	if err != nil {
		return err
	}

	if err := t.Encode(out, patricia.StringCodec{}); err != nil {
		out.Close()
		return fmt.Errorf("write snapshot %s: %w", output, err)
	}
	if err := out.Close(); err != nil {
		return err
	}

	a.log.Info("snapshot written", "path", output, "words", t.Len(), "skipped", skipped)

	return nil
}
