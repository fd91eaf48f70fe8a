// Command argonautbench reads JSON files, parses and canonically
// re-formats them, and reports timings and (on failure) the parser's
// diagnostic position. It exercises only the public Parser/Node surface;
// it carries no parsing logic of its own.
package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/AndyA/argonaut"
	"github.com/AndyA/argonaut/internal/clilog"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	logCfg := clilog.NewConfig()

	cmd := &cobra.Command{
		Use:          "argonautbench <file>...",
		Short:        "Parse and time JSON files with argonaut",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			handler, err := logCfg.NewHandler(cmd.ErrOrStderr())
			if err != nil {
				return fmt.Errorf("configuring logging: %w", err)
			}
			slog.SetDefault(slog.New(handler))

			multi, _ := cmd.Flags().GetBool("multi")
			for _, path := range args {
				if err := benchFile(cmd, path, multi); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
			}
			return nil
		},
	}

	cmd.Flags().Bool("multi", false, "parse the file as a sequence of concatenated top-level values")
	logCfg.RegisterFlags(cmd.Flags())
	return cmd
}

func benchFile(cmd *cobra.Command, path string, multi bool) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	p := argonaut.NewParser()
	defer p.Close()

	start := time.Now()
	var root argonaut.Node
	if multi {
		root, err = p.ParseMulti(src)
	} else {
		root, err = p.Parse(src)
	}
	parseElapsed := time.Since(start)

	if err != nil {
		slog.Error("parse failed",
			"path", path,
			"line", p.Line(),
			"col", p.Col(),
			"error", err,
		)
		return err
	}

	var out bytes.Buffer
	start = time.Now()
	if err := root.Format(&out); err != nil {
		return fmt.Errorf("formatting: %w", err)
	}
	formatElapsed := time.Since(start)

	fmt.Fprintf(cmd.OutOrStdout(), "%s: parse=%s format=%s bytes=%d output_bytes=%d\n",
		path, parseElapsed, formatElapsed, len(src), out.Len())
	return nil
}
