// Command mdxconv is the driver surface for the dictionary converter: a
// minimal command taking exactly two positional arguments, an input path
// and an output path, whose extensions select one of eight conversions.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/belugareader/mdict"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mdxconv <source> <target>",
		Short: "Convert between MDX/MDD, Beluga archive, and raw store formats",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mdict.Convert(cmd.Context(), args[0], args[1])
		},
		SilenceUsage: true,
	}

	return cmd
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
