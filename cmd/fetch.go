package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// newFetchCmd creates the 'fetch' subcommand, which prints the metadata of an external page.
func newFetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch <url>",
		Short: "Prints the metadata record of an external page",
		Long: `Fetches the page at <url> (https:// is assumed when no scheme is given),
extracts its sharing metadata and prints the record as JSON.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			appInstance, err := resolveApp(cmd.Context())
			if err != nil {
				return err
			}
			record, err := appInstance.GetAssembler().External(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("fetch %s: %w", args[0], err)
			}
			return printJSON(cmd.OutOrStdout(), record)
		},
	}
}

// newCurrentCmd creates the 'current' subcommand, which prints the local site metadata.
func newCurrentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Prints the metadata record of the local site's layout.tsx",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			appInstance, err := resolveApp(cmd.Context())
			if err != nil {
				return err
			}
			record, err := appInstance.GetAssembler().Local(cmd.Context())
			if err != nil {
				return fmt.Errorf("read local metadata: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), record)
		},
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	return nil
}
