package main

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"DiningAPI/internal/menu"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize [file]",
	Short: "Convert a menu file with legacy halls to the canonical schema",
	Long:  "Reads a JSON array of halls in either schema (from file, or stdin when omitted or \"-\") and prints the canonical document.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "-"
		if len(args) == 1 {
			path = args[0]
		}
		data, err := readInput(cmd, path)
		if err != nil {
			return err
		}
		doc, err := menu.DecodeDocument(data, time.Now())
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	},
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		return data, errors.Wrap(err, "read stdin")
	}
	data, err := os.ReadFile(path)
	return data, errors.Wrapf(err, "read %s", path)
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
}
