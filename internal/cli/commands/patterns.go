package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quickevent/quickevent/pkg/engine"
)

// NewPatternsCommand creates the patterns command.
func NewPatternsCommand() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "List the recognized date expressions",
		Long:  "List the built-in date expression patterns in the order they are scanned.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			infos := engine.New().Patterns()

			if outputFormat == "json" {
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				return encoder.Encode(infos)
			}

			for _, info := range infos {
				fmt.Printf("%-22s %s\n", info.Name, strings.Join(info.Examples, ", "))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "text", "Output format (text|json)")

	return cmd
}
