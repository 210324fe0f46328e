package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/readycheck/pkg/version"
)

type versionFormat int

const (
	versionFull versionFormat = iota
	versionShort
	versionJSON
)

func newVersionCmd() *cobra.Command {
	var jsonOutput, shortOutput bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the " + version.Program + " build",
		Long: `Print the version, commit, build date and Go toolchain of this ` + version.Program + ` binary.
--short prints the version alone and wins over --json.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format := versionFull
			switch {
			case shortOutput:
				format = versionShort
			case jsonOutput:
				format = versionJSON
			}
			return writeVersion(cmd.OutOrStdout(), format)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print build info as JSON")
	cmd.Flags().BoolVar(&shortOutput, "short", false, "Print only the version")

	return cmd
}

func writeVersion(w io.Writer, format versionFormat) error {
	switch format {
	case versionShort:
		_, err := fmt.Fprintln(w, version.Short())
		return err
	case versionJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(version.GetInfo())
	default:
		_, err := fmt.Fprintln(w, version.String())
		return err
	}
}
