package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/xrdscan/pkg/detector"
	"github.com/ccollicutt/xrdscan/pkg/scan"
)

// NewFormatsCommand creates the formats command.
func NewFormatsCommand() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "formats",
		Short: "List supported scan formats",
		Long:  "List every scan format xrdscan can detect and decode, in probe order.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := detector.New().Formats()
			w := cmd.OutOrStdout()

			switch outputFormat {
			case "json":
				infos := make([]scan.FormatInfo, 0, len(formats))
				for _, f := range formats {
					infos = append(infos, f.Info)
				}
				encoder := json.NewEncoder(w)
				encoder.SetIndent("", "  ")
				return encoder.Encode(infos)
			case "text":
				fmt.Fprintf(w, "%-14s %-22s %-10s %s\n", "ID", "NAME", "EXTENSIONS", "FLAGS")
				for _, f := range formats {
					fmt.Fprintf(w, "%-14s %-22s %-10s %s\n",
						f.Info.ID, f.Info.Name, strings.Join(f.Info.Extensions, ","), formatFlags(f.Info))
				}
				return nil
			default:
				return fmt.Errorf("unknown output format %q (use text or json)", outputFormat)
			}
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "text", "Output format (text|json)")

	return cmd
}

func formatFlags(info scan.FormatInfo) string {
	var flags []string
	if info.Binary {
		flags = append(flags, "binary")
	} else {
		flags = append(flags, "text")
	}
	if info.MultiRange {
		flags = append(flags, "multi-range")
	} else {
		flags = append(flags, "single-range")
	}
	return strings.Join(flags, ",")
}
