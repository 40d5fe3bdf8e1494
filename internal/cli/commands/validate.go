package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/xrdscan/internal/logging"
	"github.com/ccollicutt/xrdscan/pkg/detector"
	"github.com/ccollicutt/xrdscan/pkg/udf"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file|dir|glob]...",
		Short: "Check that scan files decode cleanly",
		Long: `Validate scan files by decoding them in full without printing a report.

Each file is reported as OK or INVALID. For malformed files the line that
could not be parsed is shown.

Exit codes:
  0 - Every file is valid
  1 - At least one file is invalid
  2 - Configuration or usage error`,
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	ExitCode = 0
	ctx := commandContext(cmd)
	w := cmd.OutOrStdout()

	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := logging.Setup(cfg.Logging.Level, cfg.Logging.Format, cmd.ErrOrStderr())

	d := detector.New(detector.WithLogger(logger))
	files, err := resolveInputs(args, cfg, d, logger)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Validating %d file(s)...\n\n", len(files))

	invalid := 0
	for _, path := range files {
		s, err := d.DecodeFile(ctx, path)
		if err != nil {
			invalid++
			fmt.Fprintf(w, "INVALID %s\n", path)
			fmt.Fprintf(w, "        %s\n", describeDecodeError(err))
			continue
		}
		fmt.Fprintf(w, "OK      %s (%d points)\n", path, s.Len())
	}

	fmt.Fprintf(w, "\n%d valid, %d invalid\n", len(files)-invalid, invalid)

	if invalid > 0 {
		ExitCode = 1
	}
	return nil
}

// describeDecodeError adds a hint for the common failure classes.
func describeDecodeError(err error) string {
	var fe *udf.FormatError
	switch {
	case errors.Is(err, detector.ErrUnknownFormat):
		return fmt.Sprintf("%v (not a recognised scan format)", err)
	case errors.As(err, &fe) && fe.Line > 0:
		return fmt.Sprintf("%v (check line %d)", err, fe.Line)
	default:
		return err.Error()
	}
}
