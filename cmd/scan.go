package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tagsweep.dev/pkg/tagsweep/internal/domain"
	m "tagsweep.dev/pkg/tagsweep/internal/model"
)

// scanCmd represents the scan command.
var scanCmd = newScanCmd()

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [base]",
		Short: "Build the enum variant inventory",
		Long:  scanLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Scan(context.Background(), domain.ScanArgs{
				Scan:    scanConfigFromViper(args),
				Reports: m.Path(viper.GetString(outputFlagName)),
				Format:  artifactFormat(),
			})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
