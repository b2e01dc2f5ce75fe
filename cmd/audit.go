package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tagsweep.dev/pkg/tagsweep/internal/domain"
	m "tagsweep.dev/pkg/tagsweep/internal/model"
)

var auditParallelFlag int

// auditCmd represents the audit command.
var auditCmd = newAuditCmd()

func newAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit [base]",
		Short: "Build the inventory and cross-reference variant usage",
		Long:  auditLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Audit(context.Background(), domain.AuditArgs{
				ScanArgs: domain.ScanArgs{
					Scan:    scanConfigFromViper(args),
					Reports: m.Path(viper.GetString(outputFlagName)),
					Format:  artifactFormat(),
				},
				Parallel:      viper.GetInt(searchParallelKey),
				SearchTimeout: time.Duration(viper.GetInt(searchTimeoutKey)) * time.Second,
			})
		},
	}

	configureAuditFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(auditCmd)
}

func configureAuditFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&auditParallelFlag, parallelFlagName, "p", viper.GetInt(searchParallelKey), "number of parallel search workers")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), searchParallelKey)
}
