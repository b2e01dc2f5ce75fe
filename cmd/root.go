// Package cmd provides the root command and CLI setup for tagsweep.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"tagsweep.dev/pkg/tagsweep/internal/adapter"
	"tagsweep.dev/pkg/tagsweep/internal/controller"
	"tagsweep.dev/pkg/tagsweep/internal/domain"
	m "tagsweep.dev/pkg/tagsweep/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var searchAdapter adapter.SearchAdapter
var reportStore adapter.ReportStore
var extractor domain.Extractor
var matcher domain.Matcher
var workflow domain.Workflow
var ui controller.UI

// reportsOutputDirFlag is a root-level flag shared by commands that read or
// write artifacts.
var reportsOutputDirFlag string

// formatFlag selects the artifact encoding (json or yaml).
var formatFlag string

// rootDirFlag is the repository root used to scope the usage search and to
// resolve relative report paths.
var rootDirFlag string

// baseDirFlag is the declaration source directory; a positional [base]
// argument on scan/audit takes precedence.
var baseDirFlag string

// excludePatterns is a root-level flag that filters scanned files.
var excludePatterns []string

// verboseFlag forces debug logging.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewSimpleUI(rootCmd)
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	searchAdapter = adapter.NewRipgrepSearchAdapter(time.Duration(viper.GetInt(searchTimeoutKey)) * time.Second)
	reportStore = adapter.NewFileReportStore()
	extractor = domain.NewExtractor(fsAdapter)
	matcher = domain.NewMatcher(fsAdapter, searchAdapter)
	workflow = domain.NewWorkflow(reportStore, ui, extractor, matcher)
}

const rootLongDescription = `Tagsweep builds a structural inventory of tagged-union (enum) declarations
and cross-references every variant against its textual usage across the
repository, so dead or under-used variants surface before a refactoring.

The scan phase extracts enums whose names carry the qualifying suffix
(default "Event") from the base directory; the usage phase searches the
whole tree for Type::Variant references, never counting the definition
site itself.`

const scanLongDescription = `Build the enum variant inventory for the given base directory (default:
current directory) and persist it to the reports directory.`

const auditLongDescription = `Run the full pipeline: build the inventory, then cross-reference every
variant against the repository tree with ripgrep. Both artifacts are
persisted; variants with an empty occurrence list are dead.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tagsweep",
		Short: "Enum variant usage auditor",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), verboseFlag || viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for inventory and usage artifacts",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().StringVar(&formatFlag, formatFlagName, viper.GetString(formatFlagName), "artifact encoding: json or yaml")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(formatFlagName), formatFlagName)

	cmd.PersistentFlags().StringVarP(&rootDirFlag, rootFlagName, "r", viper.GetString(scanRootKey), "repository root scoping the usage search")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(rootFlagName), scanRootKey)

	cmd.PersistentFlags().StringVarP(&baseDirFlag, baseFlagName, "b", viper.GetString(scanBaseKey), "base directory holding declaration sources")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(baseFlagName), scanBaseKey)

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude files matching glob (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", viper.GetBool(logVerboseKey), "enable debug logging")
	bindFlagToConfig(cmd.PersistentFlags().Lookup("verbose"), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// scanConfigFromViper assembles the scan configuration from the resolved
// config, with an optional positional base argument taking precedence.
func scanConfigFromViper(args []string) domain.ScanConfig {
	base := viper.GetString(scanBaseKey)
	if len(args) > 0 {
		base = args[0]
	}

	return domain.ScanConfig{
		Base:      m.Path(base),
		Root:      m.Path(viper.GetString(scanRootKey)),
		Suffix:    viper.GetString(scanSuffixKey),
		Extension: viper.GetString(scanExtensionKey),
		IndexFile: viper.GetString(scanIndexFileKey),
		Separator: viper.GetString(scanSeparatorKey),
		Exclude:   viper.GetStringSlice(excludeConfigKey),
	}
}

func artifactFormat() adapter.Format {
	format := adapter.Format(viper.GetString(formatFlagName))
	if !format.Valid() {
		return adapter.FormatJSON
	}

	return format
}
