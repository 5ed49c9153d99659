// Package cli implements the cobra command tree for soilbio.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/rhizome-labs/soilbio-cli/internal/adapters/driven/config/file"
	"github.com/rhizome-labs/soilbio-cli/internal/core/ports/driving"
	"github.com/rhizome-labs/soilbio-cli/internal/core/services"
	"github.com/rhizome-labs/soilbio-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verboseFlag   bool
	configDirFlag string
	dataDirFlag   string
)

var rootCmd = &cobra.Command{
	Use:   "soilbio",
	Short: "Compute soil-biology metrics from raw microscopy counts",
	Long: `soilbio turns raw microscopy counts and dilution metadata into
per-gram soil-biology metrics: bacterial and fungal biomass, the F:B
ratio, protozoa abundance and nematode abundance by trophic group.

Inputs are two CSV tables keyed by sample ID and date: the sample
metadata table (dilutions, field-of-view category, drops-per-mL, raw
counts) and the fungal fragment table (one row per hyphal fragment).
Missing or malformed cells degrade to blank output cells; they never
abort the rest of the sheet.`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging to stderr")
	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config-dir", "", "config directory (default ~/.soilbio)")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "data directory for run history (default ~/.soilbio/data)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// newConstantsService builds the constants service over the TOML
// config store.
func newConstantsService() (driving.ConstantsService, error) {
	store, err := file.NewConfigStore(configDirFlag)
	if err != nil {
		return nil, err
	}
	return services.NewConstantsService(store), nil
}
