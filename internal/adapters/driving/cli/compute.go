package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rhizome-labs/soilbio-cli/internal/adapters/driven/storage/sqlite"
	"github.com/rhizome-labs/soilbio-cli/internal/adapters/driven/tabular/csvfile"
	"github.com/rhizome-labs/soilbio-cli/internal/core/ports/driven"
	"github.com/rhizome-labs/soilbio-cli/internal/core/ports/driving"
	"github.com/rhizome-labs/soilbio-cli/internal/core/services"
)

var (
	computeMetadata  string
	computeFragments string
	computeOut       string
	computeNA        string
	computeParallel  int
	computeStore     bool
)

var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Compute the result table from the two input tables",
	Long: `Reads the sample metadata table and the fungal fragment table,
joins them on (SampleID, Date), computes every derived metric per
sample, and writes the result table.

Metrics with missing or unusable inputs render as the NA marker;
warnings about skipped cells and orphan fragment rows are printed to
stderr.`,
	RunE: runCompute,
}

func init() {
	computeCmd.Flags().StringVarP(&computeMetadata, "metadata", "m", "", "sample metadata CSV (required)")
	computeCmd.Flags().StringVarP(&computeFragments, "fragments", "f", "", "fungal fragment CSV (required)")
	computeCmd.Flags().StringVarP(&computeOut, "out", "o", "", "output CSV path (required)")
	computeCmd.Flags().StringVar(&computeNA, "na", csvfile.DefaultNAMarker, "marker for missing values in the output")
	computeCmd.Flags().IntVar(&computeParallel, "parallel", 0, "sample groups computed concurrently (0 = number of CPUs)")
	computeCmd.Flags().BoolVar(&computeStore, "store", false, "persist this run to the local history database")
	_ = computeCmd.MarkFlagRequired("metadata")
	_ = computeCmd.MarkFlagRequired("fragments")
	_ = computeCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(computeCmd)
}

func runCompute(cmd *cobra.Command, _ []string) error {
	summary, err := computeOnce(cmd.Context())
	if err != nil {
		return err
	}
	printSummary(cmd, summary)
	return nil
}

// computeOnce wires the adapters and runs the pipeline a single time.
// Shared by compute and watch.
func computeOnce(ctx context.Context) (summary *driving.PipelineSummary, err error) {
	constantsService, err := newConstantsService()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	constants, err := constantsService.Effective()
	if err != nil {
		return nil, err
	}

	calculator := services.NewCalculatorService(constants)
	metadata := csvfile.NewMetadataReader(computeMetadata)
	fragments := csvfile.NewFragmentReader(computeFragments)
	sink := csvfile.NewResultWriter(computeOut, computeNA)

	var runStore driven.RunStore
	if computeStore {
		store, storeErr := sqlite.NewStore(dataDirFlag)
		if storeErr != nil {
			return nil, fmt.Errorf("opening history database: %w", storeErr)
		}
		defer func() {
			err = errors.Join(err, store.Close())
		}()
		runStore = store.RunStore()
	}

	pipeline := services.NewPipelineService(metadata, fragments, sink, calculator, runStore)
	return pipeline.Run(ctx, driving.PipelineOptions{
		Parallelism:   computeParallel,
		MetadataPath:  computeMetadata,
		FragmentsPath: computeFragments,
		OutputPath:    computeOut,
		StoreRun:      computeStore,
	})
}

func printSummary(cmd *cobra.Command, summary *driving.PipelineSummary) {
	cmd.Printf("Computed %d samples -> %s\n", summary.SampleCount, computeOut)
	if summary.RunID != "" {
		cmd.Printf("Stored as run %s\n", summary.RunID)
	}
	for _, warning := range summary.Warnings {
		cmd.PrintErrf("warning: %s\n", warning)
	}
}
