package cli

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rhizome-labs/soilbio-cli/internal/adapters/driven/storage/sqlite"
	"github.com/rhizome-labs/soilbio-cli/internal/core/domain"
)

var runsJSON bool

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect persisted computation runs",
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored runs, newest first",
	RunE:  runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show [run-id]",
	Short: "Show one stored run and its result rows",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

func init() {
	runsListCmd.Flags().BoolVar(&runsJSON, "json", false, "output as JSON")
	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	rootCmd.AddCommand(runsCmd)
}

func openRunStore() (*sqlite.Store, error) {
	return sqlite.NewStore(dataDirFlag)
}

func runRunsList(cmd *cobra.Command, _ []string) error {
	store, err := openRunStore()
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.RunStore().ListRuns(cmd.Context())
	if err != nil {
		return err
	}

	if runsJSON {
		data, err := json.MarshalIndent(runs, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(data))
		return nil
	}

	if len(runs) == 0 {
		cmd.Println("No stored runs.")
		return nil
	}
	for _, run := range runs {
		cmd.Printf("%s  %s  %d samples  %d warnings  %s\n",
			run.ID,
			run.StartedAt.Format("2006-01-02 15:04:05"),
			run.SampleCount,
			run.WarningCount,
			run.OutputPath)
	}
	return nil
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	store, err := openRunStore()
	if err != nil {
		return err
	}
	defer store.Close()

	runStore := store.RunStore()
	run, err := runStore.GetRun(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			cmd.PrintErrf("run %s not found\n", args[0])
		}
		return err
	}
	results, err := runStore.GetRunResults(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	cmd.Printf("Run %s\n", run.ID)
	cmd.Printf("  started:   %s\n", run.StartedAt.Format("2006-01-02 15:04:05"))
	cmd.Printf("  metadata:  %s\n", run.MetadataPath)
	cmd.Printf("  fragments: %s\n", run.FragmentsPath)
	cmd.Printf("  output:    %s\n", run.OutputPath)
	cmd.Printf("  samples:   %d, warnings: %d\n", run.SampleCount, run.WarningCount)
	cmd.Println()
	for _, result := range results {
		cmd.Printf("  %s %s: BacBio=%s FunBio=%s F:B=%s Proto=%s\n",
			result.Key.ID, result.Key.Date,
			formatOpt(result.BacterialBiomass),
			formatOpt(result.FungalBiomass),
			formatOpt(result.FBRatio),
			formatOpt(result.Protozoa))
	}
	return nil
}

func formatOpt(v domain.OptFloat) string {
	if !v.Valid() {
		return "NA"
	}
	return strconv.FormatFloat(v.Value(), 'g', 6, 64)
}
