package cli

import (
	"context"
	"errors"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/rhizome-labs/soilbio-cli/internal/adapters/driven/tabular/csvfile"
	"github.com/rhizome-labs/soilbio-cli/internal/logger"
)

// watchDebounce coalesces the burst of events spreadsheet apps emit
// on save into one recompute.
const watchDebounce = 500 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Recompute whenever an input table changes",
	Long: `Runs one computation, then watches both input tables and
recomputes the result table whenever either changes. Stop with Ctrl-C.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&computeMetadata, "metadata", "m", "", "sample metadata CSV (required)")
	watchCmd.Flags().StringVarP(&computeFragments, "fragments", "f", "", "fungal fragment CSV (required)")
	watchCmd.Flags().StringVarP(&computeOut, "out", "o", "", "output CSV path (required)")
	watchCmd.Flags().StringVar(&computeNA, "na", csvfile.DefaultNAMarker, "marker for missing values in the output")
	watchCmd.Flags().IntVar(&computeParallel, "parallel", 0, "sample groups computed concurrently (0 = number of CPUs)")
	watchCmd.Flags().BoolVar(&computeStore, "store", false, "persist each run to the local history database")
	_ = watchCmd.MarkFlagRequired("metadata")
	_ = watchCmd.MarkFlagRequired("fragments")
	_ = watchCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initial computation; input problems are reported but do not end
	// the watch, since the next save may fix them.
	if summary, err := computeOnce(ctx); err != nil {
		cmd.PrintErrf("compute failed: %v\n", err)
	} else {
		printSummary(cmd, summary)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the parent directories: editors replace files on save, and
	// a watch on the file itself dies with the old inode.
	watched := map[string]bool{
		filepath.Clean(computeMetadata):  true,
		filepath.Clean(computeFragments): true,
	}
	dirs := map[string]bool{}
	for path := range watched {
		dirs[filepath.Dir(path)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return err
		}
	}
	cmd.Printf("Watching %s and %s (Ctrl-C to stop)\n", computeMetadata, computeFragments)

	var timer *time.Timer
	recompute := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !watched[filepath.Clean(event.Name)] {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("Change detected: %s (%s)", event.Name, event.Op)
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, func() {
				select {
				case recompute <- struct{}{}:
				default:
				}
			})

		case <-recompute:
			if summary, err := computeOnce(ctx); err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				cmd.PrintErrf("compute failed: %v\n", err)
			} else {
				printSummary(cmd, summary)
			}

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			cmd.PrintErrf("watch error: %v\n", watchErr)
		}
	}
}
