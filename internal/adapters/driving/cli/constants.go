package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var constantsJSON bool

var constantsCmd = &cobra.Command{
	Use:   "constants",
	Short: "Show the effective scaling constants",
	Long: `Prints the scaling constants the calculator will use: the standard
protocol defaults overlaid with any overrides from the config file.
Every output figure is a deterministic function of the input tables
and these constants.`,
	RunE: runConstantsShow,
}

var constantsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Override a scaling constant",
	Long: `Stores a scaling-constant override in the config file. Keys use the
config dot notation, e.g.:

  soilbio constants set constants.fields_per_drop 2000`,
	Args: cobra.ExactArgs(2),
	RunE: runConstantsSet,
}

func init() {
	constantsCmd.Flags().BoolVar(&constantsJSON, "json", false, "output constants as JSON")
	constantsCmd.AddCommand(constantsSetCmd)
	rootCmd.AddCommand(constantsCmd)
}

func runConstantsShow(cmd *cobra.Command, _ []string) error {
	svc, err := newConstantsService()
	if err != nil {
		return err
	}
	constants, err := svc.Effective()
	if err != nil {
		return err
	}

	if constantsJSON {
		data, err := json.MarshalIndent(constants, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println("Effective scaling constants:")
	cmd.Printf("  eyepiece field number:    %g mm\n", constants.EyepieceFieldNumberMm)
	cmd.Printf("  objective magnification:  %gx\n", constants.ObjectiveMagnification)
	cmd.Printf("  field-of-view diameter:   %g um (derived)\n", constants.FOVDiameterUm())
	cmd.Printf("  fields per drop:          %g\n", constants.FieldsPerDrop)
	cmd.Printf("  fields counted per tally: %g\n", constants.FieldsCounted)
	cmd.Printf("  fungal density:           %g pg/um3\n", constants.FungalDensityPgUm3)
	cmd.Printf("  bacterial density:        %g pg\n", constants.BacterialDensityPg)
	cmd.Printf("  coverslip side:           %g mm\n", constants.CoverslipSideMm)
	cmd.Printf("  fields per coverslip:     %.4f (derived)\n", constants.FieldsPerCoverslip())
	return nil
}

func runConstantsSet(cmd *cobra.Command, args []string) error {
	value, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("value %q is not numeric", args[1])
	}

	svc, err := newConstantsService()
	if err != nil {
		return err
	}
	if err := svc.SetOverride(args[0], value); err != nil {
		return err
	}
	cmd.Printf("Set %s = %g\n", args[0], value)
	return nil
}
