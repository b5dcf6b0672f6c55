package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/sprintcast/internal/infrastructure/wiring"
)

var modelsJSON bool

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the registered forecasting models",
	RunE: func(cmd *cobra.Command, args []string) error {
		services := wiring.BuildAppServices(newLogger())
		infos := services.Factory.AvailableModels()

		if modelsJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(infos)
		}

		for _, info := range infos {
			fmt.Println(titleStyle.Render(fmt.Sprintf("%s (%s)", info.DisplayName, info.Type)))
			fmt.Printf("  %s\n", info.Description)
			fmt.Printf("  Distributions: %v  Min history: %d sprints\n",
				info.SupportsDistributions, info.MinHistoricalPeriods)
			fmt.Println(dimStyle.Render("  " + info.Methodology))
			fmt.Println()
		}
		return nil
	},
}

func init() {
	modelsCmd.Flags().BoolVar(&modelsJSON, "json", false, "Output in JSON format")
	RootCmd.AddCommand(modelsCmd)
}
