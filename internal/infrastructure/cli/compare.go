package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/sprintcast/internal/infrastructure/wiring"
	"github.com/felixgeelhaar/sprintcast/pkg/domain/forecasting"
)

var (
	compareMetrics   metricsFlags
	compareRemaining float64
	compareModels    string
	compareJSON      bool
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run the same inputs through several forecasting models",
	Long: `Compare forecasts the remaining work with each requested model using
its default configuration. Models that fail are skipped; whatever
succeeded is reported.`,
	RunE: runCompare,
}

func runCompare(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	services := wiring.BuildAppServices(logger)

	metrics, err := compareMetrics.resolve()
	if err != nil {
		return err
	}

	results, err := services.Compare.Compare(compareRemaining, metrics, parseModelTypes(compareModels))
	if err != nil {
		return err
	}

	if compareJSON {
		output := make(map[string]interface{}, len(results))
		for t, result := range results {
			output[string(t)] = resultJSON(result)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(output)
	}

	for _, t := range sortedTypes(results) {
		printResult(string(t), results[t])
		fmt.Println()
	}
	return nil
}

func sortedTypes(results map[forecasting.ModelType]*forecasting.ForecastResult) []forecasting.ModelType {
	types := make([]forecasting.ModelType, 0, len(results))
	for t := range results {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

func init() {
	compareMetrics.register(compareCmd)
	compareCmd.Flags().Float64Var(&compareRemaining, "remaining", 0, "Remaining work to forecast (e.g. story points)")
	compareCmd.Flags().StringVar(&compareModels, "models", "", "Comma-separated model types (default: all registered)")
	compareCmd.Flags().BoolVar(&compareJSON, "json", false, "Output in JSON format")
	_ = compareCmd.MarkFlagRequired("remaining")
	RootCmd.AddCommand(compareCmd)
}
