package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/sprintcast/internal/infrastructure/config"
	"github.com/felixgeelhaar/sprintcast/internal/infrastructure/wiring"
	"github.com/felixgeelhaar/sprintcast/pkg/domain/analytics"
	"github.com/felixgeelhaar/sprintcast/pkg/domain/forecasting"
	"github.com/felixgeelhaar/sprintcast/pkg/domain/scenario"
)

var (
	forecastMetrics metricsFlags

	forecastRemaining   float64
	forecastModel       string
	forecastConfidence  string
	forecastSimulations int
	forecastSprintDays  int
	forecastSeed        uint64
	forecastNoVariance  bool
	forecastVarianceX   float64
	forecastScenario    string
	forecastTeamSize    float64
	forecastConfigFile  string
	forecastJSON        bool
	forecastExplain     bool
	forecastHealth      bool
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Forecast when the remaining work will complete",
	Long: `Forecast runs the selected model against historical velocity and
prints prediction intervals per confidence level.

Velocity history is given either as raw samples (--velocities) or as
summary statistics (--average, --std-dev, ...). A scenario file adds a
what-if forecast next to the baseline.`,
	RunE: runForecast,
}

func runForecast(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	services := wiring.BuildAppServices(logger)

	metrics, err := forecastMetrics.resolve()
	if err != nil {
		return err
	}

	fileCfg, err := config.LoadRunConfig(forecastConfigFile)
	if err != nil {
		return err
	}
	mc, err := buildMonteCarloConfig(cmd, fileCfg)
	if err != nil {
		return err
	}

	var sc *scenario.Scenario
	if forecastScenario != "" {
		sc, err = config.LoadScenario(forecastScenario)
		if err != nil {
			return err
		}
	}

	teamSize := forecastTeamSize
	if teamSize == 0 && fileCfg != nil {
		teamSize = fileCfg.TeamSize
	}

	model, err := services.Factory.Create(forecasting.ModelType(forecastModel))
	if err != nil {
		return err
	}
	var cfg forecasting.Config = mc
	if model.Type() != forecasting.ModelTypeMonteCarlo {
		cfg = mc.Configuration
	}

	baseline, adjusted, err := services.Scenario.Apply(model, forecastRemaining, metrics, sc, cfg, teamSize)
	if err != nil {
		return err
	}

	if forecastJSON {
		return outputForecastJSON(metrics, baseline, adjusted, services.Decisions)
	}
	outputForecastText(metrics, baseline, adjusted, sc)
	if forecastExplain {
		printDecisions(services.Decisions)
	}
	return nil
}

// buildMonteCarloConfig merges file configuration and flags onto the
// defaults. Flags win when set.
func buildMonteCarloConfig(cmd *cobra.Command, fileCfg *config.RunConfig) (forecasting.MonteCarloConfiguration, error) {
	mc := fileCfg.MonteCarloConfiguration()

	if cmd.Flags().Changed("confidence") {
		levels, err := parseFloatList(forecastConfidence)
		if err != nil {
			return mc, fmt.Errorf("invalid --confidence: %w", err)
		}
		mc.ConfidenceLevels = levels
	}
	if cmd.Flags().Changed("simulations") {
		mc.NumSimulations = forecastSimulations
	}
	if cmd.Flags().Changed("sprint-days") {
		mc.SprintDurationDays = forecastSprintDays
	}
	if cmd.Flags().Changed("seed") {
		mc.Seed = forecastSeed
	}
	if cmd.Flags().Changed("no-variance") {
		mc.UseHistoricalVariance = !forecastNoVariance
	}
	if cmd.Flags().Changed("variance-multiplier") {
		mc.VarianceMultiplier = forecastVarianceX
	}
	return mc, nil
}

func outputForecastText(metrics forecasting.VelocityMetrics, baseline, adjusted *forecasting.ForecastResult, sc *scenario.Scenario) {
	fmt.Println(titleStyle.Render("Velocity"))
	fmt.Printf("Average: %.1f  Median: %.1f  StdDev: %.1f  Range: [%.1f, %.1f]  Trend: %+.2f/sprint\n",
		metrics.Average, metrics.Median, metrics.StdDev, metrics.Min, metrics.Max, metrics.Trend)

	if forecastHealth {
		d := analytics.Diagnose(metrics)
		fmt.Println(titleStyle.Render("\nProcess Health"))
		fmt.Printf("Trend:          %s\n", d.Direction)
		fmt.Printf("Variability:    %.0f%%\n", d.Variability*100)
		fmt.Printf("Predictability: %.0f%%\n", d.Predictability*100)
		if d.HighVariance {
			fmt.Println(dimStyle.Render("Velocity variance is high; expect wide intervals."))
		}
	}

	fmt.Println()
	printResult("Baseline Forecast", baseline)

	if adjusted != nil {
		fmt.Println()
		heading := "Scenario Forecast"
		if sc != nil && sc.Name != "" {
			heading = fmt.Sprintf("Scenario Forecast (%s)", sc.Name)
		}
		printResult(heading, adjusted)
		fmt.Printf("\nDelta vs baseline: %+.1f sprints\n", adjusted.ExpectedSprints-baseline.ExpectedSprints)
	}
}

func outputForecastJSON(metrics forecasting.VelocityMetrics, baseline, adjusted *forecasting.ForecastResult, decisions *forecasting.DecisionLog) error {
	output := map[string]interface{}{
		"velocity_metrics": metrics,
		"baseline":         resultJSON(baseline),
	}
	if adjusted != nil {
		output["adjusted"] = resultJSON(adjusted)
		output["delta_sprints"] = adjusted.ExpectedSprints - baseline.ExpectedSprints
	}
	if forecastExplain {
		output["decisions"] = decisions.All()
	}
	if forecastHealth {
		output["health"] = analytics.Diagnose(metrics)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

func printDecisions(log *forecasting.DecisionLog) {
	decisions := log.All()
	if len(decisions) == 0 {
		return
	}
	fmt.Println(titleStyle.Render("\nDecisions"))
	for _, d := range decisions {
		fmt.Printf("%s = %s (%s): %s\n", d.Parameter, d.Value, d.Source, d.Reason)
	}
}

func init() {
	forecastMetrics.register(forecastCmd)
	forecastCmd.Flags().Float64Var(&forecastRemaining, "remaining", 0, "Remaining work to forecast (e.g. story points)")
	forecastCmd.Flags().StringVar(&forecastModel, "model", string(forecasting.ModelTypeMonteCarlo), "Forecasting model to use")
	forecastCmd.Flags().StringVar(&forecastConfidence, "confidence", "", "Comma-separated confidence levels (e.g. 0.5,0.85)")
	forecastCmd.Flags().IntVar(&forecastSimulations, "simulations", forecasting.DefaultNumSimulations, "Number of Monte Carlo trials")
	forecastCmd.Flags().IntVar(&forecastSprintDays, "sprint-days", forecasting.DefaultSprintDurationDays, "Sprint duration in days")
	forecastCmd.Flags().Uint64Var(&forecastSeed, "seed", 0, "Random seed for reproducible runs (0 = time-based)")
	forecastCmd.Flags().BoolVar(&forecastNoVariance, "no-variance", false, "Burn the mean velocity every sprint instead of sampling")
	forecastCmd.Flags().Float64Var(&forecastVarianceX, "variance-multiplier", forecasting.DefaultVarianceMultiplier, "Scale applied to the historical standard deviation")
	forecastCmd.Flags().StringVar(&forecastScenario, "scenario", "", "Path to a scenario YAML file for a what-if forecast")
	forecastCmd.Flags().Float64Var(&forecastTeamSize, "team-size", 0, "Current effective team size scenario team changes apply against")
	forecastCmd.Flags().StringVar(&forecastConfigFile, "config", "sprintcast.yaml", "Path to a run configuration file")
	forecastCmd.Flags().BoolVar(&forecastJSON, "json", false, "Output in JSON format")
	forecastCmd.Flags().BoolVar(&forecastExplain, "explain", false, "Show which defaulted parameters were applied and why")
	forecastCmd.Flags().BoolVar(&forecastHealth, "health", false, "Show process-health diagnostics for the velocity history")
	_ = forecastCmd.MarkFlagRequired("remaining")
	RootCmd.AddCommand(forecastCmd)
}
