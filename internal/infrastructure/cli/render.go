package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/felixgeelhaar/sprintcast/pkg/domain/forecasting"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	boxStyle   = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// renderIntervalTable formats the prediction intervals of a result as a
// bordered table.
func renderIntervalTable(result *forecasting.ForecastResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-12s %10s %10s %10s %8s\n", "Confidence", "Lower", "Predicted", "Upper", "Range")
	for _, pi := range result.PredictionIntervals {
		fmt.Fprintf(&b, "%-12s %10.1f %10.1f %10.1f %8.1f\n",
			fmt.Sprintf("%.0f%%", pi.ConfidenceLevel*100),
			pi.Lower, pi.Predicted, pi.Upper, pi.RangeWidth())
	}
	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// printResult writes the human-readable form of a forecast.
func printResult(heading string, result *forecasting.ForecastResult) {
	fmt.Println(titleStyle.Render(heading))
	fmt.Printf("Model:               %s\n", result.ModelType)
	fmt.Printf("Expected Sprints:    %.1f\n", result.ExpectedSprints)
	fmt.Printf("Expected Completion: %s\n", result.ExpectedCompletionDate.Format("2006-01-02"))
	fmt.Println(renderIntervalTable(result))
}

// resultJSON shapes a forecast for JSON output.
func resultJSON(result *forecasting.ForecastResult) map[string]interface{} {
	out := map[string]interface{}{
		"model":                    string(result.ModelType),
		"expected_sprints":         result.ExpectedSprints,
		"expected_completion_date": result.ExpectedCompletionDate.Format("2006-01-02"),
		"prediction_intervals":     result.PredictionIntervals,
		"metadata":                 result.Metadata,
	}
	if result.Distribution != nil {
		out["distribution"] = result.Distribution
	}
	return out
}
