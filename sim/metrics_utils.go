// sim/metrics_utils.go
package sim

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/supplychain-sim/sim/trace"
)

type IntOrFloat64 interface {
	int | int64 | float64
}

// CalculateMean is a util function that calculates the mean of a data list.
func CalculateMean[T IntOrFloat64](numbers []T) float64 {
	if len(numbers) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, number := range numbers {
		sum += float64(number)
	}

	return sum / float64(len(numbers))
}

// round2 rounds half away from zero to two decimal places.
func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// MetricsOutput is the JSON document written by SaveResults.
type MetricsOutput struct {
	RunID            string              `json:"run_id"`
	Seed             int64               `json:"seed"`
	Steps            int                 `json:"steps"`
	Mode             string              `json:"mode"`
	SimulationEnded  time.Time           `json:"simulation_ended"`
	Summary          MetricsSummary      `json:"summary"`
	CostHistory      []decimal.Decimal   `json:"cost_history"`
	CostBreakdown    []CostBreakdown     `json:"cost_breakdown"`
	InventoryHistory []int               `json:"inventory_history"`
	FinalState       State               `json:"final_state"`
	Recommendation   *Recommendation     `json:"recommendation,omitempty"`
	Trace            *trace.TraceSummary `json:"trace,omitempty"`
}

// SaveResults writes the run's metrics, histories and optional trace summary
// to fileName as indented JSON.
func SaveResults(out MetricsOutput, fileName string) (err error) {
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}

	file, err := os.OpenFile(fileName, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("create results file %s: %w", fileName, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close results file %s: %w", fileName, closeErr)
		}
	}()

	writer := bufio.NewWriter(file)
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("write results file %s: %w", fileName, err)
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush results file %s: %w", fileName, err)
	}

	logrus.Debugf("Successfully wrote results to '%s'", fileName)
	return nil
}
