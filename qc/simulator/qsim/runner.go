// Package qsim - Main runner implementation
package qsim

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kegliz/qreduce/qc/circuit"
	"github.com/kegliz/qreduce/qc/gate"
	"github.com/kegliz/qreduce/qc/simulator"
)

// Supported gates for the QSim backend
var supportedGates = []string{
	"h", "x", "y", "z", "s", "t", "rx", "ry", "rz", "u", "u3",
	"cx", "cz", "swap", "ccx", "depolarizing", "m", "reset",
}

// OneShotRunner implementation
func (r *QSimRunner) RunOnce(c *circuit.Circuit) (string, error) {
	return r.RunOnceWithContext(context.Background(), c)
}

// ContextualRunner implementation
func (r *QSimRunner) RunOnceWithContext(ctx context.Context, c *circuit.Circuit) (string, error) {
	start := time.Now()
	r.metrics.totalExecutions.Add(1)
	r.metrics.lastRunTime.Store(start)

	defer func() {
		duration := time.Since(start)
		r.metrics.totalTime.Add(duration.Nanoseconds())
	}()

	select {
	case <-ctx.Done():
		r.metrics.failedRuns.Add(1)
		r.metrics.lastError.Store("context cancelled")
		return "", ctx.Err()
	default:
	}

	state := NewQuantumState(c.Width(), len(c.OutputIDs()))
	cbitIndex := make(map[string]int, len(c.OutputIDs()))
	for i, mid := range c.OutputIDs() {
		cbitIndex[mid] = i
	}

	for _, rec := range c.History() {
		select {
		case <-ctx.Done():
			r.metrics.failedRuns.Add(1)
			r.metrics.lastError.Store("context cancelled during execution")
			return "", ctx.Err()
		default:
		}

		switch {
		case gate.IsMeasurement(rec.Name):
			result := state.Measure(rec.Wires[0])
			mid := rec.Mid
			if mid == "" {
				mid = fmt.Sprintf("c%d", rec.Wires[0])
			}
			if idx, ok := cbitIndex[mid]; ok {
				state.classicalBits[idx] = result
			}
		case gate.IsReset(rec.Name):
			if err := state.Reset(rec.Wires[0]); err != nil {
				r.metrics.failedRuns.Add(1)
				r.metrics.lastError.Store(err.Error())
				return "", fmt.Errorf("failed to reset wire %d: %w", rec.Wires[0], err)
			}
		default:
			if err := state.ApplyGate(rec); err != nil {
				r.metrics.failedRuns.Add(1)
				r.metrics.lastError.Store(err.Error())
				return "", fmt.Errorf("failed to apply gate %s: %w", rec.Name, err)
			}
		}
	}

	result := r.formatResult(state.classicalBits)

	r.metrics.successfulRuns.Add(1)
	r.metrics.lastError.Store("")

	if r.verbose {
		fmt.Printf("QSim: Circuit executed successfully, result: %s\n", result)
	}

	return result, nil
}

// formatResult converts classical bits to string representation
func (r *QSimRunner) formatResult(bits []bool) string {
	if len(bits) == 0 {
		return "0" // Default result for circuits without measurements
	}

	var result strings.Builder
	for i := len(bits) - 1; i >= 0; i-- { // MSB first
		if bits[i] {
			result.WriteByte('1')
		} else {
			result.WriteByte('0')
		}
	}
	return result.String()
}

// BackendProvider implementation
func (r *QSimRunner) GetBackendInfo() simulator.BackendInfo {
	return simulator.BackendInfo{
		Name:        "QSim Quantum Simulator",
		Version:     "v1.0.0",
		Description: "Custom statevector-based quantum circuit simulator built from scratch",
		Vendor:      "qreduce",
		Capabilities: map[string]bool{
			"context_support":    true,
			"batch_execution":    true,
			"circuit_validation": true,
			"metrics_collection": true,
			"configuration":      true,
			"reset":              true,
		},
		Metadata: map[string]string{
			"backend_type":   "statevector_simulator",
			"language":       "go",
			"license":        "MIT",
			"implementation": "from_scratch",
		},
	}
}

// ConfigurableRunner implementation
func (r *QSimRunner) SetVerbose(verbose bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.verbose = verbose
}

func (r *QSimRunner) Configure(options map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, value := range options {
		switch key {
		case "verbose":
			if verbose, ok := value.(bool); ok {
				r.verbose = verbose
				r.config[key] = value
			} else {
				return fmt.Errorf("invalid type for 'verbose' option: expected bool, got %T", value)
			}
		case "log_level":
			if _, ok := value.(string); ok {
				r.config[key] = value
			} else {
				return fmt.Errorf("invalid type for 'log_level' option: expected string, got %T", value)
			}
		case "seed":
			if _, ok := value.(int64); ok {
				r.config[key] = value
			} else {
				return fmt.Errorf("invalid type for 'seed' option: expected int64, got %T", value)
			}
		default:
			r.config[key] = value
		}
	}
	return nil
}

func (r *QSimRunner) GetConfiguration() map[string]interface{} {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]interface{})
	for k, v := range r.config {
		result[k] = v
	}
	return result
}

// ResettableRunner implementation
func (r *QSimRunner) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.metrics.totalExecutions.Store(0)
	r.metrics.successfulRuns.Store(0)
	r.metrics.failedRuns.Store(0)
	r.metrics.totalTime.Store(0)
	r.metrics.lastError.Store("")
	r.metrics.lastRunTime.Store(time.Time{})
}

// MetricsCollector implementation
func (r *QSimRunner) GetMetrics() simulator.ExecutionMetrics {
	totalExec := r.metrics.totalExecutions.Load()
	successRuns := r.metrics.successfulRuns.Load()
	failedRuns := r.metrics.failedRuns.Load()
	totalTimeNs := r.metrics.totalTime.Load()

	var avgTime time.Duration
	if totalExec > 0 {
		avgTime = time.Duration(totalTimeNs / totalExec)
	}

	lastError := ""
	if err := r.metrics.lastError.Load(); err != nil {
		lastError = err.(string)
	}

	lastRunTime := time.Time{}
	if t := r.metrics.lastRunTime.Load(); t != nil {
		lastRunTime = t.(time.Time)
	}

	return simulator.ExecutionMetrics{
		TotalExecutions: totalExec,
		SuccessfulRuns:  successRuns,
		FailedRuns:      failedRuns,
		AverageTime:     avgTime,
		TotalTime:       time.Duration(totalTimeNs),
		LastError:       lastError,
		LastRunTime:     lastRunTime,
	}
}

func (r *QSimRunner) ResetMetrics() {
	r.Reset()
}

// ValidatingRunner implementation
func (r *QSimRunner) ValidateCircuit(c *circuit.Circuit) error {
	if c.Width() > 24 {
		return fmt.Errorf("circuit has too many qubits: %d (max 24)", c.Width())
	}

	for _, rec := range c.History() {
		if !gate.IsKnown(rec.Name) && !gate.IsReset(rec.Name) {
			return fmt.Errorf("unsupported gate: %s", rec.Name)
		}
		for _, w := range rec.Wires {
			if w < 0 || w >= c.Width() {
				return fmt.Errorf("invalid qubit index %d for %d-qubit circuit", w, c.Width())
			}
		}
	}

	return nil
}

func (r *QSimRunner) GetSupportedGates() []string {
	result := make([]string, len(supportedGates))
	copy(result, supportedGates)
	return result
}

// BatchRunner implementation
func (r *QSimRunner) RunBatch(c *circuit.Circuit, shots int) ([]string, error) {
	if shots <= 0 {
		return nil, fmt.Errorf("shots must be positive, got %d", shots)
	}

	results := make([]string, shots)

	for i := 0; i < shots; i++ {
		result, err := r.RunOnce(c)
		if err != nil {
			return nil, fmt.Errorf("shot %d failed: %w", i, err)
		}
		results[i] = result
	}

	return results, nil
}

// GetResultProbabilities analyzes a circuit and returns theoretical
// probabilities, for validation against known quantum states.
func (r *QSimRunner) GetResultProbabilities(c *circuit.Circuit) (map[string]float64, error) {
	state := NewQuantumState(c.Width(), len(c.OutputIDs()))

	for _, rec := range c.History() {
		if gate.IsMeasurement(rec.Name) || gate.IsReset(rec.Name) {
			continue
		}
		if err := state.ApplyGate(rec); err != nil {
			return nil, fmt.Errorf("failed to apply gate %s: %w", rec.Name, err)
		}
	}

	probs := state.GetProbabilities()
	result := make(map[string]float64)

	for i, prob := range probs {
		if prob > 1e-10 {
			bitString := fmt.Sprintf("%0*b", state.numQubits, i)
			result[bitString] = prob
		}
	}

	return result, nil
}

// Factory function for the plugin system
func init() {
	simulator.MustRegisterRunner("qsim", func() simulator.OneShotRunner {
		return NewQSimRunner()
	})
}
