package itsu

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"maps"
	"slices"

	"github.com/itsubaki/q"
	"github.com/kegliz/qreduce/internal/logger"
	"github.com/kegliz/qreduce/qc/circuit"
	"github.com/kegliz/qreduce/qc/gate"
	"github.com/kegliz/qreduce/qc/simulator"
	"github.com/rs/zerolog"
)

type ItsuOneShotRunner struct {
	log     logger.Logger
	config  map[string]interface{}
	mu      sync.RWMutex
	metrics ItsuMetrics
}

type ItsuMetrics struct {
	totalExecutions atomic.Int64
	successfulRuns  atomic.Int64
	failedRuns      atomic.Int64
	totalTime       atomic.Int64 // nanoseconds
	lastError       atomic.Value // string
	lastRunTime     atomic.Value // time.Time
}

// Supported gates for the Itsu backend: the closed gate catalog plus reset.
var supportedGates = []string{
	"h", "x", "y", "z", "s", "t", "rx", "ry", "rz", "u", "u3",
	"cx", "cz", "swap", "ccx", "depolarizing", "m", "reset",
}

func NewItsuOneShotRunner() *ItsuOneShotRunner {
	return &ItsuOneShotRunner{
		log: *logger.NewLogger(logger.LoggerOptions{
			Debug: false,
		}),
		config: make(map[string]any),
	}
}

// BackendProvider implementation
func (s *ItsuOneShotRunner) GetBackendInfo() simulator.BackendInfo {
	return simulator.BackendInfo{
		Name:        "Itsu Quantum Simulator",
		Version:     "v0.0.5",
		Description: "Go-based quantum circuit simulator using github.com/itsubaki/q",
		Vendor:      "itsubaki",
		Capabilities: map[string]bool{
			"context_support":    true,
			"batch_execution":    true,
			"circuit_validation": true,
			"metrics_collection": true,
			"configuration":      true,
			"reset":              true,
		},
		Metadata: map[string]string{
			"backend_type": "statevector_simulator",
			"language":     "go",
			"license":      "MIT",
		},
	}
}

// ConfigurableRunner implementation
func (s *ItsuOneShotRunner) Configure(options map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range options {
		switch key {
		case "verbose":
			if verbose, ok := value.(bool); ok {
				s.SetVerbose(verbose)
				s.config[key] = value
			} else {
				return fmt.Errorf("invalid type for 'verbose' option: expected bool, got %T", value)
			}
		default:
			s.config[key] = value
		}
	}
	return nil
}

func (s *ItsuOneShotRunner) GetConfiguration() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	config := make(map[string]any)
	maps.Copy(config, s.config)
	return config
}
func (s *ItsuOneShotRunner) SetVerbose(verbose bool) {
	if verbose {
		s.log.Logger = s.log.Logger.Level(zerolog.DebugLevel)
	} else {
		s.log.Logger = s.log.Logger.Level(zerolog.InfoLevel)
	}
}

func (s *ItsuOneShotRunner) RunOnce(c *circuit.Circuit) (string, error) {
	start := time.Now()
	defer func() {
		s.metrics.totalExecutions.Add(1)
		s.metrics.totalTime.Add(int64(time.Since(start)))
		s.metrics.lastRunTime.Store(start)
	}()

	sim := q.New()
	result, err := runOnce(sim, c)

	if err != nil {
		s.metrics.failedRuns.Add(1)
		s.metrics.lastError.Store(err.Error())
	} else {
		s.metrics.successfulRuns.Add(1)
	}

	return result, err
}

// runOnce plays the circuit's gate history exactly once on the provided
// simulator, returning the measured classical bit-string indexed by the
// circuit's declared output IDs (not raw wire index, since compiled
// circuits recycle wires across multiple logical qubits).
func runOnce(sim *q.Q, c *circuit.Circuit) (string, error) {
	qs := sim.ZeroWith(c.Width())
	outputIDs := c.OutputIDs()
	cbits := make([]byte, len(outputIDs))
	for i := range cbits {
		cbits[i] = '0'
	}
	cbitIndex := make(map[string]int, len(outputIDs))
	for i, mid := range outputIDs {
		cbitIndex[mid] = i
	}

	for i, rec := range c.History() {
		for _, w := range rec.Wires {
			if w < 0 || w >= len(qs) {
				return "", fmt.Errorf("itsu: invalid qubit index %d for gate %s (op %d)", w, rec.Name, i)
			}
		}

		switch {
		case gate.IsMeasurement(rec.Name):
			m := sim.Measure(qs[rec.Wires[0]])
			mid := rec.Mid
			if mid == "" {
				mid = fmt.Sprintf("c%d", rec.Wires[0])
			}
			if idx, ok := cbitIndex[mid]; ok {
				if m.IsOne() {
					cbits[idx] = '1'
				} else {
					cbits[idx] = '0'
				}
			}
		case gate.IsReset(rec.Name):
			// Reset by measuring and conditionally flipping back to |0>
			// using the existing CondX conditional-gate pattern.
			m := sim.Measure(qs[rec.Wires[0]])
			sim.CondX(m.IsOne(), qs[rec.Wires[0]])
		default:
			if err := applyGate(sim, qs, rec); err != nil {
				return "", fmt.Errorf("itsu: %w (op %d)", err, i)
			}
		}
	}

	return string(cbits), nil
}

func applyGate(sim *q.Q, qs []q.Qubit, rec gate.Record) error {
	w := rec.Wires
	switch rec.Name {
	case "h":
		sim.H(qs[w[0]])
	case "x":
		sim.X(qs[w[0]])
	case "y":
		sim.Y(qs[w[0]])
	case "z":
		sim.Z(qs[w[0]])
	case "s":
		sim.S(qs[w[0]])
	case "t":
		sim.T(qs[w[0]])
	case "rx":
		sim.RX(rec.Angle, qs[w[0]])
	case "ry":
		sim.RY(rec.Angle, qs[w[0]])
	case "rz":
		sim.RZ(rec.Angle, qs[w[0]])
	case "u":
		// U1(angle): the 3-parameter U gate's phase-only special case,
		// the only one this single-Angle record can carry.
		sim.RZ(rec.Angle, qs[w[0]])
	case "u3":
		sim.RY(rec.Angle, qs[w[0]])
	case "cx":
		sim.CNOT(qs[w[0]], qs[w[1]])
	case "cz":
		sim.CZ(qs[w[0]], qs[w[1]])
	case "swap":
		sim.Swap(qs[w[0]], qs[w[1]])
	case "ccx":
		sim.Toffoli(qs[w[0]], qs[w[1]], qs[w[2]])
	case "depolarizing":
		if rand.Float64() < rec.Prob {
			switch rand.IntN(3) {
			case 0:
				sim.X(qs[w[0]])
			case 1:
				sim.Y(qs[w[0]])
			default:
				sim.Z(qs[w[0]])
			}
		}
	default:
		return fmt.Errorf("unsupported gate %s", rec.Name)
	}
	return nil
}

// ResettableRunner implementation
func (s *ItsuOneShotRunner) Reset() {
	s.metrics.totalExecutions.Store(0)
	s.metrics.successfulRuns.Store(0)
	s.metrics.failedRuns.Store(0)
	s.metrics.totalTime.Store(0)
	s.metrics.lastError.Store("")
	s.metrics.lastRunTime.Store(time.Time{})
}

// MetricsCollector implementation
func (s *ItsuOneShotRunner) GetMetrics() simulator.ExecutionMetrics {
	totalExec := s.metrics.totalExecutions.Load()
	totalTimeNs := s.metrics.totalTime.Load()

	var avgTime time.Duration
	if totalExec > 0 {
		avgTime = time.Duration(totalTimeNs / totalExec)
	}

	lastErr, _ := s.metrics.lastError.Load().(string)
	lastRun, _ := s.metrics.lastRunTime.Load().(time.Time)

	return simulator.ExecutionMetrics{
		TotalExecutions: totalExec,
		SuccessfulRuns:  s.metrics.successfulRuns.Load(),
		FailedRuns:      s.metrics.failedRuns.Load(),
		AverageTime:     avgTime,
		TotalTime:       time.Duration(totalTimeNs),
		LastError:       lastErr,
		LastRunTime:     lastRun,
	}
}

func (s *ItsuOneShotRunner) ResetMetrics() {
	s.Reset()
}

// ValidatingRunner implementation
func (s *ItsuOneShotRunner) ValidateCircuit(c *circuit.Circuit) error {
	for i, rec := range c.History() {
		if !slices.Contains(supportedGates, rec.Name) {
			return fmt.Errorf("itsu: unsupported gate %s at operation %d", rec.Name, i)
		}
		for _, w := range rec.Wires {
			if w < 0 || w >= c.Width() {
				return fmt.Errorf("itsu: invalid qubit index %d for gate %s (op %d)", w, rec.Name, i)
			}
		}
	}
	return nil
}

func (s *ItsuOneShotRunner) GetSupportedGates() []string {
	gates := make([]string, len(supportedGates))
	copy(gates, supportedGates)
	return gates
}

// ContextualRunner implementation
func (s *ItsuOneShotRunner) RunOnceWithContext(ctx context.Context, c *circuit.Circuit) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	start := time.Now()
	defer func() {
		s.metrics.totalExecutions.Add(1)
		s.metrics.totalTime.Add(int64(time.Since(start)))
		s.metrics.lastRunTime.Store(start)
	}()

	resultChan := make(chan struct {
		result string
		err    error
	}, 1)

	go func() {
		sim := q.New()
		result, err := runOnce(sim, c)
		resultChan <- struct {
			result string
			err    error
		}{result, err}
	}()

	select {
	case <-ctx.Done():
		s.metrics.failedRuns.Add(1)
		s.metrics.lastError.Store(ctx.Err().Error())
		return "", ctx.Err()
	case res := <-resultChan:
		if res.err != nil {
			s.metrics.failedRuns.Add(1)
			s.metrics.lastError.Store(res.err.Error())
		} else {
			s.metrics.successfulRuns.Add(1)
		}
		return res.result, res.err
	}
}

// BatchRunner implementation
func (s *ItsuOneShotRunner) RunBatch(c *circuit.Circuit, shots int) ([]string, error) {
	if shots <= 0 {
		return nil, fmt.Errorf("shots must be positive, got %d", shots)
	}

	results := make([]string, shots)
	for i := range shots {
		result, err := s.RunOnce(c)
		if err != nil {
			return results[:i], fmt.Errorf("batch execution failed at shot %d: %w", i+1, err)
		}
		results[i] = result
	}
	return results, nil
}

// Register the Itsu runner with the plugin system
func init() {
	simulator.MustRegisterRunner("itsu", func() simulator.OneShotRunner {
		return NewItsuOneShotRunner()
	})

	simulator.MustRegisterRunner("itsubaki", func() simulator.OneShotRunner {
		return NewItsuOneShotRunner()
	})

	simulator.MustRegisterRunner("default", func() simulator.OneShotRunner {
		return NewItsuOneShotRunner()
	})
}

var _ simulator.OneShotRunner = (*ItsuOneShotRunner)(nil)
