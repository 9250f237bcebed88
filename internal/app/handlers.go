package app

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kegliz/qreduce/qc/circuit"
	"github.com/kegliz/qreduce/qc/gate"
	"github.com/kegliz/qreduce/qc/planner"
	"github.com/kegliz/qreduce/qc/simulator"

	// Import simulators to register them
	_ "github.com/kegliz/qreduce/qc/simulator/itsu"
	_ "github.com/kegliz/qreduce/qc/simulator/qsim"
)

// GateSpec is the wire format for a single gate record: name,
// which_qubit, and the optional
// metadata fields that apply to some gates. Signature is server-assigned
// and never accepted from a client.
type GateSpec struct {
	Name       string    `json:"name"`
	WhichQubit []int     `json:"which_qubit"`
	Prob       *float64  `json:"prob,omitempty"`
	GroupTag   string    `json:"group_tag,omitempty"`
	Mid        string    `json:"mid,omitempty"`
	Angle      *float64  `json:"angle,omitempty"`
}

// CompileRequest is the body of POST /compile and POST /run.
type CompileRequest struct {
	Qubits int        `json:"qubits"`
	Gates  []GateSpec `json:"gates"`
	Method string     `json:"method"`
}

// CompileResponse is the body of POST /compile: the compiled gate
// history plus the planner's summary statistics.
type CompileResponse struct {
	Width        int        `json:"width"`
	Gates        []GateSpec `json:"gates"`
	ReuseEdges   []planner.Edge `json:"reuse_edges"`
	Reducibility float64    `json:"reducibility"`
}

// RunResponse is the body of POST /run.
type RunResponse struct {
	Compile CompileResponse `json:"compile"`
	Counts  map[string]int  `json:"counts"`
	Backend string          `json:"backend"`
	Shots   int             `json:"shots"`
}

var badRequestErrorMsg = "Bad Request - please contact the administrator"
var internalServerErrorMsg = "Internal Server Error - please contact the administrator"

// HealthHandler is the handler for the /healthz endpoint.
func (a *appServer) HealthHandler(c *gin.Context) {
	l, err := a.getLoggerFromContext(c)
	if err != nil {
		panic("logger not found in context")
	}
	l.Debug().Msg("serving health endpoint")
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// CompileHandler is the handler for POST /compile: it builds a circuit
// from the request body, compiles it with the requested planner method,
// and returns the compiled gate history.
func (a *appServer) CompileHandler(c *gin.Context) {
	l, err := a.getLoggerFromContext(c)
	if err != nil {
		panic("logger not found in context")
	}

	var req CompileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Error().Err(err).Msg("binding JSON failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	circ, err := buildCircuit(req)
	if err != nil {
		l.Error().Err(err).Msg("building circuit failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	method := req.Method
	if method == "" {
		method = a.config.GetString("default_method")
	}
	if method == "" {
		method = planner.MethodDeterministicGreedy
	}

	compiled, plan, err := circ.Compile(method)
	if err != nil {
		l.Error().Err(err).Str("method", method).Msg("compilation failed")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, compileResponse(circ, compiled, plan))
}

// RunHandler is the handler for POST /run: it compiles the circuit as
// CompileHandler does, then runs the compiled circuit on the requested
// simulator backend for the requested number of shots.
func (a *appServer) RunHandler(c *gin.Context) {
	l, err := a.getLoggerFromContext(c)
	if err != nil {
		panic("logger not found in context")
	}

	var req CompileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Error().Err(err).Msg("binding JSON failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	backend := c.DefaultQuery("backend", a.config.GetString("default_backend"))
	shots := a.config.GetInt("default_shots")
	if s := c.Query("shots"); s != "" {
		if _, err := fmt.Sscanf(s, "%d", &shots); err != nil || shots <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid shots query parameter"})
			return
		}
	}

	circ, err := buildCircuit(req)
	if err != nil {
		l.Error().Err(err).Msg("building circuit failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	method := req.Method
	if method == "" {
		method = a.config.GetString("default_method")
	}
	if method == "" {
		method = planner.MethodDeterministicGreedy
	}

	compiled, plan, err := circ.Compile(method)
	if err != nil {
		l.Error().Err(err).Str("method", method).Msg("compilation failed")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	runner, err := simulator.CreateRunner(backend)
	if err != nil {
		l.Error().Err(err).Str("backend", backend).Msg("unknown backend")
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown backend: " + backend})
		return
	}

	sim := simulator.NewSimulator(simulator.SimulatorOptions{Shots: shots, Runner: runner})
	counts, err := sim.Run(compiled)
	if err != nil {
		l.Error().Err(err).Str("backend", backend).Msg("simulation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalServerErrorMsg})
		return
	}

	c.JSON(http.StatusOK, RunResponse{
		Compile: compileResponse(circ, compiled, plan),
		Counts:  counts,
		Backend: backend,
		Shots:   shots,
	})
}

// buildCircuit dispatches each GateSpec onto the matching circuit.Circuit
// method; there is no generic "append raw record" entry point, so this
// mirrors the catalog's per-gate arity by hand.
func buildCircuit(req CompileRequest) (*circuit.Circuit, error) {
	if req.Qubits <= 0 {
		return nil, fmt.Errorf("qubits must be positive")
	}

	c := circuit.New(req.Qubits, "http-request")
	for i, g := range req.Gates {
		if err := applyGateSpec(c, g); err != nil {
			return nil, fmt.Errorf("gate %d (%s): %w", i, g.Name, err)
		}
	}
	if err := c.Err(); err != nil {
		return nil, err
	}
	return c, nil
}

func applyGateSpec(c *circuit.Circuit, g GateSpec) error {
	w := g.WhichQubit
	need := func(n int) error {
		if len(w) != n {
			return fmt.Errorf("expects %d wires, got %d", n, len(w))
		}
		return nil
	}

	switch g.Name {
	case "h":
		if err := need(1); err != nil {
			return err
		}
		c.H(w[0])
	case "x":
		if err := need(1); err != nil {
			return err
		}
		c.X(w[0])
	case "y":
		if err := need(1); err != nil {
			return err
		}
		c.Y(w[0])
	case "z":
		if err := need(1); err != nil {
			return err
		}
		c.Z(w[0])
	case "s":
		if err := need(1); err != nil {
			return err
		}
		c.S(w[0])
	case "t":
		if err := need(1); err != nil {
			return err
		}
		c.T(w[0])
	case "rx", "ry", "rz", "u", "u3":
		if err := need(1); err != nil {
			return err
		}
		angle := 0.0
		if g.Angle != nil {
			angle = *g.Angle
		}
		switch g.Name {
		case "rx":
			c.RX(angle, w[0])
		case "ry":
			c.RY(angle, w[0])
		case "rz":
			c.RZ(angle, w[0])
		case "u":
			c.U(angle, w[0])
		case "u3":
			c.U3(angle, w[0])
		}
	case "cx":
		if err := need(2); err != nil {
			return err
		}
		c.CX(w[0], w[1])
	case "cz":
		if err := need(2); err != nil {
			return err
		}
		c.CZ(w[0], w[1])
	case "swap":
		if err := need(2); err != nil {
			return err
		}
		c.SWAP(w[0], w[1])
	case "ccx":
		if err := need(gate.CCXArity); err != nil {
			return err
		}
		c.CCX(w[0], w[1], w[2])
	case "depolarizing":
		if err := need(1); err != nil {
			return err
		}
		prob := 0.0
		if g.Prob != nil {
			prob = *g.Prob
		}
		c.Depolarizing(prob, w[0])
	case "m":
		if err := need(1); err != nil {
			return err
		}
		c.Measure(w[0], g.Mid)
	case "r", "reset":
		if err := need(1); err != nil {
			return err
		}
		c.Reset(w[0])
	default:
		return fmt.Errorf("unknown gate name %q", g.Name)
	}

	if g.GroupTag != "" {
		c.WithGroup(g.GroupTag)
	}
	return c.Err()
}

// compileResponse converts a compile result into the wire format,
// reporting the reducibility factor.
func compileResponse(original, compiled *circuit.Circuit, plan planner.Plan) CompileResponse {
	gates := make([]GateSpec, 0, len(compiled.History()))
	for _, rec := range compiled.History() {
		spec := GateSpec{Name: rec.Name, WhichQubit: rec.Wires, GroupTag: rec.GroupTag, Mid: rec.Mid}
		if rec.Name == "depolarizing" {
			prob := rec.Prob
			spec.Prob = &prob
		}
		if rec.Angle != 0 {
			angle := rec.Angle
			spec.Angle = &angle
		}
		gates = append(gates, spec)
	}

	var reducibility float64
	if original.Width() > 0 {
		reducibility = 1 - float64(compiled.Width())/float64(original.Width())
	}

	return CompileResponse{
		Width:        compiled.Width(),
		Gates:        gates,
		ReuseEdges:   plan.ReuseEdges,
		Reducibility: reducibility,
	}
}
