package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kegliz/qreduce/internal/config"
	"github.com/kegliz/qreduce/internal/logger"
	"github.com/stretchr/testify/suite"
)

type HandlersTestSuite struct {
	suite.Suite
	app *appServer
}

func (s *HandlersTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	c, err := config.Load(config.Options{})
	s.Require().NoError(err)
	s.app = &appServer{
		logger: logger.NewLogger(logger.LoggerOptions{Debug: true}),
		config: c,
	}
}

func (s *HandlersTestSuite) ginContext(method, body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(method, "/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	ctx.Request = req
	ctx.Set("logger", s.app.logger)
	return ctx, w
}

func (s *HandlersTestSuite) TestHealthHandler() {
	ctx, w := s.ginContext(http.MethodGet, "")
	s.app.HealthHandler(ctx)
	s.Equal(http.StatusOK, w.Code)
}

func bellCircuitBody() string {
	req := CompileRequest{
		Qubits: 2,
		Gates: []GateSpec{
			{Name: "h", WhichQubit: []int{0}},
			{Name: "cx", WhichQubit: []int{0, 1}},
			{Name: "m", WhichQubit: []int{0}, Mid: "c0"},
			{Name: "m", WhichQubit: []int{1}, Mid: "c1"},
		},
		Method: "deterministic_greedy",
	}
	b, _ := json.Marshal(req)
	return string(b)
}

func (s *HandlersTestSuite) TestCompileHandlerBellState() {
	ctx, w := s.ginContext(http.MethodPost, bellCircuitBody())
	s.app.CompileHandler(ctx)
	s.Equal(http.StatusOK, w.Code)

	var resp CompileResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.GreaterOrEqual(resp.Width, 1)
	s.LessOrEqual(resp.Width, 2)
	s.NotEmpty(resp.Gates)
}

func (s *HandlersTestSuite) TestCompileHandlerInvalidJSON() {
	ctx, w := s.ginContext(http.MethodPost, "{not json")
	s.app.CompileHandler(ctx)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlersTestSuite) TestCompileHandlerUnknownGate() {
	req := CompileRequest{Qubits: 1, Gates: []GateSpec{{Name: "bogus", WhichQubit: []int{0}}}}
	b, _ := json.Marshal(req)
	ctx, w := s.ginContext(http.MethodPost, string(b))
	s.app.CompileHandler(ctx)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlersTestSuite) TestRunHandlerBellState() {
	ctx, w := s.ginContext(http.MethodPost, bellCircuitBody())
	ctx.Request.URL.RawQuery = "backend=itsu&shots=64"
	s.app.RunHandler(ctx)
	s.Equal(http.StatusOK, w.Code)

	var resp RunResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(64, resp.Shots)
	s.Equal("itsu", resp.Backend)

	total := 0
	for _, n := range resp.Counts {
		total += n
	}
	s.Equal(64, total)
}

func (s *HandlersTestSuite) TestRunHandlerUnknownBackend() {
	ctx, w := s.ginContext(http.MethodPost, bellCircuitBody())
	ctx.Request.URL.RawQuery = "backend=nope"
	s.app.RunHandler(ctx)
	s.Equal(http.StatusBadRequest, w.Code)
}

func TestHandlersSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}
