package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/leapstack-labs/leapflow/internal/pipeline"
	"github.com/leapstack-labs/leapflow/internal/registry"
	"github.com/leapstack-labs/leapflow/internal/submission"
	"github.com/leapstack-labs/leapflow/pkg/core"
)

// handlers serves the pipeline endpoints.
type handlers struct {
	registry     *registry.Registry
	logger       *slog.Logger
	metrics      *Metrics
	version      string
	maxBodyBytes int64
	now          func() time.Time
}

type rootResponse struct {
	Service   string            `json:"service"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

type testResponse struct {
	TestData core.Graph            `json:"test_data"`
	Analysis core.ValidationResult `json:"analysis"`
}

type nodeTypesResponse struct {
	NodeTypes []*registry.KindSpec `json:"node_types"`
}

func (h *handlers) root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, rootResponse{
		Service: "leapflow pipeline validator",
		Version: h.version,
		Endpoints: map[string]string{
			"GET /":                 "service information",
			"GET /health":           "liveness check",
			"POST /pipelines/parse": "validate a submitted pipeline graph",
			"GET /pipelines/test":   "validate the built-in sample pipeline",
			"GET /node-types":       "node kind catalog",
			"GET /metrics":          "prometheus metrics",
		},
	})
}

func (h *handlers) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, healthResponse{
		Status:    "healthy",
		Timestamp: h.now().UTC().Format(time.RFC3339),
	})
}

func (h *handlers) nodeTypes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, nodeTypesResponse{NodeTypes: h.registry.Kinds()})
}

// parse validates a submitted graph.
//
// 400 for bodies that do not decode or lack required fields, 413 for oversized
// bodies, 422 for graphs with duplicate IDs or edges naming unknown nodes.
func (h *handlers) parse(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger := h.logger.With("request_id", middleware.GetReqID(r.Context()))

	body := http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	req, err := submission.Decode(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			h.metrics.observe(outcomeTooLarge, 0, 0, time.Since(start).Seconds())
			writeError(w, logger, http.StatusRequestEntityTooLarge, err.Error())
		case errors.Is(err, submission.ErrInvalidRequest):
			h.metrics.observe(outcomeInvalid, 0, 0, time.Since(start).Seconds())
			writeError(w, logger, http.StatusBadRequest, err.Error())
		default:
			h.internalError(w, logger, err, start)
		}
		return
	}

	res, err := submission.Analyze(req, pipeline.WithRegistry(h.registry))
	if err != nil {
		if errors.Is(err, core.ErrMalformedGraph) {
			h.metrics.observe(outcomeMalformed, len(req.Nodes), len(req.Edges), time.Since(start).Seconds())
			writeError(w, logger, http.StatusUnprocessableEntity, err.Error())
			return
		}
		h.internalError(w, logger, err, start)
		return
	}

	outcome := outcomeDAG
	if !res.IsDAG {
		outcome = outcomeCyclic
	}
	h.metrics.observe(outcome, res.NumNodes, res.NumEdges, time.Since(start).Seconds())
	logger.Debug("pipeline validated",
		"num_nodes", res.NumNodes,
		"num_edges", res.NumEdges,
		"is_dag", res.IsDAG,
		"warnings", len(res.Warnings))

	writeJSON(w, logger, http.StatusOK, res)
}

// pipelineTest validates the built-in sample pipeline.
func (h *handlers) pipelineTest(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("request_id", middleware.GetReqID(r.Context()))

	p, err := pipeline.Sample(pipeline.WithRegistry(h.registry))
	if err != nil {
		h.internalError(w, logger, err, time.Now())
		return
	}
	g := p.ToSerializable()

	res, err := submission.Analyze(submission.Request{Nodes: g.Nodes, Edges: g.Edges}, pipeline.WithRegistry(h.registry))
	if err != nil {
		h.internalError(w, logger, err, time.Now())
		return
	}
	writeJSON(w, logger, http.StatusOK, testResponse{TestData: g, Analysis: res})
}

func (h *handlers) internalError(w http.ResponseWriter, logger *slog.Logger, err error, start time.Time) {
	h.metrics.observe(outcomeError, 0, 0, time.Since(start).Seconds())
	logger.Error("request failed", "error", err)
	writeError(w, logger, http.StatusInternalServerError, "internal server error")
}
