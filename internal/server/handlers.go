package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/skillmatch/internal/cache"
	"github.com/jonathan/skillmatch/internal/metrics"
	"github.com/jonathan/skillmatch/internal/pipeline"
	"github.com/jonathan/skillmatch/internal/server/middleware"
	"github.com/jonathan/skillmatch/internal/types"
)

// maxBodyBytes bounds request bodies; 5000 postings with descriptions fit comfortably.
const maxBodyBytes = 32 << 20

// Cache header values.
const (
	cacheHeader = "X-Cache"
	cacheHit    = "HIT"
	cacheMiss   = "MISS"
)

// handleScoreJobs scores and ranks a batch of postings against a candidate.
func (s *Server) handleScoreJobs(w http.ResponseWriter, r *http.Request) {
	var req types.ScoreJobsRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.handleError(w, r, validationError(err))
		return
	}

	compute := func(ctx context.Context) (any, error) {
		jobs := req.Jobs
		if len(req.PostingIDs) > 0 {
			stored, err := s.postings.GetJobPostingsByIDs(ctx, req.PostingIDs)
			if err != nil {
				return nil, err
			}
			jobs = append(append([]types.JobPostingInput{}, jobs...), stored...)
		}
		ranked, err := s.pipeline.ScoreAndRankJobs(ctx, req.CandidateSkills, jobs, pipeline.WithCandidateLevel(req.CandidateLevel))
		if err != nil {
			return nil, err
		}
		return types.ScoreJobsResponse{Jobs: ranked}, nil
	}

	if len(req.PostingIDs) > 0 {
		if s.postings == nil {
			s.handleError(w, r, &ErrValidation{Field: "posting_ids", Message: "no job source is configured"})
			return
		}
		// Stored postings can change under the same ids, so these responses are not cached.
		resp, err := compute(r.Context())
		if err != nil {
			s.handleError(w, r, err)
			return
		}
		s.jsonResponse(w, http.StatusOK, resp)
		return
	}

	s.serveCached(w, r, "score", req, compute)
}

// handleSkillGaps aggregates the missing skills of an already ranked batch.
func (s *Server) handleSkillGaps(w http.ResponseWriter, r *http.Request) {
	var req types.SkillGapsRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.handleError(w, r, validationError(err))
		return
	}
	if req.TopN == nil {
		topN := s.defaultTopN
		req.TopN = &topN
	}

	s.serveCached(w, r, "skill-gaps", req, func(context.Context) (any, error) {
		items, err := s.pipeline.ComputeSkillGaps(req.CandidateSkills, req.ScoredJobs(), *req.TopN)
		if err != nil {
			return nil, err
		}
		return types.SkillGapsResponse{Gaps: items}, nil
	})
}

// handleAnalyze scores, ranks and computes gaps in one call.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req types.AnalyzeRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.handleError(w, r, validationError(err))
		return
	}
	if req.TopN == nil {
		topN := s.defaultTopN
		req.TopN = &topN
	}

	s.serveCached(w, r, "analyze", req, func(ctx context.Context) (any, error) {
		return s.pipeline.Analyze(ctx, req)
	})
}

// ListJobPostingsResponse represents the response for listing stored postings
type ListJobPostingsResponse struct {
	Postings []types.JobPostingInput `json:"postings"`
	Count    int                     `json:"count"`
}

// handleListJobPostings lists stored postings, newest first.
func (s *Server) handleListJobPostings(w http.ResponseWriter, r *http.Request) {
	if s.postings == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "no job source is configured")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			s.handleError(w, r, &ErrValidation{Field: "limit", Message: "must be a non-negative integer"})
			return
		}
		limit = parsed
	}

	postings, err := s.postings.ListJobPostings(r.Context(), r.URL.Query().Get("source"), limit)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ListJobPostingsResponse{Postings: postings, Count: len(postings)})
}

// HealthResponse reports service and dependency status.
type HealthResponse struct {
	Status         string            `json:"status"`
	CatalogVersion string            `json:"catalog_version"`
	Dependencies   map[string]string `json:"dependencies"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := HealthResponse{
		Status:         "ok",
		CatalogVersion: s.pipeline.CatalogVersion(),
		Dependencies: map[string]string{
			"database": dependencyStatus(ctx, s.postings),
			"cache":    dependencyStatus(ctx, s.results),
		},
	}

	status := http.StatusOK
	for _, dep := range resp.Dependencies {
		if dep == "error" {
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
		}
	}
	s.jsonResponse(w, status, resp)
}

type pinger interface {
	Ping(ctx context.Context) error
}

func dependencyStatus(ctx context.Context, p pinger) string {
	if p == nil {
		return "disabled"
	}
	if err := p.Ping(ctx); err != nil {
		return "error"
	}
	return "ok"
}

// decodeJSON reads a bounded JSON body into v.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return &ErrValidation{Field: "body", Message: fmt.Sprintf("invalid JSON: %v", err)}
	}
	return nil
}

// serveCached answers from the result cache when possible. The key covers the
// endpoint, the catalog version and the decoded request, so equivalent bodies
// share an entry. Cache failures are logged and bypassed.
func (s *Server) serveCached(w http.ResponseWriter, r *http.Request, endpoint string, req any, compute func(context.Context) (any, error)) {
	if s.results == nil {
		resp, err := compute(r.Context())
		if err != nil {
			s.handleError(w, r, err)
			return
		}
		s.jsonResponse(w, http.StatusOK, resp)
		return
	}

	canonical, err := json.Marshal(req)
	if err != nil {
		s.handleError(w, r, fmt.Errorf("failed to encode cache key: %w", err))
		return
	}
	key := s.results.Key(endpoint, s.pipeline.CatalogVersion(), string(canonical))
	log := s.logger.With(
		zap.String("endpoint", endpoint),
		zap.String("request_id", middleware.GetRequestID(r.Context())),
	)

	payload, err := s.results.Get(r.Context(), key)
	switch {
	case err == nil:
		metrics.ResultCache.WithLabelValues("hit").Inc()
		s.writeCached(w, cacheHit, payload)
		return
	case errors.Is(err, cache.ErrMiss):
		metrics.ResultCache.WithLabelValues("miss").Inc()
	default:
		metrics.ResultCache.WithLabelValues("error").Inc()
		log.Warn("result cache read failed", zap.Error(err))
	}

	resp, err := compute(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	payload, err = json.Marshal(resp)
	if err != nil {
		s.handleError(w, r, fmt.Errorf("failed to encode response: %w", err))
		return
	}
	payload = append(payload, '\n')

	if err := s.results.Set(r.Context(), key, payload); err != nil {
		metrics.ResultCache.WithLabelValues("error").Inc()
		log.Warn("result cache write failed", zap.Error(err))
	}
	s.writeCached(w, cacheMiss, payload)
}

func (s *Server) writeCached(w http.ResponseWriter, outcome string, payload []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(cacheHeader, outcome)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(payload); err != nil {
		s.logger.Debug("failed to write response", zap.Error(err))
	}
}
