package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"resumelens/internal/errors"
	"resumelens/internal/history"
	"resumelens/internal/observability"
)

const tracerName = "resumelens.api"

// historySource tags history entries created through the API
const historySource = "api"

// decodeTextField reads a required JSON string. Missing, null and
// non-string values are invalid arguments; an empty string is accepted.
func decodeTextField(raw json.RawMessage, field string) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", errors.NewInvalidArgumentError(fmt.Sprintf("%s is required", field)).
			WithContext("field", field)
	}
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return "", errors.NewInvalidArgumentError(fmt.Sprintf("%s must be a string", field)).
			WithContext("field", field)
	}
	return text, nil
}

// createAnalyzeHandler runs the full text analysis and appends it to the
// caller's history
func (s *Server) createAnalyzeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := om.Tracer(tracerName).Start(r.Context(), "api.analyze")
		defer span.End()
		metrics := om.GetMetrics()

		var req AnalyzeRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			writeAppError(w, "Invalid request body", err)
			return
		}

		text, err := decodeTextField(req.Text, "text")
		if err != nil {
			span.RecordError(err)
			writeAppError(w, "Invalid text", err)
			return
		}

		topN := s.AppConfig.ClampTopKeywords(req.TopKeywords)
		span.SetAttributes(
			attribute.Int("request.text_length", len(text)),
			attribute.Int("request.top_keywords", topN),
			attribute.Int("request.history_length", len(req.History)),
		)

		analysis, err := s.Lexicons.Engine().Analyze(text, topN)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "analysis failed")
			metrics.RecordBusinessMetric(ctx, observability.MetricTextAnalyzed, false, om)
			writeAppError(w, "Failed to analyze text", err)
			return
		}

		updated := history.FromEntries(req.History, s.AppConfig.Analysis.HistoryLimit).
			Append(history.NewEntry(historySource, text, analysis))

		metrics.RecordBusinessMetric(ctx, observability.MetricTextAnalyzed, true, om,
			attribute.String("sentiment", string(analysis.Sentiment.Label)),
			attribute.String("readability", analysis.Readability.Level))
		metrics.RecordContentSize(ctx, historySource, len(text), om)

		writeJSON(w, http.StatusOK, AnalyzeResponse{
			Analysis: analysis,
			History:  updated.Entries(),
		})
	}
}

// createKeywordsHandler returns only the ranked keywords of a text
func (s *Server) createKeywordsHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := om.Tracer(tracerName).Start(r.Context(), "api.keywords")
		defer span.End()

		var req KeywordsRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			writeAppError(w, "Invalid request body", err)
			return
		}

		text, err := decodeTextField(req.Text, "text")
		if err != nil {
			span.RecordError(err)
			writeAppError(w, "Invalid text", err)
			return
		}

		topN := s.AppConfig.ClampTopKeywords(req.TopKeywords)
		keywords, err := s.Lexicons.Engine().Keywords(text, topN)
		if err != nil {
			span.RecordError(err)
			writeAppError(w, "Failed to extract keywords", err)
			return
		}

		span.SetAttributes(attribute.Int("response.keywords", len(keywords)))
		writeJSON(w, http.StatusOK, KeywordsResponse{Keywords: keywords})
	}
}

// createMatchHandler compares resume keywords against a job description
func (s *Server) createMatchHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := om.Tracer(tracerName).Start(r.Context(), "api.match")
		defer span.End()
		metrics := om.GetMetrics()

		var req MatchRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			writeAppError(w, "Invalid request body", err)
			return
		}

		resume, err := decodeTextField(req.Resume, "resume")
		if err != nil {
			span.RecordError(err)
			writeAppError(w, "Invalid resume", err)
			return
		}
		job, err := decodeTextField(req.JobDescription, "job_description")
		if err != nil {
			span.RecordError(err)
			writeAppError(w, "Invalid job description", err)
			return
		}

		result, err := s.Lexicons.Engine().Match(resume, job, s.AppConfig.ClampTopKeywords(req.TopKeywords))
		if err != nil {
			span.RecordError(err)
			metrics.RecordBusinessMetric(ctx, observability.MetricKeywordMatch, false, om)
			writeAppError(w, "Failed to match keywords", err)
			return
		}

		metrics.RecordBusinessMetric(ctx, observability.MetricKeywordMatch, true, om,
			attribute.Float64("match.score", result.Score))
		span.SetAttributes(attribute.Float64("match.score", result.Score))

		writeJSON(w, http.StatusOK, result)
	}
}
