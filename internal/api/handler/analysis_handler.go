package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"careerai/internal/analysis"
	"careerai/internal/config"
	"careerai/internal/constants"
	"careerai/internal/logger"
	"careerai/internal/storage"
	"careerai/internal/storage/models"
	"careerai/internal/types"
)

// ErrQuotaExceeded is returned when a user runs out of daily analyses.
var ErrQuotaExceeded = errors.New("daily analysis quota exceeded")

// AnalysisHandler owns the AI-backed operations.
type AnalysisHandler struct {
	cfg      *config.Config
	store    *storage.Storage
	analyzer *analysis.Analyzer
}

// NewAnalysisHandler builds an AnalysisHandler.
func NewAnalysisHandler(cfg *config.Config, store *storage.Storage, analyzer *analysis.Analyzer) *AnalysisHandler {
	return &AnalysisHandler{cfg: cfg, store: store, analyzer: analyzer}
}

// HandleAnalyze runs the full resume analysis. Quota is enforced when Redis
// is up; the report is persisted and announced when those backends are up.
func (h *AnalysisHandler) HandleAnalyze(ctx context.Context, userID, plan, resumeID, resumeText string) (types.AnalysisResult, error) {
	if err := h.checkQuota(ctx, userID, plan); err != nil {
		return types.AnalysisResult{}, err
	}

	result := h.analyzer.Analyze(ctx, resumeText)
	h.persistReport(ctx, resumeID, nil, constants.ReportKindAnalysis, result, result.FromFallback)
	return result, nil
}

// HandleMatch compares a resume against a job description.
func (h *AnalysisHandler) HandleMatch(ctx context.Context, userID, plan, resumeID, resumeText, jdTitle, jdText string) (types.MatchResult, error) {
	if err := h.checkQuota(ctx, userID, plan); err != nil {
		return types.MatchResult{}, err
	}

	var jdID *string
	if h.store != nil && h.store.MySQL != nil && jdText != "" {
		if id, err := uuid.NewV7(); err == nil {
			jd := &models.JobDescription{
				ID:      id.String(),
				UserID:  userID,
				Title:   jdTitle,
				Content: jdText,
			}
			if err := h.store.MySQL.SaveJobDescription(ctx, jd); err != nil {
				logger.Warn().Err(err).Msg("persist job description failed")
			} else {
				jdID = &jd.ID
			}
		}
	}

	result := h.analyzer.Compare(ctx, resumeText, jdText)
	h.persistReport(ctx, resumeID, jdID, constants.ReportKindMatch, result, result.FromFallback)
	return result, nil
}

// HandleRewrite rewrites resume text. No quota; rewrites are cheap and the
// endpoint returns plain text.
func (h *AnalysisHandler) HandleRewrite(ctx context.Context, text string, keywords []string, section string) string {
	return h.analyzer.Rewrite(ctx, text, keywords, section)
}

// UsageResponse reports how much of today's plan quota a user has consumed.
// Limit 0 means the plan is unmetered.
type UsageResponse struct {
	Used  int64 `json:"used"`
	Limit int   `json:"limit"`
}

// HandleUsage returns the user's analysis count for today against their plan
// limit. Without Redis the count reads as zero.
func (h *AnalysisHandler) HandleUsage(ctx context.Context, userID, plan string) UsageResponse {
	resp := UsageResponse{Limit: h.cfg.Plans.DailyLimitFor(plan)}
	if h.store == nil || h.store.Redis == nil || userID == "" {
		return resp
	}

	count, err := h.store.Redis.GetUsage(ctx, userID)
	if err != nil {
		logger.Warn().Err(err).Msg("usage counter unavailable")
		return resp
	}
	resp.Used = count
	return resp
}

// checkQuota counts this request against the user's daily plan limit. No
// Redis or no user means no enforcement.
func (h *AnalysisHandler) checkQuota(ctx context.Context, userID, plan string) error {
	if h.store == nil || h.store.Redis == nil || userID == "" {
		return nil
	}
	limit := h.cfg.Plans.DailyLimitFor(plan)
	if limit <= 0 {
		return nil
	}

	count, err := h.store.Redis.IncrUsage(ctx, userID)
	if err != nil {
		logger.Warn().Err(err).Msg("usage counter unavailable, skipping quota check")
		return nil
	}
	if count > int64(limit) {
		return fmt.Errorf("%w: %d/%d used today", ErrQuotaExceeded, count-1, limit)
	}
	return nil
}

// persistReport stores the payload and publishes the completion event, both
// best-effort.
func (h *AnalysisHandler) persistReport(ctx context.Context, resumeID string, jdID *string, kind string, payload any, fromFallback bool) {
	if h.store == nil {
		return
	}

	var reportID string
	if h.store.MySQL != nil && resumeID != "" {
		id, err := uuid.NewV7()
		if err != nil {
			return
		}
		reportID = id.String()

		body, err := json.Marshal(payload)
		if err != nil {
			logger.Warn().Err(err).Msg("encode report payload failed")
			return
		}
		report := &models.AnalysisReport{
			ID:               reportID,
			ResumeID:         resumeID,
			JobDescriptionID: jdID,
			Kind:             kind,
			Payload:          body,
			FromFallback:     fromFallback,
		}
		if err := h.store.MySQL.SaveReport(ctx, report); err != nil {
			logger.Warn().Err(err).Str("resume_id", resumeID).Msg("persist report failed")
			return
		}
	}

	if h.store.RabbitMQ != nil && reportID != "" {
		event := map[string]any{
			"reportId": reportID,
			"resumeId": resumeID,
			"kind":     kind,
		}
		if err := h.store.RabbitMQ.PublishJSON(ctx, constants.EventAnalysisCompleted, event); err != nil {
			logger.Warn().Err(err).Msg("publish completion event failed")
		}
	}
}
