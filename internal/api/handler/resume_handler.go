// Package handler implements the transport-free request handlers. The router
// owns HTTP concerns; everything here takes parsed inputs and returns typed
// results.
package handler

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/gofrs/uuid/v5"
	"gorm.io/gorm"

	"careerai/internal/constants"
	"careerai/internal/logger"
	"careerai/internal/logsafe"
	"careerai/internal/parser"
	"careerai/internal/storage"
	"careerai/internal/storage/models"
	"careerai/internal/types"
)

// ErrResumeNotFound is returned when a resume ID matches no stored record.
var ErrResumeNotFound = errors.New("resume not found")

// ResumeHandler owns upload and structure parsing.
type ResumeHandler struct {
	store *storage.Storage
}

// NewResumeHandler builds a ResumeHandler.
func NewResumeHandler(store *storage.Storage) *ResumeHandler {
	return &ResumeHandler{store: store}
}

// UploadResponse is returned by HandleUpload.
type UploadResponse struct {
	ResumeID  string                `json:"resumeId"`
	Duplicate bool                  `json:"duplicate"`
	Structure types.ResumeStructure `json:"structure"`
}

// HandleUpload extracts text from an uploaded document, dedupes it, stores
// the original and returns the parsed structure. Storage failures degrade to
// a parse-only response; the user still gets their structure back.
func (h *ResumeHandler) HandleUpload(ctx context.Context, userID, filename string, file io.Reader, size int64) (*UploadResponse, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	rawText, err := parser.ExtractText(filename, data)
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}

	sum := md5.Sum(data)
	md5hex := hex.EncodeToString(sum[:])

	if h.store != nil && h.store.Redis != nil {
		if exists, err := h.store.Redis.CheckMD5Exists(ctx, md5hex); err == nil && exists {
			if resp := h.duplicateResponse(ctx, md5hex, rawText); resp != nil {
				return resp, nil
			}
		}
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate id: %w", err)
	}
	resumeID := id.String()

	structure := ParseStructure(rawText)

	if h.store != nil && h.store.MinIO != nil {
		ext := filepath.Ext(filename)
		if _, err := h.store.MinIO.UploadResumeFile(ctx, resumeID, ext, bytes.NewReader(data), size); err != nil {
			logger.Warn().Err(err).Str("resume_id", resumeID).Msg("keep original failed")
		}
	}

	if h.store != nil && h.store.MySQL != nil {
		headerJSON, _ := json.Marshal(structure.Header)
		sectionsJSON, _ := json.Marshal(structure.Sections)
		record := &models.Resume{
			ID:               resumeID,
			UserID:           userID,
			OriginalFilename: filename,
			StoragePath:      "originals/" + resumeID + filepath.Ext(filename),
			RawTextMD5:       md5hex,
			RawText:          rawText,
			ParsedHeader:     headerJSON,
			ParsedSections:   sectionsJSON,
		}
		if err := h.store.MySQL.SaveResume(ctx, record); err != nil {
			logger.Warn().Err(err).Str("resume_id", resumeID).Msg("persist resume failed")
		}
	}

	if h.store != nil && h.store.Redis != nil {
		if err := h.store.Redis.AddMD5(ctx, md5hex); err != nil {
			logger.Warn().Err(err).Msg("record upload md5 failed")
		}
	}

	if h.store != nil && h.store.RabbitMQ != nil {
		event := map[string]any{"resumeId": resumeID, "userId": userID}
		if err := h.store.RabbitMQ.PublishJSON(ctx, constants.EventResumeUploaded, event); err != nil {
			logger.Warn().Err(err).Msg("publish upload event failed")
		}
	}

	logger.Info().
		Str("resume_id", resumeID).
		Str("filename", logsafe.Value("filename", filename)).
		Int("chars", len(rawText)).
		Msg("resume uploaded")

	return &UploadResponse{ResumeID: resumeID, Structure: structure}, nil
}

// duplicateResponse serves a previously uploaded resume when the database
// still has it. Returns nil when the record is gone, in which case the
// upload proceeds as new.
func (h *ResumeHandler) duplicateResponse(ctx context.Context, md5hex, rawText string) *UploadResponse {
	if h.store.MySQL == nil {
		return nil
	}
	existing, err := h.store.MySQL.FindResumeByMD5(ctx, md5hex)
	if err != nil || existing == nil {
		return nil
	}

	logger.Info().Str("resume_id", existing.ID).Msg("duplicate upload, serving existing resume")
	return &UploadResponse{
		ResumeID:  existing.ID,
		Duplicate: true,
		Structure: ParseStructure(rawText),
	}
}

// HandleReports lists a resume's stored analysis and match reports, newest
// first.
func (h *ResumeHandler) HandleReports(ctx context.Context, resumeID string, limit int) ([]models.AnalysisReport, error) {
	if h.store == nil || h.store.MySQL == nil {
		return nil, fmt.Errorf("report storage is unavailable")
	}

	if _, err := h.store.MySQL.GetResume(ctx, resumeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResumeNotFound
		}
		return nil, fmt.Errorf("load resume: %w", err)
	}

	return h.store.MySQL.ListReportsByResume(ctx, resumeID, limit)
}

// HandleOriginal fetches the originally uploaded file for a resume. Returns
// the file bytes and the filename it was uploaded under.
func (h *ResumeHandler) HandleOriginal(ctx context.Context, resumeID string) ([]byte, string, error) {
	if h.store == nil || h.store.MySQL == nil || h.store.MinIO == nil {
		return nil, "", fmt.Errorf("file storage is unavailable")
	}

	resume, err := h.store.MySQL.GetResume(ctx, resumeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrResumeNotFound
		}
		return nil, "", fmt.Errorf("load resume: %w", err)
	}

	data, err := h.store.MinIO.DownloadFile(ctx, resume.StoragePath)
	if err != nil {
		return nil, "", fmt.Errorf("fetch original: %w", err)
	}
	return data, resume.OriginalFilename, nil
}

// HandleStructure parses raw resume text into the preview structure.
func (h *ResumeHandler) HandleStructure(ctx context.Context, resumeText string) types.ResumeStructure {
	return ParseStructure(resumeText)
}

// ParseStructure runs the full deterministic parse: normalize, header,
// sections, categorized skills.
func ParseStructure(rawText string) types.ResumeStructure {
	lines := parser.NormalizeLines(rawText)
	sections := parser.GroupSections(lines)

	return types.ResumeStructure{
		Header:            parser.ExtractHeader(lines),
		Sections:          sections,
		CategorizedSkills: parser.RenderSkills(parser.CategorizeSkills(sections[types.SectionSkills])),
	}
}
