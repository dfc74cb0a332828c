// Package router wires HTTP routes to the transport-free handlers. All
// request parsing and status-code mapping lives here.
package router

import (
	"context"
	"errors"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"careerai/internal/api/handler"
)

type analyzeRequest struct {
	UserID     string `json:"userId"`
	Plan       string `json:"plan"`
	ResumeID   string `json:"resumeId"`
	ResumeText string `json:"resumeText"`
}

type matchRequest struct {
	UserID         string `json:"userId"`
	Plan           string `json:"plan"`
	ResumeID       string `json:"resumeId"`
	ResumeText     string `json:"resumeText"`
	JobTitle       string `json:"jobTitle"`
	JobDescription string `json:"jobDescription"`
}

type rewriteRequest struct {
	Text     string   `json:"text"`
	Keywords []string `json:"keywords"`
	Section  string   `json:"section"`
}

type structureRequest struct {
	ResumeText string `json:"resumeText"`
}

// RegisterRoutes mounts the API.
func RegisterRoutes(h *server.Hertz, resumes *handler.ResumeHandler, analyses *handler.AnalysisHandler) {
	api := h.Group("/api/v1")

	api.POST("/resume/upload", func(c context.Context, ctx *app.RequestContext) {
		fileHeader, err := ctx.FormFile("file")
		if err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "file is required"})
			return
		}
		userID := ctx.PostForm("userId")

		file, err := fileHeader.Open()
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "open upload failed"})
			return
		}
		defer file.Close()

		resp, err := resumes.HandleUpload(c, userID, fileHeader.Filename, file, fileHeader.Size)
		if err != nil {
			ctx.JSON(consts.StatusUnprocessableEntity, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, resp)
	})

	api.POST("/resume/structure", func(c context.Context, ctx *app.RequestContext) {
		var req structureRequest
		if err := ctx.BindAndValidate(&req); err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "invalid request body"})
			return
		}
		ctx.JSON(consts.StatusOK, resumes.HandleStructure(c, req.ResumeText))
	})

	api.POST("/resume/analyze", func(c context.Context, ctx *app.RequestContext) {
		var req analyzeRequest
		if err := ctx.BindAndValidate(&req); err != nil || req.ResumeText == "" {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "resumeText is required"})
			return
		}

		result, err := analyses.HandleAnalyze(c, req.UserID, req.Plan, req.ResumeID, req.ResumeText)
		if err != nil {
			if errors.Is(err, handler.ErrQuotaExceeded) {
				ctx.JSON(consts.StatusTooManyRequests, utils.H{"error": err.Error()})
				return
			}
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, result)
	})

	api.POST("/resume/match", func(c context.Context, ctx *app.RequestContext) {
		var req matchRequest
		if err := ctx.BindAndValidate(&req); err != nil || req.ResumeText == "" || req.JobDescription == "" {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "resumeText and jobDescription are required"})
			return
		}

		result, err := analyses.HandleMatch(c, req.UserID, req.Plan, req.ResumeID, req.ResumeText, req.JobTitle, req.JobDescription)
		if err != nil {
			if errors.Is(err, handler.ErrQuotaExceeded) {
				ctx.JSON(consts.StatusTooManyRequests, utils.H{"error": err.Error()})
				return
			}
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, result)
	})

	api.POST("/resume/rewrite", func(c context.Context, ctx *app.RequestContext) {
		var req rewriteRequest
		if err := ctx.BindAndValidate(&req); err != nil || req.Text == "" {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "text is required"})
			return
		}
		ctx.JSON(consts.StatusOK, utils.H{
			"rewrittenText": analyses.HandleRewrite(c, req.Text, req.Keywords, req.Section),
		})
	})

	api.GET("/resume/:id/reports", func(c context.Context, ctx *app.RequestContext) {
		limit, _ := strconv.Atoi(ctx.Query("limit"))

		reports, err := resumes.HandleReports(c, ctx.Param("id"), limit)
		if err != nil {
			if errors.Is(err, handler.ErrResumeNotFound) {
				ctx.JSON(consts.StatusNotFound, utils.H{"error": err.Error()})
				return
			}
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, utils.H{"reports": reports})
	})

	api.GET("/resume/:id/original", func(c context.Context, ctx *app.RequestContext) {
		data, filename, err := resumes.HandleOriginal(c, ctx.Param("id"))
		if err != nil {
			if errors.Is(err, handler.ErrResumeNotFound) {
				ctx.JSON(consts.StatusNotFound, utils.H{"error": err.Error()})
				return
			}
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.Response.Header.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		ctx.Data(consts.StatusOK, "application/octet-stream", data)
	})

	api.GET("/usage", func(c context.Context, ctx *app.RequestContext) {
		userID := ctx.Query("userId")
		if userID == "" {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "userId is required"})
			return
		}
		ctx.JSON(consts.StatusOK, analyses.HandleUsage(c, userID, ctx.Query("plan")))
	})

	api.GET("/health", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{"status": "ok"})
	})
}
