package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/JakeFAU/share-preview/internal/logging"
	"github.com/JakeFAU/share-preview/internal/metadata"
	"github.com/JakeFAU/share-preview/internal/metrics"
	"github.com/JakeFAU/share-preview/internal/upload"
)

const (
	sourceExternal = "external"
	sourceLocal    = "local"

	multipartMemory  = 32 << 20
	iconCacheControl = "public, max-age=31536000, immutable"
)

func (s *Server) externalMetadata(w http.ResponseWriter, r *http.Request) {
	record, err := s.meta.External(r.Context(), r.URL.Query().Get("url"))
	metrics.ObserveExtraction(sourceExternal, extractionResult(err))
	if err != nil {
		status, msg := externalErrorResponse(err)
		if status >= http.StatusInternalServerError {
			logging.FromContext(r.Context(), s.logger).Error("external metadata failed", zap.Error(err))
		}
		writeError(w, status, msg)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) currentMetadata(w http.ResponseWriter, r *http.Request) {
	record, err := s.meta.Local(r.Context())
	metrics.ObserveExtraction(sourceLocal, extractionResult(err))
	if err != nil {
		if errors.Is(err, metadata.ErrConfigNotFound) {
			writeError(w, http.StatusNotFound, "layout.tsx not found in src/app or app directory")
			return
		}
		logging.FromContext(r.Context(), s.logger).Error("read metadata failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to read metadata")
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) uploadImage(w http.ResponseWriter, r *http.Request) {
	if !s.cfg.Upload.Enabled || s.uploader == nil {
		writeError(w, http.StatusForbidden, "This API is only available in development mode")
		return
	}
	logger := logging.FromContext(r.Context(), s.logger)
	if s.cfg.Upload.MaxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Upload.MaxBytes+multipartMemory/32)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close() //nolint:errcheck // multipart temp file

	data, err := io.ReadAll(file)
	if err != nil {
		logger.Error("read upload failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to upload image")
		return
	}
	res, err := s.uploader.Save(r.Context(), upload.ParseKind(r.FormValue("type")), header.Filename, data)
	switch {
	case errors.Is(err, upload.ErrNoFile):
		writeError(w, http.StatusBadRequest, "No file provided")
	case errors.Is(err, upload.ErrTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "File too large")
	case err != nil:
		logger.Error("upload failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to upload image")
	default:
		writeJSON(w, http.StatusOK, res)
	}
}

func (s *Server) favicon(w http.ResponseWriter, r *http.Request) {
	icon, ok, err := s.meta.SiteIcon(r.Context())
	if err != nil {
		logging.FromContext(r.Context(), s.logger).Warn("serve favicon failed", zap.Error(err))
	}
	if err != nil || !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", icon.ContentType)
	w.Header().Set("Cache-Control", iconCacheControl)
	w.Header().Set("Content-Length", strconv.Itoa(len(icon.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(icon.Data); err != nil {
		logging.FromContext(r.Context(), s.logger).Warn("write favicon failed", zap.Error(err))
	}
}

// externalErrorResponse maps assembler errors to the status and message returned to clients.
func externalErrorResponse(err error) (int, string) {
	var statusErr *metadata.HTTPStatusError
	switch {
	case errors.Is(err, metadata.ErrMissingTarget):
		return http.StatusBadRequest, "URL parameter is required"
	case errors.Is(err, metadata.ErrInvalidTarget):
		return http.StatusBadRequest, "Invalid URL format. Please include http:// or https://"
	case errors.Is(err, metadata.ErrTargetTimeout):
		return http.StatusRequestTimeout, "Request timeout - URL took too long to respond"
	case errors.Is(err, metadata.ErrTargetUnreachable):
		return http.StatusServiceUnavailable,
			"Failed to connect to the URL. Please check if the URL is correct and accessible."
	case errors.As(err, &statusErr):
		status := statusErr.Status
		if !allowsBody(status) {
			status = http.StatusBadGateway
		}
		return status, fmt.Sprintf("Failed to fetch URL: %s", statusErr.Reason)
	default:
		return http.StatusInternalServerError, "Failed to fetch external metadata"
	}
}

// allowsBody reports whether a response with status can carry the JSON error body.
// 1xx, 204 and 304 cannot, so those upstream statuses are answered with 502.
func allowsBody(status int) bool {
	return status >= http.StatusOK && status != http.StatusNoContent && status != http.StatusNotModified
}

func extractionResult(err error) string {
	var statusErr *metadata.HTTPStatusError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, metadata.ErrMissingTarget), errors.Is(err, metadata.ErrInvalidTarget):
		return "invalid_target"
	case errors.Is(err, metadata.ErrTargetTimeout):
		return "timeout"
	case errors.Is(err, metadata.ErrTargetUnreachable):
		return "unreachable"
	case errors.As(err, &statusErr):
		return "http_error"
	case errors.Is(err, metadata.ErrConfigNotFound):
		return "config_not_found"
	default:
		return "error"
	}
}
