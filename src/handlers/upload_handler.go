package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"ledgerlens-server/src/ingest"
	"ledgerlens-server/src/logger"
	"ledgerlens-server/src/models"
	"ledgerlens-server/src/util"
)

const maxUploadMemory = 32 << 20

type Ingester interface {
	IngestFile(ctx context.Context, path string) (*ingest.Result, error)
}

type ChartRenderer interface {
	Render(dir string, txns []models.ParsedTransaction) ([]string, error)
}

// UploadStatement stores the uploaded spreadsheet, ingests it and renders
// the charts. Failures answer 200 with status "error" so the front end can
// show the message.
func UploadStatement(ingester Ingester, charts ChartRenderer, uploadDir, plotsDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			log.Warn().Err(err).Msg("invalid upload request")
			writeError(w, http.StatusBadRequest, "invalid upload request")
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			log.Warn().Err(err).Msg("upload without file field")
			writeError(w, http.StatusBadRequest, "file is required")
			return
		}
		defer file.Close()

		if !util.AllowedExtension(header.Filename) {
			log.Info().Str("file", header.Filename).Msg("rejected upload with unsupported extension")
			writeJSON(w, http.StatusOK, models.UploadResponse{Status: "error", Error: ingest.InvalidFormatMessage})
			return
		}

		path, err := saveUpload(uploadDir, header.Filename, file)
		if err != nil {
			log.Error().Err(err).Str("file", header.Filename).Msg("failed to save upload")
			writeJSON(w, http.StatusOK, models.UploadResponse{Status: "error", Error: "failed to save uploaded file"})
			return
		}

		result, err := ingester.IngestFile(r.Context(), path)
		if err != nil {
			var verr *ingest.ValidationError
			if errors.As(err, &verr) {
				log.Info().Str("file", header.Filename).Str("reason", verr.Msg).Msg("upload failed validation")
				writeJSON(w, http.StatusOK, models.UploadResponse{Status: "error", Error: verr.Msg})
				return
			}
			log.Error().Err(err).Str("file", header.Filename).Msg("failed to ingest upload")
			writeJSON(w, http.StatusOK, models.UploadResponse{Status: "error", Error: err.Error()})
			return
		}

		plots, err := charts.Render(plotsDir, result.Transactions)
		if err != nil {
			log.Warn().Err(err).Msg("failed to render charts")
		}

		rows := result.Rows
		inserted := result.Inserted
		log.Info().Str("file", header.Filename).Int("rows", rows).Int64("inserted", inserted).Msg("processed upload")
		writeJSON(w, http.StatusOK, models.UploadResponse{
			Status:    "success",
			Rows:      &rows,
			Inserted:  &inserted,
			Message:   "File processed successfully.",
			PlotFiles: plots,
		})
	}
}

// saveUpload copies the upload under dir with a unique prefix so repeated
// uploads of the same name never collide.
func saveUpload(dir, filename string, src io.Reader) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	ext := filepath.Ext(filename)
	name := util.SecureFilename(strings.TrimSuffix(filename, ext)) + strings.ToLower(ext)
	path := filepath.Join(dir, uuid.NewString()+"_"+name)
	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", err
	}
	return path, dst.Close()
}
