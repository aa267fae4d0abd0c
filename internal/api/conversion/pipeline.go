package conversion

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/iamgjek/Shopee2Multi-sub000/config"
	"github.com/iamgjek/Shopee2Multi-sub000/database"
	"github.com/iamgjek/Shopee2Multi-sub000/internal/converter"
	"github.com/iamgjek/Shopee2Multi-sub000/internal/domain/conversion"
	"github.com/iamgjek/Shopee2Multi-sub000/internal/domain/usage"
	"github.com/iamgjek/Shopee2Multi-sub000/internal/exporter"
)

// runPipeline executes fetch → convert → export for one task and returns the
// converted product plus the spreadsheet path.
func runPipeline(ctx context.Context, task *conversion.Task, platform converter.Platform) (*conversion.ConvertedProduct, string, error) {
	raw, err := fetcher.Fetch(ctx, task.SourceURL)
	if err != nil {
		return nil, "", err
	}

	converted := converter.Convert(*raw, platform)

	if err := os.MkdirAll(config.UPLOAD_DIR, 0o755); err != nil {
		return nil, "", err
	}
	resultPath := filepath.Join(config.UPLOAD_DIR, task.ID+".xlsx")

	if err := exporter.WriteFile(resultPath, []conversion.ConvertedProduct{converted}, platform); err != nil {
		return nil, "", err
	}

	return &converted, resultPath, nil
}

func markCompleted(task *conversion.Task, resultPath string) {
	now := time.Now()
	database.DB.Model(task).Updates(map[string]interface{}{
		"status":       conversion.StatusCompleted,
		"result_path":  resultPath,
		"completed_at": now,
	})
}

func markFailed(task *conversion.Task, cause error) {
	msg := cause.Error()
	if msg == "" {
		msg = "conversion failed"
	}
	now := time.Now()
	database.DB.Model(task).Updates(map[string]interface{}{
		"status":        conversion.StatusFailed,
		"error_message": msg,
		"completed_at":  now,
	})
}

// writeUsage records the metering row for one attempt. Failures here are
// logged, not surfaced: the conversion outcome already happened.
func writeUsage(userID uint, items int, platform string, status string, latencyMs int64, errCode *string) {
	row := usage.Log{
		UserID:    userID,
		ItemCount: items,
		Platform:  platform,
		Status:    status,
		LatencyMs: latencyMs,
		ErrorCode: errCode,
	}
	if err := database.DB.Create(&row).Error; err != nil {
		log.Error().Err(err).Uint("user_id", userID).Msg("failed to write usage log")
	}
}

func errorCode(err error) *string {
	var (
		fetchErr *conversion.FetchError
		parseErr *conversion.ParseError
	)
	code := "internal_error"
	switch {
	case errors.As(err, &fetchErr):
		code = "fetch_error"
	case errors.As(err, &parseErr):
		code = "parse_error"
	}
	return &code
}

// statusForPipelineError maps stage failures onto HTTP statuses: source-page
// trouble is the upstream's fault, everything else is ours.
func statusForPipelineError(err error) int {
	var (
		fetchErr *conversion.FetchError
		parseErr *conversion.ParseError
	)
	switch {
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway
	case errors.As(err, &parseErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
