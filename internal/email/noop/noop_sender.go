package noop

import (
	"context"

	"khata/internal/logger"
	"khata/internal/port"
)

type noopSender struct{}

// NewNoopSender creates an EmailSender that only logs the notice.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendExportReady(_ context.Context, notice port.ExportNotice) error {
	log := logger.WithComponent("email.noop")
	log.Info().
		Str("to", notice.ToEmail).
		Str("report", notice.ReportName).
		Int("rows", notice.Rows).
		Str("download_url", notice.DownloadURL).
		Msg("export ready email not sent")
	return nil
}
