package port

import "context"

// ExportNotice tells a user where to fetch a finished export.
type ExportNotice struct {
	ToEmail     string
	ToName      string
	ReportName  string
	DownloadURL string
	Rows        int
}

// EmailSender defines the contract for sending emails.
type EmailSender interface {
	SendExportReady(ctx context.Context, notice ExportNotice) error
}
