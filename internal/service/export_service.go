package service

import (
	"context"
	"fmt"
	"io"
	"iter"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"khata/internal/csvexport"
	"khata/internal/domain"
	"khata/internal/ledger"
	"khata/internal/logger"
	"khata/internal/port"
	"khata/internal/report"
	"khata/internal/xlsxexport"
)

const csvFlushEvery = 200

// ExportOptions configures export archiving.
type ExportOptions struct {
	Bucket        string
	KeyPrefix     string
	PresignExpiry int64
	Calendar      ledger.BusinessCalendar
}

// ExportService renders ledger data into downloadable files.
type ExportService interface {
	// StreamInvoiceRows returns a lazy, single-use sequence of export rows,
	// newest first. Abandoning the sequence releases the underlying cursor.
	StreamInvoiceRows(ctx context.Context, actor domain.Actor, input RangeInput) (iter.Seq2[domain.InvoiceRow, error], error)
	// WriteInvoicesCSV streams the invoice export to w and returns the number
	// of rows written.
	WriteInvoicesCSV(ctx context.Context, actor domain.Actor, input RangeInput, w io.Writer) (int, error)
	// ArchiveInvoicesCSV uploads the invoice export to object storage and
	// emails the acting user a download link.
	ArchiveInvoicesCSV(ctx context.Context, actor domain.Actor, input RangeInput) (*domain.ExportArchive, error)
	WriteGSTR1XLSX(ctx context.Context, actor domain.Actor, input RangeInput, w io.Writer) error
}

type exportService struct {
	invoiceRepo port.InvoiceRepository
	reports     ReportService
	storage     port.ObjectStorage
	email       port.EmailSender
	opts        ExportOptions
	now         func() time.Time
	log         zerolog.Logger
}

// NewExportService creates a new ExportService. storage may be nil, in which
// case archiving is disabled.
func NewExportService(
	invoiceRepo port.InvoiceRepository,
	reports ReportService,
	storage port.ObjectStorage,
	email port.EmailSender,
	opts ExportOptions,
) ExportService {
	if opts.PresignExpiry <= 0 {
		opts.PresignExpiry = 3600
	}
	return &exportService{
		invoiceRepo: invoiceRepo,
		reports:     reports,
		storage:     storage,
		email:       email,
		opts:        opts,
		now:         time.Now,
		log:         logger.WithComponent("service.export"),
	}
}

func (s *exportService) StreamInvoiceRows(ctx context.Context, actor domain.Actor, input RangeInput) (iter.Seq2[domain.InvoiceRow, error], error) {
	from, err := s.opts.Calendar.StartOfDay(input.From)
	if err != nil {
		return nil, domain.NewValidationError("from", err.Error())
	}
	to, err := s.opts.Calendar.EndOfDay(input.To)
	if err != nil {
		return nil, domain.NewValidationError("to", err.Error())
	}
	filter := domain.LedgerFilter{From: from, To: to, Query: input.Query}
	return report.InvoiceRows(s.invoiceRepo.Stream(ctx, actor.TenantID, filter)), nil
}

func (s *exportService) WriteInvoicesCSV(ctx context.Context, actor domain.Actor, input RangeInput, w io.Writer) (int, error) {
	rows, err := s.StreamInvoiceRows(ctx, actor, input)
	if err != nil {
		return 0, err
	}
	cw := csvexport.NewWriter(w, s.opts.Calendar.Location())
	if err := cw.WriteHeader(); err != nil {
		return 0, err
	}
	n, err := cw.WriteRows(rows, csvFlushEvery)
	if err != nil {
		s.log.Error().Err(err).
			Str("tenant_id", actor.TenantID.String()).
			Int("rows_written", n).
			Msg("invoice export aborted")
		return n, err
	}
	s.log.Debug().Str("tenant_id", actor.TenantID.String()).Int("rows", n).Msg("invoice export written")
	return n, nil
}

func (s *exportService) ArchiveInvoicesCSV(ctx context.Context, actor domain.Actor, input RangeInput) (*domain.ExportArchive, error) {
	if s.storage == nil || s.opts.Bucket == "" {
		return nil, domain.ErrExportStorageDisabled
	}
	rows, err := s.StreamInvoiceRows(ctx, actor, input)
	if err != nil {
		return nil, err
	}

	generated := s.now().UTC()
	day := s.opts.Calendar.Day(generated)
	key := path.Join(s.opts.KeyPrefix, actor.TenantID.String(),
		csvexport.BuildFilename("invoices_"+uuid.NewString()[:8], day, "csv"))
	filename := csvexport.BuildFilename("invoices", day, "csv")

	pr, pw := io.Pipe()
	written := make(chan int, 1)
	go func() {
		var n int
		var werr error
		defer func() {
			written <- n
			pw.CloseWithError(werr)
		}()
		if _, werr = pw.Write(csvexport.BOM); werr != nil {
			return
		}
		cw := csvexport.NewWriter(pw, s.opts.Calendar.Location())
		if werr = cw.WriteHeader(); werr != nil {
			return
		}
		n, werr = cw.WriteRows(rows, csvFlushEvery)
	}()

	_, err = s.storage.Put(ctx, port.ArchiveObject{
		Bucket:      s.opts.Bucket,
		Key:         key,
		Body:        pr,
		ContentType: "text/csv; charset=utf-8",
		Filename:    filename,
		Metadata: map[string]string{
			"tenant-id": actor.TenantID.String(),
			"from":      input.From,
			"to":        input.To,
		},
	})
	pr.CloseWithError(err)
	n := <-written
	if err != nil {
		return nil, fmt.Errorf("archiving invoice export: %w", err)
	}

	expiry := time.Duration(s.opts.PresignExpiry) * time.Second
	url, err := s.storage.PresignDownload(ctx, s.opts.Bucket, key, filename, expiry)
	if err != nil {
		return nil, err
	}

	archive := &domain.ExportArchive{Key: key, DownloadURL: url, Rows: n, GeneratedAt: generated}
	if actor.Email != "" && s.email != nil {
		err := s.email.SendExportReady(ctx, port.ExportNotice{
			ToEmail:     actor.Email,
			ToName:      actor.DisplayName,
			ReportName:  "invoice",
			DownloadURL: url,
			Rows:        n,
		})
		if err != nil {
			s.log.Warn().Err(err).Str("tenant_id", actor.TenantID.String()).Msg("export notification failed")
		} else {
			archive.NotifiedUser = true
		}
	}

	s.log.Info().
		Str("tenant_id", actor.TenantID.String()).
		Str("key", key).
		Int("rows", n).
		Msg("invoice export archived")
	return archive, nil
}

func (s *exportService) WriteGSTR1XLSX(ctx context.Context, actor domain.Actor, input RangeInput, w io.Writer) error {
	summary, err := s.reports.GSTR1(ctx, actor, input)
	if err != nil {
		return err
	}
	return xlsxexport.WriteGSTR1(w, summary)
}
