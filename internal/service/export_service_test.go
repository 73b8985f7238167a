package service_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"khata/internal/domain"
	"khata/internal/port"
	"khata/internal/service"
	"khata/mocks"
)

type exportFixture struct {
	invoices *mocks.MockInvoiceRepo
	reports  *mocks.MockReportService
	storage  *mocks.MockObjectStorage
	email    *mocks.MockEmailSender
}

func newExportFixture() *exportFixture {
	return &exportFixture{
		invoices: new(mocks.MockInvoiceRepo),
		reports:  new(mocks.MockReportService),
		storage:  new(mocks.MockObjectStorage),
		email:    new(mocks.MockEmailSender),
	}
}

func (f *exportFixture) service(bucket string) service.ExportService {
	return service.NewExportService(f.invoices, f.reports, f.storage, f.email, service.ExportOptions{
		Bucket:        bucket,
		KeyPrefix:     "exports",
		PresignExpiry: 900,
		Calendar:      calendar,
	})
}

func exportInvoices(actor domain.Actor) []domain.Invoice {
	first := domain.Invoice{
		LedgerDocument: ledgerDoc(actor.TenantID, day("2024-04-02"), []domain.LineItem{{Name: "A", Quantity: 2, UnitPrice: 500, GSTPercent: 18}}, 0),
		DocumentNumber: "24-25/MAIN/000002",
	}
	second := domain.Invoice{
		LedgerDocument: ledgerDoc(actor.TenantID, day("2024-04-01"), []domain.LineItem{{Name: "B", Quantity: 1, UnitPrice: 100, GSTPercent: 5}}, 0),
		DocumentNumber: "24-25/MAIN/000001",
	}
	second.Counterparty.Name = domain.WalkInCustomerName
	return []domain.Invoice{first, second}
}

func TestExportService_WriteInvoicesCSV(t *testing.T) {
	f := newExportFixture()
	actor := testActor()

	f.invoices.On("Stream", mock.Anything, actor.TenantID, mock.MatchedBy(func(fl domain.LedgerFilter) bool {
		return fl.From != nil && fl.To == nil && fl.Query == "acme"
	})).Return(mocks.Seq(exportInvoices(actor), nil))

	var buf bytes.Buffer
	n, err := f.service("").WriteInvoicesCSV(context.Background(), actor, service.RangeInput{From: "2024-04-01", Query: "acme"}, &buf)

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Invoice No,Date,Customer,Sub Total,Tax,Total", lines[0])
	assert.Equal(t, "24-25/MAIN/000002,2024-04-02,Acme,1000.00,180.00,1180.00", lines[1])
	assert.Equal(t, "24-25/MAIN/000001,2024-04-01,Walk-in,100.00,5.00,105.00", lines[2])
}

func TestExportService_WriteInvoicesCSV_InvalidRange(t *testing.T) {
	f := newExportFixture()

	_, err := f.service("").WriteInvoicesCSV(context.Background(), testActor(), service.RangeInput{To: "yesterday"}, io.Discard)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestExportService_WriteInvoicesCSV_StreamError(t *testing.T) {
	f := newExportFixture()
	actor := testActor()
	boom := errors.New("connection lost")

	f.invoices.On("Stream", mock.Anything, actor.TenantID, mock.Anything).
		Return(mocks.Seq(exportInvoices(actor)[:1], boom))

	var buf bytes.Buffer
	n, err := f.service("").WriteInvoicesCSV(context.Background(), actor, service.RangeInput{}, &buf)

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, n)
	assert.Contains(t, buf.String(), "24-25/MAIN/000002")
}

func TestExportService_ArchiveInvoicesCSV(t *testing.T) {
	f := newExportFixture()
	actor := testActor()
	var uploaded []byte
	var uploadedKey, uploadedName, uploadedTenant string

	f.invoices.On("Stream", mock.Anything, actor.TenantID, mock.Anything).Return(mocks.Seq(exportInvoices(actor), nil))
	f.storage.On("Put", mock.Anything, mock.AnythingOfType("port.ArchiveObject")).
		Run(func(args mock.Arguments) {
			in := args.Get(1).(port.ArchiveObject)
			uploadedKey = in.Key
			uploadedName = in.Filename
			uploadedTenant = in.Metadata["tenant-id"]
			uploaded, _ = io.ReadAll(in.Body)
		}).
		Return(&port.StoredObject{Location: "s3://exports-bucket/x"}, nil)
	f.storage.On("PresignDownload", mock.Anything, "exports-bucket", mock.Anything, mock.Anything, 900*time.Second).
		Return("https://signed.example/x", nil)
	f.email.On("SendExportReady", mock.Anything, mock.MatchedBy(func(n port.ExportNotice) bool {
		return n.ToEmail == actor.Email && n.Rows == 2 && n.DownloadURL == "https://signed.example/x"
	})).Return(nil)

	archive, err := f.service("exports-bucket").ArchiveInvoicesCSV(context.Background(), actor, service.RangeInput{})

	require.NoError(t, err)
	assert.Equal(t, 2, archive.Rows)
	assert.True(t, archive.NotifiedUser)
	assert.Equal(t, "https://signed.example/x", archive.DownloadURL)
	assert.Equal(t, uploadedKey, archive.Key)
	assert.True(t, strings.HasPrefix(archive.Key, "exports/"+actor.TenantID.String()+"/invoices_"))
	assert.True(t, strings.HasSuffix(archive.Key, ".csv"))
	assert.True(t, strings.HasPrefix(uploadedName, "invoices_"))
	assert.Equal(t, actor.TenantID.String(), uploadedTenant)
	require.True(t, bytes.HasPrefix(uploaded, []byte{0xEF, 0xBB, 0xBF}))
	assert.Contains(t, string(uploaded), "Invoice No,Date,Customer")
	assert.Contains(t, string(uploaded), "24-25/MAIN/000001")
	f.storage.AssertExpectations(t)
	f.email.AssertExpectations(t)
}

func TestExportService_ArchiveInvoicesCSV_NotificationFailureIsNotFatal(t *testing.T) {
	f := newExportFixture()
	actor := testActor()

	f.invoices.On("Stream", mock.Anything, actor.TenantID, mock.Anything).Return(mocks.Seq(exportInvoices(actor), nil))
	f.storage.On("Put", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			_, _ = io.Copy(io.Discard, args.Get(1).(port.ArchiveObject).Body)
		}).
		Return(&port.StoredObject{}, nil)
	f.storage.On("PresignDownload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("https://signed.example/y", nil)
	f.email.On("SendExportReady", mock.Anything, mock.Anything).Return(errors.New("ses throttled"))

	archive, err := f.service("exports-bucket").ArchiveInvoicesCSV(context.Background(), actor, service.RangeInput{})

	require.NoError(t, err)
	assert.False(t, archive.NotifiedUser)
}

func TestExportService_ArchiveInvoicesCSV_UploadFailure(t *testing.T) {
	f := newExportFixture()
	actor := testActor()

	f.invoices.On("Stream", mock.Anything, actor.TenantID, mock.Anything).Return(mocks.Seq(exportInvoices(actor), nil))
	f.storage.On("Put", mock.Anything, mock.Anything).Return(nil, errors.New("access denied"))

	_, err := f.service("exports-bucket").ArchiveInvoicesCSV(context.Background(), actor, service.RangeInput{})

	assert.Error(t, err)
	f.storage.AssertNotCalled(t, "PresignDownload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.email.AssertNotCalled(t, "SendExportReady", mock.Anything, mock.Anything)
}

func TestExportService_ArchiveInvoicesCSV_StorageDisabled(t *testing.T) {
	f := newExportFixture()

	_, err := f.service("").ArchiveInvoicesCSV(context.Background(), testActor(), service.RangeInput{})

	assert.ErrorIs(t, err, domain.ErrExportStorageDisabled)
	f.invoices.AssertNotCalled(t, "Stream", mock.Anything, mock.Anything, mock.Anything)
}

func TestExportService_WriteGSTR1XLSX(t *testing.T) {
	f := newExportFixture()
	actor := testActor()
	input := service.RangeInput{From: "2024-04-01", To: "2024-04-30"}

	f.reports.On("GSTR1", mock.Anything, actor, input).Return(&domain.GSTR1Summary{}, nil)

	var buf bytes.Buffer
	err := f.service("").WriteGSTR1XLSX(context.Background(), actor, input, &buf)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("PK")))
}
