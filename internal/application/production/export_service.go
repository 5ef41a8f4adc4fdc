package production

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/atelier/backend/internal/domain/production"
	"github.com/atelier/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// XLSXContentType is the media type of exported workbooks
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ErrStorageUnavailable is returned by Publish when no object storage is configured
var ErrStorageUnavailable = shared.NewDomainError("STORAGE_UNAVAILABLE", "Report storage is not configured")

// ReportWriter renders orders into a spreadsheet
type ReportWriter interface {
	OrdersWorkbook(orders []production.ProductionOrder, generatedAt time.Time) ([]byte, error)
}

// ReportStorage stores published reports
type ReportStorage interface {
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
}

// ExportFile is a rendered report
type ExportFile struct {
	FileName    string
	ContentType string
	Data        []byte
}

// PublishedReport points at an uploaded report
type PublishedReport struct {
	StorageKey  string    `json:"storage_key"`
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
	Orders      int       `json:"orders"`
}

// ExportService renders order reports and publishes them to object storage
type ExportService struct {
	orders  *OrderService
	writer  ReportWriter
	storage ReportStorage
	prefix  string
	logger  *zap.Logger
	now     func() time.Time
}

// NewExportService creates the service. storage may be nil, in which case
// Publish fails with ErrStorageUnavailable.
func NewExportService(orders *OrderService, writer ReportWriter, storage ReportStorage, prefix string, logger *zap.Logger) *ExportService {
	return &ExportService{
		orders:  orders,
		writer:  writer,
		storage: storage,
		prefix:  prefix,
		logger:  logger,
		now:     time.Now,
	}
}

// Export renders every order matching the filter
func (s *ExportService) Export(ctx context.Context, filter OrderListFilter) (*ExportFile, int, error) {
	orders, err := s.orders.ListAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	now := s.now()
	data, err := s.writer.OrdersWorkbook(orders, now)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to render workbook: %w", err)
	}
	return &ExportFile{
		FileName:    fmt.Sprintf("orders-%s.xlsx", now.Format("20060102-150405")),
		ContentType: XLSXContentType,
		Data:        data,
	}, len(orders), nil
}

// Publish renders the report, uploads it and returns a presigned link
func (s *ExportService) Publish(ctx context.Context, filter OrderListFilter) (*PublishedReport, error) {
	if s.storage == nil {
		return nil, ErrStorageUnavailable
	}
	file, count, err := s.Export(ctx, filter)
	if err != nil {
		return nil, err
	}

	key := path.Join(s.prefix, file.FileName)
	if err := s.storage.Upload(ctx, key, file.Data, file.ContentType); err != nil {
		s.logger.Error("failed to upload report", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("failed to upload report: %w", err)
	}
	url, expiresAt, err := s.storage.GenerateDownloadURL(ctx, key, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to sign report url: %w", err)
	}

	s.logger.Info("order report published",
		zap.String("key", key),
		zap.Int("orders", count),
		zap.Int("bytes", len(file.Data)))

	return &PublishedReport{
		StorageKey:  key,
		DownloadURL: url,
		ExpiresAt:   expiresAt,
		Orders:      count,
	}, nil
}
