package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"jewelscan/internal/config"
	"jewelscan/internal/csvexport"
	"jewelscan/internal/domain"
	"jewelscan/internal/ingest"
	"jewelscan/internal/port"
	"jewelscan/internal/scanner"
	"jewelscan/internal/validator"
)

// ImportInput is the DTO for spreadsheet imports.
type ImportInput struct {
	Filename string
	Size     int64
	Body     io.Reader
}

// ImportResult is the parsed content of an imported spreadsheet.
type ImportResult struct {
	Filename        string               `json:"filename"`
	ArchiveLocation string               `json:"archiveLocation,omitempty"`
	Items           []domain.ParsedItem  `json:"items"`
	Summary         domain.StatusSummary `json:"summary"`
}

// RevalidateResult is a revalidated item together with its per-field review state.
type RevalidateResult struct {
	Item          domain.ParsedItem                 `json:"item"`
	FieldStatuses map[string]*validator.FieldStatus `json:"fieldStatuses"`
}

// ConfirmInput is the DTO for forwarding reviewed items to the ledger.
type ConfirmInput struct {
	ItemType domain.ItemType     `json:"itemType" binding:"required"`
	Items    []domain.ParsedItem `json:"items" binding:"required"`
	Operator string              `json:"-"`
}

// ScanService defines the scanner-string parsing and ledger contract.
type ScanService interface {
	Parse(raw string) domain.ParsedItem
	ParseBatch(ctx context.Context, raws []string) ([]domain.ParsedItem, error)
	Import(ctx context.Context, input ImportInput) (*ImportResult, error)
	Revalidate(edit domain.ItemEdit) RevalidateResult
	Confirm(ctx context.Context, input ConfirmInput) ([]domain.JewelleryItem, error)
	GetItem(ctx context.Context, code string) (*domain.JewelleryItem, error)
	ListItems(ctx context.Context, filter domain.ItemFilter, offset, limit int) ([]domain.JewelleryItem, int, error)
}

type scanService struct {
	itemRepo port.ItemRepository
	storage  port.ObjectStorage
	scanCfg  config.ScannerConfig
	storeCfg config.StorageConfig
	log      *zap.Logger
	now      func() time.Time
}

// NewScanService creates a new ScanService implementation.
func NewScanService(
	itemRepo port.ItemRepository,
	storage port.ObjectStorage,
	scanCfg config.ScannerConfig,
	storeCfg config.StorageConfig,
	log *zap.Logger,
) ScanService {
	return &scanService{
		itemRepo: itemRepo,
		storage:  storage,
		scanCfg:  scanCfg,
		storeCfg: storeCfg,
		log:      log.Named("scan"),
		now:      time.Now,
	}
}

func (s *scanService) Parse(raw string) domain.ParsedItem {
	return scanner.Parse(raw)
}

func (s *scanService) ParseBatch(ctx context.Context, raws []string) ([]domain.ParsedItem, error) {
	if len(raws) == 0 {
		return nil, domain.ErrEmptyBatch
	}
	if len(raws) > s.scanCfg.MaxBatchSize {
		return nil, fmt.Errorf("%w: %d > %d", domain.ErrBatchTooLarge, len(raws), s.scanCfg.MaxBatchSize)
	}

	items, err := scanner.ParseAllConcurrent(ctx, raws, s.scanCfg.Workers)
	if err != nil {
		return nil, fmt.Errorf("parse batch: %w", err)
	}

	sum := domain.Summarize(items)
	s.log.Debug("batch parsed",
		zap.Int("total", sum.Total),
		zap.Int("valid", sum.Valid),
		zap.Int("mistake", sum.Mistake),
		zap.Int("invalid", sum.Invalid),
	)
	return items, nil
}

func (s *scanService) Import(ctx context.Context, input ImportInput) (*ImportResult, error) {
	fileType, err := ingest.FileTypeFor(input.Filename)
	if err != nil {
		return nil, err
	}

	maxBytes := s.scanCfg.MaxUploadBytes()
	if input.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}
	data, err := io.ReadAll(io.LimitReader(input.Body, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	result := &ImportResult{Filename: input.Filename}
	if s.scanCfg.ArchiveUpload {
		result.ArchiveLocation = s.archive(ctx, input.Filename, fileType, data)
	}

	raws, err := ingest.Extract(input.Filename, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", input.Filename, err)
	}

	items, err := s.ParseBatch(ctx, raws)
	if err != nil {
		return nil, err
	}
	result.Items = items
	result.Summary = domain.Summarize(items)

	s.log.Info("spreadsheet imported",
		zap.String("filename", input.Filename),
		zap.Int("rows", len(items)),
		zap.Int("valid", result.Summary.Valid),
	)
	return result, nil
}

// archive uploads the raw spreadsheet and returns its location. Failures are logged
// and yield an empty location; they never fail the import.
func (s *scanService) archive(ctx context.Context, filename string, fileType domain.FileType, data []byte) string {
	key := s.archiveKey(filename)
	out, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.storeCfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(data),
		ContentType: domain.AllowedFileTypes[fileType],
		Size:        int64(len(data)),
	})
	if err != nil {
		s.log.Warn("spreadsheet archive failed", zap.String("key", key), zap.Error(err))
		return ""
	}
	return out.Location
}

// archiveKey places uploads under {prefix}/{YYYY}/{MM}/{DD}/{uuid}_{name}.{ext}.
func (s *scanService) archiveKey(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	base := csvexport.SanitizeFilename(strings.TrimSuffix(path.Base(filename), path.Ext(filename)))
	name := uuid.New().String()
	if base != "" {
		name += "_" + base
	}
	key := path.Join(s.now().UTC().Format("2006/01/02"), name+ext)
	if s.storeCfg.Prefix != "" {
		key = path.Join(s.storeCfg.Prefix, key)
	}
	return key
}

func (s *scanService) Revalidate(edit domain.ItemEdit) RevalidateResult {
	return RevalidateResult{
		Item:          validator.Revalidate(edit),
		FieldStatuses: validator.ComputeFieldStatuses(&edit),
	}
}

func (s *scanService) Confirm(ctx context.Context, input ConfirmInput) ([]domain.JewelleryItem, error) {
	if !domain.ValidItemTypes[input.ItemType] {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidItemType, input.ItemType)
	}
	if len(input.Items) == 0 {
		return nil, domain.ErrEmptyBatch
	}
	if len(input.Items) > s.scanCfg.MaxBatchSize {
		return nil, fmt.Errorf("%w: %d > %d", domain.ErrBatchTooLarge, len(input.Items), s.scanCfg.MaxBatchSize)
	}

	seen := make(map[string]int, len(input.Items))
	items := make([]domain.JewelleryItem, 0, len(input.Items))
	for i := range input.Items {
		parsed := &input.Items[i]
		if err := validator.CheckConfirmable(parsed); err != nil {
			return nil, fmt.Errorf("item %d (%s): %w", i, parsed.Code, err)
		}
		if j, dup := seen[parsed.Code]; dup {
			return nil, fmt.Errorf("items %d and %d (%s): %w", j, i, parsed.Code, domain.ErrDuplicateItemCode)
		}
		seen[parsed.Code] = i

		items = append(items, domain.JewelleryItem{
			Code:        parsed.Code,
			GrossWeight: *parsed.GrossWeight,
			StoneWeight: *parsed.StoneWeight,
			NetWeight:   *parsed.NetWeight,
			Pieces:      *parsed.Pieces,
			ItemType:    input.ItemType,
			IsSold:      input.ItemType == domain.ItemTypeSale,
			CreatedBy:   input.Operator,
		})
	}

	if err := s.itemRepo.CreateBatch(ctx, items); err != nil {
		return nil, fmt.Errorf("confirm items: %w", err)
	}

	s.log.Info("items confirmed",
		zap.String("item_type", string(input.ItemType)),
		zap.Int("count", len(items)),
		zap.String("operator", input.Operator),
	)
	return items, nil
}

func (s *scanService) GetItem(ctx context.Context, code string) (*domain.JewelleryItem, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.ErrNotFound
	}
	return s.itemRepo.GetByCode(ctx, code)
}

func (s *scanService) ListItems(ctx context.Context, filter domain.ItemFilter, offset, limit int) ([]domain.JewelleryItem, int, error) {
	if filter.ItemType != "" && !domain.ValidItemTypes[filter.ItemType] {
		return nil, 0, fmt.Errorf("%w: %q", domain.ErrInvalidItemType, filter.ItemType)
	}
	return s.itemRepo.List(ctx, filter, offset, limit)
}
