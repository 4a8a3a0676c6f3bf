package service

import (
	"context"
	"strconv"
	"time"

	"github.com/smakkapati-repo/amzon-bedrock-agentcore-bank-analytics/model"
	"github.com/smakkapati-repo/amzon-bedrock-agentcore-bank-analytics/pkg/logger"
)

// ObjectStore is the storage side of document intake.
type ObjectStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string, metadata map[string]string) error
}

// Extractor is the metadata side of document intake.
type Extractor interface {
	Extract(ctx context.Context, content []byte, filename string) (Metadata, error)
}

// DocumentService ingests uploaded filing PDFs: extract metadata, then
// persist the original bytes. Both steps tolerate failure; there is no
// rollback, partial success is a valid final state.
type DocumentService struct {
	extractor Extractor
	storage   ObjectStore
}

func NewDocumentService(extractor Extractor, storage ObjectStore) *DocumentService {
	return &DocumentService{
		extractor: extractor,
		storage:   storage,
	}
}

// Ingest processes one uploaded document. Extraction failure falls back
// to the declared bank name and defaults; storage failure leaves the
// record without a storage key. Neither fails the ingest.
func (s *DocumentService) Ingest(ctx context.Context, content []byte, filename, declaredBank string) model.Document {
	metadata := Metadata{
		BankName: declaredBank,
		FormType: "10-K",
		Year:     time.Now().Year(),
	}
	if metadata.BankName == "" {
		metadata.BankName = "Unknown Bank"
	}

	if extracted, err := s.extractor.Extract(ctx, content, filename); err != nil {
		logger.Warn(ctx, "metadata extraction failed, using defaults",
			"filename", filename,
			"error", err,
		)
	} else {
		metadata = extracted
		logger.Info(ctx, "extracted document metadata",
			"bank_name", metadata.BankName,
			"form_type", metadata.FormType,
			"year", metadata.Year,
		)
	}

	key := ObjectKey(metadata.BankName, metadata.Year, metadata.FormType, filename)
	if s.storage == nil {
		logger.Warn(ctx, "object storage not configured, skipping upload", "key", key)
		key = ""
	} else if err := s.storage.Upload(ctx, key, content, "application/pdf", map[string]string{
		"bank-name":         metadata.BankName,
		"form-type":         metadata.FormType,
		"year":              strconv.Itoa(metadata.Year),
		"original-filename": filename,
	}); err != nil {
		logger.Error(ctx, "storage upload failed", "key", key, "error", err)
		key = ""
	} else {
		logger.Info(ctx, "uploaded document", "key", key)
	}

	return model.Document{
		BankName: metadata.BankName,
		FormType: metadata.FormType,
		Year:     metadata.Year,
		Filename: filename,
		Size:     int64(len(content)),
		S3Key:    key,
	}
}
