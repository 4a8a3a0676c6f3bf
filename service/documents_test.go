package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

type fakeExtractor struct {
	metadata Metadata
	err      error
}

func (f *fakeExtractor) Extract(ctx context.Context, content []byte, filename string) (Metadata, error) {
	if f.err != nil {
		return Metadata{}, f.err
	}
	return f.metadata, nil
}

type fakeObjectStore struct {
	err      error
	lastKey  string
	lastMeta map[string]string
	uploads  int
}

func (f *fakeObjectStore) Upload(ctx context.Context, key string, data []byte, contentType string, metadata map[string]string) error {
	f.uploads++
	if f.err != nil {
		return f.err
	}
	f.lastKey = key
	f.lastMeta = metadata
	return nil
}

func TestIngestHappyPath(t *testing.T) {
	extractor := &fakeExtractor{metadata: Metadata{
		BankName: "JPMORGAN CHASE & CO",
		FormType: "10-Q",
		Year:     2024,
	}}
	storage := &fakeObjectStore{}
	svc := NewDocumentService(extractor, storage)

	doc := svc.Ingest(context.Background(), []byte("%PDF-1.4 fake"), "jpm-10q.pdf", "")

	if doc.BankName != "JPMORGAN CHASE & CO" || doc.FormType != "10-Q" || doc.Year != 2024 {
		t.Errorf("Expected extracted metadata, got %+v", doc)
	}
	if doc.S3Key != "uploaded-docs/JPMORGAN_CHASE___CO/2024/10-Q/jpm-10q.pdf" {
		t.Errorf("Unexpected storage key: %s", doc.S3Key)
	}
	if storage.lastKey != doc.S3Key {
		t.Errorf("Expected upload under %s, got %s", doc.S3Key, storage.lastKey)
	}
	if storage.lastMeta["bank-name"] != "JPMORGAN CHASE & CO" {
		t.Errorf("Expected bank-name metadata, got %v", storage.lastMeta)
	}
	if doc.Size != int64(len("%PDF-1.4 fake")) {
		t.Errorf("Expected size recorded, got %d", doc.Size)
	}
}

func TestIngestExtractionFailureFallsBack(t *testing.T) {
	extractor := &fakeExtractor{err: errors.New("extraction script failed")}
	storage := &fakeObjectStore{}
	svc := NewDocumentService(extractor, storage)

	doc := svc.Ingest(context.Background(), []byte("bytes"), "mystery.pdf", "BANK OF AMERICA CORP")

	if doc.BankName != "BANK OF AMERICA CORP" {
		t.Errorf("Expected declared bank name fallback, got %s", doc.BankName)
	}
	if doc.FormType != "10-K" {
		t.Errorf("Expected default form type, got %s", doc.FormType)
	}
	if doc.Year != time.Now().Year() {
		t.Errorf("Expected current year fallback, got %d", doc.Year)
	}
	if doc.S3Key == "" {
		t.Error("Expected storage to proceed despite extraction failure")
	}
}

func TestIngestExtractionFailureNoDeclaredBank(t *testing.T) {
	extractor := &fakeExtractor{err: errors.New("boom")}
	svc := NewDocumentService(extractor, &fakeObjectStore{})

	doc := svc.Ingest(context.Background(), []byte("bytes"), "doc.pdf", "")
	if doc.BankName != "Unknown Bank" {
		t.Errorf("Expected Unknown Bank, got %s", doc.BankName)
	}
}

func TestIngestStorageFailureIsNonFatal(t *testing.T) {
	extractor := &fakeExtractor{metadata: Metadata{BankName: "KEYCORP", FormType: "10-K", Year: 2025}}
	storage := &fakeObjectStore{err: errors.New("s3 unavailable")}
	svc := NewDocumentService(extractor, storage)

	doc := svc.Ingest(context.Background(), []byte("bytes"), "key.pdf", "")

	if doc.S3Key != "" {
		t.Errorf("Expected empty storage key on upload failure, got %s", doc.S3Key)
	}
	if doc.BankName != "KEYCORP" {
		t.Errorf("Expected metadata preserved on storage failure, got %s", doc.BankName)
	}
}

func TestIngestNilStorage(t *testing.T) {
	extractor := &fakeExtractor{metadata: Metadata{BankName: "KEYCORP", FormType: "10-K", Year: 2025}}
	svc := NewDocumentService(extractor, nil)

	doc := svc.Ingest(context.Background(), []byte("bytes"), "key.pdf", "")
	if doc.S3Key != "" {
		t.Errorf("Expected empty storage key without storage, got %s", doc.S3Key)
	}
}

func TestObjectKeySanitization(t *testing.T) {
	tests := []struct {
		bank string
		want string
	}{
		{"JPMORGAN CHASE & CO", "JPMORGAN_CHASE___CO"},
		{"U.S. BANCORP", "U_S__BANCORP"},
		{"M&T BANK CORP", "M_T_BANK_CORP"},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		got := ObjectKey(tt.bank, 2024, "10-K", "file.pdf")
		want := fmt.Sprintf("uploaded-docs/%s/2024/10-K/file.pdf", tt.want)
		if got != want {
			t.Errorf("ObjectKey(%q): expected %s, got %s", tt.bank, want, got)
		}
	}

	if !strings.HasPrefix(ObjectKey("x", 2025, "10-Q", "a.pdf"), "uploaded-docs/") {
		t.Error("Expected uploaded-docs/ prefix")
	}
}
