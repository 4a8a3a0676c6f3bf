package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"

	"github.com/smakkapati-repo/amzon-bedrock-agentcore-bank-analytics/config"
)

// Metadata is the descriptive triple extracted from an uploaded filing.
type Metadata struct {
	BankName string
	FormType string
	Year     int
}

// MetadataExtractor shells out to the PDF metadata extraction script,
// passing the document as JSON on stdin and reading JSON on stdout.
type MetadataExtractor struct {
	python  string
	script  string
	timeout time.Duration
}

func NewMetadataExtractor(cfg *config.ExtractorConfig) *MetadataExtractor {
	return &MetadataExtractor{
		python:  cfg.Python,
		script:  cfg.Script,
		timeout: 30 * time.Second,
	}
}

type extractRequest struct {
	PDFContent string `json:"pdf_content"`
	Filename   string `json:"filename"`
}

type extractResponse struct {
	Success  bool   `json:"success"`
	BankName string `json:"bank_name"`
	FormType string `json:"form_type"`
	Year     int    `json:"year"`
	Error    string `json:"error"`
}

// Extract runs the extraction script against the document bytes. Any
// process or parse failure is returned as an error; callers fall back to
// default metadata.
func (e *MetadataExtractor) Extract(ctx context.Context, content []byte, filename string) (Metadata, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	input, err := json.Marshal(extractRequest{
		PDFContent: base64.StdEncoding.EncodeToString(content),
		Filename:   filename,
	})
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to marshal extraction input: %w", err)
	}

	cmd := exec.CommandContext(ctx, e.python, e.script)
	cmd.Stdin = bytes.NewReader(input)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return Metadata{}, fmt.Errorf("extraction script failed: %w, stderr: %s", err, stderr.String())
	}

	var result extractResponse
	if err := json.Unmarshal(stdout.Bytes(), &result); err != nil {
		return Metadata{}, fmt.Errorf("failed to parse extraction output: %w, output: %s", err, stdout.String())
	}

	if !result.Success {
		return Metadata{}, fmt.Errorf("extraction failed: %s", result.Error)
	}

	return Metadata{
		BankName: result.BankName,
		FormType: result.FormType,
		Year:     result.Year,
	}, nil
}
