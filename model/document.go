package model

// Document represents one uploaded SEC filing PDF after intake.
// Metadata fields are best-effort: extraction failures leave the
// declared bank name (or "Unknown Bank") and defaults in place.
// S3Key is empty when the object storage write failed.
type Document struct {
	BankName string `json:"bank_name"`
	FormType string `json:"form_type"`
	Year     int    `json:"year"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	S3Key    string `json:"s3_key"`
}
