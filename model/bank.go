package model

// Bank is a reference-data entry in the static bank directory.
// CIK is the SEC Central Index Key, zero-padded to 10 digits.
type Bank struct {
	Name   string `json:"name"`
	Ticker string `json:"ticker"`
	CIK    string `json:"cik"`
}

// Filing is a single SEC filing row produced from the EDGAR submissions
// index. FilingDate is an ISO date string (YYYY-MM-DD).
type Filing struct {
	Form       string `json:"form"`
	FilingDate string `json:"filing_date"`
	Accession  string `json:"accession"`
	URL        string `json:"url"`
}
