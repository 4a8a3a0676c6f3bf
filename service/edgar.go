package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/smakkapati-repo/amzon-bedrock-agentcore-bank-analytics/config"
	"github.com/smakkapati-repo/amzon-bedrock-agentcore-bank-analytics/model"
)

// PlaceholderCIK marks an unresolved identifier. Filing lookups for it
// short-circuit without a network call.
const PlaceholderCIK = "0000000000"

const (
	maxAnnualFilings    = 5
	maxQuarterlyFilings = 10
)

// FilingsResult is the outcome of a filing index fetch. Fetch errors are
// folded into Success=false with empty lists; callers treat "no filings"
// and "fetch failed" identically at this layer.
type FilingsResult struct {
	Success  bool
	Response string
	Error    string
	TenK     []model.Filing
	TenQ     []model.Filing
}

// EdgarService talks to the SEC EDGAR public data API.
type EdgarService struct {
	config     *config.EdgarConfig
	httpClient *http.Client
	now        func() time.Time
}

func NewEdgarService(cfg *config.EdgarConfig) *EdgarService {
	return &EdgarService{
		config:     cfg,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		now:        time.Now,
	}
}

type submissionsIndex struct {
	Filings struct {
		Recent struct {
			Form            []string `json:"form"`
			FilingDate      []string `json:"filingDate"`
			AccessionNumber []string `json:"accessionNumber"`
		} `json:"recent"`
	} `json:"filings"`
}

// Filings fetches the submissions index for the CIK and partitions the
// recent 10-K and 10-Q filings of the current and previous calendar
// years, newest first, capped at 5 annual and 10 quarterly.
func (s *EdgarService) Filings(ctx context.Context, bankName, cik string) *FilingsResult {
	if cik == "" {
		cik = PlaceholderCIK
	}
	if cik == PlaceholderCIK {
		return &FilingsResult{Success: false, Error: "Invalid CIK", TenK: []model.Filing{}, TenQ: []model.Filing{}}
	}

	url := fmt.Sprintf("%s/CIK%s.json", s.config.SubmissionsURL, cik)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return failedFilings(err)
	}
	req.Header.Set("User-Agent", s.config.UserAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return failedFilings(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return failedFilings(fmt.Errorf("SEC API returned HTTP %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return failedFilings(err)
	}

	var index submissionsIndex
	if err := json.Unmarshal(body, &index); err != nil {
		return failedFilings(err)
	}

	currentYear := s.now().Year()
	targetYears := []string{
		strconv.Itoa(currentYear),
		strconv.Itoa(currentYear - 1),
	}

	recent := index.Filings.Recent
	var tenK, tenQ []model.Filing
	for i, form := range recent.Form {
		if i >= len(recent.FilingDate) || i >= len(recent.AccessionNumber) {
			break
		}
		date := recent.FilingDate[i]
		if !hasYearPrefix(date, targetYears) {
			continue
		}

		filing := model.Filing{
			Form:       form,
			FilingDate: date,
			Accession:  recent.AccessionNumber[i],
			URL:        viewerURL(cik, recent.AccessionNumber[i]),
		}
		switch form {
		case "10-K":
			tenK = append(tenK, filing)
		case "10-Q":
			tenQ = append(tenQ, filing)
		}
	}

	// ISO dates sort correctly as strings
	sort.Slice(tenK, func(i, j int) bool { return tenK[i].FilingDate > tenK[j].FilingDate })
	sort.Slice(tenQ, func(i, j int) bool { return tenQ[i].FilingDate > tenQ[j].FilingDate })

	response := fmt.Sprintf("Found %d 10-K and %d 10-Q filings for %s", len(tenK), len(tenQ), bankName)

	return &FilingsResult{
		Success:  true,
		Response: response,
		TenK:     capFilings(tenK, maxAnnualFilings),
		TenQ:     capFilings(tenQ, maxQuarterlyFilings),
	}
}

func failedFilings(err error) *FilingsResult {
	return &FilingsResult{Success: false, Error: err.Error(), TenK: []model.Filing{}, TenQ: []model.Filing{}}
}

func hasYearPrefix(date string, years []string) bool {
	for _, year := range years {
		if strings.HasPrefix(date, year) {
			return true
		}
	}
	return false
}

func capFilings(filings []model.Filing, limit int) []model.Filing {
	if filings == nil {
		return []model.Filing{}
	}
	if len(filings) > limit {
		return filings[:limit]
	}
	return filings
}

func viewerURL(cik, accession string) string {
	return fmt.Sprintf("https://www.sec.gov/cgi-bin/viewer?action=view&cik=%s&accession_number=%s&xbrl_type=v",
		strings.TrimLeft(cik, "0"), accession)
}

type tickerEntry struct {
	CIK    int    `json:"cik_str"`
	Ticker string `json:"ticker"`
	Title  string `json:"title"`
}

// SearchCompanies looks up companies in the SEC company tickers file,
// matching on name substring or exact ticker. Used as the fallback when
// the static bank directory has no match.
func (s *EdgarService) SearchCompanies(ctx context.Context, query string) ([]model.Bank, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.config.TickersURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.config.UserAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("SEC EDGAR search failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("SEC EDGAR search returned HTTP %d", resp.StatusCode)
	}

	var companies map[string]tickerEntry
	if err := json.NewDecoder(resp.Body).Decode(&companies); err != nil {
		return nil, fmt.Errorf("failed to parse company tickers: %w", err)
	}

	queryLower := strings.ToLower(query)
	queryUpper := strings.ToUpper(query)

	var results []model.Bank
	for _, company := range companies {
		if !strings.Contains(strings.ToLower(company.Title), queryLower) &&
			strings.ToUpper(company.Ticker) != queryUpper {
			continue
		}
		results = append(results, model.Bank{
			Name:   company.Title,
			Ticker: company.Ticker,
			CIK:    fmt.Sprintf("%010d", company.CIK),
		})
		if len(results) >= 10 {
			break
		}
	}
	return results, nil
}
