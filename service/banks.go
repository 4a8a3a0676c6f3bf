package service

import (
	"context"
	"strings"

	"github.com/smakkapati-repo/amzon-bedrock-agentcore-bank-analytics/model"
	"github.com/smakkapati-repo/amzon-bedrock-agentcore-bank-analytics/pkg/logger"
)

// majorBanks is the static directory of major US banks. Reference data,
// never mutated.
var majorBanks = []model.Bank{
	{Name: "JPMORGAN CHASE & CO", Ticker: "JPM", CIK: "0000019617"},
	{Name: "BANK OF AMERICA CORP", Ticker: "BAC", CIK: "0000070858"},
	{Name: "WELLS FARGO & COMPANY", Ticker: "WFC", CIK: "0000072971"},
	{Name: "CITIGROUP INC", Ticker: "C", CIK: "0000831001"},
	{Name: "GOLDMAN SACHS GROUP INC", Ticker: "GS", CIK: "0000886982"},
	{Name: "MORGAN STANLEY", Ticker: "MS", CIK: "0000895421"},
	{Name: "U.S. BANCORP", Ticker: "USB", CIK: "0000036104"},
	{Name: "PNC FINANCIAL SERVICES GROUP INC", Ticker: "PNC", CIK: "0000713676"},
	{Name: "CAPITAL ONE FINANCIAL CORP", Ticker: "COF", CIK: "0000927628"},
	{Name: "TRUIST FINANCIAL CORP", Ticker: "TFC", CIK: "0001534701"},
	{Name: "CHARLES SCHWAB CORP", Ticker: "SCHW", CIK: "0000316709"},
	{Name: "BANK OF NEW YORK MELLON CORP", Ticker: "BK", CIK: "0001126328"},
	{Name: "STATE STREET CORP", Ticker: "STT", CIK: "0000093751"},
	{Name: "FIFTH THIRD BANCORP", Ticker: "FITB", CIK: "0000035527"},
	{Name: "CITIZENS FINANCIAL GROUP INC", Ticker: "CFG", CIK: "0000759944"},
	{Name: "KEYCORP", Ticker: "KEY", CIK: "0000091576"},
	{Name: "REGIONS FINANCIAL CORP", Ticker: "RF", CIK: "0001281761"},
	{Name: "M&T BANK CORP", Ticker: "MTB", CIK: "0000036270"},
	{Name: "HUNTINGTON BANCSHARES INC", Ticker: "HBAN", CIK: "0000049196"},
	{Name: "COMERICA INC", Ticker: "CMA", CIK: "0000028412"},
	{Name: "ZIONS BANCORPORATION", Ticker: "ZION", CIK: "0000109380"},
	{Name: "WEBSTER FINANCIAL CORP", Ticker: "WBS", CIK: "0000801337"},
	{Name: "FIRST HORIZON CORP", Ticker: "FHN", CIK: "0000036966"},
	{Name: "SYNOVUS FINANCIAL CORP", Ticker: "SNV", CIK: "0000312070"},
}

// CompanySearcher is the remote lookup used when the static directory
// has no match.
type CompanySearcher interface {
	SearchCompanies(ctx context.Context, query string) ([]model.Bank, error)
}

// BankDirectory answers bank searches from the static directory first,
// falling back to a remote company lookup.
type BankDirectory struct {
	remote CompanySearcher
}

func NewBankDirectory(remote CompanySearcher) *BankDirectory {
	return &BankDirectory{remote: remote}
}

// Search matches case-insensitively on name substring and on exact or
// substring ticker. Results are capped at 10. A remote lookup failure
// yields an empty result, not an error.
func (d *BankDirectory) Search(ctx context.Context, query string) []model.Bank {
	queryLower := strings.ToLower(query)
	queryUpper := strings.ToUpper(query)

	var results []model.Bank
	for _, bank := range majorBanks {
		if strings.Contains(strings.ToLower(bank.Name), queryLower) ||
			queryUpper == bank.Ticker ||
			strings.Contains(bank.Ticker, queryUpper) {
			results = append(results, bank)
		}
	}

	if len(results) == 0 && d.remote != nil {
		remote, err := d.remote.SearchCompanies(ctx, query)
		if err != nil {
			logger.Warn(ctx, "remote bank search failed", "query", query, "error", err)
		} else {
			results = remote
		}
	}

	if results == nil {
		results = []model.Bank{}
	}
	if len(results) > 10 {
		results = results[:10]
	}
	return results
}
