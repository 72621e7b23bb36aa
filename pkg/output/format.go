// Package output provides utilities for formatting and displaying simulation results.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/iwvelando/startup-forecast/internal/model"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat writes a human-readable rather than machine-readable table of
// the monthly trajectory.
func PrettyFormat(w io.Writer, rows []model.Row) {
	p := message.NewPrinter(language.English)
	fmt.Fprintf(w, "Month | Revenue       | TTM Revenue   | Cash          | Debt          | Users   | Valuation\n")
	fmt.Fprintf(w, "_____ | _____________ | _____________ | _____________ | _____________ | _______ | _____________\n")
	for _, row := range rows {
		users := row.FreeActive + row.ProActive + row.EntActive
		_, _ = p.Fprintf(w, "%5d | $%12.2f | $%12.2f | $%12.2f | $%12.2f | %7.0f | $%12.2f\n",
			row.Month, row.RevenueTotal, row.RevenueTTM, row.Cash, row.Debt, users, row.Valuation)
	}
}

// PrettySummary writes the run's headline figures.
func PrettySummary(w io.Writer, rows []model.Row) {
	if len(rows) == 0 {
		return
	}
	p := message.NewPrinter(language.English)
	last := rows[len(rows)-1]
	minCash := rows[0].Cash
	for _, row := range rows[1:] {
		if row.Cash < minCash {
			minCash = row.Cash
		}
	}
	_, _ = p.Fprintf(w, "\nMonths simulated: %d\n", len(rows))
	_, _ = p.Fprintf(w, "Minimum cash:     $%.2f\n", minCash)
	_, _ = p.Fprintf(w, "Ending cash:      $%.2f\n", last.Cash)
	_, _ = p.Fprintf(w, "Ending debt:      $%.2f\n", last.Debt)
	_, _ = p.Fprintf(w, "TTM revenue:      $%.2f\n", last.RevenueTTM)
	_, _ = p.Fprintf(w, "Valuation:        $%.2f\n", last.Valuation)
}

// CsvFormat writes the full monthly trajectory in comma-separated value format.
func CsvFormat(w io.Writer, rows []model.Row) error {
	cw := csv.NewWriter(w)
	header := []string{
		"month",
		"ads_spend", "seo_spend", "dev_spend", "outreach_spend", "partner_spend",
		"revenue_total", "revenue_ttm",
		"costs_total", "net_cashflow",
		"cash", "debt",
		"free_active", "pro_active", "ent_active",
		"domain_rating", "seo_traffic", "product_value",
		"pro_price", "ent_price", "milestone",
		"credit_draw", "debt_repayment",
		"valuation",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("output: write csv header, %w", err)
	}
	for _, row := range rows {
		record := []string{
			strconv.Itoa(row.Month),
			money(row.AdsSpend), money(row.SEOSpend), money(row.DevSpend),
			money(row.OutreachSpend), money(row.PartnerSpend),
			money(row.RevenueTotal), money(row.RevenueTTM),
			money(row.CostsTotal), money(row.NetCashflow),
			money(row.Cash), money(row.Debt),
			count(row.FreeActive), count(row.ProActive), count(row.EntActive),
			money(row.DomainRating), money(row.SEOTraffic), money(row.ProductValue),
			money(row.ProPrice), money(row.EntPrice), strconv.Itoa(row.Milestone),
			money(row.CreditDraw), money(row.DebtRepayment),
			money(row.Valuation),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("output: write csv row %d, %w", row.Month, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func count(v float64) string {
	return strconv.FormatFloat(v, 'f', 0, 64)
}
