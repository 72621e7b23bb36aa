package model

// Row holds every derived quantity for one simulated month plus the
// end-of-month state snapshot. One Row per month; the field names and
// one-row-per-month shape are the compatibility contract consumed by
// export, plotting, and dashboard collaborators.
type Row struct {
	Month int `json:"month"`

	// Decision echo
	AdsSpend      float64 `json:"ads_spend"`
	SEOSpend      float64 `json:"seo_spend"`
	DevSpend      float64 `json:"dev_spend"`
	OutreachSpend float64 `json:"outreach_spend"`
	PartnerSpend  float64 `json:"partner_spend"`

	// Acquisition
	AdsClicks         float64 `json:"ads_clicks"`
	EffectiveCPC      float64 `json:"effective_cpc"`
	SEOTraffic        float64 `json:"seo_traffic"`
	WebsiteVisitors   float64 `json:"website_visitors"`
	WebsiteLeads      float64 `json:"website_leads"`
	OutreachContacted float64 `json:"outreach_contacted"`
	OutreachLeads     float64 `json:"outreach_leads"`
	LeadsTotal        float64 `json:"leads_total"`

	// Funnel movement
	NewFree       float64 `json:"new_free"`
	NewPro        float64 `json:"new_pro"`
	NewEnt        float64 `json:"new_ent"`
	UpgradedToPro float64 `json:"upgraded_to_pro"`
	UpgradedToEnt float64 `json:"upgraded_to_ent"`
	ChurnedFree   float64 `json:"churned_free"`
	ChurnedPro    float64 `json:"churned_pro"`
	ChurnedEnt    float64 `json:"churned_ent"`

	// Partner channel
	PartnerProDeals float64 `json:"partner_pro_deals"`
	PartnerEntDeals float64 `json:"partner_ent_deals"`

	// Pricing
	Milestone int     `json:"milestone"`
	ProPrice  float64 `json:"pro_price"`
	EntPrice  float64 `json:"ent_price"`

	// Finance
	RevenueTotal      float64 `json:"revenue_total"`
	RevenueTTM        float64 `json:"revenue_ttm"`
	AcquisitionCost   float64 `json:"acquisition_cost"`
	SalesCost         float64 `json:"sales_cost"`
	SupportCost       float64 `json:"support_cost"`
	OperatingCost     float64 `json:"operating_cost"`
	PartnerCommission float64 `json:"partner_commission"`
	InterestRate      float64 `json:"interest_rate_annual"`
	InterestPayment   float64 `json:"interest_payment"`
	CostsTotal        float64 `json:"costs_total"`
	ProfitBeforeTax   float64 `json:"profit_before_tax"`
	Tax               float64 `json:"tax"`
	NetCashflow       float64 `json:"net_cashflow"`
	CreditDraw        float64 `json:"credit_draw"`
	DebtRepayment     float64 `json:"debt_repayment"`
	Valuation         float64 `json:"valuation"`

	// End-of-month state snapshot
	Cash          float64 `json:"cash"`
	Debt          float64 `json:"debt"`
	DomainRating  float64 `json:"domain_rating"`
	ProductValue  float64 `json:"product_value"`
	FreeActive    float64 `json:"free_active"`
	ProActive     float64 `json:"pro_active"`
	EntActive     float64 `json:"ent_active"`
	QualifiedPool float64 `json:"qualified_pool"`
}
