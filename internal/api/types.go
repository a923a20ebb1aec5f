// Package api is the HTTP client for the Liquidity AI analysis backend.
package api

// AnalysisResult is the full analysis report for one upload session.
type AnalysisResult struct {
	SessionID     string               `json:"sessionId"`
	TotalLeakage  float64              `json:"totalLeakage"`
	Subsidies     []SubsidyOpportunity `json:"subsidies"`
	Benchmark     Benchmark            `json:"benchmark"`
	AnalyzedAt    string               `json:"analyzedAt"`
	DocumentCount int                  `json:"documentCount"`
}

// SubsidyOpportunity is a single detected subsidy or tax-credit candidate.
// Amounts are negative: they represent money leaking away unclaimed.
type SubsidyOpportunity struct {
	ID          string   `json:"id"`
	Item        string   `json:"item"`
	Subsidy     string   `json:"subsidy"`
	Category    string   `json:"category"`
	Amount      float64  `json:"amount"`
	Description string   `json:"description,omitempty"`
	Deadline    string   `json:"deadline,omitempty"`
	Eligibility []string `json:"eligibility,omitempty"`
}

// Benchmark compares claim rates as percentages. The backend owns the scale;
// values are passed through unclamped.
type Benchmark struct {
	You             float64 `json:"you"`
	Competitors     float64 `json:"competitors"`
	IndustryAverage float64 `json:"industryAverage"`
}

// UploadResponse acknowledges a document upload and opens a session.
type UploadResponse struct {
	SessionID     string `json:"sessionId"`
	FilesUploaded int    `json:"filesUploaded"`
}

// SubsidyList is the catalog of all subsidies the backend knows about.
type SubsidyList struct {
	Count     int                  `json:"count"`
	Subsidies []SubsidyOpportunity `json:"subsidies"`
}

// AlertResponse acknowledges an email alert subscription.
type AlertResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	AlertID string `json:"alertId"`
}

// CancelResponse acknowledges an alert cancellation.
type CancelResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
