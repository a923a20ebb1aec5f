package api

import "time"

// DemoSessionID is the session carried by the demonstration dataset. The
// backend recognizes it for alert subscriptions, so a degraded session can
// still sign up for notifications.
const DemoSessionID = "mock-session"

// DemoResult is the deterministic fallback report shown whenever the live
// pipeline cannot produce one. Content mirrors what the backend would find in
// a typical Dutch SME's books.
func DemoResult(documentCount int) *AnalysisResult {
	return &AnalysisResult{
		SessionID:    DemoSessionID,
		TotalLeakage: -14200,
		Subsidies: []SubsidyOpportunity{
			{
				ID:          "wbso-2024",
				Item:        "Unused R&D Tax Credits",
				Subsidy:     "WBSO Subsidy",
				Amount:      -4800,
				Category:    "Tax",
				Description: "Tax credit for research and development activities.",
				Deadline:    "September 30, 2024",
				Eligibility: []string{"Companies performing R&D activities", "Minimum 500 R&D hours per year"},
			},
			{
				ID:          "sde-2024",
				Item:        "Energy Efficiency Program",
				Subsidy:     "SDE++ Grant",
				Amount:      -3200,
				Category:    "Energy",
				Description: "Subsidy for renewable energy projects.",
				Deadline:    "Rolling applications",
				Eligibility: []string{"Energy production from renewable sources", "CO2 reduction projects"},
			},
			{
				ID:          "stap-2024",
				Item:        "Employee Training Budget",
				Subsidy:     "STAP Budget",
				Amount:      -2800,
				Category:    "HR",
				Description: "Budget for employee training and development.",
				Deadline:    "Continuous enrollment",
				Eligibility: []string{"Dutch residents aged 18+", "Registered training providers"},
			},
			{
				ID:          "mit-2024",
				Item:        "Digital Transformation",
				Subsidy:     "MIT Scheme",
				Amount:      -2100,
				Category:    "Digital",
				Description: "SME Innovation Stimulus.",
				Deadline:    "April 2024 / September 2024",
				Eligibility: []string{"Small and medium enterprises", "Innovation or R&D project"},
			},
			{
				ID:          "dhi-2024",
				Item:        "Export Development",
				Subsidy:     "DHI Subsidy",
				Amount:      -1300,
				Category:    "Export",
				Description: "International business development.",
				Deadline:    "Ongoing applications",
				Eligibility: []string{"Dutch companies with export ambitions", "Projects in emerging markets"},
			},
		},
		Benchmark:     Benchmark{You: 23, Competitors: 67, IndustryAverage: 65},
		AnalyzedAt:    time.Now().UTC().Format(time.RFC3339),
		DocumentCount: documentCount,
	}
}
