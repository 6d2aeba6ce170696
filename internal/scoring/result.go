package scoring

import "strings"

// Recommendation is the analyst's verdict on an application.
type Recommendation string

const (
	Approve Recommendation = "Approve"
	Reject  Recommendation = "Reject"
	Review  Recommendation = "Review"
)

// ParseRecommendation normalizes free-form verdicts. Unknown or empty values
// map to Review.
func ParseRecommendation(s string) Recommendation {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "approve", "approved", "aprovar":
		return Approve
	case "reject", "rejected", "reprovar":
		return Reject
	default:
		return Review
	}
}

// Profile is candidate data extracted from resume text.
type Profile struct {
	FullName     string   `json:"full_name"`
	Headline     string   `json:"headline"`
	Summary      string   `json:"summary"`
	Skills       []string `json:"skills"`
	LinkedInURL  string   `json:"linkedin_url"`
	PortfolioURL string   `json:"portfolio_url"`
}

// Result is the outcome of scoring one candidate against one job. It is
// computed once at submission and never recomputed.
type Result struct {
	Score          int            `json:"score"`
	Strengths      []string       `json:"strengths"`
	Weaknesses     []string       `json:"weaknesses"`
	Summary        string         `json:"summary"`
	Recommendation Recommendation `json:"recommendation"`
	Profile        *Profile       `json:"profile,omitempty"`

	// Degraded is set when the result is a placeholder.
	Degraded bool   `json:"degraded"`
	Reason   string `json:"reason,omitempty"`
}
