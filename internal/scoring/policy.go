package scoring

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"strings"
)

// Analyzer is the external text-analysis service. Implementations return the
// raw model output, which is expected to contain one JSON object.
type Analyzer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Policy scores candidates and extracts profiles. It never fails: when the
// analyzer is missing, unreachable or returns garbage, a placeholder result
// is returned so submissions are never blocked.
type Policy struct {
	analyzer         Analyzer
	placeholderScore func() int
}

// NewPolicy builds a policy. A nil analyzer puts it in offline mode.
func NewPolicy(analyzer Analyzer) *Policy {
	return &Policy{
		analyzer:         analyzer,
		placeholderScore: func() int { return 70 + rand.IntN(30) },
	}
}

// WithPlaceholderScore fixes the score used for degraded results.
func (p *Policy) WithPlaceholderScore(score int) *Policy {
	p.placeholderScore = func() int { return clampScore(score) }
	return p
}

// Online reports whether an analyzer is configured.
func (p *Policy) Online() bool {
	return p.analyzer != nil
}

// Score rates candidateText against jobDescription. When extractProfile is
// set the same request also asks for the candidate profile.
func (p *Policy) Score(ctx context.Context, candidateText, jobDescription string, extractProfile bool) Result {
	if p.analyzer == nil {
		log.Println("Scoring: text analysis not configured, using placeholder result")
		return p.placeholder("text analysis is not configured")
	}

	raw, err := p.analyzer.Complete(ctx, scoringSystemPrompt(extractProfile), scoringUserPrompt(candidateText, jobDescription))
	if err != nil {
		log.Printf("Scoring: analysis failed: %v", err)
		return p.placeholder(fmt.Sprintf("analysis failed: %v", err))
	}

	res, err := parseResult(raw, extractProfile)
	if err != nil {
		log.Printf("Scoring: malformed analysis output: %v, raw: %.500s", err, raw)
		return p.placeholder(fmt.Sprintf("malformed analysis output: %v", err))
	}
	return res
}

// ExtractProfile pulls a candidate profile out of resume text. On failure
// the placeholder profile's summary carries the reason.
func (p *Policy) ExtractProfile(ctx context.Context, resumeText string) Profile {
	if p.analyzer == nil {
		log.Println("Profile extraction: text analysis not configured")
		return placeholderProfile("missing analysis credentials")
	}
	if strings.TrimSpace(resumeText) == "" {
		return placeholderProfile("resume text is empty")
	}

	raw, err := p.analyzer.Complete(ctx, profileSystemPrompt, profileUserPrompt(resumeText))
	if err != nil {
		log.Printf("Profile extraction failed: %v", err)
		return placeholderProfile(err.Error())
	}

	prof, err := parseProfile(raw)
	if err != nil {
		log.Printf("Profile extraction: malformed output: %v, raw: %.500s", err, raw)
		return placeholderProfile(err.Error())
	}
	return prof
}

func (p *Policy) placeholder(reason string) Result {
	return Result{
		Score: p.placeholderScore(),
		Strengths: []string{
			"Solid relevant experience",
			"Good academic background",
			"Clear communication",
		},
		Weaknesses: []string{
			"Could give more specific examples of achievements",
			"Limited experience with some secondary tools",
		},
		Summary:        "Automatic analysis unavailable; placeholder assessment. Review the resume manually.",
		Recommendation: Approve,
		Degraded:       true,
		Reason:         reason,
	}
}

func placeholderProfile(reason string) Profile {
	return Profile{
		FullName: "Sample Candidate",
		Headline: "Technology Professional",
		Summary:  fmt.Sprintf("EXTRACTION FAILED: %s. (Placeholder data)", reason),
		Skills:   []string{"Communication", "Teamwork", "Problem Solving"},
	}
}
