package scoring

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	ErrNoJSON      = errors.New("no JSON object in response")
	ErrInvalidJSON = errors.New("response JSON is malformed")
	ErrNoScore     = errors.New("response has no numeric score")
)

// ExtractJSON strips markdown code fences and returns the first balanced
// {...} span of raw. Braces inside string literals are ignored.
func ExtractJSON(raw string) (string, error) {
	cleaned := stripFences(raw)
	start := strings.IndexByte(cleaned, '{')
	if start < 0 {
		return "", ErrNoJSON
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(cleaned); i++ {
		ch := cleaned[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return cleaned[start : i+1], nil
			}
		}
	}
	return "", fmt.Errorf("%w: unbalanced braces", ErrNoJSON)
}

func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```JSON", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// parseResult validates the analyzer output at the boundary. score is the
// only required field; absent lists become empty and an unknown
// recommendation becomes Review.
func parseResult(raw string, wantProfile bool) (Result, error) {
	doc, err := parseObject(raw)
	if err != nil {
		return Result{}, err
	}

	score, err := readScore(doc.Get("score"))
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Score:          score,
		Strengths:      stringList(doc.Get("strengths")),
		Weaknesses:     stringList(doc.Get("weaknesses")),
		Summary:        strings.TrimSpace(doc.Get("summary").String()),
		Recommendation: ParseRecommendation(doc.Get("recommendation").String()),
	}
	if wantProfile {
		if p := doc.Get("profile"); p.IsObject() {
			prof := profileFrom(p)
			res.Profile = &prof
		}
	}
	return res, nil
}

// parseProfile validates a standalone profile extraction response.
func parseProfile(raw string) (Profile, error) {
	doc, err := parseObject(raw)
	if err != nil {
		return Profile{}, err
	}
	return profileFrom(doc), nil
}

func parseObject(raw string) (gjson.Result, error) {
	body, err := ExtractJSON(raw)
	if err != nil {
		return gjson.Result{}, err
	}
	if !gjson.Valid(body) {
		return gjson.Result{}, ErrInvalidJSON
	}
	return gjson.Parse(body), nil
}

func readScore(r gjson.Result) (int, error) {
	var v float64
	switch r.Type {
	case gjson.Number:
		v = r.Float()
	case gjson.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(r.Str), 64)
		if err != nil {
			return 0, ErrNoScore
		}
		v = f
	default:
		return 0, ErrNoScore
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNoScore
	}
	return int(math.Round(math.Max(0, math.Min(100, v)))), nil
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func profileFrom(r gjson.Result) Profile {
	return Profile{
		FullName:     strings.TrimSpace(r.Get("full_name").String()),
		Headline:     strings.TrimSpace(r.Get("headline").String()),
		Summary:      strings.TrimSpace(r.Get("summary").String()),
		Skills:       stringList(r.Get("skills")),
		LinkedInURL:  strings.TrimSpace(r.Get("linkedin_url").String()),
		PortfolioURL: strings.TrimSpace(r.Get("portfolio_url").String()),
	}
}

// stringList reads an array of strings; a lone string becomes a one-item
// list and anything else an empty list.
func stringList(r gjson.Result) []string {
	out := []string{}
	switch {
	case r.IsArray():
		for _, item := range r.Array() {
			if s := strings.TrimSpace(item.String()); s != "" {
				out = append(out, s)
			}
		}
	case r.Type == gjson.String:
		if s := strings.TrimSpace(r.Str); s != "" {
			out = append(out, s)
		}
	}
	return out
}
