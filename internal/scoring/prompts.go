package scoring

import (
	"fmt"
	"strings"

	"github.com/fadilmartias/talent-pipeline/internal/pipeline"
)

func scoringSystemPrompt(extractProfile bool) string {
	var sb strings.Builder
	sb.WriteString("You are an expert HR recruiter. Analyze the candidate's CV against the job description")
	if extractProfile {
		sb.WriteString(" AND extract the candidate's profile data")
	}
	sb.WriteString(".\n\nReturn ONLY a valid JSON object, no markdown, with this structure:\n")
	sb.WriteString("{\n")
	sb.WriteString(`  "score": <integer 0-100>,` + "\n")
	sb.WriteString(`  "strengths": [<short strings>],` + "\n")
	sb.WriteString(`  "weaknesses": [<short strings>],` + "\n")
	sb.WriteString(fmt.Sprintf(`  "summary": "<analysis summary, with a clear justification when score >= %d to advance a stage>",`+"\n", pipeline.AutoAdvanceThreshold))
	if extractProfile {
		sb.WriteString(`  "recommendation": "Approve" | "Reject" | "Review",` + "\n")
		sb.WriteString(`  "profile": {` + "\n")
		sb.WriteString(`    "full_name": "<string>",` + "\n")
		sb.WriteString(`    "headline": "<string, e.g. Full Stack Developer>",` + "\n")
		sb.WriteString(`    "summary": "<professional summary of the candidate>",` + "\n")
		sb.WriteString(`    "skills": [<strings>],` + "\n")
		sb.WriteString(`    "linkedin_url": "<string or null>",` + "\n")
		sb.WriteString(`    "portfolio_url": "<string or null>"` + "\n")
		sb.WriteString("  }\n")
	} else {
		sb.WriteString(`  "recommendation": "Approve" | "Reject" | "Review"` + "\n")
	}
	sb.WriteString("}\n")
	return sb.String()
}

func scoringUserPrompt(candidateText, jobDescription string) string {
	return fmt.Sprintf("Job Description:\n%s\n\nCandidate CV:\n%s", jobDescription, candidateText)
}

const profileSystemPrompt = `You are an HR assistant. Extract information from the CV text to fill a candidate profile.
Return ONLY a valid JSON object with the fields:
{
  "full_name": "<string>",
  "headline": "<string, e.g. Full Stack Developer>",
  "summary": "<professional summary>",
  "skills": [<strings>],
  "linkedin_url": "<string or null>",
  "portfolio_url": "<string or null>"
}
Use null or an empty array when something cannot be found.`

func profileUserPrompt(resumeText string) string {
	return "CV text:\n" + resumeText
}
