// Package interview produces questions and feedback from local heuristics.
// Everything here is deterministic: no model calls, no randomness.
package interview

import (
	"fmt"
	"strings"

	"mock-interview/internal/catalog"
	"mock-interview/internal/session"
)

// OpeningQuestion builds the first question for roles without a predefined
// bank. The resume text only matters insofar as it exists; its content is
// not inspected.
func OpeningQuestion(role catalog.Role, resumeText string) string {
	skills := role.Skills
	if len(skills) > 3 {
		skills = skills[:3]
	}
	return fmt.Sprintf(
		"Hi, thanks for joining. I see experience related to %s on your resume. "+
			"Can you describe a recent project where you applied those skills, the challenges you faced, and the outcome?",
		strings.Join(skills, ", "))
}

// FollowUpQuestion builds the question asked once the predefined bank is
// exhausted or absent. It only looks at whether the candidate has answered
// anything yet.
func FollowUpQuestion(history []session.Turn) string {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == session.TurnUser && history[i].Text != "" {
			return "Thanks for that detail. Can you build on that by explaining the technical trade-offs you considered and why you chose the approach you did?"
		}
	}
	return "Can you walk me through your development process for a feature from design to deployment, focusing on testing and reliability?"
}

// Feedback writes the end-of-interview report. Each of the role's first five
// skills is substring-matched (case-insensitive) against the resume text;
// matches become strengths and the rest areas for improvement. The transcript
// is accepted for signature compatibility but not consulted, a known
// weakness of the heuristic.
func Feedback(role catalog.Role, resumeText string, history []session.Turn) string {
	skills := role.Skills
	if len(skills) > 5 {
		skills = skills[:5]
	}

	var strengths, improvements []string
	lowerResume := strings.ToLower(resumeText)
	for _, s := range skills {
		if strings.Contains(lowerResume, strings.ToLower(s)) {
			strengths = append(strengths, s)
		} else {
			improvements = append(improvements, s)
		}
	}

	score := clamp(6+floorDiv(len(strengths)-len(improvements), 2), 4, 9)

	strengthsBlock := "Provided clear examples and showed domain knowledge."
	if len(strengths) > 0 {
		strengthsBlock = strings.Join(strengths, "\n- ")
	}
	improvementsBlock := "Work on structuring answers with STAR (Situation, Task, Action, Result)."
	if len(improvements) > 0 {
		improvementsBlock = strings.Join(improvements, "\n- ")
	}
	competency := "Needs deeper technical examples and metrics."
	if len(strengths) > 0 {
		competency = "Shows familiarity with: " + strings.Join(strengths, ", ")
	}
	focus := improvements
	if len(focus) > 3 {
		focus = focus[:3]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Overall Performance Score: %d/10\n\n", score)
	fmt.Fprintf(&b, "Strengths:\n- %s\n\n", strengthsBlock)
	fmt.Fprintf(&b, "Areas for Improvement:\n- %s\n\n", improvementsBlock)
	fmt.Fprintf(&b, "Technical Competency:\n- %s\n\n", competency)
	b.WriteString("Communication Skills:\n- Be concise and use concrete metrics where possible. Practice structuring answers and summarizing outcomes.\n\n")
	b.WriteString("Final Recommendation:\n- Maybe. Candidate demonstrates potential but would benefit from stronger depth on a couple of key technologies.\n\n")
	fmt.Fprintf(&b, "Specific Next Steps:\n- Focus learning on: %s\n", strings.Join(focus, ", "))
	b.WriteString("- Prepare 2-3 detailed project stories with metrics and your specific impact.\n")
	return b.String()
}

// floorDiv rounds toward negative infinity, unlike Go's truncating division.
// The score formula depends on that for negative strength deficits.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
