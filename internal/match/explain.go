package match

import (
	"fmt"
	"strings"
)

// Explain renders a short human-readable justification for a scored posting.
// It is the fallback used when no LLM explainer is configured.
func Explain(r Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s at %s scored %.0f/100.", r.Posting.Title, r.Posting.Organization, r.Score)

	if len(r.MatchedSkills) > 0 {
		fmt.Fprintf(&b, " Your skills in %s match the role.", strings.Join(r.MatchedSkills, ", "))
	}
	if missing := r.RuleReport.Skills.MissingSkills; len(missing) > 0 {
		fmt.Fprintf(&b, " Consider picking up %s.", strings.Join(missing, ", "))
	}
	if r.AAP.RuralLocation >= 1.0 {
		b.WriteString(" Your rural background adds affirmative weightage to this allocation.")
	}
	if !r.Allocated {
		b.WriteString(" The score is below the allocation threshold, so this posting is shown for reference only.")
	}

	return b.String()
}
