package resume

import (
	"regexp"
	"strconv"
	"strings"
)

var emailRe = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

func extractEmail(text string) string {
	return emailRe.FindString(text)
}

var phoneRes = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{3}[-.\s]?\d{3}[-.\s]?\d{4}\b`),
	regexp.MustCompile(`\(\d{3}\)\s*\d{3}[-.\s]?\d{4}`),
	regexp.MustCompile(`\b\d{10}\b`),
}

func extractPhone(text string) string {
	for _, re := range phoneRes {
		if m := re.FindString(text); m != "" {
			return m
		}
	}
	return ""
}

var cgpaRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)CGPA\s*:?\s*(\d\.\d{1,2})`),
	regexp.MustCompile(`(?i)(\d\.\d{1,2})\s*CGPA`),
	regexp.MustCompile(`(?i)GPA\s*:?\s*(\d\.\d{1,2})`),
	regexp.MustCompile(`(?i)(\d\.\d{1,2})\s*GPA`),
	regexp.MustCompile(`(?i)Grade\s*:?\s*(\d\.\d{1,2})`),
}

// extractCGPA returns the CGPA and whether one was found.
func extractCGPA(text string) (float64, bool) {
	for _, re := range cgpaRes {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		return v, true
	}
	return 0, false
}

// extractSkills scans text for every known skill, word-bounded and
// case-insensitive, and returns matches grouped by category. Categories with
// no matches are omitted.
func extractSkills(text string) map[string][]string {
	found := make(map[string][]string)
	for category, skills := range skillsDB {
		for _, skill := range skills {
			re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(skill) + `\b`)
			if re.MatchString(text) {
				found[category] = append(found[category], skill)
			}
		}
	}
	return found
}

// SkillsInText returns every known skill mentioned in free text, flattened
// across categories. Used to derive required skills from posting descriptions.
func SkillsInText(text string) []string {
	var out []string
	for _, skills := range extractSkills(text) {
		out = append(out, skills...)
	}
	return out
}

var branchPatterns = []struct {
	branch string
	res    []*regexp.Regexp
}{
	{"CSE", compileAll(`Computer Science`, `C\.S\.E`, `\bCSE\b`, `Computer Engineering`)},
	{"ECE", compileAll(`Electronics`, `E\.C\.E`, `\bECE\b`, `Electronics and Communication`)},
	{"IT", compileAll(`Information Technology`, `I\.T\b`, `\bIT\b`)},
	{"ME", compileAll(`Mechanical`, `M\.E\b`, `\bME\b`, `Mechanical Engineering`)},
	{"CE", compileAll(`Civil`, `C\.E\b`, `\bCE\b`, `Civil Engineering`)},
	{"EEE", compileAll(`Electrical`, `E\.E\.E`, `\bEEE\b`, `Electrical Engineering`)},
}

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(`(?i)`+p))
	}
	return out
}

// extractBranch maps free text to an engineering branch code. Order matters:
// the first branch whose pattern matches wins.
func extractBranch(text string) string {
	for _, bp := range branchPatterns {
		for _, re := range bp.res {
			if re.MatchString(text) {
				return bp.branch
			}
		}
	}
	return ""
}

var (
	experienceRe = regexp.MustCompile(`(?i)(\d+)\s*\+?\s*(?:years|yrs|yr)`)
	companyRe    = regexp.MustCompile(`(?i)(?:at|in|from)\s+([A-Z][a-zA-Z\s.&]+?)(?:\s|,|\.)`)
)

// extractExperience returns total years of experience (0 if absent) and the
// companies mentioned alongside it.
func extractExperience(text string) (float64, []string) {
	var years float64
	if m := experienceRe.FindStringSubmatch(text); m != nil {
		years, _ = strconv.ParseFloat(m[1], 64)
	}

	var companies []string
	for _, m := range companyRe.FindAllStringSubmatch(text, -1) {
		companies = append(companies, strings.TrimSpace(m[1]))
	}
	return years, companies
}

var educationRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(Bachelor|B\.?Tech|B\.?E|Master|M\.?Tech|M\.?S|Ph\.?D)[\s\S]{1,50}?(20\d{2}[\s\S]{1,20}?20\d{2}|present)`),
	regexp.MustCompile(`(?i)(University|Institute|College)[\s\S]{1,30}?(20\d{2}[\s\S]{1,20}?20\d{2}|present)`),
}

func extractEducation(text string) []string {
	var out []string
	for _, re := range educationRes {
		for _, m := range re.FindAllString(text, -1) {
			out = append(out, strings.TrimSpace(m))
		}
	}
	return out
}
