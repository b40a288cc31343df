// internal/recommend/skills.go
package recommend

import "strings"

// skillAliases groups known spelling and notation variants of a skill under
// one canonical name. Matching is by substring containment against each
// alias, so "reactjs developer" still resolves to react.
var skillAliases = map[string][]string{
	"javascript": {"javascript", "js", "java script", "javascrpt", "ecmascript"},
	"typescript": {"typescript", "ts"},
	"python":     {"python", "pyton", "phyton"},
	"java":       {"java"},
	"golang":     {"golang", "go lang"},
	"c#":         {"c#", "csharp", "c sharp"},
	"c++":        {"c++", "cpp", "c plus plus"},
	"react":      {"react", "reactjs", "react.js"},
	"angular":    {"angular", "angularjs", "angular.js"},
	"vue":        {"vue", "vuejs", "vue.js"},
	"node":       {"node", "nodejs", "node.js"},
	"html":       {"html", "html5"},
	"css":        {"css", "css3"},
	"postgresql": {"postgresql", "postgres", "psql"},
	"mysql":      {"mysql", "my sql"},
	"mongodb":    {"mongodb", "mongo"},
	"kubernetes": {"kubernetes", "k8s"},
	"docker":     {"docker"},
	"aws":        {"aws", "amazon web services"},
}

// SkillsMatch reports whether two free-text skill tokens denote the same
// skill, using the default fuzzy threshold. First of exact, substring,
// alias and fuzzy comparison to succeed wins.
func SkillsMatch(userToken, jobToken string) bool {
	return skillsMatch(userToken, jobToken, DefaultWeights().FuzzySimilarity)
}

func skillsMatch(userToken, jobToken string, fuzzyThreshold float64) bool {
	a := strings.ToLower(strings.TrimSpace(userToken))
	b := strings.ToLower(strings.TrimSpace(jobToken))
	if a == "" || b == "" {
		return false
	}

	if a == b {
		return true
	}

	// "react" vs "reactjs" and the like.
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}

	if aliasMatch(a, b) {
		return true
	}

	// Typos without an alias entry, e.g. "javascprit".
	return similarity(a, b) >= fuzzyThreshold
}

// aliasMatch reports whether both tokens resolve to the same canonical
// skill via the alias table.
func aliasMatch(a, b string) bool {
	for _, aliases := range skillAliases {
		if resolvesTo(a, aliases) && resolvesTo(b, aliases) {
			return true
		}
	}
	return false
}

func resolvesTo(token string, aliases []string) bool {
	for _, alias := range aliases {
		if strings.Contains(token, alias) || strings.Contains(alias, token) {
			return true
		}
	}
	return false
}

// SkillMatchFraction returns the fraction of the job's required skills that
// at least one user skill matches. The job list is the denominator on
// purpose: the question is how much of what the job wants the candidate
// has. Zero if either list is empty.
func (e *Engine) SkillMatchFraction(userSkills, jobSkills []string) float64 {
	if len(userSkills) == 0 || len(jobSkills) == 0 {
		return 0
	}

	matched := 0
	for _, jobSkill := range jobSkills {
		for _, userSkill := range userSkills {
			if skillsMatch(userSkill, jobSkill, e.weights.FuzzySimilarity) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(jobSkills))
}
