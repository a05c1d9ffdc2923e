package chat

import "strings"

// gapIndicators are the answer substrings that signal the corpus lacked the
// information to answer. The test is over the answer text only, not over the
// citation list, so the flag can disagree with the citations.
var gapIndicators = []string{
	"don't have information",
	"not found",
	"no information",
	"unable to find",
}

// suggestionRule maps question keywords to the document kinds worth uploading.
type suggestionRule struct {
	keywords    []string
	suggestions []string
}

// suggestionRules are evaluated in order; the first matching rule wins.
var suggestionRules = []suggestionRule{
	{
		keywords:    []string{"loan", "credit", "lending"},
		suggestions: []string{"Loan Policy Document", "Credit Guidelines", "Lending Procedures"},
	},
	{
		keywords:    []string{"onboard", "training", "employee"},
		suggestions: []string{"Employee Handbook", "Training Manual", "HR Policies"},
	},
	{
		keywords:    []string{"finance", "revenue", "cac", "budget"},
		suggestions: []string{"Financial Reports", "Budget Documents", "Growth Metrics"},
	},
	{
		keywords:    []string{"customer", "client", "acquisition"},
		suggestions: []string{"Customer Data", "Sales Reports", "Marketing Analytics"},
	},
}

// defaultSuggestions is the fallback when no keyword rule matches.
var defaultSuggestions = []string{"Business Documents", "Policy Manual", "Operational Guidelines"}

// DetectKnowledgeGap inspects a generated answer for gap language and derives
// topic suggestions from the question's intent. Suggestions are always
// computed; callers decide whether to surface them.
func DetectKnowledgeGap(question, answer string) (bool, []string) {
	questionLower := strings.ToLower(question)
	answerLower := strings.ToLower(answer)

	hasGap := false
	for _, indicator := range gapIndicators {
		if strings.Contains(answerLower, indicator) {
			hasGap = true
			break
		}
	}

	for _, rule := range suggestionRules {
		if containsAny(questionLower, rule.keywords...) {
			return hasGap, rule.suggestions
		}
	}
	return hasGap, defaultSuggestions
}
