package safety

import "strings"

// SensitiveTerms are lowercase substrings that make a caption unusable.
// Matching is a plain substring check, so "age" also hits "image" and
// "message"; the false positives only cost a generic caption.
var SensitiveTerms = []string{
	"skin", "body", "weight", "fat", "thin", "ugly", "beautiful",
	"race", "ethnic", "gender", "age", "old", "young", "wrinkles",
	"acne", "pimples", "hair", "bald", "dress", "clothes",
}

// Rule inspects text and reports the offending fragment when it rejects it.
type Rule struct {
	Name  string
	Check func(text string) (term string, rejected bool)
}

type Decision struct {
	Allowed bool
	Rule    string
	Term    string
}

// Policy is an ordered list of rules; the first rejecting rule wins.
type Policy struct {
	rules []Rule
}

func NewPolicy(rules ...Rule) *Policy {
	return &Policy{rules: rules}
}

// DefaultPolicy holds the sensitive-term denylist only.
func DefaultPolicy() *Policy {
	return NewPolicy(DenylistRule("sensitive_terms", SensitiveTerms))
}

func (p *Policy) Evaluate(text string) Decision {
	for _, r := range p.rules {
		if term, rejected := r.Check(text); rejected {
			return Decision{Allowed: false, Rule: r.Name, Term: term}
		}
	}
	return Decision{Allowed: true}
}

// DenylistRule rejects text containing any of terms, case-insensitively.
func DenylistRule(name string, terms []string) Rule {
	lowered := make([]string, 0, len(terms))
	for _, t := range terms {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			lowered = append(lowered, t)
		}
	}
	return Rule{
		Name: name,
		Check: func(text string) (string, bool) {
			lt := strings.ToLower(text)
			for _, t := range lowered {
				if strings.Contains(lt, t) {
					return t, true
				}
			}
			return "", false
		},
	}
}
