// Package namematch resolves free-text player names against the scorer names
// reported by the play-by-play feed.
//
// Rules are tried in order and the first rule that yields a single candidate
// wins:
//
//  1. exact, case-insensitive after trimming
//  2. canonical form, with punctuation, diacritics and generational suffixes removed
//  3. last name plus first initial
package namematch

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Rule identifies which matching rule accepted a name.
type Rule string

const (
	RuleNone      Rule = ""
	RuleExact     Rule = "exact"
	RuleCanonical Rule = "canonical"
	RuleInitial   Rule = "last_name_initial"
)

// Match is the outcome of resolving one predicted name.
type Match struct {
	Name string
	Rule Rule
	// Reason explains a miss for operators. Empty on a match.
	Reason string
}

// Candidate is an actual scorer name together with the team it scored for.
type Candidate struct {
	Name string
	Team string
}

var suffixes = map[string]struct{}{
	"jr":  {},
	"sr":  {},
	"ii":  {},
	"iii": {},
	"iv":  {},
	"v":   {},
}

type rule struct {
	name  Rule
	match func(predicted, actual string) bool
}

var chain = []rule{
	{name: RuleExact, match: matchExact},
	{name: RuleCanonical, match: matchCanonical},
	{name: RuleInitial, match: matchInitial},
}

// Matches reports whether predicted resolves to actual under any rule.
func Matches(predicted, actual string) bool {
	_, ok := matchRule(predicted, actual)
	return ok
}

func matchRule(predicted, actual string) (Rule, bool) {
	if strings.TrimSpace(predicted) == "" || strings.TrimSpace(actual) == "" {
		return RuleNone, false
	}
	for _, r := range chain {
		if r.match(predicted, actual) {
			return r.name, true
		}
	}
	return RuleNone, false
}

// BestMatch resolves predicted against candidates. When a rule accepts
// more than one distinct candidate the result is a miss, never a guess.
func BestMatch(predicted string, candidates []string) (Match, bool) {
	if strings.TrimSpace(predicted) == "" {
		return Match{Reason: "predicted name is empty"}, false
	}
	names := distinctNames(candidates)
	if len(names) == 0 {
		return Match{Reason: "no candidate names"}, false
	}

	for _, r := range chain {
		hits := make([]string, 0, 1)
		for _, name := range names {
			if r.match(predicted, name) {
				hits = append(hits, name)
			}
		}
		switch len(hits) {
		case 0:
			continue
		case 1:
			return Match{Name: hits[0], Rule: r.name}, true
		default:
			return Match{
				Reason: fmt.Sprintf("%q matched %d candidates under %s: %s", predicted, len(hits), r.name, strings.Join(hits, ", ")),
			}, false
		}
	}

	return Match{
		Reason: fmt.Sprintf("%q matched none of: %s", predicted, strings.Join(names, ", ")),
	}, false
}

// BestMatchOnTeam resolves predicted against the candidates credited to team.
// A name that only matches a scorer on another team is a miss.
func BestMatchOnTeam(predicted, team string, candidates []Candidate) (Match, bool) {
	team = strings.ToUpper(strings.TrimSpace(team))
	if team == "" {
		return Match{Reason: "predicted team is empty"}, false
	}

	onTeam := make([]string, 0, len(candidates))
	offTeam := make([]Candidate, 0, len(candidates))
	for _, candidate := range candidates {
		if strings.ToUpper(strings.TrimSpace(candidate.Team)) == team {
			onTeam = append(onTeam, candidate.Name)
			continue
		}
		offTeam = append(offTeam, candidate)
	}

	match, ok := BestMatch(predicted, onTeam)
	if ok {
		return match, true
	}
	if len(onTeam) == 0 {
		match.Reason = fmt.Sprintf("no scorers for team %s", team)
	}
	for _, candidate := range offTeam {
		if Matches(predicted, candidate.Name) {
			match.Reason = fmt.Sprintf("%s; %q scored for %s, not %s", match.Reason, candidate.Name, candidate.Team, team)
			break
		}
	}
	return match, false
}

func distinctNames(candidates []string) []string {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		name := strings.Join(strings.Fields(candidate), " ")
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func matchExact(predicted, actual string) bool {
	return strings.EqualFold(
		strings.Join(strings.Fields(predicted), " "),
		strings.Join(strings.Fields(actual), " "),
	)
}

func matchCanonical(predicted, actual string) bool {
	p := canonicalTokens(predicted)
	a := canonicalTokens(actual)
	if len(p) == 0 || len(a) == 0 || len(p) != len(a) {
		return false
	}
	for idx := range p {
		if p[idx] != a[idx] {
			return false
		}
	}
	return true
}

func matchInitial(predicted, actual string) bool {
	p := canonicalTokens(predicted)
	a := canonicalTokens(actual)
	if len(p) < 2 || len(a) < 2 {
		return false
	}
	if p[len(p)-1] != a[len(a)-1] {
		return false
	}

	pFirst, aFirst := []rune(p[0]), []rune(a[0])
	if pFirst[0] != aFirst[0] {
		return false
	}
	return len(pFirst) == 1 || len(aFirst) == 1
}

var foldMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// canonicalTokens lowercases, strips diacritics and punctuation, joins leading
// runs of initials ("a j brown" becomes "aj brown") and drops trailing
// generational suffixes.
func canonicalTokens(value string) []string {
	folded, _, err := transform.String(foldMarks, value)
	if err != nil {
		folded = value
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range strings.ToLower(folded) {
		switch {
		case r == '\'' || r == '’' || r == '`':
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}

	tokens := strings.Fields(b.String())
	for len(tokens) > 2 {
		if _, ok := suffixes[tokens[len(tokens)-1]]; !ok {
			break
		}
		tokens = tokens[:len(tokens)-1]
	}

	if len(tokens) > 2 && utf8.RuneCountInString(tokens[0]) == 1 {
		joined := tokens[0]
		idx := 1
		for idx < len(tokens)-1 && utf8.RuneCountInString(tokens[idx]) == 1 {
			joined += tokens[idx]
			idx++
		}
		tokens = append([]string{joined}, tokens[idx:]...)
	}
	return tokens
}
