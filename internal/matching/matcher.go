// Package matching filters the strategy catalog down to the strategies
// applicable to a wizard user's selected risks.
package matching

import (
	"strings"

	"atlasbcp/backend/internal/models"
	"atlasbcp/backend/internal/riskid"
)

// Result groups matched strategies per selected risk. A strategy legitimately
// covering several selected risks appears under each of them; that fan-out is
// what the wizard and the document export render.
type Result struct {
	// ByRisk maps each selected canonical risk code to the strategies that
	// cover it, in catalog order, deduplicated within one risk.
	ByRisk map[string][]models.Strategy
	// Universal holds strategies with an empty applicable list or the
	// catch-all sentinel. They apply regardless of selection and are kept out
	// of the per-risk groups.
	Universal []models.Strategy
	// Gaps lists selected risks with no matching strategy, in selection order.
	// A gap is an observable coverage problem, not an error.
	Gaps []string
}

// Match returns the strategies applicable to each selected risk. Selected ids
// are normalized before comparison, so callers may pass raw wizard input.
func Match(selectedRiskIDs []string, strategies []models.Strategy) Result {
	res := Result{ByRisk: make(map[string][]models.Strategy)}

	selected := dedupe(riskid.NormalizeAll(selectedRiskIDs))

	// Pre-normalize each strategy's hazard lists once; also split off the
	// universal strategies so they never shadow a risk-specific match.
	type candidate struct {
		strategy models.Strategy
		hazards  []string
	}
	candidates := make([]candidate, 0, len(strategies))
	for _, s := range strategies {
		hazards := dedupe(riskid.NormalizeAll(s.ApplicableHazards()))
		if len(hazards) == 0 || containsCatchAll(hazards) {
			res.Universal = append(res.Universal, s)
			continue
		}
		candidates = append(candidates, candidate{strategy: s, hazards: hazards})
	}

	for _, risk := range selected {
		var matched []models.Strategy
		for _, c := range candidates {
			if covers(c.hazards, risk) {
				matched = append(matched, c.strategy)
			}
		}
		if len(matched) == 0 {
			res.Gaps = append(res.Gaps, risk)
			continue
		}
		res.ByRisk[risk] = matched
	}

	return res
}

// covers reports whether any of the strategy's normalized hazard codes matches
// the selected risk code. Rules are applied in order: exact equality, substring
// containment in either direction, then shared whole-word token overlap.
func covers(hazards []string, risk string) bool {
	for _, h := range hazards {
		if h == risk {
			return true
		}
	}
	for _, h := range hazards {
		if containsSubstring(h, risk) || containsSubstring(risk, h) {
			return true
		}
	}
	riskTokens := riskid.Tokens(risk)
	for _, h := range hazards {
		if sharesToken(riskid.Tokens(h), riskTokens) {
			return true
		}
	}
	return false
}

// minTokenLen filters out connective fragments ("of", "to") that would cause
// false positives in token overlap.
const minTokenLen = 3

func sharesToken(a, b []string) bool {
	for _, ta := range a {
		if len(ta) < minTokenLen {
			continue
		}
		for _, tb := range b {
			if len(tb) < minTokenLen {
				continue
			}
			if ta == tb {
				return true
			}
		}
	}
	return false
}

func containsSubstring(haystack, needle string) bool {
	return needle != "" && haystack != needle && strings.Contains(haystack, needle)
}

func containsCatchAll(hazards []string) bool {
	for _, h := range hazards {
		if riskid.IsCatchAll(h) {
			return true
		}
	}
	return false
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
