package taxonomy

import "strings"

// FuzzyMatch finds the candidate closest to target when exact lookup failed.
// A candidate qualifies when one string contains the other; among qualifiers
// the one whose length is closest to target wins, first-seen on ties. Both
// inputs are expected to be normalized already.
//
// This is a deliberate heuristic: AI-generated names drift slightly from the
// site's terms ("Fishing Rod" vs "Fishing Rods") and a permissive match beats
// dropping the name.
func FuzzyMatch(target string, candidates []string) (string, bool) {
	if target == "" {
		return "", false
	}

	for _, c := range candidates {
		if c == target {
			return target, true
		}
	}

	var best string
	bestDiff := -1
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if !strings.Contains(c, target) && !strings.Contains(target, c) {
			continue
		}
		diff := len(c) - len(target)
		if diff < 0 {
			diff = -diff
		}
		if bestDiff < 0 || diff < bestDiff {
			best = c
			bestDiff = diff
		}
	}

	if bestDiff < 0 {
		return "", false
	}
	return best, true
}
