package taxonomy

// Resolution is the outcome of mapping requested names against one index.
type Resolution struct {
	IDs       []int
	Unmatched []string
}

// ResolveIDs maps each requested name to a term ID: exact normalized lookup
// first, fuzzy fallback second, otherwise the raw name lands in Unmatched.
// IDs follow the input order of names.
func ResolveIDs(names []string, ix Index) Resolution {
	res := Resolution{
		IDs:       []int{},
		Unmatched: []string{},
	}
	if len(names) == 0 {
		return res
	}

	var keys []string

	for _, raw := range names {
		key := Normalize(raw)
		if id, ok := ix[key]; ok {
			res.IDs = append(res.IDs, id)
			continue
		}

		if keys == nil {
			keys = ix.Keys()
		}
		if match, ok := FuzzyMatch(key, keys); ok {
			res.IDs = append(res.IDs, ix[match])
			continue
		}

		res.Unmatched = append(res.Unmatched, raw)
	}

	return res
}
