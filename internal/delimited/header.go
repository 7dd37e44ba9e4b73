package delimited

import (
	"rlopes/conciliador/internal/importerror"
)

// ResolveHeader maps each required canonical column name to its index in the
// file's header row. Both sides are matched by normalized form. If any
// required column fails to map, the whole resolution fails with a
// MissingColumnsError naming every unmapped column; a partial mapping never
// proceeds to row extraction.
func ResolveHeader(fileHeaders, required []string) (map[string]int, error) {
	byNormalized := make(map[string]int, len(fileHeaders))
	for i, h := range fileHeaders {
		key := NormalizeHeader(h)
		if _, seen := byNormalized[key]; !seen {
			byNormalized[key] = i
		}
	}

	mapping := make(map[string]int, len(required))
	var missing []string
	for _, name := range required {
		idx, ok := byNormalized[NormalizeHeader(name)]
		if !ok {
			missing = append(missing, name)
			continue
		}
		mapping[name] = idx
	}

	if len(missing) > 0 {
		return nil, &importerror.MissingColumnsError{Columns: missing}
	}
	return mapping, nil
}
