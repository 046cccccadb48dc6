package usecase

import (
	"sort"
	"strconv"
	"strings"
)

// SpecHash computes a deterministic, order- and case-independent
// fingerprint of a specification list, used to flag likely-duplicate
// catalog entries. Specifications are lowercased, trimmed, sorted and
// joined before a 32-bit rolling polynomial hash with two's-complement
// wraparound is applied; the absolute value is rendered base-36.
// Collisions are possible and acceptable; this is a heuristic, not a
// uniqueness proof.
func SpecHash(specs []string) string {
	normalized := make([]string, len(specs))
	for i, spec := range specs {
		normalized[i] = strings.ToLower(strings.TrimSpace(spec))
	}
	sort.Strings(normalized)
	joined := strings.Join(normalized, "|")

	var h int32
	for _, r := range joined {
		h = h*31 + int32(r)
	}

	v := int64(h)
	if v < 0 {
		v = -v
	}
	return strconv.FormatInt(v, 36)
}
