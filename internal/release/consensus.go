package release

import "strings"

// itemCount tracks how many times a value was seen and the index of its
// first occurrence, so ties can be broken by earliest appearance.
type itemCount struct {
	firstIndex int
	count      int
}

// MostCommon finds the modal value in values (ties broken by earliest first
// occurrence), returning the value, its count, and the total number of
// non-nil values considered.
func MostCommon(values []*string) (value string, count int, total int) {
	order := make([]string, 0, len(values))
	counts := make(map[string]*itemCount)
	for _, v := range values {
		if v == nil {
			continue
		}
		total++
		if ic, ok := counts[*v]; ok {
			ic.count++
		} else {
			counts[*v] = &itemCount{firstIndex: len(order), count: 1}
			order = append(order, *v)
		}
	}
	if total == 0 {
		return "", 0, 0
	}

	best := order[0]
	bestCount := counts[best].count
	bestFirst := counts[best].firstIndex
	for _, v := range order[1:] {
		ic := counts[v]
		if ic.count > bestCount || (ic.count == bestCount && ic.firstIndex < bestFirst) {
			best, bestCount, bestFirst = v, ic.count, ic.firstIndex
		}
	}
	return best, bestCount, total
}

// IsConsensual reports whether every considered value agreed (count==total).
func IsConsensual(count, total int) bool { return total > 0 && count == total }

// IsAllDistinct reports whether every value differed from every other
// (count==1 with more than one value contributing).
func IsAllDistinct(count, total int) bool { return count == 1 && total > 1 }

// vaAliases is the canonical Various-Artists alias list from spec.md §4.6.
var vaAliases = map[string]bool{
	"va": true, "various": true, "various artists": true, "": true, "unknown": true,
}

// IsVAArtist reports whether s (case-insensitively) names a Various-Artists
// placeholder.
func IsVAArtist(s string) bool {
	return vaAliases[strings.ToLower(strings.TrimSpace(s))]
}

// Consensus derives a release-level field value from per-file values,
// returning (value, ok). For most fields, disagreement means no consensus
// (ok=false). Pass isArtist=true to apply the Various-Artists special case.
func Consensus(values []*string, isArtist bool) (string, bool) {
	modal, count, total := MostCommon(values)
	if total == 0 {
		return "", false
	}
	if IsConsensual(count, total) {
		if isArtist && IsVAArtist(modal) {
			return "Various Artists", true
		}
		return modal, true
	}
	if isArtist && IsAllDistinct(count, total) {
		return "Various Artists", true
	}
	if isArtist && IsVAArtist(modal) {
		return "Various Artists", true
	}
	return "", false
}
