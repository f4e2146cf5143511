package helpers

// ContainsID reports whether id is present in ids.
func ContainsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// DistinctIDs returns ids with duplicates removed, preserving first-seen order.
func DistinctIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// RemoveID returns ids without every occurrence of id.
func RemoveID(ids []int64, id int64) []int64 {
	out := make([]int64, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// RemoveIDs returns ids without any id present in toRemove.
func RemoveIDs(ids []int64, toRemove []int64) []int64 {
	drop := make(map[int64]struct{}, len(toRemove))
	for _, id := range toRemove {
		drop[id] = struct{}{}
	}
	out := make([]int64, 0, len(ids))
	for _, v := range ids {
		if _, ok := drop[v]; !ok {
			out = append(out, v)
		}
	}
	return out
}

// AnyOverlap reports whether a and b share at least one id.
func AnyOverlap(a, b []int64) bool {
	set := make(map[int64]struct{}, len(a))
	for _, id := range a {
		set[id] = struct{}{}
	}
	for _, id := range b {
		if _, ok := set[id]; ok {
			return true
		}
	}
	return false
}
