package utils

type Index []int

// InRange reports whether every entry lies in [0, n)
func (I Index) InRange(n int) bool {
	for _, val := range I {
		if val < 0 || val >= n {
			return false
		}
	}
	return true
}

// Unique drops repeated entries, keeping the first occurrence
func (I Index) Unique() (r Index) {
	seen := make(map[int]struct{}, len(I))
	for _, val := range I {
		if _, ok := seen[val]; ok {
			continue
		}
		seen[val] = struct{}{}
		r = append(r, val)
	}
	return
}
