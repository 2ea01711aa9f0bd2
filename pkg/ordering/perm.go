package ordering

// CyclicallyEqual reports whether two orderings are rotations of each
// other. Rotating every anchor by the same amount changes no pairwise
// angular distance, so rotated orderings are interchangeable as far as the
// angular measure is concerned.
func CyclicallyEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	for shift := range a {
		match := true
		for i := range a {
			if a[i] != b[(i+shift)%len(a)] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
