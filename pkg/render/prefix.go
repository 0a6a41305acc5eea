package render

// RepeatPrefix returns n prefixes: first, then rest for every following
// line. It is the usual shape for list items ("* " then two spaces).
func RepeatPrefix(first, rest string, n int) []string {
	if n <= 0 {
		return nil
	}
	out := make([]string, n)
	out[0] = first
	for i := 1; i < n; i++ {
		out[i] = rest
	}
	return out
}
