package execution

// Verify reports whether the observed stdout exactly equals the expected
// output. No normalization is applied: trailing whitespace, case and
// encoding differences all count as mismatches.
func Verify(expected, observed string) bool {
	return expected == observed
}
