package secret

import "strings"

// revealLen is the number of leading characters Mask leaves visible.
const revealLen = 4

// Mask redacts a plaintext secret for display: the first revealLen
// characters stay visible and every remaining character becomes '*', so
// "ABCDEFGH12345678" masks to "ABCD************". Secrets of revealLen
// characters or fewer are fully masked rather than echoed back. Mask
// operates on plaintext only; it never sees ciphertext.
func Mask(s string) string {
	if len(s) <= revealLen {
		return strings.Repeat("*", len(s))
	}
	return s[:revealLen] + strings.Repeat("*", len(s)-revealLen)
}
