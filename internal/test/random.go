package test

import "math/rand/v2"

const tokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomToken returns a pseudo-random credential within the provided bounds.
// When maxLen equals minLen the resulting string always has that exact length.
func RandomToken(minLen, maxLen int) string {
	if minLen <= 0 {
		minLen = 1
	}
	if maxLen < minLen {
		maxLen = minLen
	}
	length := minLen + rand.IntN(maxLen-minLen+1)
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = tokenAlphabet[rand.IntN(len(tokenAlphabet))]
	}
	return string(buf)
}
