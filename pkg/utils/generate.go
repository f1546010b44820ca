package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"
)

// ==================== OTP ====================

const DefaultOTPLength = 6

// GenerateOTP returns a numeric code of the given length. The first digit is never zero
// so the code always has the full length when read as a number.
func GenerateOTP(length int) (string, error) {
	if length <= 0 {
		length = DefaultOTPLength
	}

	var b strings.Builder
	for i := 0; i < length; i++ {
		max := int64(10)
		if i == 0 {
			max = 9
		}
		n, err := rand.Int(rand.Reader, big.NewInt(max))
		if err != nil {
			return "", fmt.Errorf("generate otp: %w", err)
		}
		d := n.Int64()
		if i == 0 {
			d++
		}
		b.WriteByte(byte('0' + d))
	}

	return b.String(), nil
}

// OTPExpiry returns the instant after which a code issued at now is rejected.
func OTPExpiry(now time.Time, minutes int) time.Time {
	if minutes <= 0 {
		minutes = 5
	}
	return now.Add(time.Duration(minutes) * time.Minute)
}

// ==================== SLUG ====================

var (
	slugStrip    = regexp.MustCompile(`[^\w\s-]`)
	slugCollapse = regexp.MustCompile(`[\s_-]+`)
)

// Slugify lowercases name, drops punctuation and joins the remaining words with single hyphens.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugStrip.ReplaceAllString(s, "")
	s = slugCollapse.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// NormalizeEmail is the canonical form used for every email lookup and insert.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
