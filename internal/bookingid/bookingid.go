// Package bookingid generates collision-resistant booking references.
package bookingid

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Length is the fixed size of a booking reference.
const Length = 6

// New returns a 6-character booking reference in [A-Z0-9]{6}.
//
// The first 3 characters are the tail of the current time in base 36,
// so references generated in different milliseconds can only collide
// on the random suffix. The remaining 3 characters are drawn uniformly
// from the charset. Uniqueness is not guaranteed here; the write path
// enforces it with a conditional put and regenerates on conflict.
func New() string {
	return newAt(time.Now().UnixMilli(), rand.IntN)
}

// newAt is the deterministic core, split out for tests.
func newAt(unixMilli int64, intN func(int) int) string {
	encoded := strings.ToUpper(strconv.FormatInt(unixMilli, 36))
	for len(encoded) < 3 {
		encoded = "0" + encoded
	}
	timeComponent := encoded[len(encoded)-3:]

	var b strings.Builder
	b.Grow(Length)
	b.WriteString(timeComponent)
	for i := 0; i < 3; i++ {
		b.WriteByte(charset[intN(len(charset))])
	}
	return b.String()
}
