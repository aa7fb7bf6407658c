// Package util holds small formatting helpers shared by log statements.
package util

import (
	"strconv"
	"strings"
	"time"
)

// MaskEmail keeps the first character of the local part and the domain,
// e.g. "ada@example.com" becomes "a***@example.com".
func MaskEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return "***"
	}

	return email[:1] + "***" + email[at:]
}

var sizeUnits = []string{"B", "KiB", "MiB", "GiB"}

// FormatSize renders a byte count with a binary unit, e.g. 1536 becomes "1.5 KiB".
// Whole values drop the fraction.
func FormatSize(n int64) string {
	value, unit := float64(n), 0
	for value >= 1024 && unit < len(sizeUnits)-1 {
		value /= 1024
		unit++
	}

	prec := 1
	if value == float64(int64(value)) {
		prec = 0
	}

	return strconv.FormatFloat(value, 'f', prec, 64) + " " + sizeUnits[unit]
}

// FormatTTL renders a token lifetime in whole units and drops zero parts,
// e.g. "24h", "1h30m", "45s".
func FormatTTL(d time.Duration) string {
	d = d.Round(time.Second)
	if d <= 0 {
		return "0s"
	}

	var b strings.Builder
	for _, part := range []struct {
		unit   time.Duration
		suffix string
	}{{time.Hour, "h"}, {time.Minute, "m"}, {time.Second, "s"}} {
		if n := d / part.unit; n > 0 {
			b.WriteString(strconv.FormatInt(int64(n), 10))
			b.WriteString(part.suffix)
			d -= n * part.unit
		}
	}

	return b.String()
}
