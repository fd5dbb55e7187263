package number

import (
	"fmt"
	"strconv"
	"strings"
)

// Prefix is the fixed prefix of every bill number.
const Prefix = "SV"

// Format renders a bill number from its numeric part.
func Format(seq int64) string {
	return fmt.Sprintf("%s%d", Prefix, seq)
}

// Parse extracts the numeric part of a bill number. A malformed number
// (wrong prefix, non-numeric suffix) parses as 0 so a bad row in the bills
// table can never break allocation.
func Parse(billNo string) int64 {
	rest, ok := strings.CutPrefix(billNo, Prefix)
	if !ok {
		return 0
	}
	n, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Next computes the next bill number from the set of existing ones. With no
// bills the baseline is SV0, so the first allocated number is SV1.
func Next(existing []string) string {
	var max int64
	for _, billNo := range existing {
		if n := Parse(billNo); n > max {
			max = n
		}
	}
	return Format(max + 1)
}
