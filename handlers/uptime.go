package handlers

import (
	"fmt"
	"strings"
	"time"
)

var uptimeUnits = []struct {
	size   time.Duration
	suffix string
}{
	{24 * time.Hour, "d"},
	{time.Hour, "h"},
	{time.Minute, "m"},
}

// formatUptime renders d as "2d 3h 4m 5s", leaving out leading zero units
func formatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	var b strings.Builder
	for _, unit := range uptimeUnits {
		n := d / unit.size
		if n > 0 || b.Len() > 0 {
			fmt.Fprintf(&b, "%d%s ", n, unit.suffix)
		}
		d -= n * unit.size
	}
	fmt.Fprintf(&b, "%ds", d/time.Second)

	return b.String()
}
