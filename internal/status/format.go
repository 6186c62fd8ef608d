package status

import "fmt"

// FormatStatusLine renders the per-tick status summary in the layout
// operators already parse by eye (and by script).
func FormatStatusLine(throttle, magY, magTotal, rpmNow, rpmSet, stopMinutes float64) string {
	return fmt.Sprintf("Status: speed = %.3f, magy/tot (uT) = %.0f/%.0f, rpm_now/set = %.2f/%.2f, stop in %.1f",
		throttle, magY, magTotal, rpmNow, rpmSet, stopMinutes)
}

// FormatDebugLine renders the optional filter diagnostics line.
func FormatDebugLine(longAvg, shortAvg, lastInterval, meanInterval float64) string {
	return fmt.Sprintf("  valmed/flt = %.1f/%.1f, dtime = %.2f, <delist> = %.2f",
		longAvg, shortAvg, lastInterval, meanInterval)
}

// FormatReading renders the response to the read command.
func FormatReading(x, y, z, total float64) string {
	return fmt.Sprintf("Magnetometer (uT) - x, y, z, tot: %f, %f, %f, %f", x, y, z, total)
}

// FormatEcho renders the pending-command echo line.
func FormatEcho(pending string) string {
	return fmt.Sprintf("> %s", pending)
}
