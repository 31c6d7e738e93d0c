package readiness

import (
	"bufio"
	"io"
	"os"
	"strings"
)

const osReleasePath = "/etc/os-release"

// DetectOS returns the distribution identifier (the os-release ID
// field, e.g. "ubuntu", "debian", "rocky"). An unreadable or malformed
// file yields an empty identifier, which the gate treats as
// non-polling.
func DetectOS() string {
	f, err := os.Open(osReleasePath)
	if err != nil {
		return ""
	}
	defer f.Close()

	return parseID(f)
}

// parseID extracts the ID field from os-release content. Values may be
// bare or quoted.
func parseID(r io.Reader) string {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "ID=") {
			continue
		}
		id := strings.TrimPrefix(line, "ID=")
		id = strings.Trim(id, `"'`)
		return strings.ToLower(id)
	}
	return ""
}
