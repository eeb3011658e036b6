package healthlake

import "strings"

// HealthLake caps job names at 64 characters and restricts the charset.
const maxJobNameLen = 64

const jobNamePrefix = "ingest-"

// JobName derives a deterministic import job name from an object key.
// The same key always yields the same name: the key is sanitized to the
// service's allowed charset, prefixed and prefix-truncated to 64 chars.
func JobName(key string) string {
	var b strings.Builder
	b.WriteString(jobNamePrefix)
	for _, r := range key {
		if allowedJobNameRune(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('-')
		}
	}
	name := b.String()
	if len(name) > maxJobNameLen {
		name = name[:maxJobNameLen]
	}
	return name
}

func allowedJobNameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '.', r == '_', r == ':', r == '/', r == '-':
		return true
	}
	return false
}
