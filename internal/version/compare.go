package version

import (
	"strconv"
	"strings"
)

// Compare compares two semantic versions.
// Returns: -1 if v1 < v2, 0 if equal, 1 if v1 > v2
// "dev" is older than any release.
func Compare(v1, v2 string) int {
	if v1 == "dev" {
		if v2 == "dev" {
			return 0
		}
		return -1
	}
	if v2 == "dev" {
		return 1
	}

	v1 = strings.TrimPrefix(v1, "v")
	v2 = strings.TrimPrefix(v2, "v")

	// Split by '-' to separate version from prerelease
	v1Parts := strings.SplitN(v1, "-", 2)
	v2Parts := strings.SplitN(v2, "-", 2)

	v1Main := strings.Split(v1Parts[0], ".")
	v2Main := strings.Split(v2Parts[0], ".")

	maxLen := max(len(v1Main), len(v2Main))
	for i := 0; i < maxLen; i++ {
		var n1, n2 int
		if i < len(v1Main) {
			n1, _ = strconv.Atoi(v1Main[i])
		}
		if i < len(v2Main) {
			n2, _ = strconv.Atoi(v2Main[i])
		}

		if n1 != n2 {
			if n1 < n2 {
				return -1
			}
			return 1
		}
	}

	// 1.0.0 > 1.0.0-beta.1
	hasPre1 := len(v1Parts) > 1
	hasPre2 := len(v2Parts) > 1
	switch {
	case !hasPre1 && hasPre2:
		return 1
	case hasPre1 && !hasPre2:
		return -1
	case hasPre1 && hasPre2:
		return strings.Compare(v1Parts[1], v2Parts[1])
	}
	return 0
}
