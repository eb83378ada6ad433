package renderer

import (
	"fmt"
	"strconv"
	"strings"
)

// MinCompatibleVersion is the oldest renderer protocol version the host accepts.
const MinCompatibleVersion = "0.1.0"

// Version is a parsed MAJOR.MINOR.PATCH protocol version.
type Version struct {
	Major int
	Minor int
	Patch int
}

// ParseVersion parses a version string in "MAJOR.MINOR.PATCH" format.
func ParseVersion(version string) (Version, error) {
	parts := strings.Split(version, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("invalid version format: %s (expected MAJOR.MINOR.PATCH)", version)
	}

	var nums [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("invalid version component %q in %s", part, version)
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// String returns the string representation of the version.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// less reports whether v precedes other.
func (v Version) less(other Version) bool {
	if v.Major != other.Major {
		return v.Major < other.Major
	}
	if v.Minor != other.Minor {
		return v.Minor < other.Minor
	}
	return v.Patch < other.Patch
}

// CheckCompatible returns an error unless a plugin's protocol version can talk to this host.
// The major version must match and the version must not be older than MinCompatibleVersion.
// Newer minor and patch versions are accepted.
func CheckCompatible(pluginVersion string) error {
	plugin, err := ParseVersion(pluginVersion)
	if err != nil {
		return fmt.Errorf("failed to parse plugin protocol version: %w", err)
	}
	current, _ := ParseVersion(ProtocolVersion)
	minimum, _ := ParseVersion(MinCompatibleVersion)

	if plugin.Major != current.Major {
		return fmt.Errorf("incompatible major version: plugin is %s, threadmatch requires %d.x.x", plugin, current.Major)
	}
	if plugin.less(minimum) {
		return fmt.Errorf("plugin protocol version %s is too old, minimum required is %s", plugin, MinCompatibleVersion)
	}
	return nil
}
