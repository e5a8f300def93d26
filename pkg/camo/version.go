package camo

// Version is a camo protocol version. Versions 1 through 8 can be
// signaled inside an address; only version 1 is currently implemented.
type Version uint8

const (
	Version1 Version = 1
	Version2 Version = 2
	Version3 Version = 3
	Version4 Version = 4
	Version5 Version = 5
	Version6 Version = 6
	Version7 Version = 7
	Version8 Version = 8
)

// HighestKnownVersion is the newest protocol version this software
// implements.
const HighestKnownVersion = Version1

var allPossibleVersions = []Version{
	Version1, Version2, Version3, Version4,
	Version5, Version6, Version7, Version8,
}

var allSupportedVersions = []Version{Version1}

// ParseVersion validates a raw version number.
func ParseVersion(v uint8) (Version, error) {
	if v < 1 || v > 8 {
		return 0, ErrIncompatibleVersions
	}
	return Version(v), nil
}

func isPossibleVersion(v Version) bool {
	return v >= 1 && v <= 8
}

func isSupportedVersion(v Version) bool {
	for _, s := range allSupportedVersions {
		if v == s {
			return true
		}
	}
	return false
}

// Versions is the set of camo protocol versions signaled by an address,
// packed into one byte in every address and key blob: bit i set means
// version i+1 enabled.
//
// A version being signaled by a remote address is distinct from it
// being supported: supported additionally requires this software to
// implement it. The two differ once newer versions are defined but not
// yet implemented here.
type Versions struct {
	enabled [8]bool
}

// EmptyVersions returns a set with no versions enabled.
func EmptyVersions() Versions { return Versions{} }

// NewVersions returns a set with the given versions enabled, silently
// ignoring versions this software does not support.
func NewVersions(versions ...Version) Versions {
	var v Versions
	for _, ver := range versions {
		v.Enable(ver)
	}
	return v
}

// NewSignalingVersions returns a set with the given versions enabled,
// including versions this software does not support.
func NewSignalingVersions(versions ...Version) Versions {
	var v Versions
	for _, ver := range versions {
		v.ForceEnable(ver)
	}
	return v
}

// Enable enables a version if this software supports it, reporting
// whether it was enabled.
func (v *Versions) Enable(version Version) bool {
	if !isSupportedVersion(version) {
		return false
	}
	v.ForceEnable(version)
	return true
}

// ForceEnable enables a version regardless of software support.
func (v *Versions) ForceEnable(version Version) {
	v.enabled[version-1] = true
}

// Disable disables a version.
func (v *Versions) Disable(version Version) {
	v.enabled[version-1] = false
}

// Signals reports whether the address claims the given version,
// regardless of whether this software implements it.
func (v Versions) Signals(version Version) bool {
	if !isPossibleVersion(version) {
		return false
	}
	return v.enabled[version-1]
}

// Supports reports whether the address claims the given version and
// this software implements it.
func (v Versions) Supports(version Version) bool {
	if !isSupportedVersion(version) {
		return false
	}
	return v.Signals(version)
}

// HighestSignaled returns the highest version the address claims.
func (v Versions) HighestSignaled() (Version, bool) {
	for i := len(allPossibleVersions) - 1; i >= 0; i-- {
		if v.Signals(allPossibleVersions[i]) {
			return allPossibleVersions[i], true
		}
	}
	return 0, false
}

// HighestSupported returns the highest version both claimed by the
// address and implemented by this software. It is the single source of
// truth for which versioned sub-protocol to instantiate.
func (v Versions) HighestSupported() (Version, bool) {
	for i := len(allPossibleVersions) - 1; i >= 0; i-- {
		if v.Supports(allPossibleVersions[i]) {
			return allPossibleVersions[i], true
		}
	}
	return 0, false
}

// AllSignaled returns all versions the address claims, ascending.
func (v Versions) AllSignaled() []Version {
	var out []Version
	for _, ver := range allPossibleVersions {
		if v.Signals(ver) {
			out = append(out, ver)
		}
	}
	return out
}

// AllSupported returns all versions both claimed and implemented, ascending.
func (v Versions) AllSupported() []Version {
	var out []Version
	for _, ver := range allPossibleVersions {
		if v.Supports(ver) {
			out = append(out, ver)
		}
	}
	return out
}

// EncodeToBits packs the set into one byte.
func (v Versions) EncodeToBits() uint8 {
	var bits uint8
	for i, enabled := range v.enabled {
		if enabled {
			bits |= 1 << i
		}
	}
	return bits
}

// DecodeFromBits unpacks a set from one byte.
func DecodeFromBits(bits uint8) Versions {
	var v Versions
	for i := range v.enabled {
		if bits&(1<<i) != 0 {
			v.enabled[i] = true
		}
	}
	return v
}
