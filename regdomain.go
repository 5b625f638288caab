package wifi

import (
	"fmt"
	"time"
)

// A DFSRegion identifies the radar detection rules a regulatory domain
// follows.
type DFSRegion int

// DFS regions, copying the ordering of nl80211's DFS region constants.
const (
	// DFSRegionUnset indicates that the domain carries no DFS region, or
	// that the kernel reported a value this package does not know.
	DFSRegionUnset DFSRegion = iota // NL80211_DFS_UNSET

	// DFSRegionFCC indicates the FCC (North America) radar rules.
	DFSRegionFCC

	// DFSRegionETSI indicates the ETSI (Europe) radar rules.
	DFSRegionETSI

	// DFSRegionJP indicates the Japanese radar rules.
	DFSRegionJP
)

// String returns the string representation of a DFSRegion.
func (r DFSRegion) String() string {
	switch r {
	case DFSRegionUnset:
		return "unset"
	case DFSRegionFCC:
		return "FCC"
	case DFSRegionETSI:
		return "ETSI"
	case DFSRegionJP:
		return "JP"
	default:
		return fmt.Sprintf("unknown(%d)", r)
	}
}

// PHYAny marks a RegulatoryDomain that is not bound to a single physical
// device: the global domain the kernel applies to every radio that does
// not manage its own.
const PHYAny = -1

// A RegulatoryDomain is a set of wireless transmission rules enforced for
// a country or for a self-managed physical device.
type RegulatoryDomain struct {
	// The ISO 3166-1 alpha-2 country code the rules belong to. The
	// special codes "00" (world), "99" (built-in), "98" (intersection)
	// and "97" (unset) are passed through as the kernel reports them.
	CountryCode string

	// The radar detection region of the domain.
	DFSRegion DFSRegion

	// The index of the physical device the domain applies to, or PHYAny
	// for the global domain.
	PHY int

	// Whether the domain is managed by the device firmware rather than
	// by the kernel's regulatory database.
	SelfManaged bool

	// The transmission rules of the domain.
	Rules []RegulatoryRule
}

// A RegulatoryRule permits transmission on a frequency range subject to
// power and capability limits.
type RegulatoryRule struct {
	// The start of the frequency range, in kHz.
	FrequencyRangeStart int

	// The end of the frequency range, in kHz.
	FrequencyRangeEnd int

	// The maximum allowed channel width, in kHz.
	MaxBandwidth int

	// The maximum allowed antenna gain, in mBi (100 * dBi).
	MaxAntennaGain int

	// The maximum allowed equivalent isotropically radiated power, in
	// mBm (100 * dBm).
	MaxEIRP int

	// The channel availability check time required before a DFS channel
	// may be used.
	DFSCACTime time.Duration

	// Capability flags decoded from the rule's flags bitmask.
	NoOFDM        bool
	NoCCK         bool
	NoIndoor      bool
	NoOutdoor     bool
	DFS           bool
	PTPOnly       bool
	PTMPOnly      bool
	NoIR          bool
	IRConcurrent  bool
	AutoBandwidth bool
	NoHT40Minus   bool
	NoHT40Plus    bool
	No80MHz       bool
	No160MHz      bool
	No320MHz      bool
	NoHE          bool
	NoEHT         bool
}
