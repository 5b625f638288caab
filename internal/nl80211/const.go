// Package nl80211 provides nl80211 UAPI constants which are not yet
// available in golang.org/x/sys/unix.
package nl80211

// WARNING: THIS FILE IS MANUALLY CREATED. The values mirror
// include/uapi/linux/nl80211.h and must be kept in sync with it until
// golang.org/x/sys/unix catches up.

const (
	// ChanWidth320 is the nl80211_chan_width value for a 320 MHz
	// channel (NL80211_CHAN_WIDTH_320).
	ChanWidth320 = 13
)

// Regulatory rule flags (enum nl80211_reg_rule_flags).
const (
	// RRFNo320MHz forbids 320 MHz operation (NL80211_RRF_NO_320MHZ).
	RRFNo320MHz = 1 << 18

	// RRFNoEHT forbids EHT operation (NL80211_RRF_NO_EHT).
	RRFNoEHT = 1 << 19
)
