//go:build linux
// +build linux

package wifi

import (
	"fmt"
	"time"

	"github.com/mdlayher/genetlink"
	"github.com/mdlayher/netlink"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/radiotail/wifi/internal/nl80211"
)

// parseRegulatoryDomains parses one RegulatoryDomain per GET_REG reply
// message: the global domain, plus one per wiphy which manages its own
// regulatory state.
func parseRegulatoryDomains(msgs []genetlink.Message) ([]*RegulatoryDomain, error) {
	domains := make([]*RegulatoryDomain, 0, len(msgs))
	for i := range msgs {
		dom, err := parseRegulatoryDomain(msgs[i].Data)
		if err != nil {
			return nil, err
		}

		domains = append(domains, dom)
	}

	return domains, nil
}

// parseRegulatoryDomain decodes a single RegulatoryDomain from the
// attribute payload of one GET_REG reply message.
func parseRegulatoryDomain(b []byte) (*RegulatoryDomain, error) {
	ad, err := netlink.NewAttributeDecoder(b)
	if err != nil {
		return nil, err
	}

	// The global domain carries no wiphy index attribute.
	dom := &RegulatoryDomain{PHY: PHYAny}
	for ad.Next() {
		switch ad.Type() {
		case unix.NL80211_ATTR_REG_ALPHA2:
			dom.CountryCode = ad.String()
		case unix.NL80211_ATTR_DFS_REGION:
			dom.DFSRegion = dfsRegion(ad.Uint8())
		case unix.NL80211_ATTR_WIPHY:
			dom.PHY = int(ad.Uint32())
		case unix.NL80211_ATTR_WIPHY_SELF_MANAGED_REG:
			dom.SelfManaged = true
		case unix.NL80211_ATTR_REG_RULES:
			ad.Nested(func(nad *netlink.AttributeDecoder) error {
				for nad.Next() {
					var rule RegulatoryRule
					nad.Nested(func(rad *netlink.AttributeDecoder) error {
						rule.parseAttributes(rad)
						return nil
					})
					dom.Rules = append(dom.Rules, rule)
				}
				return nil
			})
		default:
			logrus.Debugf("unhandled regulatory domain attribute: %d", ad.Type())
		}
	}
	if err := ad.Err(); err != nil {
		return nil, fmt.Errorf("invalid regulatory domain attributes: %w", err)
	}

	return dom, nil
}

// parseAttributes decodes one regulatory rule.
//
// The nested attribute identifiers live in the nl80211_reg_rule_attr
// enum, despite their NL80211_ATTR_ prefix.
func (rule *RegulatoryRule) parseAttributes(ad *netlink.AttributeDecoder) {
	for ad.Next() {
		switch ad.Type() {
		case unix.NL80211_ATTR_REG_RULE_FLAGS:
			rule.applyFlags(ad.Uint32())
		case unix.NL80211_ATTR_FREQ_RANGE_START:
			rule.FrequencyRangeStart = int(ad.Uint32())
		case unix.NL80211_ATTR_FREQ_RANGE_END:
			rule.FrequencyRangeEnd = int(ad.Uint32())
		case unix.NL80211_ATTR_FREQ_RANGE_MAX_BW:
			rule.MaxBandwidth = int(ad.Uint32())
		case unix.NL80211_ATTR_POWER_RULE_MAX_ANT_GAIN:
			rule.MaxAntennaGain = int(ad.Uint32())
		case unix.NL80211_ATTR_POWER_RULE_MAX_EIRP:
			rule.MaxEIRP = int(ad.Uint32())
		case unix.NL80211_ATTR_DFS_CAC_TIME:
			rule.DFSCACTime = time.Duration(ad.Uint32()) * time.Millisecond
		default:
			logrus.Debugf("unhandled regulatory rule attribute: %d", ad.Type())
		}
	}
}

// applyFlags expands the rule flags bitmask into the rule's boolean
// fields.
func (rule *RegulatoryRule) applyFlags(flags uint32) {
	rule.NoOFDM = flags&unix.NL80211_RRF_NO_OFDM != 0
	rule.NoCCK = flags&unix.NL80211_RRF_NO_CCK != 0
	rule.NoIndoor = flags&unix.NL80211_RRF_NO_INDOOR != 0
	rule.NoOutdoor = flags&unix.NL80211_RRF_NO_OUTDOOR != 0
	rule.DFS = flags&unix.NL80211_RRF_DFS != 0
	rule.PTPOnly = flags&unix.NL80211_RRF_PTP_ONLY != 0
	rule.PTMPOnly = flags&unix.NL80211_RRF_PTMP_ONLY != 0
	rule.NoIR = flags&unix.NL80211_RRF_NO_IR != 0
	rule.IRConcurrent = flags&unix.NL80211_RRF_IR_CONCURRENT != 0
	rule.AutoBandwidth = flags&unix.NL80211_RRF_AUTO_BW != 0
	rule.NoHT40Minus = flags&unix.NL80211_RRF_NO_HT40MINUS != 0
	rule.NoHT40Plus = flags&unix.NL80211_RRF_NO_HT40PLUS != 0
	rule.No80MHz = flags&unix.NL80211_RRF_NO_80MHZ != 0
	rule.No160MHz = flags&unix.NL80211_RRF_NO_160MHZ != 0
	rule.No320MHz = flags&nl80211.RRFNo320MHz != 0
	rule.NoHE = flags&unix.NL80211_RRF_NO_HE != 0
	rule.NoEHT = flags&nl80211.RRFNoEHT != 0
}

// dfsRegion maps the kernel's DFS region byte, treating values this
// package does not know as unset.
func dfsRegion(v uint8) DFSRegion {
	switch v {
	case unix.NL80211_DFS_UNSET:
		return DFSRegionUnset
	case unix.NL80211_DFS_FCC:
		return DFSRegionFCC
	case unix.NL80211_DFS_ETSI:
		return DFSRegionETSI
	case unix.NL80211_DFS_JP:
		return DFSRegionJP
	default:
		logrus.Debugf("unhandled DFS region value: %d", v)
		return DFSRegionUnset
	}
}
