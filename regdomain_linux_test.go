//go:build linux
// +build linux

package wifi

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/mdlayher/genetlink"
	"github.com/mdlayher/genetlink/genltest"
	"github.com/mdlayher/netlink"
	"github.com/mdlayher/netlink/nlenc"
	"golang.org/x/sys/unix"

	"github.com/radiotail/wifi/internal/nl80211"
)

func TestLinux_clientRegulatoryDomainsOK(t *testing.T) {
	// One message for the global domain and one for a device which
	// manages its own regulatory state.
	msgs := regDomainMessages(
		[]netlink.Attribute{
			{Type: unix.NL80211_ATTR_REG_ALPHA2, Data: nlenc.Bytes("DE\x00")},
			{Type: unix.NL80211_ATTR_DFS_REGION, Data: nlenc.Uint8Bytes(unix.NL80211_DFS_ETSI)},
			regRules(
				[]netlink.Attribute{
					{Type: unix.NL80211_ATTR_REG_RULE_FLAGS, Data: nlenc.Uint32Bytes(0)},
					{Type: unix.NL80211_ATTR_FREQ_RANGE_START, Data: nlenc.Uint32Bytes(2400000)},
					{Type: unix.NL80211_ATTR_FREQ_RANGE_END, Data: nlenc.Uint32Bytes(2483500)},
					{Type: unix.NL80211_ATTR_FREQ_RANGE_MAX_BW, Data: nlenc.Uint32Bytes(40000)},
					{Type: unix.NL80211_ATTR_POWER_RULE_MAX_ANT_GAIN, Data: nlenc.Uint32Bytes(0)},
					{Type: unix.NL80211_ATTR_POWER_RULE_MAX_EIRP, Data: nlenc.Uint32Bytes(2000)},
					{Type: unix.NL80211_ATTR_DFS_CAC_TIME, Data: nlenc.Uint32Bytes(0)},
				},
				[]netlink.Attribute{
					{Type: unix.NL80211_ATTR_REG_RULE_FLAGS, Data: nlenc.Uint32Bytes(
						unix.NL80211_RRF_NO_OUTDOOR | unix.NL80211_RRF_DFS | unix.NL80211_RRF_AUTO_BW,
					)},
					{Type: unix.NL80211_ATTR_FREQ_RANGE_START, Data: nlenc.Uint32Bytes(5250000)},
					{Type: unix.NL80211_ATTR_FREQ_RANGE_END, Data: nlenc.Uint32Bytes(5350000)},
					{Type: unix.NL80211_ATTR_FREQ_RANGE_MAX_BW, Data: nlenc.Uint32Bytes(80000)},
					{Type: unix.NL80211_ATTR_POWER_RULE_MAX_ANT_GAIN, Data: nlenc.Uint32Bytes(0)},
					{Type: unix.NL80211_ATTR_POWER_RULE_MAX_EIRP, Data: nlenc.Uint32Bytes(2000)},
					{Type: unix.NL80211_ATTR_DFS_CAC_TIME, Data: nlenc.Uint32Bytes(60000)},
				},
			),
		},
		[]netlink.Attribute{
			{Type: unix.NL80211_ATTR_REG_ALPHA2, Data: nlenc.Bytes("99\x00")},
			{Type: unix.NL80211_ATTR_WIPHY, Data: nlenc.Uint32Bytes(0)},
			{Type: unix.NL80211_ATTR_WIPHY_SELF_MANAGED_REG},
			regRules(
				[]netlink.Attribute{
					{Type: unix.NL80211_ATTR_REG_RULE_FLAGS, Data: nlenc.Uint32Bytes(unix.NL80211_RRF_NO_IR)},
					{Type: unix.NL80211_ATTR_FREQ_RANGE_START, Data: nlenc.Uint32Bytes(5925000)},
					{Type: unix.NL80211_ATTR_FREQ_RANGE_END, Data: nlenc.Uint32Bytes(7125000)},
					{Type: unix.NL80211_ATTR_FREQ_RANGE_MAX_BW, Data: nlenc.Uint32Bytes(160000)},
					{Type: unix.NL80211_ATTR_POWER_RULE_MAX_EIRP, Data: nlenc.Uint32Bytes(2300)},
				},
			),
		},
	)

	want := []*RegulatoryDomain{
		{
			CountryCode: "DE",
			DFSRegion:   DFSRegionETSI,
			PHY:         PHYAny,
			Rules: []RegulatoryRule{
				{
					FrequencyRangeStart: 2400000,
					FrequencyRangeEnd:   2483500,
					MaxBandwidth:        40000,
					MaxEIRP:             2000,
				},
				{
					FrequencyRangeStart: 5250000,
					FrequencyRangeEnd:   5350000,
					MaxBandwidth:        80000,
					MaxEIRP:             2000,
					DFSCACTime:          60 * time.Second,
					NoOutdoor:           true,
					DFS:                 true,
					AutoBandwidth:       true,
				},
			},
		},
		{
			CountryCode: "99",
			PHY:         0,
			SelfManaged: true,
			Rules: []RegulatoryRule{
				{
					FrequencyRangeStart: 5925000,
					FrequencyRangeEnd:   7125000,
					MaxBandwidth:        160000,
					MaxEIRP:             2300,
					NoIR:                true,
				},
			},
		},
	}

	const flags = netlink.Request | netlink.Dump

	c := testClient(t, genltest.CheckRequest(familyID, unix.NL80211_CMD_GET_REG, flags,
		func(greq genetlink.Message, _ netlink.Message) ([]genetlink.Message, error) {
			// The dump takes no attributes.
			if len(greq.Data) != 0 {
				t.Fatalf("unexpected request payload: %#v", greq.Data)
			}

			return msgs, nil
		},
	))

	got, err := c.RegulatoryDomains()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected regulatory domains (-want +got):\n%s", diff)
	}
}

func Test_parseRegulatoryDomainDefaults(t *testing.T) {
	b := mustMarshalAttributes([]netlink.Attribute{
		{Type: unix.NL80211_ATTR_REG_ALPHA2, Data: nlenc.Bytes("00\x00")},
		// A DFS region from a future kernel falls back to unset.
		{Type: unix.NL80211_ATTR_DFS_REGION, Data: nlenc.Uint8Bytes(0x77)},
		// Unmodeled attributes must be passed over.
		{Type: unix.NL80211_ATTR_GENERATION, Data: nlenc.Uint32Bytes(1)},
	})

	dom, err := parseRegulatoryDomain(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := &RegulatoryDomain{
		CountryCode: "00",
		DFSRegion:   DFSRegionUnset,
		PHY:         PHYAny,
	}

	if diff := cmp.Diff(want, dom); diff != "" {
		t.Fatalf("unexpected regulatory domain (-want +got):\n%s", diff)
	}
}

func Test_regulatoryRuleAllFlags(t *testing.T) {
	b := mustMarshalAttributes([]netlink.Attribute{
		regRules(
			[]netlink.Attribute{
				{Type: unix.NL80211_ATTR_REG_RULE_FLAGS, Data: nlenc.Uint32Bytes(
					unix.NL80211_RRF_NO_OFDM |
						unix.NL80211_RRF_NO_CCK |
						unix.NL80211_RRF_NO_INDOOR |
						unix.NL80211_RRF_NO_OUTDOOR |
						unix.NL80211_RRF_DFS |
						unix.NL80211_RRF_PTP_ONLY |
						unix.NL80211_RRF_PTMP_ONLY |
						unix.NL80211_RRF_NO_IR |
						unix.NL80211_RRF_IR_CONCURRENT |
						unix.NL80211_RRF_AUTO_BW |
						unix.NL80211_RRF_NO_HT40MINUS |
						unix.NL80211_RRF_NO_HT40PLUS |
						unix.NL80211_RRF_NO_80MHZ |
						unix.NL80211_RRF_NO_160MHZ |
						unix.NL80211_RRF_NO_HE |
						nl80211.RRFNo320MHz |
						nl80211.RRFNoEHT,
				)},
			},
		),
	})

	dom, err := parseRegulatoryDomain(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := RegulatoryRule{
		NoOFDM:        true,
		NoCCK:         true,
		NoIndoor:      true,
		NoOutdoor:     true,
		DFS:           true,
		PTPOnly:       true,
		PTMPOnly:      true,
		NoIR:          true,
		IRConcurrent:  true,
		AutoBandwidth: true,
		NoHT40Minus:   true,
		NoHT40Plus:    true,
		No80MHz:       true,
		No160MHz:      true,
		No320MHz:      true,
		NoHE:          true,
		NoEHT:         true,
	}

	if diff := cmp.Diff([]RegulatoryRule{want}, dom.Rules); diff != "" {
		t.Fatalf("unexpected regulatory rules (-want +got):\n%s", diff)
	}
}

// regDomainMessages wraps per-domain attribute payloads in GET_REG reply
// messages.
func regDomainMessages(attrs ...[]netlink.Attribute) []genetlink.Message {
	msgs := make([]genetlink.Message, 0, len(attrs))
	for _, a := range attrs {
		msgs = append(msgs, genetlink.Message{
			Header: genetlink.Header{
				Command: unix.NL80211_CMD_GET_REG,
			},
			Data: mustMarshalAttributes(a),
		})
	}

	return msgs
}

// regRules packs per-rule attribute sets into a regulatory rules array.
// Array entries are typed by index, mirroring the kernel layout.
func regRules(rules ...[]netlink.Attribute) netlink.Attribute {
	var entries []netlink.Attribute
	for i, r := range rules {
		entries = append(entries, netlink.Attribute{
			Type: uint16(i),
			Data: mustMarshalAttributes(r),
		})
	}

	return netlink.Attribute{
		Type: unix.NL80211_ATTR_REG_RULES,
		Data: mustMarshalAttributes(entries),
	}
}
