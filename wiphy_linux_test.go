//go:build linux
// +build linux

package wifi

import (
	"bytes"
	"net"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mdlayher/genetlink"
	"github.com/mdlayher/genetlink/genltest"
	"github.com/mdlayher/netlink"
	"github.com/mdlayher/netlink/nlenc"
	"golang.org/x/sys/unix"
)

func TestLinux_clientPHYsOKMergesSplitDump(t *testing.T) {
	// A split wiphy dump spreads one device over several messages. The
	// first two messages describe phy 0, the third a second device.
	msgs := wiphyMessages(
		[]netlink.Attribute{
			{Type: unix.NL80211_ATTR_WIPHY, Data: nlenc.Uint32Bytes(0)},
			{Type: unix.NL80211_ATTR_WIPHY_NAME, Data: nlenc.Bytes("phy0\x00")},
			{Type: unix.NL80211_ATTR_GENERATION, Data: nlenc.Uint32Bytes(1)},
			{Type: unix.NL80211_ATTR_MAC, Data: []byte{0xde, 0xad, 0xbe, 0xef, 0xde, 0xad}},
			{Type: unix.NL80211_ATTR_WIPHY_BANDS, Data: mustMarshalAttributes([]netlink.Attribute{
				wiphyBand(unix.NL80211_BAND_2GHZ,
					wiphyFreqs(
						[]netlink.Attribute{
							{Type: unix.NL80211_FREQUENCY_ATTR_FREQ, Data: nlenc.Uint32Bytes(2412)},
							{Type: unix.NL80211_FREQUENCY_ATTR_MAX_TX_POWER, Data: nlenc.Uint32Bytes(2000)},
						},
						[]netlink.Attribute{
							{Type: unix.NL80211_FREQUENCY_ATTR_FREQ, Data: nlenc.Uint32Bytes(2467)},
							{Type: unix.NL80211_FREQUENCY_ATTR_NO_IR},
						},
					),
					wiphyRates(
						[]netlink.Attribute{
							{Type: unix.NL80211_BITRATE_ATTR_RATE, Data: nlenc.Uint32Bytes(10)},
							{Type: unix.NL80211_BITRATE_ATTR_2GHZ_SHORTPREAMBLE},
						},
						[]netlink.Attribute{
							{Type: unix.NL80211_BITRATE_ATTR_RATE, Data: nlenc.Uint32Bytes(540)},
						},
					),
				),
			})},
		},
		[]netlink.Attribute{
			{Type: unix.NL80211_ATTR_WIPHY, Data: nlenc.Uint32Bytes(0)},
			{Type: unix.NL80211_ATTR_WIPHY_NAME, Data: nlenc.Bytes("phy0\x00")},
			{Type: unix.NL80211_ATTR_GENERATION, Data: nlenc.Uint32Bytes(1)},
			{Type: unix.NL80211_ATTR_WIPHY_SELF_MANAGED_REG},
			{Type: unix.NL80211_ATTR_WIPHY_BANDS, Data: mustMarshalAttributes([]netlink.Attribute{
				wiphyBand(unix.NL80211_BAND_2GHZ,
					wiphyFreqs(
						[]netlink.Attribute{
							{Type: unix.NL80211_FREQUENCY_ATTR_FREQ, Data: nlenc.Uint32Bytes(2484)},
							{Type: unix.NL80211_FREQUENCY_ATTR_DISABLED},
						},
					),
				),
				wiphyBand(unix.NL80211_BAND_5GHZ,
					wiphyFreqs(
						[]netlink.Attribute{
							{Type: unix.NL80211_FREQUENCY_ATTR_FREQ, Data: nlenc.Uint32Bytes(5180)},
							{Type: unix.NL80211_FREQUENCY_ATTR_MAX_TX_POWER, Data: nlenc.Uint32Bytes(2300)},
						},
						[]netlink.Attribute{
							{Type: unix.NL80211_FREQUENCY_ATTR_FREQ, Data: nlenc.Uint32Bytes(5260)},
							{Type: unix.NL80211_FREQUENCY_ATTR_RADAR},
							{Type: unix.NL80211_FREQUENCY_ATTR_NO_IR},
						},
					),
					wiphyRates(
						[]netlink.Attribute{
							{Type: unix.NL80211_BITRATE_ATTR_RATE, Data: nlenc.Uint32Bytes(60)},
						},
					),
				),
			})},
		},
		[]netlink.Attribute{
			{Type: unix.NL80211_ATTR_WIPHY, Data: nlenc.Uint32Bytes(1)},
			{Type: unix.NL80211_ATTR_WIPHY_NAME, Data: nlenc.Bytes("phy1\x00")},
			{Type: unix.NL80211_ATTR_GENERATION, Data: nlenc.Uint32Bytes(1)},
		},
	)

	want := []*PHY{
		{
			Index:        0,
			Name:         "phy0",
			HardwareAddr: net.HardwareAddr{0xde, 0xad, 0xbe, 0xef, 0xde, 0xad},
			Band2GHz: &BandAttributes{
				FrequencyAttributes: []FrequencyAttrs{
					{Frequency: 2412, MaxTxPower: 2000},
					{Frequency: 2467, NoIR: true},
					{Frequency: 2484, Disabled: true},
				},
				BitrateAttributes: []BitrateAttrs{
					{Bitrate: 10, ShortPreamble: true},
					{Bitrate: 540},
				},
			},
			Band5GHz: &BandAttributes{
				FrequencyAttributes: []FrequencyAttrs{
					{Frequency: 5180, MaxTxPower: 2300},
					{Frequency: 5260, NoIR: true, RadarDetection: true},
				},
				BitrateAttributes: []BitrateAttrs{
					{Bitrate: 60},
				},
			},
			SelfManagedRegulatory: true,
			Generation:            1,
		},
		{
			Index:      1,
			Name:       "phy1",
			Generation: 1,
		},
	}

	const flags = netlink.Request | netlink.Dump

	wantData := mustMarshalAttributes([]netlink.Attribute{{
		Type: unix.NL80211_ATTR_SPLIT_WIPHY_DUMP,
	}})

	c := testClient(t, genltest.CheckRequest(familyID, unix.NL80211_CMD_GET_WIPHY, flags,
		func(greq genetlink.Message, _ netlink.Message) ([]genetlink.Message, error) {
			if !bytes.Equal(wantData, greq.Data) {
				t.Fatalf("unexpected request payload:\n- want: %#v\n-  got: %#v",
					wantData, greq.Data)
			}

			return msgs, nil
		},
	))

	got, err := c.PHYs()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected PHYs (-want +got):\n%s", diff)
	}
}

func TestLinux_clientPHYOK(t *testing.T) {
	// An old kernel may ignore the index filter and dump every device;
	// the match must still be picked out of the noise.
	msgs := wiphyMessages(
		[]netlink.Attribute{
			{Type: unix.NL80211_ATTR_WIPHY, Data: nlenc.Uint32Bytes(0)},
			{Type: unix.NL80211_ATTR_WIPHY_NAME, Data: nlenc.Bytes("phy0\x00")},
		},
		[]netlink.Attribute{
			{Type: unix.NL80211_ATTR_WIPHY, Data: nlenc.Uint32Bytes(1)},
			{Type: unix.NL80211_ATTR_WIPHY_NAME, Data: nlenc.Bytes("phy1\x00")},
		},
	)

	const flags = netlink.Request | netlink.Dump

	wantData := mustMarshalAttributes([]netlink.Attribute{
		{Type: unix.NL80211_ATTR_SPLIT_WIPHY_DUMP},
		{Type: unix.NL80211_ATTR_WIPHY, Data: nlenc.Uint32Bytes(1)},
	})

	c := testClient(t, genltest.CheckRequest(familyID, unix.NL80211_CMD_GET_WIPHY, flags,
		func(greq genetlink.Message, _ netlink.Message) ([]genetlink.Message, error) {
			if !bytes.Equal(wantData, greq.Data) {
				t.Fatalf("unexpected request payload:\n- want: %#v\n-  got: %#v",
					wantData, greq.Data)
			}

			return msgs, nil
		},
	))

	got, err := c.PHY(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := &PHY{
		Index: 1,
		Name:  "phy1",
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected PHY (-want +got):\n%s", diff)
	}
}

func TestLinux_clientPHYNotFoundIsNotExist(t *testing.T) {
	msgs := wiphyMessages(
		[]netlink.Attribute{
			{Type: unix.NL80211_ATTR_WIPHY, Data: nlenc.Uint32Bytes(0)},
			{Type: unix.NL80211_ATTR_WIPHY_NAME, Data: nlenc.Bytes("phy0\x00")},
		},
		[]netlink.Attribute{
			{Type: unix.NL80211_ATTR_WIPHY, Data: nlenc.Uint32Bytes(1)},
			{Type: unix.NL80211_ATTR_WIPHY_NAME, Data: nlenc.Bytes("phy1\x00")},
		},
	)

	c := testClient(t, func(_ genetlink.Message, _ netlink.Message) ([]genetlink.Message, error) {
		return msgs, nil
	})

	_, err := c.PHY(5)
	if !os.IsNotExist(err) {
		t.Fatalf("expected is not exist, but got: %v", err)
	}
}

func Test_parsePHYLegacyAndUnknownAttributes(t *testing.T) {
	b := mustMarshalAttributes([]netlink.Attribute{
		{Type: unix.NL80211_ATTR_WIPHY, Data: nlenc.Uint32Bytes(2)},
		{Type: unix.NL80211_ATTR_WIPHY_NAME, Data: nlenc.Bytes("phy2\x00")},
		// Cipher suites are not modeled and must be passed over.
		{Type: unix.NL80211_ATTR_CIPHER_SUITES, Data: nlenc.Uint32Bytes(0x000fac04)},
		{Type: unix.NL80211_ATTR_WIPHY_BANDS, Data: mustMarshalAttributes([]netlink.Attribute{
			// The 60 GHz band is not modeled and must be skipped whole.
			wiphyBand(unix.NL80211_BAND_60GHZ,
				wiphyFreqs(
					[]netlink.Attribute{
						{Type: unix.NL80211_FREQUENCY_ATTR_FREQ, Data: nlenc.Uint32Bytes(58320)},
					},
				),
			),
			wiphyBand(unix.NL80211_BAND_2GHZ,
				wiphyFreqs(
					[]netlink.Attribute{
						{Type: unix.NL80211_FREQUENCY_ATTR_FREQ, Data: nlenc.Uint32Bytes(2412)},
						// no-IBSS is the compat alias for no-IR.
						{Type: unix.NL80211_FREQUENCY_ATTR_NO_IBSS},
					},
				),
			),
		})},
	})

	phy, err := parsePHY(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := &PHY{
		Index: 2,
		Name:  "phy2",
		Band2GHz: &BandAttributes{
			FrequencyAttributes: []FrequencyAttrs{
				{Frequency: 2412, NoIR: true},
			},
		},
	}

	if diff := cmp.Diff(want, phy); diff != "" {
		t.Fatalf("unexpected PHY (-want +got):\n%s", diff)
	}
}

// wiphyMessages wraps per-device attribute payloads in the messages of a
// split wiphy dump.
func wiphyMessages(attrs ...[]netlink.Attribute) []genetlink.Message {
	msgs := make([]genetlink.Message, 0, len(attrs))
	for _, a := range attrs {
		msgs = append(msgs, genetlink.Message{
			Header: genetlink.Header{
				Command: unix.NL80211_CMD_NEW_WIPHY,
			},
			Data: mustMarshalAttributes(a),
		})
	}

	return msgs
}

// wiphyBand packs band attributes into one entry of a wiphy bands array.
// Entries are typed by band identifier.
func wiphyBand(band uint16, attrs ...netlink.Attribute) netlink.Attribute {
	return netlink.Attribute{
		Type: band,
		Data: mustMarshalAttributes(attrs),
	}
}

// wiphyFreqs packs per-frequency attribute sets into a band's frequency
// array. Array entries are typed by index, mirroring the kernel layout.
func wiphyFreqs(freqs ...[]netlink.Attribute) netlink.Attribute {
	var entries []netlink.Attribute
	for i, f := range freqs {
		entries = append(entries, netlink.Attribute{
			Type: uint16(i),
			Data: mustMarshalAttributes(f),
		})
	}

	return netlink.Attribute{
		Type: unix.NL80211_BAND_ATTR_FREQS,
		Data: mustMarshalAttributes(entries),
	}
}

// wiphyRates packs per-bitrate attribute sets into a band's bitrate array.
func wiphyRates(rates ...[]netlink.Attribute) netlink.Attribute {
	var entries []netlink.Attribute
	for i, r := range rates {
		entries = append(entries, netlink.Attribute{
			Type: uint16(i),
			Data: mustMarshalAttributes(r),
		})
	}

	return netlink.Attribute{
		Type: unix.NL80211_BAND_ATTR_RATES,
		Data: mustMarshalAttributes(entries),
	}
}
