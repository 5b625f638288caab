//go:build linux
// +build linux

package wifi

import (
	"fmt"

	"github.com/mdlayher/genetlink"
	"github.com/mdlayher/netlink"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// parsePHYs parses zero or more PHYs from nl80211 wiphy messages. A
// split dump spreads one device over several messages, so pieces with
// the same device index are merged, preserving first-arrival order.
func parsePHYs(msgs []genetlink.Message) ([]*PHY, error) {
	var (
		phys    []*PHY
		byIndex = make(map[int]*PHY)
	)

	for i := range msgs {
		phy, err := parsePHY(msgs[i].Data)
		if err != nil {
			return nil, err
		}

		if existing, ok := byIndex[phy.Index]; ok {
			existing.merge(phy)
			continue
		}

		byIndex[phy.Index] = phy
		phys = append(phys, phy)
	}

	return phys, nil
}

// parsePHY decodes a single PHY from the attribute payload of one
// nl80211 wiphy message.
func parsePHY(b []byte) (*PHY, error) {
	ad, err := netlink.NewAttributeDecoder(b)
	if err != nil {
		return nil, err
	}

	var phy PHY
	for ad.Next() {
		switch ad.Type() {
		case unix.NL80211_ATTR_WIPHY:
			phy.Index = int(ad.Uint32())
		case unix.NL80211_ATTR_WIPHY_NAME:
			phy.Name = ad.String()
		case unix.NL80211_ATTR_GENERATION:
			phy.Generation = int(ad.Uint32())
		case unix.NL80211_ATTR_MAC:
			ad.Do(decodeMAC(&phy.HardwareAddr))
		case unix.NL80211_ATTR_WIPHY_SELF_MANAGED_REG:
			phy.SelfManagedRegulatory = true
		case unix.NL80211_ATTR_WIPHY_BANDS:
			ad.Nested(func(nad *netlink.AttributeDecoder) error {
				phy.parseBands(nad)
				return nil
			})
		default:
			logrus.Debugf("unhandled wiphy attribute: %d", ad.Type())
		}
	}
	if err := ad.Err(); err != nil {
		return nil, fmt.Errorf("invalid wiphy attributes: %w", err)
	}

	return &phy, nil
}

// parseBands decodes the per-band nested attributes, keyed by band
// identifier. Bands this package does not model (60 GHz, S1G, light
// communication) are skipped.
func (p *PHY) parseBands(ad *netlink.AttributeDecoder) {
	for ad.Next() {
		var dst **BandAttributes
		switch int(ad.Type()) {
		case unix.NL80211_BAND_2GHZ:
			dst = &p.Band2GHz
		case unix.NL80211_BAND_5GHZ:
			dst = &p.Band5GHz
		case unix.NL80211_BAND_6GHZ:
			dst = &p.Band6GHz
		default:
			logrus.Debugf("skipping unhandled wiphy band: %d", ad.Type())
			continue
		}

		if *dst == nil {
			*dst = &BandAttributes{}
		}
		band := *dst

		ad.Nested(func(nad *netlink.AttributeDecoder) error {
			band.parseAttributes(nad)
			return nil
		})
	}
}

// parseAttributes decodes one band's frequency and bitrate lists,
// appending to band so that the pieces of a split dump accumulate.
func (band *BandAttributes) parseAttributes(ad *netlink.AttributeDecoder) {
	for ad.Next() {
		switch ad.Type() {
		case unix.NL80211_BAND_ATTR_FREQS:
			ad.Nested(func(nad *netlink.AttributeDecoder) error {
				for nad.Next() {
					var freq FrequencyAttrs
					nad.Nested(func(fad *netlink.AttributeDecoder) error {
						freq.parseAttributes(fad)
						return nil
					})
					band.FrequencyAttributes = append(band.FrequencyAttributes, freq)
				}
				return nil
			})
		case unix.NL80211_BAND_ATTR_RATES:
			ad.Nested(func(nad *netlink.AttributeDecoder) error {
				for nad.Next() {
					var rate BitrateAttrs
					nad.Nested(func(rad *netlink.AttributeDecoder) error {
						rate.parseAttributes(rad)
						return nil
					})
					band.BitrateAttributes = append(band.BitrateAttributes, rate)
				}
				return nil
			})
		default:
			logrus.Debugf("unhandled wiphy band attribute: %d", ad.Type())
		}
	}
}

// parseAttributes decodes one channel's attributes.
func (freq *FrequencyAttrs) parseAttributes(ad *netlink.AttributeDecoder) {
	for ad.Next() {
		switch ad.Type() {
		case unix.NL80211_FREQUENCY_ATTR_FREQ:
			freq.Frequency = int(ad.Uint32())
		case unix.NL80211_FREQUENCY_ATTR_DISABLED:
			freq.Disabled = true
		case unix.NL80211_FREQUENCY_ATTR_NO_IR:
			// The legacy no-IBSS and passive-scan flags are aliases for
			// this attribute.
			freq.NoIR = true
		case unix.NL80211_FREQUENCY_ATTR_RADAR:
			freq.RadarDetection = true
		case unix.NL80211_FREQUENCY_ATTR_MAX_TX_POWER:
			// mBm (100 * dBm).
			freq.MaxTxPower = float32(ad.Uint32())
		}
	}
}

// parseAttributes decodes one legacy bitrate's attributes.
func (rate *BitrateAttrs) parseAttributes(ad *netlink.AttributeDecoder) {
	for ad.Next() {
		switch ad.Type() {
		case unix.NL80211_BITRATE_ATTR_RATE:
			// Units of 100 kbps.
			rate.Bitrate = float32(ad.Uint32())
		case unix.NL80211_BITRATE_ATTR_2GHZ_SHORTPREAMBLE:
			rate.ShortPreamble = true
		}
	}
}
