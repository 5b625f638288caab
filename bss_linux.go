//go:build linux
// +build linux

package wifi

import (
	"os"
	"time"

	"github.com/mdlayher/genetlink"
	"github.com/mdlayher/netlink"
	"golang.org/x/sys/unix"
)

// parseBSS parses a single BSS with a status attribute from nl80211 BSS
// messages.
func parseBSS(msgs []genetlink.Message) (*BSS, error) {
	for i := range msgs {
		ad, err := netlink.NewAttributeDecoder(msgs[i].Data)
		if err != nil {
			return nil, err
		}

		var result *BSS
		for ad.Next() {
			if ad.Type() != unix.NL80211_ATTR_BSS {
				continue
			}

			var (
				bss       BSS
				hasStatus bool
			)
			ad.Nested(func(nad *netlink.AttributeDecoder) error {
				hasStatus = bss.parseAttributes(nad)
				return nil
			})

			// Only the BSS which is associated with the interface carries
			// a status attribute, so filter out any others.
			if hasStatus && result == nil {
				result = &bss
			}
		}
		if err := ad.Err(); err != nil {
			return nil, err
		}

		if result != nil {
			return result, nil
		}
	}

	return nil, os.ErrNotExist
}

// parseGetScanResult parses all the BSS from nl80211 CMD_GET_SCAN response
// messages.
func parseGetScanResult(msgs []genetlink.Message) ([]*BSS, error) {
	bsss := make([]*BSS, 0, len(msgs))
	for i := range msgs {
		ad, err := netlink.NewAttributeDecoder(msgs[i].Data)
		if err != nil {
			return nil, err
		}

		var bss BSS
		for ad.Next() {
			if ad.Type() != unix.NL80211_ATTR_BSS {
				continue
			}

			ad.Nested(func(nad *netlink.AttributeDecoder) error {
				if !bss.parseAttributes(nad) {
					bss.Status = BSSStatusNotAssociated
				}
				return nil
			})
		}
		if err := ad.Err(); err != nil {
			return nil, err
		}

		bsss = append(bsss, &bss)
	}

	return bsss, nil
}

// parseAttributes decodes a nested BSS attribute payload into b,
// reporting whether the payload carried a status attribute.
func (b *BSS) parseAttributes(ad *netlink.AttributeDecoder) bool {
	var hasStatus bool
	for ad.Next() {
		switch ad.Type() {
		case unix.NL80211_BSS_BSSID:
			ad.Do(decodeMAC(&b.BSSID))
		case unix.NL80211_BSS_FREQUENCY:
			b.Frequency = int(ad.Uint32())
		case unix.NL80211_BSS_BEACON_INTERVAL:
			// Raw value is in "Time Units (TU)".  See:
			// https://en.wikipedia.org/wiki/Beacon_frame
			b.BeaconInterval = time.Duration(ad.Uint16()) * 1024 * time.Microsecond
		case unix.NL80211_BSS_SEEN_MS_AGO:
			b.LastSeen = time.Duration(ad.Uint32()) * time.Millisecond
		case unix.NL80211_BSS_STATUS:
			// NOTE: BSSStatus copies the ordering of nl80211's BSS status
			// constants.  This may not be the case on other operating systems.
			b.Status = BSSStatus(ad.Uint32())
			hasStatus = true
		case unix.NL80211_BSS_INFORMATION_ELEMENTS:
			ad.Do(b.parseInformationElements)
		}
	}

	return hasStatus
}

// parseInformationElements extracts the information elements this
// package models from a BSS's raw element blob.
func (b *BSS) parseInformationElements(buf []byte) error {
	ies, err := parseIEs(buf)
	if err != nil {
		return err
	}

	for _, ie := range ies {
		switch ie.ID {
		case ieSSID:
			b.SSID = decodeSSID(ie.Data)
		case ieBSSLoad:
			load, err := decodeBSSLoad(ie.Data)
			if err != nil {
				// This IE is malformed
				continue
			}
			b.Load = *load
		case ieRSN:
			rsn, err := decodeRSN(ie.Data)
			if err != nil {
				// This IE is malformed
				continue
			}
			b.RSN = *rsn
		}
	}

	return nil
}
