//go:build linux
// +build linux

package wifi

import (
	"fmt"
	"os"
	"time"

	"github.com/mdlayher/netlink"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// parseStationInfo parses a single StationInfo from the attribute
// payload of one nl80211 station message. A message without the nested
// station info attribute yields an error compatible with os.ErrNotExist.
func parseStationInfo(b []byte) (*StationInfo, error) {
	ad, err := netlink.NewAttributeDecoder(b)
	if err != nil {
		return nil, err
	}

	var (
		info  StationInfo
		found bool
	)
	for ad.Next() {
		switch ad.Type() {
		case unix.NL80211_ATTR_IFINDEX:
			info.InterfaceIndex = int(ad.Uint32())
		case unix.NL80211_ATTR_MAC:
			ad.Do(decodeMAC(&info.HardwareAddr))
		case unix.NL80211_ATTR_GENERATION:
			info.Generation = int(ad.Uint32())
		case unix.NL80211_ATTR_STA_INFO:
			found = true
			ad.Nested(func(nad *netlink.AttributeDecoder) error {
				info.parseAttributes(nad)
				return nil
			})
		}
	}
	if err := ad.Err(); err != nil {
		return nil, fmt.Errorf("invalid station info attributes: %w", err)
	}

	if !found {
		// No station info found
		return nil, os.ErrNotExist
	}

	return &info, nil
}

// parseAttributes decodes the nested station info payload into info.
func (info *StationInfo) parseAttributes(ad *netlink.AttributeDecoder) {
	for ad.Next() {
		switch ad.Type() {
		case unix.NL80211_STA_INFO_CONNECTED_TIME:
			// Though nl80211 does not specify, this value appears to be in
			// seconds.
			info.Connected = time.Duration(ad.Uint32()) * time.Second
		case unix.NL80211_STA_INFO_INACTIVE_TIME:
			// * @NL80211_STA_INFO_INACTIVE_TIME: time since last activity (u32, msecs)
			info.Inactive = time.Duration(ad.Uint32()) * time.Millisecond
		case unix.NL80211_STA_INFO_ASSOC_AT_BOOTTIME:
			// Nanoseconds on the CLOCK_BOOTTIME clock, not the wall clock.
			info.AssociatedAtBootTime = time.Duration(ad.Uint64())
		case unix.NL80211_STA_INFO_RX_BYTES:
			info.ReceivedBytes = int(ad.Uint32())
		case unix.NL80211_STA_INFO_TX_BYTES:
			info.TransmittedBytes = int(ad.Uint32())
		case unix.NL80211_STA_INFO_RX_BYTES64:
			info.ReceivedBytes64 = int(ad.Uint64())
		case unix.NL80211_STA_INFO_TX_BYTES64:
			info.TransmittedBytes64 = int(ad.Uint64())
		case unix.NL80211_STA_INFO_RX_DURATION:
			// * @NL80211_STA_INFO_RX_DURATION: aggregate PPDU duration for all frames
			// *	received from the station (u64, usec)
			info.ReceiveDuration = time.Duration(ad.Uint64()) * time.Microsecond
		case unix.NL80211_STA_INFO_TX_DURATION:
			info.TransmitDuration = time.Duration(ad.Uint64()) * time.Microsecond
		case unix.NL80211_STA_INFO_RX_PACKETS:
			info.ReceivedPackets = int(ad.Uint32())
		case unix.NL80211_STA_INFO_TX_PACKETS:
			info.TransmittedPackets = int(ad.Uint32())
		case unix.NL80211_STA_INFO_TX_RETRIES:
			info.TransmitRetries = int(ad.Uint32())
		case unix.NL80211_STA_INFO_TX_FAILED:
			info.TransmitFailed = int(ad.Uint32())
		case unix.NL80211_STA_INFO_BEACON_LOSS:
			info.BeaconLoss = int(ad.Uint32())
		case unix.NL80211_STA_INFO_BEACON_RX:
			info.BeaconReceived = int(ad.Uint64())
		case unix.NL80211_STA_INFO_RX_DROP_MISC:
			info.ReceiveDropMisc = int(ad.Uint64())
		case unix.NL80211_STA_INFO_SIGNAL:
			ad.Do(decodeSignal(&info.Signal))
		case unix.NL80211_STA_INFO_SIGNAL_AVG:
			ad.Do(decodeSignal(&info.SignalAverage))
		case unix.NL80211_STA_INFO_BEACON_SIGNAL_AVG:
			ad.Do(decodeSignal(&info.BeaconSignalAverage))
		case unix.NL80211_STA_INFO_CHAIN_SIGNAL:
			ad.Nested(func(nad *netlink.AttributeDecoder) error {
				for nad.Next() {
					var sig int
					nad.Do(decodeSignal(&sig))
					info.ChainSignal = append(info.ChainSignal, sig)
				}
				return nil
			})
		case unix.NL80211_STA_INFO_RX_BITRATE:
			ad.Nested(func(nad *netlink.AttributeDecoder) error {
				info.ReceiveBitrate = parseRateInfo(nad)
				return nil
			})
		case unix.NL80211_STA_INFO_TX_BITRATE:
			ad.Nested(func(nad *netlink.AttributeDecoder) error {
				info.TransmitBitrate = parseRateInfo(nad)
				return nil
			})
		case unix.NL80211_STA_INFO_BSS_PARAM:
			// Presence of the attribute resets the flag fields: only flags
			// the kernel sent along count as set.
			params := &BSSParameters{}
			ad.Nested(func(nad *netlink.AttributeDecoder) error {
				params.parseAttributes(nad)
				return nil
			})
			info.BSSParameters = params
		case unix.NL80211_STA_INFO_TID_STATS:
			ad.Nested(func(nad *netlink.AttributeDecoder) error {
				parseTIDStats(info.TIDStats[:], nad)
				return nil
			})
		case unix.NL80211_STA_INFO_STA_FLAGS, unix.NL80211_STA_INFO_PAD:
			// Not modeled.
		default:
			logrus.Debugf("unhandled station info attribute: %d", ad.Type())
		}
	}
}

// parseAttributes decodes the nested BSS parameter payload into params.
func (params *BSSParameters) parseAttributes(ad *netlink.AttributeDecoder) {
	for ad.Next() {
		switch ad.Type() {
		case unix.NL80211_STA_BSS_PARAM_CTS_PROT:
			params.CTSProtection = true
		case unix.NL80211_STA_BSS_PARAM_SHORT_PREAMBLE:
			params.ShortPreamble = true
		case unix.NL80211_STA_BSS_PARAM_SHORT_SLOT_TIME:
			params.ShortSlotTime = true
		case unix.NL80211_STA_BSS_PARAM_DTIM_PERIOD:
			params.DTIMPeriod = int(ad.Uint8())
		case unix.NL80211_STA_BSS_PARAM_BEACON_INTERVAL:
			// Beacon interval is in "Time Units (TU)", same as the BSS
			// beacon interval.
			params.BeaconInterval = time.Duration(ad.Uint16()) * 1024 * time.Microsecond
		default:
			logrus.Debugf("unhandled BSS parameter attribute: %d", ad.Type())
		}
	}
}

// parseTIDStats decodes per-TID statistics. The wire identifier n is
// 1-based and fills slot n-1; identifier 17 is the pseudo-TID counting
// non-QoS traffic. Identifiers outside 1..17 are logged and skipped.
func parseTIDStats(tids []TIDStats, ad *netlink.AttributeDecoder) {
	for ad.Next() {
		n := int(ad.Type())
		if n < 1 || n > len(tids) {
			logrus.Debugf("unhandled TID statistics identifier: %d", n)
			continue
		}

		t := &tids[n-1]
		t.TID = n
		ad.Nested(func(nad *netlink.AttributeDecoder) error {
			for nad.Next() {
				switch nad.Type() {
				case unix.NL80211_TID_STATS_RX_MSDU:
					t.ReceivedMSDU = int(nad.Uint64())
				case unix.NL80211_TID_STATS_TX_MSDU:
					t.TransmittedMSDU = int(nad.Uint64())
				case unix.NL80211_TID_STATS_TX_MSDU_RETRIES:
					t.TransmitRetries = int(nad.Uint64())
				case unix.NL80211_TID_STATS_TX_MSDU_FAILED:
					t.TransmitFailed = int(nad.Uint64())
				case unix.NL80211_TID_STATS_TXQ_STATS:
					txq := &TXQStats{}
					nad.Nested(func(tad *netlink.AttributeDecoder) error {
						parseTXQStats(txq, tad)
						return nil
					})
					t.TXQStats = txq
				case unix.NL80211_TID_STATS_PAD:
					// Alignment only.
				default:
					logrus.Debugf("unhandled TID statistics attribute: %d", nad.Type())
				}
			}
			return nil
		})
	}
}

// parseTXQStats decodes transmit queue counters into stats.
func parseTXQStats(stats *TXQStats, ad *netlink.AttributeDecoder) {
	for ad.Next() {
		switch ad.Type() {
		case unix.NL80211_TXQ_STATS_BACKLOG_BYTES:
			stats.BacklogBytes = int(ad.Uint32())
		case unix.NL80211_TXQ_STATS_BACKLOG_PACKETS:
			stats.BacklogPackets = int(ad.Uint32())
		case unix.NL80211_TXQ_STATS_FLOWS:
			stats.Flows = int(ad.Uint32())
		case unix.NL80211_TXQ_STATS_DROPS:
			stats.Drops = int(ad.Uint32())
		case unix.NL80211_TXQ_STATS_ECN_MARKS:
			stats.ECNMarks = int(ad.Uint32())
		case unix.NL80211_TXQ_STATS_OVERLIMIT:
			stats.Overlimit = int(ad.Uint32())
		case unix.NL80211_TXQ_STATS_OVERMEMORY:
			stats.Overmemory = int(ad.Uint32())
		case unix.NL80211_TXQ_STATS_COLLISIONS:
			stats.Collisions = int(ad.Uint32())
		case unix.NL80211_TXQ_STATS_TX_BYTES:
			stats.TransmittedBytes = int(ad.Uint32())
		case unix.NL80211_TXQ_STATS_TX_PACKETS:
			stats.TransmittedPackets = int(ad.Uint32())
		case unix.NL80211_TXQ_STATS_MAX_FLOWS:
			stats.MaxFlows = int(ad.Uint32())
		default:
			logrus.Debugf("unhandled transmit queue attribute: %d", ad.Type())
		}
	}
}

// parseRateInfo decodes one nested bitrate payload. Defaults which the
// kernel only overrides by sending an attribute are applied up front: a
// 20 MHz channel and a 0.8 microsecond guard interval.
func parseRateInfo(ad *netlink.AttributeDecoder) *RateInfo {
	info := &RateInfo{
		GuardInterval: 800 * time.Nanosecond,
		ChannelWidth:  ChannelWidth20,
	}

	for ad.Next() {
		switch ad.Type() {
		case unix.NL80211_RATE_INFO_BITRATE:
			// The legacy 16-bit rate only counts when the 32-bit one is
			// absent; the kernel sends both for compatibility.
			if info.Bitrate == 0 {
				info.Bitrate = int(ad.Uint16())
			}
		case unix.NL80211_RATE_INFO_BITRATE32:
			info.Bitrate = int(ad.Uint32())
		case unix.NL80211_RATE_INFO_MCS:
			info.MCS = int(ad.Uint8())
			info.ConnectionType = ConnectionTypeHT
			info.Streams = htStreams(info.MCS)
		case unix.NL80211_RATE_INFO_VHT_MCS:
			info.MCS = int(ad.Uint8())
			info.ConnectionType = ConnectionTypeVHT
		case unix.NL80211_RATE_INFO_VHT_NSS:
			info.Streams = int(ad.Uint8())
		case unix.NL80211_RATE_INFO_HE_MCS:
			info.MCS = int(ad.Uint8())
			info.ConnectionType = ConnectionTypeHE
		case unix.NL80211_RATE_INFO_HE_NSS:
			info.Streams = int(ad.Uint8())
		case unix.NL80211_RATE_INFO_SHORT_GI:
			info.GuardInterval = 400 * time.Nanosecond
		case unix.NL80211_RATE_INFO_HE_GI:
			info.GuardInterval = heGuardInterval(ad.Uint8())
		case unix.NL80211_RATE_INFO_HE_DCM:
			info.DCM = ad.Uint8() != 0
		case unix.NL80211_RATE_INFO_HE_RU_ALLOC:
			info.RUAllocation = heRUAllocation(ad.Uint8())
		case unix.NL80211_RATE_INFO_40_MHZ_WIDTH:
			info.ChannelWidth = ChannelWidth40
		case unix.NL80211_RATE_INFO_80_MHZ_WIDTH:
			info.ChannelWidth = ChannelWidth80
		case unix.NL80211_RATE_INFO_80P80_MHZ_WIDTH:
			info.ChannelWidth = ChannelWidth80P80
		case unix.NL80211_RATE_INFO_160_MHZ_WIDTH:
			info.ChannelWidth = ChannelWidth160
		case unix.NL80211_RATE_INFO_10_MHZ_WIDTH:
			info.ChannelWidth = ChannelWidth10
		case unix.NL80211_RATE_INFO_5_MHZ_WIDTH:
			info.ChannelWidth = ChannelWidth5
		default:
			logrus.Debugf("unhandled rate info attribute: %d", ad.Type())
		}
	}

	return info
}

// htStreams derives the spatial stream count from an 802.11n MCS index:
// each group of eight MCS indices adds a stream.
func htStreams(mcs int) int {
	switch {
	case mcs < 8:
		return 1
	case mcs < 16:
		return 2
	case mcs < 24:
		return 3
	default:
		return 4
	}
}

// heGuardInterval maps the wire HE guard interval value to a duration.
func heGuardInterval(v uint8) time.Duration {
	switch v {
	case unix.NL80211_RATE_INFO_HE_GI_0_8:
		return 800 * time.Nanosecond
	case unix.NL80211_RATE_INFO_HE_GI_1_6:
		return 1600 * time.Nanosecond
	case unix.NL80211_RATE_INFO_HE_GI_3_2:
		return 3200 * time.Nanosecond
	default:
		logrus.Debugf("unhandled HE guard interval value: %d", v)
		return 0
	}
}

// heRUAllocation maps the wire HE resource unit value to its tone count.
func heRUAllocation(v uint8) RUAllocation {
	switch v {
	case unix.NL80211_RATE_INFO_HE_RU_ALLOC_26:
		return RUAllocation26
	case unix.NL80211_RATE_INFO_HE_RU_ALLOC_52:
		return RUAllocation52
	case unix.NL80211_RATE_INFO_HE_RU_ALLOC_106:
		return RUAllocation106
	case unix.NL80211_RATE_INFO_HE_RU_ALLOC_242:
		return RUAllocation242
	case unix.NL80211_RATE_INFO_HE_RU_ALLOC_484:
		return RUAllocation484
	case unix.NL80211_RATE_INFO_HE_RU_ALLOC_996:
		return RUAllocation996
	case unix.NL80211_RATE_INFO_HE_RU_ALLOC_2x996:
		return RUAllocation2x996
	default:
		logrus.Debugf("unhandled HE resource unit allocation: %d", v)
		return RUAllocationUnknown
	}
}
