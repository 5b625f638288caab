// Package wifi provides access to IEEE 802.11 WiFi device actions and
// statistics via the Linux nl80211 generic netlink family.
package wifi

import (
	"fmt"
	"net"
	"time"

	"github.com/radiotail/wifi/internal/nl80211"
)

// An InterfaceType is the operating mode of an Interface.
type InterfaceType int

const (
	// InterfaceTypeUnspecified indicates that an interface's type is unspecified
	// and the driver determines its function.
	InterfaceTypeUnspecified InterfaceType = iota

	// InterfaceTypeAdHoc indicates that an interface is part of an independent
	// basic service set (BSS) of client devices without a controlling access
	// point.
	InterfaceTypeAdHoc

	// InterfaceTypeStation indicates that an interface is part of a managed
	// basic service set (BSS) of client devices with a controlling access point.
	InterfaceTypeStation

	// InterfaceTypeAP indicates that an interface is an access point.
	InterfaceTypeAP

	// InterfaceTypeAPVLAN indicates that an interface is a VLAN interface
	// associated with an access point.
	InterfaceTypeAPVLAN

	// InterfaceTypeWDS indicates that an interface is a wireless distribution
	// interface, used as part of a network of multiple access points.
	InterfaceTypeWDS

	// InterfaceTypeMonitor indicates that an interface is a monitor interface,
	// receiving all frames from all clients in a given network.
	InterfaceTypeMonitor

	// InterfaceTypeMeshPoint indicates that an interface is part of a wireless
	// mesh network.
	InterfaceTypeMeshPoint

	// InterfaceTypeP2PClient indicates that an interface is a client within
	// a peer-to-peer network.
	InterfaceTypeP2PClient

	// InterfaceTypeP2PGroupOwner indicates that an interface is the group
	// owner within a peer-to-peer network.
	InterfaceTypeP2PGroupOwner

	// InterfaceTypeP2PDevice indicates that an interface is a device within
	// a peer-to-peer client network.
	InterfaceTypeP2PDevice

	// InterfaceTypeOCB indicates that an interface is outside the context
	// of a basic service set (BSS).
	InterfaceTypeOCB

	// InterfaceTypeNAN indicates that an interface is part of a near-me
	// area network (NAN).
	InterfaceTypeNAN
)

// String returns the string representation of an InterfaceType.
func (t InterfaceType) String() string {
	switch t {
	case InterfaceTypeUnspecified:
		return "unspecified"
	case InterfaceTypeAdHoc:
		return "ad-hoc"
	case InterfaceTypeStation:
		return "station"
	case InterfaceTypeAP:
		return "access point"
	case InterfaceTypeAPVLAN:
		return "access point/VLAN"
	case InterfaceTypeWDS:
		return "wireless distribution"
	case InterfaceTypeMonitor:
		return "monitor"
	case InterfaceTypeMeshPoint:
		return "mesh point"
	case InterfaceTypeP2PClient:
		return "P2P client"
	case InterfaceTypeP2PGroupOwner:
		return "P2P group owner"
	case InterfaceTypeP2PDevice:
		return "P2P device"
	case InterfaceTypeOCB:
		return "outside context of BSS"
	case InterfaceTypeNAN:
		return "near-me area network"
	default:
		return fmt.Sprintf("unknown(%d)", t)
	}
}

// A ChannelWidth is the width of the wireless channel an interface or
// station operates on.
type ChannelWidth int

// Channel widths, copying the ordering of nl80211's channel width
// constants. These are declared here rather than in terms of
// golang.org/x/sys/unix so that the package builds on non-Linux systems.
const (
	ChannelWidth20NoHT ChannelWidth = iota // NL80211_CHAN_WIDTH_20_NOHT
	ChannelWidth20
	ChannelWidth40
	ChannelWidth80
	ChannelWidth80P80
	ChannelWidth160
	ChannelWidth5
	ChannelWidth10
	ChannelWidth1
	ChannelWidth2
	ChannelWidth4
	ChannelWidth8
	ChannelWidth16
	ChannelWidth320 ChannelWidth = nl80211.ChanWidth320
)

// String returns the string representation of a ChannelWidth.
func (w ChannelWidth) String() string {
	switch w {
	case ChannelWidth20NoHT:
		return "20 MHz non-HT"
	case ChannelWidth20:
		return "20 MHz HT"
	case ChannelWidth40:
		return "40 MHz"
	case ChannelWidth80:
		return "80 MHz"
	case ChannelWidth80P80:
		return "80+80 MHz"
	case ChannelWidth160:
		return "160 MHz"
	case ChannelWidth5:
		return "5 MHz OFDM"
	case ChannelWidth10:
		return "10 MHz OFDM"
	case ChannelWidth1:
		return "1 MHz OFDM"
	case ChannelWidth2:
		return "2 MHz OFDM"
	case ChannelWidth4:
		return "4 MHz OFDM"
	case ChannelWidth8:
		return "8 MHz OFDM"
	case ChannelWidth16:
		return "16 MHz OFDM"
	case ChannelWidth320:
		return "320 MHz"
	default:
		return fmt.Sprintf("unknown(%d)", w)
	}
}

// A MonitorFlag alters the behavior of a monitor mode interface.
type MonitorFlag int

// Monitor mode flags, copying the ordering of nl80211's monitor flag
// constants.
const (
	// MonitorFlagFCSFail passes frames with bad frame check sequences.
	MonitorFlagFCSFail MonitorFlag = iota + 1 // NL80211_MNTR_FLAG_FCSFAIL

	// MonitorFlagPLCPFail passes frames with bad PLCP headers.
	MonitorFlagPLCPFail

	// MonitorFlagControl passes control frames.
	MonitorFlagControl

	// MonitorFlagOtherBSS passes frames belonging to other BSSes.
	MonitorFlagOtherBSS

	// MonitorFlagCookFrames reports frames after processing ("cooked" mode).
	MonitorFlagCookFrames

	// MonitorFlagActive acknowledges incoming unicast frames.
	MonitorFlagActive
)

// String returns the string representation of a MonitorFlag.
func (f MonitorFlag) String() string {
	switch f {
	case MonitorFlagFCSFail:
		return "fcsfail"
	case MonitorFlagPLCPFail:
		return "plcpfail"
	case MonitorFlagControl:
		return "control"
	case MonitorFlagOtherBSS:
		return "otherbss"
	case MonitorFlagCookFrames:
		return "cook"
	case MonitorFlagActive:
		return "active"
	default:
		return fmt.Sprintf("unknown(%d)", f)
	}
}

// An Interface is a WiFi network interface.
type Interface struct {
	// The index of the interface.
	Index int

	// The name of the interface.
	Name string

	// The hardware address of the interface.
	HardwareAddr net.HardwareAddr

	// The physical device that this interface belongs to.
	PHY int

	// The virtual device number of this interface within a PHY.
	Device int

	// The operating mode of the interface.
	Type InterfaceType

	// The interface's wireless frequency in MHz.
	Frequency int

	// The offset from Frequency in KHz, for channels centered between
	// whole MHz values.
	FrequencyOffset int

	// The center frequency of the first part of the channel, in MHz.
	CenterFrequency1 int

	// The center frequency of the second part of the channel, in MHz.
	// Only present for 80+80 MHz channels.
	CenterFrequency2 int

	// The width of the channel the interface operates on.
	ChannelWidth ChannelWidth

	// The SSID of the network the interface is joined to, if any. The
	// kernel reports SSIDs as raw bytes; invalid UTF-8 sequences are
	// replaced, not dropped.
	SSID string

	// The transmit power level in mBm (100 * dBm).
	TransmitPower int

	// Whether frames with a 4-address header are accepted on this
	// interface.
	Use4AddressFrames bool

	// Transmit queue statistics for the interface, if reported by the
	// kernel.
	TXQStats *TXQStats

	// The netlink dump consistency generation this interface was
	// reported in.
	Generation int
}

// A ChannelConfig describes a channel configuration to be applied to an
// interface by SetChannel.
type ChannelConfig struct {
	// The control channel frequency in MHz.
	Frequency int

	// The width of the channel.
	Width ChannelWidth

	// The center frequency of the first part of the channel, in MHz.
	// Omitted from the request when zero.
	CenterFrequency1 int

	// The center frequency of the second part of an 80+80 MHz channel,
	// in MHz. Omitted from the request when zero.
	CenterFrequency2 int
}

// FrequencyToChannel returns the channel number given the frequency in MHz, as
// defined by IEEE802.11-2007, 17.3.8.3.2 and Annex J.
func FrequencyToChannel(freq int) int {
	if freq == 2484 {
		return 14
	} else if freq < 2484 {
		return (freq - 2407) / 5
	} else if freq >= 4910 && freq <= 4980 {
		return (freq - 4000) / 5
	} else if freq >= 5950 && freq <= 7115 {
		return (freq - 5950) / 5
	} else if freq <= 45000 {
		return (freq - 5000) / 5
	} else if freq >= 58320 && freq <= 64800 {
		return (freq - 56160) / 2160
	} else {
		return 0
	}
}

// Constants representing the standard WiFi frequency bands, copying the
// ordering of nl80211's band constants.
const (
	Band2GHz = iota // NL80211_BAND_2GHZ
	Band5GHz
	Band60GHz
	Band6GHz
)

// ChannelToFrequency returns the frequency given the channel number and the
// band, as there are overlapping channel numbers between bands.
func ChannelToFrequency(channel int, band int) int {
	if channel <= 0 {
		return 0
	}

	switch band {
	case Band2GHz:
		if channel == 14 {
			return 2484
		} else if channel < 14 {
			return 2407 + channel*5
		}
	case Band5GHz:
		if channel >= 182 && channel <= 196 {
			return 4000 + channel*5
		}
		return 5000 + channel*5
	case Band6GHz:
		// Channel 2 sits below the first 20 MHz channel.
		if channel == 2 {
			return 5935
		}
		return 5950 + channel*5
	case Band60GHz:
		if channel < 5 {
			return 56160 + channel*2160
		}
	}
	return 0
}

// SurveyInfo contains a radio survey of a single channel, performed by an
// interface.
type SurveyInfo struct {
	// The index of the interface that surveyed the channel.
	InterfaceIndex int

	// The frequency in MHz of the channel.
	Frequency int

	// The noise level in dBm.
	Noise int

	// The time the radio has spent on this channel.
	ChannelTime time.Duration

	// The time the radio has spent on this channel while it was active.
	ChannelTimeActive time.Duration

	// The time the radio has spent on this channel while it was busy.
	ChannelTimeBusy time.Duration

	// The time the radio has spent on this channel while it was busy with external traffic.
	ChannelTimeExtBusy time.Duration

	// The time the radio has spent on this channel receiving data from a BSS.
	ChannelTimeBssRx time.Duration

	// The time the radio has spent on this channel receiving data.
	ChannelTimeRx time.Duration

	// The time the radio has spent on this channel transmitting data.
	ChannelTimeTx time.Duration

	// The time the radio has spent on this channel while it was scanning.
	ChannelTimeScan time.Duration

	// Indicates if the channel is currently in use.
	InUse bool
}
