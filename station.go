package wifi

import (
	"fmt"
	"net"
	"time"
)

// A ConnectionType is the 802.11 modulation family a station uses to
// communicate, as reported with its bitrate.
type ConnectionType int

const (
	// ConnectionTypeUnknown indicates that the kernel did not report the
	// modulation family of a rate.
	ConnectionTypeUnknown ConnectionType = iota

	// ConnectionTypeHT indicates an 802.11n (High Throughput) rate.
	ConnectionTypeHT

	// ConnectionTypeVHT indicates an 802.11ac (Very High Throughput) rate.
	ConnectionTypeVHT

	// ConnectionTypeHE indicates an 802.11ax (High Efficiency) rate.
	ConnectionTypeHE
)

// String returns the string representation of a ConnectionType.
func (t ConnectionType) String() string {
	switch t {
	case ConnectionTypeUnknown:
		return "unknown"
	case ConnectionTypeHT:
		return "HT"
	case ConnectionTypeVHT:
		return "VHT"
	case ConnectionTypeHE:
		return "HE"
	default:
		return fmt.Sprintf("unknown(%d)", t)
	}
}

// An RUAllocation is the number of tones in the resource unit assigned to
// a station during HE (802.11ax) OFDMA operation. The zero value means no
// resource unit was reported; RUAllocationUnknown marks an unrecognized
// kernel value.
type RUAllocation int

const (
	RUAllocationUnknown RUAllocation = -1
	RUAllocation26      RUAllocation = 26
	RUAllocation52      RUAllocation = 52
	RUAllocation106     RUAllocation = 106
	RUAllocation242     RUAllocation = 242
	RUAllocation484     RUAllocation = 484
	RUAllocation996     RUAllocation = 996
	RUAllocation2x996   RUAllocation = 1992
)

// String returns the string representation of an RUAllocation.
func (r RUAllocation) String() string {
	switch r {
	case RUAllocation2x996:
		return "2x996-tone"
	case RUAllocation26, RUAllocation52, RUAllocation106, RUAllocation242,
		RUAllocation484, RUAllocation996:
		return fmt.Sprintf("%d-tone", r)
	default:
		return fmt.Sprintf("unknown(%d)", r)
	}
}

// RateInfo describes one direction of the current data rate between a
// station and its access point.
type RateInfo struct {
	// The bitrate in units of 100 kbit/s.
	Bitrate int

	// The modulation and coding scheme index of the rate.
	MCS int

	// The modulation family the rate belongs to.
	ConnectionType ConnectionType

	// The guard interval between symbols. 800ns unless the kernel
	// reports a short or HE-specific interval.
	GuardInterval time.Duration

	// The width of the channel the rate is achieved on. 20 MHz unless a
	// width attribute says otherwise.
	ChannelWidth ChannelWidth

	// The number of spatial streams in use.
	Streams int

	// Whether dual carrier modulation is in use (HE only).
	DCM bool

	// The OFDMA resource unit assigned to the station (HE only). Zero
	// when the station does not use OFDMA.
	RUAllocation RUAllocation
}

// TIDStats contains per-traffic-identifier statistics for a station.
type TIDStats struct {
	// The 1-based wire identifier of the traffic class: values 1 through
	// 16 map to TIDs 0 through 15, and 17 labels non-QoS traffic. Zero
	// means the slot was not reported.
	TID int

	// The number of MSDUs received for this TID.
	ReceivedMSDU int

	// The number of MSDUs transmitted for this TID, or attempted.
	TransmittedMSDU int

	// The number of retries for MSDU transmissions.
	TransmitRetries int

	// The number of failed MSDU transmissions.
	TransmitFailed int

	// Transmit queue statistics for this TID, if reported.
	TXQStats *TXQStats
}

// TXQStats contains transmit queue statistics for an interface or a
// single traffic identifier.
type TXQStats struct {
	// The number of bytes currently backlogged.
	BacklogBytes int

	// The number of packets currently backlogged.
	BacklogPackets int

	// The total number of new flows seen.
	Flows int

	// The total number of packet drops.
	Drops int

	// The total number of packets marked with explicit congestion
	// notification.
	ECNMarks int

	// The number of drops due to the queue space limit.
	Overlimit int

	// The number of drops due to the memory limit.
	Overmemory int

	// The number of hash collisions between flows.
	Collisions int

	// The number of bytes dequeued for transmission.
	TransmittedBytes int

	// The number of packets dequeued for transmission.
	TransmittedPackets int

	// The maximum number of concurrently active flows seen.
	MaxFlows int
}

// BSSParameters describes a station's view of the BSS it participates in.
type BSSParameters struct {
	// Whether CTS protection is enabled in the BSS.
	CTSProtection bool

	// Whether short preambles are enabled in the BSS.
	ShortPreamble bool

	// Whether short slot time is enabled in the BSS.
	ShortSlotTime bool

	// The delivery traffic indication message period of the BSS.
	DTIMPeriod int

	// The time interval between beacon transmissions.
	BeaconInterval time.Duration
}

// StationInfo contains statistics about a station associated with an
// interface.
type StationInfo struct {
	// The hardware address of the station.
	HardwareAddr net.HardwareAddr

	// The index of the interface the station is associated with.
	InterfaceIndex int

	// The time since the station last connected.
	Connected time.Duration

	// The time since wireless activity last occurred.
	Inactive time.Duration

	// The boot-relative (CLOCK_BOOTTIME) timestamp at which the station
	// associated.
	AssociatedAtBootTime time.Duration

	// The number of bytes received by this station, from the kernel's
	// legacy 32-bit counters.
	ReceivedBytes int

	// The number of bytes transmitted by this station, from the kernel's
	// legacy 32-bit counters.
	TransmittedBytes int

	// The number of bytes received by this station, from the kernel's
	// 64-bit counters. Zero when the kernel does not report them.
	ReceivedBytes64 int

	// The number of bytes transmitted by this station, from the kernel's
	// 64-bit counters. Zero when the kernel does not report them.
	TransmittedBytes64 int

	// The aggregate airtime spent receiving from this station.
	ReceiveDuration time.Duration

	// The aggregate airtime spent transmitting to this station.
	TransmitDuration time.Duration

	// The number of packets received by this station.
	ReceivedPackets int

	// The number of packets transmitted by this station.
	TransmittedPackets int

	// The number of times the station has had to retry while sending a packet.
	TransmitRetries int

	// The number of times a packet transmission failed.
	TransmitFailed int

	// The number of times a beacon loss was detected.
	BeaconLoss int

	// The number of beacons received from this station's BSS.
	BeaconReceived int

	// The number of packets dropped for unspecified reasons.
	ReceiveDropMisc int

	// The signal strength of the last received PPDU, in dBm.
	Signal int

	// The average signal strength, in dBm.
	SignalAverage int

	// The average signal strength of beacons, in dBm.
	BeaconSignalAverage int

	// The per-antenna signal strength of the last received PPDU, in dBm.
	ChainSignal []int

	// The current data receive bitrate.
	ReceiveBitrate *RateInfo

	// The current data transmit bitrate.
	TransmitBitrate *RateInfo

	// Per-traffic-identifier statistics. The slot index is the wire TID
	// identifier minus one; see TIDStats.TID.
	TIDStats [17]TIDStats

	// The station's view of the BSS, if reported.
	BSSParameters *BSSParameters

	// The netlink dump consistency generation this station was reported
	// in.
	Generation int
}
