package wifi

import "net"

// A PHY is a physical wireless radio device.  One PHY may expose several
// virtual Interfaces.
type PHY struct {
	// The index of the physical device.
	Index int

	// The name of the physical device.
	Name string

	// The hardware address of the physical device, if reported.
	HardwareAddr net.HardwareAddr

	// Attributes of the 2.4 GHz band. Nil if the device does not operate
	// on the band.
	Band2GHz *BandAttributes

	// Attributes of the 5 GHz band. Nil if the device does not operate
	// on the band.
	Band5GHz *BandAttributes

	// Attributes of the 6 GHz band. Nil if the device does not operate
	// on the band.
	Band6GHz *BandAttributes

	// Whether the device manages its own regulatory domain, rather than
	// following the global one.
	SelfManagedRegulatory bool

	// The netlink dump consistency generation this device was reported
	// in.
	Generation int
}

// BandAttributes represent the RF band-specific attributes.
type BandAttributes struct {
	// Per-frequency (channel) attributes.
	FrequencyAttributes []FrequencyAttrs

	// Per-bitrate attributes.
	BitrateAttributes []BitrateAttrs
}

// FrequencyAttrs represents the attributes of a WiFi frequency/channel.
type FrequencyAttrs struct {
	// Frequency is the radio frequency in MHz.
	Frequency int

	// Disabled indicates that the channel is disabled due to regulatory
	// requirements.
	Disabled bool

	// NoIR indicates that no mechanisms that initiate radiation are
	// permitted on this channel.
	NoIR bool

	// RadarDetection indicates that radar detection is mandatory on this
	// channel.
	RadarDetection bool

	// MaxTxPower gives the maximum transmission power in mBm (100 * dBm).
	MaxTxPower float32
}

// BitrateAttrs represents the attributes of a bitrate.
type BitrateAttrs struct {
	// Bitrate is the bitrate in units of 100kbps.
	Bitrate float32

	// ShortPreamble indicates that a short preamble is supported in the
	// 2.4GHz band.
	ShortPreamble bool
}

// merge folds o, a later message of the same split wiphy dump, into p.
// Boolean capabilities accumulate, the hardware address is replaced when
// present, and band attribute lists are concatenated in arrival order.
func (p *PHY) merge(o *PHY) {
	if o.Name != "" {
		p.Name = o.Name
	}
	if o.Generation != 0 {
		p.Generation = o.Generation
	}
	if o.HardwareAddr != nil {
		p.HardwareAddr = o.HardwareAddr
	}
	if o.SelfManagedRegulatory {
		p.SelfManagedRegulatory = true
	}

	p.Band2GHz = mergeBand(p.Band2GHz, o.Band2GHz)
	p.Band5GHz = mergeBand(p.Band5GHz, o.Band5GHz)
	p.Band6GHz = mergeBand(p.Band6GHz, o.Band6GHz)
}

// mergeBand concatenates two views of one band. The protocol does not
// repeat frequencies across split messages, so no deduplication happens.
func mergeBand(dst, src *BandAttributes) *BandAttributes {
	if src == nil {
		return dst
	}
	if dst == nil {
		return src
	}

	dst.FrequencyAttributes = append(dst.FrequencyAttributes, src.FrequencyAttributes...)
	dst.BitrateAttributes = append(dst.BitrateAttributes, src.BitrateAttributes...)
	return dst
}
