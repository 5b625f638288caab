//go:build linux
// +build linux

package wifi

import (
	"crypto/sha1"

	"github.com/mdlayher/netlink"
	"github.com/mdlayher/netlink/nlenc"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/sys/unix"
)

// A request describes a single nl80211 exchange before it is framed: the
// nl80211 command, the netlink header flags which select the exchange
// shape (dump versus acknowledge), and the command's attributes.
//
// Request construction never touches the socket, so every builder below
// is a pure function of its arguments.
type request struct {
	cmd   uint8
	flags netlink.HeaderFlags
	attrs []netlink.Attribute
}

// ifindexAttrs begins an attribute list scoped to a single interface.
func ifindexAttrs(ifIndex int) []netlink.Attribute {
	return []netlink.Attribute{{
		Type: unix.NL80211_ATTR_IFINDEX,
		Data: nlenc.Uint32Bytes(uint32(ifIndex)),
	}}
}

// idAttrs returns the netlink attributes required from an Interface to
// retrieve more data about it: its index, plus its hardware address when
// one is known.
func (ifi *Interface) idAttrs() []netlink.Attribute {
	attrs := ifindexAttrs(ifi.Index)
	if ifi.HardwareAddr != nil {
		attrs = append(attrs, netlink.Attribute{
			Type: unix.NL80211_ATTR_MAC,
			Data: ifi.HardwareAddr,
		})
	}

	return attrs
}

// interfacesRequest asks for a dump of every WiFi interface on the
// system.
func interfacesRequest() request {
	return request{
		cmd:   unix.NL80211_CMD_GET_INTERFACE,
		flags: netlink.Request | netlink.Dump,
	}
}

// interfaceRequest asks for the single WiFi interface with the given
// index. The kernel ignores the index filter on this dump and replies
// with every interface, so the caller selects the one it asked for.
func interfaceRequest(ifIndex int) request {
	return request{
		cmd:   unix.NL80211_CMD_GET_INTERFACE,
		flags: netlink.Request | netlink.Dump,
		attrs: ifindexAttrs(ifIndex),
	}
}

// setInterfaceRequest changes the operating mode of an interface.
func setInterfaceRequest(ifIndex int, typ InterfaceType) request {
	return request{
		cmd:   unix.NL80211_CMD_SET_INTERFACE,
		flags: netlink.Request | netlink.Acknowledge,
		attrs: append(ifindexAttrs(ifIndex), netlink.Attribute{
			Type: unix.NL80211_ATTR_IFTYPE,
			Data: nlenc.Uint32Bytes(uint32(typ)),
		}),
	}
}

// setMonitorFlagsRequest puts an interface into monitor mode with the
// given behavior flags. The flags ride in a nested attribute holding one
// valueless attribute per flag; an empty list selects plain monitor
// mode.
func setMonitorFlagsRequest(ifIndex int, flags []MonitorFlag) (request, error) {
	nested := make([]netlink.Attribute, 0, len(flags))
	for _, f := range flags {
		nested = append(nested, netlink.Attribute{Type: uint16(f)})
	}

	b, err := netlink.MarshalAttributes(nested)
	if err != nil {
		return request{}, err
	}

	return request{
		cmd:   unix.NL80211_CMD_SET_INTERFACE,
		flags: netlink.Request | netlink.Acknowledge,
		attrs: append(ifindexAttrs(ifIndex),
			netlink.Attribute{
				Type: unix.NL80211_ATTR_IFTYPE,
				Data: nlenc.Uint32Bytes(uint32(InterfaceTypeMonitor)),
			},
			netlink.Attribute{
				Type: unix.NLA_F_NESTED | unix.NL80211_ATTR_MNTR_FLAGS,
				Data: b,
			},
		),
	}, nil
}

// setChannelRequest tunes an interface to a frequency and width. The
// center frequencies are optional: zero values are omitted and the
// kernel derives them where the width allows.
func setChannelRequest(ifIndex int, config ChannelConfig) request {
	attrs := append(ifindexAttrs(ifIndex),
		netlink.Attribute{
			Type: unix.NL80211_ATTR_WIPHY_FREQ,
			Data: nlenc.Uint32Bytes(uint32(config.Frequency)),
		},
		netlink.Attribute{
			Type: unix.NL80211_ATTR_CHANNEL_WIDTH,
			Data: nlenc.Uint32Bytes(uint32(config.Width)),
		},
	)

	if config.CenterFrequency1 != 0 {
		attrs = append(attrs, netlink.Attribute{
			Type: unix.NL80211_ATTR_CENTER_FREQ1,
			Data: nlenc.Uint32Bytes(uint32(config.CenterFrequency1)),
		})
	}
	if config.CenterFrequency2 != 0 {
		attrs = append(attrs, netlink.Attribute{
			Type: unix.NL80211_ATTR_CENTER_FREQ2,
			Data: nlenc.Uint32Bytes(uint32(config.CenterFrequency2)),
		})
	}

	return request{
		cmd:   unix.NL80211_CMD_SET_CHANNEL,
		flags: netlink.Request | netlink.Acknowledge,
		attrs: attrs,
	}
}

// stationsRequest asks for a dump of the stations known to an interface.
// When ifi carries a hardware address the dump is narrowed to the
// station with that address.
func stationsRequest(ifi *Interface) request {
	return request{
		cmd:   unix.NL80211_CMD_GET_STATION,
		flags: netlink.Request | netlink.Dump,
		attrs: ifi.idAttrs(),
	}
}

// physRequest asks for a dump of every wireless physical device. The
// split dump flag permits the kernel to spread one device's attributes
// over several messages instead of truncating them to fit one.
func physRequest() request {
	return request{
		cmd:   unix.NL80211_CMD_GET_WIPHY,
		flags: netlink.Request | netlink.Dump,
		attrs: []netlink.Attribute{{
			Type: unix.NL80211_ATTR_SPLIT_WIPHY_DUMP,
		}},
	}
}

// phyRequest narrows a split wiphy dump to the device with the given
// index.
func phyRequest(phyIndex int) request {
	return request{
		cmd:   unix.NL80211_CMD_GET_WIPHY,
		flags: netlink.Request | netlink.Dump,
		attrs: []netlink.Attribute{
			{
				Type: unix.NL80211_ATTR_SPLIT_WIPHY_DUMP,
			},
			{
				Type: unix.NL80211_ATTR_WIPHY,
				Data: nlenc.Uint32Bytes(uint32(phyIndex)),
			},
		},
	}
}

// regulatoryDomainsRequest asks for a dump of the regulatory domains
// known to the kernel.
func regulatoryDomainsRequest() request {
	return request{
		cmd:   unix.NL80211_CMD_GET_REG,
		flags: netlink.Request | netlink.Dump,
	}
}

// triggerScanRequest asks the kernel to schedule a scan on an interface.
func triggerScanRequest(ifIndex int) request {
	return request{
		cmd:   unix.NL80211_CMD_TRIGGER_SCAN,
		flags: netlink.Request | netlink.Acknowledge,
		attrs: ifindexAttrs(ifIndex),
	}
}

// abortScanRequest cancels an ongoing scan on an interface.
func abortScanRequest(ifIndex int) request {
	return request{
		cmd:   unix.NL80211_CMD_ABORT_SCAN,
		flags: netlink.Request | netlink.Acknowledge,
		attrs: ifindexAttrs(ifIndex),
	}
}

// wildcardScanRequest triggers a scan for any SSID on an interface. The
// wildcard rides in the nested scan SSIDs attribute as a single
// zero-length SSID.
func wildcardScanRequest(ifi *Interface) (request, error) {
	b, err := netlink.MarshalAttributes([]netlink.Attribute{{
		Type: unix.NL80211_SCHED_SCAN_MATCH_ATTR_SSID,
		Data: nlenc.Bytes(""),
	}})
	if err != nil {
		return request{}, err
	}

	return request{
		cmd:   unix.NL80211_CMD_TRIGGER_SCAN,
		flags: netlink.Request | netlink.Acknowledge,
		attrs: append(ifindexAttrs(ifi.Index), netlink.Attribute{
			Type: unix.NLA_F_NESTED | unix.NL80211_ATTR_SCAN_SSIDS,
			Data: b,
		}),
	}, nil
}

// bssRequest asks for the scan result entries known to an interface,
// narrowed by the interface's hardware address when one is known.
func bssRequest(ifi *Interface) request {
	return request{
		cmd:   unix.NL80211_CMD_GET_SCAN,
		flags: netlink.Request | netlink.Dump,
		attrs: ifi.idAttrs(),
	}
}

// accessPointsRequest asks for every scan result entry known to an
// interface.
func accessPointsRequest(ifi *Interface) request {
	return request{
		cmd:   unix.NL80211_CMD_GET_SCAN,
		flags: netlink.Request | netlink.Dump,
		attrs: ifindexAttrs(ifi.Index),
	}
}

// surveyRequest asks for per-channel survey data for an interface.
func surveyRequest(ifi *Interface) request {
	return request{
		cmd:   unix.NL80211_CMD_GET_SURVEY,
		flags: netlink.Request | netlink.Dump,
		attrs: ifi.idAttrs(),
	}
}

// extFeaturesRequest asks for the wiphy owning an interface, in split
// dump form, to inspect its extended feature flags.
func extFeaturesRequest(ifi *Interface) request {
	return request{
		cmd:   unix.NL80211_CMD_GET_WIPHY,
		flags: netlink.Request | netlink.Dump,
		attrs: append(ifindexAttrs(ifi.Index), netlink.Attribute{
			Type: unix.NL80211_ATTR_SPLIT_WIPHY_DUMP,
		}),
	}
}

// connectRequest joins an interface to an open network.
func connectRequest(ifi *Interface, ssid string) request {
	return request{
		cmd:   unix.NL80211_CMD_CONNECT,
		flags: netlink.Request | netlink.Acknowledge,
		attrs: append(ifindexAttrs(ifi.Index),
			netlink.Attribute{
				Type: unix.NL80211_ATTR_SSID,
				Data: []byte(ssid),
			},
			netlink.Attribute{
				Type: unix.NL80211_ATTR_AUTH_TYPE,
				Data: nlenc.Uint32Bytes(unix.NL80211_AUTHTYPE_OPEN_SYSTEM),
			},
		),
	}
}

// connectWPAPSKRequest joins an interface to a WPA2-PSK network,
// offloading the 4-way handshake to the kernel. CCMP-128 pairwise and
// group ciphers with PSK key management mirror what wpa_supplicant asks
// for on a plain WPA2 network.
func connectWPAPSKRequest(ifi *Interface, ssid, psk string) request {
	return request{
		cmd:   unix.NL80211_CMD_CONNECT,
		flags: netlink.Request | netlink.Acknowledge,
		attrs: append(ifindexAttrs(ifi.Index),
			netlink.Attribute{
				Type: unix.NL80211_ATTR_SSID,
				Data: []byte(ssid),
			},
			netlink.Attribute{
				Type: unix.NL80211_ATTR_WPA_VERSIONS,
				Data: nlenc.Uint32Bytes(unix.NL80211_WPA_VERSION_2),
			},
			netlink.Attribute{
				Type: unix.NL80211_ATTR_CIPHER_SUITE_GROUP,
				Data: nlenc.Uint32Bytes(uint32(RSNCipherCCMP128)),
			},
			netlink.Attribute{
				Type: unix.NL80211_ATTR_CIPHER_SUITES_PAIRWISE,
				Data: nlenc.Uint32Bytes(uint32(RSNCipherCCMP128)),
			},
			netlink.Attribute{
				Type: unix.NL80211_ATTR_AKM_SUITES,
				Data: nlenc.Uint32Bytes(uint32(RSNAKMPSK)),
			},
			netlink.Attribute{
				Type: unix.NL80211_ATTR_WANT_1X_4WAY_HS,
			},
			netlink.Attribute{
				Type: unix.NL80211_ATTR_PMK,
				Data: wpaPassphrase([]byte(ssid), []byte(psk)),
			},
			netlink.Attribute{
				Type: unix.NL80211_ATTR_AUTH_TYPE,
				Data: nlenc.Uint32Bytes(unix.NL80211_AUTHTYPE_OPEN_SYSTEM),
			},
		),
	}
}

// disconnectRequest drops an interface's current connection.
func disconnectRequest(ifi *Interface) request {
	return request{
		cmd:   unix.NL80211_CMD_DISCONNECT,
		flags: netlink.Request | netlink.Acknowledge,
		attrs: ifindexAttrs(ifi.Index),
	}
}

// wpaPassphrase computes a WPA passphrase given an SSID and preshared key.
func wpaPassphrase(ssid, psk []byte) []byte {
	return pbkdf2.Key(psk, ssid, 4096, 32, sha1.New)
}
