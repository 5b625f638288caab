package wifi

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"net"
	"time"
	"unicode/utf8"
)

// errInvalidIE is returned when one or more IEs are malformed.
var errInvalidIE = errors.New("invalid 802.11 information element")

// errInvalidBSSLoad is returned when BSSLoad IE has wrong length.
var errInvalidBSSLoad = errors.New("802.11 information element BSSLoad has wrong length")

// Errors returned when the RSN IE cannot be fully decoded. decodeRSN
// returns the fields parsed so far alongside these.
var (
	errRSNDataTooLarge                = errors.New("RSN information element exceeds maximum size")
	errRSNTooShort                    = errors.New("RSN information element too short")
	errRSNInvalidVersion              = errors.New("RSN information element has invalid version")
	errRSNTruncatedPairwiseCount      = errors.New("RSN pairwise cipher count truncated")
	errRSNPairwiseCipherCountTooLarge = errors.New("RSN pairwise cipher count too large")
	errRSNTruncatedPairwiseList       = errors.New("RSN pairwise cipher list truncated")
	errRSNAKMCountTooLarge            = errors.New("RSN AKM count too large")
	errRSNTruncatedAKMList            = errors.New("RSN AKM list truncated")
	errRSNTooSmallForCounts           = errors.New("RSN information element too small for its suite counts")
	errRSNPMKIDCountTooLarge          = errors.New("RSN PMKID count too large")
	errRSNTruncatedPMKIDList          = errors.New("RSN PMKID list truncated")
)

// A BSS is an 802.11 basic service set.  It contains information about a wireless
// network associated with an Interface.
type BSS struct {
	// The service set identifier, or "network name" of the BSS.
	SSID string

	// BSSID: The BSS service set identifier.  In infrastructure mode, this is the
	// hardware address of the wireless access point that a client is associated
	// with.
	BSSID net.HardwareAddr

	// Frequency: The frequency used by the BSS, in MHz.
	Frequency int

	// BeaconInterval: The time interval between beacon transmissions for this BSS.
	BeaconInterval time.Duration

	// LastSeen: The time since the client last scanned this BSS's information.
	LastSeen time.Duration

	// Status: The status of the client within the BSS.
	Status BSSStatus

	// Load: The load element of the BSS (contains StationCount, ChannelUtilization and AvailableAdmissionCapacity).
	Load BSSLoad

	// RSN: The robust security network information of the BSS, decoded from
	// its RSN information element, if any.
	RSN RSNInfo
}

// A BSSStatus indicates the current status of client within a BSS.
type BSSStatus int

const (
	// BSSStatusAuthenticated indicates that a client is authenticated with a BSS.
	BSSStatusAuthenticated BSSStatus = iota

	// BSSStatusAssociated indicates that a client is associated with a BSS.
	BSSStatusAssociated

	// BSSStatusIBSSJoined indicates that a client has joined an independent BSS.
	BSSStatusIBSSJoined

	// BSSStatusNotAssociated indicates that a client has no status within
	// the BSS. It is not a value reported by the kernel: scanned networks
	// that the client has no relationship with carry no status attribute.
	BSSStatusNotAssociated
)

// String returns the string representation of a BSSStatus.
func (s BSSStatus) String() string {
	switch s {
	case BSSStatusAuthenticated:
		return "authenticated"
	case BSSStatusAssociated:
		return "associated"
	case BSSStatusIBSSJoined:
		return "IBSS joined"
	case BSSStatusNotAssociated:
		return "unassociated"
	default:
		return fmt.Sprintf("unknown(%d)", s)
	}
}

// BSSLoad is an Information Element containing measurements of the load on the BSS.
type BSSLoad struct {
	// Version: Indicates the version of the BSS Load Element. Can be 1 or 2.
	Version int

	// StationCount: total number of STA currently associated with this BSS.
	StationCount uint16

	// ChannelUtilization: Percentage of time (linearly scaled 0 to 255) that the AP sensed the medium was busy. Calculated only for the primary channel.
	ChannelUtilization uint8

	// AvailableAdmissionCapacity: remaining amount of medium time availible via explicit admission controll in units of 32 us/s.
	AvailableAdmissionCapacity uint16
}

// String returns the string representation of a BSSLoad.
func (l BSSLoad) String() string {
	if l.Version == 1 {
		return fmt.Sprintf("BSSLoad Version: %d    stationCount: %d    channelUtilization: %d/255     availableAdmissionCapacity: %d\n",
			l.Version, l.StationCount, l.ChannelUtilization, l.AvailableAdmissionCapacity,
		)
	} else if l.Version == 2 {
		return fmt.Sprintf("BSSLoad Version: %d    stationCount: %d    channelUtilization: %d/255     availableAdmissionCapacity: %d [*32us/s]\n",
			l.Version, l.StationCount, l.ChannelUtilization, l.AvailableAdmissionCapacity,
		)
	} else {
		return fmt.Sprintf("invalid BSSLoad Version: %d", l.Version)
	}
}

// An RSNCipher is an IEEE 802.11 cipher suite selector: a 00-0F-AC OUI
// followed by a suite type octet.
type RSNCipher uint32

// Cipher suite selectors defined by IEEE 802.11-2020, table 9-149.
const (
	RSNCipherUseGroup   RSNCipher = 0x000fac00
	RSNCipherWEP40      RSNCipher = 0x000fac01
	RSNCipherTKIP       RSNCipher = 0x000fac02
	RSNCipherCCMP128    RSNCipher = 0x000fac04
	RSNCipherWEP104     RSNCipher = 0x000fac05
	RSNCipherBIPCMAC128 RSNCipher = 0x000fac06
	RSNCipherGCMP128    RSNCipher = 0x000fac08
	RSNCipherGCMP256    RSNCipher = 0x000fac09
	RSNCipherCCMP256    RSNCipher = 0x000fac0a
	RSNCipherBIPGMAC128 RSNCipher = 0x000fac0b
	RSNCipherBIPGMAC256 RSNCipher = 0x000fac0c
	RSNCipherBIPCMAC256 RSNCipher = 0x000fac0d
)

// String returns the string representation of an RSNCipher.
func (c RSNCipher) String() string {
	switch c {
	case RSNCipherUseGroup:
		return "use group cipher"
	case RSNCipherWEP40:
		return "WEP-40"
	case RSNCipherTKIP:
		return "TKIP"
	case RSNCipherCCMP128:
		return "CCMP-128"
	case RSNCipherWEP104:
		return "WEP-104"
	case RSNCipherBIPCMAC128:
		return "BIP-CMAC-128"
	case RSNCipherGCMP128:
		return "GCMP-128"
	case RSNCipherGCMP256:
		return "GCMP-256"
	case RSNCipherCCMP256:
		return "CCMP-256"
	case RSNCipherBIPGMAC128:
		return "BIP-GMAC-128"
	case RSNCipherBIPGMAC256:
		return "BIP-GMAC-256"
	case RSNCipherBIPCMAC256:
		return "BIP-CMAC-256"
	default:
		return fmt.Sprintf("unknown(%#08x)", uint32(c))
	}
}

// An RSNAKM is an IEEE 802.11 authentication and key management suite
// selector.
type RSNAKM uint32

// AKM suite selectors defined by IEEE 802.11-2020, table 9-151.
const (
	RSNAKM8021X       RSNAKM = 0x000fac01
	RSNAKMPSK         RSNAKM = 0x000fac02
	RSNAKMFT8021X     RSNAKM = 0x000fac03
	RSNAKMFTPSK       RSNAKM = 0x000fac04
	RSNAKM8021XSHA256 RSNAKM = 0x000fac05
	RSNAKMPSKSHA256   RSNAKM = 0x000fac06
	RSNAKMTDLS        RSNAKM = 0x000fac07
	RSNAKMSAE         RSNAKM = 0x000fac08
	RSNAKMFTSAE       RSNAKM = 0x000fac09
	RSNAKM8021XSuiteB RSNAKM = 0x000fac0b
	RSNAKM8021XCNSA   RSNAKM = 0x000fac0c
	RSNAKMFILSSHA256  RSNAKM = 0x000fac0e
	RSNAKMFILSSHA384  RSNAKM = 0x000fac0f
	RSNAKMOWE         RSNAKM = 0x000fac12
)

// String returns the string representation of an RSNAKM.
func (a RSNAKM) String() string {
	switch a {
	case RSNAKM8021X:
		return "802.1X"
	case RSNAKMPSK:
		return "PSK"
	case RSNAKMFT8021X:
		return "FT/802.1X"
	case RSNAKMFTPSK:
		return "FT/PSK"
	case RSNAKM8021XSHA256:
		return "802.1X/SHA-256"
	case RSNAKMPSKSHA256:
		return "PSK/SHA-256"
	case RSNAKMTDLS:
		return "TDLS"
	case RSNAKMSAE:
		return "SAE"
	case RSNAKMFTSAE:
		return "FT/SAE"
	case RSNAKM8021XSuiteB:
		return "802.1X/Suite B"
	case RSNAKM8021XCNSA:
		return "802.1X/CNSA"
	case RSNAKMFILSSHA256:
		return "FILS/SHA-256"
	case RSNAKMFILSSHA384:
		return "FILS/SHA-384"
	case RSNAKMOWE:
		return "OWE"
	default:
		return fmt.Sprintf("unknown(%#08x)", uint32(a))
	}
}

// RSNInfo is the decoded robust security network information element of a
// BSS: the security suites a network advertises.
type RSNInfo struct {
	// The RSN element version. Version 1 is the only one in common use.
	Version uint16

	// The cipher suite protecting group addressed frames.
	GroupCipher RSNCipher

	// The cipher suites usable for unicast frames.
	PairwiseCiphers []RSNCipher

	// The authentication and key management suites the network accepts.
	AKMs []RSNAKM

	// The raw RSN capabilities field.
	Capabilities uint16

	// The cipher suite protecting group addressed management frames
	// (802.11w), if advertised.
	GroupMgmtCipher RSNCipher
}

// List of 802.11 Information Element types.
const (
	ieSSID    = 0
	ieBSSLoad = 11
	ieRSN     = 48
)

// An ie is an 802.11 information element.
type ie struct {
	ID uint8
	// Length field implied by length of data
	Data []byte
}

// parseIEs parses zero or more ies from a byte slice.
// Reference:
//
//	https://www.safaribooksonline.com/library/view/80211-wireless-networks/0596100523/ch04.html#wireless802dot112-CHP-4-FIG-31
func parseIEs(b []byte) ([]ie, error) {
	var ies []ie
	var i int
	for {
		if len(b[i:]) == 0 {
			break
		}
		if len(b[i:]) < 2 {
			return nil, errInvalidIE
		}

		id := b[i]
		i++
		l := int(b[i])
		i++

		if len(b[i:]) < l {
			return nil, errInvalidIE
		}

		ies = append(ies, ie{
			ID:   id,
			Data: b[i : i+l],
		})

		i += l
	}

	return ies, nil
}

// decodeSSID safely parses a byte slice into UTF-8 runes, and returns the
// resulting string from the runes.
func decodeSSID(b []byte) string {
	buf := bytes.NewBuffer(nil)
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		b = b[size:]

		buf.WriteRune(r)
	}

	return buf.String()
}

// decodeBSSLoad Decodes the BSSLoad IE. Supports Version 1 and Version 2
// values according to https://raw.githubusercontent.com/wireshark/wireshark/master/epan/dissectors/packet-ieee80211.c
// See also source code of iw (v5.19) scan.c Line 1634ff
// BSS Load ELement (with length 5) is defined by chapter 9.4.2.27 (page 1066) of the current IEEE 802.11-2020
func decodeBSSLoad(b []byte) (*BSSLoad, error) {
	var load BSSLoad
	if len(b) == 5 {
		// Wireshark calls this "802.11e CCA Version"
		// This is the version defined in IEEE 802.11 (Versions 2007, 2012, 2016 and 2020)
		load.Version = 2
		load.StationCount = binary.LittleEndian.Uint16(b[0:2])               // first 2 bytes
		load.ChannelUtilization = b[2]                                       // next 1 byte
		load.AvailableAdmissionCapacity = binary.LittleEndian.Uint16(b[3:5]) // last 2 bytes
	} else if len(b) == 4 {
		// Wireshark calls this "Cisco QBSS Version 1 - non CCA"
		load.Version = 1
		load.StationCount = binary.LittleEndian.Uint16(b[0:2]) // first 2 bytes
		load.ChannelUtilization = b[2]                         // next 1 byte
		load.AvailableAdmissionCapacity = uint16(b[3])         // next 1 byte
	} else {
		return nil, errInvalidBSSLoad
	}
	return &load, nil
}

// decodeRSN parses IEEE 802.11 Element ID 48 (RSN Information Element).
// (RSN = Robust Security Network)
//
// The RSN IE structure is defined in IEEE 802.11-2020 standard, section 9.4.2.24 (page 1051).
func decodeRSN(b []byte) (*RSNInfo, error) {
	// IEEE 802.11 Information Elements are limited to 255 octets total (ID + Length + Data)
	// Since we receive only the data portion, maximum size is 253 bytes (255 - 1 - 1)
	if len(b) > 253 {
		return &RSNInfo{}, errRSNDataTooLarge
	}

	if len(b) < 8 { // minimum: version(2) + group cipher(4) + pairwise count(2)
		return &RSNInfo{}, errRSNTooShort
	}

	var ri RSNInfo
	ri.Version = binary.LittleEndian.Uint16(b[:2])

	// Note: Most implementations use version 1, but be tolerant of future versions
	// that maintain backward compatibility. Only reject version 0 as invalid.
	if ri.Version == 0 {
		return &ri, errRSNInvalidVersion
	}

	// Group cipher suite (4 octets) - OUI is stored big-endian in the data
	groupCipherOUI := binary.BigEndian.Uint32(b[2:6])
	ri.GroupCipher = RSNCipher(groupCipherOUI)
	pos := 6

	// Pairwise cipher list
	if len(b) < pos+2 {
		return &ri, errRSNTruncatedPairwiseCount
	}
	pcCount := int(binary.LittleEndian.Uint16(b[pos : pos+2]))
	pos += 2

	if pcCount > 60 { // (253-10)/4 ≈ 60 (theoretical max with minimal overhead)
		return &ri, errRSNPairwiseCipherCountTooLarge
	}

	if len(b) < pos+4*pcCount {
		return &ri, errRSNTruncatedPairwiseList
	}

	ri.PairwiseCiphers = make([]RSNCipher, 0, pcCount) // Pre-allocate with known capacity
	for i := 0; i < pcCount; i++ {
		sel := binary.BigEndian.Uint32(b[pos : pos+4])
		ri.PairwiseCiphers = append(ri.PairwiseCiphers, RSNCipher(sel))
		pos += 4
	}

	// AKM list
	if len(b) < pos+2 {
		return &ri, nil // AKM list is optional, return what we have
	}
	akmCount := int(binary.LittleEndian.Uint16(b[pos : pos+2]))
	pos += 2

	if akmCount > 60 { // (253-10)/4 ≈ 60 (theoretical max with minimal overhead)
		return &ri, errRSNAKMCountTooLarge
	}

	if len(b) < pos+4*akmCount {
		return &ri, errRSNTruncatedAKMList
	}
	// Additional validation: check if we have enough space for the current counts
	// Calculate minimum required space for what we've parsed so far
	minRequired := 6 + 2 + 4*pcCount + 2 + 4*akmCount // version + group + pairwise_count + pairwise + akm_count + akms
	if len(b) < minRequired {
		return &ri, errRSNTooSmallForCounts
	}

	ri.AKMs = make([]RSNAKM, 0, akmCount) // Pre-allocate with known capacity
	for i := 0; i < akmCount; i++ {
		sel := binary.BigEndian.Uint32(b[pos : pos+4])
		ri.AKMs = append(ri.AKMs, RSNAKM(sel))
		pos += 4
	}

	// Capabilities (optional)
	if len(b) >= pos+2 {
		ri.Capabilities = binary.LittleEndian.Uint16(b[pos : pos+2])
		pos += 2
	}

	// PMKID list – skip if present, with proper bounds checking
	if len(b) >= pos+2 {
		pmkCount := int(binary.LittleEndian.Uint16(b[pos : pos+2]))
		pos += 2

		if pmkCount > 15 { // (253-10)/16 ≈ 15 (theoretical max with minimal overhead)
			return &ri, errRSNPMKIDCountTooLarge
		}

		// Check if we have enough bytes for all PMKIDs
		if len(b) < pos+16*pmkCount {
			return &ri, errRSNTruncatedPMKIDList
		}
		pos += 16 * pmkCount
	}

	// Group‑management cipher (optional, WPA3/802.11w)
	if len(b) >= pos+4 {
		gmCipherOUI := binary.BigEndian.Uint32(b[pos : pos+4])
		ri.GroupMgmtCipher = RSNCipher(gmCipherOUI)
	}

	return &ri, nil
}
