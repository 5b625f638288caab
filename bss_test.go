package wifi

import (
	"bytes"
	"reflect"
	"testing"
)

func TestBSSStatusString(t *testing.T) {
	tests := []struct {
		t BSSStatus
		s string
	}{
		{
			t: BSSStatusAuthenticated,
			s: "authenticated",
		},
		{
			t: BSSStatusAssociated,
			s: "associated",
		},
		{
			t: BSSStatusNotAssociated,
			s: "unassociated",
		},
		{
			t: BSSStatusIBSSJoined,
			s: "IBSS joined",
		},
		{
			t: 4,
			s: "unknown(4)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.s, func(t *testing.T) {
			if want, got := tt.s, tt.t.String(); want != got {
				t.Fatalf("unexpected BSS status string:\n- want: %q\n-  got: %q",
					want, got)
			}
		})
	}
}

func Test_parseIEs(t *testing.T) {
	tests := []struct {
		name string
		b    []byte
		ies  []ie
		err  error
	}{
		{
			name: "empty",
		},
		{
			name: "too short",
			b:    []byte{0x00},
			err:  errInvalidIE,
		},
		{
			name: "length too long",
			b:    []byte{0x00, 0xff, 0x00},
			err:  errInvalidIE,
		},
		{
			name: "OK one",
			b:    []byte{0x00, 0x03, 'f', 'o', 'o'},
			ies: []ie{{
				ID:   0,
				Data: []byte("foo"),
			}},
		},
		{
			name: "OK three",
			b: []byte{
				0x00, 0x03, 'f', 'o', 'o',
				0x01, 0x00,
				0x02, 0x06, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66,
			},
			ies: []ie{
				{
					ID:   0,
					Data: []byte("foo"),
				},
				{
					ID:   1,
					Data: []byte{},
				},
				{
					ID:   2,
					Data: []byte{0x11, 0x22, 0x33, 0x44, 0x55, 0x66},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ies, err := parseIEs(tt.b)

			if want, got := tt.err, err; want != got {
				t.Fatalf("unexpected error:\n- want: %v\n-  got: %v",
					want, got)
			}
			if err != nil {
				t.Logf("err: %v", err)
				return
			}

			if want, got := tt.ies, ies; !reflect.DeepEqual(want, got) {
				t.Fatalf("unexpected ies:\n- want: %v\n-  got: %v",
					want, got)
			}
		})
	}
}

func Test_decodeSSID(t *testing.T) {
	tests := []struct {
		name string
		b    []byte
		s    string
	}{
		{
			name: "ASCII",
			b:    []byte("Home WiFi"),
			s:    "Home WiFi",
		},
		{
			name: "UTF-8",
			b:    []byte("éxample"),
			s:    "éxample",
		},
		{
			name: "invalid bytes become replacement runes",
			b:    []byte{0xff, 'f', 'o', 'o'},
			s:    "�foo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if want, got := tt.s, decodeSSID(tt.b); want != got {
				t.Fatalf("unexpected SSID:\n- want: %q\n-  got: %q",
					want, got)
			}
		})
	}
}

func Test_decodeBSSLoad(t *testing.T) {
	tests := []struct {
		name string
		b    []byte
		load *BSSLoad
		err  error
	}{
		{
			name: "version 2",
			b:    []byte{0x05, 0x00, 0x80, 0xd0, 0x07},
			load: &BSSLoad{
				Version:                    2,
				StationCount:               5,
				ChannelUtilization:         128,
				AvailableAdmissionCapacity: 2000,
			},
		},
		{
			name: "version 1",
			b:    []byte{0x03, 0x00, 0x40, 0x20},
			load: &BSSLoad{
				Version:                    1,
				StationCount:               3,
				ChannelUtilization:         64,
				AvailableAdmissionCapacity: 32,
			},
		},
		{
			name: "wrong length",
			b:    []byte{0x05, 0x00, 0x80},
			err:  errInvalidBSSLoad,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			load, err := decodeBSSLoad(tt.b)

			if want, got := tt.err, err; want != got {
				t.Fatalf("unexpected error:\n- want: %v\n-  got: %v",
					want, got)
			}
			if err != nil {
				t.Logf("err: %v", err)
				return
			}

			if want, got := tt.load, load; !reflect.DeepEqual(want, got) {
				t.Fatalf("unexpected BSS load:\n- want: %v\n-  got: %v",
					want, got)
			}
		})
	}
}

func Test_decodeRSN(t *testing.T) {
	tests := []struct {
		name string
		b    []byte
		ri   *RSNInfo
		err  error
	}{
		{
			name: "WPA2 personal",
			b: []byte{
				// Version 1.
				0x01, 0x00,
				// Group cipher: CCMP-128.
				0x00, 0x0f, 0xac, 0x04,
				// One pairwise cipher: CCMP-128.
				0x01, 0x00,
				0x00, 0x0f, 0xac, 0x04,
				// One AKM: PSK.
				0x01, 0x00,
				0x00, 0x0f, 0xac, 0x02,
				// Capabilities.
				0x0c, 0x00,
			},
			ri: &RSNInfo{
				Version:         1,
				GroupCipher:     RSNCipherCCMP128,
				PairwiseCiphers: []RSNCipher{RSNCipherCCMP128},
				AKMs:            []RSNAKM{RSNAKMPSK},
				Capabilities:    0x000c,
			},
		},
		{
			name: "WPA3 with management frame protection",
			b: []byte{
				// Version 1.
				0x01, 0x00,
				// Group cipher: CCMP-128.
				0x00, 0x0f, 0xac, 0x04,
				// One pairwise cipher: CCMP-128.
				0x01, 0x00,
				0x00, 0x0f, 0xac, 0x04,
				// One AKM: SAE.
				0x01, 0x00,
				0x00, 0x0f, 0xac, 0x08,
				// Capabilities: MFP required and capable.
				0xc0, 0x00,
				// Empty PMKID list.
				0x00, 0x00,
				// Group management cipher: BIP-CMAC-128.
				0x00, 0x0f, 0xac, 0x06,
			},
			ri: &RSNInfo{
				Version:         1,
				GroupCipher:     RSNCipherCCMP128,
				PairwiseCiphers: []RSNCipher{RSNCipherCCMP128},
				AKMs:            []RSNAKM{RSNAKMSAE},
				Capabilities:    0x00c0,
				GroupMgmtCipher: RSNCipherBIPCMAC128,
			},
		},
		{
			name: "OK AKM list absent",
			b: []byte{
				0x01, 0x00,
				0x00, 0x0f, 0xac, 0x04,
				0x01, 0x00,
				0x00, 0x0f, 0xac, 0x04,
			},
			ri: &RSNInfo{
				Version:         1,
				GroupCipher:     RSNCipherCCMP128,
				PairwiseCiphers: []RSNCipher{RSNCipherCCMP128},
			},
		},
		{
			name: "data too large",
			b:    bytes.Repeat([]byte{0x00}, 254),
			err:  errRSNDataTooLarge,
		},
		{
			name: "too short",
			b:    []byte{0x01, 0x00, 0x00, 0x0f, 0xac, 0x04},
			err:  errRSNTooShort,
		},
		{
			name: "version zero",
			b:    []byte{0x00, 0x00, 0x00, 0x0f, 0xac, 0x04, 0x00, 0x00},
			err:  errRSNInvalidVersion,
		},
		{
			name: "pairwise count too large",
			b: []byte{
				0x01, 0x00,
				0x00, 0x0f, 0xac, 0x04,
				// 61 pairwise ciphers cannot fit in one element.
				0x3d, 0x00,
			},
			err: errRSNPairwiseCipherCountTooLarge,
		},
		{
			name: "pairwise list truncated",
			b: []byte{
				0x01, 0x00,
				0x00, 0x0f, 0xac, 0x04,
				// Two pairwise ciphers announced, one present.
				0x02, 0x00,
				0x00, 0x0f, 0xac, 0x04,
			},
			err: errRSNTruncatedPairwiseList,
		},
		{
			name: "AKM list truncated",
			b: []byte{
				0x01, 0x00,
				0x00, 0x0f, 0xac, 0x04,
				0x01, 0x00,
				0x00, 0x0f, 0xac, 0x04,
				// One AKM announced, none present.
				0x01, 0x00,
			},
			err: errRSNTruncatedAKMList,
		},
		{
			name: "PMKID list truncated",
			b: []byte{
				0x01, 0x00,
				0x00, 0x0f, 0xac, 0x04,
				0x01, 0x00,
				0x00, 0x0f, 0xac, 0x04,
				0x01, 0x00,
				0x00, 0x0f, 0xac, 0x02,
				0x0c, 0x00,
				// One PMKID announced, none present.
				0x01, 0x00,
			},
			err: errRSNTruncatedPMKIDList,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ri, err := decodeRSN(tt.b)

			if want, got := tt.err, err; want != got {
				t.Fatalf("unexpected error:\n- want: %v\n-  got: %v",
					want, got)
			}
			if err != nil {
				t.Logf("err: %v", err)
				return
			}

			if want, got := tt.ri, ri; !reflect.DeepEqual(want, got) {
				t.Fatalf("unexpected RSN information:\n- want: %+v\n-  got: %+v",
					want, got)
			}
		})
	}
}

func TestRSNCipherString(t *testing.T) {
	tests := []struct {
		c RSNCipher
		s string
	}{
		{
			c: RSNCipherTKIP,
			s: "TKIP",
		},
		{
			c: RSNCipherCCMP128,
			s: "CCMP-128",
		},
		{
			c: RSNCipherGCMP256,
			s: "GCMP-256",
		},
		{
			c: RSNCipherBIPCMAC128,
			s: "BIP-CMAC-128",
		},
		{
			// Reserved suite selector.
			c: 0x000fac03,
			s: "unknown(0x0fac03)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.s, func(t *testing.T) {
			if want, got := tt.s, tt.c.String(); want != got {
				t.Fatalf("unexpected cipher string:\n- want: %q\n-  got: %q",
					want, got)
			}
		})
	}
}

func TestRSNAKMString(t *testing.T) {
	tests := []struct {
		a RSNAKM
		s string
	}{
		{
			a: RSNAKM8021X,
			s: "802.1X",
		},
		{
			a: RSNAKMPSK,
			s: "PSK",
		},
		{
			a: RSNAKMSAE,
			s: "SAE",
		},
		{
			a: RSNAKMOWE,
			s: "OWE",
		},
		{
			// AP PeerKey is not modeled.
			a: 0x000fac0a,
			s: "unknown(0x0fac0a)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.s, func(t *testing.T) {
			if want, got := tt.s, tt.a.String(); want != got {
				t.Fatalf("unexpected AKM string:\n- want: %q\n-  got: %q",
					want, got)
			}
		})
	}
}
