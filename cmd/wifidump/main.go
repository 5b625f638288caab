// Command wifidump prints the wireless state of this system: every
// 802.11 interface, the stations its station-mode interfaces are
// associated with, every physical device, and the regulatory domains in
// force.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/radiotail/wifi"
)

func main() {
	var (
		debugFlag = flag.Bool("d", false, "log netlink request payloads and unhandled attributes")
		levelFlag = flag.String("level", "info", "log level: trace, debug, info, warn, error, fatal, panic")
	)

	flag.Parse()

	level := *levelFlag
	if *debugFlag {
		level = "debug"
	}
	initLogger(level)

	c, err := wifi.New()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logrus.Fatal("nl80211 is not available on this system")
		}

		logrus.Fatalf("failed to open nl80211 client: %v", err)
	}
	defer c.Close()

	ifis, err := c.Interfaces()
	if err != nil {
		logrus.Fatalf("failed to list interfaces: %v", err)
	}

	for _, ifi := range ifis {
		printInterface(ifi)

		if ifi.Type != wifi.InterfaceTypeStation {
			continue
		}

		stations, err := c.StationInfo(ifi)
		if err != nil {
			// The interface may have disassociated mid-dump.
			if errors.Is(err, os.ErrNotExist) {
				continue
			}

			logrus.Fatalf("failed to list stations on %q: %v", ifi.Name, err)
		}

		for _, info := range stations {
			printStation(info)
		}
	}

	phys, err := c.PHYs()
	if err != nil {
		logrus.Fatalf("failed to list physical devices: %v", err)
	}

	for _, p := range phys {
		printPHY(p)
	}

	domains, err := c.RegulatoryDomains()
	if err != nil {
		logrus.Fatalf("failed to list regulatory domains: %v", err)
	}

	for _, d := range domains {
		printRegulatoryDomain(d)
	}
}

// initLogger configures the process-wide logrus logger once at startup.
func initLogger(level string) {
	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = logrus.InfoLevel
		logrus.WithError(err).Warn("failed to parse log level, defaulting to info")
	}

	logrus.SetLevel(lvl)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}

func printInterface(ifi *wifi.Interface) {
	fmt.Printf("interface %q: index %d, phy %d, type %s, MAC %s\n",
		ifi.Name, ifi.Index, ifi.PHY, ifi.Type, ifi.HardwareAddr)

	if ifi.SSID != "" {
		fmt.Printf("  ssid %q\n", ifi.SSID)
	}
	if ifi.Frequency != 0 {
		fmt.Printf("  frequency %d MHz (channel %d, width %s)\n",
			ifi.Frequency, wifi.FrequencyToChannel(ifi.Frequency), ifi.ChannelWidth)
	}
	if ifi.TransmitPower != 0 {
		fmt.Printf("  transmit power %.2f dBm\n", float64(ifi.TransmitPower)/100)
	}
}

func printStation(info *wifi.StationInfo) {
	fmt.Printf("  station %s: connected %s, inactive %s\n",
		info.HardwareAddr, info.Connected, info.Inactive)
	fmt.Printf("    signal %d dBm (avg %d dBm), beacons %d (lost %d)\n",
		info.Signal, info.SignalAverage, info.BeaconReceived, info.BeaconLoss)
	// The legacy 32-bit byte counters wrap; prefer the extended
	// counters when the kernel reported them.
	rx, tx := info.ReceivedBytes, info.TransmittedBytes
	if info.ReceivedBytes64 != 0 {
		rx = info.ReceivedBytes64
	}
	if info.TransmittedBytes64 != 0 {
		tx = info.TransmittedBytes64
	}

	fmt.Printf("    rx %d bytes / %d packets, tx %d bytes / %d packets, %d retries, %d failed\n",
		rx, info.ReceivedPackets,
		tx, info.TransmittedPackets,
		info.TransmitRetries, info.TransmitFailed)

	if r := info.TransmitBitrate; r != nil {
		fmt.Printf("    tx bitrate %s\n", bitrate(r))
	}
	if r := info.ReceiveBitrate; r != nil {
		fmt.Printf("    rx bitrate %s\n", bitrate(r))
	}
}

func bitrate(r *wifi.RateInfo) string {
	s := fmt.Sprintf("%.1f Mbit/s", float64(r.Bitrate)/10)
	if r.ConnectionType != wifi.ConnectionTypeUnknown {
		s += fmt.Sprintf(" %s MCS %d, %d streams, %s", r.ConnectionType, r.MCS, r.Streams, r.ChannelWidth)
	}

	return s
}

func printPHY(p *wifi.PHY) {
	fmt.Printf("phy %q: index %d", p.Name, p.Index)
	if p.SelfManagedRegulatory {
		fmt.Print(", self-managed regulatory")
	}
	fmt.Println()

	printBand("2.4 GHz", p.Band2GHz)
	printBand("5 GHz", p.Band5GHz)
	printBand("6 GHz", p.Band6GHz)
}

func printBand(name string, band *wifi.BandAttributes) {
	if band == nil {
		return
	}

	fmt.Printf("  band %s: %d frequencies, %d bitrates\n",
		name, len(band.FrequencyAttributes), len(band.BitrateAttributes))

	for _, f := range band.FrequencyAttributes {
		var notes []string
		if f.Disabled {
			notes = append(notes, "disabled")
		}
		if f.NoIR {
			notes = append(notes, "no IR")
		}
		if f.RadarDetection {
			notes = append(notes, "radar detection")
		}

		suffix := ""
		if len(notes) > 0 {
			suffix = " (" + strings.Join(notes, ", ") + ")"
		}

		fmt.Printf("    %d MHz, max %.2f dBm%s\n", f.Frequency, float64(f.MaxTxPower)/100, suffix)
	}
}

func printRegulatoryDomain(d *wifi.RegulatoryDomain) {
	scope := "global"
	if d.PHY != wifi.PHYAny {
		scope = fmt.Sprintf("phy %d", d.PHY)
	}
	if d.SelfManaged {
		scope += ", self-managed"
	}

	fmt.Printf("regulatory domain %q (%s): DFS region %s\n", d.CountryCode, scope, d.DFSRegion)

	for _, r := range d.Rules {
		fmt.Printf("  %d-%d kHz @ %d kHz, eirp %d mBm\n",
			r.FrequencyRangeStart, r.FrequencyRangeEnd, r.MaxBandwidth, r.MaxEIRP)
	}
}
