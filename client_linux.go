//go:build linux
// +build linux

package wifi

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/mdlayher/genetlink"
	"github.com/mdlayher/netlink"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// Errors which may occur when checking generic netlink responses.
var (
	errInvalidCommand       = errors.New("invalid generic netlink response command")
	errInvalidFamilyVersion = errors.New("invalid generic netlink response family version")
)

var (
	ErrNotSupported      = errors.New("not supported")
	ErrScanGroupNotFound = errors.New("scan multicast group unavailable")
	ErrScanAborted       = errors.New("scan aborted by the kernel")
	ErrScanValidation    = errors.New("scan validation failed")
)

var _ osClient = &client{}

// A client is the Linux implementation of osClient, which makes use of
// netlink, generic netlink, and nl80211 to provide access to WiFi device
// actions and statistics.
type client struct {
	c             *genetlink.Conn
	familyID      uint16
	familyVersion uint8

	// scan is used to synchronize access to the Scan method.
	scan sync.Mutex
}

// newClient dials a generic netlink connection and verifies that nl80211
// is available for use by this package.
func newClient() (*client, error) {
	c, err := genetlink.Dial(nil)
	if err != nil {
		return nil, err
	}

	// Make a best effort to apply the strict options set to provide better
	// errors and validation. We don't apply Strict in the constructor because
	// kernels older than 4.12 do not support a lot of these options.
	for _, o := range []netlink.ConnOption{
		netlink.ExtendedAcknowledge,
		netlink.GetStrictCheck,
	} {
		_ = c.SetOption(o, true)
	}

	return initClient(c)
}

// initClient resolves the nl80211 family by name so that requests are
// addressed to whatever ID the running kernel assigned it.
func initClient(c *genetlink.Conn) (*client, error) {
	family, err := c.GetFamily(unix.NL80211_GENL_NAME)
	if err != nil {
		// Ensure the genl socket is closed on error to avoid leaking file
		// descriptors.
		_ = c.Close()
		return nil, err
	}

	return &client{
		c:             c,
		familyID:      family.ID,
		familyVersion: family.Version,
	}, nil
}

// Close closes the client's generic netlink connection.
func (c *client) Close() error {
	return c.c.Close()
}

// SetDeadline sets the read and write deadlines associated with the connection.
func (c *client) SetDeadline(t time.Time) error {
	return c.c.SetDeadline(t)
}

// SetReadDeadline sets the read deadline associated with the connection.
func (c *client) SetReadDeadline(t time.Time) error {
	return c.c.SetReadDeadline(t)
}

// SetWriteDeadline sets the write deadline associated with the connection.
func (c *client) SetWriteDeadline(t time.Time) error {
	return c.c.SetWriteDeadline(t)
}

// execute marshals req's attributes, frames them in a generic netlink
// message addressed to the nl80211 family, and performs one full
// request/response exchange. Multi-part dump replies are collected into
// the returned slice; acknowledgement-only exchanges return no messages.
func (c *client) execute(req request) ([]genetlink.Message, error) {
	b, err := netlink.MarshalAttributes(req.attrs)
	if err != nil {
		return nil, err
	}

	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		logrus.WithFields(logrus.Fields{
			"command": req.cmd,
			"payload": hex.EncodeToString(b),
		}).Debug("nl80211 request")
	}

	return c.c.Execute(
		genetlink.Message{
			Header: genetlink.Header{
				Command: req.cmd,
				Version: c.familyVersion,
			},
			Data: b,
		},
		c.familyID,
		req.flags,
	)
}

// executeContext performs the same exchange as execute, but suspends on
// ctx: when ctx has a deadline it is applied to the connection for the
// duration of the exchange, and when ctx is canceled mid-exchange the
// pending receive is unblocked and ctx's error is returned.
func (c *client) executeContext(ctx context.Context, req request) ([]genetlink.Message, error) {
	// Fast path: a context which can never expire imposes nothing on the
	// exchange.
	if ctx.Done() == nil {
		if _, ok := ctx.Deadline(); !ok {
			return c.execute(req)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if deadline, ok := ctx.Deadline(); ok {
		if err := c.c.SetDeadline(deadline); err != nil {
			return nil, err
		}
		defer func() { _ = c.c.SetDeadline(time.Time{}) }()
	}

	var (
		done  = make(chan struct{})
		watch = make(chan struct{})
	)

	go func() {
		defer close(watch)
		select {
		case <-ctx.Done():
			// Force a pending receive to fail now. The bogus deadline is
			// cleared by drain before the connection is reused.
			_ = c.c.SetReadDeadline(time.Unix(0, 1))
		case <-done:
		}
	}()

	msgs, err := c.execute(req)

	// Stop the watcher and wait for it so a late deadline poke cannot race
	// with the cleanup below.
	close(done)
	<-watch

	if cerr := ctx.Err(); cerr != nil {
		// The exchange may have been abandoned mid-dump. Clear out any
		// replies still queued on the socket so the next request does not
		// consume them as its own.
		c.drain()
		return nil, cerr
	}

	return msgs, err
}

// drain discards any messages left queued on the connection by an
// abandoned exchange, then restores the read deadline.
//
// A short future deadline is used rather than an already-expired one
// because the runtime fails reads on an expired deadline without ever
// visiting the socket.
func (c *client) drain() {
	_ = c.c.SetReadDeadline(time.Now().Add(time.Millisecond))
	for {
		if _, _, err := c.c.Receive(); err != nil {
			break
		}
	}
	_ = c.c.SetReadDeadline(time.Time{})
}

// checkMessages verifies that dump replies carry the nl80211 command the
// kernel answers that dump with, and the family version this client
// spoke.
func (c *client) checkMessages(msgs []genetlink.Message, command uint8) error {
	for _, m := range msgs {
		if m.Header.Command != command {
			return errInvalidCommand
		}
		if m.Header.Version != c.familyVersion {
			return errInvalidFamilyVersion
		}
	}

	return nil
}

// Interfaces requests that nl80211 return a list of all WiFi interfaces
// present on this system.
func (c *client) Interfaces() ([]*Interface, error) {
	return c.InterfacesContext(context.Background())
}

// InterfacesContext is Interfaces with ctx applied to the exchange.
func (c *client) InterfacesContext(ctx context.Context) ([]*Interface, error) {
	msgs, err := c.executeContext(ctx, interfacesRequest())
	if err != nil {
		return nil, err
	}

	if err := c.checkMessages(msgs, unix.NL80211_CMD_NEW_INTERFACE); err != nil {
		return nil, err
	}

	return parseInterfaces(msgs)
}

// Interface requests the WiFi interface with the given interface index.
// If no such interface exists, an error compatible with os.ErrNotExist
// is returned.
func (c *client) Interface(ifIndex int) (*Interface, error) {
	return c.InterfaceContext(context.Background(), ifIndex)
}

// InterfaceContext is Interface with ctx applied to the exchange.
func (c *client) InterfaceContext(ctx context.Context, ifIndex int) (*Interface, error) {
	msgs, err := c.executeContext(ctx, interfaceRequest(ifIndex))
	if err != nil {
		return nil, err
	}

	if err := c.checkMessages(msgs, unix.NL80211_CMD_NEW_INTERFACE); err != nil {
		return nil, err
	}

	ifis, err := parseInterfaces(msgs)
	if err != nil {
		return nil, err
	}

	// The kernel ignores the index filter on this dump, so select the
	// requested interface from whatever came back.
	for _, ifi := range ifis {
		if ifi.Index == ifIndex {
			return ifi, nil
		}
	}

	return nil, os.ErrNotExist
}

// SetInterfaceType changes the operating mode of an interface, e.g. from
// station to monitor. The kernel replies with an acknowledgement only.
func (c *client) SetInterfaceType(ifi *Interface, typ InterfaceType) error {
	return c.SetInterfaceTypeContext(context.Background(), ifi, typ)
}

// SetInterfaceTypeContext is SetInterfaceType with ctx applied to the
// exchange.
func (c *client) SetInterfaceTypeContext(ctx context.Context, ifi *Interface, typ InterfaceType) error {
	_, err := c.executeContext(ctx, setInterfaceRequest(ifi.Index, typ))
	return err
}

// SetMonitorFlags puts an interface into monitor mode with the given
// monitor behavior flags. No flags selects plain monitor mode.
func (c *client) SetMonitorFlags(ifi *Interface, flags []MonitorFlag) error {
	return c.SetMonitorFlagsContext(context.Background(), ifi, flags)
}

// SetMonitorFlagsContext is SetMonitorFlags with ctx applied to the
// exchange.
func (c *client) SetMonitorFlagsContext(ctx context.Context, ifi *Interface, flags []MonitorFlag) error {
	req, err := setMonitorFlagsRequest(ifi.Index, flags)
	if err != nil {
		return err
	}

	_, err = c.executeContext(ctx, req)
	return err
}

// SetChannel switches an interface to the given channel configuration.
// The interface must be in a mode which permits channel switching, such
// as monitor mode.
func (c *client) SetChannel(ifi *Interface, config ChannelConfig) error {
	return c.SetChannelContext(context.Background(), ifi, config)
}

// SetChannelContext is SetChannel with ctx applied to the exchange.
func (c *client) SetChannelContext(ctx context.Context, ifi *Interface, config ChannelConfig) error {
	_, err := c.executeContext(ctx, setChannelRequest(ifi.Index, config))
	return err
}

// TriggerScan asks the kernel to start a wildcard scan on an interface.
// The request returns once the scan is scheduled; completion is
// announced on the scan multicast group, after which AccessPoints
// returns the results. See Scan for a variant which manages the whole
// cycle.
func (c *client) TriggerScan(ifi *Interface) error {
	return c.TriggerScanContext(context.Background(), ifi)
}

// TriggerScanContext is TriggerScan with ctx applied to the exchange.
func (c *client) TriggerScanContext(ctx context.Context, ifi *Interface) error {
	_, err := c.executeContext(ctx, triggerScanRequest(ifi.Index))
	return err
}

// AbortScan cancels an ongoing scan on an interface.
func (c *client) AbortScan(ifi *Interface) error {
	return c.AbortScanContext(context.Background(), ifi)
}

// AbortScanContext is AbortScan with ctx applied to the exchange.
func (c *client) AbortScanContext(ctx context.Context, ifi *Interface) error {
	_, err := c.executeContext(ctx, abortScanRequest(ifi.Index))
	return err
}

// StationInfo requests that nl80211 return all station info for the
// specified Interface. When ifi carries a hardware address, only the
// station with that address is requested.
func (c *client) StationInfo(ifi *Interface) ([]*StationInfo, error) {
	return c.StationInfoContext(context.Background(), ifi)
}

// StationInfoContext is StationInfo with ctx applied to the exchange.
func (c *client) StationInfoContext(ctx context.Context, ifi *Interface) ([]*StationInfo, error) {
	msgs, err := c.executeContext(ctx, stationsRequest(ifi))
	if err != nil {
		return nil, err
	}

	if err := c.checkMessages(msgs, unix.NL80211_CMD_NEW_STATION); err != nil {
		return nil, err
	}

	stations := make([]*StationInfo, len(msgs))
	for i := range msgs {
		if stations[i], err = parseStationInfo(msgs[i].Data); err != nil {
			return nil, err
		}
	}

	return stations, nil
}

// PHYs requests that nl80211 return a list of all wireless physical
// devices known to the kernel. The dump is requested in split form and
// the pieces belonging to one device are merged before being returned.
func (c *client) PHYs() ([]*PHY, error) {
	return c.PHYsContext(context.Background())
}

// PHYsContext is PHYs with ctx applied to the exchange.
func (c *client) PHYsContext(ctx context.Context) ([]*PHY, error) {
	msgs, err := c.executeContext(ctx, physRequest())
	if err != nil {
		return nil, err
	}

	if err := c.checkMessages(msgs, unix.NL80211_CMD_NEW_WIPHY); err != nil {
		return nil, err
	}

	return parsePHYs(msgs)
}

// PHY requests the wireless physical device with the given index. If no
// such device exists, an error compatible with os.ErrNotExist is
// returned.
func (c *client) PHY(phyIndex int) (*PHY, error) {
	return c.PHYContext(context.Background(), phyIndex)
}

// PHYContext is PHY with ctx applied to the exchange.
func (c *client) PHYContext(ctx context.Context, phyIndex int) (*PHY, error) {
	msgs, err := c.executeContext(ctx, phyRequest(phyIndex))
	if err != nil {
		return nil, err
	}

	if err := c.checkMessages(msgs, unix.NL80211_CMD_NEW_WIPHY); err != nil {
		return nil, err
	}

	phys, err := parsePHYs(msgs)
	if err != nil {
		return nil, err
	}

	for _, p := range phys {
		if p.Index == phyIndex {
			return p, nil
		}
	}

	return nil, os.ErrNotExist
}

// RegulatoryDomains requests the regulatory domains known to the kernel:
// the global domain, plus one domain per wireless device which manages
// its own regulatory state.
func (c *client) RegulatoryDomains() ([]*RegulatoryDomain, error) {
	return c.RegulatoryDomainsContext(context.Background())
}

// RegulatoryDomainsContext is RegulatoryDomains with ctx applied to the
// exchange.
func (c *client) RegulatoryDomainsContext(ctx context.Context) ([]*RegulatoryDomain, error) {
	msgs, err := c.executeContext(ctx, regulatoryDomainsRequest())
	if err != nil {
		return nil, err
	}

	// GET_REG replies echo the request command rather than announcing a
	// NEW_* counterpart.
	if err := c.checkMessages(msgs, unix.NL80211_CMD_GET_REG); err != nil {
		return nil, err
	}

	return parseRegulatoryDomains(msgs)
}

// Connect starts connecting the interface to the specified ssid.
func (c *client) Connect(ifi *Interface, ssid string) error {
	// Connect is a best-effort attempt: the kernel acknowledges that the
	// connection attempt began, not that it succeeded.
	_, err := c.execute(connectRequest(ifi, ssid))
	return err
}

// Disconnect disconnects the interface.
func (c *client) Disconnect(ifi *Interface) error {
	_, err := c.execute(disconnectRequest(ifi))
	return err
}

// ConnectWPAPSK starts connecting the interface to the specified ssid
// using WPA2-PSK.
func (c *client) ConnectWPAPSK(ifi *Interface, ssid, psk string) error {
	support, err := c.checkExtFeature(ifi, unix.NL80211_EXT_FEATURE_4WAY_HANDSHAKE_STA_PSK)
	if err != nil {
		return err
	}
	if !support {
		return ErrNotSupported
	}

	_, err = c.execute(connectWPAPSKRequest(ifi, ssid, psk))
	return err
}

// BSS requests that nl80211 return the BSS for the specified Interface.
func (c *client) BSS(ifi *Interface) (*BSS, error) {
	msgs, err := c.execute(bssRequest(ifi))
	if err != nil {
		return nil, err
	}

	return parseBSS(msgs)
}

// AccessPoints requests that nl80211 return all the access points
// scanned by the specified Interface.
func (c *client) AccessPoints(ifi *Interface) ([]*BSS, error) {
	msgs, err := c.execute(accessPointsRequest(ifi))
	if err != nil {
		return nil, err
	}

	return parseGetScanResult(msgs)
}

// SurveyInfo requests that nl80211 return per-channel survey data for
// the specified Interface.
func (c *client) SurveyInfo(ifi *Interface) ([]*SurveyInfo, error) {
	msgs, err := c.execute(surveyRequest(ifi))
	if err != nil {
		return nil, err
	}

	surveys := make([]*SurveyInfo, len(msgs))
	for i := range msgs {
		if surveys[i], err = parseSurveyInfo(msgs[i].Data); err != nil {
			return nil, err
		}
	}

	return surveys, nil
}

// Scan starts a wildcard scan on the interface, waits for it to finish,
// and returns the discovered access points. Scan honors ctx's deadline
// if it has one, and Scans of the same client are serialized.
func (c *client) Scan(ctx context.Context, ifi *Interface) ([]*BSS, error) {
	c.scan.Lock()
	defer c.scan.Unlock()

	// A second connection is used for the scan so that multicast scan
	// events cannot interleave with request/response exchanges on the
	// main one.
	conn, err := genetlink.Dial(&netlink.Config{Strict: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open scan connection: %w", err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return nil, fmt.Errorf("failed to set deadline: %w", err)
		}
	}

	family, err := conn.GetFamily(unix.NL80211_GENL_NAME)
	if err != nil {
		return nil, fmt.Errorf("failed to get nl80211 family: %w", err)
	}

	var scanMCID uint32
	for _, group := range family.Groups {
		if group.Name == unix.NL80211_MULTICAST_GROUP_SCAN {
			scanMCID = group.ID
		}
	}
	if scanMCID == 0 {
		return nil, ErrScanGroupNotFound
	}

	if err := conn.JoinGroup(scanMCID); err != nil {
		return nil, fmt.Errorf("failed to join scan group: %w", err)
	}
	defer func() { _ = conn.LeaveGroup(scanMCID) }()

	req, err := wildcardScanRequest(ifi)
	if err != nil {
		return nil, err
	}

	b, err := netlink.MarshalAttributes(req.attrs)
	if err != nil {
		return nil, err
	}

	msg := genetlink.Message{
		Header: genetlink.Header{
			Command: req.cmd,
			Version: family.Version,
		},
		Data: b,
	}

	if _, err := conn.Send(msg, family.ID, req.flags); err != nil {
		return nil, fmt.Errorf("failed to trigger scan: %w", err)
	}

	if err := c.waitForScanDone(ctx, conn, ifi); err != nil {
		return nil, err
	}

	return c.AccessPoints(ifi)
}

// waitForScanDone consumes scan multicast events until the kernel
// announces new scan results for the given interface.
func (c *client) waitForScanDone(ctx context.Context, conn *genetlink.Conn, ifi *Interface) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		msgs, _, err := conn.Receive()
		if err != nil {
			return fmt.Errorf("failed to receive scan event: %w", err)
		}

		for _, msg := range msgs {
			switch msg.Header.Command {
			case unix.NL80211_CMD_SCAN_ABORTED:
				return ErrScanAborted
			case unix.NL80211_CMD_NEW_SCAN_RESULTS:
				event, err := parseInterface(msg.Data)
				if err != nil {
					return errors.Join(ErrScanValidation, err)
				}
				if event.Index == ifi.Index {
					return nil
				}
			}
		}
	}
}

// checkExtFeature reports whether the wiphy behind an interface
// advertises the given extended feature.
func (c *client) checkExtFeature(ifi *Interface, feature uint) (bool, error) {
	msgs, err := c.execute(extFeaturesRequest(ifi))
	if err != nil {
		return false, err
	}

	var features []byte
found:
	for i := range msgs {
		ad, err := netlink.NewAttributeDecoder(msgs[i].Data)
		if err != nil {
			return false, err
		}

		for ad.Next() {
			if ad.Type() == unix.NL80211_ATTR_EXT_FEATURES {
				features = ad.Bytes()
				break found
			}
		}

		if err := ad.Err(); err != nil {
			return false, err
		}
	}

	if feature/8 >= uint(len(features)) {
		return false, nil
	}

	return features[feature/8]&(1<<(feature%8)) != 0, nil
}

// parseInterfaces parses zero or more Interfaces from nl80211 interface
// messages.
func parseInterfaces(msgs []genetlink.Message) ([]*Interface, error) {
	ifis := make([]*Interface, 0, len(msgs))
	for i := range msgs {
		ifi, err := parseInterface(msgs[i].Data)
		if err != nil {
			return nil, err
		}

		ifis = append(ifis, ifi)
	}

	return ifis, nil
}

// parseInterface decodes a single Interface from the attribute payload
// of one nl80211 interface message.
func parseInterface(b []byte) (*Interface, error) {
	ad, err := netlink.NewAttributeDecoder(b)
	if err != nil {
		return nil, err
	}

	var ifi Interface
	for ad.Next() {
		switch ad.Type() {
		case unix.NL80211_ATTR_IFINDEX:
			ifi.Index = int(ad.Uint32())
		case unix.NL80211_ATTR_IFNAME:
			// String trims the trailing NUL byte the kernel sends.
			ifi.Name = ad.String()
		case unix.NL80211_ATTR_MAC:
			ad.Do(decodeMAC(&ifi.HardwareAddr))
		case unix.NL80211_ATTR_WIPHY:
			ifi.PHY = int(ad.Uint32())
		case unix.NL80211_ATTR_IFTYPE:
			// NOTE: InterfaceType copies the ordering of nl80211's interface
			// type constants. This may not be the case on other operating
			// systems.
			ifi.Type = InterfaceType(ad.Uint32())
		case unix.NL80211_ATTR_WDEV:
			ifi.Device = int(ad.Uint64())
		case unix.NL80211_ATTR_WIPHY_FREQ:
			ifi.Frequency = int(ad.Uint32())
		case unix.NL80211_ATTR_WIPHY_FREQ_OFFSET:
			ifi.FrequencyOffset = int(ad.Uint32())
		case unix.NL80211_ATTR_CENTER_FREQ1:
			ifi.CenterFrequency1 = int(ad.Uint32())
		case unix.NL80211_ATTR_CENTER_FREQ2:
			ifi.CenterFrequency2 = int(ad.Uint32())
		case unix.NL80211_ATTR_CHANNEL_WIDTH:
			ifi.ChannelWidth = ChannelWidth(ad.Uint32())
		case unix.NL80211_ATTR_GENERATION:
			ifi.Generation = int(ad.Uint32())
		case unix.NL80211_ATTR_SSID:
			ifi.SSID = decodeSSID(ad.Bytes())
		case unix.NL80211_ATTR_WIPHY_TX_POWER_LEVEL:
			ifi.TransmitPower = int(ad.Uint32())
		case unix.NL80211_ATTR_4ADDR:
			ifi.Use4AddressFrames = ad.Uint8() != 0
		case unix.NL80211_ATTR_TXQ_STATS:
			txq := &TXQStats{}
			ad.Nested(func(nad *netlink.AttributeDecoder) error {
				parseTXQStats(txq, nad)
				return nil
			})
			ifi.TXQStats = txq
		default:
			logrus.Debugf("unhandled interface attribute: %d", ad.Type())
		}
	}
	if err := ad.Err(); err != nil {
		return nil, fmt.Errorf("invalid interface attributes: %w", err)
	}

	return &ifi, nil
}

// parseSurveyInfo decodes a single SurveyInfo from the attribute payload
// of one nl80211 survey message.
func parseSurveyInfo(b []byte) (*SurveyInfo, error) {
	ad, err := netlink.NewAttributeDecoder(b)
	if err != nil {
		return nil, err
	}

	var info SurveyInfo
	for ad.Next() {
		switch ad.Type() {
		case unix.NL80211_ATTR_IFINDEX:
			info.InterfaceIndex = int(ad.Uint32())
		case unix.NL80211_ATTR_SURVEY_INFO:
			ad.Nested(func(nad *netlink.AttributeDecoder) error {
				for nad.Next() {
					switch nad.Type() {
					case unix.NL80211_SURVEY_INFO_FREQUENCY:
						info.Frequency = int(nad.Uint32())
					case unix.NL80211_SURVEY_INFO_NOISE:
						nad.Do(decodeSignal(&info.Noise))
					case unix.NL80211_SURVEY_INFO_IN_USE:
						info.InUse = true
					case unix.NL80211_SURVEY_INFO_TIME:
						info.ChannelTime = time.Duration(nad.Uint64()) * time.Millisecond
					case unix.NL80211_SURVEY_INFO_TIME_BUSY:
						info.ChannelTimeBusy = time.Duration(nad.Uint64()) * time.Millisecond
					case unix.NL80211_SURVEY_INFO_TIME_EXT_BUSY:
						info.ChannelTimeExtBusy = time.Duration(nad.Uint64()) * time.Millisecond
					case unix.NL80211_SURVEY_INFO_TIME_BSS_RX:
						info.ChannelTimeBssRx = time.Duration(nad.Uint64()) * time.Millisecond
					case unix.NL80211_SURVEY_INFO_TIME_RX:
						info.ChannelTimeRx = time.Duration(nad.Uint64()) * time.Millisecond
					case unix.NL80211_SURVEY_INFO_TIME_TX:
						info.ChannelTimeTx = time.Duration(nad.Uint64()) * time.Millisecond
					case unix.NL80211_SURVEY_INFO_TIME_SCAN:
						info.ChannelTimeScan = time.Duration(nad.Uint64()) * time.Millisecond
					default:
						logrus.Debugf("unhandled survey info attribute: %d", nad.Type())
					}
				}
				return nil
			})
		}
	}
	if err := ad.Err(); err != nil {
		return nil, fmt.Errorf("invalid survey info attributes: %w", err)
	}

	return &info, nil
}

// decodeMAC returns an attribute decoding function which enforces that a
// hardware address attribute carries exactly six bytes.
func decodeMAC(dst *net.HardwareAddr) func(b []byte) error {
	return func(b []byte) error {
		if len(b) != 6 {
			return fmt.Errorf("invalid hardware address length: %d", len(b))
		}

		mac := make(net.HardwareAddr, 6)
		copy(mac, b)
		*dst = mac
		return nil
	}
}

// decodeSignal returns an attribute decoding function for the signed
// single-byte dBm values nl80211 reports signal strength with.
func decodeSignal(dst *int) func(b []byte) error {
	return func(b []byte) error {
		if len(b) != 1 {
			return fmt.Errorf("invalid signal strength length: %d", len(b))
		}

		*dst = int(int8(b[0]))
		return nil
	}
}
