package wifi

import (
	"context"
	"fmt"
	"runtime"
	"time"
)

// errUnimplemented is returned by all functions on platforms that
// cannot make use of 802.11 operations.
var errUnimplemented = fmt.Errorf("wifi: operations not implemented on %s/%s",
	runtime.GOOS, runtime.GOARCH)

// An osClient is the operating system-specific implementation of Client.
// Both the Linux implementation and the stub for other platforms must
// satisfy it.
type osClient interface {
	Close() error
	Interfaces() ([]*Interface, error)
	InterfacesContext(ctx context.Context) ([]*Interface, error)
	Interface(ifIndex int) (*Interface, error)
	InterfaceContext(ctx context.Context, ifIndex int) (*Interface, error)
	SetInterfaceType(ifi *Interface, typ InterfaceType) error
	SetInterfaceTypeContext(ctx context.Context, ifi *Interface, typ InterfaceType) error
	SetMonitorFlags(ifi *Interface, flags []MonitorFlag) error
	SetMonitorFlagsContext(ctx context.Context, ifi *Interface, flags []MonitorFlag) error
	SetChannel(ifi *Interface, config ChannelConfig) error
	SetChannelContext(ctx context.Context, ifi *Interface, config ChannelConfig) error
	TriggerScan(ifi *Interface) error
	TriggerScanContext(ctx context.Context, ifi *Interface) error
	AbortScan(ifi *Interface) error
	AbortScanContext(ctx context.Context, ifi *Interface) error
	StationInfo(ifi *Interface) ([]*StationInfo, error)
	StationInfoContext(ctx context.Context, ifi *Interface) ([]*StationInfo, error)
	PHYs() ([]*PHY, error)
	PHYsContext(ctx context.Context) ([]*PHY, error)
	PHY(phyIndex int) (*PHY, error)
	PHYContext(ctx context.Context, phyIndex int) (*PHY, error)
	RegulatoryDomains() ([]*RegulatoryDomain, error)
	RegulatoryDomainsContext(ctx context.Context) ([]*RegulatoryDomain, error)
	Connect(ifi *Interface, ssid string) error
	Disconnect(ifi *Interface) error
	ConnectWPAPSK(ifi *Interface, ssid, psk string) error
	BSS(ifi *Interface) (*BSS, error)
	AccessPoints(ifi *Interface) ([]*BSS, error)
	SurveyInfo(ifi *Interface) ([]*SurveyInfo, error)
	Scan(ctx context.Context, ifi *Interface) ([]*BSS, error)
	SetDeadline(t time.Time) error
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
}

// A Client is a type which can access WiFi device actions and statistics
// using operating system-specific operations.
type Client struct {
	c *client
}

// New creates a new Client.
func New() (*Client, error) {
	c, err := newClient()
	if err != nil {
		return nil, err
	}

	return &Client{
		c: c,
	}, nil
}

// Close releases resources used by a Client.
func (c *Client) Close() error {
	return c.c.Close()
}

// Interfaces returns a list of the system's WiFi network interfaces.
func (c *Client) Interfaces() ([]*Interface, error) {
	return c.c.Interfaces()
}

// InterfacesContext is Interfaces bounded by ctx's cancelation and
// deadline.
func (c *Client) InterfacesContext(ctx context.Context) ([]*Interface, error) {
	return c.c.InterfacesContext(ctx)
}

// Interface returns the WiFi network interface with the given interface
// index. If no such interface exists, an error compatible with
// os.ErrNotExist is returned.
func (c *Client) Interface(ifIndex int) (*Interface, error) {
	return c.c.Interface(ifIndex)
}

// InterfaceContext is Interface bounded by ctx's cancelation and
// deadline.
func (c *Client) InterfaceContext(ctx context.Context, ifIndex int) (*Interface, error) {
	return c.c.InterfaceContext(ctx, ifIndex)
}

// SetInterfaceType changes the operating mode of a WiFi interface, for
// example from station to monitor.
func (c *Client) SetInterfaceType(ifi *Interface, typ InterfaceType) error {
	return c.c.SetInterfaceType(ifi, typ)
}

// SetInterfaceTypeContext is SetInterfaceType bounded by ctx's
// cancelation and deadline.
func (c *Client) SetInterfaceTypeContext(ctx context.Context, ifi *Interface, typ InterfaceType) error {
	return c.c.SetInterfaceTypeContext(ctx, ifi, typ)
}

// SetMonitorFlags puts a WiFi interface into monitor mode with the given
// monitor behavior flags.
func (c *Client) SetMonitorFlags(ifi *Interface, flags []MonitorFlag) error {
	return c.c.SetMonitorFlags(ifi, flags)
}

// SetMonitorFlagsContext is SetMonitorFlags bounded by ctx's cancelation
// and deadline.
func (c *Client) SetMonitorFlagsContext(ctx context.Context, ifi *Interface, flags []MonitorFlag) error {
	return c.c.SetMonitorFlagsContext(ctx, ifi, flags)
}

// SetChannel switches a WiFi interface to the given channel
// configuration. Most drivers require the interface to be in monitor
// mode first.
func (c *Client) SetChannel(ifi *Interface, config ChannelConfig) error {
	return c.c.SetChannel(ifi, config)
}

// SetChannelContext is SetChannel bounded by ctx's cancelation and
// deadline.
func (c *Client) SetChannelContext(ctx context.Context, ifi *Interface, config ChannelConfig) error {
	return c.c.SetChannelContext(ctx, ifi, config)
}

// TriggerScan asks the kernel to start a wildcard scan on a WiFi
// interface, without waiting for the scan to complete.
func (c *Client) TriggerScan(ifi *Interface) error {
	return c.c.TriggerScan(ifi)
}

// TriggerScanContext is TriggerScan bounded by ctx's cancelation and
// deadline.
func (c *Client) TriggerScanContext(ctx context.Context, ifi *Interface) error {
	return c.c.TriggerScanContext(ctx, ifi)
}

// AbortScan cancels an ongoing scan on a WiFi interface.
func (c *Client) AbortScan(ifi *Interface) error {
	return c.c.AbortScan(ifi)
}

// AbortScanContext is AbortScan bounded by ctx's cancelation and
// deadline.
func (c *Client) AbortScanContext(ctx context.Context, ifi *Interface) error {
	return c.c.AbortScanContext(ctx, ifi)
}

// StationInfo retrieves all station statistics about a WiFi interface.
// An interface with no associated stations yields an empty slice, not an
// error.
func (c *Client) StationInfo(ifi *Interface) ([]*StationInfo, error) {
	return c.c.StationInfo(ifi)
}

// StationInfoContext is StationInfo bounded by ctx's cancelation and
// deadline.
func (c *Client) StationInfoContext(ctx context.Context, ifi *Interface) ([]*StationInfo, error) {
	return c.c.StationInfoContext(ctx, ifi)
}

// PHYs returns a list of the system's wireless physical devices.
func (c *Client) PHYs() ([]*PHY, error) {
	return c.c.PHYs()
}

// PHYsContext is PHYs bounded by ctx's cancelation and deadline.
func (c *Client) PHYsContext(ctx context.Context) ([]*PHY, error) {
	return c.c.PHYsContext(ctx)
}

// PHY returns the wireless physical device with the given index. If no
// such device exists, an error compatible with os.ErrNotExist is
// returned.
func (c *Client) PHY(phyIndex int) (*PHY, error) {
	return c.c.PHY(phyIndex)
}

// PHYContext is PHY bounded by ctx's cancelation and deadline.
func (c *Client) PHYContext(ctx context.Context, phyIndex int) (*PHY, error) {
	return c.c.PHYContext(ctx, phyIndex)
}

// RegulatoryDomains returns the regulatory domains known to the system:
// the global domain, plus one per wireless device managing its own
// regulatory state.
func (c *Client) RegulatoryDomains() ([]*RegulatoryDomain, error) {
	return c.c.RegulatoryDomains()
}

// RegulatoryDomainsContext is RegulatoryDomains bounded by ctx's
// cancelation and deadline.
func (c *Client) RegulatoryDomainsContext(ctx context.Context) ([]*RegulatoryDomain, error) {
	return c.c.RegulatoryDomainsContext(ctx)
}

// Connect starts connecting the interface to the specified ssid.
func (c *Client) Connect(ifi *Interface, ssid string) error {
	return c.c.Connect(ifi, ssid)
}

// Disconnect disconnects the interface.
func (c *Client) Disconnect(ifi *Interface) error {
	return c.c.Disconnect(ifi)
}

// ConnectWPAPSK starts connecting the interface to the specified ssid
// using WPA2-PSK.
func (c *Client) ConnectWPAPSK(ifi *Interface, ssid, psk string) error {
	return c.c.ConnectWPAPSK(ifi, ssid, psk)
}

// BSS retrieves the BSS associated with a WiFi interface.
func (c *Client) BSS(ifi *Interface) (*BSS, error) {
	return c.c.BSS(ifi)
}

// AccessPoints retrieves all the access points scanned by a WiFi
// interface.
func (c *Client) AccessPoints(ifi *Interface) ([]*BSS, error) {
	return c.c.AccessPoints(ifi)
}

// SurveyInfo retrieves per-channel survey data for a WiFi interface.
func (c *Client) SurveyInfo(ifi *Interface) ([]*SurveyInfo, error) {
	return c.c.SurveyInfo(ifi)
}

// Scan starts a wildcard scan on the interface, waits for completion,
// and returns the discovered access points.
func (c *Client) Scan(ctx context.Context, ifi *Interface) ([]*BSS, error) {
	return c.c.Scan(ctx, ifi)
}

// SetDeadline sets the read and write deadlines associated with the connection.
func (c *Client) SetDeadline(t time.Time) error {
	return c.c.SetDeadline(t)
}

// SetReadDeadline sets the read deadline associated with the connection.
func (c *Client) SetReadDeadline(t time.Time) error {
	return c.c.SetReadDeadline(t)
}

// SetWriteDeadline sets the write deadline associated with the connection.
func (c *Client) SetWriteDeadline(t time.Time) error {
	return c.c.SetWriteDeadline(t)
}
