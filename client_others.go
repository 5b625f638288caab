//go:build !linux
// +build !linux

package wifi

import (
	"context"
	"time"
)

var _ osClient = &client{}

// A client is the no-op implementation for platforms without nl80211.
type client struct{}

func newClient() (*client, error) { return nil, errUnimplemented }

func (*client) Close() error { return errUnimplemented }

func (*client) Interfaces() ([]*Interface, error) { return nil, errUnimplemented }
func (*client) InterfacesContext(_ context.Context) ([]*Interface, error) {
	return nil, errUnimplemented
}

func (*client) Interface(_ int) (*Interface, error) { return nil, errUnimplemented }
func (*client) InterfaceContext(_ context.Context, _ int) (*Interface, error) {
	return nil, errUnimplemented
}

func (*client) SetInterfaceType(_ *Interface, _ InterfaceType) error { return errUnimplemented }
func (*client) SetInterfaceTypeContext(_ context.Context, _ *Interface, _ InterfaceType) error {
	return errUnimplemented
}

func (*client) SetMonitorFlags(_ *Interface, _ []MonitorFlag) error { return errUnimplemented }
func (*client) SetMonitorFlagsContext(_ context.Context, _ *Interface, _ []MonitorFlag) error {
	return errUnimplemented
}

func (*client) SetChannel(_ *Interface, _ ChannelConfig) error { return errUnimplemented }
func (*client) SetChannelContext(_ context.Context, _ *Interface, _ ChannelConfig) error {
	return errUnimplemented
}

func (*client) TriggerScan(_ *Interface) error { return errUnimplemented }
func (*client) TriggerScanContext(_ context.Context, _ *Interface) error {
	return errUnimplemented
}

func (*client) AbortScan(_ *Interface) error { return errUnimplemented }
func (*client) AbortScanContext(_ context.Context, _ *Interface) error {
	return errUnimplemented
}

func (*client) StationInfo(_ *Interface) ([]*StationInfo, error) { return nil, errUnimplemented }
func (*client) StationInfoContext(_ context.Context, _ *Interface) ([]*StationInfo, error) {
	return nil, errUnimplemented
}

func (*client) PHYs() ([]*PHY, error) { return nil, errUnimplemented }
func (*client) PHYsContext(_ context.Context) ([]*PHY, error) {
	return nil, errUnimplemented
}

func (*client) PHY(_ int) (*PHY, error) { return nil, errUnimplemented }
func (*client) PHYContext(_ context.Context, _ int) (*PHY, error) {
	return nil, errUnimplemented
}

func (*client) RegulatoryDomains() ([]*RegulatoryDomain, error) { return nil, errUnimplemented }
func (*client) RegulatoryDomainsContext(_ context.Context) ([]*RegulatoryDomain, error) {
	return nil, errUnimplemented
}

func (*client) Connect(_ *Interface, _ string) error          { return errUnimplemented }
func (*client) Disconnect(_ *Interface) error                 { return errUnimplemented }
func (*client) ConnectWPAPSK(_ *Interface, _, _ string) error { return errUnimplemented }

func (*client) BSS(_ *Interface) (*BSS, error)                 { return nil, errUnimplemented }
func (*client) AccessPoints(_ *Interface) ([]*BSS, error)      { return nil, errUnimplemented }
func (*client) SurveyInfo(_ *Interface) ([]*SurveyInfo, error) { return nil, errUnimplemented }

func (*client) Scan(_ context.Context, _ *Interface) ([]*BSS, error) {
	return nil, errUnimplemented
}

func (*client) SetDeadline(_ time.Time) error      { return errUnimplemented }
func (*client) SetReadDeadline(_ time.Time) error  { return errUnimplemented }
func (*client) SetWriteDeadline(_ time.Time) error { return errUnimplemented }
