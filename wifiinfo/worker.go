// Package wifiinfo maintains periodically refreshed snapshots of the
// wireless state of a system: its interfaces, the stations its
// station-mode interfaces talk to, and its physical devices.
//
// A Worker owns the wireless client it polls with, so consumers such as
// status bars and terminal UIs can read a coherent snapshot at any time
// without issuing netlink requests of their own.
package wifiinfo

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/radiotail/wifi"
)

// DefaultInterval is the snapshot refresh interval used when New is
// given a nonpositive one.
const DefaultInterval = 100 * time.Millisecond

// A Lister retrieves the wireless state a Worker snapshots. It is
// implemented by *wifi.Client.
type Lister interface {
	Interfaces() ([]*wifi.Interface, error)
	StationInfo(ifi *wifi.Interface) ([]*wifi.StationInfo, error)
	PHYs() ([]*wifi.PHY, error)
}

var _ Lister = &wifi.Client{}

// Mailbox messages. Snapshot reads carry a reply channel; updates carry
// the next snapshot.
type (
	getInterfaces struct{ reply chan []*wifi.Interface }
	getStations   struct{ reply chan []*wifi.StationInfo }
	getPHYs       struct{ reply chan []*wifi.PHY }

	updateInterfaces struct{ ifis []*wifi.Interface }
	updateStations   struct{ stations []*wifi.StationInfo }
	updatePHYs       struct{ phys []*wifi.PHY }

	shutdown struct{}
)

// A Worker refreshes wireless state snapshots in the background and
// serves them to any number of goroutines.
//
// All snapshots are served by a single owner goroutine which alternates
// between reads and updates, so a snapshot is always internally
// consistent. The Worker polls with the Lister from its own goroutine;
// the Lister must not be used concurrently elsewhere while the Worker
// runs, and it is not closed by the Worker.
type Worker struct {
	msgs chan interface{}
	done chan struct{}

	closeOnce sync.Once
	wg        sync.WaitGroup
}

// New starts a Worker that refreshes its snapshots from c every
// interval. If interval is not positive, DefaultInterval is used.
func New(c Lister, interval time.Duration) *Worker {
	if interval <= 0 {
		interval = DefaultInterval
	}

	w := &Worker{
		msgs: make(chan interface{}),
		done: make(chan struct{}),
	}

	w.wg.Add(2)
	go func() {
		defer w.wg.Done()
		w.run()
	}()
	go func() {
		defer w.wg.Done()
		w.poll(c, interval)
	}()

	return w
}

// Close stops the Worker and waits for its goroutines to finish. It is
// safe to call more than once.
func (w *Worker) Close() error {
	w.closeOnce.Do(func() {
		// Stopping the poller first is not required: a poller blocked on
		// an update completes it against the still-running owner, then
		// observes done and quits.
		close(w.done)
		w.msgs <- shutdown{}
		w.wg.Wait()
	})

	return nil
}

// Interfaces returns the latest wireless interface snapshot. The slice
// belongs to the caller; its entries are shared and must be treated as
// read-only. Before the first refresh completes, and after Close, the
// snapshot is empty.
func (w *Worker) Interfaces() []*wifi.Interface {
	reply := make(chan []*wifi.Interface, 1)
	select {
	case w.msgs <- getInterfaces{reply: reply}:
		return <-reply
	case <-w.done:
		return nil
	}
}

// Stations returns the latest station snapshot, aggregated over every
// station-mode interface. See Interfaces for the snapshot contract.
func (w *Worker) Stations() []*wifi.StationInfo {
	reply := make(chan []*wifi.StationInfo, 1)
	select {
	case w.msgs <- getStations{reply: reply}:
		return <-reply
	case <-w.done:
		return nil
	}
}

// PHYs returns the latest physical device snapshot. See Interfaces for
// the snapshot contract.
func (w *Worker) PHYs() []*wifi.PHY {
	reply := make(chan []*wifi.PHY, 1)
	select {
	case w.msgs <- getPHYs{reply: reply}:
		return <-reply
	case <-w.done:
		return nil
	}
}

// run is the owner goroutine: it holds the snapshots and serializes
// every read and update.
func (w *Worker) run() {
	var (
		ifis     []*wifi.Interface
		stations []*wifi.StationInfo
		phys     []*wifi.PHY
	)

	for msg := range w.msgs {
		switch m := msg.(type) {
		case getInterfaces:
			m.reply <- append([]*wifi.Interface(nil), ifis...)
		case getStations:
			m.reply <- append([]*wifi.StationInfo(nil), stations...)
		case getPHYs:
			m.reply <- append([]*wifi.PHY(nil), phys...)
		case updateInterfaces:
			ifis = m.ifis
		case updateStations:
			stations = m.stations
		case updatePHYs:
			phys = m.phys
		case shutdown:
			return
		}
	}
}

// poll refreshes the snapshots until the Worker is closed.
func (w *Worker) poll(c Lister, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		if !w.refresh(c) {
			return
		}

		select {
		case <-w.done:
			return
		case <-t.C:
		}
	}
}

// refresh gathers one round of snapshots and hands them to the owner
// goroutine. It reports false once the Worker is closed. Failed
// listings leave the previous snapshot in place.
func (w *Worker) refresh(c Lister) bool {
	ifis, err := c.Interfaces()
	if err != nil {
		logrus.Debugf("wifiinfo: failed to list interfaces: %v", err)
	} else {
		var stations []*wifi.StationInfo
		for _, ifi := range ifis {
			if ifi.Type != wifi.InterfaceTypeStation {
				continue
			}

			infos, err := c.StationInfo(ifi)
			if err != nil {
				logrus.Debugf("wifiinfo: failed to list stations on %q: %v", ifi.Name, err)
				continue
			}

			stations = append(stations, infos...)
		}

		if !w.send(updateStations{stations: stations}) {
			return false
		}
		if !w.send(updateInterfaces{ifis: ifis}) {
			return false
		}
	}

	phys, err := c.PHYs()
	if err != nil {
		logrus.Debugf("wifiinfo: failed to list physical devices: %v", err)
		return true
	}

	return w.send(updatePHYs{phys: phys})
}

// send delivers one update to the owner goroutine, reporting false once
// the Worker is closed.
func (w *Worker) send(msg interface{}) bool {
	select {
	case w.msgs <- msg:
		return true
	case <-w.done:
		return false
	}
}
