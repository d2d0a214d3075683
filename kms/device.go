// SPDX-License-Identifier: Unlicense OR MIT

package kms

import (
	"strings"
	"time"

	"github.com/wayscroll/wayscroll/internal/wlog"
)

// DrmNode identifies a DRM device file, e.g. "/dev/dri/card0".
type DrmNode string

// ConnectorID identifies one connector on a device, e.g. "eDP-1".
type ConnectorID string

// Connector is the scanner cache entry for one connected output.
type Connector struct {
	ID                  ConnectorID
	Make, Model, Serial string
	Modes               []Mode
	PanelOrientation    int
	VRRCapable          bool
	LaptopPanel         bool
	LidClosed           bool
}

// Name returns the identifier layout code should treat as this
// connector's output name: the connector ID, which stays unique even
// where Dedup has cleared a repeated make/model/serial.
func (c Connector) Name() string { return string(c.ID) }

// Dedup clears make/model/serial on connectors whose triple repeats an
// earlier one, so layout code never sees two outputs it would
// otherwise treat as the same physical monitor. Connectors are
// compared in the order given; the first occurrence of a triple keeps
// it, later ones are cleared.
func Dedup(connectors []Connector) []Connector {
	seen := make(map[string]bool)
	out := make([]Connector, len(connectors))
	for i, c := range connectors {
		key := triple(c)
		if key != "" {
			if seen[key] {
				c.Make, c.Model, c.Serial = "", "", ""
			} else {
				seen[key] = true
			}
		}
		out[i] = c
	}
	return out
}

func triple(c Connector) string {
	if c.Make == "" && c.Model == "" && c.Serial == "" {
		return ""
	}
	return strings.Join([]string{c.Make, c.Model, c.Serial}, "\x00")
}

// CrtcInfo is the per-(connector,crtc) scan cache the manager keeps
// instead of re-querying the kernel on every commit.
type CrtcInfo struct {
	CrtcID       uint32
	Mode         Mode
	GammaLUTSize int
	GammaBlobID  uint32
}

// Surface is the per-CRTC DRM compositor; kms treats it opaquely and
// only manages its lifecycle.
type Surface interface {
	Destroy()
}

// OutputDevice is the per-DrmNode state: the scan cache, active
// surfaces, and lease/gamma bookkeeping.
type OutputDevice struct {
	Node       DrmNode
	RenderNode bool // false for a device that was rejected as software-only
	Connectors map[ConnectorID]Connector
	Crtcs      map[ConnectorID]CrtcInfo
	Surfaces   map[ConnectorID]Surface

	pendingGamma map[ConnectorID][]uint16
	active       bool
}

func newOutputDevice(node DrmNode) *OutputDevice {
	return &OutputDevice{
		Node:         node,
		Connectors:   make(map[ConnectorID]Connector),
		Crtcs:        make(map[ConnectorID]CrtcInfo),
		Surfaces:     make(map[ConnectorID]Surface),
		pendingGamma: make(map[ConnectorID][]uint16),
		active:       true,
	}
}

// Backend is the set of DRM/GBM/EGL operations the manager performs
// against a real device; production wiring implements it against
// libdrm/libgbm/EGL, tests implement it in memory.
type Backend interface {
	Open(node DrmNode) (renderNode bool, err error)
	ScanConnectors(node DrmNode) ([]Connector, error)
	CreateSurface(node DrmNode, c Connector, mode Mode, vrr bool) (Surface, error)
	CommitAtomic(node DrmNode, req AtomicModeReq) error
	SetGammaLUT(node DrmNode, c ConnectorID, lut []uint16) (blobID uint32, err error)
}

// Manager holds every known OutputDevice and dispatches hotplug,
// pause/resume, and gamma requests against a Backend.
type Manager struct {
	backend Backend
	devices map[DrmNode]*OutputDevice
	primary DrmNode

	paused                     bool
	updateOutputConfigOnResume bool
	updateIgnoredNodesOnResume bool

	// keepPanelOnWhenLidClosed mirrors the session's
	// keep_laptop_panel_on_when_lid_is_closed setting; threaded into
	// every BuildCleanupCommit call so a config change takes effect on
	// the next rescan without needing a device replug.
	keepPanelOnWhenLidClosed bool

	onNewOutput func(node DrmNode, c Connector, s Surface)
}

// SetKeepPanelOnWhenLidClosed updates the laptop-lid policy applied to
// future rescans.
func (m *Manager) SetKeepPanelOnWhenLidClosed(v bool) {
	m.keepPanelOnWhenLidClosed = v
}

// NewManager builds an empty manager against backend. onNewOutput is
// called for every connector that gets a Surface created, handing the
// new output off to layout code.
func NewManager(backend Backend, onNewOutput func(DrmNode, Connector, Surface)) *Manager {
	return &Manager{
		backend:     backend,
		devices:     make(map[DrmNode]*OutputDevice),
		onNewOutput: onNewOutput,
	}
}

// AddDevice opens node and registers it, rejecting software renderers.
func (m *Manager) AddDevice(node DrmNode) error {
	renderNode, err := m.backend.Open(node)
	if err != nil {
		wlog.DeviceWarn(string(node), err)
		return err
	}
	if !renderNode {
		wlog.DeviceWarn(string(node), errNotARenderNode)
		return errNotARenderNode
	}
	dev := newOutputDevice(node)
	m.devices[node] = dev
	if m.primary == "" {
		m.primary = node
	}
	return m.rescan(dev)
}

// DeviceChanged rescans node's connectors on a hotplug event,
// creating surfaces for anything newly connected.
func (m *Manager) DeviceChanged(node DrmNode) error {
	dev, ok := m.devices[node]
	if !ok {
		return nil
	}
	return m.rescan(dev)
}

func (m *Manager) rescan(dev *OutputDevice) error {
	if m.paused {
		return nil
	}
	connectors, err := m.backend.ScanConnectors(dev.Node)
	if err != nil {
		wlog.DRMTransient(string(dev.Node), err)
		return err
	}
	connectors = Dedup(connectors)
	for _, c := range connectors {
		if _, exists := dev.Connectors[c.ID]; exists {
			dev.Connectors[c.ID] = c
			continue
		}
		dev.Connectors[c.ID] = c
		if err := m.bringUp(dev, c); err != nil {
			wlog.DRMTransient(string(c.ID), err)
		}
	}
	req := BuildCleanupCommit(dev, connectedSet(connectors), m.keepPanelOnWhenLidClosed)
	if err := m.backend.CommitAtomic(dev.Node, req); err != nil {
		wlog.DRMTransient(string(dev.Node), err)
	}
	return nil
}

func connectedSet(cs []Connector) map[ConnectorID]bool {
	out := make(map[ConnectorID]bool, len(cs))
	for _, c := range cs {
		out[c.ID] = true
	}
	return out
}

func (m *Manager) bringUp(dev *OutputDevice, c Connector) error {
	mode, _, ok := PickMode(c.Modes, nil)
	if !ok {
		return errNoModes
	}
	vrr := c.VRRCapable
	surf, err := m.backend.CreateSurface(dev.Node, c, mode, vrr)
	if err != nil {
		return err
	}
	dev.Crtcs[c.ID] = CrtcInfo{Mode: mode}
	dev.Surfaces[c.ID] = surf
	if m.onNewOutput != nil {
		m.onNewOutput(dev.Node, c, surf)
	}
	return nil
}

// dmabufGrace is the delay before destroying a removed primary
// device's dmabuf global, so clients have time to release buffers
// backed by it.
const dmabufGrace = 10 * time.Second

// DeviceRemoved disconnects every connector on node. If node owned the
// primary render node, the caller should destroy the dmabuf global
// after dmabufGrace (the actual timer lives in the event loop, outside
// this package).
func (m *Manager) DeviceRemoved(node DrmNode) (wasPrimary bool, graceDelay time.Duration) {
	dev, ok := m.devices[node]
	if !ok {
		return false, 0
	}
	for id, s := range dev.Surfaces {
		s.Destroy()
		delete(dev.Surfaces, id)
	}
	delete(m.devices, node)
	wasPrimary = node == m.primary
	if wasPrimary {
		m.primary = ""
		for n := range m.devices {
			m.primary = n
			break
		}
	}
	return wasPrimary, dmabufGrace
}

var errNotARenderNode = managerError("device rejected: software renderer")
var errNoModes = managerError("connector advertises no modes")

type managerError string

func (e managerError) Error() string { return string(e) }
