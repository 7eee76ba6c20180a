package control

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/choden-dev/ajazz-launchpad/internal/binding"
	"github.com/choden-dev/ajazz-launchpad/internal/codec"
	"github.com/choden-dev/ajazz-launchpad/internal/device"
	"github.com/choden-dev/ajazz-launchpad/internal/hid"
	"github.com/choden-dev/ajazz-launchpad/internal/inputevent"
	"github.com/choden-dev/ajazz-launchpad/internal/ipc"
	"github.com/choden-dev/ajazz-launchpad/internal/keys"
	"github.com/choden-dev/ajazz-launchpad/internal/protocol"
	"github.com/choden-dev/ajazz-launchpad/internal/store"
)

// IPCTransport is the subset of ipc.Server the control loop drives. It is
// an interface so tests can substitute a fake.
type IPCTransport interface {
	AcceptConnectionAsync() error
	ReadMessage() ([]byte, error)
	CleanupDisconnected()
	ConnectedClients() int
}

// Loop wires the device driver, config store, binding table, IPC server,
// and keystroke executor together into the five-state control loop.
type Loop struct {
	state State

	discover func(ctx context.Context) (hid.Transport, error)
	store    *store.Store
	ipc      IPCTransport
	executor binding.Executor
	bindings *binding.Table

	device   *device.Device
	deviceOK bool
}

// New constructs a Loop. discover is called by the InitializeDevice state
// and should block (retrying) until a launchpad transport is available or
// ctx is canceled.
func New(discover func(ctx context.Context) (hid.Transport, error), st *store.Store, transport IPCTransport, executor binding.Executor) *Loop {
	return &Loop{
		state:    InitializeDevice,
		discover: discover,
		store:    st,
		ipc:      transport,
		executor: executor,
		bindings: binding.New(),
	}
}

// Run drives the state machine until ctx is canceled.
func (l *Loop) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := l.step(ctx); err != nil {
			return err
		}
	}
}

func (l *Loop) step(ctx context.Context) error {
	switch l.state {
	case InitializeDevice:
		l.initializeDevice(ctx)
	case EstablishConnection:
		l.establishConnection()
	case ReadClientMessages:
		l.readClientMessages()
	case HandleDeviceInput:
		l.handleDeviceInput()
	case PruneConnections:
		l.ipc.CleanupDisconnected()
	}

	connections := l.ipc.ConnectedClients()
	l.state = Next(l.state, connections, l.deviceOK)
	return nil
}

func (l *Loop) initializeDevice(ctx context.Context) {
	transport, err := l.discover(ctx)
	if err != nil {
		log.Printf("[control] device discovery aborted: %v", err)
		return
	}

	d, err := device.New(transport, l.dispatchInput)
	if err != nil {
		log.Printf("[control] device init failed: %v", err)
		return
	}
	l.device = d
	l.deviceOK = true

	if err := l.device.Refresh(); err != nil {
		log.Printf("[control] refresh failed: %v", err)
	}

	l.replayPersistedState()
}

func (l *Loop) dispatchInput(event inputevent.InputEvent) {
	if err := l.bindings.Execute(event, l.executor); err != nil {
		log.Printf("[control] executing binding for %v: %v", event, err)
	}
}

// replayPersistedState loads every persisted image binding, input
// binding, and the brightness singleton, and applies them to the fresh
// device handle and binding table.
func (l *Loop) replayPersistedState() {
	images, err := l.store.GetAllImageBindings()
	if err != nil {
		log.Printf("[control] loading image bindings: %v", err)
	}
	for _, img := range images {
		zone, err := codec.ZoneFromWireID(byte(img.DisplayZoneID))
		if err != nil {
			log.Printf("[control] image binding for unknown zone %d: %v", img.DisplayZoneID, err)
			continue
		}
		f, err := os.Open(img.ImagePath)
		if err != nil {
			// File no longer exists: skip silently.
			continue
		}
		info, err := f.Stat()
		if err != nil {
			f.Close()
			continue
		}
		if err := l.device.SetDisplayZoneImage(zone, uint32(info.Size()), f); err != nil {
			log.Printf("[control] uploading image for %v: %v", zone, err)
		}
		f.Close()
	}

	persisted, err := l.store.GetAllInputBindings()
	if err != nil {
		log.Printf("[control] loading input bindings: %v", err)
	}
	loaded := binding.New()
	for _, b := range persisted {
		seq, err := keys.DecodeSequence(b.Actions)
		if err != nil {
			log.Printf("[control] decoding stored actions for %d: %v", b.ButtonID, err)
			continue
		}
		loaded.Set(b.ButtonID, seq)
	}
	l.bindings.OverrideMerge(loaded)

	if brightness, ok, err := l.store.GetBrightness(); err != nil {
		log.Printf("[control] loading brightness: %v", err)
	} else if ok {
		if err := l.device.SetBrightness(brightness); err != nil {
			log.Printf("[control] applying persisted brightness: %v", err)
		}
	}
}

func (l *Loop) establishConnection() {
	if err := l.ipc.AcceptConnectionAsync(); err != nil {
		log.Printf("[control] accept: %v", err)
	}
}

func (l *Loop) readClientMessages() {
	payload, err := l.ipc.ReadMessage()
	if err != nil {
		if !errors.Is(err, ipc.ErrWouldBlock) {
			log.Printf("[control] read client message: %v", err)
		}
		return
	}

	cmd, err := protocol.Decode(payload)
	if err != nil {
		log.Printf("[control] decode command: %v", err)
		return
	}
	l.applyCommand(cmd)
}

func (l *Loop) applyCommand(cmd protocol.Command) {
	switch cmd.Kind {
	case protocol.KeyConfig:
		id, err := cmd.InputEvent.ID()
		if err != nil {
			return // Unknown input id: nothing to bind.
		}
		l.bindings.Set(id, cmd.Actions)
		if err := l.store.SetInputBinding(id, keys.EncodeSequence(cmd.Actions)); err != nil {
			log.Printf("[control] persisting input binding: %v", err)
		}

	case protocol.SetDisplayZoneImage:
		wireID, err := cmd.Zone.WireID()
		if err != nil {
			return
		}
		if err := l.store.SetImageBinding(uint16(wireID), cmd.Path); err != nil {
			log.Printf("[control] persisting image binding: %v", err)
			return
		}
		f, err := os.Open(cmd.Path)
		if err != nil {
			log.Printf("[control] opening image %s: %v", cmd.Path, err)
			return
		}
		defer f.Close()
		info, err := f.Stat()
		if err != nil {
			return
		}
		if l.device != nil {
			if err := l.device.SetDisplayZoneImage(cmd.Zone, uint32(info.Size()), f); err != nil {
				log.Printf("[control] uploading image: %v", err)
			}
		}

	case protocol.ClearDisplayZoneImage:
		wireID, err := cmd.Zone.WireID()
		if err != nil {
			return
		}
		if err := l.store.ClearImageBinding(uint16(wireID)); err != nil {
			log.Printf("[control] clearing image binding: %v", err)
		}
		if l.device != nil {
			if err := l.device.ClearDisplayZoneImage(cmd.Zone); err != nil {
				log.Printf("[control] clearing zone image on device: %v", err)
			}
		}

	case protocol.ClearAllDisplayZoneImages:
		if cmd.Unpersist {
			if err := l.store.ClearAllImageBindings(); err != nil {
				log.Printf("[control] clearing all image bindings: %v", err)
			}
		}
		if l.device != nil {
			if err := l.device.ClearAllImages(); err != nil {
				log.Printf("[control] clearing all images on device: %v", err)
			}
		}

	case protocol.SetBootLogo:
		f, err := os.Open(cmd.Path)
		if err != nil {
			log.Printf("[control] opening boot logo %s: %v", cmd.Path, err)
			return
		}
		defer f.Close()
		info, err := f.Stat()
		if err != nil {
			return
		}
		if l.device != nil {
			if err := l.device.SetBackgroundImage(uint32(info.Size()), f); err != nil {
				log.Printf("[control] uploading boot logo: %v", err)
			}
		}

	case protocol.SetBrightness:
		if err := l.store.SetBrightness(cmd.Brightness); err != nil {
			log.Printf("[control] persisting brightness: %v", err)
		}
		if l.device != nil {
			if err := l.device.SetBrightness(cmd.Brightness); err != nil {
				log.Printf("[control] applying brightness: %v", err)
			}
		}
	}
}

func (l *Loop) handleDeviceInput() {
	if l.device == nil {
		l.deviceOK = false
		return
	}
	err := l.device.ReadInput()
	if err == nil {
		return
	}
	if errors.Is(err, hid.ErrDeviceDisconnected) {
		log.Printf("[control] device disconnected")
		l.device.Close()
		l.device = nil
		l.deviceOK = false
		return
	}
	log.Printf("[control] read input: %v", err)
}
