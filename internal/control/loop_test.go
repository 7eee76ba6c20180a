package control

import (
	"context"
	"errors"
	"testing"

	"github.com/choden-dev/ajazz-launchpad/internal/codec"
	"github.com/choden-dev/ajazz-launchpad/internal/executor"
	"github.com/choden-dev/ajazz-launchpad/internal/hid"
	"github.com/choden-dev/ajazz-launchpad/internal/inputevent"
	"github.com/choden-dev/ajazz-launchpad/internal/keys"
	"github.com/choden-dev/ajazz-launchpad/internal/protocol"
	"github.com/choden-dev/ajazz-launchpad/internal/store"
)

// fakeTransport is a minimal in-memory hid.Transport for exercising the
// control loop without a real device.
type fakeTransport struct {
	writes  [][]byte
	closed  bool
	failing bool
}

func (f *fakeTransport) Read(buf []byte) (int, error) {
	if f.failing {
		return 0, hid.ErrDeviceDisconnected
	}
	return 0, nil
}

func (f *fakeTransport) Write(data []byte) (int, error) {
	cp := append([]byte(nil), data...)
	f.writes = append(f.writes, cp)
	return len(data), nil
}

func (f *fakeTransport) SetBlockingMode(bool) error { return nil }
func (f *fakeTransport) Close() error               { f.closed = true; return nil }

// fakeIPC is a stand-in for ipc.Server driven directly by the test instead
// of a real socket.
type fakeIPC struct {
	pending     [][]byte
	connections int
	pruned      int
}

func (f *fakeIPC) AcceptConnectionAsync() error { return nil }

func (f *fakeIPC) ReadMessage() ([]byte, error) {
	if len(f.pending) == 0 {
		return nil, errors.New("ipc: would block")
	}
	msg := f.pending[0]
	f.pending = f.pending[1:]
	return msg, nil
}

func (f *fakeIPC) CleanupDisconnected() { f.pruned++ }
func (f *fakeIPC) ConnectedClients() int { return f.connections }

func newTestLoop(t *testing.T, transport *fakeTransport) (*Loop, *store.Store, *executor.Fake) {
	t.Helper()
	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	discover := func(ctx context.Context) (hid.Transport, error) {
		return transport, nil
	}
	exec := &executor.Fake{}
	loop := New(discover, st, &fakeIPC{}, exec)
	return loop, st, exec
}

// TestInitializeDeviceReplaysPersistedState exercises the
// InitializeDevice action: persisted input bindings and brightness must
// both be applied to the fresh device and binding table.
func TestInitializeDeviceReplaysPersistedState(t *testing.T) {
	transport := &fakeTransport{}
	loop, st, exec := newTestLoop(t, transport)

	event := inputevent.Button(4, inputevent.Pressed)
	id, err := event.ID()
	if err != nil {
		t.Fatalf("event.ID: %v", err)
	}
	seq := keys.Sequence{keys.NamedKey(keys.Add)}
	if err := st.SetInputBinding(id, keys.EncodeSequence(seq)); err != nil {
		t.Fatalf("SetInputBinding: %v", err)
	}
	if err := st.SetBrightness(42); err != nil {
		t.Fatalf("SetBrightness: %v", err)
	}

	loop.initializeDevice(context.Background())

	if !loop.deviceOK {
		t.Fatal("expected deviceOK after successful initialization")
	}

	loop.dispatchInput(event)
	if len(exec.Calls) != 1 {
		t.Fatalf("expected one executed sequence, got %d", len(exec.Calls))
	}
	if exec.Calls[0][0].Named != keys.Add {
		t.Fatalf("executed sequence = %v, want [Add]", exec.Calls[0])
	}

	foundBrightness := false
	for _, w := range transport.writes {
		if len(w) == codec.CommandReportSize && w[11] == 42 {
			foundBrightness = true
		}
	}
	if !foundBrightness {
		t.Fatal("expected persisted brightness to be written to the device")
	}
}

// TestHandleDeviceInputDetectsDisconnect exercises the HandleDeviceInput
// → InitializeDevice transition driven by a device disconnect error.
func TestHandleDeviceInputDetectsDisconnect(t *testing.T) {
	transport := &fakeTransport{}
	loop, _, _ := newTestLoop(t, transport)
	loop.initializeDevice(context.Background())

	transport.failing = true
	loop.handleDeviceInput()

	if loop.deviceOK {
		t.Fatal("expected deviceOK=false after disconnect")
	}
	if loop.device != nil {
		t.Fatal("expected device handle cleared after disconnect")
	}
}

// TestApplyCommandKeyConfigUpdatesBindingAndStore checks that a KeyConfig
// command persists the binding and makes it available to the binding
// table immediately.
func TestApplyCommandKeyConfigUpdatesBindingAndStore(t *testing.T) {
	transport := &fakeTransport{}
	loop, st, exec := newTestLoop(t, transport)
	loop.initializeDevice(context.Background())

	event := inputevent.Knob(1, inputevent.Clockwise)
	cmd := protocol.Command{
		Kind:       protocol.KeyConfig,
		InputEvent: event,
		Actions:    keys.Sequence{keys.NamedKey(keys.Add)},
	}
	loop.applyCommand(cmd)

	loop.dispatchInput(event)
	if len(exec.Calls) != 1 {
		t.Fatalf("expected binding to be applied immediately, got %d calls", len(exec.Calls))
	}

	bindings, err := st.GetAllInputBindings()
	if err != nil {
		t.Fatalf("GetAllInputBindings: %v", err)
	}
	if len(bindings) != 1 {
		t.Fatalf("expected one persisted binding, got %d", len(bindings))
	}
}

// TestApplyCommandSetBrightnessPersistsAndWrites checks the brightness
// command's write side through the command-protocol path.
func TestApplyCommandSetBrightnessPersistsAndWrites(t *testing.T) {
	transport := &fakeTransport{}
	loop, st, _ := newTestLoop(t, transport)
	loop.initializeDevice(context.Background())
	transport.writes = nil // Drop the replay-time writes; only look at this command's effect.

	loop.applyCommand(protocol.Command{Kind: protocol.SetBrightness, Brightness: 69})

	got, ok, err := st.GetBrightness()
	if err != nil || !ok {
		t.Fatalf("GetBrightness: %d %v %v", got, ok, err)
	}
	if got != 69 {
		t.Fatalf("GetBrightness = %d, want 69", got)
	}
	if len(transport.writes) != 1 || transport.writes[0][11] != 69 {
		t.Fatalf("expected one brightness write of 69, got %v", transport.writes)
	}
}

// TestApplyCommandClearAllDisplayZoneImagesUnpersist checks that
// ClearAllDisplayZoneImages{unpersist=true} empties the store.
func TestApplyCommandClearAllDisplayZoneImagesUnpersist(t *testing.T) {
	transport := &fakeTransport{}
	loop, st, _ := newTestLoop(t, transport)
	loop.initializeDevice(context.Background())

	if err := st.SetImageBinding(3, "fat.jpg"); err != nil {
		t.Fatalf("SetImageBinding: %v", err)
	}

	loop.applyCommand(protocol.Command{Kind: protocol.ClearAllDisplayZoneImages, Unpersist: true})

	bindings, err := st.GetAllImageBindings()
	if err != nil {
		t.Fatalf("GetAllImageBindings: %v", err)
	}
	if len(bindings) != 0 {
		t.Fatalf("expected no image bindings after unpersist clear, got %d", len(bindings))
	}
}
