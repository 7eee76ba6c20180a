package hid

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeTransport is an in-memory Transport recording writes, used by this
// package's tests. (internal/device's tests define their own mock.)
type fakeTransport struct {
	writes  [][]byte
	reads   [][]byte
	closed  bool
	failing bool
}

func (f *fakeTransport) Read(buf []byte) (int, error) {
	if f.failing {
		return 0, ErrDeviceDisconnected
	}
	if len(f.reads) == 0 {
		return 0, nil
	}
	next := f.reads[0]
	f.reads = f.reads[1:]
	return copy(buf, next), nil
}

func (f *fakeTransport) Write(data []byte) (int, error) {
	if f.failing {
		return 0, errors.New("write failed")
	}
	cp := append([]byte(nil), data...)
	f.writes = append(f.writes, cp)
	return len(data), nil
}

func (f *fakeTransport) SetBlockingMode(bool) error { return nil }
func (f *fakeTransport) Close() error               { f.closed = true; return nil }

func TestDiscoverSucceedsOnFirstWorkingPath(t *testing.T) {
	attempts := 0
	enumerate := func() []DeviceCandidate {
		attempts++
		return []DeviceCandidate{
			{Path: "bad", Open: func() (Transport, error) { return nil, errors.New("no") }},
			{Path: "good", Open: func() (Transport, error) { return &fakeTransport{}, nil }},
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	transport, err := Discover(ctx, enumerate)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if transport == nil {
		t.Fatal("expected a transport")
	}
	if attempts != 1 {
		t.Fatalf("expected one enumeration attempt, got %d", attempts)
	}
}

func TestDiscoverRetriesUntilContextCanceled(t *testing.T) {
	enumerate := func() []DeviceCandidate { return nil }

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := Discover(ctx, enumerate)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}
