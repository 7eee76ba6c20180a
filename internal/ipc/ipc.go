// Package ipc implements the length-prefixed UNIX domain socket transport
// clients use to talk to the daemon.
package ipc

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"sync"
	"time"
)

// DefaultSocketPath is the fixed filesystem path the daemon listens on.
const DefaultSocketPath = "/tmp/ajazz-launchpad-socket"

// MaxFrameSize is the largest accepted message payload.
const MaxFrameSize = 10 * 1024 * 1024 // 10 MiB

// ErrWouldBlock is returned by Server.ReadMessage when no stream currently
// has a full frame available.
var ErrWouldBlock = errors.New("ipc: would block")

// ErrFrameTooLarge is returned when a frame's declared length exceeds
// MaxFrameSize.
var ErrFrameTooLarge = errors.New("ipc: frame exceeds maximum size")

const lengthPrefixSize = 8

func writeFrame(w io.Writer, payload []byte) error {
	var header [lengthPrefixSize]byte
	binary.LittleEndian.PutUint64(header[:], uint64(len(payload)))
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("ipc: write length prefix: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("ipc: write payload: %w", err)
	}
	return nil
}

func readFrame(r io.Reader) ([]byte, error) {
	var header [lengthPrefixSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, err
	}
	length := binary.LittleEndian.Uint64(header[:])
	if length > MaxFrameSize {
		return nil, ErrFrameTooLarge
	}
	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("ipc: read payload: %w", err)
	}
	return payload, nil
}

// Server accepts connections on a UNIX domain stream socket and exchanges
// length-prefixed frames with each connected client, never blocking the
// control loop.
type Server struct {
	mu       sync.Mutex
	listener *net.UnixListener
	conns    []*streamConn
	path     string
}

// streamConn tracks one accepted connection plus whether a hard I/O error
// (as opposed to a non-blocking timeout) has been observed on it. Liveness
// is tracked this way, rather than by a speculative read, so that
// CleanupDisconnected never consumes application bytes meant for
// ReadMessage.
type streamConn struct {
	conn *net.UnixConn
	dead bool
}

// NewServer removes any stale socket at path and binds a new listener.
func NewServer(path string) (*Server, error) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ipc: remove stale socket %s: %w", path, err)
	}
	addr, err := net.ResolveUnixAddr("unix", path)
	if err != nil {
		return nil, fmt.Errorf("ipc: resolve %s: %w", path, err)
	}
	listener, err := net.ListenUnix("unix", addr)
	if err != nil {
		return nil, fmt.Errorf("ipc: listen on %s: %w", path, err)
	}
	return &Server{listener: listener, path: path}, nil
}

// AcceptConnectionAsync performs one accept attempt that waits at most one
// millisecond. Absence of a pending connection is not an error.
func (s *Server) AcceptConnectionAsync() error {
	if err := s.listener.SetDeadline(time.Now().Add(time.Millisecond)); err != nil {
		return fmt.Errorf("ipc: set accept deadline: %w", err)
	}
	conn, err := s.listener.AcceptUnix()
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return nil
		}
		return fmt.Errorf("ipc: accept: %w", err)
	}
	if err := conn.SetReadDeadline(time.Now()); err != nil {
		conn.Close()
		return fmt.Errorf("ipc: configure accepted stream: %w", err)
	}

	s.mu.Lock()
	s.conns = append(s.conns, &streamConn{conn: conn})
	s.mu.Unlock()
	return nil
}

// ReadMessage returns the first frame ready on any connected stream, or
// ErrWouldBlock if none is ready. A framing error on one stream does not
// propagate; that stream is simply skipped for this call.
func (s *Server) ReadMessage() ([]byte, error) {
	s.mu.Lock()
	conns := append([]*streamConn(nil), s.conns...)
	s.mu.Unlock()

	for _, sc := range conns {
		sc.conn.SetReadDeadline(time.Now().Add(time.Millisecond))
		payload, err := readFrame(sc.conn)
		if err == nil {
			return payload, nil
		}
		if ne, ok := err.(net.Error); !ok || !ne.Timeout() {
			s.markDead(sc)
		}
		// Timeout (nothing readable yet): move on to the next stream without
		// propagating. A hard error marks the stream dead for
		// CleanupDisconnected but otherwise does not propagate either.
	}
	return nil, ErrWouldBlock
}

func (s *Server) markDead(target *streamConn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	target.dead = true
}

// SendMessage writes a framed message to every connected stream. Streams
// that fail to write are removed.
func (s *Server) SendMessage(payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	alive := s.conns[:0]
	for _, sc := range s.conns {
		sc.conn.SetWriteDeadline(time.Now().Add(time.Second))
		if err := writeFrame(sc.conn, payload); err != nil {
			sc.conn.Close()
			continue
		}
		alive = append(alive, sc)
	}
	s.conns = alive
	return nil
}

// CleanupDisconnected drops streams whose peer address has become invalid,
// including any marked dead by a prior ReadMessage I/O error. (SendMessage
// removes the streams it fails to write to itself.)
func (s *Server) CleanupDisconnected() {
	s.mu.Lock()
	defer s.mu.Unlock()

	alive := s.conns[:0]
	for _, sc := range s.conns {
		if sc.dead || sc.conn.RemoteAddr() == nil {
			sc.conn.Close()
			continue
		}
		alive = append(alive, sc)
	}
	s.conns = alive
}

// ConnectedClients returns the number of currently tracked streams.
func (s *Server) ConnectedClients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

// Close shuts down the listener, every accepted stream, and removes the
// socket file.
func (s *Server) Close() error {
	s.mu.Lock()
	for _, sc := range s.conns {
		sc.conn.Close()
	}
	s.conns = nil
	s.mu.Unlock()

	if err := s.listener.Close(); err != nil {
		return fmt.Errorf("ipc: close listener: %w", err)
	}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("ipc: remove socket %s: %w", s.path, err)
	}
	return nil
}

// Client is a blocking connection to the daemon's IPC socket.
type Client struct {
	conn *net.UnixConn
}

// Dial connects to the daemon's socket at path.
func Dial(path string) (*Client, error) {
	addr, err := net.ResolveUnixAddr("unix", path)
	if err != nil {
		return nil, fmt.Errorf("ipc: resolve %s: %w", path, err)
	}
	conn, err := net.DialUnix("unix", nil, addr)
	if err != nil {
		return nil, fmt.Errorf("ipc: dial %s: %w", path, err)
	}
	return &Client{conn: conn}, nil
}

// SendMessage writes one framed message, blocking until fully sent.
func (c *Client) SendMessage(payload []byte) error {
	return writeFrame(c.conn, payload)
}

// ReadMessage blocks until one full framed message is available.
func (c *Client) ReadMessage() ([]byte, error) {
	return readFrame(c.conn)
}

// Close closes the client connection.
func (c *Client) Close() error {
	return c.conn.Close()
}
