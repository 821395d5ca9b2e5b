// Package netft implements a client for the network interface of ATI
// force/torque transducers. Raw six-axis readings stream over the RDT
// protocol on UDP; calibration parameters are queried over a separate
// TCP port. The wire formats are fixed-size big-endian records, decoded
// in wire.go.
package netft

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"
)

// Default network parameters for a factory-configured Net F/T unit.
const (
	DefaultUDPPort = 49152
	DefaultTCPPort = 49151
	DefaultTimeout = 2 * time.Second
)

// ErrClosed is returned by read and bias operations after Close.
var ErrClosed = errors.New("netft: client is closed")

// RawCounts holds the six unscaled axis counts in sensor order:
// Fx, Fy, Fz, Tx, Ty, Tz.
type RawCounts [6]int32

// Reading is a calibrated six-axis sample. Forces are in the sensor's
// configured force unit, torques in its torque unit.
type Reading struct {
	Fx float64 `json:"fx"`
	Fy float64 `json:"fy"`
	Fz float64 `json:"fz"`
	Tx float64 `json:"tx"`
	Ty float64 `json:"ty"`
	Tz float64 `json:"tz"`
}

// ScaleFactors are the divisors converting raw counts to physical units.
// Both divisors must be strictly positive before any conversion.
type ScaleFactors struct {
	CountsPerForce  float64
	CountsPerTorque float64
}

// Validate rejects divisors that would corrupt count conversion.
func (s ScaleFactors) Validate() error {
	if s.CountsPerForce <= 0 {
		return fmt.Errorf("counts per force must be positive, got %v", s.CountsPerForce)
	}
	if s.CountsPerTorque <= 0 {
		return fmt.Errorf("counts per torque must be positive, got %v", s.CountsPerTorque)
	}
	return nil
}

// Scale converts raw axis counts to physical units. The factors must have
// been validated; New enforces this for readings taken through a Client.
func (r RawCounts) Scale(s ScaleFactors) Reading {
	return Reading{
		Fx: float64(r[0]) / s.CountsPerForce,
		Fy: float64(r[1]) / s.CountsPerForce,
		Fz: float64(r[2]) / s.CountsPerForce,
		Tx: float64(r[3]) / s.CountsPerTorque,
		Ty: float64(r[4]) / s.CountsPerTorque,
		Tz: float64(r[5]) / s.CountsPerTorque,
	}
}

// Config contains the connection parameters for one sensor.
type Config struct {
	Host    string        // sensor IP or hostname (required)
	UDPPort int           // RDT streaming port, DefaultUDPPort if zero
	TCPPort int           // calibration query port, DefaultTCPPort if zero
	Timeout time.Duration // per-exchange deadline, DefaultTimeout if zero
	Scale   ScaleFactors  // count divisors, required and strictly positive
}

func (c Config) withDefaults() Config {
	if c.UDPPort == 0 {
		c.UDPPort = DefaultUDPPort
	}
	if c.TCPPort == 0 {
		c.TCPPort = DefaultTCPPort
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

// Client talks to a single sensor. It owns one UDP socket for its
// lifetime and dials a fresh TCP connection per calibration query.
//
// The RDT protocol carries no request/response correlation, so the
// client serializes send+receive as one atomic unit; concurrent calls
// are safe but execute one at a time.
type Client struct {
	cfg Config

	mu     sync.Mutex
	conn   *net.UDPConn
	closed bool
}

// New validates the configuration and opens the RDT socket. No datagram
// is exchanged until the first read or bias call.
func New(cfg Config) (*Client, error) {
	cfg = cfg.withDefaults()
	if cfg.Host == "" {
		return nil, errors.New("netft: sensor host is required")
	}
	if err := cfg.Scale.Validate(); err != nil {
		return nil, fmt.Errorf("netft: %w", err)
	}

	addr, err := net.ResolveUDPAddr("udp", net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.UDPPort)))
	if err != nil {
		return nil, fmt.Errorf("netft: resolve RDT address: %w", err)
	}
	// Dial rather than listen so the socket only accepts datagrams from
	// the sensor endpoint.
	conn, err := net.DialUDP("udp", nil, addr)
	if err != nil {
		return nil, fmt.Errorf("netft: open RDT socket: %w", err)
	}

	return &Client{cfg: cfg, conn: conn}, nil
}

// ScaleFactors returns the divisors the client converts with.
func (c *Client) ScaleFactors() ScaleFactors {
	return c.cfg.Scale
}

// ReadRawCounts requests a single RDT record and returns the six raw
// axis counts. Exactly one datagram is sent and one received; a lost or
// malformed response fails the call without retrying.
func (c *Client) ReadRawCounts() (RawCounts, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var raw RawCounts
	if c.closed {
		return raw, ErrClosed
	}

	if _, err := c.conn.Write(encodeRDTRequest(cmdStreamOnce, 1)); err != nil {
		return raw, fmt.Errorf("send RDT request: %w", err)
	}
	if err := c.conn.SetReadDeadline(time.Now().Add(c.cfg.Timeout)); err != nil {
		return raw, fmt.Errorf("set RDT read deadline: %w", err)
	}

	// Oversized buffer so a too-long datagram is observed rather than
	// silently truncated to the expected length.
	buf := make([]byte, 2*rdtResponseSize)
	n, err := c.conn.Read(buf)
	if err != nil {
		return raw, fmt.Errorf("receive RDT response: %w", err)
	}
	return DecodeRDTResponse(buf[:n])
}

// ReadFT requests a single record and converts it to physical units
// using the configured scale factors.
func (c *Client) ReadFT() (Reading, error) {
	raw, err := c.ReadRawCounts()
	if err != nil {
		return Reading{}, err
	}
	return raw.Scale(c.cfg.Scale), nil
}

// Bias instructs the sensor firmware to treat the current load as the
// new zero offset. The command is fire-and-forget: the sensor sends no
// acknowledgement, so a send failure is returned for diagnostics but
// leaves the session usable. Callers needing confirmation should issue
// a subsequent read and compare.
func (c *Client) Bias() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if _, err := c.conn.Write(encodeRDTRequest(cmdBias, 0)); err != nil {
		return fmt.Errorf("send bias command: %w", err)
	}
	return nil
}

// Close releases the RDT socket. It is idempotent; reads and bias after
// Close fail with ErrClosed.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	return c.conn.Close()
}
