// internal/modbus/client.go
package modbus

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/goburrow/modbus"
)

// retryLimit is the number of retries after the first attempt.
// A transaction is surfaced as failed only after retryLimit+1 attempts.
const retryLimit = 5

// Transport is the raw register surface the adapter needs from the
// underlying Modbus client. goburrow's modbus.Client satisfies it.
type Transport interface {
	ReadHoldingRegisters(address, quantity uint16) ([]byte, error)
	WriteSingleRegister(address, value uint16) ([]byte, error)
}

// Client wraps one Modbus RTU target with bounded retry.
// It is owned by a single control loop and is not safe for concurrent use.
type Client struct {
	tr     Transport
	errors uint32
}

// Config is the serial transport config for one RTU target.
type Config struct {
	Device   string
	BaudRate int
	Parity   string // "N", "E", "O"
	StopBits int
	SlaveID  byte
	Timeout  time.Duration
	Trace    *log.Logger // optional hex frame dump
}

// New creates a client over an already connected transport.
func New(tr Transport) *Client {
	return &Client{tr: tr}
}

// NewRTUClient opens the serial line and returns a connected client
// plus its closer. Fails fast: connection errors are startup errors.
func NewRTUClient(cfg Config) (*Client, func() error, error) {
	if cfg.Device == "" {
		return nil, nil, errors.New("modbus client: device required")
	}

	h := modbus.NewRTUClientHandler(cfg.Device)
	h.BaudRate = cfg.BaudRate
	h.DataBits = 8
	h.Parity = cfg.Parity
	h.StopBits = cfg.StopBits
	h.SlaveId = cfg.SlaveID
	h.Timeout = cfg.Timeout
	h.Logger = cfg.Trace

	if err := h.Connect(); err != nil {
		return nil, nil, err
	}

	return New(modbus.NewClient(h)), h.Close, nil
}

// Errors returns the count of Modbus transactions that failed after
// exhausting their retries. Monotonic; never reset.
func (c *Client) Errors() uint32 {
	return c.errors
}

// ReadRegisters reads quantity holding registers starting at address.
// A response with any other register count is treated as a failure.
func (c *Client) ReadRegisters(address, quantity uint16) ([]uint16, error) {
	var lastErr error

	for attempt := 1; attempt <= retryLimit+1; attempt++ {
		raw, err := c.tr.ReadHoldingRegisters(address, quantity)
		if err == nil && len(raw) != int(quantity)*2 {
			err = fmt.Errorf("short read: got %d bytes, want %d", len(raw), int(quantity)*2)
		}
		if err == nil {
			return unpackRegisters(raw), nil
		}

		lastErr = err
		log.Printf("modbus: read 0x%04X failed (attempt %d/%d): %v",
			address, attempt, retryLimit+1, err)
	}

	c.errors++
	return nil, lastErr
}

// WriteRegister writes a single holding register at address.
// The write counts as confirmed only when the device echoes the value.
func (c *Client) WriteRegister(address, value uint16) error {
	var lastErr error

	for attempt := 1; attempt <= retryLimit+1; attempt++ {
		resp, err := c.tr.WriteSingleRegister(address, value)
		if err == nil && len(resp) != 2 {
			err = fmt.Errorf("short write echo: got %d bytes, want 2", len(resp))
		}
		if err == nil {
			if echoed := binary.BigEndian.Uint16(resp); echoed != value {
				err = fmt.Errorf("write echo mismatch: got %d, want %d", echoed, value)
			}
		}
		if err == nil {
			return nil
		}

		lastErr = err
		log.Printf("modbus: write 0x%04X failed (attempt %d/%d): %v",
			address, attempt, retryLimit+1, err)
	}

	c.errors++
	return lastErr
}

// unpackRegisters converts a big-endian response payload to register values.
func unpackRegisters(data []byte) []uint16 {
	n := len(data) / 2
	out := make([]uint16, n)
	for i := 0; i < n; i++ {
		out[i] = uint16(data[2*i])<<8 | uint16(data[2*i+1])
	}
	return out
}
