// internal/hal/component.go
package hal

import (
	"fmt"
	"sort"
	"sync"
)

// Dir is the direction of a signal as seen by the supervisory side.
type Dir int

const (
	// In is written by the supervisor, read by the bridge.
	In Dir = iota
	// Out is written by the bridge, read-only to the supervisor.
	Out
	// Param is an operator tunable, read by the bridge each cycle.
	Param
)

func (d Dir) String() string {
	switch d {
	case In:
		return "in"
	case Out:
		return "out"
	case Param:
		return "param"
	}
	return "invalid"
}

type kind int

const (
	kindBit kind = iota
	kindFloat
	kindU32
)

type signal struct {
	dir  Dir
	kind kind

	bit bool
	f   float64
	u   uint32
}

// Component is a named signal set that external supervisory systems bind
// to by name. The bridge publishes outputs through the owning Surface;
// the exported setters are the supervisor side and reject writes to Out
// signals.
type Component struct {
	name string

	mu      sync.RWMutex
	signals map[string]*signal
}

// NewComponent creates an empty component.
func NewComponent(name string) *Component {
	return &Component{
		name:    name,
		signals: make(map[string]*signal),
	}
}

// Name returns the component name. Signal names are qualified as
// "<component>.<signal>" by supervisory systems.
func (c *Component) Name() string {
	return c.name
}

// Signals returns the registered signal names, sorted.
func (c *Component) Signals() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.signals))
	for n := range c.signals {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (c *Component) add(name string, dir Dir, k kind) (*signal, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.signals[name]; exists {
		return nil, fmt.Errorf("hal: duplicate signal %q", name)
	}
	s := &signal{dir: dir, kind: k}
	c.signals[name] = s
	return s, nil
}

// AddBit registers a boolean signal with a default value.
func (c *Component) AddBit(name string, dir Dir, def bool) error {
	s, err := c.add(name, dir, kindBit)
	if err != nil {
		return err
	}
	s.bit = def
	return nil
}

// AddFloat registers a float signal with a default value.
func (c *Component) AddFloat(name string, dir Dir, def float64) error {
	s, err := c.add(name, dir, kindFloat)
	if err != nil {
		return err
	}
	s.f = def
	return nil
}

// AddU32 registers an unsigned counter signal with a default value.
func (c *Component) AddU32(name string, dir Dir, def uint32) error {
	s, err := c.add(name, dir, kindU32)
	if err != nil {
		return err
	}
	s.u = def
	return nil
}

func (c *Component) lookup(name string, k kind) (*signal, error) {
	s, ok := c.signals[name]
	if !ok {
		return nil, fmt.Errorf("hal: unknown signal %q", name)
	}
	if s.kind != k {
		return nil, fmt.Errorf("hal: signal %q has the wrong type", name)
	}
	return s, nil
}

func (c *Component) settable(name string, k kind) (*signal, error) {
	s, err := c.lookup(name, k)
	if err != nil {
		return nil, err
	}
	if s.dir == Out {
		return nil, fmt.Errorf("hal: signal %q is read-only", name)
	}
	return s, nil
}

// ---- supervisor-side accessors ----

// Bit reads a boolean signal by name.
func (c *Component) Bit(name string) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, err := c.lookup(name, kindBit)
	if err != nil {
		return false, err
	}
	return s.bit, nil
}

// SetBit writes a boolean In or Param signal by name.
func (c *Component) SetBit(name string, v bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.settable(name, kindBit)
	if err != nil {
		return err
	}
	s.bit = v
	return nil
}

// Float reads a float signal by name.
func (c *Component) Float(name string) (float64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, err := c.lookup(name, kindFloat)
	if err != nil {
		return 0, err
	}
	return s.f, nil
}

// SetFloat writes a float In or Param signal by name.
func (c *Component) SetFloat(name string, v float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.settable(name, kindFloat)
	if err != nil {
		return err
	}
	s.f = v
	return nil
}

// U32 reads a counter signal by name.
func (c *Component) U32(name string) (uint32, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, err := c.lookup(name, kindU32)
	if err != nil {
		return 0, err
	}
	return s.u, nil
}

// SetU32 writes a counter In or Param signal by name.
func (c *Component) SetU32(name string, v uint32) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.settable(name, kindU32)
	if err != nil {
		return err
	}
	s.u = v
	return nil
}
