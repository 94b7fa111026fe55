// Package printer drives the bluetooth thermal printer: a chunked
// write transport over a BLE peripheral and a dispatcher that turns
// orders into deduplicated print jobs.
package printer

import (
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"comanda-be/internal/logger"
)

// UUIDs of the generic serial service exposed by the printer.
const (
	ServiceUUID             = "000018f0-0000-1000-8000-00805f9b34fb"
	WriteCharacteristicUUID = "00002af1-0000-1000-8000-00805f9b34fb"
)

const (
	// BLE ATT payload limit of the printer.
	defaultChunkSize = 20
	// pause between chunks so the print head keeps up
	defaultChunkDelay = 50 * time.Millisecond
	// a remembered device older than this is rescanned from scratch
	stateFreshness = 5 * time.Minute

	stateKey = "last_device"
)

// Scanner discovers peripherals by advertised name. Implementations
// bind to the platform bluetooth stack.
type Scanner interface {
	Scan(ctx context.Context, name string) (Peripheral, error)
}

// Rediscoverer is an optional Scanner capability: reattach to a known
// peripheral by id without a full scan. Stacks that keep a bonded
// device list implement it; everyone else falls back to Scan.
type Rediscoverer interface {
	Rediscover(ctx context.Context, deviceID string) (Peripheral, error)
}

type Peripheral interface {
	ID() string
	Connect(ctx context.Context) error
	Disconnect() error
	Connected() bool
	Characteristic(serviceUUID, charUUID string) (Characteristic, error)
}

// Characteristic writes in the printer's no-response mode; callers get
// no delivery acknowledgement beyond the error.
type Characteristic interface {
	Write(p []byte) error
}

// NoScanner is wired when no platform bluetooth binding is linked in;
// every print attempt then reports the transport unavailable.
type NoScanner struct{}

func (NoScanner) Scan(ctx context.Context, name string) (Peripheral, error) {
	return nil, errors.New("bluetooth stack not available")
}

// Conn is what the dispatcher needs from a transport.
type Conn interface {
	Connect(ctx context.Context) error
	Connected() bool
	Write(ctx context.Context, p []byte) error
}

// DeviceState is the remembered identity of the last printer we talked
// to, persisted across restarts for faster reconnects.
type DeviceState struct {
	ID     string
	Name   string
	SeenAt time.Time
}

func init() {
	gob.Register(DeviceState{})
}

// Transport connects to a named BLE printer and writes payloads in
// rate-limited chunks. Safe for concurrent use; writes serialize on an
// internal mutex.
type Transport struct {
	scanner   Scanner
	name      string
	stateFile string

	state     *cache.Cache
	limiter   *rate.Limiter
	chunkSize int

	mu   sync.Mutex
	dev  Peripheral
	char Characteristic
}

func NewTransport(scanner Scanner, name, stateFile string) *Transport {
	t := &Transport{
		scanner:   scanner,
		name:      name,
		stateFile: stateFile,
		state:     cache.New(stateFreshness, stateFreshness),
		limiter:   rate.NewLimiter(rate.Every(defaultChunkDelay), 1),
		chunkSize: defaultChunkSize,
	}
	if stateFile != "" {
		// best effort, a missing file just means a cold start
		_ = t.state.LoadFile(stateFile)
	}
	return t
}

func (t *Transport) Connected() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dev != nil && t.dev.Connected()
}

// Connect discovers the printer and opens its write characteristic.
// It is a no-op while the previous connection is still up.
func (t *Transport) Connect(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.dev != nil && t.dev.Connected() {
		return nil
	}

	log := logger.FromCtx(ctx).With(zap.String("printer", t.name))

	dev, err := t.discover(ctx, log)
	if err != nil {
		return fmt.Errorf("%w: scan: %v", ErrTransportUnavailable, err)
	}
	if err := dev.Connect(ctx); err != nil {
		return fmt.Errorf("%w: connect: %v", ErrTransportUnavailable, err)
	}
	char, err := dev.Characteristic(ServiceUUID, WriteCharacteristicUUID)
	if err != nil {
		_ = dev.Disconnect()
		return fmt.Errorf("%w: characteristic: %v", ErrTransportUnavailable, err)
	}

	t.dev = dev
	t.char = char
	t.remember(dev.ID())

	log.Info("printer connected", zap.String("device_id", dev.ID()))
	return nil
}

// discover tries the remembered device first, while its state is still
// fresh, before paying for a full scan.
func (t *Transport) discover(ctx context.Context, log *zap.Logger) (Peripheral, error) {
	if re, ok := t.scanner.(Rediscoverer); ok {
		if st, fresh := t.LastDevice(); fresh {
			dev, err := re.Rediscover(ctx, st.ID)
			if err == nil {
				return dev, nil
			}
			log.Debug("remembered printer gone, scanning",
				zap.String("device_id", st.ID), zap.Error(err))
		}
	}
	return t.scanner.Scan(ctx, t.name)
}

// Write sends the payload in chunks, pacing them so the print head
// keeps up. The connection must be established first.
func (t *Transport) Write(ctx context.Context, p []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.dev == nil || !t.dev.Connected() {
		return ErrTransportUnavailable
	}

	for off := 0; off < len(p); off += t.chunkSize {
		if err := t.limiter.Wait(ctx); err != nil {
			return err
		}
		end := off + t.chunkSize
		if end > len(p) {
			end = len(p)
		}
		if err := t.char.Write(p[off:end]); err != nil {
			// a failed chunk leaves the head mid-line, drop the link
			t.dev = nil
			t.char = nil
			return fmt.Errorf("%w: chunk at %d: %v", ErrPrintFailed, off, err)
		}
	}
	return nil
}

// Close tears the connection down, keeping the remembered device.
func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.dev == nil {
		return nil
	}
	err := t.dev.Disconnect()
	t.dev = nil
	t.char = nil
	return err
}

// LastDevice returns the remembered printer identity, if still fresh.
func (t *Transport) LastDevice() (DeviceState, bool) {
	v, ok := t.state.Get(stateKey)
	if !ok {
		return DeviceState{}, false
	}
	st, ok := v.(DeviceState)
	if !ok || time.Since(st.SeenAt) > stateFreshness {
		return DeviceState{}, false
	}
	return st, true
}

func (t *Transport) remember(deviceID string) {
	t.state.SetDefault(stateKey, DeviceState{
		ID:     deviceID,
		Name:   t.name,
		SeenAt: time.Now(),
	})
	if t.stateFile != "" {
		_ = t.state.SaveFile(t.stateFile)
	}
}
