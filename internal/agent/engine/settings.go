package engine

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/riemann/riemann-jvm-profiler/internal/agent/argmap"
)

// Defaults applied when a key is absent from the configuration mapping.
const (
	DefaultHost   = "localhost"
	DefaultPort   = 5555
	DefaultDT     = 5 * time.Second
	DefaultLoad   = float32(0.02)
	DefaultPrefix = "riemann jvm-profiler"
)

// keys the engine interprets itself; everything else lands in Settings.Extra.
var knownKeys = map[string]struct{}{
	"host":      {},
	"port":      {},
	"dt":        {},
	"load":      {},
	"prefix":    {},
	"localhost": {},
}

// Settings is the engine's view of the configuration mapping.
type Settings struct {
	Host      string        // Riemann server host
	Port      int           // Riemann server port
	DT        time.Duration // Interval between reports
	Load      float32       // Target fraction of CPU spent sampling
	Prefix    string        // Service name prefix
	LocalHost string        // Host name reported in events
	Extra     map[string]string
}

// SettingsFrom applies defaults and validates the recognized keys.
func SettingsFrom(cfg argmap.Map) (Settings, error) {
	s := Settings{
		Host:   DefaultHost,
		Port:   DefaultPort,
		DT:     DefaultDT,
		Load:   DefaultLoad,
		Prefix: DefaultPrefix,
		Extra:  make(map[string]string),
	}

	if host, ok := cfg.Text("host"); ok {
		s.Host = host
	}
	if port, ok := cfg.Int("port"); ok {
		s.Port = port
	}
	if dt, ok := cfg.Int("dt"); ok {
		s.DT = time.Duration(dt) * time.Second
	}
	if load, ok := cfg.Float("load"); ok {
		s.Load = load
	}
	if prefix, ok := cfg.Text("prefix"); ok {
		s.Prefix = prefix
	}
	if localhost, ok := cfg.Text("localhost"); ok {
		s.LocalHost = localhost
	} else if name, err := os.Hostname(); err == nil {
		s.LocalHost = name
	}

	cfg.Each(func(key string, v argmap.Value) {
		if _, ok := knownKeys[key]; !ok {
			s.Extra[key] = v.String()
		}
	})

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks the ranges of the recognized settings.
func (s Settings) Validate() error {
	if s.Host == "" {
		return fmt.Errorf("%w: host must not be empty", ErrInvalidSettings)
	}
	if s.Port < 1 || s.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range 1-65535", ErrInvalidSettings, s.Port)
	}
	if s.DT <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %s", ErrInvalidSettings, s.DT)
	}
	if !(s.Load > 0 && s.Load <= 1) {
		return fmt.Errorf("%w: load must be in (0, 1], got %g", ErrInvalidSettings, s.Load)
	}
	return nil
}

// Addr returns host:port of the Riemann server.
func (s Settings) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
