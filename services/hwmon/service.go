package hwmon

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"tinygo.org/x/drivers"

	"lm77-go/drivers/lm77"
	"lm77-go/errcode"
	"lm77-go/x/timex"
)

var (
	ErrUnknownDriver = errors.New("unknown_driver")
	ErrNotAttached   = errors.New("not_attached")
	errForeignClient = errors.New("client not created by this driver")
)

// Service owns one bus: it scans the configured addresses, keeps the
// attached clients keyed by address and drives their attach/detach hooks.
// The drivers themselves only ever see one device at a time.
type Service struct {
	bus     drivers.I2C
	drv     Driver
	cfg     Config
	clk     timex.Clock
	log     *logrus.Entry
	clients clientTable

	scanMu sync.Mutex
}

// New binds a service to bus. clk may be nil for the system clock and log
// nil for the standard logger.
func New(bus drivers.I2C, cfg Config, clk timex.Clock, log *logrus.Entry) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	drv, ok := LookupDriver(cfg.Driver)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
	if clk == nil {
		clk = timex.System{}
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Service{
		bus:     bus,
		drv:     drv,
		cfg:     cfg,
		clk:     clk,
		log:     log.WithField("prefix", "hwmon"),
		clients: clientTable{clients: map[uint16]Client{}},
	}, nil
}

func addrField(addr uint16) logrus.Fields {
	return logrus.Fields{"addr": fmt.Sprintf("0x%02x", addr)}
}

// Scan probes every configured address that has no client yet and attaches
// confirmed chips. Absent or foreign devices are skipped. It returns the
// addresses attached by this call. Concurrent scans are serialised.
func (s *Service) Scan(ctx context.Context) ([]uint16, error) {
	s.scanMu.Lock()
	defer s.scanMu.Unlock()

	opts := Options{
		RefreshWindow: s.cfg.RefreshWindow(),
		FaultQueue:    s.cfg.FaultQueue,
		Clock:         s.clk,
	}
	var found []uint16
	for _, addr := range s.cfg.Addresses {
		if err := ctx.Err(); err != nil {
			return found, err
		}
		if _, ok := s.clients.get(addr); ok {
			continue
		}
		log := s.log.WithFields(addrField(addr))
		c, err := s.drv.Probe(s.bus, addr, opts)
		if err != nil {
			if lm77.IsAbsent(err) {
				log.WithError(err).Debug("no device")
				continue
			}
			return found, err
		}
		if err := s.drv.Attach(c); err != nil {
			log.WithError(err).Warn("attach failed")
			continue
		}
		s.clients.put(addr, c)
		found = append(found, addr)
		log.Info("attached")
	}
	return found, nil
}

// Client returns the attached client at addr.
func (s *Service) Client(addr uint16) (Client, bool) { return s.clients.get(addr) }

// Addresses lists attached addresses in ascending order.
func (s *Service) Addresses() []uint16 { return s.clients.addrs() }

// Detach removes the client at addr.
func (s *Service) Detach(addr uint16) error {
	c, ok := s.clients.take(addr)
	if !ok {
		return ErrNotAttached
	}
	err := s.drv.Detach(c)
	s.log.WithFields(addrField(addr)).Info("detached")
	return err
}

// Close detaches every client.
func (s *Service) Close() error {
	var errs []error
	for _, a := range s.Addresses() {
		if err := s.Detach(a); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ApplySetpoints routes a batch to the client at addr through its validator.
// Driver errors come back as *errcode.E and still match the lm77 sentinels.
func (s *Service) ApplySetpoints(addr uint16, ch lm77.Changes) error {
	c, ok := s.clients.get(addr)
	if !ok {
		return ErrNotAttached
	}
	err := c.ApplySetpoints(ch)
	log := s.log.WithFields(addrField(addr))
	var ve *lm77.ValidationError
	switch {
	case errors.As(err, &ve):
		log.WithField("violations", ve.Violations.Names()).Warn("changes not applied")
	case err != nil:
		log.WithError(err).WithField("code", errcode.Of(err)).Warn("setpoint write failed")
	default:
		log.Info("changes applied")
	}
	return errcode.Wrap("apply_setpoints", err)
}

// ApplyConfigured applies the setpoints from the config to attached
// clients. Entries for addresses without a client are skipped.
func (s *Service) ApplyConfigured() error {
	var errs []error
	for _, sp := range s.cfg.Setpoints {
		if _, ok := s.clients.get(sp.Addr); !ok {
			continue
		}
		if err := s.ApplySetpoints(sp.Addr, sp.Changes()); err != nil {
			errs = append(errs, fmt.Errorf("0x%02x: %w", sp.Addr, err))
		}
	}
	return errors.Join(errs...)
}
