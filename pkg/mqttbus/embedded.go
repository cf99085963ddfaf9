package mqttbus

import (
	"fmt"

	mochi "github.com/mochi-mqtt/server/v2"
	"github.com/mochi-mqtt/server/v2/hooks/auth"
	"github.com/mochi-mqtt/server/v2/listeners"

	"github.com/LeonardoBeccarini/printer_monitor/pkg/log"
)

// Embedded is an in-process broker for setups without an external one.
// Extra hooks observe the client lifecycle (subscribe, unsubscribe, disconnect).
type Embedded struct {
	server  *mochi.Server
	address string
	logger  log.Logger
}

func NewEmbedded(address string, logger log.Logger, hooks ...mochi.Hook) (*Embedded, error) {
	server := mochi.New(&mochi.Options{
		InlineClient: true,
		Logger:       log.Slog(logger),
	})

	if err := server.AddHook(new(auth.AllowHook), nil); err != nil {
		return nil, fmt.Errorf("embedded broker auth hook: %w", err)
	}
	for _, h := range hooks {
		if err := server.AddHook(h, nil); err != nil {
			return nil, fmt.Errorf("embedded broker hook %s: %w", h.ID(), err)
		}
	}

	tcp := listeners.NewTCP(listeners.Config{ID: "tcp", Address: address})
	if err := server.AddListener(tcp); err != nil {
		return nil, fmt.Errorf("embedded broker listener %s: %w", address, err)
	}

	return &Embedded{server: server, address: address, logger: logger}, nil
}

// Serve starts the listeners; it returns once they are accepting.
func (e *Embedded) Serve() error {
	if err := e.server.Serve(); err != nil {
		return fmt.Errorf("embedded broker serve: %w", err)
	}
	e.logger.Infof("embedded broker listening on %s", e.address)
	return nil
}

func (e *Embedded) Close() {
	if err := e.server.Close(); err != nil {
		e.logger.Warnf("embedded broker close: %v", err)
	}
}
