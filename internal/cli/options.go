package cli

import (
	"io"
	"net"

	"github.com/aretw0/adrift/internal/config"
	"github.com/aretw0/adrift/pkg/ports"
)

// PlayOptions contains all the configuration for the play command.
type PlayOptions struct {
	Config *config.Config
	Debug  bool
	JSON   bool
	Plain  bool

	In  io.Reader
	Out io.Writer

	// Completer replaces the OpenAI-compatible client, e.g. in tests.
	Completer ports.Completer
}

// ServeOptions contains all the configuration for the serve command.
type ServeOptions struct {
	Config *config.Config
	Debug  bool

	// Listener is used instead of listening on Config.Port when set.
	Listener net.Listener
	// LogOutput receives the JSON logs. Defaults to Stderr.
	LogOutput io.Writer

	// Completer replaces the OpenAI-compatible client, e.g. in tests.
	Completer ports.Completer
}
