package environ

import (
	"io"
	"os"
	"strings"

	"github.com/Brownie44l1/minipig/internal/request"
)

// GatewayVersion is the only convention version this server speaks
var GatewayVersion = Version{Major: 1, Minor: 0}

// Identity is how the server names itself to applications.
// It is resolved once from the bound socket and never changes.
type Identity struct {
	Name string
	Port int
}

// Builder assembles environments for a fixed server identity
type Builder struct {
	identity Identity
	errors   io.Writer
}

// NewBuilder returns a builder whose error stream is the process stderr
func NewBuilder(identity Identity) *Builder {
	return &Builder{
		identity: identity,
		errors:   os.Stderr,
	}
}

// WithErrors returns a copy of the builder writing application errors to w
func (b *Builder) WithErrors(w io.Writer) *Builder {
	nb := *b
	nb.errors = w
	return &nb
}

// Build describes req to an application.
//
// The input stream carries the whole raw request text, request line and
// headers included, not just the body. Query string, content length and
// remote address are not populated.
func (b *Builder) Build(req *request.Request) *Environment {
	env := New()

	env.Set(KeyVersion, GatewayVersion)
	env.Set(KeyURLScheme, "http")
	env.Set(KeyInput, strings.NewReader(req.Raw))
	env.Set(KeyErrors, b.errors)
	env.Set(KeyMultithread, false)
	env.Set(KeyMultiprocess, false)
	env.Set(KeyRunOnce, false)
	env.Set(KeyMethod, req.Method())
	env.Set(KeyPath, req.Path())
	env.Set(KeyServerName, b.identity.Name)
	env.Set(KeyServerPort, b.identity.Port)

	return env
}
