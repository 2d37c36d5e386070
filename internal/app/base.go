// Package app is the application layer between the CLI and the core. It
// owns the running workflow, calls the AI gateway outside the workflow
// lock and converts collaborator failures into fallbacks or surfaced
// errors.
package app

import (
	"github.com/josephgoksu/kai/internal/gateway"
	"github.com/josephgoksu/kai/internal/locale"
	"github.com/josephgoksu/kai/internal/profile"
	"github.com/josephgoksu/kai/internal/telemetry"
)

// Context holds shared dependencies for the shell.
type Context struct {
	Gateway   gateway.Gateway
	Repo      *profile.Repository
	Telemetry telemetry.Client
	Locale    locale.Locale
}

// NewContext fills in defaults for anything left unset: an in-memory
// repository, no-op telemetry and the default locale. The gateway may be
// nil; AI operations then take their fallback paths.
func NewContext(gw gateway.Gateway, repo *profile.Repository, tel telemetry.Client, loc locale.Locale) *Context {
	if repo == nil {
		repo = profile.NewRepository(profile.NewMemorySlot())
	}
	if tel == nil {
		tel = telemetry.NoopClient{}
	}
	if loc == "" {
		loc = locale.Default
	}
	return &Context{Gateway: gw, Repo: repo, Telemetry: tel, Locale: loc}
}
