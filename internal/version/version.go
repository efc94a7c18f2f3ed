package version

// Name is the application name shown in usage and the wizard header.
var Name = "chyol"

// Version is injected at build time via -ldflags "-X chyol/internal/version.Version=...".
// Defaults to "dev" when not injected.
var Version = "0.2.0"
