package docs

import _ "embed"

// AgentsSection is the template for the managed section of the vault's
// agent-instructions file. Placeholders are rendered against the live
// configuration.
//
//go:embed agents.md
var AgentsSection string
