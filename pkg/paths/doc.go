// Package paths locates blocktext's per-user files.
//
// The config directory is resolved in this order:
//  1. BLOCKTEXT_CONFIG_DIR, with a leading ~ expanded
//  2. $XDG_CONFIG_HOME/blocktext
//  3. the platform config dir from github.com/adrg/xdg, plus /blocktext
//
// Inside it, config.toml, config.yaml and config.yml are tried in that order.
package paths
