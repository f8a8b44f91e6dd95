// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides the two sources of awsmcp configuration.
//
// The first is an optional YAML document holding CLI defaults, located via
// AWSMCP_CFG_FILE or in the user's configuration directory:
//   - Linux: $XDG_CONFIG_HOME/awsmcp.yaml or $HOME/.config/awsmcp.yaml
//   - macOS: $HOME/Library/Application Support/awsmcp.yaml
//   - Windows: %AppData%/awsmcp.yaml
//
// The second is Settings, the AWS connection parameters read from AWS_*
// environment variables and an optional .env file.
package config
