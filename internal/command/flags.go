// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
)

// NewSchemaFlag constructs the --schema flag.
func NewSchemaFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "schema",
		Usage:       "dump the tool input schema",
		HideDefault: true,
	}
}

// NewGlobalFlags returns the result shaping flags shared by every command that
// prints tool output.
func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of attributes to include in results",
		},
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   false,
		},
		&cli.StringFlag{
			Name:    "drill",
			Aliases: []string{"d"},
			Usage:   "dotted path into the result, e.g. Tags[0].Value",
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Value:   "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.IntFlag{
			Name:  "padding",
			Usage: "cell padding for text output",
			Value: 1,
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Value:   false,
		},
	}

	return
}

// NewAWSFlags returns the connection override flags. params[0] is the command
// namespace and params[1] the config file; when both are given the values
// also chain to the namespaced and global config keys.
func NewAWSFlags(params ...string) (flags []cli.Flag) {
	region := &cli.StringFlag{
		Name:    "region",
		Aliases: []string{"r"},
		Usage:   "AWS region. Overrides AWS_REGION",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("AWSMCP_REGION"),
		),
	}
	profile := &cli.StringFlag{
		Name:    "profile",
		Aliases: []string{"p"},
		Usage:   "shared config profile. Overrides AWS_PROFILE",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("AWSMCP_PROFILE"),
		),
	}

	if len(params) == 2 {
		region = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], region)
		profile = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], profile)
	}

	flags = []cli.Flag{
		region,
		profile,
		&cli.IntFlag{
			Name:    "max-attempts",
			Usage:   "maximum attempts per AWS request, 0 keeps the SDK default",
			Sources: cli.EnvVars("AWSMCP_MAX_ATTEMPTS"),
			Validator: func(value int) error {
				return FlagValidators(value, NonNegativeValidator)
			},
		},
	}

	return
}

// NewToolsetFlag constructs the --toolset flag with the given default.
func NewToolsetFlag(value string, params ...string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:  "toolset",
		Usage: "tools to expose: server, agent or all",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("AWSMCP_TOOLSET"),
		),
		Value: value,
		Validator: func(value string) error {
			return FlagValidators(value, ToolsetValidator)
		},
	}

	if len(params) == 2 {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
	}

	return
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain. Without a config file the flag is
// returned untouched.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	if path == "" {
		return flag
	}

	if ns != "" {
		src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
		flag.Sources.Chain = append(flag.Sources.Chain, src)
	}

	src := yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}
