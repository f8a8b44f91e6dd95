// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"

	awsx "github.com/tfctl/awsmcp/aws"
	"github.com/tfctl/awsmcp/internal/log"
)

// EnvFileEnvVar names the environment variable that overrides the .env path.
const EnvFileEnvVar = "AWSMCP_ENV_FILE"

// Settings are the AWS connection parameters. Empty values mean "let the SDK
// decide".
type Settings struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Profile         string
}

// LoadSettings reads Settings from the process environment, falling back to a
// .env file for anything unset there. The .env file is optional unless named
// explicitly by AWSMCP_ENV_FILE.
func LoadSettings() (Settings, error) {
	path, explicit := ".env", false
	if p := os.Getenv(EnvFileEnvVar); p != "" {
		path, explicit = p, true
	}

	dotenv, err := godotenv.Read(path)
	if err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return Settings{}, fmt.Errorf("failed to read %s: %w", path, err)
		}
		dotenv = map[string]string{}
	} else {
		log.Debugf("env file read: path=%s, keys=%d", path, len(dotenv))
	}

	get := func(key string) string {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return strings.TrimSpace(dotenv[key])
	}

	s := Settings{
		Region:          get("AWS_REGION"),
		AccessKeyID:     get("AWS_ACCESS_KEY_ID"),
		SecretAccessKey: get("AWS_SECRET_ACCESS_KEY"),
		Profile:         get("AWS_PROFILE"),
	}
	if s.Region == "" {
		s.Region = awsx.DefaultRegion
	}
	log.Debugf("settings loaded: region=%s, profile=%s, static=%v", s.Region, s.Profile, s.HasStaticKeys())
	return s, nil
}

// HasStaticKeys reports whether both halves of an access key pair are set.
func (s Settings) HasStaticKeys() bool {
	return s.AccessKeyID != "" && s.SecretAccessKey != ""
}

// ClientOptions converts s into client options. Static keys take precedence
// over the profile; the region always applies.
func (s Settings) ClientOptions() []awsx.Option {
	var opts []awsx.Option
	switch {
	case s.HasStaticKeys():
		opts = append(opts, awsx.WithStaticCredentials(s.AccessKeyID, s.SecretAccessKey))
	case s.Profile != "":
		opts = append(opts, awsx.WithProfile(s.Profile))
	}
	if s.Region != "" {
		opts = append(opts, awsx.WithRegion(s.Region))
	}
	return opts
}
