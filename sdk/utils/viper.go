// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"bytes"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/scc-digitalhub/edge-addons-sdk/sdk/config"
	"github.com/spf13/viper"
	"gopkg.in/ini.v1"
)

// Config holds all logical keys. Tags:
// - vkey: Viper key
// - env: canonical env name (UPPER_SNAKE). If empty, derived from vkey
// - persist: "true" to write the key into the INI
// - default: optional default to set if key is unset
// - secret: "true" if sensitive
type Config struct {
	EdgeApiEndpoint    string `vkey:"edge_api_endpoint"     env:"EDGE_API_ENDPOINT"     persist:"true"  default:"https://api.addons.microsoftedge.microsoft.com"`
	EdgeProductId      string `vkey:"edge_product_id"       env:"EDGE_PRODUCT_ID"       persist:"true"`
	EdgeClientId       string `vkey:"edge_client_id"        env:"EDGE_CLIENT_ID"        persist:"true"`
	EdgeApiKey         string `vkey:"edge_api_key"          env:"EDGE_API_KEY"          persist:"true"  secret:"true"`
	EdgeClientSecret   string `vkey:"edge_client_secret"    env:"EDGE_CLIENT_SECRET"    persist:"true"  secret:"true"`
	EdgeAccessTokenUrl string `vkey:"edge_access_token_url" env:"EDGE_ACCESS_TOKEN_URL" persist:"true"`
	EdgeScope          string `vkey:"edge_scope"            env:"EDGE_SCOPE"            persist:"true"`
	EdgeAuthMethod     string `vkey:"edge_auth_method"      env:"EDGE_AUTH_METHOD"      persist:"true"`
	EdgeUploadOnly     string `vkey:"edge_upload_only"      env:"EDGE_UPLOAD_ONLY"      persist:"true"  default:"false"`
	EdgeCacheToken     string `vkey:"edge_cache_token"      env:"EDGE_CACHE_TOKEN"      persist:"true"  default:"false"`
	EdgeEscapeNotes    string `vkey:"edge_escape_notes"     env:"EDGE_ESCAPE_NOTES"     persist:"true"  default:"false"`
	EdgeRetryCount     string `vkey:"edge_retry_count"      env:"EDGE_RETRY_COUNT"      persist:"true"  default:"5"`
	EdgePollInterval   string `vkey:"edge_poll_interval"    env:"EDGE_POLL_INTERVAL"    persist:"true"  default:"3s"`
	AwsAccessKeyID     string `vkey:"aws_access_key_id"     env:"AWS_ACCESS_KEY_ID"     persist:"true"  secret:"true"`
	AwsSecretAccessKey string `vkey:"aws_secret_access_key" env:"AWS_SECRET_ACCESS_KEY" persist:"true"  secret:"true"`
	AwsSessionToken    string `vkey:"aws_session_token"     env:"AWS_SESSION_TOKEN"     persist:"true"  secret:"true"`
	AwsRegion          string `vkey:"aws_region"            env:"AWS_REGION"            persist:"true"`
	AwsEndpointURL     string `vkey:"aws_endpoint_url"      env:"AWS_ENDPOINT_URL"      persist:"true"`
	CurrentEnvironment string `vkey:"current_environment"   env:"CURRENT_ENVIRONMENT"   persist:"false"`
}

func getIniPath() string {
	iniPath, err := os.UserHomeDir()
	if err != nil {
		iniPath = "."
	}
	return iniPath + string(os.PathSeparator) + IniName
}

// resolveEnvName: --env > "default"
func resolveEnvName(optionalEnv ...string) string {
	if len(optionalEnv) > 0 && optionalEnv[0] != "" && strings.ToLower(optionalEnv[0]) != "null" {
		return optionalEnv[0]
	}
	return "default"
}

// BindEnvFromStruct binds env for all fields of Config using struct tags.
func BindEnvFromStruct() {
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	rt := reflect.TypeOf(Config{})
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)

		key := f.Tag.Get("vkey")
		if key == "" {
			continue
		}

		env := f.Tag.Get("env")
		if env == "" {
			env = strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		}
		_ = viper.BindEnv(key, env)

		if def := f.Tag.Get("default"); def != "" {
			viper.SetDefault(key, def)
		}
	}
}

// WriteIniFromStruct writes the current Viper values (persist:"true" only)
// into section envName of iniPath, creating the file when missing.
func WriteIniFromStruct(iniPath, envName string) error {
	cfg, err := ini.Load(iniPath)
	if err != nil {
		cfg = ini.Empty()
	}
	sec := cfg.Section(envName)

	rt := reflect.TypeOf(Config{})
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if f.Tag.Get("persist") != "true" {
			continue
		}
		key := f.Tag.Get("vkey")
		if key == "" {
			continue
		}
		val := viper.GetString(key)
		if val == "" || val == f.Tag.Get("default") {
			continue
		}
		sec.Key(key).SetValue(val)
	}

	if !cfg.Section("DEFAULT").HasKey(CurrentEnvironment) {
		cfg.Section("DEFAULT").Key(CurrentEnvironment).SetValue(envName)
	}
	sec.Key(UpdatedEnvKey).SetValue(time.Now().UTC().Format(time.RFC3339))
	return cfg.SaveTo(iniPath)
}

// Load [DEFAULT] + [env] into Viper (TOML in-memory). ENV can still override on Get().
func loadIniSectionIntoViper(cfg *ini.File, env string) error {
	def := cfg.Section("DEFAULT")
	selected := def
	if env != "" && cfg.HasSection(env) {
		selected = cfg.Section(env)
		Debugf("Using env: [%s]", env)
	} else if env == "" || strings.EqualFold(env, "DEFAULT") {
		Debugf("Using env: [DEFAULT]")
	} else {
		Warnf("Env %q not found, falling back to [DEFAULT]", env)
	}

	merged := make(map[string]string)
	for _, k := range def.Keys() {
		merged[k.Name()] = k.Value()
	}
	if selected != def {
		for _, k := range selected.Keys() {
			merged[k.Name()] = k.Value()
		}
	}

	var buf bytes.Buffer
	for k, v := range merged {
		vSafe := strings.ReplaceAll(strings.ReplaceAll(v, `\`, `\\`), `"`, `\"`)
		_, _ = fmt.Fprintf(&buf, "%s = \"%s\"\n", k, vSafe)
	}
	viper.SetConfigType("toml")
	return viper.MergeConfig(&buf)
}

// RegisterIniCfgWithViper binds env variables and, when the INI profile file
// exists, loads its active section. Without an INI file only env and defaults apply.
func RegisterIniCfgWithViper(optionalEnv ...string) error {
	return registerIniCfg(getIniPath(), optionalEnv...)
}

func registerIniCfg(iniPath string, optionalEnv ...string) error {
	BindEnvFromStruct()

	env := resolveEnvName(optionalEnv...)
	cfg, err := ini.Load(iniPath)
	if err != nil {
		Debugf("INI %s not found; using environment variables", iniPath)
		viper.Set(CurrentEnvironment, env)
		return nil
	}

	// active env: --env > DEFAULT.current_environment > default
	if env == "default" {
		if v := cfg.Section("DEFAULT").Key(CurrentEnvironment).String(); v != "" {
			env = v
		}
	}

	if err := loadIniSectionIntoViper(cfg, env); err != nil {
		return fmt.Errorf("failed to load INI into viper: %w", err)
	}
	viper.Set(CurrentEnvironment, env)
	return nil
}

// SaveIniProfile persists the current values as the named profile.
func SaveIniProfile(optionalEnv ...string) error {
	return WriteIniFromStruct(getIniPath(), resolveEnvName(optionalEnv...))
}

// BuildConfig assembles the SDK configuration from Viper.
func BuildConfig() config.Config {
	return config.Config{
		Core: config.CoreConfig{
			BaseURL:        viper.GetString(EdgeEndpoint),
			ProductID:      viper.GetString(EdgeProductId),
			ClientID:       viper.GetString(EdgeClientId),
			Auth:           config.AuthMethod(strings.ToLower(viper.GetString(EdgeAuthMethod))),
			APIKey:         viper.GetString(EdgeApiKey),
			UploadOnly:     viper.GetBool(EdgeUploadOnly),
			ClientSecret:   viper.GetString(EdgeClientSecret),
			AccessTokenURL: viper.GetString(EdgeAccessTokenUrl),
			Scope:          viper.GetString(EdgeScope),
			CacheToken:     viper.GetBool(EdgeCacheToken),
			EscapeNotes:    viper.GetBool(EdgeEscapeNotes),
			RetryCount:     viper.GetInt(EdgeRetryCount),
			PollInterval:   parsePollInterval(viper.GetString(EdgePollInterval)),
		},
		S3: config.S3Config{
			AccessKey:   viper.GetString(AwsAccessKeyId),
			SecretKey:   viper.GetString(AwsSecretAccessKey),
			AccessToken: viper.GetString(AwsSessionToken),
			Region:      viper.GetString(AwsRegion),
			EndpointURL: viper.GetString(AwsEndpointUrl),
		},
	}
}

// parsePollInterval accepts Go durations ("3s") and bare milliseconds ("3000").
func parsePollInterval(v string) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	if ms, err := strconv.ParseInt(v, 10, 64); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		Warnf("invalid %s %q, using default", EdgePollInterval, v)
		return 0
	}
	return d
}
