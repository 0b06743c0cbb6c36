package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"

	"cukereport/internal/reporterr"
)

// EnvPrefix prefixes environment variable overrides.
const EnvPrefix = "CUKEREPORT"

// NewViper returns a viper instance with defaults and environment binding.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for _, key := range Keys {
		_ = v.BindEnv(key)
	}
	SetDefaults(v)
	return v
}

// SetDefaults registers option defaults.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDurationAggregation, "sum")
	v.SetDefault(KeyReportName, DefaultReportName)
	v.SetDefault(KeyPageTitle, DefaultPageTitle)
	v.SetDefault(KeyDisplayDuration, true)
	v.SetDefault(KeyWorkers, 0)
}

// ReadFile reads the config file at path into v. An empty path is a no-op.
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return reporterr.Config(path, "config file not found")
		}
		return &reporterr.Error{Kind: reporterr.KindConfig, Message: "cannot read config file", Path: path, Cause: err}
	}
	return nil
}

// Load reads an optional config file into v, then unmarshals, normalizes,
// validates and resolves the options. Validation failures are configuration
// errors and happen before any result file is read.
func Load(v *viper.Viper, path string) (Options, error) {
	if err := ReadFile(v, path); err != nil {
		return Options{}, err
	}
	var opts Options
	if err := v.Unmarshal(&opts); err != nil {
		return Options{}, &reporterr.Error{Kind: reporterr.KindConfig, Message: "cannot decode options", Cause: err}
	}
	if err := Prepare(&opts); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// Prepare normalizes and validates opts and resolves metadata and custom data.
func Prepare(opts *Options) error {
	Normalize(opts)
	if err := Validate(opts); err != nil {
		return err
	}
	if err := ResolveMetadata(opts); err != nil {
		return err
	}
	return resolveCustomData(opts)
}

// Summary describes the effective options for debug logging.
func (o Options) Summary() string {
	return fmt.Sprintf("json-dir=%s report-path=%s unit=%s aggregation=%s", o.JSONDir, o.ReportPath, o.Unit, o.Policy)
}
