package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mantidproject/mantid-sub001/pkg/mantidproj"
	"github.com/mantidproject/mantid-sub001/pkg/mantidproj/format"
	"github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "~/.mantidproj.yaml"

// Backup failure policies.
const (
	backupAsk    = "ask"
	backupIgnore = "ignore"
	backupAbort  = "abort"
)

// Config is the CLI configuration file.
type Config struct {
	// Product is the header product written on save.
	Product string `yaml:"product"`
	// ScriptingLanguage replaces the project's scripting language on save
	// when set.
	ScriptingLanguage string `yaml:"scripting_language"`
	// Compress forces gzip on or off; unset follows the ".gz" suffix.
	Compress *bool `yaml:"compress"`
	// Backup is the policy when the "~" copy cannot be made: ask, ignore
	// or abort.
	Backup string `yaml:"backup"`
	// LogLevel is a logrus level name.
	LogLevel string `yaml:"log_level"`
	// AcceptedProducts lists the header products accepted on load.
	AcceptedProducts []string `yaml:"accepted_products"`
}

func defaultConfig() Config {
	return Config{
		Product:  format.ProductMantidPlot,
		Backup:   backupAsk,
		LogLevel: "info",
	}
}

// loadConfig reads the config file at path over the defaults. A missing
// file is an error only when required is set.
func loadConfig(path string, required bool) (Config, error) {
	c := defaultConfig()
	expanded, err := homedir.Expand(path)
	if err != nil {
		return c, fmt.Errorf("expand config path: %w", err)
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return c, nil
		}
		return c, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("parse config %s: %w", expanded, err)
	}
	if err := c.validate(); err != nil {
		return c, fmt.Errorf("config %s: %w", expanded, err)
	}
	return c, nil
}

func (c Config) validate() error {
	switch c.Backup {
	case backupAsk, backupIgnore, backupAbort:
	default:
		return fmt.Errorf("backup must be one of ask, ignore, abort; got %q", c.Backup)
	}
	if c.Product == "" {
		return errors.New("product must not be empty")
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Options converts the config into library options. The "ask" backup
// policy prompts on out and reads the answer from in.
func (c Config) Options(log logrus.FieldLogger, in io.Reader, out io.Writer) mantidproj.Options {
	opts := mantidproj.DefaultOptions()
	opts.Product = c.Product
	opts.AcceptedProducts = c.AcceptedProducts
	opts.Compress = c.Compress
	opts.Log = log

	switch c.Backup {
	case backupIgnore:
		opts.OnBackupFailure = func(error) mantidproj.BackupDecision { return mantidproj.BackupIgnore }
	case backupAbort:
		opts.OnBackupFailure = func(error) mantidproj.BackupDecision { return mantidproj.BackupAbort }
	default:
		opts.OnBackupFailure = promptBackup(in, out)
	}
	return opts
}

// promptBackup asks whether to retry, ignore or abort a failed backup.
// Anything but an explicit retry or ignore aborts.
func promptBackup(in io.Reader, out io.Writer) func(error) mantidproj.BackupDecision {
	reader := bufio.NewReader(in)
	return func(err error) mantidproj.BackupDecision {
		fmt.Fprintf(out, "Cannot make backup copy: %v\nRetry, ignore or abort? [r/i/A] ", err)
		answer, _ := reader.ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "r", "retry":
			return mantidproj.BackupRetry
		case "i", "ignore":
			return mantidproj.BackupIgnore
		}
		return mantidproj.BackupAbort
	}
}
