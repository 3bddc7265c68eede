package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/sfapi/internal/constants"
	"github.com/fivetwenty-io/sfapi/internal/telemetry"
	"github.com/fivetwenty-io/sfapi/pkg/sfapi"
	"github.com/fivetwenty-io/sfapi/pkg/sfclient"
)

// ConfigDirName is the directory under $HOME holding config.yml.
const ConfigDirName = ".sfapi"

// Config represents the CLI configuration.
type Config struct {
	Email     string `json:"email,omitempty"      yaml:"email,omitempty"`
	Key       string `json:"key,omitempty"        yaml:"key,omitempty"`
	CompanyID int    `json:"company_id,omitempty" yaml:"company_id,omitempty"`
	Module    string `json:"module,omitempty"     yaml:"module,omitempty"`
	AppTitle  string `json:"app_title,omitempty"  yaml:"app_title,omitempty"`
	BaseURL   string `json:"base_url,omitempty"   yaml:"base_url,omitempty"`

	Output  string        `json:"output,omitempty" yaml:"output,omitempty"`
	Logging LoggingConfig `json:"logging"          yaml:"logging"`
	NATS    NATSConfig    `json:"nats"             yaml:"nats"`
}

// LoggingConfig controls the diagnostic log written to stderr.
type LoggingConfig struct {
	Level  string `json:"level,omitempty"  yaml:"level,omitempty"`
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// NATSConfig enables publishing of rate limit snapshots.
type NATSConfig struct {
	URL     string `json:"url,omitempty"     yaml:"url,omitempty"`
	Subject string `json:"subject,omitempty" yaml:"subject,omitempty"`
}

// configSetters maps the keys accepted by "config set" to their fields.
var configSetters = map[string]func(*Config, string) error{
	"email":     func(c *Config, v string) error { c.Email = v; return nil },
	"key":       func(c *Config, v string) error { c.Key = v; return nil },
	"module":    func(c *Config, v string) error { c.Module = v; return nil },
	"app_title": func(c *Config, v string) error { c.AppTitle = v; return nil },
	"base_url":  func(c *Config, v string) error { c.BaseURL = v; return nil },
	"company_id": func(c *Config, v string) error {
		if v == "" {
			c.CompanyID = 0

			return nil
		}

		id, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %q", constants.ErrInvalidCompanyID, v)
		}

		c.CompanyID = id

		return nil
	},
	"output": func(c *Config, v string) error {
		switch v {
		case "", OutputFormatTable, OutputFormatJSON, OutputFormatYAML:
			c.Output = v

			return nil
		default:
			return fmt.Errorf("%w: %q", constants.ErrInvalidOutputType, v)
		}
	},
	"logging.level":  func(c *Config, v string) error { c.Logging.Level = v; return nil },
	"logging.format": func(c *Config, v string) error { c.Logging.Format = v; return nil },
	"nats.url":       func(c *Config, v string) error { c.NATS.URL = v; return nil },
	"nats.subject":   func(c *Config, v string) error { c.NATS.Subject = v; return nil },
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Manage the credentials and settings stored in ~/.sfapi/config.yml",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the current CLI configuration. The API key is masked.",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			if config.Key != "" {
				config.Key = Masked
			}

			return renderData(cmd.OutOrStdout(), config, func() error {
				return displayConfigTable(cmd.OutOrStdout(), config)
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long: `Set a configuration value. Known keys: email, key, company_id, module,
app_title, base_url, output, logging.level, logging.format, nats.url, nats.subject`,
		Args: cobra.ExactArgs(2), //nolint:mnd // key and value
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfig(cmd.OutOrStdout(), args[0], args[1])
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfig(cmd.OutOrStdout(), args[0], "")
		},
	}
}

func updateConfig(w io.Writer, key, value string) error {
	setter, ok := configSetters[key]
	if !ok {
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	config := loadConfig()

	err := setter(config, value)
	if err != nil {
		return err
	}

	err = saveConfigStruct(config)
	if err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	viper.Set(key, value)

	if value == "" {
		_, _ = fmt.Fprintf(w, "Unset %s\n", key)

		return nil
	}

	if key == "key" {
		value = Masked
	}

	_, _ = fmt.Fprintf(w, "Set %s to %s\n", key, value)

	return nil
}

func loadConfig() *Config {
	return &Config{
		Email:     viper.GetString("email"),
		Key:       viper.GetString("key"),
		CompanyID: viper.GetInt("company_id"),
		Module:    viper.GetString("module"),
		AppTitle:  viper.GetString("app_title"),
		BaseURL:   viper.GetString("base_url"),
		Output:    viper.GetString("output"),
		Logging: LoggingConfig{
			Level:  viper.GetString("logging.level"),
			Format: viper.GetString("logging.format"),
		},
		NATS: NATSConfig{
			URL:     viper.GetString("nats.url"),
			Subject: viper.GetString("nats.subject"),
		},
	}
}

func saveConfigStruct(config *Config) error {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home directory: %w", err)
		}

		configDir := filepath.Join(home, ConfigDirName)

		err = os.MkdirAll(configDir, constants.ConfigDirPerm)
		if err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}

		configFile = filepath.Join(configDir, "config.yml")
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func displayConfigTable(w io.Writer, config *Config) error {
	table := tablewriter.NewWriter(w)
	table.Header("Property", "Value")

	_ = table.Append("Email", orNotAvailable(config.Email))
	_ = table.Append("API Key", orNotAvailable(config.Key))
	_ = table.Append("Company ID", orNotAvailable(strconv.Itoa(config.CompanyID)))
	_ = table.Append("Module", orNotAvailable(config.Module))
	_ = table.Append("App Title", orNotAvailable(config.AppTitle))
	_ = table.Append("Base URL", orNotAvailable(config.BaseURL))
	_ = table.Append("Output", orNotAvailable(config.Output))
	_ = table.Append("Log Level", orNotAvailable(config.Logging.Level))
	_ = table.Append("NATS URL", orNotAvailable(config.NATS.URL))

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func orNotAvailable(value string) string {
	if value == "" || value == "0" {
		return NotAvailable
	}

	return value
}

// newLogger builds the stderr logger from logging.level and --verbose.
func newLogger(w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(viper.GetString("logging.level")))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.WarnLevel
	}

	if viper.GetBool("verbose") {
		level = zerolog.DebugLevel
	}

	if viper.GetString("logging.format") == OutputFormatJSON {
		return zerolog.New(w).Level(level).With().Timestamp().Logger()
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).Level(level).With().Timestamp().Logger()
}

// CreateClient builds an API client from --env-file or the stored
// configuration. The returned cleanup func must be called when done.
func CreateClient(cmd *cobra.Command) (sfapi.Client, func(), error) {
	logger := newLogger(cmd.ErrOrStderr())
	config := loadConfig()

	base := &sfapi.Config{
		BaseURL: config.BaseURL,
		Logger:  &logger,
		Timeout: constants.DownloadHTTPTimeout,
	}

	cleanup := func() {}

	if config.NATS.URL != "" {
		publisher, closeConn, err := telemetry.Connect(config.NATS.URL, config.NATS.Subject, config.CompanyID, logger)
		if err != nil {
			// Rate limit telemetry must never block API access.
			logger.Warn().Err(err).Msg("rate limit publishing disabled")
		} else {
			base.RateLimitObserver = publisher
			cleanup = closeConn
		}
	}

	client, err := newClient(config, base)
	if err != nil {
		cleanup()

		return nil, nil, err
	}

	return client, cleanup, nil
}

func newClient(config *Config, base *sfapi.Config) (sfapi.Client, error) {
	envFile := viper.GetString("env_file")
	if envFile != "" {
		client, err := sfclient.NewFromEnvFile(envFile, base)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}

		return client, nil
	}

	if config.Email == "" || config.Key == "" {
		return nil, constants.ErrNoCredentials
	}

	base.Authorization = sfapi.Authorization{
		Email:     config.Email,
		Key:       config.Key,
		CompanyID: config.CompanyID,
		Module:    config.Module,
		AppTitle:  config.AppTitle,
	}

	return sfclient.New(base)
}
