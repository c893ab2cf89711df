package config

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	KeySheetCandidates           = "sheets.candidates"
	KeyConvertAddressPolicy      = "convert.address_policy"
	KeyConvertRawValues          = "convert.raw_values"
	KeyProviderPassword          = "provider.password"
	KeyProviderUnzipSizeLimit    = "provider.unzip_size_limit"
	KeyProviderUnzipXMLSizeLimit = "provider.unzip_xml_size_limit"
	KeyServerPort                = "server.port"
	KeyServerAllowedRoots        = "server.allowed_roots"
	KeyJournalEnabled            = "journal.enabled"
	KeyJournalDBPath             = "journal.db_path"

	EnvPrefix = "SHEETGRID"
)

// DefaultSheetCandidates are the worksheet names looked up before falling
// back to the first worksheet.
var DefaultSheetCandidates = []string{
	"Proposta_(Uso_Concessionária)",
	"Proposta_(Uso_Concessionária)2",
}

type Config struct {
	Sheets   SheetsConfig   `mapstructure:"sheets"`
	Convert  ConvertConfig  `mapstructure:"convert"`
	Provider ProviderConfig `mapstructure:"provider"`
	Server   ServerConfig   `mapstructure:"server"`
	Journal  JournalConfig  `mapstructure:"journal"`
}

type SheetsConfig struct {
	Candidates []string `mapstructure:"candidates"`
}

type ConvertConfig struct {
	AddressPolicy string `mapstructure:"address_policy" validate:"omitempty,oneof=single extended"`
	RawValues     bool   `mapstructure:"raw_values"`
}

type ProviderConfig struct {
	Password          string `mapstructure:"password"`
	UnzipSizeLimit    int64  `mapstructure:"unzip_size_limit" validate:"gte=0"`
	UnzipXMLSizeLimit int64  `mapstructure:"unzip_xml_size_limit" validate:"gte=0"`
}

type ServerConfig struct {
	Port         int      `mapstructure:"port" validate:"min=1,max=65535"`
	AllowedRoots []string `mapstructure:"allowed_roots" validate:"dive,required"`
}

type JournalConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DBPath  string `mapstructure:"db_path" validate:"required_if=Enabled true"`
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# sheetgrid configuration
sheets:
  # Worksheet names tried in order (case-insensitive) before falling back
  # to the first worksheet of the document.
  candidates:
    - "Proposta_(Uso_Concessionária)"
    - "Proposta_(Uso_Concessionária)2"

convert:
  # single: columns A..Z only, wider sheets fail. extended: AA, AB, ...
  address_policy: "single"
  raw_values: true

provider:
  password: ""
  unzip_size_limit: 0
  unzip_xml_size_limit: 0

server:
  port: 8080
  allowed_roots: []

journal:
  enabled: false
  db_path: "./sheetgrid.db"
`
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := validateCandidates(cfg.Sheets.Candidates); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeySheetCandidates, DefaultSheetCandidates)
	v.SetDefault(KeyConvertAddressPolicy, "single")
	v.SetDefault(KeyConvertRawValues, true)
	v.SetDefault(KeyProviderPassword, "")
	v.SetDefault(KeyProviderUnzipSizeLimit, 0)
	v.SetDefault(KeyProviderUnzipXMLSizeLimit, 0)
	v.SetDefault(KeyServerPort, 8080)
	v.SetDefault(KeyServerAllowedRoots, []string{})
	v.SetDefault(KeyJournalEnabled, false)
	v.SetDefault(KeyJournalDBPath, "./sheetgrid.db")
}

// validateCandidates folds case with strings.EqualFold, the comparison the
// worksheet resolver uses.
func validateCandidates(candidates []string) error {
	seen := make([]string, 0, len(candidates))
	for i, candidate := range candidates {
		name := strings.TrimSpace(candidate)
		if name == "" {
			return fmt.Errorf("validation failed: sheets.candidates[%d] must not be blank", i)
		}
		for _, previous := range seen {
			if strings.EqualFold(previous, name) {
				return fmt.Errorf("validation failed: duplicate sheet candidate %q", candidate)
			}
		}
		seen = append(seen, name)
	}
	return nil
}
