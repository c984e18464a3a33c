package authclient

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config exposes the settings the SDK needs. Implementations are read only;
// the destination table and trusted-domain set never mutate at runtime.
type Config interface {
	GetAPIBaseURL() string
	GetAuthDomain() string
	GetTrustedDomains() []string
	GetDestinations() map[AccountType]string
	GetJWKSEndpoint() string
	GetDashboardPath() string
}

// EnvConfig is the canonical Config loaded from the environment.
type EnvConfig struct {
	APIBaseURL    string   `env:"SUNNY_API_URL" envDefault:"https://api.sunnypayments.com"`
	AuthDomain    string   `env:"SUNNY_AUTH_DOMAIN" envDefault:"https://auth.sunnypayments.com"`
	JWKSEndpoint  string   `env:"SUNNY_JWKS_URL"`
	DashboardPath string   `env:"SUNNY_DASHBOARD_PATH" envDefault:"/dashboard"`
	Trusted       []string `env:"SUNNY_TRUSTED_DOMAINS" envSeparator:","`

	IndividualURL  string `env:"SUNNY_DEST_INDIVIDUAL" envDefault:"https://app.sunnypayments.com"`
	BusinessURL    string `env:"SUNNY_DEST_BUSINESS" envDefault:"https://business.sunnypayments.com"`
	InstitutionURL string `env:"SUNNY_DEST_INSTITUTION" envDefault:"https://institutions.sunnypayments.com"`
	DeveloperURL   string `env:"SUNNY_DEST_DEVELOPER" envDefault:"https://developers.sunnypayments.com"`
	AdminURL       string `env:"SUNNY_DEST_ADMIN" envDefault:"https://admin.sunnypayments.com"`
}

var _ Config = (*EnvConfig)(nil)

// DefaultTrustedDomains is the allow list used when none is configured.
var DefaultTrustedDomains = []string{
	"sunnypayments.com",
	"app.sunnypayments.com",
	"business.sunnypayments.com",
	"institutions.sunnypayments.com",
	"admin.sunnypayments.com",
	"developers.sunnypayments.com",
}

// LoadConfig parses configuration from the environment. Optional .env files
// are merged first; a missing file is not an error.
func LoadConfig(dotenvFiles ...string) (*EnvConfig, error) {
	if len(dotenvFiles) > 0 {
		_ = godotenv.Load(dotenvFiles...)
	}

	cfg := &EnvConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if len(cfg.Trusted) == 0 {
		cfg.Trusted = DefaultTrustedDomains
	}
	return cfg, nil
}

// GetAPIBaseURL returns the auth API base URL
func (c *EnvConfig) GetAPIBaseURL() string { return c.APIBaseURL }

// GetAuthDomain returns the origin hosting the sign-in/up pages
func (c *EnvConfig) GetAuthDomain() string { return c.AuthDomain }

// GetJWKSEndpoint returns the JWKS URL for local token validation, if any
func (c *EnvConfig) GetJWKSEndpoint() string { return c.JWKSEndpoint }

// GetDashboardPath returns the in-app path used after same-host auth success
func (c *EnvConfig) GetDashboardPath() string { return c.DashboardPath }

// GetTrustedDomains returns the redirect allow list
func (c *EnvConfig) GetTrustedDomains() []string {
	out := make([]string, len(c.Trusted))
	copy(out, c.Trusted)
	return out
}

// GetDestinations returns the account type to dashboard URL table
func (c *EnvConfig) GetDestinations() map[AccountType]string {
	return map[AccountType]string{
		AccountTypeIndividual:  c.IndividualURL,
		AccountTypeBusiness:    c.BusinessURL,
		AccountTypeInstitution: c.InstitutionURL,
		AccountTypeDeveloper:   c.DeveloperURL,
		AccountTypeAdmin:       c.AdminURL,
	}
}
