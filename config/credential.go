package config

import (
	"os"
	"strings"
)

// CredentialProvider is one source of the Places API credential.
// Providers are queried in an explicit order; the first non-empty value
// wins. The resolved value is never logged.
type CredentialProvider interface {
	Name() string
	Credential() (string, error)
}

// ConstantProvider serves a compiled-in credential.
type ConstantProvider struct {
	Value string
}

func (p ConstantProvider) Name() string { return "constant" }

func (p ConstantProvider) Credential() (string, error) {
	return strings.TrimSpace(p.Value), nil
}

// EnvProvider reads the credential from a process environment variable.
type EnvProvider struct {
	Var string
}

func (p EnvProvider) Name() string { return "env:" + p.Var }

func (p EnvProvider) Credential() (string, error) {
	return strings.TrimSpace(os.Getenv(p.Var)), nil
}

// OptionStore is the persisted key-value settings surface the option
// provider reads from. Satisfied by the Redis place DAO.
type OptionStore interface {
	GetOption(name string) (string, error)
}

// OptionProvider reads the credential from a persisted setting.
type OptionProvider struct {
	Options OptionStore
	Option  string
}

func (p OptionProvider) Name() string { return "option:" + p.Option }

func (p OptionProvider) Credential() (string, error) {
	val, err := p.Options.GetOption(p.Option)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(val), nil
}

// ResolveCredential queries providers in order and returns the first
// non-empty credential. A failing provider is skipped, not fatal; an
// empty result means no credential is configured anywhere.
func ResolveCredential(providers []CredentialProvider) string {
	for _, provider := range providers {
		val, err := provider.Credential()
		if err != nil {
			continue
		}
		if val != "" {
			return val
		}
	}
	return ""
}

// DefaultCredentialProviders is the production precedence order:
// compiled-in constant, then process environment, then persisted option.
func DefaultCredentialProviders(options OptionStore) []CredentialProvider {
	return []CredentialProvider{
		ConstantProvider{Value: GOOGLE_PLACES_API_KEY},
		EnvProvider{Var: CREDENTIAL_ENV_VAR},
		OptionProvider{Options: options, Option: API_KEY_OPTION_NAME},
	}
}
