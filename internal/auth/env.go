package auth

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/sfapi/internal/constants"
	"github.com/fivetwenty-io/sfapi/pkg/sfapi"
	"github.com/joho/godotenv"
)

// EnvCredentials is what a .env file provides.
type EnvCredentials struct {
	Authorization sfapi.Authorization
	// BaseURL is empty when SFAPI_BASE_URL is not set.
	BaseURL string
}

// LoadEnvFile reads credentials from a .env file without touching the process
// environment. An unreadable file yields sfapi.ErrCannotLoadCredentials, a
// missing or malformed key sfapi.ErrInvalidCredentials.
func LoadEnvFile(path string) (*EnvCredentials, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", sfapi.ErrCannotLoadCredentials, path, err)
	}

	return CredentialsFromMap(values)
}

// CredentialsFromMap validates SFAPI_* keys from values.
func CredentialsFromMap(values map[string]string) (*EnvCredentials, error) {
	required := []string{
		constants.EnvEmail,
		constants.EnvKey,
		constants.EnvCompanyID,
		constants.EnvModule,
		constants.EnvAppTitle,
	}

	for _, key := range required {
		if strings.TrimSpace(values[key]) == "" {
			return nil, fmt.Errorf("%w: %s is not set", sfapi.ErrInvalidCredentials, key)
		}
	}

	companyID, err := strconv.Atoi(strings.TrimSpace(values[constants.EnvCompanyID]))
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a number", sfapi.ErrInvalidCredentials, constants.EnvCompanyID)
	}

	return &EnvCredentials{
		Authorization: sfapi.Authorization{
			Email:     values[constants.EnvEmail],
			Key:       values[constants.EnvKey],
			CompanyID: companyID,
			Module:    values[constants.EnvModule],
			AppTitle:  values[constants.EnvAppTitle],
		},
		BaseURL: strings.TrimSpace(values[constants.EnvBaseURL]),
	}, nil
}
