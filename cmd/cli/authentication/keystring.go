package authentication

// Session tokens for the CLI live in the OS keyring, never in a plain file.
import (
	"encoding/json"
	"errors"

	"github.com/zalando/go-keyring"
)

const (
	serviceName = "editorialctl"
	tokenKey    = "session"
)

// ErrNotLoggedIn is returned when no credentials are stored.
var ErrNotLoggedIn = errors.New("not logged in, run 'editorialctl login' first")

type StoredCredentials struct {
	APIURL    string `json:"api_url"`
	Token     string `json:"token"`
	Email     string `json:"email"`
	ExpiresAt int64  `json:"expires_at"`
}

func StoreTokens(creds *StoredCredentials) error {
	data, err := json.Marshal(creds)
	if err != nil {
		return err
	}
	return keyring.Set(serviceName, tokenKey, string(data))
}

func GetTokens() (*StoredCredentials, error) {
	value, err := keyring.Get(serviceName, tokenKey)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil, ErrNotLoggedIn
	}
	if err != nil {
		return nil, err
	}

	var creds StoredCredentials
	if err := json.Unmarshal([]byte(value), &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

// DeleteTokens forgets the stored session; a missing entry is not an error.
func DeleteTokens() error {
	if err := keyring.Delete(serviceName, tokenKey); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	return nil
}
