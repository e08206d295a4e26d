package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"

	"scholarpath-engine/internal/config"
)

// KeyringService groups this app's secrets in the OS keychain.
const KeyringService = "scholarpath"

// GetGeminiKey resolves the provider API key: OS keyring first, then the
// SCHOLARPATH_GEMINI_KEY environment variable as a headless fallback.
func GetGeminiKey(keyringAccount string) (string, error) {
	if strings.TrimSpace(keyringAccount) != "" {
		key, err := keyring.Get(KeyringService, keyringAccount)
		if err == nil && strings.TrimSpace(key) != "" {
			return key, nil
		}
	}

	if key := strings.TrimSpace(os.Getenv("SCHOLARPATH_GEMINI_KEY")); key != "" {
		return key, nil
	}

	return "", errors.New("gemini api key not found (set it in the keychain or via SCHOLARPATH_GEMINI_KEY)")
}

func SetGeminiKey(keyringAccount string, key string) error {
	if strings.TrimSpace(keyringAccount) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("api key is empty")
	}
	return keyring.Set(KeyringService, keyringAccount, key)
}

func DeleteGeminiKey(keyringAccount string) error {
	if strings.TrimSpace(keyringAccount) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, keyringAccount)
}

// GeminiKeyringAccount derives the keychain account name from config so
// multiple profiles on one machine do not collide.
func GeminiKeyringAccount(cfg config.Config) string {
	return fmt.Sprintf("scholarpath:gemini:%s", cfg.AI.KeyringAccount)
}
