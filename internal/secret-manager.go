package internal

import "os"

// SecretManager resolves credential references from the config file. Values
// in the config's secrets map are stored encrypted and decrypted at load
// time; lookups fall back to environment variables and finally to the literal
// value, so plain-text credentials in the config keep working.
type SecretManager struct {
	Key     string
	Secrets map[string]string // decrypted secrets
}

func NewSecretManager(key string) *SecretManager {
	return &SecretManager{Key: key, Secrets: map[string]string{}}
}

// LoadEncryptedSecrets decrypts the given map into the internal store.
func (sm *SecretManager) LoadEncryptedSecrets(secrets map[string]string) error {
	for k, v := range secrets {
		decrypted, err := DecryptString(sm.Key, v)
		if err != nil {
			return err
		}
		sm.Secrets[k] = decrypted
	}
	return nil
}

// LoadSecrets loads plain text secrets into the internal store.
func (sm *SecretManager) LoadSecrets(secrets map[string]string) {
	for k, v := range secrets {
		sm.Secrets[k] = v
	}
}

// GetSecret returns the secret stored under key, or the ENV variable of the
// same name, or key itself when neither exists.
func (sm *SecretManager) GetSecret(key string) string {
	if secret, ok := sm.Secrets[key]; ok {
		return secret
	}
	if secret := os.Getenv(key); secret != "" {
		return secret
	}
	return key
}

// GetEncryptedSecrets returns the store re-encrypted for writing back to the
// config file.
func (sm *SecretManager) GetEncryptedSecrets() (map[string]string, error) {
	encrypted := map[string]string{}
	for k, v := range sm.Secrets {
		cipher, err := EncryptString(sm.Key, v)
		if err != nil {
			return nil, err
		}
		encrypted[k] = cipher
	}
	return encrypted, nil
}
