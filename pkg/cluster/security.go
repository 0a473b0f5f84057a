package cluster

import (
	"crypto/hmac"
	"crypto/sha256"
)

// SecretManager mints the password half of a container token (spec
// §4.5 Security hook). Key minting/rotation and RPC transport of the
// resulting token are out of scope (spec §1); this is the minimal
// interface the container-assignment path needs.
type SecretManager interface {
	CreatePassword(identifier []byte) ([]byte, error)
}

// HMACSecretManager derives container passwords with HMAC-SHA256 over a
// cluster-wide master key, the simplest stand-in for the injected
// secret manager a real deployment would wire to its token service.
type HMACSecretManager struct {
	masterKey []byte
}

// NewHMACSecretManager builds a SecretManager keyed on masterKey.
func NewHMACSecretManager(masterKey []byte) *HMACSecretManager {
	return &HMACSecretManager{masterKey: masterKey}
}

func (s *HMACSecretManager) CreatePassword(identifier []byte) ([]byte, error) {
	mac := hmac.New(sha256.New, s.masterKey)
	mac.Write(identifier)
	return mac.Sum(nil), nil
}
