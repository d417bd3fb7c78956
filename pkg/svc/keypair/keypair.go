// Package keypair generates the SSH keypair shared between the Jenkins controller and its agents.
package keypair

import (
	"context"
	"errors"
	"strings"
)

// Environment variable names the compose file reads the key material from.
const (
	EnvPrivateKey = "JENKINS_SSH_PRIVATE_KEY"
	EnvPublicKey  = "JENKINS_AGENT_SSH_PUBKEY"
)

// ErrEmptyKey is returned when a generator produces no key material.
var ErrEmptyKey = errors.New("generated key is empty")

// Keypair holds an OpenSSH private key and its authorized_keys public line.
type Keypair struct {
	PrivateKey string
	PublicKey  string
}

// Env returns the keypair as KEY=VALUE pairs for a child process environment.
func (k Keypair) Env() []string {
	return []string{
		EnvPrivateKey + "=" + k.PrivateKey,
		EnvPublicKey + "=" + k.PublicKey,
	}
}

// Generator creates a fresh keypair.
type Generator interface {
	Generate(ctx context.Context) (Keypair, error)
}

func newKeypair(private, public []byte) (Keypair, error) {
	pair := Keypair{
		PrivateKey: string(private),
		PublicKey:  strings.TrimSpace(string(public)),
	}

	if strings.TrimSpace(pair.PrivateKey) == "" || pair.PublicKey == "" {
		return Keypair{}, ErrEmptyKey
	}

	return pair, nil
}
