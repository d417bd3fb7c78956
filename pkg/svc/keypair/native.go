package keypair

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"fmt"
	"io"

	"golang.org/x/crypto/ssh"
)

const keyComment = "jenkins-manager"

// NativeGenerator creates ed25519 keys in memory.
type NativeGenerator struct {
	random io.Reader
}

var _ Generator = (*NativeGenerator)(nil)

// NewNativeGenerator returns a generator reading entropy from crypto/rand.
func NewNativeGenerator() *NativeGenerator {
	return NewNativeGeneratorWithRandom(rand.Reader)
}

// NewNativeGeneratorWithRandom returns a generator reading entropy from random.
func NewNativeGeneratorWithRandom(random io.Reader) *NativeGenerator {
	return &NativeGenerator{random: random}
}

// Generate creates an unencrypted ed25519 keypair.
func (g *NativeGenerator) Generate(ctx context.Context) (Keypair, error) {
	err := ctx.Err()
	if err != nil {
		return Keypair{}, fmt.Errorf("generate keypair: %w", err)
	}

	seed := make([]byte, ed25519.SeedSize)

	_, err = io.ReadFull(g.random, seed)
	if err != nil {
		return Keypair{}, fmt.Errorf("read ed25519 seed: %w", err)
	}

	privateKey := ed25519.NewKeyFromSeed(seed)

	publicKey, _ := privateKey.Public().(ed25519.PublicKey)

	block, err := ssh.MarshalPrivateKey(privateKey, keyComment)
	if err != nil {
		return Keypair{}, fmt.Errorf("marshal private key: %w", err)
	}

	sshPublicKey, err := ssh.NewPublicKey(publicKey)
	if err != nil {
		return Keypair{}, fmt.Errorf("marshal public key: %w", err)
	}

	return newKeypair(pem.EncodeToMemory(block), ssh.MarshalAuthorizedKey(sshPublicKey))
}
