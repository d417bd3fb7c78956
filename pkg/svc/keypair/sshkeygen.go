package keypair

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/devantler-tech/jenkins-manager/pkg/cmd/runner"
)

const keyFileName = "id_ed25519"

// SSHKeygenGenerator creates keys with the ssh-keygen binary inside a throwaway directory.
type SSHKeygenGenerator struct {
	runner runner.CommandRunner
	binary string
	// tempDir is the parent for the scratch directory; empty means os.TempDir.
	tempDir string
}

var _ Generator = (*SSHKeygenGenerator)(nil)

// NewSSHKeygenGenerator returns a generator that shells out to ssh-keygen.
func NewSSHKeygenGenerator(commandRunner runner.CommandRunner) *SSHKeygenGenerator {
	return &SSHKeygenGenerator{runner: commandRunner, binary: "ssh-keygen"}
}

// WithTempDir sets the parent directory for the scratch directory.
func (g *SSHKeygenGenerator) WithTempDir(dir string) *SSHKeygenGenerator {
	g.tempDir = dir

	return g
}

// Generate runs `ssh-keygen -t ed25519 -N ""` and reads both key files back. The scratch
// directory is removed before Generate returns.
func (g *SSHKeygenGenerator) Generate(ctx context.Context) (Keypair, error) {
	dir, err := os.MkdirTemp(g.tempDir, "jenkins-keypair-")
	if err != nil {
		return Keypair{}, fmt.Errorf("create key directory: %w", err)
	}

	defer func() { _ = os.RemoveAll(dir) }()

	keyPath := filepath.Join(dir, keyFileName)

	_, err = g.runner.Run(ctx, runner.Command{
		Name: g.binary,
		Args: []string{"-t", "ed25519", "-f", keyPath, "-N", "", "-q", "-C", keyComment},
	})
	if err != nil {
		return Keypair{}, fmt.Errorf("ssh-keygen: %w", err)
	}

	private, err := os.ReadFile(keyPath) //nolint:gosec // path is inside our scratch directory
	if err != nil {
		return Keypair{}, fmt.Errorf("read private key: %w", err)
	}

	public, err := os.ReadFile(keyPath + ".pub") //nolint:gosec // path is inside our scratch directory
	if err != nil {
		return Keypair{}, fmt.Errorf("read public key: %w", err)
	}

	return newKeypair(private, public)
}
