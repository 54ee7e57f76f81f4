package cmd

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/mint-authority/pkg/signature"
	"github.com/spf13/cobra"
)

const (
	privateKeyFile = "priv.key"
	publicKeyFile  = "pub.key"
)

func NewGenerateKeypairCommand() *cobra.Command {
	var (
		dir   string
		force bool
	)
	cmd := &cobra.Command{
		Use:   "generate-keypair",
		Short: "Generate an ed25519 keypair to sign minting requests",
		Long:  "Writes the hex encoded private key seed to priv.key and the base58 caller address to pub.key.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return generateKeypair(cmd, dir, force)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&dir, "path", "/data/keys", "Directory to save the key files in")
	flags.BoolVar(&force, "force", false, "Replace an existing private key without prompt")
	return cmd
}

func generateKeypair(cmd *cobra.Command, dir string, force bool) error {
	out := cmd.OutOrStdout()
	privateKeyPath := filepath.Join(dir, privateKeyFile)
	if _, err := os.Stat(privateKeyPath); err == nil && !force {
		fmt.Fprintf(out, "Existing private key found at %s\n[WARNING] THE EXISTING PRIVATE KEY WILL BE LOST\nType [replace] to replace it: ", privateKeyPath)
		answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if strings.TrimSpace(answer) != "replace" {
			fmt.Fprintln(out, "Keypair generation aborted")
			return nil
		}
	}

	keypair, err := signature.GenerateKeypair()
	if err != nil {
		return errors.Wrap(err, "can't generate keypair")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "can't create key directory")
	}
	if err := os.WriteFile(privateKeyPath, []byte(hex.EncodeToString(keypair.Seed())), 0o600); err != nil {
		return errors.Wrap(err, "can't write private key file")
	}
	publicKeyPath := filepath.Join(dir, publicKeyFile)
	if err := os.WriteFile(publicKeyPath, []byte(keypair.Address().String()), 0o644); err != nil {
		return errors.Wrap(err, "can't write public key file")
	}

	fmt.Fprintf(out, "Address: %s\nPrivate key saved at %s\nPublic key saved at %s\n", keypair.Address(), privateKeyPath, publicKeyPath)
	return nil
}
