// Command nero-mpc-cli is a demo driver for the 2-of-2 threshold ECDSA
// engine: it runs both parties of a session in-process over
// pkg/transport's loopback backend, the way a developer would exercise the
// protocol before wiring a real network transport.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	dataDir      string
	protocolName string
	password     string
	iterations   int

	rootCmd = &cobra.Command{
		Use:   "nero-mpc-cli",
		Short: "Demo driver for the 2-of-2 threshold ECDSA engine",
		Long: `nero-mpc-cli simulates both parties of an additive (Pedersen/Feldman)
or multiplicative (DKLS) 2-of-2 threshold ECDSA session locally, persisting
each party's key share as a password-encrypted envelope.`,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data-dir", "d", "./nero-mpc-data", "directory holding encrypted key share envelopes")
	rootCmd.PersistentFlags().StringVarP(&protocolName, "protocol", "p", "additive", "protocol variant: additive, multiplicative")
	rootCmd.PersistentFlags().StringVar(&password, "password", "", "password protecting the on-disk envelopes (required)")
	rootCmd.PersistentFlags().IntVar(&iterations, "pbkdf2-iterations", 210000, "PBKDF2 iteration count for envelope encryption")
	rootCmd.MarkPersistentFlagRequired("password")

	rootCmd.AddCommand(keygenCmd, signCmd, infoCmd, exportCmd, importCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
