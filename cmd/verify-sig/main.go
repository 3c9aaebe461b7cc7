// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command verify-sig guards a CI node's server with HTTP Signatures,
// and helps operators find out why a request has been rejected.
//
// Run it in front of the node server:
//  verify-sig serve --listen :8000 --upstream http://127.0.0.1:5000
//
// Check a single request:
//  verify-sig check --hostname node1 --path /status --host node1 \
//    --date 'Tue, 01 Jan 2030 00:00:00 GMT' \
//    --authorization 'Signature keyID="node1",algorithm="hmac-sha256",signature="…"'
package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"blitznote.com/src/node.sigauth"
	"blitznote.com/src/node.sigauth/nodeconfig"
	auth "blitznote.com/src/node.sigauth/signature.auth"
)

var rootCmd = &cobra.Command{
	Use:   "verify-sig",
	Short: "Verifies HTTP Signatures on requests sent to this node.",
	Long: `verify-sig checks that requests to this node have been signed with the key
it shares with the CI server, as found in the node's configuration file.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var globalFlags struct {
	configPath    string
	logLevel      string
	logEncoding   string
	logOutput     string
	dateTolerance uint64
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&globalFlags.configPath, "config", nodeconfig.DefaultPath, "path to the node's configuration file (INI)")
	f.StringVar(&globalFlags.logLevel, "log-level", "info", "one of: debug, info, warn, error")
	f.StringVar(&globalFlags.logEncoding, "log-encoding", "console", "one of: json, console")
	f.StringVar(&globalFlags.logOutput, "log-output", "stderr", "file path, stdout, or stderr")
	f.Uint64Var(&globalFlags.dateTolerance, "date-tolerance", 0, "maximum difference in seconds between header Date and now (0 = not checked)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(checkCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		// Cobra prints the error, so we just need to exit
		os.Exit(1)
	}
}

// setup creates what all subcommands need: a logger, and a Verifier
// which uses the key from the node's configuration.
func setup() (*zap.Logger, *auth.Verifier, error) {
	log, err := sigauth.NewLogger(sigauth.LogConfig{
		Level:      globalFlags.logLevel,
		Encoding:   globalFlags.logEncoding,
		OutputPath: globalFlags.logOutput,
	})
	if err != nil {
		return nil, nil, err
	}

	cfg, err := nodeconfig.Load(globalFlags.configPath, log)
	if err != nil {
		log.Error("cannot load the node configuration", zap.Error(err))
		return nil, nil, err
	}
	if _, err := cfg.SigningKey(); err != nil {
		// Not fatal: every request will be rejected until this is fixed.
		log.Error("no signing key, all requests will be rejected",
			zap.Strings("sources", cfg.Sources()),
			zap.Error(err))
	}

	verifier := auth.NewVerifier(cfg, log)
	verifier.DateTolerance = globalFlags.dateTolerance
	return log, verifier, nil
}
