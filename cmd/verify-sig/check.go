// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	auth "blitznote.com/src/node.sigauth/signature.auth"
)

var errRejected = errors.New("request has been rejected")

var checkFlags struct {
	hostname      string
	method        string
	path          string
	host          string
	date          string
	authorization string
}

var checkCmd = &cobra.Command{
	Use:   "check --path <path> --authorization <value>",
	Short: "Verify the signature of a single request",
	Long: `The check command verifies one request, described by its flags, the way
'serve' would. It prints "accept", or "reject:" followed by the reason, and exits
with a non-zero status on rejection. Details are logged.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log, verifier, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()

		if checkFlags.hostname != "" {
			name := checkFlags.hostname
			verifier.Hostname = func() (string, error) { return name, nil }
		}

		res, err := verifier.Verify(auth.Request{
			Method:        checkFlags.method,
			Path:          checkFlags.path,
			Authorization: checkFlags.authorization,
			Host:          checkFlags.host,
			Date:          checkFlags.date,
		})
		if err != nil {
			return err
		}

		if !res.Accepted {
			fmt.Fprintf(cmd.OutOrStdout(), "reject: %s\n", res.Reason)
			return errRejected
		}
		fmt.Fprintln(cmd.OutOrStdout(), "accept")
		return nil
	},
}

func init() {
	f := checkCmd.Flags()
	f.StringVar(&checkFlags.hostname, "hostname", "", "name of this node (default: as reported by the kernel)")
	f.StringVar(&checkFlags.method, "method", "GET", "request method")
	f.StringVar(&checkFlags.path, "path", "/", "request path, without query")
	f.StringVar(&checkFlags.host, "host", "", "value of header Host")
	f.StringVar(&checkFlags.date, "date", "", "value of header Date")
	f.StringVar(&checkFlags.authorization, "authorization", "", "value of header Authorization")
	checkCmd.MarkFlagRequired("authorization")
}
