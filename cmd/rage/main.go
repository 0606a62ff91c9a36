// Copyright 2021 The rage Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Command rage sends HTTP requests from the command line.
//
//	rage do GET https://httpbin.org/get -q name=value -H 'Accept: application/json'
//	rage do POST /things --config api.yaml -d '{"name":"x"}' --retries 2
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "rage",
		Short:         "Declarative HTTP requests",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newDoCmd())
	return root
}

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		root.PrintErrln("rage:", err)
		os.Exit(1)
	}
}
