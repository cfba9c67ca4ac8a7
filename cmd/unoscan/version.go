package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/yacobolo/unoscan"
)

// version is set at build time via ldflags:
//
//	go build -ldflags "-X main.version=1.0.0" ./cmd/unoscan
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the unoscan version and the selector prefix it emits",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), versionString())
	},
}

func versionString() string {
	return fmt.Sprintf("unoscan %s (%s, attributify prefix %q)", version, runtime.Version(), unoscan.AttributePrefix)
}
