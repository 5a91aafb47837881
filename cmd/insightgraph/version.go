package main

import (
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is set at release time:
//
//	go build -ldflags "-X main.version=v1.2.0" ./cmd/insightgraph
var version = ""

// buildVersion prefers the linker-injected version, then the module version
// recorded by `go install`, and finally "dev".
func buildVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}

// vcsRevision returns the short commit the binary was built from, if known.
func vcsRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 12 {
			return s.Value[:12]
		}
	}
	return ""
}

func versionCmd() *cobra.Command {
	var long bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the insightgraph build version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if !long {
				cmd.Println(buildVersion())
				return
			}
			cmd.Printf("version:  %s\n", buildVersion())
			if rev := vcsRevision(); rev != "" {
				cmd.Printf("revision: %s\n", rev)
			}
			cmd.Printf("go:       %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
	cmd.Flags().BoolVar(&long, "long", false, "Include revision and toolchain details")
	return cmd
}
