// Package version carries the build version reported by `ncsh version`.
package version

// Version is overridable at build time:
//
//	go build -ldflags "-X github.com/mzakany23/ncsh-agent/internal/version.Version=v1.2.3"
var Version = "dev"
