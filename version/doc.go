// Package version reports build version information.
//
// Version, git commit, branch, and build time are set at compile time
// via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/restsense/version.Version=1.0.0"
//
// The values are reported by the /version endpoint, the CLI version
// command and the default User-Agent of outbound requests.
package version
