// Package version reports the build of a seqkit program.
//
// Version and Commit can be stamped at link time; anything left unset is
// filled from the module build info when the binary was built with VCS
// stamping:
//
//	go build -ldflags "-X github.com/kbukum/seqkit/version.Version=1.2.0" ./cmd/seqbench
package version
