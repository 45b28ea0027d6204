// Package buildinfo exposes metadata stamped at build time.
package buildinfo

// These are overridden with -ldflags at release builds, e.g.
//
//	-X github.com/yunseo-dev/neis-kakaobot-go/internal/buildinfo.Version=v1.2.0

// Version is the semantic version or tag for this build.
var Version = ""

// Commit is the git commit SHA for this build.
var Commit = ""

// BuildDate is the RFC3339 build timestamp.
var BuildDate = ""
