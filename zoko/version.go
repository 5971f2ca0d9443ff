package zoko

// Build metadata, set at build time via e.g.:
// -ldflags "-X github.com/GokhanGuclu/zoko/zoko.Version=$(date +'%Y%m%d')"
var (
	Version   = "dev"
	CommitSHA = "unknown"
	BuildTime = "unknown"
)
