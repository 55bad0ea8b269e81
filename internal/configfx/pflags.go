package configfx

import (
	"os"

	"github.com/spf13/pflag"
)

func PFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)

	// Config file flag
	fs.StringP("config", "c", "", "Config file")

	// Connection and policy flags, overriding the config file
	fs.StringP("server", "s", "", "vSphere server address")
	fs.Int("retention", -1, "Maximum permitted snapshot age, days")
	fs.Float64("size", -1, "Maximum permitted snapshot size, GB")

	fs.Bool("remediate", false, "Delete non-compliant snapshots")
	fs.Bool("once", false, "Run a single audit and exit")

	return fs
}
