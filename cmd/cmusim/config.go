package main

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/sarchlab/cmu/platform/sim"
)

const envPrefix = "CMUSIM_"

// options holds the global flags. Every flag defaults to the environment
// variable CMUSIM_<NAME>, which may come from a .env file.
type options struct {
	lineSize         int
	dcacheSize       int
	icacheSize       int
	ways             int
	writeBufferDepth int
	prefetchLines    int
	trace            string
	logLevel         string
}

func loadDotEnv(path string) {
	if path == "" {
		path = ".env"
	}

	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.WithError(err).WithField("file", path).Warn("Cannot load env file")
	}
}

func envString(name, def string) string {
	if v, ok := os.LookupEnv(envPrefix + name); ok {
		return v
	}

	return def
}

func envInt(name string, def int) int {
	v, ok := os.LookupEnv(envPrefix + name)
	if !ok {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		log.WithField("variable", envPrefix+name).
			Warnf("Ignoring non-integer value %q", v)

		return def
	}

	return n
}

func (o *options) register(flags *pflag.FlagSet) {
	def := sim.DefaultConfig()

	flags.IntVar(&o.lineSize, "line-size",
		envInt("LINE_SIZE", def.LineSize), "cache line size in bytes")
	flags.IntVar(&o.dcacheSize, "dcache-size",
		envInt("DCACHE_SIZE", def.DCacheSize), "data cache size in bytes")
	flags.IntVar(&o.icacheSize, "icache-size",
		envInt("ICACHE_SIZE", def.ICacheSize),
		"instruction cache size in bytes")
	flags.IntVar(&o.ways, "ways",
		envInt("WAYS", def.DCacheWays), "associativity of both caches")
	flags.IntVar(&o.writeBufferDepth, "write-buffer-depth",
		envInt("WRITE_BUFFER_DEPTH", def.WriteBufferDepth),
		"lines the write buffer holds until a data barrier")
	flags.IntVar(&o.prefetchLines, "prefetch-lines",
		envInt("PREFETCH_LINES", def.PrefetchLines),
		"instruction lines the core prefetches")
	flags.StringVar(&o.trace, "trace", envString("TRACE", ""),
		"record maintenance events into the SQLite database `name`.sqlite3")
	flags.StringVar(&o.logLevel, "log-level", envString("LOG_LEVEL", "warning"),
		"logrus level: debug, info, warning or error")
}

func (o *options) simConfig() (sim.Config, error) {
	config := sim.DefaultConfig().
		WithLineSize(o.lineSize).
		WithDCache(o.dcacheSize, o.ways).
		WithICache(o.icacheSize, o.ways).
		WithWriteBufferDepth(o.writeBufferDepth).
		WithPrefetchLines(o.prefetchLines)

	if err := config.Validate(); err != nil {
		return sim.Config{}, err
	}

	return config, nil
}

func (o *options) setupLogging() error {
	level, err := log.ParseLevel(o.logLevel)
	if err != nil {
		return err
	}

	log.SetLevel(level)
	log.SetOutput(os.Stderr)

	return nil
}
