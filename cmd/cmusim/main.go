// Command cmusim runs cache maintenance sequences on a simulated memory
// system and reports what each bus master observes.
package main

import (
	"os"

	"github.com/tebeka/atexit"
)

func main() {
	loadDotEnv(os.Getenv(envPrefix + "ENV_FILE"))

	if err := newRootCmd().Execute(); err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
