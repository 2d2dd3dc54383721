//go:build !(arm64 && baremetal)

package cmu

import "github.com/sarchlab/cmu/platform/coherent"

func defaultPlatform() Platform {
	return coherent.New()
}
