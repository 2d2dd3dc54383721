//go:build arm64 && baremetal

package cmu

import "github.com/sarchlab/cmu/platform/armv8"

func defaultPlatform() Platform {
	return armv8.New()
}
