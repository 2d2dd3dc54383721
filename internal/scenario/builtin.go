package scenario

import (
	"fmt"

	"github.com/sarchlab/cmu"
)

// A64 encodings of the instructions the code scenarios patch.
const (
	instNOP = 0xd503201f
	instRET = 0xd65f03c0
)

const (
	codeAddr   = 0x10000
	bufferAddr = 0x20000
	bufferSize = 1000
)

func init() {
	register(Scenario{
		Name:        "patch-code",
		Description: "The core rewrites an instruction, cleans it to memory and invalidates the instruction cache before running it.",
		run:         patchCode,
	})
	register(Scenario{
		Name:        "dma-out",
		Description: "The core fills a buffer and cleans it before a device reads it.",
		run:         dmaOut,
	})
	register(Scenario{
		Name:        "dma-in",
		Description: "A device fills a buffer the core had cached and the core invalidates it before reading.",
		run:         dmaIn,
	})
	register(Scenario{
		Name:        "power-down",
		Description: "The core flushes the whole data cache so that memory holds everything before the cache loses power.",
		run:         powerDown,
	})
	register(Scenario{
		Name:        "missing-clean",
		Description: "The core rewrites an instruction and invalidates the instruction cache without cleaning, so the old instruction runs.",
		Negative:    true,
		run:         missingClean,
	})
	register(Scenario{
		Name:        "missing-isb",
		Description: "The instruction cache is invalidated without an instruction barrier, so the prefetched old instruction runs.",
		Negative:    true,
		run:         missingISB,
	})
	register(Scenario{
		Name:        "missing-dsb",
		Description: "A line is cleaned without a data barrier, so a device still reads the old data.",
		Negative:    true,
		run:         missingDSB,
	})
}

// loadOldCode places RET in memory with a device and lets the core run it
// once, so the instruction is cached and prefetched.
func loadOldCode(e *env) error {
	e.step("load RET by DMA and execute it")

	if err := e.p.DMA().Write(codeAddr, wordBytes(instRET)); err != nil {
		return err
	}

	return e.expectFetch("initial instruction", codeAddr, instRET)
}

func patchCode(e *env) error {
	if err := loadOldCode(e); err != nil {
		return err
	}

	e.step("patch RET to NOP")
	e.p.Core().StoreUint32(codeAddr, instNOP)

	cmu.CleanDCacheRange(codeAddr, 4)
	cmu.InvalidateICacheRange(codeAddr, 4)

	if err := e.expectFetch("patched instruction", codeAddr, instNOP); err != nil {
		return err
	}

	inst, err := e.p.Core().FetchInst(codeAddr)
	if err != nil {
		return err
	}

	if inst.Op.String() != "NOP" {
		return fmt.Errorf("patched instruction decodes as %s", inst)
	}

	return nil
}

func dmaOut(e *env) error {
	data := pattern(bufferSize, 0x5a)

	e.step("fill the buffer from the core")
	e.p.Core().Store(bufferAddr, data)

	cmu.CleanDCacheRange(bufferAddr, bufferSize)

	return e.expectMemory("device read", bufferAddr, data)
}

func dmaIn(e *env) error {
	e.step("cache the buffer")
	e.p.Core().Load(bufferAddr, bufferSize)

	data := pattern(bufferSize, 0xa5)

	e.step("fill the buffer from a device")

	if err := e.p.DMA().Write(bufferAddr, data); err != nil {
		return err
	}

	cmu.InvalidateDCacheRange(bufferAddr, bufferSize)

	return e.expectLoad("core read", bufferAddr, data)
}

func powerDown(e *env) error {
	regions := []uint64{bufferAddr, bufferAddr + 0x3000, bufferAddr + 0x7000}

	for i, addr := range regions {
		e.p.Core().Store(addr, pattern(bufferSize, byte(i)))
	}

	e.step("flush the whole data cache")
	cmu.FlushDCache()

	if n := len(e.p.ResidentLines()); n != 0 {
		return fmt.Errorf("%d lines still cached after flush", n)
	}

	for i, addr := range regions {
		err := e.expectMemory("memory after flush", addr,
			pattern(bufferSize, byte(i)))
		if err != nil {
			return err
		}
	}

	return nil
}

func missingClean(e *env) error {
	if err := loadOldCode(e); err != nil {
		return err
	}

	e.step("patch RET to NOP and skip the clean")
	e.p.Core().StoreUint32(codeAddr, instNOP)

	cmu.InvalidateICacheRange(codeAddr, 4)

	return e.expectFetch("stale instruction", codeAddr, instRET)
}

func missingISB(e *env) error {
	if err := loadOldCode(e); err != nil {
		return err
	}

	e.step("patch RET to NOP and skip the instruction barrier")
	e.p.Core().StoreUint32(codeAddr, instNOP)

	cmu.CleanDCacheRange(codeAddr, 4)
	e.p.InvalidateICacheLine(codeAddr)
	e.p.DataBarrier()

	if err := e.expectFetch("prefetched instruction", codeAddr, instRET); err != nil {
		return err
	}

	e.step("issue the instruction barrier late")
	e.p.InstructionBarrier()

	return e.expectFetch("patched instruction", codeAddr, instNOP)
}

func missingDSB(e *env) error {
	line := int(e.p.LineSize())
	data := pattern(line, 0x3c)

	e.step("write one line and clean it without a barrier")
	e.p.Core().Store(bufferAddr, data)
	e.p.CleanDCacheLine(bufferAddr)

	if err := e.expectMemory("device read before barrier", bufferAddr,
		make([]byte, line)); err != nil {
		return err
	}

	e.step("issue the data barrier late")
	e.p.DataBarrier()

	return e.expectMemory("device read after barrier", bufferAddr, data)
}
