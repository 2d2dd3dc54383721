package armv8

// New reads the cache geometry of the running core and returns a platform
// for it. It must run at EL1 or higher.
func New() *Platform {
	return newPlatform(hardware{})
}

type hardware struct{}

func (hardware) readCTR() uint64                 { return readCTR() }
func (hardware) readCLIDR() uint64               { return readCLIDR() }
func (hardware) readCCSIDR(csselr uint64) uint64 { return readCCSIDR(csselr) }
func (hardware) dcIVAC(addr uintptr)             { dcIVAC(addr) }
func (hardware) dcCVAC(addr uintptr)             { dcCVAC(addr) }
func (hardware) dcCIVAC(addr uintptr)            { dcCIVAC(addr) }
func (hardware) dcISW(setWay uint64)             { dcISW(setWay) }
func (hardware) dcCSW(setWay uint64)             { dcCSW(setWay) }
func (hardware) dcCISW(setWay uint64)            { dcCISW(setWay) }
func (hardware) icIVAU(addr uintptr)             { icIVAU(addr) }
func (hardware) icIALLU()                        { icIALLU() }
func (hardware) dsb()                            { dsb() }
func (hardware) isb()                            { isb() }

// Implemented in asm_arm64.s.
func readCTR() uint64
func readCLIDR() uint64
func readCCSIDR(csselr uint64) uint64
func dcIVAC(addr uintptr)
func dcCVAC(addr uintptr)
func dcCIVAC(addr uintptr)
func dcISW(setWay uint64)
func dcCSW(setWay uint64)
func dcCISW(setWay uint64)
func icIVAU(addr uintptr)
func icIALLU()
func dsb()
func isb()
