package cmu

// LineSpan returns the line-aligned span [start, end) that a ranged operation
// on [base, base+size) works on, using the installed platform's line size. An
// empty range gives start == end. A span that reaches the top of the address
// space has end == 0.
func LineSpan(base, size uintptr) (start, end uintptr) {
	return lineSpan(base, size, platform.LineSize())
}

func lineSpan(base, size, line uintptr) (start, end uintptr) {
	if size == 0 {
		return base, base
	}

	start = alignDown(base, line)
	end = alignUp(base+size, line)

	return start, end
}

func alignDown(addr, line uintptr) uintptr {
	return addr &^ (line - 1)
}

func alignUp(addr, line uintptr) uintptr {
	return (addr + line - 1) &^ (line - 1)
}

// forEachLine applies lineOp to every line in the span of [base, base+size)
// and reports if any line was visited. Lines are counted with modular
// arithmetic, so a span whose end wraps to 0 is still walked.
func forEachLine(
	p Platform,
	base, size uintptr,
	lineOp func(addr uintptr),
) bool {
	if size == 0 {
		return false
	}

	line := p.LineSize()
	start, end := lineSpan(base, size, line)

	for i, n := uintptr(0), (end-start)/line; i < n; i++ {
		lineOp(start + i*line)
	}

	return true
}
