package cmu

import "unsafe"

func sliceRange(buf []byte) (base, size uintptr) {
	if len(buf) == 0 {
		return 0, 0
	}

	return uintptr(unsafe.Pointer(unsafe.SliceData(buf))), uintptr(len(buf))
}

// CleanDCacheSlice is CleanDCacheRange over the bytes of buf.
func CleanDCacheSlice(buf []byte) {
	CleanDCacheRange(sliceRange(buf))
}

// FlushDCacheSlice is FlushDCacheRange over the bytes of buf.
func FlushDCacheSlice(buf []byte) {
	FlushDCacheRange(sliceRange(buf))
}

// InvalidateDCacheSlice is InvalidateDCacheRange over the bytes of buf. Unless
// buf came from MakeLineAlignedBuffer, bytes next to it may be discarded too.
func InvalidateDCacheSlice(buf []byte) {
	InvalidateDCacheRange(sliceRange(buf))
}

// InvalidateICacheSlice is InvalidateICacheRange over the bytes of buf.
func InvalidateICacheSlice(buf []byte) {
	InvalidateICacheRange(sliceRange(buf))
}

// MakeLineAlignedBuffer allocates a buffer of size bytes that starts on a
// cache line boundary and owns the rest of its last line, so no other data
// shares a cache line with it.
//
// The buffer lives on the heap and must not be grown with append.
func MakeLineAlignedBuffer(size int) []byte {
	line := int(platform.LineSize())

	padded := int(alignUp(uintptr(size), uintptr(line)))
	raw := make([]byte, padded+line)

	addr := uintptr(unsafe.Pointer(unsafe.SliceData(raw)))
	shift := int(alignUp(addr, uintptr(line)) - addr)

	return raw[shift : shift+size : shift+padded]
}

// IsLineAligned tells if buf starts on a cache line boundary and its capacity
// reaches the end of its last line.
func IsLineAligned(buf []byte) bool {
	line := platform.LineSize()
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(buf)))

	if len(buf) == 0 {
		return true
	}

	return addr&(line-1) == 0 && uintptr(cap(buf)) >= alignUp(uintptr(len(buf)), line)
}
