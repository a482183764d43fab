package tessera

import (
	"fmt"
	"reflect"
	"unsafe"
)

// maxColumnBytes is a sanity ceiling on a single column's backing
// allocation; growth past it reports AllocationFailureError instead of
// handing reflect.New an absurd size.
const maxColumnBytes = 1 << 34

// column is one archetype's storage for a single component type: a
// contiguous, growable array of raw component bytes indexed by slot.
//
// Grounded on delaneyj-arche/ecs/storage.go's reflect+unsafe.Pointer
// Storage: a reflect.ArrayOf backing buffer addressed with unsafe.Pointer
// arithmetic, grown by reallocating a bigger array and copying, with
// swap-last removal. tessera's column is keyed by byte size rather than a
// concrete reflect.Type, since an archetype must be buildable from a bare
// Signature (e.g. the destination of entity_remove) where only the
// registered bytesize is known, not a Go type.
type column struct {
	buffer   reflect.Value
	addr     unsafe.Pointer
	itemSize uintptr
	length   int
	capacity int
}

// byteArrayType returns the reflect.Type for [n]byte.
func byteArrayType(n int) reflect.Type {
	return reflect.ArrayOf(n, reflect.TypeOf(byte(0)))
}

func newColumn(itemSize uintptr, initialCap int) *column {
	if initialCap < 1 {
		initialCap = 1
	}
	buf := reflect.New(byteArrayType(int(itemSize) * initialCap)).Elem()
	return &column{
		buffer:   buf,
		addr:     buf.Addr().UnsafePointer(),
		itemSize: itemSize,
		capacity: initialCap,
	}
}

// Len returns the number of valid elements.
func (c *column) Len() int { return c.length }

// at returns a pointer to the element at slot i. i must be less than the
// column's capacity; only slots below Len() hold valid elements.
func (c *column) at(i int) unsafe.Pointer {
	return unsafe.Add(c.addr, uintptr(i)*c.itemSize)
}

// grow doubles capacity (Config.GrowthFactor) until it can hold n elements.
// Reports AllocationFailureError instead of growing past maxColumnBytes.
func (c *column) grow(n int) error {
	if n <= c.capacity {
		return nil
	}
	newCap := c.capacity
	if newCap < 1 {
		newCap = 1
	}
	for newCap < n {
		newCap *= Config.GrowthFactor
	}
	if newBytes := uint64(c.itemSize) * uint64(newCap); newBytes > maxColumnBytes {
		return AllocationFailureError{
			Reason: fmt.Sprintf("column growth to %d bytes exceeds the %d byte ceiling", newBytes, uint64(maxColumnBytes)),
		}
	}
	newBuf := reflect.New(byteArrayType(int(c.itemSize) * newCap)).Elem()
	newAddr := newBuf.Addr().UnsafePointer()
	if c.length > 0 {
		dst := unsafe.Slice((*byte)(newAddr), int(c.itemSize)*c.length)
		src := unsafe.Slice((*byte)(c.addr), int(c.itemSize)*c.length)
		copy(dst, src)
	}
	c.buffer = newBuf
	c.addr = newAddr
	c.capacity = newCap
	return nil
}

// appendZero grows if needed, zeroes, and returns a pointer to a fresh
// slot at the tail. Per spec.md §9, the slot is always zeroed here — never
// assumed to be zero already, even when it is a just-freed swap-removed
// slot.
func (c *column) appendZero() (unsafe.Pointer, error) {
	if err := c.grow(c.length + 1); err != nil {
		return nil, err
	}
	ptr := c.at(c.length)
	c.zero(ptr)
	c.length++
	return ptr, nil
}

func (c *column) zero(ptr unsafe.Pointer) {
	dst := unsafe.Slice((*byte)(ptr), int(c.itemSize))
	for i := range dst {
		dst[i] = 0
	}
}

// swapRemove deletes the element at slot i using the scramble policy: the
// tail element is copied into i, the tail is zeroed, and length shrinks by
// one. Returns true if a different element (formerly at the tail) was
// moved into i and must have its external slot bookkeeping updated.
func (c *column) swapRemove(i int) (movedFromTail bool) {
	last := c.length - 1
	if i < last {
		dst := unsafe.Slice((*byte)(c.at(i)), int(c.itemSize))
		src := unsafe.Slice((*byte)(c.at(last)), int(c.itemSize))
		copy(dst, src)
		movedFromTail = true
	}
	c.zero(c.at(last))
	c.length--
	return movedFromTail
}

// copyColumn copies the value at src[srcIdx] into dst's freshly appended tail
// slot, used by the migrator to preserve shared-column bytes across an
// archetype change. Source and destination are guaranteed non-overlapping
// (different archetypes' columns never alias).
func copyColumn(dst *column, src *column, srcIdx int) error {
	d, err := dst.appendZero()
	if err != nil {
		return err
	}
	s := src.at(srcIdx)
	copy(unsafe.Slice((*byte)(d), int(dst.itemSize)), unsafe.Slice((*byte)(s), int(src.itemSize)))
	return nil
}
