package tessera

import "github.com/TheBitDrifter/mask"

// guardBitHook is the only bit that actually gates mutation: while it is
// held, the world is running an init or free hook, which spec.md §4.5
// forbids from mutating the world (create/destroy/add/remove). Systems are
// deliberately NOT gated the same way — spec.md §5 says a system invalidating
// its own held column pointers by mutating components is permitted and only
// a documented contract, "not enforced at the type level".
const guardBitHook uint32 = 0

// guard is a reentrancy gate built on the teacher's storage.locks bit
// convention (storage.go: AddLock/RemoveLock/Locked over a mask.Mask256),
// repurposed here to enforce spec.md §4.5's hook non-reentrancy rule.
type guard struct {
	bits mask.Mask256
}

func (g *guard) lock(bit uint32) {
	g.bits.Mark(bit)
}

func (g *guard) unlock(bit uint32) {
	g.bits.Unmark(bit)
}

func (g *guard) locked() bool {
	return !g.bits.IsEmpty()
}

// withLock runs fn with bit held, always releasing it afterward even if fn
// panics.
func (g *guard) withLock(bit uint32, fn func()) {
	g.lock(bit)
	defer g.unlock(bit)
	fn()
}
