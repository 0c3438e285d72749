// Package host provides the collaborators that receive machine state from
// the mipsim emulator. After every step the emulator hands the full register
// file, ordered r0..r31, to an Observer.
package host

// Observer defines the interface for register file notifications.
type Observer interface {
	// Update receives a register snapshot. The slice is owned by the observer.
	Update(registers []uint32)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(registers []uint32)

var _ Observer = (ObserverFunc)(nil)

// Update calls the function.
func (fn ObserverFunc) Update(registers []uint32) {
	fn(registers)
}
