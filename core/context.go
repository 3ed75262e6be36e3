package core

// ContextSwitcher is the raw interrupt entry hook of the platform. Save
// pushes every CPU register and the return address onto the stack of the
// current task and records the stack pointer; Restore reloads them from
// whichever task is current at that point; Return leaves the interrupt
// with the dedicated return-from-interrupt instruction.
//
// Implementations are not reentrant. Between vector entry and Save the
// stack must still have its pre-interrupt shape.
type ContextSwitcher interface {
	Save()
	Restore()
	Return()
}
