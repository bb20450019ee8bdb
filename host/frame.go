package host

// FrameKind discriminates why a Frame is on the stack.
type FrameKind uint8

const (
	// FrameContractVM is a synchronous call into a WASM contract.
	FrameContractVM FrameKind = iota
	// FrameHostFunction is the outermost frame for a top-level
	// HostFunction invocation (Call or CreateContract) with no
	// contract code running yet.
	FrameHostFunction
	// FrameToken is an in-process dispatch into the built-in token
	// contract, bypassing the WASM engine entirely.
	FrameToken
	// FrameTestContract exists purely for tests that need to push a
	// frame without a real contract backing it.
	FrameTestContract
)

// Frame is one entry of the host's call stack. Exactly the fields
// relevant to Kind are meaningful.
type Frame struct {
	Kind       FrameKind
	ContractID [32]byte
}

// RollbackPoint captures everything a Frame needs to undo on a failed
// nested call: the object table's length (objects allocated after this
// point get truncated away) and the storage overlay's contents at push
// time.
type RollbackPoint struct {
	objectsLen uint32
	storage    storageRollback
}

func (h *Host) snapshot() RollbackPoint {
	return RollbackPoint{
		objectsLen: h.objects.len(),
		storage:    h.storage.snapshot(),
	}
}

func (h *Host) rollbackTo(rp RollbackPoint) {
	h.objects.truncate(rp.objectsLen)
	h.storage.restore(rp.storage)
}

// pushFrame pushes f onto the call stack and returns a RollbackPoint a
// caller passes to rollbackTo on failure, before calling popFrame.
func (h *Host) pushFrame(f Frame) (RollbackPoint, error) {
	if err := h.budget.Charge(GuardFrame, 1); err != nil {
		return RollbackPoint{}, err
	}
	rp := h.snapshot()
	h.frames = append(h.frames, f)
	return rp, nil
}

// popFrame pops the top frame, panicking if the stack is empty. Which
// frame is popped is not checked; callers pop in LIFO order.
func (h *Host) popFrame() {
	if len(h.frames) == 0 {
		panic("host: popFrame on empty frame stack")
	}
	h.frames = h.frames[:len(h.frames)-1]
}

// currentFrame returns the top of the call stack, or an error if no
// frame is active.
func (h *Host) currentFrame() (*Frame, error) {
	if len(h.frames) == 0 {
		return nil, newErr(DomainHostContextError, CodeNoContractRunning, "no contract is currently running")
	}
	return &h.frames[len(h.frames)-1], nil
}

// withFrame pushes f, runs body, and on error (from body or from the
// push itself) rolls the object table and storage back to the
// pre-push state before propagating the error. On success the frame is
// simply popped and every side effect body made is kept.
func (h *Host) withFrame(f Frame, body func() (RawVal, error)) (RawVal, error) {
	rp, err := h.pushFrame(f)
	if err != nil {
		return 0, err
	}
	result, err := body()
	if err != nil {
		h.rollbackTo(rp)
		h.popFrame()
		return 0, err
	}
	h.popFrame()
	return result, nil
}

// getCurrentContractID returns the ContractID of the frame running, or
// an error at the top level where no contract is active yet.
func (h *Host) getCurrentContractID() ([32]byte, error) {
	f, err := h.currentFrame()
	if err != nil {
		return [32]byte{}, err
	}
	if f.Kind == FrameHostFunction {
		return [32]byte{}, newErr(DomainHostContextError, CodeNoContractRunning, "host function frame has no contract id")
	}
	return f.ContractID, nil
}

// getInvokingContractID returns the ContractID of the frame one below
// the current one, i.e. whoever called into the currently running
// contract, or an error if there isn't one (the outermost contract call
// has no invoker).
func (h *Host) getInvokingContractID() ([32]byte, error) {
	if len(h.frames) < 2 {
		return [32]byte{}, newErr(DomainHostContextError, CodeNoInvokingContract, "no invoking contract")
	}
	f := h.frames[len(h.frames)-2]
	if f.Kind == FrameHostFunction {
		return [32]byte{}, newErr(DomainHostContextError, CodeNoInvokingContract, "no invoking contract")
	}
	return f.ContractID, nil
}
