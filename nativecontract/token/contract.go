package token

import "soroban-host/host"

// ContractErrCode enumerates the opaque ContractError codes this token
// contract raises, surfaced to callers the same way a WASM contract's
// trap status would be.
const (
	CodeFrozen uint16 = iota
	CodeInsufficientBalance
	CodeUnknownFunction
	CodeBadArgs
)

// Contract is the built-in asset contract, installed via
// host.Host.WithTokenContract and dispatched under a host.FrameToken
// frame by host.Host.Call/TryCall instead of through the WASM engine.
type Contract struct{}

// Invoke implements host.TokenContract.
func (Contract) Invoke(h *host.Host, fn host.Symbol, args []host.RawVal) (host.RawVal, error) {
	switch fn {
	case "balance":
		return invokeBalance(h, args)
	case "transfer":
		return invokeTransfer(h, args)
	case "mint":
		return invokeMint(h, args)
	case "burn":
		return invokeBurn(h, args)
	case "freeze":
		return invokeSetFrozen(h, args, true)
	case "unfreeze":
		return invokeSetFrozen(h, args, false)
	case "is_frozen":
		return invokeIsFrozen(h, args)
	default:
		return 0, host.NewContractError(CodeUnknownFunction, "token: unknown function "+string(fn))
	}
}

func identifierArg(h *host.Host, v host.RawVal) (Identifier, error) {
	obj, err := v.AsObject()
	if err != nil {
		return Identifier{}, host.NewContractError(CodeBadArgs, "token: identifier argument must be Bytes")
	}
	if obj.Type != host.ObjBytes {
		return Identifier{}, host.NewContractError(CodeBadArgs, "token: identifier argument must be Bytes")
	}
	n, err := h.BytesLen(v)
	if err != nil {
		return Identifier{}, err
	}
	if n != 32 {
		return Identifier{}, host.NewContractError(CodeBadArgs, "token: identifier must be 32 bytes")
	}
	var id Identifier
	for i := uint32(0); i < 32; i++ {
		b, err := h.BytesGet(v, i)
		if err != nil {
			return Identifier{}, err
		}
		id[i] = b
	}
	return id, nil
}

func invokeBalance(h *host.Host, args []host.RawVal) (host.RawVal, error) {
	if len(args) != 1 {
		return 0, host.NewContractError(CodeBadArgs, "balance takes 1 argument")
	}
	id, err := identifierArg(h, args[0])
	if err != nil {
		return 0, err
	}
	return ReadBalance(h, id)
}

func invokeTransfer(h *host.Host, args []host.RawVal) (host.RawVal, error) {
	if len(args) != 3 {
		return 0, host.NewContractError(CodeBadArgs, "transfer takes 3 arguments")
	}
	from, err := identifierArg(h, args[0])
	if err != nil {
		return 0, err
	}
	to, err := identifierArg(h, args[1])
	if err != nil {
		return 0, err
	}
	amount := args[2]
	if err := SpendBalance(h, from, amount); err != nil {
		return 0, mapBalanceErr(err)
	}
	if err := ReceiveBalance(h, to, amount); err != nil {
		return 0, mapBalanceErr(err)
	}
	return host.Void, nil
}

func invokeMint(h *host.Host, args []host.RawVal) (host.RawVal, error) {
	if len(args) != 2 {
		return 0, host.NewContractError(CodeBadArgs, "mint takes 2 arguments")
	}
	to, err := identifierArg(h, args[0])
	if err != nil {
		return 0, err
	}
	if err := ReceiveBalance(h, to, args[1]); err != nil {
		return 0, mapBalanceErr(err)
	}
	return host.Void, nil
}

func invokeBurn(h *host.Host, args []host.RawVal) (host.RawVal, error) {
	if len(args) != 2 {
		return 0, host.NewContractError(CodeBadArgs, "burn takes 2 arguments")
	}
	from, err := identifierArg(h, args[0])
	if err != nil {
		return 0, err
	}
	if err := SpendBalance(h, from, args[1]); err != nil {
		return 0, mapBalanceErr(err)
	}
	return host.Void, nil
}

func invokeSetFrozen(h *host.Host, args []host.RawVal, frozen bool) (host.RawVal, error) {
	if len(args) != 1 {
		return 0, host.NewContractError(CodeBadArgs, "freeze/unfreeze takes 1 argument")
	}
	id, err := identifierArg(h, args[0])
	if err != nil {
		return 0, err
	}
	if err := WriteState(h, id, frozen); err != nil {
		return 0, err
	}
	return host.Void, nil
}

func invokeIsFrozen(h *host.Host, args []host.RawVal) (host.RawVal, error) {
	if len(args) != 1 {
		return 0, host.NewContractError(CodeBadArgs, "is_frozen takes 1 argument")
	}
	id, err := identifierArg(h, args[0])
	if err != nil {
		return 0, err
	}
	frozen, err := ReadState(h, id)
	if err != nil {
		return 0, err
	}
	return host.FromBool(frozen), nil
}

func mapBalanceErr(err error) error {
	switch err {
	case ErrContractFrozen:
		return host.NewContractError(CodeFrozen, err.Error())
	case ErrInsufficientBalance:
		return host.NewContractError(CodeInsufficientBalance, err.Error())
	default:
		return err
	}
}
