package token

import "errors"

// ErrContractFrozen is returned by balance mutations on a frozen
// identifier, mirroring balance.rs's Error::ContractError case for a
// frozen account.
var ErrContractFrozen = errors.New("token: account is frozen")

// ErrInsufficientBalance is returned when a spend would drive a balance
// negative.
var ErrInsufficientBalance = errors.New("token: insufficient balance")

// ErrUnknownFunction names the case of a function symbol the token
// contract doesn't implement. Contract.Invoke reports that case as a
// ContractError with CodeUnknownFunction and does not return this value.
var ErrUnknownFunction = errors.New("token: unknown function")
