package solana

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
	"github.com/tidwall/gjson"
)

var ErrConfirmationTimeout = errors.New("transaction not confirmed")

// SubmissionError is a transport or RPC failure while building, sending or
// confirming a transaction. Callers may retry it.
type SubmissionError struct {
	Op        string
	Signature solana.Signature
	Err       error
}

func (e *SubmissionError) Error() string {
	if e.Signature == (solana.Signature{}) {
		return fmt.Sprintf("%s: submission failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: submission failed (signature %s): %v", e.Op, e.Signature, e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// ProgramError is a structured rejection returned by the ledger for a
// transaction. InstructionIndex is -1 when the failure is not tied to one
// instruction.
type ProgramError struct {
	Op               string
	Signature        solana.Signature
	InstructionIndex int
	Code             uint32
	HasCode          bool
	Detail           string
	Logs             []string
}

func (e *ProgramError) Error() string {
	switch {
	case e.HasCode:
		return fmt.Sprintf("%s: instruction %d failed with custom program error 0x%x", e.Op, e.InstructionIndex, e.Code)
	case e.InstructionIndex >= 0:
		return fmt.Sprintf("%s: instruction %d failed: %s", e.Op, e.InstructionIndex, e.Detail)
	default:
		return fmt.Sprintf("%s: transaction failed: %s", e.Op, e.Detail)
	}
}

// parseTransactionError turns the err value of a signature status or a
// simulation result into a ProgramError.
// Solana reports {"InstructionError": [index, {"Custom": code}]} or
// {"InstructionError": [index, "Name"]} or a bare variant name.
func parseTransactionError(op string, sig solana.Signature, txErr any, logs []string) *ProgramError {
	raw, err := json.Marshal(txErr)
	if err != nil {
		raw = []byte(fmt.Sprintf("%q", fmt.Sprint(txErr)))
	}
	pe := &ProgramError{
		Op:               op,
		Signature:        sig,
		InstructionIndex: -1,
		Detail:           string(raw),
		Logs:             logs,
	}

	parsed := gjson.ParseBytes(raw)
	ixErr := parsed.Get("InstructionError")
	if !ixErr.IsArray() {
		if parsed.Type == gjson.String {
			pe.Detail = parsed.String()
		}
		return pe
	}
	pe.InstructionIndex = int(ixErr.Get("0").Int())
	detail := ixErr.Get("1")
	if custom := detail.Get("Custom"); custom.Exists() {
		pe.Code = uint32(custom.Uint())
		pe.HasCode = true
	}
	pe.Detail = detail.String()
	return pe
}

// programErrorFromRPC extracts a ProgramError from a preflight failure
// returned by sendTransaction. It returns nil for any other error.
func programErrorFromRPC(op string, err error) *ProgramError {
	var rpcErr *jsonrpc.RPCError
	if !errors.As(err, &rpcErr) || rpcErr.Data == nil {
		return nil
	}
	raw, mErr := json.Marshal(rpcErr.Data)
	if mErr != nil {
		return nil
	}
	data := gjson.ParseBytes(raw)
	txErr := data.Get("err")
	if !txErr.Exists() || txErr.Type == gjson.Null {
		return nil
	}
	var logs []string
	for _, l := range data.Get("logs").Array() {
		logs = append(logs, l.String())
	}
	return parseTransactionError(op, solana.Signature{}, txErr.Value(), logs)
}
