package federation

import (
	"fmt"

	"github.com/btcsuite/btcd/txscript"
)

// ThresholdPolicy returns the number of signatures required to spend from a
// federation of the given size.
type ThresholdPolicy func(members int) int

// MajorityThreshold requires a simple majority of the members.
func MajorityThreshold(members int) int {
	return members/2 + 1
}

// redeemScript builds the standard m-of-n multisig script over the custody
// keys in the given order:
//
//	OP_m <key_1> ... <key_n> OP_n OP_CHECKMULTISIG
func redeemScript(members []Member, required int) ([]byte, error) {
	b := txscript.NewScriptBuilder()
	b.AddInt64(int64(required))
	for _, m := range members {
		b.AddData(m.custody.Bytes())
	}
	b.AddInt64(int64(len(members)))
	b.AddOp(txscript.OP_CHECKMULTISIG)
	script, err := b.Script()
	if err != nil {
		return nil, fmt.Errorf("build redeem script: %w", err)
	}
	return script, nil
}
