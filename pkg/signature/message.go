package signature

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/gaze-network/mint-authority/common"
)

// Canonical messages signed by callers. Each is bound to the program id so a signature can't be
// replayed against another deployment. Mint messages are also bound to the claimed index, and the
// index can be consumed only once.

func InitializeMessage(programID common.Address) []byte {
	return []byte(fmt.Sprintf("initialize:%s", programID))
}

func CreateTokenMintMessage(programID common.Address) []byte {
	return []byte(fmt.Sprintf("create_token_mint:%s", programID))
}

func MintMessage(programID common.Address, amount, mintIndex uint64) []byte {
	return []byte(fmt.Sprintf("mint_token:%s:%d:%d", programID, amount, mintIndex))
}

// LedgerRequestMessage is signed by token ledger clients. It binds the operation, the idempotency key
// and the exact request body.
func LedgerRequestMessage(operation string, idempotencyKey string, body []byte) []byte {
	return []byte(fmt.Sprintf("ledger_request:%s:%s:%s", operation, idempotencyKey, hex.EncodeToString(chainhash.HashB(body))))
}
