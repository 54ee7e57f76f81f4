package constants

import (
	"github.com/gaze-network/mint-authority/common"
)

const (
	Version   = "v0.1.0"
	DBVersion = 2

	// TokenDecimals is fixed for the minted unit.
	TokenDecimals = 9
)

// Namespace tags of derived addresses.
const (
	ConfigTag     = "config"
	AuthorityTag  = "authority"
	TokenMintTag  = "token_mint"
	MintRecordTag = "mint_record"
)

// DefaultProgramID is used when no program id is configured.
var DefaultProgramID = common.MustAddressFromString("5YNmS1R9nNSCDzb5a7mMJ1dwK9uHeAAF4CmPEwKgVWr8")
