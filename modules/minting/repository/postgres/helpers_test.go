package postgres

import "github.com/gaze-network/mint-authority/modules/minting/repository/postgres/gen"

func genRecordFromParams(p gen.CreateMintRecordParams) gen.MintingMintRecord {
	return gen.MintingMintRecord{
		Address:       p.Address,
		SequenceIndex: p.SequenceIndex,
		Minter:        p.Minter,
		Amount:        p.Amount,
		Timestamp:     p.Timestamp,
		AccountData:   p.AccountData,
	}
}

func genConfigFromParams(p gen.CreateConfigParams) gen.MintingConfig {
	return gen.MintingConfig{
		Address:       p.Address,
		Admin:         p.Admin,
		Bump:          p.Bump,
		AuthorityBump: p.AuthorityBump,
		MintSequence:  p.MintSequence,
		AccountData:   p.AccountData,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.CreatedAt,
	}
}
