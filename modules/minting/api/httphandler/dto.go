package httphandler

import (
	"encoding/base64"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/mint-authority/common"
	"github.com/gaze-network/mint-authority/modules/minting/constants"
	"github.com/gaze-network/mint-authority/modules/minting/internal/entity"
	"github.com/gaze-network/mint-authority/pkg/decimals"
	"github.com/shopspring/decimal"
)

type configuration struct {
	Address       common.Address `json:"address"`
	Admin         common.Address `json:"admin"`
	Bump          uint8          `json:"bump"`
	AuthorityBump uint8          `json:"authorityBump"`
	MintSequence  uint64         `json:"mintSequence"`
	NextMintIndex uint64         `json:"nextMintIndex"` // 0 once the sequence is exhausted
	AccountData   string         `json:"accountData"` // base64
}

func mapConfiguration(config *entity.ConfigurationRecord) (*configuration, error) {
	data, err := config.MarshalAccount()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	next, err := config.NextMintIndex()
	if err != nil {
		next = 0
	}
	return &configuration{
		Address:       config.Address,
		Admin:         config.Admin,
		Bump:          config.Bump,
		AuthorityBump: config.AuthorityBump,
		MintSequence:  config.MintSequence,
		NextMintIndex: next,
		AccountData:   base64.StdEncoding.EncodeToString(data),
	}, nil
}

type mintRecord struct {
	Address       common.Address  `json:"address"`
	Minter        common.Address  `json:"minter"`
	Amount        uint64          `json:"amount"`
	UiAmount      decimal.Decimal `json:"uiAmount"`
	Decimals      uint8           `json:"decimals"`
	Timestamp     int64           `json:"timestamp"`
	SequenceIndex uint64          `json:"sequenceIndex"`
	AccountData   string          `json:"accountData"` // base64
}

func mapMintRecord(record *entity.MintRecord) (*mintRecord, error) {
	data, err := record.MarshalAccount()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &mintRecord{
		Address:       record.Address,
		Minter:        record.Minter,
		Amount:        record.Amount,
		UiAmount:      decimals.ToDecimal(record.Amount, constants.TokenDecimals),
		Decimals:      constants.TokenDecimals,
		Timestamp:     record.Timestamp,
		SequenceIndex: record.SequenceIndex,
		AccountData:   base64.StdEncoding.EncodeToString(data),
	}, nil
}
