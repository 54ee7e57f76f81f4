package entity

import (
	"bytes"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/mint-authority/common"
	"github.com/gaze-network/mint-authority/common/errs"
	"github.com/near/borsh-go"
)

const DiscriminatorLength = 8

// Account sizes including the discriminator.
const (
	ConfigurationAccountSize = DiscriminatorLength + 32 + 1 + 8
	MintRecordAccountSize    = DiscriminatorLength + 32 + 8 + 8 + 8
)

var (
	ConfigurationDiscriminator = accountDiscriminator("TokenConfig")
	MintRecordDiscriminator    = accountDiscriminator("MintRecord")
)

var ErrInvalidAccountData = errors.Wrap(errs.InvalidArgument, "invalid account data")

func accountDiscriminator(name string) [DiscriminatorLength]byte {
	var d [DiscriminatorLength]byte
	copy(d[:], chainhash.HashB([]byte("account:"+name)))
	return d
}

type configurationAccount struct {
	Admin     [32]byte
	Bump      uint8
	MintCount uint64
}

type mintRecordAccount struct {
	Minter    [32]byte
	Amount    uint64
	Timestamp int64
	MintIndex uint64
}

// MarshalAccount encodes the persisted account layout. The stored bump is the authority bump.
func (c ConfigurationRecord) MarshalAccount() ([]byte, error) {
	payload, err := borsh.Serialize(configurationAccount{
		Admin:     c.Admin,
		Bump:      c.AuthorityBump,
		MintCount: c.MintSequence,
	})
	if err != nil {
		return nil, errors.Wrap(err, "can't serialize configuration account")
	}
	return append(ConfigurationDiscriminator[:], payload...), nil
}

func UnmarshalConfigurationAccount(address common.Address, data []byte) (*ConfigurationRecord, error) {
	payload, err := accountPayload(data, ConfigurationDiscriminator, ConfigurationAccountSize)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	var account configurationAccount
	if err := borsh.Deserialize(&account, payload); err != nil {
		return nil, errors.Wrap(ErrInvalidAccountData, err.Error())
	}
	return &ConfigurationRecord{
		Address:       address,
		Admin:         account.Admin,
		AuthorityBump: account.Bump,
		MintSequence:  account.MintCount,
	}, nil
}

func (r MintRecord) MarshalAccount() ([]byte, error) {
	payload, err := borsh.Serialize(mintRecordAccount{
		Minter:    r.Minter,
		Amount:    r.Amount,
		Timestamp: r.Timestamp,
		MintIndex: r.SequenceIndex,
	})
	if err != nil {
		return nil, errors.Wrap(err, "can't serialize mint record account")
	}
	return append(MintRecordDiscriminator[:], payload...), nil
}

func UnmarshalMintRecordAccount(address common.Address, data []byte) (*MintRecord, error) {
	payload, err := accountPayload(data, MintRecordDiscriminator, MintRecordAccountSize)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	var account mintRecordAccount
	if err := borsh.Deserialize(&account, payload); err != nil {
		return nil, errors.Wrap(ErrInvalidAccountData, err.Error())
	}
	return &MintRecord{
		Address:       address,
		Minter:        account.Minter,
		Amount:        account.Amount,
		Timestamp:     account.Timestamp,
		SequenceIndex: account.MintIndex,
	}, nil
}

func accountPayload(data []byte, discriminator [DiscriminatorLength]byte, size int) ([]byte, error) {
	if len(data) != size {
		return nil, errors.Wrapf(ErrInvalidAccountData, "expected %d bytes, got %d", size, len(data))
	}
	if !bytes.Equal(data[:DiscriminatorLength], discriminator[:]) {
		return nil, errors.Wrap(ErrInvalidAccountData, "discriminator mismatch")
	}
	return data[DiscriminatorLength:], nil
}
