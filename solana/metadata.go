package solana

import (
	"context"
	"fmt"
	"strings"

	binary "github.com/gagliardetto/binary"
	token_metadata "github.com/gagliardetto/metaplex-go/clients/token-metadata"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

const (
	MetadataKeyMasterEditionV1 uint8 = 2
	MetadataKeyMetadataV1      uint8 = 4
	MetadataKeyMasterEditionV2 uint8 = 6

	MaxNameLength   = 32
	MaxSymbolLength = 10
	MaxURILength    = 200
)

type Creator = token_metadata.Creator

type Collection struct {
	Verified bool
	Key      solana.PublicKey
}

type UseMethod uint8

const (
	UseMethodBurn UseMethod = iota
	UseMethodMultiple
	UseMethodSingle
)

type Uses struct {
	UseMethod UseMethod
	Remaining uint64
	Total     uint64
}

// DataV2 is the metadata payload passed to the metadata program when a
// token is created.
type DataV2 struct {
	Name                 string
	Symbol               string
	URI                  string
	SellerFeeBasisPoints uint16
	Creators             Option[[]Creator]
	Collection           Option[Collection]
	Uses                 Option[Uses]
}

func (d DataV2) MarshalWithEncoder(enc *binary.Encoder) error {
	if err := enc.WriteString(d.Name); err != nil {
		return err
	}
	if err := enc.WriteString(d.Symbol); err != nil {
		return err
	}
	if err := enc.WriteString(d.URI); err != nil {
		return err
	}
	if err := enc.WriteUint16(d.SellerFeeBasisPoints, binary.LE); err != nil {
		return err
	}
	if err := d.Creators.MarshalWithEncoder(enc); err != nil {
		return err
	}
	if err := d.Collection.MarshalWithEncoder(enc); err != nil {
		return err
	}
	return d.Uses.MarshalWithEncoder(enc)
}

func (d *DataV2) UnmarshalWithDecoder(dec *binary.Decoder) (err error) {
	if d.Name, err = dec.ReadString(); err != nil {
		return err
	}
	if d.Symbol, err = dec.ReadString(); err != nil {
		return err
	}
	if d.URI, err = dec.ReadString(); err != nil {
		return err
	}
	if d.SellerFeeBasisPoints, err = dec.ReadUint16(binary.LE); err != nil {
		return err
	}
	if err = d.Creators.UnmarshalWithDecoder(dec); err != nil {
		return err
	}
	if err = d.Collection.UnmarshalWithDecoder(dec); err != nil {
		return err
	}
	return d.Uses.UnmarshalWithDecoder(dec)
}

// Validate checks the lengths the metadata program enforces.
func (d DataV2) Validate() error {
	if len(d.Name) > MaxNameLength {
		return fmt.Errorf("metadata name is %d bytes, max %d", len(d.Name), MaxNameLength)
	}
	if len(d.Symbol) > MaxSymbolLength {
		return fmt.Errorf("metadata symbol is %d bytes, max %d", len(d.Symbol), MaxSymbolLength)
	}
	if len(d.URI) > MaxURILength {
		return fmt.Errorf("metadata uri is %d bytes, max %d", len(d.URI), MaxURILength)
	}
	if d.Creators.Valid {
		var total int
		for _, c := range d.Creators.Value {
			total += int(c.Share)
		}
		if total != 100 {
			return fmt.Errorf("creator shares add up to %d, want 100", total)
		}
	}
	return nil
}

// Metadata is a token metadata account. Strings are stored padded with NUL
// bytes on chain; they are trimmed here.
type Metadata struct {
	Address              solana.PublicKey
	Key                  uint8
	UpdateAuthority      solana.PublicKey
	Mint                 solana.PublicKey
	Name                 string
	Symbol               string
	URI                  string
	SellerFeeBasisPoints uint16
	Creators             []Creator
	PrimarySaleHappened  bool
	IsMutable            bool
	EditionNonce         Option[uint8]
	TokenStandard        Option[uint8]
	Collection           Option[Collection]
	Uses                 Option[Uses]
}

func trimPadding(s string) string {
	return strings.TrimRight(s, "\x00")
}

func (m Metadata) MarshalWithEncoder(enc *binary.Encoder) error {
	if err := enc.WriteUint8(MetadataKeyMetadataV1); err != nil {
		return err
	}
	if err := enc.WriteBytes(m.UpdateAuthority[:], false); err != nil {
		return err
	}
	if err := enc.WriteBytes(m.Mint[:], false); err != nil {
		return err
	}
	for _, s := range []string{m.Name, m.Symbol, m.URI} {
		if err := enc.WriteString(s); err != nil {
			return err
		}
	}
	if err := enc.WriteUint16(m.SellerFeeBasisPoints, binary.LE); err != nil {
		return err
	}
	creators := None[[]Creator]()
	if len(m.Creators) > 0 {
		creators = Some(m.Creators)
	}
	if err := creators.MarshalWithEncoder(enc); err != nil {
		return err
	}
	if err := enc.WriteBool(m.PrimarySaleHappened); err != nil {
		return err
	}
	if err := enc.WriteBool(m.IsMutable); err != nil {
		return err
	}
	if err := m.EditionNonce.MarshalWithEncoder(enc); err != nil {
		return err
	}
	if err := m.TokenStandard.MarshalWithEncoder(enc); err != nil {
		return err
	}
	if err := m.Collection.MarshalWithEncoder(enc); err != nil {
		return err
	}
	return m.Uses.MarshalWithEncoder(enc)
}

func (m *Metadata) UnmarshalWithDecoder(dec *binary.Decoder) (err error) {
	if m.Key, err = dec.ReadUint8(); err != nil {
		return err
	}
	if m.Key != MetadataKeyMetadataV1 {
		return fmt.Errorf("%w: metadata key %d", ErrInvalidAccountData, m.Key)
	}
	if err = dec.Decode(&m.UpdateAuthority); err != nil {
		return err
	}
	if err = dec.Decode(&m.Mint); err != nil {
		return err
	}
	if m.Name, err = dec.ReadString(); err != nil {
		return err
	}
	if m.Symbol, err = dec.ReadString(); err != nil {
		return err
	}
	if m.URI, err = dec.ReadString(); err != nil {
		return err
	}
	m.Name, m.Symbol, m.URI = trimPadding(m.Name), trimPadding(m.Symbol), trimPadding(m.URI)
	if m.SellerFeeBasisPoints, err = dec.ReadUint16(binary.LE); err != nil {
		return err
	}
	var creators Option[[]Creator]
	if err = creators.UnmarshalWithDecoder(dec); err != nil {
		return err
	}
	m.Creators = creators.Value
	if m.PrimarySaleHappened, err = dec.ReadBool(); err != nil {
		return err
	}
	if m.IsMutable, err = dec.ReadBool(); err != nil {
		return err
	}

	// Accounts created by older program versions end here.
	if dec.Remaining() == 0 {
		return nil
	}
	if err = m.EditionNonce.UnmarshalWithDecoder(dec); err != nil {
		return err
	}
	if dec.Remaining() == 0 {
		return nil
	}
	if err = m.TokenStandard.UnmarshalWithDecoder(dec); err != nil {
		return err
	}
	if dec.Remaining() == 0 {
		return nil
	}
	if err = m.Collection.UnmarshalWithDecoder(dec); err != nil {
		return err
	}
	if dec.Remaining() == 0 {
		return nil
	}
	return m.Uses.UnmarshalWithDecoder(dec)
}

func DecodeMetadata(address solana.PublicKey, data []byte) (*Metadata, error) {
	out := &Metadata{}
	if err := out.UnmarshalWithDecoder(binary.NewBorshDecoder(data)); err != nil {
		return nil, fmt.Errorf("failed to decode metadata %s: %w", address, err)
	}
	out.Address = address
	return out, nil
}

func GetMetadata(ctx context.Context, rpcClient RPCClient, address solana.PublicKey, commitment rpc.CommitmentType) (*Metadata, error) {
	acc, err := GetAccountInfo(ctx, rpcClient, address, commitment)
	if err != nil {
		return nil, err
	}
	return DecodeMetadata(address, acc.Data.GetBinary())
}

// MasterEdition is a master edition v2 account.
type MasterEdition struct {
	Address   solana.PublicKey
	Key       uint8
	Supply    uint64
	MaxSupply Option[uint64]
}

func DecodeMasterEdition(address solana.PublicKey, data []byte) (*MasterEdition, error) {
	dec := binary.NewBorshDecoder(data)
	out := &MasterEdition{Address: address}
	var err error
	if out.Key, err = dec.ReadUint8(); err != nil {
		return nil, err
	}
	if out.Key != MetadataKeyMasterEditionV2 && out.Key != MetadataKeyMasterEditionV1 {
		return nil, fmt.Errorf("%w: master edition key %d", ErrInvalidAccountData, out.Key)
	}
	if out.Supply, err = dec.ReadUint64(binary.LE); err != nil {
		return nil, err
	}
	if err = out.MaxSupply.UnmarshalWithDecoder(dec); err != nil {
		return nil, err
	}
	return out, nil
}

func GetMasterEdition(ctx context.Context, rpcClient RPCClient, address solana.PublicKey, commitment rpc.CommitmentType) (*MasterEdition, error) {
	acc, err := GetAccountInfo(ctx, rpcClient, address, commitment)
	if err != nil {
		return nil, err
	}
	return DecodeMasterEdition(address, acc.Data.GetBinary())
}
