package token_metadata

import (
	"github.com/gagliardetto/solana-go"
	"github.com/krazyTry/bokoup-go/offchain"
	solanago "github.com/krazyTry/bokoup-go/solana"
)

type ProgramAccount[T any] = solanago.ProgramAccount[T]

// AdminSettings holds the platform account fees are paid to and the fee
// levels. There is one per program.
type AdminSettings struct {
	Platform               solana.PublicKey
	CreatePromoLamports    uint64
	BurnPromoTokenLamports uint64
}

type Merchant struct {
	Owner  solana.PublicKey
	Name   string
	URI    string
	Active bool
}

type Location struct {
	Merchant solana.PublicKey
	Name     string
	URI      string
	Active   bool
}

type Device struct {
	Owner    solana.PublicKey
	Location solana.PublicKey
	Name     string
	URI      string
	Active   bool
}

type Campaign struct {
	Merchant solana.PublicKey
	Name     string
	URI      string
	Active   bool
}

// CampaignLocation links a campaign to a location its promos may be
// minted and redeemed at.
type CampaignLocation struct {
	Campaign solana.PublicKey
	Location solana.PublicKey
}

type Promo struct {
	Campaign  solana.PublicKey
	Mint      solana.PublicKey
	Metadata  solana.PublicKey
	MintCount uint32
	BurnCount uint32
	MaxMint   solanago.Option[uint32]
	MaxBurn   solanago.Option[uint32]
	Active    bool
}

// PromoExtended gathers a promo with its mint and metadata, on-chain and
// off-chain.
type PromoExtended struct {
	Address      solana.PublicKey
	Promo        *Promo
	Mint         *solanago.Mint
	Metadata     *solanago.Metadata
	MetadataJSON *offchain.MetadataJSON
}

type CreateAdminSettingsResult struct {
	Signature     solana.Signature
	AdminSettings solana.PublicKey
}

// CreateMerchantParams describes a merchant. A zero Owner means the payer
// owns the merchant.
type CreateMerchantParams struct {
	Owner  solana.PublicKey
	Name   string
	URI    string
	Active bool
	Memo   *string
}

type CreateMerchantResult struct {
	Signature solana.Signature
	Merchant  solana.PublicKey
}

type CreateLocationParams struct {
	Owner  solana.PublicKey
	Name   string
	URI    string
	Active bool
	Memo   *string
}

type CreateLocationResult struct {
	Signature solana.Signature
	Merchant  solana.PublicKey
	Location  solana.PublicKey
}

// CreateDeviceParams describes a device at Location. MerchantOwner signs;
// Owner is the key the device will sign with and defaults to the merchant
// owner.
type CreateDeviceParams struct {
	MerchantOwner solana.PublicKey
	Owner         solana.PublicKey
	Location      solana.PublicKey
	Name          string
	URI           string
	Active        bool
	Memo          *string
}

type CreateDeviceResult struct {
	Signature solana.Signature
	Merchant  solana.PublicKey
	Device    solana.PublicKey
}

// CreateCampaignParams describes a campaign. Lamports are moved into the
// campaign account to fund promo operations. Each of Locations is linked in
// the same transaction.
type CreateCampaignParams struct {
	Owner     solana.PublicKey
	Name      string
	URI       string
	Active    bool
	Lamports  uint64
	Locations []solana.PublicKey
	Memo      *string
}

type CreateCampaignResult struct {
	Signature         solana.Signature
	Merchant          solana.PublicKey
	Campaign          solana.PublicKey
	CampaignLocations []solana.PublicKey
}

type CreateCampaignLocationParams struct {
	Owner    solana.PublicKey
	Campaign solana.PublicKey
	Location solana.PublicKey
	Memo     *string
}

type CreateCampaignLocationResult struct {
	Signature        solana.Signature
	CampaignLocation solana.PublicKey
}

// CreatePromoParams describes a promo token. Metadata is written to the
// new mint's metadata account. Nil limits are unbounded.
type CreatePromoParams struct {
	Owner     solana.PublicKey
	Campaign  solana.PublicKey
	MaxMint   *uint32
	MaxBurn   *uint32
	Active    bool
	Metadata  solanago.DataV2
	IsMutable bool
	Memo      *string
}

// CreatePromoResult carries the generated mint key. It must co-sign the
// transaction when the instructions are signed elsewhere.
type CreatePromoResult struct {
	Signature solana.Signature
	MintKey   solana.PrivateKey
	Mint      solana.PublicKey
	Promo     solana.PublicKey
	Metadata  solana.PublicKey
}

// PromoTokenParams identifies a promo token held by TokenOwner and the
// device acting on it. A nil TokenAccount means the owner's associated
// token account.
type PromoTokenParams struct {
	DeviceOwner  solana.PublicKey
	Device       solana.PublicKey
	Location     solana.PublicKey
	Campaign     solana.PublicKey
	Mint         solana.PublicKey
	TokenOwner   solana.PublicKey
	TokenAccount *solana.PublicKey
	Memo         *string
}

type PromoTokenResult struct {
	Signature        solana.Signature
	Promo            solana.PublicKey
	TokenAccount     solana.PublicKey
	CampaignLocation solana.PublicKey
}

type CreateNonFungibleParams struct {
	Metadata  solanago.DataV2
	IsMutable bool
	MaxSupply *uint64
}

type CreateNonFungibleResult struct {
	Signature    solana.Signature
	MintKey      solana.PrivateKey
	Mint         solana.PublicKey
	TokenAccount solana.PublicKey
	Metadata     solana.PublicKey
	Edition      solana.PublicKey
}
