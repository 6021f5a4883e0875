package token_metadata

const (
	AccountKeyAdminSettings    = "AdminSettings"
	AccountKeyMerchant         = "Merchant"
	AccountKeyLocation         = "Location"
	AccountKeyDevice           = "Device"
	AccountKeyCampaign         = "Campaign"
	AccountKeyCampaignLocation = "CampaignLocation"
	AccountKeyPromo            = "Promo"

	MaxNameLength = 64
	MaxURILength  = 200

	// SchemaCampaignLocation is the program schema this package encodes:
	// campaigns link to locations through CampaignLocation accounts.
	SchemaCampaignLocation = "campaign_location"
	Schema                 = SchemaCampaignLocation

	defaultExtendedPoolSize = 16
)

const (
	instructionCreateAdminSettings     = "create_admin_settings"
	instructionCreateMerchant          = "create_merchant"
	instructionCreateLocation          = "create_location"
	instructionCreateDevice            = "create_device"
	instructionCreateCampaign          = "create_campaign"
	instructionCreateCampaignLocation  = "create_campaign_location"
	instructionCreatePromo             = "create_promo"
	instructionMintPromoToken          = "mint_promo_token"
	instructionDelegatePromoToken      = "delegate_promo_token"
	instructionBurnDelegatedPromoToken = "burn_delegated_promo_token"
	instructionSignMemo                = "sign_memo"
	instructionCreateNonFungible       = "create_non_fungible"
)
