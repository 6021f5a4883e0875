package auction_house

const (
	AccountKeyAuctionHouse    = "AuctionHouse"
	AccountKeyListingReceipt  = "ListingReceipt"
	AccountKeyBidReceipt      = "BidReceipt"
	AccountKeyPurchaseReceipt = "PurchaseReceipt"

	MaxBasisPoints = 10_000

	// DefaultTokenSize is the size of a single non-fungible token offer.
	DefaultTokenSize uint64 = 1
)

const (
	instructionCreateAuctionHouse   = "create_auction_house"
	instructionSell                 = "sell"
	instructionDeposit              = "deposit"
	instructionBuy                  = "buy"
	instructionPublicBuy            = "public_buy"
	instructionExecuteSale          = "execute_sale"
	instructionPrintListingReceipt  = "print_listing_receipt"
	instructionPrintBidReceipt      = "print_bid_receipt"
	instructionPrintPurchaseReceipt = "print_purchase_receipt"
)
