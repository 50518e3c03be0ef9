package product

import "time"

// PriceType identifies one of the tracked price or attribute histories.
type PriceType string

const (
	Amazon                        PriceType = "AMAZON"
	New                           PriceType = "NEW"
	Used                          PriceType = "USED"
	Sales                         PriceType = "SALES"
	ListPrice                     PriceType = "LISTPRICE"
	Collectible                   PriceType = "COLLECTIBLE"
	Refurbished                   PriceType = "REFURBISHED"
	NewFBMShipping                PriceType = "NEW_FBM_SHIPPING"
	LightningDeal                 PriceType = "LIGHTNING_DEAL"
	Warehouse                     PriceType = "WAREHOUSE"
	NewFBA                        PriceType = "NEW_FBA"
	CountNew                      PriceType = "COUNT_NEW"
	CountUsed                     PriceType = "COUNT_USED"
	CountRefurbished              PriceType = "COUNT_REFURBISHED"
	CountCollectible              PriceType = "COUNT_COLLECTIBLE"
	ExtraInfoUpdates              PriceType = "EXTRA_INFO_UPDATES"
	Rating                        PriceType = "RATING"
	CountReviews                  PriceType = "COUNT_REVIEWS"
	BuyBoxShipping                PriceType = "BUY_BOX_SHIPPING"
	UsedNewShipping               PriceType = "USED_NEW_SHIPPING"
	UsedVeryGoodShipping          PriceType = "USED_VERY_GOOD_SHIPPING"
	UsedGoodShipping              PriceType = "USED_GOOD_SHIPPING"
	UsedAcceptableShipping        PriceType = "USED_ACCEPTABLE_SHIPPING"
	CollectibleNewShipping        PriceType = "COLLECTIBLE_NEW_SHIPPING"
	CollectibleVeryGoodShipping   PriceType = "COLLECTIBLE_VERY_GOOD_SHIPPING"
	CollectibleGoodShipping       PriceType = "COLLECTIBLE_GOOD_SHIPPING"
	CollectibleAcceptableShipping PriceType = "COLLECTIBLE_ACCEPTABLE_SHIPPING"
	RefurbishedShipping           PriceType = "REFURBISHED_SHIPPING"
	EbayNewShipping               PriceType = "EBAY_NEW_SHIPPING"
	EbayUsedShipping              PriceType = "EBAY_USED_SHIPPING"
	TradeIn                       PriceType = "TRADE_IN"
	Rent                          PriceType = "RENT"
	BuyBoxUsedShipping            PriceType = "BUY_BOX_USED_SHIPPING"
	PrimeExcl                     PriceType = "PRIME_EXCL"
)

// csvIndexToType maps each position of a product's csv table to its price
// type. The ordering is part of the wire protocol and must not change.
var csvIndexToType = [...]PriceType{
	Amazon, New, Used, Sales, ListPrice, Collectible,
	Refurbished, NewFBMShipping, LightningDeal, Warehouse,
	NewFBA, CountNew, CountUsed, CountRefurbished,
	CountCollectible, ExtraInfoUpdates, Rating, CountReviews,
	BuyBoxShipping, UsedNewShipping, UsedVeryGoodShipping,
	UsedGoodShipping, UsedAcceptableShipping,
	CollectibleNewShipping, CollectibleVeryGoodShipping,
	CollectibleGoodShipping, CollectibleAcceptableShipping,
	RefurbishedShipping, EbayNewShipping, EbayUsedShipping,
	TradeIn, Rent, BuyBoxUsedShipping, PrimeExcl,
}

// NumPriceTypes is the arity of the csv table.
const NumPriceTypes = len(csvIndexToType)

// PricePoint is a single observation in a price history.
type PricePoint struct {
	Time  time.Time
	Value int64
}

// History is the ordered series of observations for one price type.
type History []PricePoint

// Snapshot maps price types to their decoded histories. A type whose csv
// entry was null maps to an empty (non-nil) History. Snapshots are handed
// to the caller and never retained by the client.
type Snapshot map[PriceType]History
