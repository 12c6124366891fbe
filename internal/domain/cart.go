package domain

// CartLineItem is one purchasable unit in the cart. Name, price and image are
// snapshots taken when the item is added; only the price is ever re-synced
// (see cart.Store.RefreshPrices).
type CartLineItem struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	VariantID string  `json:"variantId,omitempty"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ImageURL  string  `json:"imageUrl"`
	Size      string  `json:"size,omitempty"`
}

// ProductPricing is the authoritative price data for one product, as returned
// by a batched catalog lookup. Adjustments maps variant id to the signed delta
// applied on top of BasePrice when that variant is selected.
type ProductPricing struct {
	BasePrice   float64
	Adjustments map[string]float64
}
