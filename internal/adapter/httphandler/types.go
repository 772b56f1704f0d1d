package httphandler

type (
	SearchRequest struct {
		Query     string `json:"query"`
		Immediate bool   `json:"immediate"`
	}

	FilterRequest struct {
		Category *string `json:"category"`
		Sort     *string `json:"sort"`
	}

	CartAddRequest struct {
		ProductID string `json:"product_id"`
		Qty       int    `json:"qty"`
	}

	CartQuantityRequest struct {
		Qty int `json:"qty"`
	}

	WishlistToggleRequest struct {
		ProductID string `json:"product_id"`
	}

	Notice struct {
		ID   int64  `json:"id"`
		Kind string `json:"kind"`
		Text string `json:"text"`
	}

	Badges struct {
		Cart     int `json:"cart"`
		Wishlist int `json:"wishlist"`
	}
)
