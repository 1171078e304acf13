package converter

type ProductRedisModel struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Rate         string  `json:"rate"`
	MinTerm      int     `json:"min_term"`
	MaxTerm      *int    `json:"max_term,omitempty"`
	MinPrincipal string  `json:"min_principal"`
	MaxPrincipal *string `json:"max_principal,omitempty"`
}

type BoundsRedisModel struct {
	MinPrincipal string `json:"min_principal"`
	MaxPrincipal string `json:"max_principal"`
}
