package grpc

import "github.com/dwikikusuma/storefront/internal/handoff"

type IdentityRequest struct {
	TabID    string `json:"tab_id"`
	ClientID string `json:"client_id"`
}

func (r *IdentityRequest) identity() handoff.Identity {
	return handoff.Identity{TabID: r.TabID, ClientID: r.ClientID}
}

type AddItemRequest struct {
	IdentityRequest
	Name  string `json:"name"`
	Price string `json:"price"`
	Image string `json:"image"`
}

type AdjustQuantityRequest struct {
	IdentityRequest
	LineID string `json:"line_id"`
	Delta  int    `json:"delta"`
}

type RemoveItemRequest struct {
	IdentityRequest
	LineID string `json:"line_id"`
}

type Line struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Qty      int     `json:"qty"`
	Price    int64   `json:"price"`
	Img      *string `json:"img"`
	Subtotal int64   `json:"subtotal"`
}

type CartReply struct {
	Lines   []Line `json:"lines"`
	Total   int64  `json:"total"`
	Display string `json:"display"`
	Visible bool   `json:"visible"`
}

type HandoffReply struct {
	Items []handoff.Item `json:"items"`
}
