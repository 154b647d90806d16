package cartrpc

type CartItem struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Price    string `json:"price"`
	Image    string `json:"image"`
	Amount   int    `json:"amount"`
	Subtotal string `json:"subtotal"`
}

type Cart struct {
	Items []CartItem `json:"items"`
	Total string     `json:"total"`
	Size  int        `json:"size"`
}

type GetCartRequest struct{}

type AddProductRequest struct {
	ProductID int `json:"product_id"`
}

type RemoveProductRequest struct {
	ProductID int `json:"product_id"`
}

type UpdateProductAmountRequest struct {
	ProductID int `json:"product_id"`
	Amount    int `json:"amount"`
}

type CartResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Cart    *Cart  `json:"cart,omitempty"`
}

type WatchRequest struct{}
