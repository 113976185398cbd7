package models

import "time"

type Order struct {
	ID            string      `json:"id"`
	Users         []OrderUser `json:"user"`
	Products      []OrderLine `json:"products"`
	TotalAmount   float64     `json:"totalAmount"`
	PaymentMethod string      `json:"paymentmethod"`
	PaymentStatus string      `json:"paymentStatus"`
	PaymentID     string      `json:"paymentId"`
	OrderStatus   string      `json:"orderstatus"`
	CreatedAt     time.Time   `json:"createdAt"`
}

type OrderUser struct {
	Email string `json:"email"`
}

// OrderLine - une ligne de commande; le détail produit est récupéré à part
type OrderLine struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}
