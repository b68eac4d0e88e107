package models

// Goods описывает состав заказа.
type Goods struct {
	Item1        int `json:"item1"`
	Count        int `json:"count"`
	PlusCount    int `json:"plusCount"`
	Total        int `json:"total"`
	ItemDiscount int `json:"itemDiscount"`
}

// Order представляет запись истории заказов из каталога.
type Order struct {
	ID            int     `json:"id"`
	TransactionID int     `json:"transactionId"`
	Date          string  `json:"date"`
	Status        string  `json:"status"`
	GameName      string  `json:"gameName"`
	GameID        int     `json:"gameId"`
	Amount        float64 `json:"amount"`
	Goods         Goods   `json:"goods"`
}
