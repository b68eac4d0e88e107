package storage

import "github.com/magabrotheeeer/storefront/internal/models"

// SeedOrders возвращает демонстрационную историю заказов.
// Сервис каталога загружает их при старте в любое хранилище.
func SeedOrders() []models.Order {
	return []models.Order{
		{
			ID: 1, TransactionID: 100231, Date: "2024-03-02", Status: "completed",
			GameName: "Genshin Impact", GameID: 11, Amount: 19.99,
			Goods: models.Goods{Item1: 300, Count: 1, PlusCount: 30, Total: 330, ItemDiscount: 0},
		},
		{
			ID: 2, TransactionID: 100487, Date: "2024-03-15", Status: "pending",
			GameName: "PUBG Mobile", GameID: 12, Amount: 9.5,
			Goods: models.Goods{Item1: 60, Count: 2, PlusCount: 6, Total: 126, ItemDiscount: 5},
		},
		{
			ID: 3, TransactionID: 100912, Date: "2024-04-01", Status: "failed",
			GameName: "Mobile Legends", GameID: 13, Amount: 4.99,
			Goods: models.Goods{Item1: 86, Count: 1, PlusCount: 0, Total: 86, ItemDiscount: 0},
		},
	}
}
