// Package seeders fills the database with demo data for local development.
package seeders

import (
	"context"
	"errors"
	"fmt"

	"github.com/kipngetich-lab/TukoShop-App/app/models"
	"github.com/kipngetich-lab/TukoShop-App/app/repositories"
	"github.com/kipngetich-lab/TukoShop-App/pkg/auth"
)

const demoPassword = "password123"

// Run seeds a demo seller, a demo buyer and a handful of products. Running it
// twice is safe: accounts that already exist are reused.
func Run(ctx context.Context) error {
	accounts := repositories.NewAccountRepository()
	products := repositories.NewProductRepository()

	seller, err := ensureAccount(ctx, accounts, "demo-seller", models.RoleSeller)
	if err != nil {
		return err
	}
	if _, err := ensureAccount(ctx, accounts, "demo-buyer", models.RoleBuyer); err != nil {
		return err
	}

	demo := []models.Product{
		{Name: "Hand-woven kiondo basket", Description: "Sisal basket with leather handles", Price: 24.50, Quantity: 40, Category: "crafts"},
		{Name: "Maasai shuka blanket", Description: "Red checked cotton blanket", Price: 18.00, Quantity: 75, Category: "textiles"},
		{Name: "Soapstone chess set", Description: "Hand-carved Kisii soapstone", Price: 55.00, Quantity: 12, Category: "crafts"},
		{Name: "AA grade coffee beans 1kg", Description: "Single-origin, medium roast", Price: 16.75, Quantity: 200, Category: "food"},
		{Name: "Beaded leather sandals", Description: "Sizes 36-45", Price: 21.00, Quantity: 60, Category: "footwear"},
	}
	for i := range demo {
		demo[i].Seller = seller.ID
		demo[i].SellerUsername = seller.Username
		demo[i].Approved = true
		if err := products.Create(ctx, &demo[i]); err != nil {
			return fmt.Errorf("seed product %q: %w", demo[i].Name, err)
		}
	}

	fmt.Printf("Seeded 2 accounts and %d products (password %q).\n", len(demo), demoPassword)
	return nil
}

func ensureAccount(ctx context.Context, accounts *repositories.AccountRepository, username, role string) (models.Account, error) {
	existing, err := accounts.FindByUsername(ctx, username)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return models.Account{}, err
	}

	hash, err := auth.HashPassword(demoPassword)
	if err != nil {
		return models.Account{}, err
	}
	account := models.Account{Username: username, PasswordHash: hash, Role: role}
	if err := accounts.Create(ctx, &account); err != nil {
		return models.Account{}, err
	}
	return account, nil
}
