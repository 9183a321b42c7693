package jobs

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kipngetich-lab/TukoShop-App/app/repositories"
	"github.com/kipngetich-lab/TukoShop-App/pkg/logger"
	"github.com/kipngetich-lab/TukoShop-App/pkg/metrics"
	"github.com/kipngetich-lab/TukoShop-App/pkg/queue"
)

// ClearCartJob retries the cart-clear step of an order placement that
// committed but failed to empty the cart. IDs travel as hex strings so the
// payload survives JSON round-tripping through any queue driver.
type ClearCartJob struct {
	Buyer    string   `json:"buyer"`
	Products []string `json:"products"`
}

// Register wires the job type into the queue registry. Call once at boot.
func Register() {
	queue.Register("jobs.ClearCartJob", func() queue.Job { return &ClearCartJob{} })
}

func (j *ClearCartJob) Handle(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	buyer, err := primitive.ObjectIDFromHex(j.Buyer)
	if err != nil {
		return fmt.Errorf("clear cart: bad buyer id %q: %w", j.Buyer, err)
	}
	products := make([]primitive.ObjectID, 0, len(j.Products))
	for _, hex := range j.Products {
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			return fmt.Errorf("clear cart: bad product id %q: %w", hex, err)
		}
		products = append(products, id)
	}

	if err := repositories.NewCartRepository().ClearForBuyer(ctx, buyer, products); err != nil {
		metrics.CartReconciliations.WithLabelValues("failed").Inc()
		return fmt.Errorf("clear cart for buyer %s: %w", j.Buyer, err)
	}

	metrics.CartReconciliations.WithLabelValues("success").Inc()
	logger.Info("cart reconciled", "buyer", j.Buyer, "products", len(products))
	return nil
}
