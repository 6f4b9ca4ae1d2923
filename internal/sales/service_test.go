package sales_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rogerio-castellano/kiosco-pos/internal/models"
	"github.com/rogerio-castellano/kiosco-pos/internal/repo"
	"github.com/rogerio-castellano/kiosco-pos/internal/sales"
)

func newService() (*sales.Service, *repo.InMemoryProductRepository, *repo.InMemorySaleRepository) {
	products := repo.NewInMemoryProductRepository()
	ledger := repo.NewInMemorySaleRepository(products)
	return sales.NewService(ledger), products, ledger
}

func seedProduct(t *testing.T, products *repo.InMemoryProductRepository, name, barcode, price string, stock int) models.Product {
	t.Helper()
	p, err := products.Create(models.Product{
		Name:    name,
		Barcode: barcode,
		Price:   decimal.RequireFromString(price),
		Stock:   stock,
	})
	if err != nil {
		t.Fatalf("seeding product: %v", err)
	}
	return p
}

func TestRegister_EmptyOrder(t *testing.T) {
	svc, _, ledger := newService()

	_, err := svc.Register(context.Background(), nil)
	if !errors.Is(err, sales.ErrEmptyOrder) {
		t.Fatalf("expected ErrEmptyOrder, got %v", err)
	}
	if recent, _ := ledger.ListRecent(10); len(recent) != 0 {
		t.Errorf("expected no sales recorded, got %d", len(recent))
	}
}

func TestRegister_SuccessDecrementsStockAndComputesTotal(t *testing.T) {
	svc, products, ledger := newService()
	p := seedProduct(t, products, "Leche Entera", "7791234567890", "100.00", 5)

	saleID, err := svc.Register(context.Background(), []sales.Item{{ProductID: p.ID, Quantity: 3}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := products.GetByID(p.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Stock != 2 {
		t.Errorf("expected stock 2, got %d", got.Stock)
	}

	sale, err := ledger.GetByID(saleID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sale.Total.Equal(decimal.RequireFromString("300.00")) {
		t.Errorf("expected total 300.00, got %s", sale.Total)
	}
	if len(sale.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(sale.Lines))
	}
	line := sale.Lines[0]
	if line.Quantity != 3 || !line.UnitPrice.Equal(p.Price) || !line.Subtotal.Equal(sale.Total) {
		t.Errorf("unexpected line: %+v", line)
	}

	// A second sale of 3 must now be refused and leave stock untouched.
	_, err = svc.Register(context.Background(), []sales.Item{{ProductID: p.ID, Quantity: 3}})
	var noStock *sales.InsufficientStockError
	if !errors.As(err, &noStock) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if noStock.Available != 2 || noStock.Requested != 3 {
		t.Errorf("unexpected error detail: %+v", noStock)
	}
	if got, _ = products.GetByID(p.ID); got.Stock != 2 {
		t.Errorf("stock changed on failed sale: %d", got.Stock)
	}
}

func TestRegister_UnknownProduct(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.Register(context.Background(), []sales.Item{{ProductID: 42, Quantity: 1}})
	var notFound *sales.ProductNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ProductNotFoundError, got %v", err)
	}
	if notFound.ID != 42 {
		t.Errorf("expected product 42 in error, got %d", notFound.ID)
	}
}

func TestRegister_RollbackLeavesEarlierItemsUntouched(t *testing.T) {
	svc, products, ledger := newService()
	a := seedProduct(t, products, "Pan", "100", "50.00", 10)
	b := seedProduct(t, products, "Queso", "200", "80.00", 1)

	_, err := svc.Register(context.Background(), []sales.Item{
		{ProductID: a.ID, Quantity: 4},
		{ProductID: b.ID, Quantity: 2},
	})
	var noStock *sales.InsufficientStockError
	if !errors.As(err, &noStock) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}

	if got, _ := products.GetByID(a.ID); got.Stock != 10 {
		t.Errorf("first item's decrement was not rolled back: stock %d", got.Stock)
	}
	if got, _ := products.GetByID(b.ID); got.Stock != 1 {
		t.Errorf("second item's stock changed: %d", got.Stock)
	}
	if recent, _ := ledger.ListRecent(10); len(recent) != 0 {
		t.Errorf("expected no sales recorded, got %d", len(recent))
	}
}

func TestRegister_PriceIsSnapshotNotReference(t *testing.T) {
	svc, products, ledger := newService()
	p := seedProduct(t, products, "Cafe", "300", "120.00", 5)

	saleID, err := svc.Register(context.Background(), []sales.Item{{ProductID: p.ID, Quantity: 1}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p.Price = decimal.RequireFromString("999.00")
	if _, err := products.Update(p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sale, _ := ledger.GetByID(saleID)
	if !sale.Lines[0].UnitPrice.Equal(decimal.RequireFromString("120.00")) {
		t.Errorf("line price followed the product price: %s", sale.Lines[0].UnitPrice)
	}
}

func TestRegister_ZeroQuantityMeansOne(t *testing.T) {
	svc, products, ledger := newService()
	p := seedProduct(t, products, "Agua", "400", "30.00", 2)

	saleID, err := svc.Register(context.Background(), []sales.Item{{ProductID: p.ID}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sale, _ := ledger.GetByID(saleID)
	if sale.Lines[0].Quantity != 1 {
		t.Errorf("expected quantity 1, got %d", sale.Lines[0].Quantity)
	}
	if got, _ := products.GetByID(p.ID); got.Stock != 1 {
		t.Errorf("expected stock 1, got %d", got.Stock)
	}
}

func TestRegister_NegativeQuantity(t *testing.T) {
	svc, products, _ := newService()
	p := seedProduct(t, products, "Yerba", "500", "200.00", 5)

	_, err := svc.Register(context.Background(), []sales.Item{{ProductID: p.ID, Quantity: -1}})
	if !errors.Is(err, sales.ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if got, _ := products.GetByID(p.ID); got.Stock != 5 {
		t.Errorf("stock changed on rejected sale: %d", got.Stock)
	}
}

func TestRegister_SameProductTwiceInOneCart(t *testing.T) {
	svc, products, ledger := newService()
	p := seedProduct(t, products, "Azucar", "600", "90.00", 5)

	// The second entry must observe the stock already taken by the first.
	saleID, err := svc.Register(context.Background(), []sales.Item{
		{ProductID: p.ID, Quantity: 2},
		{ProductID: p.ID, Quantity: 2},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, _ := products.GetByID(p.ID); got.Stock != 1 {
		t.Errorf("expected stock 1, got %d", got.Stock)
	}
	sale, _ := ledger.GetByID(saleID)
	if !sale.Total.Equal(decimal.RequireFromString("360.00")) {
		t.Errorf("expected total 360.00, got %s", sale.Total)
	}

	// And a cart whose combined quantity exceeds stock fails whole.
	_, err = svc.Register(context.Background(), []sales.Item{
		{ProductID: p.ID, Quantity: 1},
		{ProductID: p.ID, Quantity: 1},
	})
	var noStock *sales.InsufficientStockError
	if !errors.As(err, &noStock) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if got, _ := products.GetByID(p.ID); got.Stock != 1 {
		t.Errorf("stock changed on failed sale: %d", got.Stock)
	}
}

func TestRegister_ConcurrentSalesNeverOversell(t *testing.T) {
	svc, products, _ := newService()
	p := seedProduct(t, products, "Milanesa", "700", "500.00", 5)

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for n := 0; n < 2; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Register(context.Background(), []sales.Item{{ProductID: p.ID, Quantity: 3}})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, stockFailures int
	for err := range results {
		switch {
		case err == nil:
			successes++
		default:
			var noStock *sales.InsufficientStockError
			if !errors.As(err, &noStock) {
				t.Fatalf("unexpected error: %v", err)
			}
			stockFailures++
		}
	}
	if successes != 1 || stockFailures != 1 {
		t.Errorf("expected exactly one success and one stock failure, got %d/%d", successes, stockFailures)
	}
	if got, _ := products.GetByID(p.ID); got.Stock != 2 {
		t.Errorf("expected final stock 2, got %d", got.Stock)
	}
}
