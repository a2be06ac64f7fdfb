package transfer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"importexport-hub/internal/domain"
)

type stubProducts struct {
	product        *domain.Product
	getErr         error
	decrementOK    bool
	decrementErr   error
	decrementCalls int
	lastDecID      string
	lastDecAmount  int64
}

func (s *stubProducts) GetByID(_ context.Context, _ string) (*domain.Product, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	if s.product == nil {
		return nil, domain.ErrNotFound
	}
	cp := *s.product
	return &cp, nil
}

func (s *stubProducts) DecrementStock(_ context.Context, id string, amount int64) (bool, error) {
	s.decrementCalls++
	s.lastDecID = id
	s.lastDecAmount = amount
	if s.decrementErr != nil {
		return false, s.decrementErr
	}
	if s.decrementOK {
		s.product.Quantity -= amount
	}
	return s.decrementOK, nil
}

type stubLedger struct {
	insertErr  error
	deleteErr  error
	inserted   []domain.ImportRecord
	deletedIDs []string
}

func (s *stubLedger) Insert(_ context.Context, rec domain.ImportRecord) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.inserted = append(s.inserted, rec)
	return nil
}

func (s *stubLedger) Delete(_ context.Context, id string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deletedIDs = append(s.deletedIDs, id)
	return nil
}

func newTestService(products *stubProducts, ledger *stubLedger) *Service {
	svc := New(products, ledger)
	svc.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func testProduct(quantity int64) *domain.Product {
	return &domain.Product{
		ID:        "p1",
		Name:      "Basmati Rice",
		Image:     "https://img.example/rice.jpg",
		Price:     42.5,
		Origin:    "India",
		Rating:    4.7,
		Quantity:  quantity,
		CreatedAt: time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC),
		CreatedBy: "seller@x.com",
	}
}

func TestTransferHappyPath(t *testing.T) {
	products := &stubProducts{product: testProduct(10), decrementOK: true}
	ledger := &stubLedger{}
	svc := newTestService(products, ledger)

	if err := svc.Transfer(context.Background(), Input{ProductID: "p1", Quantity: 5, Importer: "a@x.com"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if products.product.Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", products.product.Quantity)
	}
	if len(ledger.inserted) != 1 {
		t.Fatalf("expected 1 ledger entry, got %d", len(ledger.inserted))
	}
	rec := ledger.inserted[0]
	if rec.ProductID != "p1" || rec.Importer != "a@x.com" || rec.Quantity != 5 {
		t.Fatalf("unexpected record %+v", rec)
	}
	if rec.Product.QuantityAtImport != 10 {
		t.Fatalf("expected snapshot quantityAtImport 10, got %d", rec.Product.QuantityAtImport)
	}
	if rec.Product.Name != "Basmati Rice" || rec.Product.CreatedBy != "seller@x.com" {
		t.Fatalf("unexpected snapshot %+v", rec.Product)
	}
	if rec.ID == "" {
		t.Fatalf("expected generated record id")
	}
	if !rec.ImportedAt.Equal(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected importedAt %v", rec.ImportedAt)
	}
	if len(ledger.deletedIDs) != 0 {
		t.Fatalf("unexpected compensation %v", ledger.deletedIDs)
	}
}

func TestTransferExactRemainingStock(t *testing.T) {
	products := &stubProducts{product: testProduct(5), decrementOK: true}
	ledger := &stubLedger{}
	svc := newTestService(products, ledger)

	if err := svc.Transfer(context.Background(), Input{ProductID: "p1", Quantity: 5, Importer: "b@x.com"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if products.product.Quantity != 0 {
		t.Fatalf("expected quantity 0, got %d", products.product.Quantity)
	}
}

func TestTransferInsufficientStock(t *testing.T) {
	products := &stubProducts{product: testProduct(0)}
	ledger := &stubLedger{}
	svc := newTestService(products, ledger)

	err := svc.Transfer(context.Background(), Input{ProductID: "p1", Quantity: 1, Importer: "c@x.com"})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if products.product.Quantity != 0 {
		t.Fatalf("quantity changed on failed transfer: %d", products.product.Quantity)
	}
	if len(ledger.inserted) != 0 {
		t.Fatalf("ledger entry created on failed transfer")
	}
}

func TestTransferProductNotFound(t *testing.T) {
	svc := newTestService(&stubProducts{}, &stubLedger{})
	err := svc.Transfer(context.Background(), Input{ProductID: "nonexistent", Quantity: 1, Importer: "d@x.com"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTransferValidation(t *testing.T) {
	cases := []struct {
		name string
		in   Input
	}{
		{"zero quantity", Input{ProductID: "p1", Quantity: 0, Importer: "e@x.com"}},
		{"negative quantity", Input{ProductID: "p1", Quantity: -3, Importer: "e@x.com"}},
		{"fractional quantity", Input{ProductID: "p1", Quantity: 1.5, Importer: "e@x.com"}},
		{"missing product id", Input{ProductID: "  ", Quantity: 1, Importer: "e@x.com"}},
		{"missing importer", Input{ProductID: "p1", Quantity: 1, Importer: ""}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			products := &stubProducts{product: testProduct(10), decrementOK: true}
			ledger := &stubLedger{}
			svc := newTestService(products, ledger)
			if err := svc.Transfer(context.Background(), tc.in); !errors.Is(err, ErrMissingFields) {
				t.Fatalf("expected ErrMissingFields, got %v", err)
			}
			if len(ledger.inserted) != 0 || products.decrementCalls != 0 {
				t.Fatalf("validation failure caused writes")
			}
		})
	}
}

func TestTransferNotIdempotent(t *testing.T) {
	products := &stubProducts{product: testProduct(10), decrementOK: true}
	ledger := &stubLedger{}
	svc := newTestService(products, ledger)

	in := Input{ProductID: "p1", Quantity: 3, Importer: "a@x.com"}
	for i := 0; i < 2; i++ {
		if err := svc.Transfer(context.Background(), in); err != nil {
			t.Fatalf("transfer %d: %v", i, err)
		}
	}
	if products.product.Quantity != 4 {
		t.Fatalf("expected quantity 4 after replay, got %d", products.product.Quantity)
	}
	if len(ledger.inserted) != 2 {
		t.Fatalf("expected 2 ledger entries, got %d", len(ledger.inserted))
	}
}

func TestTransferCompensatesLostRace(t *testing.T) {
	// Read sees enough stock but the conditional decrement does not match.
	products := &stubProducts{product: testProduct(5), decrementOK: false}
	ledger := &stubLedger{}
	svc := newTestService(products, ledger)

	err := svc.Transfer(context.Background(), Input{ProductID: "p1", Quantity: 5, Importer: "a@x.com"})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if len(ledger.inserted) != 1 || len(ledger.deletedIDs) != 1 {
		t.Fatalf("expected compensating delete, inserted=%d deleted=%d", len(ledger.inserted), len(ledger.deletedIDs))
	}
	if ledger.deletedIDs[0] != ledger.inserted[0].ID {
		t.Fatalf("compensation deleted wrong record: %s != %s", ledger.deletedIDs[0], ledger.inserted[0].ID)
	}
}

func TestTransferCompensatesDecrementError(t *testing.T) {
	products := &stubProducts{product: testProduct(5), decrementErr: errors.New("connection reset")}
	ledger := &stubLedger{}
	svc := newTestService(products, ledger)

	err := svc.Transfer(context.Background(), Input{ProductID: "p1", Quantity: 2, Importer: "a@x.com"})
	if err == nil || errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected store error, got %v", err)
	}
	if len(ledger.deletedIDs) != 1 {
		t.Fatalf("expected compensating delete after decrement error")
	}
}

func TestTransferLedgerInsertError(t *testing.T) {
	products := &stubProducts{product: testProduct(5), decrementOK: true}
	ledger := &stubLedger{insertErr: errors.New("disk full")}
	svc := newTestService(products, ledger)

	err := svc.Transfer(context.Background(), Input{ProductID: "p1", Quantity: 2, Importer: "a@x.com"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if products.decrementCalls != 0 {
		t.Fatalf("stock decremented despite ledger failure")
	}
}

// raceStore simulates the database's conditional update under concurrency:
// reads return a possibly stale quantity while decrements are atomic.
type raceStore struct {
	mu       sync.Mutex
	product  domain.Product
	inserted int
	deleted  int
}

func (s *raceStore) GetByID(_ context.Context, _ string) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := s.product
	return &cp, nil
}

func (s *raceStore) DecrementStock(_ context.Context, _ string, amount int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.product.Quantity < amount {
		return false, nil
	}
	s.product.Quantity -= amount
	return true, nil
}

func (s *raceStore) Insert(_ context.Context, _ domain.ImportRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inserted++
	return nil
}

func (s *raceStore) Delete(_ context.Context, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted++
	return nil
}

func TestTransferConcurrentNeverOversells(t *testing.T) {
	const (
		workers = 8
		perCall = int64(5)
		winners = 3
		stock   = int64(winners) * perCall
	)
	store := &raceStore{product: *testProduct(stock)}
	svc := New(store, store)

	var (
		wg           sync.WaitGroup
		mu           sync.Mutex
		successes    int
		insufficient int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := svc.Transfer(context.Background(), Input{ProductID: "p1", Quantity: float64(perCall), Importer: "a@x.com"})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrInsufficientStock):
				insufficient++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if successes != winners || insufficient != workers-winners {
		t.Fatalf("expected %d successes and %d rejections, got %d and %d", winners, workers-winners, successes, insufficient)
	}
	if store.product.Quantity != 0 {
		t.Fatalf("expected final stock 0, got %d", store.product.Quantity)
	}
	// Every rejected transfer that got past the read must have compensated
	// its ledger entry.
	if store.inserted-store.deleted != successes {
		t.Fatalf("ledger inconsistent: inserted=%d deleted=%d successes=%d", store.inserted, store.deleted, successes)
	}
}
