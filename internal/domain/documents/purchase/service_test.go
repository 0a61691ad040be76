package purchase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"allot/internal/core/apperror"
	"allot/internal/core/entity"
	"allot/internal/core/id"
	"allot/internal/core/numerator"
	"allot/internal/core/types"
	"allot/internal/domain/catalogs/ticket"
	"allot/internal/domain/ledger"
)

type fakeRepo struct {
	created *Purchase
	lines   []Line
	deleted []id.ID
}

func (f *fakeRepo) Create(ctx context.Context, doc *Purchase) error {
	f.created = doc
	return nil
}

func (f *fakeRepo) SaveLines(ctx context.Context, docID id.ID, lines []Line) error {
	f.lines = lines
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, docID id.ID) (*Purchase, error) {
	if f.created != nil && f.created.ID == docID {
		return f.created, nil
	}
	return nil, apperror.NewNotFound("purchase", docID)
}

func (f *fakeRepo) GetLines(ctx context.Context, docID id.ID) ([]Line, error) {
	return f.lines, nil
}

func (f *fakeRepo) List(ctx context.Context, filter ListFilter) ([]*Purchase, error) {
	if f.created == nil {
		return nil, nil
	}
	return []*Purchase{f.created}, nil
}

func (f *fakeRepo) Delete(ctx context.Context, docID id.ID) error {
	f.deleted = append(f.deleted, docID)
	return nil
}

type fakeTickets struct {
	byID map[id.ID]*ticket.Ticket
}

func (f *fakeTickets) GetByID(ctx context.Context, ticketID id.ID) (*ticket.Ticket, error) {
	if tk, ok := f.byID[ticketID]; ok {
		return tk, nil
	}
	return nil, apperror.NewNotFound("ticket", ticketID)
}

type fakeLedgerRepo struct {
	appended []entity.StockDelta
	deleted  []id.ID
}

func (f *fakeLedgerRepo) Append(ctx context.Context, deltas []entity.StockDelta) error {
	f.appended = append(f.appended, deltas...)
	return nil
}

func (f *fakeLedgerRepo) DeleteBySource(ctx context.Context, sourceID id.ID) error {
	f.deleted = append(f.deleted, sourceID)
	return nil
}

func (f *fakeLedgerRepo) GetBalance(ctx context.Context, ticketID id.ID) (types.Quantity, error) {
	return 0, nil
}

func (f *fakeLedgerRepo) CurrentStock(ctx context.Context) ([]ledger.Balance, error) {
	return nil, nil
}

type fakeNumerator struct {
	next int64
}

func (f *fakeNumerator) GetNextNumber(ctx context.Context, cfg numerator.Config, opts *numerator.Options, period time.Time) (string, error) {
	f.next++
	return fmt.Sprintf("%s%0*d", cfg.Prefix, cfg.PadWidth, f.next), nil
}

func (f *fakeNumerator) SetNextNumber(ctx context.Context, cfg numerator.Config, period time.Time, value int64) error {
	f.next = value
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func TestCreatePurchase(t *testing.T) {
	ticketID := id.New()
	tickets := &fakeTickets{byID: map[id.ID]*ticket.Ticket{}}
	tk := ticket.New("D10")
	tk.ID = ticketID
	tickets.byID[ticketID] = tk

	repo := &fakeRepo{}
	ledgerRepo := &fakeLedgerRepo{}
	svc := NewService(repo, tickets, ledger.NewService(ledgerRepo), &fakeNumerator{}, fakeTxManager{}, nil)

	doc := New(id.New())
	doc.Date = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	doc.AddLine(ticketID, "5X", 1, 50, types.MustMoney("6.00"))

	require.NoError(t, svc.Create(context.Background(), doc))

	assert.Equal(t, "PUR000001", doc.Number)
	assert.Equal(t, "D10 | Series 5X | 1-50 | Qty 500 @ 6.00", doc.Notes)
	assert.Equal(t, int64(500), doc.TotalQty)
	assert.True(t, types.MustMoney("3000.00").Equal(doc.TotalAmount))
	assert.Equal(t, int64(500), doc.Lines[0].Qty)
	assert.True(t, types.MustMoney("3000.00").Equal(doc.Lines[0].Amount))

	require.Len(t, ledgerRepo.appended, 1)
	delta := ledgerRepo.appended[0]
	assert.Equal(t, doc.ID, delta.SourceID)
	assert.Equal(t, entity.DeltaTypePurchase, delta.SourceType)
	assert.Equal(t, ticketID, delta.TicketID)
	assert.True(t, delta.Delta.IsPositive())
	assert.Equal(t, float64(500), delta.Delta.Float64())
}

func TestCreatePurchaseSequentialNumbers(t *testing.T) {
	ticketID := id.New()
	tickets := &fakeTickets{byID: map[id.ID]*ticket.Ticket{}}
	tk := ticket.New("M5")
	tk.ID = ticketID
	tickets.byID[ticketID] = tk

	gen := &fakeNumerator{}
	svc := NewService(&fakeRepo{}, tickets, ledger.NewService(&fakeLedgerRepo{}), gen, fakeTxManager{}, nil)

	for i, want := range []string{"PUR000001", "PUR000002", "PUR000003"} {
		doc := New(id.New())
		doc.AddLine(ticketID, "", int64(i*100+1), int64(i*100+10), types.MustMoney("1.00"))
		require.NoError(t, svc.Create(context.Background(), doc))
		assert.Equal(t, want, doc.Number)
	}
}

func TestCreatePurchaseValidation(t *testing.T) {
	svc := NewService(&fakeRepo{}, &fakeTickets{}, ledger.NewService(&fakeLedgerRepo{}), &fakeNumerator{}, fakeTxManager{}, nil)
	ctx := context.Background()

	// No lines.
	doc := New(id.New())
	assert.Error(t, svc.Create(ctx, doc))

	// Reversed bounds.
	doc = New(id.New())
	doc.AddLine(id.New(), "", 50, 1, types.MustMoney("1.00"))
	assert.Error(t, svc.Create(ctx, doc))

	// Zero rate.
	doc = New(id.New())
	doc.AddLine(id.New(), "", 1, 50, types.Zero())
	assert.Error(t, svc.Create(ctx, doc))

	// Missing distributor.
	doc = New(id.Nil())
	doc.AddLine(id.New(), "", 1, 50, types.MustMoney("1.00"))
	assert.Error(t, svc.Create(ctx, doc))
}

func TestDeletePurchaseRemovesLedgerMovements(t *testing.T) {
	ticketID := id.New()
	tickets := &fakeTickets{byID: map[id.ID]*ticket.Ticket{}}
	tk := ticket.New("M5")
	tk.ID = ticketID
	tickets.byID[ticketID] = tk

	repo := &fakeRepo{}
	ledgerRepo := &fakeLedgerRepo{}
	svc := NewService(repo, tickets, ledger.NewService(ledgerRepo), &fakeNumerator{}, fakeTxManager{}, nil)

	doc := New(id.New())
	doc.AddLine(ticketID, "1A", 1, 10, types.MustMoney("2.00"))
	require.NoError(t, svc.Create(context.Background(), doc))

	require.NoError(t, svc.Delete(context.Background(), doc.ID))
	assert.Equal(t, []id.ID{doc.ID}, ledgerRepo.deleted)
	assert.Equal(t, []id.ID{doc.ID}, repo.deleted)
}
