package sale

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
	created *Sale
	lines   []Line
	deleted []id.ID
}

func (f *fakeRepo) Create(ctx context.Context, doc *Sale) error {
	f.created = doc
	return nil
}

func (f *fakeRepo) SaveLines(ctx context.Context, docID id.ID, lines []Line) error {
	f.lines = lines
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, docID id.ID) (*Sale, error) {
	if f.created != nil && f.created.ID == docID {
		return f.created, nil
	}
	return nil, apperror.NewNotFound("sale", docID)
}

func (f *fakeRepo) GetLines(ctx context.Context, docID id.ID) ([]Line, error) {
	return f.lines, nil
}

func (f *fakeRepo) List(ctx context.Context, filter ListFilter) ([]*Sale, error) {
	if f.created == nil {
		return nil, nil
	}
	return []*Sale{f.created}, nil
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
	balances map[id.ID]types.Quantity
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
	return f.balances[ticketID], nil
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

func newTicket(name string) (*ticket.Ticket, id.ID) {
	tk := ticket.New(name)
	tk.ID = id.New()
	return tk, tk.ID
}

func TestCreateSale(t *testing.T) {
	tk, ticketID := newTicket("D10")
	tickets := &fakeTickets{byID: map[id.ID]*ticket.Ticket{ticketID: tk}}
	ledgerRepo := &fakeLedgerRepo{balances: map[id.ID]types.Quantity{
		ticketID: types.NewQuantityFromInt64(500),
	}}
	svc := NewService(&fakeRepo{}, tickets, ledger.NewService(ledgerRepo), &fakeNumerator{}, fakeTxManager{}, nil)

	doc := New(id.New())
	doc.Date = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	doc.AddLine(ticketID, "5X", 1, 20, types.MustMoney("7.50"))

	require.NoError(t, svc.Create(context.Background(), doc))

	assert.Equal(t, "SAL000001", doc.Number)
	assert.Equal(t, "D10 | Series 5X | 1-20 | Qty 200 @ 7.50", doc.Notes)
	assert.Equal(t, int64(200), doc.TotalQty)
	assert.True(t, types.MustMoney("1500.00").Equal(doc.TotalAmount))

	require.Len(t, ledgerRepo.appended, 1)
	delta := ledgerRepo.appended[0]
	assert.Equal(t, entity.DeltaTypeSale, delta.SourceType)
	assert.True(t, delta.Delta.IsNegative())
	assert.Equal(t, float64(-200), delta.Delta.Float64())
}

func TestCreateSaleInsufficientStock(t *testing.T) {
	tk, ticketID := newTicket("D10")
	tickets := &fakeTickets{byID: map[id.ID]*ticket.Ticket{ticketID: tk}}
	ledgerRepo := &fakeLedgerRepo{balances: map[id.ID]types.Quantity{
		ticketID: types.NewQuantityFromInt64(100),
	}}
	repo := &fakeRepo{}
	svc := NewService(repo, tickets, ledger.NewService(ledgerRepo), &fakeNumerator{}, fakeTxManager{}, nil)

	doc := New(id.New())
	// 1-20 with D10 multiplier means 200 units against 100 on hand.
	doc.AddLine(ticketID, "5X", 1, 20, types.MustMoney("7.50"))

	err := svc.Create(context.Background(), doc)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInsufficientStock, appErr.Code)
	assert.Equal(t, "D10", appErr.Details["ticket"])
	assert.Equal(t, float64(200), appErr.Details["requested"])
	assert.Equal(t, float64(100), appErr.Details["available"])

	// Nothing was written.
	assert.Nil(t, repo.created)
	assert.Empty(t, ledgerRepo.appended)
}

func TestCreateSaleNamesFirstInsufficientTicket(t *testing.T) {
	tkA, idA := newTicket("M5")
	tkB, idB := newTicket("E200")
	tickets := &fakeTickets{byID: map[id.ID]*ticket.Ticket{idA: tkA, idB: tkB}}
	ledgerRepo := &fakeLedgerRepo{balances: map[id.ID]types.Quantity{
		idA: types.NewQuantityFromInt64(1000),
		idB: types.NewQuantityFromInt64(0),
	}}
	svc := NewService(&fakeRepo{}, tickets, ledger.NewService(ledgerRepo), &fakeNumerator{}, fakeTxManager{}, nil)

	doc := New(id.New())
	doc.AddLine(idA, "", 1, 10, types.MustMoney("1.00"))
	doc.AddLine(idB, "", 1, 2, types.MustMoney("1.00"))

	err := svc.Create(context.Background(), doc)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "E200", appErr.Details["ticket"])
}

func TestDeleteSaleRemovesLedgerMovements(t *testing.T) {
	tk, ticketID := newTicket("M5")
	tickets := &fakeTickets{byID: map[id.ID]*ticket.Ticket{ticketID: tk}}
	ledgerRepo := &fakeLedgerRepo{balances: map[id.ID]types.Quantity{
		ticketID: types.NewQuantityFromInt64(500),
	}}
	repo := &fakeRepo{}
	svc := NewService(repo, tickets, ledger.NewService(ledgerRepo), &fakeNumerator{}, fakeTxManager{}, nil)

	doc := New(id.New())
	doc.AddLine(ticketID, "1A", 1, 10, types.MustMoney("2.00"))
	require.NoError(t, svc.Create(context.Background(), doc))

	require.NoError(t, svc.Delete(context.Background(), doc.ID))
	assert.Equal(t, []id.ID{doc.ID}, ledgerRepo.deleted)
	assert.Equal(t, []id.ID{doc.ID}, repo.deleted)
}
