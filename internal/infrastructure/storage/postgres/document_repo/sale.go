package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"allot/internal/core/apperror"
	"allot/internal/core/id"
	"allot/internal/domain/documents/sale"
	"allot/internal/domain/stock"
	"allot/internal/infrastructure/storage/postgres"
)

const (
	saleTable     = "doc_sales"
	saleLineTable = "doc_sale_lines"
)

// SaleRepo implements sale.Repository and stock.SaleSource.
type SaleRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// NewSaleRepo creates a new sale repository.
func NewSaleRepo(txManager *postgres.TxManager) *SaleRepo {
	return &SaleRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts the document header.
func (r *SaleRepo) Create(ctx context.Context, doc *sale.Sale) error {
	q := r.builder.Insert(saleTable).
		Columns("id", "number", "date", "party_id", "invoice_no",
			"notes", "comment", "total_qty", "total_amount",
			"deletion_mark", "version",
			"created_at", "updated_at", "created_by", "updated_by").
		Values(doc.ID, doc.Number, doc.Date, doc.PartyID, doc.InvoiceNo,
			doc.Notes, doc.Comment, doc.TotalQty, doc.TotalAmount,
			doc.DeletionMark, doc.Version,
			doc.CreatedAt, doc.UpdatedAt, doc.CreatedBy, doc.UpdatedBy)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return apperror.NewDatabase(err)
	}
	return nil
}

// SaveLines replaces the document's lines.
func (r *SaleRepo) SaveLines(ctx context.Context, docID id.ID, lines []sale.Line) error {
	del := r.builder.Delete(saleLineTable).
		Where(squirrel.Eq{"document_id": docID})

	sql, args, err := del.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return apperror.NewDatabase(err)
	}

	if len(lines) == 0 {
		return nil
	}

	ins := r.builder.Insert(saleLineTable).
		Columns("line_id", "document_id", "line_no", "ticket_id", "series",
			"from_no", "to_no", "qty", "rate", "amount")
	for _, line := range lines {
		ins = ins.Values(line.LineID, docID, line.LineNo, line.TicketID, line.Series,
			line.FromNo, line.ToNo, line.Qty, line.Rate, line.Amount)
	}

	sql, args, err = ins.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return apperror.NewDatabase(err)
	}
	return nil
}

// GetByID retrieves a document header.
func (r *SaleRepo) GetByID(ctx context.Context, docID id.ID) (*sale.Sale, error) {
	q := r.builder.Select("id", "number", "date", "party_id", "invoice_no",
		"notes", "comment", "total_qty", "total_amount",
		"deletion_mark", "version",
		"created_at", "updated_at", "created_by", "updated_by").
		From(saleTable).
		Where(squirrel.Eq{"id": docID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var doc sale.Sale
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &doc, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("sale", docID)
		}
		return nil, apperror.NewDatabase(err)
	}
	return &doc, nil
}

// GetLines retrieves the document's lines in order.
func (r *SaleRepo) GetLines(ctx context.Context, docID id.ID) ([]sale.Line, error) {
	q := r.builder.Select(lineColumns...).
		From(saleLineTable).
		Where(squirrel.Eq{"document_id": docID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []sale.Line
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &lines, sql, args...); err != nil {
		return nil, apperror.NewDatabase(err)
	}
	return lines, nil
}

// List retrieves document headers with filtering, newest first.
func (r *SaleRepo) List(ctx context.Context, filter sale.ListFilter) ([]*sale.Sale, error) {
	q := r.builder.Select("id", "number", "date", "party_id", "invoice_no",
		"notes", "comment", "total_qty", "total_amount",
		"deletion_mark", "version",
		"created_at", "updated_at", "created_by", "updated_by").
		From(saleTable).
		Where(squirrel.Eq{"deletion_mark": false})

	if filter.PartyID != nil {
		q = q.Where(squirrel.Eq{"party_id": *filter.PartyID})
	}
	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.DateTo})
	}

	q = q.OrderBy("date DESC", "number DESC")

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var docs []*sale.Sale
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &docs, sql, args...); err != nil {
		return nil, apperror.NewDatabase(err)
	}
	return docs, nil
}

// Delete hard-deletes the header; lines go with it via FK cascade.
func (r *SaleRepo) Delete(ctx context.Context, docID id.ID) error {
	q := r.builder.Delete(saleTable).
		Where(squirrel.Eq{"id": docID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	tag, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return apperror.NewDatabase(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("sale", docID)
	}
	return nil
}

// ListForStock returns sale headers with the party name, for the stock
// aggregator and reports. The distributor filter does not apply to sales.
func (r *SaleRepo) ListForStock(ctx context.Context, filter stock.Filter) ([]stock.HeaderRow, error) {
	q := r.builder.Select(
		"s.id",
		"p.name AS counterparty_name",
		"s.date",
		"s.notes",
	).From(saleTable + " s").
		Join("cat_parties p ON p.id = s.party_id").
		Where(squirrel.Eq{"s.deletion_mark": false})

	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"s.date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"s.date": *filter.DateTo})
	}

	q = q.OrderBy("s.date", "s.number")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []stock.HeaderRow
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, apperror.NewDatabase(err)
	}
	return rows, nil
}

var (
	_ sale.Repository  = (*SaleRepo)(nil)
	_ stock.SaleSource = (*SaleRepo)(nil)
)
