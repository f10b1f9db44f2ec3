package customerrepo

import (
	"context"

	"videostore/model"
	"videostore/util/database"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

const table = "customers"

var (
	dialect = goqu.Dialect("postgres")
	columns = []any{"id", "name", "phone", "postal_code", "register_at"}
)

type Repo interface {
	Insert(ctx context.Context, q database.DBTX, c *model.Customer) error
	Get(ctx context.Context, q database.DBTX, id int64) (*model.Customer, error)
	List(ctx context.Context, q database.DBTX) ([]model.Customer, error)
	Update(ctx context.Context, q database.DBTX, c *model.Customer) error
	Delete(ctx context.Context, q database.DBTX, id int64) error
}

type repo struct{}

func New() Repo { return &repo{} }

func (r *repo) Insert(ctx context.Context, q database.DBTX, c *model.Customer) error {
	query, args, err := insertSQL(c)
	if err != nil {
		return errors.Wrap(err, "build customer insert")
	}
	if err := q.QueryRow(ctx, query, args...).Scan(&c.ID, &c.RegisterAt); err != nil {
		return errors.Wrap(err, "insert customer")
	}
	return nil
}

func (r *repo) Get(ctx context.Context, q database.DBTX, id int64) (*model.Customer, error) {
	query, args, err := dialect.From(table).
		Select(columns...).
		Where(goqu.C("id").Eq(id)).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build customer select")
	}
	c := &model.Customer{}
	if err := q.QueryRow(ctx, query, args...).Scan(&c.ID, &c.Name, &c.Phone, &c.PostalCode, &c.RegisterAt); err != nil {
		return nil, errors.Wrapf(err, "get customer %d", id)
	}
	return c, nil
}

func (r *repo) List(ctx context.Context, q database.DBTX) ([]model.Customer, error) {
	query, args, err := dialect.From(table).
		Select(columns...).
		Order(goqu.C("id").Asc()).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build customer list")
	}
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list customers")
	}
	defer rows.Close()

	out := []model.Customer{}
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.PostalCode, &c.RegisterAt); err != nil {
			return nil, errors.Wrap(err, "scan customer")
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Update replaces every mutable field. register_at is kept.
func (r *repo) Update(ctx context.Context, q database.DBTX, c *model.Customer) error {
	query, args, err := updateSQL(c)
	if err != nil {
		return errors.Wrap(err, "build customer update")
	}
	if err := q.QueryRow(ctx, query, args...).Scan(&c.RegisterAt); err != nil {
		return errors.Wrapf(err, "update customer %d", c.ID)
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, q database.DBTX, id int64) error {
	query, args, err := dialect.Delete(table).
		Where(goqu.C("id").Eq(id)).
		Prepared(true).ToSQL()
	if err != nil {
		return errors.Wrap(err, "build customer delete")
	}
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return errors.Wrapf(err, "delete customer %d", id)
	}
	if tag.RowsAffected() == 0 {
		return errors.Wrapf(pgx.ErrNoRows, "delete customer %d", id)
	}
	return nil
}

func insertSQL(c *model.Customer) (string, []any, error) {
	return dialect.Insert(table).
		Rows(goqu.Record{
			"name":        c.Name,
			"phone":       c.Phone,
			"postal_code": c.PostalCode,
		}).
		Returning("id", "register_at").
		Prepared(true).ToSQL()
}

func updateSQL(c *model.Customer) (string, []any, error) {
	return dialect.Update(table).
		Set(goqu.Record{
			"name":        c.Name,
			"phone":       c.Phone,
			"postal_code": c.PostalCode,
		}).
		Where(goqu.C("id").Eq(c.ID)).
		Returning("register_at").
		Prepared(true).ToSQL()
}
