package videorepo

import (
	"context"
	"time"

	"videostore/model"
	"videostore/util/database"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

const table = "videos"

var (
	dialect = goqu.Dialect("postgres")
	columns = []any{"id", "title", "release_date", "total_inventory"}
)

type Repo interface {
	Insert(ctx context.Context, q database.DBTX, v *model.Video) error
	Get(ctx context.Context, q database.DBTX, id int64) (*model.Video, error)
	// GetForUpdate locks the video row until the transaction ends.
	GetForUpdate(ctx context.Context, q database.DBTX, id int64) (*model.Video, error)
	List(ctx context.Context, q database.DBTX) ([]model.Video, error)
	Update(ctx context.Context, q database.DBTX, v *model.Video) error
	Delete(ctx context.Context, q database.DBTX, id int64) error
}

type repo struct{}

func New() Repo { return &repo{} }

func (r *repo) Insert(ctx context.Context, q database.DBTX, v *model.Video) error {
	query, args, err := insertSQL(v)
	if err != nil {
		return errors.Wrap(err, "build video insert")
	}
	if err := q.QueryRow(ctx, query, args...).Scan(&v.ID); err != nil {
		return errors.Wrap(err, "insert video")
	}
	return nil
}

func (r *repo) Get(ctx context.Context, q database.DBTX, id int64) (*model.Video, error) {
	return r.get(ctx, q, id, false)
}

func (r *repo) GetForUpdate(ctx context.Context, q database.DBTX, id int64) (*model.Video, error) {
	return r.get(ctx, q, id, true)
}

func (r *repo) get(ctx context.Context, q database.DBTX, id int64, lock bool) (*model.Video, error) {
	query, args, err := selectSQL(id, lock)
	if err != nil {
		return nil, errors.Wrap(err, "build video select")
	}
	v, err := scanVideo(q.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, errors.Wrapf(err, "get video %d", id)
	}
	return v, nil
}

func (r *repo) List(ctx context.Context, q database.DBTX) ([]model.Video, error) {
	query, args, err := dialect.From(table).
		Select(columns...).
		Order(goqu.C("id").Asc()).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build video list")
	}
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list videos")
	}
	defer rows.Close()

	out := []model.Video{}
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan video")
		}
		out = append(out, *v)
	}
	return out, rows.Err()
}

func (r *repo) Update(ctx context.Context, q database.DBTX, v *model.Video) error {
	query, args, err := dialect.Update(table).
		Set(goqu.Record{
			"title":           v.Title,
			"release_date":    v.ReleaseDate.Time,
			"total_inventory": v.TotalInventory,
		}).
		Where(goqu.C("id").Eq(v.ID)).
		Prepared(true).ToSQL()
	if err != nil {
		return errors.Wrap(err, "build video update")
	}
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return errors.Wrapf(err, "update video %d", v.ID)
	}
	if tag.RowsAffected() == 0 {
		return errors.Wrapf(pgx.ErrNoRows, "update video %d", v.ID)
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, q database.DBTX, id int64) error {
	query, args, err := dialect.Delete(table).
		Where(goqu.C("id").Eq(id)).
		Prepared(true).ToSQL()
	if err != nil {
		return errors.Wrap(err, "build video delete")
	}
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return errors.Wrapf(err, "delete video %d", id)
	}
	if tag.RowsAffected() == 0 {
		return errors.Wrapf(pgx.ErrNoRows, "delete video %d", id)
	}
	return nil
}

func insertSQL(v *model.Video) (string, []any, error) {
	return dialect.Insert(table).
		Rows(goqu.Record{
			"title":           v.Title,
			"release_date":    v.ReleaseDate.Time,
			"total_inventory": v.TotalInventory,
		}).
		Returning("id").
		Prepared(true).ToSQL()
}

func selectSQL(id int64, lock bool) (string, []any, error) {
	ds := dialect.From(table).
		Select(columns...).
		Where(goqu.C("id").Eq(id))
	if lock {
		ds = ds.ForUpdate(exp.Wait)
	}
	return ds.Prepared(true).ToSQL()
}

func scanVideo(row pgx.Row) (*model.Video, error) {
	v := &model.Video{}
	var released time.Time
	if err := row.Scan(&v.ID, &v.Title, &released, &v.TotalInventory); err != nil {
		return nil, err
	}
	v.ReleaseDate = model.NewDate(released)
	return v, nil
}
