package rentalrepo

import (
	"context"
	"errors"
	"time"

	"videostore/model"
	"videostore/util/database"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jackc/pgx/v5"
	pkgerrors "github.com/pkg/errors"
)

const table = "rentals"

// ErrNotOpen is returned when a check-in hits a rental that is already checked in.
var ErrNotOpen = errors.New("rental not open")

var (
	dialect = goqu.Dialect("postgres")
	columns = []any{"id", "customer_id", "video_id", "due_date", "checked_in", "created_at"}
)

type Repo interface {
	Insert(ctx context.Context, q database.DBTX, r *model.Rental) error
	// GetForUpdate loads a rental by id and locks it.
	GetForUpdate(ctx context.Context, q database.DBTX, id int64) (*model.Rental, error)
	// FindByKeyForUpdate returns the oldest open rental for the pair, or the
	// newest closed one when none is open.
	FindByKeyForUpdate(ctx context.Context, q database.DBTX, customerID, videoID int64) (*model.Rental, error)
	MarkCheckedIn(ctx context.Context, q database.DBTX, id int64) error

	CountOpenByVideo(ctx context.Context, q database.DBTX, videoID int64) (int64, error)
	CountOpenByCustomer(ctx context.Context, q database.DBTX, customerID int64) (int64, error)

	// Projections
	ListOpenByCustomer(ctx context.Context, q database.DBTX, customerID int64) ([]model.RentedVideo, error)
	ListRentersByVideo(ctx context.Context, q database.DBTX, videoID int64) ([]model.Renter, error)
}

type repo struct{}

func New() Repo { return &repo{} }

func (r *repo) Insert(ctx context.Context, q database.DBTX, rt *model.Rental) error {
	query, args, err := dialect.Insert(table).
		Rows(goqu.Record{
			"customer_id": rt.CustomerID,
			"video_id":    rt.VideoID,
			"due_date":    rt.DueDate,
			"checked_in":  false,
		}).
		Returning("id", "created_at").
		Prepared(true).ToSQL()
	if err != nil {
		return pkgerrors.Wrap(err, "build rental insert")
	}
	if err := q.QueryRow(ctx, query, args...).Scan(&rt.ID, &rt.CreatedAt); err != nil {
		return pkgerrors.Wrap(err, "insert rental")
	}
	rt.CheckedIn = false
	return nil
}

func (r *repo) GetForUpdate(ctx context.Context, q database.DBTX, id int64) (*model.Rental, error) {
	query, args, err := dialect.From(table).
		Select(columns...).
		Where(goqu.C("id").Eq(id)).
		ForUpdate(exp.Wait).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, pkgerrors.Wrap(err, "build rental select")
	}
	rt, err := scanRental(q.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "get rental %d", id)
	}
	return rt, nil
}

func (r *repo) FindByKeyForUpdate(ctx context.Context, q database.DBTX, customerID, videoID int64) (*model.Rental, error) {
	query, args, err := findByKeySQL(customerID, videoID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "build rental key select")
	}
	rt, err := scanRental(q.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "find rental customer=%d video=%d", customerID, videoID)
	}
	return rt, nil
}

func (r *repo) MarkCheckedIn(ctx context.Context, q database.DBTX, id int64) error {
	query, args, err := dialect.Update(table).
		Set(goqu.Record{"checked_in": true}).
		Where(goqu.C("id").Eq(id), goqu.C("checked_in").IsFalse()).
		Prepared(true).ToSQL()
	if err != nil {
		return pkgerrors.Wrap(err, "build rental check-in")
	}
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return pkgerrors.Wrapf(err, "check in rental %d", id)
	}
	if tag.RowsAffected() == 0 {
		return pkgerrors.Wrapf(ErrNotOpen, "check in rental %d", id)
	}
	return nil
}

func (r *repo) CountOpenByVideo(ctx context.Context, q database.DBTX, videoID int64) (int64, error) {
	return r.countOpen(ctx, q, "video_id", videoID)
}

func (r *repo) CountOpenByCustomer(ctx context.Context, q database.DBTX, customerID int64) (int64, error) {
	return r.countOpen(ctx, q, "customer_id", customerID)
}

func (r *repo) countOpen(ctx context.Context, q database.DBTX, col string, id int64) (int64, error) {
	query, args, err := countOpenSQL(col, id)
	if err != nil {
		return 0, pkgerrors.Wrap(err, "build open rental count")
	}
	var n int64
	if err := q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, pkgerrors.Wrapf(err, "count open rentals %s=%d", col, id)
	}
	return n, nil
}

func (r *repo) ListOpenByCustomer(ctx context.Context, q database.DBTX, customerID int64) ([]model.RentedVideo, error) {
	query, args, err := openByCustomerSQL(customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "build customer rentals")
	}
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "list rentals of customer %d", customerID)
	}
	defer rows.Close()

	out := []model.RentedVideo{}
	for rows.Next() {
		var (
			v        model.RentedVideo
			released time.Time
		)
		if err := rows.Scan(&v.ID, &v.Title, &released, &v.DueDate); err != nil {
			return nil, pkgerrors.Wrap(err, "scan rented video")
		}
		v.ReleaseDate = model.NewDate(released)
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *repo) ListRentersByVideo(ctx context.Context, q database.DBTX, videoID int64) ([]model.Renter, error) {
	query, args, err := rentersByVideoSQL(videoID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "build video renters")
	}
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "list renters of video %d", videoID)
	}
	defer rows.Close()

	out := []model.Renter{}
	for rows.Next() {
		var rn model.Renter
		if err := rows.Scan(&rn.DueDate, &rn.Name, &rn.Phone, &rn.PostalCode); err != nil {
			return nil, pkgerrors.Wrap(err, "scan renter")
		}
		out = append(out, rn)
	}
	return out, rows.Err()
}

func findByKeySQL(customerID, videoID int64) (string, []any, error) {
	return dialect.From(table).
		Select(columns...).
		Where(goqu.C("customer_id").Eq(customerID), goqu.C("video_id").Eq(videoID)).
		// open rows first (false < true), oldest open first, newest closed first
		Order(
			goqu.C("checked_in").Asc(),
			goqu.L(`CASE WHEN "checked_in" THEN -"id" ELSE "id" END`).Asc(),
		).
		Limit(1).
		ForUpdate(exp.Wait).
		Prepared(true).ToSQL()
}

func countOpenSQL(col string, id int64) (string, []any, error) {
	return dialect.From(table).
		Select(goqu.COUNT(goqu.Star())).
		Where(goqu.C(col).Eq(id), goqu.C("checked_in").IsFalse()).
		Prepared(true).ToSQL()
}

func openByCustomerSQL(customerID int64) (string, []any, error) {
	return dialect.From(goqu.T(table).As("r")).
		Join(goqu.T("videos").As("v"), goqu.On(goqu.I("v.id").Eq(goqu.I("r.video_id")))).
		Select(goqu.I("v.id"), goqu.I("v.title"), goqu.I("v.release_date"), goqu.I("r.due_date")).
		Where(goqu.I("r.customer_id").Eq(customerID), goqu.I("r.checked_in").IsFalse()).
		Order(goqu.I("r.id").Asc()).
		Prepared(true).ToSQL()
}

func rentersByVideoSQL(videoID int64) (string, []any, error) {
	return dialect.From(goqu.T(table).As("r")).
		Join(goqu.T("customers").As("c"), goqu.On(goqu.I("c.id").Eq(goqu.I("r.customer_id")))).
		Select(goqu.I("r.due_date"), goqu.I("c.name"), goqu.I("c.phone"), goqu.I("c.postal_code")).
		Where(goqu.I("r.video_id").Eq(videoID), goqu.I("r.checked_in").IsFalse()).
		Order(goqu.I("r.id").Asc()).
		Prepared(true).ToSQL()
}

func scanRental(row pgx.Row) (*model.Rental, error) {
	rt := &model.Rental{}
	if err := row.Scan(&rt.ID, &rt.CustomerID, &rt.VideoID, &rt.DueDate, &rt.CheckedIn, &rt.CreatedAt); err != nil {
		return nil, err
	}
	return rt, nil
}
