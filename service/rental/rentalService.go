package rentalsvc

import (
	"context"
	"errors"
	"time"

	"videostore/model"
	rentalrepo "videostore/repository/rental"
	"videostore/util/apperr"
	"videostore/util/database"

	"github.com/jackc/pgx/v5"
)

// DefaultPeriod is how long a customer may keep a checked-out video.
const DefaultPeriod = 7 * 24 * time.Hour

type CustomerRepo interface {
	Get(ctx context.Context, q database.DBTX, id int64) (*model.Customer, error)
}

type VideoRepo interface {
	Get(ctx context.Context, q database.DBTX, id int64) (*model.Video, error)
	GetForUpdate(ctx context.Context, q database.DBTX, id int64) (*model.Video, error)
}

type Repo interface {
	Insert(ctx context.Context, q database.DBTX, r *model.Rental) error
	GetForUpdate(ctx context.Context, q database.DBTX, id int64) (*model.Rental, error)
	FindByKeyForUpdate(ctx context.Context, q database.DBTX, customerID, videoID int64) (*model.Rental, error)
	MarkCheckedIn(ctx context.Context, q database.DBTX, id int64) error
	CountOpenByVideo(ctx context.Context, q database.DBTX, videoID int64) (int64, error)
	CountOpenByCustomer(ctx context.Context, q database.DBTX, customerID int64) (int64, error)
}

type Service interface {
	// CheckOut opens a rental due DefaultPeriod (or the configured period) from now.
	CheckOut(ctx context.Context, customerID, videoID int64) (*model.RentalSummary, error)

	// CheckIn closes an open rental by id.
	CheckIn(ctx context.Context, rentalID int64) (*model.RentalSummary, error)

	// CheckInByKey closes the oldest open rental the customer holds for the video.
	CheckInByKey(ctx context.Context, customerID, videoID int64) (*model.RentalSummary, error)

	// Available is total inventory minus open rentals, never below zero.
	Available(ctx context.Context, videoID int64) (int64, error)
}

type Option func(*service)

func WithPeriod(d time.Duration) Option {
	return func(s *service) {
		if d > 0 {
			s.period = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

type service struct {
	tx     database.Transactor
	c      CustomerRepo
	v      VideoRepo
	r      Repo
	period time.Duration
	now    func() time.Time
}

func New(tx database.Transactor, c CustomerRepo, v VideoRepo, r Repo, opts ...Option) Service {
	s := &service{tx: tx, c: c, v: v, r: r, period: DefaultPeriod, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *service) CheckOut(ctx context.Context, customerID, videoID int64) (*model.RentalSummary, error) {
	var out *model.RentalSummary
	err := s.tx.WithTx(ctx, func(q database.DBTX) error {
		if _, err := s.c.Get(ctx, q, customerID); err != nil {
			return apperr.Lookup(err, "Customer", customerID)
		}
		// lock the video so concurrent checkouts serialize on its inventory
		v, err := s.v.GetForUpdate(ctx, q, videoID)
		if err != nil {
			return apperr.Lookup(err, "Video", videoID)
		}
		open, err := s.r.CountOpenByVideo(ctx, q, videoID)
		if err != nil {
			return err
		}
		if open >= v.TotalInventory {
			return apperr.Unavailable("Video %d has no available inventory", videoID)
		}

		rt := &model.Rental{
			CustomerID: customerID,
			VideoID:    videoID,
			DueDate:    s.now().UTC().Add(s.period),
		}
		if err := s.r.Insert(ctx, q, rt); err != nil {
			return apperr.FromDB(err)
		}

		held, err := s.r.CountOpenByCustomer(ctx, q, customerID)
		if err != nil {
			return err
		}
		out = &model.RentalSummary{
			Rental:                *rt,
			VideosCheckedOutCount: held,
			AvailableInventory:    available(v.TotalInventory, open+1),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) CheckIn(ctx context.Context, rentalID int64) (*model.RentalSummary, error) {
	var out *model.RentalSummary
	err := s.tx.WithTx(ctx, func(q database.DBTX) error {
		rt, err := s.r.GetForUpdate(ctx, q, rentalID)
		if err != nil {
			return apperr.Lookup(err, "Rental", rentalID)
		}
		out, err = s.close(ctx, q, rt)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) CheckInByKey(ctx context.Context, customerID, videoID int64) (*model.RentalSummary, error) {
	var out *model.RentalSummary
	err := s.tx.WithTx(ctx, func(q database.DBTX) error {
		if _, err := s.c.Get(ctx, q, customerID); err != nil {
			return apperr.Lookup(err, "Customer", customerID)
		}
		if _, err := s.v.Get(ctx, q, videoID); err != nil {
			return apperr.Lookup(err, "Video", videoID)
		}
		rt, err := s.r.FindByKeyForUpdate(ctx, q, customerID, videoID)
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.New(apperr.ErrNotFound, "Customer %d has no rental of video %d", customerID, videoID)
		}
		if err != nil {
			return err
		}
		out, err = s.close(ctx, q, rt)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) Available(ctx context.Context, videoID int64) (int64, error) {
	var n int64
	err := s.tx.WithTx(ctx, func(q database.DBTX) error {
		v, err := s.v.Get(ctx, q, videoID)
		if err != nil {
			return apperr.Lookup(err, "Video", videoID)
		}
		open, err := s.r.CountOpenByVideo(ctx, q, videoID)
		if err != nil {
			return err
		}
		n = available(v.TotalInventory, open)
		return nil
	})
	return n, err
}

// close moves an OPEN rental to CLOSED. CLOSED is terminal.
func (s *service) close(ctx context.Context, q database.DBTX, rt *model.Rental) (*model.RentalSummary, error) {
	if rt.Status() == model.RentalClosed {
		return nil, apperr.Conflict("Rental %d is already checked in", rt.ID)
	}
	v, err := s.v.GetForUpdate(ctx, q, rt.VideoID)
	if err != nil {
		return nil, apperr.Lookup(err, "Video", rt.VideoID)
	}
	if err := s.r.MarkCheckedIn(ctx, q, rt.ID); err != nil {
		if errors.Is(err, rentalrepo.ErrNotOpen) {
			return nil, apperr.Conflict("Rental %d is already checked in", rt.ID)
		}
		return nil, apperr.FromDB(err)
	}
	rt.CheckedIn = true

	open, err := s.r.CountOpenByVideo(ctx, q, rt.VideoID)
	if err != nil {
		return nil, err
	}
	held, err := s.r.CountOpenByCustomer(ctx, q, rt.CustomerID)
	if err != nil {
		return nil, err
	}
	return &model.RentalSummary{
		Rental:                *rt,
		VideosCheckedOutCount: held,
		AvailableInventory:    available(v.TotalInventory, open),
	}, nil
}

func available(total, open int64) int64 {
	if n := total - open; n > 0 {
		return n
	}
	return 0
}
