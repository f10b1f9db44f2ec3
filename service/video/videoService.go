package videosvc

import (
	"context"

	"videostore/model"
	"videostore/util/apperr"
	"videostore/util/database"
)

const entity = "Video"

type Repo interface {
	Insert(ctx context.Context, q database.DBTX, v *model.Video) error
	Get(ctx context.Context, q database.DBTX, id int64) (*model.Video, error)
	GetForUpdate(ctx context.Context, q database.DBTX, id int64) (*model.Video, error)
	List(ctx context.Context, q database.DBTX) ([]model.Video, error)
	Update(ctx context.Context, q database.DBTX, v *model.Video) error
	Delete(ctx context.Context, q database.DBTX, id int64) error
}

type RentalRepo interface {
	CountOpenByVideo(ctx context.Context, q database.DBTX, videoID int64) (int64, error)
	ListRentersByVideo(ctx context.Context, q database.DBTX, videoID int64) ([]model.Renter, error)
}

type Service interface {
	Create(ctx context.Context, in model.Video) (*model.Video, error)
	Get(ctx context.Context, id int64) (*model.Video, error)
	List(ctx context.Context) ([]model.Video, error)
	Update(ctx context.Context, id int64, in model.Video) (*model.Video, error)
	// Delete returns the removed record. Rejected while copies are out.
	Delete(ctx context.Context, id int64) (*model.Video, error)
	// Renters lists the customers currently holding a copy.
	Renters(ctx context.Context, id int64) ([]model.Renter, error)
}

type service struct {
	tx database.Transactor
	r  Repo
	rr RentalRepo
}

func New(tx database.Transactor, r Repo, rr RentalRepo) Service {
	return &service{tx: tx, r: r, rr: rr}
}

func (s *service) Create(ctx context.Context, in model.Video) (*model.Video, error) {
	if in.TotalInventory < 0 {
		return nil, apperr.BadRequest("total_inventory must not be negative")
	}
	v := &model.Video{Title: in.Title, ReleaseDate: in.ReleaseDate, TotalInventory: in.TotalInventory}
	err := s.tx.WithTx(ctx, func(q database.DBTX) error {
		return apperr.FromDB(s.r.Insert(ctx, q, v))
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (s *service) Get(ctx context.Context, id int64) (*model.Video, error) {
	var v *model.Video
	err := s.tx.WithTx(ctx, func(q database.DBTX) error {
		var err error
		v, err = s.r.Get(ctx, q, id)
		return apperr.Lookup(err, entity, id)
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (s *service) List(ctx context.Context) ([]model.Video, error) {
	var out []model.Video
	err := s.tx.WithTx(ctx, func(q database.DBTX) error {
		var err error
		out, err = s.r.List(ctx, q)
		return err
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Video{}
	}
	return out, nil
}

func (s *service) Update(ctx context.Context, id int64, in model.Video) (*model.Video, error) {
	if in.TotalInventory < 0 {
		return nil, apperr.BadRequest("total_inventory must not be negative")
	}
	var v *model.Video
	err := s.tx.WithTx(ctx, func(q database.DBTX) error {
		var err error
		if v, err = s.r.GetForUpdate(ctx, q, id); err != nil {
			return apperr.Lookup(err, entity, id)
		}
		open, err := s.rr.CountOpenByVideo(ctx, q, id)
		if err != nil {
			return err
		}
		if in.TotalInventory < open {
			return apperr.Conflict("Video %d has %d copies checked out; total_inventory cannot be %d", id, open, in.TotalInventory)
		}
		v.Title, v.ReleaseDate, v.TotalInventory = in.Title, in.ReleaseDate, in.TotalInventory
		return apperr.Lookup(s.r.Update(ctx, q, v), entity, id)
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (s *service) Delete(ctx context.Context, id int64) (*model.Video, error) {
	var v *model.Video
	err := s.tx.WithTx(ctx, func(q database.DBTX) error {
		var err error
		if v, err = s.r.GetForUpdate(ctx, q, id); err != nil {
			return apperr.Lookup(err, entity, id)
		}
		open, err := s.rr.CountOpenByVideo(ctx, q, id)
		if err != nil {
			return err
		}
		if open > 0 {
			return apperr.Conflict("Video %d has %d copies checked out and cannot be deleted", id, open)
		}
		return apperr.Lookup(s.r.Delete(ctx, q, id), entity, id)
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (s *service) Renters(ctx context.Context, id int64) ([]model.Renter, error) {
	var out []model.Renter
	err := s.tx.WithTx(ctx, func(q database.DBTX) error {
		if _, err := s.r.Get(ctx, q, id); err != nil {
			return apperr.Lookup(err, entity, id)
		}
		var err error
		out, err = s.rr.ListRentersByVideo(ctx, q, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Renter{}
	}
	return out, nil
}
