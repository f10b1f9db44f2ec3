package customersvc

import (
	"context"

	"videostore/model"
	"videostore/util/apperr"
	"videostore/util/database"
)

const entity = "Customer"

type Repo interface {
	Insert(ctx context.Context, q database.DBTX, c *model.Customer) error
	Get(ctx context.Context, q database.DBTX, id int64) (*model.Customer, error)
	List(ctx context.Context, q database.DBTX) ([]model.Customer, error)
	Update(ctx context.Context, q database.DBTX, c *model.Customer) error
	Delete(ctx context.Context, q database.DBTX, id int64) error
}

type RentalRepo interface {
	CountOpenByCustomer(ctx context.Context, q database.DBTX, customerID int64) (int64, error)
	ListOpenByCustomer(ctx context.Context, q database.DBTX, customerID int64) ([]model.RentedVideo, error)
}

type Service interface {
	Create(ctx context.Context, in model.Customer) (*model.Customer, error)
	Get(ctx context.Context, id int64) (*model.Customer, error)
	List(ctx context.Context) ([]model.Customer, error)
	// Update replaces name, phone and postal_code.
	Update(ctx context.Context, id int64, in model.Customer) (*model.Customer, error)
	// Delete is rejected while the customer still holds open rentals.
	Delete(ctx context.Context, id int64) error
	// Rentals lists the videos the customer has checked out and not returned.
	Rentals(ctx context.Context, id int64) ([]model.RentedVideo, error)
}

type service struct {
	tx database.Transactor
	r  Repo
	rr RentalRepo
}

func New(tx database.Transactor, r Repo, rr RentalRepo) Service {
	return &service{tx: tx, r: r, rr: rr}
}

func (s *service) Create(ctx context.Context, in model.Customer) (*model.Customer, error) {
	c := &model.Customer{Name: in.Name, Phone: in.Phone, PostalCode: in.PostalCode}
	err := s.tx.WithTx(ctx, func(q database.DBTX) error {
		return apperr.FromDB(s.r.Insert(ctx, q, c))
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Get(ctx context.Context, id int64) (*model.Customer, error) {
	var c *model.Customer
	err := s.tx.WithTx(ctx, func(q database.DBTX) error {
		var err error
		c, err = s.r.Get(ctx, q, id)
		return apperr.Lookup(err, entity, id)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) List(ctx context.Context) ([]model.Customer, error) {
	var out []model.Customer
	err := s.tx.WithTx(ctx, func(q database.DBTX) error {
		var err error
		out, err = s.r.List(ctx, q)
		return err
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Customer{}
	}
	return out, nil
}

func (s *service) Update(ctx context.Context, id int64, in model.Customer) (*model.Customer, error) {
	var c *model.Customer
	err := s.tx.WithTx(ctx, func(q database.DBTX) error {
		var err error
		if c, err = s.r.Get(ctx, q, id); err != nil {
			return apperr.Lookup(err, entity, id)
		}
		c.Name, c.Phone, c.PostalCode = in.Name, in.Phone, in.PostalCode
		return apperr.Lookup(s.r.Update(ctx, q, c), entity, id)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.tx.WithTx(ctx, func(q database.DBTX) error {
		if _, err := s.r.Get(ctx, q, id); err != nil {
			return apperr.Lookup(err, entity, id)
		}
		open, err := s.rr.CountOpenByCustomer(ctx, q, id)
		if err != nil {
			return err
		}
		if open > 0 {
			return apperr.Conflict("Customer %d has %d open rentals and cannot be deleted", id, open)
		}
		return apperr.Lookup(s.r.Delete(ctx, q, id), entity, id)
	})
}

func (s *service) Rentals(ctx context.Context, id int64) ([]model.RentedVideo, error) {
	var out []model.RentedVideo
	err := s.tx.WithTx(ctx, func(q database.DBTX) error {
		if _, err := s.r.Get(ctx, q, id); err != nil {
			return apperr.Lookup(err, entity, id)
		}
		var err error
		out, err = s.rr.ListOpenByCustomer(ctx, q, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.RentedVideo{}
	}
	return out, nil
}
