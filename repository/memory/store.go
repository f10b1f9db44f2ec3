// Package memory is an in-process Entity Store with the same contracts as the
// Postgres repositories. Transactions are serialized and roll back by restoring
// a snapshot taken when they begin.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"videostore/model"
	customerrepo "videostore/repository/customer"
	rentalrepo "videostore/repository/rental"
	videorepo "videostore/repository/video"
	"videostore/util/database"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

var (
	_ database.Transactor = (*Store)(nil)
	_ customerrepo.Repo   = customers{}
	_ videorepo.Repo      = videos{}
	_ rentalrepo.Repo     = rentals{}
)

type state struct {
	customers map[int64]model.Customer
	videos    map[int64]model.Video
	rentals   map[int64]model.Rental
	seq       struct{ customer, video, rental int64 }
}

func (st *state) clone() state {
	c := *st
	c.customers = maps.Clone(st.customers)
	c.videos = maps.Clone(st.videos)
	c.rentals = maps.Clone(st.rentals)
	return c
}

type Store struct {
	mu  sync.Mutex
	st  state
	now func() time.Time
}

func New() *Store {
	return &Store{
		st: state{
			customers: map[int64]model.Customer{},
			videos:    map[int64]model.Video{},
			rentals:   map[int64]model.Rental{},
		},
		now: time.Now,
	}
}

// WithTx runs fn with exclusive access to the store. Repository methods must
// only be called from inside fn.
func (s *Store) WithTx(ctx context.Context, fn func(q database.DBTX) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.st.clone()
	defer func() {
		if p := recover(); p != nil {
			s.st = snap
			panic(p)
		}
		if err != nil {
			s.st = snap
		}
	}()
	return fn(nil)
}

func (s *Store) Customers() customerrepo.Repo { return customers{s} }
func (s *Store) Videos() videorepo.Repo       { return videos{s} }
func (s *Store) Rentals() rentalrepo.Repo     { return rentals{s} }

func sortedValues[T any](m map[int64]T) []T {
	keys := slices.Sorted(maps.Keys(m))
	out := make([]T, 0, len(keys))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}

func notFound(what string, id int64) error {
	return errors.Wrapf(pgx.ErrNoRows, "%s %d", what, id)
}

// customers

type customers struct{ s *Store }

func (r customers) Insert(_ context.Context, _ database.DBTX, c *model.Customer) error {
	st := &r.s.st
	st.seq.customer++
	c.ID = st.seq.customer
	c.RegisterAt = r.s.now().UTC()
	st.customers[c.ID] = *c
	return nil
}

func (r customers) Get(_ context.Context, _ database.DBTX, id int64) (*model.Customer, error) {
	c, ok := r.s.st.customers[id]
	if !ok {
		return nil, notFound("get customer", id)
	}
	return &c, nil
}

func (r customers) List(context.Context, database.DBTX) ([]model.Customer, error) {
	return sortedValues(r.s.st.customers), nil
}

func (r customers) Update(_ context.Context, _ database.DBTX, c *model.Customer) error {
	cur, ok := r.s.st.customers[c.ID]
	if !ok {
		return notFound("update customer", c.ID)
	}
	c.RegisterAt = cur.RegisterAt
	r.s.st.customers[c.ID] = *c
	return nil
}

func (r customers) Delete(_ context.Context, _ database.DBTX, id int64) error {
	st := &r.s.st
	if _, ok := st.customers[id]; !ok {
		return notFound("delete customer", id)
	}
	delete(st.customers, id)
	for rid, rt := range st.rentals {
		if rt.CustomerID == id {
			delete(st.rentals, rid)
		}
	}
	return nil
}

// videos

type videos struct{ s *Store }

func (r videos) Insert(_ context.Context, _ database.DBTX, v *model.Video) error {
	if v.TotalInventory < 0 {
		return errors.New("total_inventory violates check constraint")
	}
	st := &r.s.st
	st.seq.video++
	v.ID = st.seq.video
	st.videos[v.ID] = *v
	return nil
}

func (r videos) Get(_ context.Context, _ database.DBTX, id int64) (*model.Video, error) {
	v, ok := r.s.st.videos[id]
	if !ok {
		return nil, notFound("get video", id)
	}
	return &v, nil
}

// GetForUpdate needs no extra locking: WithTx already holds the store.
func (r videos) GetForUpdate(ctx context.Context, q database.DBTX, id int64) (*model.Video, error) {
	return r.Get(ctx, q, id)
}

func (r videos) List(context.Context, database.DBTX) ([]model.Video, error) {
	return sortedValues(r.s.st.videos), nil
}

func (r videos) Update(_ context.Context, _ database.DBTX, v *model.Video) error {
	if _, ok := r.s.st.videos[v.ID]; !ok {
		return notFound("update video", v.ID)
	}
	r.s.st.videos[v.ID] = *v
	return nil
}

func (r videos) Delete(_ context.Context, _ database.DBTX, id int64) error {
	st := &r.s.st
	if _, ok := st.videos[id]; !ok {
		return notFound("delete video", id)
	}
	delete(st.videos, id)
	for rid, rt := range st.rentals {
		if rt.VideoID == id {
			delete(st.rentals, rid)
		}
	}
	return nil
}

// rentals

type rentals struct{ s *Store }

func (r rentals) Insert(_ context.Context, _ database.DBTX, rt *model.Rental) error {
	st := &r.s.st
	if _, ok := st.customers[rt.CustomerID]; !ok {
		return errors.Errorf("rental references missing customer %d", rt.CustomerID)
	}
	if _, ok := st.videos[rt.VideoID]; !ok {
		return errors.Errorf("rental references missing video %d", rt.VideoID)
	}
	st.seq.rental++
	rt.ID = st.seq.rental
	rt.CheckedIn = false
	rt.CreatedAt = r.s.now().UTC()
	st.rentals[rt.ID] = *rt
	return nil
}

func (r rentals) GetForUpdate(_ context.Context, _ database.DBTX, id int64) (*model.Rental, error) {
	rt, ok := r.s.st.rentals[id]
	if !ok {
		return nil, notFound("get rental", id)
	}
	return &rt, nil
}

func (r rentals) FindByKeyForUpdate(_ context.Context, _ database.DBTX, customerID, videoID int64) (*model.Rental, error) {
	var open, closed *model.Rental
	for _, rt := range sortedValues(r.s.st.rentals) {
		if rt.CustomerID != customerID || rt.VideoID != videoID {
			continue
		}
		if !rt.CheckedIn && open == nil {
			open = &rt
		}
		if rt.CheckedIn {
			closed = &rt
		}
	}
	switch {
	case open != nil:
		return open, nil
	case closed != nil:
		return closed, nil
	}
	return nil, errors.Wrapf(pgx.ErrNoRows, "find rental customer=%d video=%d", customerID, videoID)
}

func (r rentals) MarkCheckedIn(_ context.Context, _ database.DBTX, id int64) error {
	rt, ok := r.s.st.rentals[id]
	if !ok || rt.CheckedIn {
		return errors.Wrapf(rentalrepo.ErrNotOpen, "check in rental %d", id)
	}
	rt.CheckedIn = true
	r.s.st.rentals[id] = rt
	return nil
}

func (r rentals) CountOpenByVideo(_ context.Context, _ database.DBTX, videoID int64) (int64, error) {
	return r.countOpen(func(rt model.Rental) bool { return rt.VideoID == videoID }), nil
}

func (r rentals) CountOpenByCustomer(_ context.Context, _ database.DBTX, customerID int64) (int64, error) {
	return r.countOpen(func(rt model.Rental) bool { return rt.CustomerID == customerID }), nil
}

func (r rentals) countOpen(match func(model.Rental) bool) int64 {
	var n int64
	for _, rt := range r.s.st.rentals {
		if !rt.CheckedIn && match(rt) {
			n++
		}
	}
	return n
}

func (r rentals) ListOpenByCustomer(_ context.Context, _ database.DBTX, customerID int64) ([]model.RentedVideo, error) {
	out := []model.RentedVideo{}
	for _, rt := range sortedValues(r.s.st.rentals) {
		if rt.CheckedIn || rt.CustomerID != customerID {
			continue
		}
		v := r.s.st.videos[rt.VideoID]
		out = append(out, model.RentedVideo{ID: v.ID, Title: v.Title, ReleaseDate: v.ReleaseDate, DueDate: rt.DueDate})
	}
	return out, nil
}

func (r rentals) ListRentersByVideo(_ context.Context, _ database.DBTX, videoID int64) ([]model.Renter, error) {
	out := []model.Renter{}
	for _, rt := range sortedValues(r.s.st.rentals) {
		if rt.CheckedIn || rt.VideoID != videoID {
			continue
		}
		c := r.s.st.customers[rt.CustomerID]
		out = append(out, model.Renter{DueDate: rt.DueDate, Name: c.Name, Phone: c.Phone, PostalCode: c.PostalCode})
	}
	return out, nil
}
