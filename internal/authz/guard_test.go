package authz

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	dErrors "ploshtadka/pkg/domain-errors"
	"ploshtadka/pkg/platform/sentinel"
)

type ownerTable struct {
	owners map[uuid.UUID]uuid.UUID
	err    error
	calls  int
}

func (o *ownerTable) VenueOwner(_ context.Context, venueID uuid.UUID) (uuid.UUID, error) {
	o.calls++
	if o.err != nil {
		return uuid.Nil, o.err
	}
	owner, ok := o.owners[venueID]
	if !ok {
		return uuid.Nil, sentinel.ErrNotFound
	}
	return owner, nil
}

type GuardSuite struct {
	suite.Suite
	ctx     context.Context
	lookup  *ownerTable
	guard   *Guard
	venueID uuid.UUID
	ownerID uuid.UUID
}

func TestGuardSuite(t *testing.T) {
	suite.Run(t, new(GuardSuite))
}

func (s *GuardSuite) SetupTest() {
	s.ctx = context.Background()
	s.venueID = uuid.New()
	s.ownerID = uuid.New()
	s.lookup = &ownerTable{owners: map[uuid.UUID]uuid.UUID{s.venueID: s.ownerID}}
	s.guard = NewGuard(s.lookup)
}

func (s *GuardSuite) TestAssertOwnsVenue() {
	s.Run("owner passes", func() {
		p := NewPrincipal(s.ownerID, "owner", []string{"venues:images"}, true)
		s.NoError(s.guard.AssertOwnsVenue(s.ctx, s.venueID, p))
	})

	s.Run("stranger is forbidden", func() {
		p := NewPrincipal(uuid.New(), "stranger", []string{"venues:images"}, true)
		err := s.guard.AssertOwnsVenue(s.ctx, s.venueID, p)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
		de, _ := dErrors.As(err)
		s.Equal("You don't have permission to modify this venue", de.Message)
	})

	s.Run("missing venue is not found", func() {
		p := NewPrincipal(s.ownerID, "owner", nil, true)
		err := s.guard.AssertOwnsVenue(s.ctx, uuid.New(), p)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("admin write bypasses lookup", func() {
		s.lookup.calls = 0
		p := NewPrincipal(uuid.New(), "admin", []string{"admin:venues:write"}, true)
		s.NoError(s.guard.AssertOwnsVenue(s.ctx, uuid.New(), p))
		s.Zero(s.lookup.calls)
	})

	s.Run("blanket marker does not bypass ownership", func() {
		p := NewPrincipal(uuid.New(), "admin", []string{"admin:venues"}, true)
		err := s.guard.AssertOwnsVenue(s.ctx, s.venueID, p)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("lookup failure is internal", func() {
		s.lookup.err = errors.New("connection reset")
		defer func() { s.lookup.err = nil }()
		p := NewPrincipal(s.ownerID, "owner", nil, true)
		err := s.guard.AssertOwnsVenue(s.ctx, s.venueID, p)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func (s *GuardSuite) TestResolveOwnerContext() {
	s.Run("non admin acts as self without lookup", func() {
		s.lookup.calls = 0
		p := NewPrincipal(uuid.New(), "user", []string{"venues:write"}, true)
		owner, err := s.guard.ResolveOwnerContext(s.ctx, s.venueID, p)
		s.Require().NoError(err)
		s.Equal(p.ID, owner)
		s.Zero(s.lookup.calls)
	})

	s.Run("admin acts as actual owner", func() {
		p := NewPrincipal(uuid.New(), "admin", []string{"admin:venues:write"}, true)
		owner, err := s.guard.ResolveOwnerContext(s.ctx, s.venueID, p)
		s.Require().NoError(err)
		s.Equal(s.ownerID, owner)
	})

	s.Run("admin on missing venue is not found", func() {
		p := NewPrincipal(uuid.New(), "admin", []string{"admin:venues:write"}, true)
		_, err := s.guard.ResolveOwnerContext(s.ctx, uuid.New(), p)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}
