package graph

import (
	"errors"

	"github.com/campustech/clubhub/backend/internal/users"
	"github.com/graphql-go/graphql"
)

func (r *Resolvers) resolveGetUser(p graphql.ResolveParams) (interface{}, error) {
	caller, err := RequireAuth(p.Context)
	if err != nil {
		return nil, err
	}
	profile, err := r.Users.Profile(p.Context, caller.ID)
	if errors.Is(err, users.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

type listUsersArgs struct {
	Limit  *int `mapstructure:"limit"`
	Offset *int `mapstructure:"offset"`
}

func (r *Resolvers) resolveGetUsers(p graphql.ResolveParams) (interface{}, error) {
	if _, err := RequireAdmin(p.Context); err != nil {
		return nil, err
	}
	var args listUsersArgs
	if err := decodeArgs(p.Args, &args); err != nil {
		return nil, err
	}
	limit, offset := 0, 0
	if args.Limit != nil {
		limit = *args.Limit
	}
	if args.Offset != nil {
		offset = *args.Offset
	}
	return r.Users.List(p.Context, limit, offset)
}

type updateUserArgs struct {
	FirstName string `mapstructure:"first_name" validate:"required"`
}

func (r *Resolvers) resolveUpdateUser(p graphql.ResolveParams) (interface{}, error) {
	caller, err := RequireAuth(p.Context)
	if err != nil {
		return nil, err
	}
	var args updateUserArgs
	if err := decodeArgs(p.Args, &args); err != nil {
		return nil, err
	}
	return r.Users.UpdateFirstName(p.Context, actorFor(caller), args.FirstName)
}
