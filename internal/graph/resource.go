package graph

import (
	"errors"

	"github.com/campustech/clubhub/backend/internal/resources"
	"github.com/graphql-go/graphql"
)

type resourceIDArgs struct {
	ID string `mapstructure:"id" validate:"required"`
}

func (r *Resolvers) resolveGetResource(p graphql.ResolveParams) (interface{}, error) {
	if _, err := RequireAuth(p.Context); err != nil {
		return nil, err
	}
	var args resourceIDArgs
	if err := decodeArgs(p.Args, &args); err != nil {
		return nil, err
	}
	resource, err := r.Resources.Get(p.Context, args.ID)
	if errors.Is(err, resources.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return resource, nil
}

type listResourcesArgs struct {
	Limit  *int `mapstructure:"limit"`
	Offset *int `mapstructure:"offset"`
}

func (r *Resolvers) resolveGetResources(p graphql.ResolveParams) (interface{}, error) {
	if _, err := RequireAuth(p.Context); err != nil {
		return nil, err
	}
	var args listResourcesArgs
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
	return r.Resources.List(p.Context, limit, offset)
}

type createResourceArgs struct {
	Title        string   `mapstructure:"title" validate:"required"`
	Description  string   `mapstructure:"description" validate:"required"`
	Category     string   `mapstructure:"category" validate:"required"`
	DocumentType string   `mapstructure:"document_type" validate:"required,oneof=docs videos images links"`
	ResourceLink []string `mapstructure:"resourceLink" validate:"required,min=1,dive,url"`
}

func (r *Resolvers) resolveCreateResource(p graphql.ResolveParams) (interface{}, error) {
	caller, err := RequireAuth(p.Context)
	if err != nil {
		return nil, err
	}
	var args createResourceArgs
	if err := decodeArgs(p.Args, &args); err != nil {
		return nil, err
	}
	return r.Resources.Create(p.Context, actorFor(caller), resources.CreateInput{
		Title:        args.Title,
		Description:  args.Description,
		Category:     args.Category,
		DocumentType: args.DocumentType,
		Links:        args.ResourceLink,
	})
}

type updateResourceArgs struct {
	ID           string   `mapstructure:"id" validate:"required"`
	Title        *string  `mapstructure:"title"`
	Description  *string  `mapstructure:"description"`
	Category     *string  `mapstructure:"category"`
	DocumentType *string  `mapstructure:"document_type" validate:"omitempty,oneof=docs videos images links"`
	ResourceLink []string `mapstructure:"resourceLink" validate:"omitempty,dive,url"`
}

func (r *Resolvers) resolveUpdateResource(p graphql.ResolveParams) (interface{}, error) {
	caller, err := RequireAuth(p.Context)
	if err != nil {
		return nil, err
	}
	var args updateResourceArgs
	if err := decodeArgs(p.Args, &args); err != nil {
		return nil, err
	}
	return r.Resources.Update(p.Context, actorFor(caller), args.ID, resources.UpdateInput{
		Title:        args.Title,
		Description:  args.Description,
		Category:     args.Category,
		DocumentType: args.DocumentType,
		Links:        args.ResourceLink,
	})
}

func (r *Resolvers) resolveDeleteResource(p graphql.ResolveParams) (interface{}, error) {
	caller, err := RequireAuth(p.Context)
	if err != nil {
		return nil, err
	}
	var args resourceIDArgs
	if err := decodeArgs(p.Args, &args); err != nil {
		return nil, err
	}
	if err := r.Resources.Delete(p.Context, actorFor(caller), args.ID); err != nil {
		return nil, err
	}
	return true, nil
}
