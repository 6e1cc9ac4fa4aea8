package graph

import (
	"errors"

	"github.com/campustech/clubhub/backend/internal/events"
	"github.com/graphql-go/graphql"
)

type eventIDArgs struct {
	ID string `mapstructure:"id" validate:"required"`
}

func (r *Resolvers) resolveGetEvent(p graphql.ResolveParams) (interface{}, error) {
	if _, err := RequireAuth(p.Context); err != nil {
		return nil, err
	}
	var args eventIDArgs
	if err := decodeArgs(p.Args, &args); err != nil {
		return nil, err
	}
	event, err := r.Events.Get(p.Context, args.ID)
	if errors.Is(err, events.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (r *Resolvers) resolveGetEvents(p graphql.ResolveParams) (interface{}, error) {
	if _, err := RequireAuth(p.Context); err != nil {
		return nil, err
	}
	return r.Events.List(p.Context)
}

type createEventArgs struct {
	Title       string `mapstructure:"title" validate:"required"`
	Description string `mapstructure:"description" validate:"required"`
	Type        string `mapstructure:"type" validate:"required"`
	Location    string `mapstructure:"location" validate:"required"`
	Guest       string `mapstructure:"guest"`
	Tags        string `mapstructure:"tags"`
	Datetime    string `mapstructure:"datetime" validate:"required"`
	Participant int    `mapstructure:"participant"`
}

func (r *Resolvers) resolveCreateEvent(p graphql.ResolveParams) (interface{}, error) {
	caller, err := RequireAuth(p.Context)
	if err != nil {
		return nil, err
	}
	var args createEventArgs
	if err := decodeArgs(p.Args, &args); err != nil {
		return nil, err
	}
	return r.Events.Create(p.Context, actorFor(caller), events.CreateInput{
		Title:       args.Title,
		Description: args.Description,
		Type:        args.Type,
		Location:    args.Location,
		Guest:       args.Guest,
		Tags:        args.Tags,
		Datetime:    args.Datetime,
		Participant: args.Participant,
	})
}

type updateEventArgs struct {
	ID          string  `mapstructure:"id" validate:"required"`
	Title       *string `mapstructure:"title"`
	Description *string `mapstructure:"description"`
	Type        *string `mapstructure:"type"`
	Location    *string `mapstructure:"location"`
	Guest       *string `mapstructure:"guest"`
	Tags        *string `mapstructure:"tags"`
	Datetime    *string `mapstructure:"datetime"`
	Participant *int    `mapstructure:"participant"`
}

func (r *Resolvers) resolveUpdateEvent(p graphql.ResolveParams) (interface{}, error) {
	caller, err := RequireAuth(p.Context)
	if err != nil {
		return nil, err
	}
	var args updateEventArgs
	if err := decodeArgs(p.Args, &args); err != nil {
		return nil, err
	}
	return r.Events.Update(p.Context, actorFor(caller), args.ID, events.UpdateInput{
		Title:       args.Title,
		Description: args.Description,
		Type:        args.Type,
		Location:    args.Location,
		Guest:       args.Guest,
		Tags:        args.Tags,
		Datetime:    args.Datetime,
		Participant: args.Participant,
	})
}

func (r *Resolvers) resolveDeleteEvent(p graphql.ResolveParams) (interface{}, error) {
	caller, err := RequireAuth(p.Context)
	if err != nil {
		return nil, err
	}
	var args eventIDArgs
	if err := decodeArgs(p.Args, &args); err != nil {
		return nil, err
	}
	if err := r.Events.Delete(p.Context, actorFor(caller), args.ID); err != nil {
		return nil, err
	}
	return true, nil
}
