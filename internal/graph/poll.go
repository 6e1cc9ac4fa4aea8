package graph

import (
	"errors"

	"github.com/campustech/clubhub/backend/internal/polls"
	"github.com/graphql-go/graphql"
)

type pollIDArgs struct {
	ID string `mapstructure:"id" validate:"required"`
}

func (r *Resolvers) resolveGetPoll(p graphql.ResolveParams) (interface{}, error) {
	if _, err := RequireAuth(p.Context); err != nil {
		return nil, err
	}
	var args pollIDArgs
	if err := decodeArgs(p.Args, &args); err != nil {
		return nil, err
	}
	poll, err := r.Polls.Get(p.Context, args.ID)
	if errors.Is(err, polls.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return poll, nil
}

func (r *Resolvers) resolveGetPolls(p graphql.ResolveParams) (interface{}, error) {
	if _, err := RequireAuth(p.Context); err != nil {
		return nil, err
	}
	return r.Polls.List(p.Context)
}

type createPollArgs struct {
	Title       string   `mapstructure:"title" validate:"required"`
	Description string   `mapstructure:"description" validate:"required"`
	Options     []string `mapstructure:"options" validate:"required,min=1,dive,required"`
	ExpiresAt   string   `mapstructure:"expiresAt" validate:"required"`
}

func (r *Resolvers) resolveCreatePoll(p graphql.ResolveParams) (interface{}, error) {
	caller, err := RequireAuth(p.Context)
	if err != nil {
		return nil, err
	}
	var args createPollArgs
	if err := decodeArgs(p.Args, &args); err != nil {
		return nil, err
	}
	return r.Polls.Create(p.Context, actorFor(caller), polls.CreateInput{
		Title:       args.Title,
		Description: args.Description,
		Options:     args.Options,
		ExpiresAt:   args.ExpiresAt,
	})
}

type votePollArgs struct {
	PollID   string `mapstructure:"pollId" validate:"required"`
	OptionID string `mapstructure:"optionId" validate:"required"`
}

func (r *Resolvers) resolveVotePoll(p graphql.ResolveParams) (interface{}, error) {
	caller, err := RequireAuth(p.Context)
	if err != nil {
		return nil, err
	}
	var args votePollArgs
	if err := decodeArgs(p.Args, &args); err != nil {
		return nil, err
	}
	return r.Polls.Vote(p.Context, actorFor(caller), args.PollID, args.OptionID)
}

type updatePollArgs struct {
	ID          string   `mapstructure:"id" validate:"required"`
	Title       *string  `mapstructure:"title"`
	Description *string  `mapstructure:"description"`
	Status      *string  `mapstructure:"status" validate:"omitempty,oneof=OPEN CLOSE"`
	ExpiresAt   *string  `mapstructure:"expiresAt"`
	Options     []string `mapstructure:"options"`
}

func (r *Resolvers) resolveUpdatePoll(p graphql.ResolveParams) (interface{}, error) {
	caller, err := RequireAuth(p.Context)
	if err != nil {
		return nil, err
	}
	var args updatePollArgs
	if err := decodeArgs(p.Args, &args); err != nil {
		return nil, err
	}
	return r.Polls.Update(p.Context, actorFor(caller), args.ID, polls.UpdateInput{
		Title:       args.Title,
		Description: args.Description,
		Status:      args.Status,
		ExpiresAt:   args.ExpiresAt,
		Options:     args.Options,
	})
}

func (r *Resolvers) resolveDeletePoll(p graphql.ResolveParams) (interface{}, error) {
	caller, err := RequireAuth(p.Context)
	if err != nil {
		return nil, err
	}
	var args pollIDArgs
	if err := decodeArgs(p.Args, &args); err != nil {
		return nil, err
	}
	return r.Polls.Delete(p.Context, actorFor(caller), args.ID)
}
