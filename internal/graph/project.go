package graph

import (
	"errors"

	"github.com/campustech/clubhub/backend/internal/projects"
	"github.com/graphql-go/graphql"
)

type projectIDArgs struct {
	ID string `mapstructure:"id" validate:"required"`
}

func (r *Resolvers) resolveGetProject(p graphql.ResolveParams) (interface{}, error) {
	if _, err := RequireAuth(p.Context); err != nil {
		return nil, err
	}
	var args projectIDArgs
	if err := decodeArgs(p.Args, &args); err != nil {
		return nil, err
	}
	project, err := r.Projects.Get(p.Context, args.ID)
	if errors.Is(err, projects.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return project, nil
}

func (r *Resolvers) resolveGetProjects(p graphql.ResolveParams) (interface{}, error) {
	if _, err := RequireAuth(p.Context); err != nil {
		return nil, err
	}
	return r.Projects.List(p.Context)
}

type createProjectArgs struct {
	Title       string   `mapstructure:"title" validate:"required"`
	Description string   `mapstructure:"description" validate:"required"`
	GithubLink  string   `mapstructure:"githubLink" validate:"required,url"`
	LiveLink    string   `mapstructure:"liveLink" validate:"omitempty,url"`
	Tags        []string `mapstructure:"tags"`
}

func (r *Resolvers) resolveCreateProject(p graphql.ResolveParams) (interface{}, error) {
	caller, err := RequireAuth(p.Context)
	if err != nil {
		return nil, err
	}
	var args createProjectArgs
	if err := decodeArgs(p.Args, &args); err != nil {
		return nil, err
	}
	return r.Projects.Create(p.Context, actorFor(caller), projects.CreateInput{
		Title:       args.Title,
		Description: args.Description,
		GithubLink:  args.GithubLink,
		LiveLink:    args.LiveLink,
		Tags:        args.Tags,
	})
}

type updateProjectArgs struct {
	ID          string   `mapstructure:"id" validate:"required"`
	Title       *string  `mapstructure:"title"`
	Description *string  `mapstructure:"description"`
	GithubLink  *string  `mapstructure:"githubLink" validate:"omitempty,url"`
	LiveLink    *string  `mapstructure:"liveLink" validate:"omitempty,url"`
	Tags        []string `mapstructure:"tags"`
}

func (r *Resolvers) resolveUpdateProject(p graphql.ResolveParams) (interface{}, error) {
	caller, err := RequireAuth(p.Context)
	if err != nil {
		return nil, err
	}
	var args updateProjectArgs
	if err := decodeArgs(p.Args, &args); err != nil {
		return nil, err
	}
	return r.Projects.Update(p.Context, actorFor(caller), args.ID, projects.UpdateInput{
		Title:       args.Title,
		Description: args.Description,
		GithubLink:  args.GithubLink,
		LiveLink:    args.LiveLink,
		Tags:        args.Tags,
	})
}

func (r *Resolvers) resolveDeleteProject(p graphql.ResolveParams) (interface{}, error) {
	caller, err := RequireAuth(p.Context)
	if err != nil {
		return nil, err
	}
	var args projectIDArgs
	if err := decodeArgs(p.Args, &args); err != nil {
		return nil, err
	}
	if err := r.Projects.Delete(p.Context, actorFor(caller), args.ID); err != nil {
		return nil, err
	}
	return true, nil
}

type toggleLikeArgs struct {
	ProjectID string `mapstructure:"projectId" validate:"required"`
}

func (r *Resolvers) resolveToggleProjectLikes(p graphql.ResolveParams) (interface{}, error) {
	caller, err := RequireAuth(p.Context)
	if err != nil {
		return nil, err
	}
	var args toggleLikeArgs
	if err := decodeArgs(p.Args, &args); err != nil {
		return nil, err
	}
	return r.Projects.ToggleLike(p.Context, actorFor(caller), args.ProjectID)
}
