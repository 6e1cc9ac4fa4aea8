package graph

import (
	"errors"

	"github.com/campustech/clubhub/backend/internal/events"
	"github.com/campustech/clubhub/backend/internal/polls"
	"github.com/campustech/clubhub/backend/internal/projects"
	"github.com/campustech/clubhub/backend/internal/resources"
	"github.com/campustech/clubhub/backend/internal/users"
	"github.com/graphql-go/graphql"
)

var (
	errMissingUserService     = errors.New("graph: user service required")
	errMissingEventService    = errors.New("graph: event service required")
	errMissingProjectService  = errors.New("graph: project service required")
	errMissingResourceService = errors.New("graph: resource service required")
	errMissingPollService     = errors.New("graph: poll service required")
)

// Resolvers bundles the domain services behind the GraphQL schema. Every
// query and mutation delegates to one of them after its guard clause.
type Resolvers struct {
	Users     *users.Service
	Events    *events.Service
	Projects  *projects.Service
	Resources *resources.Service
	Polls     *polls.Service
}

// NewSchema merges all entity fields into one executable schema.
func NewSchema(r *Resolvers) (graphql.Schema, error) {
	if r.Users == nil {
		return graphql.Schema{}, errMissingUserService
	}
	if r.Events == nil {
		return graphql.Schema{}, errMissingEventService
	}
	if r.Projects == nil {
		return graphql.Schema{}, errMissingProjectService
	}
	if r.Resources == nil {
		return graphql.Schema{}, errMissingResourceService
	}
	if r.Polls == nil {
		return graphql.Schema{}, errMissingPollService
	}

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"getUser": &graphql.Field{
				Type:    userType,
				Resolve: r.resolveGetUser,
			},
			"getUsers": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(userType))),
				Args: graphql.FieldConfigArgument{
					"limit":  &graphql.ArgumentConfig{Type: graphql.Int},
					"offset": &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: r.resolveGetUsers,
			},
			"getEvent": &graphql.Field{
				Type: eventType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.resolveGetEvent,
			},
			"getEvents": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(eventType))),
				Resolve: r.resolveGetEvents,
			},
			"getProject": &graphql.Field{
				Type: projectType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.resolveGetProject,
			},
			"getProjects": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(projectType))),
				Resolve: r.resolveGetProjects,
			},
			"getResource": &graphql.Field{
				Type: resourceType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.resolveGetResource,
			},
			"getResources": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(resourceType))),
				Args: graphql.FieldConfigArgument{
					"limit":  &graphql.ArgumentConfig{Type: graphql.Int},
					"offset": &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: r.resolveGetResources,
			},
			"getPoll": &graphql.Field{
				Type: pollType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resolveGetPoll,
			},
			"getPolls": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(pollType))),
				Resolve: r.resolveGetPolls,
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"updateUser": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"first_name": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: r.resolveUpdateUser,
			},
			"createEvent": &graphql.Field{
				Type: graphql.NewNonNull(eventType),
				Args: graphql.FieldConfigArgument{
					"title":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"description": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"type":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"location":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"guest":       &graphql.ArgumentConfig{Type: graphql.String},
					"tags":        &graphql.ArgumentConfig{Type: graphql.String},
					"datetime":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"participant": &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: r.resolveCreateEvent,
			},
			"updateEvent": &graphql.Field{
				Type: eventType,
				Args: graphql.FieldConfigArgument{
					"id":          &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"title":       &graphql.ArgumentConfig{Type: graphql.String},
					"description": &graphql.ArgumentConfig{Type: graphql.String},
					"type":        &graphql.ArgumentConfig{Type: graphql.String},
					"location":    &graphql.ArgumentConfig{Type: graphql.String},
					"guest":       &graphql.ArgumentConfig{Type: graphql.String},
					"tags":        &graphql.ArgumentConfig{Type: graphql.String},
					"datetime":    &graphql.ArgumentConfig{Type: graphql.String},
					"participant": &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: r.resolveUpdateEvent,
			},
			"deleteEvent": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.resolveDeleteEvent,
			},
			"createProject": &graphql.Field{
				Type: graphql.NewNonNull(projectType),
				Args: graphql.FieldConfigArgument{
					"title":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"description": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"githubLink":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"liveLink":    &graphql.ArgumentConfig{Type: graphql.String},
					"tags":        &graphql.ArgumentConfig{Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
				},
				Resolve: r.resolveCreateProject,
			},
			"updateProject": &graphql.Field{
				Type: projectType,
				Args: graphql.FieldConfigArgument{
					"id":          &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"title":       &graphql.ArgumentConfig{Type: graphql.String},
					"description": &graphql.ArgumentConfig{Type: graphql.String},
					"githubLink":  &graphql.ArgumentConfig{Type: graphql.String},
					"liveLink":    &graphql.ArgumentConfig{Type: graphql.String},
					"tags":        &graphql.ArgumentConfig{Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
				},
				Resolve: r.resolveUpdateProject,
			},
			"deleteProject": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.resolveDeleteProject,
			},
			"toggleProjectLikes": &graphql.Field{
				Type: graphql.NewNonNull(toggleLikeResultType),
				Args: graphql.FieldConfigArgument{
					"projectId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.resolveToggleProjectLikes,
			},
			"createResource": &graphql.Field{
				Type: graphql.NewNonNull(resourceType),
				Args: graphql.FieldConfigArgument{
					"title":         &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"description":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"category":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"document_type": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"resourceLink":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String)))},
				},
				Resolve: r.resolveCreateResource,
			},
			"updateResource": &graphql.Field{
				Type: resourceType,
				Args: graphql.FieldConfigArgument{
					"id":            &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"title":         &graphql.ArgumentConfig{Type: graphql.String},
					"description":   &graphql.ArgumentConfig{Type: graphql.String},
					"category":      &graphql.ArgumentConfig{Type: graphql.String},
					"document_type": &graphql.ArgumentConfig{Type: graphql.String},
					"resourceLink":  &graphql.ArgumentConfig{Type: graphql.NewList(graphql.String)},
				},
				Resolve: r.resolveUpdateResource,
			},
			"deleteResource": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.resolveDeleteResource,
			},
			"createPoll": &graphql.Field{
				Type: graphql.NewNonNull(pollType),
				Args: graphql.FieldConfigArgument{
					"title":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"description": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"options":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String)))},
					"expiresAt":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resolveCreatePoll,
			},
			"votePoll": &graphql.Field{
				Type: graphql.NewNonNull(voteType),
				Args: graphql.FieldConfigArgument{
					"pollId":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"optionId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resolveVotePoll,
			},
			"updatePoll": &graphql.Field{
				Type: graphql.NewNonNull(pollType),
				Args: graphql.FieldConfigArgument{
					"id":          &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"title":       &graphql.ArgumentConfig{Type: graphql.String},
					"description": &graphql.ArgumentConfig{Type: graphql.String},
					"status":      &graphql.ArgumentConfig{Type: pollStatusEnum},
					"expiresAt":   &graphql.ArgumentConfig{Type: graphql.String},
					"options":     &graphql.ArgumentConfig{Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
				},
				Resolve: r.resolveUpdatePoll,
			},
			"deletePoll": &graphql.Field{
				Type: graphql.NewNonNull(pollType),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resolveDeletePoll,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}
