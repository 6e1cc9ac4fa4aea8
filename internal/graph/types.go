package graph

import (
	"time"

	"github.com/campustech/clubhub/backend/internal/model"
	"github.com/graphql-go/graphql"
)

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

var roleEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "Role",
	Values: graphql.EnumValueConfigMap{
		"USER":  &graphql.EnumValueConfig{Value: string(model.RoleUser)},
		"ADMIN": &graphql.EnumValueConfig{Value: string(model.RoleAdmin)},
	},
})

var pollStatusEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "PollStatus",
	Values: graphql.EnumValueConfigMap{
		"OPEN":  &graphql.EnumValueConfig{Value: string(model.PollStatusOpen)},
		"CLOSE": &graphql.EnumValueConfig{Value: string(model.PollStatusClose)},
	},
})

var userType = graphql.NewObject(graphql.ObjectConfig{
	Name: "User",
	Fields: graphql.Fields{
		"id":         &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"externalId": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"email":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"first_name": &graphql.Field{Type: graphql.String},
		"role":       &graphql.Field{Type: roleEnum},
		"createdAt": &graphql.Field{
			Type: graphql.NewNonNull(graphql.String),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if user, ok := userSource(p.Source); ok {
					return formatTimestamp(user.CreatedAt), nil
				}
				return nil, nil
			},
		},
	},
})

var eventType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Event",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"hostId":      &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"title":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"description": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"type":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"location":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"guest":       &graphql.Field{Type: graphql.String},
		"tags":        &graphql.Field{Type: graphql.String},
		"participant": &graphql.Field{Type: graphql.Int},
		"time": &graphql.Field{
			Type: graphql.NewNonNull(graphql.String),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if event, ok := eventSource(p.Source); ok {
					return formatTimestamp(event.Time), nil
				}
				return nil, nil
			},
		},
		"createdAt": &graphql.Field{
			Type: graphql.NewNonNull(graphql.String),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if event, ok := eventSource(p.Source); ok {
					return formatTimestamp(event.CreatedAt), nil
				}
				return nil, nil
			},
		},
	},
})

var likeType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Like",
	Fields: graphql.Fields{
		"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"userId":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"projectId": &graphql.Field{Type: graphql.String},
		"createdAt": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if like, ok := likeSource(p.Source); ok {
					return formatTimestamp(like.CreatedAt), nil
				}
				return nil, nil
			},
		},
	},
})

var projectType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Project",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"userId":      &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"title":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"description": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"githubLink":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"liveLink":    &graphql.Field{Type: graphql.String},
		"tags":        &graphql.Field{Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
		"likes":       &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"createdAt": &graphql.Field{
			Type: graphql.NewNonNull(graphql.String),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if project, ok := projectSource(p.Source); ok {
					return formatTimestamp(project.CreatedAt), nil
				}
				return nil, nil
			},
		},
	},
})

var resourceType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Resource",
	Fields: graphql.Fields{
		"id":            &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"userId":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"title":         &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"description":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"category":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"document_type": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"resourceLink":  &graphql.Field{Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
		"createdAt": &graphql.Field{
			Type: graphql.NewNonNull(graphql.String),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if resource, ok := resourceSource(p.Source); ok {
					return formatTimestamp(resource.CreatedAt), nil
				}
				return nil, nil
			},
		},
	},
})

var pollOptionType = graphql.NewObject(graphql.ObjectConfig{
	Name: "PollOption",
	Fields: graphql.Fields{
		"id":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"pollId": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"text":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

var voteType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Vote",
	Fields: graphql.Fields{
		"id":       &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"pollId":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"userId":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"optionId": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

var pollType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Poll",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"adminId":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"title":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"description": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"status":      &graphql.Field{Type: graphql.NewNonNull(pollStatusEnum)},
		"expiresAt": &graphql.Field{
			Type: graphql.NewNonNull(graphql.String),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if poll, ok := pollSource(p.Source); ok {
					return formatTimestamp(poll.ExpiresAt), nil
				}
				return nil, nil
			},
		},
		"createdAt": &graphql.Field{
			Type: graphql.NewNonNull(graphql.String),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if poll, ok := pollSource(p.Source); ok {
					return formatTimestamp(poll.CreatedAt), nil
				}
				return nil, nil
			},
		},
	},
})

var toggleLikeResultType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ToggleLikeResult",
	Fields: graphql.Fields{
		"liked": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"likes": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
	},
})

// The relation fields are attached after construction because the types
// reference each other.
func init() {
	userType.AddFieldConfig("events", &graphql.Field{Type: graphql.NewList(eventType)})
	userType.AddFieldConfig("projects", &graphql.Field{Type: graphql.NewList(projectType)})
	userType.AddFieldConfig("resources", &graphql.Field{Type: graphql.NewList(resourceType)})
	userType.AddFieldConfig("polls", &graphql.Field{Type: graphql.NewList(pollType)})
	userType.AddFieldConfig("votes", &graphql.Field{Type: graphql.NewList(voteType)})
	userType.AddFieldConfig("likes", &graphql.Field{Type: graphql.NewList(likeType)})

	eventType.AddFieldConfig("host", &graphql.Field{Type: userType})
	likeType.AddFieldConfig("user", &graphql.Field{Type: userType})
	projectType.AddFieldConfig("user", &graphql.Field{Type: userType})
	projectType.AddFieldConfig("likedBy", &graphql.Field{Type: graphql.NewList(likeType)})
	resourceType.AddFieldConfig("user", &graphql.Field{Type: userType})
	voteType.AddFieldConfig("user", &graphql.Field{Type: userType})
	voteType.AddFieldConfig("option", &graphql.Field{Type: pollOptionType})
	pollType.AddFieldConfig("options", &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(pollOptionType)))})
	pollType.AddFieldConfig("votes", &graphql.Field{Type: graphql.NewList(graphql.NewNonNull(voteType))})
}

func userSource(source interface{}) (model.User, bool) {
	switch value := source.(type) {
	case model.User:
		return value, true
	case *model.User:
		if value != nil {
			return *value, true
		}
	}
	return model.User{}, false
}

func eventSource(source interface{}) (model.Event, bool) {
	switch value := source.(type) {
	case model.Event:
		return value, true
	case *model.Event:
		if value != nil {
			return *value, true
		}
	}
	return model.Event{}, false
}

func likeSource(source interface{}) (model.Like, bool) {
	switch value := source.(type) {
	case model.Like:
		return value, true
	case *model.Like:
		if value != nil {
			return *value, true
		}
	}
	return model.Like{}, false
}

func projectSource(source interface{}) (model.Project, bool) {
	switch value := source.(type) {
	case model.Project:
		return value, true
	case *model.Project:
		if value != nil {
			return *value, true
		}
	}
	return model.Project{}, false
}

func resourceSource(source interface{}) (model.Resource, bool) {
	switch value := source.(type) {
	case model.Resource:
		return value, true
	case *model.Resource:
		if value != nil {
			return *value, true
		}
	}
	return model.Resource{}, false
}

func pollSource(source interface{}) (model.Poll, bool) {
	switch value := source.(type) {
	case model.Poll:
		return value, true
	case *model.Poll:
		if value != nil {
			return *value, true
		}
	}
	return model.Poll{}, false
}
