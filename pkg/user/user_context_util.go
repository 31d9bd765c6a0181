package user

import (
	"context"
	"errors"
	"strings"

	log "github.com/sirupsen/logrus"
)

type contextKey string

const UserKey contextKey = "user"

var ErrNoUser = errors.New("user not found")

// CurrentId retrieves the current owner id from the context. Returns ErrNoUser if not present.
func CurrentId(ctx context.Context) (string, error) {
	u, ok := ctx.Value(UserKey).(User)
	if !ok || u.Id == "" {
		log.Trace("user not found in context")
		return "", ErrNoUser
	}
	return u.Id, nil
}

func CurrentUser(ctx context.Context) (User, error) {
	u, ok := ctx.Value(UserKey).(User)
	if !ok {
		log.Trace("user not found in context")
		return User{}, ErrNoUser
	}
	return u, nil
}

func WithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, UserKey, u)
}

func WithId(ctx context.Context, id string) context.Context {
	return WithUser(ctx, User{Id: strings.TrimSpace(id)})
}
