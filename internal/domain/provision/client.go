package provision

import "context"

// User is a KASM account. ID is assigned by the service; Username is
// the handle callers look accounts up by.
type User struct {
	ID       string
	Username string
}

type Group struct {
	ID   string
	Name string
}

// Client is the outbound KASM API surface. The production
// implementation lives in infrastructure/kasm.
type Client interface {
	Authenticate(ctx context.Context) error
	Users(ctx context.Context) ([]User, error)
	Groups(ctx context.Context) ([]Group, error)
	UserGroups(ctx context.Context, userID string) ([]Group, error)
	CreateUser(ctx context.Context, username, firstName, lastName, password string) error
	DeleteUser(ctx context.Context, userID string) error
	AddUserToGroup(ctx context.Context, userID, groupID string) error
	UpdatePassword(ctx context.Context, userID, username, password string) error
}
