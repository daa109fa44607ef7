package provision_test

import (
	"context"
	"errors"
	"testing"

	"activityservice/internal/domain"
	"activityservice/internal/domain/provision"
)

type eventBusFake struct{ events []domain.Event }

func (e *eventBusFake) Publish(ctx context.Context, ev domain.Event) { e.events = append(e.events, ev) }

type clientFake struct {
	users      []provision.User
	groups     []provision.Group
	userGroups map[string][]provision.Group

	authErr error

	created  []string // usernames
	names    [][2]string
	deleted  []string // user ids
	added    [][2]string
	password [][2]string // user id, new password
}

func (c *clientFake) Authenticate(ctx context.Context) error { return c.authErr }

func (c *clientFake) Users(ctx context.Context) ([]provision.User, error) { return c.users, nil }

func (c *clientFake) Groups(ctx context.Context) ([]provision.Group, error) { return c.groups, nil }

func (c *clientFake) UserGroups(ctx context.Context, userID string) ([]provision.Group, error) {
	return c.userGroups[userID], nil
}

func (c *clientFake) CreateUser(ctx context.Context, username, firstName, lastName, password string) error {
	c.created = append(c.created, username)
	c.names = append(c.names, [2]string{firstName, lastName})
	return nil
}

func (c *clientFake) DeleteUser(ctx context.Context, userID string) error {
	c.deleted = append(c.deleted, userID)
	return nil
}

func (c *clientFake) AddUserToGroup(ctx context.Context, userID, groupID string) error {
	c.added = append(c.added, [2]string{userID, groupID})
	return nil
}

func (c *clientFake) UpdatePassword(ctx context.Context, userID, username, password string) error {
	c.password = append(c.password, [2]string{userID, password})
	return nil
}

func TestFindUserID_CaseInsensitive(t *testing.T) {
	users := []provision.User{
		{ID: "k-1", Username: "Bob"},
		{ID: "k-2", Username: "alice"},
	}

	id, ok := provision.FindUserID(users, "bob")
	if !ok || id != "k-1" {
		t.Fatalf("FindUserID(bob) = %q, %v", id, ok)
	}
	id, ok = provision.FindUserID(users, "ALICE")
	if !ok || id != "k-2" {
		t.Fatalf("FindUserID(ALICE) = %q, %v", id, ok)
	}
	if _, ok := provision.FindUserID(users, "carol"); ok {
		t.Fatalf("FindUserID(carol) should miss")
	}
}

func TestCreateUser_SplitsFullName(t *testing.T) {
	kasm := &clientFake{}
	events := &eventBusFake{}
	svc := provision.NewService(kasm, events)

	if err := svc.CreateUser(context.Background(), "Ada Mary Lovelace", "ada", "pw"); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if len(kasm.names) != 1 {
		t.Fatalf("create calls = %d", len(kasm.names))
	}
	if kasm.names[0] != [2]string{"Ada Mary", "Lovelace"} {
		t.Fatalf("name split = %v", kasm.names[0])
	}
	if len(events.events) != 1 || events.events[0].Type != "kasm.user_created" {
		t.Fatalf("expected kasm.user_created event, got %+v", events.events)
	}
}

func TestCreateUser_SingleTokenName(t *testing.T) {
	kasm := &clientFake{}
	svc := provision.NewService(kasm, nil)

	if err := svc.CreateUser(context.Background(), "Madonna", "mdna", "pw"); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if kasm.names[0] != [2]string{"", "Madonna"} {
		t.Fatalf("name split = %v", kasm.names[0])
	}
}

func TestCreateUser_AuthFailureStopsFlow(t *testing.T) {
	kasm := &clientFake{authErr: domain.Upstream("failed to authenticate", 401)}
	svc := provision.NewService(kasm, nil)

	err := svc.CreateUser(context.Background(), "Ada Lovelace", "ada", "pw")
	if err == nil {
		t.Fatalf("expected auth error")
	}
	if len(kasm.created) != 0 {
		t.Fatalf("create must not run after failed auth")
	}
}

func TestDeleteUser(t *testing.T) {
	kasm := &clientFake{users: []provision.User{{ID: "k-9", Username: "Bob"}}}
	events := &eventBusFake{}
	svc := provision.NewService(kasm, events)

	if err := svc.DeleteUser(context.Background(), "bob"); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if len(kasm.deleted) != 1 || kasm.deleted[0] != "k-9" {
		t.Fatalf("deleted = %v", kasm.deleted)
	}
}

func TestDeleteUser_NotFound(t *testing.T) {
	kasm := &clientFake{}
	svc := provision.NewService(kasm, nil)

	err := svc.DeleteUser(context.Background(), "ghost")
	var de *domain.DomainError
	if err == nil || !errors.As(err, &de) || de.Code != domain.ErrorCodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestUpdateGroup_AlreadyMemberIsNoOp(t *testing.T) {
	kasm := &clientFake{
		users:      []provision.User{{ID: "k-1", Username: "bob"}},
		groups:     []provision.Group{{ID: "g-1", Name: "students"}},
		userGroups: map[string][]provision.Group{"k-1": {{ID: "g-1", Name: "students"}}},
	}
	events := &eventBusFake{}
	svc := provision.NewService(kasm, events)

	if err := svc.UpdateGroup(context.Background(), "bob", "students"); err != nil {
		t.Fatalf("UpdateGroup: %v", err)
	}
	if len(kasm.added) != 0 {
		t.Fatalf("no mutation expected for an existing member, got %v", kasm.added)
	}
	if len(events.events) != 0 {
		t.Fatalf("no audit event expected for a no-op")
	}
}

func TestUpdateGroup_AddsMembership(t *testing.T) {
	kasm := &clientFake{
		users:  []provision.User{{ID: "k-1", Username: "bob"}},
		groups: []provision.Group{{ID: "g-1", Name: "students"}, {ID: "g-2", Name: "staff"}},
	}
	svc := provision.NewService(kasm, nil)

	if err := svc.UpdateGroup(context.Background(), "bob", "staff"); err != nil {
		t.Fatalf("UpdateGroup: %v", err)
	}
	if len(kasm.added) != 1 || kasm.added[0] != [2]string{"k-1", "g-2"} {
		t.Fatalf("added = %v", kasm.added)
	}
}

func TestUpdateGroup_UnknownGroup(t *testing.T) {
	kasm := &clientFake{users: []provision.User{{ID: "k-1", Username: "bob"}}}
	svc := provision.NewService(kasm, nil)

	err := svc.UpdateGroup(context.Background(), "bob", "wizards")
	var de *domain.DomainError
	if err == nil || !errors.As(err, &de) || de.Code != domain.ErrorCodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
	if len(kasm.added) != 0 {
		t.Fatalf("no mutation expected, got %v", kasm.added)
	}
}

func TestUpdatePassword(t *testing.T) {
	kasm := &clientFake{users: []provision.User{{ID: "k-1", Username: "Bob"}}}
	events := &eventBusFake{}
	svc := provision.NewService(kasm, events)

	if err := svc.UpdatePassword(context.Background(), "bob", "s3cret"); err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}
	if len(kasm.password) != 1 || kasm.password[0] != [2]string{"k-1", "s3cret"} {
		t.Fatalf("password updates = %v", kasm.password)
	}
	if len(events.events) != 1 || events.events[0].Type != "kasm.password_updated" {
		t.Fatalf("expected kasm.password_updated event, got %+v", events.events)
	}
	if _, ok := events.events[0].Payload["password"]; ok {
		t.Fatalf("audit event must not carry the password")
	}
}
