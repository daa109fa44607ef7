package provision

import (
	"context"
	"strings"

	"activityservice/internal/domain"
)

type Service interface {
	CreateUser(ctx context.Context, fullName, username, password string) error
	DeleteUser(ctx context.Context, username string) error
	// UpdateGroup adds the user to the named group. Membership is
	// additive; prior groups are left untouched.
	UpdateGroup(ctx context.Context, username, groupName string) error
	UpdatePassword(ctx context.Context, username, newPassword string) error
}

type service struct {
	kasm   Client
	events domain.EventBus
}

func NewService(kasm Client, events domain.EventBus) Service {
	return &service{kasm: kasm, events: events}
}

// FindUserID resolves a username to the KASM-assigned user id. The
// match is case-insensitive, first hit wins.
func FindUserID(users []User, username string) (string, bool) {
	for _, u := range users {
		if strings.EqualFold(u.Username, username) {
			return u.ID, true
		}
	}
	return "", false
}

// splitFullName takes the last whitespace-delimited token as the last
// name and the remainder as the first name. A single-token name yields
// an empty first name.
func splitFullName(fullName string) (first, last string) {
	words := strings.Fields(fullName)
	if len(words) == 0 {
		return "", ""
	}
	return strings.Join(words[:len(words)-1], " "), words[len(words)-1]
}

func (s *service) CreateUser(ctx context.Context, fullName, username, password string) error {
	if err := s.kasm.Authenticate(ctx); err != nil {
		return err
	}

	first, last := splitFullName(fullName)
	if err := s.kasm.CreateUser(ctx, username, first, last, password); err != nil {
		return err
	}

	s.publish(ctx, "kasm.user_created", username)
	return nil
}

func (s *service) DeleteUser(ctx context.Context, username string) error {
	if err := s.kasm.Authenticate(ctx); err != nil {
		return err
	}

	userID, err := s.lookup(ctx, username)
	if err != nil {
		return err
	}

	if err := s.kasm.DeleteUser(ctx, userID); err != nil {
		return err
	}

	s.publish(ctx, "kasm.user_deleted", username)
	return nil
}

func (s *service) UpdateGroup(ctx context.Context, username, groupName string) error {
	if err := s.kasm.Authenticate(ctx); err != nil {
		return err
	}

	userID, err := s.lookup(ctx, username)
	if err != nil {
		return err
	}

	current, err := s.kasm.UserGroups(ctx, userID)
	if err != nil {
		return err
	}
	for _, g := range current {
		if g.Name == groupName {
			// Already a member, nothing to mutate.
			return nil
		}
	}

	groups, err := s.kasm.Groups(ctx)
	if err != nil {
		return err
	}

	var groupID string
	for _, g := range groups {
		if g.Name == groupName {
			groupID = g.ID
			break
		}
	}
	if groupID == "" {
		return domain.NotFound("group not found: " + groupName)
	}

	if err := s.kasm.AddUserToGroup(ctx, userID, groupID); err != nil {
		return err
	}

	s.publish(ctx, "kasm.group_added", username)
	return nil
}

func (s *service) UpdatePassword(ctx context.Context, username, newPassword string) error {
	if err := s.kasm.Authenticate(ctx); err != nil {
		return err
	}

	userID, err := s.lookup(ctx, username)
	if err != nil {
		return err
	}

	if err := s.kasm.UpdatePassword(ctx, userID, username, newPassword); err != nil {
		return err
	}

	s.publish(ctx, "kasm.password_updated", username)
	return nil
}

func (s *service) lookup(ctx context.Context, username string) (string, error) {
	users, err := s.kasm.Users(ctx)
	if err != nil {
		return "", err
	}

	userID, ok := FindUserID(users, username)
	if !ok {
		return "", domain.NotFound("user not found: " + username)
	}
	return userID, nil
}

func (s *service) publish(ctx context.Context, eventType, username string) {
	if s.events == nil {
		return
	}
	s.events.Publish(ctx, domain.Event{
		Type:    eventType,
		Payload: map[string]any{"username": username},
	})
}
