package service

import (
	"context"
	"errors"
	"testing"

	"compass-backend/internal/domain"
	"compass-backend/internal/dto"
)

func setupTestUserService() (UserService, *mockStore, *mockIdentity) {
	store, idp, r, logger := setupTestEnv()
	return NewUserService(r, idp, logger), store, idp
}

func TestUserCreate(t *testing.T) {
	svc, store, _ := setupTestUserService()
	ctx := context.Background()
	req := &dto.CreateUserRequest{
		Email: "carl@example.org", GivenName: "Carl", FamilyName: "Test",
		Password: "S3cret!pass", Role: domain.RoleParticipant,
	}

	if _, err := svc.Create(ctx, req, worker); !errors.Is(err, domain.ErrAdminOnly) {
		t.Fatalf("worker create, got %v", err)
	}
	got, err := svc.Create(ctx, req, admin)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got.UserID == "" || got.Role != domain.RoleParticipant || got.GivenName != "Carl" {
		t.Fatalf("unexpected %+v", got)
	}
	if u := store.users[got.UserID]; u == nil || u.Role != domain.RoleParticipant {
		t.Fatal("role not stored locally")
	}
	if _, err := svc.Create(ctx, req, admin); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("duplicate email, got %v", err)
	}
	bad := *req
	bad.Email, bad.Role = "dora@example.org", "OWNER"
	if _, err := svc.Create(ctx, &bad, admin); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("unknown role, got %v", err)
	}
}

func TestUserUpdate_KeepsRoleWhenEmpty(t *testing.T) {
	svc, store, idp := setupTestUserService()
	ctx := context.Background()

	got, err := svc.Update(ctx, participantID, &dto.UpdateUserRequest{GivenName: "Annie"}, admin)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.GivenName != "Annie" || got.Role != domain.RoleParticipant {
		t.Fatalf("unexpected %+v", got)
	}
	if idp.profiles[participantID].GivenName != "Annie" {
		t.Fatal("profile not patched")
	}

	got, err = svc.Update(ctx, participantID, &dto.UpdateUserRequest{Role: domain.RoleSocialWorker}, admin)
	if err != nil || got.Role != domain.RoleSocialWorker || store.users[participantID].Role != domain.RoleSocialWorker {
		t.Fatalf("role change: %v %+v", err, got)
	}
	if _, err := svc.Update(ctx, "auth0|ghost", &dto.UpdateUserRequest{}, admin); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown user, got %v", err)
	}
}

func TestUserBlockRestore(t *testing.T) {
	svc, _, idp := setupTestUserService()
	ctx := context.Background()

	got, err := svc.Block(ctx, otherID, admin)
	if err != nil || !got.Deleted || !idp.profiles[otherID].Blocked {
		t.Fatalf("block: %v %+v", err, got)
	}
	got, err = svc.Restore(ctx, otherID, admin)
	if err != nil || got.Deleted {
		t.Fatalf("restore: %v %+v", err, got)
	}
	if _, err := svc.Block(ctx, otherID, participant); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("participant block, got %v", err)
	}
}

func TestUserReads(t *testing.T) {
	svc, store, idp := setupTestUserService()
	ctx := context.Background()
	idp.profiles["auth0|stranger"] = &domain.Profile{UserID: "auth0|stranger", Email: "s@example.org"}

	got, err := svc.Get(ctx, workerID)
	if err != nil || got.Role != domain.RoleSocialWorker {
		t.Fatalf("get: %v %+v", err, got)
	}
	stranger, err := svc.Get(ctx, "auth0|stranger")
	if err != nil || stranger.Role != domain.RoleNone {
		t.Fatalf("profile without local row has no role: %v %+v", err, stranger)
	}
	if _, err := svc.Get(ctx, "auth0|ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("ghost, got %v", err)
	}

	all, err := svc.List(ctx)
	if err != nil || len(all) != len(store.users) {
		t.Fatalf("list must skip profiles without a local row: %v %d", err, len(all))
	}
	parts, err := svc.ListParticipants(ctx)
	if err != nil || len(parts) != 2 {
		t.Fatalf("participants: %v %+v", err, parts)
	}

	idp.err = domain.ErrUnavailable
	if _, err := svc.List(ctx); !errors.Is(err, domain.ErrUnavailable) {
		t.Fatalf("provider down, got %v", err)
	}
}
