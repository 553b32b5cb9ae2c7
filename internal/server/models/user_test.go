package models

import (
	"testing"

	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/protocol"
)

func TestUser_Info_OmitsPasswordHash(t *testing.T) {
	u := &User{
		ID:           "u-1",
		Username:     "alice",
		PasswordHash: "$2a$10$secret",
		FullName:     "Alice",
		Role:         RoleUser,
		TimeBalance:  12.5,
		FaceEncoding: protocol.Gallery{{0.1}},
	}

	info := u.Info()

	if info.Username != "alice" || info.Role != RoleUser || info.TimeBalance != 12.5 {
		t.Fatalf("unexpected info: %+v", info)
	}
	if len(info.FaceEncoding) != 1 {
		t.Fatalf("gallery must be carried: %+v", info)
	}
}

func TestUser_IsAdmin(t *testing.T) {
	if !(&User{Role: RoleRoot}).IsAdmin() {
		t.Fatal("root must be admin")
	}
	if (&User{Role: RoleUser}).IsAdmin() {
		t.Fatal("user must not be admin")
	}
}
