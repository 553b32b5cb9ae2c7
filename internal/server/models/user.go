package models

import (
	"time"

	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/protocol"
)

// Roles. Root users administer the system and are exempt from time metering
// and presence checks on stations.
const (
	RoleRoot = "root"
	RoleUser = "user"
)

type User struct {
	ID           string
	Username     string
	PasswordHash string
	FullName     string
	Role         string
	TimeBalance  float64 // minutes
	FaceEncoding protocol.Gallery
	CreatedAt    time.Time
}

// IsAdmin reports whether the user holds the root role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleRoot
}

// Info converts the record to its wire representation. The password hash
// never leaves the server.
func (u *User) Info() protocol.UserInfo {
	return protocol.UserInfo{
		Username:     u.Username,
		Role:         u.Role,
		FullName:     u.FullName,
		TimeBalance:  u.TimeBalance,
		FaceEncoding: u.FaceEncoding,
	}
}
