package tcp

import (
	"context"
	"errors"

	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/common"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/protocol"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/server/auth"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/server/models"
)

// route maps one decoded request to a response envelope. Statuses and
// messages mirror the established wire behavior; anything unrecognized
// falls through to "Unknown Action" without touching the gateway.
func (s *Server) route(ctx context.Context, req *protocol.Request) *protocol.Response {
	switch req.Action {

	case protocol.ActionLogin:
		return s.handleLogin(ctx, req)

	case protocol.ActionFetchActiveUsers:
		users, err := s.svc.ActiveRenters(ctx)
		if err != nil {
			return failure(protocol.StatusFail, "Database Error")
		}
		return rosterResponse(users)

	case protocol.ActionFetchAllUsers:
		users, err := s.svc.AllUsers(ctx)
		if err != nil {
			return failure(protocol.StatusFail, "Database Error")
		}
		return rosterResponse(users)

	case protocol.ActionDeductTime:
		if err := s.svc.DeductTime(ctx, req.Username, req.Seconds); err != nil {
			return failure(protocol.StatusFail, "Deduction Failed")
		}
		return &protocol.Response{Status: protocol.StatusSuccess}

	case protocol.ActionAddTime:
		if err := s.svc.AddTime(ctx, req.Username, req.Minutes); err != nil {
			return &protocol.Response{Status: protocol.StatusFailure}
		}
		return &protocol.Response{Status: protocol.StatusSuccess}

	case protocol.ActionUpdateFace:
		err := s.svc.UpdateFace(ctx, req.Username, req.Password, req.FaceData)
		if err != nil {
			if errors.Is(err, common.ErrUnauthorized) {
				return failure(protocol.StatusDenied, "Bad Password")
			}
			return failure(protocol.StatusFail, "Database Error")
		}
		return &protocol.Response{Status: protocol.StatusSuccess, Message: "Face Updated"}

	case protocol.ActionUpdateProfile:
		if err := s.svc.UpdateField(ctx, req.Username, req.Field, req.Value); err != nil {
			if errors.Is(err, common.ErrAlreadyExists) {
				return failure(protocol.StatusFail, "Value already taken")
			}
			return failure(protocol.StatusFail, "Update Failed")
		}
		return &protocol.Response{Status: protocol.StatusSuccess}

	case protocol.ActionCreateUser:
		if !s.isRootRequest(req) {
			return failure(protocol.StatusDenied, "Only Root can create users.")
		}
		if _, err := s.svc.CreateUser(ctx, req.Username, req.Password, req.FullName, req.Role); err != nil {
			if errors.Is(err, common.ErrAlreadyExists) {
				return failure(protocol.StatusFail, "User already exists")
			}
			return failure(protocol.StatusFail, err.Error())
		}
		return &protocol.Response{Status: protocol.StatusSuccess, Message: "User Created"}

	case protocol.ActionDeleteUser:
		if !s.isRootRequest(req) {
			return failure(protocol.StatusDenied, "Permission Denied")
		}
		if err := s.svc.DeleteUser(ctx, req.Username); err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return failure(protocol.StatusFail, "User not found")
			}
			return failure(protocol.StatusFail, "Database Error")
		}
		return &protocol.Response{Status: protocol.StatusSuccess}

	case protocol.ActionRegisterStation:
		if !s.isRootRequest(req) {
			return failure(protocol.StatusDenied, "Permission Denied")
		}
		if err := s.svc.RegisterStation(ctx, req.StationID, req.StationName); err != nil {
			if errors.Is(err, common.ErrAlreadyExists) {
				return failure(protocol.StatusFail, "Station already registered")
			}
			return failure(protocol.StatusFail, "Registration Failed")
		}
		return &protocol.Response{Status: protocol.StatusSuccess}

	default:
		return failure(protocol.StatusError, "Unknown Action")
	}
}

func (s *Server) handleLogin(ctx context.Context, req *protocol.Request) *protocol.Response {
	user, err := s.svc.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			return failure(protocol.StatusFail, "Invalid Username or Password")
		}
		return failure(protocol.StatusFail, "Database Error")
	}

	if req.StationID != "" {
		if err := s.svc.ActivateStation(ctx, req.StationID); err != nil {
			// losing the last-seen stamp should not block the login
			s.logger.Warn(ctx, "station activation failed", "station_id", req.StationID, "error", err)
		}
	}

	token, err := auth.GenerateToken(user.Username, user.Role, s.jwtSecret, s.tokenValidity)
	if err != nil {
		s.logger.Warn(ctx, "token generation failed", "error", err)
		token = ""
	}

	return &protocol.Response{
		Status:       protocol.StatusSuccess,
		Username:     user.Username,
		Role:         user.Role,
		TimeBalance:  user.TimeBalance,
		FaceEncoding: user.FaceEncoding,
		Token:        token,
	}
}

// isRootRequest decides whether a role-gated action may proceed. A request
// carrying a session token is judged by the role sealed into the token; a
// request without one falls back to the caller-asserted requester_role,
// preserving the legacy trust model on the wire.
func (s *Server) isRootRequest(req *protocol.Request) bool {
	if req.Token != "" {
		claims, err := auth.ParseToken(req.Token, s.jwtSecret)
		if err != nil {
			return false
		}
		return claims.Role == models.RoleRoot
	}
	return req.RequesterRole == models.RoleRoot
}

func rosterResponse(list []*models.User) *protocol.Response {
	infos := make([]protocol.UserInfo, 0, len(list))
	for _, u := range list {
		infos = append(infos, u.Info())
	}
	return &protocol.Response{Status: protocol.StatusSuccess, Users: infos}
}

func failure(status protocol.Status, message string) *protocol.Response {
	return &protocol.Response{Status: status, Message: message}
}
