// Package netclient is the station's connection handle to the central
// server: one persistent TCP connection, one request outstanding at a time,
// explicit connect/close lifecycle with no implicit reconnection.
package netclient

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/common"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/logging"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/protocol"
)

type Client struct {
	address string
	timeout time.Duration
	logger  logging.Logger

	mu   sync.Mutex
	conn net.Conn

	// session credentials captured from the last successful LOGIN and
	// attached to subsequent privileged requests.
	token         string
	requesterRole string
}

func New(address string, timeout time.Duration, logger logging.Logger) *Client {
	return &Client{
		address: address,
		timeout: timeout,
		logger:  logger.With("module", "netclient"),
	}
}

// Connect dials the server once. The caller owns the lifecycle; a failed
// call leaves the client disconnected.
func (c *Client) Connect(ctx context.Context) error {
	dialer := &net.Dialer{Timeout: c.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", c.address)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrServerUnreachable, err)
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	c.logger.Info(ctx, "connected to server", "address", c.address)
	return nil
}

// ConnectWithRetry dials with bounded exponential backoff. Used at station
// startup only; mid-session failures surface to the caller instead of
// reconnecting behind its back.
func (c *Client) ConnectWithRetry(ctx context.Context, maxAttempts uint64) error {
	backoff := retry.WithMaxRetries(maxAttempts, retry.NewExponential(time.Second))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := c.Connect(ctx); err != nil {
			c.logger.Warn(ctx, "connect failed, retrying", "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

// send performs one request/response exchange under a deadline. The mutex
// serializes exchanges: the protocol allows a single request in flight.
func (c *Client) send(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil, common.ErrNotConnected
	}

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := c.conn.SetDeadline(deadline); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrServerUnreachable, err)
	}
	defer c.conn.SetDeadline(time.Time{})

	if err := protocol.Encode(c.conn, req); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrServerUnreachable, err)
	}

	resp := &protocol.Response{}
	if err := protocol.Decode(c.conn, resp); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrServerUnreachable, err)
	}

	return resp, nil
}

// Login authenticates against the server and, on success, remembers the
// session token and role for later privileged calls.
func (c *Client) Login(ctx context.Context, username, password, stationID string) (*protocol.Response, error) {
	resp, err := c.send(ctx, &protocol.Request{
		Action:    protocol.ActionLogin,
		Username:  username,
		Password:  password,
		StationID: stationID,
	})
	if err != nil {
		return nil, err
	}

	if resp.Status != protocol.StatusSuccess {
		return resp, nil
	}

	c.mu.Lock()
	c.token = resp.Token
	c.requesterRole = resp.Role
	c.mu.Unlock()

	return resp, nil
}

// Logout forgets the session credentials held by the client.
func (c *Client) Logout() {
	c.mu.Lock()
	c.token = ""
	c.requesterRole = ""
	c.mu.Unlock()
}

func (c *Client) FetchActiveUsers(ctx context.Context) ([]protocol.UserInfo, error) {
	resp, err := c.send(ctx, &protocol.Request{Action: protocol.ActionFetchActiveUsers})
	if err != nil {
		return nil, err
	}
	if resp.Status != protocol.StatusSuccess {
		return nil, fmt.Errorf("fetch active users: %s", resp.Message)
	}
	return resp.Users, nil
}

func (c *Client) FetchAllUsers(ctx context.Context) ([]protocol.UserInfo, error) {
	resp, err := c.send(ctx, &protocol.Request{Action: protocol.ActionFetchAllUsers})
	if err != nil {
		return nil, err
	}
	if resp.Status != protocol.StatusSuccess {
		return nil, fmt.Errorf("fetch all users: %s", resp.Message)
	}
	return resp.Users, nil
}

// DeductTime reports consumed seconds. A transport failure means the server
// saw nothing; the caller keeps the unsynced interval and retries later.
func (c *Client) DeductTime(ctx context.Context, username string, seconds float64) error {
	resp, err := c.send(ctx, &protocol.Request{
		Action:   protocol.ActionDeductTime,
		Username: username,
		Seconds:  seconds,
	})
	if err != nil {
		return err
	}
	if resp.Status != protocol.StatusSuccess {
		return fmt.Errorf("deduct time: %s", resp.Message)
	}
	return nil
}

func (c *Client) AddTime(ctx context.Context, username string, minutes float64) error {
	resp, err := c.send(ctx, &protocol.Request{
		Action:   protocol.ActionAddTime,
		Username: username,
		Minutes:  minutes,
	})
	if err != nil {
		return err
	}
	if resp.Status != protocol.StatusSuccess {
		return fmt.Errorf("add time: %s", resp.Message)
	}
	return nil
}

// UpdateFace replaces the user's stored gallery; the server re-checks the
// password before accepting it.
func (c *Client) UpdateFace(ctx context.Context, username, password string, gallery protocol.Gallery) error {
	resp, err := c.send(ctx, &protocol.Request{
		Action:   protocol.ActionUpdateFace,
		Username: username,
		Password: password,
		FaceData: gallery,
	})
	if err != nil {
		return err
	}
	if resp.Status != protocol.StatusSuccess {
		return fmt.Errorf("update face: %s", resp.Message)
	}
	return nil
}

func (c *Client) UpdateProfile(ctx context.Context, username, field, value string) error {
	resp, err := c.send(ctx, &protocol.Request{
		Action:   protocol.ActionUpdateProfile,
		Username: username,
		Field:    field,
		Value:    value,
	})
	if err != nil {
		return err
	}
	if resp.Status != protocol.StatusSuccess {
		return fmt.Errorf("update profile: %s", resp.Message)
	}
	return nil
}

func (c *Client) CreateUser(ctx context.Context, username, password, fullName, role string) error {
	resp, err := c.send(ctx, c.privileged(&protocol.Request{
		Action:   protocol.ActionCreateUser,
		Username: username,
		Password: password,
		FullName: fullName,
		Role:     role,
	}))
	if err != nil {
		return err
	}
	if resp.Status != protocol.StatusSuccess {
		return fmt.Errorf("create user: %s", resp.Message)
	}
	return nil
}

func (c *Client) DeleteUser(ctx context.Context, username string) error {
	resp, err := c.send(ctx, c.privileged(&protocol.Request{
		Action:   protocol.ActionDeleteUser,
		Username: username,
	}))
	if err != nil {
		return err
	}
	if resp.Status != protocol.StatusSuccess {
		return fmt.Errorf("delete user: %s", resp.Message)
	}
	return nil
}

func (c *Client) RegisterStation(ctx context.Context, id, name string) error {
	resp, err := c.send(ctx, c.privileged(&protocol.Request{
		Action:      protocol.ActionRegisterStation,
		StationID:   id,
		StationName: name,
	}))
	if err != nil {
		return err
	}
	if resp.Status != protocol.StatusSuccess {
		return fmt.Errorf("register station: %s", resp.Message)
	}
	return nil
}

// privileged stamps the stored session credentials onto a role-gated
// request. The asserted role rides along for servers running without token
// validation.
func (c *Client) privileged(req *protocol.Request) *protocol.Request {
	c.mu.Lock()
	req.Token = c.token
	req.RequesterRole = c.requesterRole
	c.mu.Unlock()
	return req
}
