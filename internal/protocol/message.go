// Package protocol defines the wire format spoken between stations and the
// central server: a 4-byte little-endian length prefix followed by a flat
// UTF-8 JSON object. Both directions use the same framing, one request
// outstanding at a time per connection.
package protocol

// Action identifies a request on the wire. The JSON strings are fixed; an
// unrecognized value is answered with StatusError / "Unknown Action" rather
// than closing the connection.
type Action string

const (
	ActionLogin            Action = "LOGIN"
	ActionFetchActiveUsers Action = "FETCH_ACTIVE_USERS"
	ActionFetchAllUsers    Action = "FETCH_ALL_USERS"
	ActionDeductTime       Action = "DEDUCT_TIME"
	ActionAddTime          Action = "ADD_TIME"
	ActionUpdateFace       Action = "UPDATE_FACE"
	ActionUpdateProfile    Action = "UPDATE_PROFILE"
	ActionCreateUser       Action = "CREATE_USER"
	ActionDeleteUser       Action = "DELETE_USER"
	ActionRegisterStation  Action = "REGISTER_STATION"
)

// Status is the outcome field of a response envelope.
type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusFail    Status = "FAIL"
	StatusDenied  Status = "DENIED"
	StatusError   Status = "ERROR"
	StatusFailure Status = "FAILURE"
)

// Gallery is a user's set of stored biometric feature vectors, one per
// captured pose.
type Gallery [][]float64

// Request is the flat request envelope. Only the fields relevant to the
// action are populated; the rest are omitted from the JSON.
type Request struct {
	Action        Action  `json:"action"`
	Username      string  `json:"username,omitempty"`
	Password      string  `json:"password,omitempty"`
	StationID     string  `json:"station_id,omitempty"`
	StationName   string  `json:"station_name,omitempty"`
	Seconds       float64 `json:"seconds,omitempty"`
	Minutes       float64 `json:"minutes,omitempty"`
	FaceData      Gallery `json:"face_data,omitempty"`
	Field         string  `json:"field,omitempty"`
	Value         string  `json:"value,omitempty"`
	FullName      string  `json:"full_name,omitempty"`
	Role          string  `json:"role,omitempty"`
	RequesterRole string  `json:"requester_role,omitempty"`

	// Token is an optional server-issued session token. Requests carrying a
	// valid token are authorized by the role embedded in it instead of the
	// caller-asserted RequesterRole. Legacy untokened requests keep the
	// original trust model.
	Token string `json:"token,omitempty"`
}

// UserInfo is the user record shape carried by roster-returning responses.
type UserInfo struct {
	Username     string  `json:"username"`
	Role         string  `json:"role"`
	FullName     string  `json:"full_name"`
	TimeBalance  float64 `json:"time_balance"`
	FaceEncoding Gallery `json:"face_encoding"`
}

// Response is the flat response envelope.
type Response struct {
	Status       Status     `json:"status"`
	Message      string     `json:"message,omitempty"`
	Username     string     `json:"username,omitempty"`
	Role         string     `json:"role,omitempty"`
	TimeBalance  float64    `json:"time_balance,omitempty"`
	FaceEncoding Gallery    `json:"face_encoding,omitempty"`
	Users        []UserInfo `json:"users,omitempty"`
	Token        string     `json:"token,omitempty"`
}
