// Package http provides HTTP handlers and middleware for the roster API.
//
// The router exposes the following endpoints:
//   - POST /sessions: issues a session token. Body: {"email","password"}.
//     Response: {"token","expires_at"} with the token also surfaced via the
//     `X-Session-Token` header and a `session_token` cookie.
//   - DELETE /sessions/current: revokes the current session token extracted
//     from the Authorization header or session cookie.
//   - GET /clients, POST /clients, GET/PUT/DELETE /clients/{id}: client
//     management endpoints exchanging the `clientDTO` payload defined in
//     client_handler.go. Deletion requires admin privileges.
//   - PUT /clients/{id}/housekeeping: sets recurrence state from the entry
//     form "YYYY-MM-DD <number> <unit>". DELETE clears it.
//   - POST /clients/{id}/housekeeping/deferments: pushes the predicted due
//     date back by {"count","unit"}.
//   - PUT /clients/{id}/booking, DELETE /clients/{id}/booking: attach or
//     remove the client's single upcoming appointment.
//   - GET /housekeepers, POST /housekeepers, GET/PUT/DELETE
//     /housekeepers/{id}: housekeeper management endpoints exchanging the
//     `housekeeperDTO` payload defined in housekeeper_handler.go.
//   - GET /housekeepers/{id}/bookings: the housekeeper's schedule sorted
//     chronologically. POST appends a booking ({"booking":"YYYY-MM-DD am"});
//     a duplicate date and slot yields 409.
//   - DELETE /housekeepers/{id}/bookings/{position}: removes the booking at
//     the given one-based stored position.
//   - GET /leads: the overdue-client call list ordered soonest due first,
//     computed for today or for an explicit ?date=YYYY-MM-DD.
//
// Request/response DTOs live alongside their respective handlers so tests and
// documentation share the same ground truth.
package http
