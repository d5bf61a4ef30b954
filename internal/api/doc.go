// Package api provides the HTTP handlers for the task management API.
//
// Handlers decode and sanity-check requests, delegate all business rules to
// the service layer, and translate service errors into the uniform error
// contract: a JSON body with a safe message and trace ID, never raw backend
// error text.
package api
