// Package service provides the application-level task operations: payload
// validation, the ownership guard, and the orchestration that turns store
// results into the service's uniform error taxonomy. It is the single entry
// point consumed by the API handlers.
package service
