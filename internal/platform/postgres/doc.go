// Package postgres implements the store interfaces against a PostgreSQL
// database using parameterized queries. Driver errors are mapped into the
// store error taxonomy at this boundary so raw backend error text never
// travels further up.
package postgres
