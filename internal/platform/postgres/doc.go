// Package postgres contains PostgreSQL implementations of the store
// interfaces. Each store accepts a store.DBTX so it can run against
// either a *sql.DB or an open *sql.Tx, and maps driver errors to the
// store package's sentinel errors via MapError.
package postgres
