// Package types defines the migration records, plan and result types, and
// standard errors shared by the scanner, the state store, and the creators.
package types
