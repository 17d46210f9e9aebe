// Package model holds the records stored in the fellows and posts tables.
//
// JSON field names follow the column names, which is what API clients see.
package model
