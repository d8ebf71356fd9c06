// Package sqlite stores the animal catalog in an SQLite database.
//
// The catalog lives in the animals table. Sources read any table with that
// name, applying the same column rules as the CSV loader, so databases
// produced by other tools load as long as they carry a
// personality_description column. Writers create the table through the
// embedded migrations and replace its content in one transaction.
//
// The pure Go modernc.org/sqlite driver is used, so no cgo is required.
package sqlite
