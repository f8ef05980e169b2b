// Package csvio decodes operation rows from CSV input and encodes account
// snapshots back to CSV.
//
// The input format is a header-mapped table of
// `type,client,tx,amount` rows; the output is one
// `client,available,held,total,locked` row per account. Both sides keep
// decimal amounts at full precision.
package csvio
