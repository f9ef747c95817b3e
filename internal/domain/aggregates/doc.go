// Package aggregates holds the error vocabulary shared by every write
// boundary (employee payroll, reference data, bookkeeping).
package aggregates
