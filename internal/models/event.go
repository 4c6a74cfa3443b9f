package models

import "github.com/shopspring/decimal"

// ImportEvent is the outcome stream of one import run. Any number of
// Progress events precede exactly one terminal Success or Failure.
type ImportEvent interface {
	importEvent()
}

// Progress reports that the run has processed Current of Total rows.
type Progress struct {
	Current int
	Total   int
	Message string
}

// Success terminates a run that reached the end of its input.
type Success struct {
	Imported    int
	Skipped     int
	TotalAmount decimal.Decimal
}

// Failure terminates a run that could not be completed. Row-level parse
// failures never produce a Failure; only run-level errors do.
type Failure struct {
	Message string
	Cause   error
}

func (Progress) importEvent() {}
func (Success) importEvent()  {}
func (Failure) importEvent()  {}
