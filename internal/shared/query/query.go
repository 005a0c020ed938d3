// Package query normalizes the skip/limit/sort parameters shared by every
// listing endpoint. The same contract is enforced for authors, books and
// logs; only the sort allow-list and defaults differ per entity.
package query

import (
	"errors"
	"strconv"
	"strings"
)

var (
	ErrInvalidSkip  = errors.New("skip must be a non-negative integer")
	ErrInvalidLimit = errors.New("limit must be a positive integer (max 100)")
	ErrInvalidSort  = errors.New("invalid sort field")
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// Options carries the per-entity part of the contract.
type Options struct {
	DefaultSort string
	DefaultDesc bool
	Allowed     []string
}

// Params is the normalized result consumed by repository list operations.
type Params struct {
	Skip      int
	Limit     int
	SortField string
	Desc      bool
}

// SortDirection returns the store-level sort direction: 1 ascending,
// -1 descending.
func (p Params) SortDirection() int {
	if p.Desc {
		return -1
	}
	return 1
}

// Parse validates and normalizes raw query values. Empty strings take the
// defaults; anything malformed or outside the allow-list is a validation
// error, never a partial result.
func Parse(skip, limit, sort string, opts Options) (Params, error) {
	p := Params{
		Skip:      0,
		Limit:     defaultLimit,
		SortField: opts.DefaultSort,
		Desc:      opts.DefaultDesc,
	}

	if skip != "" {
		n, err := strconv.Atoi(skip)
		if err != nil || n < 0 {
			return Params{}, ErrInvalidSkip
		}
		p.Skip = n
	}

	if limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 1 || n > maxLimit {
			return Params{}, ErrInvalidLimit
		}
		p.Limit = n
	}

	if sort != "" {
		p.Desc = strings.HasPrefix(sort, "-")
		p.SortField = strings.TrimPrefix(sort, "-")
	}

	if !allowed(p.SortField, opts.Allowed) {
		return Params{}, ErrInvalidSort
	}

	return p, nil
}

func allowed(field string, allowList []string) bool {
	for _, f := range allowList {
		if f == field {
			return true
		}
	}
	return false
}
