// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/rowtrace/matrix"
)

var errUsage = errors.New("usage")

// parseOperation reads "swap I J", "scale I K" or "add T S K" with
// 1-based rows. K may be a fraction such as -2/3.
func parseOperation(args []string) (matrix.RowOperation, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: operation kind is required", errUsage)
	}
	kind, rest := strings.ToLower(args[0]), args[1:]
	if kind == "add" {
		kind = matrix.OpAddMultiple.String()
	}
	k, err := matrix.ParseOpKind(kind)
	if err != nil {
		return nil, err
	}

	switch k {
	case matrix.OpSwap:
		if len(rest) != 2 {
			return nil, fmt.Errorf("%w: swap I J", errUsage)
		}
		i, err := parseRow(rest[0])
		if err != nil {
			return nil, err
		}
		j, err := parseRow(rest[1])
		if err != nil {
			return nil, err
		}
		return matrix.Swap{Row1: i, Row2: j}, nil
	case matrix.OpScale:
		if len(rest) != 2 {
			return nil, fmt.Errorf("%w: scale I K", errUsage)
		}
		i, err := parseRow(rest[0])
		if err != nil {
			return nil, err
		}
		s, err := parseScalar(rest[1])
		if err != nil {
			return nil, err
		}
		return matrix.Scale{Row: i, Scalar: s}, nil
	default:
		if len(rest) != 3 {
			return nil, fmt.Errorf("%w: add TARGET SOURCE K", errUsage)
		}
		t, err := parseRow(rest[0])
		if err != nil {
			return nil, err
		}
		src, err := parseRow(rest[1])
		if err != nil {
			return nil, err
		}
		s, err := parseScalar(rest[2])
		if err != nil {
			return nil, err
		}
		return matrix.AddMultiple{Target: t, Source: src, Scalar: s}, nil
	}
}

func parseRow(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(strings.ToUpper(s), "R"))
	if err != nil {
		return 0, fmt.Errorf("%w: row %q", errUsage, s)
	}

	return n - 1, nil
}

func parseScalar(s string) (float64, error) {
	if num, den, ok := strings.Cut(s, "/"); ok {
		a, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: scalar %q", errUsage, s)
		}
		b, err := strconv.ParseFloat(den, 64)
		if err != nil || b == 0 {
			return 0, fmt.Errorf("%w: scalar %q", errUsage, s)
		}
		return a / b, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: scalar %q", errUsage, s)
	}

	return v, nil
}
