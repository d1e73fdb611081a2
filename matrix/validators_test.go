// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for the matrix validators.
package matrix_test

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/symla/matrix"
)

func zeros(t *testing.T, r, c int) matrix.Matrix[*big.Rat] {
	t.Helper()
	m, err := matrix.Zeros[*big.Rat](rat, r, c)
	require.NoError(t, err)

	return m
}

// TestValidateBinary covers untyped and typed nil inputs.
func TestValidateBinary(t *testing.T) {
	t.Parallel()

	var typedNil *matrix.Dense[*big.Rat]
	tests := []struct {
		name    string
		a, b    matrix.Matrix[*big.Rat]
		wantErr error
	}{
		{"both nil", nil, nil, matrix.ErrNilMatrix},
		{"first nil", nil, zeros(t, 2, 2), matrix.ErrNilMatrix},
		{"second nil", zeros(t, 2, 2), nil, matrix.ErrNilMatrix},
		{"typed nil", zeros(t, 1, 1), typedNil, matrix.ErrNilMatrix},
		{"both set", zeros(t, 2, 2), zeros(t, 3, 1), nil},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := matrix.ValidateBinary(tc.a, tc.b)
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.Truef(t, errors.Is(err, tc.wantErr), "expected errors.Is(%v, %v)", err, tc.wantErr)
		})
	}
}

// TestValidateShapes covers matching and mismatched dimensions.
func TestValidateShapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		check   func(a, b matrix.Matrix[*big.Rat]) error
		a, b    matrix.Matrix[*big.Rat]
		wantErr error
	}{
		{"same shape ok", matrix.ValidateSameShape[*big.Rat], zeros(t, 2, 3), zeros(t, 2, 3), nil},
		{"same shape rows", matrix.ValidateSameShape[*big.Rat], zeros(t, 2, 3), zeros(t, 3, 3), matrix.ErrDimensionMismatch},
		{"same shape cols", matrix.ValidateSameShape[*big.Rat], zeros(t, 2, 3), zeros(t, 2, 4), matrix.ErrDimensionMismatch},
		{"mul ok", matrix.ValidateMulCompat[*big.Rat], zeros(t, 2, 3), zeros(t, 3, 5), nil},
		{"mul mismatch", matrix.ValidateMulCompat[*big.Rat], zeros(t, 2, 3), zeros(t, 2, 3), matrix.ErrDimensionMismatch},
		{"same rows ok", matrix.ValidateSameRows[*big.Rat], zeros(t, 4, 4), zeros(t, 4, 1), nil},
		{"same rows mismatch", matrix.ValidateSameRows[*big.Rat], zeros(t, 4, 4), zeros(t, 3, 1), matrix.ErrDimensionMismatch},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.check(tc.a, tc.b)
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

// TestValidateSquare covers square, rectangular and empty inputs.
func TestValidateSquare(t *testing.T) {
	t.Parallel()

	require.NoError(t, matrix.ValidateSquare(zeros(t, 3, 3)))
	require.NoError(t, matrix.ValidateSquare(zeros(t, 0, 0)))
	require.ErrorIs(t, matrix.ValidateSquare(zeros(t, 2, 3)), matrix.ErrNonSquare)
	require.ErrorIs(t, matrix.ValidateNotNil[*big.Rat](nil), matrix.ErrNilMatrix)
}

// TestDerivedSentinels checks that the derived errors match their parents.
func TestDerivedSentinels(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, matrix.ErrEigenIncomplete, matrix.ErrMatrixNotImplemented)
	require.ErrorIs(t, matrix.ErrUnderdetermined, matrix.ErrDimensionMismatch)
	require.ErrorIs(t, matrix.ErrOverdetermined, matrix.ErrDimensionMismatch)
}
