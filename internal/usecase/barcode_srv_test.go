package usecase

import (
	"context"
	"sync"
	"testing"

	"equipment-rental/internal/data/repository/memory"
	"equipment-rental/pkg/apperr"
	"equipment-rental/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newBarcodeService(sequenceWidth, checksumWidth int) BarcodeService {
	repo := memory.NewRepository(zap.NewNop())
	config := utils.BarcodeConfig{SequenceWidth: sequenceWidth, ChecksumWidth: checksumWidth}
	return NewBarcodeService(repo, config, zap.NewNop())
}

func TestBarcodeGenerate(t *testing.T) {
	svc := newBarcodeService(9, 2)
	ctx := context.Background()

	first, err := svc.Generate(ctx)
	require.NoError(t, err)
	assert.Equal(t, "00000000101", first)

	second, err := svc.Generate(ctx)
	require.NoError(t, err)
	assert.Equal(t, "00000000202", second)

	assert.True(t, svc.Validate(first))
	assert.True(t, svc.Validate(second))
}

func TestBarcodeValidate(t *testing.T) {
	svc := newBarcodeService(9, 2)

	tests := []struct {
		name string
		code string
		want bool
	}{
		{"known good", "00000012323", true},
		{"checksum off by one", "00000012324", false},
		{"corrupted prefix digit", "00000012423", false},
		{"too short", "0000012323", false},
		{"too long", "000000012323", false},
		{"letter in prefix", "0000001AB23", false},
		{"legacy category prefix", "CAM00012323", false},
		{"letter in checksum", "000000123AB", false},
		{"empty", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, svc.Validate(tc.code))
		})
	}
}

func TestBarcodeChecksumIsSequenceModulo(t *testing.T) {
	// For an all-digit prefix the positional fold reduces to the sequence
	// value modulo 10^checksumWidth.
	svc := newBarcodeService(9, 2)

	assert.True(t, svc.Validate("00000000101"))
	assert.True(t, svc.Validate("00000099999"))
	assert.True(t, svc.Validate("00000010000"))
	assert.True(t, svc.Validate("12345678989"))
}

func TestBarcodeGenerateSequenceExhausted(t *testing.T) {
	svc := newBarcodeService(1, 2)
	ctx := context.Background()

	for i := 1; i <= 9; i++ {
		code, err := svc.Generate(ctx)
		require.NoError(t, err)
		assert.Len(t, code, 3)
	}

	_, err := svc.Generate(ctx)
	require.Error(t, err)
	assert.True(t, apperr.IsBusiness(err))
}

func TestBarcodeGenerateConcurrentDistinct(t *testing.T) {
	svc := newBarcodeService(9, 2)

	const n = 64
	codes := make(chan string, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			code, err := svc.Generate(context.Background())
			assert.NoError(t, err)
			codes <- code
		}()
	}
	wg.Wait()
	close(codes)

	seen := make(map[string]struct{}, n)
	for code := range codes {
		assert.True(t, svc.Validate(code))
		_, dup := seen[code]
		assert.False(t, dup, "duplicate barcode %s", code)
		seen[code] = struct{}{}
	}
	assert.Len(t, seen, n)
}
