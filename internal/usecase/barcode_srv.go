package usecase

import (
	"context"
	"fmt"
	"strconv"

	"equipment-rental/internal/data/repository"
	"equipment-rental/pkg/apperr"
	"equipment-rental/pkg/utils"

	"go.uber.org/zap"
)

type BarcodeService interface {
	// Generate mints the next barcode: zero-padded sequence digits followed
	// by check digits. The underlying counter bump is a single atomic
	// increment-and-return, never a read followed by a write.
	Generate(ctx context.Context) (string, error)

	// Validate re-splits the fixed-width segments and recomputes the
	// checksum. Malformed input of any length returns false, never an error.
	Validate(code string) bool
}

type barcodeService struct {
	repo          *repository.Repository
	sequenceWidth int
	checksumWidth int
	log           *zap.Logger
}

func NewBarcodeService(repo *repository.Repository, config utils.BarcodeConfig, log *zap.Logger) BarcodeService {
	sequenceWidth := config.SequenceWidth
	if sequenceWidth <= 0 {
		sequenceWidth = 9
	}
	checksumWidth := config.ChecksumWidth
	if checksumWidth <= 0 {
		checksumWidth = 2
	}

	return &barcodeService{
		repo:          repo,
		sequenceWidth: sequenceWidth,
		checksumWidth: checksumWidth,
		log:           log.With(zap.String("service", "barcode")),
	}
}

func (s *barcodeService) Generate(ctx context.Context) (string, error) {
	seq, err := s.repo.Sequence.Next(ctx)
	if err != nil {
		return "", err
	}

	prefix := fmt.Sprintf("%0*d", s.sequenceWidth, seq)
	if len(prefix) > s.sequenceWidth {
		return "", apperr.Business("barcode sequence exhausted at %d", seq)
	}

	code := prefix + fmt.Sprintf("%0*d", s.checksumWidth, checksum(prefix, s.checksumWidth))

	s.log.Debug("Barcode generated",
		zap.Int64("sequence", seq),
		zap.String("barcode", code),
	)

	return code, nil
}

func (s *barcodeService) Validate(code string) bool {
	if len(code) != s.sequenceWidth+s.checksumWidth {
		return false
	}

	prefix := code[:s.sequenceWidth]
	for _, r := range prefix {
		if r < '0' || r > '9' {
			return false
		}
	}

	got, err := strconv.Atoi(code[s.sequenceWidth:])
	if err != nil {
		return false
	}

	return got == checksum(prefix, s.checksumWidth)
}

// checksum folds the all-digit prefix into width check digits, accumulated
// positionally and reduced modulo 10^width, which for this format is the
// sequence value modulo 10^width. The caller guarantees the prefix is
// digits only.
func checksum(prefix string, width int) int {
	mod := 1
	for i := 0; i < width; i++ {
		mod *= 10
	}

	acc := 0
	for _, r := range prefix {
		acc = (acc*10 + int(r-'0')) % mod
	}

	return acc
}
