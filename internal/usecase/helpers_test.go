package usecase

import (
	"context"
	"testing"
	"time"

	"equipment-rental/internal/data/entity"
	"equipment-rental/internal/data/repository"
	"equipment-rental/internal/data/repository/memory"
	"equipment-rental/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) (*Service, *repository.Repository) {
	t.Helper()

	repo := memory.NewRepository(zap.NewNop())
	config := &utils.Config{
		Barcode: utils.BarcodeConfig{SequenceWidth: 9, ChecksumWidth: 2},
	}
	return NewService(repo, config, zap.NewNop()), repo
}

func seedClient(t *testing.T, repo *repository.Repository) *entity.Client {
	t.Helper()

	client := &entity.Client{
		Base:  entity.NewBase(),
		Name:  "Studio North",
		Email: "rentals@studionorth.test",
	}
	require.NoError(t, repo.Client.Create(context.Background(), client))
	return client
}

func seedCategory(t *testing.T, repo *repository.Repository) *entity.Category {
	t.Helper()

	category := &entity.Category{Name: "Cameras"}
	category.ID = uuid.New()
	category.CreatedAt = time.Now()
	category.UpdatedAt = category.CreatedAt
	require.NoError(t, repo.Category.Create(context.Background(), category))
	return category
}

func seedProject(t *testing.T, repo *repository.Repository, clientID uuid.UUID) *entity.Project {
	t.Helper()

	project := &entity.Project{
		Base:     entity.NewBase(),
		ClientID: clientID,
		Name:     "Winter Shoot",
	}
	require.NoError(t, repo.Project.Create(context.Background(), project))
	return project
}

// seedEquipment inserts a serialized, Available unit. Pass serial "" for a
// consumable.
func seedEquipment(t *testing.T, repo *repository.Repository, categoryID uuid.UUID, serial string) *entity.Equipment {
	t.Helper()

	equipment := &entity.Equipment{
		Base:       entity.NewBase(),
		CategoryID: categoryID,
		Name:       "Camera Body",
		DailyRate:  decimal.NewFromInt(120),
		Status:     entity.EquipmentStatusAvailable,
	}
	if serial != "" {
		equipment.SerialNumber = &serial
	}
	// Barcodes are unique in the store; derive one from the id.
	equipment.Barcode = equipment.ID.String()
	require.NoError(t, repo.Equipment.Create(context.Background(), equipment))
	return equipment
}

func day(d int) time.Time {
	return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
}

func dayStr(d int) string {
	return day(d).Format(time.RFC3339)
}
