package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"TidyElephant/internal/model"
	"TidyElephant/pkg/errors"
)

func setupOnboardingDB(t *testing.T) *OnboardingRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.OnboardingStep{}))

	return NewOnboardingRepo(db)
}

func countByStatus(t *testing.T, steps []model.OnboardingStep, status model.StepStatus) int {
	t.Helper()
	n := 0
	for _, s := range steps {
		if s.Status == status {
			n++
		}
	}
	return n
}

func TestInitializeSteps(t *testing.T) {
	ctx := context.Background()
	repo := setupOnboardingDB(t)

	require.NoError(t, repo.InitializeSteps(ctx, 1))

	steps, err := repo.ListSteps(ctx, 1)
	require.NoError(t, err)
	require.Len(t, steps, len(model.StepSequence))

	assert.Equal(t, model.StepBuildProfile, steps[0].Name)
	assert.Equal(t, model.StepStatusCurrent, steps[0].Status)
	assert.Equal(t, model.StepTrustSafety, steps[1].Name)
	assert.Equal(t, model.StepStatusUpcoming, steps[1].Status)
	assert.Equal(t, model.StepOnboardingFee, steps[2].Name)
	assert.Equal(t, model.StepStatusUpcoming, steps[2].Status)

	for _, step := range steps {
		assert.Equal(t, model.StepDescriptions[step.Name], step.Description)
		assert.NotEmpty(t, step.Description)
	}
}

func TestInitializeStepsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := setupOnboardingDB(t)

	require.NoError(t, repo.InitializeSteps(ctx, 1))
	require.NoError(t, repo.CompleteStep(ctx, 1, model.StepBuildProfile))

	// 再次初始化不能重置已推进的链
	require.NoError(t, repo.InitializeSteps(ctx, 1))

	current, err := repo.CurrentStep(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, model.StepTrustSafety, current.Name)
}

func TestCompleteStepAdvances(t *testing.T) {
	ctx := context.Background()
	repo := setupOnboardingDB(t)

	require.NoError(t, repo.InitializeSteps(ctx, 1))
	require.NoError(t, repo.CompleteStep(ctx, 1, model.StepBuildProfile))

	steps, err := repo.ListSteps(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, model.StepStatusComplete, steps[0].Status)
	assert.NotNil(t, steps[0].CompletedAt)
	assert.Equal(t, model.StepStatusCurrent, steps[1].Status)
	assert.Equal(t, model.StepStatusUpcoming, steps[2].Status)
	assert.Equal(t, 1, countByStatus(t, steps, model.StepStatusCurrent))
}

func TestCompleteStepRejectsOutOfOrder(t *testing.T) {
	ctx := context.Background()
	repo := setupOnboardingDB(t)

	require.NoError(t, repo.InitializeSteps(ctx, 1))

	err := repo.CompleteStep(ctx, 1, model.StepOnboardingFee)
	assert.Equal(t, errors.OnboardingStepInvalid, err)

	// 失败的推进不能改动链
	steps, listErr := repo.ListSteps(ctx, 1)
	require.NoError(t, listErr)
	assert.Equal(t, model.StepStatusCurrent, steps[0].Status)
	assert.Equal(t, 1, countByStatus(t, steps, model.StepStatusCurrent))
}

func TestCompleteFullChain(t *testing.T) {
	ctx := context.Background()
	repo := setupOnboardingDB(t)

	require.NoError(t, repo.InitializeSteps(ctx, 1))
	for _, name := range model.StepSequence {
		require.NoError(t, repo.CompleteStep(ctx, 1, name))
	}

	steps, err := repo.ListSteps(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, len(model.StepSequence), countByStatus(t, steps, model.StepStatusComplete))
	assert.Equal(t, 0, countByStatus(t, steps, model.StepStatusCurrent))

	_, err = repo.CurrentStep(ctx, 1)
	assert.Equal(t, errors.OnboardingFlowComplete, err)

	err = repo.CompleteStep(ctx, 1, model.StepBuildProfile)
	assert.Equal(t, errors.OnboardingFlowComplete, err)
}

func TestStepsIsolatedPerUser(t *testing.T) {
	ctx := context.Background()
	repo := setupOnboardingDB(t)

	require.NoError(t, repo.InitializeSteps(ctx, 1))
	require.NoError(t, repo.InitializeSteps(ctx, 2))
	require.NoError(t, repo.CompleteStep(ctx, 1, model.StepBuildProfile))

	current, err := repo.CurrentStep(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, model.StepBuildProfile, current.Name)
}
