package service

import (
	"context"
	"testing"
	"time"

	"github.com/Mallesh-145/job-application-tracker/internal/dto"
	"github.com/Mallesh-145/job-application-tracker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

func TestApplicationService_CreateStampsAppliedDate(t *testing.T) {
	env := newTestEnv(t, nil)
	env.applications.now = func() time.Time { return fixedNow }
	ctx := context.Background()

	user := env.register(t, "alice")
	company := env.createCompany(t, user.ID, "Acme")

	applied, err := env.applications.Create(ctx, user.ID, &dto.CreateApplicationRequest{
		CompanyID: company.ID,
		JobTitle:  "Engineer",
		Status:    strPtr(models.StatusApplied),
	})
	require.NoError(t, err)
	require.NotNil(t, applied.ApplicationDate)
	assert.True(t, fixedNow.Equal(*applied.ApplicationDate))

	toApply, err := env.applications.Create(ctx, user.ID, &dto.CreateApplicationRequest{
		CompanyID: company.ID,
		JobTitle:  "Engineer II",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusToApply, toApply.Status)
	assert.Nil(t, toApply.ApplicationDate)

	explicit, err := env.applications.Create(ctx, user.ID, &dto.CreateApplicationRequest{
		CompanyID:       company.ID,
		JobTitle:        "Engineer III",
		Status:          strPtr(models.StatusApplied),
		ApplicationDate: strPtr("2024-01-02"),
	})
	require.NoError(t, err)
	require.NotNil(t, explicit.ApplicationDate)
	assert.Equal(t, "2024-01-02", explicit.ApplicationDate.Format(time.DateOnly))
}

func TestApplicationService_CreateValidation(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	company := env.createCompany(t, alice.ID, "Acme")

	_, err := env.applications.Create(ctx, alice.ID, &dto.CreateApplicationRequest{
		CompanyID: company.ID, JobTitle: "Engineer", Status: strPtr("Ghosted"),
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.applications.Create(ctx, alice.ID, &dto.CreateApplicationRequest{
		CompanyID: company.ID, JobTitle: "Engineer", ApplicationDate: strPtr("next tuesday"),
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.applications.Create(ctx, bob.ID, &dto.CreateApplicationRequest{
		CompanyID: company.ID, JobTitle: "Engineer",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestApplicationService_UpdateStatusTransitions(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	user := env.register(t, "alice")
	company := env.createCompany(t, user.ID, "Acme")
	app := env.createApplication(t, user.ID, company.ID)

	// To Apply → Applied 自动填日期
	env.applications.now = func() time.Time { return fixedNow }
	updated, err := env.applications.Update(ctx, user.ID, app.ID, &dto.UpdateApplicationRequest{
		Status: strPtr(models.StatusApplied),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.ApplicationDate)
	assert.True(t, fixedNow.Equal(*updated.ApplicationDate))

	// 已经是 Applied 且有日期，再次设置不覆盖
	env.applications.now = func() time.Time { return fixedNow.Add(48 * time.Hour) }
	updated, err = env.applications.Update(ctx, user.ID, app.ID, &dto.UpdateApplicationRequest{
		Status: strPtr(models.StatusApplied),
	})
	require.NoError(t, err)
	assert.True(t, fixedNow.Equal(*updated.ApplicationDate))

	// 其他状态变化不动日期
	updated, err = env.applications.Update(ctx, user.ID, app.ID, &dto.UpdateApplicationRequest{
		Status: strPtr(models.StatusInterviewing),
		Notes:  strPtr("phone screen booked"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusInterviewing, updated.Status)
	assert.True(t, fixedNow.Equal(*updated.ApplicationDate))
	assert.Equal(t, "Backend Engineer", updated.JobTitle)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, "phone screen booked", *updated.Notes)

	// 显式日期优先
	updated, err = env.applications.Update(ctx, user.ID, app.ID, &dto.UpdateApplicationRequest{
		Status:          strPtr(models.StatusApplied),
		ApplicationDate: strPtr("2023-12-01T10:00:00Z"),
	})
	require.NoError(t, err)
	assert.Equal(t, "2023-12-01", updated.ApplicationDate.Format(time.DateOnly))

	// 空字符串清除日期
	updated, err = env.applications.Update(ctx, user.ID, app.ID, &dto.UpdateApplicationRequest{
		ApplicationDate: strPtr(""),
	})
	require.NoError(t, err)
	assert.Nil(t, updated.ApplicationDate)

	// Applied 但没有日期时补上
	updated, err = env.applications.Update(ctx, user.ID, app.ID, &dto.UpdateApplicationRequest{
		Status: strPtr(models.StatusApplied),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.ApplicationDate)
	assert.True(t, fixedNow.Add(48*time.Hour).Equal(*updated.ApplicationDate))
}

func TestApplicationService_UpdateNotOwned(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	company := env.createCompany(t, alice.ID, "Acme")
	app := env.createApplication(t, alice.ID, company.ID)

	_, err := env.applications.Update(ctx, bob.ID, app.ID, &dto.UpdateApplicationRequest{
		Status: strPtr(models.StatusRejected),
	})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, env.applications.Delete(ctx, bob.ID, app.ID), ErrNotFound)

	got, err := env.applications.Get(ctx, alice.ID, app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusToApply, got.Status)
}

func TestParseApplicationDate(t *testing.T) {
	for _, value := range []string{
		"2024-01-02",
		"2024-01-02T15:04:05",
		"2024-01-02 15:04:05",
		"2024-01-02T15:04:05+08:00",
	} {
		date, err := parseApplicationDate(value)
		require.NoError(t, err, value)
		require.NotNil(t, date)
		assert.Equal(t, 2024, date.Year())
	}

	date, err := parseApplicationDate("  ")
	assert.NoError(t, err)
	assert.Nil(t, date)

	_, err = parseApplicationDate("02/01/2024")
	assert.ErrorIs(t, err, ErrValidation)
}
