package screens

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/jonathan/jobpilot/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countFor(counts []types.StatusCount, status types.ApplicationStatus) int {
	for _, c := range counts {
		if c.Status == status {
			return c.Count
		}
	}
	return -1
}

func TestDashboard_Add(t *testing.T) {
	env := newTestEnv(t, &fakeGenerator{})
	d := NewDashboard(env)
	ctx := context.Background()

	before := countFor(d.StatusCounts(ctx), types.StatusApplied)
	app, err := d.Add(ctx, ApplicationInput{
		JobTitle:    "Backend Engineer",
		CompanyName: "Acme",
		DateApplied: "2024-01-10",
		Status:      "Candidatou-se",
	})
	require.NoError(t, err)
	assert.Equal(t, types.StatusApplied, app.Status)
	assert.Equal(t, "2024-01-10", app.DateApplied)

	assert.Len(t, d.Applications(ctx), 1)
	counts := d.StatusCounts(ctx)
	assert.Len(t, counts, len(types.AllStatuses()))
	assert.Equal(t, before+1, countFor(counts, types.StatusApplied))
	assert.Equal(t, 0, countFor(counts, types.StatusOffer))
}

func TestDashboard_Add_Defaults(t *testing.T) {
	d := NewDashboard(newTestEnv(t, &fakeGenerator{}))
	ctx := context.Background()

	app, err := d.Add(ctx, ApplicationInput{JobTitle: "SRE", CompanyName: "Globex"})
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", app.DateApplied)
	assert.Equal(t, types.StatusApplied, app.Status)

	app, err = d.Add(ctx, ApplicationInput{JobTitle: "SRE", CompanyName: "Initech", Status: "interviewing"})
	require.NoError(t, err)
	assert.Equal(t, types.StatusInterviewing, app.Status)

	apps := d.Applications(ctx)
	require.Len(t, apps, 2)
	assert.Equal(t, "Globex", apps[0].CompanyName, "new applications are appended")
}

func TestDashboard_Add_Validation(t *testing.T) {
	d := NewDashboard(newTestEnv(t, &fakeGenerator{}))
	ctx := context.Background()

	_, err := d.Add(ctx, ApplicationInput{CompanyName: "Acme"})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)

	_, err = d.Add(ctx, ApplicationInput{JobTitle: "Dev", CompanyName: "Acme", Status: "hired"})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "status", vErr.Field)

	_, err = d.Add(ctx, ApplicationInput{JobTitle: "Dev", CompanyName: "Acme", ReminderDate: "01/06/2024"})
	var entityErr *types.InvalidEntityError
	require.ErrorAs(t, err, &entityErr)

	assert.Empty(t, d.Applications(ctx))
}

func TestBuildReminders(t *testing.T) {
	apps := []types.Application{
		{ID: "a", ReminderDate: "2024-06-05"},
		{ID: "b"},
		{ID: "c", ReminderDate: "2024-05-30"},
		{ID: "d", ReminderDate: "2024-06-01"},
	}

	reminders := BuildReminders(apps, "2024-06-01")
	require.Len(t, reminders, 3)

	assert.Equal(t, "c", reminders[0].Application.ID)
	assert.True(t, reminders[0].Overdue)
	assert.False(t, reminders[0].Today)

	assert.Equal(t, "d", reminders[1].Application.ID)
	assert.False(t, reminders[1].Overdue)
	assert.True(t, reminders[1].Today)

	assert.Equal(t, "a", reminders[2].Application.ID)
	assert.False(t, reminders[2].Overdue)
	assert.False(t, reminders[2].Today)
}

func TestDashboard_ReminderLifecycle(t *testing.T) {
	d := NewDashboard(newTestEnv(t, &fakeGenerator{}))
	ctx := context.Background()

	app, err := d.Add(ctx, ApplicationInput{JobTitle: "Dev", CompanyName: "Acme"})
	require.NoError(t, err)

	_, err = d.SetReminder(ctx, app.ID, "2024-05-30", "ligar para o RH")
	require.NoError(t, err)
	assert.Equal(t, 1, d.NotificationCount(ctx, d.Today()))

	updated, err := d.UpdateStatus(ctx, app.ID, "Em Entrevista")
	require.NoError(t, err)
	assert.Equal(t, types.StatusInterviewing, updated.Status)
	assert.Equal(t, "2024-05-30", updated.ReminderDate, "status changes keep the reminder")

	dismissed, err := d.DismissReminder(ctx, app.ID)
	require.NoError(t, err)
	assert.Empty(t, dismissed.ReminderDate)
	assert.Empty(t, dismissed.Notes)
	assert.Empty(t, d.Reminders(ctx, d.Today()))
	assert.Equal(t, 0, d.NotificationCount(ctx, d.Today()))
}

func TestDashboard_UpdateAndDelete(t *testing.T) {
	d := NewDashboard(newTestEnv(t, &fakeGenerator{}))
	ctx := context.Background()

	app, err := d.Add(ctx, ApplicationInput{JobTitle: "Dev", CompanyName: "Acme"})
	require.NoError(t, err)

	_, err = d.UpdateStatus(ctx, app.ID, "promoted")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)

	_, err = d.UpdateStatus(ctx, "missing", "offer")
	assert.ErrorIs(t, err, ErrNotFound)

	notes := "segunda fase"
	updated, err := d.Update(ctx, app.ID, ApplicationPatch{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, types.StatusApplied, updated.Status)
	assert.Equal(t, "segunda fase", updated.Notes)

	require.NoError(t, d.Delete(ctx, app.ID))
	assert.Empty(t, d.Applications(ctx))
	assert.ErrorIs(t, d.Delete(ctx, app.ID), ErrNotFound)
}

func TestDashboard_ExportCSV(t *testing.T) {
	d := NewDashboard(newTestEnv(t, &fakeGenerator{}))
	ctx := context.Background()

	_, err := d.Add(ctx, ApplicationInput{
		JobTitle:    "Dev",
		CompanyName: `Acme "Global", Ltda`,
		DateApplied: "2024-01-10",
		Notes:       "linha 1\nlinha 2",
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, d.ExportCSV(ctx, &buf))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\ufeffID,Cargo,Empresa"))
	assert.Contains(t, out, `"Acme ""Global"", Ltda"`)
	assert.Contains(t, out, "\"linha 1\nlinha 2\"")
}
