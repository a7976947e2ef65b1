package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"immoinvest/server/internal/calculator"
	"immoinvest/server/internal/models"
	"immoinvest/server/internal/portfolio"
)

func setupTestDatabase(t *testing.T) *Database {
	t.Helper()
	db, err := NewTestDB()
	require.NoError(t, err)
	require.NoError(t, MigrateSchema(db))

	d := Wrap(db, nil)
	t.Cleanup(func() { d.Close() })
	return d
}

func testPortfolio(id, userID string, created time.Time, withOutput bool) *models.Portfolio {
	input := models.PropertyInput{
		PurchasePrice:        320000,
		BrokerFeePercent:     3.57,
		NotaryFeePercent:     2,
		TransferTaxPercent:   6,
		Equity:               60000,
		InterestRate:         3.9,
		RepaymentRate:        2,
		FixedInterestPeriod:  10,
		ColdRentActual:       1150,
		NonRecoverableCosts:  90,
		MaintenanceReserve:   60,
		VacancyRiskPercent:   2,
		PersonalTaxRate:      38,
		BuildingSharePercent: 70,
		AfAType:              models.AfANeubauAb2023,
	}
	p := &models.Portfolio{
		ID:         id,
		UserID:     userID,
		Name:       "Apartment " + id,
		Address:    "Lindenstraße 5",
		PostalCode: "50674",
		CreatedAt:  created,
		UpdatedAt:  created,
		Input:      input,
	}
	if withOutput {
		output := calculator.CalculatePropertyKPIs(input)
		p.Output = &output
	}
	return p
}

func TestDatabase_PortfolioCRUD(t *testing.T) {
	ctx := context.Background()
	d := setupTestDatabase(t)
	base := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, d.Save(ctx, testPortfolio("p2", "alice", base.Add(time.Hour), true)))
	require.NoError(t, d.Save(ctx, testPortfolio("p1", "alice", base, true)))
	require.NoError(t, d.Save(ctx, testPortfolio("p3", "bob", base, false)))

	list, err := d.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "p1", list[0].ID, "ordered by creation time")
	assert.Equal(t, "p2", list[1].ID)

	got, err := d.Get(ctx, "alice", "p1")
	require.NoError(t, err)
	want := testPortfolio("p1", "alice", base, true)
	assert.Equal(t, want.Input, got.Input)
	assert.Equal(t, want.Output, got.Output)
	assert.True(t, got.CreatedAt.Equal(base))
	assert.Equal(t, "50674", got.PostalCode)

	_, err = d.Get(ctx, "bob", "p1")
	assert.ErrorIs(t, err, portfolio.ErrNotFound)

	bob, err := d.Get(ctx, "bob", "p3")
	require.NoError(t, err)
	assert.Nil(t, bob.Output)

	renamed := testPortfolio("p1", "alice", base, true)
	renamed.Name = "Renamed"
	renamed.UpdatedAt = base.Add(24 * time.Hour)
	require.NoError(t, d.Save(ctx, renamed))

	got, err = d.Get(ctx, "alice", "p1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.True(t, got.UpdatedAt.Equal(base.Add(24*time.Hour)))
	assert.True(t, got.CreatedAt.Equal(base))

	require.NoError(t, d.Delete(ctx, "alice", "p1"))
	assert.ErrorIs(t, d.Delete(ctx, "alice", "p1"), portfolio.ErrNotFound)
	assert.ErrorIs(t, d.Delete(ctx, "alice", "p3"), portfolio.ErrNotFound, "users cannot delete foreign portfolios")
}

func TestDatabase_SaveBatchAndPending(t *testing.T) {
	ctx := context.Background()
	d := setupTestDatabase(t)
	base := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)

	batch := []*models.Portfolio{
		testPortfolio("p1", "alice", base, false),
		testPortfolio("p2", "alice", base.Add(time.Minute), true),
		testPortfolio("p3", "bob", base.Add(2*time.Minute), false),
	}
	require.NoError(t, d.SaveBatch(ctx, batch))
	require.NoError(t, d.SaveBatch(ctx, nil))

	pending, err := d.ListWithoutOutput(ctx, 0)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "p1", pending[0].ID)
	assert.Equal(t, "p3", pending[1].ID)

	limited, err := d.ListWithoutOutput(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	for _, p := range pending {
		output := calculator.CalculatePropertyKPIs(p.Input)
		p.Output = &output
	}
	require.NoError(t, d.SaveBatch(ctx, pending))

	pending, err = d.ListWithoutOutput(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestDatabase_RunMigrationsIsIdempotent(t *testing.T) {
	d := setupTestDatabase(t)
	assert.NoError(t, d.RunMigrations())
	assert.NoError(t, d.RunMigrations())
}

func TestDatabase_UpdateOutputs(t *testing.T) {
	base := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	later := base.Add(time.Hour)

	tests := []struct {
		name        string
		prepare     func(t *testing.T, d *Database)
		wantWritten int
		wantRows    int
		wantOutput  bool
	}{
		{
			name:        "Unchanged portfolio is written",
			prepare:     func(t *testing.T, d *Database) {},
			wantWritten: 1,
			wantRows:    1,
			wantOutput:  true,
		},
		{
			name: "Deleted portfolio is not resurrected",
			prepare: func(t *testing.T, d *Database) {
				require.NoError(t, d.Delete(context.Background(), "alice", "p1"))
			},
		},
		{
			name: "Portfolio edited after the snapshot is kept",
			prepare: func(t *testing.T, d *Database) {
				edited := testPortfolio("p1", "alice", base, false)
				edited.Name = "Edited"
				edited.UpdatedAt = base.Add(30 * time.Minute)
				require.NoError(t, d.Save(context.Background(), edited))
			},
			wantRows: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			d := setupTestDatabase(t)

			p := testPortfolio("p1", "alice", base, false)
			require.NoError(t, d.Save(ctx, p))

			update := portfolio.NewOutputUpdate(p)
			update.Output = calculator.CalculatePropertyKPIs(p.Input)
			update.UpdatedAt = later

			tt.prepare(t, d)

			written, err := d.UpdateOutputs(ctx, []portfolio.OutputUpdate{update})
			require.NoError(t, err)
			assert.Equal(t, tt.wantWritten, written)

			list, err := d.List(ctx, "alice")
			require.NoError(t, err)
			require.Len(t, list, tt.wantRows)
			for _, got := range list {
				if tt.wantOutput {
					require.NotNil(t, got.Output)
					assert.Equal(t, update.Output, *got.Output)
					assert.True(t, got.UpdatedAt.Equal(later))
				} else {
					assert.Nil(t, got.Output)
					assert.Equal(t, "Edited", got.Name)
				}
			}
		})
	}
}
