package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/campus/backend/internal/domain/shared"
	"github.com/campus/backend/internal/domain/tuition"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDB creates a GORM connection backed by sqlmock
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func TestGormFeeAssignmentRepository_FindByIDForTenant(t *testing.T) {
	t.Run("finds existing assignment", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormFeeAssignmentRepository(gormDB)

		assignmentID := uuid.New()
		tenantID := uuid.New()

		rows := sqlmock.NewRows([]string{
			"id", "tenant_id", "version", "student_id", "service_id", "service_name",
			"academic_period", "gross_list_price", "net_payable", "installment_count", "status",
		}).AddRow(
			assignmentID, tenantID, 1, uuid.New(), uuid.New(), "Tuition 2025-2026",
			"2025-2026", decimal.RequireFromString("1000"), decimal.RequireFromString("1080"), 4, "ACTIVE",
		)

		mock.ExpectQuery(`SELECT \* FROM "fee_assignments" WHERE id = \$1 AND tenant_id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(assignmentID, tenantID, 1).
			WillReturnRows(rows)

		assignment, err := repo.FindByIDForTenant(context.Background(), tenantID, assignmentID)

		require.NoError(t, err)
		require.NotNil(t, assignment)
		assert.Equal(t, assignmentID, assignment.ID)
		assert.Equal(t, "Tuition 2025-2026", assignment.ServiceName)
		assert.Equal(t, tuition.AssignmentStatusActive, assignment.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns nil for missing assignment", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormFeeAssignmentRepository(gormDB)

		assignmentID := uuid.New()
		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "fee_assignments" WHERE id = \$1 AND tenant_id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(assignmentID, tenantID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		assignment, err := repo.FindByIDForTenant(context.Background(), tenantID, assignmentID)

		require.NoError(t, err)
		assert.Nil(t, assignment)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormFeeAssignmentRepository_FindActiveByStudentAndServices(t *testing.T) {
	t.Run("empty service list short-circuits", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormFeeAssignmentRepository(gormDB)

		assignments, err := repo.FindActiveByStudentAndServices(
			context.Background(), uuid.New(), uuid.New(), "2025-2026", nil)

		require.NoError(t, err)
		assert.Empty(t, assignments)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("excludes cancelled assignments in the query", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormFeeAssignmentRepository(gormDB)

		tenantID := uuid.New()
		studentID := uuid.New()
		serviceID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "tenant_id", "student_id", "service_id", "status"}).
			AddRow(uuid.New(), tenantID, studentID, serviceID, "ACTIVE")

		mock.ExpectQuery(`SELECT \* FROM "fee_assignments" WHERE tenant_id = \$1 AND student_id = \$2 AND academic_period = \$3 AND service_id IN \(\$4\) AND status <> \$5`).
			WithArgs(tenantID, studentID, "2025-2026", serviceID, tuition.AssignmentStatusCancelled).
			WillReturnRows(rows)

		assignments, err := repo.FindActiveByStudentAndServices(
			context.Background(), tenantID, studentID, "2025-2026", []uuid.UUID{serviceID})

		require.NoError(t, err)
		require.Len(t, assignments, 1)
		assert.Equal(t, serviceID, assignments[0].ServiceID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormFeeAssignmentRepository_SaveWithLock(t *testing.T) {
	t.Run("stale version yields concurrency error", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormFeeAssignmentRepository(gormDB)

		assignment := &tuition.FeeAssignment{
			TenantAggregateRoot: shared.NewTenantAggregateRoot(uuid.New()),
			StudentID:           uuid.New(),
			ServiceID:           uuid.New(),
			ServiceName:         "Tuition 2025-2026",
			AcademicPeriod:      "2025-2026",
			InstallmentCount:    1,
			Status:              tuition.AssignmentStatusCancelled,
		}
		assignment.Version = 2 // already incremented in memory

		mock.ExpectExec(`UPDATE "fee_assignments" SET .*`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SaveWithLock(context.Background(), assignment)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CONCURRENT_MODIFICATION", domainErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
