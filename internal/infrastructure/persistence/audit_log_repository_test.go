package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/garmsource/backend/internal/domain/audit"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockAuditLogRepository creates a GormAuditLogRepository with a mocked SQL connection
func newMockAuditLogRepository(t *testing.T) (*GormAuditLogRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormAuditLogRepository(gormDB), mock, mockDB
}

func TestGormAuditLogRepository_Append(t *testing.T) {
	t.Run("inserts a new entry", func(t *testing.T) {
		repo, mock, mockDB := newMockAuditLogRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()
		entry := &audit.LogEntry{
			ID:          uuid.New(),
			ActionType:  audit.ActionOrderCreated,
			EntityType:  "order",
			EntityID:    orderID,
			OrderID:     &orderID,
			Description: "Order ORD-2024-0001 created",
			PerformedBy: "system",
			CreatedAt:   time.Now(),
		}

		mock.ExpectExec(`INSERT INTO "audit_logs"`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Append(context.Background(), entry)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormAuditLogRepository_FindRecent(t *testing.T) {
	t.Run("returns newest entries first", func(t *testing.T) {
		repo, mock, mockDB := newMockAuditLogRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"id", "action_type", "entity_type", "entity_id", "description", "created_at"}).
			AddRow(uuid.New(), "order_created", "order", uuid.New(), "Order ORD-2024-0002 created", time.Now()).
			AddRow(uuid.New(), "order_created", "order", uuid.New(), "Order ORD-2024-0001 created", time.Now().Add(-time.Hour))

		mock.ExpectQuery(`SELECT \* FROM "audit_logs" ORDER BY created_at DESC LIMIT .*`).
			WithArgs(20).
			WillReturnRows(rows)

		entries, err := repo.FindRecent(context.Background(), 20)

		assert.NoError(t, err)
		assert.Len(t, entries, 2)
		assert.Contains(t, entries[0].Description, "ORD-2024-0002")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormAuditLogRepository_Find(t *testing.T) {
	t.Run("filters by order reference", func(t *testing.T) {
		repo, mock, mockDB := newMockAuditLogRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "audit_logs" WHERE order_id = \$1 ORDER BY created_at DESC`).
			WithArgs(orderID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "action_type"}))

		entries, err := repo.Find(context.Background(), audit.Query{OrderID: &orderID})

		assert.NoError(t, err)
		assert.Empty(t, entries)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("filters by entity and action type", func(t *testing.T) {
		repo, mock, mockDB := newMockAuditLogRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "audit_logs" WHERE entity_type = \$1 AND action_type = \$2 ORDER BY created_at DESC`).
			WithArgs("order", audit.ActionPaymentReceived).
			WillReturnRows(sqlmock.NewRows([]string{"id", "action_type"}))

		_, err := repo.Find(context.Background(), audit.Query{
			EntityType: "order",
			ActionType: audit.ActionPaymentReceived,
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormAuditLogRepository_Count(t *testing.T) {
	t.Run("counts matching entries", func(t *testing.T) {
		repo, mock, mockDB := newMockAuditLogRepository(t)
		defer mockDB.Close()

		customerID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "audit_logs" WHERE customer_id = \$1`).
			WithArgs(customerID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

		count, err := repo.Count(context.Background(), audit.Query{CustomerID: &customerID})

		assert.NoError(t, err)
		assert.Equal(t, int64(4), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormAuditLogRepository_NullRefs(t *testing.T) {
	t.Run("nulls order references in place", func(t *testing.T) {
		repo, mock, mockDB := newMockAuditLogRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()

		mock.ExpectExec(`UPDATE "audit_logs" SET "order_id"=\$1 WHERE order_id = \$2`).
			WithArgs(nil, orderID).
			WillReturnResult(sqlmock.NewResult(0, 3))

		err := repo.NullOrderRefs(context.Background(), orderID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nulls customer references in place", func(t *testing.T) {
		repo, mock, mockDB := newMockAuditLogRepository(t)
		defer mockDB.Close()

		customerID := uuid.New()

		mock.ExpectExec(`UPDATE "audit_logs" SET "customer_id"=\$1 WHERE customer_id = \$2`).
			WithArgs(nil, customerID).
			WillReturnResult(sqlmock.NewResult(0, 2))

		err := repo.NullCustomerRefs(context.Background(), customerID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
