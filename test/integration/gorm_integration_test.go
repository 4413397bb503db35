package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"qr-dine-be/internal/entity"
	"qr-dine-be/internal/repository/unitofwork"
	"qr-dine-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.TokenTransactionRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	// Verify Data Access (implies columns exist)
	t.Run("Check Order Repository", func(t *testing.T) {
		count, err := uow.OrderRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Order count: %d", count)
	})

	t.Run("Check Token Transaction Repository", func(t *testing.T) {
		count, err := uow.TokenTransactionRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("TokenTransaction count: %d", count)
	})

	t.Run("Check Transactional Ledger Write", func(t *testing.T) {
		userId := uuid.New()
		user := &entity.User{
			Id:          userId,
			PhoneNumber: "+62811" + uuid.New().String()[:8],
			Name:        "Integration Test User",
		}

		tokenTypeId := uuid.New()
		tokenType := &entity.TokenType{
			Id:       tokenTypeId,
			Name:     "Integration Token",
			Symbol:   "IT-" + uuid.New().String()[:8],
			IsActive: true,
		}

		// Setup DB Data
		err := uow.UserRepository().Create(context.Background(), user)
		assert.NoError(t, err)
		err = uow.TokenTypeRepository().Create(context.Background(), tokenType)
		assert.NoError(t, err)

		// Transaction Test: row lock plus ledger append must commit together
		ctx := context.Background()
		err = uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		locked, err := uow.UserRepository().FindOneForUpdate(ctx, userId)
		assert.NoError(t, err)
		assert.NotNil(t, locked)

		tx := &entity.TokenTransaction{
			Id:              uuid.New(),
			UserId:          userId,
			TokenTypeId:     tokenTypeId,
			Amount:          10,
			TransactionType: entity.TransactionTypeEarned,
			SourceType:      entity.SourceTypeManual,
			Description:     "integration test credit",
			BalanceAfter:    10,
		}
		err = uow.TokenTransactionRepository().Create(ctx, tx)
		assert.NoError(t, err)

		err = uow.Commit()
		assert.NoError(t, err)

		latest, err := uow.TokenTransactionRepository().LatestByUserAndType(context.Background(), userId, tokenTypeId)
		assert.NoError(t, err)
		if assert.NotNil(t, latest) {
			assert.Equal(t, 10, latest.BalanceAfter)
		}

		t.Log("Successfully appended ledger entry under user row lock")
	})
}
