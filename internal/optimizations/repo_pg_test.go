package optimizations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoDeleteAIByProductScopesProvenance(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectExec("DELETE FROM optimization_insights").
		WithArgs("p1", GeneratedByAI).
		WillReturnResult(sqlmock.NewResult(0, 3))

	if err := repo.DeleteAIByProduct(context.Background(), "p1"); err != nil {
		t.Fatalf("DeleteAIByProduct: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoInsertBatchRunsInTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()
	insights := []Insight{
		{ID: "i1", ProductID: "p1", StageName: "Raw Materials", RecommendationType: RecommendationTransport, ImplementationDifficulty: DifficultyMedium, GeneratedBy: GeneratedByAI, CreatedAt: now, UpdatedAt: now},
		{ID: "i2", ProductID: "p1", StageName: "Manufacturing", RecommendationType: RecommendationEnergy, ImplementationDifficulty: DifficultyHigh, GeneratedBy: GeneratedByAI, CreatedAt: now, UpdatedAt: now},
	}

	mock.ExpectBegin()
	for _, insight := range insights {
		mock.ExpectExec("INSERT INTO optimization_insights").
			WithArgs(
				insight.ID,
				insight.ProductID,
				insight.StageName,
				insight.RecommendationType,
				insight.CurrentState,
				insight.SuggestedImprovement,
				insight.CarbonReductionPercent,
				insight.CostImpactINR,
				insight.TimeImpactDays,
				insight.ImplementationDifficulty,
				insight.MaharashtraSpecificNotes,
				insight.WhyThisApproach,
				insight.RecommendationText,
				insight.GeneratedBy,
				sqlmock.AnyArg(),
				sqlmock.AnyArg(),
			).
			WillReturnResult(sqlmock.NewResult(1, 1))
	}
	mock.ExpectCommit()

	if err := repo.InsertBatch(context.Background(), insights); err != nil {
		t.Fatalf("InsertBatch: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoInsertBatchRollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()
	insights := []Insight{
		{ID: "i1", ProductID: "p1", StageName: "Raw Materials", GeneratedBy: GeneratedByAI, CreatedAt: now, UpdatedAt: now},
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO optimization_insights").
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	if err := repo.InsertBatch(context.Background(), insights); err == nil {
		t.Fatal("expected insert failure")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectQuery("SELECT (.+) FROM optimization_insights").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
