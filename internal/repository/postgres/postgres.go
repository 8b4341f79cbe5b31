package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/vitalsync/healthmon-api/internal/repository"
)

type accountRepository struct {
	db *sqlx.DB
}

type metricRepository struct {
	db *sqlx.DB
}

type recommendationRepository struct {
	db *sqlx.DB
}

type reminderRepository struct {
	db *sqlx.DB
}

type careRepository struct {
	db *sqlx.DB
}

func NewAccountRepository(db *sqlx.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

func NewMetricRepository(db *sqlx.DB) repository.MetricRepository {
	return &metricRepository{db: db}
}

func NewRecommendationRepository(db *sqlx.DB) repository.RecommendationRepository {
	return &recommendationRepository{db: db}
}

func NewReminderRepository(db *sqlx.DB) repository.ReminderRepository {
	return &reminderRepository{db: db}
}

func NewCareRepository(db *sqlx.DB) repository.CareRepository {
	return &careRepository{db: db}
}
