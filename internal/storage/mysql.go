// Package storage wraps the service's stateful dependencies: MySQL records,
// Redis counters, MinIO objects and RabbitMQ events. Each component can be
// absent; handlers check for nil and keep the pipeline working without it.
package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"careerai/internal/config"
	"careerai/internal/storage/models"
)

// MySQL wraps the gorm connection and the record operations the handlers
// need.
type MySQL struct {
	db *gorm.DB
}

// NewMySQL connects, configures the pool and migrates the schema.
func NewMySQL(cfg *config.MySQLConfig) (*MySQL, error) {
	if cfg == nil {
		return nil, fmt.Errorf("mysql config is required")
	}

	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("access sql pool: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(config.GetDuration(cfg.ConnMaxLifetime, 0))

	if err := db.AutoMigrate(&models.Resume{}, &models.JobDescription{}, &models.AnalysisReport{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return &MySQL{db: db}, nil
}

// SaveResume inserts or updates a resume record.
func (m *MySQL) SaveResume(ctx context.Context, resume *models.Resume) error {
	return m.db.WithContext(ctx).Save(resume).Error
}

// GetResume loads a resume by ID.
func (m *MySQL) GetResume(ctx context.Context, id string) (*models.Resume, error) {
	var resume models.Resume
	if err := m.db.WithContext(ctx).First(&resume, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &resume, nil
}

// FindResumeByMD5 returns the existing resume with the given raw-text MD5,
// or nil when none exists.
func (m *MySQL) FindResumeByMD5(ctx context.Context, md5sum string) (*models.Resume, error) {
	var resume models.Resume
	err := m.db.WithContext(ctx).First(&resume, "raw_text_md5 = ?", md5sum).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &resume, nil
}

// SaveJobDescription inserts a job description record.
func (m *MySQL) SaveJobDescription(ctx context.Context, jd *models.JobDescription) error {
	return m.db.WithContext(ctx).Create(jd).Error
}

// SaveReport inserts an analysis or match report.
func (m *MySQL) SaveReport(ctx context.Context, report *models.AnalysisReport) error {
	return m.db.WithContext(ctx).Create(report).Error
}

// ListReportsByResume returns a resume's reports, newest first.
func (m *MySQL) ListReportsByResume(ctx context.Context, resumeID string, limit int) ([]models.AnalysisReport, error) {
	if limit <= 0 {
		limit = 20
	}
	var reports []models.AnalysisReport
	err := m.db.WithContext(ctx).
		Where("resume_id = ?", resumeID).
		Order("created_at DESC").
		Limit(limit).
		Find(&reports).Error
	return reports, err
}

// Close releases the connection pool.
func (m *MySQL) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
