package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/clientvault/clientvault/internal/models"
)

// PostgresActivityRepository persists session-log activity records: one row
// per user name, with downloaded-file entries as child rows.
type PostgresActivityRepository struct {
	DB *sqlx.DB
}

// NewPostgresActivityRepository creates a repository over the given handle.
func NewPostgresActivityRepository(db *sqlx.DB) *PostgresActivityRepository {
	return &PostgresActivityRepository{DB: db}
}

// FindByUserName returns the user's activity record with downloads loaded,
// newest first, or ErrNotFound when no record exists yet.
func (r *PostgresActivityRepository) FindByUserName(ctx context.Context, userName string) (*models.Activity, error) {
	var a models.Activity
	err := r.DB.GetContext(ctx, &a, `SELECT id, user_name FROM activities WHERE user_name = $1`, userName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select activity: %w", err)
	}
	if err := r.loadDownloads(ctx, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts an empty activity record for the user name. The unique
// constraint on user_name keeps the one-record-per-user invariant even under
// concurrent creates; a conflicting insert returns the existing record.
func (r *PostgresActivityRepository) Create(ctx context.Context, userName string) (*models.Activity, error) {
	a := models.Activity{ID: uuid.NewString(), UserName: userName, Downloads: []models.Download{}}
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO activities (id, user_name) VALUES ($1, $2) ON CONFLICT (user_name) DO NOTHING
	`, a.ID, a.UserName)
	if err != nil {
		return nil, fmt.Errorf("insert activity: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return r.FindByUserName(ctx, userName)
	}
	return &a, nil
}

// AppendDownload adds a downloaded-file entry to an existing record.
func (r *PostgresActivityRepository) AppendDownload(ctx context.Context, activityID string, d models.Download) (*models.Download, error) {
	d.ID = uuid.NewString()
	err := r.DB.QueryRowxContext(ctx, `
		INSERT INTO activity_downloads (id, activity_id, client_name, file_name)
		VALUES ($1, $2, $3, $4) RETURNING download_time
	`, d.ID, activityID, d.ClientName, d.FileName).Scan(&d.DownloadTime)
	if err != nil {
		return nil, fmt.Errorf("insert download: %w", err)
	}
	return &d, nil
}

// GetAll returns every activity record with downloads loaded, in one joined
// query. Records are ordered by their most recent download, newest first;
// records with no downloads sort last. Downloads within a record come back
// newest first.
func (r *PostgresActivityRepository) GetAll(ctx context.Context) ([]models.Activity, error) {
	rows, err := r.DB.QueryxContext(ctx, `
		SELECT a.id, a.user_name, d.id AS download_id, d.client_name, d.file_name, d.download_time
		FROM activities a
		LEFT JOIN activity_downloads d ON d.activity_id = a.id
		ORDER BY (SELECT MAX(download_time) FROM activity_downloads WHERE activity_id = a.id) DESC NULLS LAST,
			a.id, d.download_time DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("select activities: %w", err)
	}
	defer rows.Close()

	var activities []models.Activity
	for rows.Next() {
		var (
			id, userName             string
			downloadID, client, file sql.NullString
			downloadTime             sql.NullTime
		)
		if err := rows.Scan(&id, &userName, &downloadID, &client, &file, &downloadTime); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		if len(activities) == 0 || activities[len(activities)-1].ID != id {
			activities = append(activities, models.Activity{ID: id, UserName: userName, Downloads: []models.Download{}})
		}
		if downloadID.Valid {
			cur := &activities[len(activities)-1]
			cur.Downloads = append(cur.Downloads, models.Download{
				ID:           downloadID.String,
				ClientName:   client.String,
				FileName:     file.String,
				DownloadTime: downloadTime.Time,
			})
		}
	}
	return activities, rows.Err()
}

func (r *PostgresActivityRepository) loadDownloads(ctx context.Context, a *models.Activity) error {
	a.Downloads = []models.Download{}
	err := r.DB.SelectContext(ctx, &a.Downloads, `
		SELECT id, client_name, file_name, download_time
		FROM activity_downloads WHERE activity_id = $1
		ORDER BY download_time DESC
	`, a.ID)
	if err != nil {
		return fmt.Errorf("select downloads: %w", err)
	}
	return nil
}
