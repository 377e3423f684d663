package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/careerlog/careerlog/internal/model"
)

const certificationColumns = `id, name, obtained_date, expiration_date,
	certification_number, memo, created_at, updated_at`

// InsertCertification adds a certification row to the batch.
func (t *Tx) InsertCertification(ctx context.Context, cert *model.Certification) error {
	if cert.ID == "" {
		cert.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	cert.CreatedAt = now
	cert.UpdatedAt = now

	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO certifications (`+certificationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		cert.ID, cert.Name, storedDate(cert.ObtainedDate), storedDatePtr(cert.ExpirationDate),
		cert.CertificationNumber, cert.Memo, cert.CreatedAt, cert.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting certification: %w", err)
	}
	return nil
}

// UpdateCertificationFields rewrites the editable columns of a certification.
func (t *Tx) UpdateCertificationFields(ctx context.Context, cert *model.Certification) error {
	cert.UpdatedAt = time.Now().UTC()

	result, err := t.tx.ExecContext(ctx, `
		UPDATE certifications SET
			name = ?, obtained_date = ?, expiration_date = ?,
			certification_number = ?, memo = ?, updated_at = ?
		WHERE id = ?`,
		cert.Name, storedDate(cert.ObtainedDate), storedDatePtr(cert.ExpirationDate),
		cert.CertificationNumber, cert.Memo, cert.UpdatedAt,
		cert.ID,
	)
	if err != nil {
		return fmt.Errorf("updating certification %s: %w", cert.ID, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("certification %s: %w", cert.ID, ErrNotFound)
	}
	return nil
}

// DeleteCertificationRecord removes a certification row.
func (t *Tx) DeleteCertificationRecord(ctx context.Context, id string) error {
	result, err := t.tx.ExecContext(ctx, "DELETE FROM certifications WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting certification %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("certification %s: %w", id, ErrNotFound)
	}
	return nil
}

// CreateCertification validates and inserts a certification.
func (s *SQLiteStore) CreateCertification(
	ctx context.Context,
	draft model.CertificationDraft,
) (*model.Certification, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	cert := certificationFromDraft(draft.Normalized())

	err := s.inTx(ctx, "create certification", "", func(tx *Tx) error {
		return tx.InsertCertification(ctx, cert)
	})
	if err != nil {
		return nil, err
	}
	return cert, nil
}

// UpdateCertification replaces the editable fields of a certification.
func (s *SQLiteStore) UpdateCertification(
	ctx context.Context,
	id string,
	draft model.CertificationDraft,
) (*model.Certification, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	cert := certificationFromDraft(draft.Normalized())
	cert.ID = id

	err := s.inTx(ctx, "update certification", "", func(tx *Tx) error {
		return tx.UpdateCertificationFields(ctx, cert)
	})
	if err != nil {
		return nil, err
	}
	return s.GetCertification(ctx, id)
}

// DeleteCertification removes a certification by ID.
func (s *SQLiteStore) DeleteCertification(ctx context.Context, id string) error {
	return s.inTx(ctx, "delete certification", "", func(tx *Tx) error {
		return tx.DeleteCertificationRecord(ctx, id)
	})
}

// GetCertification retrieves a single certification by ID.
func (s *SQLiteStore) GetCertification(ctx context.Context, id string) (*model.Certification, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT "+certificationColumns+" FROM certifications WHERE id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("getting certification %s: %w", id, err)
	}
	certs, err := collectCertifications(rows)
	if err != nil {
		return nil, err
	}
	if len(certs) == 0 {
		return nil, fmt.Errorf("certification %s: %w", id, ErrNotFound)
	}
	return &certs[0], nil
}

// GetCertifications returns every certification, most recently obtained
// first.
func (s *SQLiteStore) GetCertifications(ctx context.Context) ([]model.Certification, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT "+certificationColumns+" FROM certifications ORDER BY obtained_date DESC, name")
	if err != nil {
		return nil, fmt.Errorf("querying certifications: %w", err)
	}
	return collectCertifications(rows)
}

func certificationFromDraft(d model.CertificationDraft) *model.Certification {
	return &model.Certification{
		Name:                d.Name,
		ObtainedDate:        d.ObtainedDate,
		ExpirationDate:      d.ExpirationDate,
		CertificationNumber: d.CertificationNumber,
		Memo:                d.Memo,
	}
}

func collectCertifications(rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
	Close() error
}) ([]model.Certification, error) {
	var certs []model.Certification
	for rows.Next() {
		var (
			c          model.Certification
			expiration *time.Time
		)
		err := rows.Scan(
			&c.ID, &c.Name, &c.ObtainedDate, &expiration,
			&c.CertificationNumber, &c.Memo, &c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning certification row: %w", err)
		}
		c.ObtainedDate = localDate(c.ObtainedDate)
		c.ExpirationDate = localDatePtr(expiration)
		certs = append(certs, c)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	return certs, rows.Close()
}
