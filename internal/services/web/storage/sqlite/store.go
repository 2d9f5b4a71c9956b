package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/galien/internal/participant"
	"github.com/louisbranch/galien/internal/participant/filter"
	"github.com/louisbranch/galien/internal/platform/id"
	sqlitemigrate "github.com/louisbranch/galien/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/galien/internal/registration"
	webstorage "github.com/louisbranch/galien/internal/services/web/storage"
	"github.com/louisbranch/galien/internal/services/web/storage/sqlite/migrations"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	_ "modernc.org/sqlite"
)

var _ webstorage.Store = (*Store)(nil)

// Store provides SQLite-backed persistence for registrations and participants.
type Store struct {
	sqlDB  *sql.DB
	newID  func() (string, error)
	now    func() time.Time
	tracer trace.Tracer
}

// Open opens and migrates a web SQLite store.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{
		sqlDB:  sqlDB,
		newID:  id.NewID,
		now:    time.Now,
		tracer: otel.Tracer("galien/web/storage"),
	}
	if err := store.runMigrations(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) runMigrations() error {
	_, err := sqlitemigrate.Apply(context.Background(), s.sqlDB, migrations.FS, "")
	return err
}

func (s *Store) configured() error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

func (s *Store) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "storage."+name, trace.WithAttributes(attrs...))
}

func endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, participant.ErrNotFound) && !errors.Is(err, registration.ErrDraftNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// draftRecord is the JSON shape of a stored application.
type draftRecord struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Organization  string `json:"organization"`
	Country       string `json:"country"`
	Type          string `json:"type"`
	AcceptedTerms bool   `json:"accepted_terms"`
}

func encodeApplication(app registration.Application) ([]byte, error) {
	return json.Marshal(draftRecord{
		FirstName:     app.FirstName,
		LastName:      app.LastName,
		Email:         app.Email,
		Phone:         app.Phone,
		Organization:  app.Organization,
		Country:       app.Country,
		Type:          string(app.Type),
		AcceptedTerms: app.AcceptedTerms,
	})
}

func decodeApplication(payload []byte) (registration.Application, error) {
	var record draftRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return registration.Application{}, err
	}
	return registration.Application{
		FirstName:     record.FirstName,
		LastName:      record.LastName,
		Email:         record.Email,
		Phone:         record.Phone,
		Organization:  record.Organization,
		Country:       record.Country,
		Type:          participant.Type(record.Type),
		AcceptedTerms: record.AcceptedTerms,
	}, nil
}

// GetDraft loads a registration draft by id.
func (s *Store) GetDraft(ctx context.Context, draftID string) (registration.Draft, error) {
	if err := s.configured(); err != nil {
		return registration.Draft{}, err
	}
	draftID = strings.TrimSpace(draftID)
	if draftID == "" {
		return registration.Draft{}, registration.ErrDraftNotFound
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, step, application_json, updated_at
		 FROM registration_drafts
		 WHERE id = ?`,
		draftID,
	)

	var draft registration.Draft
	var payload []byte
	var updatedAt int64
	if err := row.Scan(&draft.ID, &draft.Step, &payload, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return registration.Draft{}, registration.ErrDraftNotFound
		}
		return registration.Draft{}, fmt.Errorf("get registration draft: %w", err)
	}
	app, err := decodeApplication(payload)
	if err != nil {
		return registration.Draft{}, fmt.Errorf("decode registration draft %s: %w", draftID, err)
	}
	draft.Application = app
	draft.UpdatedAt = unixMillisToTime(updatedAt)
	return draft, nil
}

// PutDraft upserts a registration draft.
func (s *Store) PutDraft(ctx context.Context, draft registration.Draft) error {
	if err := s.configured(); err != nil {
		return err
	}
	draft.ID = strings.TrimSpace(draft.ID)
	if draft.ID == "" {
		return fmt.Errorf("draft id is required")
	}
	if draft.UpdatedAt.IsZero() {
		draft.UpdatedAt = s.now().UTC()
	}
	payload, err := encodeApplication(draft.Application)
	if err != nil {
		return fmt.Errorf("encode registration draft: %w", err)
	}

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO registration_drafts (id, step, application_json, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		    step = excluded.step,
		    application_json = excluded.application_json,
		    updated_at = excluded.updated_at`,
		draft.ID,
		draft.Step,
		payload,
		timeToUnixMillis(draft.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put registration draft: %w", err)
	}
	return nil
}

// DeleteDraft removes a registration draft. Unknown ids are not an error.
func (s *Store) DeleteDraft(ctx context.Context, draftID string) error {
	if err := s.configured(); err != nil {
		return err
	}
	draftID = strings.TrimSpace(draftID)
	if draftID == "" {
		return nil
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM registration_drafts WHERE id = ?`, draftID); err != nil {
		return fmt.Errorf("delete registration draft: %w", err)
	}
	return nil
}

// DeleteDraftsBefore removes drafts last updated before cutoff and returns
// how many were removed.
func (s *Store) DeleteDraftsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if err := s.configured(); err != nil {
		return 0, err
	}
	result, err := s.sqlDB.ExecContext(
		ctx,
		`DELETE FROM registration_drafts WHERE updated_at < ?`,
		timeToUnixMillis(cutoff),
	)
	if err != nil {
		return 0, fmt.Errorf("delete stale registration drafts: %w", err)
	}
	return result.RowsAffected()
}

// SubmitRegistration stores a completed application as a pending participant.
func (s *Store) SubmitRegistration(ctx context.Context, app registration.Application) (participantID string, err error) {
	if err := s.configured(); err != nil {
		return "", err
	}
	ctx, span := s.startSpan(ctx, "submit_registration")
	defer func() { endSpan(span, err) }()

	participantID, err = s.newID()
	if err != nil {
		return "", fmt.Errorf("new participant id: %w", err)
	}
	typ := app.Type
	if typ == "" {
		typ = participant.TypeParticipant
	}
	now := s.now().UTC()
	err = s.insertParticipant(ctx, participant.Participant{
		ID:               participantID,
		FirstName:        app.FirstName,
		LastName:         app.LastName,
		Email:            app.Email,
		Phone:            app.Phone,
		Organization:     app.Organization,
		Country:          app.Country,
		Type:             typ,
		Status:           participant.StatusPending,
		RegistrationDate: now.Format(time.RFC3339),
	}, now, false)
	if err != nil {
		return "", fmt.Errorf("submit registration: %w", err)
	}
	span.SetAttributes(attribute.String("participant.id", participantID))
	return participantID, nil
}

// PutParticipant inserts or replaces a participant record as given.
func (s *Store) PutParticipant(ctx context.Context, p participant.Participant) error {
	if err := s.configured(); err != nil {
		return err
	}
	p.ID = strings.TrimSpace(p.ID)
	if p.ID == "" {
		return fmt.Errorf("participant id is required")
	}
	if p.Status == "" {
		p.Status = participant.StatusPending
	}
	if p.Type == "" {
		p.Type = participant.TypeParticipant
	}
	now := s.now().UTC()
	if strings.TrimSpace(p.RegistrationDate) == "" {
		p.RegistrationDate = now.Format(time.RFC3339)
	}
	if err := s.insertParticipant(ctx, p, now, true); err != nil {
		return fmt.Errorf("put participant: %w", err)
	}
	return nil
}

func (s *Store) insertParticipant(ctx context.Context, p participant.Participant, now time.Time, replace bool) error {
	query := `INSERT INTO participants (
		    id, first_name, last_name, email, phone, organization, country,
		    participant_type, status, registered_at, updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if replace {
		query += `
		 ON CONFLICT(id) DO UPDATE SET
		    first_name = excluded.first_name,
		    last_name = excluded.last_name,
		    email = excluded.email,
		    phone = excluded.phone,
		    organization = excluded.organization,
		    country = excluded.country,
		    participant_type = excluded.participant_type,
		    status = excluded.status,
		    registered_at = excluded.registered_at,
		    updated_at = excluded.updated_at`
	}
	_, err := s.sqlDB.ExecContext(
		ctx,
		query,
		p.ID,
		strings.TrimSpace(p.FirstName),
		strings.TrimSpace(p.LastName),
		strings.TrimSpace(p.Email),
		strings.TrimSpace(p.Phone),
		strings.TrimSpace(p.Organization),
		strings.TrimSpace(p.Country),
		string(p.Type),
		string(p.Status),
		p.RegistrationDate,
		timeToUnixMillis(now),
	)
	return err
}

const participantColumns = `id, first_name, last_name, email, phone, organization, country,
		        participant_type, status, registered_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanParticipant(row rowScanner) (participant.Participant, error) {
	var p participant.Participant
	var typ string
	var status string
	if err := row.Scan(
		&p.ID,
		&p.FirstName,
		&p.LastName,
		&p.Email,
		&p.Phone,
		&p.Organization,
		&p.Country,
		&typ,
		&status,
		&p.RegistrationDate,
	); err != nil {
		return participant.Participant{}, err
	}
	p.Type = participant.Type(typ)
	p.Status = participant.Status(status)
	return p, nil
}

// GetParticipant loads one participant by id.
func (s *Store) GetParticipant(ctx context.Context, participantID string) (p participant.Participant, err error) {
	if err := s.configured(); err != nil {
		return participant.Participant{}, err
	}
	participantID = strings.TrimSpace(participantID)
	if participantID == "" {
		return participant.Participant{}, participant.ErrNotFound
	}
	ctx, span := s.startSpan(ctx, "get_participant", attribute.String("participant.id", participantID))
	defer func() { endSpan(span, err) }()

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT `+participantColumns+`
		   FROM participants
		  WHERE id = ?`,
		participantID,
	)
	p, err = scanParticipant(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return participant.Participant{}, participant.ErrNotFound
		}
		return participant.Participant{}, fmt.Errorf("get participant: %w", err)
	}
	return p, nil
}

// ListParticipants returns participants matching query ordered by name.
func (s *Store) ListParticipants(ctx context.Context, query participant.Query) (out []participant.Participant, err error) {
	if err := s.configured(); err != nil {
		return nil, err
	}
	ctx, span := s.startSpan(ctx, "list_participants", attribute.String("participant.filter", query.Filter))
	defer func() { endSpan(span, err) }()

	cond, err := filter.Parse(query.Filter)
	if err != nil {
		return nil, err
	}
	stmt := `SELECT ` + participantColumns + `
		   FROM participants`
	params := make([]any, 0, len(cond.Params)+1)
	if !cond.Empty() {
		stmt += "\n		  WHERE " + cond.Clause
		params = append(params, cond.Params...)
	}
	stmt += "\n		  ORDER BY last_name ASC, first_name ASC, id ASC\n		  LIMIT ?"
	params = append(params, participant.ClampPageSize(query.PageSize))

	rows, err := s.sqlDB.QueryContext(ctx, stmt, params...)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	defer rows.Close()

	out = make([]participant.Participant, 0)
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate participants: %w", err)
	}
	span.SetAttributes(attribute.Int("participant.count", len(out)))
	return out, nil
}

// RevokeApproval moves an approved participant back to pending review.
// Participants in any other status are left untouched and ErrNotApproved is
// returned.
func (s *Store) RevokeApproval(ctx context.Context, participantID string) (err error) {
	if err := s.configured(); err != nil {
		return err
	}
	participantID = strings.TrimSpace(participantID)
	ctx, span := s.startSpan(ctx, "revoke_approval", attribute.String("participant.id", participantID))
	defer func() { endSpan(span, err) }()

	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE participants SET status = ?, updated_at = ? WHERE id = ? AND status = ?`,
		string(participant.StatusPending),
		timeToUnixMillis(s.now()),
		participantID,
		string(participant.StatusApproved),
	)
	if err != nil {
		return fmt.Errorf("revoke approval: %w", err)
	}
	err = requireAffected(result)
	if !errors.Is(err, participant.ErrNotFound) {
		return err
	}
	var exists int
	if err := s.sqlDB.QueryRowContext(ctx, `SELECT 1 FROM participants WHERE id = ?`, participantID).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return participant.ErrNotFound
		}
		return fmt.Errorf("revoke approval: %w", err)
	}
	return participant.ErrNotApproved
}

// DeleteParticipant removes a participant and its queued emails.
func (s *Store) DeleteParticipant(ctx context.Context, participantID string) (err error) {
	if err := s.configured(); err != nil {
		return err
	}
	ctx, span := s.startSpan(ctx, "delete_participant", attribute.String("participant.id", participantID))
	defer func() { endSpan(span, err) }()

	participantID = strings.TrimSpace(participantID)
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete participant: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM email_outbox WHERE participant_id = ?`, participantID); err != nil {
		return fmt.Errorf("delete participant emails: %w", err)
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM participants WHERE id = ?`, participantID)
	if err != nil {
		return fmt.Errorf("delete participant: %w", err)
	}
	if err = requireAffected(result); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit delete participant: %w", err)
	}
	return nil
}

// QueueEmail adds a notification for the participant to the email outbox.
func (s *Store) QueueEmail(ctx context.Context, participantID string) (err error) {
	if err := s.configured(); err != nil {
		return err
	}
	ctx, span := s.startSpan(ctx, "queue_email", attribute.String("participant.id", participantID))
	defer func() { endSpan(span, err) }()

	p, err := s.GetParticipant(ctx, participantID)
	if err != nil {
		return err
	}
	emailID, err := s.newID()
	if err != nil {
		return fmt.Errorf("new email id: %w", err)
	}
	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO email_outbox (id, participant_id, recipient, queued_at) VALUES (?, ?, ?, ?)`,
		emailID,
		p.ID,
		p.Email,
		timeToUnixMillis(s.now()),
	)
	if err != nil {
		return fmt.Errorf("queue email: %w", err)
	}
	return nil
}

// PendingEmailCount reports how many outbox emails have not been sent.
func (s *Store) PendingEmailCount(ctx context.Context, participantID string) (int, error) {
	if err := s.configured(); err != nil {
		return 0, err
	}
	var count int
	err := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM email_outbox WHERE participant_id = ? AND sent_at IS NULL`,
		strings.TrimSpace(participantID),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count pending emails: %w", err)
	}
	return count, nil
}

// UpdateParticipant replaces the editable fields of a participant.
func (s *Store) UpdateParticipant(ctx context.Context, participantID string, update participant.Update) (err error) {
	if err := s.configured(); err != nil {
		return err
	}
	ctx, span := s.startSpan(ctx, "update_participant", attribute.String("participant.id", participantID))
	defer func() { endSpan(span, err) }()

	typ := update.Type
	if typ == "" {
		typ = participant.TypeParticipant
	}
	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE participants SET
		    first_name = ?,
		    last_name = ?,
		    email = ?,
		    phone = ?,
		    organization = ?,
		    country = ?,
		    participant_type = ?,
		    updated_at = ?
		 WHERE id = ?`,
		strings.TrimSpace(update.FirstName),
		strings.TrimSpace(update.LastName),
		strings.TrimSpace(update.Email),
		strings.TrimSpace(update.Phone),
		strings.TrimSpace(update.Organization),
		strings.TrimSpace(update.Country),
		string(typ),
		timeToUnixMillis(s.now()),
		strings.TrimSpace(participantID),
	)
	if err != nil {
		return fmt.Errorf("update participant: %w", err)
	}
	return requireAffected(result)
}

func requireAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return participant.ErrNotFound
	}
	return nil
}

func timeToUnixMillis(value time.Time) int64 {
	if value.IsZero() {
		return 0
	}
	return value.UTC().UnixMilli()
}

func unixMillisToTime(value int64) time.Time {
	if value <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(value).UTC()
}
