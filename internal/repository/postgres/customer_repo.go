// internal/repository/postgres/customer_repo.go
package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tedtam-service/internal/domain/customer"
	xerrors "tedtam-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// rawColumns is the select list shared by every fetch. Numeric and geo
// columns are cast to text so normalization owns the string coercion and
// imported rows with malformed numbers still load.
const rawColumns = `
	uid, registration_id, account_number, name,
	field_team, work_group, group_code, branch,
	principle::text, installment::text, blue_book_price::text, commission::text,
	current_bucket, cycle_day,
	brand, model, license_plate, engine_number,
	address, latitude::text, longitude::text,
	work_status, resus,
	last_visit_result, authorization_date, notes,
	phone_numbers, documents, photos, voice_notes,
	created_by, created_at, updated_at
`

type CustomerRepository struct {
	db *pgxpool.Pool
}

func NewCustomerRepository(db *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// FetchAll returns every customer row, newest first, un-normalized.
// A row-level-security rejection surfaces as xerrors.ErrPermissionDenied.
func (r *CustomerRepository) FetchAll(ctx context.Context) ([]customer.RawRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM customers ORDER BY created_at DESC`, rawColumns)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	return scanRawRecords(rows)
}

// FetchOwned returns the rows created by one agent, newest first. This is the
// scoped fallback used when the broad fetch is rejected.
func (r *CustomerRepository) FetchOwned(ctx context.Context, ownerID string) ([]customer.RawRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM customers WHERE created_by = $1 ORDER BY created_at DESC`, rawColumns)

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	return scanRawRecords(rows)
}

func scanRawRecords(rows pgx.Rows) ([]customer.RawRecord, error) {
	records := []customer.RawRecord{}
	for rows.Next() {
		var rec customer.RawRecord
		err := rows.Scan(
			&rec.UID, &rec.RegistrationID, &rec.AccountNumber, &rec.Name,
			&rec.FieldTeam, &rec.WorkGroup, &rec.GroupCode, &rec.Branch,
			&rec.Principle, &rec.Installment, &rec.BlueBookPrice, &rec.Commission,
			&rec.CurrentBucket, &rec.CycleDay,
			&rec.Brand, &rec.Model, &rec.LicensePlate, &rec.EngineNumber,
			&rec.Address, &rec.Latitude, &rec.Longitude,
			&rec.WorkStatus, &rec.Resus,
			&rec.LastVisitResult, &rec.AuthorizationDate, &rec.Notes,
			&rec.PhoneNumbers, &rec.Documents, &rec.Photos, &rec.VoiceNotes,
			&rec.CreatedBy, &rec.CreatedAt, &rec.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, translateErr(err)
	}
	return records, nil
}

// FindByUID retrieves one customer, normalized.
func (r *CustomerRepository) FindByUID(ctx context.Context, uid string) (*customer.Customer, error) {
	query := fmt.Sprintf(`SELECT %s FROM customers WHERE uid = $1`, rawColumns)

	rows, err := r.db.Query(ctx, query, uid)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	records, err := scanRawRecords(rows)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, xerrors.ErrNotFound
	}
	c := records[0].Normalize()
	return &c, nil
}

// Create inserts a new customer row.
func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	query := `
		INSERT INTO customers (
			uid, registration_id, account_number, name,
			field_team, work_group, group_code, branch,
			principle, installment, blue_book_price, commission,
			current_bucket, cycle_day,
			brand, model, license_plate, engine_number,
			address, latitude, longitude,
			work_status, resus,
			last_visit_result, authorization_date, notes,
			phone_numbers, documents, photos, voice_notes,
			created_by
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
			$21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31
		)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		c.UID, c.RegistrationID, c.AccountNumber, c.Name,
		c.FieldTeam, string(c.WorkGroup), c.GroupCode, c.Branch,
		c.Principle, c.Installment, c.BlueBookPrice, c.Commission,
		c.CurrentBucket, c.CycleDay,
		c.Brand, c.Model, c.LicensePlate, c.EngineNumber,
		c.Address, c.Latitude, c.Longitude,
		string(c.WorkStatus), string(c.Resus),
		c.LastVisitResult, c.AuthorizationDate, c.Notes,
		pq.Array(c.PhoneNumbers), pq.Array(c.Documents), pq.Array(c.Photos), pq.Array(c.VoiceNotes),
		c.CreatedBy,
	).Scan(&c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		return xerrors.Wrap(translateErr(err), "failed to create customer")
	}
	return nil
}

// Update overwrites the mutable fields of a customer row.
func (r *CustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	query := `
		UPDATE customers SET
			name = $1, field_team = $2, work_group = $3, group_code = $4, branch = $5,
			principle = $6, installment = $7, blue_book_price = $8, commission = $9,
			current_bucket = $10, cycle_day = $11,
			brand = $12, model = $13, license_plate = $14, engine_number = $15,
			address = $16, latitude = $17, longitude = $18,
			work_status = $19, resus = $20,
			last_visit_result = $21, authorization_date = $22, notes = $23,
			phone_numbers = $24, documents = $25, photos = $26, voice_notes = $27,
			updated_at = $28
		WHERE uid = $29
	`

	result, err := r.db.Exec(
		ctx, query,
		c.Name, c.FieldTeam, string(c.WorkGroup), c.GroupCode, c.Branch,
		c.Principle, c.Installment, c.BlueBookPrice, c.Commission,
		c.CurrentBucket, c.CycleDay,
		c.Brand, c.Model, c.LicensePlate, c.EngineNumber,
		c.Address, c.Latitude, c.Longitude,
		string(c.WorkStatus), string(c.Resus),
		c.LastVisitResult, c.AuthorizationDate, c.Notes,
		pq.Array(c.PhoneNumbers), pq.Array(c.Documents), pq.Array(c.Photos), pq.Array(c.VoiceNotes),
		time.Now(), c.UID,
	)
	if err != nil {
		return xerrors.Wrap(translateErr(err), "failed to update customer")
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// Delete removes a customer row.
func (r *CustomerRepository) Delete(ctx context.Context, uid string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM customers WHERE uid = $1`, uid)
	if err != nil {
		return xerrors.Wrap(translateErr(err), "failed to delete customer")
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// List retrieves normalized customers with filters and pagination, for the
// customer list screen. The mirror uses FetchAll/FetchOwned instead.
func (r *CustomerRepository) List(ctx context.Context, filters *customer.ListFilters) ([]customer.Customer, int64, error) {
	conditions := []string{"TRUE"}
	args := []interface{}{}
	argPos := 1

	if filters.Branch != "" {
		conditions = append(conditions, fmt.Sprintf("branch = $%d", argPos))
		args = append(args, filters.Branch)
		argPos++
	}
	if filters.FieldTeam != "" {
		conditions = append(conditions, fmt.Sprintf("field_team = $%d", argPos))
		args = append(args, filters.FieldTeam)
		argPos++
	}
	if filters.WorkGroup != "" {
		conditions = append(conditions, fmt.Sprintf("work_group = $%d", argPos))
		args = append(args, filters.WorkGroup)
		argPos++
	}
	if filters.WorkStatus != "" {
		conditions = append(conditions, fmt.Sprintf("work_status = $%d", argPos))
		args = append(args, filters.WorkStatus)
		argPos++
	}
	if filters.Resus != "" {
		conditions = append(conditions, fmt.Sprintf("resus = $%d", argPos))
		args = append(args, filters.Resus)
		argPos++
	}
	if filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(name ILIKE $%d OR account_number ILIKE $%d OR license_plate ILIKE $%d)",
			argPos, argPos, argPos,
		))
		args = append(args, "%"+filters.Search+"%")
		argPos++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM customers WHERE %s", whereClause)
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, xerrors.Wrap(translateErr(err), "failed to count customers")
	}

	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 {
		filters.PageSize = 20
	}
	offset := (filters.Page - 1) * filters.PageSize

	query := fmt.Sprintf(`
		SELECT %s FROM customers
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, rawColumns, whereClause, argPos, argPos+1)
	args = append(args, filters.PageSize, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, translateErr(err)
	}
	defer rows.Close()

	records, err := scanRawRecords(rows)
	if err != nil {
		return nil, 0, err
	}
	return customer.NormalizeAll(records), total, nil
}

// ExistsByAccountNumber checks whether a contract number is already tracked.
func (r *CustomerRepository) ExistsByAccountNumber(ctx context.Context, accountNumber string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM customers WHERE account_number = $1)`,
		accountNumber,
	).Scan(&exists)
	return exists, translateErr(err)
}
