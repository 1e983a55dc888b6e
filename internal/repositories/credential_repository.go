package repositories

import (
	"context"
	"strings"

	"smartbiz-backend/internal/models"
	"smartbiz-backend/internal/sheets"
)

const credentialColumns = 2 // email, password

// CredentialRepository stores login credentials keyed by email. Emails are
// matched case-insensitively.
type CredentialRepository struct {
	api        sheets.ValuesAPI
	sheet      string
	headerRows int
}

func NewCredentialRepository(api sheets.ValuesAPI, layout Layout) *CredentialRepository {
	layout = layout.withDefaults()
	return &CredentialRepository{api: api, sheet: layout.CredentialsSheet, headerRows: layout.HeaderRows}
}

func (r *CredentialRepository) List(ctx context.Context) ([]*models.UserCredentials, error) {
	rows, err := r.api.Get(ctx, sheets.TableRange(r.sheet, credentialColumns, r.headerRows+1))
	if err != nil {
		return nil, &FetchError{Sheet: r.sheet, Err: err}
	}

	creds := make([]*models.UserCredentials, 0, len(rows))
	for _, cells := range rows {
		email := rowID(cells)
		if email == "" {
			continue
		}
		c := &models.UserCredentials{Email: email}
		if len(cells) > 1 {
			c.PasswordHash = cellString(cells[1])
		}
		creds = append(creds, c)
	}
	return creds, nil
}

// Get returns the credentials for email or NotFoundError.
func (r *CredentialRepository) Get(ctx context.Context, email string) (*models.UserCredentials, error) {
	creds, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range creds {
		if strings.EqualFold(c.Email, strings.TrimSpace(email)) {
			return c, nil
		}
	}
	return nil, &NotFoundError{Sheet: r.sheet, Key: email}
}

// Add appends a new user after checking every existing row for the same
// email. A duplicate returns DuplicateUserError without writing.
func (r *CredentialRepository) Add(ctx context.Context, c *models.UserCredentials) error {
	existing, err := r.List(ctx)
	if err != nil {
		return &WriteError{Sheet: r.sheet, Op: "append", Err: err}
	}
	email := strings.TrimSpace(c.Email)
	for _, e := range existing {
		if strings.EqualFold(e.Email, email) {
			return &DuplicateUserError{Email: email}
		}
	}

	values := [][]interface{}{{email, c.PasswordHash}}
	if err := r.api.Append(ctx, sheets.AppendRange(r.sheet, credentialColumns), values); err != nil {
		return &WriteError{Sheet: r.sheet, Op: "append", Err: err}
	}
	return nil
}

// UpdatePassword rewrites only the password cell of the row holding email.
func (r *CredentialRepository) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	first := r.headerRows + 1
	rows, err := r.api.Get(ctx, sheets.ColumnRange(r.sheet, 1, first))
	if err != nil {
		return &WriteError{Sheet: r.sheet, Op: "update", Err: &FetchError{Sheet: r.sheet, Err: err}}
	}

	email = strings.TrimSpace(email)
	for i, cells := range rows {
		stored := rowID(cells)
		if stored == "" || !strings.EqualFold(stored, email) {
			continue
		}
		rng := sheets.CellRange(r.sheet, 2, first+i)
		if err := r.api.Update(ctx, rng, [][]interface{}{{passwordHash}}); err != nil {
			return &WriteError{Sheet: r.sheet, Op: "update", Err: err}
		}
		return nil
	}
	return &NotFoundError{Sheet: r.sheet, Key: email}
}
