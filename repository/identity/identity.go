package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

// Issuer is the auth side of the remote store: it mints the identities
// that become primary keys of profile rows, and rotates credentials. It is
// deliberately separate from the row store; the two are not transactional
// with each other.
type Issuer interface {
	IssueIdentity(ctx context.Context, email, password string) (string, error)
	UpdateCredential(ctx context.Context, id, newPassword string) error
}

type SQL struct {
	conn *sqlx.DB
}

func NewIssuer(conn *sqlx.DB) Issuer {
	return &SQL{conn: conn}
}

const (
	insertIdentityQuery   = `INSERT INTO auth_identities (id, email, password_hash, created_at) VALUES (?, ?, ?, NOW())`
	updateCredentialQuery = `UPDATE auth_identities SET password_hash = ? WHERE id = ?`
)

func (s *SQL) IssueIdentity(ctx context.Context, email, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	newUUID, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	id := newUUID.String()

	if _, err := s.conn.ExecContext(ctx, insertIdentityQuery, id, email, string(hash)); err != nil {
		return "", err
	}
	return id, nil
}

func (s *SQL) UpdateCredential(ctx context.Context, id, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = s.conn.ExecContext(ctx, updateCredentialQuery, string(hash), id)
	return err
}
