package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/teamfolio/teamfolio-go/internal/model"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateID       = errors.New("id already exists")
)

const mysqlDuplicateEntry = 1062

const userColumns = `id, username, email, password, number, department, classification, hoby, business_experience, profile_image`

// publicUserColumns omits the password hash.
const publicUserColumns = `id, username, email, number, department, classification, hoby, business_experience, profile_image`

// UserRepository handles user persistence operations.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and sets the generated ID on the user struct.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (username, email, password) VALUES (?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, user.Username, user.Email, user.PasswordHash)
	if err != nil {
		return translateDuplicate(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	user.ID = id
	return nil
}

// GetByEmail retrieves a user by their email address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	return r.getOne(ctx, query, email)
}

// GetByID retrieves a user by their ID.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return r.getOne(ctx, query, id)
}

// List returns every user ordered by number ascending, users without a
// number last. The password hash is not selected, so PasswordHash is always
// empty on the returned users.
func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	query := `SELECT ` + publicUserColumns + ` FROM users ORDER BY number IS NULL, number ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var (
			u   model.User
			row nullableProfile
		)
		if err := rows.Scan(
			&u.ID, &u.Username, &u.Email,
			&row.number, &row.department, &row.classification, &row.hobby, &row.businessExperience, &row.profileImage,
		); err != nil {
			return nil, err
		}
		row.apply(&u)
		users = append(users, u)
	}

	return users, rows.Err()
}

// UpdateProfile overwrites the profile fields of the user with the given ID.
// A nil ProfileImage keeps the stored image URL.
func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, upd model.ProfileUpdate) error {
	query := `UPDATE users SET
		number = ?, department = ?, classification = ?, hoby = ?, business_experience = ?,
		profile_image = COALESCE(?, profile_image)
		WHERE id = ?`

	_, err := r.db.ExecContext(ctx, query,
		upd.Number,
		upd.Department,
		upd.Classification,
		upd.Hobby,
		upd.BusinessExperience,
		upd.ProfileImage,
		id,
	)
	return err
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*model.User, error) {
	var (
		user = &model.User{}
		row  nullableProfile
	)
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&row.number, &row.department, &row.classification, &row.hobby, &row.businessExperience, &row.profileImage,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	row.apply(user)
	return user, nil
}

// nullableProfile is the scan target for the optional profile columns.
type nullableProfile struct {
	number             sql.NullInt64
	department         sql.NullString
	classification     sql.NullString
	hobby              sql.NullString
	businessExperience sql.NullString
	profileImage       sql.NullString
}

func (p nullableProfile) apply(u *model.User) {
	if p.number.Valid {
		n := p.number.Int64
		u.Number = &n
	}
	u.Department = stringPtr(p.department)
	u.Classification = stringPtr(p.classification)
	u.Hobby = stringPtr(p.hobby)
	u.BusinessExperience = stringPtr(p.businessExperience)
	u.ProfileImage = stringPtr(p.profileImage)
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// translateDuplicate maps a MySQL duplicate-entry error (code 1062) to the
// sentinel for the unique key that collided.
func translateDuplicate(err error) error {
	if !isDuplicateEntryError(err) {
		return err
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "uq_users_email"):
		return ErrDuplicateEmail
	case strings.Contains(msg, "uq_users_username"):
		return ErrDuplicateUsername
	case strings.Contains(msg, "PRIMARY"):
		return ErrDuplicateID
	}
	return err
}

// isDuplicateEntryError checks if a MySQL error is a duplicate entry error (code 1062).
func isDuplicateEntryError(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry
	}
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}
