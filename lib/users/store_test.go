package users

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"usersvc/lib/database"
	"usersvc/shared/logger"
)

func TestMain(m *testing.M) {
	logger.SetGlobalLogger(logger.NewNoOpLogger())
	os.Exit(m.Run())
}

const baseQuery = "SELECT u.id, u.username, u.full_name, u.birth_date, u.bio, u.long_bio, " +
	"u.profile_json, u.address, u.phone_number, u.created_at, u.updated_at, " +
	"a.email, ur.role, ud.division_name " +
	"FROM users u " +
	"LEFT JOIN auth a ON u.auth_id = a.id " +
	"LEFT JOIN user_roles ur ON u.id = ur.user_id " +
	"LEFT JOIN user_divisions ud ON u.id = ud.user_id"

var columns = []string{
	"id", "username", "full_name", "birth_date", "bio", "long_bio",
	"profile_json", "address", "phone_number", "created_at", "updated_at",
	"email", "role", "division_name",
}

var (
	created = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	born    = time.Date(1990, 7, 14, 0, 0, 0, 0, time.UTC)
)

func userValues(id int64, email, role, division any) []driver.Value {
	return []driver.Value{
		id, fmt.Sprintf("user%d", id), "User Name", born, "bio", "long bio",
		[]byte(`{"theme":"dark"}`), "1 Main St", "555-0100", created, created,
		email, role, division,
	}
}

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock, *recorder) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	rec := &recorder{}
	driver := database.NewPostgreSQLDriverFromDB(sqlx.NewDb(db, "postgres"))
	return NewStore(driver, rec), mock, rec
}

func TestBuildListQueryWithoutFilter(t *testing.T) {
	for _, division := range []string{"", "all"} {
		sql, args, err := BuildListQuery(ListParams{Division: division, Limit: 50})
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		want := baseQuery + " ORDER BY u.created_at DESC LIMIT 50 OFFSET 0"
		if sql != want {
			t.Errorf("division=%q unexpected SQL:\n got: %s\nwant: %s", division, sql, want)
		}
		if len(args) != 0 {
			t.Errorf("division=%q expected no args, got %v", division, args)
		}
	}
}

func TestBuildListQueryWithFilter(t *testing.T) {
	sql, args, err := BuildListQuery(ListParams{Division: "Engineering", Limit: 50})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	want := baseQuery + " WHERE ud.division_name = $1 ORDER BY u.created_at DESC LIMIT 50 OFFSET 0"
	if sql != want {
		t.Errorf("Unexpected SQL:\n got: %s\nwant: %s", sql, want)
	}
	if len(args) != 1 || args[0] != "Engineering" {
		t.Errorf("Expected exactly one arg 'Engineering', got %v", args)
	}
}

func TestStoreListMapsRows(t *testing.T) {
	store, mock, rec := newMockStore(t)

	mock.ExpectQuery(baseQuery+" WHERE ud.division_name = $1 ORDER BY u.created_at DESC LIMIT 50 OFFSET 0").
		WithArgs("Sales").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(userValues(1, "ada@example.com", "admin", "Sales")...))

	users, err := store.List(context.Background(), ListParams{Division: "Sales", Limit: 50})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("Expected 1 user, got %d", len(users))
	}

	u := users[0]
	if u.ID != 1 || u.FullName != "User Name" || u.PhoneNumber != "555-0100" {
		t.Errorf("Unexpected record %+v", u)
	}
	if u.Email == nil || *u.Email != "ada@example.com" {
		t.Errorf("Expected email, got %v", u.Email)
	}
	if u.Division == nil || *u.Division != "Sales" {
		t.Errorf("Expected division Sales, got %v", u.Division)
	}
	if u.BirthDate != "1990-07-14" {
		t.Errorf("Expected birth date 1990-07-14, got %q", u.BirthDate)
	}
	if string(u.ProfileJSON) != `{"theme":"dark"}` {
		t.Errorf("Unexpected profile %s", u.ProfileJSON)
	}
	if !u.CreatedAt.Equal(created) {
		t.Errorf("Unexpected createdAt %v", u.CreatedAt)
	}

	if len(rec.queries) != 1 || rec.queries[0] != QueryType {
		t.Errorf("Expected one %s observation, got %v", QueryType, rec.queries)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestStoreListKeepsUnmatchedJoinsAsNull(t *testing.T) {
	store, mock, _ := newMockStore(t)

	values := userValues(2, nil, nil, nil)
	values[6] = nil // profile_json

	mock.ExpectQuery(baseQuery + " ORDER BY u.created_at DESC LIMIT 50 OFFSET 0").
		WillReturnRows(sqlmock.NewRows(columns).AddRow(values...))

	users, err := store.List(context.Background(), ListParams{Limit: 50})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("Expected the user to be kept, got %d", len(users))
	}
	u := users[0]
	if u.Email != nil || u.Role != nil || u.Division != nil {
		t.Errorf("Expected null email/role/division, got %v %v %v", u.Email, u.Role, u.Division)
	}
	if u.ProfileJSON != nil {
		t.Errorf("Expected null profile, got %s", u.ProfileJSON)
	}
}

func TestStoreListNeverExceedsPageSize(t *testing.T) {
	store, mock, _ := newMockStore(t)

	rows := sqlmock.NewRows(columns)
	for i := int64(1); i <= 60; i++ {
		rows.AddRow(userValues(i, "x@example.com", "member", "Eng")...)
	}
	mock.ExpectQuery(baseQuery + " ORDER BY u.created_at DESC LIMIT 50 OFFSET 0").WillReturnRows(rows)

	users, err := store.List(context.Background(), ListParams{Limit: 50})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(users) != MaxPageSize {
		t.Errorf("Expected %d users, got %d", MaxPageSize, len(users))
	}
}

func TestStoreListQueryFailure(t *testing.T) {
	store, mock, rec := newMockStore(t)
	cause := errors.New("connection refused")

	mock.ExpectQuery(baseQuery + " ORDER BY u.created_at DESC LIMIT 50 OFFSET 0").WillReturnError(cause)

	_, err := store.List(context.Background(), ListParams{Limit: 50})

	var rf *RequestFailure
	if !errors.As(err, &rf) || rf.Stage != StageQuery {
		t.Fatalf("Expected query RequestFailure, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("Expected cause to be wrapped, got %v", err)
	}
	if len(rec.queries) != 1 {
		t.Errorf("Expected the failed query to be timed too, got %v", rec.queries)
	}
}

func TestStoreListMappingFailure(t *testing.T) {
	store, mock, _ := newMockStore(t)

	values := userValues(3, nil, nil, nil)
	values[6] = []byte(`{not json`)
	mock.ExpectQuery(baseQuery + " ORDER BY u.created_at DESC LIMIT 50 OFFSET 0").
		WillReturnRows(sqlmock.NewRows(columns).AddRow(values...))

	_, err := store.List(context.Background(), ListParams{Limit: 50})

	var rf *RequestFailure
	if !errors.As(err, &rf) || rf.Stage != StageMap {
		t.Errorf("Expected map RequestFailure, got %v", err)
	}
}
