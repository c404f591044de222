package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/cmlabs-hris/roster-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/roster-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/require"
)

var testSetup *TestDatabaseSetup

func TestMain(m *testing.M) {
	setup, err := NewTestDatabase()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	testSetup = setup

	code := m.Run()
	if testSetup != nil {
		testSetup.Close()
	}
	os.Exit(code)
}

// requireDB skips the test without a database and empties every table.
func requireDB(t *testing.T) {
	t.Helper()
	if testSetup == nil {
		t.Skip("TEST_DATABASE_URL is not set")
	}
	require.NoError(t, testSetup.TruncateAllTables(context.Background()))
}

func createTestUser(t *testing.T, ctx context.Context, email, firstName, lastName string) user.User {
	t.Helper()
	repo := postgresql.NewUserRepository(testSetup.DB)
	hash := "not-a-real-hash"
	u, err := repo.Create(ctx, user.User{
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: &hash,
		Role:         user.RoleEmployee,
	})
	require.NoError(t, err)
	return u
}
