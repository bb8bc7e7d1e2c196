package property

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoPGManager/GoPGManager/internal/db/dbtest"
)

func TestCreateAndGet(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	owner := dbtest.CreateUser(t, db, "Olivia", "owner@example.com")

	testCases := []struct {
		name          string
		ownerID       uint64
		propertyName  string
		expectedError error
	}{
		{name: "empty name", ownerID: owner.ID, propertyName: "  ", expectedError: ErrPropertyNameEmpty},
		{name: "successful create", ownerID: owner.ID, propertyName: "Sunrise PG"},
		{name: "second property for same owner", ownerID: owner.ID, propertyName: "Another PG", expectedError: ErrPropertyAlreadyExists},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := Create(ctx, db, tc.ownerID, tc.propertyName, "MG Road")

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, p)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.propertyName, p.Name)

			byOwner, err := GetByOwner(ctx, db, tc.ownerID)
			require.NoError(t, err)
			assert.Equal(t, p.ID, byOwner.ID)

			byID, err := GetByID(ctx, db, p.ID)
			require.NoError(t, err)
			assert.Equal(t, tc.ownerID, byID.OwnerID)
		})
	}
}

func TestNotFound(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)

	_, err := GetByID(ctx, db, 42)
	require.ErrorIs(t, err, ErrPropertyNotFound)

	_, err = GetByOwner(ctx, db, 42)
	require.ErrorIs(t, err, ErrPropertyNotFound)

	_, err = GetByID(ctx, nil, 42)
	require.ErrorIs(t, err, ErrDBNil)
}
