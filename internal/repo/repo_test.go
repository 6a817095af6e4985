package repo

import (
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func NewMock(t *testing.T) (*Repositories, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockDB.Close)

	return New(mockDB), mockDB
}

func TestNew(t *testing.T) {
	repo, mock := NewMock(t)

	assert.NotNil(t, repo.RequestRepo)
	assert.NotNil(t, repo.BidRepo)
	assert.NotNil(t, repo.OrderRepo)
	assert.NotNil(t, repo.CheckoutRepo)
	assert.NotNil(t, repo.PaymentRepo)
	assert.NotNil(t, repo.PinRepo)
	assert.NotNil(t, repo.DisputeRepo)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unmet expectations: %v", err)
	}
}
