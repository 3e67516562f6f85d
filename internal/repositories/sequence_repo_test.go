package repositories

import (
	"context"
	"errors"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type SequenceRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    SequenceRepository
	context context.Context
}

func (suite *SequenceRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewSequenceRepo(mock)
	suite.context = context.Background()
}

func (suite *SequenceRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestSequenceRepoTestSuite(t *testing.T) {
	suite.Run(t, new(SequenceRepoTestSuite))
}

func (suite *SequenceRepoTestSuite) TestNext_FirstValueIsOne() {
	suite.mock.ExpectQuery(`INSERT INTO document_sequences`).
		WithArgs(SequenceInvoice).
		WillReturnRows(pgxmock.NewRows([]string{"last_number"}).AddRow(int64(1)))

	next, err := suite.repo.Next(suite.context, SequenceInvoice)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), next)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *SequenceRepoTestSuite) TestNext_IncrementsExistingCounter() {
	suite.mock.ExpectQuery(`INSERT INTO document_sequences`).
		WithArgs(SequenceGoldLoan).
		WillReturnRows(pgxmock.NewRows([]string{"last_number"}).AddRow(int64(42)))

	next, err := suite.repo.Next(suite.context, SequenceGoldLoan)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(42), next)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *SequenceRepoTestSuite) TestNext_PropagatesQueryError() {
	suite.mock.ExpectQuery(`INSERT INTO document_sequences`).
		WithArgs(SequenceInvoice).
		WillReturnError(errors.New("connection refused"))

	_, err := suite.repo.Next(suite.context, SequenceInvoice)
	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "failed to reserve next invoice number")
}
