package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/westbrown1/ripple/internal/apperrors"
	portssvc "github.com/westbrown1/ripple/internal/core/ports/services"
	"github.com/westbrown1/ripple/internal/core/services"
	"github.com/westbrown1/ripple/internal/dto"
	"github.com/westbrown1/ripple/internal/schema"
)

// --- Test Suite ---
type ExchangeServiceTestSuite struct {
	suite.Suite
	mockStore *MockRecordStore
	service   portssvc.ExchangeSvcFacade
}

func (suite *ExchangeServiceTestSuite) SetupTest() {
	suite.mockStore = new(MockRecordStore)
	suite.service = services.NewExchangeService(suite.mockStore)
}

// --- Test Cases ---

func (suite *ExchangeServiceTestSuite) TestCreateExchange_WithoutRate() {
	ctx := context.Background()
	req := dto.CreateExchangeRequest{SourceAccount: "a-src", TargetAccount: "a-dst"}

	suite.mockStore.On("Create", ctx, schema.Record{
		"source_account": "a-src",
		"target_account": "a-dst",
	}).Return(schema.Record{
		"source_account": "a-src",
		"target_account": "a-dst",
	}, nil).Once()

	ex, err := suite.service.CreateExchange(ctx, req)

	suite.Require().NoError(err)
	suite.Equal("a-src", ex.SourceAccount)
	suite.Equal("a-dst", ex.TargetAccount)
	suite.Nil(ex.Rate)
	suite.mockStore.AssertExpectations(suite.T())
}

func (suite *ExchangeServiceTestSuite) TestCreateExchange_DanglingAccount() {
	ctx := context.Background()
	rate := "R1"
	req := dto.CreateExchangeRequest{SourceAccount: "ghost", TargetAccount: "a-dst", Rate: &rate}

	suite.mockStore.On("Create", ctx, schema.Record{
		"source_account": "ghost",
		"target_account": "a-dst",
		"rate":           "R1",
	}).Return(nil, apperrors.ErrReferenceNotFound).Once()

	ex, err := suite.service.CreateExchange(ctx, req)

	suite.Require().Error(err)
	suite.Nil(ex)
	suite.ErrorIs(err, apperrors.ErrReferenceNotFound)
	suite.mockStore.AssertExpectations(suite.T())
}

func (suite *ExchangeServiceTestSuite) TestUpdateExchange_ReassignsRate() {
	ctx := context.Background()
	req := dto.UpdateExchangeRequest{Rate: "R2"}

	suite.mockStore.On("Update", ctx, []string{"a-src", "a-dst"}, schema.Record{"rate": "R2"}).
		Return(schema.Record{
			"source_account": "a-src",
			"target_account": "a-dst",
			"rate":           "R2",
		}, nil).Once()

	ex, err := suite.service.UpdateExchange(ctx, "a-src", "a-dst", req)

	suite.Require().NoError(err)
	suite.Require().NotNil(ex.Rate)
	suite.Equal("R2", *ex.Rate)
	suite.mockStore.AssertExpectations(suite.T())
}

func (suite *ExchangeServiceTestSuite) TestListAssignedRates_KeepsDeletedSlots() {
	ctx := context.Background()
	first := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	suite.mockStore.On("VersionHistory", ctx, []string{"a-src", "a-dst"}).
		Return([]schema.Version{
			{ID: 3, Active: false, EffectiveTime: first, Fields: schema.Record{"rate": nil}},
			{ID: 4, Active: true, EffectiveTime: first.Add(time.Hour), Fields: schema.Record{"rate": "R2"}},
		}, nil).Once()

	history, err := suite.service.ListAssignedRates(ctx, "a-src", "a-dst")

	suite.Require().NoError(err)
	suite.Require().Len(history, 2)
	suite.Nil(history[0].Values["rate"])
	suite.Equal("R2", history[1].Values["rate"])
	suite.mockStore.AssertExpectations(suite.T())
}

func (suite *ExchangeServiceTestSuite) TestGetExchange_PairIsTheKey() {
	ctx := context.Background()
	rate := "R1"

	suite.mockStore.On("Get", ctx, []string{"a-src", "a-dst"}).
		Return(schema.Record{
			"source_account": "a-src",
			"target_account": "a-dst",
			"rate":           rate,
		}, nil).Once()

	ex, err := suite.service.GetExchange(ctx, "a-src", "a-dst")

	suite.Require().NoError(err)
	suite.Require().NotNil(ex.Rate)
	suite.Equal("R1", *ex.Rate)
	suite.mockStore.AssertExpectations(suite.T())
}

func TestExchangeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExchangeServiceTestSuite))
}
