package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/westbrown1/ripple/internal/apperrors"
	portssvc "github.com/westbrown1/ripple/internal/core/ports/services"
	"github.com/westbrown1/ripple/internal/core/services"
	"github.com/westbrown1/ripple/internal/dto"
	"github.com/westbrown1/ripple/internal/schema"
)

// --- Test Suite ---
type AccountServiceTestSuite struct {
	suite.Suite
	mockStore *MockRecordStore
	service   portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockStore = new(MockRecordStore)
	suite.service = services.NewAccountService(suite.mockStore)
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestCreateAccount_ForwardsOnlySuppliedFields() {
	ctx := context.Background()
	relationship := "r-1"
	upper := decimal.NewFromInt(100)
	req := dto.CreateAccountRequest{
		Name:         "savings",
		Relationship: &relationship,
		UpperLimit:   &upper,
	}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	suite.mockStore.On("Create", ctx, schema.Record{
		"name":         "savings",
		"relationship": "r-1",
		"upper_limit":  upper,
	}).Return(schema.Record{
		"name":                  "savings",
		"is_active":             true,
		"relationship":          "r-1",
		"upper_limit":           upper,
		"lower_limit":           nil,
		"limits_effective_time": now,
	}, nil).Once()

	acct, err := suite.service.CreateAccount(ctx, req)

	suite.Require().NoError(err)
	suite.Equal("savings", acct.Name)
	suite.True(acct.IsActive)
	suite.Nil(acct.Balance)
	suite.Require().NotNil(acct.Relationship)
	suite.Equal("r-1", *acct.Relationship)
	suite.Require().NotNil(acct.UpperLimit)
	suite.True(acct.UpperLimit.Equal(upper))
	suite.Nil(acct.LowerLimit)
	suite.Require().NotNil(acct.LimitsEffectiveTime)
	suite.Equal(now, *acct.LimitsEffectiveTime)
	suite.Nil(acct.LimitsExpiryTime)
	suite.mockStore.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetAccount_NoLimitsYet() {
	ctx := context.Background()

	suite.mockStore.On("Get", ctx, []string{"savings"}).
		Return(schema.Record{
			"name":      "savings",
			"is_active": true,
			"balance":   decimal.NewFromInt(10),
		}, nil).Once()

	acct, err := suite.service.GetAccount(ctx, "savings")

	suite.Require().NoError(err)
	suite.Nil(acct.UpperLimit)
	suite.Nil(acct.LowerLimit)
	suite.Nil(acct.LimitsEffectiveTime)
	suite.Nil(acct.LimitsExpiryTime)
	suite.Require().NotNil(acct.Balance)
	suite.True(acct.Balance.Equal(decimal.NewFromInt(10)))
	suite.mockStore.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestListAccounts_CriteriaFromRequest() {
	ctx := context.Background()
	relationship := "r-1"
	isActive := true
	req := dto.ListAccountsRequest{Relationship: &relationship, IsActive: &isActive}

	suite.mockStore.On("Filter", ctx, schema.Record{
		"relationship": "r-1",
		"is_active":    true,
	}).Return([]schema.Record{
		{"name": "savings", "is_active": true, "relationship": "r-1"},
	}, nil).Once()

	accts, err := suite.service.ListAccounts(ctx, req)

	suite.Require().NoError(err)
	suite.Require().Len(accts, 1)
	suite.Equal("savings", accts[0].Name)
	suite.mockStore.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestListAccounts_IndirectCriteriaRejected() {
	ctx := context.Background()
	relationship := "r-1"
	req := dto.ListAccountsRequest{Relationship: &relationship}

	suite.mockStore.On("Filter", ctx, schema.Record{"relationship": "r-1"}).
		Return(nil, apperrors.ErrUnsupportedFilter).Once()

	accts, err := suite.service.ListAccounts(ctx, req)

	suite.Require().Error(err)
	suite.Nil(accts)
	suite.ErrorIs(err, apperrors.ErrUnsupportedFilter)
	suite.mockStore.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_LimitChange() {
	ctx := context.Background()
	lower := decimal.NewFromInt(-20)
	req := dto.UpdateAccountRequest{LowerLimit: &lower}

	suite.mockStore.On("Update", ctx, []string{"savings"}, schema.Record{
		"lower_limit": lower,
	}).Return(schema.Record{
		"name":                  "savings",
		"is_active":             true,
		"upper_limit":           decimal.NewFromInt(100),
		"lower_limit":           lower,
		"limits_effective_time": time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}, nil).Once()

	acct, err := suite.service.UpdateAccount(ctx, "savings", req)

	suite.Require().NoError(err)
	suite.Require().NotNil(acct.UpperLimit)
	suite.True(acct.UpperLimit.Equal(decimal.NewFromInt(100)), "limit carried forward")
	suite.Require().NotNil(acct.LowerLimit)
	suite.True(acct.LowerLimit.Equal(lower))
	suite.mockStore.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestListAccountLimits_MapsHistory() {
	ctx := context.Background()
	effective := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	suite.mockStore.On("VersionHistory", ctx, []string{"savings"}).
		Return([]schema.Version{
			{
				ID:            7,
				Active:        false,
				EffectiveTime: effective,
				Fields:        schema.Record{"upper_limit": decimal.NewFromInt(100), "lower_limit": nil},
			},
			{
				ID:            8,
				Active:        true,
				EffectiveTime: effective.Add(24 * time.Hour),
				Fields:        schema.Record{"upper_limit": decimal.NewFromInt(100), "lower_limit": decimal.NewFromInt(-20)},
			},
		}, nil).Once()

	limits, err := suite.service.ListAccountLimits(ctx, "savings")

	suite.Require().NoError(err)
	suite.Require().Len(limits, 2)
	suite.Equal(int64(7), limits[0].VersionID)
	suite.False(limits[0].Active)
	suite.True(limits[1].Active)
	suite.Equal(effective, limits[0].EffectiveTime)
	suite.mockStore.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_StillReferenced() {
	ctx := context.Background()

	suite.mockStore.On("Delete", ctx, []string{"savings"}).
		Return(apperrors.ErrValidation).Once()

	err := suite.service.DeleteAccount(ctx, "savings")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockStore.AssertExpectations(suite.T())
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
