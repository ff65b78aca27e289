package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/westbrown1/ripple/internal/apperrors"
	portssvc "github.com/westbrown1/ripple/internal/core/ports/services"
	"github.com/westbrown1/ripple/internal/core/services"
	"github.com/westbrown1/ripple/internal/dto"
	"github.com/westbrown1/ripple/internal/schema"
)

// --- Test Suite ---
type ClientServiceTestSuite struct {
	suite.Suite
	mockStore *MockRecordStore
	service   portssvc.ClientSvcFacade
}

func (suite *ClientServiceTestSuite) SetupTest() {
	suite.mockStore = new(MockRecordStore)
	suite.service = services.NewClientService(suite.mockStore)
}

// --- Test Cases ---

func (suite *ClientServiceTestSuite) TestCreateClient_Success() {
	ctx := context.Background()
	req := dto.CreateClientRequest{Name: "acme"}

	suite.mockStore.On("Create", ctx, schema.Record{"name": "acme"}).
		Return(schema.Record{"name": "acme"}, nil).Once()

	client, err := suite.service.CreateClient(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(client)
	suite.Equal("acme", client.Name)
	suite.mockStore.AssertExpectations(suite.T())
}

func (suite *ClientServiceTestSuite) TestCreateClient_Duplicate() {
	ctx := context.Background()
	req := dto.CreateClientRequest{Name: "acme"}

	suite.mockStore.On("Create", ctx, schema.Record{"name": "acme"}).
		Return(nil, apperrors.ErrDuplicate).Once()

	client, err := suite.service.CreateClient(ctx, req)

	suite.Require().Error(err)
	suite.Nil(client)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockStore.AssertExpectations(suite.T())
}

func (suite *ClientServiceTestSuite) TestGetClient_NotFound() {
	ctx := context.Background()

	suite.mockStore.On("Get", ctx, []string{"ghost"}).
		Return(nil, apperrors.ErrNotFound).Once()

	client, err := suite.service.GetClient(ctx, "ghost")

	suite.Require().Error(err)
	suite.Nil(client)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockStore.AssertExpectations(suite.T())
}

func (suite *ClientServiceTestSuite) TestListClients_Success() {
	ctx := context.Background()

	suite.mockStore.On("Filter", ctx, schema.Record(nil)).
		Return([]schema.Record{{"name": "acme"}, {"name": "globex"}}, nil).Once()

	clients, err := suite.service.ListClients(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(clients, 2)
	suite.Equal("acme", clients[0].Name)
	suite.Equal("globex", clients[1].Name)
	suite.mockStore.AssertExpectations(suite.T())
}

func (suite *ClientServiceTestSuite) TestUpdateClient_Rename() {
	ctx := context.Background()
	newName := "acme-intl"
	req := dto.UpdateClientRequest{Name: &newName}

	suite.mockStore.On("Update", ctx, []string{"acme"}, schema.Record{"name": "acme-intl"}).
		Return(schema.Record{"name": "acme-intl"}, nil).Once()

	client, err := suite.service.UpdateClient(ctx, "acme", req)

	suite.Require().NoError(err)
	suite.Equal("acme-intl", client.Name)
	suite.mockStore.AssertExpectations(suite.T())
}

func (suite *ClientServiceTestSuite) TestDeleteClient_Success() {
	ctx := context.Background()

	suite.mockStore.On("Delete", ctx, []string{"acme"}).Return(nil).Once()

	err := suite.service.DeleteClient(ctx, "acme")

	suite.Require().NoError(err)
	suite.mockStore.AssertExpectations(suite.T())
}

func TestClientServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ClientServiceTestSuite))
}
