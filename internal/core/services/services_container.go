package services

import (
	portsrepo "github.com/westbrown1/ripple/internal/core/ports/repositories"
	portssvc "github.com/westbrown1/ripple/internal/core/ports/services"
)

// NewServiceContainer creates a new service container wiring each service to
// its entity's record store.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Client:         NewClientService(repos.ClientRepo),
		Relationship:   NewRelationshipService(repos.RelationshipRepo),
		Node:           NewNodeService(repos.NodeRepo),
		Address:        NewAddressService(repos.AddressRepo),
		Account:        NewAccountService(repos.AccountRepo),
		AccountRequest: NewAccountRequestService(repos.AccountRequestRepo),
		ExchangeRate:   NewExchangeRateService(repos.ExchangeRateRepo),
		Exchange:       NewExchangeService(repos.ExchangeRepo),
	}
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.ClientSvcFacade         = (*clientService)(nil)
	_ portssvc.RelationshipSvcFacade   = (*relationshipService)(nil)
	_ portssvc.NodeSvcFacade           = (*nodeService)(nil)
	_ portssvc.AddressSvcFacade        = (*addressService)(nil)
	_ portssvc.AccountSvcFacade        = (*accountService)(nil)
	_ portssvc.AccountRequestSvcFacade = (*accountRequestService)(nil)
	_ portssvc.ExchangeRateSvcFacade   = (*exchangeRateService)(nil)
	_ portssvc.ExchangeSvcFacade       = (*exchangeService)(nil)
)
