package repositories

// RepositoryProvider holds the record store of every entity the services
// work with. This makes passing dependencies to the service container
// constructor cleaner.
type RepositoryProvider struct {
	ClientRepo         RecordStore
	RelationshipRepo   RecordStore
	NodeRepo           RecordStore
	AddressRepo        RecordStore
	AccountRepo        RecordStore
	AccountRequestRepo RecordStore
	ExchangeRateRepo   RecordStore
	ExchangeRepo       RecordStore
}
