package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/westbrown1/ripple/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) (portsrepo.RepositoryProvider, error) {
	reg, err := BuildRegistry()
	if err != nil {
		return portsrepo.RepositoryProvider{}, err
	}

	accessors := make(map[string]*RecordAccessor, len(reg.Entities()))
	for _, name := range reg.Entities() {
		a, err := NewRecordAccessor(dbPool, reg, name)
		if err != nil {
			return portsrepo.RepositoryProvider{}, err
		}
		accessors[name] = a
	}

	return portsrepo.RepositoryProvider{
		ClientRepo:         accessors["client"],
		RelationshipRepo:   accessors["relationship"],
		NodeRepo:           accessors["node"],
		AddressRepo:        accessors["address"],
		AccountRepo:        accessors["account"],
		AccountRequestRepo: accessors["account_request"],
		ExchangeRateRepo:   accessors["exchange_rate"],
		ExchangeRepo:       accessors["exchange"],
	}, nil
}
