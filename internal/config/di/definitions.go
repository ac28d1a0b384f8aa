package di

import (
	"github.com/ZilDuck/nft-marketplace/internal/api"
	"github.com/ZilDuck/nft-marketplace/internal/config"
	"github.com/ZilDuck/nft-marketplace/internal/elastic_search"
	"github.com/ZilDuck/nft-marketplace/internal/indexer"
	"github.com/ZilDuck/nft-marketplace/internal/ledger"
	"github.com/ZilDuck/nft-marketplace/internal/marketplace"
	"github.com/ZilDuck/nft-marketplace/internal/messenger"
	"github.com/ZilDuck/nft-marketplace/internal/registry"
	"github.com/ZilDuck/nft-marketplace/internal/repository"
	"github.com/ZilDuck/nft-marketplace/internal/rpc"
	"github.com/patrickmn/go-cache"
	sdi "github.com/sarulabs/di/v2"
	"go.uber.org/zap"
)

var Definitions = []sdi.Def{
	{
		Name: "store",
		Build: func(ctn sdi.Container) (interface{}, error) {
			return cache.New(cache.NoExpiration, 0), nil
		},
	},
	{
		Name: "elastic",
		Build: func(ctn sdi.Container) (interface{}, error) {
			elastic, err := elastic_search.New()
			if err != nil {
				zap.L().With(zap.Error(err)).Fatal("Failed to start ES")
			}

			return elastic, nil
		},
	},
	{
		Name: "listing.repo",
		Build: func(ctn sdi.Container) (interface{}, error) {
			return repository.NewListingRepository(ctn.Get("store").(*cache.Cache)), nil
		},
	},
	{
		Name: "proceeds.repo",
		Build: func(ctn sdi.Container) (interface{}, error) {
			return repository.NewProceedsRepository(ctn.Get("store").(*cache.Cache)), nil
		},
	},
	{
		Name: "registry",
		Build: func(ctn sdi.Container) (interface{}, error) {
			client, err := rpc.NewClient(
				config.Get().Registry.Url,
				config.Get().Registry.Timeout,
				config.Get().Registry.Debug,
			)
			if err != nil {
				return nil, err
			}

			return registry.NewRegistryService(registry.NewProvider(client)), nil
		},
	},
	{
		Name: "ledger",
		Build: func(ctn sdi.Container) (interface{}, error) {
			client, err := rpc.NewClient(
				config.Get().Ledger.Url,
				config.Get().Ledger.Timeout,
				config.Get().Ledger.Debug,
			)
			if err != nil {
				return nil, err
			}

			return ledger.NewLedgerService(client), nil
		},
	},
	{
		Name: "marketplace",
		Build: func(ctn sdi.Container) (interface{}, error) {
			return marketplace.NewMarketplaceService(
				ctn.Get("listing.repo").(repository.ListingRepository),
				ctn.Get("proceeds.repo").(repository.ProceedsRepository),
				ctn.Get("registry").(registry.Service),
				ctn.Get("ledger").(ledger.Service),
				config.Get().MarketplaceAddress,
			), nil
		},
	},
	{
		Name: "action.indexer",
		Build: func(ctn sdi.Container) (interface{}, error) {
			return indexer.NewActionIndexer(ctn.Get("elastic").(elastic_search.Index)), nil
		},
	},
	{
		Name: "messenger",
		Build: func(ctn sdi.Container) (interface{}, error) {
			return messenger.NewMessenger(config.Get().MessengerUri), nil
		},
	},
	{
		Name: "api",
		Build: func(ctn sdi.Container) (interface{}, error) {
			return api.NewServer(ctn.Get("marketplace").(marketplace.Service)), nil
		},
	},
}

func NewContainer() (sdi.Container, error) {
	builder, err := sdi.NewBuilder()
	if err != nil {
		return nil, err
	}

	if err := builder.Add(Definitions...); err != nil {
		return nil, err
	}

	return builder.Build(), nil
}
