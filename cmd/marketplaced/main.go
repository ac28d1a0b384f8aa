package main

import (
	"fmt"
	"github.com/ZilDuck/nft-marketplace/internal/api"
	"github.com/ZilDuck/nft-marketplace/internal/config"
	"github.com/ZilDuck/nft-marketplace/internal/config/di"
	"github.com/ZilDuck/nft-marketplace/internal/elastic_search"
	"github.com/ZilDuck/nft-marketplace/internal/event"
	"github.com/ZilDuck/nft-marketplace/internal/indexer"
	"github.com/ZilDuck/nft-marketplace/internal/messenger"
	"github.com/gorilla/mux"
	sdi "github.com/sarulabs/di/v2"
	"go.uber.org/zap"
	"net/http"
)

var container sdi.Container

func main() {
	config.Init("marketplaced")

	var err error
	container, err = di.NewContainer()
	if err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to build container")
	}

	container.Get("elastic").(elastic_search.Index).InstallMappings()

	actionIndexer := container.Get("action.indexer").(indexer.ActionIndexer)
	event.AddEventListener(event.ItemListedEvent, actionIndexer.IndexListed)
	event.AddEventListener(event.ItemBoughtEvent, actionIndexer.IndexBought)
	event.AddEventListener(event.ItemCancelledEvent, actionIndexer.IndexCancelled)

	if config.Get().MessengerUri != "" {
		messengerService := container.Get("messenger").(messenger.MessageService)
		event.AddEventListener(event.ItemListedEvent, messengerService.PublishAction)
		event.AddEventListener(event.ItemBoughtEvent, messengerService.PublishAction)
		event.AddEventListener(event.ItemCancelledEvent, messengerService.PublishAction)
	}

	go health()

	zap.L().With(zap.String("port", config.Get().ApiPort)).Info("Marketplace Started")

	server := container.Get("api").(api.Server)
	if err := http.ListenAndServe(":"+config.Get().ApiPort, server.Router()); err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to start marketplace")
	}
}

func health() {
	if err := http.ListenAndServe(":"+config.Get().HealthPort, healthRouter()); err != nil {
		zap.L().With(zap.Error(err)).Error("Failed to start health check")
	}
}

func healthRouter() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, "OK")
	}).Methods("GET")

	return r
}
