package indexer

import (
	"github.com/ZilDuck/nft-marketplace/internal/elastic_search"
	"github.com/ZilDuck/nft-marketplace/internal/entity"
	"go.uber.org/zap"
)

// ActionIndexer writes an audit document for every marketplace event. The
// audit trail is observability only; a failed write never fails the
// operation that produced it.
type ActionIndexer interface {
	IndexListed(msg interface{})
	IndexBought(msg interface{})
	IndexCancelled(msg interface{})
}

type actionIndexer struct {
	elastic elastic_search.Index
}

func NewActionIndexer(elastic elastic_search.Index) ActionIndexer {
	return actionIndexer{elastic}
}

func (i actionIndexer) IndexListed(msg interface{}) {
	i.index(msg, elastic_search.MarketListed)
}

func (i actionIndexer) IndexBought(msg interface{}) {
	i.index(msg, elastic_search.MarketBought)
}

func (i actionIndexer) IndexCancelled(msg interface{}) {
	i.index(msg, elastic_search.MarketCancelled)
}

func (i actionIndexer) index(msg interface{}, reqAction elastic_search.RequestAction) {
	action, ok := msg.(entity.MarketAction)
	if !ok {
		zap.L().With(zap.String("action", string(reqAction))).Error("ActionIndexer: Unexpected event payload")
		return
	}

	i.elastic.AddIndexRequest(elastic_search.MarketActionIndex.Get(), action, reqAction)
	i.elastic.Persist()
}
