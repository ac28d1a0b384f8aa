package elastic_search

import (
	"fmt"
	"github.com/ZilDuck/nft-marketplace/internal/config"
)

type Indices string

var (
	MarketActionIndex Indices = "marketaction"
)

// Get prefixes the index with the network and index name from config.
func (i *Indices) Get() string {
	return fmt.Sprintf("%s.%s.%s", config.Get().Network, config.Get().Index, string(*i))
}
